// Package finance provides the amortized-loan primitives shared by the deal
// metrics and MLI Select engines. Annual interest rates are expressed in
// percent (3.8 means 3.8%/yr).
package finance

import (
	"math"

	"github.com/tubby124/Deal-Analyzer/pkg/constants"
)

// AmortizationResult summarizes a simulated payment sequence.
type AmortizationResult struct {
	EndingBalance       float64
	CumulativeInterest  float64
	CumulativePrincipal float64
	TotalPaid           float64
}

// MonthlyPayment calculates the monthly payment for a fully amortizing loan
// using the standard amortization formula. A zero interest rate degrades to
// linear division of the principal over the term.
func MonthlyPayment(principal, annualRatePct float64, years int) float64 {
	months := years * constants.MonthsPerYear
	if months <= 0 {
		return 0
	}
	if annualRatePct == 0 {
		return principal / float64(months)
	}

	periodicRate := annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.0+periodicRate, float64(months))
	return principal * periodicRate * power / (power - 1.0)
}

// InterestPayment calculates the interest portion of one monthly payment.
func InterestPayment(remainingBalance, annualRatePct float64) float64 {
	return remainingBalance * annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Amortize simulates the loan month by month for min(holdYears, amortYears)
// worth of payments, splitting each payment into interest and principal and
// accumulating both. The explicit simulation is what lets callers report the
// cumulative interest/principal breakdown rather than just an ending balance.
func Amortize(principal, annualRatePct float64, amortYears, holdYears int) AmortizationResult {
	var result AmortizationResult
	totalMonths := amortYears * constants.MonthsPerYear
	if totalMonths <= 0 || principal <= 0 {
		return result
	}

	payment := MonthlyPayment(principal, annualRatePct, amortYears)
	periodicRate := annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)

	months := holdYears * constants.MonthsPerYear
	if months > totalMonths {
		months = totalMonths
	}

	balance := principal
	for month := 0; month < months; month++ {
		interest := balance * periodicRate
		principalPortion := payment - interest
		result.CumulativeInterest += interest
		result.CumulativePrincipal += principalPortion
		balance -= principalPortion
	}
	if balance < 0 {
		balance = 0
	}
	result.EndingBalance = balance
	result.TotalPaid = result.CumulativeInterest + result.CumulativePrincipal
	return result
}

// FutureValue compounds a principal at the given annual growth rate
// (fractional, 0.04 means 4%/yr) over the given number of years.
func FutureValue(principal, annualGrowthRate float64, years int) float64 {
	if years <= 0 {
		return principal
	}
	return principal * math.Pow(1.0+annualGrowthRate, float64(years))
}

// AnnualizedReturn computes the compound annual return implied by turning
// cashInvested into cashInvested+totalGain over the given horizon. The base
// of the exponent is floored at a small positive value so a total loss never
// produces NaN.
func AnnualizedReturn(cashInvested, totalGain float64, years int) float64 {
	if cashInvested <= 0 || years <= 0 {
		return 0
	}
	base := math.Max(0.01, cashInvested+totalGain) / cashInvested
	return math.Pow(base, 1.0/float64(years)) - 1.0
}
