// Package closing implements the jurisdiction-specific closing-cost and
// real-estate commission schedules. Saskatchewan and Alberta use different
// land-title and registration fee structures, and different commission
// conventions and sales taxes.
package closing

import (
	"math"

	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

// registrationBracket is one step of the Saskatchewan mortgage registration
// fee table, keyed by mortgage amount upper bound.
type registrationBracket struct {
	maxAmount float64
	fee       float64
}

var skRegistrationFees = []registrationBracket{
	{maxAmount: 250000, fee: 180},
	{maxAmount: 500000, fee: 360},
	{maxAmount: 750000, fee: 550},
	{maxAmount: 1000000, fee: 750},
}

// skRegistrationMaxFee applies above the last bracket (>$1M).
const skRegistrationMaxFee = 1000

// LandTitleFee returns the land title transfer fee for a purchase price.
// Saskatchewan charges a flat 0.4% of price; Alberta charges $50 plus $5
// per started $5,000 of price.
func LandTitleFee(province market.Province, price float64) float64 {
	if price <= 0 {
		return 0
	}
	switch province {
	case market.Alberta:
		return 50 + 5*math.Ceil(price/5000)
	default:
		return price * 0.004
	}
}

// MortgageRegistrationFee returns the mortgage registration fee.
// Saskatchewan uses a stepped flat-fee table by mortgage amount; Alberta
// charges $50 plus $5 per started $5,000 of mortgage.
func MortgageRegistrationFee(province market.Province, mortgage float64) float64 {
	if mortgage <= 0 {
		return 0
	}
	if province == market.Alberta {
		return 50 + 5*math.Ceil(mortgage/5000)
	}
	for _, bracket := range skRegistrationFees {
		if mortgage <= bracket.maxAmount {
			return bracket.fee
		}
	}
	return skRegistrationMaxFee
}

// Costs summarizes the government fees on a purchase.
type Costs struct {
	LandTitleFee    float64
	RegistrationFee float64
	Total           float64
}

// Estimate computes the land title and mortgage registration fees for a
// purchase in the given jurisdiction.
func Estimate(province market.Province, price, mortgage float64) Costs {
	title := LandTitleFee(province, price)
	registration := MortgageRegistrationFee(province, mortgage)
	return Costs{
		LandTitleFee:    title,
		RegistrationFee: registration,
		Total:           title + registration,
	}
}

// CommissionResult breaks a selling commission into its pre-tax amount, the
// sales tax on it, and the total owed.
type CommissionResult struct {
	Commission float64
	Tax        float64
	Total      float64
}

// Commission computes the tiered real-estate selling commission.
// Saskatchewan convention: 6% on the first $100k, 4% on the next $100k, 2%
// on the remainder, plus 11% GST+PST. Alberta convention: 7% on the first
// $100k, 3.5% on the remainder, plus 5% GST.
func Commission(province market.Province, price float64) CommissionResult {
	if price <= 0 {
		return CommissionResult{}
	}

	var commission, taxRate float64
	if province == market.Alberta {
		commission = tierAmount(price, 0, 100000)*0.07 + tierAmount(price, 100000, math.Inf(1))*0.035
		taxRate = 0.05
	} else {
		commission = tierAmount(price, 0, 100000)*0.06 +
			tierAmount(price, 100000, 200000)*0.04 +
			tierAmount(price, 200000, math.Inf(1))*0.02
		taxRate = 0.11
	}

	tax := commission * taxRate
	return CommissionResult{
		Commission: commission,
		Tax:        tax,
		Total:      commission + tax,
	}
}

// tierAmount returns the portion of value that falls inside (lo, hi].
func tierAmount(value, lo, hi float64) float64 {
	if value <= lo {
		return 0
	}
	return math.Min(value, hi) - lo
}
