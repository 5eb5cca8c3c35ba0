// Package cmhc implements the mortgage default insurance rules: the
// residential premium tier table, insured-financing eligibility, and the
// multifamily (MLI) premium schedule. Premiums are banded step functions
// mandated by the insurer, so everything here is table-driven lookup rather
// than formulas, reproduced band for band.
package cmhc

import (
	"math"

	"github.com/tubby124/Deal-Analyzer/pkg/constants"
)

// PremiumTier is one band of the residential premium table. Bounds are in
// down-payment percent and both ends are inclusive.
type PremiumTier struct {
	LowPct  float64
	HighPct float64
	Rate    float64
}

// PremiumTiers is the residential premium schedule keyed by down payment.
var PremiumTiers = []PremiumTier{
	{LowPct: 5, HighPct: 9.99, Rate: 0.040},
	{LowPct: 10, HighPct: 14.99, Rate: 0.031},
	{LowPct: 15, HighPct: 19.99, Rate: 0.028},
	{LowPct: 20, HighPct: 100, Rate: 0},
}

// PremiumRate returns the premium rate for a down-payment fraction using
// first-match lookup over the tier table. Down payments of 20% or more
// always yield zero; fractions below every band also yield zero.
func PremiumRate(downPaymentPct float64) float64 {
	d := downPaymentPct * constants.PercentageMultiplier
	for _, tier := range PremiumTiers {
		if d >= tier.LowPct && d <= tier.HighPct {
			return tier.Rate
		}
	}
	return 0
}

// Eligibility describes whether insured financing applies to a purchase and
// at what premium rate. Ineligibility is advisory, never an error: the
// warning flag is surfaced for the UI to render.
type Eligibility struct {
	// Rate is the premium rate applied to the base loan; zero when no
	// premium applies.
	Rate float64

	// Insured reports whether the purchase qualifies for insured financing.
	Insured bool

	// OwnerOccupiedBenefit is set when an investor-mode purchase qualifies
	// only because an owner-occupied unit is present.
	OwnerOccupiedBenefit bool

	// InvestmentWarning is set when a pure investment purchase below 20%
	// down does not qualify for insured financing; no premium is charged
	// and the deal needs conventional (20%+) financing.
	InvestmentWarning bool
}

// Assess applies the insurer's occupancy and price-ceiling rules.
// ownerMode is true when the buyer intends to live in the property;
// hasOwnerUnit is true when one unit of a rental property is owner-occupied.
func Assess(price, downPaymentPct float64, ownerMode, hasOwnerUnit bool) Eligibility {
	var e Eligibility
	if price > constants.MaxInsurablePrice || downPaymentPct >= constants.ConventionalDownPct {
		return e
	}

	if ownerMode || hasOwnerUnit {
		e.Rate = PremiumRate(downPaymentPct)
		e.Insured = e.Rate > 0
		if hasOwnerUnit && !ownerMode {
			e.OwnerOccupiedBenefit = true
		}
		return e
	}

	// Pure investment below 20% down: insured financing is not available.
	e.InvestmentWarning = true
	return e
}

// mliBand is one band of the multifamily base premium schedule, keyed by
// loan-to-value upper bound.
type mliBand struct {
	maxLTV float64
	rate   float64
}

// Bands above 85% LTV are only reachable through the MLI Select program.
var mliBasePremiums = []mliBand{
	{maxLTV: 0.65, rate: 0.0260},
	{maxLTV: 0.70, rate: 0.0285},
	{maxLTV: 0.75, rate: 0.0335},
	{maxLTV: 0.80, rate: 0.0435},
	{maxLTV: 0.85, rate: 0.0535},
	{maxLTV: 0.90, rate: 0.0590},
}

// mliMaxPremium applies above the last band (>90% LTV).
const mliMaxPremium = 0.0615

// MliBasePremiumRate returns the multifamily base premium rate for a
// loan-to-value fraction.
func MliBasePremiumRate(ltv float64) float64 {
	for _, band := range mliBasePremiums {
		if ltv <= band.maxLTV {
			return band.rate
		}
	}
	return mliMaxPremium
}

// MliAmortSurcharge returns the premium surcharge for extended
// amortizations: 0.25% per started 5-year increment beyond 25 years.
func MliAmortSurcharge(amortYears int) float64 {
	if amortYears <= 25 {
		return 0
	}
	return 0.0025 * math.Ceil(float64(amortYears-25)/5.0)
}

// MliSelectPremiumRate returns the full MLI Select premium rate:
// (base + amortization surcharge) reduced by the tier discount.
func MliSelectPremiumRate(ltv float64, amortYears int, tierDiscount float64) float64 {
	return (MliBasePremiumRate(ltv) + MliAmortSurcharge(amortYears)) * (1 - tierDiscount)
}
