// Package taxes implements the marginal income-tax calculators used for
// disposition planning: capital-gains tax via combined federal+provincial
// bracket tables, and CCA recapture. Bracket application is marginal, not
// average: bracket space is consumed by other income first, and the gain is
// then taxed bracket by bracket until exhausted.
package taxes

import (
	"math"

	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

// CapitalGainsInclusionRate is the fraction of a realized capital gain that
// is taxable income.
const CapitalGainsInclusionRate = 0.50

// Bracket is one step of a combined marginal-rate table. UpTo is the upper
// bound of taxable income for the bracket; the final bracket is unbounded.
type Bracket struct {
	UpTo float64
	Rate float64
}

// Combined 2025 federal + provincial marginal rates.
var saskatchewanBrackets = []Bracket{
	{UpTo: 53463, Rate: 0.255},
	{UpTo: 57375, Rate: 0.275},
	{UpTo: 114750, Rate: 0.330},
	{UpTo: 152750, Rate: 0.385},
	{UpTo: 177882, Rate: 0.405},
	{UpTo: 253414, Rate: 0.435},
	{UpTo: math.Inf(1), Rate: 0.475},
}

var albertaBrackets = []Bracket{
	{UpTo: 57375, Rate: 0.250},
	{UpTo: 114750, Rate: 0.305},
	{UpTo: 151234, Rate: 0.360},
	{UpTo: 177882, Rate: 0.380},
	{UpTo: 181481, Rate: 0.410},
	{UpTo: 241974, Rate: 0.420},
	{UpTo: 253414, Rate: 0.430},
	{UpTo: math.Inf(1), Rate: 0.470},
}

// BracketsFor returns the combined marginal table for a jurisdiction.
func BracketsFor(province market.Province) []Bracket {
	if province == market.Alberta {
		return albertaBrackets
	}
	return saskatchewanBrackets
}

// marginalTax taxes amount stacked on top of baseline income, walking the
// brackets in ascending order and stopping once the amount is exhausted.
func marginalTax(brackets []Bracket, baseline, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if baseline < 0 {
		baseline = 0
	}

	var tax float64
	income := baseline
	remaining := amount
	for _, bracket := range brackets {
		if income >= bracket.UpTo {
			continue
		}
		portion := math.Min(remaining, bracket.UpTo-income)
		tax += portion * bracket.Rate
		income += portion
		remaining -= portion
		if remaining <= 0 {
			break
		}
	}
	return tax
}

// CapitalGainsResult reports the tax consequences of a realized gain.
type CapitalGainsResult struct {
	TaxableGain   float64
	Tax           float64
	EffectiveRate float64 // tax as a fraction of the full (pre-inclusion) gain
}

// CapitalGains computes the tax on a realized capital gain stacked on top
// of otherIncome. The inclusion rate is applied before the bracket walk.
func CapitalGains(province market.Province, gain, otherIncome float64) CapitalGainsResult {
	if gain <= 0 {
		return CapitalGainsResult{}
	}

	taxable := gain * CapitalGainsInclusionRate
	tax := marginalTax(BracketsFor(province), otherIncome, taxable)
	return CapitalGainsResult{
		TaxableGain:   taxable,
		Tax:           tax,
		EffectiveRate: tax / gain,
	}
}

// CCARecapture computes the tax on recaptured capital cost allowance at
// disposition. Recapture is fully taxable ordinary income, stacked above
// otherIncome with no inclusion-rate reduction.
func CCARecapture(province market.Province, recaptured, otherIncome float64) float64 {
	return marginalTax(BracketsFor(province), otherIncome, recaptured)
}
