// Package mliselect implements the multifamily underwriting engine for the
// CMHC MLI Select program (post July 14, 2025 rules): outcome points and
// tier lookup, insured financing terms, dual DCR qualification, the rent-gap
// solver, and hold-period projections. Like the deal analyzer, Underwrite is
// a pure function of its inputs.
package mliselect

import (
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
	"github.com/tubby124/Deal-Analyzer/pkg/parse"
)

// UnitGroup is one row of the unit mix: a count of identical units. Rent
// zero means "use the market default for the type".
type UnitGroup struct {
	Type  string  `json:"type" yaml:"type"`
	Count int     `json:"count" yaml:"count"`
	Rent  float64 `json:"rent,omitempty" yaml:"rent,omitempty"`
}

// Inputs is the complete input record for one underwriting run. Outcome
// points must come from the program's allowed values; anything else is
// treated as zero. Override fields at zero mean "use the tier or market
// default".
type Inputs struct {
	Market          string      `json:"market" yaml:"market"`
	NewConstruction bool        `json:"newConstruction,omitempty" yaml:"newConstruction,omitempty"`
	Units           []UnitGroup `json:"units" yaml:"units"`

	// Outcome commitments
	AffordabilityPoints int  `json:"affordabilityPoints" yaml:"affordabilityPoints"`
	DurationBonus       bool `json:"durationBonus,omitempty" yaml:"durationBonus,omitempty"`
	EnergyPoints        int  `json:"energyPoints" yaml:"energyPoints"`
	AccessibilityPoints int  `json:"accessibilityPoints" yaml:"accessibilityPoints"`

	// Financing
	Price               float64 `json:"price,omitempty" yaml:"price,omitempty"`
	ContractRate        float64 `json:"contractRate,omitempty" yaml:"contractRate,omitempty"`
	TermYears           int     `json:"termYears,omitempty" yaml:"termYears,omitempty"`
	AmortizationYears   int     `json:"amortizationYears,omitempty" yaml:"amortizationYears,omitempty"`
	LoanToValueOverride float64 `json:"loanToValueOverride,omitempty" yaml:"loanToValueOverride,omitempty"`

	// Operating overrides; zero means "use the market default". The annual
	// amounts replace the per-unit defaults entirely when set.
	VacancyRateOverride float64 `json:"vacancyRateOverride,omitempty" yaml:"vacancyRateOverride,omitempty"`
	MgmtPctOverride     float64 `json:"mgmtPctOverride,omitempty" yaml:"mgmtPctOverride,omitempty"`
	AnnualTax           float64 `json:"annualTax,omitempty" yaml:"annualTax,omitempty"`
	AnnualInsurance     float64 `json:"annualInsurance,omitempty" yaml:"annualInsurance,omitempty"`
	AnnualMaintenance   float64 `json:"annualMaintenance,omitempty" yaml:"annualMaintenance,omitempty"`
	AnnualUtilities     float64 `json:"annualUtilities,omitempty" yaml:"annualUtilities,omitempty"`
}

var allowedAffordability = map[int]bool{0: true, 50: true, 70: true, 100: true}
var allowedEnergy = map[int]bool{0: true, 20: true, 35: true, 50: true}
var allowedAccessibility = map[int]bool{0: true, 20: true, 30: true}

func (in Inputs) withDefaults() Inputs {
	if in.Market == "" {
		in.Market = market.DefaultMliMarket
	}
	if !allowedAffordability[in.AffordabilityPoints] {
		in.AffordabilityPoints = 0
	}
	if !allowedEnergy[in.EnergyPoints] {
		in.EnergyPoints = 0
	}
	if !allowedAccessibility[in.AccessibilityPoints] {
		in.AccessibilityPoints = 0
	}

	in.Price = parse.SanitizeFloat(in.Price, 0)
	if in.Price <= 0 {
		in.Price = constants.MliDefaultPrice
	}
	in.ContractRate = parse.SanitizeFloat(in.ContractRate, 0)
	if in.ContractRate <= 0 {
		in.ContractRate = constants.MliDefaultRate
	}
	if in.TermYears <= 0 {
		in.TermYears = constants.MliDefaultTermYears
	}
	if in.AmortizationYears < 0 {
		in.AmortizationYears = 0
	}
	in.LoanToValueOverride = parse.SanitizeFloat(in.LoanToValueOverride, 0)
	if in.LoanToValueOverride < 0 {
		in.LoanToValueOverride = 0
	}
	if in.LoanToValueOverride > maxInsurableLTV {
		in.LoanToValueOverride = maxInsurableLTV
	}

	for _, f := range []*float64{
		&in.VacancyRateOverride, &in.MgmtPctOverride, &in.AnnualTax,
		&in.AnnualInsurance, &in.AnnualMaintenance, &in.AnnualUtilities,
	} {
		*f = parse.SanitizeFloat(*f, 0)
		if *f < 0 {
			*f = 0
		}
	}

	units := make([]UnitGroup, len(in.Units))
	for i, u := range in.Units {
		if u.Count < 0 {
			u.Count = 0
		}
		u.Rent = parse.SanitizeFloat(u.Rent, 0)
		if u.Rent < 0 {
			u.Rent = 0
		}
		units[i] = u
	}
	in.Units = units

	return in
}

// unitCount is the total number of units across the mix.
func (in Inputs) unitCount() int {
	total := 0
	for _, u := range in.Units {
		total += u.Count
	}
	return total
}
