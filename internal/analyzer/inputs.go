// Package analyzer implements the deal metrics and scoring engines for
// single-property purchases. Analyze is a pure function of its inputs:
// identical DealInputs produce identical DealMetrics, with no hidden state,
// which lets callers memoize or re-run it on every input change.
package analyzer

import (
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
	"github.com/tubby124/Deal-Analyzer/pkg/parse"
)

// Mode selects which perspective the engine scores from.
type Mode string

const (
	ModeOwner    Mode = "owner"
	ModeInvestor Mode = "investor"
)

// PropertyType selects fee and utility defaults.
type PropertyType string

const (
	PropertyCondo    PropertyType = "condo"
	PropertyDetached PropertyType = "detached"
	PropertyMulti    PropertyType = "multi"
)

// HeatingType selects the utility baseline. Electric baseboard heat carries
// a much higher electricity default and zeroes the gas default.
type HeatingType string

const (
	HeatingGas       HeatingType = "gas"
	HeatingElectric  HeatingType = "electric"
	HeatingBaseboard HeatingType = "baseboard"
)

// RentalUnit is one rentable unit of the property. Rent zero means "use the
// market default for the unit type". A unit flagged OwnerOccupied produces
// no income and marks the deal as hybrid occupancy.
type RentalUnit struct {
	Type          string  `json:"type" yaml:"type"`
	Rent          float64 `json:"rent,omitempty" yaml:"rent,omitempty"`
	OwnerOccupied bool    `json:"ownerOccupied,omitempty" yaml:"ownerOccupied,omitempty"`
}

// DealInputs is the complete input record for one analysis. Zero-valued
// numeric fields mean "unset" and are replaced by documented defaults in
// withDefaults; override fields (tax, condo fee, insurance, utilities)
// stay zero to mean "use the market or category default".
type DealInputs struct {
	Mode         Mode         `json:"mode" yaml:"mode"`
	Market       string       `json:"market" yaml:"market"`
	PropertyType PropertyType `json:"propertyType" yaml:"propertyType"`
	HeatingType  HeatingType  `json:"heatingType,omitempty" yaml:"heatingType,omitempty"`

	Price             float64 `json:"price,omitempty" yaml:"price,omitempty"`
	DownPaymentPct    float64 `json:"downPaymentPct,omitempty" yaml:"downPaymentPct,omitempty"`
	InterestRate      float64 `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	AmortizationYears int     `json:"amortizationYears,omitempty" yaml:"amortizationYears,omitempty"`
	ClosingCostPct    float64 `json:"closingCostPct,omitempty" yaml:"closingCostPct,omitempty"`
	CurrentRent       float64 `json:"currentRent,omitempty" yaml:"currentRent,omitempty"`
	MaintenancePct    float64 `json:"maintenancePct,omitempty" yaml:"maintenancePct,omitempty"`

	Units []RentalUnit `json:"units,omitempty" yaml:"units,omitempty"`

	// Overrides; zero means "use the default".
	AnnualTax       float64 `json:"annualTax,omitempty" yaml:"annualTax,omitempty"`
	MonthlyCondoFee float64 `json:"monthlyCondoFee,omitempty" yaml:"monthlyCondoFee,omitempty"`
	AnnualInsurance float64 `json:"annualInsurance,omitempty" yaml:"annualInsurance,omitempty"`
	MonthlyElectric float64 `json:"monthlyElectric,omitempty" yaml:"monthlyElectric,omitempty"`
	MonthlyWater    float64 `json:"monthlyWater,omitempty" yaml:"monthlyWater,omitempty"`
	MonthlyGas      float64 `json:"monthlyGas,omitempty" yaml:"monthlyGas,omitempty"`

	// TenantPaysUtilities removes utilities from operating expenses.
	TenantPaysUtilities bool `json:"tenantPaysUtilities,omitempty" yaml:"tenantPaysUtilities,omitempty"`

	// GrowthRate overrides the market appreciation assumption (fractional,
	// e.g. 0.03). Zero means "use the market mid scenario".
	GrowthRate float64 `json:"growthRate,omitempty" yaml:"growthRate,omitempty"`
}

// withDefaults returns a copy with every unset or non-finite field replaced
// by its documented default. The engine only ever sees the result of this.
func (in DealInputs) withDefaults() DealInputs {
	if in.Mode != ModeOwner {
		in.Mode = ModeInvestor
	}
	if in.Market == "" {
		in.Market = market.DefaultMarket
	}
	switch in.PropertyType {
	case PropertyCondo, PropertyDetached, PropertyMulti:
	default:
		in.PropertyType = PropertyCondo
	}
	switch in.HeatingType {
	case HeatingGas, HeatingElectric, HeatingBaseboard:
	default:
		in.HeatingType = HeatingGas
	}

	in.Price = parse.SanitizeFloat(in.Price, 0)
	if in.Price <= 0 {
		in.Price = constants.DefaultPurchasePrice
	}
	in.DownPaymentPct = parse.SanitizeFloat(in.DownPaymentPct, 0)
	if in.DownPaymentPct <= 0 || in.DownPaymentPct > 1 {
		in.DownPaymentPct = constants.DefaultDownPaymentPct
	}
	in.InterestRate = parse.SanitizeFloat(in.InterestRate, 0)
	if in.InterestRate <= 0 {
		in.InterestRate = constants.DefaultInterestRate
	}
	if in.AmortizationYears <= 0 {
		in.AmortizationYears = constants.DefaultAmortizationYears
	}
	in.ClosingCostPct = parse.SanitizeFloat(in.ClosingCostPct, 0)
	if in.ClosingCostPct <= 0 {
		in.ClosingCostPct = constants.DefaultClosingCostPct
	}
	in.CurrentRent = parse.SanitizeFloat(in.CurrentRent, 0)
	if in.CurrentRent <= 0 {
		in.CurrentRent = constants.DefaultCurrentRent
	}
	in.MaintenancePct = parse.SanitizeFloat(in.MaintenancePct, 0)
	if in.MaintenancePct <= 0 {
		in.MaintenancePct = constants.DefaultMaintenancePct
	}

	for _, f := range []*float64{
		&in.AnnualTax, &in.MonthlyCondoFee, &in.AnnualInsurance,
		&in.MonthlyElectric, &in.MonthlyWater, &in.MonthlyGas,
		&in.GrowthRate,
	} {
		*f = parse.SanitizeFloat(*f, 0)
		if *f < 0 {
			*f = 0
		}
	}

	units := make([]RentalUnit, len(in.Units))
	for i, u := range in.Units {
		u.Rent = parse.SanitizeFloat(u.Rent, 0)
		if u.Rent < 0 {
			u.Rent = 0
		}
		units[i] = u
	}
	in.Units = units

	return in
}

// hasOwnerUnit reports whether any unit is flagged owner-occupied.
func (in DealInputs) hasOwnerUnit() bool {
	for _, u := range in.Units {
		if u.OwnerOccupied {
			return true
		}
	}
	return false
}

// rentalUnits returns the units that generate income.
func (in DealInputs) rentalUnits() []RentalUnit {
	rentals := make([]RentalUnit, 0, len(in.Units))
	for _, u := range in.Units {
		if !u.OwnerOccupied {
			rentals = append(rentals, u)
		}
	}
	return rentals
}
