package market

import (
	"math"

	"github.com/tubby124/Deal-Analyzer/pkg/constants"
)

// Band is a low/mid/high range used for cap-rate and price-per-door
// comparables.
type Band struct {
	Low  float64
	Mid  float64
	High float64
}

// MliProfile holds the multifamily underwriting constants per market.
// Vacancy is the lender underwriting floor, which applies even when actual
// vacancy runs lower.
type MliProfile struct {
	ID                 string
	Label              string
	Province           Province
	Rents              map[string]float64
	VacancyRate        float64
	MgmtPct            float64
	InsurancePerUnit   float64
	MaintPerUnit       float64
	TaxRate            float64
	Growth             GrowthScenario
	CapRate            Band
	MedianRenterIncome float64
	PricePerDoor       Band
}

// Rent returns the market default monthly rent for a unit type.
func (p MliProfile) Rent(unitType string) float64 {
	return p.Rents[unitType]
}

// AffordableRent is the monthly rent threshold for affordability points:
// 30% of the median renter household income.
func (p MliProfile) AffordableRent() float64 {
	return math.Round(p.MedianRenterIncome * constants.AffordableRentIncomeShare / constants.MonthsPerYear)
}

// MliProfiles is the multifamily market table.
var MliProfiles = map[string]MliProfile{
	"edmonton": {
		ID:       "edmonton",
		Label:    "Edmonton, AB",
		Province: Alberta,
		Rents: map[string]float64{
			UnitBachelor: 1050, Unit1Bed: 1330, Unit2Bed: 1506, Unit3Bed: 1800,
		},
		VacancyRate:        0.05,
		MgmtPct:            0.08,
		InsurancePerUnit:   600,
		MaintPerUnit:       1500,
		TaxRate:            0.01014,
		Growth:             GrowthScenario{Low: 0.015, Mid: 0.03, High: 0.05},
		CapRate:            Band{Low: 0.05, Mid: 0.055, High: 0.065},
		MedianRenterIncome: 50000,
		PricePerDoor:       Band{Low: 130000, Mid: 180000, High: 225000},
	},
	"calgary": {
		ID:       "calgary",
		Label:    "Calgary, AB",
		Province: Alberta,
		Rents: map[string]float64{
			UnitBachelor: 1363, Unit1Bed: 1625, Unit2Bed: 1870, Unit3Bed: 2200,
		},
		VacancyRate:        0.05,
		MgmtPct:            0.10,
		InsurancePerUnit:   650,
		MaintPerUnit:       1500,
		TaxRate:            0.00618,
		Growth:             GrowthScenario{Low: 0.015, Mid: 0.03, High: 0.05},
		CapRate:            Band{Low: 0.055, Mid: 0.06, High: 0.07},
		MedianRenterIncome: 56000,
		PricePerDoor:       Band{Low: 235000, Mid: 300000, High: 402000},
	},
	"saskatoon": {
		ID:       "saskatoon",
		Label:    "Saskatoon, SK",
		Province: Saskatchewan,
		Rents: map[string]float64{
			UnitBachelor: 975, Unit1Bed: 1175, Unit2Bed: 1400, Unit3Bed: 1750,
		},
		VacancyRate:      0.05,
		MgmtPct:          0.08,
		InsurancePerUnit: 500,
		MaintPerUnit:     1200,
		// 1.251% mill rate x 80% percentage-of-value = 1.001% effective
		// on appraised value.
		TaxRate:            0.01251 * 0.80,
		Growth:             GrowthScenario{Low: 0.02, Mid: 0.035, High: 0.055},
		CapRate:            Band{Low: 0.055, Mid: 0.065, High: 0.075},
		MedianRenterIncome: 48000,
		PricePerDoor:       Band{Low: 150000, Mid: 200000, High: 270000},
	},
}

// DefaultMliMarket is used when a market identifier is missing or unknown.
const DefaultMliMarket = "edmonton"

// MliByID looks up a multifamily market profile, falling back to the
// default market for unknown identifiers.
func MliByID(id string) MliProfile {
	if p, ok := MliProfiles[id]; ok {
		return p
	}
	return MliProfiles[DefaultMliMarket]
}
