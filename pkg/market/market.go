// Package market holds the per-jurisdiction reference tables used by the
// analyzers: tax rates, vacancy floors, growth scenarios, market rents, and
// neighborhood comparables. These are static data tables, read-only at
// runtime, and deliberately kept as literals rather than refactored into
// control flow.
package market

// Province identifies the jurisdiction a market belongs to; it selects the
// fee schedules and tax bracket tables in pkg/closing and pkg/taxes.
type Province string

const (
	Saskatchewan Province = "SK"
	Alberta      Province = "AB"
)

// Unit type keys for the rent tables. The _nc variants are non-conforming
// (unpermitted) suites, which rent below their legal counterparts.
const (
	UnitBachelor  = "bachelor"
	Unit1Bed      = "1bed"
	Unit2Bed      = "2bed"
	Unit3Bed      = "3bed"
	Unit4Bed      = "4bed"
	Unit1BedNC    = "1bed_nc"
	Unit2BedNC    = "2bed_nc"
	Unit2BedLegal = "2bed_legal"
	UnitGarage    = "garage"
	UnitParking   = "parking"
)

// GrowthScenario is the three-point appreciation assumption for a market.
type GrowthScenario struct {
	Low  float64
	Mid  float64
	High float64
}

// Neighborhood is one comparable area within a market.
type Neighborhood struct {
	Name        string
	Grade       string
	AvgPrice    float64
	Growth      float64
	Description string
}

// Profile holds the per-market constants consumed by the deal metrics
// engine.
type Profile struct {
	ID            string
	Label         string
	Province      Province
	TaxRate       float64
	VacancyRate   float64
	Growth        GrowthScenario
	Rents         map[string]float64
	CondoFee      float64
	Neighborhoods []Neighborhood
}

// Rent returns the market default monthly rent for a unit type, or zero for
// unknown types.
func (p Profile) Rent(unitType string) float64 {
	return p.Rents[unitType]
}

// Profiles is the residential market table.
var Profiles = map[string]Profile{
	"saskatoon": {
		ID:          "saskatoon",
		Label:       "Saskatoon, SK",
		Province:    Saskatchewan,
		TaxRate:     0.0135,
		VacancyRate: 0.05,
		Growth:      GrowthScenario{Low: 0.02, Mid: 0.04, High: 0.06},
		Rents: map[string]float64{
			UnitBachelor: 1002, Unit1Bed: 1315, Unit2Bed: 1506, Unit3Bed: 2100, Unit4Bed: 2600,
			Unit1BedNC: 800, Unit2BedNC: 1150, Unit2BedLegal: 1400, UnitGarage: 400, UnitParking: 100,
		},
		CondoFee: 350,
		Neighborhoods: []Neighborhood{
			{Name: "Nutana / Varsity View", Grade: "A", AvgPrice: 450000, Growth: 0.055, Description: "Character homes, infill, walkable"},
			{Name: "City Park / Haultain", Grade: "A", AvgPrice: 420000, Growth: 0.05, Description: "50ft lots, lot splitting, downtown"},
			{Name: "Stonebridge", Grade: "A", AvgPrice: 480000, Growth: 0.045, Description: "Newer builds, families, stable"},
			{Name: "Brighton / Kensington", Grade: "B+", AvgPrice: 440000, Growth: 0.04, Description: "New development, growing"},
			{Name: "Caswell / Westmount", Grade: "B", AvgPrice: 320000, Growth: 0.04, Description: "Affordable, older stock"},
			{Name: "Pleasant Hill / Riversdale", Grade: "B-", AvgPrice: 260000, Growth: 0.035, Description: "Lowest entry, revitalizing"},
			{Name: "Willowgrove / Evergreen", Grade: "B+", AvgPrice: 460000, Growth: 0.04, Description: "Suburban, newer"},
			{Name: "Confederation / Massey", Grade: "B", AvgPrice: 340000, Growth: 0.035, Description: "West side, suite potential"},
			{Name: "Dundonald / Exhibition", Grade: "B", AvgPrice: 310000, Growth: 0.035, Description: "Affordable, near amenities"},
		},
	},
	"calgary": {
		ID:          "calgary",
		Label:       "Calgary, AB",
		Province:    Alberta,
		TaxRate:     0.0068,
		VacancyRate: 0.06,
		Growth:      GrowthScenario{Low: 0.015, Mid: 0.035, High: 0.055},
		Rents: map[string]float64{
			UnitBachelor: 1350, Unit1Bed: 1537, Unit2Bed: 1870, Unit3Bed: 2030, Unit4Bed: 2500,
			Unit1BedNC: 1200, Unit2BedNC: 1400, Unit2BedLegal: 1600, UnitGarage: 250, UnitParking: 150,
		},
		CondoFee: 420,
		Neighborhoods: []Neighborhood{
			{Name: "Beltline / Downtown", Grade: "A", AvgPrice: 380000, Growth: 0.04, Description: "Condos, walkable"},
			{Name: "Killarney / Marda Loop", Grade: "A", AvgPrice: 620000, Growth: 0.05, Description: "Premium, infill"},
			{Name: "Forest Lawn / Dover", Grade: "B", AvgPrice: 350000, Growth: 0.035, Description: "Affordable, cash flow"},
			{Name: "Martindale / Taradale", Grade: "B", AvgPrice: 420000, Growth: 0.03, Description: "NE, families"},
			{Name: "Penbrooke / Erin Woods", Grade: "B-", AvgPrice: 320000, Growth: 0.03, Description: "Lowest SE"},
			{Name: "Coventry / Country Hills", Grade: "B+", AvgPrice: 480000, Growth: 0.035, Description: "North, families"},
			{Name: "Rundle / Pineridge", Grade: "B", AvgPrice: 380000, Growth: 0.03, Description: "NE value play"},
		},
	},
}

// DefaultMarket is used when a market identifier is missing or unknown.
const DefaultMarket = "saskatoon"

// ByID looks up a residential market profile, falling back to the default
// market for unknown identifiers. Missing reference data is never an error
// at the input boundary.
func ByID(id string) Profile {
	if p, ok := Profiles[id]; ok {
		return p
	}
	return Profiles[DefaultMarket]
}
