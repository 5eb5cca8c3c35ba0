// Package constants provides shared constants for the deal-analyzer application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Input defaults applied at the parse boundary. Empty or unparseable user
// input coerces to these rather than producing an error.
const (
	// DefaultPurchasePrice is the fallback purchase price
	DefaultPurchasePrice = 280000.0

	// DefaultInterestRate is the fallback annual interest rate in percent
	DefaultInterestRate = 3.8

	// DefaultCurrentRent is the fallback comparable monthly rent (owner mode)
	DefaultCurrentRent = 1600.0

	// DefaultDownPaymentPct is the fallback down-payment fraction
	DefaultDownPaymentPct = 0.20

	// DefaultAmortizationYears is the fallback amortization period
	DefaultAmortizationYears = 25

	// DefaultClosingCostPct is the fallback closing-cost fraction of price
	DefaultClosingCostPct = 0.015

	// DefaultMaintenancePct is the fallback maintenance reserve in percent of EGI
	DefaultMaintenancePct = 5.0
)

// CMHC program constants
const (
	// MaxInsurablePrice is the purchase price ceiling for CMHC-insured financing
	MaxInsurablePrice = 1500000.0

	// ConventionalDownPct is the down payment at and above which no premium applies
	ConventionalDownPct = 0.20
)

// MLI Select program constants
const (
	// MliMaxPoints caps the aggregate MLI Select score
	MliMaxPoints = 250

	// MliMinPoints is the minimum score for any MLI Select tier
	MliMinPoints = 50

	// MliMinUnits is the minimum rental unit count for the program
	MliMinUnits = 5

	// MliDurationBonusPoints is awarded for electing a 20-year covenant
	MliDurationBonusPoints = 30

	// MliTargetDCR is the debt coverage ratio lenders target
	MliTargetDCR = 1.30

	// MliCmhcMinDCR is the CMHC minimum debt coverage ratio
	MliCmhcMinDCR = 1.10

	// MliStressFloorPct is the conventional qualifying floor rate in percent;
	// applied only to terms of MliStressTermYears or longer
	MliStressFloorPct = 6.5

	// MliStressTermYears is the minimum term subject to the qualifying floor
	MliStressTermYears = 10

	// MliConventionalLTV is the fallback loan-to-value without a tier
	MliConventionalLTV = 0.75

	// MliConventionalAmort is the fallback amortization without a tier
	MliConventionalAmort = 25

	// MliDefaultPrice is the fallback multifamily purchase price
	MliDefaultPrice = 1400000.0

	// MliDefaultRate is the fallback contract rate in percent
	MliDefaultRate = 4.25

	// MliDefaultTermYears is the fallback mortgage term
	MliDefaultTermYears = 5

	// AffordableRentIncomeShare is the share of median renter income defining
	// an affordable rent
	AffordableRentIncomeShare = 0.30
)

// Default monthly insurance by property category
const (
	DefaultCondoInsurance    = 50.0
	DefaultDetachedInsurance = 150.0
	DefaultOtherInsurance    = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "deal.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
