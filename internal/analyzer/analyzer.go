package analyzer

import (
	"github.com/tubby124/Deal-Analyzer/pkg/cmhc"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/finance"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
	"github.com/tubby124/Deal-Analyzer/pkg/mathutil"
)

// DealMetrics is the full output record of one analysis run. Every ratio
// guards a non-positive denominator by reporting 0.
type DealMetrics struct {
	Inputs DealInputs `json:"inputs"`

	// Financing
	DownPayment       float64 `json:"downPayment"`
	CmhcRate          float64 `json:"cmhcRate"`
	CmhcAmount        float64 `json:"cmhcAmount"`
	TotalMortgage     float64 `json:"totalMortgage"`
	MonthlyPayment    float64 `json:"monthlyPayment"`
	AnnualDebtService float64 `json:"annualDebtService"`
	ClosingCosts      float64 `json:"closingCosts"`
	CashInvested      float64 `json:"cashInvested"`

	// Eligibility flags
	HasOwnerUnit      bool `json:"hasOwnerUnit"`
	HasRentals        bool `json:"hasRentals"`
	CmhcOwnerBenefit  bool `json:"cmhcOwnerBenefit"`
	InvestmentWarning bool `json:"investmentWarning"`

	// Carrying costs
	AnnualTax             float64 `json:"annualTax"`
	MonthlyTax            float64 `json:"monthlyTax"`
	MonthlyCondoFee       float64 `json:"monthlyCondoFee"`
	AnnualCondoFee        float64 `json:"annualCondoFee"`
	MonthlyInsurance      float64 `json:"monthlyInsurance"`
	AnnualInsurance       float64 `json:"annualInsurance"`
	MonthlyUtilities      float64 `json:"monthlyUtilities"`
	OwnerMonthlyCost      float64 `json:"ownerMonthlyCost"`
	NetOwnerMonthlyCost   float64 `json:"netOwnerMonthlyCost"`
	RentSavings           float64 `json:"rentSavings"`
	RentSavingsWithOffset float64 `json:"rentSavingsWithOffset"`

	// Income and operations
	MonthlyRentalIncome  float64 `json:"monthlyRentalIncome"`
	GrossAnnualRent      float64 `json:"grossAnnualRent"`
	EffectiveGrossIncome float64 `json:"effectiveGrossIncome"`
	AnnualUtilities      float64 `json:"annualUtilities"`
	MaintenanceReserve   float64 `json:"maintenanceReserve"`
	OperatingExpenses    float64 `json:"operatingExpenses"`
	NetOperatingIncome   float64 `json:"netOperatingIncome"`

	// Return ratios
	CapRate            float64 `json:"capRate"`
	AnnualCashFlow     float64 `json:"annualCashFlow"`
	MonthlyCashFlow    float64 `json:"monthlyCashFlow"`
	CashOnCash         float64 `json:"cashOnCash"`
	DSCR               float64 `json:"dscr"`
	GRM                float64 `json:"grm"`
	BreakEvenOccupancy float64 `json:"breakEvenOccupancy"`
	LeveragePremium    float64 `json:"leveragePremium"`

	// Projections
	GrowthRate     float64                    `json:"growthRate"`
	Schedule5      finance.AmortizationResult `json:"schedule5"`
	Schedule10     finance.AmortizationResult `json:"schedule10"`
	Value5         float64                    `json:"value5"`
	Value10        float64                    `json:"value10"`
	Equity5        float64                    `json:"equity5"`
	Equity10       float64                    `json:"equity10"`
	EquityGain5    float64                    `json:"equityGain5"`
	EquityGain10   float64                    `json:"equityGain10"`
	NetAdvantage5  float64                    `json:"netAdvantage5"`
	NetAdvantage10 float64                    `json:"netAdvantage10"`
	ROI5           float64                    `json:"roi5"`
	ROI10          float64                    `json:"roi10"`

	// Scoring
	Score   int      `json:"score"`
	Verdict string   `json:"verdict"`
	Signals []Signal `json:"signals"`
}

// ScenarioMetrics is the analysis repeated under each market growth
// assumption. When the growth rate is explicitly overridden only Mid is
// meaningful and Low/High repeat it.
type ScenarioMetrics struct {
	Low  DealMetrics `json:"low"`
	Mid  DealMetrics `json:"mid"`
	High DealMetrics `json:"high"`
}

// Analyze applies defaults and computes the full metrics record under the
// effective growth rate (override, or the market mid scenario).
func Analyze(inputs DealInputs) DealMetrics {
	in := inputs.withDefaults()
	mk := market.ByID(in.Market)
	growth := in.GrowthRate
	if growth == 0 {
		growth = mk.Growth.Mid
	}
	return analyze(in, mk, growth)
}

// AnalyzeScenarios computes the metrics under the market's low, mid, and
// high growth assumptions. An explicit growth override collapses all three.
func AnalyzeScenarios(inputs DealInputs) ScenarioMetrics {
	in := inputs.withDefaults()
	mk := market.ByID(in.Market)
	if in.GrowthRate != 0 {
		m := analyze(in, mk, in.GrowthRate)
		return ScenarioMetrics{Low: m, Mid: m, High: m}
	}
	return ScenarioMetrics{
		Low:  analyze(in, mk, mk.Growth.Low),
		Mid:  analyze(in, mk, mk.Growth.Mid),
		High: analyze(in, mk, mk.Growth.High),
	}
}

func analyze(in DealInputs, mk market.Profile, growth float64) DealMetrics {
	isOwner := in.Mode == ModeOwner
	isCondo := in.PropertyType == PropertyCondo
	hasOwnerUnit := in.hasOwnerUnit()
	rentals := in.rentalUnits()

	m := DealMetrics{
		Inputs:       in,
		GrowthRate:   growth,
		HasOwnerUnit: hasOwnerUnit,
		HasRentals:   len(rentals) > 0,
	}

	// Financing
	m.DownPayment = in.Price * in.DownPaymentPct
	baseLoan := in.Price - m.DownPayment
	elig := cmhc.Assess(in.Price, in.DownPaymentPct, isOwner, hasOwnerUnit)
	m.CmhcRate = elig.Rate
	m.CmhcOwnerBenefit = elig.OwnerOccupiedBenefit
	m.InvestmentWarning = elig.InvestmentWarning
	m.CmhcAmount = baseLoan * elig.Rate
	m.TotalMortgage = baseLoan + m.CmhcAmount
	m.MonthlyPayment = finance.MonthlyPayment(m.TotalMortgage, in.InterestRate, in.AmortizationYears)
	m.AnnualDebtService = m.MonthlyPayment * constants.MonthsPerYear
	m.ClosingCosts = in.Price * in.ClosingCostPct
	m.CashInvested = m.DownPayment + m.ClosingCosts

	// Carrying costs
	m.AnnualTax = in.AnnualTax
	if m.AnnualTax == 0 {
		m.AnnualTax = in.Price * mk.TaxRate
	}
	m.MonthlyTax = m.AnnualTax / constants.MonthsPerYear
	if isCondo {
		m.MonthlyCondoFee = in.MonthlyCondoFee
		if m.MonthlyCondoFee == 0 {
			m.MonthlyCondoFee = mk.CondoFee
		}
	}
	m.AnnualCondoFee = m.MonthlyCondoFee * constants.MonthsPerYear
	if in.AnnualInsurance > 0 {
		m.MonthlyInsurance = in.AnnualInsurance / constants.MonthsPerYear
	} else {
		switch in.PropertyType {
		case PropertyCondo:
			m.MonthlyInsurance = constants.DefaultCondoInsurance
		case PropertyDetached:
			m.MonthlyInsurance = constants.DefaultDetachedInsurance
		default:
			m.MonthlyInsurance = constants.DefaultOtherInsurance
		}
	}
	m.AnnualInsurance = m.MonthlyInsurance * constants.MonthsPerYear

	m.MonthlyUtilities = monthlyUtilities(in, isCondo)
	m.OwnerMonthlyCost = m.MonthlyPayment + m.MonthlyTax + m.MonthlyCondoFee + m.MonthlyInsurance + m.MonthlyUtilities

	// Income
	var grossMonthly float64
	for _, u := range rentals {
		if u.Rent > 0 {
			grossMonthly += u.Rent
		} else {
			grossMonthly += mk.Rent(u.Type)
		}
	}
	m.MonthlyRentalIncome = grossMonthly
	m.GrossAnnualRent = grossMonthly * constants.MonthsPerYear
	m.EffectiveGrossIncome = m.GrossAnnualRent * (1 - mk.VacancyRate)

	m.NetOwnerMonthlyCost = m.OwnerMonthlyCost - m.MonthlyRentalIncome
	m.RentSavings = in.CurrentRent - m.OwnerMonthlyCost
	m.RentSavingsWithOffset = in.CurrentRent - m.NetOwnerMonthlyCost

	// Operations
	if !in.TenantPaysUtilities {
		m.AnnualUtilities = m.MonthlyUtilities * constants.MonthsPerYear
	}
	m.MaintenanceReserve = m.EffectiveGrossIncome * (in.MaintenancePct / constants.PercentageMultiplier)
	m.OperatingExpenses = m.AnnualTax + m.AnnualCondoFee + m.AnnualUtilities + m.MaintenanceReserve
	m.NetOperatingIncome = m.EffectiveGrossIncome - m.OperatingExpenses

	// Ratios
	m.CapRate = mathutil.SafeRatio(m.NetOperatingIncome, in.Price)
	m.AnnualCashFlow = m.NetOperatingIncome - m.AnnualDebtService
	m.MonthlyCashFlow = m.AnnualCashFlow / constants.MonthsPerYear
	m.CashOnCash = mathutil.SafeRatio(m.AnnualCashFlow, m.CashInvested)
	m.DSCR = mathutil.SafeRatio(m.NetOperatingIncome, m.AnnualDebtService)
	m.GRM = mathutil.SafeRatio(in.Price, m.GrossAnnualRent)
	m.BreakEvenOccupancy = mathutil.SafeRatio(m.OperatingExpenses+m.AnnualDebtService, m.GrossAnnualRent)
	m.LeveragePremium = m.CashOnCash - m.CapRate

	// Projections
	m.Schedule5 = finance.Amortize(m.TotalMortgage, in.InterestRate, in.AmortizationYears, 5)
	m.Schedule10 = finance.Amortize(m.TotalMortgage, in.InterestRate, in.AmortizationYears, 10)
	m.Value5 = finance.FutureValue(in.Price, growth, 5)
	m.Value10 = finance.FutureValue(in.Price, growth, 10)
	m.Equity5 = m.Value5 - m.Schedule5.EndingBalance
	m.Equity10 = m.Value10 - m.Schedule10.EndingBalance
	m.EquityGain5 = m.Equity5 - m.CashInvested
	m.EquityGain10 = m.Equity10 - m.CashInvested
	m.NetAdvantage5 = m.EquityGain5 - (m.OwnerMonthlyCost-in.CurrentRent)*60
	m.NetAdvantage10 = m.EquityGain10 - (m.OwnerMonthlyCost-in.CurrentRent)*120
	m.ROI5 = finance.AnnualizedReturn(m.CashInvested, m.EquityGain5+m.AnnualCashFlow*5, 5)
	m.ROI10 = finance.AnnualizedReturn(m.CashInvested, m.EquityGain10+m.AnnualCashFlow*10, 10)

	m.Score, m.Signals = scoreDeal(in, &m)
	m.Verdict = verdict(m.Score, isOwner)

	return m
}

// monthlyUtilities resolves the owner utility baseline. Baseboard heating
// zeroes the gas default and raises the electric default by the winter
// heating cost.
func monthlyUtilities(in DealInputs, isCondo bool) float64 {
	var electric, water, gas float64
	switch {
	case in.PropertyType == PropertyDetached:
		electric, water, gas = 120, 80, 150
	case isCondo:
		electric, water, gas = 80, 60, 100
	default:
		electric, water, gas = 100, 70, 120
	}

	if in.HeatingType == HeatingBaseboard {
		baseboard := 300.0
		if in.PropertyType == PropertyDetached {
			baseboard = 400
		}
		electric += baseboard
		gas = 0
	}

	if in.MonthlyElectric > 0 {
		electric = in.MonthlyElectric
	}
	if in.MonthlyWater > 0 {
		water = in.MonthlyWater
	}
	if in.MonthlyGas > 0 {
		gas = in.MonthlyGas
	}
	return electric + water + gas
}

// SensitivityRow is one line of the down-payment sensitivity table.
type SensitivityRow struct {
	DownPaymentPct float64 `json:"downPaymentPct"`
	DownPayment    float64 `json:"downPayment"`
	CmhcAmount     float64 `json:"cmhcAmount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	CashInvested   float64 `json:"cashInvested"`
	MonthlyCashFlow float64 `json:"monthlyCashFlow"`
}

// SensitivityTable reruns the analysis across the standard down-payment
// steps, holding every other input fixed.
func SensitivityTable(inputs DealInputs) []SensitivityRow {
	steps := []float64{0.05, 0.10, 0.15, 0.20, 0.25}
	rows := make([]SensitivityRow, 0, len(steps))
	for _, pct := range steps {
		in := inputs
		in.DownPaymentPct = pct
		m := Analyze(in)
		rows = append(rows, SensitivityRow{
			DownPaymentPct:  pct,
			DownPayment:     m.DownPayment,
			CmhcAmount:      m.CmhcAmount,
			MonthlyPayment:  m.MonthlyPayment,
			CashInvested:    m.CashInvested,
			MonthlyCashFlow: m.MonthlyCashFlow,
		})
	}
	return rows
}
