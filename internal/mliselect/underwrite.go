package mliselect

import (
	"github.com/tubby124/Deal-Analyzer/pkg/cmhc"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/finance"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
	"github.com/tubby124/Deal-Analyzer/pkg/mathutil"
)

// HoldResult is one hold-period projection under one growth assumption.
type HoldResult struct {
	Years              int     `json:"years"`
	GrowthRate         float64 `json:"growthRate"`
	FutureValue        float64 `json:"futureValue"`
	RemainingBalance   float64 `json:"remainingBalance"`
	Equity             float64 `json:"equity"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	TotalReturn        float64 `json:"totalReturn"`
	IRR                float64 `json:"irr"`
}

// HoldScenarios groups the three growth assumptions for one horizon.
type HoldScenarios struct {
	Years int        `json:"years"`
	Low   HoldResult `json:"low"`
	Mid   HoldResult `json:"mid"`
	High  HoldResult `json:"high"`
}

// Result is the full underwriting output record.
type Result struct {
	Inputs Inputs `json:"inputs"`

	// Points and tier
	TotalPoints  int    `json:"totalPoints"`
	Tier         Tier   `json:"tier"`
	TierAchieved bool   `json:"tierAchieved"`

	// Financing
	LoanToValue       float64 `json:"loanToValue"`
	AmortizationYears int     `json:"amortizationYears"`
	PremiumRate       float64 `json:"premiumRate"`
	LoanAmount        float64 `json:"loanAmount"`
	PremiumFee        float64 `json:"premiumFee"`
	TotalMortgage     float64 `json:"totalMortgage"`
	DownPayment       float64 `json:"downPayment"`
	MonthlyPayment    float64 `json:"monthlyPayment"`
	AnnualDebtService float64 `json:"annualDebtService"`
	ClosingCosts      float64 `json:"closingCosts"`
	CashInvested      float64 `json:"cashInvested"`

	// Operating
	UnitCount            int     `json:"unitCount"`
	GrossMonthlyRent     float64 `json:"grossMonthlyRent"`
	GrossAnnualRent      float64 `json:"grossAnnualRent"`
	VacancyRate          float64 `json:"vacancyRate"`
	EffectiveGrossIncome float64 `json:"effectiveGrossIncome"`
	ManagementCost       float64 `json:"managementCost"`
	InsuranceCost        float64 `json:"insuranceCost"`
	MaintenanceCost      float64 `json:"maintenanceCost"`
	TaxCost              float64 `json:"taxCost"`
	UtilitiesCost        float64 `json:"utilitiesCost"`
	OperatingExpenses    float64 `json:"operatingExpenses"`
	NetOperatingIncome   float64 `json:"netOperatingIncome"`
	CapRate              float64 `json:"capRate"`
	PricePerDoor         float64 `json:"pricePerDoor"`
	AffordableRent       float64 `json:"affordableRent"`

	// Debt coverage
	DCR            float64 `json:"dcr"`
	StressRate     float64 `json:"stressRate"`
	StressDCR      float64 `json:"stressDcr"`
	StressApplied  bool    `json:"stressApplied"`

	// Rent-gap solver (to reach the lender target DCR)
	RequiredNOI       float64 `json:"requiredNoi"`
	RequiredEGI       float64 `json:"requiredEgi"`
	RequiredGrossRent float64 `json:"requiredGrossRent"`
	RentGapMonthly    float64 `json:"rentGapMonthly"`
	RentGapPerUnit    float64 `json:"rentGapPerUnit"`

	// Cash flow
	AnnualCashFlow     float64 `json:"annualCashFlow"`
	MonthlyCashFlow    float64 `json:"monthlyCashFlow"`
	CashFlowPerUnit    float64 `json:"cashFlowPerUnit"`
	CashOnCash         float64 `json:"cashOnCash"`

	// Projections
	Holds []HoldScenarios `json:"holds"`

	// Advisory outputs
	Signals   []Signal `json:"signals"`
	Checklist []string `json:"checklist"`
}

// Underwrite applies defaults and runs the full underwriting pipeline.
func Underwrite(inputs Inputs) Result {
	in := inputs.withDefaults()
	mk := market.MliByID(in.Market)

	r := Result{Inputs: in}
	r.TotalPoints = TotalPoints(in)
	r.Tier, r.TierAchieved = TierFor(r.TotalPoints)
	r.UnitCount = in.unitCount()
	r.AffordableRent = mk.AffordableRent()

	// Financing terms: tier maximums unless explicitly overridden; no tier
	// means conventional financing with no premium.
	if in.LoanToValueOverride > 0 {
		r.LoanToValue = in.LoanToValueOverride
	} else if r.TierAchieved {
		r.LoanToValue = r.Tier.MaxLTV(in.NewConstruction)
	} else {
		r.LoanToValue = constants.MliConventionalLTV
	}
	if in.AmortizationYears > 0 {
		r.AmortizationYears = in.AmortizationYears
	} else if r.TierAchieved {
		r.AmortizationYears = r.Tier.MaxAmortYears
	} else {
		r.AmortizationYears = constants.MliConventionalAmort
	}
	if r.TierAchieved {
		r.PremiumRate = cmhc.MliSelectPremiumRate(r.LoanToValue, r.AmortizationYears, r.Tier.PremiumDiscount)
	}

	r.LoanAmount = in.Price * r.LoanToValue
	r.PremiumFee = r.LoanAmount * r.PremiumRate
	r.TotalMortgage = r.LoanAmount + r.PremiumFee
	r.DownPayment = in.Price - r.LoanAmount
	r.MonthlyPayment = finance.MonthlyPayment(r.TotalMortgage, in.ContractRate, r.AmortizationYears)
	r.AnnualDebtService = r.MonthlyPayment * constants.MonthsPerYear
	r.ClosingCosts = in.Price * constants.DefaultClosingCostPct
	r.CashInvested = r.DownPayment + r.ClosingCosts

	// Operating
	var grossMonthly float64
	for _, u := range in.Units {
		rent := u.Rent
		if rent == 0 {
			rent = mk.Rent(u.Type)
		}
		grossMonthly += rent * float64(u.Count)
	}
	r.GrossMonthlyRent = grossMonthly
	r.GrossAnnualRent = grossMonthly * constants.MonthsPerYear
	r.VacancyRate = mk.VacancyRate
	if in.VacancyRateOverride > 0 {
		r.VacancyRate = in.VacancyRateOverride
	}
	r.EffectiveGrossIncome = r.GrossAnnualRent * (1 - r.VacancyRate)

	mgmtPct := mk.MgmtPct
	if in.MgmtPctOverride > 0 {
		mgmtPct = in.MgmtPctOverride
	}
	r.ManagementCost = r.EffectiveGrossIncome * mgmtPct
	r.InsuranceCost = in.AnnualInsurance
	if r.InsuranceCost == 0 {
		r.InsuranceCost = mk.InsurancePerUnit * float64(r.UnitCount)
	}
	r.MaintenanceCost = in.AnnualMaintenance
	if r.MaintenanceCost == 0 {
		r.MaintenanceCost = mk.MaintPerUnit * float64(r.UnitCount)
	}
	r.TaxCost = in.AnnualTax
	if r.TaxCost == 0 {
		r.TaxCost = in.Price * mk.TaxRate
	}
	r.UtilitiesCost = in.AnnualUtilities
	r.OperatingExpenses = r.ManagementCost + r.InsuranceCost + r.MaintenanceCost + r.TaxCost + r.UtilitiesCost
	r.NetOperatingIncome = r.EffectiveGrossIncome - r.OperatingExpenses
	r.CapRate = mathutil.SafeRatio(r.NetOperatingIncome, in.Price)
	if r.UnitCount > 0 {
		r.PricePerDoor = in.Price / float64(r.UnitCount)
	}

	// Dual DCR. The stress floor applies only to terms of 10+ years;
	// 5-year insured terms qualify at the contract rate unmodified.
	r.DCR = mathutil.SafeRatio(r.NetOperatingIncome, r.AnnualDebtService)
	r.StressRate = in.ContractRate
	if in.TermYears >= constants.MliStressTermYears {
		r.StressRate = mathutil.Max(in.ContractRate, constants.MliStressFloorPct)
		r.StressApplied = true
	}
	stressPayment := finance.MonthlyPayment(r.TotalMortgage, r.StressRate, r.AmortizationYears)
	r.StressDCR = mathutil.SafeRatio(r.NetOperatingIncome, stressPayment*constants.MonthsPerYear)

	// Rent-gap solver: invert the NOI formula for the target DCR. The
	// relationship is linear, so no iteration is needed.
	r.RequiredNOI = r.AnnualDebtService * constants.MliTargetDCR
	r.RequiredEGI = r.RequiredNOI + r.OperatingExpenses
	if r.VacancyRate < 1 {
		r.RequiredGrossRent = r.RequiredEGI / (1 - r.VacancyRate)
	}
	r.RentGapMonthly = mathutil.Max(0, r.RequiredGrossRent/constants.MonthsPerYear-r.GrossMonthlyRent)
	if r.UnitCount > 0 {
		r.RentGapPerUnit = r.RentGapMonthly / float64(r.UnitCount)
	}

	// Cash flow
	r.AnnualCashFlow = r.NetOperatingIncome - r.AnnualDebtService
	r.MonthlyCashFlow = r.AnnualCashFlow / constants.MonthsPerYear
	if r.UnitCount > 0 {
		r.CashFlowPerUnit = r.MonthlyCashFlow / float64(r.UnitCount)
	}
	r.CashOnCash = mathutil.SafeRatio(r.AnnualCashFlow, r.CashInvested)

	// Hold projections
	for _, years := range []int{10, 15, 20} {
		r.Holds = append(r.Holds, HoldScenarios{
			Years: years,
			Low:   r.holdAnalysis(in, years, mk.Growth.Low),
			Mid:   r.holdAnalysis(in, years, mk.Growth.Mid),
			High:  r.holdAnalysis(in, years, mk.Growth.High),
		})
	}

	r.Signals = dealSignals(&r, mk)
	r.Checklist = checklist(in)

	return r
}

func (r *Result) holdAnalysis(in Inputs, years int, growth float64) HoldResult {
	h := HoldResult{Years: years, GrowthRate: growth}
	h.FutureValue = finance.FutureValue(in.Price, growth, years)
	h.RemainingBalance = finance.Amortize(r.TotalMortgage, in.ContractRate, r.AmortizationYears, years).EndingBalance
	h.Equity = h.FutureValue - h.RemainingBalance
	h.CumulativeCashFlow = r.AnnualCashFlow * float64(years)
	h.TotalReturn = h.Equity - r.CashInvested + h.CumulativeCashFlow
	h.IRR = finance.AnnualizedReturn(r.CashInvested, h.TotalReturn, years)
	return h
}
