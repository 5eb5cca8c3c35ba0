// Package output provides utilities for formatting and displaying analysis results.
package output

import (
	"fmt"
	"io"

	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/format"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// severityMarker maps a signal severity to its terminal marker.
func severityMarker(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityGood:
		return "[+]"
	case analyzer.SeverityWarn:
		return "[!]"
	default:
		return "[x]"
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report
// for the three growth scenarios of one deal.
func PrettyFormat(w io.Writer, sc analyzer.ScenarioMetrics) {
	p := message.NewPrinter(language.English)
	m := sc.Mid
	in := m.Inputs
	mk := market.ByID(in.Market)

	fmt.Fprintf(w, "--- Verdict for %s deal in %s ---\n", in.Mode, mk.Label)
	fmt.Fprintf(w, "Score   | %d/100\n", m.Score)
	fmt.Fprintf(w, "Verdict | %s\n", m.Verdict)
	for _, s := range m.Signals {
		fmt.Fprintf(w, "%s %s\n", severityMarker(s.Severity), s.Message)
	}

	fmt.Fprintf(w, "\n--- Financing ---\n")
	fmt.Fprintf(w, "Purchase price      | %s\n", format.WholeCurrency(in.Price))
	fmt.Fprintf(w, "Down payment        | %s (%s)\n", format.WholeCurrency(m.DownPayment), format.Percent(in.DownPaymentPct))
	if m.CmhcAmount > 0 {
		fmt.Fprintf(w, "CMHC premium        | %s (%s)\n", format.WholeCurrency(m.CmhcAmount), format.Percent(m.CmhcRate))
	}
	fmt.Fprintf(w, "Total mortgage      | %s\n", format.WholeCurrency(m.TotalMortgage))
	fmt.Fprintf(w, "Monthly payment     | %s\n", format.Currency(m.MonthlyPayment))
	fmt.Fprintf(w, "Closing costs       | %s\n", format.WholeCurrency(m.ClosingCosts))
	fmt.Fprintf(w, "Cash invested       | %s\n", format.WholeCurrency(m.CashInvested))

	if m.HasOwnerUnit {
		fmt.Fprintf(w, "\n--- Monthly cost of ownership ---\n")
		fmt.Fprintf(w, "Mortgage payment    | %s\n", format.Currency(m.MonthlyPayment))
		fmt.Fprintf(w, "Property tax        | %s\n", format.Currency(m.MonthlyTax))
		if m.MonthlyCondoFee > 0 {
			fmt.Fprintf(w, "Condo fee           | %s\n", format.Currency(m.MonthlyCondoFee))
		}
		fmt.Fprintf(w, "Insurance           | %s\n", format.Currency(m.MonthlyInsurance))
		fmt.Fprintf(w, "Utilities           | %s\n", format.Currency(m.MonthlyUtilities))
		fmt.Fprintf(w, "Total               | %s\n", format.Currency(m.OwnerMonthlyCost))
		if m.HasRentals {
			fmt.Fprintf(w, "Net of rental income| %s\n", format.Currency(m.NetOwnerMonthlyCost))
		}
		fmt.Fprintf(w, "Current rent        | %s\n", format.Currency(in.CurrentRent))
		fmt.Fprintf(w, "Monthly savings     | %s\n", format.Currency(m.RentSavingsWithOffset))
	}

	if m.HasRentals {
		fmt.Fprintf(w, "\n--- Rental operations (annual) ---\n")
		fmt.Fprintf(w, "Gross rent          | %s\n", format.WholeCurrency(m.GrossAnnualRent))
		fmt.Fprintf(w, "Effective income    | %s\n", format.WholeCurrency(m.EffectiveGrossIncome))
		fmt.Fprintf(w, "Operating expenses  | %s\n", format.WholeCurrency(m.OperatingExpenses))
		fmt.Fprintf(w, "Net operating income| %s\n", format.WholeCurrency(m.NetOperatingIncome))
		fmt.Fprintf(w, "Cap rate            | %s\n", format.Percent(m.CapRate))
		fmt.Fprintf(w, "Monthly cash flow   | %s\n", format.Currency(m.MonthlyCashFlow))
		fmt.Fprintf(w, "Cash-on-cash        | %s\n", format.Percent(m.CashOnCash))
		fmt.Fprintf(w, "DSCR                | %s\n", format.Ratio(m.DSCR))
		fmt.Fprintf(w, "GRM                 | %s\n", format.Ratio(m.GRM))
		fmt.Fprintf(w, "Break-even occupancy| %s\n", format.Percent(m.BreakEvenOccupancy))
	}

	fmt.Fprintf(w, "\n--- Equity projections ---\n")
	fmt.Fprintf(w, "Scenario | Growth | Value 5y      | Equity gain 5y | ROI 5y | Value 10y     | Equity gain 10y | ROI 10y\n")
	for _, row := range []struct {
		name string
		m    analyzer.DealMetrics
	}{
		{"low", sc.Low},
		{"mid", sc.Mid},
		{"high", sc.High},
	} {
		_, _ = p.Fprintf(w, "%-8s | %s | %-13s | %-14s | %s | %-13s | %-15s | %s\n",
			row.name, format.Percent(row.m.GrowthRate),
			format.WholeCurrency(row.m.Value5), format.WholeCurrency(row.m.EquityGain5), format.Percent(row.m.ROI5),
			format.WholeCurrency(row.m.Value10), format.WholeCurrency(row.m.EquityGain10), format.Percent(row.m.ROI10))
	}

	fmt.Fprintf(w, "\n--- Amortization (mid growth) ---\n")
	fmt.Fprintf(w, "Horizon | Principal paid | Interest paid | Balance\n")
	fmt.Fprintf(w, "5y      | %-14s | %-13s | %s\n",
		format.WholeCurrency(m.Schedule5.CumulativePrincipal), format.WholeCurrency(m.Schedule5.CumulativeInterest), format.WholeCurrency(m.Schedule5.EndingBalance))
	fmt.Fprintf(w, "10y     | %-14s | %-13s | %s\n",
		format.WholeCurrency(m.Schedule10.CumulativePrincipal), format.WholeCurrency(m.Schedule10.CumulativeInterest), format.WholeCurrency(m.Schedule10.EndingBalance))

	fmt.Fprintf(w, "\n--- Down payment scenarios ---\n")
	fmt.Fprintf(w, "Down    | Amount        | CMHC premium  | Payment       | Cash flow\n")
	for _, row := range analyzer.SensitivityTable(in) {
		fmt.Fprintf(w, "%-7s | %-13s | %-13s | %-13s | %s\n",
			format.Percent(row.DownPaymentPct), format.WholeCurrency(row.DownPayment),
			format.WholeCurrency(row.CmhcAmount), format.Currency(row.MonthlyPayment),
			format.Currency(row.MonthlyCashFlow))
	}

	// A pure owner-occupied home is a principal residence; any deal with
	// rental units faces the gains tax on disposition.
	principalResidence := in.Mode == analyzer.ModeOwner && !m.HasRentals
	fmt.Fprintf(w, "\n--- Sale projections (mid growth) ---\n")
	fmt.Fprintf(w, "Year | Sale price    | Commission    | Gains tax     | Net proceeds\n")
	for _, sale := range []SaleProjection{
		ProjectSale(mk.Province, 5, in.Price, m.Value5, m.Schedule5.EndingBalance, 0, principalResidence),
		ProjectSale(mk.Province, 10, in.Price, m.Value10, m.Schedule10.EndingBalance, 0, principalResidence),
	} {
		fmt.Fprintf(w, "%-4d | %-13s | %-13s | %-13s | %s\n",
			sale.Years, format.WholeCurrency(sale.SalePrice), format.WholeCurrency(sale.Commission.Total),
			format.WholeCurrency(sale.CapitalGainsTax.Tax), format.WholeCurrency(sale.NetProceeds))
	}
}

// CsvFormat outputs the scenario metrics in comma-separated value format,
// one metric per row across the three growth scenarios.
func CsvFormat(w io.Writer, sc analyzer.ScenarioMetrics) {
	fmt.Fprintf(w, `"metric","low","mid","high"`)
	fmt.Fprintf(w, "\n")
	rows := []struct {
		name string
		get  func(analyzer.DealMetrics) float64
	}{
		{"growthRate", func(m analyzer.DealMetrics) float64 { return m.GrowthRate }},
		{"downPayment", func(m analyzer.DealMetrics) float64 { return m.DownPayment }},
		{"cmhcAmount", func(m analyzer.DealMetrics) float64 { return m.CmhcAmount }},
		{"totalMortgage", func(m analyzer.DealMetrics) float64 { return m.TotalMortgage }},
		{"monthlyPayment", func(m analyzer.DealMetrics) float64 { return m.MonthlyPayment }},
		{"cashInvested", func(m analyzer.DealMetrics) float64 { return m.CashInvested }},
		{"ownerMonthlyCost", func(m analyzer.DealMetrics) float64 { return m.OwnerMonthlyCost }},
		{"netOperatingIncome", func(m analyzer.DealMetrics) float64 { return m.NetOperatingIncome }},
		{"capRate", func(m analyzer.DealMetrics) float64 { return m.CapRate }},
		{"monthlyCashFlow", func(m analyzer.DealMetrics) float64 { return m.MonthlyCashFlow }},
		{"cashOnCash", func(m analyzer.DealMetrics) float64 { return m.CashOnCash }},
		{"dscr", func(m analyzer.DealMetrics) float64 { return m.DSCR }},
		{"value5", func(m analyzer.DealMetrics) float64 { return m.Value5 }},
		{"equityGain5", func(m analyzer.DealMetrics) float64 { return m.EquityGain5 }},
		{"roi5", func(m analyzer.DealMetrics) float64 { return m.ROI5 }},
		{"value10", func(m analyzer.DealMetrics) float64 { return m.Value10 }},
		{"equityGain10", func(m analyzer.DealMetrics) float64 { return m.EquityGain10 }},
		{"roi10", func(m analyzer.DealMetrics) float64 { return m.ROI10 }},
		{"score", func(m analyzer.DealMetrics) float64 { return float64(m.Score) }},
	}
	for _, row := range rows {
		fmt.Fprintf(w, `"%s","%.4f","%.4f","%.4f"`, row.name, row.get(sc.Low), row.get(sc.Mid), row.get(sc.High))
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, `"verdict","%s","%s","%s"`, sc.Low.Verdict, sc.Mid.Verdict, sc.High.Verdict)
	fmt.Fprintf(w, "\n")
}

// CsvSensitivity outputs the down-payment sensitivity table in CSV format.
func CsvSensitivity(w io.Writer, rows []analyzer.SensitivityRow) {
	fmt.Fprintf(w, `"downPaymentPct","downPayment","cmhcAmount","monthlyPayment","cashInvested","monthlyCashFlow"`)
	fmt.Fprintf(w, "\n")
	for _, row := range rows {
		fmt.Fprintf(w, `"%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			row.DownPaymentPct*constants.PercentageMultiplier, row.DownPayment, row.CmhcAmount,
			row.MonthlyPayment, row.CashInvested, row.MonthlyCashFlow)
		fmt.Fprintf(w, "\n")
	}
}
