package output

import (
	"fmt"
	"io"

	"github.com/tubby124/Deal-Analyzer/internal/mliselect"
	"github.com/tubby124/Deal-Analyzer/pkg/format"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

func statusMarker(s mliselect.Status) string {
	switch s {
	case mliselect.StatusPass:
		return "[+]"
	case mliselect.StatusWarn:
		return "[!]"
	default:
		return "[x]"
	}
}

// PrettyMliFormat outputs a human-readable MLI Select underwriting report.
func PrettyMliFormat(w io.Writer, r mliselect.Result) {
	mk := market.MliByID(r.Inputs.Market)

	fmt.Fprintf(w, "--- MLI Select underwriting for %d units in %s ---\n", r.UnitCount, mk.Label)
	fmt.Fprintf(w, "Points  | %d/250\n", r.TotalPoints)
	if r.TierAchieved {
		fmt.Fprintf(w, "Tier    | %s\n", r.Tier.Label)
	} else {
		fmt.Fprintf(w, "Tier    | none (conventional financing)\n")
	}

	fmt.Fprintf(w, "\n--- Financing ---\n")
	fmt.Fprintf(w, "Purchase price      | %s\n", format.WholeCurrency(r.Inputs.Price))
	fmt.Fprintf(w, "Loan-to-value       | %s\n", format.Percent(r.LoanToValue))
	fmt.Fprintf(w, "Amortization        | %d years\n", r.AmortizationYears)
	fmt.Fprintf(w, "Loan amount         | %s\n", format.WholeCurrency(r.LoanAmount))
	if r.PremiumFee > 0 {
		fmt.Fprintf(w, "Insurance premium   | %s (%s)\n", format.WholeCurrency(r.PremiumFee), format.Percent(r.PremiumRate))
	}
	fmt.Fprintf(w, "Down payment        | %s\n", format.WholeCurrency(r.DownPayment))
	fmt.Fprintf(w, "Monthly payment     | %s\n", format.Currency(r.MonthlyPayment))
	fmt.Fprintf(w, "Cash invested       | %s\n", format.WholeCurrency(r.CashInvested))

	fmt.Fprintf(w, "\n--- Operations (annual) ---\n")
	fmt.Fprintf(w, "Gross rent          | %s\n", format.WholeCurrency(r.GrossAnnualRent))
	fmt.Fprintf(w, "Effective income    | %s\n", format.WholeCurrency(r.EffectiveGrossIncome))
	fmt.Fprintf(w, "Operating expenses  | %s\n", format.WholeCurrency(r.OperatingExpenses))
	fmt.Fprintf(w, "Net operating income| %s\n", format.WholeCurrency(r.NetOperatingIncome))
	fmt.Fprintf(w, "Cap rate            | %s\n", format.Percent(r.CapRate))
	fmt.Fprintf(w, "Price per door      | %s\n", format.WholeCurrency(r.PricePerDoor))
	fmt.Fprintf(w, "Affordable rent     | %s\n", format.Currency(r.AffordableRent))

	fmt.Fprintf(w, "\n--- Debt coverage ---\n")
	fmt.Fprintf(w, "DCR (contract)      | %s\n", format.Ratio(r.DCR))
	if r.StressApplied {
		fmt.Fprintf(w, "DCR (stress %s)  | %s\n", format.Percent(r.StressRate/100), format.Ratio(r.StressDCR))
	}
	if r.RentGapMonthly > 0 {
		fmt.Fprintf(w, "Rent gap            | %s/mo (%s/unit) to reach DCR 1.30\n",
			format.Currency(r.RentGapMonthly), format.Currency(r.RentGapPerUnit))
	}
	fmt.Fprintf(w, "Monthly cash flow   | %s\n", format.Currency(r.MonthlyCashFlow))
	fmt.Fprintf(w, "Cash-on-cash        | %s\n", format.Percent(r.CashOnCash))

	fmt.Fprintf(w, "\n--- Hold projections ---\n")
	fmt.Fprintf(w, "Years | Scenario | Future value  | Equity        | Total return  | IRR\n")
	for _, hold := range r.Holds {
		for _, row := range []struct {
			name string
			h    mliselect.HoldResult
		}{
			{"low", hold.Low},
			{"mid", hold.Mid},
			{"high", hold.High},
		} {
			fmt.Fprintf(w, "%-5d | %-8s | %-13s | %-13s | %-13s | %s\n",
				hold.Years, row.name, format.WholeCurrency(row.h.FutureValue),
				format.WholeCurrency(row.h.Equity), format.WholeCurrency(row.h.TotalReturn),
				format.Percent(row.h.IRR))
		}
	}

	fmt.Fprintf(w, "\n--- Deal signals ---\n")
	for _, s := range r.Signals {
		fmt.Fprintf(w, "%s %s: %s\n", statusMarker(s.Status), s.Label, s.Detail)
	}

	fmt.Fprintf(w, "\n--- Qualification checklist ---\n")
	for _, item := range r.Checklist {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

// CsvMliFormat outputs the hold projections in comma-separated value format.
func CsvMliFormat(w io.Writer, r mliselect.Result) {
	fmt.Fprintf(w, `"years","scenario","growthRate","futureValue","remainingBalance","equity","cumulativeCashFlow","totalReturn","irr"`)
	fmt.Fprintf(w, "\n")
	for _, hold := range r.Holds {
		for _, row := range []struct {
			name string
			h    mliselect.HoldResult
		}{
			{"low", hold.Low},
			{"mid", hold.Mid},
			{"high", hold.High},
		} {
			fmt.Fprintf(w, `"%d","%s","%.4f","%.2f","%.2f","%.2f","%.2f","%.2f","%.4f"`,
				hold.Years, row.name, row.h.GrowthRate, row.h.FutureValue, row.h.RemainingBalance,
				row.h.Equity, row.h.CumulativeCashFlow, row.h.TotalReturn, row.h.IRR)
			fmt.Fprintf(w, "\n")
		}
	}
}
