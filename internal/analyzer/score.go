package analyzer

import (
	"fmt"
	"math"

	"github.com/tubby124/Deal-Analyzer/pkg/format"
	"github.com/tubby124/Deal-Analyzer/pkg/mathutil"
)

// Severity classifies a signal for rendering. Trigger conditions are part
// of the scoring contract; the message text is presentation.
type Severity string

const (
	SeverityGood Severity = "good"
	SeverityWarn Severity = "warn"
	SeverityBad  Severity = "bad"
)

// Signal is one human-readable observation emitted by a scoring branch.
type Signal struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// scoreDeal runs the point-accumulation scoring for the deal. Each branch
// adds points and emits a signal; the branch taken depends on the occupancy
// shape (owner/investor, with or without a hybrid unit).
func scoreDeal(in DealInputs, m *DealMetrics) (int, []Signal) {
	if in.Mode == ModeOwner {
		if m.HasRentals {
			return scoreHybridOwner(in, m)
		}
		return scoreOwner(m)
	}
	if m.HasOwnerUnit {
		return scoreHybridInvestor(in, m)
	}
	return scoreInvestor(m)
}

func scoreOwner(m *DealMetrics) (int, []Signal) {
	score := 0
	var signals []Signal

	if m.RentSavings > 0 {
		score += 40
		signals = append(signals, Signal{
			Message:  "Saves " + format.WholeCurrency(m.RentSavings) + "/mo vs renting",
			Severity: SeverityGood,
		})
	} else {
		score += 10
		signals = append(signals, Signal{
			Message:  "Costs " + format.WholeCurrency(-m.RentSavings) + "/mo more than rent",
			Severity: SeverityBad,
		})
	}

	if m.EquityGain5 > 0 {
		score += 30
		signals = append(signals, Signal{
			Message:  format.WholeCurrency(m.EquityGain5) + " equity gain in 5 yrs",
			Severity: SeverityGood,
		})
	}

	if m.Schedule5.CumulativePrincipal > m.Schedule5.CumulativeInterest {
		score += 15
		signals = append(signals, Signal{Message: "More principal than interest (5yr)", Severity: SeverityGood})
	} else {
		score += 5
		interestShare := math.Round(100 * mathutil.SafeRatio(m.Schedule5.CumulativeInterest, m.Schedule5.TotalPaid))
		signals = append(signals, Signal{
			Message:  fmt.Sprintf("%.0f%% of payments go to interest", interestShare),
			Severity: SeverityWarn,
		})
	}

	if m.CmhcAmount == 0 {
		score += 15
		signals = append(signals, Signal{Message: "No CMHC - 20%+ down", Severity: SeverityGood})
	} else {
		score += 5
		signals = append(signals, Signal{
			Message:  "CMHC adds " + format.WholeCurrency(m.CmhcAmount),
			Severity: SeverityWarn,
		})
	}

	return score, signals
}

func scoreHybridOwner(in DealInputs, m *DealMetrics) (int, []Signal) {
	score := 0
	var signals []Signal

	savingsRatio := m.RentSavingsWithOffset / in.CurrentRent
	offsetPct := math.Round(100 * mathutil.SafeRatio(m.MonthlyRentalIncome, m.OwnerMonthlyCost))
	switch {
	case savingsRatio > 0.4:
		score += 45
		signals = append(signals, Signal{
			Message:  "Live much cheaper than renting (" + format.WholeCurrency(m.NetOwnerMonthlyCost) + "/mo net)",
			Severity: SeverityGood,
		})
	case savingsRatio > 0.2:
		score += 35
		signals = append(signals, Signal{
			Message:  "Save " + format.WholeCurrency(m.RentSavingsWithOffset) + "/mo vs renting with rental offset",
			Severity: SeverityGood,
		})
	case savingsRatio > 0:
		score += 25
		signals = append(signals, Signal{
			Message:  fmt.Sprintf("Rentals offset %.0f%% of costs", offsetPct),
			Severity: SeverityGood,
		})
	}

	if m.MonthlyRentalIncome >= m.OwnerMonthlyCost*0.5 {
		score += 20
		signals = append(signals, Signal{
			Message:  fmt.Sprintf("Rentals cover %.0f%% of your costs", offsetPct),
			Severity: SeverityGood,
		})
	} else if m.MonthlyRentalIncome >= m.OwnerMonthlyCost*0.3 {
		score += 10
		signals = append(signals, Signal{
			Message:  fmt.Sprintf("Rentals help with %.0f%% of costs", offsetPct),
			Severity: SeverityWarn,
		})
	}

	if m.EquityGain5 > 0 {
		score += 20
		signals = append(signals, Signal{
			Message:  format.WholeCurrency(m.EquityGain5) + " equity gain in 5 yrs",
			Severity: SeverityGood,
		})
	}

	if m.Schedule5.CumulativePrincipal > m.Schedule5.CumulativeInterest {
		score += 15
		signals = append(signals, Signal{Message: "More principal than interest (5yr)", Severity: SeverityGood})
	}

	return score, signals
}

func scoreInvestor(m *DealMetrics) (int, []Signal) {
	score := 0
	var signals []Signal

	switch {
	case m.CapRate >= 0.07:
		score += 30
		signals = append(signals, Signal{Message: "Cap rate 7%+", Severity: SeverityGood})
	case m.CapRate >= 0.05:
		score += 20
		signals = append(signals, Signal{Message: "Cap rate 5-7%", Severity: SeverityWarn})
	default:
		score += 5
		signals = append(signals, Signal{Message: "Cap rate under 5%", Severity: SeverityBad})
	}

	if m.AnnualCashFlow > 0 {
		score += 25
		signals = append(signals, Signal{Message: "Positive cash flow", Severity: SeverityGood})
	} else {
		signals = append(signals, Signal{Message: "Negative cash flow", Severity: SeverityBad})
	}

	switch {
	case m.DSCR >= 1.25:
		score += 20
		signals = append(signals, Signal{Message: "DSCR 1.25+", Severity: SeverityGood})
	case m.DSCR >= 1.0:
		score += 10
		signals = append(signals, Signal{Message: "DSCR 1.0-1.25", Severity: SeverityWarn})
	default:
		signals = append(signals, Signal{Message: "DSCR under 1.0", Severity: SeverityBad})
	}

	switch {
	case m.CashOnCash >= 0.08:
		score += 25
		signals = append(signals, Signal{Message: "CoC 8%+", Severity: SeverityGood})
	case m.CashOnCash >= 0.04:
		score += 15
		signals = append(signals, Signal{Message: "CoC 4-8%", Severity: SeverityWarn})
	default:
		score += 5
		signals = append(signals, Signal{Message: "CoC under 4%", Severity: SeverityBad})
	}

	return score, signals
}

func scoreHybridInvestor(in DealInputs, m *DealMetrics) (int, []Signal) {
	score := 0
	var signals []Signal

	livingSavings := in.CurrentRent - m.NetOwnerMonthlyCost
	if livingSavings > in.CurrentRent*0.5 {
		score += 30
		signals = append(signals, Signal{
			Message:  "Live almost free (" + format.WholeCurrency(m.NetOwnerMonthlyCost) + "/mo net cost)",
			Severity: SeverityGood,
		})
	} else if livingSavings > 0 {
		score += 20
		signals = append(signals, Signal{
			Message:  "Save " + format.WholeCurrency(livingSavings) + "/mo on living costs",
			Severity: SeverityGood,
		})
	}

	// Lower cap-rate thresholds: one unit produces no income here.
	if m.CapRate >= 0.04 {
		score += 20
		signals = append(signals, Signal{Message: "Cap rate 4%+ (good for owner-occupied)", Severity: SeverityGood})
	} else if m.CapRate >= 0.02 {
		score += 10
		signals = append(signals, Signal{Message: "Cap rate 2-4% (acceptable for owner-occupied)", Severity: SeverityWarn})
	}

	if m.AnnualCashFlow+livingSavings*12 > 0 {
		score += 25
		signals = append(signals, Signal{
			Message:  "Positive total return (investment + living savings)",
			Severity: SeverityGood,
		})
	}

	if m.CmhcAmount > 0 {
		score += 15
		signals = append(signals, Signal{Message: "Eligible for CMHC as owner-occupied", Severity: SeverityGood})
	}

	return score, signals
}

// verdict maps a score to its tier label. Thresholds are shared across
// modes; only the label text differs.
func verdict(score int, owner bool) string {
	switch {
	case score >= 75:
		if owner {
			return "GREAT BUY"
		}
		return "STRONG BUY"
	case score >= 55:
		if owner {
			return "GOOD DEAL"
		}
		return "WORTH CONSIDERING"
	case score >= 35:
		if owner {
			return "FAIR"
		}
		return "MARGINAL"
	default:
		return "PASS"
	}
}
