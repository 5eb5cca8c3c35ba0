package mliselect

import (
	"fmt"

	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/format"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

// Status classifies a deal signal for rendering.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Signal is one line of the deal-signal summary: a labelled check with a
// pass/warn/fail status and a detail string. Trigger conditions are part of
// the underwriting contract; detail text is presentation.
type Signal struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail"`
}

func statusOf(pass, warn bool) Status {
	if pass {
		return StatusPass
	}
	if warn {
		return StatusWarn
	}
	return StatusFail
}

func dealSignals(r *Result, mk market.MliProfile) []Signal {
	var signals []Signal

	// Tier
	if r.TierAchieved {
		recourse := "Full Recourse"
		if r.Tier.LimitedRecourse {
			recourse = "Limited Recourse"
		}
		signals = append(signals, Signal{
			Label:  "MLI Select Tier",
			Status: StatusPass,
			Detail: fmt.Sprintf("%s (%d pts) - %s", r.Tier.Label, r.TotalPoints, recourse),
		})
	} else {
		signals = append(signals, Signal{
			Label:  "MLI Select Tier",
			Status: StatusFail,
			Detail: fmt.Sprintf("%d pts - need %d minimum", r.TotalPoints, constants.MliMinPoints),
		})
	}

	// Unit count
	signals = append(signals, Signal{
		Label:  "Minimum Unit Count",
		Status: statusOf(r.UnitCount >= constants.MliMinUnits, false),
		Detail: fmt.Sprintf("%d units (program minimum %d)", r.UnitCount, constants.MliMinUnits),
	})

	// Financing
	signals = append(signals, Signal{
		Label:  "LTV & Down Payment",
		Status: statusOf(r.TierAchieved, !r.TierAchieved),
		Detail: format.Percent(r.LoanToValue) + " LTV - " + format.WholeCurrency(r.DownPayment) + " down",
	})
	if r.TierAchieved {
		signals = append(signals, Signal{
			Label:  "Insurance Premium",
			Status: statusOf(r.PremiumRate < 0.055, r.PremiumRate < 0.07),
			Detail: format.Percent(r.PremiumRate) + " of loan = " + format.WholeCurrency(r.PremiumFee) + " fee",
		})
	}

	// Dual DCR
	dcrGood := r.DCR >= constants.MliTargetDCR
	dcrOk := r.DCR >= constants.MliCmhcMinDCR
	dcrDetail := format.Ratio(r.DCR) + "x - "
	switch {
	case dcrGood:
		dcrDetail += "lender-ready"
	case dcrOk:
		dcrDetail += "CMHC ok, lender may need rent increase"
	default:
		dcrDetail += fmt.Sprintf("below CMHC %.2f minimum", constants.MliCmhcMinDCR)
	}
	signals = append(signals, Signal{Label: "DCR - Contract Rate", Status: statusOf(dcrGood, dcrOk), Detail: dcrDetail})

	stressGood := r.StressDCR >= 1.20
	stressOk := r.StressDCR >= constants.MliCmhcMinDCR
	signals = append(signals, Signal{
		Label:  "DCR - Stress Test",
		Status: statusOf(stressGood, stressOk),
		Detail: fmt.Sprintf("%sx at %.2f%%", format.Ratio(r.StressDCR), r.StressRate),
	})

	// Cash flow
	signals = append(signals, Signal{
		Label:  "Monthly Cash Flow",
		Status: statusOf(r.AnnualCashFlow > 0, r.AnnualCashFlow >= -500),
		Detail: format.Currency(r.MonthlyCashFlow) + "/mo (" + format.Currency(r.CashFlowPerUnit) + "/unit)",
	})

	// Cap rate
	capGood := r.CapRate >= 0.06
	capOk := r.CapRate >= 0.05
	signals = append(signals, Signal{
		Label:  "Cap Rate",
		Status: statusOf(capGood, capOk),
		Detail: format.Percent(r.CapRate),
	})

	// Price per door
	doorGood := r.PricePerDoor > 0 && r.PricePerDoor <= mk.PricePerDoor.Mid
	doorOk := r.PricePerDoor > 0 && r.PricePerDoor <= mk.PricePerDoor.High
	signals = append(signals, Signal{
		Label:  "Price Per Door",
		Status: statusOf(doorGood, doorOk),
		Detail: format.WholeCurrency(r.PricePerDoor) + " vs " + mk.Label + " range " +
			format.WholeCurrency(mk.PricePerDoor.Low) + "-" + format.WholeCurrency(mk.PricePerDoor.High),
	})

	// Affordability covenant
	in := r.Inputs
	if in.AffordabilityPoints > 0 {
		covenant := "10-yr"
		if in.DurationBonus {
			covenant = "20-yr"
		}
		share := AffordabilityShare(in.AffordabilityPoints, in.NewConstruction)
		signals = append(signals, Signal{
			Label:  "Affordability Covenant",
			Status: StatusPass,
			Detail: fmt.Sprintf("%s - %.0f%% of units at or below %s/mo", covenant, share*100, format.WholeCurrency(r.AffordableRent)),
		})
	} else {
		signals = append(signals, Signal{
			Label:  "Affordability Covenant",
			Status: StatusFail,
			Detail: "None - no affordability points selected",
		})
	}

	return signals
}

// checklist is the broker qualification document list; the attestation
// items appear only when the matching points are claimed.
func checklist(in Inputs) []string {
	items := []string{
		"Corporate or personal financial statements (2-3 years)",
		"Personal T1 General returns for all named borrowers (2-3 years)",
		"Statement of Real Estate Owned (SREO) + personal net worth statement",
		"Minimum net worth: 25% of property value, absolute minimum $100,000",
		"Credit score >= 600 (lenders prefer 650+)",
		"5+ years multi-unit ownership / management experience, or retain a qualified PM",
		"Full CMHC appraisal: income, sales comparison, and cost approaches",
		"Current rent roll (signed, dated) + 2-3 year operating statements",
		"Phase I Environmental Site Assessment (ESA); Phase II if flagged",
		"Building Condition Assessment (BCA)",
		"Property tax notice (current year)",
		"Building insurance binder / declarations page",
		"Proof of equity / down payment source (bank statements)",
	}
	if in.AffordabilityPoints > 0 {
		items = append(items, "Affordability evidence: CMHC rent table + calculation worksheet")
	}
	if in.EnergyPoints > 0 {
		items = append(items, "Energy attestation signed by P.Eng, Architect, CET, or CEM")
	}
	if in.AccessibilityPoints > 0 {
		items = append(items, "Accessibility attestation (Architect or certified accessibility consultant)")
	}
	return items
}
