package mliselect

import "github.com/tubby124/Deal-Analyzer/pkg/constants"

// maxInsurableLTV is the program ceiling; LTV overrides are capped here.
const maxInsurableLTV = 0.95

// Tier describes one MLI Select benefit tier.
type Tier struct {
	Tier            int     `json:"tier"`
	Label           string  `json:"label"`
	MinPoints       int     `json:"minPoints"`
	MaxPoints       int     `json:"maxPoints"`
	LTVExisting     float64 `json:"ltvExisting"`
	LTVNew          float64 `json:"ltvNew"`
	MaxAmortYears   int     `json:"maxAmortYears"`
	PremiumDiscount float64 `json:"premiumDiscount"`
	LimitedRecourse bool    `json:"limitedRecourse"`
}

// MaxLTV returns the tier's LTV ceiling for the construction type.
func (t Tier) MaxLTV(newConstruction bool) float64 {
	if newConstruction {
		return t.LTVNew
	}
	return t.LTVExisting
}

// Tiers is the post July 14, 2025 tier schedule.
var Tiers = []Tier{
	{Tier: 1, Label: "Tier 1", MinPoints: 50, MaxPoints: 69, LTVExisting: 0.85, LTVNew: 0.95, MaxAmortYears: 40, PremiumDiscount: 0.10},
	{Tier: 2, Label: "Tier 2", MinPoints: 70, MaxPoints: 99, LTVExisting: 0.95, LTVNew: 0.95, MaxAmortYears: 45, PremiumDiscount: 0.20},
	{Tier: 3, Label: "Tier 3", MinPoints: 100, MaxPoints: 250, LTVExisting: 0.95, LTVNew: 0.95, MaxAmortYears: 50, PremiumDiscount: 0.30, LimitedRecourse: true},
}

// TotalPoints sums the outcome commitments. The duration bonus applies only
// when an affordability commitment exists, and the total is capped at the
// program maximum.
func TotalPoints(in Inputs) int {
	total := in.AffordabilityPoints + in.EnergyPoints + in.AccessibilityPoints
	if in.DurationBonus && in.AffordabilityPoints > 0 {
		total += constants.MliDurationBonusPoints
	}
	if total > constants.MliMaxPoints {
		total = constants.MliMaxPoints
	}
	return total
}

// TierFor maps a point total to its tier. ok is false below the 50-point
// program minimum.
func TierFor(points int) (Tier, bool) {
	for _, t := range Tiers {
		if points >= t.MinPoints && points <= t.MaxPoints {
			return t, true
		}
	}
	return Tier{}, false
}

// AffordabilityShare is the fraction of units that must rent at or below
// the affordable threshold to earn the given points. New construction has
// lower unit-share requirements than existing buildings.
func AffordabilityShare(points int, newConstruction bool) float64 {
	if newConstruction {
		switch points {
		case 50:
			return 0.10
		case 70:
			return 0.15
		case 100:
			return 0.25
		}
		return 0
	}
	switch points {
	case 50:
		return 0.40
	case 70:
		return 0.60
	case 100:
		return 0.80
	}
	return 0
}
