package cmhc

import (
	"math"
	"testing"
)

func TestPremiumRate(t *testing.T) {
	tests := []struct {
		name     string
		downPct  float64
		expected float64
	}{
		{"5% down", 0.05, 0.040},
		{"Just under 10%", 0.0999, 0.040},
		{"10% down", 0.10, 0.031},
		{"Just under 15%", 0.1499, 0.031},
		{"15% down", 0.15, 0.028},
		{"Just under 20%", 0.1999, 0.028},
		{"20% down", 0.20, 0.0},
		{"25% down", 0.25, 0.0},
		{"100% down", 1.00, 0.0},
		{"Below minimum down", 0.04, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PremiumRate(tt.downPct)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("PremiumRate(%v) = %v, expected %v", tt.downPct, result, tt.expected)
			}
		})
	}
}

func TestPremiumRateNonIncreasing(t *testing.T) {
	// The rate is a non-increasing step function of down payment.
	previous := math.Inf(1)
	for pct := 0.05; pct <= 1.0; pct += 0.0025 {
		rate := PremiumRate(pct)
		if rate > previous {
			t.Fatalf("PremiumRate(%v) = %v increased from %v", pct, rate, previous)
		}
		previous = rate
	}
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name          string
		price         float64
		downPct       float64
		ownerMode     bool
		hasOwnerUnit  bool
		wantRate      float64
		wantInsured   bool
		wantWarning   bool
		wantOOBenefit bool
	}{
		{
			name:        "Owner mode 5% down",
			price:       280000,
			downPct:     0.05,
			ownerMode:   true,
			wantRate:    0.040,
			wantInsured: true,
		},
		{
			name:      "Owner mode 20% down needs no insurance",
			price:     280000,
			downPct:   0.20,
			ownerMode: true,
		},
		{
			name:        "Pure investment below 20% down is ineligible",
			price:       300000,
			downPct:     0.10,
			wantWarning: true,
		},
		{
			name:          "Investor with owner-occupied unit qualifies",
			price:         400000,
			downPct:       0.10,
			hasOwnerUnit:  true,
			wantRate:      0.031,
			wantInsured:   true,
			wantOOBenefit: true,
		},
		{
			name:      "Price above ceiling is uninsurable",
			price:     1600000,
			downPct:   0.10,
			ownerMode: true,
		},
		{
			name:      "Price exactly at ceiling still qualifies",
			price:     1500000,
			downPct:   0.15,
			ownerMode: true,
			wantRate:  0.028, wantInsured: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Assess(tt.price, tt.downPct, tt.ownerMode, tt.hasOwnerUnit)
			if math.Abs(e.Rate-tt.wantRate) > 1e-9 {
				t.Errorf("Rate = %v, expected %v", e.Rate, tt.wantRate)
			}
			if e.Insured != tt.wantInsured {
				t.Errorf("Insured = %v, expected %v", e.Insured, tt.wantInsured)
			}
			if e.InvestmentWarning != tt.wantWarning {
				t.Errorf("InvestmentWarning = %v, expected %v", e.InvestmentWarning, tt.wantWarning)
			}
			if e.OwnerOccupiedBenefit != tt.wantOOBenefit {
				t.Errorf("OwnerOccupiedBenefit = %v, expected %v", e.OwnerOccupiedBenefit, tt.wantOOBenefit)
			}
		})
	}
}

func TestMliBasePremiumRate(t *testing.T) {
	tests := []struct {
		name     string
		ltv      float64
		expected float64
	}{
		{"65% LTV", 0.65, 0.0260},
		{"Just above 65%", 0.651, 0.0285},
		{"70% LTV", 0.70, 0.0285},
		{"75% LTV", 0.75, 0.0335},
		{"80% LTV", 0.80, 0.0435},
		{"85% LTV", 0.85, 0.0535},
		{"90% LTV", 0.90, 0.0590},
		{"95% LTV", 0.95, 0.0615},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MliBasePremiumRate(tt.ltv)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("MliBasePremiumRate(%v) = %v, expected %v", tt.ltv, result, tt.expected)
			}
		})
	}
}

func TestMliAmortSurcharge(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		expected float64
	}{
		{"25 years", 25, 0},
		{"26 years starts an increment", 26, 0.0025},
		{"30 years", 30, 0.0025},
		{"31 years", 31, 0.0050},
		{"40 years", 40, 0.0075},
		{"45 years", 45, 0.0100},
		{"50 years", 50, 0.0125},
		{"20 years", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MliAmortSurcharge(tt.years)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("MliAmortSurcharge(%v) = %v, expected %v", tt.years, result, tt.expected)
			}
		})
	}
}

func TestMliSelectPremiumRate(t *testing.T) {
	// 95% LTV, 50-year amortization, Tier 3 discount:
	// (0.0615 + 0.0125) × 0.70
	result := MliSelectPremiumRate(0.95, 50, 0.30)
	expected := (0.0615 + 0.0125) * 0.70
	if math.Abs(result-expected) > 1e-9 {
		t.Errorf("MliSelectPremiumRate = %v, expected %v", result, expected)
	}

	// No discount leaves the base + surcharge untouched.
	result = MliSelectPremiumRate(0.75, 25, 0)
	if math.Abs(result-0.0335) > 1e-9 {
		t.Errorf("MliSelectPremiumRate without discount = %v, expected 0.0335", result)
	}
}
