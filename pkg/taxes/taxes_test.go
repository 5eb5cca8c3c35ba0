package taxes

import (
	"testing"

	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

func TestCapitalGains(t *testing.T) {
	tests := []struct {
		name        string
		province    market.Province
		gain        float64
		otherIncome float64
		expectedMin float64
		expectedMax float64
	}{
		{
			name:        "small gain low income stays in bottom bracket",
			province:    market.Saskatchewan,
			gain:        20000,
			otherIncome: 30000,
			// taxable 10000 at 25.5%
			expectedMin: 2550,
			expectedMax: 2550,
		},
		{
			name:        "gain straddles a bracket boundary",
			province:    market.Saskatchewan,
			gain:        40000,
			otherIncome: 50000,
			// taxable 20000: 3463 at 25.5%, 3912 at 27.5%, 12625 at 33%
			expectedMin: 6100,
			expectedMax: 6150,
		},
		{
			name:        "high earner pays top marginal rates",
			province:    market.Saskatchewan,
			gain:        100000,
			otherIncome: 300000,
			// taxable 50000 entirely at 47.5%
			expectedMin: 23750,
			expectedMax: 23750,
		},
		{
			name:        "alberta rates below saskatchewan at same income",
			province:    market.Alberta,
			gain:        20000,
			otherIncome: 30000,
			// taxable 10000 at 25%
			expectedMin: 2500,
			expectedMax: 2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CapitalGains(tt.province, tt.gain, tt.otherIncome)
			if result.Tax < tt.expectedMin || result.Tax > tt.expectedMax {
				t.Errorf("CapitalGains(%v, %v, %v).Tax = %v, expected range [%v, %v]",
					tt.province, tt.gain, tt.otherIncome, result.Tax, tt.expectedMin, tt.expectedMax)
			}
			if result.TaxableGain != tt.gain*CapitalGainsInclusionRate {
				t.Errorf("TaxableGain = %v, expected %v", result.TaxableGain, tt.gain*CapitalGainsInclusionRate)
			}
		})
	}
}

func TestCapitalGainsZeroAndNegative(t *testing.T) {
	for _, gain := range []float64{0, -5000} {
		result := CapitalGains(market.Saskatchewan, gain, 80000)
		if result.Tax != 0 || result.TaxableGain != 0 {
			t.Errorf("CapitalGains with gain %v = %+v, expected zero result", gain, result)
		}
	}
}

func TestCapitalGainsMonotonicInIncome(t *testing.T) {
	// A fixed gain can never be taxed less when stacked on more income.
	const gain = 60000
	prev := 0.0
	for income := 0.0; income <= 400000; income += 10000 {
		tax := CapitalGains(market.Alberta, gain, income).Tax
		if tax < prev {
			t.Fatalf("tax decreased from %v to %v as income rose to %v", prev, tax, income)
		}
		prev = tax
	}
}

func TestCapitalGainsMonotonicInGain(t *testing.T) {
	const income = 90000
	prev := 0.0
	for gain := 0.0; gain <= 500000; gain += 25000 {
		tax := CapitalGains(market.Saskatchewan, gain, income).Tax
		if tax < prev {
			t.Fatalf("tax decreased from %v to %v as gain rose to %v", prev, tax, gain)
		}
		prev = tax
	}
}

func TestCCARecapture(t *testing.T) {
	tests := []struct {
		name        string
		province    market.Province
		recaptured  float64
		otherIncome float64
		expected    float64
	}{
		{
			name:        "recapture in bottom bracket",
			province:    market.Saskatchewan,
			recaptured:  10000,
			otherIncome: 30000,
			expected:    2550,
		},
		{
			name:        "recapture taxed fully unlike a capital gain",
			province:    market.Saskatchewan,
			recaptured:  20000,
			otherIncome: 300000,
			expected:    9500, // 20000 at 47.5%
		},
		{
			name:        "zero recapture",
			province:    market.Alberta,
			recaptured:  0,
			otherIncome: 80000,
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CCARecapture(tt.province, tt.recaptured, tt.otherIncome)
			if result != tt.expected {
				t.Errorf("CCARecapture(%v, %v, %v) = %v, expected %v",
					tt.province, tt.recaptured, tt.otherIncome, result, tt.expected)
			}
		})
	}
}

func TestRecaptureExceedsEquivalentGainTax(t *testing.T) {
	// With a 50% inclusion rate, recapture of the same dollar amount always
	// costs at least as much as a capital gain.
	for _, amount := range []float64{5000, 50000, 250000} {
		gainTax := CapitalGains(market.Alberta, amount, 100000).Tax
		recaptureTax := CCARecapture(market.Alberta, amount, 100000)
		if recaptureTax < gainTax {
			t.Errorf("recapture tax %v below capital-gains tax %v for amount %v", recaptureTax, gainTax, amount)
		}
	}
}
