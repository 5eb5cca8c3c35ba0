package parse

import (
	"math"
	"testing"
)

func TestFloatOr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      float64
		expected float64
	}{
		{name: "plain number", input: "280000", def: 0, expected: 280000},
		{name: "decimal", input: "3.8", def: 0, expected: 3.8},
		{name: "currency formatting", input: "$1,400,000", def: 0, expected: 1400000},
		{name: "percent suffix", input: "4.25%", def: 0, expected: 4.25},
		{name: "whitespace", input: "  1600 ", def: 0, expected: 1600},
		{name: "empty falls back", input: "", def: 280000, expected: 280000},
		{name: "garbage falls back", input: "abc", def: 1600, expected: 1600},
		{name: "nan literal falls back", input: "NaN", def: 5, expected: 5},
		{name: "inf literal falls back", input: "Inf", def: 5, expected: 5},
		{name: "negative preserved", input: "-250", def: 0, expected: -250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FloatOr(tt.input, tt.def); got != tt.expected {
				t.Errorf("FloatOr(%q, %v) = %v, expected %v", tt.input, tt.def, got, tt.expected)
			}
		})
	}
}

func TestIntOr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      int
		expected int
	}{
		{name: "plain int", input: "25", def: 0, expected: 25},
		{name: "float truncated", input: "25.9", def: 0, expected: 25},
		{name: "comma stripped", input: "1,506", def: 0, expected: 1506},
		{name: "empty falls back", input: "", def: 25, expected: 25},
		{name: "garbage falls back", input: "x", def: 40, expected: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntOr(tt.input, tt.def); got != tt.expected {
				t.Errorf("IntOr(%q, %v) = %v, expected %v", tt.input, tt.def, got, tt.expected)
			}
		})
	}
}

func TestBoolOr(t *testing.T) {
	if !BoolOr("true", false) {
		t.Error("BoolOr(\"true\", false) = false, expected true")
	}
	if BoolOr("", true) != true {
		t.Error("BoolOr(\"\", true) = false, expected default true")
	}
	if BoolOr("maybe", false) {
		t.Error("BoolOr(\"maybe\", false) = true, expected default false")
	}
}

func TestPositiveFloatOr(t *testing.T) {
	if got := PositiveFloatOr("-100", 280000); got != 280000 {
		t.Errorf("PositiveFloatOr(\"-100\", 280000) = %v, expected default", got)
	}
	if got := PositiveFloatOr("0", 1600); got != 1600 {
		t.Errorf("PositiveFloatOr(\"0\", 1600) = %v, expected default", got)
	}
	if got := PositiveFloatOr("5", 1600); got != 5 {
		t.Errorf("PositiveFloatOr(\"5\", 1600) = %v, expected 5", got)
	}
}

func TestClampFloat(t *testing.T) {
	if got := ClampFloat(1.5, 0, 1); got != 1 {
		t.Errorf("ClampFloat(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := ClampFloat(-0.2, 0, 1); got != 0 {
		t.Errorf("ClampFloat(-0.2, 0, 1) = %v, expected 0", got)
	}
	if got := ClampFloat(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampFloat(0.5, 0, 1) = %v, expected 0.5", got)
	}
}

func TestSanitizeFloat(t *testing.T) {
	if got := SanitizeFloat(math.NaN(), 3.8); got != 3.8 {
		t.Errorf("SanitizeFloat(NaN, 3.8) = %v, expected 3.8", got)
	}
	if got := SanitizeFloat(math.Inf(1), 0); got != 0 {
		t.Errorf("SanitizeFloat(+Inf, 0) = %v, expected 0", got)
	}
	if got := SanitizeFloat(42, 0); got != 42 {
		t.Errorf("SanitizeFloat(42, 0) = %v, expected 42", got)
	}
}
