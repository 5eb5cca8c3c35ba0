// Package parse provides tolerant input parsing for values arriving from
// forms, listings, and share links. Every helper falls back to a caller
// supplied default on empty or malformed input so the calculation engines
// never see NaN or Inf.
package parse

import (
	"math"
	"strconv"
	"strings"
)

// FloatOr parses s as a float64, returning def when s is empty, malformed,
// NaN, or infinite. Currency formatting ($, commas, whitespace) is stripped
// before parsing.
func FloatOr(s string, def float64) float64 {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return def
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// IntOr parses s as an int, accepting float-formatted input by truncation.
func IntOr(s string, def int) int {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return def
	}
	if v, err := strconv.Atoi(cleaned); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

// BoolOr parses s as a bool, returning def on anything strconv does not
// recognize.
func BoolOr(s string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// PositiveFloatOr is FloatOr restricted to values > 0.
func PositiveFloatOr(s string, def float64) float64 {
	v := FloatOr(s, def)
	if v <= 0 {
		return def
	}
	return v
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SanitizeFloat replaces NaN or Inf with def. Engines apply it to any value
// that already arrived as a float64 (decoded JSON, share links).
func SanitizeFloat(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSpace(s)
}
