package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount), 2)
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// WholeCurrency formats to the nearest dollar (e.g., "$280,000"), the style
// used for prices, rents, and fee estimates in reports.
func WholeCurrency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount), 0)
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount), 2)
	return sign + formatted
}

// Percent formats a fractional rate as a percentage (e.g., 0.0625 -> "6.25%").
func Percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// Ratio formats coverage-style ratios to two decimals (e.g., "1.30").
func Ratio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatPositiveCurrency(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decPart == "" {
		return intPart
	}
	return intPart + "." + decPart
}
