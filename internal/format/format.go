// Package format provides locale-aware number formatting for disclosure
// output. English locale is used for consistent thousand separators.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Number formats an integer with thousand separators.
// Example: Number(18248) returns "18,248".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Amount formats a float with two decimals and thousand separators.
// Example: Amount(1234.567) returns "1,234.57".
func Amount(f float64) string {
	return printer.Sprintf("%.2f", f)
}

// Intensity formats a carbon-intensity ratio. Ratios are typically far below
// one, so more precision is kept than for kilogram amounts.
func Intensity(f float64) string {
	if f == 0 {
		return "0.00"
	}
	if math.Abs(f) < 0.01 {
		return printer.Sprintf("%.4f", f)
	}
	return printer.Sprintf("%.2f", f)
}
