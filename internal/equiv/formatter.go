package equiv

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across outputs.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatKg formats a kg CO2e value with one decimal place and thousand
// separators, matching how totals are shown everywhere in the CLI and
// API messages. FormatKg(1234.56) returns "1,234.6".
func FormatKg(kg float64) string {
	return printer.Sprintf("%.1f", kg)
}

// FormatPercent formats a ratio as a whole percentage.
// FormatPercent(0.268) returns "27%".
func FormatPercent(ratio float64) string {
	return printer.Sprintf("%d%%", int64(math.Round(ratio*100)))
}
