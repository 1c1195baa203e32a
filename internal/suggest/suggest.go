// Package suggest ranks emission reduction tips by potential impact.
// Given a category breakdown it orders categories by subtotal and emits
// a templated suggestion for each one material enough to matter.
package suggest

import (
	"fmt"
	"sort"

	"github.com/ecotrack/ecotrack/internal/equiv"
	"github.com/ecotrack/ecotrack/internal/factors"
)

// MaterialityThreshold is the share of the total a category must exceed
// before a suggestion is worth showing.
const MaterialityThreshold = 0.20

// Suggestion is one ranked reduction tip.
type Suggestion struct {
	Category   factors.Category `json:"category"`
	SubtotalKg float64          `json:"subtotal_kg"`
	Share      float64          `json:"share"`
	Message    string           `json:"message"`
}

// templates holds the per-category tip wording; the leading %s is the
// category's share of the total.
var templates = map[factors.Category]string{
	factors.CategoryTransport:   "Transport is %s of your footprint. Swapping commute days to train, bus, or cycling cuts it fastest.",
	factors.CategoryFood:        "Food is %s of your footprint. Replacing some beef and dairy with plant-based meals has the largest effect per meal.",
	factors.CategoryEnergy:      "Home energy is %s of your footprint. A greener electricity tariff or lower heating setpoint reduces it directly.",
	factors.CategoryWaste:       "Waste is %s of your footprint. Recycling more of what you throw away earns a direct credit.",
	factors.CategoryConsumption: "Purchases are %s of your footprint. Buying fewer, longer-lived goods avoids their production emissions.",
}

// Rank orders categories descending by subtotal and returns one
// suggestion per category whose share of the total exceeds
// MaterialityThreshold. Equal subtotals keep the fixed category
// declaration order, so output is deterministic. A zero or negative
// total yields no suggestions.
func Rank(breakdown map[factors.Category]float64) []Suggestion {
	total := 0.0
	for _, cat := range factors.Categories() {
		total += breakdown[cat]
	}
	if total <= 0 {
		return []Suggestion{}
	}

	// Start from declaration order so the sort's stability is the
	// tie-break.
	ordered := factors.Categories()
	sort.SliceStable(ordered, func(i, j int) bool {
		return breakdown[ordered[i]] > breakdown[ordered[j]]
	})

	suggestions := []Suggestion{}
	for _, cat := range ordered {
		kg := breakdown[cat]
		share := kg / total
		if share <= MaterialityThreshold {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category:   cat,
			SubtotalKg: kg,
			Share:      share,
			Message:    fmt.Sprintf(templates[cat], equiv.FormatPercent(share)),
		})
	}
	return suggestions
}
