package engine

import (
	"time"

	"github.com/ecotrack/ecotrack/internal/factors"
)

// DetailKind tags a DetailEntry as either a settled numeric contribution
// or a descriptive note, so formatting code never needs runtime type
// inspection of mixed number-or-string maps.
type DetailKind string

const (
	// DetailValue marks a kg CO2e contribution.
	DetailValue DetailKind = "value"

	// DetailNote marks a human-readable annotation (reported cadence,
	// applied floors) that carries no emission mass.
	DetailNote DetailKind = "note"
)

// DetailEntry is one itemized line inside a category's detail map.
type DetailEntry struct {
	Kind DetailKind `json:"kind"`

	// KgCO2 is set when Kind is DetailValue. Credits (recycling) are
	// negative; the category subtotal, not the entry, is floored.
	KgCO2 float64 `json:"kg_co2,omitempty"`

	// Note is set when Kind is DetailNote.
	Note string `json:"note,omitempty"`
}

// valueEntry builds a numeric detail entry.
func valueEntry(kg float64) DetailEntry {
	return DetailEntry{Kind: DetailValue, KgCO2: kg}
}

// noteEntry builds a descriptive detail entry.
func noteEntry(note string) DetailEntry {
	return DetailEntry{Kind: DetailNote, Note: note}
}

// CategoryResult is one calculator's output: the category subtotal and
// its itemized detail map. Never mutated after construction.
type CategoryResult struct {
	Category   factors.Category       `json:"category"`
	SubtotalKg float64                `json:"subtotal_kg"`
	Details    map[string]DetailEntry `json:"details"`
}

// FootprintResult is the baseline output of one calculation call.
// Breakdown holds one entry per category even when the subtotal is zero:
// zero means "you reported no emissions here", not "this category does
// not exist". All figures are kg CO2e per week (see period.go).
type FootprintResult struct {
	Breakdown       map[factors.Category]float64                `json:"breakdown"`
	BaselineTotalKg float64                                     `json:"baseline_total"`
	Details         map[factors.Category]map[string]DetailEntry `json:"details"`
	Timestamp       time.Time                                   `json:"timestamp"`
}

// RefinedResult extends a baseline with bounded heuristic adjustments.
type RefinedResult struct {
	Baseline *FootprintResult `json:"baseline"`

	// RefinedBreakdown mirrors Baseline.Breakdown with adjustments
	// applied; untouched categories carry their baseline subtotal.
	RefinedBreakdown map[factors.Category]float64 `json:"refined_breakdown"`

	RefinedTotalKg float64 `json:"refined_total"`

	// Adjustments is the per-category delta in kg CO2e
	// (refined minus baseline); zero for untouched categories.
	Adjustments map[factors.Category]float64 `json:"adjustments"`

	// Insights holds one human-readable string per applied adjustment
	// stating the rule that fired and its numeric effect. Empty when no
	// contextual fields were present.
	Insights []string `json:"insights"`

	Timestamp time.Time `json:"timestamp"`
}
