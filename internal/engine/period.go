package engine

// The source data arrives in mixed cadences: daily commute, weekly food
// and waste, monthly energy and consumption. The engine normalizes
// everything to a canonical per-week total so the categories are
// additive; detail maps carry a note recording the reported cadence.
const (
	// DaysPerWeek converts daily commute figures to weekly.
	DaysPerWeek = 7.0

	// MonthsPerWeek converts monthly figures (energy, consumption) to
	// weekly: 12 months over 52 weeks.
	MonthsPerWeek = 12.0 / 52.0
)
