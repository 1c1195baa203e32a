package cli

import (
	"fmt"
	"io"

	"github.com/ecotrack/ecotrack/internal/engine"
	"github.com/ecotrack/ecotrack/internal/equiv"
	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/offsets"
	"github.com/ecotrack/ecotrack/internal/suggest"
)

func renderBreakdown(w io.Writer, breakdown map[factors.Category]float64) {
	for _, cat := range factors.Categories() {
		fmt.Fprintf(w, "  %-12s %10s kg CO2e/week\n", cat, equiv.FormatKg(breakdown[cat]))
	}
}

func renderBaseline(w io.Writer, result *engine.FootprintResult) {
	fmt.Fprintln(w, "Baseline footprint")
	renderBreakdown(w, result.Breakdown)
	fmt.Fprintf(w, "  %-12s %10s kg CO2e/week\n", "total", equiv.FormatKg(result.BaselineTotalKg))

	if eq := equiv.ForKilograms(result.BaselineTotalKg); !eq.IsEmpty {
		fmt.Fprintf(w, "\nPer week, that is %s.\n", eq.DisplayText)
	}
}

func renderRefined(w io.Writer, refined *engine.RefinedResult) {
	renderBaseline(w, refined.Baseline)

	fmt.Fprintln(w, "\nRefined footprint")
	renderBreakdown(w, refined.RefinedBreakdown)
	fmt.Fprintf(w, "  %-12s %10s kg CO2e/week\n", "total", equiv.FormatKg(refined.RefinedTotalKg))

	if len(refined.Insights) == 0 {
		fmt.Fprintln(w, "\nNo contextual fields supplied; baseline unchanged.")
		return
	}
	fmt.Fprintln(w, "\nInsights")
	for _, insight := range refined.Insights {
		fmt.Fprintf(w, "  - %s\n", insight)
	}
}

func renderOffsets(w io.Writer, kg float64, projects []offsets.Project) {
	fmt.Fprintf(w, "Offset options for %s kg CO2e\n", equiv.FormatKg(kg))
	for _, p := range projects {
		fmt.Fprintf(w, "\n  %s (%s)\n", p.Name, p.Type)
		fmt.Fprintf(w, "    $%.2f/ton, total $%.2f\n", p.CostPerTonUSD, p.TotalCostUSD)
		fmt.Fprintf(w, "    %s\n", p.Impact)
		fmt.Fprintf(w, "    txn %s\n", p.TransactionID)
	}
}

func renderSuggestions(w io.Writer, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No category is material enough to single out. Nice.")
		return
	}
	fmt.Fprintln(w, "Where to cut first")
	for i, s := range suggestions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s.Message)
	}
}
