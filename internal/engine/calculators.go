package engine

import (
	"fmt"
	"math"

	"github.com/ecotrack/ecotrack/internal/factors"
)

// A calculator reduces one category's slice of the input into a
// CategoryResult. Calculators are pure, linear, and additive; none reads
// a field belonging to another category, which is what keeps totals
// reproducible and each category independently testable.
type calculator func(table *factors.Table, in *ActivityInput) (CategoryResult, error)

// calculators lists the category calculators in the fixed category
// declaration order. The aggregator indexes into this slice, so the
// order here is the documented summation order.
func calculators() []calculator {
	return []calculator{
		calcTransport,
		calcFood,
		calcEnergy,
		calcWaste,
		calcConsumption,
	}
}

// calcTransport converts the daily commute to a weekly emission mass.
func calcTransport(table *factors.Table, in *ActivityInput) (CategoryResult, error) {
	f, err := table.Lookup(factors.CategoryTransport, in.TransportMode)
	if err != nil {
		return CategoryResult{}, err
	}

	weeklyKg := *in.CommuteKm * f.KgCO2PerUnit * DaysPerWeek

	details := map[string]DetailEntry{
		"commute": valueEntry(weeklyKg),
		"mode":    noteEntry(fmt.Sprintf("%s at %g km/day, 7 days/week", in.TransportMode, *in.CommuteKm)),
	}

	return CategoryResult{
		Category:   factors.CategoryTransport,
		SubtotalKg: weeklyKg,
		Details:    details,
	}, nil
}

// calcFood sums the weekly food masses against their per-kg factors.
// Lookups happen only for reported (non-zero) subtypes: a table that
// lacks a factor the user never supplied is not an error.
func calcFood(table *factors.Table, in *ActivityInput) (CategoryResult, error) {
	subtotal := 0.0
	details := make(map[string]DetailEntry)

	for _, item := range in.foodItems() {
		if item.Kg == 0 {
			continue
		}
		f, err := table.Lookup(factors.CategoryFood, item.Subtype)
		if err != nil {
			return CategoryResult{}, err
		}
		kg := item.Kg * f.KgCO2PerUnit
		subtotal += kg
		details[item.Subtype] = valueEntry(kg)
	}

	return CategoryResult{
		Category:   factors.CategoryFood,
		SubtotalKg: subtotal,
		Details:    details,
	}, nil
}

// calcEnergy converts monthly electricity and gas usage to a weekly
// emission mass.
func calcEnergy(table *factors.Table, in *ActivityInput) (CategoryResult, error) {
	subtotal := 0.0
	details := make(map[string]DetailEntry)

	if *in.ElectricityKwh > 0 {
		f, err := table.Lookup(factors.CategoryEnergy, "electricity")
		if err != nil {
			return CategoryResult{}, err
		}
		kg := *in.ElectricityKwh * f.KgCO2PerUnit * MonthsPerWeek
		subtotal += kg
		details["electricity"] = valueEntry(kg)
	}

	if in.NaturalGasKwh > 0 {
		f, err := table.Lookup(factors.CategoryEnergy, "natural_gas")
		if err != nil {
			return CategoryResult{}, err
		}
		kg := in.NaturalGasKwh * f.KgCO2PerUnit * MonthsPerWeek
		subtotal += kg
		details["natural_gas"] = valueEntry(kg)
	}

	if len(details) > 0 {
		details["basis"] = noteEntry(fmt.Sprintf(
			"normalized from %g kWh/month reported usage (x 12/52 weeks)",
			*in.ElectricityKwh+in.NaturalGasKwh))
	}

	return CategoryResult{
		Category:   factors.CategoryEnergy,
		SubtotalKg: subtotal,
		Details:    details,
	}, nil
}

// calcWaste nets the recycling credit against landfilled waste. The
// credit applies only up to the landfill mass, and the subtotal floors
// at zero: recycling cannot produce negative net emissions here.
func calcWaste(table *factors.Table, in *ActivityInput) (CategoryResult, error) {
	waste := *in.WasteKg
	recycled := in.RecycledKg
	details := make(map[string]DetailEntry)

	effectiveRecycled := math.Min(recycled, waste)
	if recycled > waste {
		details["credit_cap"] = noteEntry(fmt.Sprintf(
			"recycled mass capped at reported waste (%g kg); excess earns no further credit", waste))
	}
	landfilled := waste - effectiveRecycled

	gross := 0.0
	if landfilled > 0 {
		f, err := table.Lookup(factors.CategoryWaste, "landfill")
		if err != nil {
			return CategoryResult{}, err
		}
		gross = landfilled * f.KgCO2PerUnit
		details["landfill"] = valueEntry(gross)
	}

	credit := 0.0
	if effectiveRecycled > 0 {
		f, err := table.Lookup(factors.CategoryWaste, "recycling_credit")
		if err != nil {
			return CategoryResult{}, err
		}
		credit = effectiveRecycled * f.KgCO2PerUnit
		details["recycling_credit"] = valueEntry(-credit)
	}

	subtotal := gross - credit
	if subtotal < 0 {
		subtotal = 0
		details["floor"] = noteEntry("recycling credit exceeds landfill emissions; subtotal floored at zero")
	}

	return CategoryResult{
		Category:   factors.CategoryWaste,
		SubtotalKg: subtotal,
		Details:    details,
	}, nil
}

// calcConsumption converts monthly purchases to a weekly emission mass.
func calcConsumption(table *factors.Table, in *ActivityInput) (CategoryResult, error) {
	subtotal := 0.0
	details := make(map[string]DetailEntry)

	if in.ClothingKg > 0 {
		f, err := table.Lookup(factors.CategoryConsumption, "clothing")
		if err != nil {
			return CategoryResult{}, err
		}
		kg := in.ClothingKg * f.KgCO2PerUnit * MonthsPerWeek
		subtotal += kg
		details["clothing"] = valueEntry(kg)
	}

	if in.ElectronicsItems > 0 {
		f, err := table.Lookup(factors.CategoryConsumption, "electronics_item")
		if err != nil {
			return CategoryResult{}, err
		}
		kg := in.ElectronicsItems * f.KgCO2PerUnit * MonthsPerWeek
		subtotal += kg
		details["electronics"] = valueEntry(kg)
	}

	if len(details) > 0 {
		details["basis"] = noteEntry("normalized from monthly purchases (x 12/52 weeks)")
	}

	return CategoryResult{
		Category:   factors.CategoryConsumption,
		SubtotalKg: subtotal,
		Details:    details,
	}, nil
}
