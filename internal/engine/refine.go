package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/ecotrack/ecotrack/internal/equiv"
	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/logging"
)

// Refinement bounds and heuristic constants. Adjustments are clamped to
// ±30% of a category subtotal: the refinement layer corrects, it never
// produces swings that would undermine the transparent-baseline promise.
const (
	// RefineMinMultiplier and RefineMaxMultiplier bound every category
	// adjustment, individually and combined.
	RefineMinMultiplier = 0.7
	RefineMaxMultiplier = 1.3

	// BaselineAreaPerPersonM2 is the reference dwelling area per
	// occupant for the home-density rule.
	BaselineAreaPerPersonM2 = 35.0

	// Expected monthly household electricity, kWh:
	// base + perM2*size + perOccupant*occupants + perACHour*ac_hours.
	// Coefficients from the household energy-usage regression the
	// refinement rules were calibrated against.
	expectedBaseKwh      = 200.0
	expectedKwhPerM2     = 2.0
	expectedKwhPerPerson = 50.0
	expectedKwhPerACHour = 2.0

	// acReferenceHours is the climate-control duty considered neutral
	// by the standalone AC rule.
	acReferenceHours = 6.0
	acHourMultStep   = 0.02
)

// Refine applies deterministic, category-scoped adjustment rules to a
// baseline using the optional contextual fields of the input. Each rule
// that fires appends exactly one insight string stating its rationale
// and numeric effect.
//
// When no contextual fields are present, the baseline is returned
// unchanged with an empty insight list: refinement is strictly optional,
// never required for a valid result.
func (e *Engine) Refine(ctx context.Context, baseline *FootprintResult, in *ActivityInput) (*RefinedResult, error) {
	log := logging.FromContext(ctx)

	if baseline == nil {
		return nil, invalidInput("baseline", "footprint result missing")
	}
	if in == nil {
		in = &ActivityInput{}
	}
	if err := in.validateContext(); err != nil {
		return nil, err
	}

	refined := make(map[factors.Category]float64, len(baseline.Breakdown))
	adjustments := make(map[factors.Category]float64, len(baseline.Breakdown))
	for cat, kg := range baseline.Breakdown {
		refined[cat] = kg
		adjustments[cat] = 0
	}
	insights := []string{}

	hasContext := in.HouseSizeM2 != nil || in.Occupants != nil || in.ACHoursPerDay != nil
	energyBase := baseline.Breakdown[factors.CategoryEnergy]

	if hasContext && energyBase > 0 {
		multiplier, ruleInsights := e.energyRules(in, energyBase)
		insights = append(insights, ruleInsights...)

		clamped := clampMultiplier(multiplier)
		if clamped != multiplier {
			insights = append(insights, fmt.Sprintf(
				"Combined energy adjustments capped at %+.0f%% of the baseline subtotal",
				(clamped-1)*100))
		}

		refined[factors.CategoryEnergy] = energyBase * clamped
		adjustments[factors.CategoryEnergy] = refined[factors.CategoryEnergy] - energyBase
	}

	total := 0.0
	for _, cat := range factors.Categories() {
		total += refined[cat]
	}

	log.Debug().
		Str("component", "engine").
		Str("operation", "refine").
		Float64("baseline_total", baseline.BaselineTotalKg).
		Float64("refined_total", total).
		Int("insights", len(insights)).
		Msg("refinement complete")

	return &RefinedResult{
		Baseline:         baseline,
		RefinedBreakdown: refined,
		RefinedTotalKg:   total,
		Adjustments:      adjustments,
		Insights:         insights,
		Timestamp:        e.now().UTC(),
	}, nil
}

// energyRules evaluates the energy-category heuristics and returns the
// combined (un-clamped) multiplier plus one insight per fired rule.
// Individual rule multipliers are clamped before combining; the caller
// clamps the product again so the category bound holds overall.
func (e *Engine) energyRules(in *ActivityInput, energyBaseKg float64) (float64, []string) {
	multiplier := 1.0
	var insights []string

	// Home density: more floor area per person than the reference
	// implies higher heating/cooling load per reported occupant.
	if in.HouseSizeM2 != nil && in.Occupants != nil {
		size := *in.HouseSizeM2
		occ := float64(*in.Occupants)
		m := clampMultiplier(size / (occ * BaselineAreaPerPersonM2))
		multiplier *= m
		delta := equiv.FormatKg(energyBaseKg * (m - 1))
		if m >= 1 {
			delta = "+" + delta
		}
		insights = append(insights, fmt.Sprintf(
			"Home density: %g m² across %d occupant(s) is %.2fx the %g m²/person reference; energy subtotal scaled by %.2f (%s kg CO2e/week)",
			size, *in.Occupants, size/(occ*BaselineAreaPerPersonM2), BaselineAreaPerPersonM2,
			m, delta))
	}

	// Expected usage: compare reported monthly electricity with the
	// household regression estimate and nudge toward it.
	if in.HouseSizeM2 != nil && in.Occupants != nil && in.ElectricityKwh != nil && *in.ElectricityKwh > 0 {
		ac := 0.0
		if in.ACHoursPerDay != nil {
			ac = *in.ACHoursPerDay
		}
		expected := expectedBaseKwh +
			expectedKwhPerM2**in.HouseSizeM2 +
			expectedKwhPerPerson*float64(*in.Occupants) +
			expectedKwhPerACHour*ac
		m := clampMultiplier(expected / *in.ElectricityKwh)
		multiplier *= m
		insights = append(insights, fmt.Sprintf(
			"Expected usage: a household of this profile typically draws %s kWh/month vs %g reported; energy subtotal scaled by %.2f",
			equiv.FormatNumber(int64(math.Round(expected))), *in.ElectricityKwh, m))
	} else if in.ACHoursPerDay != nil {
		// Standalone climate-control rule, used only when the expected
		// usage rule (which already prices AC hours) cannot fire.
		m := clampMultiplier(1 + (*in.ACHoursPerDay-acReferenceHours)*acHourMultStep)
		multiplier *= m
		insights = append(insights, fmt.Sprintf(
			"Climate control: %g h/day vs the %g h reference; energy subtotal scaled by %.2f",
			*in.ACHoursPerDay, acReferenceHours, m))
	}

	return multiplier, insights
}

func clampMultiplier(m float64) float64 {
	return math.Min(RefineMaxMultiplier, math.Max(RefineMinMultiplier, m))
}
