// Package factors provides the emission factor table: a read-only mapping
// from activity category and subtype to a published kg CO2e conversion
// factor with its source citation.
//
// A Table is an explicitly constructed value passed by reference into the
// calculation engine. It is never mutated after construction; callers that
// support hot reload must swap in a freshly loaded Table atomically rather
// than patching entries in place.
package factors

import "fmt"

// Category identifies one of the five activity categories.
type Category string

const (
	CategoryTransport   Category = "transport"
	CategoryFood        Category = "food"
	CategoryEnergy      Category = "energy"
	CategoryWaste       Category = "waste"
	CategoryConsumption Category = "consumption"
)

// Categories returns all categories in their fixed declaration order.
// Summation and tie-breaking throughout the engine rely on this order.
func Categories() []Category {
	return []Category{
		CategoryTransport,
		CategoryFood,
		CategoryEnergy,
		CategoryWaste,
		CategoryConsumption,
	}
}

// Factor is one published emission factor.
type Factor struct {
	// Unit is the activity unit the factor applies to (km, kg, kWh, item).
	Unit string `yaml:"unit" json:"unit"`

	// KgCO2PerUnit is kilograms of CO2 equivalent emitted per Unit.
	// A zero value is a verified zero-emission activity (walking,
	// cycling), not a missing datum; missing subtypes are rejected by
	// Lookup instead of defaulting to zero.
	KgCO2PerUnit float64 `yaml:"value" json:"value"`

	// Source cites the publication the factor was taken from.
	Source string `yaml:"source" json:"source"`
}

// Table is an immutable set of emission factors keyed by category and
// subtype. Construct via Load, Parse, or Default.
type Table struct {
	version string
	entries map[Category]map[string]Factor
}

// Version returns the factor set version string.
func (t *Table) Version() string {
	return t.version
}

// Lookup returns the factor for a category/subtype pair.
//
// Unknown subtypes return a FactorNotFoundError rather than a zero
// factor: a silent zero would be indistinguishable from a verified
// zero-emission activity and would hide data-entry bugs.
func (t *Table) Lookup(category Category, subtype string) (Factor, error) {
	sub, ok := t.entries[category]
	if !ok {
		return Factor{}, &FactorNotFoundError{Category: category, Subtype: subtype}
	}
	f, ok := sub[subtype]
	if !ok {
		return Factor{}, &FactorNotFoundError{Category: category, Subtype: subtype}
	}
	return f, nil
}

// Subtypes returns the known subtype keys for a category. Order is not
// defined; callers that need determinism sort the result.
func (t *Table) Subtypes(category Category) []string {
	sub := t.entries[category]
	keys := make([]string, 0, len(sub))
	for k := range sub {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the total number of factors in the table.
func (t *Table) Len() int {
	n := 0
	for _, sub := range t.entries {
		n += len(sub)
	}
	return n
}

func (t *Table) validate() error {
	for cat, sub := range t.entries {
		if len(sub) == 0 {
			return fmt.Errorf("factor table: category %q has no factors", cat)
		}
		for subtype, f := range sub {
			if f.KgCO2PerUnit < 0 {
				return fmt.Errorf("factor table: %s/%s: negative factor %v", cat, subtype, f.KgCO2PerUnit)
			}
			if f.Unit == "" {
				return fmt.Errorf("factor table: %s/%s: missing unit", cat, subtype)
			}
		}
	}
	for _, cat := range Categories() {
		if _, ok := t.entries[cat]; !ok {
			return fmt.Errorf("factor table: missing category %q", cat)
		}
	}
	// The waste calculator nets these two against each other; a table
	// without either cannot price waste at all.
	for _, subtype := range []string{"landfill", "recycling_credit"} {
		if _, ok := t.entries[CategoryWaste][subtype]; !ok {
			return fmt.Errorf("factor table: waste missing %q factor", subtype)
		}
	}
	return nil
}
