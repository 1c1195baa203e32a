// Package history keeps recent calculation entries in an in-memory TTL
// store so the API can show a user their latest results. Durable
// persistence, user identity, and leaderboards belong to external
// collaborators; this store intentionally forgets.
package history

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ecotrack/ecotrack/internal/engine"
	"github.com/ecotrack/ecotrack/internal/factors"
)

// ActivityRecord is one itemized activity row inside an entry.
type ActivityRecord struct {
	Category      factors.Category `json:"category"`
	ActivityType  string           `json:"activity_type"`
	Value         float64          `json:"value"`
	Unit          string           `json:"unit"`
	KgCO2Baseline float64          `json:"kgco2_baseline"`
	KgCO2Refined  *float64         `json:"kgco2_refined,omitempty"`
}

// Entry is one stored calculation.
type Entry struct {
	ID              string           `json:"id"`
	Timestamp       time.Time        `json:"date"`
	BaselineTotalKg float64          `json:"baseline_total"`
	RefinedTotalKg  *float64         `json:"refined_total,omitempty"`
	Activities      []ActivityRecord `json:"activities"`
}

// Store is a TTL-bounded in-memory entry store. Safe for concurrent use.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a store whose entries expire after ttl.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{cache: gocache.New(ttl, cleanupInterval)}
}

// Add stores an entry, assigning it a sortable ULID if it has none, and
// returns the entry id.
func (s *Store) Add(e Entry) string {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	s.cache.Set(e.ID, e, gocache.DefaultExpiration)
	return e.ID
}

// Recent returns up to limit entries, newest first. ULIDs sort
// lexicographically by creation time, so the id is the sort key.
func (s *Store) Recent(limit int) []Entry {
	items := s.cache.Items()
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if e, ok := item.Object.(Entry); ok {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// FromBaseline builds a history entry for a baseline calculation.
func FromBaseline(in *engine.ActivityInput, result *engine.FootprintResult) Entry {
	return Entry{
		Timestamp:       result.Timestamp,
		BaselineTotalKg: result.BaselineTotalKg,
		Activities:      activityRows(in, result, nil),
	}
}

// FromRefined builds a history entry for a refined calculation. Per-row
// refined figures scale each activity by its category's adjustment
// ratio, mirroring how the refinement layer works on subtotals.
func FromRefined(in *engine.ActivityInput, refined *engine.RefinedResult) Entry {
	total := refined.RefinedTotalKg
	return Entry{
		Timestamp:       refined.Timestamp,
		BaselineTotalKg: refined.Baseline.BaselineTotalKg,
		RefinedTotalKg:  &total,
		Activities:      activityRows(in, refined.Baseline, refined),
	}
}

// reportedAmount maps a detail key back to the reported activity amount
// and its input unit for the itemized rows.
func reportedAmount(in *engine.ActivityInput, category factors.Category, key string) (float64, string, bool) {
	if in == nil {
		return 0, "", false
	}
	switch category {
	case factors.CategoryTransport:
		if key == "commute" && in.CommuteKm != nil {
			return *in.CommuteKm, "km/day", true
		}
	case factors.CategoryFood:
		for _, item := range []struct {
			k string
			v float64
		}{
			{"beef", in.BeefKg}, {"pork", in.PorkKg}, {"chicken", in.ChickenKg},
			{"fish", in.FishKg}, {"dairy", in.DairyKg},
			{"vegetables", in.VegetablesKg}, {"fruits", in.FruitsKg},
		} {
			if key == item.k {
				return item.v, "kg/week", true
			}
		}
	case factors.CategoryEnergy:
		if key == "electricity" && in.ElectricityKwh != nil {
			return *in.ElectricityKwh, "kWh/month", true
		}
		if key == "natural_gas" {
			return in.NaturalGasKwh, "kWh/month", true
		}
	case factors.CategoryWaste:
		if key == "landfill" && in.WasteKg != nil {
			return *in.WasteKg, "kg/week", true
		}
		if key == "recycling_credit" {
			return in.RecycledKg, "kg/week", true
		}
	case factors.CategoryConsumption:
		if key == "clothing" {
			return in.ClothingKg, "kg/month", true
		}
		if key == "electronics" {
			return in.ElectronicsItems, "items/month", true
		}
	}
	return 0, "", false
}

func activityRows(in *engine.ActivityInput, base *engine.FootprintResult, refined *engine.RefinedResult) []ActivityRecord {
	var rows []ActivityRecord
	for _, cat := range factors.Categories() {
		ratio := 1.0
		if refined != nil && base.Breakdown[cat] > 0 {
			ratio = refined.RefinedBreakdown[cat] / base.Breakdown[cat]
		}

		keys := make([]string, 0, len(base.Details[cat]))
		for key := range base.Details[cat] {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			detail := base.Details[cat][key]
			if detail.Kind != engine.DetailValue {
				continue
			}
			row := ActivityRecord{
				Category:      cat,
				ActivityType:  key,
				KgCO2Baseline: detail.KgCO2,
			}
			if amount, unit, ok := reportedAmount(in, cat, key); ok {
				row.Value = amount
				row.Unit = unit
			}
			if refined != nil {
				kg := detail.KgCO2 * ratio
				row.KgCO2Refined = &kg
			}
			rows = append(rows, row)
		}
	}
	return rows
}
