// Package offsets produces priced carbon offset recommendations for a
// calculated footprint. The catalog is a fixed set of project
// archetypes; pricing is derived arithmetic, nothing is learned and
// nothing is persisted here.
package offsets

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ecotrack/ecotrack/internal/engine"
	"github.com/ecotrack/ecotrack/internal/equiv"
)

// ProjectType classifies an offset project archetype.
type ProjectType string

const (
	TypeReforestation    ProjectType = "reforestation"
	TypeRenewableEnergy  ProjectType = "renewable_energy"
	TypeEnergyEfficiency ProjectType = "energy_efficiency"
)

// KgPerTon converts a kg CO2e footprint to the tons offsets are priced in.
const KgPerTon = 1000.0

// Project is one priced offset recommendation.
type Project struct {
	Name           string      `json:"project_name"`
	Type           ProjectType `json:"project_type"`
	CostPerTonUSD  float64     `json:"cost_per_ton"`
	TotalCostUSD   float64     `json:"total_cost"`
	Impact         string      `json:"impact_description"`
	TransactionID  string      `json:"transaction_id"`
	CertificateRef string      `json:"certificate_ref"`
}

// archetype is a catalog entry before pricing against a footprint.
type archetype struct {
	name       string
	kind       ProjectType
	costPerTon float64
	impact     string // fmt template taking the formatted kg figure
}

// catalog returns the fixed project archetypes in recommendation order.
func catalog() []archetype {
	return []archetype{
		{
			name:       "Amazon Rainforest Reforestation",
			kind:       TypeReforestation,
			costPerTon: 15.0,
			impact:     "Plant trees to offset %s kg of CO2 emissions",
		},
		{
			name:       "Solar Energy Project - India",
			kind:       TypeRenewableEnergy,
			costPerTon: 25.0,
			impact:     "Support solar energy development to offset %s kg of CO2",
		},
		{
			name:       "Wind Farm - Texas",
			kind:       TypeRenewableEnergy,
			costPerTon: 20.0,
			impact:     "Invest in wind energy to offset %s kg of CO2",
		},
	}
}

// Recommender prices the catalog against footprints.
type Recommender struct {
	newTxnID func() string
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithTxnIDSource overrides the synthetic transaction id generator, used
// by tests to pin output.
func WithTxnIDSource(gen func() string) Option {
	return func(r *Recommender) { r.newTxnID = gen }
}

// NewRecommender builds a Recommender with synthetic hex transaction ids.
func NewRecommender(opts ...Option) *Recommender {
	r := &Recommender{newTxnID: syntheticTxnID}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns one priced Project per catalog archetype for a
// footprint in kg CO2e. Total cost is footprint in tons times the
// archetype's per-ton price. A non-positive footprint is a caller error.
func (r *Recommender) Recommend(totalKg float64) ([]Project, error) {
	if totalKg <= 0 {
		return nil, &engine.InvalidInputError{
			Field:  "footprint_kg",
			Reason: fmt.Sprintf("must be > 0, got %v", totalKg),
		}
	}

	kgText := equiv.FormatKg(totalKg)
	eq := equiv.ForKilograms(totalKg)

	entries := catalog()
	projects := make([]Project, 0, len(entries))
	for _, a := range entries {
		impact := fmt.Sprintf(a.impact, kgText)
		if !eq.IsEmpty {
			impact = fmt.Sprintf("%s (%s)", impact, eq.DisplayText)
		}

		txn := r.newTxnID()
		projects = append(projects, Project{
			Name:           a.name,
			Type:           a.kind,
			CostPerTonUSD:  a.costPerTon,
			TotalCostUSD:   totalKg / KgPerTon * a.costPerTon,
			Impact:         impact,
			TransactionID:  txn,
			CertificateRef: fmt.Sprintf("https://registry.ecotrack.example/certificates/%s", strings.TrimPrefix(txn, "0x")),
		})
	}
	return projects, nil
}

// syntheticTxnID mimics a chain transaction hash; there is no chain
// behind it, the id only has to be unique and stable per response.
func syntheticTxnID() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
