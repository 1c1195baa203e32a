package offsets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack/ecotrack/internal/engine"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("0x%016d", n)
	}
}

func TestRecommend(t *testing.T) {
	r := NewRecommender(WithTxnIDSource(sequentialIDs()))

	projects, err := r.Recommend(150.0)
	require.NoError(t, err)
	require.Len(t, projects, 3)

	// Catalog order and pricing: total = kg/1000 x cost_per_ton.
	assert.Equal(t, "Amazon Rainforest Reforestation", projects[0].Name)
	assert.Equal(t, TypeReforestation, projects[0].Type)
	assert.InDelta(t, 15.0, projects[0].CostPerTonUSD, 1e-9)
	assert.InDelta(t, 2.25, projects[0].TotalCostUSD, 1e-9)

	assert.Equal(t, TypeRenewableEnergy, projects[1].Type)
	assert.InDelta(t, 3.75, projects[1].TotalCostUSD, 1e-9)
	assert.InDelta(t, 3.0, projects[2].TotalCostUSD, 1e-9)

	for i, p := range projects {
		assert.Contains(t, p.Impact, "150.0 kg")
		assert.Contains(t, p.Impact, "equivalent to driving")
		assert.Equal(t, fmt.Sprintf("0x%016d", i+1), p.TransactionID)
		assert.Contains(t, p.CertificateRef, "certificates/")
		assert.NotContains(t, p.CertificateRef, "0x")
	}
}

func TestRecommendRejectsNonPositiveFootprint(t *testing.T) {
	r := NewRecommender()

	for _, kg := range []float64{0, -5} {
		_, err := r.Recommend(kg)
		require.Error(t, err, "kg=%v", kg)
		assert.ErrorIs(t, err, engine.ErrInvalidInput)

		var iie *engine.InvalidInputError
		require.ErrorAs(t, err, &iie)
		assert.Equal(t, "footprint_kg", iie.Field)
	}
}

func TestRecommendSmallFootprintOmitsEquivalency(t *testing.T) {
	r := NewRecommender(WithTxnIDSource(sequentialIDs()))

	projects, err := r.Recommend(0.5)
	require.NoError(t, err)
	for _, p := range projects {
		assert.NotContains(t, p.Impact, "equivalent")
	}
}

func TestSyntheticTxnIDsAreUnique(t *testing.T) {
	r := NewRecommender()
	projects, err := r.Recommend(100)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, p := range projects {
		assert.Len(t, p.TransactionID, 34) // "0x" + 32 hex chars
		assert.False(t, seen[p.TransactionID])
		seen[p.TransactionID] = true
	}
}
