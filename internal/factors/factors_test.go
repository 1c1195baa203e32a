package factors

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	require.NotNil(t, table)
	assert.Equal(t, "2024.1", table.Version())
	assert.Positive(t, table.Len())

	// Every declared category must be populated.
	for _, cat := range Categories() {
		assert.NotEmpty(t, table.Subtypes(cat), "category %s", cat)
	}
}

func TestLookup(t *testing.T) {
	table := Default()

	tests := []struct {
		name      string
		category  Category
		subtype   string
		wantValue float64
		wantUnit  string
		wantErr   bool
	}{
		{
			name:      "petrol car",
			category:  CategoryTransport,
			subtype:   "car_petrol",
			wantValue: 0.19,
			wantUnit:  "km",
		},
		{
			name:      "beef",
			category:  CategoryFood,
			subtype:   "beef",
			wantValue: 60.0,
			wantUnit:  "kg",
		},
		{
			name:      "electricity",
			category:  CategoryEnergy,
			subtype:   "electricity",
			wantValue: 0.45,
			wantUnit:  "kWh",
		},
		{
			name:      "walking is a verified zero, not a miss",
			category:  CategoryTransport,
			subtype:   "walking",
			wantValue: 0.0,
			wantUnit:  "km",
		},
		{
			name:     "unknown transport subtype",
			category: CategoryTransport,
			subtype:  "teleporter",
			wantErr:  true,
		},
		{
			name:     "unknown food subtype",
			category: CategoryFood,
			subtype:  "unobtainium",
			wantErr:  true,
		},
		{
			name:     "unknown category",
			category: Category("aviation"),
			subtype:  "car_petrol",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := table.Lookup(tt.category, tt.subtype)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrFactorNotFound)

				var nfe *FactorNotFoundError
				require.ErrorAs(t, err, &nfe)
				assert.Equal(t, tt.subtype, nfe.Subtype)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantValue, f.KgCO2PerUnit, 1e-9)
			assert.Equal(t, tt.wantUnit, f.Unit)
			assert.NotEmpty(t, f.Source)
		})
	}
}

func TestParseRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "negative factor",
			yaml: `
version: "test"
factors:
  transport:
    car_petrol: {unit: km, value: -0.1, source: s}
  food:
    beef: {unit: kg, value: 60, source: s}
  energy:
    electricity: {unit: kWh, value: 0.45, source: s}
  waste:
    landfill: {unit: kg, value: 0.5, source: s}
  consumption:
    clothing: {unit: kg, value: 22, source: s}
`,
		},
		{
			name: "missing unit",
			yaml: `
version: "test"
factors:
  transport:
    car_petrol: {value: 0.19, source: s}
  food:
    beef: {unit: kg, value: 60, source: s}
  energy:
    electricity: {unit: kWh, value: 0.45, source: s}
  waste:
    landfill: {unit: kg, value: 0.5, source: s}
  consumption:
    clothing: {unit: kg, value: 22, source: s}
`,
		},
		{
			name: "waste without recycling credit",
			yaml: `
version: "test"
factors:
  transport:
    car_petrol: {unit: km, value: 0.19, source: s}
  food:
    beef: {unit: kg, value: 60, source: s}
  energy:
    electricity: {unit: kWh, value: 0.45, source: s}
  waste:
    landfill: {unit: kg, value: 0.5, source: s}
  consumption:
    clothing: {unit: kg, value: 22, source: s}
`,
		},
		{
			name: "missing category",
			yaml: `
version: "test"
factors:
  transport:
    car_petrol: {unit: km, value: 0.19, source: s}
`,
		},
		{
			name: "not yaml",
			yaml: `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factors.yaml")
	require.NoError(t, os.WriteFile(path, defaultFactorsYAML, 0600))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), table.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
