package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack/ecotrack/internal/config"
	"github.com/ecotrack/ecotrack/internal/factors"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	return New(cfg, factors.Default(), zerolog.Nop())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func samplePayload() map[string]any {
	return map[string]any{
		"commute_km":      20,
		"transport_mode":  "car_petrol",
		"beef_kg":         0.5,
		"electricity_kwh": 300,
		"waste_kg":        5,
		"recycled_kg":     3,
	}
}

func TestHealthAndRoot(t *testing.T) {
	router := newTestServer(t).Router()

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestCalcEndpoint(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	w := doJSON(t, router, http.MethodPost, "/api/calc", samplePayload())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Breakdown     map[string]float64 `json:"breakdown"`
		BaselineTotal float64            `json:"baseline_total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Breakdown, 5)
	assert.InDelta(t, 26.6, resp.Breakdown["transport"], 1e-9)
	assert.Positive(t, resp.BaselineTotal)

	// Each successful calculation records a history entry.
	assert.Equal(t, 1, s.store.Len())
}

func TestCalcEndpointErrors(t *testing.T) {
	router := newTestServer(t).Router()

	t.Run("unknown transport mode is a 400", func(t *testing.T) {
		payload := samplePayload()
		payload["transport_mode"] = "teleporter"
		w := doJSON(t, router, http.MethodPost, "/api/calc", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "transport_mode")
	})

	t.Run("missing mandatory field is a 400", func(t *testing.T) {
		payload := samplePayload()
		delete(payload, "waste_kg")
		w := doJSON(t, router, http.MethodPost, "/api/calc", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "waste_kg")
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calc", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFactorMissMapsTo422(t *testing.T) {
	// A trimmed table without beef: supplying beef is unsupported
	// activity data, not invalid user input.
	table, err := factors.Parse([]byte(`
version: "test"
factors:
  transport:
    car_petrol: {unit: km, value: 0.19, source: s}
  food:
    chicken: {unit: kg, value: 6.9, source: s}
  energy:
    electricity: {unit: kWh, value: 0.45, source: s}
  waste:
    landfill: {unit: kg, value: 0.5, source: s}
    recycling_credit: {unit: kg, value: 0.2, source: s}
  consumption:
    clothing: {unit: kg, value: 22, source: s}
`))
	require.NoError(t, err)

	s := New(config.Default(), table, zerolog.Nop())
	w := doJSON(t, s.Router(), http.MethodPost, "/api/calc", samplePayload())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "don't yet support")
}

func TestRefineEndpoint(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	payload := samplePayload()
	payload["house_size"] = 120
	payload["occupants"] = 3

	w := doJSON(t, router, http.MethodPost, "/api/refine", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		RefinedTotal float64  `json:"refined_total"`
		Insights     []string `json:"insights"`
		Baseline     struct {
			BaselineTotal float64 `json:"baseline_total"`
		} `json:"baseline"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Positive(t, resp.RefinedTotal)
	assert.NotEmpty(t, resp.Insights)
	assert.Positive(t, resp.Baseline.BaselineTotal)
	assert.Equal(t, 1, s.store.Len())
}

func TestOffsetEndpoint(t *testing.T) {
	router := newTestServer(t).Router()

	w := doJSON(t, router, http.MethodPost, "/api/offset?footprint_kg=150", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Recommendations []map[string]any `json:"recommendations"`
		TotalFootprint  float64          `json:"total_footprint"`
		Message         string           `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recommendations, 3)
	assert.InDelta(t, 150.0, resp.TotalFootprint, 1e-9)
	assert.Contains(t, resp.Message, "3 offset options")

	t.Run("non-positive footprint is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/offset?footprint_kg=0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing parameter is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/offset", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric parameter is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/offset?footprint_kg=lots", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSuggestionsEndpoint(t *testing.T) {
	router := newTestServer(t).Router()

	w := doJSON(t, router, http.MethodPost, "/api/suggestions", map[string]float64{
		"transport":   26.6,
		"food":        30.0,
		"energy":      31.2,
		"waste":       0.4,
		"consumption": 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Suggestions []struct {
			Category string `json:"category"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 3)
	assert.Equal(t, "energy", resp.Suggestions[0].Category)
}

func TestEntriesEndpoint(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	for i := 0; i < 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/calc", samplePayload())
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/entries?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)

	w = doJSON(t, router, http.MethodGet, "/api/entries?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFactorsReloadSwapsAtomically(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	w := doJSON(t, router, http.MethodGet, "/api/factors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024.1")

	dir := t.TempDir()
	path := filepath.Join(dir, "factors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "custom"
factors:
  transport:
    car_petrol: {unit: km, value: 0.10, source: s}
  food:
    beef: {unit: kg, value: 60, source: s}
  energy:
    electricity: {unit: kWh, value: 0.45, source: s}
  waste:
    landfill: {unit: kg, value: 0.5, source: s}
    recycling_credit: {unit: kg, value: 0.2, source: s}
  consumption:
    clothing: {unit: kg, value: 22, source: s}
`), 0600))

	w = doJSON(t, router, http.MethodPost, "/api/factors/reload", map[string]string{"path": path})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "custom")

	// Calculations now use the swapped table: 20 x 0.10 x 7 = 14.
	w = doJSON(t, router, http.MethodPost, "/api/calc", samplePayload())
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Breakdown map[string]float64 `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 14.0, resp.Breakdown["transport"], 1e-9)

	// A bad table is rejected and the live table stays.
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{{"), 0600))
	w = doJSON(t, router, http.MethodPost, "/api/factors/reload", map[string]string{"path": bad})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/factors", nil)
	assert.Contains(t, w.Body.String(), "custom")
}
