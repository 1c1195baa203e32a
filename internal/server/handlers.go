package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecotrack/ecotrack/internal/engine"
	"github.com/ecotrack/ecotrack/internal/equiv"
	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/history"
	"github.com/ecotrack/ecotrack/internal/suggest"
)

// offsetResponse is the envelope around offset recommendations.
type offsetResponse struct {
	Recommendations []offsetsProject `json:"recommendations"`
	TotalFootprint  float64          `json:"total_footprint"`
	Message         string           `json:"message"`
}

// offsetsProject aliases the offsets type to keep the JSON contract in
// one place without importing the package into API consumers.
type offsetsProject = struct {
	Name           string  `json:"project_name"`
	Type           string  `json:"project_type"`
	CostPerTonUSD  float64 `json:"cost_per_ton"`
	TotalCostUSD   float64 `json:"total_cost"`
	Impact         string  `json:"impact_description"`
	TransactionID  string  `json:"transaction_id"`
	CertificateRef string  `json:"certificate_ref"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "EcoTrack carbon footprint API",
		"status":  "running",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// handleCalc computes a baseline footprint and records a history entry.
func (s *Server) handleCalc(c *gin.Context) {
	var in engine.ActivityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload", "detail": err.Error()})
		return
	}

	result, err := s.engine().CalculateBaseline(c.Request.Context(), &in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.store.Add(history.FromBaseline(&in, result))
	c.JSON(http.StatusOK, result)
}

// handleRefine computes a baseline and applies the refinement layer.
func (s *Server) handleRefine(c *gin.Context) {
	var in engine.ActivityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload", "detail": err.Error()})
		return
	}

	eng := s.engine()
	baseline, err := eng.CalculateBaseline(c.Request.Context(), &in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	refined, err := eng.Refine(c.Request.Context(), baseline, &in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.store.Add(history.FromRefined(&in, refined))
	c.JSON(http.StatusOK, refined)
}

// handleOffsets prices the offset catalog for a footprint given via the
// footprint_kg query parameter.
func (s *Server) handleOffsets(c *gin.Context) {
	raw := c.Query("footprint_kg")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "footprint_kg query parameter required"})
		return
	}
	kg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "footprint_kg must be a number"})
		return
	}

	projects, err := s.recommender.Recommend(kg)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]offsetsProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, offsetsProject{
			Name:           p.Name,
			Type:           string(p.Type),
			CostPerTonUSD:  p.CostPerTonUSD,
			TotalCostUSD:   p.TotalCostUSD,
			Impact:         p.Impact,
			TransactionID:  p.TransactionID,
			CertificateRef: p.CertificateRef,
		})
	}

	c.JSON(http.StatusOK, offsetResponse{
		Recommendations: out,
		TotalFootprint:  kg,
		Message:         fmt.Sprintf("Found %d offset options for %s kg CO2", len(out), equiv.FormatKg(kg)),
	})
}

// handleSuggestions ranks reduction tips for a posted breakdown.
func (s *Server) handleSuggestions(c *gin.Context) {
	var breakdown map[factors.Category]float64
	if err := c.ShouldBindJSON(&breakdown); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggest.Rank(breakdown)})
}

// handleEntries returns recent history entries, newest first.
func (s *Server) handleEntries(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, s.store.Recent(limit))
}

// handleFactorsReload swaps in a freshly loaded factor table.
func (s *Server) handleFactorsReload(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload", "detail": err.Error()})
			return
		}
	}

	table, err := s.ReloadFactors(req.Path)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "factor table rejected", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"version": table.Version(), "factors": table.Len()})
}

// handleFactorsInfo reports the live factor table version.
func (s *Server) handleFactorsInfo(c *gin.Context) {
	table := s.table.Load()
	c.JSON(http.StatusOK, gin.H{"version": table.Version(), "factors": table.Len()})
}

// writeError maps core errors onto HTTP statuses. Invalid input is the
// caller's to fix; a factor miss means the factor data set does not
// cover a supplied activity type, which deserves different wording.
func (s *Server) writeError(c *gin.Context, err error) {
	var iie *engine.InvalidInputError
	if errors.As(err, &iie) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "please check your input",
			"field": iie.Field,
			"detail": iie.Reason,
		})
		return
	}

	var nfe *factors.FactorNotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "we don't yet support this activity type",
			"detail": nfe.Error(),
		})
		return
	}

	s.logger.Error().Err(err).Msg("calculation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
}
