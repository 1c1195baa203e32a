// Package server exposes the calculation engine over HTTP. It is
// plumbing around the core: request decoding, error mapping, history
// recording, and the atomic factor-table swap live here, never domain
// math.
package server

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotrack/ecotrack/internal/config"
	"github.com/ecotrack/ecotrack/internal/engine"
	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/history"
	"github.com/ecotrack/ecotrack/internal/logging"
	"github.com/ecotrack/ecotrack/internal/offsets"
)

// Server holds the shared state behind the HTTP handlers. The factor
// table sits behind an atomic pointer: reloads replace the whole table
// in one swap so no in-flight calculation ever observes a mix of old
// and new factors.
type Server struct {
	table       atomic.Pointer[factors.Table]
	factorsPath string
	parallel    bool
	store       *history.Store
	recommender *offsets.Recommender
	logger      zerolog.Logger
}

// New wires a Server from configuration and an initial factor table.
func New(cfg *config.Config, table *factors.Table, logger zerolog.Logger) *Server {
	s := &Server{
		factorsPath: cfg.Factors.Path,
		parallel:    cfg.Engine.Parallel,
		store: history.NewStore(
			time.Duration(cfg.History.TTLMinutes)*time.Minute,
			time.Duration(cfg.History.CleanupMinutes)*time.Minute,
		),
		recommender: offsets.NewRecommender(),
		logger:      logging.ComponentLogger(logger, "server"),
	}
	s.table.Store(table)
	return s
}

// engine builds a calculation engine over the current factor table.
// Engines are cheap value wrappers; constructing one per request is what
// keeps calculations pinned to a single table snapshot.
func (s *Server) engine() *engine.Engine {
	return engine.New(s.table.Load(), engine.WithParallel(s.parallel))
}

// ReloadFactors loads the factor table from path (or the configured
// path, or the embedded defaults) and swaps it in atomically.
func (s *Server) ReloadFactors(path string) (*factors.Table, error) {
	if path == "" {
		path = s.factorsPath
	}

	var (
		table *factors.Table
		err   error
	)
	if path == "" {
		table = factors.Default()
	} else {
		table, err = factors.Load(path)
		if err != nil {
			return nil, err
		}
	}

	s.table.Store(table)
	s.logger.Info().
		Str("operation", "reload_factors").
		Str("path", path).
		Str("version", table.Version()).
		Int("factors", table.Len()).
		Msg("factor table swapped")
	return table, nil
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/calc", s.handleCalc)
		api.POST("/refine", s.handleRefine)
		api.POST("/offset", s.handleOffsets)
		api.POST("/suggestions", s.handleSuggestions)
		api.GET("/entries", s.handleEntries)
		api.POST("/factors/reload", s.handleFactorsReload)
		api.GET("/factors", s.handleFactorsInfo)
	}

	return r
}

// requestLogger injects the server logger into the request context for
// the engine and logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logging.ContextWithLogger(c.Request.Context(), s.logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("request handled")
	}
}
