// Package engine implements the hybrid emission calculation engine: the
// deterministic rule-based aggregator that converts heterogeneous
// activity inputs into a categorized, itemized carbon total, plus the
// bounded refinement layer on top of it.
//
// Every operation is a pure, synchronous computation over its inputs.
// The engine holds no mutable state beyond the factor table reference it
// was constructed with, performs no I/O, and is safe for concurrent use.
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/logging"
)

// Engine evaluates footprint calculations against one immutable factor
// table. Construct a new Engine to calculate against a different table;
// hot reload is the caller's atomic-swap concern, never a mutation here.
type Engine struct {
	table    *factors.Table
	now      func() time.Time
	parallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the timestamp source. The baseline math never
// reads the clock; it only stamps the result, so tests inject a fixed
// clock to get byte-identical output.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithParallel evaluates the five category calculators concurrently.
// Results land in fixed slots and are summed in the declared category
// order, so output is bit-identical to sequential evaluation.
func WithParallel(parallel bool) Option {
	return func(e *Engine) { e.parallel = parallel }
}

// New builds an Engine over the given factor table.
func New(table *factors.Table, opts ...Option) *Engine {
	e := &Engine{
		table: table,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateBaseline validates the input, runs the five category
// calculators, and aggregates their subtotals into a FootprintResult.
//
// It returns an InvalidInputError for missing mandatory fields, negative
// values, or an unrecognized transport mode, and propagates
// factors.FactorNotFoundError unchanged when the factor set does not
// cover a supplied activity type. Partial results are never returned.
func (e *Engine) CalculateBaseline(ctx context.Context, in *ActivityInput) (*FootprintResult, error) {
	log := logging.FromContext(ctx)

	if in == nil {
		return nil, invalidInput("input", "payload missing")
	}
	if err := in.Validate(); err != nil {
		log.Debug().Str("component", "engine").Err(err).Msg("baseline input rejected")
		return nil, err
	}

	results, err := e.runCalculators(ctx, in)
	if err != nil {
		log.Debug().Str("component", "engine").Err(err).Msg("category calculation failed")
		return nil, err
	}

	return e.aggregate(results), nil
}

// runCalculators evaluates all category calculators into fixed slots,
// sequentially or concurrently depending on configuration.
func (e *Engine) runCalculators(ctx context.Context, in *ActivityInput) ([]CategoryResult, error) {
	calcs := calculators()
	results := make([]CategoryResult, len(calcs))

	if !e.parallel {
		for i, calc := range calcs {
			r, err := calc(e.table, in)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	g, _ := errgroup.WithContext(ctx)
	for i, calc := range calcs {
		i, calc := i, calc
		g.Go(func() error {
			r, err := calc(e.table, in)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// aggregate assembles category results into a FootprintResult. The total
// is summed in the fixed category order so output stays byte-reproducible
// regardless of how the calculators were scheduled. The breakdown keeps
// one entry per category even at zero.
func (e *Engine) aggregate(results []CategoryResult) *FootprintResult {
	breakdown := make(map[factors.Category]float64, len(results))
	details := make(map[factors.Category]map[string]DetailEntry, len(results))
	total := 0.0

	for _, r := range results {
		breakdown[r.Category] = r.SubtotalKg
		details[r.Category] = r.Details
		total += r.SubtotalKg
	}

	return &FootprintResult{
		Breakdown:       breakdown,
		BaselineTotalKg: total,
		Details:         details,
		Timestamp:       e.now().UTC(),
	}
}
