package inference

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// Result is the outcome of one inference request.
type Result struct {
	// Observed is the damage value being explained.
	Observed int
	// Estimate is the conservative interval searched by the verifier.
	Estimate Bounds
	// Histogram is the trimmed per-stat roll count.
	Histogram Histogram
}

// Empty reports whether no stat explains the observation.
func (r Result) Empty() bool {
	return r.Histogram.Empty()
}

// Support returns the trimmed [min, max] of stats with at least one match.
func (r Result) Support() Bounds {
	return r.Histogram.Bounds()
}

// Infer runs Estimate then Verify sequentially.
//
// Postcondition: Returns a Result (possibly Empty), or an error wrapping
// damage.ErrInvalidInput. The two are never both set.
func Infer(observed int, c damage.BattleContext) (Result, error) {
	b, err := Estimate(observed, c)
	if err != nil {
		return Result{}, err
	}
	return Result{Observed: observed, Estimate: b, Histogram: Verify(b, observed, c)}, nil
}

// Engine runs inference requests, verifying across a fixed number of workers
// and logging each request.
type Engine struct {
	workers int
	logger  *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: logger must be non-nil.
// Postcondition: workers < 1 is treated as 1.
func NewEngine(workers int, logger *zap.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers, logger: logger}
}

// Infer estimates and verifies the stats consistent with observed under c.
//
// Postcondition: Returns the same Result as the package-level Infer, or an
// error wrapping damage.ErrInvalidInput, or ctx.Err().
func (e *Engine) Infer(ctx context.Context, observed int, c damage.BattleContext) (Result, error) {
	start := time.Now()

	b, err := Estimate(observed, c)
	if err != nil {
		e.logger.Debug("inference rejected",
			zap.Int("observed", observed),
			zap.Error(err),
		)
		return Result{}, err
	}

	var h Histogram
	if e.workers == 1 {
		h = Verify(b, observed, c)
	} else if h, err = VerifyParallel(ctx, b, observed, c, e.workers); err != nil {
		return Result{}, err
	}

	support := h.Bounds()
	e.logger.Debug("inference complete",
		zap.Int("observed", observed),
		zap.Int("estimate_min", b.Min),
		zap.Int("estimate_max", b.Max),
		zap.Int("support_min", support.Min),
		zap.Int("support_max", support.Max),
		zap.Int("candidates", len(h.Counts)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Result{Observed: observed, Estimate: b, Histogram: h}, nil
}
