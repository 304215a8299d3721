package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/optimizer"
)

// Engine wraps an immutable catalog and bounds the number of concurrent
// optimization runs with a counting semaphore, matching spec.md §5's
// "counting semaphore with limit max(1, available_parallelism - 1)".
type Engine struct {
	catalog *catalog.Catalog
	sem     *semaphore.Weighted
	logger  *zap.Logger
}

// NewEngine returns an Engine over cat, sized by runtime.NumCPU().
func NewEngine(cat *catalog.Catalog, logger *zap.Logger) *Engine {
	limit := int64(runtime.NumCPU() - 1)
	if limit < 1 {
		limit = 1
	}
	return &Engine{catalog: cat, sem: semaphore.NewWeighted(limit), logger: logger}
}

// Optimize validates req, acquires a semaphore slot, runs one
// optimization, and translates the result into a Response. The
// semaphore is released via defer, so it is released on both normal
// return and any panic unwinding through this call.
func (e *Engine) Optimize(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return Response{}, fmt.Errorf("service: acquire semaphore: %w", err)
	}
	defer e.sem.Release(1)

	cfg := req.toConfig()

	opt, initial, err := optimizer.New(&cfg, e.catalog, nil)
	if err != nil {
		e.logger.Warn("optimize construction failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return Response{}, err
	}

	final, err := opt.Run(initial)
	if err != nil {
		e.logger.Error("optimize run failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return Response{}, err
	}

	resp := buildResponse(&cfg, e.catalog, &final)

	e.logger.Info("optimize complete",
		zap.Duration("duration", time.Since(start)),
		zap.Float64("energy", resp.Energy),
		zap.Bool("valid", resp.Valid),
	)

	return resp, nil
}

// IsInvalidItem reports whether err is an *optimizer.InvalidItemError.
func IsInvalidItem(err error) bool {
	var e *optimizer.InvalidItemError
	return errors.As(err, &e)
}

// IsInvalidState reports whether err is an *optimizer.InvalidStateError.
func IsInvalidState(err error) bool {
	var e *optimizer.InvalidStateError
	return errors.As(err, &e)
}
