// Package stress runs a delegate many times on concurrent workers with seeded random delays, to
// shake out races in components that claim to be safe for concurrent use. The seed is always
// reported so a failing run can be replayed.
package stress

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fixturectl/pkg/logging"
)

// Delegate is one unit of stress work. i is the iteration number.
type Delegate func(ctx context.Context, i int) error

// Harness configures a stress run.
type Harness struct {
	// Seed for the delay source; zero seeds from the wall clock
	Seed int64
	// MaxDelay bounds the random delay before each invocation; zero disables delays
	MaxDelay time.Duration
	// Workers is the number of concurrent goroutines; values below one mean one
	Workers int
}

// Report summarizes a stress run.
type Report struct {
	Seed       int64
	Iterations int
	Completed  int64
	Duration   time.Duration
}

func (r Report) String() string {
	return fmt.Sprintf("seed=%d iterations=%d completed=%d duration=%s", r.Seed, r.Iterations, r.Completed, r.Duration)
}

// Run invokes fn iterations times. The first error cancels the remaining work and is returned
// together with the report.
func (h Harness) Run(ctx context.Context, iterations int, fn Delegate) (Report, error) {
	seed := h.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := h.Workers
	if workers < 1 {
		workers = 1
	}

	// delays are drawn up front so the schedule depends only on the seed
	rng := rand.New(rand.NewSource(seed))
	delays := make([]time.Duration, iterations)
	if h.MaxDelay > 0 {
		for i := range delays {
			delays[i] = time.Duration(rng.Int63n(int64(h.MaxDelay) + 1))
		}
	}

	report := Report{Seed: seed, Iterations: iterations}
	logging.Info("Stress", "Starting %d iterations on %d workers (seed %d)", iterations, workers, seed)
	start := time.Now()

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < iterations; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := sleep(gctx, delays[i]); err != nil {
				return err
			}
			if err := fn(gctx, i); err != nil {
				return fmt.Errorf("iteration %d (seed %d): %w", i, seed, err)
			}
			completed.Add(1)
			return nil
		})
	}
	err := g.Wait()

	report.Completed = completed.Load()
	report.Duration = time.Since(start)
	if err != nil {
		logging.Error("Stress", err, "Stress run failed after %d iterations", report.Completed)
	} else {
		logging.Info("Stress", "Stress run finished: %s", report)
	}
	return report, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
