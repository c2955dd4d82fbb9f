package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/tabular/utils/logger"
)

// RunFunc performs a single independent run seeded with seed and
// returns its trace. It should stop early with the context's error once
// ctx is done.
type RunFunc func(ctx context.Context, run int, seed uint64) ([]float64,
	error)

// RepeatConfig configures a set of independent runs
type RepeatConfig struct {
	Runs        int
	Parallelism int    // Number of runs performed at once, at least 1
	Seed        uint64 // Run i is seeded with Seed+i
	Length      int    // Required length of each trace

	// OnRunDone, if set, is called after each successful run, from a
	// single goroutine, in the order runs finish
	OnRunDone func(run int)
	Logger    logrus.FieldLogger
}

// Validate ensures that the RepeatConfig is valid
func (c RepeatConfig) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("validate: at least one run is required, got %v",
			c.Runs)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("validate: parallelism must be positive, got %v",
			c.Parallelism)
	}
	if c.Length < 0 {
		return fmt.Errorf("validate: trace length must be non-negative, "+
			"got %v", c.Length)
	}
	return nil
}

type runWork struct {
	run  int
	seed uint64
}

type runResult struct {
	run   int
	trace []float64
	err   error
}

// Repeat performs c.Runs independent runs of fn, at most c.Parallelism
// at a time, and returns the element-wise mean of their traces. Traces
// are summed in run order so that the result does not depend on the
// order in which runs finish.
func Repeat(ctx context.Context, c RepeatConfig, fn RunFunc) ([]float64,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	log := logger.OrDiscard(c.Logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCh := make(chan runWork)
	resultsCh := make(chan runResult, c.Runs)

	wg := new(sync.WaitGroup)
	for i := 0; i < c.Parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				trace, err := fn(ctx, work.run, work.seed)
				if err == nil && len(trace) != c.Length {
					err = fmt.Errorf("trace has length %d, expected %d",
						len(trace), c.Length)
				}
				resultsCh <- runResult{work.run, trace, err}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for run := 0; run < c.Runs; run++ {
			select {
			case <-ctx.Done():
				return
			case workCh <- runWork{run, c.Seed + uint64(run)}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	traces := make([][]float64, c.Runs)
	var firstErr error
	for result := range resultsCh {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("repeat: run %d: %w", result.run,
					result.err)
				cancel()
			}
			continue
		}
		traces[result.run] = result.trace

		log.WithField("run", result.run).Debug("run finished")
		if c.OnRunDone != nil {
			c.OnRunDone(result.run)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	for run, trace := range traces {
		if trace == nil {
			return nil, fmt.Errorf("repeat: run %d not performed: %w", run,
				ctx.Err())
		}
	}

	mean := make([]float64, c.Length)
	for _, trace := range traces {
		floats.Add(mean, trace)
	}
	floats.Scale(1/float64(c.Runs), mean)

	return mean, nil
}
