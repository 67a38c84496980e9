//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of executing one report. A failed report carries
// its error here; it never aborts the other reports in the same run.
type Outcome struct {
	Definition Definition
	Result     *Result
	Err        error
	Duration   time.Duration
}

// Run executes the given reports sequentially and returns one outcome
// per report, in input order.
func Run(ctx context.Context, db DB, defs []Definition, p Params) []Outcome {
	outcomes := make([]Outcome, len(defs))
	for i, def := range defs {
		outcomes[i] = runOne(ctx, db, def, p)
	}
	return outcomes
}

// RunParallel fans the reports out one goroutine each. Reports are
// read-only and independent, so no ordering or locking is needed; each
// outcome lands in its own slot.
func RunParallel(ctx context.Context, db DB, defs []Definition, p Params) []Outcome {
	outcomes := make([]Outcome, len(defs))

	var g errgroup.Group
	for i, def := range defs {
		g.Go(func() error {
			outcomes[i] = runOne(ctx, db, def, p)
			return nil
		})
	}
	// Errors are captured per outcome; Wait only synchronizes.
	_ = g.Wait()

	return outcomes
}

func runOne(ctx context.Context, db DB, def Definition, p Params) Outcome {
	start := time.Now()
	res, err := def.Run(ctx, db, p)
	return Outcome{
		Definition: def,
		Result:     res,
		Err:        err,
		Duration:   time.Since(start),
	}
}
