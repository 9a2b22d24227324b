// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package suite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/script"
	"github.com/jcheck/jcheck/internal/source"
	"github.com/jcheck/jcheck/internal/stats"
)

// DefaultTimeout bounds a single case when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

var errStop = errors.New("fail fast")

// Options controls Run.
type Options struct {
	// Parallel caps concurrently running cases; <= 0 means runtime.NumCPU.
	Parallel int
	Timeout  time.Duration
	// FailFast skips the remaining cases after the first failure or error.
	FailFast bool
	Load     []source.Option
}

// Result is the outcome of one case.
type Result struct {
	Case       Case               `json:"case" yaml:"case"`
	Outcome    stats.Outcome      `json:"outcome" yaml:"outcome"`
	Mismatches []compare.Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	Err        error              `json:"-" yaml:"-"`
	Duration   time.Duration      `json:"duration" yaml:"duration"`
}

// Run executes cases concurrently. Results keep the order of cases. The
// returned error is only set when ctx itself ends.
func Run(ctx context.Context, cases []Case, opts Options) ([]Result, error) {
	limit := opts.Parallel
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log.Debugf("suite: %d cases, parallel=%d, timeout=%s", len(cases), limit, timeout)

	results := make([]Result, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, c := range cases {
		g.Go(func() error {
			if gctx.Err() != nil {
				results[i] = Result{Case: c, Outcome: stats.Skipped}
				return nil
			}

			results[i] = runCase(gctx, c, timeout, opts.Load)
			log.Debugf("case %s: %s in %s", c.Name, results[i].Outcome, results[i].Duration)
			if opts.FailFast && results[i].Outcome != stats.Passed {
				return errStop
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errStop) {
		return results, err
	}
	return results, ctx.Err()
}

// Summarize tallies results.
func Summarize(results []Result) *stats.Suite {
	s := &stats.Suite{}
	for _, r := range results {
		s.Record(r.Case.Name, r.Outcome, r.Duration)
	}
	return s
}

// runCase compares one case under its own deadline. Work that overruns the
// deadline is abandoned.
func runCase(ctx context.Context, c Case, timeout time.Duration, load []source.Option) Result {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan Result, 1)
	go func() { done <- compareCase(cctx, c, load) }()

	var r Result
	select {
	case r = <-done:
	case <-cctx.Done():
		r = Result{Case: c, Outcome: stats.Errored, Err: fmt.Errorf("%s: %w", c.Name, cctx.Err())}
		if ctx.Err() != nil {
			r.Outcome = stats.Skipped
		}
	}
	r.Duration = time.Since(start)
	return r
}

func compareCase(ctx context.Context, c Case, load []source.Option) Result {
	r := Result{Case: c}

	expected, err := source.Load(ctx, c.Expected, load...)
	if err != nil {
		return r.fail(err)
	}
	actual, err := produceActual(ctx, c, load)
	if err != nil {
		return r.fail(err)
	}

	ms, err := compare.CompareBytes(expected, actual)
	if err != nil {
		return r.fail(err)
	}
	r.Mismatches = ms
	r.Outcome = stats.Passed
	if len(ms) > 0 {
		r.Outcome = stats.Failed
	}
	return r
}

func produceActual(ctx context.Context, c Case, load []source.Option) ([]byte, error) {
	if c.Script == "" {
		return source.Load(ctx, c.Actual, load...)
	}

	src, err := os.ReadFile(c.Script)
	if err != nil {
		return nil, err
	}
	var input []byte
	if c.Input != "" {
		if input, err = source.Load(ctx, c.Input, load...); err != nil {
			return nil, err
		}
	}
	return script.Run(ctx, src, c.Script, input)
}

func (r Result) fail(err error) Result {
	r.Outcome = stats.Errored
	r.Err = fmt.Errorf("%s: %w", r.Case.Name, err)
	return r
}
