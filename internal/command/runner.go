// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/log"
)

// LoadFn produces the expected and actual documents for a comparison.
type LoadFn func(ctx context.Context, cmd *cli.Command) (expected, actual []byte, err error)

// ComparisonRunner is the common action for commands ending in a
// comparison: load, compare, report.
type ComparisonRunner struct {
	Load LoadFn
}

// Run executes the comparison.
func (r ComparisonRunner) Run(ctx context.Context, cmd *cli.Command) error {
	expected, actual, err := r.Load(ctx, cmd)
	if err != nil {
		return err
	}

	ms, err := compare.CompareBytes(expected, actual)
	if err != nil {
		return err
	}
	log.Debugf("%s: %d mismatches", cmd.Name, len(ms))

	return Emit(cmd, ms, expected, actual)
}
