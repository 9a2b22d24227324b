// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/cacheutil"
	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/script"
	"github.com/jcheck/jcheck/internal/source"
	"github.com/jcheck/jcheck/internal/suite"
)

func runCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Meta:      meta,
		Name:      "run",
		Usage:     "evaluate a script and print or check its result",
		UsageText: "jcheck run <script.hcl> [--input doc] [--expect doc] [options]",
		Description: "The script's result attribute is encoded as JSON. With --expect " +
			"the result is compared with the expected document and reported.",
		Report: true,
		Source: true,
		ExtraFlags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "document bound to input in the script",
			},
			&cli.StringFlag{
				Name:    "expect",
				Aliases: []string{"e"},
				Usage:   "document the result must be equivalent to",
			},
			&cli.BoolFlag{
				Name:  "cache",
				Usage: "reuse the cached result for the same script and input",
			},
			newTimeoutFlag(suite.DefaultTimeout),
		},
		Action: runCommandAction,
	}).Build()
}

func runCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("run needs exactly one script, got %d", len(args))
	}
	path := args[0]

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	opts := LoadOptions(cmd)
	var input []byte
	if spec := cmd.String("input"); spec != "" {
		if input, err = source.Load(ctx, spec, opts...); err != nil {
			return fmt.Errorf("input: %w", err)
		}
	}

	evaluate := func() ([]byte, error) {
		return runScript(ctx, src, path, input, cmd.Duration("timeout"))
	}

	var result []byte
	if cmd.Bool("cache") {
		key := cacheutil.Key(string(src), string(input))
		result, err = cacheutil.Remember([]string{"run"}, key, evaluate)
	} else {
		result, err = evaluate()
	}
	if err != nil {
		return err
	}

	spec := cmd.String("expect")
	if spec == "" {
		pretty, err := prettyJSON(result)
		if err != nil {
			return err
		}
		_, err = writer(cmd).Write(pretty)
		return err
	}

	expected, err := source.Load(ctx, spec, opts...)
	if err != nil {
		return fmt.Errorf("expected: %w", err)
	}
	ms, err := compare.CompareBytes(expected, result)
	if err != nil {
		return err
	}
	return Emit(cmd, ms, expected, result)
}

// runScript evaluates src under a deadline. A zero timeout means none.
func runScript(ctx context.Context, src []byte, filename string, input []byte, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := script.Run(ctx, src, filename, input)
	log.Debugf("script %s evaluated in %s", filename, time.Since(start))
	return out, err
}
