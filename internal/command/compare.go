// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/meta"
)

func compareCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Meta:      meta,
		Name:      "compare",
		Aliases:   []string{"cmp"},
		Usage:     "compare an expected document with an actual one",
		UsageText: "jcheck compare <expected> <actual> [options]",
		Description: "Documents are file paths, s3://bucket/key URIs or - for stdin, " +
			"optionally followed by ::selector to compare a sub-document. " +
			"YAML and sealed documents are converted before comparison.",
		Report: true,
		Source: true,
		Action: compareCommandAction,
	}).Build()
}

func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := ComparisonRunner{
		Load: func(ctx context.Context, cmd *cli.Command) ([]byte, []byte, error) {
			args := cmd.Args().Slice()
			if len(args) != 2 {
				return nil, nil, fmt.Errorf("compare needs <expected> and <actual>, got %d argument(s)", len(args))
			}
			return LoadPair(ctx, cmd, args[0], args[1])
		},
	}
	return runner.Run(ctx, cmd)
}
