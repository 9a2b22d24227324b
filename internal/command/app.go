// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/config"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/version"
)

// InitApp builds the root command. The first argument after the binary names
// the sub-command and doubles as the config namespace.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	m := meta.Meta{
		Args:        args,
		Context:     ctx,
		StartingDir: sd,
	}
	ns := m.Namespace()
	config.SetNamespace(ns)

	// A missing config file is not an error; flags fall back to env vars and
	// defaults.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}
	m.Config = cfg

	app := &cli.Command{
		Name:    "jcheck",
		Usage:   "semantic JSON equivalence checker",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "jcheck version info",
				HideDefault: true,
			},
		},
		HideVersion: true,
		Metadata: map[string]any{
			"meta": m,
		},
	}

	app.Commands = append(app.Commands,
		compareCommandBuilder(m),
		runCommandBuilder(m),
		suiteCommandBuilder(m),
		replCommandBuilder(m),
		sealCommandBuilder(m),
		pluginsCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
