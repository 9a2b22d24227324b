// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/meta"
)

// CommandBuilder constructs sub-commands sharing the report and source flag
// sets.
type CommandBuilder struct {
	Meta        meta.Meta
	Name        string
	Aliases     []string
	Usage       string
	UsageText   string
	Description string

	// Report adds the report flags.
	Report bool
	// Source adds the document loading flags.
	Source bool

	ExtraFlags []cli.Flag
	Action     cli.ActionFunc
}

// Build creates the cli.Command. Flags read config values namespaced by the
// command name.
func (b *CommandBuilder) Build() *cli.Command {
	cfgPath := b.Meta.Config.Source

	var flags []cli.Flag
	if b.Report {
		flags = append(flags, NewReportFlags(b.Name, cfgPath)...)
	}
	if b.Source {
		flags = append(flags, NewSourceFlags(b.Name, cfgPath)...)
	}
	flags = append(flags, b.ExtraFlags...)

	return &cli.Command{
		Name:        b.Name,
		Aliases:     b.Aliases,
		Usage:       b.Usage,
		UsageText:   b.UsageText,
		Description: b.Description,
		Flags:       flags,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Action: b.Action,
	}
}
