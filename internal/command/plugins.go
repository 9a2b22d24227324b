// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/plugin"
	"github.com/jcheck/jcheck/internal/script"
)

const builtinProvider = "builtin"

func pluginsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Meta:      meta,
		Name:      "plugins",
		Usage:     "list the functions available to scripts",
		UsageText: "jcheck plugins [--all] [options]",
		ExtraFlags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format (text, table, json, yaml)",
				Value:   "text",
				Validator: func(value string) error {
					return FlagValidators(value, OutputValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "include the built-in functions",
			},
		},
		Action: pluginsCommandAction,
	}).Build()
}

func pluginsCommandAction(_ context.Context, cmd *cli.Command) error {
	infos := plugin.Default().List()

	if cmd.Bool("all") {
		names, err := script.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			if !slices.ContainsFunc(infos, func(i plugin.Info) bool { return i.Name == name }) {
				infos = append(infos, plugin.Info{Name: name, Provider: builtinProvider})
			}
		}
		slices.SortFunc(infos, func(a, b plugin.Info) int { return strings.Compare(a.Name, b.Name) })
	}

	w := writer(cmd)
	switch format := strings.ToLower(cmd.String("output")); format {
	case "json", "yaml":
		return encodeDoc(w, infos, format)
	default:
		return writeInfos(w, infos)
	}
}

// writeInfos prints one aligned line per function.
func writeInfos(w io.Writer, infos []plugin.Info) error {
	width := 0
	for _, i := range infos {
		width = max(width, len(i.Name))
	}
	for _, i := range infos {
		line := fmt.Sprintf("%-*s  %-8s %s", width, i.Name, i.Provider, i.Signature)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
