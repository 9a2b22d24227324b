// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/attrs"
	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/differ"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/report"
	"github.com/jcheck/jcheck/internal/source"
	"github.com/jcheck/jcheck/internal/stats"
	"github.com/jcheck/jcheck/internal/util"
)

var (
	// ErrDocumentsDiffer is returned when a comparison finds mismatches. main
	// maps it to exit status 1.
	ErrDocumentsDiffer = errors.New("documents differ")

	// ErrStdinTwice is returned when both documents name stdin.
	ErrStdinTwice = errors.New("only one document may be read from stdin")
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where reports go.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// BuildColumns constructs the table columns from the defaults and --columns,
// then applies the global transform spec.
func BuildColumns(cmd *cli.Command) (attrs.AttrList, error) {
	al := attrs.Defaults()
	if err := al.Set(cmd.String("columns")); err != nil {
		return nil, err
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// ReportOptions gathers the report flags.
func ReportOptions(cmd *cli.Command, summary *stats.Summary) (report.Options, error) {
	columns, err := BuildColumns(cmd)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Columns: columns,
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Stats:   summary,
	}, nil
}

// LoadOptions gathers the source flags.
func LoadOptions(cmd *cli.Command) []source.Option {
	opts := []source.Option{
		source.WithPassphrase(cmd.String("passphrase")),
		source.WithRegion(cmd.String("region")),
		source.WithProfile(cmd.String("profile")),
		source.WithEndpoint(cmd.String("endpoint")),
	}
	if root := cmd.Root(); root != nil && root.Reader != nil {
		opts = append(opts, source.WithStdin(root.Reader))
	}
	return opts
}

// LoadPair loads the expected and actual documents.
func LoadPair(ctx context.Context, cmd *cli.Command, expectedSpec, actualSpec string) ([]byte, []byte, error) {
	if readsStdin(expectedSpec) && readsStdin(actualSpec) {
		return nil, nil, ErrStdinTwice
	}

	opts := LoadOptions(cmd)
	expected, err := source.Load(ctx, expectedSpec, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("expected: %w", err)
	}
	actual, err := source.Load(ctx, actualSpec, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("actual: %w", err)
	}
	return expected, actual, nil
}

func readsStdin(spec string) bool {
	location, _, err := util.ParseDocSpec(spec)
	return err == nil && source.IsStdin(location)
}

// StdinArgs rewrites each positional "-" (optionally followed by a selector)
// to source.StdinAlias so flags after it are still parsed. Values of the flags
// not listed in boolFlags and everything after "--" are left alone.
func StdinArgs(args []string, boolFlags map[string]bool) []string {
	out := append([]string(nil), args...)
	for i := 1; i < len(out); i++ {
		a := out[i]
		switch {
		case a == "--":
			return out
		case a == source.Stdin || strings.HasPrefix(a, source.Stdin+util.SelectorSep):
			out[i] = source.StdinAlias + strings.TrimPrefix(a, source.Stdin)
		case strings.HasPrefix(a, "-") && !strings.Contains(a, "=") && !boolFlags[a]:
			i++
		}
	}
	return out
}

// Emit renders ms, followed by the delta view when --delta is set, and
// returns ErrDocumentsDiffer when ms is not empty.
func Emit(cmd *cli.Command, ms []compare.Mismatch, expected, actual []byte) error {
	var summary *stats.Summary
	if cmd.Bool("stats") {
		s := stats.Tally(ms).WithSizes(len(expected), len(actual))
		summary = &s
	}

	opts, err := ReportOptions(cmd, summary)
	if err != nil {
		return err
	}

	w := writer(cmd)
	if err := report.Render(w, ms, opts); err != nil {
		return err
	}

	if cmd.Bool("delta") && len(ms) > 0 {
		if err := emitDelta(w, cmd, opts.Format, expected, actual); err != nil {
			return err
		}
	}

	if report.ExitStatus(ms) != 0 {
		return ErrDocumentsDiffer
	}
	return nil
}

// emitDelta appends the structural delta to human readable reports.
func emitDelta(w io.Writer, cmd *cli.Command, format string, expected, actual []byte) error {
	switch strings.ToLower(format) {
	case "json", "yaml":
		log.Debugf("delta skipped for %s output", format)
		return nil
	}

	fmt.Fprintln(w)
	err := differ.Delta(w, expected, actual, differ.Options{
		Coloring:       cmd.Bool("color"),
		ShowArrayIndex: true,
		Ignore:         splitList(cmd.String("delta-ignore")),
	})
	if errors.Is(err, differ.ErrUnsupportedRoot) {
		log.Warnf("delta skipped: %v", err)
		return nil
	}
	return err
}

// prettyJSON re-indents a JSON document, keeping member order.
func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.WithIndent("  "))
	if err := enc.WriteValue(jsontext.Value(raw)); err != nil {
		return nil, fmt.Errorf("failed to format json: %w", err)
	}
	return buf.Bytes(), nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
