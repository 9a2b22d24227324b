// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v2"

	"github.com/jcheck/jcheck/internal/attrs"
	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/filters"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/stats"
)

// Formats lists the supported --output values.
var Formats = []string{"text", "table", "json", "yaml"}

// EquivalentLine is printed by the text format when nothing differs.
const EquivalentLine = "Documents are equivalent."

// Options shapes how a mismatch list is rendered.
type Options struct {
	Format  string
	Filter  string
	Sort    string
	Columns attrs.AttrList
	Titles  bool
	Color   bool
	Padding int
	// Header and Footer are printed around table output when set.
	Header string
	Footer string
	// Stats, when set, is appended to the report.
	Stats *stats.Summary
}

// Document is the structured form written by the json and yaml formats.
// Equivalent and Total describe the unfiltered comparison; Count is the number
// of mismatches left after filtering.
type Document struct {
	Equivalent bool               `json:"equivalent" yaml:"equivalent"`
	Total      int                `json:"total" yaml:"total"`
	Count      int                `json:"count" yaml:"count"`
	Mismatches []compare.Mismatch `json:"mismatches" yaml:"mismatches"`
	Stats      *stats.Summary     `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// ExitStatus maps a comparison result onto a process exit status.
func ExitStatus(ms []compare.Mismatch) int {
	if len(ms) == 0 {
		return 0
	}
	return 1
}

// Prepare applies the filter and sort options to ms.
func Prepare(ms []compare.Mismatch, opts Options) ([]compare.Mismatch, error) {
	kept, err := filters.Apply(ms, opts.Filter)
	if err != nil {
		return nil, err
	}
	if opts.Sort != "" {
		kept = append([]compare.Mismatch(nil), kept...)
		Sort(kept, opts.Sort)
	}
	return kept, nil
}

// Render writes ms to w in the requested format. ms is filtered and sorted
// first; a filter never makes differing documents read as equivalent.
func Render(w io.Writer, ms []compare.Mismatch, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	shown, err := Prepare(ms, opts)
	if err != nil {
		return err
	}
	log.Debugf("rendering %d of %d mismatches as %s", len(shown), len(ms), opts.Format)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		err = writeText(w, shown, len(ms))
	case "table":
		err = writeTable(w, shown, len(ms), opts)
	case "json":
		out, jerr := json.Marshal(document(shown, len(ms), opts), jsontext.WithIndent("  "))
		if jerr != nil {
			return fmt.Errorf("failed to encode json report: %w", jerr)
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return err
	case "yaml":
		out, yerr := yaml.Marshal(document(shown, len(ms), opts))
		if yerr != nil {
			return fmt.Errorf("failed to encode yaml report: %w", yerr)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want one of %s)", opts.Format, strings.Join(Formats, ", "))
	}
	if err != nil {
		return err
	}

	if opts.Stats != nil {
		return opts.Stats.Write(w)
	}
	return nil
}

func document(ms []compare.Mismatch, total int, opts Options) Document {
	if ms == nil {
		ms = []compare.Mismatch{}
	}
	return Document{
		Equivalent: total == 0,
		Total:      total,
		Count:      len(ms),
		Mismatches: ms,
		Stats:      opts.Stats,
	}
}

// countLine heads a text or table report. total is the unfiltered count.
func countLine(shown, total int) string {
	switch {
	case total == 0:
		return EquivalentLine
	case shown == total:
		return fmt.Sprintf("%d mismatch(es):", total)
	case shown == 0:
		return fmt.Sprintf("0 of %d mismatch(es) shown.", total)
	default:
		return fmt.Sprintf("%d of %d mismatch(es) shown:", shown, total)
	}
}

// writeText renders the count line followed by one line per mismatch.
func writeText(w io.Writer, ms []compare.Mismatch, total int) error {
	var sb strings.Builder
	sb.WriteString(countLine(len(ms), total))
	sb.WriteByte('\n')
	for _, m := range ms {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
