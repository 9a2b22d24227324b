// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/jcheck/jcheck/internal/attrs"
	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/config"
	"github.com/jcheck/jcheck/internal/filters"
)

// writeTable renders ms as a borderless table honoring the column, color,
// titles and padding options. total is the unfiltered mismatch count.
func writeTable(w io.Writer, ms []compare.Mismatch, total int, opts Options) error {
	if len(ms) == 0 {
		_, err := fmt.Fprintln(w, countLine(0, total))
		return err
	}

	columns := append(attrs.AttrList(nil), opts.Columns...)
	if len(columns) == 0 {
		columns = attrs.Defaults()
	}
	columns.SetGlobalTransformSpec()
	visible := columns.Visible()

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	rows := make([][]string, 0, len(ms))
	for _, r := range filters.Rows(ms) {
		row := make([]string, 0, len(visible))
		for _, attr := range visible {
			row = append(row, attr.Transform(field(r, attr.Key)))
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(visible))
		for _, attr := range visible {
			headers = append(headers, attr.OutputKey)
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	if _, err := fmt.Fprintln(w, t); err != nil {
		return err
	}

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
	return nil
}

// field returns the named column of r.
func field(r filters.Row, key string) string {
	switch key {
	case "path":
		return r.Path
	case "expected":
		return r.Expected
	case "actual":
		return r.Actual
	case "category":
		return r.Category
	}
	return ""
}

// getColors returns configured color values for table rendering. Defaults are
// picked from the terminal background so output stays readable on light and
// dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		if colorCfg, err := config.GetString(key); err == nil {
			return lipgloss.Color(colorCfg)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
