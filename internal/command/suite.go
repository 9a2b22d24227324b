// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/report"
	"github.com/jcheck/jcheck/internal/stats"
	"github.com/jcheck/jcheck/internal/suite"
	"github.com/jcheck/jcheck/internal/util"
)

func suiteCommandBuilder(meta meta.Meta) *cli.Command {
	parallel := &cli.IntFlag{
		Name:    "parallel",
		Aliases: []string{"n"},
		Usage:   "cases run at once, 0 for one per CPU",
		Validator: func(n int) error {
			return FlagValidators(n, NonNegativeValidator)
		},
	}
	failFast := &cli.BoolFlag{
		Name:  "fail-fast",
		Usage: "skip remaining cases after the first failure",
	}
	chainConfig("suite", meta.Config.Source, parallel.Name, &parallel.Sources)
	chainConfig("suite", meta.Config.Source, failFast.Name, &failFast.Sources)

	return (&CommandBuilder{
		Meta:      meta,
		Name:      "suite",
		Usage:     "run every case under a directory",
		UsageText: "jcheck suite [dir] [options]",
		Description: "A case is a directory holding expected.json (or .yaml) and either " +
			"actual.json or script.hcl with an optional input document.",
		Report: true,
		Source: true,
		ExtraFlags: []cli.Flag{
			parallel,
			failFast,
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "choose the cases to run interactively",
			},
			newTimeoutFlag(suite.DefaultTimeout),
		},
		Action: suiteCommandAction,
	}).Build()
}

func suiteCommandAction(ctx context.Context, cmd *cli.Command) error {
	dir := "."
	if args := cmd.Args().Slice(); len(args) > 1 {
		return fmt.Errorf("suite takes at most one directory, got %d", len(args))
	} else if len(args) == 1 {
		dir = args[0]
	}
	abs, err := util.ResolveDir(dir)
	if err != nil {
		return fmt.Errorf("suite directory %s: %w", dir, err)
	}

	cases, err := suite.Discover(abs)
	if err != nil {
		return err
	}
	if cmd.Bool("pick") {
		if cases, err = suite.Pick(cases); err != nil {
			return err
		}
		if len(cases) == 0 {
			log.Infof("no cases picked")
			return nil
		}
	}

	results, runErr := suite.Run(ctx, cases, suite.Options{
		Parallel: cmd.Int("parallel"),
		Timeout:  cmd.Duration("timeout"),
		FailFast: cmd.Bool("fail-fast"),
		Load:     LoadOptions(cmd),
	})
	summary := suite.Summarize(results)

	opts, err := ReportOptions(cmd, nil)
	if err != nil {
		return err
	}
	if err := writeSuite(writer(cmd), results, summary, opts); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if !summary.OK() {
		bad := summary.Count(stats.Failed) + summary.Count(stats.Errored)
		return fmt.Errorf("%d of %d cases did not pass: %w", bad, summary.Total(), ErrDocumentsDiffer)
	}
	return nil
}

type caseDoc struct {
	Name       string             `json:"name" yaml:"name"`
	Outcome    stats.Outcome      `json:"outcome" yaml:"outcome"`
	Duration   string             `json:"duration" yaml:"duration"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	Mismatches []compare.Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

type suiteDoc struct {
	OK      bool      `json:"ok" yaml:"ok"`
	Passed  int       `json:"passed" yaml:"passed"`
	Failed  int       `json:"failed" yaml:"failed"`
	Errored int       `json:"errored" yaml:"errored"`
	Skipped int       `json:"skipped" yaml:"skipped"`
	Cases   []caseDoc `json:"cases" yaml:"cases"`
}

// writeSuite renders one line per case, the mismatches of failed cases and
// the summary line. json and yaml produce a single document instead.
func writeSuite(w io.Writer, results []suite.Result, summary *stats.Suite, opts report.Options) error {
	switch strings.ToLower(opts.Format) {
	case "json", "yaml":
		doc, err := suiteDocument(results, summary, opts)
		if err != nil {
			return err
		}
		return encodeDoc(w, doc, opts.Format)
	}

	for _, r := range results {
		line := fmt.Sprintf("%-5s %s (%s)", strings.ToUpper(string(r.Outcome)), r.Case.Name, stats.Duration(r.Duration))
		if r.Err != nil {
			line += ": " + r.Err.Error()
		}
		fmt.Fprintln(w, line)

		if r.Outcome != stats.Failed {
			continue
		}
		if strings.EqualFold(opts.Format, "table") {
			if err := report.Render(w, r.Mismatches, opts); err != nil {
				return err
			}
			continue
		}
		shown, err := report.Prepare(r.Mismatches, opts)
		if err != nil {
			return err
		}
		for _, m := range shown {
			fmt.Fprintf(w, "      %s\n", m)
		}
	}

	fmt.Fprintln(w)
	return summary.Write(w)
}

func suiteDocument(results []suite.Result, summary *stats.Suite, opts report.Options) (suiteDoc, error) {
	doc := suiteDoc{
		OK:      summary.OK(),
		Passed:  summary.Count(stats.Passed),
		Failed:  summary.Count(stats.Failed),
		Errored: summary.Count(stats.Errored),
		Skipped: summary.Count(stats.Skipped),
		Cases:   make([]caseDoc, 0, len(results)),
	}
	for _, r := range results {
		shown, err := report.Prepare(r.Mismatches, opts)
		if err != nil {
			return suiteDoc{}, err
		}
		cd := caseDoc{
			Name:       r.Case.Name,
			Outcome:    r.Outcome,
			Duration:   r.Duration.String(),
			Mismatches: shown,
		}
		if r.Err != nil {
			cd.Error = r.Err.Error()
		}
		doc.Cases = append(doc.Cases, cd)
	}
	return doc, nil
}

func encodeDoc(w io.Writer, doc any, format string) error {
	if strings.EqualFold(format, "yaml") {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	}

	out, err := json.Marshal(doc, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}
