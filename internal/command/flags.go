// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewReportFlags returns the flags shaping a mismatch report. Values resolve
// from the command line, then JCHECK_* env vars, then the <ns>.<flag> and
// <flag> keys of the config file at cfgPath.
func NewReportFlags(ns, cfgPath string) []cli.Flag {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, table, json, yaml)",
		Value:   "text",
		Sources: cli.NewValueSourceChain(cli.EnvVar("JCHECK_OUTPUT")),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	color := &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored output",
		Sources: cli.NewValueSourceChain(cli.EnvVar("JCHECK_COLOR")),
	}
	titles := &cli.BoolFlag{
		Name:    "titles",
		Aliases: []string{"t"},
		Usage:   "show column titles with table output",
	}
	columns := &cli.StringFlag{
		Name:    "columns",
		Aliases: []string{"a"},
		Usage:   "comma-separated key[:title[:transform]] column specs for table output",
	}
	chainConfig(ns, cfgPath, output.Name, &output.Sources)
	chainConfig(ns, cfgPath, color.Name, &color.Sources)
	chainConfig(ns, cfgPath, titles.Name, &titles.Sources)
	chainConfig(ns, cfgPath, columns.Name, &columns.Sources)

	return []cli.Flag{
		output,
		color,
		titles,
		columns,
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated filters on path, expected, actual or category",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated sort keys, - prefix for descending",
		},
		&cli.BoolFlag{
			Name:    "delta",
			Aliases: []string{"d"},
			Usage:   "print a structural delta after the report",
		},
		&cli.StringFlag{
			Name:  "delta-ignore",
			Usage: "comma-separated top-level members left out of the delta",
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "append mismatch statistics to the report",
		},
	}
}

// NewSourceFlags returns the flags used to load documents.
func NewSourceFlags(ns, cfgPath string) []cli.Flag {
	region := &cli.StringFlag{
		Name:    "region",
		Usage:   "AWS region for s3:// documents",
		Sources: cli.NewValueSourceChain(cli.EnvVar("JCHECK_S3_REGION")),
	}
	profile := &cli.StringFlag{
		Name:    "profile",
		Usage:   "AWS shared config profile for s3:// documents",
		Sources: cli.NewValueSourceChain(cli.EnvVar("JCHECK_S3_PROFILE")),
	}
	endpoint := &cli.StringFlag{
		Name:    "endpoint",
		Usage:   "S3-compatible endpoint URL",
		Sources: cli.NewValueSourceChain(cli.EnvVar("JCHECK_S3_ENDPOINT")),
	}
	chainConfig(ns, cfgPath, region.Name, &region.Sources)
	chainConfig(ns, cfgPath, profile.Name, &profile.Sources)
	chainConfig(ns, cfgPath, endpoint.Name, &endpoint.Sources)

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Usage:   "passphrase for sealed documents",
		},
		region,
		profile,
		endpoint,
	}
}

// newTimeoutFlag bounds a single evaluation.
func newTimeoutFlag(value time.Duration) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "abandon evaluation after this long",
		Value: value,
	}
}

// chainConfig appends the namespaced and global config file keys for name
// to chain. Nothing is added without a config file.
func chainConfig(ns, cfgPath, name string, chain *cli.ValueSourceChain) {
	if cfgPath == "" {
		return
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(cfgPath)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(cfgPath)))
}

// boolFlagNames lists every dashed spelling of the boolean flags under cmd.
func boolFlagNames(cmd *cli.Command) map[string]bool {
	names := map[string]bool{}
	var walk func(c *cli.Command)
	walk = func(c *cli.Command) {
		for _, f := range c.Flags {
			if _, ok := f.(*cli.BoolFlag); !ok {
				continue
			}
			for _, n := range f.Names() {
				if len(n) == 1 {
					names["-"+n] = true
				} else {
					names["--"+n] = true
				}
			}
		}
		for _, sub := range c.Commands {
			walk(sub)
		}
	}
	walk(cmd)
	return names
}

// BoolFlagNames lists the dashed spellings of app's boolean flags.
func BoolFlagNames(app *cli.Command) map[string]bool {
	return boolFlagNames(app)
}
