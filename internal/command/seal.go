// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/source"
)

func sealCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Meta:      meta,
		Name:      "seal",
		Usage:     "encrypt a document with a passphrase",
		UsageText: "jcheck seal <document> [options]",
		Source:    true,
		ExtraFlags: []cli.Flag{
			&cli.IntFlag{
				Name:  "iterations",
				Usage: "pbkdf2 iterations",
				Value: source.DefaultIterations,
				Validator: func(n int) error {
					if n < 1 {
						return fmt.Errorf("must be positive, got %d", n)
					}
					return nil
				},
			},
		},
		Action: sealCommandAction,
	}).Build()
}

// sealCommandAction writes a sealed copy of the document. The plaintext is
// loaded through the normal sources, so YAML and selectors apply.
func sealCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("seal needs exactly one document, got %d", len(args))
	}

	doc, err := source.Load(ctx, args[0], LoadOptions(cmd)...)
	if err != nil {
		return err
	}

	pass := cmd.String("passphrase")
	if pass == "" {
		pass = os.Getenv(source.PassphraseEnvVar)
	}
	if pass == "" {
		if pass, err = source.GetPassphrase(); err != nil {
			return err
		}
	}

	sealed, err := source.Seal(doc, pass, cmd.Int("iterations"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer(cmd), "%s\n", sealed)
	return err
}
