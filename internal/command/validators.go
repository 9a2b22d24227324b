// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jcheck/jcheck/internal/report"
)

// FlagValidatorType checks a single flag value.
type FlagValidatorType func(any) error

// FlagValidators runs validators in order and returns the first error.
func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// OutputValidator accepts the report formats.
func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(report.Formats, strings.ToLower(s)) {
		return fmt.Errorf("must be one of %v", report.Formats)
	}
	return nil
}

// NonNegativeValidator accepts ints >= 0.
func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative, got %d", n)
	}
	return nil
}

// ShellValidator accepts the shells completion scripts exist for.
func ShellValidator(value any) error {
	switch value {
	case "bash", "zsh":
		return nil
	}
	return fmt.Errorf("unsupported shell %v (want bash or zsh)", value)
}
