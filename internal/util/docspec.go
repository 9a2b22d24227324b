// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// SelectorSep separates a document location from an optional selector.
const SelectorSep = "::"

// ErrEmptySpec is returned for an empty document spec.
var ErrEmptySpec = errors.New("empty document spec")

// ParseDocSpec splits "<location>[::<selector>]" into its parts. Only the
// first separator counts; the selector may itself contain colons.
func ParseDocSpec(spec string) (string, string, error) {
	if spec == "" {
		return "", "", ErrEmptySpec
	}

	location, selector, _ := strings.Cut(spec, SelectorSep)
	if location == "" {
		return "", "", ErrEmptySpec
	}

	return location, strings.TrimSpace(selector), nil
}

// ResolveDir returns the absolute form of dir. It returns an error if the fs
// entry does not exist or is not a directory.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		return "", os.ErrInvalid
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	if r, err := os.Stat(abs); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return abs, nil
}
