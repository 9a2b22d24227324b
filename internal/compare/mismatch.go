// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import "fmt"

// Missing is rendered in place of a value that exists on one side only.
const Missing = "(missing)"

// RootPath is the path of the document root.
const RootPath = "$"

// Side identifies which of the two documents an error refers to.
type Side string

const (
	SideExpected Side = "expected"
	SideActual   Side = "actual"
)

// Mismatch is a single disagreement between the expected and actual documents.
// Expected and Actual are human-readable renderings of the two values, or
// Missing.
type Mismatch struct {
	Path     string `json:"path" yaml:"path"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual" yaml:"actual"`
}

// String renders the mismatch as a single report line.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", m.Path, m.Expected, m.Actual)
}

// ParseError reports that one of the inputs is not valid JSON. It is never part
// of a mismatch list.
type ParseError struct {
	Side Side
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.Side, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
