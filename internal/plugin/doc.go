// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package plugin turns the exported methods of plain Go values into script
// functions.
//
// Discover inspects a provider with reflection. Every method whose
// parameters are float64, int, string, bool, []float64 or []string and
// which returns one such value (optionally followed by an error) becomes a
// cty function named after the method in snake_case. Other methods are
// skipped.
package plugin
