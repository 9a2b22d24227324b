// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package stats summarises comparison results: mismatch counts by category for
// a single comparison and pass/fail counts for a suite run.
package stats
