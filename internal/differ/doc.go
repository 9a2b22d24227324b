// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ renders a side by side style ASCII delta of two JSON
// documents, complementing the path-addressed mismatch report.
package differ
