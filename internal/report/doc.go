// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report renders mismatch lists as text, tables, JSON or YAML after
// applying the --filter and --sort options.
package report
