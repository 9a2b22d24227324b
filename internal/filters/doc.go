// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects a subset of mismatches for reporting.
//
// Filters are key-operator-target expressions combined with a configurable
// delimiter (default: comma, override with JCHECK_FILTER_DELIM). A row is kept
// only when every filter matches.
//
// Keys are the row fields: path, expected, actual and category (one of
// missing, extra, length, kind, value).
//
// Operators, each negated by a leading '!':
//
//   - = : exact match, numeric with tolerance when both sides are numbers
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains substring
//   - / : regular expression match
//
// Examples:
//
//   - "path^$.users" : mismatches under $.users
//   - "category!=extra" : ignore members present only in actual
//   - "actual>100" : numeric actual values above 100
//   - "path/\[\d+\]$" : array element mismatches
package filters
