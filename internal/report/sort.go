// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/filters"
)

// Sort orders ms in place by a comma separated list of row fields. A "-"
// prefix sorts that field descending and "!" makes it case sensitive. Values
// that both parse as numbers compare numerically. Ties keep traversal order.
func Sort(ms []compare.Mismatch, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	rows := filters.Rows(ms)
	idx := make([]int, len(ms))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(one, two int) bool {
		a, b := rows[idx[one]], rows[idx[two]]

		for _, f := range fields {
			f = strings.TrimSpace(f)

			ascending := true
			if strings.HasPrefix(f, "-") {
				f = strings.TrimPrefix(f, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(f, "!") {
				f = strings.TrimPrefix(f, "!")
				caseSensitive = true
			}

			av, bv := field(a, f), field(b, f)

			an, aerr := strconv.ParseFloat(av, 64)
			bn, berr := strconv.ParseFloat(bv, 64)
			if aerr == nil && berr == nil {
				if an != bn {
					return (an < bn) == ascending
				}
				continue
			}

			if !caseSensitive {
				av, bv = strings.ToLower(av), strings.ToLower(bv)
			}
			if av != bv {
				return (av < bv) == ascending
			}
		}
		return false
	})

	sorted := make([]compare.Mismatch, len(ms))
	for i, j := range idx {
		sorted[i] = ms[j]
	}
	copy(ms, sorted)
}
