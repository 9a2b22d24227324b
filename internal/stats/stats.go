// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jcheck/jcheck/internal/compare"
)

// Category is the broad class of a mismatch.
type Category string

const (
	CategoryMissing Category = "missing"
	CategoryExtra   Category = "extra"
	CategoryLength  Category = "length"
	CategoryKind    Category = "kind"
	CategoryValue   Category = "value"
)

// Categories lists every category in reporting order.
var Categories = []Category{CategoryMissing, CategoryExtra, CategoryLength, CategoryKind, CategoryValue}

var kindNames = []string{
	compare.KindNull.String(),
	compare.KindBoolean.String(),
	compare.KindNumber.String(),
	compare.KindString.String(),
	compare.KindArray.String(),
	compare.KindObject.String(),
}

// Classify derives the category of m from its rendered fields.
func Classify(m compare.Mismatch) Category {
	switch {
	case m.Actual == compare.Missing:
		return CategoryMissing
	case m.Expected == compare.Missing:
		return CategoryExtra
	case strings.HasSuffix(m.Path, ".length") && isCount(m.Expected) && isCount(m.Actual):
		return CategoryLength
	}

	ek, eok := kindPrefix(m.Expected)
	ak, aok := kindPrefix(m.Actual)
	if eok && aok && ek != ak {
		return CategoryKind
	}
	return CategoryValue
}

func isCount(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

func kindPrefix(s string) (string, bool) {
	for _, k := range kindNames {
		if strings.HasPrefix(s, k+": ") {
			return k, true
		}
	}
	return "", false
}

// Summary holds the per-category counts of one comparison.
type Summary struct {
	Total         int              `json:"total" yaml:"total"`
	Counts        map[Category]int `json:"counts" yaml:"counts"`
	ExpectedBytes int              `json:"expectedBytes,omitzero" yaml:"expectedBytes,omitempty"`
	ActualBytes   int              `json:"actualBytes,omitzero" yaml:"actualBytes,omitempty"`
}

// Tally classifies and counts ms.
func Tally(ms []compare.Mismatch) Summary {
	s := Summary{Total: len(ms), Counts: make(map[Category]int, len(Categories))}
	for _, m := range ms {
		s.Counts[Classify(m)]++
	}
	return s
}

// WithSizes records the sizes of the two compared documents.
func (s Summary) WithSizes(expected, actual int) Summary {
	s.ExpectedBytes = expected
	s.ActualBytes = actual
	return s
}

// Write renders the summary as a short human readable block.
func (s Summary) Write(w io.Writer) error {
	var sb strings.Builder
	if s.ExpectedBytes > 0 || s.ActualBytes > 0 {
		fmt.Fprintf(&sb, "compared %s against %s\n",
			humanize.Bytes(uint64(s.ExpectedBytes)), humanize.Bytes(uint64(s.ActualBytes)))
	}
	fmt.Fprintf(&sb, "%s total", humanize.Comma(int64(s.Total)))
	for _, c := range Categories {
		if n := s.Counts[c]; n > 0 {
			fmt.Fprintf(&sb, ", %s %s", humanize.Comma(int64(n)), c)
		}
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}
