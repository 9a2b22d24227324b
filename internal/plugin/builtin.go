// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/jcheck/jcheck/internal/compare"
)

var errEmptyList = errors.New("empty list")

// Numeric provides aggregate and tolerance helpers.
type Numeric struct{}

// Sum adds xs.
func (Numeric) Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// Mean is the arithmetic mean of xs.
func (n Numeric) Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errEmptyList
	}
	return n.Sum(xs) / float64(len(xs)), nil
}

// Median is the middle value of xs, or the mean of the two middle values.
func (Numeric) Median(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errEmptyList
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid], nil
	}
	return (s[mid-1] + s[mid]) / 2, nil
}

// Round rounds x half away from zero to places decimal places.
func (Numeric) Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Clamp limits x to [lo, hi].
func (Numeric) Clamp(x, lo, hi float64) (float64, error) {
	if lo > hi {
		return 0, fmt.Errorf("lower bound %g exceeds upper bound %g", lo, hi)
	}
	return math.Min(math.Max(x, lo), hi), nil
}

// Approx applies the comparator's numeric equality.
func (Numeric) Approx(a, b float64) bool {
	return compare.NumbersEqual(a, b)
}

// Text provides string helpers.
type Text struct{}

// Slug lowercases s and joins its alphanumeric runs with dashes.
func (Text) Slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}

// Truncate keeps the first n runes of s.
func (Text) Truncate(s string, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("negative length %d", n)
	}
	r := []rune(s)
	if len(r) <= n {
		return s, nil
	}
	return string(r[:n]), nil
}

// StartsWith reports whether s begins with prefix.
func (Text) StartsWith(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

// EndsWith reports whether s ends with suffix.
func (Text) EndsWith(s, suffix string) bool {
	return strings.HasSuffix(s, suffix)
}

// Words splits s around whitespace.
func (Text) Words(s string) []string {
	w := strings.Fields(s)
	if w == nil {
		w = []string{}
	}
	return w
}
