// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/go-json-experiment/json"
	"github.com/tidwall/gjson"

	"github.com/jcheck/jcheck/internal/compare"
	"github.com/jcheck/jcheck/internal/driller"
	"github.com/jcheck/jcheck/internal/stats"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "path" (key only),
// "path^$.meta" (key + operator + target), "actual=" (key + operator, no
// target).
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Keys lists the row fields a filter may reference.
var Keys = []string{"path", "expected", "actual", "category"}

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"key"`
	Negate  bool   `yaml:"negate" json:"negate"`
	Operand string `yaml:"operand" json:"operand"`
	Value   string `yaml:"value" json:"value"`
}

// Row is the filterable view of one mismatch.
type Row struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Category string `json:"category"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("JCHECK_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}
		if operand == "" {
			log.Error("invalid filter: missing operator in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// Apply returns the mismatches that satisfy every filter in spec, in their
// original order. An unknown filter key is an error.
func Apply(ms []compare.Mismatch, spec string) ([]compare.Mismatch, error) {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return ms, nil
	}

	for _, f := range filters {
		if !validKey(f.Key) {
			return nil, fmt.Errorf("unknown filter key %q (want one of %s)", f.Key, strings.Join(Keys, ", "))
		}
	}

	raw, err := json.Marshal(Rows(ms))
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	kept := []compare.Mismatch{}
	for i, candidate := range gjson.ParseBytes(raw).Array() {
		if applyFilters(candidate, filters) {
			kept = append(kept, ms[i])
		}
	}
	log.Debugf("filters kept %d of %d mismatches", len(kept), len(ms))

	return kept, nil
}

// Rows converts mismatches into their filterable form.
func Rows(ms []compare.Mismatch) []Row {
	rows := make([]Row, len(ms))
	for i, m := range ms {
		rows[i] = Row{
			Path:     m.Path,
			Expected: m.Expected,
			Actual:   m.Actual,
			Category: string(stats.Classify(m)),
		}
	}
	return rows
}

func validKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// applyFilters returns true if the candidate row matches all of the
// provided filters.
func applyFilters(candidate gjson.Result, filters []Filter) bool {
	for _, filter := range filters {
		value := driller.Driller(candidate.Raw, filter.Key)
		if !value.Exists() {
			return false
		}

		s := value.String()
		var result bool
		if isNumericOperand(filter) {
			num, ok := toFloat64(s)
			switch {
			case ok:
				result = checkNumericOperand(num, filter)
			case filter.Operand == "=":
				result = checkStringOperand(s, filter)
			default:
				// Ordering a non-number against a number never matches.
				result = false
			}
		} else {
			result = checkStringOperand(s, filter)
		}

		if !result {
			return false
		}
	}

	return true
}

// isNumericOperand reports whether filter is an ordering or equality test
// with a numeric target.
func isNumericOperand(filter Filter) bool {
	switch filter.Operand {
	case "=", "<", ">":
		_, ok := toFloat64(filter.Value)
		return ok
	}
	return false
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, ok := toFloat64(filter.Value)
	if !ok {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return compare.NumbersEqual(tgt, value) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}

// toFloat64 parses s as a number.
func toFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
