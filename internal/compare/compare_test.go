// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package compare

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     []Mismatch
	}{
		{
			name:     "identical scalars",
			expected: `"hello"`,
			actual:   `"hello"`,
			want:     []Mismatch{},
		},
		{
			name:     "integer equals float",
			expected: `42`,
			actual:   `42.0`,
			want:     []Mismatch{},
		},
		{
			name:     "round-off is tolerated",
			expected: `{"sum":0.3}`,
			actual:   `{"sum":0.30000000000000004}`,
			want:     []Mismatch{},
		},
		{
			name:     "null equivalence",
			expected: `{"x":null}`,
			actual:   `{"x":null}`,
			want:     []Mismatch{},
		},
		{
			name:     "missing key in actual",
			expected: `{"a":1}`,
			actual:   `{}`,
			want:     []Mismatch{{Path: "$.a", Expected: "1", Actual: Missing}},
		},
		{
			name:     "extra key in actual",
			expected: `{}`,
			actual:   `{"b":2}`,
			want:     []Mismatch{{Path: "$.b", Expected: Missing, Actual: "2"}},
		},
		{
			name:     "array length and element mismatches coexist",
			expected: `[1,2,3]`,
			actual:   `[1,9]`,
			want: []Mismatch{
				{Path: "$.length", Expected: "3", Actual: "2"},
				{Path: "$[1]", Expected: "2", Actual: "9"},
			},
		},
		{
			name:     "nested path rendering",
			expected: `{"user":{"scores":[1,2]}}`,
			actual:   `{"user":{"scores":[1,5]}}`,
			want:     []Mismatch{{Path: "$.user.scores[1]", Expected: "2", Actual: "5"}},
		},
		{
			name:     "string value mismatch renders decoded values",
			expected: `{"name":"alice"}`,
			actual:   `{"name":"bob"}`,
			want:     []Mismatch{{Path: "$.name", Expected: "alice", Actual: "bob"}},
		},
		{
			name:     "boolean mismatch renders literals",
			expected: `[true]`,
			actual:   `[false]`,
			want:     []Mismatch{{Path: "$[0]", Expected: "true", Actual: "false"}},
		},
		{
			name:     "string is never a number",
			expected: `{"n":"42"}`,
			actual:   `{"n":42}`,
			want:     []Mismatch{{Path: "$.n", Expected: `String: "42"`, Actual: "Number: 42"}},
		},
		{
			name:     "kind mismatch does not descend",
			expected: `{"a":{"b":1}}`,
			actual:   `{"a":[1, 2]}`,
			want:     []Mismatch{{Path: "$.a", Expected: `Object: {"b":1}`, Actual: "Array: [1, 2]"}},
		},
		{
			name:     "null versus value",
			expected: `{"a":null}`,
			actual:   `{"a":false}`,
			want:     []Mismatch{{Path: "$.a", Expected: "Null: null", Actual: "Boolean: false"}},
		},
		{
			name:     "missing composite keeps source text",
			expected: `{"cfg": { "tags" : ["x", "y"] }}`,
			actual:   `{}`,
			want:     []Mismatch{{Path: "$.cfg", Expected: `{ "tags" : ["x", "y"] }`, Actual: Missing}},
		},
		{
			name:     "extra composite keeps member order and spacing",
			expected: `{}`,
			actual:   "{\"cfg\": {\"y\": [1,\n 2], \"x\": 1}}",
			want:     []Mismatch{{Path: "$.cfg", Expected: Missing, Actual: "{\"y\": [1,\n 2], \"x\": 1}"}},
		},
		{
			name:     "number mismatch keeps lexical text",
			expected: `[1.50]`,
			actual:   `[2e0]`,
			want:     []Mismatch{{Path: "$[0]", Expected: "1.50", Actual: "2e0"}},
		},
		{
			name:     "expected members first then extras",
			expected: `{"b":1,"a":2,"c":3}`,
			actual:   `{"z":0,"a":5,"b":1}`,
			want: []Mismatch{
				{Path: "$.a", Expected: "2", Actual: "5"},
				{Path: "$.c", Expected: "3", Actual: Missing},
				{Path: "$.z", Expected: Missing, Actual: "0"},
			},
		},
		{
			name:     "elements beyond the shorter array are not visited",
			expected: `[{"a":1}]`,
			actual:   `[{"a":1},{"b":2},{"c":3}]`,
			want:     []Mismatch{{Path: "$.length", Expected: "1", Actual: "3"}},
		},
		{
			name:     "escaped strings compare decoded",
			expected: `"caf\u00e9"`,
			actual:   `"café"`,
			want:     []Mismatch{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.expected, tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_Reflexive(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`-0.0`,
		`1e308`,
		`""`,
		`[]`,
		`{}`,
		`{"a":[1,{"b":[null,true,"x"]}],"c":{"d":-1.25e-3}}`,
		`[[[[]]],{"":{"":""}}]`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			got, err := Compare(doc, doc)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestCompare_KeyOrderInvariance(t *testing.T) {
	counterpart := `{"a":1,"b":{"x":true,"y":[1,2]},"c":"three"}`
	permutations := []string{
		`{"a":1,"b":{"x":true,"y":[1,2]},"c":"four"}`,
		`{"c":"four","a":1,"b":{"y":[1,2],"x":true}}`,
		`{"b":{"x":true,"y":[1,2]},"c":"four","a":1}`,
	}

	var first []Mismatch
	for i, p := range permutations {
		got, err := Compare(p, counterpart)
		require.NoError(t, err)
		if i == 0 {
			first = got
			continue
		}
		assert.Equal(t, first, got, "permutation %d", i)
	}
	assert.Equal(t, []Mismatch{{Path: "$.c", Expected: "four", Actual: "three"}}, first)
}

func TestCompare_ParseError(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		side     Side
	}{
		{name: "empty expected", expected: "", actual: "{}", side: SideExpected},
		{name: "truncated actual", expected: "{}", actual: `{"a":`, side: SideActual},
		{name: "trailing data", expected: `{} {}`, actual: "{}", side: SideExpected},
		{name: "duplicate names", expected: "{}", actual: `{"a":1,"a":2}`, side: SideActual},
		{name: "bare word", expected: "nope", actual: "{}", side: SideExpected},
		{name: "trailing comma", expected: "[1]", actual: "[1,]", side: SideActual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.expected, tt.actual)
			require.Error(t, err)
			assert.Nil(t, got)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.side, pe.Side)
			assert.Contains(t, err.Error(), string(tt.side))
		})
	}
}

func TestCompare_Concurrent(t *testing.T) {
	expected := `{"items":[1,2,3],"name":"x"}`
	actual := `{"items":[1,2],"name":"y"}`

	var wg sync.WaitGroup
	results := make([][]Mismatch, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Compare(expected, actual)
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
	assert.Equal(t, []Mismatch{
		{Path: "$.items.length", Expected: "3", Actual: "2"},
		{Path: "$.name", Expected: "x", Actual: "y"},
	}, results[0])
}

func TestEquivalent(t *testing.T) {
	ok, err := Equivalent(`{"a":[1,2]}`, `{"a":[1.0,2.0]}`)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Equivalent(`{"a":1}`, `{"a":2}`)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Equivalent(`{`, `{}`)
	assert.Error(t, err)
}

func TestMismatch_String(t *testing.T) {
	m := Mismatch{Path: "$.a", Expected: "1", Actual: Missing}
	assert.Equal(t, "$.a: expected 1, got (missing)", m.String())
}
