// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta_Objects(t *testing.T) {
	var buf bytes.Buffer
	err := Delta(&buf,
		[]byte(`{"name":"alice","age":30,"tags":["a"]}`),
		[]byte(`{"name":"bob","age":30,"tags":["a"],"extra":true}`),
		Options{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `-  "name": "alice"`)
	assert.Contains(t, out, `+  "name": "bob"`)
	assert.Contains(t, out, `+  "extra": true`)
	assert.Contains(t, out, `   "age": 30`)
}

func TestDelta_Ignore(t *testing.T) {
	var buf bytes.Buffer
	err := Delta(&buf,
		[]byte(`{"id":1,"generated":"2024-01-01"}`),
		[]byte(`{"id":1,"generated":"2025-06-30"}`),
		Options{Ignore: []string{"generated"}})
	require.NoError(t, err)
	assert.Equal(t, IdenticalLine+"\n", buf.String())
}

func TestDelta_Arrays(t *testing.T) {
	var buf bytes.Buffer
	err := Delta(&buf, []byte(`[1,2,3]`), []byte(`[1,2,4]`), Options{ShowArrayIndex: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "-  2: 3")
	assert.Contains(t, buf.String(), "+  2: 4")
}

func TestDelta_Identical(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Delta(&buf, []byte(`{"a":[1,{"b":null}]}`), []byte(`{"a":[1,{"b":null}]}`), Options{Coloring: true}))
	assert.Equal(t, IdenticalLine+"\n", buf.String())
}

func TestDelta_Errors(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		root     bool
	}{
		{name: "scalar root", expected: `1`, actual: `2`, root: true},
		{name: "object vs array", expected: `{}`, actual: `[]`, root: true},
		{name: "array vs null", expected: `[]`, actual: `null`, root: true},
		{name: "invalid expected", expected: `{`, actual: `{}`},
		{name: "invalid actual", expected: `{}`, actual: `[1,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Delta(&buf, []byte(tt.expected), []byte(tt.actual), Options{})
			require.Error(t, err)
			if tt.root {
				assert.ErrorIs(t, err, ErrUnsupportedRoot)
			}
		})
	}
}
