// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestDefault(t *testing.T) {
	fns := Default().Functions()
	for _, name := range []string{"sum", "mean", "median", "round", "clamp", "approx", "slug", "truncate", "starts_with", "ends_with", "words"} {
		assert.Contains(t, fns, name)
	}
}

func TestNumeric(t *testing.T) {
	n := Numeric{}

	assert.Equal(t, 6.0, n.Sum([]float64{1, 2, 3}))

	m, err := n.Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)
	_, err = n.Mean(nil)
	assert.Error(t, err)

	med, err := n.Median([]float64{9, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, med)
	med, err = n.Median([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.5, med)

	assert.Equal(t, 3.14, n.Round(3.14159, 2))
	assert.InDelta(t, 100.0, n.Round(123, -2), 1e-9)

	c, err := n.Clamp(12, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, c)
	_, err = n.Clamp(1, 5, 0)
	assert.Error(t, err)

	assert.True(t, n.Approx(0.3, 0.1+0.2))
	assert.False(t, n.Approx(1, 1.001))
}

func TestText(t *testing.T) {
	x := Text{}

	assert.Equal(t, "hello-big-world-2", x.Slug("  Hello, BIG world #2!"))

	s, err := x.Truncate("héllo", 2)
	require.NoError(t, err)
	assert.Equal(t, "hé", s)
	s, err = x.Truncate("hi", 5)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	_, err = x.Truncate("hi", -1)
	assert.Error(t, err)

	assert.True(t, x.StartsWith("jcheck", "jc"))
	assert.True(t, x.EndsWith("jcheck", "eck"))
	assert.Equal(t, []string{"a", "b"}, x.Words(" a  b "))
	assert.Equal(t, []string{}, x.Words("   "))
}

func TestDefault_CallThroughCty(t *testing.T) {
	fns := Default().Functions()

	got, err := fns["mean"].Call([]cty.Value{cty.ListVal([]cty.Value{cty.NumberIntVal(2), cty.NumberIntVal(4)})})
	require.NoError(t, err)
	assert.True(t, got.Equals(cty.NumberIntVal(3)).True())

	_, err = fns["mean"].Call([]cty.Value{cty.ListValEmpty(cty.Number)})
	assert.ErrorContains(t, err, "empty list")
}
