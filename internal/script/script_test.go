// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package script

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jcheck/jcheck/internal/plugin"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testRunCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Script string `yaml:"script"`
	Want   string `yaml:"want"`
}

func TestRun(t *testing.T) {
	data, err := testDataFS.ReadFile("testdata/run_cases.yaml")
	require.NoError(t, err)
	var tests []testRunCase
	require.NoError(t, yaml.Unmarshal(data, &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := Run(context.Background(), []byte(tt.Script), "case.hcl", []byte(tt.Input))
			require.NoError(t, err)
			assert.Equal(t, tt.Want, string(got))
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		script string
		want   string
	}{
		{name: "no result", script: "a = 1\n", want: "no result"},
		{name: "syntax", script: "result = [\n", want: "case.hcl"},
		{name: "blocks are not allowed", script: "thing {\n}\nresult = 1\n", want: "case.hcl"},
		{name: "cycle", script: "a = local.b\nb = local.a\nresult = 1\n", want: "cycle"},
		{name: "self reference", script: "a = local.a\nresult = 1\n", want: "cycle"},
		{name: "undefined local", script: "result = local.nope\n", want: "not defined"},
		{name: "unknown attribute", input: `{"a":1}`, script: "result = input.b\n", want: "Unsupported attribute"},
		{name: "unknown function", script: "result = nope(1)\n", want: "Call to unknown function"},
		{name: "bad input", input: `{"a":`, script: "result = 1\n", want: "failed to read input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), []byte(tt.script), "case.hcl", []byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Run(context.Background(), []byte("a = 1\n"), "case.hcl", nil)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []byte("result = 1\n"), "case.hcl", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEval(t *testing.T) {
	got, err := Eval(`a[0] + 1`, []byte(`{"a":[1]}`))
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))

	got, err = Eval(`{ k = starts_with(input.s, "jc") }`, []byte(`{"s":"jcheck"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"k":true}`, string(got))

	_, err = Eval(`a[`, nil)
	assert.Error(t, err)
}

type shadow struct{}

func (shadow) Upper(s string) string { return s }

func TestNew(t *testing.T) {
	reg := plugin.New()
	_, err := reg.Discover("", shadow{})
	require.NoError(t, err)

	_, err = New(reg)
	assert.ErrorContains(t, err, "shadows a built-in")

	e, err := New(nil)
	require.NoError(t, err)
	assert.Contains(t, e.Names(), "try")
	assert.NotContains(t, e.Names(), "sum")
}
