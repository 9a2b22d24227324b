// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/source"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		validator FlagValidatorType
		wantErr   bool
	}{
		{"output text", "text", OutputValidator, false},
		{"output upper case", "JSON", OutputValidator, false},
		{"output unknown", "xml", OutputValidator, true},
		{"non-negative zero", 0, NonNegativeValidator, false},
		{"non-negative negative", -1, NonNegativeValidator, true},
		{"shell zsh", "zsh", ShellValidator, false},
		{"shell fish", "fish", ShellValidator, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChainConfig(t *testing.T) {
	var chain cli.ValueSourceChain
	chainConfig("compare", "", "output", &chain)
	assert.Empty(t, chain.Chain)

	chainConfig("compare", "/tmp/jcheck.yaml", "output", &chain)
	assert.Len(t, chain.Chain, 2)

	chain = cli.ValueSourceChain{}
	chainConfig("", "/tmp/jcheck.yaml", "output", &chain)
	assert.Len(t, chain.Chain, 1)
}

func TestBoolFlagNames(t *testing.T) {
	app := &cli.Command{
		Commands: []*cli.Command{
			{Name: "compare", Flags: NewReportFlags("compare", "")},
			{Name: "seal", Flags: NewSourceFlags("seal", "")},
		},
	}

	names := BoolFlagNames(app)
	for _, n := range []string{"--color", "-c", "--titles", "-t", "--delta", "-d", "--stats"} {
		assert.True(t, names[n], n)
	}
	assert.False(t, names["--output"])
	assert.False(t, names["--passphrase"])
}

func TestStdinArgs(t *testing.T) {
	bools := map[string]bool{"--delta": true, "-d": true}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "positional dash",
			args: []string{"jcheck", "compare", "-", "b.json", "-o", "json"},
			want: []string{"jcheck", "compare", source.StdinAlias, "b.json", "-o", "json"},
		},
		{
			name: "dash with selector",
			args: []string{"jcheck", "compare", "a.json", "-::items[0]", "-d"},
			want: []string{"jcheck", "compare", "a.json", source.StdinAlias + "::items[0]", "-d"},
		},
		{
			name: "flag value left alone",
			args: []string{"jcheck", "run", "--input", "-", "s.js"},
			want: []string{"jcheck", "run", "--input", "-", "s.js"},
		},
		{
			name: "after bool flag",
			args: []string{"jcheck", "compare", "--delta", "-", "b.json"},
			want: []string{"jcheck", "compare", "--delta", source.StdinAlias, "b.json"},
		},
		{
			name: "after terminator",
			args: []string{"jcheck", "compare", "a.json", "--", "-"},
			want: []string{"jcheck", "compare", "a.json", "--", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := append([]string(nil), tt.args...)
			assert.Equal(t, tt.want, StdinArgs(tt.args, bools))
			assert.Equal(t, orig, tt.args)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}

func TestPrettyJSON(t *testing.T) {
	out, err := prettyJSON([]byte(`{"b":1,"a":[true]}`))
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}\n", string(out))

	_, err = prettyJSON([]byte(`{`))
	assert.Error(t, err)
}
