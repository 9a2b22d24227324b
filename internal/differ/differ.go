// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/go-json-experiment/json"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// IdenticalLine is printed when the delta is empty.
const IdenticalLine = "The documents are identical."

// ErrUnsupportedRoot is returned for documents whose root is not an object or
// an array.
var ErrUnsupportedRoot = errors.New("delta view needs object or array documents")

// Options controls the delta rendering.
type Options struct {
	// Coloring adds ANSI colors to added and deleted lines.
	Coloring bool
	// ShowArrayIndex prefixes array elements with their index.
	ShowArrayIndex bool
	// Ignore lists top-level object members removed from both sides first.
	Ignore []string
}

// Delta writes the gojsondiff ASCII delta between expected and actual to w.
// Both roots must be the same composite kind.
func Delta(w io.Writer, expected, actual []byte, opts Options) error {
	log.Debugf("delta: len(expected)=%d len(actual)=%d", len(expected), len(actual))
	if w == nil {
		w = os.Stdout
	}

	var left, right any
	if err := json.Unmarshal(expected, &left); err != nil {
		return fmt.Errorf("failed to decode expected document: %w", err)
	}
	if err := json.Unmarshal(actual, &right); err != nil {
		return fmt.Errorf("failed to decode actual document: %w", err)
	}

	d := gojsondiff.New()
	var diff gojsondiff.Diff

	switch l := left.(type) {
	case map[string]any:
		r, ok := right.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: expected is an object, actual is %s", ErrUnsupportedRoot, kindOf(right))
		}
		for _, key := range opts.Ignore {
			delete(l, key)
			delete(r, key)
		}
		diff = d.CompareObjects(l, r)
	case []any:
		r, ok := right.([]any)
		if !ok {
			return fmt.Errorf("%w: expected is an array, actual is %s", ErrUnsupportedRoot, kindOf(right))
		}
		diff = d.CompareArrays(l, r)
	default:
		return fmt.Errorf("%w: expected is %s", ErrUnsupportedRoot, kindOf(left))
	}

	if !diff.Modified() {
		_, err := fmt.Fprintln(w, IdenticalLine)
		return err
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: opts.ShowArrayIndex,
		Coloring:       opts.Coloring,
	})
	out, err := f.Format(diff)
	if err != nil {
		return fmt.Errorf("failed to format delta: %w", err)
	}

	_, err = fmt.Fprint(w, out)
	return err
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
