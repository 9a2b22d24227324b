// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"
	"strconv"
)

// Compare parses both JSON texts and returns every point at which they
// disagree. An empty result means the documents are equivalent. A *ParseError
// is returned when either text is not valid JSON.
func Compare(expected, actual string) ([]Mismatch, error) {
	return CompareBytes([]byte(expected), []byte(actual))
}

// CompareBytes is Compare for byte slices.
func CompareBytes(expected, actual []byte) ([]Mismatch, error) {
	e, err := Parse(expected)
	if err != nil {
		return nil, &ParseError{Side: SideExpected, Err: err}
	}

	a, err := Parse(actual)
	if err != nil {
		return nil, &ParseError{Side: SideActual, Err: err}
	}

	return CompareNodes(e, a), nil
}

// CompareNodes walks two already parsed documents. The walk is driven by the
// expected tree; keys present only in an actual object are reported after that
// object's expected members.
func CompareNodes(expected, actual *Node) []Mismatch {
	w := walker{out: []Mismatch{}}
	w.walk(expected, actual, RootPath)
	return w.out
}

// Equivalent reports whether the two JSON texts compare without mismatches.
func Equivalent(expected, actual string) (bool, error) {
	ms, err := Compare(expected, actual)
	if err != nil {
		return false, err
	}
	return len(ms) == 0, nil
}

type walker struct {
	out []Mismatch
}

func (w *walker) add(path, expected, actual string) {
	w.out = append(w.out, Mismatch{Path: path, Expected: expected, Actual: actual})
}

func (w *walker) walk(e, a *Node, path string) {
	if e.kind != a.kind {
		w.add(path,
			fmt.Sprintf("%s: %s", e.kind, e.Raw()),
			fmt.Sprintf("%s: %s", a.kind, a.Raw()))
		return
	}

	switch e.kind {
	case KindObject:
		w.walkObject(e, a, path)
	case KindArray:
		w.walkArray(e, a, path)
	case KindString:
		if e.str != a.str {
			w.add(path, e.str, a.str)
		}
	case KindBoolean:
		if e.truth != a.truth {
			w.add(path, e.raw, a.raw)
		}
	case KindNumber:
		if !NumbersEqual(e.num, a.num) {
			w.add(path, e.raw, a.raw)
		}
	case KindNull:
	}
}

func (w *walker) walkObject(e, a *Node, path string) {
	for _, m := range e.members {
		p := path + "." + m.Name
		if av, ok := a.index[m.Name]; ok {
			w.walk(m.Value, av, p)
		} else {
			w.add(p, m.Value.Raw(), Missing)
		}
	}

	for _, m := range a.members {
		if _, ok := e.index[m.Name]; !ok {
			w.add(path+"."+m.Name, Missing, m.Value.Raw())
		}
	}
}

func (w *walker) walkArray(e, a *Node, path string) {
	if len(e.elems) != len(a.elems) {
		w.add(path+".length", strconv.Itoa(len(e.elems)), strconv.Itoa(len(a.elems)))
	}

	n := min(len(e.elems), len(a.elems))
	for i := 0; i < n; i++ {
		w.walk(e.elems[i], a.elems[i], path+"["+strconv.Itoa(i)+"]")
	}
}
