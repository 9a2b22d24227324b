// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Kind is the structural kind of a Node. The set is closed and mirrors the JSON
// data model.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the name used when rendering kind mismatches.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Member is a single name/value pair of an Object node.
type Member struct {
	Name  string
	Value *Node
}

// Node is one value of a parsed document. Only the fields relevant to its Kind
// are populated.
type Node struct {
	kind Kind

	// Source text of the value, byte for byte.
	raw string

	str      string
	num      float64
	integral bool
	truth    bool

	elems   []*Node
	members []Member
	index   map[string]*Node
}

// Kind returns the node's structural kind.
func (n *Node) Kind() Kind { return n.kind }

// Str returns the decoded value of a String node.
func (n *Node) Str() string { return n.str }

// Float returns the value of a Number node read as a float64. Numbers outside
// the float64 range read as ±Inf.
func (n *Node) Float() float64 { return n.num }

// Integral reports whether a Number node was written without a fraction or
// exponent.
func (n *Node) Integral() bool { return n.integral }

// Bool returns the value of a Boolean node.
func (n *Node) Bool() bool { return n.truth }

// Len returns the element count of an Array or the member count of an Object.
func (n *Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.elems)
	case KindObject:
		return len(n.members)
	}
	return 0
}

// Elem returns the i'th element of an Array node.
func (n *Node) Elem(i int) *Node { return n.elems[i] }

// Members returns the members of an Object node in source order.
func (n *Node) Members() []Member { return n.members }

// Lookup returns the value stored under name in an Object node.
func (n *Node) Lookup(name string) (*Node, bool) {
	v, ok := n.index[name]
	return v, ok
}

// Raw returns the node's JSON text exactly as it appeared in the source,
// including any whitespace inside composites.
func (n *Node) Raw() string { return n.raw }

// Parse decodes a single JSON value into a Node tree. Empty input, trailing
// data, invalid UTF-8 and duplicate object names are all errors.
func Parse(data []byte) (*Node, error) {
	p := &parser{data: data, dec: jsontext.NewDecoder(bytes.NewReader(data))}

	root, err := p.value()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch _, err := p.dec.ReadToken(); {
	case err == nil:
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", p.dec.InputOffset())
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	return root, nil
}

// parser walks the token stream and slices composite source text out of data.
type parser struct {
	data []byte
	dec  *jsontext.Decoder
}

func (p *parser) value() (*Node, error) {
	switch p.dec.PeekKind() {
	case '{':
		return p.object()
	case '[':
		return p.array()
	}

	raw, err := p.dec.ReadValue()
	if err != nil {
		return nil, err
	}
	return parseLeaf(raw)
}

// enter consumes a delimiter token and returns the offset of that delimiter.
func (p *parser) enter() (int64, error) {
	if _, err := p.dec.ReadToken(); err != nil {
		return 0, err
	}
	return p.dec.InputOffset() - 1, nil
}

// leave consumes the matching delimiter and returns the source text from start
// through it.
func (p *parser) leave(start int64) (string, error) {
	if _, err := p.dec.ReadToken(); err != nil {
		return "", err
	}
	return string(p.data[start:p.dec.InputOffset()]), nil
}

func (p *parser) object() (*Node, error) {
	start, err := p.enter() // '{'
	if err != nil {
		return nil, err
	}

	n := &Node{kind: KindObject, index: make(map[string]*Node)}
	for p.dec.PeekKind() != '}' {
		rawName, err := p.dec.ReadValue()
		if err != nil {
			return nil, err
		}
		var m Member
		if err := json.Unmarshal(rawName, &m.Name); err != nil {
			return nil, fmt.Errorf("object name %s: %w", rawName, err)
		}

		if m.Value, err = p.value(); err != nil {
			return nil, err
		}
		n.members = append(n.members, m)
		n.index[m.Name] = m.Value
	}

	if n.raw, err = p.leave(start); err != nil { // '}'
		return nil, err
	}
	return n, nil
}

func (p *parser) array() (*Node, error) {
	start, err := p.enter() // '['
	if err != nil {
		return nil, err
	}

	n := &Node{kind: KindArray, elems: []*Node{}}
	for p.dec.PeekKind() != ']' {
		e, err := p.value()
		if err != nil {
			return nil, err
		}
		n.elems = append(n.elems, e)
	}

	if n.raw, err = p.leave(start); err != nil { // ']'
		return nil, err
	}
	return n, nil
}

func parseLeaf(raw jsontext.Value) (*Node, error) {
	n := &Node{raw: string(raw)}

	switch raw.Kind() {
	case 'n':
		n.kind = KindNull
	case 't', 'f':
		n.kind = KindBoolean
		n.truth = raw.Kind() == 't'
	case '"':
		n.kind = KindString
		if err := json.Unmarshal(raw, &n.str); err != nil {
			return nil, fmt.Errorf("string %s: %w", raw, err)
		}
	case '0':
		n.kind = KindNumber
		n.integral = !strings.ContainsAny(n.raw, ".eE")
		f, err := strconv.ParseFloat(n.raw, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("number %s: %w", raw, err)
		}
		n.num = f
	default:
		return nil, fmt.Errorf("unexpected value %q", raw)
	}

	return n, nil
}
