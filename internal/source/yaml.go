// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned for YAML input with no document.
var ErrEmptyDocument = errors.New("empty yaml document")

// YAMLToJSON converts the first YAML document in data to JSON text. Mapping
// order is preserved.
func YAMLToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, ErrEmptyDocument
	}

	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := encodeNode(enc, &root); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

func encodeNode(enc *jsontext.Encoder, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		return encodeNode(enc, n.Content[0])
	case yaml.AliasNode:
		return encodeNode(enc, n.Alias)
	case yaml.MappingNode:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			if err := enc.WriteToken(jsontext.String(k.Value)); err != nil {
				return fmt.Errorf("line %d: %w", k.Line, err)
			}
			if err := encodeNode(enc, v); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	case yaml.SequenceNode:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := encodeNode(enc, c); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case yaml.ScalarNode:
		tok, err := scalarToken(n)
		if err != nil {
			return err
		}
		return enc.WriteToken(tok)
	}
	return fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

func scalarToken(n *yaml.Node) (jsontext.Token, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsontext.Null, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsontext.Token{}, err
		}
		return jsontext.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return jsontext.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return jsontext.Uint(u), nil
		}
		return floatToken(n)
	case "!!float":
		return floatToken(n)
	}
	return jsontext.String(n.Value), nil
}

func floatToken(n *yaml.Node) (jsontext.Token, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return jsontext.Token{}, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return jsontext.Token{}, fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
	}
	return jsontext.Float(f), nil
}
