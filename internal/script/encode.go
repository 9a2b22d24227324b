// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/zclconf/go-cty/cty"
)

// encode renders v as compact JSON. Integral numbers print exactly and
// without a fraction; object members are in name order.
func encode(v cty.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	unmarked, _ := v.UnmarkDeep()
	if err := encodeValue(enc, unmarked); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

func encodeValue(enc *jsontext.Encoder, v cty.Value) error {
	if !v.IsKnown() {
		return fmt.Errorf("value is not known")
	}
	if v.IsNull() {
		return enc.WriteToken(jsontext.Null)
	}

	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return enc.WriteToken(jsontext.Bool(v.True()))
	case ty == cty.String:
		return enc.WriteToken(jsontext.String(v.AsString()))
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInf() {
			return fmt.Errorf("infinity has no JSON representation")
		}
		if bf.IsInt() {
			return enc.WriteValue(jsontext.Value(bf.Text('f', 0)))
		}
		f, _ := bf.Float64()
		if math.IsInf(f, 0) {
			return fmt.Errorf("number %s is out of range", bf.Text('g', 10))
		}
		return enc.WriteToken(jsontext.Float(f))
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if err := encodeValue(enc, ev); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case ty.IsMapType() || ty.IsObjectType():
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			if err := enc.WriteToken(jsontext.String(k.AsString())); err != nil {
				return err
			}
			if err := encodeValue(enc, ev); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	}
	return fmt.Errorf("cannot encode %s", ty.FriendlyName())
}
