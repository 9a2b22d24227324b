// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcheck/jcheck/internal/log"
)

// Attr is one report column: the row field it shows, its title and how the
// value is transformed before rendering.
type Attr struct {
	// The row field to extract (path, expected, actual or category).
	Key string `yaml:"key" json:"key"`
	// Should this Attr be shown or is it only used for sorting?
	Include bool `yaml:"include" json:"include"`
	// The column title.
	OutputKey string `yaml:"outputKey" json:"outputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"transformSpec"`
}

var lengthRE = regexp.MustCompile(`-?\d+`)

// Transform applies the attribute's transform spec to value.
//
//   - u / U: upper case, l / L: lower case; the last one given wins.
//   - n: truncate to n characters.
//   - -n: keep n characters, eliding the middle with "..".
func (a *Attr) Transform(value string) string {
	result := value

	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// A later length overrides an earlier (global) one.
	match := lengthRE.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}
	l, _ := strconv.Atoi(match[len(match)-1])

	runes := []rune(result)
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if len(runes) <= abs || abs == 0 {
		return result
	}

	if l < 0 {
		if abs < 4 { //nolint:mnd
			return string(runes[:abs])
		}
		side := abs/2 - 1
		result = string(runes[:side]) + ".." + string(runes[len(runes)-side:])
		log.Tracef("length middle: result=%s", result)
		return result
	}

	result = string(runes[:l])
	log.Tracef("length trunc: result=%s", result)
	return result
}

// AttrList is a collection of Attr used to shape report columns.
type AttrList []Attr

// Defaults returns the default report columns.
func Defaults() AttrList {
	return AttrList{
		{Key: "path", OutputKey: "PATH", Include: true},
		{Key: "expected", OutputKey: "EXPECTED", Include: true},
		{Key: "actual", OutputKey: "ACTUAL", Include: true},
	}
}

// Set parses a --columns value and merges it into the AttrList. Each comma
// separated spec is "key[:title[:transform]]"; a leading ! hides the column
// and "*" carries a transform applied to every column.
func (a *AttrList) Set(value string) error {
	if value == "" {
		return nil
	}

	const (
		keyIdx = iota
		titleIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "*" {
			attr.Include = false
		} else if !knownKey(attr.Key) {
			return fmt.Errorf("unknown column %q", attr.Key)
		}

		attr.OutputKey = strings.ToUpper(attr.Key)
		if len(fields) > titleIdx && strings.TrimSpace(fields[titleIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[titleIdx])
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Merge into an existing column of the same key.
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i] = attr
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the "*" column's transform to every column.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		if (*a)[i].Key != "*" {
			(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
		}
	}
}

// Visible returns the included columns in order.
func (a AttrList) Visible() AttrList {
	out := AttrList{}
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// String returns the list in --columns form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && key != "*" {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

func knownKey(k string) bool {
	switch k {
	case "path", "expected", "actual", "category":
		return true
	}
	return false
}
