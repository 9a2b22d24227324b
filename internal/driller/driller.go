// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoMatch is returned when a selector addresses nothing.
var ErrNoMatch = errors.New("selector matched nothing")

var segmentRE = regexp.MustCompile(`^([^\[\]]*)(\[(\d+|\*)?\])?$`)

// Driller navigates JSON using a dotted path. Each segment is a member name
// optionally followed by [n] to pick an element, or [] / [*] to keep the whole
// array. A leading segment of just [n] indexes a root array.
func Driller(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)
	if path == "" {
		return current
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRE.FindStringSubmatch(p)
		if len(matches) == 0 || (matches[1] == "" && matches[2] == "") {
			return gjson.Result{}
		}

		val := current
		if key := matches[1]; key != "" {
			if !current.IsObject() {
				return gjson.Result{}
			}
			val = current.Get(gjson.Escape(key))
		}

		if matches[2] != "" {
			if !val.IsArray() {
				return gjson.Result{}
			}
			if idx := matches[3]; idx != "" && idx != "*" {
				i, err := strconv.Atoi(idx)
				if err != nil {
					return gjson.Result{}
				}
				arr := val.Array()
				if i >= len(arr) {
					return gjson.Result{}
				}
				val = arr[i]
			}
		}

		if !val.Exists() {
			return gjson.Result{}
		}
		current = val
	}

	return current
}

// Drill returns the raw JSON text addressed by path within data. An empty path
// returns data unchanged.
func Drill(data []byte, path string) ([]byte, error) {
	if path == "" {
		return data, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("cannot apply selector %q: document is not valid JSON", path)
	}

	r := Driller(string(data), path)
	if !r.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
	}
	return []byte(r.Raw), nil
}
