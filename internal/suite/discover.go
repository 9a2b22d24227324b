// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package suite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/util"
)

// ScriptFile names the script that produces a case's actual document.
const ScriptFile = "script.hcl"

// ErrNoCases is returned when a directory tree holds no cases.
var ErrNoCases = errors.New("no cases found")

var docExts = []string{".json", ".yaml", ".yml"}

// Case is one discovered comparison.
type Case struct {
	Name     string `json:"name" yaml:"name"`
	Dir      string `json:"dir" yaml:"dir"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Script   string `json:"script,omitempty" yaml:"script,omitempty"`
	Input    string `json:"input,omitempty" yaml:"input,omitempty"`
}

// Discover walks dir and returns its cases in lexical directory order. A
// case named "." is the root directory itself.
func Discover(dir string) ([]Case, error) {
	root, err := util.ResolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid suite directory %q: %w", dir, err)
	}

	var cases []Case
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && d.Name()[0] == '.' {
			return filepath.SkipDir
		}

		c, ok := caseAt(path)
		if !ok {
			return nil
		}
		name, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		c.Name = filepath.ToSlash(name)
		log.Debugf("case %s discovered", c.Name)
		cases = append(cases, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCases, dir)
	}
	return cases, nil
}

// caseAt reports the case held directly in dir, if any. An actual document
// wins over a script.
func caseAt(dir string) (Case, bool) {
	c := Case{Dir: dir, Expected: firstDoc(dir, "expected")}
	if c.Expected == "" {
		return Case{}, false
	}

	if c.Actual = firstDoc(dir, "actual"); c.Actual != "" {
		return c, true
	}
	script := filepath.Join(dir, ScriptFile)
	if isFile(script) {
		c.Script = script
		c.Input = firstDoc(dir, "input")
		return c, true
	}
	return Case{}, false
}

func firstDoc(dir, base string) string {
	for _, ext := range docExts {
		p := filepath.Join(dir, base+ext)
		if isFile(p) {
			return p
		}
	}
	return ""
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
