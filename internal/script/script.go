// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/plugin"
)

const (
	// ResultAttr names the attribute holding the script output.
	ResultAttr = "result"
	localRoot  = "local"
	inputRoot  = "input"
)

// ErrNoResult is returned for scripts without a result attribute.
var ErrNoResult = errors.New("script has no result attribute")

// Engine evaluates scripts against a fixed function table.
type Engine struct {
	funcs map[string]function.Function
}

// New builds an engine with the built-in functions plus those in reg. A
// plugin may not shadow a built-in.
func New(reg *plugin.Registry) (*Engine, error) {
	funcs := builtins()
	if reg != nil {
		for name, fn := range reg.Functions() {
			if _, exists := funcs[name]; exists {
				return nil, fmt.Errorf("plugin function %q shadows a built-in", name)
			}
			funcs[name] = fn
		}
	}
	return &Engine{funcs: funcs}, nil
}

var defaultEngine = sync.OnceValues(func() (*Engine, error) {
	return New(plugin.Default())
})

// Run evaluates src with the default engine.
func Run(ctx context.Context, src []byte, filename string, input []byte) ([]byte, error) {
	e, err := defaultEngine()
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, src, filename, input)
}

// Eval evaluates a single expression with the default engine.
func Eval(expr string, input []byte) ([]byte, error) {
	e, err := defaultEngine()
	if err != nil {
		return nil, err
	}
	return e.Eval(expr, input)
}

// Names lists the default engine's functions in name order.
func Names() ([]string, error) {
	e, err := defaultEngine()
	if err != nil {
		return nil, err
	}
	return e.Names(), nil
}

// Names lists the engine's functions in name order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.funcs))
	for name := range e.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run evaluates the script in src against input (raw JSON, or empty for
// null) and returns the result as JSON text.
func (e *Engine) Run(ctx context.Context, src []byte, filename string, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	result, ok := attrs[ResultAttr]
	if !ok {
		return nil, ErrNoResult
	}
	delete(attrs, ResultAttr)
	if _, err := localDeps(result, attrs); err != nil {
		return nil, err
	}

	evalCtx, err := e.context(input)
	if err != nil {
		return nil, err
	}
	if err := resolveLocals(ctx, evalCtx, attrs); err != nil {
		return nil, err
	}

	val, diags := result.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return encode(val)
}

// Eval evaluates a single expression against input.
func (e *Engine) Eval(expr string, input []byte) ([]byte, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(expr), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}
	evalCtx, err := e.context(input)
	if err != nil {
		return nil, err
	}
	val, diags := parsed.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	return encode(val)
}

// context binds input and the function table.
func (e *Engine) context(input []byte) (*hcl.EvalContext, error) {
	doc, err := decodeInput(input)
	if err != nil {
		return nil, err
	}

	vars := map[string]cty.Value{
		inputRoot: doc,
		localRoot: cty.EmptyObjectVal,
	}
	if !doc.IsNull() && doc.Type().IsObjectType() {
		for name, v := range doc.AsValueMap() {
			if name == inputRoot || name == localRoot {
				continue
			}
			vars[name] = v
		}
	}
	return &hcl.EvalContext{Variables: vars, Functions: e.funcs}, nil
}

func decodeInput(input []byte) (cty.Value, error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	ty, err := ctyjson.ImpliedType(input)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to read input: %w", err)
	}
	v, err := ctyjson.Unmarshal(input, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to read input: %w", err)
	}
	return v, nil
}

// resolveLocals evaluates locals in dependency order, publishing each one
// under local.<name> as soon as it is known.
func resolveLocals(ctx context.Context, evalCtx *hcl.EvalContext, attrs hcl.Attributes) error {
	locals := map[string]cty.Value{}
	pending := make(map[string]*hcl.Attribute, len(attrs))
	for name, a := range attrs {
		pending[name] = a
	}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		progressed := false
		for _, name := range sortedNames(pending) {
			a := pending[name]
			deps, err := localDeps(a, attrs)
			if err != nil {
				return err
			}
			if !ready(deps, locals) {
				continue
			}

			v, diags := a.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return diags
			}
			locals[name] = v
			evalCtx.Variables[localRoot] = cty.ObjectVal(locals)
			delete(pending, name)
			progressed = true
			log.Tracef("local.%s resolved", name)
		}

		if !progressed {
			return fmt.Errorf("locals form a cycle: %v", sortedNames(pending))
		}
	}
	return nil
}

// localDeps lists the locals an attribute refers to.
func localDeps(a *hcl.Attribute, attrs hcl.Attributes) ([]string, error) {
	var deps []string
	for _, tr := range a.Expr.Variables() {
		if tr.RootName() != localRoot || len(tr) < 2 {
			continue
		}
		step, ok := tr[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, defined := attrs[step.Name]; !defined {
			return nil, fmt.Errorf("%s: local.%s is not defined", tr.SourceRange(), step.Name)
		}
		deps = append(deps, step.Name)
	}
	return deps, nil
}

func ready(deps []string, locals map[string]cty.Value) bool {
	for _, d := range deps {
		if _, ok := locals[d]; !ok {
			return false
		}
	}
	return true
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
