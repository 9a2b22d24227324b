// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/jcheck/jcheck/internal/log"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Info describes one registered function.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Provider  string `json:"provider" yaml:"provider"`
	Signature string `json:"signature" yaml:"signature"`
}

type entry struct {
	fn   function.Function
	info Info
}

// Registry holds named script functions.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Default returns a registry holding the built-in Numeric and Text providers.
func Default() *Registry {
	r := New()
	for _, p := range []any{Numeric{}, Text{}} {
		if _, err := r.Discover("", p); err != nil {
			panic(err)
		}
	}
	return r
}

// Discover registers every supported exported method of provider and
// returns how many were added. A non-empty namespace prefixes each name
// with "<namespace>_". Nothing is registered if any name is taken.
func (r *Registry) Discover(namespace string, provider any) (int, error) {
	v := reflect.ValueOf(provider)
	if !v.IsValid() {
		return 0, fmt.Errorf("nil provider")
	}
	t := v.Type()
	providerName := t.String()

	found := make(map[string]entry)
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		fn, sig, err := wrap(v.Method(i))
		if err != nil {
			log.Debugf("plugin %s.%s skipped: %v", providerName, m.Name, err)
			continue
		}

		name := SnakeCase(m.Name)
		if namespace != "" {
			name = namespace + "_" + name
		}
		found[name] = entry{fn: fn, info: Info{Name: name, Provider: providerName, Signature: name + sig}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range found {
		if _, exists := r.entries[name]; exists {
			return 0, fmt.Errorf("function %q already registered", name)
		}
	}
	for name, e := range found {
		r.entries[name] = e
	}
	log.Debugf("plugin %s: %d functions", providerName, len(found))
	return len(found), nil
}

// Register adds a single function under name.
func (r *Registry) Register(name string, fn function.Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("function %q already registered", name)
	}
	r.entries[name] = entry{fn: fn, info: Info{Name: name, Signature: name + signature(fn)}}
	return nil
}

// Functions returns a copy of the registered functions keyed by name.
func (r *Registry) Functions() map[string]function.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]function.Function, len(r.entries))
	for name, e := range r.entries {
		out[name] = e.fn
	}
	return out
}

// List describes the registered functions in name order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// wrap adapts a bound method to a cty function.
func wrap(method reflect.Value) (function.Function, string, error) {
	mt := method.Type()
	if mt.IsVariadic() {
		return function.Function{}, "", fmt.Errorf("variadic")
	}

	params := make([]function.Parameter, mt.NumIn())
	for i := range params {
		ct, ok := ctyType(mt.In(i))
		if !ok {
			return function.Function{}, "", fmt.Errorf("unsupported parameter %s", mt.In(i))
		}
		params[i] = function.Parameter{Name: fmt.Sprintf("arg%d", i), Type: ct}
	}

	hasErr := false
	switch {
	case mt.NumOut() == 2 && mt.Out(1) == errorType:
		hasErr = true
	case mt.NumOut() != 1:
		return function.Function{}, "", fmt.Errorf("want 1 result or (result, error), got %d", mt.NumOut())
	}
	ret, ok := ctyType(mt.Out(0))
	if !ok {
		return function.Function{}, "", fmt.Errorf("unsupported result %s", mt.Out(0))
	}

	fn := function.New(&function.Spec{
		Params: params,
		Type:   function.StaticReturnType(ret),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			in := make([]reflect.Value, len(args))
			for i, a := range args {
				ptr := reflect.New(mt.In(i))
				if err := gocty.FromCtyValue(a, ptr.Interface()); err != nil {
					return cty.NilVal, function.NewArgError(i, err)
				}
				in[i] = ptr.Elem()
			}

			out := method.Call(in)
			if hasErr && !out[1].IsNil() {
				return cty.NilVal, out[1].Interface().(error)
			}
			return gocty.ToCtyValue(out[0].Interface(), retType)
		},
	})
	return fn, signature(fn), nil
}

func ctyType(t reflect.Type) (cty.Type, bool) {
	switch t.Kind() {
	case reflect.Float64, reflect.Int:
		return cty.Number, true
	case reflect.String:
		return cty.String, true
	case reflect.Bool:
		return cty.Bool, true
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.Float64:
			return cty.List(cty.Number), true
		case reflect.String:
			return cty.List(cty.String), true
		}
	}
	return cty.NilType, false
}

// signature renders "(number, string) bool".
func signature(fn function.Function) string {
	params := fn.Params()
	names := make([]string, len(params))
	types := make([]cty.Type, len(params))
	for i, p := range params {
		names[i] = p.Type.FriendlyName()
		types[i] = p.Type
	}
	ret, err := fn.ReturnType(types)
	if err != nil {
		return "(" + strings.Join(names, ", ") + ")"
	}
	return "(" + strings.Join(names, ", ") + ") " + ret.FriendlyName()
}

// SnakeCase converts a Go method name to snake_case, keeping acronyms
// together ("HTTPStatus" becomes "http_status").
func SnakeCase(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
