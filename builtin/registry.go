// Package builtin implements the sass:math, sass:list, sass:map,
// sass:string, sass:color and sass:meta built-in module functions, plus
// the handful of string functions that are also available unprefixed in
// the global namespace for historical compatibility.
package builtin

import (
	"fmt"

	"github.com/titpetric/scssgo/value"
)

// Func is the signature every built-in implements once its arguments have
// been bound by name: a resolved Call carrying positional and named values
// already matched against the function's declared signature.
type Func func(c *Call) (value.Value, error)

// Param is one declared parameter of a built-in signature.
type Param struct {
	Name     string
	Default  value.Value // nil if required
	Rest     bool
}

// Signature is a built-in's declared parameter list, used both to validate
// and name-bind a call's actual arguments.
type Signature struct {
	Name   string
	Params []Param
}

// Entry pairs a Signature with its implementation.
type Entry struct {
	Signature Signature
	Fn        Func
}

// Registry is a named collection of built-ins, one per sass: module plus a
// "global" registry for unprefixed compatibility functions.
type Registry struct {
	Module  string
	entries map[string]Entry
}

func NewRegistry(module string) *Registry {
	return &Registry{Module: module, entries: make(map[string]Entry)}
}

func (r *Registry) Add(sig Signature, fn Func) {
	r.entries[normalizeName(sig.Name)] = Entry{Signature: sig, Fn: fn}
}

func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[normalizeName(name)]
	return e, ok
}

func normalizeName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '_' {
			out[i] = '-'
		} else {
			out[i] = name[i]
		}
	}
	return string(out)
}

// Call is one bound invocation: positional args already matched to names
// per Signature, plus the raw leftover for `...` rest parameters.
type Call struct {
	Args map[string]value.Value
	Rest *value.ArgumentList
}

// Arg fetches an argument by name, returning nil if the binder did not
// supply it (Bind guarantees required params are present before Fn ever
// runs, so a nil result only arises for an unknown name).
func (c *Call) Arg(name string) value.Value { return c.Args[name] }

// Number/String/Color/List/Map/Boolean are convenience accessors that type-
// assert an argument, returning a descriptive error instead of panicking.
func (c *Call) Number(name string) (value.Number, error) {
	v, ok := c.Args[name].(value.Number)
	if !ok {
		return value.Number{}, typeError(name, "number", c.Args[name])
	}
	return v, nil
}

func (c *Call) String(name string) (value.String, error) {
	v, ok := c.Args[name].(value.String)
	if !ok {
		return value.String{}, typeError(name, "string", c.Args[name])
	}
	return v, nil
}

func (c *Call) Color(name string) (value.Color, error) {
	v, ok := c.Args[name].(value.Color)
	if !ok {
		return value.Color{}, typeError(name, "color", c.Args[name])
	}
	return v, nil
}

func (c *Call) List(name string) *value.List {
	return value.Singleton(c.Args[name])
}

func (c *Call) Map(name string) (*value.Map, error) {
	v, ok := c.Args[name].(*value.Map)
	if !ok {
		return nil, typeError(name, "map", c.Args[name])
	}
	return v, nil
}

func typeError(name, want string, got value.Value) error {
	gotName := "null"
	if got != nil {
		gotName = got.TypeName()
	}
	return fmt.Errorf("$%s: expected %s, got %s", name, want, gotName)
}

// Bind matches positional and named actual arguments against sig, applying
// defaults and collecting any trailing rest arguments. It is the built-in
// call protocol's one entry point; the evaluator's user-defined-function
// binder (in package eval) follows the same shape but also closes over a
// call-site env frame for default-expression evaluation.
func Bind(sig Signature, positional []value.Value, named map[string]value.Value) (*Call, error) {
	bound := make(map[string]value.Value, len(sig.Params))
	used := make(map[string]bool, len(named))

	pi := 0
	var rest []value.Value
	for _, p := range sig.Params {
		if p.Rest {
			for ; pi < len(positional); pi++ {
				rest = append(rest, positional[pi])
			}
			continue
		}
		if pi < len(positional) {
			bound[p.Name] = positional[pi]
			pi++
			continue
		}
		if v, ok := named[p.Name]; ok {
			bound[p.Name] = v
			used[p.Name] = true
			continue
		}
		if p.Default != nil {
			bound[p.Name] = p.Default
			continue
		}
		return nil, fmt.Errorf("%s: missing required argument $%s", sig.Name, p.Name)
	}
	if pi < len(positional) {
		return nil, fmt.Errorf("%s: only %d positional arguments expected, got %d", sig.Name, pi, len(positional))
	}
	restKeywords := value.NewMap(nil, nil)
	for k, v := range named {
		if used[k] {
			continue
		}
		found := false
		for _, p := range sig.Params {
			if p.Name == k {
				found = true
				break
			}
		}
		if !found {
			hasRest := false
			for _, p := range sig.Params {
				if p.Rest {
					hasRest = true
				}
			}
			if !hasRest {
				return nil, fmt.Errorf("%s: no argument named $%s", sig.Name, k)
			}
			restKeywords.Set(value.NewString(k, true), v)
		}
	}

	call := &Call{Args: bound}
	if restKeywords.Len() > 0 || rest != nil {
		call.Rest = value.NewArgumentList(rest, value.SepComma, restKeywords)
	}
	return call, nil
}
