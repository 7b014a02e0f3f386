package eval

import (
	"fmt"
	"strings"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/builtin"
	"github.com/titpetric/scssgo/csstree"
	"github.com/titpetric/scssgo/env"
	"github.com/titpetric/scssgo/value"
)

// UserFunction is an `@function`-declared function, bound to the frame
// chain visible where it was defined (its closure).
type UserFunction struct {
	Decl    *ast.FunctionDecl
	Closure *env.Frame
}

// UserMixin is an `@mixin`-declared mixin, bound the same way.
type UserMixin struct {
	Decl    *ast.MixinDecl
	Closure *env.Frame
}

// contentClosure is the block (and its defining scope) passed to an
// @include ... { ... }, recalled by the nearest enclosing @content.
type contentClosure struct {
	block   *ast.Block
	closure *env.Frame
	args    []ast.Argument
}

func (e *Evaluator) evalCall(x *ast.FunctionCall, frame *env.Frame) (value.Value, error) {
	positional, named, err := e.splitArgs(x.Args, frame)
	if err != nil {
		return nil, err
	}

	if (x.Namespace == "" || x.Namespace == "meta") && isMetaExistenceCheck(x.Name) {
		return e.metaExistenceCheck(x.Name, positional, named, frame)
	}

	if x.Namespace != "" {
		if reg, ok := e.builtins[x.Namespace]; ok {
			if entry, ok := reg.Lookup(x.Name); ok {
				return e.callBuiltin(entry, positional, named)
			}
		}
		if mod, ok := e.modules[x.Namespace]; ok {
			if fn, ok := mod.Root.LookupFunction(x.Name); ok {
				return e.callUserFunction(fn.(*UserFunction), positional, named)
			}
		}
		return nil, fmt.Errorf("undefined function %s.%s()", x.Namespace, x.Name)
	}

	if fn, ok := frame.LookupFunction(x.Name); ok {
		return e.callUserFunction(fn.(*UserFunction), positional, named)
	}
	if entry, ok := e.globalAliases.Lookup(x.Name); ok {
		return e.callBuiltin(entry, positional, named)
	}
	for _, modName := range []string{"math", "color", "string", "list", "map", "meta"} {
		if entry, ok := e.builtins[modName].Lookup(x.Name); ok {
			return e.callBuiltin(entry, positional, named)
		}
	}
	if i := strings.IndexAny(x.Name, "-_"); i > 0 {
		if reg, ok := e.builtins[x.Name[:i]]; ok {
			if entry, ok := reg.Lookup(x.Name[i+1:]); ok {
				return e.callBuiltin(entry, positional, named)
			}
		}
	}

	// Unknown function: treat as a plain-CSS function passthrough
	// (`calc()`, `url()`, vendor functions, ...), matching Sass's rule that
	// an unrecognized function name is not an error but a literal call.
	return e.plainCSSCall(x.Name, positional, named), nil
}

func isMetaExistenceCheck(name string) bool {
	switch name {
	case "function-exists", "variable-exists", "mixin-exists":
		return true
	default:
		return false
	}
}

// metaExistenceCheck answers meta.function-exists/variable-exists/
// mixin-exists against the live call site: frame for user-defined
// functions/variables/mixins (walking parent frames the same way a normal
// lookup would), plus this Evaluator's own builtin registries and @use'd
// modules. builtin.Meta()'s registry entries for these three always return
// false — a builtin.Func only ever sees its bound arguments, never the
// frame or evaluator state this needs — so the check is intercepted here,
// before dispatch ever reaches that registry.
func (e *Evaluator) metaExistenceCheck(name string, positional []value.Value, named map[string]value.Value, frame *env.Frame) (value.Value, error) {
	target, err := existenceArg(positional, named, "name", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	module, _ := existenceArg(positional, named, "module", 1)

	switch name {
	case "function-exists":
		return value.Boolean(e.functionExists(target, module, frame)), nil
	case "variable-exists":
		return value.Boolean(e.variableExists(target, module, frame)), nil
	default: // mixin-exists
		return value.Boolean(e.mixinExists(target, module, frame)), nil
	}
}

// existenceArg reads a string argument either by position (pos) or by name,
// returning "" with no error when it's altogether absent (the optional
// $module parameter).
func existenceArg(positional []value.Value, named map[string]value.Value, name string, pos int) (string, error) {
	var v value.Value
	switch {
	case pos < len(positional):
		v = positional[pos]
	default:
		v = named[name]
	}
	if v == nil {
		return "", nil
	}
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("$%s: expected a string, got %s", name, v.TypeName())
	}
	return s.Text, nil
}

func (e *Evaluator) functionExists(name, module string, frame *env.Frame) bool {
	if module != "" {
		if mod, ok := e.modules[module]; ok {
			if _, ok := mod.Root.LookupFunction(name); ok {
				return true
			}
		}
		if reg, ok := e.builtins[module]; ok {
			if _, ok := reg.Lookup(name); ok {
				return true
			}
		}
		return false
	}
	if _, ok := frame.LookupFunction(name); ok {
		return true
	}
	if _, ok := e.globalAliases.Lookup(name); ok {
		return true
	}
	for _, modName := range []string{"math", "color", "string", "list", "map", "meta"} {
		if _, ok := e.builtins[modName].Lookup(name); ok {
			return true
		}
	}
	return false
}

func (e *Evaluator) variableExists(name, module string, frame *env.Frame) bool {
	if module != "" {
		mod, ok := e.modules[module]
		if !ok {
			return false
		}
		_, ok = mod.Root.GetLocal(name)
		return ok
	}
	_, ok := frame.Get(name)
	return ok
}

func (e *Evaluator) mixinExists(name, module string, frame *env.Frame) bool {
	if module != "" {
		mod, ok := e.modules[module]
		if !ok {
			return false
		}
		_, ok = mod.Root.LookupMixin(name)
		return ok
	}
	_, ok := frame.LookupMixin(name)
	return ok
}

func (e *Evaluator) callBuiltin(entry builtin.Entry, positional []value.Value, named map[string]value.Value) (value.Value, error) {
	call, err := builtin.Bind(entry.Signature, positional, named)
	if err != nil {
		return nil, err
	}
	return entry.Fn(call)
}

func (e *Evaluator) plainCSSCall(name string, positional []value.Value, named map[string]value.Value) value.Value {
	parts := make([]string, 0, len(positional)+len(named))
	for _, v := range positional {
		parts = append(parts, v.String())
	}
	for k, v := range named {
		parts = append(parts, "$"+k+": "+v.String())
	}
	text := name + "("
	for i, p := range parts {
		if i > 0 {
			text += ", "
		}
		text += p
	}
	text += ")"
	return value.NewString(text, false)
}

// bindArgs implements the user-function/mixin call protocol: same shape as
// builtin.Bind, but each default expression is evaluated lazily against
// frame (the pushed call frame, so earlier parameters are visible to later
// defaults) rather than precomputed once at declaration time.
func (e *Evaluator) bindArgs(params []ast.Argument, positional []value.Value, named map[string]value.Value, frame *env.Frame) (*value.ArgumentList, error) {
	pi := 0
	for _, p := range params {
		if p.Rest {
			var rest []value.Value
			for ; pi < len(positional); pi++ {
				rest = append(rest, positional[pi])
			}
			kw := value.NewMap(nil, nil)
			for k, v := range named {
				kw.Set(value.NewString(k, true), v)
			}
			frame.SetLocal(p.Name, value.NewArgumentList(rest, value.SepComma, kw))
			return value.NewArgumentList(rest, value.SepComma, kw), nil
		}
		if pi < len(positional) {
			frame.SetLocal(p.Name, positional[pi])
			pi++
			continue
		}
		if v, ok := named[p.Name]; ok {
			frame.SetLocal(p.Name, v)
			continue
		}
		if p.Default != nil {
			v, err := e.evalExpr(p.Default, frame)
			if err != nil {
				return nil, err
			}
			frame.SetLocal(p.Name, v)
			continue
		}
		return nil, fmt.Errorf("missing argument $%s", p.Name)
	}
	if pi < len(positional) {
		return nil, fmt.Errorf("only %d positional arguments expected, got %d", pi, len(positional))
	}
	return nil, nil
}

func (e *Evaluator) callUserFunction(fn *UserFunction, positional []value.Value, named map[string]value.Value) (value.Value, error) {
	frame := fn.Closure.Push(env.Permeable)
	if _, err := e.bindArgs(fn.Decl.Args, positional, named, frame); err != nil {
		return nil, fmt.Errorf("%s(): %w", fn.Decl.Name, err)
	}
	// A function body has nothing legitimate to emit (only control flow,
	// variable assignment and @return are meaningful inside one), so its
	// evalBlock is given a throwaway sink rather than a real output node.
	res, err := e.evalBlock(fn.Decl.Body, frame, csstree.NewRoot(), nil)
	if err != nil {
		return nil, err
	}
	if !res.returned {
		return nil, fmt.Errorf("function %s finished without @return", fn.Decl.Name)
	}
	return res.value, nil
}

func (e *Evaluator) callUserMixin(mx *UserMixin, positional []value.Value, named map[string]value.Value, content *contentClosure, out csstree.Container, selCtx *ast.SelectorList) error {
	frame := mx.Closure.Push(env.Permeable)
	if _, err := e.bindArgs(mx.Decl.Args, positional, named, frame); err != nil {
		return fmt.Errorf("%s(): %w", mx.Decl.Name, err)
	}
	e.contentStack = append(e.contentStack, content)
	defer func() { e.contentStack = e.contentStack[:len(e.contentStack)-1] }()
	_, err := e.evalBlock(mx.Decl.Body, frame, out, selCtx)
	return err
}
