package env

import "fmt"

// Module is one `@use`d or `@forward`ed stylesheet's public surface: its
// root Frame plus the bookkeeping needed to resolve `namespace.$var`,
// `namespace.fn()`, and `@forward ... show/hide/as` renaming.
type Module struct {
	URL   string
	Root  *Frame
	// Upstream lists modules this one forwards (directly or transitively),
	// in the order `@forward` encountered them; the loader walks this list
	// to build a use-site's namespace members.
	Upstream []*Forward
}

// Forward records one `@forward` relationship: which module is forwarded,
// under what member-name prefix, and with which show/hide filter applied.
type Forward struct {
	Module *Module
	Prefix string
	Show   map[string]bool // nil means no allow-list restriction
	Hide   map[string]bool // nil means no deny-list restriction
}

// Visible reports whether member (already prefix-stripped to its original
// name within Module) passes this Forward's show/hide filter.
func (fw *Forward) Visible(member string) bool {
	if fw.Show != nil {
		return fw.Show[member]
	}
	if fw.Hide != nil {
		return !fw.Hide[member]
	}
	return true
}

// NewModule creates a Module with a fresh root Frame.
func NewModule(url string) *Module {
	return &Module{URL: url, Root: NewFrame(Module)}
}

// MemberName applies a Forward's prefix to a member's original name, the
// inverse of stripping used when resolving a forwarded reference.
func (fw *Forward) MemberName(original string) string {
	if fw.Prefix == "" {
		return original
	}
	return fw.Prefix + original
}

// ResolveVar resolves `namespace.$name` against a use-site's map of loaded
// modules, returning an error message suitable for a scsserr.Error if the
// namespace or the member within it isn't found.
func ResolveVar(modules map[string]*Module, namespace, name string) (any, error) {
	mod, ok := modules[namespace]
	if !ok {
		return nil, fmt.Errorf("there is no module with the namespace %q", namespace)
	}
	if v, ok := mod.Root.GetLocal(name); ok {
		return v, nil
	}
	for _, fw := range mod.Upstream {
		if !fw.Visible(name) {
			continue
		}
		if v, err := ResolveVar(map[string]*Module{"": fw.Module}, "", name); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("undefined variable %s.$%s", namespace, name)
}
