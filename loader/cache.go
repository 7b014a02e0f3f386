package loader

import "github.com/titpetric/scssgo/env"

// state tags how far a cached module has progressed, so a cycle that would
// otherwise deadlock (module A's body, still executing, reaching a second
// `@use` of itself through some other path) is reported instead of hung on.
type state int

const (
	stateLoading state = iota
	stateLoaded
)

// ModuleCache memoizes loaded modules by canonical path so that `@use`d
// exactly once no matter how many stylesheets use it, per Sass's module
// semantics (contrasted with `@import`, which always re-evaluates).
type ModuleCache struct {
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	state  state
	module *env.Module
}

func NewModuleCache() *ModuleCache {
	return &ModuleCache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached module for canonicalPath, if fully loaded.
func (c *ModuleCache) Get(canonicalPath string) (*env.Module, bool) {
	e, ok := c.entries[canonicalPath]
	if !ok || e.state != stateLoaded {
		return nil, false
	}
	return e.module, true
}

// MarkLoading reserves canonicalPath's slot before evaluation begins, so a
// concurrent or re-entrant request can detect the in-progress load.
func (c *ModuleCache) MarkLoading(canonicalPath string) {
	c.entries[canonicalPath] = &cacheEntry{state: stateLoading}
}

// IsLoading reports whether canonicalPath is mid-evaluation (used to
// distinguish an ordinary cache miss from a genuine `@use` cycle).
func (c *ModuleCache) IsLoading(canonicalPath string) bool {
	e, ok := c.entries[canonicalPath]
	return ok && e.state == stateLoading
}

// Store records the finished module.
func (c *ModuleCache) Store(canonicalPath string, m *env.Module) {
	c.entries[canonicalPath] = &cacheEntry{state: stateLoaded, module: m}
}
