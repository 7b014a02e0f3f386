package value

import "strings"

type mapEntry struct {
	Key   Value
	Value Value
}

// Map is a Sass map: an insertion-ordered association of values to values.
// Keys compare with the same Equal semantics as everywhere else, so `1` and
// `1.0` collide but `1` and `"1"` don't.
type Map struct {
	entries []mapEntry
}

// NewMap builds a Map from parallel key/value slices, keeping the first
// occurrence's position but the last occurrence's value on key collision
// (the literal-map-construction rule Sass uses for `(a: 1, a: 2)`).
func NewMap(keys, values []Value) *Map {
	m := &Map{}
	for i := range keys {
		m.Set(keys[i], values[i])
	}
	return m
}

func (m *Map) Truthy() bool     { return true }
func (m *Map) TypeName() string { return "map" }

func (m *Map) Len() int { return len(m.entries) }

// Get looks up key, returning ok=false if absent.
func (m *Map) Get(key Value) (Value, bool) {
	for _, e := range m.entries {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Set inserts or overwrites key's value, preserving its original insertion
// position when it already exists.
func (m *Map) Set(key, val Value) {
	for i, e := range m.entries {
		if Equal(e.Key, key) {
			m.entries[i].Value = val
			return
		}
	}
	m.entries = append(m.entries, mapEntry{Key: key, Value: val})
}

// Remove deletes key if present and reports whether it was.
func (m *Map) Remove(key Value) bool {
	for i, e := range m.entries {
		if Equal(e.Key, key) {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Key
	}
	return out
}

// Values returns the values in insertion order.
func (m *Map) Values() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Value
	}
	return out
}

// Merged returns a new Map containing m's entries overridden by other's,
// per sass:map's `map.merge`.
func (m *Map) Merged(other *Map) *Map {
	out := &Map{entries: append([]mapEntry{}, m.entries...)}
	for _, e := range other.entries {
		out.Set(e.Key, e.Value)
	}
	return out
}

// AsList renders the map as the two-item-per-entry list used when a map is
// coerced to a plain list by sass:list functions.
func (m *Map) AsList() *List {
	items := make([]Value, len(m.entries))
	for i, e := range m.entries {
		items[i] = NewList([]Value{e.Key, e.Value}, SepSpace, false)
	}
	return NewList(items, SepComma, false)
}

func (m *Map) String() string {
	if len(m.entries) == 0 {
		return "()"
	}
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
