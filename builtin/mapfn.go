package builtin

import (
	"fmt"

	"github.com/titpetric/scssgo/value"
)

// MapModule returns the sass:map module registry. (Named MapModule, not
// Map, to avoid colliding with the value.Map type in call sites that dot-
// import neither package.)
func MapModule() *Registry {
	r := NewRegistry("map")

	r.Add(Signature{Name: "get", Params: []Param{{Name: "map"}, {Name: "key"}, {Name: "keys", Rest: true}}}, func(c *Call) (value.Value, error) {
		m, err := c.Map("map")
		if err != nil {
			return nil, err
		}
		cur, ok := m.Get(c.Args["key"])
		if !ok {
			return value.Null{}, nil
		}
		for _, k := range c.Rest.Items {
			nextMap, ok := cur.(*value.Map)
			if !ok {
				return value.Null{}, nil
			}
			cur, ok = nextMap.Get(k)
			if !ok {
				return value.Null{}, nil
			}
		}
		return cur, nil
	})

	r.Add(Signature{Name: "has-key", Params: []Param{{Name: "map"}, {Name: "key"}, {Name: "keys", Rest: true}}}, func(c *Call) (value.Value, error) {
		m, err := c.Map("map")
		if err != nil {
			return nil, err
		}
		cur, ok := m.Get(c.Args["key"])
		for _, k := range c.Rest.Items {
			if !ok {
				return value.Boolean(false), nil
			}
			nextMap, isMap := cur.(*value.Map)
			if !isMap {
				return value.Boolean(false), nil
			}
			cur, ok = nextMap.Get(k)
		}
		return value.Boolean(ok), nil
	})

	r.Add(Signature{Name: "set", Params: []Param{{Name: "map"}, {Name: "args", Rest: true}}}, func(c *Call) (value.Value, error) {
		m, err := c.Map("map")
		if err != nil {
			return nil, err
		}
		out := m.Merged(value.NewMap(nil, nil))
		items := c.Rest.Items
		if len(items) < 2 {
			return nil, errNotEnoughMapSetArgs()
		}
		out.Set(items[len(items)-2], items[len(items)-1])
		return out, nil
	})

	r.Add(Signature{Name: "merge", Params: []Param{{Name: "map1"}, {Name: "map2"}}}, func(c *Call) (value.Value, error) {
		m1, err := c.Map("map1")
		if err != nil {
			return nil, err
		}
		m2, err := c.Map("map2")
		if err != nil {
			return nil, err
		}
		return m1.Merged(m2), nil
	})

	r.Add(Signature{Name: "remove", Params: []Param{{Name: "map"}, {Name: "keys", Rest: true}}}, func(c *Call) (value.Value, error) {
		m, err := c.Map("map")
		if err != nil {
			return nil, err
		}
		out := m.Merged(value.NewMap(nil, nil))
		for _, k := range c.Rest.Items {
			out.Remove(k)
		}
		return out, nil
	})

	r.Add(Signature{Name: "keys", Params: []Param{{Name: "map"}}}, func(c *Call) (value.Value, error) {
		m, err := c.Map("map")
		if err != nil {
			return nil, err
		}
		return value.NewList(m.Keys(), value.SepComma, false), nil
	})

	r.Add(Signature{Name: "values", Params: []Param{{Name: "map"}}}, func(c *Call) (value.Value, error) {
		m, err := c.Map("map")
		if err != nil {
			return nil, err
		}
		return value.NewList(m.Values(), value.SepComma, false), nil
	})

	return r
}

func errNotEnoughMapSetArgs() error {
	return fmt.Errorf("map.set: expected at least a key and a value after $map")
}
