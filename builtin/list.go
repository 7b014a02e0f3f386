package builtin

import (
	"fmt"

	"github.com/titpetric/scssgo/value"
)

// List returns the sass:list module registry.
func List() *Registry {
	r := NewRegistry("list")

	r.Add(Signature{Name: "length", Params: []Param{{Name: "list"}}}, func(c *Call) (value.Value, error) {
		if m, ok := c.Args["list"].(*value.Map); ok {
			return value.Int(m.Len()), nil
		}
		return value.Int(c.List("list").Len()), nil
	})

	r.Add(Signature{Name: "nth", Params: []Param{{Name: "list"}, {Name: "n"}}}, func(c *Call) (value.Value, error) {
		idx, err := c.Number("n")
		if err != nil {
			return nil, err
		}
		lst := effectiveList(c.Args["list"])
		return lst.Nth(int(idx.Value))
	})

	r.Add(Signature{Name: "set-nth", Params: []Param{{Name: "list"}, {Name: "n"}, {Name: "value"}}}, func(c *Call) (value.Value, error) {
		idx, err := c.Number("n")
		if err != nil {
			return nil, err
		}
		lst := effectiveList(c.Args["list"])
		n := lst.Len()
		i := int(idx.Value)
		if i < 0 {
			i = n + i + 1
		}
		if i < 1 || i > n {
			return nil, fmt.Errorf("set-nth: index %d out of bounds for a list of length %d", int(idx.Value), n)
		}
		items := append([]value.Value{}, lst.Items...)
		items[i-1] = c.Args["value"]
		return value.NewList(items, lst.Separator, lst.Brackets), nil
	})

	r.Add(Signature{Name: "join", Params: []Param{
		{Name: "list1"}, {Name: "list2"}, {Name: "separator", Default: value.NewString("auto", true)}, {Name: "bracketed", Default: value.NewString("auto", true)},
	}}, func(c *Call) (value.Value, error) {
		l1 := effectiveList(c.Args["list1"])
		l2 := effectiveList(c.Args["list2"])
		sep := pickSeparator(c.Args["separator"], l1, l2)
		bracketed := l1.Brackets
		if b, ok := c.Args["bracketed"].(value.Boolean); ok {
			bracketed = bool(b)
		} else if s, ok := c.Args["bracketed"].(value.String); !ok || s.Text != "auto" {
			bracketed = l1.Brackets || l2.Brackets
		}
		items := append(append([]value.Value{}, l1.Items...), l2.Items...)
		return value.NewList(items, sep, bracketed), nil
	})

	r.Add(Signature{Name: "append", Params: []Param{
		{Name: "list"}, {Name: "val"}, {Name: "separator", Default: value.NewString("auto", true)},
	}}, func(c *Call) (value.Value, error) {
		l := effectiveList(c.Args["list"])
		sep := l.EffectiveSeparator()
		if s, ok := c.Args["separator"].(value.String); ok && s.Text != "auto" {
			sep = value.Separator(s.Text)
		}
		items := append(append([]value.Value{}, l.Items...), c.Args["val"])
		return value.NewList(items, sep, l.Brackets), nil
	})

	r.Add(Signature{Name: "zip", Params: []Param{{Name: "lists", Rest: true}}}, func(c *Call) (value.Value, error) {
		lists := make([]*value.List, len(c.Rest.Items))
		shortest := -1
		for i, it := range c.Rest.Items {
			lists[i] = effectiveList(it)
			if shortest == -1 || lists[i].Len() < shortest {
				shortest = lists[i].Len()
			}
		}
		if shortest < 0 {
			shortest = 0
		}
		out := make([]value.Value, shortest)
		for i := 0; i < shortest; i++ {
			row := make([]value.Value, len(lists))
			for j, l := range lists {
				row[j] = l.Items[i]
			}
			out[i] = value.NewList(row, value.SepSpace, false)
		}
		return value.NewList(out, value.SepComma, false), nil
	})

	r.Add(Signature{Name: "index", Params: []Param{{Name: "list"}, {Name: "value"}}}, func(c *Call) (value.Value, error) {
		l := effectiveList(c.Args["list"])
		for i, it := range l.Items {
			if value.Equal(it, c.Args["value"]) {
				return value.Int(i + 1), nil
			}
		}
		return value.Null{}, nil
	})

	r.Add(Signature{Name: "is-bracketed", Params: []Param{{Name: "list"}}}, func(c *Call) (value.Value, error) {
		return value.Boolean(effectiveList(c.Args["list"]).Brackets), nil
	})

	r.Add(Signature{Name: "separator", Params: []Param{{Name: "list"}}}, func(c *Call) (value.Value, error) {
		sep := effectiveList(c.Args["list"]).EffectiveSeparator()
		if sep == value.SepComma {
			return value.NewString("comma", true), nil
		}
		return value.NewString("space", true), nil
	})

	return r
}

func effectiveList(v value.Value) *value.List {
	if m, ok := v.(*value.Map); ok {
		return m.AsList()
	}
	return value.Singleton(v)
}

func pickSeparator(sepArg value.Value, l1, l2 *value.List) value.Separator {
	if s, ok := sepArg.(value.String); ok {
		switch s.Text {
		case "comma":
			return value.SepComma
		case "space":
			return value.SepSpace
		}
	}
	if l1.Separator != value.SepUndecided {
		return l1.Separator
	}
	if l2.Separator != value.SepUndecided {
		return l2.Separator
	}
	return value.SepSpace
}
