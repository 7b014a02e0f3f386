package builtin

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/titpetric/scssgo/value"
)

// String returns the sass:string module registry.
func String() *Registry {
	r := NewRegistry("string")

	r.Add(Signature{Name: "length", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		return value.Int(len([]rune(s.Text))), nil
	})

	r.Add(Signature{Name: "quote", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		return value.NewString(s.Text, true), nil
	})

	r.Add(Signature{Name: "unquote", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		return value.NewString(s.Text, false), nil
	})

	r.Add(Signature{Name: "to-upper-case", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		return value.NewString(cases.Upper(language.Und).String(s.Text), s.HasQuotes), nil
	})

	r.Add(Signature{Name: "to-lower-case", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		return value.NewString(cases.Lower(language.Und).String(s.Text), s.HasQuotes), nil
	})

	r.Add(Signature{Name: "slice", Params: []Param{
		{Name: "string"}, {Name: "start-at"}, {Name: "end-at", Default: value.Int(-1)},
	}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		start, err := c.Number("start-at")
		if err != nil {
			return nil, err
		}
		end, err := c.Number("end-at")
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		n := len(runes)
		from := sliceIndex(int(start.Value), n)
		to := sliceIndex(int(end.Value), n)
		if from > to || from > n {
			return value.NewString("", s.HasQuotes), nil
		}
		if to > n {
			to = n
		}
		return value.NewString(string(runes[from-1:to]), s.HasQuotes), nil
	})

	r.Add(Signature{Name: "index", Params: []Param{{Name: "string"}, {Name: "substring"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		sub, err := c.String("substring")
		if err != nil {
			return nil, err
		}
		idx := strings.Index(s.Text, sub.Text)
		if idx < 0 {
			return value.Null{}, nil
		}
		return value.Int(len([]rune(s.Text[:idx])) + 1), nil
	})

	r.Add(Signature{Name: "insert", Params: []Param{{Name: "string"}, {Name: "insert"}, {Name: "index"}}}, func(c *Call) (value.Value, error) {
		s, err := c.String("string")
		if err != nil {
			return nil, err
		}
		ins, err := c.String("insert")
		if err != nil {
			return nil, err
		}
		idx, err := c.Number("index")
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		n := len(runes)
		at := sliceIndex(int(idx.Value), n+1)
		if at > n+1 {
			at = n + 1
		}
		out := string(runes[:at-1]) + ins.Text + string(runes[at-1:])
		return value.NewString(out, s.HasQuotes), nil
	})

	return r
}

// sliceIndex converts a Sass 1-based (or negative, from-the-end) string
// index into a clamped 1-based forward index.
func sliceIndex(i, length int) int {
	if i < 0 {
		i = length + i + 1
	}
	if i < 1 {
		i = 1
	}
	return i
}

// GlobalStringAliases registers quote() and unquote() as legacy unprefixed
// global-namespace aliases, in the spirit of the string helpers the
// teacher's LESS built-ins exposed directly, for stylesheets that call
// them bare.
func GlobalStringAliases() *Registry {
	r := NewRegistry("")
	r.Add(Signature{Name: "quote", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, ok := c.Args["string"].(value.String)
		if !ok {
			return nil, fmt.Errorf("quote() requires a string argument")
		}
		return value.NewString(s.Text, true), nil
	})
	r.Add(Signature{Name: "unquote", Params: []Param{{Name: "string"}}}, func(c *Call) (value.Value, error) {
		s, ok := c.Args["string"].(value.String)
		if !ok {
			return nil, fmt.Errorf("unquote() requires a string argument")
		}
		return value.NewString(s.Text, false), nil
	})
	return r
}
