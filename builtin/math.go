package builtin

import (
	"fmt"
	"math"

	"github.com/titpetric/scssgo/value"
)

// Math returns the sass:math module registry.
func Math() *Registry {
	r := NewRegistry("math")

	unary := func(name string, f func(float64) float64) {
		r.Add(Signature{Name: name, Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
			n, err := c.Number("number")
			if err != nil {
				return nil, err
			}
			return value.Number{Value: f(n.Value), Numerators: n.Numerators, Denominators: n.Denominators}, nil
		})
	}

	unary("ceil", math.Ceil)
	unary("floor", math.Floor)
	unary("abs", math.Abs)
	unary("sqrt", func(f float64) float64 { return math.Sqrt(f) })

	trig := func(name string, f func(float64) float64, toRadians bool) {
		r.Add(Signature{Name: name, Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
			n, err := c.Number("number")
			if err != nil {
				return nil, err
			}
			x := n.Value
			if toRadians {
				rad, ok := n.ConvertTo("rad")
				if ok {
					x = rad.Value
				} else if !n.IsUnitless() {
					return nil, fmt.Errorf("%s: $number must be an angle or unitless", name)
				}
			}
			return value.Unitless(f(x)), nil
		})
	}
	trig("sin", math.Sin, true)
	trig("cos", math.Cos, true)
	trig("tan", math.Tan, true)

	inverseTrig := func(name string, f func(float64) float64) {
		r.Add(Signature{Name: name, Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
			n, err := c.Number("number")
			if err != nil {
				return nil, err
			}
			deg := f(n.Value) * 180 / math.Pi
			return value.WithUnit(deg, "deg"), nil
		})
	}
	inverseTrig("asin", math.Asin)
	inverseTrig("acos", math.Acos)

	r.Add(Signature{Name: "atan", Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		return value.WithUnit(math.Atan(n.Value)*180/math.Pi, "deg"), nil
	})

	r.Add(Signature{Name: "atan2", Params: []Param{{Name: "y"}, {Name: "x"}}}, func(c *Call) (value.Value, error) {
		y, err := c.Number("y")
		if err != nil {
			return nil, err
		}
		x, err := c.Number("x")
		if err != nil {
			return nil, err
		}
		if !y.CompatibleWith(x.Unit()) {
			return nil, fmt.Errorf("atan2: $y and $x must have compatible units")
		}
		return value.WithUnit(math.Atan2(y.Value, x.Value)*180/math.Pi, "deg"), nil
	})

	r.Add(Signature{Name: "pow", Params: []Param{{Name: "base"}, {Name: "exponent"}}}, func(c *Call) (value.Value, error) {
		base, err := c.Number("base")
		if err != nil {
			return nil, err
		}
		exp, err := c.Number("exponent")
		if err != nil {
			return nil, err
		}
		if base.HasUnits() || exp.HasUnits() {
			return nil, fmt.Errorf("pow: $base and $exponent must be unitless")
		}
		return value.Unitless(math.Pow(base.Value, exp.Value)), nil
	})

	r.Add(Signature{Name: "log", Params: []Param{{Name: "number"}, {Name: "base", Default: nil, Rest: false}}}, func(c *Call) (value.Value, error) {
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		if base, ok := c.Args["base"]; ok {
			b, err := toNumber(base, "base")
			if err != nil {
				return nil, err
			}
			return value.Unitless(math.Log(n.Value) / math.Log(b.Value)), nil
		}
		return value.Unitless(math.Log(n.Value)), nil
	})

	r.Add(Signature{Name: "round", Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		return value.Number{Value: math.Round(n.Value), Numerators: n.Numerators, Denominators: n.Denominators}, nil
	})

	r.Add(Signature{Name: "unit", Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		return value.NewString(n.UnitString(), true), nil
	})

	r.Add(Signature{Name: "is-unitless", Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		return value.Boolean(n.IsUnitless()), nil
	})

	r.Add(Signature{Name: "compatible", Params: []Param{{Name: "number1"}, {Name: "number2"}}}, func(c *Call) (value.Value, error) {
		a, err := c.Number("number1")
		if err != nil {
			return nil, err
		}
		b, err := c.Number("number2")
		if err != nil {
			return nil, err
		}
		return value.Boolean(a.CompatibleWith(b.Unit()) || b.CompatibleWith(a.Unit())), nil
	})

	r.Add(Signature{Name: "percentage", Params: []Param{{Name: "number"}}}, func(c *Call) (value.Value, error) {
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		if n.HasUnits() {
			return nil, fmt.Errorf("percentage: $number must be unitless")
		}
		return value.WithUnit(n.Value*100, "%"), nil
	})

	minMax := func(name string, pick func(a, b float64) bool) {
		r.Add(Signature{Name: name, Params: []Param{{Name: "numbers", Rest: true}}}, func(c *Call) (value.Value, error) {
			items := c.Rest.Items
			if len(items) == 0 {
				return nil, fmt.Errorf("%s requires at least one argument", name)
			}
			best, ok := items[0].(value.Number)
			if !ok {
				return nil, typeError("numbers", "number", items[0])
			}
			for _, it := range items[1:] {
				n, ok := it.(value.Number)
				if !ok {
					return nil, typeError("numbers", "number", it)
				}
				conv, ok := n.ConvertTo(best.Unit())
				if !ok {
					return nil, fmt.Errorf("%s: numbers have incompatible units %s and %s", name, best.UnitString(), n.UnitString())
				}
				if pick(conv.Value, best.Value) {
					best = conv
				}
			}
			return best, nil
		})
	}
	minMax("min", func(a, b float64) bool { return a < b })
	minMax("max", func(a, b float64) bool { return a > b })

	r.Add(Signature{Name: "div", Params: []Param{{Name: "number1"}, {Name: "number2"}}}, func(c *Call) (value.Value, error) {
		a, err := c.Number("number1")
		if err != nil {
			return nil, err
		}
		b, err := c.Number("number2")
		if err != nil {
			return nil, err
		}
		return a.Div(b)
	})

	r.Add(Signature{Name: "clamp", Params: []Param{{Name: "min"}, {Name: "number"}, {Name: "max"}}}, func(c *Call) (value.Value, error) {
		lo, err := c.Number("min")
		if err != nil {
			return nil, err
		}
		n, err := c.Number("number")
		if err != nil {
			return nil, err
		}
		hi, err := c.Number("max")
		if err != nil {
			return nil, err
		}
		loC, ok1 := lo.ConvertTo(n.Unit())
		hiC, ok2 := hi.ConvertTo(n.Unit())
		if !ok1 || !ok2 {
			return &value.Calculation{Name: "clamp", Args: []value.CalcValue{
				value.CalcLiteral{Value: lo}, value.CalcLiteral{Value: n}, value.CalcLiteral{Value: hi},
			}}, nil
		}
		if n.Value < loC.Value {
			return loC, nil
		}
		if n.Value > hiC.Value {
			return hiC, nil
		}
		return n, nil
	})

	return r
}

func toNumber(v value.Value, argName string) (value.Number, error) {
	n, ok := v.(value.Number)
	if !ok {
		return value.Number{}, typeError(argName, "number", v)
	}
	return n, nil
}
