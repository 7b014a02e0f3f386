package builtin

import (
	"fmt"

	"github.com/titpetric/scssgo/value"
)

// Color returns the sass:color module registry.
func Color() *Registry {
	r := NewRegistry("color")

	r.Add(Signature{Name: "rgb", Params: []Param{
		{Name: "red"}, {Name: "green"}, {Name: "blue"}, {Name: "alpha", Default: value.Unitless(1)},
	}}, func(c *Call) (value.Value, error) {
		red, err := channel(c, "red")
		if err != nil {
			return nil, err
		}
		green, err := channel(c, "green")
		if err != nil {
			return nil, err
		}
		blue, err := channel(c, "blue")
		if err != nil {
			return nil, err
		}
		alpha, err := alphaChannel(c, "alpha")
		if err != nil {
			return nil, err
		}
		return value.RGBA(red, green, blue, alpha), nil
	})

	r.Add(Signature{Name: "hsl", Params: []Param{
		{Name: "hue"}, {Name: "saturation"}, {Name: "lightness"}, {Name: "alpha", Default: value.Unitless(1)},
	}}, func(c *Call) (value.Value, error) {
		h, s, l, a, err := hslArgs(c)
		if err != nil {
			return nil, err
		}
		return value.HSLA(h, s, l, a), nil
	})

	r.Add(Signature{Name: "hwb", Params: []Param{
		{Name: "hue"}, {Name: "whiteness"}, {Name: "blackness"}, {Name: "alpha", Default: value.Unitless(1)},
	}}, func(c *Call) (value.Value, error) {
		hue, err := c.Number("hue")
		if err != nil {
			return nil, err
		}
		w, err := c.Number("whiteness")
		if err != nil {
			return nil, err
		}
		b, err := c.Number("blackness")
		if err != nil {
			return nil, err
		}
		a, err := alphaChannel(c, "alpha")
		if err != nil {
			return nil, err
		}
		return value.HWBA(hue.Value, w.Value, b.Value, a), nil
	})

	channelGetter := func(name string, get func(value.Color) any) {
		r.Add(Signature{Name: name, Params: []Param{{Name: "color"}}}, func(c *Call) (value.Value, error) {
			col, err := c.Color("color")
			if err != nil {
				return nil, err
			}
			switch v := get(col).(type) {
			case float64:
				unit := ""
				if name == "hue" {
					unit = "deg"
				} else if name != "red" && name != "green" && name != "blue" && name != "alpha" {
					unit = "%"
				}
				return value.WithUnit(v, unit), nil
			case uint8:
				return value.Int(int(v)), nil
			}
			return nil, fmt.Errorf("unreachable")
		})
	}
	channelGetter("red", func(c value.Color) any { return c.Red() })
	channelGetter("green", func(c value.Color) any { return c.Green() })
	channelGetter("blue", func(c value.Color) any { return c.Blue() })
	channelGetter("alpha", func(c value.Color) any { return c.Alpha() })
	channelGetter("hue", func(c value.Color) any { h, _, _ := c.HSL(); return h })
	channelGetter("saturation", func(c value.Color) any { _, s, _ := c.HSL(); return s })
	channelGetter("lightness", func(c value.Color) any { _, _, l := c.HSL(); return l })
	channelGetter("whiteness", func(c value.Color) any { _, w, _ := c.HWB(); return w })
	channelGetter("blackness", func(c value.Color) any { _, _, bl := c.HWB(); return bl })

	r.Add(Signature{Name: "mix", Params: []Param{
		{Name: "color1"}, {Name: "color2"}, {Name: "weight", Default: value.WithUnit(50, "%")},
	}}, func(c *Call) (value.Value, error) {
		c1, err := c.Color("color1")
		if err != nil {
			return nil, err
		}
		c2, err := c.Color("color2")
		if err != nil {
			return nil, err
		}
		w, err := c.Number("weight")
		if err != nil {
			return nil, err
		}
		return mix(c1, c2, w.Value/100), nil
	})

	adjust := func(name string, apply func(c value.Color, amt float64) value.Color) {
		r.Add(Signature{Name: name, Params: []Param{{Name: "color"}, {Name: "amount"}}}, func(c *Call) (value.Value, error) {
			col, err := c.Color("color")
			if err != nil {
				return nil, err
			}
			amt, err := c.Number("amount")
			if err != nil {
				return nil, err
			}
			return apply(col, amt.Value), nil
		})
	}
	adjust("lighten", func(c value.Color, amt float64) value.Color { return c.AdjustHSL(0, 0, amt) })
	adjust("darken", func(c value.Color, amt float64) value.Color { return c.AdjustHSL(0, 0, -amt) })
	adjust("saturate", func(c value.Color, amt float64) value.Color { return c.AdjustHSL(0, amt, 0) })
	adjust("desaturate", func(c value.Color, amt float64) value.Color { return c.AdjustHSL(0, -amt, 0) })
	adjust("adjust-hue", func(c value.Color, amt float64) value.Color { return c.AdjustHSL(amt, 0, 0) })

	r.Add(Signature{Name: "opacify", Params: []Param{{Name: "color"}, {Name: "amount"}}}, func(c *Call) (value.Value, error) {
		col, err := c.Color("color")
		if err != nil {
			return nil, err
		}
		amt, err := c.Number("amount")
		if err != nil {
			return nil, err
		}
		return col.WithAlpha(col.Alpha() + amt.Value), nil
	})

	r.Add(Signature{Name: "transparentize", Params: []Param{{Name: "color"}, {Name: "amount"}}}, func(c *Call) (value.Value, error) {
		col, err := c.Color("color")
		if err != nil {
			return nil, err
		}
		amt, err := c.Number("amount")
		if err != nil {
			return nil, err
		}
		return col.WithAlpha(col.Alpha() - amt.Value), nil
	})

	r.Add(Signature{Name: "grayscale", Params: []Param{{Name: "color"}}}, func(c *Call) (value.Value, error) {
		col, err := c.Color("color")
		if err != nil {
			return nil, err
		}
		return col.AdjustHSL(0, -100, 0), nil
	})

	r.Add(Signature{Name: "invert", Params: []Param{{Name: "color"}, {Name: "weight", Default: value.WithUnit(100, "%")}}}, func(c *Call) (value.Value, error) {
		col, err := c.Color("color")
		if err != nil {
			return nil, err
		}
		w, err := c.Number("weight")
		if err != nil {
			return nil, err
		}
		inverted := value.RGBA(255-col.Red(), 255-col.Green(), 255-col.Blue(), col.Alpha())
		return mix(inverted, col, w.Value/100), nil
	})

	r.Add(Signature{Name: "complement", Params: []Param{{Name: "color"}}}, func(c *Call) (value.Value, error) {
		col, err := c.Color("color")
		if err != nil {
			return nil, err
		}
		return col.AdjustHSL(180, 0, 0), nil
	})

	return r
}

func channel(c *Call, name string) (uint8, error) {
	n, err := c.Number(name)
	if err != nil {
		return 0, err
	}
	v := n.Value
	if n.Unit() == "%" {
		v = v * 255 / 100
	}
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5), nil
}

func alphaChannel(c *Call, name string) (float64, error) {
	n, err := c.Number(name)
	if err != nil {
		return 1, err
	}
	v := n.Value
	if n.Unit() == "%" {
		v = v / 100
	}
	return v, nil
}

func hslArgs(c *Call) (h, s, l, a float64, err error) {
	hue, err := c.Number("hue")
	if err != nil {
		return
	}
	sat, err := c.Number("saturation")
	if err != nil {
		return
	}
	light, err := c.Number("lightness")
	if err != nil {
		return
	}
	alpha, err := alphaChannel(c, "alpha")
	if err != nil {
		return
	}
	return hue.Value, sat.Value, light.Value, alpha, nil
}

// mix blends c1 and c2 by weight (0..1, the proportion of c1), the same
// formula Sass and the teacher's LESS `mix` both use (the RGB weight is
// adjusted by the two colors' alpha difference so that mixing with a
// transparent color behaves intuitively).
func mix(c1, c2 value.Color, weight float64) value.Color {
	a1, a2 := c1.Alpha(), c2.Alpha()
	w := weight*2 - 1
	alphaDelta := a1 - a2

	var w1 float64
	if w*alphaDelta == -1 {
		w1 = w
	} else {
		w1 = (w+alphaDelta)/(1+w*alphaDelta) + 1
		w1 /= 2
	}
	w2 := 1 - w1

	r := uint8(float64(c1.Red())*w1 + float64(c2.Red())*w2 + 0.5)
	g := uint8(float64(c1.Green())*w1 + float64(c2.Green())*w2 + 0.5)
	b := uint8(float64(c1.Blue())*w1 + float64(c2.Blue())*w2 + 0.5)
	a := a1*weight + a2*(1-weight)
	return value.RGBA(r, g, b, a)
}
