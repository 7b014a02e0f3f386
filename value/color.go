package value

import (
	"fmt"
	"math"
)

// Color is a SassScript color. Internally it always carries resolved RGBA
// channels (0-255 for r/g/b, 0-1 for a); space records which constructor
// built it, and no original hsl()/hwb() channel values are kept. String
// renders the keyword name when one is set, otherwise #rrggbb, or rgba()
// when the color is translucent.
type Color struct {
	r, g, b uint8
	a       float64

	space  string // "rgb" | "hsl" | "hwb" | "named"
	name   string // populated when Space == "named" or when a literal matched a CSS keyword
}

// RGBA constructs a Color from red/green/blue (0-255) and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return Color{r: r, g: g, b: b, a: clampAlpha(a), space: "rgb"}
}

// Named constructs a Color carrying its CSS keyword for round-trip display.
func Named(name string, r, g, b uint8) Color {
	return Color{r: r, g: g, b: b, a: 1, space: "named", name: name}
}

// HSLA constructs a Color from hue (degrees), saturation/lightness (0-100)
// and alpha (0-1), storing the RGB conversion as the canonical channels.
func HSLA(h, s, l, a float64) Color {
	r, g, b := hslToRGB(normalizeHue(h), clampPct(s), clampPct(l))
	return Color{r: r, g: g, b: b, a: clampAlpha(a), space: "hsl"}
}

// HWBA constructs a Color from hue (degrees), whiteness/blackness (0-100)
// and alpha (0-1).
func HWBA(h, w, bl, a float64) Color {
	r, g, b := hwbToRGB(normalizeHue(h), clampPct(w), clampPct(bl))
	return Color{r: r, g: g, b: b, a: clampAlpha(a), space: "hwb"}
}

func (c Color) Truthy() bool     { return true }
func (c Color) TypeName() string { return "color" }

func (c Color) Red() uint8     { return c.r }
func (c Color) Green() uint8   { return c.g }
func (c Color) Blue() uint8    { return c.b }
func (c Color) Alpha() float64 { return c.a }

// HSL returns the color's hue/saturation/lightness.
func (c Color) HSL() (h, s, l float64) { return rgbToHSL(c.r, c.g, c.b) }

// HWB returns the color's hue/whiteness/blackness.
func (c Color) HWB() (h, w, bl float64) { return rgbToHWB(c.r, c.g, c.b) }

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c2 := c
	c2.a = clampAlpha(a)
	c2.name = ""
	return c2
}

// AdjustHSL returns a copy of c with the given deltas applied in HSL space
// (used by color.adjust / the legacy darken/lighten/saturate/desaturate
// family); deltas are added before reclamping to their valid ranges.
func (c Color) AdjustHSL(dh, ds, dl float64) Color {
	h, s, l := rgbToHSL(c.r, c.g, c.b)
	return HSLA(h+dh, clampPct(s+ds), clampPct(l+dl), c.a)
}

func (c Color) String() string {
	if c.name != "" {
		return c.name
	}
	if c.a >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.r, c.g, c.b, formatNumber(roundTo(c.a, 5)))
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func roundTo(f float64, decimals int) float64 {
	mult := math.Pow(10, float64(decimals))
	return math.Round(f*mult) / mult
}

// rgbToHSL converts 0-255 RGB channels to hue in degrees and
// saturation/lightness as percentages.
func rgbToHSL(r, g, b uint8) (h, s, l float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l * 100
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	case bf:
		h = (rf-gf)/d + 4
	}
	h *= 60

	return h, s * 100, l * 100
}

// hslToRGB converts hue in degrees and saturation/lightness percentages back
// to 0-255 RGB channels.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	hn := h / 360
	sn := s / 100
	ln := l / 100

	if sn == 0 {
		v := uint8(math.Round(ln * 255))
		return v, v, v
	}

	var q float64
	if ln < 0.5 {
		q = ln * (1 + sn)
	} else {
		q = ln + sn - ln*sn
	}
	p := 2*ln - q

	r = uint8(math.Round(hueToRGB(p, q, hn+1.0/3) * 255))
	g = uint8(math.Round(hueToRGB(p, q, hn) * 255))
	b = uint8(math.Round(hueToRGB(p, q, hn-1.0/3) * 255))
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// rgbToHWB converts RGB channels to hue/whiteness/blackness percentages.
func rgbToHWB(r, g, b uint8) (h, w, bl float64) {
	h, _, _ = rgbToHSL(r, g, b)
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	w = math.Min(rf, math.Min(gf, bf)) * 100
	bl = (1 - math.Max(rf, math.Max(gf, bf))) * 100
	return h, w, bl
}

// hwbToRGB converts hue in degrees and whiteness/blackness percentages to
// 0-255 RGB channels.
func hwbToRGB(h, w, bl float64) (r, g, b uint8) {
	wn := w / 100
	bln := bl / 100
	if wn+bln >= 1 {
		gray := uint8(math.Round(wn / (wn + bln) * 255))
		return gray, gray, gray
	}
	ir, ig, ib := hslToRGB(h, 100, 50)
	adjust := func(c uint8) uint8 {
		v := float64(c) / 255 * (1 - wn - bln) + wn
		return uint8(math.Round(v * 255))
	}
	return adjust(ir), adjust(ig), adjust(ib)
}
