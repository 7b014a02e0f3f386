package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// unitConversions maps a unit to its ratio against a canonical unit for its
// dimension (e.g. all absolute lengths convert through "px"). Units absent
// here are incompatible with any unit but themselves.
var unitConversions = map[string]map[string]float64{
	// lengths, canonical px
	"px": {"px": 1, "in": 96, "pc": 16, "pt": 96.0 / 72, "cm": 96.0 / 2.54, "mm": 96.0 / 25.4, "q": 96.0 / 101.6},
	"in": {"in": 1, "px": 1.0 / 96, "pc": 1.0 / 6, "pt": 1.0 / 72, "cm": 1.0 / 2.54, "mm": 1.0 / 25.4, "q": 1.0 / 101.6},
	// angles, canonical deg
	"deg":  {"deg": 1, "grad": 0.9, "rad": 180 / math.Pi, "turn": 360},
	"grad": {"grad": 1, "deg": 1.0 / 0.9, "rad": 200 / math.Pi, "turn": 400},
	"rad":  {"rad": 1, "deg": math.Pi / 180, "grad": math.Pi / 200, "turn": 2 * math.Pi},
	"turn": {"turn": 1, "deg": 1.0 / 360, "grad": 1.0 / 400, "rad": 1.0 / (2 * math.Pi)},
	// time, canonical s
	"s":  {"s": 1, "ms": 1.0 / 1000},
	"ms": {"ms": 1, "s": 1000},
	// frequency, canonical hz
	"hz":  {"hz": 1, "khz": 1000},
	"khz": {"khz": 1, "hz": 1.0 / 1000},
	// resolution, canonical dpi
	"dpi":  {"dpi": 1, "dpcm": 2.54, "dppx": 96, "x": 96},
	"dpcm": {"dpcm": 1, "dpi": 1.0 / 2.54, "dppx": 96.0 / 2.54, "x": 96.0 / 2.54},
	"dppx": {"dppx": 1, "dpi": 1.0 / 96, "dpcm": 2.54 / 96, "x": 1},
	"x":    {"x": 1, "dpi": 1.0 / 96, "dpcm": 2.54 / 96, "dppx": 1},
}

// Number is a SassScript number: a float64 magnitude with an ordered list of
// numerator and denominator units (e.g. `px*deg/s*s` for some derived unit).
// A plain compatible-unit number (the overwhelming common case) has exactly
// one numerator unit and no denominators.
type Number struct {
	Value        float64
	Numerators   []string
	Denominators []string
	// AsSlash, when non-nil, remembers the two operands of a `/` that Sass
	// still renders as a literal slash (e.g. `font: 12px/1.5`) until the
	// value is used numerically, per the slash-pair deprecation rules.
	AsSlash *SlashPair
}

// SlashPair remembers the two original operands of a division so the
// serializer can still print `12px/1.5` verbatim when neither operand
// triggers eager evaluation (interpolation, explicit parens, math function).
type SlashPair struct {
	Left, Right Number
}

// Int returns a unitless integer-valued Number.
func Int(n int) Number { return Number{Value: float64(n)} }

// Unitless returns a unitless Number.
func Unitless(n float64) Number { return Number{Value: n} }

// WithUnit returns a Number with a single numerator unit.
func WithUnit(n float64, unit string) Number {
	if unit == "" {
		return Number{Value: n}
	}
	return Number{Value: n, Numerators: []string{unit}}
}

func (n Number) Truthy() bool     { return true }
func (n Number) TypeName() string { return "number" }

// Unit returns the single-numerator unit string, or "" for unitless and for
// compound units (callers needing the full unit structure should inspect
// Numerators/Denominators directly).
func (n Number) Unit() string {
	if len(n.Numerators) == 1 && len(n.Denominators) == 0 {
		return n.Numerators[0]
	}
	if len(n.Numerators) == 0 && len(n.Denominators) == 0 {
		return ""
	}
	return n.UnitString()
}

// UnitString renders the full compound unit, e.g. "px*deg/s".
func (n Number) UnitString() string {
	if len(n.Numerators) == 0 && len(n.Denominators) == 0 {
		return ""
	}
	num := strings.Join(n.Numerators, "*")
	if len(n.Denominators) == 0 {
		return num
	}
	den := strings.Join(n.Denominators, "*")
	if num == "" {
		return "/" + den
	}
	return num + "/" + den
}

// HasUnits reports whether the number carries any unit at all.
func (n Number) HasUnits() bool { return len(n.Numerators) > 0 || len(n.Denominators) > 0 }

// IsUnitless reports the opposite of HasUnits; kept as a named predicate
// because call sites read better with it.
func (n Number) IsUnitless() bool { return !n.HasUnits() }

// CompatibleWith reports whether n's units can be converted to match unit.
func (n Number) CompatibleWith(unit string) bool {
	if unit == "" {
		return n.IsUnitless()
	}
	if n.Unit() == unit {
		return true
	}
	table, ok := unitConversions[canonicalFamily(n.Unit())]
	if !ok {
		return false
	}
	_, ok = table[unit]
	return ok
}

func canonicalFamily(unit string) string {
	for base, table := range unitConversions {
		if _, ok := table[unit]; ok {
			return base
		}
	}
	return unit
}

// ConvertTo returns n expressed in the given single unit, and false if the
// units are incompatible. Unitless targets always succeed only when n is
// itself unitless.
func (n Number) ConvertTo(unit string) (Number, bool) {
	if n.Unit() == unit {
		return Number{Value: n.Value, Numerators: n.Numerators, Denominators: n.Denominators}, true
	}
	if unit == "" || n.Unit() == "" {
		return Number{}, false
	}
	family := canonicalFamily(n.Unit())
	table, ok := unitConversions[family]
	if !ok {
		return Number{}, false
	}
	fromRatio, ok := table[n.Unit()]
	if !ok {
		return Number{}, false
	}
	toRatio, ok := table[unit]
	if !ok {
		return Number{}, false
	}
	// Both ratios express "1 of this unit == ratio canonical units", so
	// converting from `n.Unit()` to `unit` scales by fromRatio/toRatio.
	return Number{Value: n.Value * fromRatio / toRatio, Numerators: []string{unit}}, true
}

func (n Number) String() string {
	if n.AsSlash != nil {
		return n.AsSlash.Left.String() + "/" + n.AsSlash.Right.String()
	}
	return formatNumber(n.Value) + n.UnitString()
}

// formatNumber renders a float the way Sass does: up to 10 fractional
// digits, trailing zeros trimmed, and the leading zero kept ("0.5", "-0.5").
func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "infinity"
	}
	if math.IsInf(f, -1) {
		return "-infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'f', 10, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func numbersEqual(a, b Number) bool {
	if a.Unit() == "" && b.Unit() == "" {
		return floatEqual(a.Value, b.Value)
	}
	conv, ok := a.ConvertTo(b.Unit())
	if !ok {
		return false
	}
	return floatEqual(conv.Value, b.Value)
}

// Add implements `+` for two numbers, converting b into a's units.
func (n Number) Add(o Number) (Number, error) { return combine(n, o, "+", func(x, y float64) float64 { return x + y }) }

// Sub implements `-`.
func (n Number) Sub(o Number) (Number, error) { return combine(n, o, "-", func(x, y float64) float64 { return x - y }) }

func combine(a, b Number, op string, f func(x, y float64) float64) (Number, error) {
	if a.IsUnitless() {
		return Number{Value: f(a.Value, b.Value), Numerators: b.Numerators, Denominators: b.Denominators}, nil
	}
	if b.IsUnitless() {
		return Number{Value: f(a.Value, b.Value), Numerators: a.Numerators, Denominators: a.Denominators}, nil
	}
	conv, ok := b.ConvertTo(a.Unit())
	if !ok {
		return Number{}, fmt.Errorf("%s and %s are incompatible units for %q", a.UnitString(), b.UnitString(), op)
	}
	return Number{Value: f(a.Value, conv.Value), Numerators: a.Numerators, Denominators: a.Denominators}, nil
}

// Mul implements `*`: units combine multiplicatively and are not
// auto-canceled (matching Sass's compound-unit arithmetic).
func (n Number) Mul(o Number) Number {
	return Number{
		Value:        n.Value * o.Value,
		Numerators:   append(append([]string{}, n.Numerators...), o.Numerators...),
		Denominators: append(append([]string{}, n.Denominators...), o.Denominators...),
	}
}

// Div implements `/`: o's numerators become denominators and vice versa,
// then matching numerator/denominator units cancel.
func (n Number) Div(o Number) (Number, error) {
	if o.Value == 0 {
		return Number{}, fmt.Errorf("division by zero")
	}
	result := Number{
		Value:        n.Value / o.Value,
		Numerators:   append(append([]string{}, n.Numerators...), o.Denominators...),
		Denominators: append(append([]string{}, n.Denominators...), o.Numerators...),
	}
	return result.simplifyUnits(), nil
}

// simplifyUnits cancels one matching unit from Numerators against
// Denominators at a time, converting compatible-but-different units first.
func (n Number) simplifyUnits() Number {
	nums := append([]string{}, n.Numerators...)
	dens := append([]string{}, n.Denominators...)
	value := n.Value

	for i := 0; i < len(nums); i++ {
		for j := 0; j < len(dens); j++ {
			if nums[i] == dens[j] {
				nums = append(nums[:i], nums[i+1:]...)
				dens = append(dens[:j], dens[j+1:]...)
				i--
				break
			}
		}
	}
	sort.Strings(nums)
	sort.Strings(dens)
	return Number{Value: value, Numerators: nums, Denominators: dens}
}

// Mod implements `%`.
func (n Number) Mod(o Number) (Number, error) {
	r, err := combine(n, o, "%", math.Mod)
	return r, err
}

// Neg returns -n.
func (n Number) Neg() Number {
	return Number{Value: -n.Value, Numerators: n.Numerators, Denominators: n.Denominators}
}
