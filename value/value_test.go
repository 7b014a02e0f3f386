package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/value"
)

func TestNumberArithmeticUnits(t *testing.T) {
	a := value.WithUnit(10, "px")
	b := value.WithUnit(5, "px")

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "15px", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, "5px", diff.String())
}

func TestNumberIncompatibleUnits(t *testing.T) {
	a := value.WithUnit(10, "px")
	b := value.WithUnit(5, "deg")
	_, err := a.Add(b)
	require.Error(t, err)
}

func TestNumberDivisionCancelsUnits(t *testing.T) {
	a := value.WithUnit(100, "px")
	b := value.WithUnit(10, "px")
	q, err := a.Div(b)
	require.NoError(t, err)
	require.True(t, q.IsUnitless())
	require.Equal(t, "10", q.String())
}

func TestNumberUnitConversion(t *testing.T) {
	in := value.WithUnit(1, "in")
	px, ok := in.ConvertTo("px")
	require.True(t, ok)
	require.Equal(t, "96px", px.String())
}

func TestNumberFormatting(t *testing.T) {
	require.Equal(t, "0.5", value.Unitless(0.5).String())
	require.Equal(t, "-0.5", value.Unitless(-0.5).String())
	require.Equal(t, "3", value.Unitless(3.0).String())
}

func TestColorHexRoundtrip(t *testing.T) {
	c := value.RGBA(0x33, 0x66, 0x99, 1)
	require.Equal(t, "#336699", c.String())
}

func TestColorHSLConversion(t *testing.T) {
	c := value.HSLA(0, 100, 50, 1)
	require.Equal(t, uint8(255), c.Red())
	require.Equal(t, uint8(0), c.Green())
	require.Equal(t, uint8(0), c.Blue())
}

func TestColorAlphaRendersRGBA(t *testing.T) {
	c := value.RGBA(255, 0, 0, 0.5)
	require.Equal(t, "rgba(255, 0, 0, 0.5)", c.String())
}

func TestListSeparatorRendering(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(3)}, value.SepComma, false)
	require.Equal(t, "1, 2, 3", l.String())

	bracketed := value.NewList([]value.Value{value.Int(1), value.Int(2)}, value.SepSpace, true)
	require.Equal(t, "[1 2]", bracketed.String())
}

func TestListNthNegativeIndex(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(3)}, value.SepComma, false)
	v, err := l.Nth(-1)
	require.NoError(t, err)
	require.True(t, value.Equal(v, value.Int(3)))
}

func TestMapInsertionOrderPreserved(t *testing.T) {
	m := value.NewMap(
		[]value.Value{value.NewString("a", true), value.NewString("b", true)},
		[]value.Value{value.Int(1), value.Int(2)},
	)
	m.Set(value.NewString("a", true), value.Int(9))
	require.Equal(t, []string{"a", "b"}, stringKeys(m))
	v, ok := m.Get(value.NewString("a", true))
	require.True(t, ok)
	require.True(t, value.Equal(v, value.Int(9)))
}

func stringKeys(m *value.Map) []string {
	var out []string
	for _, k := range m.Keys() {
		out = append(out, k.(value.String).Text)
	}
	return out
}

func TestEqualityNumberUnitConversion(t *testing.T) {
	a := value.WithUnit(1, "in")
	b := value.WithUnit(96, "px")
	require.True(t, value.Equal(a, b))
}

func TestTruthiness(t *testing.T) {
	require.False(t, value.Null{}.Truthy())
	require.False(t, value.Boolean(false).Truthy())
	require.True(t, value.Int(0).Truthy())
	require.True(t, value.NewString("", true).Truthy())
}
