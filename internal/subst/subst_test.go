package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/kernel"
)

func TestSubstituteLiteralIsUnchanged(t *testing.T) {
	s := kernel.NewStore()
	result, err := Substitute(s, s.Int(42), "x", s.Int(7))
	require.NoError(t, err)
	assert.Equal(t, s.Int(42), result)
}

func TestSubstituteMatchingSymbol(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	result, err := Substitute(s, x, "x", s.Int(7))
	require.NoError(t, err)
	assert.Equal(t, s.Int(7), result)
}

func TestSubstituteOtherSymbolIsUnchanged(t *testing.T) {
	s := kernel.NewStore()
	y := s.Sym("y")
	result, err := Substitute(s, y, "x", s.Int(7))
	require.NoError(t, err)
	assert.Equal(t, y, result)
}

func TestSubstituteIntoSum(t *testing.T) {
	// (x + 3)[x := 5] -> 8, folded by the canonical Add constructor.
	s := kernel.NewStore()
	x := s.Sym("x")
	sum, err := s.Add([]kernel.ExprId{x, s.Int(3)})
	require.NoError(t, err)

	result, err := Substitute(s, sum, "x", s.Int(5))
	require.NoError(t, err)
	assert.Equal(t, s.Int(8), result)
}

func TestSubstituteIntoProduct(t *testing.T) {
	// (2*x)[x := 5] -> 10.
	s := kernel.NewStore()
	x := s.Sym("x")
	prod, err := s.Mul([]kernel.ExprId{s.Int(2), x})
	require.NoError(t, err)

	result, err := Substitute(s, prod, "x", s.Int(5))
	require.NoError(t, err)
	assert.Equal(t, s.Int(10), result)
}

func TestSubstituteIntoPower(t *testing.T) {
	// (x^3)[x := 2] -> 8.
	s := kernel.NewStore()
	x := s.Sym("x")
	pow, err := s.Pow(x, s.Int(3), nil)
	require.NoError(t, err)

	result, err := Substitute(s, pow, "x", s.Int(2))
	require.NoError(t, err)
	assert.Equal(t, s.Int(8), result)
}

func TestSubstituteIntoFunctionCall(t *testing.T) {
	// sin(x)[x := y] -> sin(y).
	s := kernel.NewStore()
	x := s.Sym("x")
	y := s.Sym("y")
	sinX := s.Func("sin", []kernel.ExprId{x})

	result, err := Substitute(s, sinX, "x", y)
	require.NoError(t, err)
	assert.Equal(t, s.Func("sin", []kernel.ExprId{y}), result)
}

func TestSubstituteIntoNestedExpression(t *testing.T) {
	// (x^2 + 2*x + 1)[x := y+1] rebuilt bottom-up through the canonical
	// constructors; just check the result doesn't alias the original and
	// is independently reconstructible by substituting into each piece.
	s := kernel.NewStore()
	x := s.Sym("x")
	y := s.Sym("y")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	twoX, err := s.Mul([]kernel.ExprId{s.Int(2), x})
	require.NoError(t, err)
	expr, err := s.Add([]kernel.ExprId{xSq, twoX, s.Int(1)})
	require.NoError(t, err)

	yPlusOne, err := s.Add([]kernel.ExprId{y, s.Int(1)})
	require.NoError(t, err)

	result, err := Substitute(s, expr, "x", yPlusOne)
	require.NoError(t, err)

	expectedSq, err := s.Pow(yPlusOne, s.Int(2), nil)
	require.NoError(t, err)
	expectedTwo, err := s.Mul([]kernel.ExprId{s.Int(2), yPlusOne})
	require.NoError(t, err)
	expected, err := s.Add([]kernel.ExprId{expectedSq, expectedTwo, s.Int(1)})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestSubstituteIsIdempotentWhenNameAbsent(t *testing.T) {
	s := kernel.NewStore()
	y := s.Sym("y")
	expr, err := s.Add([]kernel.ExprId{y, s.Int(1)})
	require.NoError(t, err)

	result, err := Substitute(s, expr, "x", s.Int(99))
	require.NoError(t, err)
	assert.Equal(t, expr, result)
}

func TestSubstituteIntoPiecewise(t *testing.T) {
	// piecewise(x > 0 => x, otherwise => -x)[x := -5]: both branches fold
	// once the only free symbol becomes the literal -5.
	s := kernel.NewStore()
	x := s.Sym("x")
	negX, err := s.Mul([]kernel.ExprId{s.Int(-1), x})
	require.NoError(t, err)
	cond := s.Func("gt", []kernel.ExprId{x, s.Int(0)})
	pw := s.Piecewise([][2]kernel.ExprId{{cond, x}, {s.Int(1), negX}})

	result, err := Substitute(s, pw, "x", s.Int(-5))
	require.NoError(t, err)

	expectedCond := s.Func("gt", []kernel.ExprId{s.Int(-5), s.Int(0)})
	expectedNeg, err := s.Mul([]kernel.ExprId{s.Int(-1), s.Int(-5)})
	require.NoError(t, err)
	expected := s.Piecewise([][2]kernel.ExprId{{expectedCond, s.Int(-5)}, {s.Int(1), expectedNeg}})

	assert.Equal(t, expected, result)
}

func TestSubstituteMemoizes(t *testing.T) {
	// Two calls with the same (expr, name, value) return the identical
	// cached ExprId, and a differing value produces a different result.
	s := kernel.NewStore()
	x := s.Sym("x")
	expr, err := s.Add([]kernel.ExprId{x, s.Int(1)})
	require.NoError(t, err)

	first, err := Substitute(s, expr, "x", s.Int(5))
	require.NoError(t, err)
	second, err := Substitute(s, expr, "x", s.Int(5))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := Substitute(s, expr, "x", s.Int(9))
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}
