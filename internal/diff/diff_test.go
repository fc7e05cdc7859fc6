package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/kernel"
)

func TestDiffConstantIsZero(t *testing.T) {
	s := kernel.NewStore()
	result, err := Diff(s, s.Int(42), "x")
	require.NoError(t, err)
	assert.Equal(t, s.Int(0), result)
}

func TestDiffVariableIsOne(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	result, err := Diff(s, x, "x")
	require.NoError(t, err)
	assert.Equal(t, s.Int(1), result)
}

func TestDiffOtherSymbolIsZero(t *testing.T) {
	s := kernel.NewStore()
	y := s.Sym("y")
	result, err := Diff(s, y, "x")
	require.NoError(t, err)
	assert.Equal(t, s.Int(0), result)
}

func TestDiffLinearity(t *testing.T) {
	// d/dx(x^2 + 3x) == d/dx(x^2) + d/dx(3x)
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	sum, err := s.Add([]kernel.ExprId{xSq, threeX})
	require.NoError(t, err)

	combined, err := Diff(s, sum, "x")
	require.NoError(t, err)

	dxSq, err := Diff(s, xSq, "x")
	require.NoError(t, err)
	dThreeX, err := Diff(s, threeX, "x")
	require.NoError(t, err)
	expected, err := s.Add([]kernel.ExprId{dxSq, dThreeX})
	require.NoError(t, err)

	assert.Equal(t, expected, combined)
}

func TestDiffPowerRule(t *testing.T) {
	// d/dx(x^3) == 3 * x^2
	s := kernel.NewStore()
	x := s.Sym("x")
	xCubed, err := s.Pow(x, s.Int(3), nil)
	require.NoError(t, err)

	result, err := Diff(s, xCubed, "x")
	require.NoError(t, err)
	assert.Equal(t, "3 * x^2", s.Print(result))
}

func TestDiffProductRule(t *testing.T) {
	// d/dx(x * sin(x)) == sin(x) + x*cos(x)
	s := kernel.NewStore()
	x := s.Sym("x")
	sinx := s.Func("sin", []kernel.ExprId{x})
	prod, err := s.Mul([]kernel.ExprId{x, sinx})
	require.NoError(t, err)

	result, err := Diff(s, prod, "x")
	require.NoError(t, err)

	cosx := s.Func("cos", []kernel.ExprId{x})
	xCosx, err := s.Mul([]kernel.ExprId{x, cosx})
	require.NoError(t, err)
	expected, err := s.Add([]kernel.ExprId{sinx, xCosx})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestDiffChainRuleExample(t *testing.T) {
	// spec.md §8 scenario 2: diff(sin(x^2), x) -> cos(x^2) * 2 * x
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	sinXSq := s.Func("sin", []kernel.ExprId{xSq})

	result, err := Diff(s, sinXSq, "x")
	require.NoError(t, err)

	cosXSq := s.Func("cos", []kernel.ExprId{xSq})
	twoX, err := s.Mul([]kernel.ExprId{s.Int(2), x})
	require.NoError(t, err)
	expected, err := s.Mul([]kernel.ExprId{cosXSq, twoX})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestDiffExpChainRule(t *testing.T) {
	// d/dx(exp(3x)) == 3 * exp(3x)
	s := kernel.NewStore()
	x := s.Sym("x")
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	expThreeX := s.Func("exp", []kernel.ExprId{threeX})

	result, err := Diff(s, expThreeX, "x")
	require.NoError(t, err)

	expected, err := s.Mul([]kernel.ExprId{s.Int(3), expThreeX})
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestDiffUnknownFunctionIsOpaque(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	fx := s.Func("f", []kernel.ExprId{x})

	result, err := Diff(s, fx, "x")
	require.NoError(t, err)
	assert.Equal(t, "Derivative(f(x), x, x)", s.Print(result))
}

func TestDiffIsMemoized(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	sinx := s.Func("sin", []kernel.ExprId{x})

	first, err := Diff(s, sinx, "x")
	require.NoError(t, err)
	second, err := Diff(s, sinx, "x")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiffGeneralPowerRule(t *testing.T) {
	// d/dx(x^x) == x^x * (ln(x) + 1)
	s := kernel.NewStore()
	x := s.Sym("x")
	xPowX, err := s.Pow(x, x, nil)
	require.NoError(t, err)

	result, err := Diff(s, xPowX, "x")
	require.NoError(t, err)

	lnX := s.Func("ln", []kernel.ExprId{x})
	inner, err := s.Add([]kernel.ExprId{lnX, s.Int(1)})
	require.NoError(t, err)
	expected, err := s.Mul([]kernel.ExprId{xPowX, inner})
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}
