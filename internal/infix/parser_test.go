package infix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/errkinds"
	"symmetrica/internal/kernel"
)

func TestParseInteger(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "42")
	require.NoError(t, err)
	assert.Equal(t, s.Int(42), result)
}

func TestParseSymbol(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "x")
	require.NoError(t, err)
	assert.Equal(t, s.Sym("x"), result)
}

func TestParseAdditionAndPrecedence(t *testing.T) {
	// 2 + 3*x should parse as 2 + (3*x), not (2+3)*x.
	s := kernel.NewStore()
	result, err := Parse(s, "2 + 3*x")
	require.NoError(t, err)

	x := s.Sym("x")
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	expected, err := s.Add([]kernel.ExprId{s.Int(2), threeX})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestParseSubtractionFoldsToNegation(t *testing.T) {
	// x - y == x + (-1)*y.
	s := kernel.NewStore()
	result, err := Parse(s, "x - y")
	require.NoError(t, err)

	x := s.Sym("x")
	y := s.Sym("y")
	negY, err := s.Mul([]kernel.ExprId{s.Int(-1), y})
	require.NoError(t, err)
	expected, err := s.Add([]kernel.ExprId{x, negY})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestParseDivisionFoldsToInversePower(t *testing.T) {
	// x / y == x * y^(-1).
	s := kernel.NewStore()
	result, err := Parse(s, "x / y")
	require.NoError(t, err)

	x := s.Sym("x")
	y := s.Sym("y")
	invY, err := s.Pow(y, s.Int(-1), nil)
	require.NoError(t, err)
	expected, err := s.Mul([]kernel.ExprId{x, invY})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	// 2^3^2 == 2^(3^2) == 2^9, not (2^3)^2.
	s := kernel.NewStore()
	result, err := Parse(s, "2^3^2")
	require.NoError(t, err)
	assert.Equal(t, s.Int(512), result)
}

func TestParseUnaryMinusBindsLooserThanPower(t *testing.T) {
	// -x^2 == -(x^2), the customary mathematical reading.
	s := kernel.NewStore()
	result, err := Parse(s, "-x^2")
	require.NoError(t, err)

	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	expected, err := s.Mul([]kernel.ExprId{s.Int(-1), xSq})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	// (2 + 3) * x != 2 + 3*x.
	s := kernel.NewStore()
	result, err := Parse(s, "(2 + 3) * x")
	require.NoError(t, err)

	x := s.Sym("x")
	expected, err := s.Mul([]kernel.ExprId{s.Int(5), x})
	require.NoError(t, err)

	assert.Equal(t, expected, result)
}

func TestParseFunctionCall(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "sin(x)")
	require.NoError(t, err)
	assert.Equal(t, s.Func("sin", []kernel.ExprId{s.Sym("x")}), result)
}

func TestParseFunctionCallMultipleArgs(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "f(x, y + 1)")
	require.NoError(t, err)

	x := s.Sym("x")
	y := s.Sym("y")
	yPlusOne, err := s.Add([]kernel.ExprId{y, s.Int(1)})
	require.NoError(t, err)

	assert.Equal(t, s.Func("f", []kernel.ExprId{x, yPlusOne}), result)
}

func TestParseRoundTripsWithPrinter(t *testing.T) {
	// parse(print(e)) == e for an expression built by canonical
	// constructors directly (spec.md §6's round-trip property).
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	original, err := s.Add([]kernel.ExprId{xSq, threeX, s.Int(1)})
	require.NoError(t, err)

	printed := s.Print(original)
	reparsed, err := Parse(s, printed)
	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

func TestParseUnexpectedTokenIsParseError(t *testing.T) {
	s := kernel.NewStore()
	_, err := Parse(s, "2 +")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errkinds.ParseError))
}

func TestParseUnbalancedParensIsParseError(t *testing.T) {
	s := kernel.NewStore()
	_, err := Parse(s, "(2 + 3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errkinds.ParseError))
}

func TestParseTrailingInputIsParseError(t *testing.T) {
	s := kernel.NewStore()
	_, err := Parse(s, "2 + 3)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errkinds.ParseError))
}

func TestParseIntegerOverflowIsNumericOverflow(t *testing.T) {
	s := kernel.NewStore()
	_, err := Parse(s, "99999999999999999999999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errkinds.NumericOverflow))
}
