package sexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/errkinds"
	"symmetrica/internal/kernel"
)

func TestParseInt(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(int 42)")
	require.NoError(t, err)
	assert.Equal(t, s.Int(42), result)
}

func TestParseNegativeInt(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(int -7)")
	require.NoError(t, err)
	assert.Equal(t, s.Int(-7), result)
}

func TestParseRat(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(rat 3 4)")
	require.NoError(t, err)
	expected, err := s.Rat(3, 4)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestParseSym(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(sym x)")
	require.NoError(t, err)
	assert.Equal(t, s.Sym("x"), result)
}

func TestParseAddFoldsLiterals(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(add (int 2) (int 3))")
	require.NoError(t, err)
	assert.Equal(t, s.Int(5), result)
}

func TestParseMulWithSymbol(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(mul (int 2) (sym x))")
	require.NoError(t, err)

	x := s.Sym("x")
	expected, err := s.Mul([]kernel.ExprId{s.Int(2), x})
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestParsePow(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(pow (sym x) (int 2))")
	require.NoError(t, err)

	x := s.Sym("x")
	expected, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestParseFunc(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(func sin (sym x))")
	require.NoError(t, err)
	assert.Equal(t, s.Func("sin", []kernel.ExprId{s.Sym("x")}), result)
}

func TestParsePiecewise(t *testing.T) {
	s := kernel.NewStore()
	result, err := Parse(s, "(piecewise ((int 1) (sym x)) ((int 0) (int 0)))")
	require.NoError(t, err)

	x := s.Sym("x")
	expected := s.Piecewise([][2]kernel.ExprId{{s.Int(1), x}, {s.Int(0), s.Int(0)}})
	assert.Equal(t, expected, result)
}

func TestParseMalformedInputIsParseError(t *testing.T) {
	s := kernel.NewStore()
	_, err := Parse(s, "(add (int 2)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errkinds.ParseError))
}

func TestParseUnknownKeywordIsParseError(t *testing.T) {
	s := kernel.NewStore()
	_, err := Parse(s, "(frobnicate (int 1))")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errkinds.ParseError))
}

func TestPrintThenParseRoundTrips(t *testing.T) {
	// spec.md §6: parse(print(e)) = e structurally, for every expression
	// built by the canonical constructors.
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	original, err := s.Add([]kernel.ExprId{xSq, threeX, s.Int(1)})
	require.NoError(t, err)

	printed := Print(s, original)
	reparsed, err := Parse(s, printed)
	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

func TestPrintFunctionAndRational(t *testing.T) {
	s := kernel.NewStore()
	half, err := s.Rat(1, 2)
	require.NoError(t, err)
	sinHalf := s.Func("sin", []kernel.ExprId{half})

	printed := Print(s, sinHalf)
	reparsed, err := Parse(s, printed)
	require.NoError(t, err)
	assert.Equal(t, sinHalf, reparsed)
}

func TestPrintPiecewiseRoundTrips(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	pw := s.Piecewise([][2]kernel.ExprId{{s.Int(1), x}, {s.Int(0), s.Int(0)}})

	printed := Print(s, pw)
	reparsed, err := Parse(s, printed)
	require.NoError(t, err)
	assert.Equal(t, pw, reparsed)
}

func TestPrintIsTotal(t *testing.T) {
	// print never panics or errors for any store-resident expression;
	// confirm it produces non-empty output for integer, symbol and function
	// nodes.
	s := kernel.NewStore()
	x := s.Sym("x")
	exprs := []kernel.ExprId{
		s.Int(0),
		x,
		s.Func("ln", []kernel.ExprId{x}),
	}
	for _, e := range exprs {
		assert.NotEmpty(t, Print(s, e))
	}
}
