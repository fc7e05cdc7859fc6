package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintFunctionApplication(t *testing.T) {
	s := NewStore()
	x := s.Sym("x")
	f := s.Func("sin", []ExprId{x})
	assert.Equal(t, "sin(x)", s.Print(f))
}

func TestPrintParenthesizesLooserChildren(t *testing.T) {
	s := NewStore()
	x := s.Sym("x")
	sum, err := s.Add([]ExprId{x, s.Int(1)})
	require.NoError(t, err)
	sq, err := s.Pow(sum, s.Int(2), nil)
	require.NoError(t, err)
	assert.Equal(t, "(1 + x)^2", s.Print(sq))
}

func TestPrintRational(t *testing.T) {
	s := NewStore()
	r, err := s.Rat(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "1/3", s.Print(r))
}

func TestPrintNegativeCoefficientIsExplicit(t *testing.T) {
	s := NewStore()
	x := s.Sym("x")
	negX, err := s.Mul([]ExprId{s.Int(-1), x})
	require.NoError(t, err)
	assert.Equal(t, "(-1) * x", s.Print(negX))
}
