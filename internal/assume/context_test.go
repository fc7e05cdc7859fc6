package assume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/kernel"
)

func TestImplications(t *testing.T) {
	ctx := NewContext()
	ctx.Assume("x", Positive)
	assert.Equal(t, True, ctx.Query("x", Positive))
	assert.Equal(t, True, ctx.Query("x", Nonnegative))
	assert.Equal(t, True, ctx.Query("x", Real))
	assert.Equal(t, True, ctx.Query("x", Nonzero))
	assert.Equal(t, Unknown, ctx.Query("x", Integer))
}

func TestQueryUnknownForUnassumedSymbol(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, Unknown, ctx.Query("y", Positive))
}

func TestPositivityMul(t *testing.T) {
	s := kernel.NewStore()
	ctx := NewContext()
	x := s.Sym("x")
	y := s.Sym("y")
	ctx.Assume("x", Positive)
	ctx.Assume("y", Negative)

	prod, err := s.Mul([]kernel.ExprId{x, y})
	require.NoError(t, err)
	assert.Equal(t, False, Positivity(ctx, s, prod))

	ctx.Assume("y", Positive)
	prod2, err := s.Mul([]kernel.ExprId{x, y})
	require.NoError(t, err)
	assert.Equal(t, True, Positivity(ctx, s, prod2))
}

func TestPositivityMulUnknown(t *testing.T) {
	s := kernel.NewStore()
	ctx := NewContext()
	x := s.Sym("x")
	z := s.Sym("z")
	ctx.Assume("x", Positive)

	prod, err := s.Mul([]kernel.ExprId{x, z})
	require.NoError(t, err)
	assert.Equal(t, Unknown, Positivity(ctx, s, prod))
}

func TestPositivityAdd(t *testing.T) {
	s := kernel.NewStore()
	ctx := NewContext()
	x := s.Sym("x")
	y := s.Sym("y")
	ctx.Assume("x", Positive)
	ctx.Assume("y", Positive)

	sum, err := s.Add([]kernel.ExprId{x, y})
	require.NoError(t, err)
	assert.Equal(t, True, Positivity(ctx, s, sum))
}

func TestNonnegativeEvenPower(t *testing.T) {
	s := kernel.NewStore()
	ctx := NewContext()
	x := s.Sym("x")
	ctx.Assume("x", Real)

	p, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	assert.Equal(t, True, Query(ctx, s, p, Nonnegative))
	assert.Equal(t, Unknown, Positivity(ctx, s, p))
}

func TestIsPositiveGatesPowCollapse(t *testing.T) {
	s := kernel.NewStore()
	ctx := NewContext()
	x := s.Sym("x")
	ctx.Assume("x", Positive)

	y := s.Sym("y")
	inner, err := s.Pow(x, y, nil) // x^y, symbolic exponent
	require.NoError(t, err)

	outer, err := s.Pow(inner, s.Int(2), ctx)
	require.NoError(t, err)
	assert.Equal(t, "x^(2 * y)", s.Print(outer))
}
