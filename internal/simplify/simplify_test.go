package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/assume"
	"symmetrica/internal/kernel"
)

func TestSimplifyIdempotent(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	sinx := s.Func("sin", []kernel.ExprId{x})
	sinSq, err := s.Pow(sinx, s.Int(2), nil)
	require.NoError(t, err)
	cosx := s.Func("cos", []kernel.ExprId{x})
	cosSq, err := s.Pow(cosx, s.Int(2), nil)
	require.NoError(t, err)
	sum, err := s.Add([]kernel.ExprId{sinSq, cosSq})
	require.NoError(t, err)

	once, err := Simplify(s, sum)
	require.NoError(t, err)
	twice, err := Simplify(s, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, s.Int(1), once)
}

func TestSimplifyPythagoreanWithExtraTerm(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	sinx := s.Func("sin", []kernel.ExprId{x})
	sinSq, err := s.Pow(sinx, s.Int(2), nil)
	require.NoError(t, err)
	cosx := s.Func("cos", []kernel.ExprId{x})
	cosSq, err := s.Pow(cosx, s.Int(2), nil)
	require.NoError(t, err)
	sum, err := s.Add([]kernel.ExprId{s.Int(3), sinSq, cosSq})
	require.NoError(t, err)

	result, err := Simplify(s, sum)
	require.NoError(t, err)
	assert.Equal(t, s.Int(4), result)
}

func TestSimplifyLogExpansionGatedByAssumptions(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	y := s.Sym("y")
	prod, err := s.Mul([]kernel.ExprId{x, y})
	require.NoError(t, err)
	lnProd := s.Func("ln", []kernel.ExprId{prod})

	unguarded, err := Simplify(s, lnProd)
	require.NoError(t, err)
	assert.Equal(t, lnProd, unguarded)

	ctx := assume.NewContext()
	ctx.Assume("x", assume.Positive)
	ctx.Assume("y", assume.Positive)
	guarded, err := SimplifyWith(s, lnProd, ctx)
	require.NoError(t, err)
	lnX := s.Func("ln", []kernel.ExprId{x})
	lnY := s.Func("ln", []kernel.ExprId{y})
	expected, err := s.Add([]kernel.ExprId{lnX, lnY})
	require.NoError(t, err)
	assert.Equal(t, expected, guarded)
}

func TestSimplifyPerfectSquareRoot(t *testing.T) {
	s := kernel.NewStore()
	nine := s.Int(9)
	root, err := s.Pow(nine, half2(s), nil)
	require.NoError(t, err)
	result, err := Simplify(s, root)
	require.NoError(t, err)
	assert.Equal(t, s.Int(3), result)
}

func half2(s *kernel.Store) kernel.ExprId {
	id, err := s.Rat(1, 2)
	if err != nil {
		panic(err)
	}
	return id
}

func TestSimplifyAtanTanCancels(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	tanx := s.Func("tan", []kernel.ExprId{x})
	atanTanx := s.Func("atan", []kernel.ExprId{tanx})
	result, err := Simplify(s, atanTanx)
	require.NoError(t, err)
	assert.Equal(t, x, result)
}

func TestSimplifyChainRuleExample(t *testing.T) {
	// Reproduces simplify(Add[Pow(x,2), Mul[3,x], 1]) -> "1 + 3 * x + x^2".
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	sum, err := s.Add([]kernel.ExprId{xSq, threeX, s.Int(1)})
	require.NoError(t, err)
	result, err := Simplify(s, sum)
	require.NoError(t, err)
	assert.Equal(t, "1 + 3 * x + x^2", s.Print(result))
}

func TestConstantFoldFunctionZero(t *testing.T) {
	s := kernel.NewStore()
	sinZero := s.Func("sin", []kernel.ExprId{s.Int(0)})
	result, err := Simplify(s, sinZero)
	require.NoError(t, err)
	assert.Equal(t, s.Int(0), result)

	cosZero := s.Func("cos", []kernel.ExprId{s.Int(0)})
	result2, err := Simplify(s, cosZero)
	require.NoError(t, err)
	assert.Equal(t, s.Int(1), result2)
}
