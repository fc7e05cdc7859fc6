package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/kernel"
)

func TestSolveQuadraticRationalRoots(t *testing.T) {
	// spec.md §8 scenario 5: solve(x^2+3x+2, x) -> {-1, -2}.
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	threeX, err := s.Mul([]kernel.ExprId{s.Int(3), x})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{xSq, threeX, s.Int(2)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 2)

	values := map[int64]bool{}
	for _, r := range roots {
		n, isInt := s.AsInteger(r.Value)
		require.True(t, isInt)
		values[n] = true
		assert.Equal(t, 1, r.Multiplicity)
	}
	assert.True(t, values[-1])
	assert.True(t, values[-2])
}

func TestSolveLinear(t *testing.T) {
	// 2x - 4 = 0 -> x = 2.
	s := kernel.NewStore()
	x := s.Sym("x")
	twoX, err := s.Mul([]kernel.ExprId{s.Int(2), x})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{twoX, s.Int(-4)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 1)
	n, isInt := s.AsInteger(roots[0].Value)
	require.True(t, isInt)
	assert.Equal(t, int64(2), n)
}

func TestSolveQuadraticIrrationalRoots(t *testing.T) {
	// (1/2)x^2 - 1 = 0, i.e. x^2 = 2 -> +/- sqrt(2). The 1/2 leading
	// coefficient is chosen so 2a = 1 and the root reduces to the bare
	// radical rather than a scaled one, keeping the expected value a
	// direct structural match.
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	half, err := s.Rat(1, 2)
	require.NoError(t, err)
	halfXSq, err := s.Mul([]kernel.ExprId{half, xSq})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{halfXSq, s.Int(-1)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 2)

	sqrt2, err := s.Pow(s.Int(2), half, nil)
	require.NoError(t, err)
	negSqrt2, err := s.Mul([]kernel.ExprId{s.Int(-1), sqrt2})
	require.NoError(t, err)

	found := map[kernel.ExprId]bool{roots[0].Value: true, roots[1].Value: true}
	assert.True(t, found[sqrt2])
	assert.True(t, found[negSqrt2])
}

func TestSolveQuadraticNoRealRoots(t *testing.T) {
	// x^2 + 1 = 0 has no real root.
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{xSq, s.Int(1)})
	require.NoError(t, err)

	_, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveRepeatedRoot(t *testing.T) {
	// x^2 - 2x + 1 = (x-1)^2 -> root 1 with multiplicity 2.
	s := kernel.NewStore()
	x := s.Sym("x")
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	negTwoX, err := s.Mul([]kernel.ExprId{s.Int(-2), x})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{xSq, negTwoX, s.Int(1)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 1)
	assert.Equal(t, 2, roots[0].Multiplicity)
	n, isInt := s.AsInteger(roots[0].Value)
	require.True(t, isInt)
	assert.Equal(t, int64(1), n)
}

func TestSolveCubicAllRationalRoots(t *testing.T) {
	// x^3 - 6x^2 + 11x - 6 = (x-1)(x-2)(x-3).
	s := kernel.NewStore()
	x := s.Sym("x")
	xCubed, err := s.Pow(x, s.Int(3), nil)
	require.NoError(t, err)
	xSq, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	negSixXSq, err := s.Mul([]kernel.ExprId{s.Int(-6), xSq})
	require.NoError(t, err)
	elevenX, err := s.Mul([]kernel.ExprId{s.Int(11), x})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{xCubed, negSixXSq, elevenX, s.Int(-6)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 3)
	values := map[int64]bool{}
	for _, r := range roots {
		n, isInt := s.AsInteger(r.Value)
		require.True(t, isInt)
		values[n] = true
	}
	assert.True(t, values[1])
	assert.True(t, values[2])
	assert.True(t, values[3])
}

func TestSolveCubicOneRealRoot(t *testing.T) {
	// x^3 - 2 = 0 -> x = cbrt(2) (the other two roots are complex).
	s := kernel.NewStore()
	x := s.Sym("x")
	xCubed, err := s.Pow(x, s.Int(3), nil)
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{xCubed, s.Int(-2)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 1)

	oneThird, err := s.Rat(1, 3)
	require.NoError(t, err)
	cbrt2, err := s.Pow(s.Int(2), oneThird, nil)
	require.NoError(t, err)
	assert.Equal(t, cbrt2, roots[0].Value)
}

func TestSolveCubicCasusIrreducibilisDeclines(t *testing.T) {
	// x^3 - 3x + 1 = 0 has three real irrational roots with no real
	// radical closed form expressible without a trigonometric constant.
	s := kernel.NewStore()
	x := s.Sym("x")
	xCubed, err := s.Pow(x, s.Int(3), nil)
	require.NoError(t, err)
	negThreeX, err := s.Mul([]kernel.ExprId{s.Int(-3), x})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{xCubed, negThreeX, s.Int(1)})
	require.NoError(t, err)

	_, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveBiquadraticAllRational(t *testing.T) {
	// x^4 - 5x^2 + 4 = (x-1)(x+1)(x-2)(x+2).
	s := kernel.NewStore()
	x := s.Sym("x")
	x4, err := s.Pow(x, s.Int(4), nil)
	require.NoError(t, err)
	x2, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	negFiveXSq, err := s.Mul([]kernel.ExprId{s.Int(-5), x2})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{x4, negFiveXSq, s.Int(4)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 4)
	values := map[int64]bool{}
	for _, r := range roots {
		n, isInt := s.AsInteger(r.Value)
		require.True(t, isInt)
		values[n] = true
	}
	for _, want := range []int64{1, -1, 2, -2} {
		assert.True(t, values[want])
	}
}

func TestSolveBiquadraticMixedRealAndComplex(t *testing.T) {
	// x^4 - 2x^2 - 3 = (x^2-3)(x^2+1): real roots +/- sqrt(3), the
	// x^2 = -1 factor contributes no real root.
	s := kernel.NewStore()
	x := s.Sym("x")
	x4, err := s.Pow(x, s.Int(4), nil)
	require.NoError(t, err)
	x2, err := s.Pow(x, s.Int(2), nil)
	require.NoError(t, err)
	negTwoXSq, err := s.Mul([]kernel.ExprId{s.Int(-2), x2})
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{x4, negTwoXSq, s.Int(-3)})
	require.NoError(t, err)

	roots, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, roots, 2)

	half, err := s.Rat(1, 2)
	require.NoError(t, err)
	sqrt3, err := s.Pow(s.Int(3), half, nil)
	require.NoError(t, err)
	negSqrt3, err := s.Mul([]kernel.ExprId{s.Int(-1), sqrt3})
	require.NoError(t, err)

	found := map[kernel.ExprId]bool{roots[0].Value: true, roots[1].Value: true}
	assert.True(t, found[sqrt3])
	assert.True(t, found[negSqrt3])
}

func TestSolveGeneralQuarticDeclines(t *testing.T) {
	// x^4 + x^3 + 1 = 0 is neither biquadratic nor has a rational root.
	s := kernel.NewStore()
	x := s.Sym("x")
	x4, err := s.Pow(x, s.Int(4), nil)
	require.NoError(t, err)
	xCubed, err := s.Pow(x, s.Int(3), nil)
	require.NoError(t, err)
	eq, err := s.Add([]kernel.ExprId{x4, xCubed, s.Int(1)})
	require.NoError(t, err)

	_, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveNotPolynomialDeclines(t *testing.T) {
	s := kernel.NewStore()
	x := s.Sym("x")
	eq := s.Func("sin", []kernel.ExprId{x})

	_, ok, err := Solve(s, eq, s.Int(0), "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveZeroPolynomialDeclines(t *testing.T) {
	// 0 = 0 is true for every x; not representable as a finite multiset.
	s := kernel.NewStore()
	_, ok, err := Solve(s, s.Int(0), s.Int(0), "x")
	require.NoError(t, err)
	assert.False(t, ok)
}
