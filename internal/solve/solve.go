// Package solve implements the thin equation solver of spec.md §4.8: a
// client of internal/poly and the closed-form radical formulas, not part
// of the heavy core. It never constructs complex numbers — the kernel has
// no complex literal — so any branch whose closed form would require one
// (casus irreducibilis for an irreducible cubic, a general non-biquadratic
// quartic, a negative quadratic discriminant) is reported as "no closed
// form" (ok=false) rather than approximated or erred.
package solve

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/poly"
	"symmetrica/internal/rational"
	"symmetrica/internal/simplify"
)

// Root pairs a root value with its multiplicity in the solution multiset.
type Root struct {
	Value        kernel.ExprId
	Multiplicity int
}

// Solve treats the equation lhs = rhs as lhs - rhs = 0 and attempts to
// solve for varName via the polynomial layer plus closed-form radical
// formulas up to quartic (spec.md §4.8). ok is false, with a nil error,
// when the equation is not polynomial in varName or no closed form was
// found for its irreducible part.
func Solve(s *kernel.Store, lhs, rhs kernel.ExprId, varName string) ([]Root, bool, error) {
	negRhs, err := s.Mul([]kernel.ExprId{s.Int(-1), rhs})
	if err != nil {
		return nil, false, err
	}
	diff, err := s.Add([]kernel.ExprId{lhs, negRhs})
	if err != nil {
		return nil, false, err
	}
	p, err := poly.FromExpr(s, diff, varName)
	if err != nil {
		return nil, false, nil
	}
	return SolvePolynomial(s, p, varName)
}

// SolvePolynomial solves p(varName) = 0 for a polynomial already in
// internal/poly form.
func SolvePolynomial(s *kernel.Store, p poly.Polynomial, varName string) ([]Root, bool, error) {
	if p.IsZero() {
		// Every value of var is a root; not representable as a finite
		// multiset.
		return nil, false, nil
	}

	rationalRoots, remainder := poly.Factor(p)
	var roots []Root
	for _, rf := range rationalRoots {
		expr, err := ratExpr(s, rf.Root)
		if err != nil {
			return nil, false, err
		}
		roots = append(roots, Root{Value: expr, Multiplicity: rf.Multiplicity})
	}

	extra, ok, err := solveRemainder(s, remainder, varName)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		if remainder.Degree() <= 0 {
			// Fully factored over Q already; no remainder to solve.
			return finalize(s, roots)
		}
		return nil, false, nil
	}
	roots = append(roots, extra...)
	return finalize(s, roots)
}

func solveRemainder(s *kernel.Store, remainder poly.Polynomial, varName string) ([]Root, bool, error) {
	switch remainder.Degree() {
	case -1, 0:
		return nil, true, nil
	case 1:
		root, err := solveLinear(remainder)
		if err != nil {
			return nil, false, err
		}
		expr, err := ratExpr(s, root)
		if err != nil {
			return nil, false, err
		}
		return []Root{{Value: expr, Multiplicity: 1}}, true, nil
	case 2:
		return solveQuadratic(s, remainder)
	case 3:
		return solveCubic(s, remainder)
	case 4:
		return solveBiquadratic(s, remainder)
	default:
		return nil, false, nil
	}
}

func finalize(s *kernel.Store, roots []Root) ([]Root, bool, error) {
	out := make([]Root, len(roots))
	for i, r := range roots {
		v, err := simplify.Simplify(s, r.Value)
		if err != nil {
			return nil, false, err
		}
		out[i] = Root{Value: v, Multiplicity: r.Multiplicity}
	}
	return out, true, nil
}

// solveLinear solves c0 + c1*x = 0 for x = -c0/c1. Defensive only: the
// Rational Root Theorem search in poly.Factor always resolves a linear
// remainder's root directly, so this path is normally unreached.
func solveLinear(p poly.Polynomial) (rational.Q, error) {
	return rational.Div(rational.Neg(p.Coeff(0)), p.Coeff(1))
}

// solveQuadratic solves c0 + c1*x + c2*x^2 = 0 via the quadratic formula,
// declining when the discriminant is negative (the roots would be
// complex).
func solveQuadratic(s *kernel.Store, p poly.Polynomial) ([]Root, bool, error) {
	a, b, c := p.Coeff(2), p.Coeff(1), p.Coeff(0)
	bSq, err := rational.Mul(b, b)
	if err != nil {
		return nil, false, err
	}
	ac, err := rational.Mul(a, c)
	if err != nil {
		return nil, false, err
	}
	fourAC, err := rational.Mul(rational.OfInt(4), ac)
	if err != nil {
		return nil, false, err
	}
	disc, err := rational.Sub(bSq, fourAC)
	if err != nil {
		return nil, false, err
	}
	if rational.Sign(disc) < 0 {
		return nil, false, nil
	}
	twoA, err := rational.Mul(rational.OfInt(2), a)
	if err != nil {
		return nil, false, err
	}
	centerVal, err := rational.Div(rational.Neg(b), twoA)
	if err != nil {
		return nil, false, err
	}
	centerExpr, err := ratExpr(s, centerVal)
	if err != nil {
		return nil, false, err
	}

	if rational.IsZero(disc) {
		return []Root{{Value: centerExpr, Multiplicity: 2}}, true, nil
	}

	var sqrtExpr kernel.ExprId
	if root, exact := rational.IsPerfectSquare(disc); exact {
		sqrtExpr, err = ratExpr(s, root)
		if err != nil {
			return nil, false, err
		}
	} else {
		discExpr, err := ratExpr(s, disc)
		if err != nil {
			return nil, false, err
		}
		half, err := s.Rat(1, 2)
		if err != nil {
			return nil, false, err
		}
		sqrtExpr, err = s.Pow(discExpr, half, nil)
		if err != nil {
			return nil, false, err
		}
	}

	invTwoA, err := rational.Inv(twoA)
	if err != nil {
		return nil, false, err
	}
	invTwoAExpr, err := ratExpr(s, invTwoA)
	if err != nil {
		return nil, false, err
	}
	negInvTwoAExpr, err := s.Mul([]kernel.ExprId{s.Int(-1), invTwoAExpr})
	if err != nil {
		return nil, false, err
	}

	// (-b +/- sqrt(disc)) / (2a), distributed by hand into a flat Add
	// since the kernel never distributes Mul over Add.
	posTerm, err := s.Mul([]kernel.ExprId{invTwoAExpr, sqrtExpr})
	if err != nil {
		return nil, false, err
	}
	negTerm, err := s.Mul([]kernel.ExprId{negInvTwoAExpr, sqrtExpr})
	if err != nil {
		return nil, false, err
	}
	root1, err := s.Add([]kernel.ExprId{centerExpr, posTerm})
	if err != nil {
		return nil, false, err
	}
	root2, err := s.Add([]kernel.ExprId{centerExpr, negTerm})
	if err != nil {
		return nil, false, err
	}
	return []Root{{Value: root1, Multiplicity: 1}, {Value: root2, Multiplicity: 1}}, true, nil
}

// solveCubic solves c0+c1*x+c2*x^2+c3*x^3 = 0 via Cardano's formula,
// handling only the one-real-root case (depressed-cubic discriminant
// strictly positive); the three-real-root case (casus irreducibilis)
// would require a trigonometric closed form the kernel has no constant
// (pi) to express, so it is declined.
func solveCubic(s *kernel.Store, poly3 poly.Polynomial) ([]Root, bool, error) {
	a, b, c, d := poly3.Coeff(3), poly3.Coeff(2), poly3.Coeff(1), poly3.Coeff(0)

	bSq, err := rational.Mul(b, b)
	if err != nil {
		return nil, false, err
	}
	threeA, err := rational.Mul(rational.OfInt(3), a)
	if err != nil {
		return nil, false, err
	}
	threeAC, err := rational.Mul(threeA, c)
	if err != nil {
		return nil, false, err
	}
	pNum, err := rational.Sub(threeAC, bSq)
	if err != nil {
		return nil, false, err
	}
	threeASq, err := rational.Mul(threeA, a)
	if err != nil {
		return nil, false, err
	}
	p, err := rational.Div(pNum, threeASq)
	if err != nil {
		return nil, false, err
	}

	bCubed, err := rational.Mul(bSq, b)
	if err != nil {
		return nil, false, err
	}
	twoBCubed, err := rational.Mul(rational.OfInt(2), bCubed)
	if err != nil {
		return nil, false, err
	}
	ab, err := rational.Mul(a, b)
	if err != nil {
		return nil, false, err
	}
	abc, err := rational.Mul(ab, c)
	if err != nil {
		return nil, false, err
	}
	nineABC, err := rational.Mul(rational.OfInt(9), abc)
	if err != nil {
		return nil, false, err
	}
	aSq, err := rational.Mul(a, a)
	if err != nil {
		return nil, false, err
	}
	aSqD, err := rational.Mul(aSq, d)
	if err != nil {
		return nil, false, err
	}
	twentySevenASqD, err := rational.Mul(rational.OfInt(27), aSqD)
	if err != nil {
		return nil, false, err
	}
	qNum, err := rational.Add(twoBCubed, twentySevenASqD)
	if err != nil {
		return nil, false, err
	}
	qNum, err = rational.Sub(qNum, nineABC)
	if err != nil {
		return nil, false, err
	}
	aCubed, err := rational.Mul(aSq, a)
	if err != nil {
		return nil, false, err
	}
	twentySevenACubed, err := rational.Mul(rational.OfInt(27), aCubed)
	if err != nil {
		return nil, false, err
	}
	q, err := rational.Div(qNum, twentySevenACubed)
	if err != nil {
		return nil, false, err
	}

	// delta0 = (q/2)^2 + (p/3)^3.
	qHalf, err := rational.Div(q, rational.OfInt(2))
	if err != nil {
		return nil, false, err
	}
	pThird, err := rational.Div(p, rational.OfInt(3))
	if err != nil {
		return nil, false, err
	}
	qHalfSq, err := rational.Mul(qHalf, qHalf)
	if err != nil {
		return nil, false, err
	}
	pThirdSq, err := rational.Mul(pThird, pThird)
	if err != nil {
		return nil, false, err
	}
	pThirdCubed, err := rational.Mul(pThirdSq, pThird)
	if err != nil {
		return nil, false, err
	}
	delta0, err := rational.Add(qHalfSq, pThirdCubed)
	if err != nil {
		return nil, false, err
	}
	if rational.Sign(delta0) <= 0 {
		return nil, false, nil
	}

	negQHalf := rational.Neg(qHalf)
	negQHalfExpr, err := ratExpr(s, negQHalf)
	if err != nil {
		return nil, false, err
	}

	var sqrtExpr kernel.ExprId
	if root, exact := rational.IsPerfectSquare(delta0); exact {
		sqrtExpr, err = ratExpr(s, root)
	} else {
		var delta0Expr kernel.ExprId
		delta0Expr, err = ratExpr(s, delta0)
		if err != nil {
			return nil, false, err
		}
		var half kernel.ExprId
		half, err = s.Rat(1, 2)
		if err != nil {
			return nil, false, err
		}
		sqrtExpr, err = s.Pow(delta0Expr, half, nil)
	}
	if err != nil {
		return nil, false, err
	}

	negSqrtExpr, err := s.Mul([]kernel.ExprId{s.Int(-1), sqrtExpr})
	if err != nil {
		return nil, false, err
	}
	uBase, err := s.Add([]kernel.ExprId{negQHalfExpr, sqrtExpr})
	if err != nil {
		return nil, false, err
	}
	vBase, err := s.Add([]kernel.ExprId{negQHalfExpr, negSqrtExpr})
	if err != nil {
		return nil, false, err
	}
	oneThird, err := s.Rat(1, 3)
	if err != nil {
		return nil, false, err
	}
	cbrtU, err := s.Pow(uBase, oneThird, nil)
	if err != nil {
		return nil, false, err
	}
	cbrtV, err := s.Pow(vBase, oneThird, nil)
	if err != nil {
		return nil, false, err
	}
	y, err := s.Add([]kernel.ExprId{cbrtU, cbrtV})
	if err != nil {
		return nil, false, err
	}

	shift, err := rational.Div(rational.Neg(b), threeA)
	if err != nil {
		return nil, false, err
	}
	shiftExpr, err := ratExpr(s, shift)
	if err != nil {
		return nil, false, err
	}
	x, err := s.Add([]kernel.ExprId{y, shiftExpr})
	if err != nil {
		return nil, false, err
	}
	return []Root{{Value: x, Multiplicity: 1}}, true, nil
}

// solveBiquadratic solves the quartic c0+c1*x+c2*x^2+c3*x^3+c4*x^4 = 0
// only in the biquadratic case (c1 == c3 == 0), reducing to a quadratic
// in y = x^2. A general quartic (nonzero odd-degree terms) needs the
// full Ferrari resolvent-cubic construction, which is declined here to
// keep the closed form within what can be verified by hand.
func solveBiquadratic(s *kernel.Store, p poly.Polynomial) ([]Root, bool, error) {
	if !rational.IsZero(p.Coeff(1)) || !rational.IsZero(p.Coeff(3)) {
		return nil, false, nil
	}
	yPoly := poly.FromCoeffs([]rational.Q{p.Coeff(0), p.Coeff(2), p.Coeff(4)})
	yRoots, ok, err := solveQuadratic(s, yPoly)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var roots []Root
	for _, yr := range yRoots {
		yVal, isRat := s.AsRational(yr.Value)
		if !isRat {
			// A symbolic (irrational) y-root would need a nested radical
			// for x = sqrt(y); decline rather than guess its sign.
			return nil, false, nil
		}
		sign := rational.Sign(yVal)
		if sign < 0 {
			// x^2 = yVal < 0 has no real root; drop it from the multiset.
			continue
		}
		if sign == 0 {
			roots = append(roots, Root{Value: s.Int(0), Multiplicity: 2 * yr.Multiplicity})
			continue
		}
		var xVal kernel.ExprId
		if root, exact := rational.IsPerfectSquare(yVal); exact {
			xVal, err = ratExpr(s, root)
		} else {
			half, herr := s.Rat(1, 2)
			if herr != nil {
				return nil, false, herr
			}
			xVal, err = s.Pow(yr.Value, half, nil)
		}
		if err != nil {
			return nil, false, err
		}
		negXVal, err := s.Mul([]kernel.ExprId{s.Int(-1), xVal})
		if err != nil {
			return nil, false, err
		}
		roots = append(roots, Root{Value: xVal, Multiplicity: yr.Multiplicity})
		roots = append(roots, Root{Value: negXVal, Multiplicity: yr.Multiplicity})
	}
	return roots, true, nil
}

func ratExpr(s *kernel.Store, q rational.Q) (kernel.ExprId, error) {
	return s.Rat(rational.Numer(q), rational.Denom(q))
}
