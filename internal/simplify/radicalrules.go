package simplify

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/rational"
)

// RadicalRules applies the square-root simplifications of spec.md §4.5
// item 4: perfect-square literal folding, factoring even powers out from
// under a root, and Ramanujan-style nested-radical denesting. Each rule
// refuses rather than guesses when its numeric precondition does not
// exactly hold (the kernel's own x^(-1/2) form is already canonical, so
// the "rationalize x^(-1/2)" identity spec.md mentions has no separate
// rewrite here: Mul's power-merge rule would immediately re-fold
// x^(1/2)*x^(-1) back into the same canonical Pow(x, -1/2) node).
type RadicalRules struct{}

func (RadicalRules) Name() string { return "Radical Rules" }
func (RadicalRules) Description() string {
	return "perfect-square folding, even-power extraction from roots, Ramanujan denesting"
}

var half = rational.Q{Numer: 1, Denom: 2}

func (RadicalRules) Apply(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error) {
	if s.Op(id) != kernel.OpPow {
		return id, false, nil
	}
	children := s.Children(id)
	base, exp := children[0], children[1]
	expVal, isNumericExp := s.AsRational(exp)
	if !isNumericExp || rational.Cmp(expVal, half) != 0 {
		return id, false, nil
	}

	// n^(1/2) -> m when n is a perfect rational square.
	if n, ok := s.AsRational(base); ok {
		if root, ok := rational.IsPerfectSquare(n); ok {
			result, err := ratExpr(s, root)
			if err != nil {
				return kernel.Invalid, false, err
			}
			return result, true, nil
		}
	}

	// Factor even powers out from under the root: sqrt(x^(2k) * rest) ->
	// x^k * sqrt(rest), when x is a nonnegative literal or ctx proves it
	// Positive (a Nonnegative assumption alone is not enough).
	if s.Op(base) == kernel.OpMul {
		factors := s.Children(base)
		for i, f := range factors {
			var fBase, fExp kernel.ExprId
			if s.Op(f) == kernel.OpPow {
				fc := s.Children(f)
				fBase, fExp = fc[0], fc[1]
			} else {
				continue
			}
			k, ok := s.AsInteger(fExp)
			if !ok || k <= 0 || k%2 != 0 {
				continue
			}
			if !isNonnegative(ctx, s, fBase) {
				continue
			}
			rest := make([]kernel.ExprId, 0, len(factors)-1)
			rest = append(rest, factors[:i]...)
			rest = append(rest, factors[i+1:]...)
			extracted, err := s.Pow(fBase, s.Int(k/2), ctx)
			if err != nil {
				return kernel.Invalid, false, err
			}
			if len(rest) == 0 {
				return extracted, true, nil
			}
			restProd, err := s.Mul(rest)
			if err != nil {
				return kernel.Invalid, false, err
			}
			restRoot, err := s.Pow(restProd, exp, ctx)
			if err != nil {
				return kernel.Invalid, false, err
			}
			result, err := s.Mul([]kernel.ExprId{extracted, restRoot})
			if err != nil {
				return kernel.Invalid, false, err
			}
			return result, true, nil
		}
	}

	// Ramanujan denesting: sqrt(a + b*sqrt(c)) -> sqrt(p) ± sqrt(q) when
	// a^2 - b^2*c is a perfect rational square and the resulting p, q are
	// themselves perfect rational squares.
	if s.Op(base) == kernel.OpAdd {
		addChildren := s.Children(base)
		if len(addChildren) == 2 {
			if p, q, sign, ok := tryDenest(s, addChildren[0], addChildren[1]); ok {
				sqrtP, err := ratExpr(s, p)
				if err != nil {
					return kernel.Invalid, false, err
				}
				sqrtQ, err := ratExpr(s, q)
				if err != nil {
					return kernel.Invalid, false, err
				}
				if sign < 0 {
					negSqrtQ, err := s.Mul([]kernel.ExprId{s.Int(-1), sqrtQ})
					if err != nil {
						return kernel.Invalid, false, err
					}
					result, err := s.Add([]kernel.ExprId{sqrtP, negSqrtQ})
					if err != nil {
						return kernel.Invalid, false, err
					}
					return result, true, nil
				}
				result, err := s.Add([]kernel.ExprId{sqrtP, sqrtQ})
				if err != nil {
					return kernel.Invalid, false, err
				}
				return result, true, nil
			}
		}
	}

	return id, false, nil
}

// tryDenest attempts to match one of t1, t2 as the rational term a and the
// other as b*sqrt(c), then solves for rational p, q such that
// sqrt(a+b*sqrt(c)) = sqrt(p) + sign*sqrt(q).
func tryDenest(s *kernel.Store, t1, t2 kernel.ExprId) (p, q rational.Q, sign int, ok bool) {
	a, aOk := s.AsRational(t1)
	bTerm := t2
	if !aOk {
		a, aOk = s.AsRational(t2)
		bTerm = t1
	}
	if !aOk {
		return rational.Zero, rational.Zero, 0, false
	}
	b, c, bOk := matchRadicalTerm(s, bTerm)
	if !bOk {
		return rational.Zero, rational.Zero, 0, false
	}
	bSq, err := rational.Mul(b, b)
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	bSqC, err := rational.Mul(bSq, c)
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	aSq, err := rational.Mul(a, a)
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	d, err := rational.Sub(aSq, bSqC)
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	e, ok := rational.IsPerfectSquare(d)
	if !ok {
		return rational.Zero, rational.Zero, 0, false
	}
	sum, err := rational.Add(a, e)
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	diff, err := rational.Sub(a, e)
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	pCandidate, err := rational.Div(sum, rational.OfInt(2))
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	qCandidate, err := rational.Div(diff, rational.OfInt(2))
	if err != nil {
		return rational.Zero, rational.Zero, 0, false
	}
	if rational.Sign(pCandidate) < 0 || rational.Sign(qCandidate) < 0 {
		return rational.Zero, rational.Zero, 0, false
	}
	pRoot, pOk := rational.IsPerfectSquare(pCandidate)
	qRoot, qOk := rational.IsPerfectSquare(qCandidate)
	if !pOk || !qOk {
		return rational.Zero, rational.Zero, 0, false
	}
	sgn := 1
	if rational.Sign(b) < 0 {
		sgn = -1
	}
	return pRoot, qRoot, sgn, true
}

// matchRadicalTerm reports whether id is exactly b*sqrt(c) for rational b
// (coefficient 1 allowed implicitly) and rational c.
func matchRadicalTerm(s *kernel.Store, id kernel.ExprId) (b, c rational.Q, ok bool) {
	if s.Op(id) == kernel.OpPow {
		children := s.Children(id)
		exp, isNum := s.AsRational(children[1])
		if !isNum || rational.Cmp(exp, half) != 0 {
			return rational.Zero, rational.Zero, false
		}
		cVal, isC := s.AsRational(children[0])
		if !isC {
			return rational.Zero, rational.Zero, false
		}
		return rational.One, cVal, true
	}
	if s.Op(id) == kernel.OpMul {
		children := s.Children(id)
		if len(children) != 2 {
			return rational.Zero, rational.Zero, false
		}
		for _, pair := range [][2]kernel.ExprId{{children[0], children[1]}, {children[1], children[0]}} {
			coef, root := pair[0], pair[1]
			coefVal, isCoef := s.AsRational(coef)
			if !isCoef || s.Op(root) != kernel.OpPow {
				continue
			}
			rc := s.Children(root)
			exp, isNum := s.AsRational(rc[1])
			if !isNum || rational.Cmp(exp, half) != 0 {
				continue
			}
			cVal, isC := s.AsRational(rc[0])
			if !isC {
				continue
			}
			return coefVal, cVal, true
		}
	}
	return rational.Zero, rational.Zero, false
}

func isNonnegative(ctx kernel.Assumptions, s *kernel.Store, id kernel.ExprId) bool {
	if n, ok := s.AsRational(id); ok {
		return rational.Sign(n) >= 0
	}
	return isPositive(ctx, s, id)
}

// ratExpr interns q as a literal via the store's public Rat constructor,
// which already folds integer-valued results the same way the kernel's
// internal ratLiteral does.
func ratExpr(s *kernel.Store, q rational.Q) (kernel.ExprId, error) {
	return s.Rat(rational.Numer(q), rational.Denom(q))
}
