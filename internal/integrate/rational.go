package integrate

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/poly"
	"symmetrica/internal/rational"
)

// integrateRationalFunction matches expr = P(var)/Q(var) for polynomials
// P, Q over Q, decomposes Q into partial fractions (spec.md §4.4, §4.7
// item 7), and integrates term by term. Any leftover irreducible
// quadratic factor is matched to the atan form; anything else causes the
// whole rule to decline (ok=false), falling through to later rules.
func integrateRationalFunction(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	num, den, ok := splitRational(s, id)
	if !ok {
		return kernel.Invalid, false, nil
	}
	numP, err := poly.FromExpr(s, num, varName)
	if err != nil {
		return kernel.Invalid, false, nil
	}
	denP, err := poly.FromExpr(s, den, varName)
	if err != nil {
		return kernel.Invalid, false, nil
	}
	if denP.Degree() < 1 {
		return kernel.Invalid, false, nil
	}

	whole, terms, err := poly.Decompose(numP, denP)
	if err != nil {
		return kernel.Invalid, false, nil
	}

	var pieces []kernel.ExprId
	if !whole.IsZero() {
		wholeExpr, err := poly.ToExpr(s, whole, varName)
		if err != nil {
			return kernel.Invalid, false, err
		}
		integratedWhole, ok, err := integrateMemo(s, wholeExpr, varName, 0)
		if err != nil {
			return kernel.Invalid, false, err
		}
		if !ok {
			return kernel.Invalid, false, nil
		}
		pieces = append(pieces, integratedWhole)
	}

	for _, term := range terms {
		if !term.Remainder.IsZero() {
			piece, ok, err := integrateIrreducibleQuadratic(s, term.RemainderNumerator, term.Remainder, varName)
			if err != nil {
				return kernel.Invalid, false, err
			}
			if !ok {
				return kernel.Invalid, false, nil
			}
			pieces = append(pieces, piece)
			continue
		}
		piece, err := integrateLinearTerm(s, term, varName)
		if err != nil {
			return kernel.Invalid, false, err
		}
		pieces = append(pieces, piece)
	}

	if len(pieces) == 0 {
		return s.Int(0), true, nil
	}
	r, err := s.Add(pieces)
	return r, err == nil, err
}

// splitRational recognizes id as a Mul containing exactly one negative
// integer power (the denominator) and folds the rest into the numerator,
// or a bare negative power (implicit numerator 1).
func splitRational(s *kernel.Store, id kernel.ExprId) (num, den kernel.ExprId, ok bool) {
	if s.Op(id) == kernel.OpPow {
		parts := s.Children(id)
		if k, isInt := s.AsInteger(parts[1]); isInt && k < 0 {
			pw, err := s.Pow(parts[0], s.Int(-k), nil)
			if err != nil {
				return kernel.Invalid, kernel.Invalid, false
			}
			return s.Int(1), pw, true
		}
		return kernel.Invalid, kernel.Invalid, false
	}
	if s.Op(id) != kernel.OpMul {
		return kernel.Invalid, kernel.Invalid, false
	}
	children := s.Children(id)
	var numFactors []kernel.ExprId
	denFactor := kernel.Invalid
	for _, c := range children {
		if s.Op(c) == kernel.OpPow {
			parts := s.Children(c)
			if k, isInt := s.AsInteger(parts[1]); isInt && k < 0 {
				if denFactor != kernel.Invalid {
					return kernel.Invalid, kernel.Invalid, false
				}
				pw, err := s.Pow(parts[0], s.Int(-k), nil)
				if err != nil {
					return kernel.Invalid, kernel.Invalid, false
				}
				denFactor = pw
				continue
			}
		}
		numFactors = append(numFactors, c)
	}
	if denFactor == kernel.Invalid {
		return kernel.Invalid, kernel.Invalid, false
	}
	var numId kernel.ExprId
	if len(numFactors) == 0 {
		numId = s.Int(1)
	} else {
		var err error
		numId, err = s.Mul(numFactors)
		if err != nil {
			return kernel.Invalid, kernel.Invalid, false
		}
	}
	return numId, denFactor, true
}

// integrateLinearTerm integrates A/(x-r)^k: A*ln(x-r) for k==1, else
// A*(x-r)^(1-k)/(1-k).
func integrateLinearTerm(s *kernel.Store, term poly.Term, varName string) (kernel.ExprId, error) {
	x := s.Sym(varName)
	negRoot := rational.Neg(term.Root)
	negRootExpr, err := s.Rat(rational.Numer(negRoot), rational.Denom(negRoot))
	if err != nil {
		return kernel.Invalid, err
	}
	linear, err := s.Add([]kernel.ExprId{x, negRootExpr})
	if err != nil {
		return kernel.Invalid, err
	}
	coefExpr, err := s.Rat(rational.Numer(term.Numerator), rational.Denom(term.Numerator))
	if err != nil {
		return kernel.Invalid, err
	}
	if term.Power == 1 {
		lnPart := s.Func(string(kernel.FnLn), []kernel.ExprId{linear})
		r, err := s.Mul([]kernel.ExprId{coefExpr, lnPart})
		return r, err
	}
	newPow := 1 - term.Power
	powered, err := s.Pow(linear, s.Int(int64(newPow)), nil)
	if err != nil {
		return kernel.Invalid, err
	}
	invNewPow, err := rational.Inv(rational.OfInt(int64(newPow)))
	if err != nil {
		return kernel.Invalid, err
	}
	scaleExpr, err := s.Rat(rational.Numer(invNewPow), rational.Denom(invNewPow))
	if err != nil {
		return kernel.Invalid, err
	}
	r, err := s.Mul([]kernel.ExprId{coefExpr, scaleExpr, powered})
	return r, err
}

// integrateIrreducibleQuadratic matches num/den where den = b*var^2 + a
// (no linear term) and num is a nonzero constant, returning the atan
// closed form (spec.md §4.7 item 7's "match to 1/(a+b*var^2) -> atan"
// case). Anything else declines.
func integrateIrreducibleQuadratic(s *kernel.Store, num, den poly.Polynomial, varName string) (kernel.ExprId, bool, error) {
	if den.Degree() != 2 || !rational.IsZero(den.Coeff(1)) {
		return kernel.Invalid, false, nil
	}
	if num.Degree() > 0 {
		return kernel.Invalid, false, nil
	}
	c := num.Coeff(0)
	if rational.IsZero(c) {
		return kernel.Invalid, false, nil
	}
	a := den.Coeff(0)
	b := den.Coeff(2)

	// num/(a + b*x^2) = (c/b) * 1/((a/b) + x^2); use atan when a/b > 0.
	aOverB, err := rational.Div(a, b)
	if err != nil {
		return kernel.Invalid, false, err
	}
	if rational.Sign(aOverB) <= 0 {
		return kernel.Invalid, false, nil
	}
	sqrtAOverB, exact := rational.IsPerfectSquare(aOverB)
	x := s.Sym(varName)
	var argDiv kernel.ExprId
	var scale rational.Q
	if exact {
		sqrtExpr, err := s.Rat(rational.Numer(sqrtAOverB), rational.Denom(sqrtAOverB))
		if err != nil {
			return kernel.Invalid, false, err
		}
		inv, err := s.Pow(sqrtExpr, s.Int(-1), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		argDiv, err = s.Mul([]kernel.ExprId{x, inv})
		if err != nil {
			return kernel.Invalid, false, err
		}
		scale, err = rational.Inv(sqrtAOverB)
		if err != nil {
			return kernel.Invalid, false, err
		}
	} else {
		halfExp, err := s.Rat(1, 2)
		if err != nil {
			return kernel.Invalid, false, err
		}
		aOverBExpr, err := s.Rat(rational.Numer(aOverB), rational.Denom(aOverB))
		if err != nil {
			return kernel.Invalid, false, err
		}
		sqrtId, err := s.Pow(aOverBExpr, halfExp, nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		inv, err := s.Pow(sqrtId, s.Int(-1), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		argDiv, err = s.Mul([]kernel.ExprId{x, inv})
		if err != nil {
			return kernel.Invalid, false, err
		}
		scale = rational.Zero // unused: coefficient built below via symbolic sqrt
	}

	atanArg := s.Func(string(kernel.FnAtan), []kernel.ExprId{argDiv})

	// coefficient: c / sqrt(a*b), built as c/b * 1/sqrt(a/b)
	cOverB, err := rational.Div(c, b)
	if err != nil {
		return kernel.Invalid, false, err
	}
	if exact {
		coef, err := rational.Mul(cOverB, scale)
		if err != nil {
			return kernel.Invalid, false, err
		}
		coefExpr, err := s.Rat(rational.Numer(coef), rational.Denom(coef))
		if err != nil {
			return kernel.Invalid, false, err
		}
		r, err := s.Mul([]kernel.ExprId{coefExpr, atanArg})
		return r, err == nil, err
	}
	cOverBExpr, err := s.Rat(rational.Numer(cOverB), rational.Denom(cOverB))
	if err != nil {
		return kernel.Invalid, false, err
	}
	halfExp, err := s.Rat(1, 2)
	if err != nil {
		return kernel.Invalid, false, err
	}
	aOverBExpr, err := s.Rat(rational.Numer(aOverB), rational.Denom(aOverB))
	if err != nil {
		return kernel.Invalid, false, err
	}
	sqrtId, err := s.Pow(aOverBExpr, halfExp, nil)
	if err != nil {
		return kernel.Invalid, false, err
	}
	invSqrt, err := s.Pow(sqrtId, s.Int(-1), nil)
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Mul([]kernel.ExprId{cOverBExpr, invSqrt, atanArg})
	return r, err == nil, err
}
