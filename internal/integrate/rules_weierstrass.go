package integrate

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/rational"
)

// matchCosTerm matches b*cos(var) or bare cos(var) (b=1).
func matchCosTerm(s *kernel.Store, id kernel.ExprId, varName string) (b rational.Q, ok bool) {
	if s.Op(id) == kernel.OpFunction && s.FuncName(id) == "cos" {
		args := s.Children(id)
		if len(args) == 1 && s.IsSymbol(args[0], varName) {
			return rational.One, true
		}
		return rational.Zero, false
	}
	if s.Op(id) != kernel.OpMul {
		return rational.Zero, false
	}
	children := s.Children(id)
	coef := rational.One
	cosPart := kernel.Invalid
	for _, c := range children {
		if q, isNum := s.AsRational(c); isNum {
			var err error
			coef, err = rational.Mul(coef, q)
			if err != nil {
				return rational.Zero, false
			}
			continue
		}
		if cosPart != kernel.Invalid {
			return rational.Zero, false
		}
		cosPart = c
	}
	if cosPart == kernel.Invalid || s.Op(cosPart) != kernel.OpFunction || s.FuncName(cosPart) != "cos" {
		return rational.Zero, false
	}
	args := s.Children(cosPart)
	if len(args) != 1 || !s.IsSymbol(args[0], varName) {
		return rational.Zero, false
	}
	return coef, true
}

// matchACosB matches id against a + b*cos(var) with constant a, b.
func matchACosB(s *kernel.Store, id kernel.ExprId, varName string) (a, b rational.Q, ok bool) {
	if s.Op(id) != kernel.OpAdd {
		return rational.Zero, rational.Zero, false
	}
	children := s.Children(id)
	if len(children) != 2 {
		return rational.Zero, rational.Zero, false
	}
	foundA, foundB := false, false
	for _, c := range children {
		if q, isNum := s.AsRational(c); isNum {
			if foundA {
				return rational.Zero, rational.Zero, false
			}
			a = q
			foundA = true
			continue
		}
		bv, matched := matchCosTerm(s, c, varName)
		if !matched {
			return rational.Zero, rational.Zero, false
		}
		b = bv
		foundB = true
	}
	if !foundA || !foundB {
		return rational.Zero, rational.Zero, false
	}
	return a, b, true
}

// integrateWeierstrass matches 1/(a+b*cos(var)) with rational a, b and
// a^2 != b^2 (spec.md §4.7 item 11), returning the atan closed form when
// a^2 > b^2 and the real hyperbolic (artanh, expressed via ln) form when
// a^2 < b^2.
func integrateWeierstrass(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	if s.Op(id) != kernel.OpPow {
		return kernel.Invalid, false, nil
	}
	parts := s.Children(id)
	denom, exp := parts[0], parts[1]
	if k, isInt := s.AsInteger(exp); !isInt || k != -1 {
		return kernel.Invalid, false, nil
	}
	a, b, ok := matchACosB(s, denom, varName)
	if !ok {
		return kernel.Invalid, false, nil
	}
	aSq, err := rational.Mul(a, a)
	if err != nil {
		return kernel.Invalid, false, err
	}
	bSq, err := rational.Mul(b, b)
	if err != nil {
		return kernel.Invalid, false, err
	}
	diffSq, err := rational.Sub(aSq, bSq)
	if err != nil {
		return kernel.Invalid, false, err
	}
	if rational.IsZero(diffSq) {
		return kernel.Invalid, false, nil
	}

	x := s.Sym(varName)
	half, err := s.Rat(1, 2)
	if err != nil {
		return kernel.Invalid, false, err
	}
	halfX, err := s.Mul([]kernel.ExprId{half, x})
	if err != nil {
		return kernel.Invalid, false, err
	}
	tanHalf := s.Func("tan", []kernel.ExprId{halfX})

	if rational.Sign(diffSq) > 0 {
		return weierstrassAtanForm(s, a, b, diffSq, tanHalf)
	}
	return weierstrassArtanhForm(s, a, b, rational.Neg(diffSq), tanHalf)
}

func sqrtExprOf(s *kernel.Store, q rational.Q) (kernel.ExprId, error) {
	if root, exact := rational.IsPerfectSquare(q); exact {
		return s.Rat(rational.Numer(root), rational.Denom(root))
	}
	qExpr, err := s.Rat(rational.Numer(q), rational.Denom(q))
	if err != nil {
		return kernel.Invalid, err
	}
	half, err := s.Rat(1, 2)
	if err != nil {
		return kernel.Invalid, err
	}
	return s.Pow(qExpr, half, nil)
}

func weierstrassAtanForm(s *kernel.Store, a, b, diffSq rational.Q, tanHalf kernel.ExprId) (kernel.ExprId, bool, error) {
	sqrtExpr, err := sqrtExprOf(s, diffSq)
	if err != nil {
		return kernel.Invalid, false, err
	}
	aExpr, err := s.Rat(rational.Numer(a), rational.Denom(a))
	if err != nil {
		return kernel.Invalid, false, err
	}
	bExpr, err := s.Rat(rational.Numer(b), rational.Denom(b))
	if err != nil {
		return kernel.Invalid, false, err
	}
	aTan, err := s.Mul([]kernel.ExprId{aExpr, tanHalf})
	if err != nil {
		return kernel.Invalid, false, err
	}
	negB, err := s.Mul([]kernel.ExprId{s.Int(-1), bExpr})
	if err != nil {
		return kernel.Invalid, false, err
	}
	numerator, err := s.Add([]kernel.ExprId{aTan, negB})
	if err != nil {
		return kernel.Invalid, false, err
	}
	invSqrt, err := s.Pow(sqrtExpr, s.Int(-1), nil)
	if err != nil {
		return kernel.Invalid, false, err
	}
	argAtan, err := s.Mul([]kernel.ExprId{numerator, invSqrt})
	if err != nil {
		return kernel.Invalid, false, err
	}
	atanPart := s.Func(string(kernel.FnAtan), []kernel.ExprId{argAtan})
	coef, err := s.Mul([]kernel.ExprId{s.Int(2), invSqrt})
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Mul([]kernel.ExprId{coef, atanPart})
	return r, err == nil, err
}

// weierstrassArtanhForm builds the a^2 < b^2 branch. artanh(z) is written
// out as (1/2)*ln((1+z)/(1-z)) rather than an opaque function, since the
// kernel's known-function table has no inverse hyperbolic tangent.
func weierstrassArtanhForm(s *kernel.Store, a, b, posDiff rational.Q, tanHalf kernel.ExprId) (kernel.ExprId, bool, error) {
	sqrtExpr, err := sqrtExprOf(s, posDiff)
	if err != nil {
		return kernel.Invalid, false, err
	}
	aExpr, err := s.Rat(rational.Numer(a), rational.Denom(a))
	if err != nil {
		return kernel.Invalid, false, err
	}
	bExpr, err := s.Rat(rational.Numer(b), rational.Denom(b))
	if err != nil {
		return kernel.Invalid, false, err
	}
	aTan, err := s.Mul([]kernel.ExprId{aExpr, tanHalf})
	if err != nil {
		return kernel.Invalid, false, err
	}
	negB, err := s.Mul([]kernel.ExprId{s.Int(-1), bExpr})
	if err != nil {
		return kernel.Invalid, false, err
	}
	numerator, err := s.Add([]kernel.ExprId{aTan, negB})
	if err != nil {
		return kernel.Invalid, false, err
	}
	invSqrt, err := s.Pow(sqrtExpr, s.Int(-1), nil)
	if err != nil {
		return kernel.Invalid, false, err
	}
	z, err := s.Mul([]kernel.ExprId{numerator, invSqrt})
	if err != nil {
		return kernel.Invalid, false, err
	}

	onePlusZ, err := s.Add([]kernel.ExprId{s.Int(1), z})
	if err != nil {
		return kernel.Invalid, false, err
	}
	negZ, err := s.Mul([]kernel.ExprId{s.Int(-1), z})
	if err != nil {
		return kernel.Invalid, false, err
	}
	oneMinusZ, err := s.Add([]kernel.ExprId{s.Int(1), negZ})
	if err != nil {
		return kernel.Invalid, false, err
	}
	invOneMinusZ, err := s.Pow(oneMinusZ, s.Int(-1), nil)
	if err != nil {
		return kernel.Invalid, false, err
	}
	ratio, err := s.Mul([]kernel.ExprId{onePlusZ, invOneMinusZ})
	if err != nil {
		return kernel.Invalid, false, err
	}
	lnRatio := s.Func(string(kernel.FnLn), []kernel.ExprId{ratio})
	half, err := s.Rat(1, 2)
	if err != nil {
		return kernel.Invalid, false, err
	}
	artanh, err := s.Mul([]kernel.ExprId{half, lnRatio})
	if err != nil {
		return kernel.Invalid, false, err
	}
	coef, err := s.Mul([]kernel.ExprId{s.Int(2), invSqrt})
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Mul([]kernel.ExprId{coef, artanh})
	return r, err == nil, err
}
