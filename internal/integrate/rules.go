package integrate

import (
	"symmetrica/internal/diff"
	"symmetrica/internal/kernel"
	"symmetrica/internal/rational"
)

// integratePowerRule matches var^k for any rational k != -1, returning
// var^(k+1)/(k+1); k == -1 returns ln(var).
func integratePowerRule(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	base, exp := children[0], children[1]
	if !s.IsSymbol(base, varName) || containsVar(s, exp, varName) {
		return kernel.Invalid, false, nil
	}
	k, ok := s.AsRational(exp)
	if !ok {
		return kernel.Invalid, false, nil
	}
	if rational.Cmp(k, rational.OfInt(-1)) == 0 {
		return s.Func(string(kernel.FnLn), []kernel.ExprId{base}), true, nil
	}
	kPlus1, err := rational.Add(k, rational.One)
	if err != nil {
		return kernel.Invalid, false, err
	}
	newExp, err := s.Rat(rational.Numer(kPlus1), rational.Denom(kPlus1))
	if err != nil {
		return kernel.Invalid, false, err
	}
	powered, err := s.Pow(base, newExp, nil)
	if err != nil {
		return kernel.Invalid, false, err
	}
	invK, err := rational.Inv(kPlus1)
	if err != nil {
		return kernel.Invalid, false, err
	}
	coef, err := s.Rat(rational.Numer(invK), rational.Denom(invK))
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Mul([]kernel.ExprId{coef, powered})
	return r, err == nil, err
}

// linearCoeffs matches id against a*var+b with constant a, b, returning
// ok=false for anything shaped otherwise (more than one var-bearing
// summand, nested nonlinear occurrences, and so on).
func linearCoeffs(s *kernel.Store, id kernel.ExprId, varName string) (a, b rational.Q, ok bool) {
	switch s.Op(id) {
	case kernel.OpSymbol:
		if s.IsSymbol(id, varName) {
			return rational.One, rational.Zero, true
		}
		return rational.Zero, rational.Zero, false
	case kernel.OpInteger, kernel.OpRational:
		q, _ := s.AsRational(id)
		return rational.Zero, q, true
	case kernel.OpMul:
		children := s.Children(id)
		coef := rational.One
		symPart := kernel.Invalid
		for _, c := range children {
			if q, isNum := s.AsRational(c); isNum {
				var err error
				coef, err = rational.Mul(coef, q)
				if err != nil {
					return rational.Zero, rational.Zero, false
				}
				continue
			}
			if symPart != kernel.Invalid {
				return rational.Zero, rational.Zero, false
			}
			symPart = c
		}
		if symPart == kernel.Invalid || !s.IsSymbol(symPart, varName) {
			return rational.Zero, rational.Zero, false
		}
		return coef, rational.Zero, true
	case kernel.OpAdd:
		children := s.Children(id)
		if len(children) != 2 {
			return rational.Zero, rational.Zero, false
		}
		a1, b1, ok1 := linearCoeffs(s, children[0], varName)
		a2, b2, ok2 := linearCoeffs(s, children[1], varName)
		if !ok1 || !ok2 {
			return rational.Zero, rational.Zero, false
		}
		if !rational.IsZero(a1) && !rational.IsZero(a2) {
			return rational.Zero, rational.Zero, false
		}
		aSum, err := rational.Add(a1, a2)
		if err != nil {
			return rational.Zero, rational.Zero, false
		}
		bSum, err := rational.Add(b1, b2)
		if err != nil {
			return rational.Zero, rational.Zero, false
		}
		return aSum, bSum, true
	default:
		return rational.Zero, rational.Zero, false
	}
}

// integrateLinearAffineFunc matches Func(name, a*var+b) for the functions
// with a known closed-form antiderivative on an affine argument (spec.md
// §4.7 item 5), returning the antiderivative divided by a.
func integrateLinearAffineFunc(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	name := s.FuncName(id)
	args := s.Children(id)
	if len(args) != 1 {
		return kernel.Invalid, false, nil
	}
	switch kernel.KnownFunction(name) {
	case kernel.FnSin, kernel.FnCos, kernel.FnExp, kernel.FnSinh, kernel.FnCosh:
	default:
		return kernel.Invalid, false, nil
	}
	a, _, ok := linearCoeffs(s, args[0], varName)
	if !ok || rational.IsZero(a) {
		return kernel.Invalid, false, nil
	}

	var antideriv kernel.ExprId
	var err error
	switch kernel.KnownFunction(name) {
	case kernel.FnSin:
		cos := s.Func(string(kernel.FnCos), args)
		antideriv, err = s.Mul([]kernel.ExprId{s.Int(-1), cos})
	case kernel.FnCos:
		antideriv = s.Func(string(kernel.FnSin), args)
	case kernel.FnExp:
		antideriv = s.Func(string(kernel.FnExp), args)
	case kernel.FnSinh:
		antideriv = s.Func(string(kernel.FnCosh), args)
	case kernel.FnCosh:
		antideriv = s.Func(string(kernel.FnSinh), args)
	}
	if err != nil {
		return kernel.Invalid, false, err
	}
	invA, err := rational.Inv(a)
	if err != nil {
		return kernel.Invalid, false, err
	}
	coef, err := s.Rat(rational.Numer(invA), rational.Denom(invA))
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Mul([]kernel.ExprId{coef, antideriv})
	return r, err == nil, err
}

// integrateLogDerivative matches expr = diff(u, var)/u by structural
// equality after simplification (spec.md §4.7 item 6).
func integrateLogDerivative(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	if s.Op(id) != kernel.OpMul {
		return kernel.Invalid, false, nil
	}
	children := s.Children(id)
	if len(children) != 2 {
		return kernel.Invalid, false, nil
	}
	for i := 0; i < 2; i++ {
		invFactor, numFactor := children[i], children[1-i]
		if s.Op(invFactor) != kernel.OpPow {
			continue
		}
		parts := s.Children(invFactor)
		u, exp := parts[0], parts[1]
		if k, isInt := s.AsInteger(exp); !isInt || k != -1 {
			continue
		}
		du, err := diff.Diff(s, u, varName)
		if err != nil {
			return kernel.Invalid, false, err
		}
		if du == numFactor {
			return s.Func(string(kernel.FnLn), []kernel.ExprId{u}), true, nil
		}
	}
	return kernel.Invalid, false, nil
}

// integrateStandaloneTranscendental matches the closed-form IBP-derived
// antiderivatives of ln(var), atan(var), asin(var) (spec.md §4.7 item 8).
func integrateStandaloneTranscendental(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	args := s.Children(id)
	if len(args) != 1 || !s.IsSymbol(args[0], varName) {
		return kernel.Invalid, false, nil
	}
	x := args[0]
	switch kernel.KnownFunction(s.FuncName(id)) {
	case kernel.FnLn:
		// x*ln(x) - x
		lnx := s.Func(string(kernel.FnLn), []kernel.ExprId{x})
		xlnx, err := s.Mul([]kernel.ExprId{x, lnx})
		if err != nil {
			return kernel.Invalid, false, err
		}
		negX, err := s.Mul([]kernel.ExprId{s.Int(-1), x})
		if err != nil {
			return kernel.Invalid, false, err
		}
		r, err := s.Add([]kernel.ExprId{xlnx, negX})
		return r, err == nil, err
	case kernel.FnAtan:
		// x*atan(x) - (1/2)*ln(1+x^2)
		atanx := s.Func(string(kernel.FnAtan), []kernel.ExprId{x})
		xatanx, err := s.Mul([]kernel.ExprId{x, atanx})
		if err != nil {
			return kernel.Invalid, false, err
		}
		xSq, err := s.Pow(x, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		inner, err := s.Add([]kernel.ExprId{s.Int(1), xSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		lnInner := s.Func(string(kernel.FnLn), []kernel.ExprId{inner})
		half, err := s.Rat(1, 2)
		if err != nil {
			return kernel.Invalid, false, err
		}
		halfLn, err := s.Mul([]kernel.ExprId{half, lnInner})
		if err != nil {
			return kernel.Invalid, false, err
		}
		negHalfLn, err := s.Mul([]kernel.ExprId{s.Int(-1), halfLn})
		if err != nil {
			return kernel.Invalid, false, err
		}
		r, err := s.Add([]kernel.ExprId{xatanx, negHalfLn})
		return r, err == nil, err
	case kernel.FnAsin:
		// x*asin(x) + sqrt(1-x^2)
		asinx := s.Func(string(kernel.FnAsin), []kernel.ExprId{x})
		xasinx, err := s.Mul([]kernel.ExprId{x, asinx})
		if err != nil {
			return kernel.Invalid, false, err
		}
		xSq, err := s.Pow(x, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		negXSq, err := s.Mul([]kernel.ExprId{s.Int(-1), xSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		inner, err := s.Add([]kernel.ExprId{s.Int(1), negXSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		half, err := s.Rat(1, 2)
		if err != nil {
			return kernel.Invalid, false, err
		}
		root, err := s.Pow(inner, half, nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		r, err := s.Add([]kernel.ExprId{xasinx, root})
		return r, err == nil, err
	default:
		return kernel.Invalid, false, nil
	}
}
