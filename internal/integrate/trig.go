package integrate

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/poly"
	"symmetrica/internal/rational"
)

// integrateTrigPowerProduct matches sin^m(var)*cos^n(var) with at least
// one of m, n an odd non-negative integer, or the sin^2*cos^2 even-even
// case via half-angle reduction (spec.md §4.7 item 10).
func integrateTrigPowerProduct(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	m, n, x, ok := matchSinCosPowers(s, id, varName)
	if !ok || (m == 0 && n == 0) {
		return kernel.Invalid, false, nil
	}
	if m%2 == 1 {
		return trigSubstitution(s, x, (m-1)/2, n, true)
	}
	if n%2 == 1 {
		return trigSubstitution(s, x, (n-1)/2, m, false)
	}
	if m == 2 && n == 2 {
		return integrateSinSqCosSq(s, x)
	}
	return kernel.Invalid, false, nil
}

// decomposeTrigFactor recognizes sin(arg), cos(arg), or their integer
// powers, returning the function name, argument, and exponent.
func decomposeTrigFactor(s *kernel.Store, id kernel.ExprId) (name string, arg kernel.ExprId, power int, ok bool) {
	switch s.Op(id) {
	case kernel.OpFunction:
		fname := s.FuncName(id)
		if fname != "sin" && fname != "cos" {
			return "", kernel.Invalid, 0, false
		}
		args := s.Children(id)
		if len(args) != 1 {
			return "", kernel.Invalid, 0, false
		}
		return fname, args[0], 1, true
	case kernel.OpPow:
		parts := s.Children(id)
		base, exp := parts[0], parts[1]
		k, isInt := s.AsInteger(exp)
		if !isInt || k < 0 || s.Op(base) != kernel.OpFunction {
			return "", kernel.Invalid, 0, false
		}
		fname := s.FuncName(base)
		if fname != "sin" && fname != "cos" {
			return "", kernel.Invalid, 0, false
		}
		args := s.Children(base)
		if len(args) != 1 {
			return "", kernel.Invalid, 0, false
		}
		return fname, args[0], int(k), true
	default:
		return "", kernel.Invalid, 0, false
	}
}

// matchSinCosPowers matches id as sin(var)^m * cos(var)^n (in any factor
// order, m or n possibly zero), with a single shared argument equal to
// the bare variable symbol.
func matchSinCosPowers(s *kernel.Store, id kernel.ExprId, varName string) (m, n int, arg kernel.ExprId, ok bool) {
	var factors []kernel.ExprId
	if s.Op(id) == kernel.OpMul {
		factors = s.Children(id)
	} else {
		factors = []kernel.ExprId{id}
	}

	sinPow, cosPow := 0, 0
	commonArg := kernel.Invalid
	for _, f := range factors {
		fname, farg, power, matched := decomposeTrigFactor(s, f)
		if !matched {
			return 0, 0, kernel.Invalid, false
		}
		if commonArg == kernel.Invalid {
			commonArg = farg
		} else if commonArg != farg {
			return 0, 0, kernel.Invalid, false
		}
		switch fname {
		case "sin":
			sinPow += power
		case "cos":
			cosPow += power
		}
	}
	if commonArg == kernel.Invalid || !s.IsSymbol(commonArg, varName) {
		return 0, 0, kernel.Invalid, false
	}
	return sinPow, cosPow, commonArg, true
}

// trigSubstitution integrates (1-u^2)^k * u^p du, where u = cos(x) when
// sinIsOdd (contributing the sign-flipping du = -sin(x)dx) or u = sin(x)
// otherwise (contributing du = cos(x)dx).
func trigSubstitution(s *kernel.Store, x kernel.ExprId, k, p int, sinIsOdd bool) (kernel.ExprId, bool, error) {
	oneMinusUSq := poly.FromCoeffs([]rational.Q{rational.One, rational.Zero, rational.Neg(rational.One)})
	base := poly.FromCoeffs([]rational.Q{rational.One})
	for i := 0; i < k; i++ {
		var err error
		base, err = poly.Mul(base, oneMinusUSq)
		if err != nil {
			return kernel.Invalid, false, err
		}
	}
	monomial := make([]rational.Q, p+1)
	for i := range monomial {
		monomial[i] = rational.Zero
	}
	monomial[p] = rational.One
	integrand, err := poly.Mul(base, poly.FromCoeffs(monomial))
	if err != nil {
		return kernel.Invalid, false, err
	}

	antideriv := make([]rational.Q, len(integrand.Coeffs)+1)
	for i, c := range integrand.Coeffs {
		if rational.IsZero(c) {
			continue
		}
		newDeg := i + 1
		v, err := rational.Div(c, rational.OfInt(int64(newDeg)))
		if err != nil {
			return kernel.Invalid, false, err
		}
		antideriv[newDeg] = v
	}
	resultPoly := poly.FromCoeffs(antideriv)

	var substVar kernel.ExprId
	if sinIsOdd {
		// du = -sin(x)dx: fold the sign into the coefficients directly so
		// the result is a flat sum rather than -1 * (sum), which the
		// simplifier does not distribute.
		resultPoly = poly.Neg(resultPoly)
		substVar = s.Func("cos", []kernel.ExprId{x})
	} else {
		substVar = s.Func("sin", []kernel.ExprId{x})
	}
	return evalPolyAtExprResult(s, resultPoly, substVar)
}

func evalPolyAtExprResult(s *kernel.Store, p poly.Polynomial, at kernel.ExprId) (kernel.ExprId, bool, error) {
	r, err := evalPolyAtExpr(s, p, at)
	return r, err == nil, err
}

// evalPolyAtExpr builds the kernel expression for p(at).
func evalPolyAtExpr(s *kernel.Store, p poly.Polynomial, at kernel.ExprId) (kernel.ExprId, error) {
	terms := make([]kernel.ExprId, 0, len(p.Coeffs))
	for i, c := range p.Coeffs {
		if rational.IsZero(c) {
			continue
		}
		coefExpr, err := s.Rat(rational.Numer(c), rational.Denom(c))
		if err != nil {
			return kernel.Invalid, err
		}
		if i == 0 {
			terms = append(terms, coefExpr)
			continue
		}
		powered, err := s.Pow(at, s.Int(int64(i)), nil)
		if err != nil {
			return kernel.Invalid, err
		}
		if rational.IsOne(c) {
			terms = append(terms, powered)
			continue
		}
		t, err := s.Mul([]kernel.ExprId{coefExpr, powered})
		if err != nil {
			return kernel.Invalid, err
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return s.Int(0), nil
	}
	return s.Add(terms)
}

// integrateSinSqCosSq integrates sin^2(x)*cos^2(x) = 1/8 - (1/8)cos(4x)
// via the half-angle product expansion, giving x/8 - sin(4x)/32.
func integrateSinSqCosSq(s *kernel.Store, x kernel.ExprId) (kernel.ExprId, bool, error) {
	eighth, err := s.Rat(1, 8)
	if err != nil {
		return kernel.Invalid, false, err
	}
	term1, err := s.Mul([]kernel.ExprId{eighth, x})
	if err != nil {
		return kernel.Invalid, false, err
	}
	fourX, err := s.Mul([]kernel.ExprId{s.Int(4), x})
	if err != nil {
		return kernel.Invalid, false, err
	}
	sin4x := s.Func("sin", []kernel.ExprId{fourX})
	negThirtySecond, err := s.Rat(-1, 32)
	if err != nil {
		return kernel.Invalid, false, err
	}
	term2, err := s.Mul([]kernel.ExprId{negThirtySecond, sin4x})
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Add([]kernel.ExprId{term1, term2})
	return r, err == nil, err
}
