package poly

import (
	"symmetrica/internal/errkinds"
	"symmetrica/internal/kernel"
	"symmetrica/internal/rational"
)

// FromExpr converts an expression kernel tree into a dense univariate
// Polynomial over the symbol named v, failing with errkinds.DomainError if
// the expression is not polynomial in v (any other free symbol, a
// non-integer power of v, a function application, or v appearing inside a
// denominator).
func FromExpr(s *kernel.Store, id kernel.ExprId, v string) (Polynomial, error) {
	switch s.Op(id) {
	case kernel.OpInteger, kernel.OpRational:
		q, _ := s.AsRational(id)
		return FromCoeffs([]rational.Q{q}), nil
	case kernel.OpSymbol:
		if s.IsSymbol(id, v) {
			return FromCoeffs([]rational.Q{rational.Zero, rational.One}), nil
		}
		return Polynomial{}, errkinds.Wrap(errkinds.DomainError, "free symbol %q is not the polynomial variable %q", s.SymName(id), v)
	case kernel.OpAdd:
		acc := Zero()
		for _, c := range s.Children(id) {
			term, err := FromExpr(s, c, v)
			if err != nil {
				return Polynomial{}, err
			}
			var err2 error
			acc, err2 = Add(acc, term)
			if err2 != nil {
				return Polynomial{}, err2
			}
		}
		return acc, nil
	case kernel.OpMul:
		acc := FromCoeffs([]rational.Q{rational.One})
		for _, c := range s.Children(id) {
			term, err := FromExpr(s, c, v)
			if err != nil {
				return Polynomial{}, err
			}
			var err2 error
			acc, err2 = Mul(acc, term)
			if err2 != nil {
				return Polynomial{}, err2
			}
		}
		return acc, nil
	case kernel.OpPow:
		children := s.Children(id)
		base, exp := children[0], children[1]
		k, ok := s.AsInteger(exp)
		if !ok || k < 0 {
			return Polynomial{}, errkinds.Wrap(errkinds.DomainError, "non-constant polynomial exponent")
		}
		baseP, err := FromExpr(s, base, v)
		if err != nil {
			return Polynomial{}, err
		}
		acc := FromCoeffs([]rational.Q{rational.One})
		for i := int64(0); i < k; i++ {
			acc, err = Mul(acc, baseP)
			if err != nil {
				return Polynomial{}, err
			}
		}
		return acc, nil
	default:
		return Polynomial{}, errkinds.Wrap(errkinds.DomainError, "expression is not polynomial in %q", v)
	}
}

// ToExpr rebuilds p as a kernel expression in the symbol named v, passing
// every intermediate Add/Mul/Pow through the store's canonical
// constructors so the result is already in canonical form.
func ToExpr(s *kernel.Store, p Polynomial, v string) (kernel.ExprId, error) {
	if p.IsZero() {
		return s.Int(0), nil
	}
	x := s.Sym(v)
	terms := make([]kernel.ExprId, 0, len(p.Coeffs))
	for i, c := range p.Coeffs {
		if rational.IsZero(c) {
			continue
		}
		coefId, err := s.Rat(rational.Numer(c), rational.Denom(c))
		if err != nil {
			// unreachable: c is a normalized Q with nonzero denominator
			return kernel.Invalid, err
		}
		switch i {
		case 0:
			terms = append(terms, coefId)
		case 1:
			if rational.IsOne(c) {
				terms = append(terms, x)
			} else {
				t, err := s.Mul([]kernel.ExprId{coefId, x})
				if err != nil {
					return kernel.Invalid, err
				}
				terms = append(terms, t)
			}
		default:
			xi, err := s.Pow(x, s.Int(int64(i)), nil)
			if err != nil {
				return kernel.Invalid, err
			}
			if rational.IsOne(c) {
				terms = append(terms, xi)
			} else {
				t, err := s.Mul([]kernel.ExprId{coefId, xi})
				if err != nil {
					return kernel.Invalid, err
				}
				terms = append(terms, t)
			}
		}
	}
	return s.Add(terms)
}
