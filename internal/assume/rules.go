package assume

import "symmetrica/internal/kernel"

// Sign is the three-valued sign classification compound queries resolve
// expressions to.
type Sign int

const (
	SignUnknown Sign = iota
	SignPositive
	SignNegative
	SignZero
)

// Positivity answers spec.md §4.3's compound "positivity(expr)" query:
// True, False, or Unknown that the expression is strictly positive under
// ctx. ctx may be nil (equivalent to an empty context).
func Positivity(ctx *Context, s *kernel.Store, id kernel.ExprId) Truth {
	return signOf(ctx, s, id).truth(SignPositive)
}

// Query propagates queries over compound expressions the same way
// Positivity does, generalized to any of the eight properties, by
// delegating to the symbol-level Context.Query for leaves and applying
// the sign algebra for Add/Mul/Pow (Positive, Negative, Nonnegative,
// Nonpositive, Nonzero). The remaining properties (Real, Integer,
// Rational) are resolved only for symbols and numeric literals.
func Query(ctx *Context, s *kernel.Store, id kernel.ExprId, p Property) Truth {
	if s.Op(id) == kernel.OpSymbol {
		return queryLeafOrUnknown(ctx, s, id, p)
	}
	switch p {
	case Positive:
		return signOf(ctx, s, id).truth(SignPositive)
	case Negative:
		return signOf(ctx, s, id).truth(SignNegative)
	case Nonnegative:
		sg := signOf(ctx, s, id)
		if sg == sgKnown(SignPositive) || sg == sgKnown(SignZero) {
			return True
		}
		if sg == sgKnown(SignNegative) {
			return False
		}
		if s.Op(id) == kernel.OpPow {
			children := s.Children(id)
			base, exp := children[0], children[1]
			if k, ok := s.AsInteger(exp); ok && k%2 == 0 && k != 0 {
				if Query(ctx, s, base, Real) == True {
					return True
				}
			}
		}
		return Unknown
	case Nonpositive:
		sg := signOf(ctx, s, id)
		if sg == sgKnown(SignNegative) || sg == sgKnown(SignZero) {
			return True
		}
		if sg == sgKnown(SignPositive) {
			return False
		}
		return Unknown
	case Nonzero:
		sg := signOf(ctx, s, id)
		if sg == sgKnown(SignPositive) || sg == sgKnown(SignNegative) {
			return True
		}
		if sg == sgKnown(SignZero) {
			return False
		}
		return Unknown
	default:
		return queryLeafOrUnknown(ctx, s, id, p)
	}
}

// signResult wraps Sign with a validity flag, distinguishing "resolved to
// SignUnknown" from a plain Sign zero value.
type signResult struct {
	sign  Sign
	known bool
}

func sgKnown(sg Sign) signResult { return signResult{sign: sg, known: true} }
func sgUnknown() signResult      { return signResult{sign: SignUnknown, known: false} }

func (r signResult) truth(want Sign) Truth {
	if !r.known {
		return Unknown
	}
	if r.sign == want {
		return True
	}
	return False
}

// signOf computes the compound sign of an expression per spec.md §4.3's
// tables for Mul, Pow, and Add.
func signOf(ctx *Context, s *kernel.Store, id kernel.ExprId) signResult {
	if q, ok := s.AsRational(id); ok {
		switch {
		case q.Numer > 0:
			return sgKnown(SignPositive)
		case q.Numer < 0:
			return sgKnown(SignNegative)
		default:
			return sgKnown(SignZero)
		}
	}

	switch s.Op(id) {
	case kernel.OpSymbol:
		if ctx == nil {
			return sgUnknown()
		}
		name := s.SymName(id)
		if ctx.Query(name, Positive) == True {
			return sgKnown(SignPositive)
		}
		if ctx.Query(name, Negative) == True {
			return sgKnown(SignNegative)
		}
		return sgUnknown()

	case kernel.OpMul:
		sign := SignPositive
		for _, c := range s.Children(id) {
			cs := signOf(ctx, s, c)
			if !cs.known {
				return sgUnknown()
			}
			if cs.sign == SignZero {
				return sgKnown(SignZero)
			}
			if cs.sign == SignNegative {
				sign = flip(sign)
			}
		}
		return sgKnown(sign)

	case kernel.OpPow:
		children := s.Children(id)
		base := children[0]
		baseSign := signOf(ctx, s, base)
		if baseSign.known && baseSign.sign == SignPositive {
			return sgKnown(SignPositive)
		}
		// An even integer power of any Real base is Nonnegative but not
		// necessarily strictly Positive (it may be zero); see
		// Query(..., Nonnegative) for that weaker fact.
		return sgUnknown()

	case kernel.OpAdd:
		allPositive := true
		for _, c := range s.Children(id) {
			cs := signOf(ctx, s, c)
			if !(cs.known && cs.sign == SignPositive) {
				allPositive = false
				break
			}
		}
		if allPositive {
			return sgKnown(SignPositive)
		}
		return sgUnknown()

	default:
		return sgUnknown()
	}
}

func flip(sg Sign) Sign {
	if sg == SignPositive {
		return SignNegative
	}
	return SignPositive
}

// queryLeafOrUnknown answers any property for a symbol (straight from
// Context.Query) and the non-sign properties (Real, Integer, Rational) for
// numeric literals; compound expressions of these properties are not
// resolved, matching spec.md §4.3's explicit compound tables (Mul/Pow/Add)
// which only cover sign-related properties.
func queryLeafOrUnknown(ctx *Context, s *kernel.Store, id kernel.ExprId, p Property) Truth {
	if s.Op(id) == kernel.OpSymbol && ctx != nil {
		return ctx.Query(s.SymName(id), p)
	}
	if _, ok := s.AsRational(id); ok {
		switch p {
		case Real, Rational:
			return True
		case Integer:
			if n, ok := s.AsInteger(id); ok {
				_ = n
				return True
			}
			return False
		}
	}
	return Unknown
}
