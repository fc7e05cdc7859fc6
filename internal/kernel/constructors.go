package kernel

import (
	"symmetrica/internal/errkinds"
	"symmetrica/internal/rational"
)

// Assumptions is the minimal read-only side-input the canonical Pow
// constructor needs to decide the opt-in (a^b)^c -> a^(b*c) collapse
// (spec.md §4.2/§9): true only when the context can assert the queried
// expression Positive. internal/assume.Context implements this; kernel
// itself never imports assume, to keep the dependency direction acyclic
// (assume depends on kernel, not the reverse).
type Assumptions interface {
	IsPositive(s *Store, id ExprId) bool
}

// Sym creates or looks up a Symbol node.
func (s *Store) Sym(name string) ExprId {
	return s.intern(OpSymbol, 0, rational.Zero, name, nil)
}

// Int creates or looks up an Integer literal.
func (s *Store) Int(n int64) ExprId {
	return s.intern(OpInteger, n, rational.Zero, "", nil)
}

// Rat creates or looks up a numeric literal for n/d, folding to Integer
// when the normalized denominator is 1. Fails with errkinds.DomainError
// if d == 0.
func (s *Store) Rat(n, d int64) (ExprId, error) {
	q, err := rational.Make(n, d)
	if err != nil {
		return Invalid, err
	}
	return s.ratLiteral(q), nil
}

// ratLiteral interns an already-normalized Q, folding integers.
func (s *Store) ratLiteral(q rational.Q) ExprId {
	if rational.IsInteger(q) {
		return s.Int(rational.Numer(q))
	}
	return s.intern(OpRational, 0, q, "", nil)
}

// Func creates or looks up a Function application. No identity rewriting
// happens here (that is internal/simplify's job); this is interning only.
func (s *Store) Func(name string, args []ExprId) ExprId {
	cp := append([]ExprId(nil), args...)
	return s.intern(OpFunction, 0, rational.Zero, name, cp)
}

// AsInteger reports whether id is an Integer literal and returns its value.
func (s *Store) AsInteger(id ExprId) (int64, bool) {
	n := s.Node(id)
	if n.Op == OpInteger {
		return n.IntVal, true
	}
	return 0, false
}

// AsRational reports whether id is a numeric literal (Integer or
// Rational) and returns its value as Q.
func (s *Store) AsRational(id ExprId) (rational.Q, bool) {
	n := s.Node(id)
	switch n.Op {
	case OpInteger:
		return rational.OfInt(n.IntVal), true
	case OpRational:
		return n.RatVal, true
	default:
		return rational.Q{}, false
	}
}

func (s *Store) isNumeric(id ExprId) bool {
	op := s.Op(id)
	return op == OpInteger || op == OpRational
}

// --- Add -------------------------------------------------------------

// Add builds the canonical sum of children: flattens nested Adds, folds
// numeric terms into one, collects like terms (spec.md §4.2's like-term
// rule), sorts by canonical order, and collapses trivial arities.
func (s *Store) Add(children []ExprId) (ExprId, error) {
	flat := make([]ExprId, 0, len(children))
	for _, c := range children {
		if s.Op(c) == OpAdd {
			flat = append(flat, s.Children(c)...)
		} else {
			flat = append(flat, c)
		}
	}

	numeric := rational.Zero
	type group struct {
		rest ExprId
		coef rational.Q
	}
	order := make([]ExprId, 0, len(flat))
	groups := make(map[ExprId]*group)

	for _, c := range flat {
		if q, ok := s.AsRational(c); ok {
			var err error
			numeric, err = rational.Add(numeric, q)
			if err != nil {
				return Invalid, err
			}
			continue
		}
		coef, rest := s.splitCoefficient(c)
		if g, ok := groups[rest]; ok {
			sum, err := rational.Add(g.coef, coef)
			if err != nil {
				return Invalid, err
			}
			g.coef = sum
		} else {
			g := &group{rest: rest, coef: coef}
			groups[rest] = g
			order = append(order, rest)
		}
	}

	terms := make([]ExprId, 0, len(order)+1)
	for _, rest := range order {
		g := groups[rest]
		if rational.IsZero(g.coef) {
			continue
		}
		if rational.IsOne(g.coef) {
			terms = append(terms, rest)
			continue
		}
		coefId := s.ratLiteral(g.coef)
		term, err := s.Mul([]ExprId{coefId, rest})
		if err != nil {
			return Invalid, err
		}
		terms = append(terms, term)
	}
	if !rational.IsZero(numeric) {
		terms = append(terms, s.ratLiteral(numeric))
	}

	switch len(terms) {
	case 0:
		return s.Int(0), nil
	case 1:
		return terms[0], nil
	default:
		sortByCanonicalOrder(s, terms)
		return s.intern(OpAdd, 0, rational.Zero, "", terms), nil
	}
}

// splitCoefficient splits id into (coefficient, rest) as defined by the
// like-term rule: rest is the product of all non-numeric factors, coef is
// the numeric factor of a Mul (or 1 if id has none / is not a Mul).
func (s *Store) splitCoefficient(id ExprId) (rational.Q, ExprId) {
	if s.Op(id) != OpMul {
		return rational.One, id
	}
	children := s.Children(id)
	var numeric *rational.Q
	symbolic := make([]ExprId, 0, len(children))
	for _, c := range children {
		if q, ok := s.AsRational(c); ok {
			v := q
			numeric = &v
			continue
		}
		symbolic = append(symbolic, c)
	}
	coef := rational.One
	if numeric != nil {
		coef = *numeric
	}
	var rest ExprId
	switch len(symbolic) {
	case 0:
		// Mul was pure numeric; should not occur since pure-numeric Muls
		// fold to a literal, but degrade gracefully.
		rest = s.Int(1)
	case 1:
		rest = symbolic[0]
	default:
		// symbolic factors are already canonical (no further numeric
		// factor among them), so re-building a Mul of them is a pure
		// re-intern with no folding surprises.
		id2, err := s.Mul(symbolic)
		if err != nil {
			// unreachable: symbolic factors alone never error (no
			// literal-zero base, no literal-zero exponent merge)
			rest = id
		} else {
			rest = id2
		}
	}
	return coef, rest
}

// --- Mul -------------------------------------------------------------

// Mul builds the canonical product of children: flattens nested Muls,
// folds numeric factors (zero short-circuits the whole product), merges
// equal-base powers, sorts by canonical order, and collapses trivial
// arities.
func (s *Store) Mul(children []ExprId) (ExprId, error) {
	flat := make([]ExprId, 0, len(children))
	for _, c := range children {
		if s.Op(c) == OpMul {
			flat = append(flat, s.Children(c)...)
		} else {
			flat = append(flat, c)
		}
	}

	coef := rational.One
	symbolic := make([]ExprId, 0, len(flat))
	for _, c := range flat {
		if q, ok := s.AsRational(c); ok {
			var err error
			coef, err = rational.Mul(coef, q)
			if err != nil {
				return Invalid, err
			}
			continue
		}
		symbolic = append(symbolic, c)
	}
	if rational.IsZero(coef) {
		return s.Int(0), nil
	}

	type group struct {
		base ExprId
		exps []ExprId
	}
	order := make([]ExprId, 0, len(symbolic))
	groups := make(map[ExprId]*group)
	for _, c := range symbolic {
		base, exp := c, ExprId(-1)
		if s.Op(c) == OpPow {
			ch := s.Children(c)
			base, exp = ch[0], ch[1]
		}
		if exp == ExprId(-1) {
			exp = s.Int(1)
		}
		if g, ok := groups[base]; ok {
			g.exps = append(g.exps, exp)
		} else {
			groups[base] = &group{base: base, exps: []ExprId{exp}}
			order = append(order, base)
		}
	}

	factors := make([]ExprId, 0, len(order)+1)
	for _, base := range order {
		g := groups[base]
		var expSum ExprId
		if len(g.exps) == 1 {
			expSum = g.exps[0]
		} else {
			var err error
			expSum, err = s.Add(g.exps)
			if err != nil {
				return Invalid, err
			}
		}
		powed, err := s.Pow(base, expSum, nil)
		if err != nil {
			return Invalid, err
		}
		if n, ok := s.AsInteger(powed); ok && n == 1 {
			continue
		}
		factors = append(factors, powed)
	}

	if !rational.IsOne(coef) {
		factors = append(factors, s.ratLiteral(coef))
	}

	switch len(factors) {
	case 0:
		return s.Int(1), nil
	case 1:
		return factors[0], nil
	default:
		sortByCanonicalOrder(s, factors)
		return s.intern(OpMul, 0, rational.Zero, "", factors), nil
	}
}

// --- Pow ---------------------------------------------------------------

// Pow builds the canonical power base^exp, applying the identities of
// spec.md §3 invariant 4. ctx may be nil, meaning no assumption context
// is available (the (a^b)^c -> a^(b*c) collapse then only fires when the
// inner exponent is an integer literal).
func (s *Store) Pow(base, exp ExprId, ctx Assumptions) (ExprId, error) {
	if q, ok := s.AsRational(base); ok {
		if rational.IsZero(q) {
			if k, ok := s.AsInteger(exp); ok {
				switch {
				case k == 0:
					return Invalid, errkinds.Wrap(errkinds.DomainError, "0^0 is undefined")
				case k > 0:
					return s.Int(0), nil
				default:
					return Invalid, errkinds.Wrap(errkinds.DomainError, "0 raised to a negative power is undefined")
				}
			}
			if eq, ok := s.AsRational(exp); ok {
				if rational.Sign(eq) > 0 {
					return s.Int(0), nil
				}
				return Invalid, errkinds.Wrap(errkinds.DomainError, "0 raised to a nonpositive power is undefined")
			}
			// Symbolic exponent of a literal-zero base: leave unevaluated.
			return s.intern(OpPow, 0, rational.Zero, "", []ExprId{base, exp}), nil
		}
		if rational.IsOne(q) {
			return s.Int(1), nil
		}
		if k, ok := s.AsInteger(exp); ok {
			v, err := rational.PowInt(q, k)
			if err != nil {
				return Invalid, err
			}
			return s.ratLiteral(v), nil
		}
		// Non-integer exponent of a rational base: the simplifier's
		// radical pass handles perfect-square/perfect-power folding;
		// the kernel leaves it unevaluated (spec.md §4.2).
	}

	if k, ok := s.AsInteger(exp); ok && k == 0 {
		return s.Int(1), nil
	}
	if k, ok := s.AsInteger(exp); ok && k == 1 {
		return base, nil
	}

	if s.Op(base) == OpPow {
		inner := s.Children(base)
		innerBase, innerExp := inner[0], inner[1]
		_, innerExpIsInt := s.AsInteger(innerExp)
		allowed := innerExpIsInt || (ctx != nil && ctx.IsPositive(s, innerBase))
		if allowed {
			newExp, err := s.Mul([]ExprId{innerExp, exp})
			if err != nil {
				return Invalid, err
			}
			return s.Pow(innerBase, newExp, ctx)
		}
	}

	return s.intern(OpPow, 0, rational.Zero, "", []ExprId{base, exp}), nil
}

// --- Piecewise ---------------------------------------------------------

// Piecewise builds a piecewise expression from (condition, value) pairs,
// preserving order. A pair whose condition is the literal falsehood
// Int(0) is dropped before it ever enters the store (spec.md §4.2); a
// condition that is any other literal (nonzero Integer) is treated as an
// unconditional truth, also short-circuiting the remaining pairs. When
// that unconditional pair is the first one kept, the result is its value.
func (s *Store) Piecewise(pairs [][2]ExprId) ExprId {
	flat := make([]ExprId, 0, len(pairs)*2)
	for _, p := range pairs {
		cond, val := p[0], p[1]
		if n, ok := s.AsInteger(cond); ok {
			if n == 0 {
				continue
			}
			if len(flat) == 0 {
				return val
			}
			flat = append(flat, cond, val)
			break
		}
		flat = append(flat, cond, val)
	}
	if len(flat) == 0 {
		return s.Int(0)
	}
	return s.intern(OpPiecewise, 0, rational.Zero, "", flat)
}

// PiecewisePairs returns the (condition, value) pairs of a Piecewise node.
func (s *Store) PiecewisePairs(id ExprId) [][2]ExprId {
	children := s.Children(id)
	pairs := make([][2]ExprId, 0, len(children)/2)
	for i := 0; i+1 < len(children); i += 2 {
		pairs = append(pairs, [2]ExprId{children[i], children[i+1]})
	}
	return pairs
}
