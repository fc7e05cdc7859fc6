// Package diff implements structural differentiation over the expression
// kernel (spec.md §4.6): total rule coverage for every kernel operation,
// a known-function derivative table, and an opaque Derivative(name, arg,
// var) fallback for anything outside that table.
package diff

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/simplify"
)

// Diff computes d(expr)/d(varName), memoized per (ExprId, varName), with
// every result passed through the simplifier before being cached (spec.md
// §4.6: "All results pass through the simplifier before memoization").
func Diff(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, error) {
	if cached, ok := s.DiffMemoGet(id, varName); ok {
		return cached, nil
	}
	raw, err := diffStructural(s, id, varName)
	if err != nil {
		return kernel.Invalid, err
	}
	result, err := simplify.Simplify(s, raw)
	if err != nil {
		return kernel.Invalid, err
	}
	s.DiffMemoPut(id, varName, result)
	return result, nil
}

func diffStructural(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, error) {
	switch s.Op(id) {
	case kernel.OpInteger, kernel.OpRational:
		return s.Int(0), nil
	case kernel.OpSymbol:
		if s.IsSymbol(id, varName) {
			return s.Int(1), nil
		}
		return s.Int(0), nil
	case kernel.OpAdd:
		children := s.Children(id)
		terms := make([]kernel.ExprId, len(children))
		for i, c := range children {
			d, err := diffStructural(s, c, varName)
			if err != nil {
				return kernel.Invalid, err
			}
			terms[i] = d
		}
		return s.Add(terms)
	case kernel.OpMul:
		return diffProduct(s, id, varName)
	case kernel.OpPow:
		return diffPow(s, id, varName)
	case kernel.OpFunction:
		return diffFunction(s, id, varName)
	case kernel.OpPiecewise:
		pairs := s.PiecewisePairs(id)
		flat := make([][2]kernel.ExprId, len(pairs))
		for i, p := range pairs {
			dv, err := diffStructural(s, p[1], varName)
			if err != nil {
				return kernel.Invalid, err
			}
			flat[i] = [2]kernel.ExprId{p[0], dv}
		}
		return s.Piecewise(flat), nil
	default:
		return s.Int(0), nil
	}
}

// diffProduct applies the (expanded) product rule: for Mul[e1..en],
// sum over i of Mul[e1,...,diff(ei),...,en].
func diffProduct(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, error) {
	children := s.Children(id)
	terms := make([]kernel.ExprId, 0, len(children))
	for i := range children {
		factors := make([]kernel.ExprId, len(children))
		copy(factors, children)
		d, err := diffStructural(s, children[i], varName)
		if err != nil {
			return kernel.Invalid, err
		}
		factors[i] = d
		term, err := s.Mul(factors)
		if err != nil {
			return kernel.Invalid, err
		}
		terms = append(terms, term)
	}
	return s.Add(terms)
}

// diffPow applies the integer power rule k*u^(k-1)*u' when the exponent
// is an integer literal, else the general rule
// u^v * (v'*ln(u) + v*u'/u).
func diffPow(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, error) {
	children := s.Children(id)
	base, exp := children[0], children[1]
	du, err := diffStructural(s, base, varName)
	if err != nil {
		return kernel.Invalid, err
	}

	if k, ok := s.AsInteger(exp); ok {
		km1, err := s.Pow(base, s.Int(k-1), nil)
		if err != nil {
			return kernel.Invalid, err
		}
		return s.Mul([]kernel.ExprId{exp, km1, du})
	}

	dv, err := diffStructural(s, exp, varName)
	if err != nil {
		return kernel.Invalid, err
	}
	lnBase := s.Func("ln", []kernel.ExprId{base})
	term1, err := s.Mul([]kernel.ExprId{dv, lnBase})
	if err != nil {
		return kernel.Invalid, err
	}
	uInv, err := s.Pow(base, s.Int(-1), nil)
	if err != nil {
		return kernel.Invalid, err
	}
	term2, err := s.Mul([]kernel.ExprId{exp, du, uInv})
	if err != nil {
		return kernel.Invalid, err
	}
	inner, err := s.Add([]kernel.ExprId{term1, term2})
	if err != nil {
		return kernel.Invalid, err
	}
	return s.Mul([]kernel.ExprId{id, inner})
}

// diffFunction applies the chain rule: for a unary function in the known
// table, f(u)' = table[f](u) * u'. Multi-arg or unknown functions produce
// an opaque Derivative(name, arg, var) symbolic placeholder.
func diffFunction(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, error) {
	name := s.FuncName(id)
	args := s.Children(id)
	if len(args) != 1 || !kernel.IsKnownFunction(name) {
		return opaqueDerivative(s, name, args, varName), nil
	}
	arg := args[0]
	tableDeriv, known, err := derivative(s, kernel.KnownFunction(name), arg)
	if err != nil {
		return kernel.Invalid, err
	}
	if !known {
		return opaqueDerivative(s, name, args, varName), nil
	}
	du, err := diffStructural(s, arg, varName)
	if err != nil {
		return kernel.Invalid, err
	}
	return s.Mul([]kernel.ExprId{tableDeriv, du})
}

// opaqueDerivative builds Derivative(f(args...), args..., var) as an
// ordinary Function node, for functions outside the known derivative
// table; the unevaluated call f(args...) carries the function name.
func opaqueDerivative(s *kernel.Store, name string, args []kernel.ExprId, varName string) kernel.ExprId {
	wrapped := make([]kernel.ExprId, 0, len(args)+2)
	wrapped = append(wrapped, s.Func(name, args))
	wrapped = append(wrapped, args...)
	wrapped = append(wrapped, s.Sym(varName))
	return s.Func("Derivative", wrapped)
}
