// Package integrate implements the pattern-directed antiderivative engine
// of spec.md §4.7: a fixed-order cascade of pattern matchers, the first
// match wins, memoized per (ExprId, variable).
package integrate

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/simplify"
)

// ibpDepthLimit bounds the recursion depth of integration by parts
// (spec.md §4.7 item 9) to prevent non-termination on patterns that never
// bottom out in a rule 1-8 match.
const ibpDepthLimit = 2

// Integrate attempts to find an antiderivative of id with respect to
// varName. ok is false, with a nil error, when no rule in the cascade
// matches: "no antiderivative found" is a negative result, not a failure
// (spec.md §7).
func Integrate(s *kernel.Store, id kernel.ExprId, varName string) (kernel.ExprId, bool, error) {
	return integrateMemo(s, id, varName, 0)
}

func integrateMemo(s *kernel.Store, id kernel.ExprId, varName string, depth int) (kernel.ExprId, bool, error) {
	if cached, ok := s.IntegrateMemoGet(id, varName); ok {
		if cached == nil {
			return kernel.Invalid, false, nil
		}
		return *cached, true, nil
	}
	result, ok, err := integrateCascade(s, id, varName, depth)
	if err != nil {
		return kernel.Invalid, false, err
	}
	if !ok {
		s.IntegrateMemoPut(id, varName, nil)
		return kernel.Invalid, false, nil
	}
	simplified, err := simplify.Simplify(s, result)
	if err != nil {
		return kernel.Invalid, false, err
	}
	s.IntegrateMemoPut(id, varName, &simplified)
	return simplified, true, nil
}

// integrateCascade tries each rule of spec.md §4.7 in order, returning on
// the first success.
func integrateCascade(s *kernel.Store, id kernel.ExprId, varName string, depth int) (kernel.ExprId, bool, error) {
	if !containsVar(s, id, varName) {
		x := s.Sym(varName)
		r, err := s.Mul([]kernel.ExprId{id, x})
		return r, err == nil, err
	}
	if s.IsSymbol(id, varName) {
		half, err := s.Rat(1, 2)
		if err != nil {
			return kernel.Invalid, false, err
		}
		xSq, err := s.Pow(id, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		r, err := s.Mul([]kernel.ExprId{half, xSq})
		return r, err == nil, err
	}

	switch s.Op(id) {
	case kernel.OpAdd:
		return integrateAdd(s, id, varName, depth)
	case kernel.OpMul:
		if r, ok, err := integrateConstantMul(s, id, varName, depth); ok || err != nil {
			return r, ok, err
		}
	case kernel.OpPow:
		if r, ok, err := integratePowerRule(s, id, varName); ok || err != nil {
			return r, ok, err
		}
	case kernel.OpFunction:
		if r, ok, err := integrateLinearAffineFunc(s, id, varName); ok || err != nil {
			return r, ok, err
		}
	}

	if r, ok, err := integrateLogDerivative(s, id, varName); ok || err != nil {
		return r, ok, err
	}

	if r, ok, err := integrateRationalFunction(s, id, varName); ok || err != nil {
		return r, ok, err
	}

	if s.Op(id) == kernel.OpFunction {
		if r, ok, err := integrateStandaloneTranscendental(s, id, varName); ok || err != nil {
			return r, ok, err
		}
	}

	if depth < ibpDepthLimit {
		if r, ok, err := integrateByParts(s, id, varName, depth); ok || err != nil {
			return r, ok, err
		}
	}

	if r, ok, err := integrateTrigPowerProduct(s, id, varName); ok || err != nil {
		return r, ok, err
	}

	if r, ok, err := integrateWeierstrass(s, id, varName); ok || err != nil {
		return r, ok, err
	}

	return kernel.Invalid, false, nil
}

// containsVar reports whether id has varName as a free symbol anywhere in
// its subtree.
func containsVar(s *kernel.Store, id kernel.ExprId, varName string) bool {
	switch s.Op(id) {
	case kernel.OpSymbol:
		return s.IsSymbol(id, varName)
	case kernel.OpInteger, kernel.OpRational:
		return false
	default:
		for _, c := range s.Children(id) {
			if containsVar(s, c, varName) {
				return true
			}
		}
		return false
	}
}

func integrateAdd(s *kernel.Store, id kernel.ExprId, varName string, depth int) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	terms := make([]kernel.ExprId, 0, len(children))
	for _, c := range children {
		r, ok, err := integrateMemo(s, c, varName, depth)
		if err != nil {
			return kernel.Invalid, false, err
		}
		if !ok {
			return kernel.Invalid, false, nil
		}
		terms = append(terms, r)
	}
	r, err := s.Add(terms)
	return r, err == nil, err
}

func integrateConstantMul(s *kernel.Store, id kernel.ExprId, varName string, depth int) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	var constFactors, varFactors []kernel.ExprId
	for _, c := range children {
		if containsVar(s, c, varName) {
			varFactors = append(varFactors, c)
		} else {
			constFactors = append(constFactors, c)
		}
	}
	if len(constFactors) == 0 {
		return kernel.Invalid, false, nil
	}
	rest, err := s.Mul(varFactors)
	if err != nil {
		return kernel.Invalid, false, err
	}
	integrated, ok, err := integrateMemo(s, rest, varName, depth)
	if err != nil || !ok {
		return kernel.Invalid, ok, err
	}
	factors := append(append([]kernel.ExprId{}, constFactors...), integrated)
	r, err := s.Mul(factors)
	return r, err == nil, err
}
