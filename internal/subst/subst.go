// Package subst implements structural substitution (spec.md §4.9):
// rebuild the DAG bottom-up, replacing every occurrence of a named symbol
// with a value, through the store's canonical constructors so the result
// is automatically simplified to canonical form. Memoized per (ExprId,
// name, value ExprId).
package subst

import "symmetrica/internal/kernel"

// Substitute replaces every occurrence of the symbol named name in id
// with value, rebuilding bottom-up via canonical constructors.
func Substitute(s *kernel.Store, id kernel.ExprId, name string, value kernel.ExprId) (kernel.ExprId, error) {
	if cached, ok := s.SubstMemoGet(id, name, value); ok {
		return cached, nil
	}
	result, err := substitute(s, id, name, value)
	if err != nil {
		return kernel.Invalid, err
	}
	s.SubstMemoPut(id, name, value, result)
	return result, nil
}

func substitute(s *kernel.Store, id kernel.ExprId, name string, value kernel.ExprId) (kernel.ExprId, error) {
	switch s.Op(id) {
	case kernel.OpInteger, kernel.OpRational:
		return id, nil
	case kernel.OpSymbol:
		if s.IsSymbol(id, name) {
			return value, nil
		}
		return id, nil
	case kernel.OpAdd:
		children, err := substituteChildren(s, id, name, value)
		if err != nil {
			return kernel.Invalid, err
		}
		return s.Add(children)
	case kernel.OpMul:
		children, err := substituteChildren(s, id, name, value)
		if err != nil {
			return kernel.Invalid, err
		}
		return s.Mul(children)
	case kernel.OpPow:
		children := s.Children(id)
		base, err := Substitute(s, children[0], name, value)
		if err != nil {
			return kernel.Invalid, err
		}
		exp, err := Substitute(s, children[1], name, value)
		if err != nil {
			return kernel.Invalid, err
		}
		return s.Pow(base, exp, nil)
	case kernel.OpFunction:
		children, err := substituteChildren(s, id, name, value)
		if err != nil {
			return kernel.Invalid, err
		}
		return s.Func(s.FuncName(id), children), nil
	case kernel.OpPiecewise:
		oldPairs := s.PiecewisePairs(id)
		pairs := make([][2]kernel.ExprId, 0, len(oldPairs))
		for _, p := range oldPairs {
			cond, err := Substitute(s, p[0], name, value)
			if err != nil {
				return kernel.Invalid, err
			}
			val, err := Substitute(s, p[1], name, value)
			if err != nil {
				return kernel.Invalid, err
			}
			pairs = append(pairs, [2]kernel.ExprId{cond, val})
		}
		return s.Piecewise(pairs), nil
	default:
		return id, nil
	}
}

func substituteChildren(s *kernel.Store, id kernel.ExprId, name string, value kernel.ExprId) ([]kernel.ExprId, error) {
	children := s.Children(id)
	out := make([]kernel.ExprId, len(children))
	for i, c := range children {
		r, err := Substitute(s, c, name, value)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
