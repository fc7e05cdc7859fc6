package simplify

import "symmetrica/internal/kernel"

// rebuild re-applies the canonical constructor matching id's operation to
// a (possibly new) children slice, which is how constant folding,
// like-term collection, and power merging re-fire as children are
// simplified underneath a parent (spec.md §4.5 item 2, "canonical
// rebuild"). Leaf ops (Integer, Rational, Symbol) have no children and
// never reach here.
func rebuild(s *kernel.Store, id kernel.ExprId, children []kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, error) {
	switch s.Op(id) {
	case kernel.OpAdd:
		return s.Add(children)
	case kernel.OpMul:
		return s.Mul(children)
	case kernel.OpPow:
		return s.Pow(children[0], children[1], ctx)
	case kernel.OpFunction:
		return s.Func(s.FuncName(id), children), nil
	case kernel.OpPiecewise:
		pairs := make([][2]kernel.ExprId, 0, len(children)/2)
		for i := 0; i+1 < len(children); i += 2 {
			pairs = append(pairs, [2]kernel.ExprId{children[i], children[i+1]})
		}
		return s.Piecewise(pairs), nil
	default:
		return id, nil
	}
}
