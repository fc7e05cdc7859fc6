package integrate

import (
	"symmetrica/internal/diff"
	"symmetrica/internal/kernel"
)

// liateRank orders candidate "u" factors for integration by parts:
// Log, Inverse-trig, Algebraic, Trig, Exponential (spec.md §4.7 item 9).
// Lower rank is preferred as u.
func liateRank(s *kernel.Store, id kernel.ExprId) int {
	if s.Op(id) == kernel.OpFunction {
		switch kernel.KnownFunction(s.FuncName(id)) {
		case kernel.FnLn:
			return 0
		case kernel.FnAtan, kernel.FnAsin:
			return 1
		case kernel.FnSin, kernel.FnCos, kernel.FnTan, kernel.FnSinh, kernel.FnCosh, kernel.FnTanh:
			return 3
		case kernel.FnExp:
			return 4
		}
	}
	return 2 // algebraic: symbols, powers, polynomials
}

// integrateByParts splits a Mul of two factors into u (lowest LIATE rank)
// and dv (the rest), applies integration by parts once, and recurses on
// the resulting integral with a bumped depth guard.
func integrateByParts(s *kernel.Store, id kernel.ExprId, varName string, depth int) (kernel.ExprId, bool, error) {
	if s.Op(id) != kernel.OpMul {
		return kernel.Invalid, false, nil
	}
	children := s.Children(id)
	if len(children) < 2 {
		return kernel.Invalid, false, nil
	}

	bestIdx := 0
	bestRank := liateRank(s, children[0])
	for i := 1; i < len(children); i++ {
		r := liateRank(s, children[i])
		if r < bestRank {
			bestRank = r
			bestIdx = i
		}
	}
	u := children[bestIdx]
	rest := make([]kernel.ExprId, 0, len(children)-1)
	for i, c := range children {
		if i != bestIdx {
			rest = append(rest, c)
		}
	}
	dv, err := s.Mul(rest)
	if err != nil {
		return kernel.Invalid, false, err
	}

	v, ok, err := integrateMemo(s, dv, varName, depth+1)
	if err != nil || !ok {
		return kernel.Invalid, false, err
	}
	du, err := diff.Diff(s, u, varName)
	if err != nil {
		return kernel.Invalid, false, err
	}
	uv, err := s.Mul([]kernel.ExprId{u, v})
	if err != nil {
		return kernel.Invalid, false, err
	}
	vdu, err := s.Mul([]kernel.ExprId{v, du})
	if err != nil {
		return kernel.Invalid, false, err
	}
	integralVdu, ok, err := integrateMemo(s, vdu, varName, depth+1)
	if err != nil || !ok {
		return kernel.Invalid, false, err
	}
	negIntegral, err := s.Mul([]kernel.ExprId{s.Int(-1), integralVdu})
	if err != nil {
		return kernel.Invalid, false, err
	}
	r, err := s.Add([]kernel.ExprId{uv, negIntegral})
	return r, err == nil, err
}
