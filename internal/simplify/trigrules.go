package simplify

import (
	"symmetrica/internal/kernel"
	"symmetrica/internal/rational"
)

// TrigRules applies the always-sound trigonometric identities of
// spec.md §4.5 item 5: the Pythagorean identity (even when embedded among
// other summands), product-to-sum (Werner) reduction, half-angle
// reduction, and the atan/tan inverse-pair cancellation. Sum-to-product
// (the inverse of Werner) is deliberately not implemented: spec.md flags
// it as needing a digest-weighted direction choice to avoid oscillating
// with product-to-sum forever, and declining it entirely is a strictly
// simpler way to guarantee the same termination property (documented as
// an open-question decision in DESIGN.md).
type TrigRules struct{}

func (TrigRules) Name() string { return "Trigonometric Identities" }
func (TrigRules) Description() string {
	return "Pythagorean identity, product-to-sum, half-angle reduction, atan/tan cancellation"
}

func (TrigRules) Apply(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error) {
	switch s.Op(id) {
	case kernel.OpAdd:
		return applyPythagorean(s, id)
	case kernel.OpMul:
		return applyProductToSum(s, id)
	case kernel.OpPow:
		return applyHalfAngle(s, id)
	case kernel.OpFunction:
		return applyInverseCancellation(s, id)
	}
	return id, false, nil
}

// applyPythagorean finds a pair of Add children c*sin(u)^2 and c*cos(u)^2
// (equal coefficient c, equal argument u) and replaces the pair with the
// literal c, folding it into the numeric term on the next canonical
// rebuild.
func applyPythagorean(s *kernel.Store, id kernel.ExprId) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	for i := 0; i < len(children); i++ {
		ci, ui, okI := matchTrigSquare(s, children[i])
		if !okI {
			continue
		}
		for j := i + 1; j < len(children); j++ {
			cj, uj, okJ := matchTrigSquare(s, children[j])
			if !okJ || cj.fn == ci.fn || ui != uj || rational.Cmp(ci.coef, cj.coef) != 0 {
				continue
			}
			// one must be sin^2, the other cos^2, same coefficient.
			rest := make([]kernel.ExprId, 0, len(children)-1)
			for k, c := range children {
				if k == i || k == j {
					continue
				}
				rest = append(rest, c)
			}
			coefExpr, err := ratExpr(s, ci.coef)
			if err != nil {
				return kernel.Invalid, false, err
			}
			rest = append(rest, coefExpr)
			result, err := s.Add(rest)
			if err != nil {
				return kernel.Invalid, false, err
			}
			return result, true, nil
		}
	}
	return id, false, nil
}

type trigSquareMatch struct {
	fn   kernel.KnownFunction
	coef rational.Q
}

// matchTrigSquare reports whether id is coef * sin(u)^2 or coef * cos(u)^2
// (coefficient 1 allowed implicitly), returning the match and u.
func matchTrigSquare(s *kernel.Store, id kernel.ExprId) (trigSquareMatch, kernel.ExprId, bool) {
	coef := rational.One
	rest := id
	if q, ok := s.AsRational(id); ok {
		_ = q
		return trigSquareMatch{}, kernel.Invalid, false
	}
	if s.Op(id) == kernel.OpMul {
		children := s.Children(id)
		if len(children) != 2 {
			return trigSquareMatch{}, kernel.Invalid, false
		}
		for _, pair := range [][2]kernel.ExprId{{children[0], children[1]}, {children[1], children[0]}} {
			if q, ok := s.AsRational(pair[0]); ok {
				coef = q
				rest = pair[1]
				break
			}
		}
	}
	if s.Op(rest) != kernel.OpPow {
		return trigSquareMatch{}, kernel.Invalid, false
	}
	pc := s.Children(rest)
	base, exp := pc[0], pc[1]
	k, isInt := s.AsInteger(exp)
	if !isInt || k != 2 {
		return trigSquareMatch{}, kernel.Invalid, false
	}
	if s.Op(base) != kernel.OpFunction {
		return trigSquareMatch{}, kernel.Invalid, false
	}
	name := kernel.KnownFunction(s.FuncName(base))
	if name != kernel.FnSin && name != kernel.FnCos {
		return trigSquareMatch{}, kernel.Invalid, false
	}
	argChildren := s.Children(base)
	if len(argChildren) != 1 {
		return trigSquareMatch{}, kernel.Invalid, false
	}
	return trigSquareMatch{fn: name, coef: coef}, argChildren[0], true
}

// applyProductToSum rewrites sin(a)*cos(b), cos(a)*cos(b), sin(a)*sin(b)
// into the Werner sum form.
func applyProductToSum(s *kernel.Store, id kernel.ExprId) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	if len(children) != 2 {
		return id, false, nil
	}
	f0, a, ok0 := matchUnaryTrig(s, children[0])
	f1, b, ok1 := matchUnaryTrig(s, children[1])
	if !ok0 || !ok1 {
		return id, false, nil
	}

	sum, err := s.Add([]kernel.ExprId{a, b})
	if err != nil {
		return kernel.Invalid, false, err
	}
	negB, err := s.Mul([]kernel.ExprId{s.Int(-1), b})
	if err != nil {
		return kernel.Invalid, false, err
	}
	diff, err := s.Add([]kernel.ExprId{a, negB})
	if err != nil {
		return kernel.Invalid, false, err
	}
	halfLit, err := ratExpr(s, half)
	if err != nil {
		return kernel.Invalid, false, err
	}

	build := func(name1 kernel.KnownFunction, arg1 kernel.ExprId, sign int, name2 kernel.KnownFunction, arg2 kernel.ExprId) (kernel.ExprId, error) {
		t1 := s.Func(string(name1), []kernel.ExprId{arg1})
		t2 := s.Func(string(name2), []kernel.ExprId{arg2})
		if sign < 0 {
			t2n, err := s.Mul([]kernel.ExprId{s.Int(-1), t2})
			if err != nil {
				return kernel.Invalid, err
			}
			t2 = t2n
		}
		summed, err := s.Add([]kernel.ExprId{t1, t2})
		if err != nil {
			return kernel.Invalid, err
		}
		return s.Mul([]kernel.ExprId{halfLit, summed})
	}

	switch {
	case f0 == kernel.FnSin && f1 == kernel.FnCos:
		result, err := build(kernel.FnSin, sum, 1, kernel.FnSin, diff)
		return result, err == nil, err
	case f0 == kernel.FnCos && f1 == kernel.FnSin:
		result, err := build(kernel.FnSin, sum, -1, kernel.FnSin, diff)
		return result, err == nil, err
	case f0 == kernel.FnCos && f1 == kernel.FnCos:
		result, err := build(kernel.FnCos, diff, 1, kernel.FnCos, sum)
		return result, err == nil, err
	case f0 == kernel.FnSin && f1 == kernel.FnSin:
		result, err := build(kernel.FnCos, diff, -1, kernel.FnCos, sum)
		return result, err == nil, err
	}
	return id, false, nil
}

func matchUnaryTrig(s *kernel.Store, id kernel.ExprId) (kernel.KnownFunction, kernel.ExprId, bool) {
	if s.Op(id) != kernel.OpFunction {
		return "", kernel.Invalid, false
	}
	name := kernel.KnownFunction(s.FuncName(id))
	if name != kernel.FnSin && name != kernel.FnCos {
		return "", kernel.Invalid, false
	}
	args := s.Children(id)
	if len(args) != 1 {
		return "", kernel.Invalid, false
	}
	return name, args[0], true
}

// applyHalfAngle rewrites sin(u/2)^2 -> (1-cos u)/2 and
// cos(u/2)^2 -> (1+cos u)/2.
func applyHalfAngle(s *kernel.Store, id kernel.ExprId) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	base, exp := children[0], children[1]
	k, isInt := s.AsInteger(exp)
	if !isInt || k != 2 {
		return id, false, nil
	}
	if s.Op(base) != kernel.OpFunction {
		return id, false, nil
	}
	name := kernel.KnownFunction(s.FuncName(base))
	if name != kernel.FnSin && name != kernel.FnCos {
		return id, false, nil
	}
	args := s.Children(base)
	if len(args) != 1 {
		return id, false, nil
	}
	u, ok := halveArgument(s, args[0])
	if !ok {
		return id, false, nil
	}
	cosU := s.Func(string(kernel.FnCos), []kernel.ExprId{u})
	halfLit, err := ratExpr(s, half)
	if err != nil {
		return kernel.Invalid, false, err
	}
	var inner kernel.ExprId
	if name == kernel.FnSin {
		negCos, err := s.Mul([]kernel.ExprId{s.Int(-1), cosU})
		if err != nil {
			return kernel.Invalid, false, err
		}
		inner, err = s.Add([]kernel.ExprId{s.Int(1), negCos})
		if err != nil {
			return kernel.Invalid, false, err
		}
	} else {
		var err error
		inner, err = s.Add([]kernel.ExprId{s.Int(1), cosU})
		if err != nil {
			return kernel.Invalid, false, err
		}
	}
	result, err := s.Mul([]kernel.ExprId{halfLit, inner})
	if err != nil {
		return kernel.Invalid, false, err
	}
	return result, true, nil
}

// halveArgument reports whether arg is exactly u/2 for some u, returning u.
func halveArgument(s *kernel.Store, arg kernel.ExprId) (kernel.ExprId, bool) {
	if s.Op(arg) != kernel.OpMul {
		return kernel.Invalid, false
	}
	children := s.Children(arg)
	if len(children) != 2 {
		return kernel.Invalid, false
	}
	for _, pair := range [][2]kernel.ExprId{{children[0], children[1]}, {children[1], children[0]}} {
		coef, rest := pair[0], pair[1]
		if q, ok := s.AsRational(coef); ok && rational.Cmp(q, half) == 0 {
			return rest, true
		}
	}
	return kernel.Invalid, false
}

// applyInverseCancellation rewrites atan(tan(x)) -> x and tan(atan(x)) ->
// x, both applied unconditionally (documented in DESIGN.md as assuming
// the principal branch for the atan(tan(x)) direction, per spec.md §9).
func applyInverseCancellation(s *kernel.Store, id kernel.ExprId) (kernel.ExprId, bool, error) {
	name := kernel.KnownFunction(s.FuncName(id))
	if name != kernel.FnAtan && name != kernel.FnTan {
		return id, false, nil
	}
	args := s.Children(id)
	if len(args) != 1 {
		return id, false, nil
	}
	inner := args[0]
	if s.Op(inner) != kernel.OpFunction {
		return id, false, nil
	}
	innerName := kernel.KnownFunction(s.FuncName(inner))
	if name == kernel.FnAtan && innerName == kernel.FnTan {
		return s.Children(inner)[0], true, nil
	}
	if name == kernel.FnTan && innerName == kernel.FnAtan {
		return s.Children(inner)[0], true, nil
	}
	return id, false, nil
}
