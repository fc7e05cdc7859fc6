package simplify

import "symmetrica/internal/kernel"

// LogRules applies the guarded logarithm identities of spec.md §4.5 item
// 3. Every rule that depends on a sign fact degrades to a no-op when ctx
// is nil or cannot prove the fact, per the simplifier's failure model: it
// never rewrites past what it can prove sound.
type LogRules struct{}

func (LogRules) Name() string        { return "Guarded Logarithm Rules" }
func (LogRules) Description() string { return "ln(x*y)->ln x+ln y, ln(x^k)->k ln x, ln(e^x)->x, e^(ln x)->x" }

func isPositive(ctx kernel.Assumptions, s *kernel.Store, id kernel.ExprId) bool {
	return ctx != nil && ctx.IsPositive(s, id)
}

func (LogRules) Apply(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error) {
	if s.Op(id) != kernel.OpFunction {
		return id, false, nil
	}
	name := s.FuncName(id)
	args := s.Children(id)
	if len(args) != 1 {
		return id, false, nil
	}
	arg := args[0]

	switch kernel.KnownFunction(name) {
	case kernel.FnLn:
		// ln(e^x) -> x unconditionally: the kernel represents e^x as
		// Func("exp", [x]).
		if s.Op(arg) == kernel.OpFunction && s.FuncName(arg) == string(kernel.FnExp) {
			inner := s.Children(arg)[0]
			return inner, true, nil
		}
		// ln(x*y) -> ln(x) + ln(y) when every factor is Positive.
		if s.Op(arg) == kernel.OpMul {
			factors := s.Children(arg)
			allPositive := true
			for _, f := range factors {
				if !isPositive(ctx, s, f) {
					allPositive = false
					break
				}
			}
			if allPositive && len(factors) >= 2 {
				terms := make([]kernel.ExprId, len(factors))
				for i, f := range factors {
					terms[i] = s.Func(string(kernel.FnLn), []kernel.ExprId{f})
				}
				sum, err := s.Add(terms)
				if err != nil {
					return kernel.Invalid, false, err
				}
				return sum, true, nil
			}
		}
		// ln(x^k) -> k * ln(x) when x is Positive.
		if s.Op(arg) == kernel.OpPow {
			children := s.Children(arg)
			base, exp := children[0], children[1]
			if isPositive(ctx, s, base) {
				lnBase := s.Func(string(kernel.FnLn), []kernel.ExprId{base})
				prod, err := s.Mul([]kernel.ExprId{exp, lnBase})
				if err != nil {
					return kernel.Invalid, false, err
				}
				return prod, true, nil
			}
		}
	case kernel.FnExp:
		// e^(ln x) -> x when x is Positive.
		if s.Op(arg) == kernel.OpFunction && s.FuncName(arg) == string(kernel.FnLn) {
			inner := s.Children(arg)[0]
			if isPositive(ctx, s, inner) {
				return inner, true, nil
			}
		}
	}
	return id, false, nil
}
