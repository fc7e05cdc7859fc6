package simplify

import "symmetrica/internal/kernel"

// ConstantFold reduces unary function applications at literal
// special-value arguments to an exact rational result (spec.md §4.5 item
// 1). Arithmetic folding of Add/Mul/Pow over numeric literals already
// happens inside the kernel's canonical constructors at intern time (the
// "canonical rebuild" step re-applies them); this pass covers the one
// thing the kernel deliberately leaves uninterpreted: function
// application.
type ConstantFold struct{}

func (ConstantFold) Name() string { return "Constant Fold" }
func (ConstantFold) Description() string {
	return "evaluates known functions at literal special-value arguments"
}

func (ConstantFold) Apply(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error) {
	if s.Op(id) != kernel.OpFunction {
		return id, false, nil
	}
	children := s.Children(id)
	if len(children) != 1 {
		return id, false, nil
	}
	arg := children[0]
	n, isInt := s.AsInteger(arg)
	if !isInt {
		return id, false, nil
	}
	name := kernel.KnownFunction(s.FuncName(id))

	if n == 0 {
		switch name {
		case kernel.FnSin, kernel.FnTan, kernel.FnAtan, kernel.FnAsin, kernel.FnSinh, kernel.FnTanh:
			return s.Int(0), true, nil
		case kernel.FnCos, kernel.FnExp, kernel.FnCosh:
			return s.Int(1), true, nil
		case kernel.FnSqrt:
			return s.Int(0), true, nil
		}
	}
	if n == 1 {
		switch name {
		case kernel.FnLn:
			return s.Int(0), true, nil
		case kernel.FnSqrt:
			return s.Int(1), true, nil
		}
	}
	return id, false, nil
}
