package diff

import "symmetrica/internal/kernel"

// derivative builds d/d(arg) of the known unary function named name,
// applied to arg, per the derivative table in spec.md §4.6. It returns
// the un-simplified symbolic derivative; the caller composes it with the
// chain rule and passes the whole result through the simplifier.
func derivative(s *kernel.Store, name kernel.KnownFunction, arg kernel.ExprId) (kernel.ExprId, bool, error) {
	switch name {
	case kernel.FnSin:
		return s.Func(string(kernel.FnCos), []kernel.ExprId{arg}), true, nil
	case kernel.FnCos:
		sinArg := s.Func(string(kernel.FnSin), []kernel.ExprId{arg})
		neg, err := s.Mul([]kernel.ExprId{s.Int(-1), sinArg})
		return neg, true, err
	case kernel.FnTan:
		tanArg := s.Func(string(kernel.FnTan), []kernel.ExprId{arg})
		tanSq, err := s.Pow(tanArg, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		sum, err := s.Add([]kernel.ExprId{s.Int(1), tanSq})
		return sum, true, err
	case kernel.FnExp:
		return s.Func(string(kernel.FnExp), []kernel.ExprId{arg}), true, nil
	case kernel.FnLn:
		inv, err := s.Pow(arg, s.Int(-1), nil)
		return inv, true, err
	case kernel.FnSqrt:
		sqrtArg := s.Func(string(kernel.FnSqrt), []kernel.ExprId{arg})
		two, err := s.Mul([]kernel.ExprId{s.Int(2), sqrtArg})
		if err != nil {
			return kernel.Invalid, false, err
		}
		inv, err := s.Pow(two, s.Int(-1), nil)
		return inv, true, err
	case kernel.FnAtan:
		argSq, err := s.Pow(arg, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		denom, err := s.Add([]kernel.ExprId{s.Int(1), argSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		inv, err := s.Pow(denom, s.Int(-1), nil)
		return inv, true, err
	case kernel.FnAsin:
		argSq, err := s.Pow(arg, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		negArgSq, err := s.Mul([]kernel.ExprId{s.Int(-1), argSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		inner, err := s.Add([]kernel.ExprId{s.Int(1), negArgSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		halfExp, err := s.Rat(1, 2)
		if err != nil {
			return kernel.Invalid, false, err
		}
		root, err := s.Pow(inner, halfExp, nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		inv, err := s.Pow(root, s.Int(-1), nil)
		return inv, true, err
	case kernel.FnSinh:
		return s.Func(string(kernel.FnCosh), []kernel.ExprId{arg}), true, nil
	case kernel.FnCosh:
		return s.Func(string(kernel.FnSinh), []kernel.ExprId{arg}), true, nil
	case kernel.FnTanh:
		tanhArg := s.Func(string(kernel.FnTanh), []kernel.ExprId{arg})
		tanhSq, err := s.Pow(tanhArg, s.Int(2), nil)
		if err != nil {
			return kernel.Invalid, false, err
		}
		negTanhSq, err := s.Mul([]kernel.ExprId{s.Int(-1), tanhSq})
		if err != nil {
			return kernel.Invalid, false, err
		}
		sum, err := s.Add([]kernel.ExprId{s.Int(1), negTanhSq})
		return sum, true, err
	default:
		return kernel.Invalid, false, nil
	}
}
