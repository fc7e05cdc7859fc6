package sexpr

import (
	"fmt"

	"symmetrica/internal/errkinds"
	"symmetrica/internal/kernel"
)

// build walks the participle-produced AST bottom-up, interning each node
// through the store's canonical constructors (so an S-expression built by
// hand still folds to canonical form, e.g. "(add (int 2) (int 3))" parses
// straight to the literal 5).
func build(store *kernel.Store, e *SExpr) (kernel.ExprId, error) {
	switch {
	case e.Int != nil:
		return store.Int(e.Int.Value), nil
	case e.Rat != nil:
		return store.Rat(e.Rat.Numer, e.Rat.Denom)
	case e.Sym != nil:
		return store.Sym(e.Sym.Name), nil
	case e.Add != nil:
		children, err := buildAll(store, e.Add.Children)
		if err != nil {
			return kernel.Invalid, err
		}
		return store.Add(children)
	case e.Mul != nil:
		children, err := buildAll(store, e.Mul.Children)
		if err != nil {
			return kernel.Invalid, err
		}
		return store.Mul(children)
	case e.Pow != nil:
		base, err := build(store, e.Pow.Base)
		if err != nil {
			return kernel.Invalid, err
		}
		exp, err := build(store, e.Pow.Exp)
		if err != nil {
			return kernel.Invalid, err
		}
		return store.Pow(base, exp, nil)
	case e.Func != nil:
		args, err := buildAll(store, e.Func.Args)
		if err != nil {
			return kernel.Invalid, err
		}
		return store.Func(e.Func.Name, args), nil
	case e.Piecewise != nil:
		pairs := make([][2]kernel.ExprId, 0, len(e.Piecewise.Pairs))
		for _, p := range e.Piecewise.Pairs {
			cond, err := build(store, p.Cond)
			if err != nil {
				return kernel.Invalid, err
			}
			val, err := build(store, p.Value)
			if err != nil {
				return kernel.Invalid, err
			}
			pairs = append(pairs, [2]kernel.ExprId{cond, val})
		}
		return store.Piecewise(pairs), nil
	default:
		return kernel.Invalid, errkinds.Wrap(errkinds.ParseError, "empty S-expression node")
	}
}

func buildAll(store *kernel.Store, nodes []*SExpr) ([]kernel.ExprId, error) {
	out := make([]kernel.ExprId, len(nodes))
	for i, n := range nodes {
		id, err := build(store, n)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = id
	}
	return out, nil
}
