package kernel

// KnownFunction names the unary transcendental functions the kernel's
// consumers (internal/diff, internal/integrate, internal/simplify) give
// special treatment, mirroring the closed set of builtin names the
// teacher's internal/builtins package maintains for its own primitive
// type set.
type KnownFunction string

const (
	FnSin  KnownFunction = "sin"
	FnCos  KnownFunction = "cos"
	FnTan  KnownFunction = "tan"
	FnExp  KnownFunction = "exp"
	FnLn   KnownFunction = "ln"
	FnSqrt KnownFunction = "sqrt"
	FnAtan KnownFunction = "atan"
	FnAsin KnownFunction = "asin"
	FnSinh KnownFunction = "sinh"
	FnCosh KnownFunction = "cosh"
	FnTanh KnownFunction = "tanh"
)

// knownFunctions is the membership set backing IsKnownFunction.
var knownFunctions = map[KnownFunction]bool{
	FnSin: true, FnCos: true, FnTan: true, FnExp: true, FnLn: true,
	FnSqrt: true, FnAtan: true, FnAsin: true, FnSinh: true, FnCosh: true,
	FnTanh: true,
}

// IsKnownFunction reports whether name has special-cased handling in the
// derivative/integration/simplification rule tables.
func IsKnownFunction(name string) bool {
	return knownFunctions[KnownFunction(name)]
}

// FuncName returns the function name of a Function node id, or "" if id
// is not a Function node.
func (s *Store) FuncName(id ExprId) string {
	n := s.Node(id)
	if n.Op == OpFunction {
		return n.Name
	}
	return ""
}

// SymName returns the symbol name of a Symbol node id, or "" if id is not
// a Symbol node.
func (s *Store) SymName(id ExprId) string {
	n := s.Node(id)
	if n.Op == OpSymbol {
		return n.Name
	}
	return ""
}

// IsSymbol reports whether id is the Symbol node named name.
func (s *Store) IsSymbol(id ExprId, name string) bool {
	n := s.Node(id)
	return n.Op == OpSymbol && n.Name == name
}
