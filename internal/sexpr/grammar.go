// Package sexpr implements the canonical S-expression grammar of spec.md
// §6 — (int N), (rat N D), (sym NAME), (add CHILD…), (mul CHILD…),
// (pow BASE EXP), (func NAME ARG…), (piecewise (COND VAL)…) — as a
// participle struct-tagged grammar + stateful lexer, the same shape the
// teacher uses for the Kanso language (grammar/grammar.go, grammar/lexer.go).
package sexpr

// SExpr is the grammar's single sum type: exactly one alternative is
// non-nil after a successful parse.
type SExpr struct {
	Int       *IntNode       `  @@`
	Rat       *RatNode       `| @@`
	Sym       *SymNode       `| @@`
	Add       *AddNode       `| @@`
	Mul       *MulNode       `| @@`
	Pow       *PowNode       `| @@`
	Func      *FuncNode      `| @@`
	Piecewise *PiecewiseNode `| @@`
}

type IntNode struct {
	Value int64 `"(" "int" @Integer ")"`
}

type RatNode struct {
	Numer int64 `"(" "rat" @Integer`
	Denom int64 `@Integer ")"`
}

type SymNode struct {
	Name string `"(" "sym" @Ident ")"`
}

type AddNode struct {
	Children []*SExpr `"(" "add" @@* ")"`
}

type MulNode struct {
	Children []*SExpr `"(" "mul" @@* ")"`
}

type PowNode struct {
	Base *SExpr `"(" "pow" @@`
	Exp  *SExpr `@@ ")"`
}

type FuncNode struct {
	Name string   `"(" "func" @Ident`
	Args []*SExpr `@@* ")"`
}

type PiecewiseNode struct {
	Pairs []*PiecewisePair `"(" "piecewise" @@* ")"`
}

type PiecewisePair struct {
	Cond  *SExpr `"(" @@`
	Value *SExpr `@@ ")"`
}
