package sexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"symmetrica/internal/errkinds"
	"symmetrica/internal/kernel"
)

var parser = buildParser()

func buildParser() *participle.Parser[SExpr] {
	p, err := participle.Build[SExpr](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("sexpr: failed to build parser: %w", err))
	}
	return p
}

// SyntaxError is a position-carrying parse failure, unwrapping to
// errkinds.ParseError, mirroring internal/infix.SyntaxError so both
// textual front ends report failures the same way.
type SyntaxError struct {
	Line, Column int
	Msg          string
}

func (e *SyntaxError) Error() string { return e.Msg }
func (e *SyntaxError) Unwrap() error { return errkinds.ParseError }

// Parse reads a canonical S-expression such as "(add (int 2) (mul (int 3)
// (sym x)))" and builds it into store via the canonical constructors.
func Parse(store *kernel.Store, source string) (kernel.ExprId, error) {
	tree, err := parser.ParseString("", source)
	if err != nil {
		return kernel.Invalid, toSyntaxError(err)
	}
	return build(store, tree)
}

func toSyntaxError(err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return &SyntaxError{Msg: err.Error()}
	}
	pos := pe.Position()
	return &SyntaxError{Line: pos.Line, Column: pos.Column, Msg: pe.Message()}
}
