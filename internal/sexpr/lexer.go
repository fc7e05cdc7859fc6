package sexpr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer is a stateful participle lexer for the S-expression surface form,
// the same construction the teacher's grammar/lexer.go uses
// (lexer.MustStateful) but trimmed to the parenthesized-atom token set
// this grammar needs: no comments, no operators, no punctuation beyond
// parens.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `-?[0-9]+`, nil},
		{"Punctuation", `[()]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
