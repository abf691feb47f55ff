// Package boolexpr parses the boolean function expressions attached to
// Liberty output pins, e.g. "A&B", "!(A1|B1)", "(A*B)'".
//
// The parsed tree answers the questions the rest of the toolkit asks of a
// function: which input pins it reads (Inputs), and what gate family it
// belongs to (Kind).
package boolexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses one function expression.
func Parse(input string) (*Expr, error) {
	expr, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("boolexpr: parse %q: %w", input, err)
	}
	return expr, nil
}

// MustParse is Parse for expressions known to be valid; it panics otherwise.
func MustParse(input string) *Expr {
	expr, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return expr
}
