package boolexpr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer defines the lexical structure of Liberty pin-function
// expressions. The format allows two spellings for most operators
// (& or * for AND, | or + for OR) and both prefix ! and postfix '
// negation.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},

	// Identifiers: pin names such as A, B1, SLEEP_N
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},

	// Constant 0/1 literals
	{Name: "Const", Pattern: `[01]`},

	// Operators
	{Name: "And", Pattern: `[&*]`},
	{Name: "Or", Pattern: `[|+]`},
	{Name: "Xor", Pattern: `\^`},
	{Name: "Not", Pattern: `!`},
	{Name: "Prime", Pattern: `'`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
})
