// Package formula parses and evaluates roll formulas such as "1d8 + @mod + 2".
//
// Formulas reference roll data with @path tokens. Replace substitutes them,
// Parse builds an AST, the Evaluator folds deterministic arithmetic through a
// CEL program, and Simplify condenses a formula into dice terms plus a single
// constant for display.
package formula

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes roll formulas. Dice must come before Number and Ident so
// "2d6" is not split into a number and an identifier.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dice", Pattern: `\d*[dD]\d+(?:(?:kh|kl|dh|dl|ro|xo|min|max|k|r|x)\d*)*`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Ref", Pattern: `@[a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Flavor", Pattern: `\[[^\]]*\]`},
	{Name: "Operator", Pattern: `[-+*/%]`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[Expr](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
)

// Parse builds the AST for a formula
func Parse(formula string) (*Expr, error) {
	return parser.ParseString("", formula)
}
