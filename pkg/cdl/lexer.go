package cdl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer defines the lexical structure of CDL. Statements are line oriented,
// so newlines are significant and only horizontal whitespace is elided.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run to end of line in either style.
	{Name: "Comment", Pattern: `(?://|#)[^\n]*`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Arrow", Pattern: `->`},

	// Numbers carry their unit and SI prefix: 10k, 4.7uF, 4k7, 1e-3, 90deg.
	{Name: "Number", Pattern: `[-+]?[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?[A-Za-zµμΩ°]*[0-9]*`},

	// Identifiers may contain inner dashes (IN-A) but never end in one, so
	// that A.IN-> B.OUT and U1.IN- both lex as expected.
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*(?:-[A-Za-z0-9_]+)*`},

	{Name: "Punct", Pattern: `[.,:=()\[\]+\-]`},
	{Name: "EOL", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
