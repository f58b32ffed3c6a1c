package cdl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a complete CDL document: one statement per line.
type File struct {
	Statements []*Statement `EOL* ( @@ ( EOL+ | EOF ) )*`
}

// Statement is a single CDL line.
type Statement struct {
	Net        *NetStmt        `  @@`
	Connection *ConnectionStmt `| @@`
	Component  *ComponentStmt  `| @@`
}

// ComponentStmt declares a component instance.
// Example: R1 resistor 10k (10, 20) rotation=90deg label="Load"
type ComponentStmt struct {
	Pos   lexer.Position
	ID    string  `@Ident`
	Kind  string  `@( Ident | Number )`
	Items []*Item `@@*`
}

// Item is one trailing element of a component line.
type Item struct {
	Pos      lexer.Position
	Position *Coord    `  @@`
	Property *Property `| @@`
	Bare     *string   `| @( String | Number | Ident )`
}

// Coord is an explicit "(x, y)" position.
type Coord struct {
	X float64 `"(" @Number ","`
	Y float64 `@Number ")"`
}

// Property is a key=value attribute.
type Property struct {
	Pos   lexer.Position
	Key   string `@Ident "="`
	Value string `@( String | Number | Ident )`
}

// ConnectionStmt wires two pins.
// Example: R1.2 -> C1.1 [color=red, style=dashed]
type ConnectionStmt struct {
	Pos        lexer.Position
	From       *PinRef     `@@ Arrow`
	To         *PinRef     `@@`
	Properties []*Property `( "[" ( @@ ","? )* "]" | ( @@ ","? )+ )?`
}

// NetStmt declares a named net.
// Example: net VCC: U1.VCC, R1.1
type NetStmt struct {
	Pos     lexer.Position
	Name    string    `"net" @( Ident | Number ) ":"`
	Members []*PinRef `@@ ( "," @@ )*`
}

// PinRef is "component.pin". Pin names may be bare signs (+, -) or carry a
// trailing sign (V+, IN-).
type PinRef struct {
	Pos       lexer.Position
	Component string `@Ident "."`
	Pin       string `@( ( Ident | Number ) ( "+" | "-" )? | "+" | "-" )`
}
