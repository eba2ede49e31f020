// Package ast defines Avon's expression tree. The whole language is one
// expression (spec.md §4.3), so unlike the teacher's statement-and-type
// hierarchy (ast_core.go/ast_expressions.go/ast_types.go in funxy) there is
// a single Node kind: Expression. Every variant records the source line of
// the token that introduced it, mirroring the teacher's TokenProvider
// convention.
package ast

import "github.com/pyrotek45/avon/internal/token"

// Node is the common interface implemented by every expression variant.
type Node interface {
	Line() int
	exprNode()
}

// None is the literal `none` keyword.
type None struct {
	Tok token.Token
}

func (n *None) Line() int { return n.Tok.Line }
func (*None) exprNode()   {}

// Bool is the literal `true` or `false` keyword.
type Bool struct {
	Tok   token.Token
	Value bool
}

func (n *Bool) Line() int { return n.Tok.Line }
func (*Bool) exprNode()   {}

// Number is either an Int or Float literal, tagged by IsFloat.
type Number struct {
	Tok     token.Token
	IsFloat bool
	Int     int64
	Float   float64
}

func (n *Number) Line() int { return n.Tok.Line }
func (*Number) exprNode()   {}

type String struct {
	Tok   token.Token
	Value string
}

func (n *String) Line() int { return n.Tok.Line }
func (*String) exprNode()   {}

type Identifier struct {
	Tok  token.Token
	Name string
}

func (n *Identifier) Line() int { return n.Tok.Line }
func (*Identifier) exprNode()   {}

// Let is `let name = Value in Body`.
type Let struct {
	Tok   token.Token
	Name  string
	Value Node
	Body  Node
}

func (n *Let) Line() int { return n.Tok.Line }
func (*Let) exprNode()   {}

// Function is a lambda `\param (? Default)? Body`.
type Function struct {
	Tok     token.Token
	Param   string
	Default Node // nil if absent
	Body    Node
}

func (n *Function) Line() int { return n.Tok.Line }
func (*Function) exprNode()   {}

// Application is juxtaposition: Fn applied to Arg.
type Application struct {
	Fn  Node
	Arg Node
}

func (n *Application) Line() int { return n.Fn.Line() }
func (*Application) exprNode()   {}

// Chunk mirrors token.Chunk but holds a pre-parsed line for evaluator use;
// Expr chunks keep their raw source text and are (re-)tokenized/parsed at
// evaluation/render time (spec.md's "lazy" template design).
type Chunk struct {
	IsExpr bool
	Text   string
	Line   int
}

// ChunksFrom converts lexer-level token chunks into AST chunks.
func ChunksFrom(tcs []token.Chunk) []Chunk {
	out := make([]Chunk, len(tcs))
	for i, c := range tcs {
		out[i] = Chunk{IsExpr: c.IsExpr, Text: c.Text, Line: c.Line}
	}
	return out
}

// Template is a brace-counted template literal `{"..."}`.
type Template struct {
	Tok    token.Token
	Chunks []Chunk
}

func (n *Template) Line() int { return n.Tok.Line }
func (*Template) exprNode()   {}

// Path is an `@...` path literal.
type Path struct {
	Tok    token.Token
	Chunks []Chunk
}

func (n *Path) Line() int { return n.Tok.Line }
func (*Path) exprNode()   {}

// FileTemplate pairs a path literal with a following template body:
// `@path {"..."}`.
type FileTemplate struct {
	Tok      token.Token
	PathExpr *Path
	BodyTmpl *Template
}

func (n *FileTemplate) Line() int { return n.Tok.Line }
func (*FileTemplate) exprNode()   {}

// List is `[ e1, e2, ... ]`.
type List struct {
	Tok      token.Token
	Elements []Node
}

func (n *List) Line() int { return n.Tok.Line }
func (*List) exprNode()   {}

// Range is `start..end` or `start..step..end`.
type Range struct {
	Tok   token.Token
	Start Node
	Step  Node // nil if absent (defaults to 1)
	End   Node
}

func (n *Range) Line() int { return n.Tok.Line }
func (*Range) exprNode()   {}

// DictPair is one `key: value` entry of a dict literal.
type DictPair struct {
	Key   string
	Value Node
}

// Dict is `{ key: value, ... }`.
type Dict struct {
	Tok   token.Token
	Pairs []DictPair
}

func (n *Dict) Line() int { return n.Tok.Line }
func (*Dict) exprNode()   {}

// Conditional is `if Cond then Then else Else`.
type Conditional struct {
	Tok  token.Token
	Cond Node
	Then Node
	Else Node
}

func (n *Conditional) Line() int { return n.Tok.Line }
func (*Conditional) exprNode()   {}

// Binary is a binary operator application; Op is the operator token type
// (token.PLUS, token.EQ, ...).
type Binary struct {
	Tok   token.Token
	Op    token.Type
	Left  Node
	Right Node
}

func (n *Binary) Line() int { return n.Tok.Line }
func (*Binary) exprNode()   {}

// Member is postfix `.field` access on Object.
type Member struct {
	Tok    token.Token
	Object Node
	Field  string
}

func (n *Member) Line() int { return n.Tok.Line }
func (*Member) exprNode()   {}

// Pipeline is `Left -> Right`, sugar for `Right Left`.
type Pipeline struct {
	Tok   token.Token
	Left  Node
	Right Node
}

func (n *Pipeline) Line() int { return n.Tok.Line }
func (*Pipeline) exprNode()   {}
