// Package parser implements Avon's Pratt-style precedence-climbing parser
// (spec.md §4.3), in the teacher's recursive-descent idiom (funxy's
// internal/parser package) cut down to Avon's single-production grammar: a
// whole program is one expression.
package parser

import (
	"fmt"

	"github.com/pyrotek45/avon/internal/ast"
	"github.com/pyrotek45/avon/internal/token"
)

// Error is returned for a malformed token stream; it carries the line of
// the offending token so callers can build an avonerr.Error around it.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type Parser struct {
	toks []token.Token
	pos  int
}

// Parse parses a complete token stream (as produced by lexer.Tokenize,
// including the trailing EOF token) into a single root expression.
func Parse(toks []token.Token) (ast.Node, error) {
	p := &Parser{toks: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.EOF {
		return nil, p.errorf("unexpected trailing token %s", p.cur().Type)
	}
	return expr, nil
}

// ParseWithError is an alias for Parse kept for symmetry with spec.md §6's
// named entry points (tokenize/parse/parse_with_error); both are fallible
// in this implementation, there being no separate panic-prone fast path.
func ParseWithError(toks []token.Token) (ast.Node, error) {
	return Parse(toks)
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Line: p.cur().Line, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(t token.Type, what string) (token.Token, error) {
	if p.cur().Type != t {
		return token.Token{}, &Error{Line: p.cur().Line, Message: fmt.Sprintf("expected %s, found %s", what, p.cur().Type)}
	}
	return p.advance(), nil
}

// parseExpr is the program-level entry: let/lambda/if are recognized
// first as prefix forms, path/file-templates next, everything else falls
// through to the binary-operator precedence chain via parsePipeline.
func (p *Parser) parseExpr() (ast.Node, error) {
	switch p.cur().Type {
	case token.LET:
		return p.parseLet()
	case token.BACKSLASH:
		return p.parseLambda()
	case token.IF:
		return p.parseIf()
	}
	return p.parsePipeline()
}

func (p *Parser) parseLet() (ast.Node, error) {
	tok := p.advance() // 'let'
	nameTok, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "'in'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Tok: tok, Name: nameTok.Lexeme, Value: value, Body: body}, nil
}

func (p *Parser) parseLambda() (ast.Node, error) {
	tok := p.advance() // '\'
	nameTok, err := p.expect(token.IDENT, "parameter name")
	if err != nil {
		return nil, err
	}
	var def ast.Node
	if p.cur().Type == token.QUESTION {
		p.advance()
		def, err = p.parsePostfix()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Tok: tok, Param: nameTok.Lexeme, Default: def, Body: body}, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	tok := p.advance() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN, "'then'"); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE, "'else'"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Tok: tok, Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

// parsePipeline := cmp ( '->' cmp )*
func (p *Parser) parsePipeline() (ast.Node, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.ARROW {
		tok := p.advance()
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = &ast.Pipeline{Tok: tok, Left: left, Right: right}
	}
	return left, nil
}

var cmpOps = map[token.Type]bool{
	token.EQ: true, token.NOT_EQ: true, token.GT: true,
	token.LT: true, token.GTE: true, token.LTE: true,
}

// parseCmp := term ( (==|!=|>|<|>=|<=) term )*
func (p *Parser) parseCmp() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for cmpOps[p.cur().Type] {
		tok := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Tok: tok, Op: tok.Type, Left: left, Right: right}
	}
	return left, nil
}

var termOps = map[token.Type]bool{token.PLUS: true, token.MINUS: true, token.OR: true}

// parseTerm := factor ( (+|-|'||') factor )*
func (p *Parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for termOps[p.cur().Type] {
		tok := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Tok: tok, Op: tok.Type, Left: left, Right: right}
	}
	return left, nil
}

var factorOps = map[token.Type]bool{token.STAR: true, token.SLASH: true, token.PCT: true, token.AND: true}

// parseFactor := application ( (*|/|%|&&) application )*
func (p *Parser) parseFactor() (ast.Node, error) {
	left, err := p.parseApplication()
	if err != nil {
		return nil, err
	}
	for factorOps[p.cur().Type] {
		tok := p.advance()
		right, err := p.parseApplication()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Tok: tok, Op: tok.Type, Left: left, Right: right}
	}
	return left, nil
}

// canStartAtom reports whether t can begin a juxtaposed application
// argument (spec.md §4.3: application is left-associative juxtaposition,
// binding tighter than every binary operator).
func canStartAtom(t token.Type) bool {
	switch t {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.TEMPLATE,
		token.PATH, token.LPAREN, token.LBRACKET, token.LBRACE,
		token.TRUE, token.FALSE, token.NONE:
		return true
	default:
		return false
	}
}

// parseApplication := postfix postfix*   (left-associative juxtaposition)
func (p *Parser) parseApplication() (ast.Node, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for canStartAtom(p.cur().Type) {
		arg, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		left = &ast.Application{Fn: left, Arg: arg}
	}
	return left, nil
}

// parsePostfix := atom ( '.' ident )*
func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.DOT {
		tok := p.advance()
		fieldTok, err := p.expect(token.IDENT, "field name")
		if err != nil {
			return nil, err
		}
		node = &ast.Member{Tok: tok, Object: node, Field: fieldTok.Lexeme}
	}
	return node, nil
}

func (p *Parser) parseAtom() (ast.Node, error) {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		v, err := parseIntLiteral(tok.Lexeme)
		if err != nil {
			return nil, &Error{Line: tok.Line, Message: "invalid integer literal: " + tok.Lexeme}
		}
		return &ast.Number{Tok: tok, Int: v}, nil
	case token.FLOAT:
		p.advance()
		v, err := parseFloatLiteral(tok.Lexeme)
		if err != nil {
			return nil, &Error{Line: tok.Line, Message: "invalid float literal: " + tok.Lexeme}
		}
		return &ast.Number{Tok: tok, IsFloat: true, Float: v}, nil
	case token.STRING:
		p.advance()
		return &ast.String{Tok: tok, Value: tok.Literal}, nil
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Tok: tok, Name: tok.Lexeme}, nil
	case token.TRUE:
		p.advance()
		return &ast.Bool{Tok: tok, Value: true}, nil
	case token.FALSE:
		p.advance()
		return &ast.Bool{Tok: tok, Value: false}, nil
	case token.NONE:
		p.advance()
		return &ast.None{Tok: tok}, nil
	case token.TEMPLATE:
		p.advance()
		return &ast.Template{Tok: tok, Chunks: ast.ChunksFrom(tok.Chunks)}, nil
	case token.PATH:
		p.advance()
		pathNode := &ast.Path{Tok: tok, Chunks: ast.ChunksFrom(tok.Chunks)}
		if p.cur().Type == token.TEMPLATE {
			tmplTok := p.advance()
			tmplNode := &ast.Template{Tok: tmplTok, Chunks: ast.ChunksFrom(tmplTok.Chunks)}
			return &ast.FileTemplate{Tok: tok, PathExpr: pathNode, BodyTmpl: tmplNode}, nil
		}
		return pathNode, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case token.LBRACKET:
		return p.parseListOrRange()
	case token.LBRACE:
		return p.parseDict()
	default:
		return nil, &Error{Line: tok.Line, Message: fmt.Sprintf("unexpected token %s", tok.Type)}
	}
}

func (p *Parser) parseListOrRange() (ast.Node, error) {
	tok := p.advance() // '['
	if p.cur().Type == token.RBRACKET {
		p.advance()
		return &ast.List{Tok: tok}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.DOTDOT {
		p.advance()
		second, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Type == token.DOTDOT {
			p.advance()
			third, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "']'"); err != nil {
				return nil, err
			}
			return &ast.Range{Tok: tok, Start: first, Step: second, End: third}, nil
		}
		if _, err := p.expect(token.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return &ast.Range{Tok: tok, Start: first, End: second}, nil
	}
	elems := []ast.Node{first}
	for p.cur().Type == token.COMMA {
		p.advance()
		if p.cur().Type == token.RBRACKET {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(token.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return &ast.List{Tok: tok, Elements: elems}, nil
}

func (p *Parser) parseDict() (ast.Node, error) {
	tok := p.advance() // '{'
	var pairs []ast.DictPair
	if p.cur().Type == token.RBRACE {
		p.advance()
		return &ast.Dict{Tok: tok}, nil
	}
	for {
		key, err := p.parseDictKey()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, "':'"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.DictPair{Key: key, Value: val})
		if p.cur().Type == token.COMMA {
			p.advance()
			if p.cur().Type == token.RBRACE {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Dict{Tok: tok, Pairs: pairs}, nil
}

func (p *Parser) parseDictKey() (string, error) {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		p.advance()
		return tok.Lexeme, nil
	case token.STRING:
		p.advance()
		return tok.Literal, nil
	default:
		return "", &Error{Line: tok.Line, Message: fmt.Sprintf("expected dict key, found %s", tok.Type)}
	}
}
