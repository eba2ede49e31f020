// Package lexer turns Avon source text into a token sequence. The scanner
// is single-pass and never backtracks over characters already emitted,
// following the teacher's character-stream design (internal/lexer/lexer.go
// in the funxy compiler), generalized here to Avon's much smaller
// punctuator set plus the brace-counted template sublanguage (spec.md §4.2).
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pyrotek45/avon/internal/token"
)

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(t token.Type, ch rune, line, col int) token.Token {
	lit := string(ch)
	return token.Token{Type: t, Lexeme: lit, Literal: lit, Line: line, Column: col}
}

// Tokenize runs the lexer to completion, returning every token up to and
// including EOF, or an error at the first ILLEGAL token.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			return nil, fmt.Errorf("line %d: %s", tok.Line, tok.Literal)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks, nil
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	line, col := l.line, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: line, Column: col}
		}
		l.readChar()
		return token.Token{Type: token.ASSIGN, Lexeme: "=", Literal: "=", Line: line, Column: col}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: line, Column: col}
		}
		return l.illegal(line, col, "unexpected character '!'")
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.GTE, Lexeme: ">=", Literal: ">=", Line: line, Column: col}
		}
		l.readChar()
		return token.Token{Type: token.GT, Lexeme: ">", Literal: ">", Line: line, Column: col}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LTE, Lexeme: "<=", Literal: "<=", Line: line, Column: col}
		}
		l.readChar()
		return token.Token{Type: token.LT, Lexeme: "<", Literal: "<", Line: line, Column: col}
	case '+':
		l.readChar()
		return token.Token{Type: token.PLUS, Lexeme: "+", Literal: "+", Line: line, Column: col}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: line, Column: col}
		}
		l.readChar()
		return token.Token{Type: token.MINUS, Lexeme: "-", Literal: "-", Line: line, Column: col}
	case '*':
		l.readChar()
		return token.Token{Type: token.STAR, Lexeme: "*", Literal: "*", Line: line, Column: col}
	case '/':
		l.readChar()
		return token.Token{Type: token.SLASH, Lexeme: "/", Literal: "/", Line: line, Column: col}
	case '%':
		l.readChar()
		return token.Token{Type: token.PCT, Lexeme: "%", Literal: "%", Line: line, Column: col}
	case '?':
		l.readChar()
		return token.Token{Type: token.QUESTION, Lexeme: "?", Literal: "?", Line: line, Column: col}
	case ':':
		l.readChar()
		return token.Token{Type: token.COLON, Lexeme: ":", Literal: ":", Line: line, Column: col}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.OR, Lexeme: "||", Literal: "||", Line: line, Column: col}
		}
		l.readChar()
		return token.Token{Type: token.PIPE, Lexeme: "|", Literal: "|", Line: line, Column: col}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.AND, Lexeme: "&&", Literal: "&&", Line: line, Column: col}
		}
		return l.illegal(line, col, "unexpected character '&'")
	case '\\':
		l.readChar()
		return token.Token{Type: token.BACKSLASH, Lexeme: "\\", Literal: "\\", Line: line, Column: col}
	case ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Lexeme: ",", Literal: ",", Line: line, Column: col}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.DOTDOT, Lexeme: "..", Literal: "..", Line: line, Column: col}
		}
		l.readChar()
		return token.Token{Type: token.DOT, Lexeme: ".", Literal: ".", Line: line, Column: col}
	case '(':
		l.readChar()
		return newToken(token.LPAREN, '(', line, col)
	case ')':
		l.readChar()
		return newToken(token.RPAREN, ')', line, col)
	case '[':
		l.readChar()
		return newToken(token.LBRACKET, '[', line, col)
	case ']':
		l.readChar()
		return newToken(token.RBRACKET, ']', line, col)
	case '}':
		l.readChar()
		return newToken(token.RBRACE, '}', line, col)
	case '{':
		return l.lexBraceOrTemplate(line, col)
	case '"':
		return l.lexString(line, col)
	case '@':
		return l.lexPath(line, col)
	}

	if isIdentStart(l.ch) {
		return l.lexIdent(line, col)
	}
	if isDigit(l.ch) {
		return l.lexNumber(line, col)
	}
	return l.illegal(line, col, fmt.Sprintf("unexpected character %q", l.ch))
}

func (l *Lexer) illegal(line, col int, msg string) token.Token {
	return token.Token{Type: token.ILLEGAL, Literal: msg, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch < 0x80 && unicode.IsLetter(ch))
}

func isIdentCont(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) lexIdent(line, col int) token.Token {
	start := l.position
	for isIdentCont(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lit), Lexeme: lit, Literal: lit, Line: line, Column: col}
}

func (l *Lexer) lexNumber(line, col int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]
	if isFloat {
		return token.Token{Type: token.FLOAT, Lexeme: lit, Literal: lit, Line: line, Column: col}
	}
	return token.Token{Type: token.INT, Lexeme: lit, Literal: lit, Line: line, Column: col}
}

func (l *Lexer) lexString(line, col int) token.Token {
	l.readChar() // consume opening quote
	var b strings.Builder
	for {
		if l.ch == 0 {
			return l.illegal(line, col, "unterminated string literal")
		}
		if l.ch == '"' {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 0:
				return l.illegal(line, col, "unterminated string literal")
			default:
				b.WriteByte('\\')
				b.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	s := b.String()
	return token.Token{Type: token.STRING, Lexeme: s, Literal: s, Line: line, Column: col}
}

// lexPath scans a `@...` path literal: non-whitespace characters accumulate
// into chunks; a balanced `{ ... }` span inside is a verbatim interpolation
// chunk. Whitespace or EOF terminates the path. A leading '/' is rejected:
// paths are relative by design.
func (l *Lexer) lexPath(line, col int) token.Token {
	l.readChar() // consume '@'
	if l.ch == '/' {
		return l.illegal(line, col, "absolute path literal not accepted; paths are relative")
	}
	var chunks []token.Chunk
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			chunks = append(chunks, token.Chunk{Text: lit.String()})
			lit.Reset()
		}
	}
	for {
		if l.ch == 0 || isPathTerminator(l.ch) {
			break
		}
		if l.ch == '{' {
			exprLine := l.line
			l.readChar()
			depth := 1
			var inner strings.Builder
			for depth > 0 {
				if l.ch == 0 {
					return l.illegal(line, col, "unterminated interpolation in path literal")
				}
				if l.ch == '{' {
					depth++
				} else if l.ch == '}' {
					depth--
					if depth == 0 {
						l.readChar()
						break
					}
				}
				if depth > 0 {
					inner.WriteRune(l.ch)
				}
				l.readChar()
			}
			flush()
			chunks = append(chunks, token.Chunk{IsExpr: true, Text: inner.String(), Line: exprLine})
			continue
		}
		lit.WriteRune(l.ch)
		l.readChar()
	}
	flush()
	if len(chunks) == 0 {
		return l.illegal(line, col, "empty path literal")
	}
	return token.Token{Type: token.PATH, Line: line, Column: col, Chunks: chunks}
}

func isPathTerminator(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// lexBraceOrTemplate handles '{'. If N consecutive '{'s are followed
// (after optional whitespace) by '"', this opens a brace-level-N template
// literal (spec.md §4.2). Otherwise a single '{' (LBRACE) is emitted, and
// the remaining braces are re-examined on the next call.
func (l *Lexer) lexBraceOrTemplate(line, col int) token.Token {
	n, ok := l.templateOpenLookahead()
	if !ok {
		l.readChar()
		return newToken(token.LBRACE, '{', line, col)
	}
	for i := 0; i < n; i++ {
		l.readChar()
	}
	for isTemplateSkipSpace(l.ch) {
		l.readChar()
	}
	l.readChar() // consume opening '"'
	return l.lexTemplateBody(n, line, col)
}

func isTemplateSkipSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// templateOpenLookahead scans forward from the current '{' without
// consuming input, returning the brace count N if followed (after
// optional whitespace) by a '"'.
func (l *Lexer) templateOpenLookahead() (int, bool) {
	idx := l.position
	n := 0
	for idx < len(l.input) && l.input[idx] == '{' {
		n++
		idx++
	}
	for idx < len(l.input) && isTemplateSkipSpace(rune(l.input[idx])) {
		idx++
	}
	if idx < len(l.input) && l.input[idx] == '"' {
		return n, true
	}
	return 0, false
}

// countRun counts the run of the current ASCII byte ch starting at the
// lexer's current position, without consuming input.
func (l *Lexer) countRun(ch byte) int {
	n := 0
	for l.position+n < len(l.input) && l.input[l.position+n] == ch {
		n++
	}
	return n
}

// lexTemplateBody scans the body of a brace-level-N template literal,
// implementing the escaping/collapsing rules of spec.md §4.2.
func (l *Lexer) lexTemplateBody(n, line, col int) token.Token {
	var chunks []token.Chunk
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			chunks = append(chunks, token.Chunk{Text: lit.String()})
			lit.Reset()
		}
	}
	for {
		switch {
		case l.ch == 0:
			return l.illegal(line, col, "unterminated template literal")
		case l.ch == '"':
			if l.closesHere(n) {
				flush()
				for i := 0; i < n+1; i++ {
					l.readChar()
				}
				return token.Token{Type: token.TEMPLATE, Line: line, Column: col, Chunks: chunks}
			}
			lit.WriteByte('"')
			l.readChar()
		case l.ch == '{':
			k := l.countRun('{')
			switch {
			case k == n:
				exprLine := l.line
				for i := 0; i < k; i++ {
					l.readChar()
				}
				inner, errTok, ok := l.scanInterpolation(n, line, col)
				if !ok {
					return errTok
				}
				flush()
				chunks = append(chunks, token.Chunk{IsExpr: true, Text: inner, Line: exprLine})
			case k == n+1:
				lit.WriteByte('{')
				for i := 0; i < k; i++ {
					l.readChar()
				}
			case k > n+1:
				lit.WriteString(strings.Repeat("{", k-n))
				for i := 0; i < k; i++ {
					l.readChar()
				}
			default: // k < n
				lit.WriteString(strings.Repeat("{", k))
				for i := 0; i < k; i++ {
					l.readChar()
				}
			}
		case l.ch == '}':
			k := l.countRun('}')
			switch {
			case k == n+1:
				lit.WriteByte('}')
			case k > n+1:
				lit.WriteString(strings.Repeat("}", k-n))
			default: // k <= n
				lit.WriteString(strings.Repeat("}", k))
			}
			for i := 0; i < k; i++ {
				l.readChar()
			}
		default:
			lit.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// closesHere reports whether the '"' at the current position is followed
// immediately by exactly N '}' characters (the template's closing
// sequence), without consuming input.
func (l *Lexer) closesHere(n int) bool {
	idx := l.position + 1
	k := 0
	for idx+k < len(l.input) && l.input[idx+k] == '}' {
		k++
	}
	return k == n
}

// scanInterpolation collects the verbatim source of one interpolation
// chunk, stopping at the first run of '}' whose length is >= N (of which
// exactly N close the interpolation; any extra are left for the outer
// scan). Runs shorter than N are literal '}' characters inside the source.
func (l *Lexer) scanInterpolation(n, line, col int) (string, token.Token, bool) {
	var b strings.Builder
	for {
		if l.ch == 0 {
			return "", l.illegal(line, col, "unterminated interpolation in template literal"), false
		}
		if l.ch == '}' {
			k := l.countRun('}')
			if k >= n {
				for i := 0; i < n; i++ {
					l.readChar()
				}
				return b.String(), token.Token{}, true
			}
			b.WriteString(strings.Repeat("}", k))
			for i := 0; i < k; i++ {
				l.readChar()
			}
			continue
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
}

// ParseIntLiteral and ParseFloatLiteral are small helpers shared with the
// parser so numeric conversion lives in one place.
func ParseIntLiteral(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func ParseFloatLiteral(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
