package flatzinc

import "strconv"

// lexer turns FlatZinc source text into tokens. '%' starts a comment
// running to end of line. A '-' directly introducing a number is part
// of the literal; FlatZinc has no other use for it.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// lexAll tokenizes the whole input, appending a tokEOF sentinel.
func lexAll(src string) ([]token, *Error) {
	lx := newLexer(src)
	var toks []token
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.typ == tokEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) loc() Loc { return Loc{Line: lx.line, Column: lx.col} }

func (lx *lexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) peekAt(off int) byte {
	if lx.pos+off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+off]
}

func (lx *lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return c
}

func (lx *lexer) skipBlanks() {
	for lx.pos < len(lx.src) {
		switch lx.peek() {
		case ' ', '\t', '\r', '\n':
			lx.advance()
		case '%':
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (lx *lexer) next() (token, *Error) {
	lx.skipBlanks()
	at := lx.loc()
	if lx.pos >= len(lx.src) {
		return token{typ: tokEOF, at: at}, nil
	}
	c := lx.peek()
	switch {
	case isIdentStart(c):
		start := lx.pos
		for lx.pos < len(lx.src) && isIdentPart(lx.peek()) {
			lx.advance()
		}
		return token{typ: tokIdent, text: lx.src[start:lx.pos], at: at}, nil
	case isDigit(c), c == '-' && isDigit(lx.peekAt(1)):
		return lx.number(at)
	case c == '"':
		return lx.stringLit(at)
	}
	lx.advance()
	switch c {
	case ':':
		if lx.peek() == ':' {
			lx.advance()
			return token{typ: tokDoubleColon, at: at}, nil
		}
		return token{typ: tokColon, at: at}, nil
	case ';':
		return token{typ: tokSemi, at: at}, nil
	case ',':
		return token{typ: tokComma, at: at}, nil
	case '.':
		if lx.peek() == '.' {
			lx.advance()
			return token{typ: tokDotDot, at: at}, nil
		}
		return token{}, lexErrorf(at, "unexpected '.'")
	case '(':
		return token{typ: tokLParen, at: at}, nil
	case ')':
		return token{typ: tokRParen, at: at}, nil
	case '[':
		return token{typ: tokLBracket, at: at}, nil
	case ']':
		return token{typ: tokRBracket, at: at}, nil
	case '{':
		return token{typ: tokLBrace, at: at}, nil
	case '}':
		return token{typ: tokRBrace, at: at}, nil
	case '=':
		return token{typ: tokEq, at: at}, nil
	}
	return token{}, lexErrorf(at, "unexpected character %q", string(c))
}

// number lexes an integer or float literal. A '..' after the integer
// part belongs to a range, not to a float.
func (lx *lexer) number(at Loc) (token, *Error) {
	start := lx.pos
	if lx.peek() == '-' {
		lx.advance()
	}
	for lx.pos < len(lx.src) && isDigit(lx.peek()) {
		lx.advance()
	}
	isFloat := false
	if lx.peek() == '.' && isDigit(lx.peekAt(1)) {
		isFloat = true
		lx.advance()
		for lx.pos < len(lx.src) && isDigit(lx.peek()) {
			lx.advance()
		}
	}
	if c := lx.peek(); c == 'e' || c == 'E' {
		off := 1
		if n := lx.peekAt(1); n == '+' || n == '-' {
			off = 2
		}
		if isDigit(lx.peekAt(off)) {
			isFloat = true
			for i := 0; i < off; i++ {
				lx.advance()
			}
			for lx.pos < len(lx.src) && isDigit(lx.peek()) {
				lx.advance()
			}
		}
	}
	text := lx.src[start:lx.pos]
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, lexErrorf(at, "bad float literal %q", text)
		}
		return token{typ: tokFloat, text: text, floatVal: v, at: at}, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return token{}, lexErrorf(at, "bad integer literal %q", text)
	}
	return token{typ: tokInt, text: text, intVal: v, at: at}, nil
}

func (lx *lexer) stringLit(at Loc) (token, *Error) {
	lx.advance() // opening quote
	start := lx.pos
	for lx.pos < len(lx.src) && lx.peek() != '"' && lx.peek() != '\n' {
		lx.advance()
	}
	if lx.peek() != '"' {
		return token{}, lexErrorf(at, "unterminated string literal")
	}
	text := lx.src[start:lx.pos]
	lx.advance() // closing quote
	return token{typ: tokString, text: text, at: at}, nil
}
