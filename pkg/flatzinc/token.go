package flatzinc

import "fmt"

// tokenType enumerates the FlatZinc lexical vocabulary.
type tokenType uint8

const (
	tokEOF tokenType = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokColon       // :
	tokDoubleColon // ::
	tokSemi        // ;
	tokComma       // ,
	tokDotDot      // ..
	tokLParen      // (
	tokRParen      // )
	tokLBracket    // [
	tokRBracket    // ]
	tokLBrace      // {
	tokRBrace      // }
	tokEq          // =
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokInt:
		return "integer literal"
	case tokFloat:
		return "float literal"
	case tokString:
		return "string literal"
	case tokColon:
		return "':'"
	case tokDoubleColon:
		return "'::'"
	case tokSemi:
		return "';'"
	case tokComma:
		return "','"
	case tokDotDot:
		return "'..'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokEq:
		return "'='"
	}
	return fmt.Sprintf("token(%d)", t)
}

// token is one lexical unit with its source position. Numeric values
// are decoded by the lexer.
type token struct {
	typ      tokenType
	text     string
	intVal   int
	floatVal float64
	at       Loc
}

func (t token) String() string {
	switch t.typ {
	case tokIdent, tokString:
		return fmt.Sprintf("%s %q", t.typ, t.text)
	case tokInt:
		return fmt.Sprintf("%s %d", t.typ, t.intVal)
	case tokFloat:
		return fmt.Sprintf("%s %g", t.typ, t.floatVal)
	default:
		return t.typ.String()
	}
}
