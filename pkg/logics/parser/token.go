package parser

import "fmt"

// tokenType classifies lexical tokens.
type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenName
	tokenNumber
	tokenString
	tokenPunct
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenName:
		return "name"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	default:
		return "operator"
	}
}

// token is a lexeme with its position. Keywords are names; the parser
// tells them apart by text.
type token struct {
	typ  tokenType
	text string
	line int
	col  int
}

func (t token) String() string {
	if t.typ == tokenEOF {
		return t.typ.String()
	}
	return fmt.Sprintf("%s %q", t.typ, t.text)
}

// keywords may not be used as variable names.
var keywords = map[string]bool{
	"and":   true,
	"or":    true,
	"not":   true,
	"if":    true,
	"else":  true,
	"for":   true,
	"in":    true,
	"True":  true,
	"False": true,
	"None":  true,
	"vars":  true,
}

// punctuation lists operators longest first so the lexer can match
// greedily.
var punctuation = []string{
	"**", "//", "==", "!=", "<>", "<=", ">=",
	"<", ">", "+", "-", "*", "/", "%", "~",
	"(", ")", "[", "]", "{", "}", ",", ":", ".",
}
