package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer splits source text into tokens.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// tokenize returns every token of the source, terminated by an EOF token.
func tokenize(src string) ([]token, error) {
	l := newLexer(src)
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.typ == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return newSyntaxError(line, col, format, args...)
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case r == '#':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case unicode.IsSpace(r):
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	line, col, start := l.line, l.col, l.pos
	emit := func(typ tokenType) token {
		return token{typ: typ, text: l.src[start:l.pos], line: line, col: col}
	}

	if l.pos >= len(l.src) {
		return token{typ: tokenEOF, line: line, col: col}, nil
	}

	r := l.peek()
	switch {
	case isNameStart(r):
		for isNameChar(l.peek()) {
			l.advance()
		}
		return emit(tokenName), nil
	case isDigit(r) || (r == '.' && isDigit(rune(l.peekAt(1)))):
		l.scanNumber()
		return emit(tokenNumber), nil
	case r == '"' || r == '\'':
		if err := l.scanString(r); err != nil {
			return token{}, err
		}
		return emit(tokenString), nil
	}

	for _, p := range punctuation {
		if strings.HasPrefix(l.src[l.pos:], p) {
			for range p {
				l.advance()
			}
			return emit(tokenPunct), nil
		}
	}
	return token{}, l.errorf(line, col, "unexpected character %q", r)
}

func (l *lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(rune(l.peekAt(1))) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		sign := 0
		if s := l.peekAt(1); s == '+' || s == '-' {
			sign = 1
		}
		if isDigit(rune(l.peekAt(1 + sign))) {
			l.advance()
			if sign == 1 {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
}

func (l *lexer) scanString(quote rune) error {
	line, col := l.line, l.col
	l.advance()
	for {
		switch r := l.peek(); r {
		case -1, '\n':
			return l.errorf(line, col, "unterminated string literal")
		case '\\':
			l.advance()
			if l.peek() == -1 {
				return l.errorf(line, col, "unterminated string literal")
			}
			l.advance()
		case quote:
			l.advance()
			return nil
		default:
			l.advance()
		}
	}
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
