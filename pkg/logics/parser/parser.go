// Package parser turns Logics source text into the syntax tree defined by
// package ast.
//
// The grammar is Python-flavoured, lowest precedence first:
//
//	test       := or_test ["if" or_test "else" test]
//	or_test    := and_test ("or" and_test)*
//	and_test   := not_test ("and" not_test)*
//	not_test   := "not" not_test | comparison
//	comparison := arith (comp_op arith)*
//	arith      := term (("+" | "-") term)*
//	term       := factor (("*" | "/" | "//" | "%") factor)*
//	factor     := ("+" | "-" | "~") factor | power
//	power      := primary ["**" factor]
//	primary    := atom ("(" [args] ")" | "[" subscript "]" | "." NAME)*
//	atom       := "(" test ")" | list | dict | STRING+ | NUMBER
//	            | "True" | "False" | "None" | "vars" | NAME
//
// where comp_op is one of < > == >= <= != <> in, "not in". Lists may be
// written as comprehensions: [body for name in iterable if filter].
// A # starts a comment that runs to the end of the line.
package parser

import (
	"github.com/randalmurphal/logics/pkg/logics/ast"
)

// DefaultMaxDepth bounds expression nesting.
const DefaultMaxDepth = 256

// Parser converts source text into syntax trees. A Parser holds no state
// between calls and is safe for concurrent use.
type Parser struct {
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth of parenthesized, unary and
// conditional expressions. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src with a default Parser.
func Parse(src string) (*ast.Node, error) {
	return New().Parse(src)
}

// Parse parses a single expression. Empty or comment-only source yields a
// nil tree and no error. Failures are *SyntaxError values.
func (p *Parser) Parse(src string) (*ast.Node, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	s := &state{tokens: tokens, maxDepth: p.maxDepth}
	if s.peek().typ == tokenEOF {
		return nil, nil
	}
	root, err := s.parseTest()
	if err != nil {
		return nil, err
	}
	if tok := s.peek(); tok.typ != tokenEOF {
		return nil, s.unexpected(tok)
	}
	return root, nil
}

// state is the cursor of a single Parse call.
type state struct {
	tokens   []token
	pos      int
	depth    int
	maxDepth int
}

func (s *state) peek() token {
	return s.tokens[s.pos]
}

func (s *state) peekAt(offset int) token {
	if i := s.pos + offset; i < len(s.tokens) {
		return s.tokens[i]
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *state) next() token {
	tok := s.tokens[s.pos]
	if tok.typ != tokenEOF {
		s.pos++
	}
	return tok
}

func (s *state) isPunct(text string) bool {
	tok := s.peek()
	return tok.typ == tokenPunct && tok.text == text
}

func (s *state) isKeyword(text string) bool {
	tok := s.peek()
	return tok.typ == tokenName && tok.text == text
}

func (s *state) expectPunct(text string) error {
	if !s.isPunct(text) {
		tok := s.peek()
		return newSyntaxError(tok.line, tok.col, "expected %q, found %s", text, tok)
	}
	s.next()
	return nil
}

func (s *state) expectKeyword(text string) error {
	if !s.isKeyword(text) {
		tok := s.peek()
		return newSyntaxError(tok.line, tok.col, "expected %q, found %s", text, tok)
	}
	s.next()
	return nil
}

func (s *state) unexpected(tok token) error {
	return newSyntaxError(tok.line, tok.col, "unexpected %s", tok)
}

func (s *state) enter() error {
	s.depth++
	if s.depth > s.maxDepth {
		tok := s.peek()
		return newSyntaxError(tok.line, tok.col, "expression nested too deeply")
	}
	return nil
}

func (s *state) leave() {
	s.depth--
}

func (s *state) parseTest() (*ast.Node, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	then, err := s.parseOr()
	if err != nil {
		return nil, err
	}
	if !s.isKeyword("if") {
		return then, nil
	}
	s.next()
	cond, err := s.parseOr()
	if err != nil {
		return nil, err
	}
	if err := s.expectKeyword("else"); err != nil {
		return nil, err
	}
	alt, err := s.parseTest()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindIf, then, cond, alt), nil
}

func (s *state) parseOr() (*ast.Node, error) {
	left, err := s.parseAnd()
	if err != nil {
		return nil, err
	}
	for s.isKeyword("or") {
		s.next()
		right, err := s.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.KindOr, left, right)
	}
	return left, nil
}

func (s *state) parseAnd() (*ast.Node, error) {
	left, err := s.parseNot()
	if err != nil {
		return nil, err
	}
	for s.isKeyword("and") {
		s.next()
		right, err := s.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.KindAnd, left, right)
	}
	return left, nil
}

func (s *state) parseNot() (*ast.Node, error) {
	if !s.isKeyword("not") {
		return s.parseComparison()
	}
	s.next()
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	operand, err := s.parseNot()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindNot, operand), nil
}

var comparisonOps = map[string]ast.Kind{
	"==": ast.KindEq,
	"!=": ast.KindNeq,
	"<>": ast.KindNeq,
	"<":  ast.KindLt,
	"<=": ast.KindLtEq,
	">":  ast.KindGt,
	">=": ast.KindGtEq,
}

// comparisonOp consumes a comparison operator if one is next.
func (s *state) comparisonOp() (ast.Kind, bool) {
	tok := s.peek()
	switch {
	case tok.typ == tokenPunct:
		if kind, ok := comparisonOps[tok.text]; ok {
			s.next()
			return kind, true
		}
	case s.isKeyword("in"):
		s.next()
		return ast.KindIn, true
	case s.isKeyword("not"):
		if after := s.peekAt(1); after.typ == tokenName && after.text == "in" {
			s.next()
			s.next()
			return ast.KindOuter, true
		}
	}
	return "", false
}

func (s *state) parseComparison() (*ast.Node, error) {
	first, err := s.parseArith()
	if err != nil {
		return nil, err
	}
	children := []*ast.Node{first}
	for {
		op, ok := s.comparisonOp()
		if !ok {
			break
		}
		operand, err := s.parseArith()
		if err != nil {
			return nil, err
		}
		children = append(children, ast.New(op), operand)
	}
	if len(children) == 1 {
		return first, nil
	}
	return ast.New(ast.KindCmp, children...), nil
}

var (
	arithOps = map[string]ast.Kind{"+": ast.KindAdd, "-": ast.KindSub}
	termOps  = map[string]ast.Kind{"*": ast.KindMul, "/": ast.KindDiv, "//": ast.KindIdiv, "%": ast.KindMod}
	unaryOps = map[string]ast.Kind{"+": ast.KindPos, "-": ast.KindNeg, "~": ast.KindInvert}
)

// binaryOp consumes an operator from ops if one is next.
func (s *state) binaryOp(ops map[string]ast.Kind) (ast.Kind, bool) {
	tok := s.peek()
	if tok.typ != tokenPunct {
		return "", false
	}
	kind, ok := ops[tok.text]
	if ok {
		s.next()
	}
	return kind, ok
}

func (s *state) parseArith() (*ast.Node, error) {
	left, err := s.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := s.binaryOp(arithOps)
		if !ok {
			return left, nil
		}
		right, err := s.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.New(op, left, right)
	}
}

func (s *state) parseTerm() (*ast.Node, error) {
	left, err := s.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := s.binaryOp(termOps)
		if !ok {
			return left, nil
		}
		right, err := s.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.New(op, left, right)
	}
}

func (s *state) parseFactor() (*ast.Node, error) {
	op, ok := s.binaryOp(unaryOps)
	if !ok {
		return s.parsePower()
	}
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	operand, err := s.parseFactor()
	if err != nil {
		return nil, err
	}
	return ast.New(op, operand), nil
}

func (s *state) parsePower() (*ast.Node, error) {
	base, err := s.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !s.isPunct("**") {
		return base, nil
	}
	s.next()
	exp, err := s.parseFactor()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindPow, base, exp), nil
}

func (s *state) parsePrimary() (*ast.Node, error) {
	first := s.peek()
	node, err := s.parseAtom()
	if err != nil {
		return nil, err
	}
	callable := first.typ == tokenName && !keywords[first.text]

	for {
		switch {
		case s.isPunct("("):
			if !callable {
				tok := s.peek()
				return nil, newSyntaxError(tok.line, tok.col, "only named functions can be called")
			}
			s.next()
			call := ast.New(ast.KindCall, ast.Leaf(ast.KindIdentifier, first.text))
			if !s.isPunct(")") {
				args, err := s.parseItems(")")
				if err != nil {
					return nil, err
				}
				call.Children = append(call.Children, ast.New(ast.KindList, args...))
			}
			if err := s.expectPunct(")"); err != nil {
				return nil, err
			}
			node = call
		case s.isPunct("["):
			node, err = s.parseSubscript(node)
			if err != nil {
				return nil, err
			}
		case s.isPunct("."):
			s.next()
			name := s.next()
			if name.typ != tokenName {
				return nil, newSyntaxError(name.line, name.col, "expected attribute name, found %s", name)
			}
			node = ast.New(ast.KindAttr, node, ast.Leaf(ast.KindIdentifier, name.text))
		default:
			return node, nil
		}
		callable = false
	}
}

func (s *state) parseSubscript(base *ast.Node) (*ast.Node, error) {
	s.next()
	from := ast.New(ast.KindNone)
	if !s.isPunct(":") {
		key, err := s.parseTest()
		if err != nil {
			return nil, err
		}
		if s.isPunct("]") {
			s.next()
			return ast.New(ast.KindIndex, base, key), nil
		}
		from = key
	}
	if err := s.expectPunct(":"); err != nil {
		return nil, err
	}
	to := ast.New(ast.KindNone)
	if !s.isPunct("]") {
		var err error
		if to, err = s.parseTest(); err != nil {
			return nil, err
		}
	}
	if err := s.expectPunct("]"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindSlice, base, from, to), nil
}

func (s *state) parseAtom() (*ast.Node, error) {
	tok := s.peek()
	switch tok.typ {
	case tokenNumber:
		s.next()
		return ast.Leaf(ast.KindNumber, tok.text), nil
	case tokenString:
		var parts []*ast.Node
		for s.peek().typ == tokenString {
			parts = append(parts, ast.Leaf(ast.KindString, s.next().text))
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		return ast.New(ast.KindStrings, parts...), nil
	case tokenName:
		switch tok.text {
		case "True":
			s.next()
			return ast.New(ast.KindTrue), nil
		case "False":
			s.next()
			return ast.New(ast.KindFalse), nil
		case "None":
			s.next()
			return ast.New(ast.KindNone), nil
		case "vars":
			s.next()
			return ast.New(ast.KindVars), nil
		}
		if keywords[tok.text] {
			return nil, s.unexpected(tok)
		}
		s.next()
		return ast.New(ast.KindLoad, ast.Leaf(ast.KindIdentifier, tok.text)), nil
	case tokenPunct:
		switch tok.text {
		case "(":
			s.next()
			inner, err := s.parseTest()
			if err != nil {
				return nil, err
			}
			if err := s.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "[":
			return s.parseList()
		case "{":
			return s.parseDict()
		}
	}
	return nil, s.unexpected(tok)
}

// parseItems parses a comma-separated, possibly trailing-comma terminated
// sequence of expressions up to, but not including, the closing token.
func (s *state) parseItems(closing string) ([]*ast.Node, error) {
	var items []*ast.Node
	for !s.isPunct(closing) {
		item, err := s.parseTest()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !s.isPunct(",") {
			break
		}
		s.next()
	}
	return items, nil
}

func (s *state) parseList() (*ast.Node, error) {
	s.next()
	if s.isPunct("]") {
		s.next()
		return ast.New(ast.KindList), nil
	}

	first, err := s.parseTest()
	if err != nil {
		return nil, err
	}
	if s.isKeyword("for") {
		return s.parseComprehension(first)
	}

	items := []*ast.Node{first}
	if s.isPunct(",") {
		s.next()
		rest, err := s.parseItems("]")
		if err != nil {
			return nil, err
		}
		items = append(items, rest...)
	}
	if err := s.expectPunct("]"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindList, items...), nil
}

func (s *state) parseComprehension(body *ast.Node) (*ast.Node, error) {
	s.next()
	name := s.next()
	if name.typ != tokenName || keywords[name.text] {
		return nil, newSyntaxError(name.line, name.col, "expected loop variable, found %s", name)
	}
	if err := s.expectKeyword("in"); err != nil {
		return nil, err
	}
	iterable, err := s.parseOr()
	if err != nil {
		return nil, err
	}
	children := []*ast.Node{body, ast.Leaf(ast.KindIdentifier, name.text), iterable}
	if s.isKeyword("if") {
		s.next()
		filter, err := s.parseTest()
		if err != nil {
			return nil, err
		}
		children = append(children, filter)
	}
	if err := s.expectPunct("]"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindComprehension, children...), nil
}

func (s *state) parseDict() (*ast.Node, error) {
	s.next()
	var children []*ast.Node
	for !s.isPunct("}") {
		key, err := s.parseTest()
		if err != nil {
			return nil, err
		}
		if err := s.expectPunct(":"); err != nil {
			return nil, err
		}
		item, err := s.parseTest()
		if err != nil {
			return nil, err
		}
		children = append(children, key, item)
		if !s.isPunct(",") {
			break
		}
		s.next()
	}
	if err := s.expectPunct("}"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindDict, children...), nil
}
