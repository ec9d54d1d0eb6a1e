// Package ast defines the syntax tree evaluated by the Logics runtime.
//
// A tree is made of Nodes, each carrying a Kind, the raw source text of
// terminal tokens, and an ordered list of children. Trees are produced by
// package parser but can equally be built by hand or decoded from JSON:
//
//	{"kind": "add", "children": [
//	    {"kind": "Number", "text": "1"},
//	    {"kind": "load", "children": [{"kind": "Identifier", "text": "x"}]}
//	]}
//
// Trees are read-only once built and may be shared between goroutines.
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates node types.
type Kind string

// Terminal kinds. String, Number and Identifier carry their source text.
const (
	KindString     Kind = "String"
	KindNumber     Kind = "Number"
	KindTrue       Kind = "True"
	KindFalse      Kind = "False"
	KindNone       Kind = "None"
	KindIdentifier Kind = "Identifier"
)

// Access kinds.
const (
	KindLoad  Kind = "load"  // load(Identifier)
	KindVars  Kind = "vars"  // vars
	KindAttr  Kind = "attr"  // attr(base, Identifier)
	KindIndex Kind = "index" // index(base, key)
	KindSlice Kind = "slice" // slice(base, from, to)
	KindCall  Kind = "call"  // call(Identifier [, list])
)

// Collection kinds.
const (
	KindList    Kind = "list"    // list(item...)
	KindDict    Kind = "dict"    // dict(key, value, key, value...)
	KindStrings Kind = "strings" // strings(part...), adjacent literals
)

// Operator kinds.
const (
	KindAdd    Kind = "add"
	KindSub    Kind = "sub"
	KindMul    Kind = "mul"
	KindDiv    Kind = "div"
	KindIdiv   Kind = "idiv"
	KindMod    Kind = "mod"
	KindPow    Kind = "pow"
	KindPos    Kind = "pos"
	KindNeg    Kind = "neg"
	KindInvert Kind = "invert"
	KindNot    Kind = "not"
)

// Flow kinds.
const (
	KindAnd           Kind = "and"           // and(left, right)
	KindOr            Kind = "or"            // or(left, right)
	KindIf            Kind = "if"            // if(then, cond, else)
	KindCmp           Kind = "cmp"           // cmp(operand [, op, operand]...)
	KindComprehension Kind = "comprehension" // comprehension(body, Identifier, iterable [, filter])
)

// Comparison operator kinds, only valid as odd-positioned children of cmp.
const (
	KindEq    Kind = "eq"
	KindNeq   Kind = "neq"
	KindLt    Kind = "lt"
	KindLtEq  Kind = "lteq"
	KindGt    Kind = "gt"
	KindGtEq  Kind = "gteq"
	KindIn    Kind = "in"
	KindOuter Kind = "outer" // not in
)

// IsComparison reports whether k is a comparison operator.
func (k Kind) IsComparison() bool {
	switch k {
	case KindEq, KindNeq, KindLt, KindLtEq, KindGt, KindGtEq, KindIn, KindOuter:
		return true
	}
	return false
}

// Node is a single syntax tree element.
type Node struct {
	Kind     Kind    `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// New returns an inner node of the given kind.
func New(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Leaf returns a terminal node holding the raw source text.
func Leaf(kind Kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// Child returns the i-th child, or nil when there is none.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// FromJSON decodes and validates a tree. The literal null decodes to a nil
// tree, which is an empty program.
func FromJSON(data []byte) (*Node, error) {
	var root *Node
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode syntax tree: %w", err)
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}
