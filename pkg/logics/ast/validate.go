package ast

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed indicates a node does not have the shape its kind requires.
var ErrMalformed = errors.New("malformed syntax tree")

// MalformedError describes the first malformed node found in a tree.
type MalformedError struct {
	// Path locates the node from the root, e.g. "$.1.0".
	Path string
	Kind Kind
	Msg  string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed %s node: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("malformed %s node at %s: %s", e.Kind, e.Path, e.Msg)
}

// Unwrap returns ErrMalformed for errors.Is support.
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// CheckArity verifies that n has the number and kinds of children its kind
// requires. Unknown kinds are accepted here; evaluation rejects them.
func (n *Node) CheckArity() error {
	fail := func(format string, args ...any) error {
		return &MalformedError{Kind: n.Kind, Msg: fmt.Sprintf(format, args...)}
	}
	count := len(n.Children)
	want := func(c int) error {
		if count != c {
			return fail("want %d children, have %d", c, count)
		}
		return nil
	}
	for i, child := range n.Children {
		if child == nil {
			return fail("child %d is nil", i)
		}
	}

	switch n.Kind {
	case KindString, KindNumber, KindIdentifier:
		if n.Text == "" {
			return fail("missing text")
		}
		return want(0)
	case KindTrue, KindFalse, KindNone, KindVars:
		return want(0)
	case KindEq, KindNeq, KindLt, KindLtEq, KindGt, KindGtEq, KindIn, KindOuter:
		return want(0)
	case KindLoad, KindPos, KindNeg, KindInvert, KindNot:
		return want(1)
	case KindAttr:
		if err := want(2); err != nil {
			return err
		}
		if n.Children[1].Kind != KindIdentifier {
			return fail("attribute name must be an %s, have %s", KindIdentifier, n.Children[1].Kind)
		}
	case KindIndex, KindAdd, KindSub, KindMul, KindDiv, KindIdiv, KindMod, KindPow, KindAnd, KindOr:
		return want(2)
	case KindSlice, KindIf:
		return want(3)
	case KindCall:
		if count != 1 && count != 2 {
			return fail("want 1 or 2 children, have %d", count)
		}
		if n.Children[0].Kind != KindIdentifier {
			return fail("callee must be an %s, have %s", KindIdentifier, n.Children[0].Kind)
		}
		if count == 2 && n.Children[1].Kind != KindList {
			return fail("arguments must be a %s, have %s", KindList, n.Children[1].Kind)
		}
	case KindDict:
		if count%2 != 0 {
			return fail("want an even number of children, have %d", count)
		}
	case KindCmp:
		if count%2 != 1 {
			return fail("want an odd number of children, have %d", count)
		}
		for i := 1; i < count; i += 2 {
			if !n.Children[i].Kind.IsComparison() {
				return fail("child %d must be a comparison operator, have %s", i, n.Children[i].Kind)
			}
		}
	case KindComprehension:
		if count != 3 && count != 4 {
			return fail("want 3 or 4 children, have %d", count)
		}
		if n.Children[1].Kind != KindIdentifier {
			return fail("binding must be an %s, have %s", KindIdentifier, n.Children[1].Kind)
		}
	}
	return nil
}

// Validate checks the whole tree rooted at root, including that every kind
// is known. A nil root is valid.
func Validate(root *Node) error {
	if root == nil {
		return nil
	}
	return validate(root, "$")
}

func validate(n *Node, path string) error {
	if !n.Kind.Known() {
		return &MalformedError{Path: path, Kind: n.Kind, Msg: "unknown kind"}
	}
	if err := n.CheckArity(); err != nil {
		var me *MalformedError
		if errors.As(err, &me) {
			me.Path = path
		}
		return err
	}
	for i, child := range n.Children {
		if err := validate(child, path+"."+strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

// Known reports whether k is one of the kinds defined by this package.
func (k Kind) Known() bool {
	switch k {
	case KindString, KindNumber, KindTrue, KindFalse, KindNone, KindIdentifier,
		KindLoad, KindVars, KindAttr, KindIndex, KindSlice, KindCall,
		KindList, KindDict, KindStrings,
		KindAdd, KindSub, KindMul, KindDiv, KindIdiv, KindMod, KindPow,
		KindPos, KindNeg, KindInvert, KindNot,
		KindAnd, KindOr, KindIf, KindCmp, KindComprehension:
		return true
	}
	return k.IsComparison()
}
