package ast

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of the tree rooted at n, one node per
// line, with the text of terminal nodes quoted:
//
//	add
//	  Number "1"
//	  load
//	    Identifier "x"
func (n *Node) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if n != nil {
		n.dump(bw, 0)
	}
	return bw.Flush()
}

// String returns the Dump output as a string.
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Dump(&sb)
	return sb.String()
}

func (n *Node) dump(w *bufio.Writer, depth int) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(string(n.Kind))
	if n.Text != "" {
		w.WriteByte(' ')
		w.WriteString(strconv.Quote(n.Text))
	}
	w.WriteByte('\n')
	for _, child := range n.Children {
		if child != nil {
			child.dump(w, depth+1)
		}
	}
}
