// Package regex represents regular expressions as syntax trees and lowers them to automata.
package regex

import (
	"fmt"
	"strings"

	"github.com/nihei9/noam/value"
)

// Node is a node of a regular expression tree. The implementations in this package are the only
// ones.
type Node interface {
	fmt.Stringer
	isNode()
}

// Alternation matches any of its choices.
type Alternation struct {
	Choices []Node
}

// Sequence matches its elements one after another.
type Sequence struct {
	Elements []Node
}

// KleeneStar matches zero or more repetitions of Expr.
type KleeneStar struct {
	Expr Node
}

// Literal matches one symbol.
type Literal struct {
	Symbol value.Value
}

// Epsilon matches the empty word.
type Epsilon struct{}

func (*Alternation) isNode() {}
func (*Sequence) isNode()    {}
func (*KleeneStar) isNode()  {}
func (*Literal) isNode()     {}
func (*Epsilon) isNode()     {}

func NewAlternation(choices ...Node) *Alternation {
	return &Alternation{
		Choices: choices,
	}
}

func NewSequence(elems ...Node) *Sequence {
	return &Sequence{
		Elements: elems,
	}
}

func NewKleeneStar(expr Node) *KleeneStar {
	return &KleeneStar{
		Expr: expr,
	}
}

func NewLiteral(sym value.Value) *Literal {
	return &Literal{
		Symbol: sym,
	}
}

func NewEpsilon() *Epsilon {
	return &Epsilon{}
}

func (n *Alternation) String() string {
	cs := make([]string, len(n.Choices))
	for i, c := range n.Choices {
		cs[i] = c.String()
	}
	return "(" + strings.Join(cs, "|") + ")"
}

func (n *Sequence) String() string {
	if len(n.Elements) == 0 {
		return "ε"
	}
	var b strings.Builder
	for _, e := range n.Elements {
		b.WriteString(e.String())
	}
	return b.String()
}

func (n *KleeneStar) String() string {
	s := n.Expr.String()
	switch n.Expr.(type) {
	case *Alternation, *Literal, *Epsilon:
	default:
		s = "(" + s + ")"
	}
	return s + "*"
}

func (n *Literal) String() string {
	return fmt.Sprintf("%v", n.Symbol)
}

func (n *Epsilon) String() string {
	return "ε"
}
