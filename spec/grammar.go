package spec

import (
	"io"

	"github.com/nihei9/noam/grammar"
	"github.com/nihei9/noam/value"
)

// ParseGrammar reads a grammar written in the grammar notation. Symbols are listed in the order
// they first appear, and the initial nonterminal is the first nonterminal on the left side of
// the first rule. The result is validated before it is returned.
func ParseGrammar(src io.Reader) (*grammar.Grammar, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	g := newGrammarBuilder().build(root)
	err = g.Validate()
	if err != nil {
		return nil, err
	}
	return g, nil
}

type grammarBuilder struct {
	nonterms *value.Set
	terms    *value.Set
}

func newGrammarBuilder() *grammarBuilder {
	return &grammarBuilder{
		nonterms: value.NewSet(),
		terms:    value.NewSet(),
	}
}

func (b *grammarBuilder) build(root *RootNode) *grammar.Grammar {
	g := &grammar.Grammar{}
	for _, rule := range root.Rules {
		lhs := b.symbols(rule.LHS)
		if g.Initial == nil {
			for _, elem := range rule.LHS {
				if elem.Nonterminal != "" {
					g.Initial = value.String(elem.Nonterminal)
					break
				}
			}
		}
		for _, alt := range rule.RHS {
			if alt.Epsilon {
				g.Productions = append(g.Productions, grammar.NewProduction(lhs, value.Epsilon))
				continue
			}
			g.Productions = append(g.Productions, grammar.NewProduction(lhs, b.symbols(alt.Elements)...))
		}
	}
	g.Nonterminals = b.nonterms.Values()
	g.Terminals = b.terms.Values()
	return g
}

func (b *grammarBuilder) symbols(elems []*ElementNode) []value.Value {
	syms := make([]value.Value, len(elems))
	for i, elem := range elems {
		if elem.Nonterminal != "" {
			sym := value.String(elem.Nonterminal)
			b.nonterms.Add(sym)
			syms[i] = sym
			continue
		}
		sym := value.String(elem.Terminal)
		b.terms.Add(sym)
		syms[i] = sym
	}
	return syms
}
