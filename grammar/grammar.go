// Package grammar implements formal grammars: validation, classification into the Chomsky
// hierarchy and conversion from finite automata.
package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/value"
)

type Type string

const (
	TypeRegular          = Type("regular")
	TypeContextFree      = Type("context-free")
	TypeContextSensitive = Type("context-sensitive")
	TypeUnrestricted     = Type("unrestricted")
)

func (t Type) String() string {
	return string(t)
}

type Grammar struct {
	Nonterminals []value.Value
	Terminals    []value.Value
	Initial      value.Value
	Productions  []*Production
}

// Validate checks the invariants of the grammar in a fixed order and returns the first
// violation.
func (g *Grammar) Validate() error {
	if g.Initial == nil {
		return ErrNoInitialNonterminal
	}
	for _, syms := range [][]value.Value{g.Nonterminals, g.Terminals} {
		for i, sym := range syms {
			if sym == nil {
				return semanticError(ErrNilSymbol, "index: %v", i)
			}
		}
	}
	if len(g.Nonterminals) == 0 {
		return ErrNoNonterminals
	}
	if len(g.Terminals) == 0 {
		return ErrNoTerminals
	}
	if i := value.HasDuplicates(g.Nonterminals); i >= 0 {
		return semanticError(ErrDuplicateNonterminal, "nonterminal: %v", g.Nonterminals[i])
	}
	if i := value.HasDuplicates(g.Terminals); i >= 0 {
		return semanticError(ErrDuplicateTerminal, "terminal: %v", g.Terminals[i])
	}

	nonterms := value.NewSet(g.Nonterminals...)
	terms := value.NewSet(g.Terminals...)
	for _, sym := range g.Terminals {
		if nonterms.Contains(sym) {
			return semanticError(ErrSymbolOverlap, "symbol: %v", sym)
		}
	}
	if !nonterms.Contains(g.Initial) {
		return semanticError(ErrUnknownInitialNonterminal, "nonterminal: %v", g.Initial)
	}

	defined := func(sym value.Value) bool {
		return nonterms.Contains(sym) || terms.Contains(sym)
	}
	prods := newProductionSet()
	for _, prod := range g.Productions {
		if len(prod.Left) == 0 {
			return semanticError(ErrEmptyLeftSide, "production: %v", prod)
		}
		for _, sym := range prod.Left {
			if !defined(sym) {
				return semanticError(ErrUndefinedLeftSymbol, "production: %v, symbol: %v", prod, sym)
			}
		}
		if !prod.IsEpsilon() {
			if len(prod.Right) == 0 {
				return semanticError(ErrEmptyRightSide, "production: %v", prod)
			}
			for _, sym := range prod.Right {
				if !defined(sym) {
					return semanticError(ErrUndefinedRightSymbol, "production: %v, symbol: %v", prod, sym)
				}
			}
		}
		if !prods.append(prod) {
			return semanticError(ErrDuplicateProduction, "production: %v", prod)
		}
	}

	return nil
}

type orientation int

const (
	orientationUnknown orientation = iota
	orientationLeft
	orientationRight
)

// DetermineType classifies the grammar by examining the productions in order. The type only
// moves up the hierarchy: a production that does not fit the current type escalates it.
func (g *Grammar) DetermineType() Type {
	nonterms := value.NewSet(g.Nonterminals...)
	typ := TypeRegular
	orient := orientationUnknown
	for _, prod := range g.Productions {
		if typ == TypeRegular && !isRegular(prod, nonterms, &orient) {
			typ = TypeContextFree
		}
		if typ == TypeContextFree && !isContextFree(prod, nonterms) {
			typ = TypeContextSensitive
		}
		if typ == TypeContextSensitive && !isContextSensitive(prod, nonterms) {
			return TypeUnrestricted
		}
	}
	return typ
}

func isContextFree(prod *Production, nonterms *value.Set) bool {
	return len(prod.Left) == 1 && nonterms.Contains(prod.Left[0])
}

// isRegular reports whether a production is left- or right-regular. All regular productions of
// a grammar must lean the same way, which orient records.
func isRegular(prod *Production, nonterms *value.Set, orient *orientation) bool {
	if !isContextFree(prod, nonterms) {
		return false
	}
	if len(prod.Right) == 1 {
		return true
	}

	count := 0
	idx := -1
	for i, sym := range prod.Right {
		if nonterms.Contains(sym) {
			count++
			idx = i
		}
	}
	switch {
	case count == 0:
		return true
	case count > 1:
		return false
	}

	var o orientation
	switch idx {
	case 0:
		o = orientationLeft
	case len(prod.Right) - 1:
		o = orientationRight
	default:
		return false
	}
	if *orient == orientationUnknown {
		*orient = o
		return true
	}
	return *orient == o
}

// isContextSensitive reports whether a production has the form αAβ -> αγβ where A is the only
// nonterminal on the left side and γ is not empty.
func isContextSensitive(prod *Production, nonterms *value.Set) bool {
	idx := -1
	for i, sym := range prod.Left {
		if !nonterms.Contains(sym) {
			continue
		}
		if idx >= 0 {
			return false
		}
		idx = i
	}
	if idx < 0 {
		return false
	}

	prefix := prod.Left[:idx]
	suffix := prod.Left[idx+1:]
	if len(prod.Right) <= len(prefix)+len(suffix) {
		return false
	}
	for i, sym := range prefix {
		if !value.Equal(sym, prod.Right[i]) {
			return false
		}
	}
	for i, sym := range suffix {
		if !value.Equal(sym, prod.Right[len(prod.Right)-len(suffix)+i]) {
			return false
		}
	}
	return true
}

// FromAutomaton derives a regular grammar generating the language of an automaton. States become
// nonterminals and symbols become terminals. A transition from p to q on a becomes p -> a q, an
// epsilon transition becomes p -> q, and an accepting state p yields p -> ε.
//
// A transition with several targets yields one production per target, not a single production
// p -> a q1 q2 ..., so the grammar stays right-linear and len(Productions) may exceed the number of
// transitions plus accepting states.
func FromAutomaton(a *fsm.Automaton) *Grammar {
	g := &Grammar{
		Nonterminals: a.States(),
		Terminals:    a.Alphabet(),
		Initial:      a.InitialState(),
	}
	for _, t := range a.Transitions() {
		for _, to := range t.To {
			if value.IsEpsilon(t.Symbol) {
				g.Productions = append(g.Productions, NewProduction([]value.Value{t.From}, to))
			} else {
				g.Productions = append(g.Productions, NewProduction([]value.Value{t.From}, t.Symbol, to))
			}
		}
	}
	for _, s := range a.AcceptingStates() {
		g.Productions = append(g.Productions, NewProduction([]value.Value{s}, value.Epsilon))
	}
	return g
}

// String returns the grammar in the notation the spec package parses. The productions sharing a
// left side are joined into one rule, and the rule of the initial nonterminal comes first when
// it has one.
func (g *Grammar) String() string {
	nonterms := value.NewSet(g.Nonterminals...)
	prods := newProductionSet()
	for _, prod := range g.Productions {
		if len(prod.Left) == 1 && value.Equal(prod.Left[0], g.Initial) {
			prods.append(prod)
		}
	}
	for _, prod := range g.Productions {
		prods.append(prod)
	}

	var b strings.Builder
	for _, group := range prods.groups() {
		writeSymbols(&b, group[0].Left, nonterms)
		for i, prod := range group {
			if i == 0 {
				b.WriteString(" ->")
			} else {
				b.WriteString("\n    |")
			}
			b.WriteByte(' ')
			if prod.IsEpsilon() {
				b.WriteString("ε")
				continue
			}
			writeSymbols(&b, prod.Right, nonterms)
		}
		b.WriteString("\n    ;\n")
	}
	return b.String()
}

func writeSymbols(b *strings.Builder, syms []value.Value, nonterms *value.Set) {
	for i, sym := range syms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatSymbol(sym, nonterms))
	}
}

func formatSymbol(sym value.Value, nonterms *value.Set) string {
	s := sym.String()
	if !nonterms.Contains(sym) {
		return fmt.Sprintf("'%v'", s)
	}
	if isIdentifier(s) {
		return s
	}
	return fmt.Sprintf("<%v>", s)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}
