package fsm

import (
	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
)

// Union returns a DFA accepting the words accepted by a or b.
func Union(a, b *Automaton) (*Automaton, error) {
	return product(a, b, func(accA, accB bool) bool {
		return accA || accB
	})
}

// Intersection returns a DFA accepting the words accepted by both a and b.
func Intersection(a, b *Automaton) (*Automaton, error) {
	return product(a, b, func(accA, accB bool) bool {
		return accA && accB
	})
}

// Difference returns a DFA accepting the words accepted by a but not by b.
func Difference(a, b *Automaton) (*Automaton, error) {
	return product(a, b, func(accA, accB bool) bool {
		return accA && !accB
	})
}

// product builds the product of a and b over their whole state spaces. The states of the
// result are value.Tuple pairs. Operands that are not DFAs are determinized first.
func product(a, b *Automaton, accept func(accA, accB bool) bool) (*Automaton, error) {
	if !a.alphabet.Equal(b.alphabet) {
		return nil, verr.New(verr.KindAlphabetMismatch, "automata must have the same alphabet")
	}
	da, err := Determinize(a)
	if err != nil {
		return nil, err
	}
	db, err := Determinize(b)
	if err != nil {
		return nil, err
	}

	p := New()
	p.alphabet = da.alphabet.Clone()
	for i := 0; i < da.states.Len(); i++ {
		sa := da.states.At(i)
		for j := 0; j < db.states.Len(); j++ {
			sb := db.states.At(j)
			s := value.NewTuple(sa, sb)
			err := p.AddState(s)
			if err != nil {
				return nil, err
			}
			if accept(da.IsAccepting(sa), db.IsAccepting(sb)) {
				p.accepting.Add(s)
			}
		}
	}
	p.initial = value.NewTuple(da.initial, db.initial)
	for i := 0; i < p.states.Len(); i++ {
		s := p.states.At(i).(value.Tuple)
		for j := 0; j < p.alphabet.Len(); j++ {
			sym := p.alphabet.At(j)
			p.addTransition(s, sym, value.NewTuple(da.next(s.At(0), sym), db.next(s.At(1), sym)))
		}
	}

	return p, nil
}

// Complement returns a DFA accepting exactly the words a DFA rejects. The DFA must be total,
// which the type DFA implies.
func Complement(dfa *Automaton) (*Automaton, error) {
	if typ := dfa.Type(); typ != TypeDFA {
		return nil, verr.New(verr.KindTypeMismatch, "a DFA is required; got: %v", typ)
	}

	c := dfa.Clone()
	c.accepting = value.NewSet()
	for i := 0; i < dfa.states.Len(); i++ {
		if s := dfa.states.At(i); !dfa.IsAccepting(s) {
			c.accepting.Add(s)
		}
	}
	return c, nil
}

// Concatenation returns an ε-NFA accepting the words uv such that a accepts u and b accepts v.
// The automata must share the alphabet and have disjoint states.
func Concatenation(a, b *Automaton) (*Automaton, error) {
	if !a.alphabet.Equal(b.alphabet) {
		return nil, verr.New(verr.KindAlphabetMismatch, "automata must have the same alphabet")
	}
	for i := 0; i < b.states.Len(); i++ {
		if s := b.states.At(i); a.states.Contains(s) {
			return nil, verr.New(verr.KindStateOverlap, "automata must not share states: %v", s)
		}
	}
	for _, d := range []*Automaton{a, b} {
		err := d.checkInitialState()
		if err != nil {
			return nil, err
		}
	}

	c := a.Clone()
	for i := 0; i < b.states.Len(); i++ {
		c.states.Add(b.states.At(i))
	}
	c.accepting = b.accepting.Clone()
	for _, r := range b.records {
		c.addTransition(r.from, r.symbol, r.to.Values()...)
	}
	for i := 0; i < a.accepting.Len(); i++ {
		c.addTransition(a.accepting.At(i), value.Epsilon, b.initial)
	}
	return c, nil
}

// Kleene returns an ε-NFA accepting the concatenations of zero or more words of a. A fresh
// accepting initial state enters the old initial state, and each old accepting state returns
// to it.
func Kleene(a *Automaton) (*Automaton, error) {
	err := a.checkInitialState()
	if err != nil {
		return nil, err
	}

	k := a.Clone()
	initial := k.freshState("NEW_INITIAL")
	k.states.Add(initial)
	k.addTransition(initial, value.Epsilon, a.initial)
	for i := 0; i < a.accepting.Len(); i++ {
		k.addTransition(a.accepting.At(i), value.Epsilon, initial)
	}
	k.initial = initial
	k.accepting.Add(initial)
	return k, nil
}

// Reverse returns an ε-NFA accepting the reversals of the words of a.
func Reverse(a *Automaton) (*Automaton, error) {
	err := a.checkInitialState()
	if err != nil {
		return nil, err
	}

	r := New()
	r.states = a.states.Clone()
	r.alphabet = a.alphabet.Clone()
	for _, rec := range a.records {
		for i := 0; i < rec.to.Len(); i++ {
			r.addTransition(rec.to.At(i), rec.symbol, rec.from)
		}
	}
	initial := r.freshState("NEW_INITIAL")
	r.states.Add(initial)
	r.initial = initial
	r.accepting.Add(a.initial)
	if a.accepting.Len() > 0 {
		r.addTransition(initial, value.Epsilon, a.accepting.Values()...)
	}
	return r, nil
}

// IsSubset reports whether the language of b is included in the language of a.
func IsSubset(a, b *Automaton) (bool, error) {
	i, err := Intersection(a, b)
	if err != nil {
		return false, err
	}
	db, err := Determinize(b)
	if err != nil {
		return false, err
	}
	return AreEquivalent(db, i)
}
