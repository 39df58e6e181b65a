package fsm

import (
	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
)

// Minimize returns the minimal DFA accepting the language of an automaton of any type.
func Minimize(a *Automaton) (*Automaton, error) {
	d, err := Determinize(a)
	if err != nil {
		return nil, err
	}
	d, err = d.RemoveUnreachableStates()
	if err != nil {
		return nil, err
	}
	return RemoveEquivalentStates(d)
}

// RemoveEquivalentStates merges the equivalent states of a DFA. Each class of equivalent states
// is represented by its member appearing first in the states of the DFA.
func RemoveEquivalentStates(dfa *Automaton) (*Automaton, error) {
	if typ := dfa.Type(); typ != TypeDFA {
		return nil, verr.New(verr.KindTypeMismatch, "a DFA is required; got: %v", typ)
	}

	states := dfa.states.Values()
	rep := map[string]value.Value{}
	for i, si := range states {
		if _, ok := rep[si.Key()]; ok {
			continue
		}
		for _, sj := range states[i+1:] {
			if _, ok := rep[sj.Key()]; ok {
				continue
			}
			if equivalentStates(dfa, si, dfa, sj) {
				rep[sj.Key()] = si
			}
		}
	}
	resolve := func(s value.Value) value.Value {
		if r, ok := rep[s.Key()]; ok {
			return r
		}
		return s
	}

	m := New()
	for _, s := range states {
		if _, ok := rep[s.Key()]; !ok {
			m.states.Add(s)
		}
	}
	m.alphabet = dfa.alphabet.Clone()
	if dfa.initial != nil {
		m.initial = resolve(dfa.initial)
	}
	for i := 0; i < dfa.accepting.Len(); i++ {
		if s := dfa.accepting.At(i); m.states.Contains(s) {
			m.accepting.Add(s)
		}
	}
	for _, r := range dfa.records {
		if _, ok := rep[r.from.Key()]; ok {
			continue
		}
		m.addTransition(r.from, r.symbol, resolve(r.to.At(0)))
	}

	return m, nil
}

// AreEquivalentStates reports whether state sa of DFA a and state sb of DFA b accept the same
// words.
func AreEquivalentStates(a *Automaton, sa value.Value, b *Automaton, sb value.Value) (bool, error) {
	for _, d := range []*Automaton{a, b} {
		if typ := d.Type(); typ != TypeDFA {
			return false, verr.New(verr.KindTypeMismatch, "a DFA is required; got: %v", typ)
		}
	}
	if !a.alphabet.Equal(b.alphabet) {
		return false, verr.New(verr.KindAlphabetMismatch, "automata must have the same alphabet")
	}
	err := a.checkStates([]value.Value{sa})
	if err != nil {
		return false, err
	}
	err = b.checkStates([]value.Value{sb})
	if err != nil {
		return false, err
	}
	return equivalentStates(a, sa, b, sb), nil
}

// AreEquivalent reports whether two DFAs accept the same language.
func AreEquivalent(a, b *Automaton) (bool, error) {
	for _, d := range []*Automaton{a, b} {
		err := d.checkInitialState()
		if err != nil {
			return false, err
		}
	}
	return AreEquivalentStates(a, a.initial, b, b.initial)
}

// equivalentStates explores the pairs of states reachable from (sa, sb) by reading the same
// word and fails on the first pair that disagrees on acceptance. Both automata must be DFAs
// over the same alphabet.
func equivalentStates(a *Automaton, sa value.Value, b *Automaton, sb value.Value) bool {
	type pair struct {
		a value.Value
		b value.Value
	}

	visited := value.NewSet(value.NewTuple(sa, sb))
	queue := []pair{{a: sa, b: sb}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if a.IsAccepting(p.a) != b.IsAccepting(p.b) {
			return false
		}
		for i := 0; i < a.alphabet.Len(); i++ {
			sym := a.alphabet.At(i)
			na := a.next(p.a, sym)
			nb := b.next(p.b, sym)
			if visited.Add(value.NewTuple(na, nb)) {
				queue = append(queue, pair{a: na, b: nb})
			}
		}
	}
	return true
}
