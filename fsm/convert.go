package fsm

import (
	"sort"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
)

// ConvertNFAToDFA converts an NFA into an equivalent DFA by the subset construction.
//
// The states of the DFA are value.Group values. Every state s of the NFA becomes {s}, and a
// set of states reached together becomes one group state. When a state has no transition on
// a symbol, the DFA moves to the empty group {}, which loops on every symbol and is never
// accepting.
func ConvertNFAToDFA(nfa *Automaton) (*Automaton, error) {
	if typ := nfa.Type(); typ != TypeNFA {
		return nil, verr.New(verr.KindTypeMismatch, "an NFA is required; got: %v", typ)
	}
	err := nfa.checkInitialState()
	if err != nil {
		return nil, err
	}

	dfa := New()
	for i := 0; i < nfa.alphabet.Len(); i++ {
		err := dfa.AddSymbol(nfa.alphabet.At(i))
		if err != nil {
			return nil, err
		}
	}
	for i := 0; i < nfa.states.Len(); i++ {
		err := dfa.AddState(value.NewGroup(nfa.states.At(i)))
		if err != nil {
			return nil, err
		}
	}
	dfa.initial = value.NewGroup(nfa.initial)
	for i := 0; i < nfa.accepting.Len(); i++ {
		dfa.accepting.Add(value.NewGroup(nfa.accepting.At(i)))
	}

	type trans struct {
		from   value.Value
		symbol value.Value
		to     value.Value
	}
	var ts []trans

	queued := value.NewSet()
	var queue []value.Group
	enqueue := func(g value.Group) {
		if g.Len() < 2 || dfa.states.Contains(g) || !queued.Add(g) {
			return
		}
		queue = append(queue, g)
	}

	for _, r := range nfa.records {
		if r.to.Len() == 0 {
			continue
		}
		g := r.to.Freeze()
		ts = append(ts, trans{
			from:   value.NewGroup(r.from),
			symbol: r.symbol,
			to:     g,
		})
		enqueue(g)
	}

	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]

		err := dfa.AddState(g)
		if err != nil {
			return nil, err
		}
		members := value.NewSet(g.Elements()...)
		if nfa.accepting.ContainsAny(g.Elements()...) {
			dfa.accepting.Add(g)
		}
		for i := 0; i < nfa.alphabet.Len(); i++ {
			sym := nfa.alphabet.At(i)
			img := nfa.makeTransition(members, sym)
			if img.Len() == 0 {
				continue
			}
			to := img.Freeze()
			ts = append(ts, trans{
				from:   g,
				symbol: sym,
				to:     to,
			})
			enqueue(to)
		}
	}

	for _, t := range ts {
		dfa.addTransition(t.from, t.symbol, t.to)
	}

	errState := value.NewGroup()
	for i := 0; i < dfa.states.Len(); i++ {
		s := dfa.states.At(i)
		for j := 0; j < dfa.alphabet.Len(); j++ {
			sym := dfa.alphabet.At(j)
			if _, ok := dfa.lookup(s, sym); ok {
				continue
			}
			if !dfa.states.Contains(errState) {
				err := dfa.AddState(errState)
				if err != nil {
					return nil, err
				}
			}
			dfa.addTransition(s, sym, errState)
		}
	}

	return dfa, nil
}

// ConvertENFAToNFA removes the epsilon transitions of an ε-NFA. The transition of a state s on
// a symbol a becomes MakeTransition({s}, a), and the initial state becomes accepting when its
// epsilon closure contains an accepting state.
func ConvertENFAToNFA(enfa *Automaton) (*Automaton, error) {
	if typ := enfa.Type(); typ != TypeENFA {
		return nil, verr.New(verr.KindTypeMismatch, "an ε-NFA is required; got: %v", typ)
	}
	err := enfa.checkInitialState()
	if err != nil {
		return nil, err
	}

	nfa := New()
	nfa.states = enfa.states.Clone()
	nfa.alphabet = enfa.alphabet.Clone()
	nfa.initial = enfa.initial
	nfa.accepting = enfa.accepting.Clone()

	closure := enfa.epsilonClosure(value.NewSet(enfa.initial))
	if enfa.accepting.ContainsAny(closure.Values()...) {
		nfa.accepting.Add(enfa.initial)
	}

	for i := 0; i < enfa.states.Len(); i++ {
		s := enfa.states.At(i)
		for j := 0; j < enfa.alphabet.Len(); j++ {
			sym := enfa.alphabet.At(j)
			img := enfa.makeTransition(value.NewSet(s), sym).Values()
			if len(img) == 0 {
				continue
			}
			sort.Slice(img, func(x, y int) bool {
				return enfa.states.Index(img[x]) < enfa.states.Index(img[y])
			})
			nfa.addTransition(s, sym, img...)
		}
	}

	return nfa, nil
}

// Determinize converts an automaton of any type into a DFA. A DFA is returned as a copy.
func Determinize(a *Automaton) (*Automaton, error) {
	err := a.checkInitialState()
	if err != nil {
		return nil, err
	}

	d := a
	for {
		switch d.Type() {
		case TypeENFA:
			d, err = ConvertENFAToNFA(d)
		case TypeNFA:
			d, err = ConvertNFAToDFA(d)
		default:
			if d == a {
				return a.Clone(), nil
			}
			return d, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
