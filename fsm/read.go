package fsm

import (
	"github.com/nihei9/noam/value"
)

// EpsilonClosure returns the states reachable from `states` via zero or more epsilon
// transitions, starting with `states` themselves.
func (a *Automaton) EpsilonClosure(states []value.Value) ([]value.Value, error) {
	err := a.checkStates(states)
	if err != nil {
		return nil, err
	}
	return a.epsilonClosure(value.NewSet(states...)).Values(), nil
}

func (a *Automaton) epsilonClosure(states *value.Set) *value.Set {
	closure := states.Clone()
	for i := 0; i < closure.Len(); i++ {
		r, ok := a.lookup(closure.At(i), value.Epsilon)
		if !ok {
			continue
		}
		for j := 0; j < r.to.Len(); j++ {
			closure.Add(r.to.At(j))
		}
	}
	return closure
}

// Step returns the union of the targets on `symbol` of `states` without following epsilon
// transitions.
func (a *Automaton) Step(states []value.Value, symbol value.Value) ([]value.Value, error) {
	err := a.checkStates(states)
	if err != nil {
		return nil, err
	}
	err = a.checkSymbols([]value.Value{symbol})
	if err != nil {
		return nil, err
	}
	return a.step(value.NewSet(states...), symbol).Values(), nil
}

func (a *Automaton) step(states *value.Set, symbol value.Value) *value.Set {
	next := value.NewSet()
	for i := 0; i < states.Len(); i++ {
		r, ok := a.lookup(states.At(i), symbol)
		if !ok {
			continue
		}
		for j := 0; j < r.to.Len(); j++ {
			next.Add(r.to.At(j))
		}
	}
	return next
}

// MakeTransition returns the states reachable from `states` by reading `symbol`, taking
// epsilon closures before and after the step.
func (a *Automaton) MakeTransition(states []value.Value, symbol value.Value) ([]value.Value, error) {
	err := a.checkStates(states)
	if err != nil {
		return nil, err
	}
	err = a.checkSymbols([]value.Value{symbol})
	if err != nil {
		return nil, err
	}
	return a.makeTransition(value.NewSet(states...), symbol).Values(), nil
}

func (a *Automaton) makeTransition(states *value.Set, symbol value.Value) *value.Set {
	return a.epsilonClosure(a.step(a.epsilonClosure(states), symbol))
}

// ReadString returns the states the automaton is in after reading `symbols` from its initial
// state. An empty result means the automaton got stuck.
func (a *Automaton) ReadString(symbols []value.Value) ([]value.Value, error) {
	trail, err := a.TransitionTrail(a.initial, symbols)
	if err != nil {
		return nil, err
	}
	return trail[len(trail)-1], nil
}

// Accepts reports whether `symbols` is a word of the language of the automaton.
func (a *Automaton) Accepts(symbols []value.Value) (bool, error) {
	states, err := a.ReadString(symbols)
	if err != nil {
		return false, err
	}
	return a.accepting.ContainsAny(states...), nil
}

// TransitionTrail reads `symbols` from `state` and returns the state sets the automaton passes
// through. The first element is the epsilon closure of `state` and the i+1-th one is the set
// after reading the i-th symbol, so the trail always has len(symbols)+1 elements.
func (a *Automaton) TransitionTrail(state value.Value, symbols []value.Value) ([][]value.Value, error) {
	if state == nil {
		err := a.checkInitialState()
		if err != nil {
			return nil, err
		}
	}
	err := a.checkStates([]value.Value{state})
	if err != nil {
		return nil, err
	}
	err = a.checkSymbols(symbols)
	if err != nil {
		return nil, err
	}

	cur := a.epsilonClosure(value.NewSet(state))
	trail := make([][]value.Value, 0, len(symbols)+1)
	trail = append(trail, cur.Values())
	for _, sym := range symbols {
		cur = a.makeTransition(cur, sym)
		trail = append(trail, cur.Values())
	}
	return trail, nil
}

// ReachableStates returns the states reachable from `state` through one or more transitions of
// any symbol. `state` itself is included when includeSelf is true or when it lies on a cycle.
func (a *Automaton) ReachableStates(state value.Value, includeSelf bool) ([]value.Value, error) {
	err := a.checkStates([]value.Value{state})
	if err != nil {
		return nil, err
	}
	return a.reachableStates(state, includeSelf).Values(), nil
}

func (a *Automaton) reachableStates(state value.Value, includeSelf bool) *value.Set {
	reachable := value.NewSet()
	if includeSelf {
		reachable.Add(state)
	}
	expanded := value.NewSet(state)
	queue := []value.Value{state}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ri := range a.outgoing[cur.Key()] {
			to := a.records[ri].to
			for i := 0; i < to.Len(); i++ {
				s := to.At(i)
				reachable.Add(s)
				if expanded.Add(s) {
					queue = append(queue, s)
				}
			}
		}
	}
	return reachable
}

// RemoveUnreachableStates returns a copy of the automaton without the states that cannot be
// reached from the initial state, and without the transitions leaving them.
func (a *Automaton) RemoveUnreachableStates() (*Automaton, error) {
	err := a.checkInitialState()
	if err != nil {
		return nil, err
	}

	reachable := a.reachableStates(a.initial, true)

	r := New()
	for i := 0; i < a.states.Len(); i++ {
		if s := a.states.At(i); reachable.Contains(s) {
			r.states.Add(s)
		}
	}
	r.alphabet = a.alphabet.Clone()
	r.initial = a.initial
	for i := 0; i < a.accepting.Len(); i++ {
		if s := a.accepting.At(i); reachable.Contains(s) {
			r.accepting.Add(s)
		}
	}
	for _, rec := range a.records {
		if !reachable.Contains(rec.from) {
			continue
		}
		r.addTransition(rec.from, rec.symbol, rec.to.Values()...)
	}

	return r, nil
}
