package fsm

import (
	"fmt"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
)

// Definition is the raw form of an automaton. Unlike an Automaton, a Definition can be invalid;
// description files are decoded into it and checked with Validate.
type Definition struct {
	States          []value.Value
	Alphabet        []value.Value
	InitialState    value.Value
	AcceptingStates []value.Value
	Transitions     []Transition
}

var (
	ErrNoInitialState          = verr.NewRule("an initial state must be defined")
	ErrNilEntity               = verr.NewRule("states, alphabet symbols and accepting states must be defined")
	ErrNoStates                = verr.NewRule("states must not be empty")
	ErrDuplicateStates         = verr.NewRule("states must not contain duplicates")
	ErrDuplicateSymbols        = verr.NewRule("alphabet symbols must not contain duplicates")
	ErrEpsilonInAlphabet       = verr.NewRule("an alphabet must not contain the epsilon symbol")
	ErrStateSymbolOverlap      = verr.NewRule("states and alphabet symbols must be disjoint")
	ErrDuplicateAcceptingState = verr.NewRule("accepting states must not contain duplicates")
	ErrUnknownAcceptingState   = verr.NewRule("an accepting state must be a state")
	ErrUnknownInitialState     = verr.NewRule("an initial state must be a state")
	ErrMalformedTransition     = verr.NewRule("a transition must have a from state, a symbol and defined targets")
	ErrUnknownFromState        = verr.NewRule("a from state of a transition must be a state")
	ErrUnknownTransitionSymbol = verr.NewRule("a symbol of a transition must be an alphabet symbol or epsilon")
	ErrUnknownTargetState      = verr.NewRule("targets of a transition must be states")
	ErrDuplicateTargetStates   = verr.NewRule("targets of a transition must not contain duplicates")
	ErrDuplicateTransitions    = verr.NewRule("a pair of a from state and a symbol must appear in only one transition")
)

func violation(rule *verr.Error, format string, a ...interface{}) error {
	return &verr.Error{
		Kind:    rule.Kind,
		Rule:    rule.Rule,
		Message: fmt.Sprintf(format, a...),
	}
}

// Validate checks the invariants of an automaton in a fixed order and returns the first
// violation. Every returned error matches one of the Err* rules above with errors.Is.
func Validate(def *Definition) error {
	if def == nil || def.InitialState == nil {
		return ErrNoInitialState
	}
	for _, vs := range [][]value.Value{def.States, def.Alphabet, def.AcceptingStates} {
		for i, v := range vs {
			if v == nil {
				return violation(ErrNilEntity, "index: %v", i)
			}
		}
	}
	if len(def.States) == 0 {
		return ErrNoStates
	}
	if i := value.HasDuplicates(def.States); i >= 0 {
		return violation(ErrDuplicateStates, "state: %v", def.States[i])
	}
	if i := value.HasDuplicates(def.Alphabet); i >= 0 {
		return violation(ErrDuplicateSymbols, "symbol: %v", def.Alphabet[i])
	}

	states := value.NewSet(def.States...)
	alphabet := value.NewSet(def.Alphabet...)
	if alphabet.Contains(value.Epsilon) {
		return ErrEpsilonInAlphabet
	}
	for _, sym := range def.Alphabet {
		if states.Contains(sym) {
			return violation(ErrStateSymbolOverlap, "value: %v", sym)
		}
	}

	accepting := value.NewSet()
	for _, s := range def.AcceptingStates {
		if !accepting.Add(s) {
			return violation(ErrDuplicateAcceptingState, "state: %v", s)
		}
		if !states.Contains(s) {
			return violation(ErrUnknownAcceptingState, "state: %v", s)
		}
	}

	if !states.Contains(def.InitialState) {
		return violation(ErrUnknownInitialState, "state: %v", def.InitialState)
	}

	for i, t := range def.Transitions {
		if t.From == nil || t.Symbol == nil {
			return violation(ErrMalformedTransition, "transition: #%v", i)
		}
		for _, s := range t.To {
			if s == nil {
				return violation(ErrMalformedTransition, "transition: #%v", i)
			}
		}
		if !states.Contains(t.From) {
			return violation(ErrUnknownFromState, "state: %v", t.From)
		}
		if !value.IsEpsilon(t.Symbol) && !alphabet.Contains(t.Symbol) {
			return violation(ErrUnknownTransitionSymbol, "symbol: %v", t.Symbol)
		}
		for _, s := range t.To {
			if !states.Contains(s) {
				return violation(ErrUnknownTargetState, "state: %v", s)
			}
		}
		if j := value.HasDuplicates(t.To); j >= 0 {
			return violation(ErrDuplicateTargetStates, "state: %v", t.To[j])
		}
	}

	pairs := map[recordKey]struct{}{}
	for _, t := range def.Transitions {
		k := recordKey{
			from:   t.From.Key(),
			symbol: t.Symbol.Key(),
		}
		if _, ok := pairs[k]; ok {
			return violation(ErrDuplicateTransitions, "state: %v, symbol: %v", t.From, t.Symbol)
		}
		pairs[k] = struct{}{}
	}

	return nil
}

// FromDefinition validates a definition and builds an automaton from it.
func FromDefinition(def *Definition) (*Automaton, error) {
	err := Validate(def)
	if err != nil {
		return nil, err
	}

	a := New()
	for _, s := range def.States {
		a.states.Add(s)
	}
	for _, sym := range def.Alphabet {
		a.alphabet.Add(sym)
	}
	a.initial = def.InitialState
	for _, s := range def.AcceptingStates {
		a.accepting.Add(s)
	}
	for _, t := range def.Transitions {
		a.addTransition(t.From, t.Symbol, t.To...)
	}

	return a, nil
}

func (a *Automaton) Definition() *Definition {
	return &Definition{
		States:          a.States(),
		Alphabet:        a.Alphabet(),
		InitialState:    a.initial,
		AcceptingStates: a.AcceptingStates(),
		Transitions:     a.Transitions(),
	}
}

// Validate checks the automaton against the same rules as the package-level Validate. An
// automaton built with the Add* methods fails only when it has no initial state.
func (a *Automaton) Validate() error {
	return Validate(a.Definition())
}
