// Package fsm implements finite automata (DFA, NFA and ε-NFA) and the classical algorithms
// converting and combining them.
//
// States and symbols are value.Value. An Automaton is built with the Add* and SetInitialState
// methods, each of which rejects a change that would break an invariant, so a built automaton
// is always valid apart from a missing initial state. Every algorithm returns a new automaton
// and leaves its inputs untouched.
package fsm

import (
	"fmt"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
)

type Type string

const (
	TypeDFA  = Type("DFA")
	TypeNFA  = Type("NFA")
	TypeENFA = Type("eNFA")
)

func (t Type) String() string {
	return string(t)
}

// Transition is a transition record. Symbol is value.Epsilon for an epsilon transition.
type Transition struct {
	From   value.Value
	Symbol value.Value
	To     []value.Value
}

type recordKey struct {
	from   string
	symbol string
}

type record struct {
	from   value.Value
	symbol value.Value
	to     *value.Set
}

type Automaton struct {
	states    *value.Set
	alphabet  *value.Set
	initial   value.Value
	accepting *value.Set
	records   []*record
	recordIdx map[recordKey]int

	// outgoing maps a key of a state to the indexes of the records leaving it.
	outgoing map[string][]int
}

func New() *Automaton {
	return &Automaton{
		states:    value.NewSet(),
		alphabet:  value.NewSet(),
		accepting: value.NewSet(),
		recordIdx: map[recordKey]int{},
		outgoing:  map[string][]int{},
	}
}

func (a *Automaton) AddState(s value.Value) error {
	if s == nil {
		return verr.New(verr.KindInvalidEntity, "no state specified")
	}
	if a.states.Contains(s) {
		return verr.New(verr.KindDuplicateEntity, "state already exists: %v", s)
	}
	if a.alphabet.Contains(s) {
		return verr.New(verr.KindDuplicateEntity, "an alphabet symbol cannot be a state: %v", s)
	}
	a.states.Add(s)
	return nil
}

func (a *Automaton) AddSymbol(sym value.Value) error {
	if sym == nil {
		return verr.New(verr.KindInvalidEntity, "no symbol specified")
	}
	if value.IsEpsilon(sym) {
		return verr.New(verr.KindInvalidEntity, "the epsilon symbol cannot be added to the alphabet")
	}
	if a.alphabet.Contains(sym) {
		return verr.New(verr.KindDuplicateEntity, "symbol already exists: %v", sym)
	}
	if a.states.Contains(sym) {
		return verr.New(verr.KindDuplicateEntity, "a state cannot be an alphabet symbol: %v", sym)
	}
	a.alphabet.Add(sym)
	return nil
}

func (a *Automaton) AddAcceptingState(s value.Value) error {
	if !a.states.Contains(s) {
		return verr.New(verr.KindUnknownState, "not a state of the automaton: %v", s)
	}
	if a.accepting.Contains(s) {
		return verr.New(verr.KindDuplicateEntity, "the state is already accepting: %v", s)
	}
	a.accepting.Add(s)
	return nil
}

func (a *Automaton) SetInitialState(s value.Value) error {
	if !a.states.Contains(s) {
		return verr.New(verr.KindUnknownState, "not a state of the automaton: %v", s)
	}
	a.initial = s
	return nil
}

// AddTransition adds a transition from `from` to each of `to` on `symbol`. When a record for
// the pair of `from` and `symbol` exists, `to` is merged into its targets.
func (a *Automaton) AddTransition(from value.Value, to []value.Value, symbol value.Value) error {
	if symbol == nil {
		return verr.New(verr.KindInvalidEntity, "no symbol specified")
	}
	if !a.alphabet.Contains(symbol) {
		return verr.New(verr.KindUnknownSymbol, "not an alphabet symbol of the automaton: %v", symbol)
	}
	return a.addCheckedTransition(from, to, symbol)
}

func (a *Automaton) AddEpsilonTransition(from value.Value, to []value.Value) error {
	return a.addCheckedTransition(from, to, value.Epsilon)
}

func (a *Automaton) addCheckedTransition(from value.Value, to []value.Value, symbol value.Value) error {
	if from == nil {
		return verr.New(verr.KindInvalidEntity, "no state specified")
	}
	if !a.states.Contains(from) {
		return verr.New(verr.KindUnknownState, "not a state of the automaton: %v", from)
	}
	for _, s := range to {
		if !a.states.Contains(s) {
			return verr.New(verr.KindUnknownState, "not a state of the automaton: %v", s)
		}
	}
	a.addTransition(from, symbol, to...)
	return nil
}

// addTransition adds a record without checking its states and symbol. Algorithms use it when
// the invariants hold by construction.
func (a *Automaton) addTransition(from value.Value, symbol value.Value, to ...value.Value) {
	k := recordKey{
		from:   from.Key(),
		symbol: symbol.Key(),
	}
	if i, ok := a.recordIdx[k]; ok {
		for _, s := range to {
			a.records[i].to.Add(s)
		}
		return
	}
	a.recordIdx[k] = len(a.records)
	a.outgoing[k.from] = append(a.outgoing[k.from], len(a.records))
	a.records = append(a.records, &record{
		from:   from,
		symbol: symbol,
		to:     value.NewSet(to...),
	})
}

func (a *Automaton) lookup(from value.Value, symbol value.Value) (*record, bool) {
	i, ok := a.recordIdx[recordKey{
		from:   from.Key(),
		symbol: symbol.Key(),
	}]
	if !ok {
		return nil, false
	}
	return a.records[i], true
}

// next returns the only target of a DFA transition.
func (a *Automaton) next(from value.Value, symbol value.Value) value.Value {
	r, ok := a.lookup(from, symbol)
	if !ok || r.to.Len() != 1 {
		panic(fmt.Errorf("a DFA must have exactly one target; state: %v, symbol: %v", from, symbol))
	}
	return r.to.At(0)
}

func (a *Automaton) States() []value.Value {
	return a.states.Values()
}

func (a *Automaton) Alphabet() []value.Value {
	return a.alphabet.Values()
}

// InitialState returns nil when no initial state has been set.
func (a *Automaton) InitialState() value.Value {
	return a.initial
}

func (a *Automaton) AcceptingStates() []value.Value {
	return a.accepting.Values()
}

func (a *Automaton) HasState(s value.Value) bool {
	return a.states.Contains(s)
}

func (a *Automaton) HasSymbol(sym value.Value) bool {
	return a.alphabet.Contains(sym)
}

func (a *Automaton) IsAccepting(s value.Value) bool {
	return a.accepting.Contains(s)
}

func (a *Automaton) Transitions() []Transition {
	ts := make([]Transition, len(a.records))
	for i, r := range a.records {
		ts[i] = r.transition()
	}
	return ts
}

// Targets returns the targets of the record for a pair of a state and a symbol, which may be
// value.Epsilon.
func (a *Automaton) Targets(from value.Value, symbol value.Value) []value.Value {
	if from == nil || symbol == nil {
		return nil
	}
	r, ok := a.lookup(from, symbol)
	if !ok {
		return nil
	}
	return r.to.Values()
}

// TransitionsTo returns the records having s among their targets.
func (a *Automaton) TransitionsTo(s value.Value) []Transition {
	var ts []Transition
	for _, r := range a.records {
		if r.to.Contains(s) {
			ts = append(ts, r.transition())
		}
	}
	return ts
}

func (r *record) transition() Transition {
	return Transition{
		From:   r.from,
		Symbol: r.symbol,
		To:     r.to.Values(),
	}
}

// Type derives the kind of the automaton from its transition records.
func (a *Automaton) Type() Type {
	typ := TypeDFA
	for _, r := range a.records {
		if value.IsEpsilon(r.symbol) {
			return TypeENFA
		}
		if r.to.Len() != 1 {
			typ = TypeNFA
		}
	}
	if typ == TypeDFA && len(a.records) < a.states.Len()*a.alphabet.Len() {
		typ = TypeNFA
	}
	return typ
}

func (a *Automaton) Clone() *Automaton {
	c := New()
	c.states = a.states.Clone()
	c.alphabet = a.alphabet.Clone()
	c.initial = a.initial
	c.accepting = a.accepting.Clone()
	for _, r := range a.records {
		c.addTransition(r.from, r.symbol, r.to.Values()...)
	}
	return c
}

func (a *Automaton) checkStates(states []value.Value) error {
	for _, s := range states {
		if !a.states.Contains(s) {
			return verr.New(verr.KindUnknownState, "not a state of the automaton: %v", s)
		}
	}
	return nil
}

func (a *Automaton) checkSymbols(symbols []value.Value) error {
	for _, sym := range symbols {
		if !a.alphabet.Contains(sym) {
			return verr.New(verr.KindUnknownSymbol, "not an alphabet symbol of the automaton: %v", sym)
		}
	}
	return nil
}

func (a *Automaton) checkInitialState() error {
	if a.initial == nil {
		return verr.New(verr.KindInvalidEntity, "the automaton has no initial state")
	}
	return nil
}

// freshState returns a state named after base that is neither a state nor a symbol of a.
func (a *Automaton) freshState(base string) value.Value {
	s := value.String(base)
	for a.states.Contains(s) || a.alphabet.Contains(s) {
		s += "'"
	}
	return s
}
