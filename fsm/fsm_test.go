package fsm

import (
	"errors"
	"fmt"
	"testing"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
)

func TestAutomaton_Builder(t *testing.T) {
	a := New()
	for _, s := range vals("s0", "s1") {
		err := a.AddState(s)
		if err != nil {
			t.Fatal(err)
		}
	}
	err := a.AddSymbol(value.String("a"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		op      func() error
		err     error
	}{
		{
			caption: "a nil state is invalid",
			op:      func() error { return a.AddState(nil) },
			err:     verr.ErrInvalidEntity,
		},
		{
			caption: "a state cannot be added twice",
			op:      func() error { return a.AddState(value.String("s0")) },
			err:     verr.ErrDuplicateEntity,
		},
		{
			caption: "an alphabet symbol cannot be a state",
			op:      func() error { return a.AddState(value.String("a")) },
			err:     verr.ErrDuplicateEntity,
		},
		{
			caption: "epsilon cannot be an alphabet symbol",
			op:      func() error { return a.AddSymbol(value.Epsilon) },
			err:     verr.ErrInvalidEntity,
		},
		{
			caption: "a state cannot be an alphabet symbol",
			op:      func() error { return a.AddSymbol(value.String("s1")) },
			err:     verr.ErrDuplicateEntity,
		},
		{
			caption: "a symbol cannot be added twice",
			op:      func() error { return a.AddSymbol(value.String("a")) },
			err:     verr.ErrDuplicateEntity,
		},
		{
			caption: "an initial state must be a state",
			op:      func() error { return a.SetInitialState(value.String("s9")) },
			err:     verr.ErrUnknownState,
		},
		{
			caption: "an accepting state must be a state",
			op:      func() error { return a.AddAcceptingState(value.String("s9")) },
			err:     verr.ErrUnknownState,
		},
		{
			caption: "a transition must use an alphabet symbol",
			op:      func() error { return a.AddTransition(value.String("s0"), vals("s1"), value.String("b")) },
			err:     verr.ErrUnknownSymbol,
		},
		{
			caption: "a transition must start from a state",
			op:      func() error { return a.AddTransition(value.String("s9"), vals("s1"), value.String("a")) },
			err:     verr.ErrUnknownState,
		},
		{
			caption: "targets of a transition must be states",
			op:      func() error { return a.AddEpsilonTransition(value.String("s0"), vals("s1", "s9")) },
			err:     verr.ErrUnknownState,
		},
		{
			caption: "a valid transition can be added",
			op:      func() error { return a.AddTransition(value.String("s0"), vals("s1"), value.String("a")) },
		},
		{
			caption: "a transition for an existing pair is merged",
			op:      func() error { return a.AddTransition(value.String("s0"), vals("s0"), value.String("a")) },
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			err := tt.op()
			if tt.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("unexpected error: want: %v, got: %v", tt.err, err)
			}
		})
	}

	ts := a.Transitions()
	if len(ts) != 1 {
		t.Fatalf("unexpected transition count: want: %v, got: %v", 1, len(ts))
	}
	if !value.EqualSets(ts[0].To, vals("s1", "s0")) {
		t.Fatalf("unexpected targets: want: %v, got: %v", vals("s1", "s0"), ts[0].To)
	}
	err = a.Validate()
	if !errors.Is(err, ErrNoInitialState) {
		t.Fatalf("an automaton without an initial state must be invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() testFSM {
		return testFSM{
			states:    []string{"s0", "s1"},
			alphabet:  []string{"a"},
			initial:   "s0",
			accepting: []string{"s1"},
			trans: []testTrans{
				{from: "s0", sym: "a", to: []string{"s1"}},
			},
		}
	}

	tests := []struct {
		caption string
		def     func() *Definition
		err     error
	}{
		{
			caption: "a valid definition",
			def:     func() *Definition { return valid().definition() },
		},
		{
			caption: "an initial state is required",
			def: func() *Definition {
				f := valid()
				f.initial = ""
				return f.definition()
			},
			err: ErrNoInitialState,
		},
		{
			caption: "states must not be empty",
			def: func() *Definition {
				def := valid().definition()
				def.States = nil
				return def
			},
			err: ErrNoStates,
		},
		{
			caption: "duplicate states are checked before epsilon in the alphabet",
			def: func() *Definition {
				def := valid().definition()
				def.States = append(def.States, value.String("s0"))
				def.Alphabet = append(def.Alphabet, value.Epsilon)
				return def
			},
			err: ErrDuplicateStates,
		},
		{
			caption: "alphabet symbols must not be duplicated",
			def: func() *Definition {
				f := valid()
				f.alphabet = []string{"a", "a"}
				return f.definition()
			},
			err: ErrDuplicateSymbols,
		},
		{
			caption: "an alphabet must not contain epsilon",
			def: func() *Definition {
				def := valid().definition()
				def.Alphabet = append(def.Alphabet, value.Epsilon)
				return def
			},
			err: ErrEpsilonInAlphabet,
		},
		{
			caption: "states and alphabet symbols must be disjoint",
			def: func() *Definition {
				f := valid()
				f.alphabet = []string{"a", "s1"}
				return f.definition()
			},
			err: ErrStateSymbolOverlap,
		},
		{
			caption: "accepting states must not be duplicated",
			def: func() *Definition {
				f := valid()
				f.accepting = []string{"s1", "s1"}
				return f.definition()
			},
			err: ErrDuplicateAcceptingState,
		},
		{
			caption: "an accepting state must be a state",
			def: func() *Definition {
				f := valid()
				f.accepting = []string{"s9"}
				return f.definition()
			},
			err: ErrUnknownAcceptingState,
		},
		{
			caption: "accepting states are checked before the initial state",
			def: func() *Definition {
				f := valid()
				f.initial = "s8"
				f.accepting = []string{"s9"}
				return f.definition()
			},
			err: ErrUnknownAcceptingState,
		},
		{
			caption: "an initial state must be a state",
			def: func() *Definition {
				f := valid()
				f.initial = "s9"
				return f.definition()
			},
			err: ErrUnknownInitialState,
		},
		{
			caption: "a transition must have a symbol",
			def: func() *Definition {
				def := valid().definition()
				def.Transitions[0].Symbol = nil
				return def
			},
			err: ErrMalformedTransition,
		},
		{
			caption: "a from state must be a state",
			def: func() *Definition {
				f := valid()
				f.trans[0].from = "s9"
				return f.definition()
			},
			err: ErrUnknownFromState,
		},
		{
			caption: "a transition symbol must be in the alphabet",
			def: func() *Definition {
				f := valid()
				f.trans[0].sym = "b"
				return f.definition()
			},
			err: ErrUnknownTransitionSymbol,
		},
		{
			caption: "an epsilon transition is allowed",
			def: func() *Definition {
				f := valid()
				f.trans[0].sym = "$"
				return f.definition()
			},
		},
		{
			caption: "targets must be states",
			def: func() *Definition {
				f := valid()
				f.trans[0].to = []string{"s1", "s9"}
				return f.definition()
			},
			err: ErrUnknownTargetState,
		},
		{
			caption: "targets must not be duplicated",
			def: func() *Definition {
				f := valid()
				f.trans[0].to = []string{"s1", "s1"}
				return f.definition()
			},
			err: ErrDuplicateTargetStates,
		},
		{
			caption: "a pair of a state and a symbol must appear once",
			def: func() *Definition {
				f := valid()
				f.trans = append(f.trans, testTrans{from: "s0", sym: "a", to: []string{"s0"}})
				return f.definition()
			},
			err: ErrDuplicateTransitions,
		},
		{
			caption: "every transition is checked before pairs of a state and a symbol",
			def: func() *Definition {
				f := valid()
				f.trans = []testTrans{
					{from: "s0", sym: "a", to: []string{"s0"}},
					{from: "s0", sym: "a", to: []string{"s0"}},
					{from: "x", sym: "a", to: []string{"s0"}},
				}
				return f.definition()
			},
			err: ErrUnknownFromState,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			err := Validate(tt.def())
			if tt.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("unexpected error: want: %v, got: %v", tt.err, err)
			}
			if !errors.Is(err, verr.ErrValidationFailure) {
				t.Fatalf("a violation must be a validation failure: %v", err)
			}
		})
	}
}

func TestAutomaton_Type(t *testing.T) {
	tests := []struct {
		fsm testFSM
		typ Type
	}{
		{fsm: evenA, typ: TypeDFA},
		{fsm: endsABB, typ: TypeNFA},
		{fsm: aOrBStar, typ: TypeENFA},
		{
			// A partial transition function is not deterministic in the sense of a DFA.
			fsm: testFSM{
				states:   []string{"s0"},
				alphabet: []string{"a", "b"},
				initial:  "s0",
				trans: []testTrans{
					{from: "s0", sym: "a", to: []string{"s0"}},
				},
			},
			typ: TypeNFA,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			typ := tt.fsm.build(t).Type()
			if typ != tt.typ {
				t.Fatalf("unexpected type: want: %v, got: %v", tt.typ, typ)
			}
		})
	}
}

func TestAutomaton_Accepts(t *testing.T) {
	a := testFSM{
		states:    []string{"s0", "s1"},
		alphabet:  []string{"a", "b"},
		initial:   "s0",
		accepting: []string{"s1"},
		trans: []testTrans{
			{from: "s0", sym: "a", to: []string{"s1"}},
			{from: "s1", sym: "a", to: []string{"s1"}},
			{from: "s0", sym: "b", to: []string{"s0"}},
			{from: "s1", sym: "b", to: []string{"s0"}},
		},
	}.build(t)

	tests := []struct {
		word   string
		accept bool
	}{
		{word: "aab", accept: false},
		{word: "aa", accept: true},
		{word: "", accept: false},
		{word: "ba", accept: true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			if got := accepts(t, a, tt.word); got != tt.accept {
				t.Fatalf("unexpected result: want: %v, got: %v", tt.accept, got)
			}
		})
	}

	_, err := a.Accepts(word("ac"))
	if !errors.Is(err, verr.ErrUnknownSymbol) {
		t.Fatalf("reading an unknown symbol must fail: %v", err)
	}
}

func TestAutomaton_EpsilonClosure(t *testing.T) {
	a := aOrBStar.build(t)

	closure, err := a.EpsilonClosure(vals("i"))
	if err != nil {
		t.Fatal(err)
	}
	if !value.EqualSets(closure, vals("i", "p", "r")) {
		t.Fatalf("unexpected closure: want: %v, got: %v", vals("i", "p", "r"), closure)
	}

	next, err := a.MakeTransition(vals("i"), value.String("b"))
	if err != nil {
		t.Fatal(err)
	}
	if !value.EqualSets(next, vals("r")) {
		t.Fatalf("unexpected states: want: %v, got: %v", vals("r"), next)
	}

	step, err := a.Step(vals("i"), value.String("b"))
	if err != nil {
		t.Fatal(err)
	}
	if len(step) != 0 {
		t.Fatalf("a step must not follow epsilon transitions: %v", step)
	}

	_, err = a.EpsilonClosure(vals("x"))
	if !errors.Is(err, verr.ErrUnknownState) {
		t.Fatalf("an unknown state must be rejected: %v", err)
	}

	testLanguage(t, a, []string{"a", "b"}, isAOrBStar)
}

func TestAutomaton_EpsilonClosure_Idempotent(t *testing.T) {
	tests := []struct {
		fsm    testFSM
		states []string
	}{
		{fsm: aOrBStar, states: []string{"i"}},
		{fsm: aOrBStar, states: []string{"p", "r"}},
		{fsm: aOrBStar, states: []string{"i", "p'"}},
		{fsm: endsABB, states: []string{"q0", "q2"}},
		{fsm: evenA, states: []string{"e0"}},
		{fsm: aOrBStar, states: nil},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			a := tt.fsm.build(t)
			once, err := a.EpsilonClosure(vals(tt.states...))
			if err != nil {
				t.Fatal(err)
			}
			twice, err := a.EpsilonClosure(once)
			if err != nil {
				t.Fatal(err)
			}
			if !value.EqualSets(once, twice) {
				t.Fatalf("unexpected closure: want: %v, got: %v", once, twice)
			}
		})
	}
}

func TestAutomaton_TransitionTrail(t *testing.T) {
	a := endsABB.build(t)

	trail, err := a.TransitionTrail(value.String("q0"), word("ab"))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]value.Value{
		vals("q0"),
		vals("q0", "q1"),
		vals("q0", "q2"),
	}
	if len(trail) != len(want) {
		t.Fatalf("unexpected trail length: want: %v, got: %v", len(want), len(trail))
	}
	for i, states := range want {
		if !value.EqualSets(trail[i], states) {
			t.Errorf("unexpected states at #%v: want: %v, got: %v", i, states, trail[i])
		}
	}
}

func TestAutomaton_ReachableStates(t *testing.T) {
	a := endsABB.build(t)

	tests := []struct {
		state       string
		includeSelf bool
		reachable   []string
	}{
		{state: "q0", includeSelf: false, reachable: []string{"q0", "q1", "q2", "q3"}},
		{state: "q1", includeSelf: false, reachable: []string{"q2", "q3"}},
		{state: "q1", includeSelf: true, reachable: []string{"q1", "q2", "q3"}},
		{state: "q3", includeSelf: false, reachable: []string{}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			reachable, err := a.ReachableStates(value.String(tt.state), tt.includeSelf)
			if err != nil {
				t.Fatal(err)
			}
			if !value.EqualSets(reachable, vals(tt.reachable...)) {
				t.Fatalf("unexpected states: want: %v, got: %v", tt.reachable, reachable)
			}
		})
	}
}

func TestAutomaton_RemoveUnreachableStates(t *testing.T) {
	a := testFSM{
		states:    []string{"s0", "s1", "s2"},
		alphabet:  []string{"a"},
		initial:   "s0",
		accepting: []string{"s1", "s2"},
		trans: []testTrans{
			{from: "s0", sym: "a", to: []string{"s1"}},
			{from: "s1", sym: "a", to: []string{"s0"}},
			{from: "s2", sym: "a", to: []string{"s1"}},
		},
	}.build(t)

	r, err := a.RemoveUnreachableStates()
	if err != nil {
		t.Fatal(err)
	}
	if !value.EqualSets(r.States(), vals("s0", "s1")) {
		t.Fatalf("unexpected states: want: %v, got: %v", vals("s0", "s1"), r.States())
	}
	if !value.EqualSets(r.AcceptingStates(), vals("s1")) {
		t.Fatalf("unexpected accepting states: want: %v, got: %v", vals("s1"), r.AcceptingStates())
	}
	for _, tr := range r.Transitions() {
		if value.Equal(tr.From, value.String("s2")) || value.Contains(tr.To, value.String("s2")) {
			t.Fatalf("a transition of a removed state remains: %v", tr)
		}
	}
	if len(r.Transitions()) != 2 {
		t.Fatalf("unexpected transition count: want: %v, got: %v", 2, len(r.Transitions()))
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("the result must be valid: %v", err)
	}

	// The input stays untouched.
	if len(a.States()) != 3 {
		t.Fatalf("the input was modified: %v", a.States())
	}
}

func TestAutomaton_TransitionsTo(t *testing.T) {
	a := endsABB.build(t)

	ts := a.TransitionsTo(value.String("q0"))
	if len(ts) != 2 {
		t.Fatalf("unexpected transition count: want: %v, got: %v", 2, len(ts))
	}
	for _, tr := range ts {
		if !value.Equal(tr.From, value.String("q0")) {
			t.Fatalf("unexpected transition: %v", tr)
		}
	}
}
