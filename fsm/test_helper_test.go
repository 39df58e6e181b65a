package fsm

import (
	"testing"

	"github.com/nihei9/noam/value"
)

// testTrans is a transition of a test automaton. A symbol "$" denotes epsilon.
type testTrans struct {
	from string
	sym  string
	to   []string
}

type testFSM struct {
	states    []string
	alphabet  []string
	initial   string
	accepting []string
	trans     []testTrans
}

func vals(xs ...string) []value.Value {
	vs := make([]value.Value, len(xs))
	for i, x := range xs {
		vs[i] = value.String(x)
	}
	return vs
}

// word splits w into one-character symbols.
func word(w string) []value.Value {
	vs := []value.Value{}
	for _, c := range w {
		vs = append(vs, value.String(string(c)))
	}
	return vs
}

func (f testFSM) definition() *Definition {
	def := &Definition{
		States:          vals(f.states...),
		Alphabet:        vals(f.alphabet...),
		AcceptingStates: vals(f.accepting...),
	}
	if f.initial != "" {
		def.InitialState = value.String(f.initial)
	}
	for _, t := range f.trans {
		var sym value.Value = value.String(t.sym)
		if t.sym == "$" {
			sym = value.Epsilon
		}
		def.Transitions = append(def.Transitions, Transition{
			From:   value.String(t.from),
			Symbol: sym,
			To:     vals(t.to...),
		})
	}
	return def
}

func (f testFSM) build(t *testing.T) *Automaton {
	t.Helper()

	a, err := FromDefinition(f.definition())
	if err != nil {
		t.Fatalf("failed to build an automaton: %v", err)
	}
	return a
}

// allWords returns every word over `alphabet` of length up to maxLen.
func allWords(alphabet []string, maxLen int) []string {
	words := []string{""}
	last := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, w := range last {
			for _, sym := range alphabet {
				next = append(next, w+sym)
			}
		}
		words = append(words, next...)
		last = next
	}
	return words
}

func accepts(t *testing.T, a *Automaton, w string) bool {
	t.Helper()

	ok, err := a.Accepts(word(w))
	if err != nil {
		t.Fatalf("failed to read %#v: %v", w, err)
	}
	return ok
}

// testLanguage compares the language of an automaton with a predicate on the words up to
// length 5.
func testLanguage(t *testing.T, a *Automaton, alphabet []string, want func(w string) bool) {
	t.Helper()

	for _, w := range allWords(alphabet, 5) {
		if got := accepts(t, a, w); got != want(w) {
			t.Errorf("unexpected result for %#v: want: %v, got: %v", w, want(w), got)
		}
	}
}

// evenA accepts the words containing an even number of a.
var evenA = testFSM{
	states:    []string{"e0", "e1"},
	alphabet:  []string{"a", "b"},
	initial:   "e0",
	accepting: []string{"e0"},
	trans: []testTrans{
		{from: "e0", sym: "a", to: []string{"e1"}},
		{from: "e0", sym: "b", to: []string{"e0"}},
		{from: "e1", sym: "a", to: []string{"e0"}},
		{from: "e1", sym: "b", to: []string{"e1"}},
	},
}

// endsB accepts the words ending with b.
var endsB = testFSM{
	states:    []string{"n0", "n1"},
	alphabet:  []string{"a", "b"},
	initial:   "n0",
	accepting: []string{"n1"},
	trans: []testTrans{
		{from: "n0", sym: "a", to: []string{"n0"}},
		{from: "n0", sym: "b", to: []string{"n1"}},
		{from: "n1", sym: "a", to: []string{"n0"}},
		{from: "n1", sym: "b", to: []string{"n1"}},
	},
}

// endsABB is an NFA accepting the words ending with abb.
var endsABB = testFSM{
	states:    []string{"q0", "q1", "q2", "q3"},
	alphabet:  []string{"a", "b"},
	initial:   "q0",
	accepting: []string{"q3"},
	trans: []testTrans{
		{from: "q0", sym: "a", to: []string{"q0", "q1"}},
		{from: "q0", sym: "b", to: []string{"q0"}},
		{from: "q1", sym: "b", to: []string{"q2"}},
		{from: "q2", sym: "b", to: []string{"q3"}},
	},
}

// aOrBStar is an ε-NFA accepting a or b*.
var aOrBStar = testFSM{
	states:    []string{"i", "p", "p'", "r"},
	alphabet:  []string{"a", "b"},
	initial:   "i",
	accepting: []string{"p'", "r"},
	trans: []testTrans{
		{from: "i", sym: "$", to: []string{"p", "r"}},
		{from: "p", sym: "a", to: []string{"p'"}},
		{from: "r", sym: "b", to: []string{"r"}},
	},
}

func count(w string, c rune) int {
	n := 0
	for _, r := range w {
		if r == c {
			n++
		}
	}
	return n
}

func hasSuffix(w, suffix string) bool {
	return len(w) >= len(suffix) && w[len(w)-len(suffix):] == suffix
}

func isAOrBStar(w string) bool {
	return w == "a" || count(w, 'b') == len(w)
}
