package regex

import (
	"errors"
	"fmt"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/value"
)

// ToAutomaton lowers a regular expression to an ε-NFA by the Thompson construction. Each node
// becomes a fragment with an entry and an exit state; the automaton starts at the entry of the
// root and accepts at its exit. States are value.Int numbered from 0, skipping numbers that are
// used as symbols.
func ToAutomaton(root Node) (*fsm.Automaton, error) {
	if root == nil {
		return nil, verr.New(verr.KindInvalidEntity, "no regular expression specified")
	}

	b := &thompsonBuilder{
		a: fsm.New(),
	}
	err := b.registerSymbols(root)
	if err != nil {
		return nil, err
	}
	f, err := b.lower(root)
	if err != nil {
		return nil, err
	}
	err = b.a.SetInitialState(f.entry)
	if err != nil {
		return nil, err
	}
	err = b.a.AddAcceptingState(f.exit)
	if err != nil {
		return nil, err
	}
	return b.a, nil
}

type fragment struct {
	entry value.Value
	exit  value.Value
}

// thompsonBuilder owns the automaton under construction and the counter numbering its states.
type thompsonBuilder struct {
	a       *fsm.Automaton
	counter int
}

// registerSymbols adds the symbols of all literals to the alphabet before any state exists, so
// the numbering of states can avoid them.
func (b *thompsonBuilder) registerSymbols(n Node) error {
	switch n := n.(type) {
	case *Alternation:
		if n == nil {
			return errNilNode(n)
		}
		for _, c := range n.Choices {
			err := b.registerSymbols(c)
			if err != nil {
				return err
			}
		}
	case *Sequence:
		if n == nil {
			return errNilNode(n)
		}
		for _, e := range n.Elements {
			err := b.registerSymbols(e)
			if err != nil {
				return err
			}
		}
	case *KleeneStar:
		if n == nil {
			return errNilNode(n)
		}
		if n.Expr == nil {
			return verr.New(verr.KindInvalidEntity, "a Kleene star needs an expression")
		}
		return b.registerSymbols(n.Expr)
	case *Literal:
		if n == nil {
			return errNilNode(n)
		}
		err := b.a.AddSymbol(n.Symbol)
		if err != nil && !errors.Is(err, verr.ErrDuplicateEntity) {
			return err
		}
	case *Epsilon:
		if n == nil {
			return errNilNode(n)
		}
	default:
		return verr.New(verr.KindInvalidEntity, "unknown node: %T", n)
	}
	return nil
}

func errNilNode(n Node) error {
	return verr.New(verr.KindInvalidEntity, "a node must not be nil: %T", n)
}

func (b *thompsonBuilder) newState() value.Value {
	for {
		s := value.Int(b.counter)
		b.counter++
		if b.a.HasSymbol(s) {
			continue
		}
		err := b.a.AddState(s)
		if err != nil {
			// The counter only moves forward, so a state number is never reused.
			panic(fmt.Errorf("failed to add a fresh state %v: %w", s, err))
		}
		return s
	}
}

func (b *thompsonBuilder) newFragment() fragment {
	return fragment{
		entry: b.newState(),
		exit:  b.newState(),
	}
}

func (b *thompsonBuilder) epsilon(from, to value.Value) error {
	return b.a.AddEpsilonTransition(from, []value.Value{to})
}

func (b *thompsonBuilder) lower(n Node) (fragment, error) {
	switch n := n.(type) {
	case *Alternation:
		return b.lowerAlternation(n)
	case *Sequence:
		return b.lowerSequence(n)
	case *KleeneStar:
		return b.lowerKleeneStar(n)
	case *Literal:
		f := b.newFragment()
		return f, b.a.AddTransition(f.entry, []value.Value{f.exit}, n.Symbol)
	case *Epsilon:
		f := b.newFragment()
		return f, b.epsilon(f.entry, f.exit)
	}
	return fragment{}, verr.New(verr.KindInvalidEntity, "unknown node: %T", n)
}

// lowerAlternation connects the entry to the entry of every choice and the exit of every choice
// to the exit. Without choices, the entry and the exit stay unconnected.
func (b *thompsonBuilder) lowerAlternation(n *Alternation) (fragment, error) {
	f := b.newFragment()
	for _, c := range n.Choices {
		cf, err := b.lower(c)
		if err != nil {
			return fragment{}, err
		}
		err = b.epsilon(f.entry, cf.entry)
		if err != nil {
			return fragment{}, err
		}
		err = b.epsilon(cf.exit, f.exit)
		if err != nil {
			return fragment{}, err
		}
	}
	return f, nil
}

// lowerSequence chains the elements. An empty sequence matches the empty word.
func (b *thompsonBuilder) lowerSequence(n *Sequence) (fragment, error) {
	if len(n.Elements) == 0 {
		return b.lower(NewEpsilon())
	}

	var f fragment
	for i, e := range n.Elements {
		ef, err := b.lower(e)
		if err != nil {
			return fragment{}, err
		}
		if i == 0 {
			f.entry = ef.entry
		} else {
			err := b.epsilon(f.exit, ef.entry)
			if err != nil {
				return fragment{}, err
			}
		}
		f.exit = ef.exit
	}
	return f, nil
}

func (b *thompsonBuilder) lowerKleeneStar(n *KleeneStar) (fragment, error) {
	f := b.newFragment()
	inner, err := b.lower(n.Expr)
	if err != nil {
		return fragment{}, err
	}
	for _, e := range []fragment{
		{entry: f.entry, exit: f.exit},
		{entry: f.entry, exit: inner.entry},
		{entry: inner.exit, exit: inner.entry},
		{entry: inner.exit, exit: f.exit},
	} {
		err := b.epsilon(e.entry, e.exit)
		if err != nil {
			return fragment{}, err
		}
	}
	return f, nil
}
