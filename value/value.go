// Package value provides the states and symbols of automata and grammars.
//
// Automata built by product and subset constructions have composite states, so equality must
// be structural. Every Value has a canonical key: two values are equal if and only if their keys
// are equal. Keys are what containers index by, so a composite state is found by a map lookup
// rather than a deep comparison.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is a state or a symbol.
//
// Key must return the same string for equal values and different strings for different ones.
// Implementations outside this package must prefix their keys with a character other than
// 's', 'i', '(', '{' and 'e' to stay distinct from the values defined here.
type Value interface {
	fmt.Stringer
	Key() string
}

var (
	_ Value = String("")
	_ Value = Int(0)
	_ Value = Tuple{}
	_ Value = Group{}
	_ Value = Epsilon
)

type String string

func (s String) Key() string {
	return "s" + strconv.Quote(string(s))
}

func (s String) String() string {
	return string(s)
}

type Int int

func (n Int) Key() string {
	return "i" + strconv.Itoa(int(n))
}

func (n Int) String() string {
	return strconv.Itoa(int(n))
}

type epsilon struct{}

func (epsilon) Key() string {
	return "e"
}

func (epsilon) String() string {
	return "ε"
}

// Epsilon is the marker of a transition or a production consuming no input.
var Epsilon Value = epsilon{}

func IsEpsilon(v Value) bool {
	return v != nil && v.Key() == Epsilon.Key()
}

// Tuple is an ordered sequence of values.
type Tuple struct {
	elems []Value
	key   string
}

func NewTuple(elems ...Value) Tuple {
	es := make([]Value, len(elems))
	copy(es, elems)

	var b strings.Builder
	b.WriteByte('(')
	for i, e := range es {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Key())
	}
	b.WriteByte(')')

	return Tuple{
		elems: es,
		key:   b.String(),
	}
}

func (t Tuple) Key() string {
	if t.key == "" {
		return "()"
	}
	return t.key
}

func (t Tuple) String() string {
	return "(" + join(t.elems) + ")"
}

func (t Tuple) Len() int {
	return len(t.elems)
}

func (t Tuple) At(i int) Value {
	return t.elems[i]
}

func (t Tuple) Elements() []Value {
	es := make([]Value, len(t.elems))
	copy(es, t.elems)
	return es
}

// Group is an unordered collection of distinct values. Two groups holding the same elements are
// equal regardless of the order the elements were given in.
type Group struct {
	elems []Value
	key   string
}

func NewGroup(elems ...Value) Group {
	byKey := make(map[string]Value, len(elems))
	keys := make([]string, 0, len(elems))
	for _, e := range elems {
		k := e.Key()
		if _, ok := byKey[k]; ok {
			continue
		}
		byKey[k] = e
		keys = append(keys, k)
	}
	sort.Strings(keys)

	es := make([]Value, len(keys))
	for i, k := range keys {
		es[i] = byKey[k]
	}

	return Group{
		elems: es,
		key:   "{" + strings.Join(keys, ",") + "}",
	}
}

func (g Group) Key() string {
	if g.key == "" {
		return "{}"
	}
	return g.key
}

func (g Group) String() string {
	return "{" + join(g.elems) + "}"
}

func (g Group) Len() int {
	return len(g.elems)
}

// Elements returns the elements in key order.
func (g Group) Elements() []Value {
	es := make([]Value, len(g.elems))
	copy(es, g.elems)
	return es
}

func join(vs []Value) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", v)
	}
	return b.String()
}

func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// Index returns the index of the first element of vs equal to v, or -1.
func Index(vs []Value, v Value) int {
	for i, e := range vs {
		if Equal(e, v) {
			return i
		}
	}
	return -1
}

func Contains(vs []Value, v Value) bool {
	return Index(vs, v) >= 0
}

func ContainsAll(vs []Value, elems []Value) bool {
	s := NewSet(vs...)
	for _, e := range elems {
		if !s.Contains(e) {
			return false
		}
	}
	return true
}

func ContainsAny(vs []Value, elems []Value) bool {
	s := NewSet(vs...)
	for _, e := range elems {
		if s.Contains(e) {
			return true
		}
	}
	return false
}

// EqualSets reports whether a and b hold the same elements, ignoring order and multiplicity.
func EqualSets(a, b []Value) bool {
	return NewSet(a...).Equal(NewSet(b...))
}

// HasDuplicates returns the index of the first element equal to an earlier one, or -1.
func HasDuplicates(vs []Value) int {
	seen := make(map[string]struct{}, len(vs))
	for i, v := range vs {
		k := v.Key()
		if _, ok := seen[k]; ok {
			return i
		}
		seen[k] = struct{}{}
	}
	return -1
}
