package value

// Set is a set of values that remembers insertion order.
type Set struct {
	vals []Value
	idx  map[string]int
}

func NewSet(vs ...Value) *Set {
	s := &Set{
		idx: make(map[string]int, len(vs)),
	}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add appends v and reports whether it was absent.
func (s *Set) Add(v Value) bool {
	k := v.Key()
	if _, ok := s.idx[k]; ok {
		return false
	}
	s.idx[k] = len(s.vals)
	s.vals = append(s.vals, v)
	return true
}

func (s *Set) Contains(v Value) bool {
	if v == nil {
		return false
	}
	_, ok := s.idx[v.Key()]
	return ok
}

// Index returns the insertion position of v, or -1.
func (s *Set) Index(v Value) int {
	if v == nil {
		return -1
	}
	i, ok := s.idx[v.Key()]
	if !ok {
		return -1
	}
	return i
}

// Lookup returns the stored element equal to v.
func (s *Set) Lookup(v Value) (Value, bool) {
	i := s.Index(v)
	if i < 0 {
		return nil, false
	}
	return s.vals[i], true
}

func (s *Set) Remove(v Value) bool {
	i := s.Index(v)
	if i < 0 {
		return false
	}
	s.vals = append(s.vals[:i], s.vals[i+1:]...)
	delete(s.idx, v.Key())
	for j := i; j < len(s.vals); j++ {
		s.idx[s.vals[j].Key()] = j
	}
	return true
}

func (s *Set) Len() int {
	return len(s.vals)
}

// At returns the i-th element in insertion order.
func (s *Set) At(i int) Value {
	return s.vals[i]
}

// Values returns the elements in insertion order.
func (s *Set) Values() []Value {
	vs := make([]Value, len(s.vals))
	copy(vs, s.vals)
	return vs
}

func (s *Set) Clone() *Set {
	return NewSet(s.vals...)
}

func (s *Set) Union(t *Set) *Set {
	u := s.Clone()
	for _, v := range t.vals {
		u.Add(v)
	}
	return u
}

func (s *Set) ContainsAll(vs ...Value) bool {
	for _, v := range vs {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

func (s *Set) ContainsAny(vs ...Value) bool {
	for _, v := range vs {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// Equal reports whether s and t hold the same elements regardless of order.
func (s *Set) Equal(t *Set) bool {
	if s.Len() != t.Len() {
		return false
	}
	for _, v := range s.vals {
		if !t.Contains(v) {
			return false
		}
	}
	return true
}

// Freeze returns the elements as a single Group value.
func (s *Set) Freeze() Group {
	return NewGroup(s.vals...)
}
