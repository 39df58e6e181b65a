package fsm

// IsLanguageNonEmpty reports whether an automaton accepts at least one word.
func IsLanguageNonEmpty(a *Automaton) (bool, error) {
	m, err := Minimize(a)
	if err != nil {
		return false, err
	}
	return m.accepting.Len() > 0, nil
}

// IsLanguageInfinite reports whether an automaton accepts infinitely many words.
//
// In the minimal DFA, every state other than the dead state can reach an accepting state, so
// the language is infinite if and only if such a state lies on a cycle.
func IsLanguageInfinite(a *Automaton) (bool, error) {
	m, err := Minimize(a)
	if err != nil {
		return false, err
	}
	if m.alphabet.Len() == 0 {
		return false, nil
	}

	dead := -1
	for i := 0; i < m.states.Len(); i++ {
		s := m.states.At(i)
		if m.IsAccepting(s) {
			continue
		}
		if !m.accepting.ContainsAny(m.reachableStates(s, true).Values()...) {
			dead = i
			break
		}
	}
	// A total DFA without a dead state has an accepting cycle.
	if dead < 0 {
		return true, nil
	}

	for i := 0; i < m.states.Len(); i++ {
		if i == dead {
			continue
		}
		s := m.states.At(i)
		if m.reachableStates(s, false).Contains(s) {
			return true, nil
		}
	}
	return false, nil
}
