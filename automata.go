package automaton

// Automata Factory for simple automata over a given alphabet. All results are total.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language: a single non-accepting state
// looping on every label.
func (*Automata) MakeEmpty(alphabet []int) (*Automaton, error) {
	a, err := NewAutomatonV1(alphabet, 1)
	if err != nil {
		return nil, err
	}
	s := a.CreateState()
	if err := selfLoop(a, s); err != nil {
		return nil, err
	}
	return a, nil
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString(alphabet []int) (*Automaton, error) {
	return defaultAutomata.MakeString(alphabet, nil)
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings.
func (*Automata) MakeAnyString(alphabet []int) (*Automaton, error) {
	a, err := NewAutomatonV1(alphabet, 1)
	if err != nil {
		return nil, err
	}
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := selfLoop(a, s); err != nil {
		return nil, err
	}
	return a, nil
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given string.
func (*Automata) MakeString(alphabet []int, s []int) (*Automaton, error) {
	a, err := NewAutomatonV1(alphabet, len(s)+2)
	if err != nil {
		return nil, err
	}
	for i := 0; i <= len(s); i++ {
		a.CreateState()
	}
	a.SetAccept(len(s), true)
	dead := a.CreateState()
	if err := selfLoop(a, dead); err != nil {
		return nil, err
	}
	for state := 0; state <= len(s); state++ {
		for _, label := range alphabet {
			dest := dead
			if state < len(s) && s[state] == label {
				dest = state + 1
			}
			if err := a.AddTransition(state, dest, label); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

func selfLoop(a *Automaton, state int) error {
	for _, label := range a.alphabet {
		if err := a.AddTransition(state, state, label); err != nil {
			return err
		}
	}
	return nil
}
