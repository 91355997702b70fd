package automaton

// DefaultDeterminizeWorkLimit Default maximum number of states subset construction may create.
const DefaultDeterminizeWorkLimit = 10000

// reverseDeterminize
// Determinizes the reverse of a: the initial subset holds the accept states of a, a subset accepts when
// it contains the initial state of a. Every reachable subset becomes a state, the empty one included, so
// the result is total. States are numbered in breadth-first order.
//
// Returns *TooComplexToDeterminizeError once more than workLimit states would be needed.
func reverseDeterminize(a *Automaton, workLimit int) (*Automaton, error) {
	if workLimit <= 0 {
		workLimit = DefaultDeterminizeWorkLimit
	}
	rev := reverseAutomaton(a)
	k := len(a.alphabet)

	b := newAutomatonLike(a, 0)
	newState := NewHashMap[int](WithCapacity(16))
	worklist := make([]*FrozenIntSet, 0)

	initial := NewStateSet()
	for _, s := range a.GetAcceptStates() {
		initial.Incr(s)
	}
	initialSet := initial.Freeze(b.CreateState())
	b.SetAccept(initialSet.state, initialSet.Contains(a.start))
	newState.Set(initialSet, initialSet.state)
	worklist = append(worklist, initialSet)

	succ := NewStateSet()
	for i := 0; i < len(worklist); i++ {
		cur := worklist[i]
		for column := 0; column < k; column++ {
			succ.Reset()
			for _, q := range cur.GetArray() {
				for _, p := range rev.predecessors(q, column) {
					succ.Incr(p)
				}
			}

			dest, ok := newState.Get(succ)
			if !ok {
				if b.GetNumStates() >= workLimit {
					return nil, &TooComplexToDeterminizeError{WorkLimit: workLimit}
				}
				frozen := succ.Freeze(b.CreateState())
				b.SetAccept(frozen.state, frozen.Contains(a.start))
				newState.Set(frozen, frozen.state)
				worklist = append(worklist, frozen)
				dest = frozen.state
			}
			b.transitions[cur.state*k+column] = dest
		}
	}
	return b, nil
}
