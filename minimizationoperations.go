package automaton

// Minimize
// Minimizes the given automaton using Hopcroft's partition refinement. The input must be valid (see
// Validate); unreachable states are removed first. The result is a new automaton whose states are numbered
// in breadth-first order from the initial state 0.
func Minimize(a *Automaton) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	trimmed := RemoveUnreachable(a)
	p := hopcroft(trimmed)
	result, _ := quotient(trimmed, p.blockOf, p.numBlocks(), -1)
	return RemoveUnreachable(result), nil
}

// hopcroft Refines the initial accept/non-accept partition of a total automaton until it is stable.
// Unreachable states are partitioned too; callers trim first when they do not want them.
//
// The worklist holds block ids. When a block that is still pending is split, the new half is queued as
// well, so both halves stay pending; when a block that is not pending is split, only the smaller half is
// queued.
func hopcroft(a *Automaton) *partition {
	n := a.GetNumStates()
	k := len(a.alphabet)
	rev := reverseAutomaton(a)
	p := newPartition(a)

	pending := make([]bool, n)
	worklist := make([]int, 0, n)
	for b := 0; b < p.numBlocks(); b++ {
		pending[b] = true
		worklist = append(worklist, b)
	}

	splitter := make([]int, 0, n)
	touched := make([]int, 0, n)
	for len(worklist) > 0 {
		A := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		pending[A] = false
		splitter = append(splitter[:0], p.members(A)...)

		for column := 0; column < k; column++ {
			touched = touched[:0]
			for _, q := range splitter {
				for _, s := range rev.predecessors(q, column) {
					if p.mark(s) {
						touched = append(touched, p.blockOf[s])
					}
				}
			}
			for _, y := range touched {
				nb := p.split(y)
				if nb < 0 {
					continue
				}
				if pending[y] || p.size(nb) <= p.size(y) {
					pending[nb] = true
					worklist = append(worklist, nb)
				} else {
					pending[y] = true
					worklist = append(worklist, y)
				}
			}
		}
	}
	return p
}

// quotient
// Builds the automaton with one state per block of a. blockOf maps every state of a to a block id in
// [0, numBlocks). Transitions into the dropped block (-1 for none) are left absent and the dropped block
// gets no state; it must not contain the initial state. Also returns the state of every block, -1 for the
// dropped one.
func quotient(a *Automaton, blockOf []int, numBlocks int, dropped int) (*Automaton, []int) {
	blockState := make([]int, numBlocks)
	representative := make([]int, numBlocks)
	for b := range blockState {
		blockState[b] = -1
		representative[b] = -1
	}
	for s := 0; s < a.GetNumStates(); s++ {
		if b := blockOf[s]; representative[b] == -1 {
			representative[b] = s
		}
	}

	result := newAutomatonLike(a, numBlocks)
	for b := 0; b < numBlocks; b++ {
		if b == dropped || representative[b] == -1 {
			continue
		}
		blockState[b] = result.CreateState()
	}
	for s := 0; s < a.GetNumStates(); s++ {
		if a.IsAccept(s) && blockState[blockOf[s]] >= 0 {
			result.SetAccept(blockState[blockOf[s]], true)
		}
	}
	result.start = blockState[blockOf[a.start]]

	k := len(a.alphabet)
	for b, state := range blockState {
		if state < 0 {
			continue
		}
		rep := representative[b]
		for column := 0; column < k; column++ {
			dest := a.step(rep, column)
			if dest < 0 {
				continue
			}
			if target := blockState[blockOf[dest]]; target >= 0 {
				result.transitions[state*k+column] = target
			}
		}
	}
	return result, blockState
}
