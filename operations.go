package automaton

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// RemoveUnreachable
// Returns the restriction of a to the states reachable from its initial state. Surviving states are
// numbered in breadth-first order from the initial state (labels visited in alphabet order), so the result
// always starts at state 0 and two isomorphic automata come out with identical tables.
func RemoveUnreachable(a *Automaton) *Automaton {
	result, _ := removeUnreachable(a)
	return result
}

// removeUnreachable is RemoveUnreachable that also returns, for every state of a, its number in the
// result or -1.
func removeUnreachable(a *Automaton) (*Automaton, []int) {
	numStates := a.GetNumStates()
	mp := make([]int, numStates)
	for i := range mp {
		mp[i] = -1
	}

	order := make([]int, 0, numStates)
	if numStates > 0 {
		mp[a.start] = 0
		order = append(order, a.start)
	}
	for i := 0; i < len(order); i++ {
		s := order[i]
		for column := range a.alphabet {
			dest := a.step(s, column)
			if dest >= 0 && mp[dest] == -1 {
				mp[dest] = len(order)
				order = append(order, dest)
			}
		}
	}

	result := newAutomatonLike(a, len(order))
	for _, s := range order {
		state := result.CreateState()
		result.SetAccept(state, a.IsAccept(s))
	}
	k := len(a.alphabet)
	for i, s := range order {
		for column := 0; column < k; column++ {
			if dest := a.step(s, column); dest >= 0 {
				result.transitions[i*k+column] = mp[dest]
			}
		}
	}
	return result, mp
}

// getLiveStatesFromInitial Returns the set of states reachable from the initial state.
func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}
	workList := make([]int, 0)
	live.Set(uint(a.start))
	workList = append(workList, a.start)

	t := NewTransition()
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if live.Test(uint(t.Dest)) == false {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.GetNumStates() == 0 {
		// Common case: no states
		return true
	}
	live := getLiveStatesFromInitial(a)
	return live.IntersectionCardinality(a.isAccept) == 0
}

// totalize
// Returns a total copy of a: every missing transition goes to a new non-accepting dead state that loops
// on every label. The dead state is returned as well, or -1 if a was already total (and is returned as is).
func totalize(a *Automaton) (*Automaton, int) {
	if a.IsTotal() {
		return a, -1
	}
	result := a.Clone()
	deadState := result.CreateState()
	for i, dest := range result.transitions {
		if dest < 0 {
			result.transitions[i] = deadState
		}
	}
	return result, deadState
}

// reversed holds, for every (state, column), the states whose transition on that column leads to state.
type reversed struct {
	k       int
	offsets []int
	sources []int
}

// reverseAutomaton builds the reverse transition relation of a in compressed form.
func reverseAutomaton(a *Automaton) *reversed {
	k := len(a.alphabet)
	r := &reversed{
		k:       k,
		offsets: make([]int, a.numStates*k+1),
		sources: make([]int, 0, len(a.transitions)),
	}
	for s := 0; s < a.numStates; s++ {
		for column := 0; column < k; column++ {
			if dest := a.step(s, column); dest >= 0 {
				r.offsets[dest*k+column+1]++
			}
		}
	}
	for i := 1; i < len(r.offsets); i++ {
		r.offsets[i] += r.offsets[i-1]
	}
	r.sources = grow(r.sources, r.offsets[len(r.offsets)-1])
	next := slices.Clone(r.offsets[:len(r.offsets)-1])
	for s := 0; s < a.numStates; s++ {
		for column := 0; column < k; column++ {
			if dest := a.step(s, column); dest >= 0 {
				key := dest*k + column
				r.sources[next[key]] = s
				next[key]++
			}
		}
	}
	return r
}

// predecessors returns the states that reach state on column.
func (r *reversed) predecessors(state, column int) []int {
	key := state*r.k + column
	return r.sources[r.offsets[key]:r.offsets[key+1]]
}

// SameLanguage
// Returns true if the two automata accept exactly the same strings. Both must share the same alphabet
// (as a set); missing transitions reject. Works by exploring the product automaton.
func SameLanguage(a1, a2 *Automaton) (bool, error) {
	if len(a1.alphabet) != len(a2.alphabet) {
		return false, fmt.Errorf("%w: alphabets differ in size", ErrInvalidAutomaton)
	}
	columns2 := make([]int, len(a1.alphabet))
	for i, label := range a1.alphabet {
		column, ok := a2.columns[label]
		if !ok {
			return false, fmt.Errorf("%w: label %d missing from second alphabet", ErrInvalidAutomaton, label)
		}
		columns2[i] = column
	}
	if a1.GetNumStates() == 0 || a2.GetNumStates() == 0 {
		return IsEmptyAutomaton(a1) && IsEmptyAutomaton(a2), nil
	}

	// Pair (p, q) is encoded as (p+1)*(n2+1)+(q+1) so that -1 (the implicit dead state) fits.
	n2 := a2.GetNumStates() + 1
	encode := func(p, q int) uint {
		return uint((p+1)*n2 + q + 1)
	}
	accept := func(a *Automaton, s int) bool {
		return s >= 0 && a.IsAccept(s)
	}
	next := func(a *Automaton, s, column int) int {
		if s < 0 {
			return -1
		}
		return a.step(s, column)
	}

	seen := bitset.New(uint((a1.GetNumStates() + 1) * n2))
	type pair struct{ p, q int }
	workList := []pair{{a1.start, a2.start}}
	seen.Set(encode(a1.start, a2.start))
	for len(workList) > 0 {
		cur := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		if accept(a1, cur.p) != accept(a2, cur.q) {
			return false, nil
		}
		for column := range a1.alphabet {
			p := next(a1, cur.p, column)
			q := next(a2, cur.q, columns2[column])
			if p < 0 && q < 0 {
				continue
			}
			if key := encode(p, q); !seen.Test(key) {
				seen.Set(key)
				workList = append(workList, pair{p, q})
			}
		}
	}
	return true, nil
}
