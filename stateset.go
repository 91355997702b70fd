package automaton

import "slices"

var _ IntSet = &StateSet{}

// StateSet A mutable multiset of states used to accumulate the successors of a subset. Incr and Decr
// count how many times each state was added; a state is a member while its count is positive. The hash
// and the sorted members are cached until membership changes.
type StateSet struct {
	counts map[int]int

	stale  bool
	hash   uint64
	sorted []int
}

func NewStateSet() *StateSet {
	return &StateSet{counts: make(map[int]int), stale: true}
}

func (s *StateSet) refresh() {
	if !s.stale {
		return
	}
	s.sorted = s.sorted[:0]
	s.hash = uint64(len(s.counts))
	for state := range s.counts {
		s.sorted = append(s.sorted, state)
		s.hash += uint64(mix(state))
	}
	slices.Sort(s.sorted)
	s.stale = false
}

// Hash Independent of insertion order: the size plus the mixed value of every member.
func (s *StateSet) Hash() uint64 {
	s.refresh()
	return s.hash
}

func (s *StateSet) Equals(other Hashable) bool {
	is, ok := asIntSet(other)
	if !ok {
		return false
	}
	s.refresh()
	return s.hash == is.Hash() && slices.Equal(s.sorted, is.GetArray())
}

// GetArray Returns a copy of the members in ascending order.
func (s *StateSet) GetArray() []int {
	s.refresh()
	return slices.Clone(s.sorted)
}

func (s *StateSet) Size() int {
	return len(s.counts)
}

func (s *StateSet) Incr(state int) {
	s.counts[state]++
	if s.counts[state] == 1 {
		s.stale = true
	}
}

func (s *StateSet) Decr(state int) {
	switch s.counts[state] {
	case 0:
		return
	case 1:
		delete(s.counts, state)
		s.stale = true
	default:
		s.counts[state]--
	}
}

// Reset Removes every member.
func (s *StateSet) Reset() {
	clear(s.counts)
	s.stale = true
}

// Freeze Returns an immutable copy assigned to state.
func (s *StateSet) Freeze(state int) *FrozenIntSet {
	return NewFrozenIntSet(s.GetArray(), s.Hash(), state)
}
