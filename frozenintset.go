package automaton

import (
	"slices"
	"sort"
)

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet An immutable, sorted set of states, remembering the state it was assigned in the
// automaton being built.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals Two sets are equal when they hold the same members; the assigned state is not compared. A nil
// set only equals another nil set.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	if f == nil {
		return isNilIntSet(other)
	}
	is, ok := asIntSet(other)
	if !ok {
		return false
	}
	if is.Hash() != f.hashCode || is.Size() != len(f.values) {
		return false
	}
	return slices.Equal(f.values, is.GetArray())
}

func NewFrozenIntSet(values []int, hashCode uint64, state int) *FrozenIntSet {
	return &FrozenIntSet{values: values, state: state, hashCode: hashCode}
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

// Contains Returns true if state is a member.
func (f *FrozenIntSet) Contains(state int) bool {
	i := sort.SearchInts(f.values, state)
	return i < len(f.values) && f.values[i] == state
}
