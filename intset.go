package automaton

// IntSet A set of states, hashable so it can key a HashMap during subset construction.
type IntSet interface {
	Hashable

	// GetArray Returns the members in ascending order.
	GetArray() []int

	Size() int
}

// isNilIntSet reports whether h holds a nil set pointer.
func isNilIntSet(h Hashable) bool {
	switch s := h.(type) {
	case *FrozenIntSet:
		return s == nil
	case *StateSet:
		return s == nil
	}
	return false
}

// asIntSet returns h as an IntSet, unless it is not one or is a nil pointer.
func asIntSet(h Hashable) (IntSet, bool) {
	if isNilIntSet(h) {
		return nil, false
	}
	is, ok := h.(IntSet)
	return is, ok
}
