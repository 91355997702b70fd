package automaton

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents a deterministic automaton over a fixed, ordered alphabet. States are integers
// and must be created using CreateState. Mark a state as an accept state using SetAccept. Add transitions
// using AddTransition; adding a transition for a (state, label) pair that already has one replaces it.
// State 0 is the initial state unless SetStart says otherwise.
//
// A transition that was never added is absent. Minimizers require every state to have exactly one
// transition per label (see Validate); partial automata are only accepted by the incremental minimizer.
type Automaton struct {
	// Labels in iteration order; the column of a label in transitions is its index here.
	alphabet []int

	// Reverse of alphabet.
	columns map[int]int

	numStates int

	start int

	isAccept *bitset.BitSet

	// Holds the destination for every (state, column) pair at state*len(alphabet)+column, -1 if absent.
	transitions []int
}

// NewAutomaton Creates an empty automaton over alphabet. Labels must be distinct.
func NewAutomaton(alphabet []int) (*Automaton, error) {
	return NewAutomatonV1(alphabet, 2)
}

// NewAutomatonV1 Creates an empty automaton over alphabet, reserving room for numStates states.
func NewAutomatonV1(alphabet []int, numStates int) (*Automaton, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidAutomaton)
	}
	columns := make(map[int]int, len(alphabet))
	for i, label := range alphabet {
		if _, ok := columns[label]; ok {
			return nil, fmt.Errorf("%w: duplicate label %d in alphabet", ErrInvalidAutomaton, label)
		}
		columns[label] = i
	}
	return &Automaton{
		alphabet:    slices.Clone(alphabet),
		columns:     columns,
		isAccept:    bitset.New(uint(numStates)),
		transitions: make([]int, 0, numStates*len(alphabet)),
	}, nil
}

// newAutomatonLike returns an empty automaton sharing a's alphabet.
func newAutomatonLike(a *Automaton, numStates int) *Automaton {
	return &Automaton{
		alphabet:    a.alphabet,
		columns:     a.columns,
		isAccept:    bitset.New(uint(numStates)),
		transitions: make([]int, 0, numStates*len(a.alphabet)),
	}
}

// CreateState Create a new state with no transitions.
func (a *Automaton) CreateState() int {
	state := a.numStates
	a.numStates++
	a.transitions = grow(a.transitions, a.numStates*len(a.alphabet))
	for i := state * len(a.alphabet); i < len(a.transitions); i++ {
		a.transitions[i] = -1
	}
	return state
}

// SetAccept Set or clear this state as an accept state.
func (a *Automaton) SetAccept(state int, accept bool) {
	a.isAccept.SetTo(uint(state), accept)
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// SetStart Makes state the initial state.
func (a *Automaton) SetStart(state int) error {
	if !a.validState(state) {
		return fmt.Errorf("%w: start state %d out of range [0, %d)", ErrInvalidAutomaton, state, a.numStates)
	}
	a.start = state
	return nil
}

// GetStart Returns the initial state.
func (a *Automaton) GetStart() int {
	return a.start
}

// AddTransition Add (or replace) the transition leaving source on label.
func (a *Automaton) AddTransition(source, dest, label int) error {
	if !a.validState(source) {
		return fmt.Errorf("%w: source state %d out of range [0, %d)", ErrInvalidAutomaton, source, a.numStates)
	}
	if !a.validState(dest) {
		return fmt.Errorf("%w: dest state %d out of range [0, %d)", ErrInvalidAutomaton, dest, a.numStates)
	}
	column, ok := a.columns[label]
	if !ok {
		return fmt.Errorf("%w: label %d is not in the alphabet", ErrInvalidAutomaton, label)
	}
	a.transitions[source*len(a.alphabet)+column] = dest
	return nil
}

// Step Performs lookup in transitions.
// Returns: destination state, -1 if there is no such transition or label is not in the alphabet.
func (a *Automaton) Step(state, label int) int {
	column, ok := a.columns[label]
	if !ok || !a.validState(state) {
		return -1
	}
	return a.step(state, column)
}

func (a *Automaton) step(state, column int) int {
	return a.transitions[state*len(a.alphabet)+column]
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return a.numStates
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	count := 0
	for _, dest := range a.transitions {
		if dest >= 0 {
			count++
		}
	}
	return count
}

// GetNumTransitionsWithState How many transitions this state has.
func (a *Automaton) GetNumTransitionsWithState(state int) int {
	count := 0
	for column := range a.alphabet {
		if a.step(state, column) >= 0 {
			count++
		}
	}
	return count
}

// GetAlphabet Returns a copy of the alphabet, in iteration order.
func (a *Automaton) GetAlphabet() []int {
	return slices.Clone(a.alphabet)
}

// GetAcceptStates Returns the accept states in ascending order.
func (a *Automaton) GetAcceptStates() []int {
	states := make([]int, 0, a.isAccept.Count())
	for i, ok := a.isAccept.NextSet(0); ok && int(i) < a.numStates; i, ok = a.isAccept.NextSet(i + 1) {
		states = append(states, int(i))
	}
	return states
}

// IsTotal Returns true if every state has a transition for every label.
func (a *Automaton) IsTotal() bool {
	return !slices.Contains(a.transitions, -1)
}

// Validate Checks the invariants every minimizer relies on: the start state exists, every accept
// state exists and the transition function is total. Violations wrap ErrInvalidAutomaton.
func (a *Automaton) Validate() error {
	if a.numStates == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidAutomaton)
	}
	if !a.validState(a.start) {
		return fmt.Errorf("%w: start state %d out of range [0, %d)", ErrInvalidAutomaton, a.start, a.numStates)
	}
	if i, ok := a.isAccept.NextSet(uint(a.numStates)); ok {
		return fmt.Errorf("%w: accept state %d out of range [0, %d)", ErrInvalidAutomaton, i, a.numStates)
	}
	for i, dest := range a.transitions {
		if dest < 0 {
			return fmt.Errorf("%w: state %d has no transition on label %d",
				ErrInvalidAutomaton, i/len(a.alphabet), a.alphabet[i%len(a.alphabet)])
		}
	}
	return nil
}

// Clone Returns a deep copy.
func (a *Automaton) Clone() *Automaton {
	return &Automaton{
		alphabet:    a.alphabet,
		columns:     a.columns,
		numStates:   a.numStates,
		start:       a.start,
		isAccept:    a.isAccept.Clone(),
		transitions: slices.Clone(a.transitions),
	}
}

// Table Returns the transition table: Table()[state][i] is the destination of state on the i'th label
// of the alphabet, or -1.
func (a *Automaton) Table() [][]int {
	k := len(a.alphabet)
	table := make([][]int, a.numStates)
	for s := range table {
		table[s] = slices.Clone(a.transitions[s*k : (s+1)*k])
	}
	return table
}

func (a *Automaton) validState(state int) bool {
	return state >= 0 && state < a.numStates
}

func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "states=%d start=%d accept=%v\n", a.numStates, a.start, a.GetAcceptStates())
	t := NewTransition()
	for s := 0; s < a.numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			fmt.Fprintf(&b, "  %d -%q-> %d\n", t.Source, rune(t.Label), t.Dest)
		}
	}
	return b.String()
}

// Transition A transition leaving Source, filled in by GetNextTransition.
type Transition struct {
	Source int
	Dest   int
	Label  int

	// Next column to examine.
	column int
}

func NewTransition() *Transition {
	return &Transition{Source: -1, Dest: -1}
}

// InitTransition Initialize the provided Transition to iterate through all transitions leaving the specified
// state. You must call GetNextTransition to get each transition. Returns the number of transitions leaving
// this state.
func (a *Automaton) InitTransition(state int, t *Transition) int {
	t.Source = state
	t.column = 0
	return a.GetNumTransitionsWithState(state)
}

// GetNextTransition Iterate to the next transition after the provided one, in alphabet order.
func (a *Automaton) GetNextTransition(t *Transition) {
	for t.column < len(a.alphabet) {
		column := t.column
		t.column++
		if dest := a.step(t.Source, column); dest >= 0 {
			t.Dest = dest
			t.Label = a.alphabet[column]
			return
		}
	}
	t.Dest = -1
}
