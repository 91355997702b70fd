package automaton

import (
	"fmt"
	"slices"
	"sync/atomic"
)

var incrementalTags atomic.Uint64

// Handle A stable reference to a state added to an Incremental. State numbers change every time the
// automaton is minimized again; a Handle keeps naming the same added state and is resolved to its current
// number with Incremental.Resolve.
type Handle struct {
	id  int
	tag uint64
}

// Incremental A minimal automaton that is kept minimal while states and transitions are added.
//
// Every added state and transition is recorded in a source automaton; a transition that was never added is
// absent and rejects. After each AddTransition the whole source is minimized again (absent transitions
// rejecting), and that minimal automaton is what the accessors expose. States added since the last pass are
// appended to it unconnected, each in its own block, until the next AddTransition.
//
// An Incremental is not safe for concurrent use.
type Incremental struct {
	tag uint64

	source *Automaton

	current *Automaton

	// Maps every source state to its state in current, -1 if it was trimmed away (unreachable, or it can
	// never reach an accept state).
	toCurrent []int

	blocks [][]int

	generation uint64
}

type incrementalOptions struct {
	acceptStart bool
}

type IncrementalOption func(*incrementalOptions)

// WithAcceptingStart Makes the initial state an accept state.
func WithAcceptingStart(accept bool) IncrementalOption {
	return func(o *incrementalOptions) {
		o.acceptStart = accept
	}
}

// NewIncremental Creates an incremental minimizer whose automaton has a single non-accepting initial state
// looping on every label.
func NewIncremental(alphabet []int, opts ...IncrementalOption) (*Incremental, error) {
	options := &incrementalOptions{}
	for _, opt := range opts {
		opt(options)
	}

	source, err := defaultAutomata.MakeEmpty(alphabet)
	if err != nil {
		return nil, err
	}
	source.SetAccept(0, options.acceptStart)
	return &Incremental{
		tag:       incrementalTags.Add(1),
		source:    source,
		current:   source.Clone(),
		toCurrent: []int{0},
		blocks:    [][]int{{0}},
	}, nil
}

// StartHandle Returns the handle of the initial state.
func (m *Incremental) StartHandle() Handle {
	return Handle{id: 0, tag: m.tag}
}

// AddState Appends a state with no transitions and returns its handle. Until the next AddTransition the
// state is part of the exposed automaton as an unconnected singleton block.
func (m *Incremental) AddState(accept bool) Handle {
	id := m.source.CreateState()
	m.source.SetAccept(id, accept)

	state := m.current.CreateState()
	m.current.SetAccept(state, accept)
	m.toCurrent = append(m.toCurrent, state)
	m.blocks = append(m.blocks, []int{state})
	return Handle{id: id, tag: m.tag}
}

// AddTransition Adds (or replaces) the transition from on label, then minimizes again. Returns an error
// wrapping ErrInvalidStateReference if a handle does not belong to m, or ErrInvalidAutomaton if label is not
// in the alphabet; in both cases nothing changes.
func (m *Incremental) AddTransition(from Handle, label int, to Handle) error {
	if err := m.check(from); err != nil {
		return err
	}
	if err := m.check(to); err != nil {
		return err
	}

	source := m.source.Clone()
	if err := source.AddTransition(from.id, to.id, label); err != nil {
		return err
	}
	current, toCurrent := minimizePartial(source)

	m.source = source
	m.current = current
	m.toCurrent = toCurrent
	m.blocks = refineBlocks(current)
	m.generation++
	return nil
}

// Resolve Returns the current number of the state h was returned for, or -1 if that state is not part of
// the minimal automaton (it is unreachable, or no accept state can be reached from it).
func (m *Incremental) Resolve(h Handle) (int, error) {
	if err := m.check(h); err != nil {
		return -1, err
	}
	return m.toCurrent[h.id], nil
}

// StateHandle Returns a handle for the current state numbered state. When several added states were merged
// into it, the earliest added one is returned.
func (m *Incremental) StateHandle(state int) (Handle, error) {
	if i := slices.Index(m.toCurrent, state); state >= 0 && i >= 0 {
		return Handle{id: i, tag: m.tag}, nil
	}
	return Handle{}, fmt.Errorf("%w: no state %d", ErrInvalidStateReference, state)
}

func (m *Incremental) check(h Handle) error {
	if h.tag != m.tag {
		return fmt.Errorf("%w: handle belongs to another minimizer", ErrInvalidStateReference)
	}
	if h.id < 0 || h.id >= m.source.GetNumStates() {
		return fmt.Errorf("%w: unknown state %d", ErrInvalidStateReference, h.id)
	}
	return nil
}

// Automaton Returns a copy of the current automaton.
func (m *Incremental) Automaton() *Automaton {
	return m.current.Clone()
}

func (m *Incremental) Alphabet() []int {
	return m.current.GetAlphabet()
}

func (m *Incremental) NumStates() int {
	return m.current.GetNumStates()
}

func (m *Incremental) Start() int {
	return m.current.GetStart()
}

func (m *Incremental) IsAccept(state int) bool {
	return m.current.IsAccept(state)
}

// AcceptStates Returns the current accept states in ascending order.
func (m *Incremental) AcceptStates() []int {
	return m.current.GetAcceptStates()
}

// Step Returns the current destination of state on label, or -1.
func (m *Incremental) Step(state, label int) int {
	return m.current.Step(state, label)
}

// Partitions Returns the blocks of equivalent states of the current automaton.
func (m *Incremental) Partitions() [][]int {
	blocks := make([][]int, len(m.blocks))
	for i, b := range m.blocks {
		blocks[i] = slices.Clone(b)
	}
	return blocks
}

// Generation Returns how many times the automaton has been minimized.
func (m *Incremental) Generation() uint64 {
	return m.generation
}

// minimizePartial
// Minimizes an automaton whose transition function may be partial, a missing transition rejecting. The
// automaton is completed with a dead state for refinement; the block of that dead state is then dropped,
// unless it holds the initial state (the language is empty and the result is a single looping state).
// Also returns the state of the result each state of a ended up in, or -1.
func minimizePartial(a *Automaton) (*Automaton, []int) {
	trimmed, toTrimmed := removeUnreachable(a)
	total, deadState := totalize(trimmed)
	p := hopcroft(total)

	dropped := -1
	if deadState >= 0 && p.blockOf[deadState] != p.blockOf[total.start] {
		dropped = p.blockOf[deadState]
	}
	q, blockState := quotient(total, p.blockOf, p.numBlocks(), dropped)
	result, toResult := removeUnreachable(q)

	mp := make([]int, a.GetNumStates())
	for s := range mp {
		mp[s] = -1
		t := toTrimmed[s]
		if t < 0 {
			continue
		}
		if state := blockState[p.blockOf[t]]; state >= 0 {
			mp[s] = toResult[state]
		}
	}
	return result, mp
}

// refineBlocks Returns the Myhill-Nerode classes of the states of a, missing transitions rejecting.
// Unreachable states are classified too.
func refineBlocks(a *Automaton) [][]int {
	total, deadState := totalize(a)
	p := hopcroft(total)
	blocks := make([][]int, 0, p.numBlocks())
	for _, members := range p.blocks() {
		members = slices.DeleteFunc(members, func(s int) bool {
			return s == deadState
		})
		if len(members) == 0 {
			continue
		}
		slices.Sort(members)
		blocks = append(blocks, members)
	}
	slices.SortFunc(blocks, func(x, y []int) int {
		return x[0] - y[0]
	})
	return blocks
}
