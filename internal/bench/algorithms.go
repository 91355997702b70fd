package bench

import (
	automaton "github.com/geange/dfamin"
)

// Algorithm A minimizer under test.
type Algorithm struct {
	Name string

	// MaxStates skips automata requested with more states; 0 never skips.
	MaxStates int

	Minimize func(a *automaton.Automaton) (*automaton.Automaton, error)
}

// Skips Reports whether the algorithm is skipped for automata of the given requested size.
func (alg Algorithm) Skips(size int) bool {
	return alg.MaxStates > 0 && size > alg.MaxStates
}

// Algorithms Returns the four minimizers configured by cfg, Hopcroft first.
func Algorithms(cfg Config) []Algorithm {
	return []Algorithm{
		{
			Name:     "Hopcroft",
			Minimize: automaton.Minimize,
		},
		{
			Name:      "Brzozowski",
			MaxStates: cfg.MaxBrzozowskiStates,
			Minimize: func(a *automaton.Automaton) (*automaton.Automaton, error) {
				return automaton.MinimizeBrzozowski(a, cfg.WorkLimit)
			},
		},
		{
			Name:      "Incremental",
			MaxStates: cfg.MaxIncrementalStates,
			Minimize:  replayIncremental,
		},
		{
			Name: "Parallel",
			Minimize: func(a *automaton.Automaton) (*automaton.Automaton, error) {
				return automaton.MinimizeParallel(a, cfg.Workers)
			},
		},
	}
}

// replayIncremental builds a through an incremental minimizer, one state and one transition at a time,
// and returns the automaton it ends up with.
func replayIncremental(a *automaton.Automaton) (*automaton.Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	m, err := automaton.NewIncremental(a.GetAlphabet(), automaton.WithAcceptingStart(a.IsAccept(a.GetStart())))
	if err != nil {
		return nil, err
	}

	handles := make([]automaton.Handle, a.GetNumStates())
	for s := range handles {
		if s == a.GetStart() {
			handles[s] = m.StartHandle()
			continue
		}
		handles[s] = m.AddState(a.IsAccept(s))
	}

	t := automaton.NewTransition()
	for s := range handles {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if err := m.AddTransition(handles[t.Source], t.Label, handles[t.Dest]); err != nil {
				return nil, err
			}
		}
	}
	return m.Automaton(), nil
}
