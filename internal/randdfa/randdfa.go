// Package randdfa generates random deterministic automata for benchmarks and tests.
package randdfa

import (
	"fmt"
	"math/rand/v2"

	automaton "github.com/geange/dfamin"
)

// Alphabet Returns the first size lowercase letters, 'a', 'b', ...
func Alphabet(size int) []int {
	alphabet := make([]int, size)
	for i := range alphabet {
		alphabet[i] = 'a' + i
	}
	return alphabet
}

// New
// Returns a random total automaton over Alphabet(alphabetSize). Every state gets a uniformly random
// destination for every label and a random non-empty subset of the states accepts; states unreachable from
// the initial state 0 are then removed, so the result may have fewer than numStates states. If none of the
// remaining states accepts, the initial state is made accepting.
func New(rng *rand.Rand, numStates, alphabetSize int) (*automaton.Automaton, error) {
	if numStates <= 0 {
		return nil, fmt.Errorf("%w: number of states must be positive, got %d", automaton.ErrInvalidAutomaton, numStates)
	}
	if alphabetSize <= 0 || alphabetSize > 26 {
		return nil, fmt.Errorf("%w: alphabet size must be in [1, 26], got %d", automaton.ErrInvalidAutomaton, alphabetSize)
	}

	alphabet := Alphabet(alphabetSize)
	a, err := automaton.NewAutomatonV1(alphabet, numStates)
	if err != nil {
		return nil, err
	}
	for i := 0; i < numStates; i++ {
		a.CreateState()
	}
	for s := 0; s < numStates; s++ {
		for _, label := range alphabet {
			if err := a.AddTransition(s, rng.IntN(numStates), label); err != nil {
				return nil, err
			}
		}
	}

	finals := 1 + rng.IntN(numStates)
	for _, s := range rng.Perm(numStates)[:finals] {
		a.SetAccept(s, true)
	}

	trimmed := automaton.RemoveUnreachable(a)
	if len(trimmed.GetAcceptStates()) == 0 {
		trimmed.SetAccept(trimmed.GetStart(), true)
	}
	return trimmed, nil
}
