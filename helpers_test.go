package automaton

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		out = append(out, int(r))
	}
	return out
}

// buildDFA builds an automaton over the runes of alphabet. delta[s][i] is the destination of state s on the
// i'th rune, -1 for none.
func buildDFA(t testing.TB, alphabet string, start int, accept []int, delta [][]int) *Automaton {
	t.Helper()
	sigma := labels(alphabet)
	a, err := NewAutomaton(sigma)
	require.NoError(t, err)
	for range delta {
		a.CreateState()
	}
	for _, s := range accept {
		a.SetAccept(s, true)
	}
	require.NoError(t, a.SetStart(start))
	for s, row := range delta {
		for i, dest := range row {
			if dest >= 0 {
				require.NoError(t, a.AddTransition(s, dest, sigma[i]))
			}
		}
	}
	return a
}

// randomDFA returns a total automaton with n states over the first k lowercase letters. States may be
// unreachable.
func randomDFA(t testing.TB, rng *rand.Rand, n, k int) *Automaton {
	t.Helper()
	alphabet := make([]byte, k)
	for i := range alphabet {
		alphabet[i] = byte('a' + i)
	}
	delta := make([][]int, n)
	var accept []int
	for s := range delta {
		delta[s] = make([]int, k)
		for i := range delta[s] {
			delta[s][i] = rng.IntN(n)
		}
		if rng.IntN(3) == 0 {
			accept = append(accept, s)
		}
	}
	return buildDFA(t, string(alphabet), rng.IntN(n), accept, delta)
}

// words returns every string over alphabet of length at most n.
func words(alphabet []int, n int) [][]int {
	result := [][]int{{}}
	level := [][]int{{}}
	for i := 0; i < n; i++ {
		next := make([][]int, 0, len(level)*len(alphabet))
		for _, w := range level {
			for _, label := range alphabet {
				next = append(next, append(append([]int(nil), w...), label))
			}
		}
		result = append(result, next...)
		level = next
	}
	return result
}

// requireSameLanguage checks language equality both through the product automaton and by running every
// string up to length maxLen.
func requireSameLanguage(t testing.TB, a1, a2 *Automaton, maxLen int) {
	t.Helper()
	same, err := SameLanguage(a1, a2)
	require.NoError(t, err)
	require.True(t, same)
	for _, w := range words(a1.GetAlphabet(), maxLen) {
		require.Equal(t, Run(a1, w), Run(a2, w), "word %v", w)
	}
}

// runFrom runs w from state, a missing transition rejecting.
func runFrom(a *Automaton, state int, w []int) bool {
	for _, label := range w {
		if state = a.Step(state, label); state < 0 {
			return false
		}
	}
	return a.IsAccept(state)
}

// signature records which strings up to length maxLen state accepts. Two states have the same
// signature for a large enough maxLen exactly when they are equivalent.
func signature(a *Automaton, state, maxLen int) string {
	ws := words(a.GetAlphabet(), maxLen)
	sig := make([]byte, len(ws))
	for i, w := range ws {
		sig[i] = '0'
		if runFrom(a, state, w) {
			sig[i] = '1'
		}
	}
	return string(sig)
}

// countClasses brute-forces the number of equivalence classes among the states reachable from start.
func countClasses(a *Automaton) int {
	maxLen := a.GetNumStates()
	live := getLiveStatesFromInitial(a)
	classes := make(map[string]struct{})
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		classes[signature(a, int(s), maxLen)] = struct{}{}
	}
	return len(classes)
}
