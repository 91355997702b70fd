package automaton

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergeable has two distinct states, 1 and 2, with identical behavior.
func mergeable(t testing.TB) *Automaton {
	return buildDFA(t, "ab", 0, []int{3}, [][]int{
		{1, 2},
		{3, 3},
		{3, 3},
		{3, 3},
	})
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		name   string
		a      func(t testing.TB) *Automaton
		states int
		table  [][]int
		accept []int
	}{
		{
			name: "alreadyMinimal",
			a: func(t testing.TB) *Automaton {
				return buildDFA(t, "a", 0, []int{1}, [][]int{{1}, {1}})
			},
			states: 2,
			table:  [][]int{{1}, {1}},
			accept: []int{1},
		},
		{
			name: "unreachableState",
			a: func(t testing.TB) *Automaton {
				return buildDFA(t, "a", 0, []int{2}, [][]int{{1}, {2}, {2}, {2}})
			},
			states: 3,
			table:  [][]int{{1}, {2}, {2}},
			accept: []int{2},
		},
		{
			name:   "equivalentStates",
			a:      mergeable,
			states: 3,
			table:  [][]int{{1, 1}, {2, 2}, {2, 2}},
			accept: []int{2},
		},
		{
			name: "emptyLanguage",
			a: func(t testing.TB) *Automaton {
				return buildDFA(t, "ab", 0, nil, [][]int{{1, 2}, {2, 0}, {1, 1}})
			},
			states: 1,
			table:  [][]int{{0, 0}},
			accept: []int{},
		},
		{
			name: "allAccepting",
			a: func(t testing.TB) *Automaton {
				return buildDFA(t, "ab", 1, []int{0, 1}, [][]int{{1, 0}, {0, 0}})
			},
			states: 1,
			table:  [][]int{{0, 0}},
			accept: []int{0},
		},
		{
			// strings over {a, b} ending in "ab"
			name: "suffix",
			a: func(t testing.TB) *Automaton {
				return buildDFA(t, "ab", 0, []int{2, 5}, [][]int{
					{1, 3},
					{4, 2},
					{1, 3},
					{1, 3},
					{4, 5},
					{1, 0},
				})
			},
			states: 3,
			table:  [][]int{{1, 0}, {1, 2}, {1, 0}},
			accept: []int{2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.a(t)
			m, err := Minimize(a)
			require.NoError(t, err)
			assert.Equal(t, tt.states, m.GetNumStates())
			assert.Equal(t, 0, m.GetStart())
			assert.Equal(t, tt.table, m.Table())
			if len(tt.accept) == 0 {
				assert.Empty(t, m.GetAcceptStates())
			} else {
				assert.Equal(t, tt.accept, m.GetAcceptStates())
			}
			requireSameLanguage(t, a, m, 6)
		})
	}
}

func TestMinimizeInvalid(t *testing.T) {
	partial := buildDFA(t, "ab", 0, []int{1}, [][]int{{1, -1}, {1, 1}})
	_, err := Minimize(partial)
	assert.ErrorIs(t, err, ErrInvalidAutomaton)

	noStates, err := NewAutomaton(labels("a"))
	require.NoError(t, err)
	_, err = Minimize(noStates)
	assert.ErrorIs(t, err, ErrInvalidAutomaton)
}

func TestMinimizeDoesNotModifyInput(t *testing.T) {
	a := mergeable(t)
	table := a.Table()
	_, err := Minimize(a)
	require.NoError(t, err)
	assert.Equal(t, table, a.Table())
	assert.Equal(t, []int{3}, a.GetAcceptStates())
}

func TestMinimizeRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		n := 1 + rng.IntN(8)
		k := 1 + rng.IntN(3)
		a := randomDFA(t, rng, n, k)

		m, err := Minimize(a)
		require.NoError(t, err)
		requireSameLanguage(t, a, m, 5)

		// every state of the result is reachable and no two are equivalent
		assert.Equal(t, countClasses(a), m.GetNumStates(), "automaton %v", a)
		assert.Equal(t, m.GetNumStates(), RemoveUnreachable(m).GetNumStates())

		again, err := Minimize(m)
		require.NoError(t, err)
		assert.Equal(t, m.Table(), again.Table())
		assert.Equal(t, m.GetAcceptStates(), again.GetAcceptStates())
	}
}

func TestMinimizeIgnoresUnreachable(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 50; i++ {
		a := randomDFA(t, rng, 2+rng.IntN(20), 2)
		m1, err := Minimize(a)
		require.NoError(t, err)
		m2, err := Minimize(RemoveUnreachable(a))
		require.NoError(t, err)
		assert.Equal(t, m1.Table(), m2.Table())
		assert.Equal(t, m1.GetAcceptStates(), m2.GetAcceptStates())
	}
}

func TestQuotient(t *testing.T) {
	a := mergeable(t)
	q, blockState := quotient(a, []int{0, 1, 1, 2}, 3, -1)
	assert.Equal(t, []int{0, 1, 2}, blockState)
	assert.Equal(t, [][]int{{1, 1}, {2, 2}, {2, 2}}, q.Table())
	assert.Equal(t, []int{2}, q.GetAcceptStates())

	dropped, blockState := quotient(a, []int{0, 1, 1, 2}, 3, 2)
	assert.Equal(t, []int{0, 1, -1}, blockState)
	assert.Equal(t, [][]int{{1, 1}, {-1, -1}}, dropped.Table())
	assert.Empty(t, dropped.GetAcceptStates())
}
