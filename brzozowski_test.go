package automaton

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nthSymbol accepts strings over {a, b} whose n'th symbol is a. Its reverse needs 2^n states.
func nthSymbol(t testing.TB, n int) *Automaton {
	delta := make([][]int, 0, n+2)
	for i := 0; i < n-1; i++ {
		delta = append(delta, []int{i + 1, i + 1})
	}
	accept, dead := n, n+1
	delta = append(delta, []int{accept, dead}, []int{accept, accept}, []int{dead, dead})
	return buildDFA(t, "ab", 0, []int{accept}, delta)
}

func TestMinimizeBrzozowski(t *testing.T) {
	t.Run("equivalentStates", func(t *testing.T) {
		a := mergeable(t)
		m, err := MinimizeBrzozowski(a, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, m.GetNumStates())
		assert.Equal(t, [][]int{{1, 1}, {2, 2}, {2, 2}}, m.Table())
		assert.Equal(t, []int{2}, m.GetAcceptStates())
	})

	t.Run("emptyLanguage", func(t *testing.T) {
		a := buildDFA(t, "ab", 0, nil, [][]int{{1, 0}, {1, 1}})
		m, err := MinimizeBrzozowski(a, 0)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 0}}, m.Table())
		assert.Empty(t, m.GetAcceptStates())
	})

	t.Run("nthSymbol", func(t *testing.T) {
		a := nthSymbol(t, 5)
		m, err := MinimizeBrzozowski(a, 0)
		require.NoError(t, err)
		assert.Equal(t, 7, m.GetNumStates())
		requireSameLanguage(t, a, m, 8)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := MinimizeBrzozowski(buildDFA(t, "a", 0, nil, [][]int{{-1}}), 0)
		assert.ErrorIs(t, err, ErrInvalidAutomaton)
	})
}

func TestMinimizeBrzozowskiWorkLimit(t *testing.T) {
	_, err := MinimizeBrzozowski(nthSymbol(t, 5), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	var tooComplex *TooComplexToDeterminizeError
	require.True(t, errors.As(err, &tooComplex))
	assert.Equal(t, 10, tooComplex.WorkLimit)
	assert.Equal(t, "determinizing automaton would result in more than 10 states", err.Error())
}

func TestReverseDeterminize(t *testing.T) {
	// a+ over {a, b}; the reverse is the same language
	a := buildDFA(t, "ab", 0, []int{1}, [][]int{{1, 2}, {1, 2}, {2, 2}})
	rev, err := reverseDeterminize(a, 0)
	require.NoError(t, err)
	assert.True(t, rev.IsTotal())
	assert.True(t, RunString(rev, "aa"))
	assert.False(t, RunString(rev, ""))
	assert.False(t, RunString(rev, "ab"))
	assert.False(t, RunString(rev, "ba"))
}

func TestMinimizeBrzozowskiAgreesWithMinimize(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))
	for i := 0; i < 200; i++ {
		a := randomDFA(t, rng, 1+rng.IntN(10), 1+rng.IntN(3))
		want, err := Minimize(a)
		require.NoError(t, err)

		got, err := MinimizeBrzozowski(a, 0)
		require.NoError(t, err)
		assert.Equal(t, want.Table(), got.Table(), "automaton %v", a)
		assert.Equal(t, want.GetAcceptStates(), got.GetAcceptStates())
	}
}
