package randdfa

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/geange/dfamin"
)

func TestAlphabet(t *testing.T) {
	assert.Equal(t, []int{'a', 'b', 'c'}, Alphabet(3))
	assert.Empty(t, Alphabet(0))
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, n := range []int{1, 2, 10, 100, 500} {
		for _, k := range []int{1, 2, 5} {
			a, err := New(rng, n, k)
			require.NoError(t, err)

			assert.NoError(t, a.Validate())
			assert.LessOrEqual(t, a.GetNumStates(), n)
			assert.NotEmpty(t, a.GetAcceptStates())
			assert.Equal(t, Alphabet(k), a.GetAlphabet())
			assert.Equal(t, 0, a.GetStart())
			assert.Equal(t, a.GetNumStates(), automaton.RemoveUnreachable(a).GetNumStates())
		}
	}
}

func TestNewDeterministic(t *testing.T) {
	a1, err := New(rand.New(rand.NewPCG(5, 8)), 50, 3)
	require.NoError(t, err)
	a2, err := New(rand.New(rand.NewPCG(5, 8)), 50, 3)
	require.NoError(t, err)
	assert.Equal(t, a1.Table(), a2.Table())
	assert.Equal(t, a1.GetAcceptStates(), a2.GetAcceptStates())
}

func TestNewInvalid(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	tests := []struct {
		name      string
		numStates int
		alphabet  int
	}{
		{"no states", 0, 2},
		{"negative states", -3, 2},
		{"empty alphabet", 10, 0},
		{"alphabet too large", 10, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(rng, tt.numStates, tt.alphabet)
			assert.ErrorIs(t, err, automaton.ErrInvalidAutomaton)
		})
	}
}
