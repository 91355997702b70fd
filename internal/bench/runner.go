package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/randdfa"
)

// ErrMismatch is returned by a verifying run when two algorithms disagree.
var ErrMismatch = errors.New("minimizers disagree")

// Runner times a set of algorithms on the random automata a Config describes.
type Runner struct {
	cfg        Config
	algorithms []Algorithm
	logger     *log.Logger
}

// NewRunner Creates a runner for all four algorithms. A nil logger logs to log.Default().
func NewRunner(cfg Config, logger *log.Logger) (*Runner, error) {
	return NewRunnerWithAlgorithms(cfg, Algorithms(cfg), logger)
}

// NewRunnerWithAlgorithms Creates a runner for the given algorithms; the first one is the reference
// the others are verified against.
func NewRunnerWithAlgorithms(cfg Config, algorithms []Algorithm, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(algorithms) == 0 {
		return nil, errors.New("bench: no algorithms")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cfg: cfg, algorithms: algorithms, logger: logger}, nil
}

// Run Times every algorithm on cfg.Trials fresh random automata per size and returns the averages. It
// stops between trials once ctx is done.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	seed := r.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|seed<<32))

	report := &Report{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Seed:    seed,
		Config:  r.cfg,
	}
	for _, alg := range r.algorithms {
		report.Algorithms = append(report.Algorithms, alg.Name)
	}

	for _, size := range r.cfg.Sizes {
		row, err := r.runSize(ctx, rng, size)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, row)
	}
	report.Elapsed = time.Since(report.Started)
	return report, nil
}

func (r *Runner) runSize(ctx context.Context, rng *rand.Rand, size int) (Row, error) {
	total := make([]time.Duration, len(r.algorithms))
	row := Row{Size: size}
	for trial := 0; trial < r.cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return Row{}, err
		}
		a, err := randdfa.New(rng, size, r.cfg.AlphabetSize)
		if err != nil {
			return Row{}, err
		}
		r.logger.Debug("generated automaton", "size", size, "trial", trial, "states", a.GetNumStates())

		var reference *automaton.Automaton
		for i, alg := range r.algorithms {
			if alg.Skips(size) {
				continue
			}
			start := time.Now()
			m, err := alg.Minimize(a)
			elapsed := time.Since(start)
			if err != nil {
				return Row{}, fmt.Errorf("%s on %d states: %w", alg.Name, a.GetNumStates(), err)
			}
			total[i] += elapsed

			if reference == nil {
				reference = m
				row.States += float64(a.GetNumStates())
				row.MinimalStates += float64(m.GetNumStates())
			}
			if r.cfg.Verify {
				if err := verify(a, reference, m); err != nil {
					return Row{}, fmt.Errorf("%s on %d states: %w", alg.Name, a.GetNumStates(), err)
				}
			}
		}
	}

	trials := float64(r.cfg.Trials)
	row.States /= trials
	row.MinimalStates /= trials
	for i, alg := range r.algorithms {
		m := Measurement{Algorithm: alg.Name}
		if alg.Skips(size) {
			m.Skipped = true
		} else {
			m.Seconds = total[i].Seconds() / trials
		}
		row.Measurements = append(row.Measurements, m)
	}
	r.logger.Info("measured", "size", size, "minimal", row.MinimalStates)
	return row, nil
}

// verify checks that m accepts the language of a and is, state for state, the reference result.
func verify(a, reference, m *automaton.Automaton) error {
	same, err := automaton.SameLanguage(a, m)
	if err != nil {
		return err
	}
	if !same {
		return fmt.Errorf("%w: result accepts a different language", ErrMismatch)
	}
	if m.GetNumStates() != reference.GetNumStates() {
		return fmt.Errorf("%w: %d states, reference has %d", ErrMismatch, m.GetNumStates(), reference.GetNumStates())
	}
	if !slices.EqualFunc(m.Table(), reference.Table(), slices.Equal[[]int]) {
		return fmt.Errorf("%w: transition tables differ", ErrMismatch)
	}
	return nil
}
