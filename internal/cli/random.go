package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/bench"
	"github.com/geange/dfamin/internal/randdfa"
)

func newRandomCmd() *cobra.Command {
	var (
		states   int
		alphabet int
		seed     uint64
	)
	cfg := bench.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Minimize one random automaton with every algorithm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if seed == 0 {
				seed = rand.Uint64()
			}
			a, err := randdfa.New(rand.New(rand.NewPCG(seed, seed>>32|seed<<32)), states, alphabet)
			if err != nil {
				return err
			}
			logger.Debug("generated automaton", "seed", seed, "states", a.GetNumStates())

			w := cmd.OutOrStdout()
			printTitle(w, "Random automaton")
			printKeyValue(w, "Seed", strconv.FormatUint(seed, 10))
			printKeyValue(w, "States", strconv.Itoa(a.GetNumStates()))
			printKeyValue(w, "Accepting", strconv.Itoa(len(a.GetAcceptStates())))
			printKeyValue(w, "Transitions", strconv.Itoa(a.GetNumTransitions()))

			sizes := make(map[int]struct{})
			for _, alg := range bench.Algorithms(cfg) {
				if alg.Skips(states) {
					printWarning(w, "%s skipped above %d states", alg.Name, alg.MaxStates)
					continue
				}
				start := time.Now()
				m, err := alg.Minimize(a)
				if errors.Is(err, automaton.ErrResourceExhausted) {
					printWarning(w, "%s: %v", alg.Name, err)
					continue
				}
				if err != nil {
					return fmt.Errorf("%s: %w", alg.Name, err)
				}
				sizes[m.GetNumStates()] = struct{}{}
				printKeyValue(w, alg.Name, fmt.Sprintf("%d states (%s)", m.GetNumStates(), time.Since(start).Round(time.Microsecond)))
			}
			if len(sizes) == 1 {
				printSuccess(w, "All algorithms agree")
			} else if len(sizes) > 1 {
				printWarning(w, "Algorithms disagree on the number of states")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&states, "states", "n", 100, "number of states to generate")
	f.IntVarP(&alphabet, "alphabet", "k", cfg.AlphabetSize, "alphabet size")
	f.Uint64Var(&seed, "seed", 0, "random seed (0: random)")
	f.IntVar(&cfg.MaxBrzozowskiStates, "max-brzozowski", cfg.MaxBrzozowskiStates, "skip Brzozowski above this size (0: never)")
	f.IntVar(&cfg.MaxIncrementalStates, "max-incremental", cfg.MaxIncrementalStates, "skip the incremental minimizer above this size (0: never)")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel minimizer workers (0: GOMAXPROCS)")
	f.IntVar(&cfg.WorkLimit, "work-limit", cfg.WorkLimit, "subset construction state limit (0: library default)")

	return cmd
}
