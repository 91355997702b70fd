package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/geange/dfamin/internal/bench"
)

type benchOptions struct {
	configPath string
	format     string
	out        string

	sizes          []int
	alphabet       int
	trials         int
	maxBrzozowski  int
	maxIncremental int
	workers        int
	workLimit      int
	seed           uint64
	verify         bool
}

func newBenchCmd() *cobra.Command {
	opts := &benchOptions{}
	defaults := bench.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the minimization algorithms on random automata",
		Long: `Generates random automata of every requested size and times Hopcroft's algorithm, Brzozowski's
algorithm, the incremental minimizer and the parallel minimizer on each, reporting average seconds.

Settings are read from --config (TOML) when given; flags override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	f.StringVarP(&opts.format, "format", "f", bench.FormatTable, "output format: table, json or yaml")
	f.StringVarP(&opts.out, "out", "o", "", "write the report to this file instead of stdout")
	f.IntSliceVar(&opts.sizes, "sizes", defaults.Sizes, "numbers of states to generate")
	f.IntVar(&opts.alphabet, "alphabet", defaults.AlphabetSize, "alphabet size")
	f.IntVar(&opts.trials, "trials", defaults.Trials, "random automata per size")
	f.IntVar(&opts.maxBrzozowski, "max-brzozowski", defaults.MaxBrzozowskiStates, "skip Brzozowski above this size (0: never)")
	f.IntVar(&opts.maxIncremental, "max-incremental", defaults.MaxIncrementalStates, "skip the incremental minimizer above this size (0: never)")
	f.IntVar(&opts.workers, "workers", defaults.Workers, "parallel minimizer workers (0: GOMAXPROCS)")
	f.IntVar(&opts.workLimit, "work-limit", defaults.WorkLimit, "subset construction state limit (0: library default)")
	f.Uint64Var(&opts.seed, "seed", defaults.Seed, "random seed (0: random)")
	f.BoolVar(&opts.verify, "verify", defaults.Verify, "check that all algorithms return the same automaton")

	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (o *benchOptions) apply(flags *pflag.FlagSet, cfg *bench.Config) {
	if flags.Changed("sizes") {
		cfg.Sizes = o.sizes
	}
	if flags.Changed("alphabet") {
		cfg.AlphabetSize = o.alphabet
	}
	if flags.Changed("trials") {
		cfg.Trials = o.trials
	}
	if flags.Changed("max-brzozowski") {
		cfg.MaxBrzozowskiStates = o.maxBrzozowski
	}
	if flags.Changed("max-incremental") {
		cfg.MaxIncrementalStates = o.maxIncremental
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("work-limit") {
		cfg.WorkLimit = o.workLimit
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("verify") {
		cfg.Verify = o.verify
	}
}

func (o *benchOptions) config(flags *pflag.FlagSet) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if o.configPath != "" {
		loaded, err := bench.LoadConfig(o.configPath)
		if err != nil {
			return bench.Config{}, err
		}
		cfg = loaded
	}
	o.apply(flags, &cfg)
	return cfg, cfg.Validate()
}

func runBench(cmd *cobra.Command, opts *benchOptions) error {
	switch opts.format {
	case bench.FormatTable, bench.FormatJSON, bench.FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.format)
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.config(cmd.Flags())
	if err != nil {
		return err
	}
	runner, err := bench.NewRunner(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("starting benchmark", "sizes", len(cfg.Sizes), "trials", cfg.Trials, "verify", cfg.Verify)
	prog := newProgress(logger)
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Benchmarked %d sizes", len(report.Rows)))

	if opts.out == "" {
		return report.Write(cmd.OutOrStdout(), opts.format)
	}
	if err := writeFile(opts.out, func(w io.Writer) error {
		return report.Write(w, opts.format)
	}); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Wrote report %s", report.ID)
	printFile(cmd.OutOrStdout(), opts.out)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
