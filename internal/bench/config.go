// Package bench times the minimization algorithms on random automata of increasing size.
package bench

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config Parameters of one benchmark run. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Sizes are the numbers of states requested from the generator, one row of the report each.
	Sizes []int `toml:"sizes" json:"sizes"`

	AlphabetSize int `toml:"alphabet_size" json:"alphabetSize"`

	// Trials is the number of random automata timed per size; reported times are averages.
	Trials int `toml:"trials" json:"trials"`

	// MaxBrzozowskiStates skips Brzozowski's algorithm above this size; 0 never skips.
	MaxBrzozowskiStates int `toml:"max_brzozowski_states" json:"maxBrzozowskiStates"`

	// MaxIncrementalStates skips the incremental minimizer above this size; 0 never skips.
	MaxIncrementalStates int `toml:"max_incremental_states" json:"maxIncrementalStates"`

	// Workers for the parallel minimizer, GOMAXPROCS when <= 0.
	Workers int `toml:"workers" json:"workers"`

	// WorkLimit bounds subset construction, the library default when <= 0.
	WorkLimit int `toml:"work_limit" json:"workLimit"`

	// Seed of the generator; 0 picks a random seed, which the report records.
	Seed uint64 `toml:"seed" json:"seed"`

	// Verify checks that every algorithm returns the same minimal automaton.
	Verify bool `toml:"verify" json:"verify"`
}

// DefaultConfig Returns the configuration of the reference experiment: 50 to 1000 states in steps of 50
// over a binary alphabet, three trials each, Brzozowski's algorithm only up to 20 states.
func DefaultConfig() Config {
	return Config{
		Sizes:                SizeRange(50, 1000, 50),
		AlphabetSize:         2,
		Trials:               3,
		MaxBrzozowskiStates:  20,
		MaxIncrementalStates: 200,
	}
}

// LoadConfig Reads a TOML file over DefaultConfig. Keys the file sets replace the defaults; unknown
// keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("read config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate Reports the first invalid field.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.New("config: no sizes")
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			return fmt.Errorf("config: size %d is not positive", n)
		}
	}
	if c.AlphabetSize <= 0 || c.AlphabetSize > 26 {
		return fmt.Errorf("config: alphabet size %d not in [1, 26]", c.AlphabetSize)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("config: trials %d is not positive", c.Trials)
	}
	if c.MaxBrzozowskiStates < 0 || c.MaxIncrementalStates < 0 {
		return errors.New("config: size caps must not be negative")
	}
	return nil
}

// SizeRange Returns from, from+step, ... up to and including to.
func SizeRange(from, to, step int) []int {
	if step <= 0 || to < from {
		return nil
	}
	sizes := make([]int, 0, (to-from)/step+1)
	for n := from; n <= to; n += step {
		sizes = append(sizes, n)
	}
	return sizes
}
