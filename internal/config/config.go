// Package config reads the small set of environment-driven knobs the
// lumen CLI exposes that don't make sense as command-line flags: toggles
// a CI pipeline or embedding host wants fixed for every invocation rather
// than typed out each time.
package config

import "github.com/caarlos0/env/v6"

// Env is parsed once per process from environment variables prefixed
// LUMEN_, the same convention the runner's flag parser reserves for its
// own env-backed flags.
type Env struct {
	// StressGC forces a garbage collection before every tracked heap
	// allocation, trading speed for much more frequent exercise of the
	// mark-sweep invariants. Intended for test and CI runs, not normal use.
	StressGC bool `env:"LUMEN_STRESS_GC" envDefault:"false"`
}

// Load parses Env from the process environment.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
