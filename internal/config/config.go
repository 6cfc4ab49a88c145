// Package config loads the optional pyaudit.toml. A missing file yields the
// defaults; the command surface itself takes no flags.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	coreerrors "pyaudit/internal/core/errors"
)

type Config struct {
	Output  Output  `toml:"output"`
	Ignore  Ignore  `toml:"ignore"`
	Watch   Watch   `toml:"watch"`
	History History `toml:"history"`
}

type Output struct {
	Format string `toml:"format"` // "json" or "text"
}

// Ignore suppresses findings whose name matches a glob, e.g. "_*" for
// conventionally-unused variables.
type Ignore struct {
	Vars    []string `toml:"vars"`
	Imports []string `toml:"imports"`
}

type Watch struct {
	Enabled            bool          `toml:"enabled"`
	Debounce           time.Duration `toml:"debounce"`
	MaxEventsPerSecond float64       `toml:"max_events_per_second"`
}

type History struct {
	Path string `toml:"path"` // empty disables the run history store
}

func Default() *Config {
	return &Config{
		Output: Output{Format: "json"},
		Watch: Watch{
			Debounce:           500 * time.Millisecond,
			MaxEventsPerSecond: 20,
		},
	}
}

// Load reads a TOML config file. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, coreerrors.Wrap(err, coreerrors.CodeNotFound, "read config")
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeValidation, "decode config")
	}

	if cfg.Output.Format != "json" && cfg.Output.Format != "text" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "output.format must be json or text")
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MaxEventsPerSecond <= 0 {
		cfg.Watch.MaxEventsPerSecond = 20
	}

	return cfg, nil
}

// CompileIgnores compiles the ignore globs once up front so a bad pattern
// fails at startup, not per finding.
func (c *Config) CompileIgnores() (vars, imports []glob.Glob, err error) {
	vars, err = compileGlobs(c.Ignore.Vars)
	if err != nil {
		return nil, nil, err
	}
	imports, err = compileGlobs(c.Ignore.Imports)
	if err != nil {
		return nil, nil, err
	}
	return vars, imports, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			derr := &coreerrors.DomainError{
				Code:    coreerrors.CodeValidation,
				Message: "compile ignore glob",
				Err:     err,
			}
			return nil, derr.WithContext(coreerrors.CtxPattern, pattern)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}
