// Package config loads process-wide emitter defaults from the environment.
package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultMaxListeners = 10
)

// Config holds the defaults applied to every new emitter.
type Config struct {
	MaxListeners int  `env:"OBSERVE_MAX_LISTENERS" envDefault:"10"`
	UseFacade    bool `env:"OBSERVE_USE_FACADE" envDefault:"false"`
}

// Builtin returns the defaults used when the environment can't be parsed.
func Builtin() Config {
	return Config{MaxListeners: DefaultMaxListeners}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads a fresh Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Builtin(), err
	}
	if cfg.MaxListeners < 0 {
		cfg.MaxListeners = 0
	}
	return cfg, nil
}

var loadDefaults = sync.OnceValue(func() Config {
	cfg, _ := Load()
	return cfg
})

// Defaults returns the environment defaults, read once per process.
func Defaults() Config {
	return loadDefaults()
}
