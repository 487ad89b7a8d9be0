package observe

import (
	"log/slog"

	"github.com/AnatoleLucet/observe/internal/config"
)

type emitterConfig struct {
	maxListeners int
	useFacade    bool
	logger       *slog.Logger
}

func defaultEmitterConfig() emitterConfig {
	env := config.Defaults()
	return emitterConfig{
		maxListeners: env.MaxListeners,
		useFacade:    env.UseFacade,
	}
}

// EmitterOption configures a new Emitter.
type EmitterOption func(*emitterConfig)

// WithMaxListeners sets the per-event listener count above which a leak
// warning is logged. Zero disables the warning.
func WithMaxListeners(n int) EmitterOption {
	return func(cfg *emitterConfig) {
		if n < 0 {
			n = 0
		}
		cfg.maxListeners = n
	}
}

// WithFacade toggles facade injection on emit.
func WithFacade(enabled bool) EmitterOption {
	return func(cfg *emitterConfig) {
		cfg.useFacade = enabled
	}
}

// WithLogger sets the logger used for leak warnings. Nil means slog.Default.
func WithLogger(logger *slog.Logger) EmitterOption {
	return func(cfg *emitterConfig) {
		cfg.logger = logger
	}
}

type proxyConfig struct {
	blacklist map[string]bool
	whitelist map[string]bool
}

// ProxyOption configures a new Proxy.
type ProxyOption func(*proxyConfig)

// WithBlacklist names events that are never proxied.
func WithBlacklist(events ...string) ProxyOption {
	return func(cfg *proxyConfig) {
		for _, event := range events {
			cfg.blacklist[event] = true
		}
	}
}

// WithWhitelist restricts proxying to the named events.
func WithWhitelist(events ...string) ProxyOption {
	return func(cfg *proxyConfig) {
		if cfg.whitelist == nil {
			cfg.whitelist = make(map[string]bool, len(events))
		}
		for _, event := range events {
			cfg.whitelist[event] = true
		}
	}
}

type stateConfig struct {
	class         string
	initialValues map[string]any
	emitter       []EmitterOption
}

// StateOption configures a new State.
type StateOption func(*stateConfig)

// WithClass builds the state from a registered class's merged schema.
func WithClass(name string) StateOption {
	return func(cfg *stateConfig) {
		cfg.class = name
	}
}

// WithInitialValues overrides the class defaults for the given keys.
func WithInitialValues(values map[string]any) StateOption {
	return func(cfg *stateConfig) {
		cfg.initialValues = values
	}
}

// WithEmitterOptions forwards options to the underlying emitter.
func WithEmitterOptions(opts ...EmitterOption) StateOption {
	return func(cfg *stateConfig) {
		cfg.emitter = append(cfg.emitter, opts...)
	}
}

type addConfig struct {
	target AccessorTarget
	skip   bool
}

// AddOption configures AddToState.
type AddOption func(*addConfig)

// WithTarget defines the new keys' accessors on target instead of the state.
func WithTarget(target AccessorTarget) AddOption {
	return func(cfg *addConfig) {
		cfg.target = target
	}
}

// WithoutAccessors declares the keys without defining any accessor.
func WithoutAccessors() AddOption {
	return func(cfg *addConfig) {
		cfg.skip = true
	}
}
