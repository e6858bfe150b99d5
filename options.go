package depset

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures resolution behavior.
type Option func(*resolverConfig) error

// resolverConfig holds all resolution configuration.
type resolverConfig struct {
	defaultGroup string

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithDefaultGroup sets the name of the group that is selected together with
// the base dependencies. Defaults to DefaultGroup.
func WithDefaultGroup(name string) Option {
	return func(c *resolverConfig) error {
		if name == "" {
			return errors.New("default group name cannot be empty")
		}
		c.defaultGroup = name
		return nil
	}
}

// WithLogger sets a structured logger for resolution diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "depset")
//	set, err := depset.Resolve(m, req, depset.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *resolverConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newResolverConfig creates a resolver configuration by applying the given
// options on top of the defaults.
func newResolverConfig(opts ...Option) (*resolverConfig, error) {
	c := &resolverConfig{defaultGroup: DefaultGroup}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
