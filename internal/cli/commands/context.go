// Package commands implements the sqlcompile subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sqlcompiler/internal/config"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
)

type stateKey struct{}

type state struct {
	cfg    *config.Loaded
	logger *slog.Logger
}

// WithState stores the loaded configuration and logger for subcommands.
func WithState(ctx context.Context, cfg *config.Loaded, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, stateKey{}, &state{cfg: cfg, logger: logger})
}

// GetConfig retrieves the configuration from the command context, falling
// back to defaults.
func GetConfig(ctx context.Context) *config.Loaded {
	if s, ok := ctx.Value(stateKey{}).(*state); ok {
		return s.cfg
	}
	return &config.Loaded{Config: &config.Config{
		DialectName: config.DefaultDialect,
		LogLevel:    config.DefaultLogLevel,
		LogFormat:   config.DefaultLogFormat,
		Output:      config.DefaultOutput,
	}}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if s, ok := ctx.Value(stateKey{}).(*state); ok && s.logger != nil {
		return s.logger
	}
	return slog.New(slog.DiscardHandler)
}

// DialectNames lists the registered dialects.
func DialectNames() []string {
	return dialect.List()
}
