// Package config loads sqlcompile configuration: which dialect to compile
// for, overrides of its settings, and compiler and logging options.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlcompiler/pkg/compiler"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"

	// Every bundled dialect is selectable by name.
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/all"
)

// Config holds the resolved configuration.
type Config struct {
	DialectName string `koanf:"dialect"`

	// Dialect overrides; nil keeps the dialect's own setting.
	ParamStyle          *core.ParamStyle `koanf:"param_style"`
	MaxIdentifierLength *int             `koanf:"max_identifier_length"`
	RightNestedJoins    *bool            `koanf:"right_nested_joins"`

	LiteralBinds bool `koanf:"literal_binds"`
	StrictNames  bool `koanf:"strict_names"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	Output    string `koanf:"output"`
}

// Dialect returns the configured dialect with overrides applied. The
// registered dialect is never modified.
func (c *Config) Dialect() (*dialect.Dialect, error) {
	d, err := dialect.Lookup(c.DialectName)
	if err != nil {
		return nil, err
	}
	if c.ParamStyle == nil && c.MaxIdentifierLength == nil && c.RightNestedJoins == nil {
		return d, nil
	}
	return d.Derive(func(cfg *core.DialectConfig) {
		if c.ParamStyle != nil {
			cfg.ParamStyle = *c.ParamStyle
		}
		if c.MaxIdentifierLength != nil {
			cfg.MaxIdentifierLength = *c.MaxIdentifierLength
		}
		if c.RightNestedJoins != nil {
			cfg.Features.RightNestedJoins = *c.RightNestedJoins
		}
	}), nil
}

// CompileOptions returns the compiler options, logging through logger.
func (c *Config) CompileOptions(logger *slog.Logger) compiler.Options {
	return compiler.Options{
		LiteralBinds: c.LiteralBinds,
		StrictNames:  c.StrictNames,
		Logger:       logger,
	}
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// NewLogger builds the logger described by LogLevel and LogFormat.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log_format %q: want text or json", c.LogFormat)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DialectName == "" {
		return fmt.Errorf("dialect is required")
	}
	if _, err := dialect.Lookup(c.DialectName); err != nil {
		return fmt.Errorf("%w (check dialect in %s)", err, ConfigFileName)
	}
	if c.MaxIdentifierLength != nil && *c.MaxIdentifierLength < 0 {
		return fmt.Errorf("max_identifier_length must not be negative")
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output %q: want table, json or yaml", c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}
