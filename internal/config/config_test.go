package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Equal(t, DefaultDialect, cfg.DialectName)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Nil(t, cfg.ParamStyle)
	assert.Nil(t, cfg.MaxIdentifierLength)
	assert.False(t, cfg.LiteralBinds)

	d, err := cfg.Dialect()
	require.NoError(t, err)
	assert.Equal(t, "ansi", d.Name)
}

func TestLoadLayering(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		flags  []string
		assert func(t *testing.T, cfg *Loaded)
	}{
		{
			name: "file",
			file: "dialect: postgres\nparam_style: at\nstrict_names: true\n",
			assert: func(t *testing.T, cfg *Loaded) {
				assert.Equal(t, "postgres", cfg.DialectName)
				require.NotNil(t, cfg.ParamStyle)
				assert.Equal(t, core.ParamAt, *cfg.ParamStyle)
				assert.True(t, cfg.StrictNames)
			},
		},
		{
			name: "env over file",
			file: "dialect: postgres\nmax_identifier_length: 63\n",
			env: map[string]string{
				"SQLCOMPILE_DIALECT":               "MySQL",
				"SQLCOMPILE_MAX_IDENTIFIER_LENGTH": "20",
				"SQLCOMPILE_RIGHT_NESTED_JOINS":    "false",
			},
			assert: func(t *testing.T, cfg *Loaded) {
				assert.Equal(t, "mysql", cfg.DialectName)
				require.NotNil(t, cfg.MaxIdentifierLength)
				assert.Equal(t, 20, *cfg.MaxIdentifierLength)
				require.NotNil(t, cfg.RightNestedJoins)
				assert.False(t, *cfg.RightNestedJoins)
			},
		},
		{
			name:  "flags over env",
			file:  "dialect: postgres\n",
			env:   map[string]string{"SQLCOMPILE_DIALECT": "mysql", "SQLCOMPILE_OUTPUT": "yaml"},
			flags: []string{"--dialect", "sqlite", "--literal-binds"},
			assert: func(t *testing.T, cfg *Loaded) {
				assert.Equal(t, "sqlite", cfg.DialectName)
				assert.True(t, cfg.LiteralBinds)
				assert.Equal(t, OutputYAML, cfg.Output)
			},
		},
		{
			name:  "unchanged flags do not override",
			file:  "dialect: oracle\n",
			flags: []string{},
			assert: func(t *testing.T, cfg *Loaded) {
				assert.Equal(t, "oracle", cfg.DialectName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			path := writeConfig(t, dir, tt.file)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var flags *pflag.FlagSet
			if tt.flags != nil {
				flags = pflag.NewFlagSet("test", pflag.ContinueOnError)
				flags.String("dialect", DefaultDialect, "")
				flags.Bool("literal-binds", false, "")
				require.NoError(t, flags.Parse(tt.flags))
			}

			cfg, err := Load("", flags)
			require.NoError(t, err)
			assert.Equal(t, path, cfg.File)
			tt.assert(t, cfg)
		})
	}
}

func TestLoadSearchesParents(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "dialect: duckdb\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "duckdb", cfg.DialectName)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		errMsg string
	}{
		{"unknown dialect", "dialect: db2\n", `unknown dialect "db2"`},
		{"bad param style", "param_style: colon\n", `unknown param style "colon"`},
		{"bad output", "output: xml\n", `invalid output "xml"`},
		{"bad log level", "log_level: loud\n", `invalid log_level "loud"`},
		{"negative length", "max_identifier_length: -1\n", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, tt.file)
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})
}

func TestDialectOverrides(t *testing.T) {
	at := core.ParamAt
	length := 10
	off := false
	cfg := &Config{
		DialectName:         "postgres",
		ParamStyle:          &at,
		MaxIdentifierLength: &length,
		RightNestedJoins:    &off,
	}

	d, err := cfg.Dialect()
	require.NoError(t, err)
	assert.Equal(t, "@x", d.FormatPlaceholder("x", 1))
	assert.Equal(t, 10, d.MaxIdentifierLength)
	assert.False(t, d.Features.RightNestedJoins)

	base, err := (&Config{DialectName: "postgres"}).Dialect()
	require.NoError(t, err)
	assert.Equal(t, "$1", base.FormatPlaceholder("x", 1))
	assert.True(t, base.Features.RightNestedJoins)

	_, err = (&Config{DialectName: "db2"}).Dialect()
	var unknown *dialect.UnknownDialectError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Available, "sqlite")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "info", LogFormat: "json"}
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	opts := cfg.CompileOptions(logger)
	assert.Same(t, logger, opts.Logger)

	_, err = (&Config{LogLevel: "info", LogFormat: "xml"}).NewLogger(&buf)
	require.Error(t, err)
}
