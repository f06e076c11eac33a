package core

import (
	"fmt"
	"strings"
)

// DialectConfig holds the static configuration for a SQL dialect.
// It is pure data.
//
// The runtime behavior (renderer hooks, reserved-word lookup) lives in
// pkg/dialect.Dialect, which embeds this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "sqlite", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("main" for DuckDB, "public" for Postgres)
	DefaultSchema string

	// ParamStyle defines how bind parameters are rendered
	ParamStyle ParamStyle

	// MaxIdentifierLength bounds rendered identifiers; 0 means unlimited.
	MaxIdentifierLength int

	// Features lists the optional syntax the dialect accepts.
	Features Features
}

// Features are the capability flags consulted by the compiler. A construct
// whose flag is off fails to compile rather than being downgraded.
type Features struct {
	RightNestedJoins bool
	Returning        bool
	NativeBoolean    bool
	BackslashEscapes bool
	DistinctOn       bool

	ForUpdate   bool
	ForShare    bool
	NoWait      bool
	SkipLocked  bool
	ForUpdateOf bool

	OnConflict     bool
	OnDuplicateKey bool

	AlterConstraints bool
	Sequences        bool
	IfExists         bool
	DropCascade      bool

	// SelectWithoutFrom is false for dialects that need FROM DUAL.
	SelectWithoutFrom bool
	// CTEInsideInsert places WITH between INSERT and its SELECT.
	CTEInsideInsert bool

	MultiTableDelete DeleteStyle
	MultiTableUpdate UpdateStyle
}

// DeleteStyle is how a DELETE names extra tables.
type DeleteStyle int

const (
	// DeleteSingleTable rejects extra tables.
	DeleteSingleTable DeleteStyle = iota
	// DeleteUsing renders DELETE FROM t USING x (PostgreSQL, DuckDB).
	DeleteUsing
	// DeleteUsingAll renders DELETE FROM t USING t, x (MySQL).
	DeleteUsingAll
)

// UpdateStyle is how an UPDATE names extra tables.
type UpdateStyle int

const (
	// UpdateSingleTable rejects extra tables.
	UpdateSingleTable UpdateStyle = iota
	// UpdateFrom renders UPDATE t SET ... FROM x (PostgreSQL, SQLite).
	UpdateFrom
	// UpdateMultiTable renders UPDATE t, x SET t.a = ... (MySQL).
	UpdateMultiTable
)

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (SQLite, DuckDB).
	NormCaseInsensitive
)

var normalizationNames = map[NormalizationStrategy]string{
	NormLowercase:       "lowercase",
	NormUppercase:       "uppercase",
	NormCaseSensitive:   "case_sensitive",
	NormCaseInsensitive: "case_insensitive",
}

func (n NormalizationStrategy) String() string {
	if s, ok := normalizationNames[n]; ok {
		return s
	}
	return "unknown"
}

// UnmarshalText parses a normalization name, for configuration files.
func (n *NormalizationStrategy) UnmarshalText(text []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range normalizationNames {
		if v == want {
			*n = k
			return nil
		}
	}
	return fmt.Errorf("unknown normalization %q", text)
}

// ParamStyle defines how bind parameters are rendered.
type ParamStyle int

const (
	// ParamNamed renders :name (Oracle, ANSI).
	ParamNamed ParamStyle = iota
	// ParamPyformat renders %(name)s.
	ParamPyformat
	// ParamQmark renders ? (SQLite).
	ParamQmark
	// ParamNumeric renders :1, :2, ...
	ParamNumeric
	// ParamFormat renders %s (MySQL).
	ParamFormat
	// ParamDollar renders $1, $2, ... (PostgreSQL, DuckDB).
	ParamDollar
	// ParamAt renders @name (named args for pgx and database/sql).
	ParamAt
)

var paramStyleNames = map[ParamStyle]string{
	ParamNamed:    "named",
	ParamPyformat: "pyformat",
	ParamQmark:    "qmark",
	ParamNumeric:  "numeric",
	ParamFormat:   "format",
	ParamDollar:   "dollar",
	ParamAt:       "at",
}

func (p ParamStyle) String() string {
	if s, ok := paramStyleNames[p]; ok {
		return s
	}
	return "unknown"
}

// Positional reports whether parameters are passed as an ordered list.
func (p ParamStyle) Positional() bool {
	switch p {
	case ParamQmark, ParamNumeric, ParamFormat, ParamDollar:
		return true
	}
	return false
}

// UnmarshalText parses a paramstyle name, for configuration files.
func (p *ParamStyle) UnmarshalText(text []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range paramStyleNames {
		if v == want {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown param style %q", text)
}

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
