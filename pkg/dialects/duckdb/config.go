// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies,
// making it usable without the cgo driver.
package duckdb

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the DuckDB dialect configuration.
var Config = core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	ParamStyle:    core.ParamDollar,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive, // DuckDB is case-insensitive but preserves case
	},

	Features: core.Features{
		RightNestedJoins:  true,
		Returning:         true,
		NativeBoolean:     true,
		DistinctOn:        true,
		OnConflict:        true,
		Sequences:         true,
		IfExists:          true,
		DropCascade:       true,
		SelectWithoutFrom: true,
		MultiTableDelete:  core.DeleteUsing,
		MultiTableUpdate:  core.UpdateFrom,
	},
}
