// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the PostgreSQL dialect configuration.
var Config = core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	ParamStyle:    core.ParamDollar,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},
	MaxIdentifierLength: 63, // NAMEDATALEN - 1

	Features: core.Features{
		RightNestedJoins:  true,
		Returning:         true,
		NativeBoolean:     true,
		DistinctOn:        true,
		ForUpdate:         true,
		ForShare:          true,
		NoWait:            true,
		SkipLocked:        true,
		ForUpdateOf:       true,
		OnConflict:        true,
		AlterConstraints:  true,
		Sequences:         true,
		IfExists:          true,
		DropCascade:       true,
		SelectWithoutFrom: true,
		MultiTableDelete:  core.DeleteUsing,
		MultiTableUpdate:  core.UpdateFrom,
	},
}
