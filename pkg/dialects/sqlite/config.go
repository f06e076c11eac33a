// Package sqlite provides the SQLite dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the SQLite dialect configuration.
// SQLite cannot parse a join whose right side is itself a join, so the
// compiler rewrites those into subqueries.
var Config = core.DialectConfig{
	Name:          "sqlite",
	DefaultSchema: "main",
	ParamStyle:    core.ParamQmark,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},

	Features: core.Features{
		Returning:         true,
		OnConflict:        true,
		IfExists:          true,
		SelectWithoutFrom: true,
		MultiTableUpdate:  core.UpdateFrom,
	},
}
