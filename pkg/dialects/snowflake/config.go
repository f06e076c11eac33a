// Package snowflake provides the Snowflake SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package snowflake

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the Snowflake SQL dialect configuration.
var Config = core.DialectConfig{
	Name:          "snowflake",
	DefaultSchema: "PUBLIC",
	ParamStyle:    core.ParamPyformat,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase, // Snowflake normalizes to uppercase
	},
	MaxIdentifierLength: 255,

	Features: core.Features{
		RightNestedJoins:  true,
		NativeBoolean:     true,
		BackslashEscapes:  true,
		AlterConstraints:  true,
		Sequences:         true,
		IfExists:          true,
		DropCascade:       true,
		SelectWithoutFrom: true,
		MultiTableDelete:  core.DeleteUsing,
		MultiTableUpdate:  core.UpdateFrom,
	},
}
