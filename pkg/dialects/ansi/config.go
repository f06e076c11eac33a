// Package ansi provides the base ANSI SQL dialect.
// This package is pure Go with no database driver dependencies.
package ansi

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the ANSI SQL dialect configuration.
var Config = core.DialectConfig{
	Name:       "ansi",
	ParamStyle: core.ParamNamed,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	MaxIdentifierLength: 128,

	Features: core.Features{
		RightNestedJoins:  true,
		NativeBoolean:     true,
		ForUpdate:         true,
		ForUpdateOf:       true,
		AlterConstraints:  true,
		Sequences:         true,
		DropCascade:       true,
		SelectWithoutFrom: true,
	},
}
