// Package oracle provides the Oracle Database dialect definition.
// This package is pure Go with no database driver dependencies.
package oracle

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the Oracle dialect configuration. The identifier limit is the
// pre-12.2 one, which older schemas still depend on.
var Config = core.DialectConfig{
	Name:       "oracle",
	ParamStyle: core.ParamNamed,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	MaxIdentifierLength: 30,

	Features: core.Features{
		RightNestedJoins: true,
		ForUpdate:        true,
		NoWait:           true,
		SkipLocked:       true,
		ForUpdateOf:      true,
		AlterConstraints: true,
		Sequences:        true,
	},
}
