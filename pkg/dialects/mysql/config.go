// Package mysql provides the MySQL dialect definition.
// This package is pure Go with no database driver dependencies.
package mysql

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Config is the MySQL dialect configuration.
var Config = core.DialectConfig{
	Name:       "mysql",
	ParamStyle: core.ParamFormat,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive, // table names follow the filesystem
	},
	MaxIdentifierLength: 64,

	Features: core.Features{
		RightNestedJoins:  true,
		NativeBoolean:     true,
		BackslashEscapes:  true,
		ForUpdate:         true,
		ForShare:          true,
		NoWait:            true,
		SkipLocked:        true,
		ForUpdateOf:       true,
		OnDuplicateKey:    true,
		AlterConstraints:  true,
		IfExists:          true,
		SelectWithoutFrom: true,
		CTEInsideInsert:   true,
		MultiTableDelete:  core.DeleteUsingAll,
		MultiTableUpdate:  core.UpdateMultiTable,
	},
}
