// Package all registers every bundled dialect.
package all

import (
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/ansi"      // register ansi
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/duckdb"    // register duckdb
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/mysql"     // register mysql
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/oracle"    // register oracle
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/postgres"  // register postgres
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/snowflake" // register snowflake
	_ "github.com/leapstack-labs/sqlcompiler/pkg/dialects/sqlite"    // register sqlite
)
