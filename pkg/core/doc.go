// Package core defines the expression tree the compiler consumes and the
// static dialect configuration types.
//
// This package contains:
//   - Selectables (Table, Join, Alias, CTE, Select, Compound) and their
//     exported column collections
//   - Expression nodes (Column, BindParam, Label, TextClause, operators)
//   - Statement roots (Select, Insert, Update, Delete, DDL)
//   - DialectConfig, the pure-data half of a dialect
//
// Trees are immutable once handed to the compiler. Derived column proxies
// are computed once per selectable and are safe to read concurrently.
//
// The Golden Rule: pkg/core imports ONLY pkg/token, pkg/sqltypes, pkg/naming
// and stdlib. All other packages depend on core, not the reverse.
package core
