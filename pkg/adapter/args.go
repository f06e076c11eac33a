package adapter

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/leapstack-labs/sqlcompiler/pkg/compiler"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
)

// Args returns database/sql arguments for a compiled statement.
func Args(c *compiler.Compiled, params map[string]any) ([]any, error) {
	if c.Style.Positional() {
		return c.Args(params)
	}
	named, err := c.NamedArgs(params)
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(c.Params))
	for _, p := range c.Params {
		args = append(args, sql.Named(p.Name, named[p.Name]))
	}
	return args, nil
}

// PgxArgs returns arguments for pgx's native query methods: a single
// pgx.NamedArgs for the @name style, or a positional slice for $N.
func PgxArgs(c *compiler.Compiled, params map[string]any) ([]any, error) {
	switch c.Style {
	case core.ParamAt:
		named, err := c.NamedArgs(params)
		if err != nil {
			return nil, err
		}
		return []any{pgx.NamedArgs(named)}, nil
	case core.ParamDollar:
		return c.Args(params)
	}
	return nil, fmt.Errorf("paramstyle %s cannot be passed to pgx", c.Style)
}
