// Package adapter executes compiled statements over database/sql.
//
// A Runner turns the parameter collection of a compiled statement into
// driver arguments: an ordered slice for positional paramstyles and
// sql.Named values for named ones.
package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlcompiler/pkg/compiler"
)

// ErrNotConnected is returned when a Runner has no database.
var ErrNotConnected = errors.New("database connection not established")

// Runner executes compiled statements against a database.
type Runner struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// NewRunner returns a Runner over db. A nil logger discards output.
func NewRunner(db *sql.DB, logger *slog.Logger) *Runner {
	return &Runner{DB: db, Logger: logger}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Close closes the database connection.
func (r *Runner) Close() error {
	if r.DB == nil {
		return nil
	}
	r.logger().Debug("closing database connection")
	return r.DB.Close()
}

// IsConnected reports whether the runner has a database.
func (r *Runner) IsConnected() bool {
	return r.DB != nil
}

// Exec executes a statement that returns no rows. params override the
// compiled bind values and supply required ones.
func (r *Runner) Exec(ctx context.Context, c *compiler.Compiled, params map[string]any) (sql.Result, error) {
	if r.DB == nil {
		return nil, ErrNotConnected
	}
	return r.exec(ctx, r.DB, c, params)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *Runner) exec(ctx context.Context, db execer, c *compiler.Compiled, params map[string]any) (sql.Result, error) {
	args, err := Args(c, params)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("executing statement", "sql", c.SQL, "args", len(args))
	res, err := db.ExecContext(ctx, c.SQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SQL: %w", err)
	}
	return res, nil
}

// Query executes a statement that returns rows. The caller closes the rows
// and checks rows.Err after iterating.
func (r *Runner) Query(ctx context.Context, c *compiler.Compiled, params map[string]any) (*sql.Rows, error) {
	if r.DB == nil {
		return nil, ErrNotConnected
	}
	args, err := Args(c, params)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("executing query", "sql", c.SQL, "args", len(args))
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := r.DB.QueryContext(ctx, c.SQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// ExecBatch executes statements in order inside one transaction. The
// transaction is rolled back on the first failure.
func (r *Runner) ExecBatch(ctx context.Context, stmts []*compiler.Compiled) (err error) {
	if r.DB == nil {
		return ErrNotConnected
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, c := range stmts {
		if _, err = r.exec(ctx, tx, c, nil); err != nil {
			return fmt.Errorf("batch statement %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
