// Package compiler renders statement trees to dialect-specific SQL.
//
// A Compiler holds only immutable configuration and may be shared between
// goroutines. Each Compile call builds its own state: bind collector, name
// allocators and identifier scope. Compiling the same tree twice produces
// identical output.
package compiler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/cte"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/ident"
)

// Options configure a Compiler.
type Options struct {
	// LiteralBinds renders bound values inline instead of as placeholders.
	LiteralBinds bool
	// StrictNames makes an unresolvable NameRef an error instead of a
	// warning.
	StrictNames bool
	// Logger receives warnings. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Compiler compiles statements for one dialect.
type Compiler struct {
	dialect *dialect.Dialect
	names   *ident.Preparer
	opts    Options
	logger  *slog.Logger
}

// New returns a compiler for d.
func New(d *dialect.Dialect, opts Options) *Compiler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{
		dialect: d,
		names:   ident.For(d),
		opts:    opts,
		logger:  logger.With("dialect", d.Name),
	}
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() *dialect.Dialect {
	return c.dialect
}

// Compile renders stmt. A DDLBatch must go through CompileBatch.
func (c *Compiler) Compile(stmt core.Stmt) (*Compiled, error) {
	if b, ok := stmt.(*core.DDLBatch); ok {
		return nil, compileErrorf("a DDL batch of %d statements compiles with CompileBatch", len(b.Statements))
	}
	return c.compile(stmt, nil)
}

// CompileBatch renders each statement of a DDL batch. Constraints the batch
// adds with AddConstraint are left out of the inline CREATE TABLE
// definitions.
func (c *Compiler) CompileBatch(batch *core.DDLBatch) ([]*Compiled, error) {
	deferred := make(map[core.Constraint]bool)
	for _, stmt := range batch.Statements {
		if add, ok := stmt.(*core.AddConstraint); ok {
			deferred[add.Constraint] = true
		}
	}

	out := make([]*Compiled, 0, len(batch.Statements))
	for i, stmt := range batch.Statements {
		compiled, err := c.compile(stmt, deferred)
		if err != nil {
			return nil, &CompileError{Msg: fmt.Sprintf("batch statement %d", i+1), Err: err}
		}
		out = append(out, compiled)
	}
	return out, nil
}

func (c *Compiler) compile(stmt core.Stmt, deferred map[core.Constraint]bool) (*Compiled, error) {
	s := newState(c, deferred)

	plan, err := cte.Resolve(stmt)
	if err != nil {
		var conflict *cte.ConflictError
		if errors.As(err, &conflict) {
			return nil, &CompileError{Msg: fmt.Sprintf("naming conflict for CTE %q", conflict.Name), Err: err}
		}
		return nil, &CompileError{Msg: "resolving CTEs", Err: err}
	}
	s.plan = plan

	s.statement(stmt)
	if s.err != nil {
		return nil, s.err
	}

	compiled := &Compiled{
		SQL:        s.String(),
		Style:      c.dialect.ParamStyle,
		Params:     s.binds.params,
		Positional: s.binds.positional,
		ResultMap:  s.resultMap,
		Warnings:   s.warnings,
	}
	if c.opts.LiteralBinds {
		compiled.Params = nil
		compiled.Positional = nil
	}
	return compiled, nil
}
