package compiler

import (
	"bytes"
	"fmt"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/cte"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/ident"
	"github.com/leapstack-labs/sqlcompiler/pkg/joins"
	"github.com/leapstack-labs/sqlcompiler/pkg/naming"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

// state is the per-compile printer. Rendering methods write straight into
// the output buffer; the first error sticks and later writes are dropped.
type state struct {
	c        *Compiler
	dialect  *dialect.Dialect
	renderer dialect.Renderer
	output   *bytes.Buffer

	names     *ident.Scope
	anon      *naming.Allocator
	anonNames map[core.Selectable]string
	binds     *bindCollector
	plan      *cte.Plan

	// scopes holds the FROM lists of the enclosing statements, innermost
	// last, for auto-correlation and name resolution.
	scopes []*scope
	// deferred constraints are emitted by ALTER TABLE elsewhere in the
	// batch.
	deferred map[core.Constraint]bool
	// inline forces literal binds, for DDL.
	inline bool
	// bare renders columns unqualified.
	bare  bool
	depth int

	resultMap []ResultColumn
	warnings  []string
	err       error
}

type scope struct {
	// froms are the FROM elements as written, plus implicit ones.
	froms []core.Selectable
	// rendered are the FROM elements after join rewriting.
	rendered []core.Selectable
	labels   []core.LabeledExpr
	// sub maps columns hidden by join rewriting to their replacements.
	sub joins.Substitution
}

func newState(c *Compiler, deferred map[core.Constraint]bool) *state {
	return &state{
		c:         c,
		dialect:   c.dialect,
		renderer:  c.dialect.Renderer(),
		output:    &bytes.Buffer{},
		names:     c.names.Scope(),
		anon:      naming.NewAllocator(),
		anonNames: make(map[core.Selectable]string),
		binds:     newBindCollector(c.dialect, c.opts.LiteralBinds),
		deferred:  deferred,
	}
}

// String returns the rendered SQL.
func (s *state) String() string {
	return s.output.String()
}

func (s *state) write(str string) {
	if s.err != nil {
		return
	}
	s.output.WriteString(str)
}

func (s *state) space() {
	s.write(" ")
}

// kw prints keywords separated by spaces.
func (s *state) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			s.space()
		}
		s.write(t.String())
	}
}

// formatList prints count items separated by sep.
func (s *state) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			s.write(sep)
		}
		format(i)
	}
}

func (s *state) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *state) failf(format string, args ...any) {
	s.fail(compileErrorf(format, args...))
}

func (s *state) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	s.c.logger.Warn(msg)
}

// name is the fallible half of every identifier write.
func (s *state) name(out string, err error) string {
	if err != nil {
		s.fail(err)
		return ""
	}
	return out
}

func (s *state) tableName(t *core.Table) string {
	return s.name(s.names.FormatTable(t))
}

// anonName allocates anon_N for an anonymous alias or a bare query on
// first use.
func (s *state) anonName(sel core.Selectable) string {
	if n, ok := s.anonNames[sel]; ok {
		return n
	}
	n := s.name(s.names.Name(ident.KindAlias, s.anon.NextAnon()))
	s.anonNames[sel] = n
	return n
}

// ref returns the name columns of sel are qualified with.
func (s *state) ref(sel core.Selectable) string {
	switch sel := sel.(type) {
	case *core.Table:
		return s.tableName(sel)
	case *core.Alias:
		if sel.Anonymous() {
			return s.anonName(sel)
		}
		return s.name(s.names.Name(ident.KindAlias, sel.Name))
	case *core.CTE:
		return s.name(s.names.Name(ident.KindTable, sel.Name))
	case *core.Select, *core.Compound:
		return s.anonName(sel)
	}
	return ""
}

func (s *state) columnName(c *core.Column, qualify bool) string {
	qualifier := ""
	if qualify && !s.bare && c.Table != nil {
		qualifier = s.ref(c.Table)
	}
	return s.name(s.names.FormatColumn(c, qualifier))
}

func (s *state) pushScope(sc *scope) {
	s.scopes = append(s.scopes, sc)
}

func (s *state) popScope() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *state) current() *scope {
	if len(s.scopes) == 0 {
		return nil
	}
	return s.scopes[len(s.scopes)-1]
}

// resolveColumn finds the statement that renders c's owner, innermost
// first, and returns the column standing for c there. A nested statement
// may reach a column that its enclosing statement moved into a rewritten
// join.
func (s *state) resolveColumn(c *core.Column) *core.Column {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		sc := s.scopes[i]
		if r, ok := sc.sub[c]; ok {
			return r
		}
		for _, f := range sc.rendered {
			if core.Covers(f, c.Table) {
				return c
			}
		}
	}
	return c
}

// detached renders fn with no enclosing scopes: FROM subqueries and CTE
// bodies do not correlate.
func (s *state) detached(fn func()) {
	saved := s.scopes
	s.scopes = nil
	fn()
	s.scopes = saved
}

// correlated reports whether an enclosing statement renders owner.
func (s *state) correlated(owner core.Selectable) bool {
	for _, sc := range s.scopes {
		for _, f := range sc.froms {
			if core.Covers(f, owner) {
				return true
			}
		}
	}
	return false
}

// statement dispatches on the root statement type.
func (s *state) statement(stmt core.Stmt) {
	switch stmt := stmt.(type) {
	case *core.Select, *core.Compound:
		s.withClause()
		s.query(stmt.(core.Query))
	case *core.Insert:
		s.insert(stmt)
	case *core.Update:
		s.withClause()
		s.update(stmt)
	case *core.Delete:
		s.withClause()
		s.delete(stmt)
	case *core.TextClause:
		s.text(stmt)
	case *core.CreateTable:
		s.createTable(stmt)
	case *core.DropTable:
		s.dropTable(stmt)
	case *core.CreateIndex:
		s.createIndex(stmt)
	case *core.DropIndex:
		s.dropIndex(stmt)
	case *core.AddConstraint:
		s.addConstraint(stmt)
	case *core.DropConstraint:
		s.dropConstraint(stmt)
	case *core.CreateSequence:
		s.createSequence(stmt)
	case *core.DropSequence:
		s.dropSequence(stmt)
	default:
		s.failf("cannot compile %T", stmt)
	}
}
