package compiler

import (
	"bytes"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/joins"
)

func (s *state) query(q core.Query) {
	switch q := q.(type) {
	case *core.Select:
		s.selectStmt(q)
	case *core.Compound:
		s.compound(q)
	default:
		s.failf("cannot compile query %T", q)
	}
}

// subquery renders a parenthesized query that may correlate to the
// enclosing statements.
func (s *state) subquery(q core.Query) {
	s.write("(")
	s.depth++
	s.query(q)
	s.depth--
	s.write(")")
}

// capture renders fn into a separate buffer and returns the text.
func (s *state) capture(fn func()) string {
	saved := s.output
	s.output = &bytes.Buffer{}
	fn()
	out := s.output.String()
	s.output = saved
	return out
}

// withClause renders the hoisted CTEs, followed by a space.
func (s *state) withClause() {
	if s.plan == nil || s.plan.Empty() {
		return
	}
	s.write("WITH ")
	if s.plan.Recursive {
		s.write("RECURSIVE ")
	}
	s.formatList(len(s.plan.CTEs), func(i int) {
		c := s.plan.CTEs[i]
		s.write(s.ref(c))
		if c.Recursive {
			cols := c.Exported()
			s.write("(")
			s.formatList(len(cols), func(i int) {
				s.write(s.columnName(cols[i], false))
			}, ", ")
			s.write(")")
		}
		s.write(" AS (")
		s.detached(func() {
			s.depth++
			s.query(c.Query)
			s.depth--
		})
		s.write(")")
	}, ", ")
	s.space()
}

func (s *state) selectStmt(sel *core.Select) {
	top := s.depth == 0
	labels := sel.Labels()
	froms := s.fromList(sel)
	rendered, sub := s.rewriteJoins(froms)

	sc := &scope{froms: froms, rendered: rendered, labels: labels, sub: sub}
	s.pushScope(sc)
	defer s.popScope()

	s.write("SELECT ")
	switch {
	case len(sel.DistinctOn) > 0:
		if !s.dialect.Features.DistinctOn {
			s.failf("DISTINCT ON is not supported by %s", s.dialect.Name)
			return
		}
		s.write("DISTINCT ON (")
		s.exprList(sub.ApplyAll(sel.DistinctOn))
		s.write(") ")
	case sel.Distinct:
		s.write("DISTINCT ")
	}

	s.formatList(len(labels), func(i int) {
		s.labeledColumn(labels[i], sub)
	}, ", ")
	if top {
		s.resultMap = s.resultColumns(labels, froms)
	}

	if len(rendered) > 0 {
		s.write(" FROM ")
		s.formatList(len(rendered), func(i int) {
			s.fromElement(rendered[i])
		}, ", ")
	} else if !s.dialect.Features.SelectWithoutFrom {
		s.write(s.renderer.FromDual())
	}

	s.clause(" WHERE ", sub.Apply(sel.Where))
	if len(sel.GroupBy) > 0 {
		s.write(" GROUP BY ")
		s.exprList(sub.ApplyAll(sel.GroupBy))
	}
	s.clause(" HAVING ", sub.Apply(sel.Having))
	if len(sel.OrderBy) > 0 {
		s.write(" ORDER BY ")
		s.exprList(sub.ApplyAll(sel.OrderBy))
	}
	s.write(s.renderer.LimitOffset(sel.Limit, sel.Offset))
	s.lock(sel.Lock)
}

func (s *state) exprList(es []core.Expr) {
	s.formatList(len(es), func(i int) {
		s.expr(es[i], dialect.PrecedenceNone)
	}, ", ")
}

// clause renders kw and e, or nothing when e is empty.
func (s *state) clause(kw string, e core.Expr) {
	if e == nil {
		return
	}
	if b, ok := e.(*core.BooleanClause); ok && b.Empty() {
		return
	}
	s.write(kw)
	s.expr(e, dialect.PrecedenceNone)
}

// labeledColumn renders one column list entry, adding AS when the output
// label differs from what the expression renders as.
func (s *state) labeledColumn(l core.LabeledExpr, sub joins.Substitution) {
	e := l.Expr
	if lab, ok := e.(*core.Label); ok {
		e = lab.Expr
	}
	if _, ok := e.(*core.Star); ok {
		s.formatExpr(e)
		return
	}
	e = sub.Apply(e)
	s.expr(e, dialect.PrecedenceNone)
	if c, ok := e.(*core.Column); ok && c.Name == l.Name {
		return
	}
	s.write(" AS " + s.name(s.names.FormatLabel(l.Name)))
}

// fromList returns the explicit FROM elements followed by the owners of
// referenced columns that no element covers. Owners rendered by an
// enclosing statement are correlated and left out, unless that would leave
// the FROM list empty.
func (s *state) fromList(sel *core.Select) []core.Selectable {
	froms := append([]core.Selectable(nil), sel.From...)

	exprs := make([]core.Expr, 0, len(sel.Columns)+len(sel.GroupBy)+len(sel.OrderBy)+len(sel.DistinctOn)+2)
	exprs = append(exprs, sel.Columns...)
	exprs = append(exprs, sel.DistinctOn...)
	exprs = append(exprs, sel.Where, sel.Having)
	exprs = append(exprs, sel.GroupBy...)
	exprs = append(exprs, sel.OrderBy...)

	owners := core.ColumnOwners(exprs...)
	for _, e := range sel.Columns {
		if star, ok := e.(*core.Star); ok && star.Table != nil {
			owners = append(owners, star.Table)
		}
	}

	var correlated []core.Selectable
	for _, owner := range owners {
		if coveredBy(froms, owner) || coveredBy(correlated, owner) {
			continue
		}
		if s.correlated(owner) {
			correlated = append(correlated, owner)
			continue
		}
		froms = append(froms, owner)
	}
	if len(froms) == 0 {
		return correlated
	}
	return froms
}

func coveredBy(froms []core.Selectable, target core.Selectable) bool {
	for _, f := range froms {
		if core.Covers(f, target) {
			return true
		}
	}
	return false
}

// rewriteJoins wraps right-nested joins on dialects that cannot parse
// them.
func (s *state) rewriteJoins(froms []core.Selectable) ([]core.Selectable, joins.Substitution) {
	if s.dialect.Features.RightNestedJoins {
		return froms, nil
	}
	out := make([]core.Selectable, len(froms))
	sub := make(joins.Substitution)
	for i, f := range froms {
		rewritten, m := joins.Rewrite(f)
		for k, v := range m {
			sub[k] = v
		}
		out[i] = rewritten
	}
	return out, sub
}

func (s *state) fromElement(f core.Selectable) {
	switch f := f.(type) {
	case *core.Table:
		s.write(s.tableName(f))
	case *core.CTE:
		s.write(s.ref(f))
	case *core.Alias:
		s.aliasElement(f)
	case *core.Select, *core.Compound:
		elem := s.derived(f.(core.Query))
		s.write(s.renderer.TableAlias(elem, s.anonName(f)))
	case *core.Join:
		s.join(f)
	default:
		s.failf("cannot compile FROM element %T", f)
	}
}

// derived renders a FROM subquery. It does not correlate.
func (s *state) derived(q core.Query) string {
	return s.capture(func() {
		s.detached(func() {
			s.subquery(q)
		})
	})
}

func (s *state) aliasElement(a *core.Alias) {
	var elem string
	switch of := a.Of.(type) {
	case *core.Table:
		elem = s.tableName(of)
	case *core.CTE:
		elem = s.ref(of)
	case *core.Select:
		elem = s.derived(of)
	case *core.Compound:
		elem = s.derived(of)
	default:
		s.failf("cannot alias %T", a.Of)
		return
	}
	s.write(s.renderer.TableAlias(elem, s.ref(a)))
}

func (s *state) join(j *core.Join) {
	typ := j.Type
	if typ == "" {
		typ = core.JoinInner
	}
	kw, ok := s.dialect.JoinKeyword(typ)
	if !ok {
		s.failf("%s JOIN is not supported by %s", typ, s.dialect.Name)
		return
	}

	s.fromElement(j.Left)
	s.write(" " + kw + " ")
	if nested, ok := j.Right.(*core.Join); ok {
		s.write("(")
		s.join(nested)
		s.write(")")
	} else {
		s.fromElement(j.Right)
	}
	if typ != core.JoinCross && j.On != nil {
		s.write(" ON ")
		s.expr(j.On, dialect.PrecedenceNone)
	}
}

func (s *state) lock(l *core.LockSpec) {
	if l == nil {
		return
	}
	f := s.dialect.Features
	switch {
	case l.Mode == core.LockShare && !f.ForShare:
		s.failf("FOR SHARE is not supported by %s", s.dialect.Name)
	case l.Mode == core.LockUpdate && !f.ForUpdate:
		s.failf("FOR UPDATE is not supported by %s", s.dialect.Name)
	case l.NoWait && l.SkipLocked:
		s.failf("NOWAIT and SKIP LOCKED are mutually exclusive")
	case l.NoWait && !f.NoWait:
		s.failf("NOWAIT is not supported by %s", s.dialect.Name)
	case l.SkipLocked && !f.SkipLocked:
		s.failf("SKIP LOCKED is not supported by %s", s.dialect.Name)
	case len(l.Of) > 0 && !f.ForUpdateOf:
		s.failf("FOR UPDATE OF is not supported by %s", s.dialect.Name)
	}
	if s.err != nil {
		return
	}
	of := make([]string, len(l.Of))
	for i, sel := range l.Of {
		of[i] = s.ref(sel)
	}
	s.write(s.renderer.LockClause(l, of))
}

func (s *state) compound(c *core.Compound) {
	top := s.depth == 0
	labels := c.Labels()

	s.depth++
	s.formatList(len(c.Selects), func(i int) {
		q := c.Selects[i]
		if sel, ok := q.(*core.Select); ok && (len(sel.OrderBy) > 0 || sel.Limit != nil || sel.Offset != nil) {
			s.write("(")
			s.query(q)
			s.write(")")
			return
		}
		s.query(q)
	}, " "+c.Op.String()+" ")
	s.depth--

	if len(c.OrderBy) > 0 {
		s.pushScope(&scope{labels: labels})
		s.write(" ORDER BY ")
		s.formatList(len(c.OrderBy), func(i int) {
			s.expr(compoundOrder(c, labels, c.OrderBy[i]), dialect.PrecedenceNone)
		}, ", ")
		s.popScope()
	}
	s.write(s.renderer.LimitOffset(c.Limit, c.Offset))

	if top {
		s.resultMap = s.resultColumns(labels, nil)
	}
}

// compoundOrder maps ORDER BY columns of a compound to output labels; the
// member tables are not in scope after the set operator.
func compoundOrder(c *core.Compound, labels []core.LabeledExpr, e core.Expr) core.Expr {
	if o, ok := e.(*core.Ordering); ok {
		return &core.Ordering{Expr: compoundOrder(c, labels, o.Expr), Desc: o.Desc, Nulls: o.Nulls}
	}
	col, ok := e.(*core.Column)
	if !ok {
		return e
	}
	if col.Table == c {
		return &core.NameRef{Name: col.Name}
	}
	for _, l := range labels {
		inner := l.Expr
		if lab, ok := inner.(*core.Label); ok {
			inner = lab.Expr
		}
		if inner == col {
			return &core.NameRef{Name: l.Name}
		}
	}
	return e
}

// resultColumns describes the output columns of the top-level statement.
func (s *state) resultColumns(labels []core.LabeledExpr, froms []core.Selectable) []ResultColumn {
	out := make([]ResultColumn, 0, len(labels))
	for _, l := range labels {
		star, ok := l.Expr.(*core.Star)
		if !ok {
			out = append(out, ResultColumn{Name: l.Name, Column: baseColumn(l.Expr), Type: core.ExprType(l.Expr)})
			continue
		}
		var sources []core.Selectable
		if star.Table != nil {
			sources = []core.Selectable{star.Table}
		} else {
			for _, f := range froms {
				sources = append(sources, core.FromLeaves(f)...)
			}
		}
		for _, src := range sources {
			for _, c := range src.Exported() {
				out = append(out, ResultColumn{Name: c.Name, Column: baseColumn(c), Type: core.ExprType(c)})
			}
		}
	}
	return out
}

// baseColumn returns the table column an output expression resolves to.
func baseColumn(e core.Expr) *core.Column {
	if l, ok := e.(*core.Label); ok {
		e = l.Expr
	}
	c, ok := e.(*core.Column)
	if !ok {
		return nil
	}
	origin := c.Origin()
	if _, ok := origin.Table.(*core.Table); !ok {
		return nil
	}
	return origin
}

// returning renders a RETURNING clause and records its result columns.
func (s *state) returning(exprs []core.Expr) {
	if len(exprs) == 0 {
		return
	}
	if !s.dialect.Features.Returning {
		s.failf("RETURNING is not supported by %s", s.dialect.Name)
		return
	}
	labels := core.LabelColumns(exprs, false)
	s.write(" RETURNING ")
	s.formatList(len(labels), func(i int) {
		s.labeledColumn(labels[i], nil)
	}, ", ")
	s.resultMap = s.resultColumns(labels, s.current().froms)
}
