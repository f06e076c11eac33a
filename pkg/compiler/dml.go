package compiler

import (
	"fmt"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/ident"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func (s *state) insert(ins *core.Insert) {
	if ins.Table == nil {
		s.fail(argumentErrorf("INSERT has no target table"))
		return
	}
	cteInside := s.dialect.Features.CTEInsideInsert
	if cteInside && ins.Select == nil && !s.plan.Empty() {
		s.failf("WITH on INSERT needs an INSERT ... SELECT on %s", s.dialect.Name)
		return
	}
	if !cteInside {
		s.withClause()
	}

	// The inserted rows do not correlate to the target; ON CONFLICT and
	// RETURNING reference it.
	sc := &scope{}
	s.pushScope(sc)
	defer s.popScope()

	s.write("INSERT INTO " + s.tableName(ins.Table))
	cols := ins.Columns
	switch {
	case ins.Select != nil:
		if len(cols) == 0 {
			s.fail(argumentErrorf("INSERT ... SELECT into %s needs a column list", ins.Table.Name))
			return
		}
		s.columnList(cols)
		s.space()
		if cteInside {
			s.withClause()
		}
		s.depth++
		s.query(ins.Select)
		s.depth--
	case len(ins.Rows) > 0:
		if len(cols) == 0 {
			cols = ins.Table.Exported()
		}
		for i, row := range ins.Rows {
			if len(row) != len(cols) {
				s.fail(argumentErrorf("INSERT row %d has %d values for %d columns", i+1, len(row), len(cols)))
				return
			}
		}
		s.columnList(cols)
		s.write(" VALUES ")
		multi := len(ins.Rows) > 1
		s.formatList(len(ins.Rows), func(r int) {
			s.write("(")
			s.formatList(len(cols), func(i int) {
				key := cols[i].Name
				if multi {
					key = fmt.Sprintf("%s_m%d", key, r)
				}
				s.columnValue(ins.Rows[r][i], cols[i], key)
			}, ", ")
			s.write(")")
		}, ", ")
	case len(cols) > 0:
		s.columnList(cols)
		s.write(" VALUES (")
		s.formatList(len(cols), func(i int) {
			s.formatBind(core.Placeholder(cols[i].Name, cols[i].Type), "")
		}, ", ")
		s.write(")")
	default:
		s.write(s.renderer.DefaultValuesInsert())
	}

	sc.froms = []core.Selectable{ins.Table}
	sc.rendered = sc.froms
	if ins.OnConflict != nil {
		s.onConflict(ins.OnConflict)
	}
	if len(ins.OnDuplicateKey) > 0 {
		if !s.dialect.Features.OnDuplicateKey {
			s.failf("ON DUPLICATE KEY UPDATE is not supported by %s", s.dialect.Name)
			return
		}
		s.write(" ON DUPLICATE KEY UPDATE ")
		s.assignments(ins.OnDuplicateKey, false)
	}
	s.returning(ins.Returning)
}

// columnList renders " (a, b)".
func (s *state) columnList(cols []*core.Column) {
	s.write(" (")
	s.formatList(len(cols), func(i int) {
		s.write(s.columnName(cols[i], false))
	}, ", ")
	s.write(")")
}

// columnValue renders a value bound for col. Keyless binds take key and
// the column's type.
func (s *state) columnValue(v core.Expr, col *core.Column, key string) {
	p, ok := v.(*core.BindParam)
	if !ok {
		s.expr(v, dialect.PrecedenceNone)
		return
	}
	if p.Key == "" {
		typed := *p
		if sqltypes.IsNull(typed.Type) && col.Type != nil {
			typed.Type = col.Type
		}
		p = &typed
	}
	s.formatBind(p, key)
}

func (s *state) assignments(set []core.Assignment, qualify bool) {
	s.formatList(len(set), func(i int) {
		a := set[i]
		s.write(s.columnName(a.Column, qualify) + " = ")
		s.columnValue(a.Value, a.Column, a.Column.Name)
	}, ", ")
}

func (s *state) onConflict(oc *core.OnConflict) {
	if !s.dialect.Features.OnConflict {
		s.failf("ON CONFLICT is not supported by %s", s.dialect.Name)
		return
	}
	if oc.DoNothing && len(oc.Set) > 0 {
		s.fail(argumentErrorf("ON CONFLICT cannot both DO NOTHING and DO UPDATE"))
		return
	}

	s.write(" ON CONFLICT")
	switch {
	case oc.Constraint != "":
		s.write(" ON CONSTRAINT " + s.name(s.names.Name(ident.KindConstraint, oc.Constraint)))
	case len(oc.Target) > 0:
		s.columnList(oc.Target)
		s.bare = true
		s.clause(" WHERE ", oc.TargetWhere)
		s.bare = false
	}

	if oc.DoNothing || len(oc.Set) == 0 {
		s.write(" DO NOTHING")
		return
	}
	if oc.Constraint == "" && len(oc.Target) == 0 {
		s.failf("ON CONFLICT DO UPDATE requires a conflict target or constraint")
		return
	}
	s.write(" DO UPDATE SET ")
	s.assignments(oc.Set, false)
	s.clause(" WHERE ", oc.Where)
}

// extraTables returns the tables besides target a DML statement touches:
// the explicit list, then owners of referenced columns.
func extraTables(target *core.Table, explicit []core.Selectable, exprs ...core.Expr) []core.Selectable {
	extra := append([]core.Selectable(nil), explicit...)
	for _, owner := range core.ColumnOwners(exprs...) {
		if owner == core.Selectable(target) || coveredBy(extra, owner) {
			continue
		}
		extra = append(extra, owner)
	}
	return extra
}

func (s *state) update(u *core.Update) {
	if u.Table == nil {
		s.fail(argumentErrorf("UPDATE has no target table"))
		return
	}
	if len(u.Set) == 0 {
		s.fail(argumentErrorf("UPDATE of %s has no SET clause", u.Table.Name))
		return
	}

	exprs := []core.Expr{u.Where}
	for _, a := range u.Set {
		exprs = append(exprs, a.Value)
	}
	extra := extraTables(u.Table, u.From, exprs...)
	style := s.dialect.Features.MultiTableUpdate
	if len(extra) > 0 && style == core.UpdateSingleTable {
		s.failf("multi-table UPDATE is not supported by %s", s.dialect.Name)
		return
	}

	froms := append([]core.Selectable{u.Table}, extra...)
	s.pushScope(&scope{froms: froms, rendered: froms})
	defer s.popScope()

	s.write("UPDATE " + s.tableName(u.Table))
	multiTable := len(extra) > 0 && style == core.UpdateMultiTable
	if multiTable {
		s.write(", ")
		s.fromElements(extra)
	}
	s.write(" SET ")
	s.assignments(u.Set, multiTable)
	if len(extra) > 0 && style == core.UpdateFrom {
		s.write(" FROM ")
		s.fromElements(extra)
	}
	s.clause(" WHERE ", u.Where)
	s.returning(u.Returning)
}

func (s *state) delete(d *core.Delete) {
	if d.Table == nil {
		s.fail(argumentErrorf("DELETE has no target table"))
		return
	}
	extra := extraTables(d.Table, d.Using, d.Where)
	style := s.dialect.Features.MultiTableDelete
	if len(extra) > 0 && style == core.DeleteSingleTable {
		s.failf("multi-table DELETE is not supported by %s", s.dialect.Name)
		return
	}

	froms := append([]core.Selectable{d.Table}, extra...)
	s.pushScope(&scope{froms: froms, rendered: froms})
	defer s.popScope()

	table := s.tableName(d.Table)
	s.write("DELETE FROM " + table)
	if len(extra) > 0 {
		s.write(" USING ")
		if style == core.DeleteUsingAll {
			s.write(table + ", ")
		}
		s.fromElements(extra)
	}
	s.clause(" WHERE ", d.Where)
	s.returning(d.Returning)
}

func (s *state) fromElements(froms []core.Selectable) {
	s.formatList(len(froms), func(i int) {
		s.fromElement(froms[i])
	}, ", ")
}
