package compiler

import (
	"strconv"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/ident"
)

func (s *state) createTable(ct *core.CreateTable) {
	t := ct.Table
	if t == nil {
		s.fail(argumentErrorf("CREATE TABLE has no table"))
		return
	}
	s.inline = true
	s.bare = true

	s.write("CREATE TABLE ")
	if ct.IfNotExists {
		if !s.requireIfExists("CREATE TABLE IF NOT EXISTS") {
			return
		}
		s.write("IF NOT EXISTS ")
	}
	s.write(s.tableName(t) + " (")

	var items []func()
	for _, col := range t.Exported() {
		items = append(items, func() { s.columnSpec(col) })
	}
	var pkc *core.PrimaryKeyConstraint
	for _, c := range t.Constraints {
		if p, ok := c.(*core.PrimaryKeyConstraint); ok {
			pkc = p
		}
	}
	if pk := t.PrimaryKeyColumns(); len(pk) > 0 && (pkc == nil || !s.deferred[pkc]) {
		name := ""
		if pkc != nil {
			name = pkc.ConstraintName()
		}
		items = append(items, func() {
			s.constraintName(name)
			s.write("PRIMARY KEY")
			s.ownColumns(t, pk)
		})
	}
	for _, col := range t.Exported() {
		if col.Unique {
			items = append(items, func() {
				s.write("UNIQUE")
				s.ownColumns(t, []*core.Column{col})
			})
		}
	}
	for _, c := range t.Constraints {
		if _, ok := c.(*core.PrimaryKeyConstraint); ok || s.deferred[c] {
			continue
		}
		if fk, ok := c.(*core.ForeignKeyConstraint); ok && fk.UseAlter {
			continue
		}
		items = append(items, func() { s.constraintSpec(t, c) })
	}

	s.formatList(len(items), func(i int) {
		s.write("\n\t")
		items[i]()
	}, ",")
	s.write("\n)")
}

func (s *state) requireIfExists(what string) bool {
	if !s.dialect.Features.IfExists {
		s.failf("%s is not supported by %s", what, s.dialect.Name)
		return false
	}
	return true
}

func (s *state) columnSpec(col *core.Column) {
	s.write(s.columnName(col, false) + " ")

	typ, ok := "", false
	if col.Autoincrement {
		typ, ok = s.renderer.AutoincrementType(col)
	}
	if !ok {
		if col.Type == nil {
			s.fail(argumentErrorf("column %s has no type", col.Name))
			return
		}
		var err error
		typ, err = s.renderer.TypeName(col.Type)
		if err != nil {
			s.fail(&CompileError{Msg: "column " + col.Name, Err: err})
			return
		}
	}
	s.write(typ)
	// Identity clauses precede inline constraints.
	if col.Autoincrement {
		s.write(s.renderer.AutoincrementClause(col))
	}

	if col.ServerDefault != nil {
		s.write(" DEFAULT ")
		s.expr(col.ServerDefault, dialect.PrecedenceNone)
	}
	if col.NotNull || col.PrimaryKey {
		s.write(" NOT NULL")
	}
}

func (s *state) constraintName(name string) {
	if name == "" {
		return
	}
	s.write("CONSTRAINT " + s.name(s.names.Name(ident.KindConstraint, name)) + " ")
}

// ownColumns renders " (a, b)" after checking every column belongs to t.
func (s *state) ownColumns(t *core.Table, cols []*core.Column) {
	for _, c := range cols {
		if c.Table != core.Selectable(t) {
			s.fail(argumentErrorf("column %s is not a column of table %s", c.Name, t.Name))
			return
		}
	}
	s.columnList(cols)
}

// constraintSpec renders a table-level constraint as it appears inside
// CREATE TABLE or after ALTER TABLE ... ADD.
func (s *state) constraintSpec(t *core.Table, c core.Constraint) {
	s.constraintName(c.ConstraintName())
	switch c := c.(type) {
	case *core.PrimaryKeyConstraint:
		s.write("PRIMARY KEY")
		s.ownColumns(t, c.Columns)
	case *core.UniqueConstraint:
		s.write("UNIQUE")
		s.ownColumns(t, c.Columns)
	case *core.CheckConstraint:
		s.write("CHECK (")
		s.expr(c.Expr, dialect.PrecedenceNone)
		s.write(")")
	case *core.ForeignKeyConstraint:
		s.foreignKey(t, c)
	default:
		s.failf("cannot compile constraint %T", c)
	}
}

func (s *state) foreignKey(t *core.Table, fk *core.ForeignKeyConstraint) {
	ref := fk.RefTable()
	switch {
	case len(fk.Columns) == 0 || len(fk.Columns) != len(fk.RefColumns):
		s.fail(argumentErrorf("foreign key on %s needs matching column lists", t.Name))
		return
	case ref == nil:
		s.fail(argumentErrorf("foreign key on %s references no table", t.Name))
		return
	}
	for _, c := range fk.RefColumns {
		if c.Table != core.Selectable(ref) {
			s.fail(argumentErrorf("foreign key on %s references columns of more than one table", t.Name))
			return
		}
	}

	s.write("FOREIGN KEY")
	s.ownColumns(t, fk.Columns)
	s.write(" REFERENCES " + s.tableName(ref))
	s.columnList(fk.RefColumns)
	if fk.OnDelete != "" {
		s.write(" ON DELETE " + fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		s.write(" ON UPDATE " + fk.OnUpdate)
	}
}

func (s *state) dropTable(dt *core.DropTable) {
	if dt.Table == nil {
		s.fail(argumentErrorf("DROP TABLE has no table"))
		return
	}
	s.write("DROP TABLE ")
	if dt.IfExists {
		if !s.requireIfExists("DROP TABLE IF EXISTS") {
			return
		}
		s.write("IF EXISTS ")
	}
	s.write(s.tableName(dt.Table))
	s.cascade(dt.Cascade)
}

func (s *state) cascade(on bool) {
	if !on {
		return
	}
	if !s.dialect.Features.DropCascade {
		s.failf("CASCADE is not supported by %s", s.dialect.Name)
		return
	}
	s.write(" CASCADE")
}

// indexTable returns the table an index belongs to, falling back to the
// owner of its first column.
func indexTable(ix *core.Index) *core.Table {
	if ix.Table != nil {
		return ix.Table
	}
	for _, c := range core.ColumnsIn(ix.Columns...) {
		if t, ok := c.Table.(*core.Table); ok {
			return t
		}
	}
	return nil
}

func (s *state) createIndex(ci *core.CreateIndex) {
	ix := ci.Index
	t := indexTable(ix)
	switch {
	case t == nil:
		s.failf("index %q is not bound to a table", ix.Name)
		return
	case len(ix.Columns) == 0:
		s.failf("index %q has no columns", ix.Name)
		return
	}
	s.inline = true
	s.bare = true

	s.write("CREATE ")
	if ix.Unique {
		s.write("UNIQUE ")
	}
	s.write("INDEX ")
	if ci.IfNotExists {
		if !s.requireIfExists("CREATE INDEX IF NOT EXISTS") {
			return
		}
		s.write("IF NOT EXISTS ")
	}
	s.write(s.indexName(ix, t) + " ON " + s.tableName(t) + " (")
	s.exprList(ix.Columns)
	s.write(")")
}

func (s *state) indexName(ix *core.Index, t *core.Table) string {
	if ix.Table == nil {
		bound := *ix
		bound.Table = t
		ix = &bound
	}
	return s.name(s.names.FormatIndex(ix))
}

func (s *state) dropIndex(di *core.DropIndex) {
	ix := di.Index
	t := indexTable(ix)
	if di.IfExists && !s.requireIfExists("DROP INDEX IF EXISTS") {
		return
	}
	table := ""
	if t != nil {
		table = s.tableName(t)
	}
	s.write(s.renderer.DropIndex(s.indexName(ix, t), table, di.IfExists))
}

func (s *state) addConstraint(ac *core.AddConstraint) {
	if !s.dialect.Features.AlterConstraints {
		s.failf("ALTER TABLE ADD CONSTRAINT is not supported by %s", s.dialect.Name)
		return
	}
	t := ac.Constraint.Parent()
	if t == nil {
		s.fail(argumentErrorf("constraint %q is not attached to a table", ac.Constraint.ConstraintName()))
		return
	}
	s.inline = true
	s.bare = true
	s.write("ALTER TABLE " + s.tableName(t) + " ADD ")
	s.constraintSpec(t, ac.Constraint)
}

func (s *state) dropConstraint(dc *core.DropConstraint) {
	if !s.dialect.Features.AlterConstraints {
		s.failf("ALTER TABLE DROP CONSTRAINT is not supported by %s", s.dialect.Name)
		return
	}
	c := dc.Constraint
	t := c.Parent()
	switch {
	case t == nil:
		s.fail(argumentErrorf("constraint %q is not attached to a table", c.ConstraintName()))
		return
	case c.ConstraintName() == "":
		s.failf("cannot drop an unnamed constraint on %s", t.Name)
		return
	}
	name := s.name(s.names.FormatConstraint(c))
	s.write("ALTER TABLE " + s.tableName(t) + " ")
	if _, ok := c.(*core.ForeignKeyConstraint); ok {
		s.write(s.renderer.DropForeignKey(name))
	} else {
		s.write("DROP CONSTRAINT " + name)
	}
	s.cascade(dc.Cascade)
}

func (s *state) createSequence(cs *core.CreateSequence) {
	if !s.dialect.Features.Sequences {
		s.failf("sequences are not supported by %s", s.dialect.Name)
		return
	}
	s.write("CREATE SEQUENCE ")
	if cs.IfNotExists {
		if !s.requireIfExists("CREATE SEQUENCE IF NOT EXISTS") {
			return
		}
		s.write("IF NOT EXISTS ")
	}
	s.write(s.name(s.names.FormatSequence(cs.Sequence)))
	if inc := cs.Sequence.Increment; inc != nil {
		s.write(" INCREMENT BY " + strconv.FormatInt(*inc, 10))
	}
	if start := cs.Sequence.Start; start != nil {
		s.write(" START WITH " + strconv.FormatInt(*start, 10))
	}
}

func (s *state) dropSequence(ds *core.DropSequence) {
	if !s.dialect.Features.Sequences {
		s.failf("sequences are not supported by %s", s.dialect.Name)
		return
	}
	s.write("DROP SEQUENCE ")
	if ds.IfExists {
		if !s.requireIfExists("DROP SEQUENCE IF EXISTS") {
			return
		}
		s.write("IF EXISTS ")
	}
	s.write(s.name(s.names.FormatSequence(ds.Sequence)))
}
