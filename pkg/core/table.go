package core

import "github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"

// Column is a named, typed column owned by exactly one selectable.
//
// Columns exported by an Alias, CTE or Select are proxies: they record the
// column they stand for, and Origin walks back to the base column.
type Column struct {
	Name  string
	Type  sqltypes.Type
	Table Selectable

	// DDL attributes, meaningful on base table columns.
	PrimaryKey    bool
	NotNull       bool
	Unique        bool
	Autoincrement bool
	ServerDefault Expr

	proxies []*Column
}

func (*Column) node()     {}
func (*Column) exprNode() {}

// ColumnOption configures a column built with NewColumn.
type ColumnOption func(*Column)

// PrimaryKey marks the column as part of its table's primary key.
func PrimaryKey() ColumnOption { return func(c *Column) { c.PrimaryKey = true } }

// NotNull marks the column NOT NULL.
func NotNull() ColumnOption { return func(c *Column) { c.NotNull = true } }

// Unique adds a single-column unique constraint.
func Unique() ColumnOption { return func(c *Column) { c.Unique = true } }

// Autoincrement marks an integer primary key as generated by the database.
func Autoincrement() ColumnOption { return func(c *Column) { c.Autoincrement = true } }

// ServerDefault sets the DEFAULT clause rendered in DDL.
func ServerDefault(e Expr) ColumnOption { return func(c *Column) { c.ServerDefault = e } }

// NewColumn builds a detached column; NewTable attaches it.
func NewColumn(name string, typ sqltypes.Type, opts ...ColumnOption) *Column {
	c := &Column{Name: name, Type: typ}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Proxies returns the columns this column stands for.
func (c *Column) Proxies() []*Column {
	return c.proxies
}

// Origin returns the base column behind any chain of proxies.
func (c *Column) Origin() *Column {
	for len(c.proxies) > 0 {
		c = c.proxies[0]
	}
	return c
}

// SharesLineage reports whether c and other resolve to the same base column.
func (c *Column) SharesLineage(other *Column) bool {
	return c.Origin() == other.Origin()
}

func newProxy(name string, owner Selectable, src Expr) *Column {
	col := &Column{Name: name, Type: ExprType(src), Table: owner}
	if base := columnOf(src); base != nil {
		col.proxies = []*Column{base}
	}
	return col
}

// columnOf returns the column an expression names directly, if any.
func columnOf(e Expr) *Column {
	switch e := e.(type) {
	case *Column:
		return e
	case *Label:
		return columnOf(e.Expr)
	}
	return nil
}

// Table is a named base table.
type Table struct {
	Name        string
	Schema      string
	Constraints []Constraint
	Indexes     []*Index

	columns []*Column
}

func (*Table) node()       {}
func (*Table) selectable() {}

// NewTable builds a table and takes ownership of the given columns.
func NewTable(name string, cols ...*Column) *Table {
	t := &Table{Name: name}
	for _, c := range cols {
		c.Table = t
		t.columns = append(t.columns, c)
	}
	return t
}

// Exported returns the table's columns in declaration order.
func (t *Table) Exported() []*Column {
	return t.columns
}

// C returns the named column, or nil.
func (t *Table) C(name string) *Column {
	return findColumn(t.columns, name)
}

// FullName returns schema.name, or name when no schema is set.
func (t *Table) FullName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// AddConstraint attaches c to the table.
func (t *Table) AddConstraint(c Constraint) *Table {
	c.setTable(t)
	t.Constraints = append(t.Constraints, c)
	return t
}

// AddIndex attaches idx to the table.
func (t *Table) AddIndex(idx *Index) *Table {
	idx.Table = t
	t.Indexes = append(t.Indexes, idx)
	return t
}

// PrimaryKeyColumns returns the columns of the primary key: an explicit
// PrimaryKeyConstraint if present, else the columns flagged PrimaryKey.
func (t *Table) PrimaryKeyColumns() []*Column {
	for _, c := range t.Constraints {
		if pk, ok := c.(*PrimaryKeyConstraint); ok {
			return pk.Columns
		}
	}
	var cols []*Column
	for _, c := range t.columns {
		if c.PrimaryKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// ForeignKeys returns the table's foreign key constraints.
func (t *Table) ForeignKeys() []*ForeignKeyConstraint {
	var fks []*ForeignKeyConstraint
	for _, c := range t.Constraints {
		if fk, ok := c.(*ForeignKeyConstraint); ok {
			fks = append(fks, fk)
		}
	}
	return fks
}

// Alias returns a new alias of the table.
func (t *Table) Alias(name string) *Alias {
	return NewAlias(t, name)
}
