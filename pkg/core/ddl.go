package core

// Constraint is a table constraint.
type Constraint interface {
	Node
	ConstraintName() string
	Parent() *Table
	setTable(*Table)
}

type constraintBase struct {
	Name  string
	table *Table
}

func (c *constraintBase) ConstraintName() string { return c.Name }
func (c *constraintBase) Parent() *Table         { return c.table }
func (c *constraintBase) setTable(t *Table)      { c.table = t }

// PrimaryKeyConstraint names the primary key columns explicitly.
type PrimaryKeyConstraint struct {
	constraintBase
	Columns []*Column
}

func (*PrimaryKeyConstraint) node() {}

// NewPrimaryKey returns a primary key constraint.
func NewPrimaryKey(name string, cols ...*Column) *PrimaryKeyConstraint {
	return &PrimaryKeyConstraint{constraintBase: constraintBase{Name: name}, Columns: cols}
}

// UniqueConstraint is a UNIQUE constraint.
type UniqueConstraint struct {
	constraintBase
	Columns []*Column
}

func (*UniqueConstraint) node() {}

// NewUnique returns a unique constraint.
func NewUnique(name string, cols ...*Column) *UniqueConstraint {
	return &UniqueConstraint{constraintBase: constraintBase{Name: name}, Columns: cols}
}

// CheckConstraint is a CHECK constraint.
type CheckConstraint struct {
	constraintBase
	Expr Expr
}

func (*CheckConstraint) node() {}

// NewCheck returns a check constraint.
func NewCheck(name string, e Expr) *CheckConstraint {
	return &CheckConstraint{constraintBase: constraintBase{Name: name}, Expr: e}
}

// ForeignKeyConstraint references columns of another table.
type ForeignKeyConstraint struct {
	constraintBase
	Columns    []*Column
	RefColumns []*Column
	OnDelete   string
	OnUpdate   string

	// UseAlter emits the constraint as ALTER TABLE ADD CONSTRAINT after
	// the tables are created instead of inline.
	UseAlter bool
}

func (*ForeignKeyConstraint) node() {}

// NewForeignKey returns a foreign key from cols to refs.
func NewForeignKey(name string, cols, refs []*Column) *ForeignKeyConstraint {
	return &ForeignKeyConstraint{constraintBase: constraintBase{Name: name}, Columns: cols, RefColumns: refs}
}

// RefTable returns the referenced table.
func (fk *ForeignKeyConstraint) RefTable() *Table {
	if len(fk.RefColumns) == 0 {
		return nil
	}
	t, _ := fk.RefColumns[0].Table.(*Table)
	return t
}

// Index is a table index.
type Index struct {
	Name    string
	Table   *Table
	Columns []Expr
	Unique  bool
}

func (*Index) node() {}

// NewIndex returns an index over cols.
func NewIndex(name string, cols ...Expr) *Index {
	return &Index{Name: name, Columns: cols}
}

// Sequence is a database sequence.
type Sequence struct {
	Name      string
	Schema    string
	Start     *int64
	Increment *int64
}

func (*Sequence) node() {}

// CreateTable creates a table with its columns and inline constraints.
type CreateTable struct {
	Table       *Table
	IfNotExists bool
}

// DropTable drops a table.
type DropTable struct {
	Table    *Table
	IfExists bool
	Cascade  bool
}

// CreateIndex creates an index.
type CreateIndex struct {
	Index       *Index
	IfNotExists bool
}

// DropIndex drops an index.
type DropIndex struct {
	Index    *Index
	IfExists bool
}

// AddConstraint adds a constraint with ALTER TABLE. A CreateTable compiled
// in the same batch omits the constraint from its inline definition.
type AddConstraint struct {
	Constraint Constraint
}

// DropConstraint drops a constraint with ALTER TABLE.
type DropConstraint struct {
	Constraint Constraint
	Cascade    bool
}

// CreateSequence creates a sequence.
type CreateSequence struct {
	Sequence    *Sequence
	IfNotExists bool
}

// DropSequence drops a sequence.
type DropSequence struct {
	Sequence *Sequence
	IfExists bool
}

// DDLBatch is an ordered list of DDL statements compiled with shared state.
type DDLBatch struct {
	Statements []Stmt
}

func (*CreateTable) node()     {}
func (*CreateTable) stmtNode() {}

func (*DropTable) node()     {}
func (*DropTable) stmtNode() {}

func (*CreateIndex) node()     {}
func (*CreateIndex) stmtNode() {}

func (*DropIndex) node()     {}
func (*DropIndex) stmtNode() {}

func (*AddConstraint) node()     {}
func (*AddConstraint) stmtNode() {}

func (*DropConstraint) node()     {}
func (*DropConstraint) stmtNode() {}

func (*CreateSequence) node()     {}
func (*CreateSequence) stmtNode() {}

func (*DropSequence) node()     {}
func (*DropSequence) stmtNode() {}

func (*DDLBatch) node()     {}
func (*DDLBatch) stmtNode() {}
