package core

// Assignment is one column = value pair in SET or an upsert.
type Assignment struct {
	Column *Column
	Value  Expr
}

// Set assigns v to col. A plain Go value becomes a bind named after the
// column.
func Set(col *Column, v any) Assignment {
	if e, ok := v.(Expr); ok {
		return Assignment{Column: col, Value: e}
	}
	if v == nil {
		return Assignment{Column: col, Value: Null{}}
	}
	return Assignment{Column: col, Value: &BindParam{Key: col.Name, Value: v, Type: col.Type}}
}

// Values converts a row of Go values for Insert.Rows. Values that are not
// expressions become binds named after their column at compile time.
func Values(values ...any) []Expr {
	row := make([]Expr, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case Expr:
			row[i] = v
		case nil:
			row[i] = Null{}
		default:
			row[i] = &BindParam{Value: v}
		}
	}
	return row
}

// Insert is an INSERT statement. With no Rows and no Select, one required
// placeholder per column is rendered; with no Columns either, a
// default-values insert is rendered.
type Insert struct {
	Table          *Table
	Columns        []*Column
	Rows           [][]Expr
	Select         Query
	OnConflict     *OnConflict
	OnDuplicateKey []Assignment
	Returning      []Expr
	CTEs           []*CTE
}

func (*Insert) node()     {}
func (*Insert) stmtNode() {}

// OnConflict is an ON CONFLICT clause. Target names the conflict columns,
// or Constraint names a constraint. DoNothing and Set are exclusive.
type OnConflict struct {
	Target      []*Column
	Constraint  string
	TargetWhere Expr
	DoNothing   bool
	Set         []Assignment
	Where       Expr
}

// Update is an UPDATE statement. Tables other than Table that are listed in
// From or referenced from Where or Set make it a multi-table update.
type Update struct {
	Table     *Table
	Set       []Assignment
	Where     Expr
	From      []Selectable
	Returning []Expr
	CTEs      []*CTE
}

func (*Update) node()     {}
func (*Update) stmtNode() {}

// Delete is a DELETE statement. Tables other than Table that are listed in
// Using or referenced from Where make it a multi-table delete.
type Delete struct {
	Table     *Table
	Where     Expr
	Using     []Selectable
	Returning []Expr
	CTEs      []*CTE
}

func (*Delete) node()     {}
func (*Delete) stmtNode() {}
