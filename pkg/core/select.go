package core

import (
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlcompiler/pkg/naming"
)

// Select is a SELECT statement.
type Select struct {
	Columns    []Expr
	From       []Selectable // explicit FROM elements; column owners are added implicitly
	Where      Expr
	GroupBy    []Expr
	Having     Expr
	OrderBy    []Expr
	Limit      *int
	Offset     *int
	Distinct   bool
	DistinctOn []Expr
	Lock       *LockSpec
	CTEs       []*CTE // CTEs attached explicitly, rendered even when unreferenced

	// UseLabels labels every column table_column.
	UseLabels bool

	labelsOnce sync.Once
	labels     []LabeledExpr
	proxies    proxySet
}

func (*Select) node()       {}
func (*Select) stmtNode()   {}
func (*Select) selectable() {}
func (*Select) queryNode()  {}

// NewSelect returns a select of the given columns.
func NewSelect(cols ...Expr) *Select {
	return &Select{Columns: cols}
}

// Labels returns the output name of every column in order. Names are
// de-duplicated with numeric suffixes; unnamed expressions get anon_N or
// <function>_N.
func (s *Select) Labels() []LabeledExpr {
	s.labelsOnce.Do(func() {
		s.labels = LabelColumns(s.Columns, s.UseLabels)
	})
	return s.labels
}

// LabelColumns computes output names for a column list.
func LabelColumns(cols []Expr, useLabels bool) []LabeledExpr {
	set := naming.NewLabelSet()
	out := make([]LabeledExpr, 0, len(cols))

	// Explicit names claim their spelling before generated ones.
	for _, e := range cols {
		if l, ok := e.(*Label); ok && l.Name != "" {
			set.Add(l.Name)
		}
	}
	claimed := make(map[string]bool)

	for _, e := range cols {
		var name string
		switch e := e.(type) {
		case *Column:
			owner := ""
			if a, ok := e.Table.(*Alias); !ok || !a.Anonymous() {
				owner = SelectableName(e.Table)
			}
			name = set.Add(naming.LabelFor(owner, e.Name, useLabels))
		case *Label:
			switch {
			case e.Name == "":
				name = set.Anon(naming.AnonPrefix)
			case claimed[e.Name]:
				name = set.Add(e.Name)
			default:
				name = e.Name
				claimed[e.Name] = true
			}
		case *Star:
			name = "*"
		case *FuncCall:
			name = set.Anon(strings.ToLower(e.Name))
		default:
			name = set.Anon(naming.AnonPrefix)
		}
		out = append(out, LabeledExpr{Name: name, Expr: e})
	}
	return out
}

// Exported returns proxies of the column list, owned by the select.
func (s *Select) Exported() []*Column {
	return s.proxies.get(func() []*Column {
		return proxiesFor(s, s.Labels())
	})
}

// C returns the named output column, or nil.
func (s *Select) C(name string) *Column {
	return findColumn(s.Exported(), name)
}

// Subquery wraps the select in an alias; an empty name is anonymous.
func (s *Select) Subquery(name string) *Alias {
	return NewAlias(s, name)
}

// CTE names the select as a common table expression.
func (s *Select) CTE(name string) *CTE {
	return NewCTE(s, name)
}

func proxiesFor(owner Selectable, labels []LabeledExpr) []*Column {
	cols := make([]*Column, 0, len(labels))
	for _, l := range labels {
		if _, ok := l.Expr.(*Star); ok {
			continue
		}
		cols = append(cols, newProxy(l.Name, owner, l.Expr))
	}
	return cols
}

// CompoundOp is a set operator between selects.
type CompoundOp int

const (
	Union CompoundOp = iota
	UnionAll
	Intersect
	Except
)

// String returns the SQL keyword(s) for the operator.
func (op CompoundOp) String() string {
	switch op {
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

// Compound combines selects with a set operator.
type Compound struct {
	Op      CompoundOp
	Selects []Query
	OrderBy []Expr
	Limit   *int
	Offset  *int

	proxies proxySet
}

func (*Compound) node()       {}
func (*Compound) stmtNode()   {}
func (*Compound) selectable() {}
func (*Compound) queryNode()  {}

// NewUnionAll combines the given queries with UNION ALL.
func NewUnionAll(qs ...Query) *Compound {
	return &Compound{Op: UnionAll, Selects: qs}
}

// Labels returns the output names of the first query.
func (c *Compound) Labels() []LabeledExpr {
	if len(c.Selects) == 0 {
		return nil
	}
	return c.Selects[0].Labels()
}

// Exported returns proxies of the first query's columns, owned by the
// compound.
func (c *Compound) Exported() []*Column {
	return c.proxies.get(func() []*Column {
		return proxiesFor(c, c.Labels())
	})
}

// C returns the named output column, or nil.
func (c *Compound) C(name string) *Column {
	return findColumn(c.Exported(), name)
}

// LockMode selects FOR UPDATE or FOR SHARE.
type LockMode int

const (
	LockUpdate LockMode = iota
	LockShare
)

// LockSpec is a row-locking clause.
type LockSpec struct {
	Mode       LockMode
	NoWait     bool
	SkipLocked bool
	Of         []Selectable
}

// ForUpdate returns a FOR UPDATE lock spec.
func ForUpdate() *LockSpec {
	return &LockSpec{Mode: LockUpdate}
}

// IntPtr returns a pointer to n, for Limit and Offset.
func IntPtr(n int) *int {
	return &n
}
