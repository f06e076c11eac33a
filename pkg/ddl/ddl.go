// Package ddl plans CREATE and DROP batches for a set of tables.
//
// Tables are ordered by their foreign keys so that referenced tables are
// created first and dropped last. Foreign keys marked UseAlter, and foreign
// keys whose tables reference each other in a cycle, are split out of the
// CREATE TABLE statements and emitted as ALTER TABLE statements instead.
package ddl

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlcompiler/internal/dag"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
)

// Options adjusts the generated statements.
type Options struct {
	// IfNotExists adds IF NOT EXISTS to CREATE TABLE and CREATE INDEX.
	IfNotExists bool
	// IfExists adds IF EXISTS to DROP TABLE.
	IfExists bool
}

// Plan is the dependency analysis of a table set.
type Plan struct {
	// Tables in creation order: referenced tables before their dependents.
	Tables []*core.Table
	// External lists the foreign keys emitted with ALTER TABLE.
	External []*core.ForeignKeyConstraint
}

// Analyze orders tables by foreign key dependencies. Foreign keys to tables
// outside the set and self-references do not constrain the order.
func Analyze(tables ...*core.Table) (*Plan, error) {
	g := dag.NewGraph()
	for _, t := range tables {
		if t == nil {
			return nil, errors.New("nil table")
		}
		if n, ok := g.GetNode(t.FullName()); ok {
			if n.Data.(*core.Table) != t {
				return nil, fmt.Errorf("duplicate table name %q", t.FullName())
			}
			continue
		}
		g.AddNode(t.FullName(), t)
	}

	var (
		external []*core.ForeignKeyConstraint
		inline   []*core.ForeignKeyConstraint
	)
	for _, n := range g.Nodes() {
		t := n.Data.(*core.Table)
		for _, fk := range t.ForeignKeys() {
			if fk.UseAlter {
				external = append(external, fk)
				continue
			}
			ref := fk.RefTable()
			if ref == nil || ref == t {
				continue
			}
			if other, ok := g.GetNode(ref.FullName()); !ok || other.Data.(*core.Table) != ref {
				continue
			}
			if err := g.AddEdge(ref.FullName(), t.FullName()); err != nil {
				return nil, fmt.Errorf("table %s: %w", t.FullName(), err)
			}
			inline = append(inline, fk)
		}
	}

	// Every foreign key inside a cycle moves to ALTER TABLE.
	component := make(map[string]int)
	for i, comp := range g.Components() {
		for _, id := range comp {
			component[id] = i + 1
		}
	}
	for _, fk := range inline {
		from, to := fk.Parent().FullName(), fk.RefTable().FullName()
		if c := component[from]; c != 0 && c == component[to] {
			g.RemoveEdge(to, from)
			external = append(external, fk)
		}
	}

	nodes, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("ordering tables: %w", err)
	}
	plan := &Plan{External: external}
	for _, n := range nodes {
		plan.Tables = append(plan.Tables, n.Data.(*core.Table))
	}
	return plan, nil
}

// CreateAll returns a batch creating tables in dependency order, followed by
// their indexes and the foreign keys that cannot be declared inline.
func CreateAll(tables ...*core.Table) (*core.DDLBatch, error) {
	return CreateAllWith(Options{}, tables...)
}

// CreateAllWith is CreateAll with options.
func CreateAllWith(opts Options, tables ...*core.Table) (*core.DDLBatch, error) {
	plan, err := Analyze(tables...)
	if err != nil {
		return nil, err
	}
	batch := &core.DDLBatch{}
	for _, t := range plan.Tables {
		batch.Statements = append(batch.Statements, &core.CreateTable{Table: t, IfNotExists: opts.IfNotExists})
	}
	for _, t := range plan.Tables {
		for _, ix := range t.Indexes {
			batch.Statements = append(batch.Statements, &core.CreateIndex{Index: ix, IfNotExists: opts.IfNotExists})
		}
	}
	for _, fk := range plan.External {
		batch.Statements = append(batch.Statements, &core.AddConstraint{Constraint: fk})
	}
	return batch, nil
}

// DropAll returns a batch dropping the externally declared foreign keys and
// then the tables, dependents first.
func DropAll(tables ...*core.Table) (*core.DDLBatch, error) {
	return DropAllWith(Options{}, tables...)
}

// DropAllWith is DropAll with options. A foreign key that must be dropped
// separately needs a name.
func DropAllWith(opts Options, tables ...*core.Table) (*core.DDLBatch, error) {
	plan, err := Analyze(tables...)
	if err != nil {
		return nil, err
	}
	batch := &core.DDLBatch{}
	for _, fk := range plan.External {
		if fk.Name == "" {
			return nil, fmt.Errorf("table %s: foreign key to %s must be named to be dropped before its tables",
				fk.Parent().FullName(), refName(fk))
		}
		batch.Statements = append(batch.Statements, &core.DropConstraint{Constraint: fk})
	}
	for i := len(plan.Tables) - 1; i >= 0; i-- {
		batch.Statements = append(batch.Statements, &core.DropTable{Table: plan.Tables[i], IfExists: opts.IfExists})
	}
	return batch, nil
}

func refName(fk *core.ForeignKeyConstraint) string {
	if t := fk.RefTable(); t != nil {
		return t.FullName()
	}
	return "?"
}
