// Package cte decides which common table expressions a statement renders
// and in what order.
//
// Every CTE reachable from the statement is hoisted to the top-level WITH
// clause. CTEs attached to the statement come first, the rest follow in
// the order they are found, and dependencies are moved ahead of the CTEs
// that use them.
package cte

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlcompiler/internal/dag"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
)

// Plan is the ordered set of CTEs for one statement.
type Plan struct {
	CTEs      []*core.CTE
	Recursive bool
}

// Empty reports whether the statement needs no WITH clause.
func (p *Plan) Empty() bool {
	return len(p.CTEs) == 0
}

// ConflictError reports two unrelated CTEs sharing a name.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("multiple, unrelated CTEs have the name %q", e.Name)
}

// CycleError reports CTEs that depend on each other.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return "CTEs reference each other in a cycle: " + strings.Join(e.Names, " -> ")
}

type resolver struct {
	byName map[string]*core.CTE
	order  []string
	walked map[*core.CTE]bool
}

// Resolve collects and orders the CTEs of stmt.
func Resolve(stmt core.Node) (*Plan, error) {
	r := &resolver{
		byName: make(map[string]*core.CTE),
		walked: make(map[*core.CTE]bool),
	}

	for _, c := range attached(stmt) {
		if err := r.add(c); err != nil {
			return nil, err
		}
	}

	var err error
	core.Walk(stmt, func(n core.Node) bool {
		if err != nil {
			return false
		}
		c, ok := n.(*core.CTE)
		if !ok {
			return true
		}
		if err = r.add(c); err != nil {
			return false
		}
		if r.walked[c] {
			return false
		}
		r.walked[c] = true
		return true
	})
	if err != nil {
		return nil, err
	}

	return r.plan()
}

// attached returns the CTEs explicitly attached to a statement.
func attached(stmt core.Node) []*core.CTE {
	switch s := stmt.(type) {
	case *core.Select:
		return s.CTEs
	case *core.Insert:
		return s.CTEs
	case *core.Update:
		return s.CTEs
	case *core.Delete:
		return s.CTEs
	}
	return nil
}

// add records c under its name. A CTE restating the known definition
// replaces it in place.
func (r *resolver) add(c *core.CTE) error {
	known, ok := r.byName[c.Name]
	switch {
	case !ok:
		r.byName[c.Name] = c
		r.order = append(r.order, c.Name)
	case known == c:
	case !known.SameDefinition(c):
		return &ConflictError{Name: c.Name}
	case restates(c, known):
		r.byName[c.Name] = c
	}
	return nil
}

func restates(c, other *core.CTE) bool {
	for cur := c.Restates; cur != nil; cur = cur.Restates {
		if cur == other {
			return true
		}
	}
	return false
}

func (r *resolver) plan() (*Plan, error) {
	g := dag.NewGraph()
	for _, name := range r.order {
		g.AddNode(name, r.byName[name])
	}

	for _, name := range r.order {
		for _, dep := range r.dependencies(r.byName[name]) {
			if err := g.AddEdge(dep, name); err != nil {
				return nil, fmt.Errorf("cte %q: %w", name, err)
			}
		}
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		var cerr *dag.CycleError
		if errors.As(err, &cerr) {
			return nil, &CycleError{Names: cerr.Path}
		}
		return nil, err
	}

	p := &Plan{CTEs: make([]*core.CTE, 0, len(sorted))}
	for _, n := range sorted {
		c := n.Data.(*core.CTE)
		p.CTEs = append(p.CTEs, c)
		if c.Recursive {
			p.Recursive = true
		}
	}
	return p, nil
}

// dependencies returns the names of the other CTEs c's body references.
// References back to c itself, including through its restatement chain,
// are recursion rather than dependencies.
func (r *resolver) dependencies(c *core.CTE) []string {
	var deps []string
	seen := map[string]bool{c.Name: true}
	core.Walk(c.Query, func(n core.Node) bool {
		ref, ok := n.(*core.CTE)
		if !ok {
			return true
		}
		if !seen[ref.Name] {
			seen[ref.Name] = true
			deps = append(deps, ref.Name)
		}
		return false
	})
	return deps
}
