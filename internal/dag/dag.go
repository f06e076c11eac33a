// Package dag orders named items by their dependencies. It backs CTE
// ordering in the compiler and table ordering in DDL planning.
//
// Orderings are deterministic: ties are broken by the order nodes were
// added, never by name.
package dag

import (
	"fmt"
	"slices"
	"strings"
)

// Node is a named item with its payload.
type Node struct {
	ID   string
	Data any
}

// CycleError is returned when an ordering is requested for a cyclic graph.
type CycleError struct {
	// Path lists the cycle, starting and ending with the same node.
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// Graph is a directed dependency graph. An edge from parent to child means
// the child depends on the parent.
type Graph struct {
	order   []string
	nodes   map[string]*Node
	edges   map[string][]string // parent -> dependents
	parents map[string][]string // child -> dependencies
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node. Re-adding a node replaces its data and keeps its
// original position.
func (g *Graph) AddNode(id string, data any) {
	if n, ok := g.nodes[id]; ok {
		n.Data = data
		return
	}
	g.nodes[id] = &Node{ID: id, Data: data}
	g.order = append(g.order, id)
}

// AddEdge records that child depends on parent. Both must exist.
func (g *Graph) AddEdge(parentID, childID string) error {
	switch {
	case g.nodes[parentID] == nil:
		return fmt.Errorf("parent node %q does not exist", parentID)
	case g.nodes[childID] == nil:
		return fmt.Errorf("child node %q does not exist", childID)
	case parentID == childID:
		return fmt.Errorf("self-loop detected: %s", parentID)
	}
	if !slices.Contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

// RemoveEdge deletes the edge from parent to child if present.
func (g *Graph) RemoveEdge(parentID, childID string) {
	g.edges[parentID] = without(g.edges[parentID], childID)
	g.parents[childID] = without(g.parents[childID], parentID)
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// findCycle returns one cycle, or nil.
func (g *Graph) findCycle() []string {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g.order))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = active
		stack = append(stack, id)
		for _, child := range g.edges[id] {
			switch state[child] {
			case active:
				start := slices.Index(stack, child)
				return append(slices.Clone(stack[start:]), child)
			case unvisited:
				if c := visit(child); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, id := range g.order {
		if state[id] == unvisited {
			if c := visit(id); c != nil {
				return c
			}
		}
	}
	return nil
}

// TopologicalSort returns nodes with dependencies before dependents. A node
// is emitted as soon as its dependencies are, visiting nodes and their
// dependencies in insertion order. Returns a *CycleError if the graph is
// cyclic.
func (g *Graph) TopologicalSort() ([]*Node, error) {
	if cycle := g.findCycle(); cycle != nil {
		return nil, &CycleError{Path: cycle}
	}

	emitted := make(map[string]bool, len(g.order))
	out := make([]*Node, 0, len(g.order))
	var emit func(id string)
	emit = func(id string) {
		if emitted[id] {
			return
		}
		emitted[id] = true
		for _, p := range g.parents[id] {
			emit(p)
		}
		out = append(out, g.nodes[id])
	}
	for _, id := range g.order {
		emit(id)
	}
	return out, nil
}

// Components returns the strongly connected components with more than one
// node, each in insertion order. These are the groups that make the graph
// cyclic.
func (g *Graph) Components() [][]string {
	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var comps [][]string
	next := 0

	var connect func(id string)
	connect = func(id string) {
		index[id] = next
		low[id] = next
		next++
		stack = append(stack, id)
		onStack[id] = true

		for _, child := range g.edges[id] {
			if _, seen := index[child]; !seen {
				connect(child)
				low[id] = min(low[id], low[child])
			} else if onStack[child] {
				low[id] = min(low[id], index[child])
			}
		}

		if low[id] != index[id] {
			return
		}
		members := make(map[string]bool)
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			members[top] = true
			if top == id {
				break
			}
		}
		if len(members) > 1 {
			comps = append(comps, g.inOrder(members))
		}
	}

	for _, id := range g.order {
		if _, seen := index[id]; !seen {
			connect(id)
		}
	}
	return comps
}

func (g *Graph) inOrder(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, id := range g.order {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}

func without(slice []string, s string) []string {
	out := slice[:0]
	for _, v := range slice {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
