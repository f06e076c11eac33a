// Package naming allocates the anonymous names and de-duplicated labels a
// compiled statement needs, and shortens identifiers that exceed a dialect's
// length limit.
//
// An Allocator or LabelSet is scoped to one compile call (or one SELECT)
// and is not safe for concurrent use.
package naming

import (
	"fmt"
	"strconv"
)

// AnonPrefix is the prefix of anonymous alias names.
const AnonPrefix = "anon"

// Allocator issues numbered names per prefix: anon_1, anon_2, param_1, ...
type Allocator struct {
	counters map[string]int
	taken    map[string]struct{}
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		counters: make(map[string]int),
		taken:    make(map[string]struct{}),
	}
}

// NextAnon returns the next anonymous alias name.
func (a *Allocator) NextAnon() string {
	return a.Next(AnonPrefix)
}

// Next returns the next unused name of the form prefix_N.
func (a *Allocator) Next(prefix string) string {
	for {
		a.counters[prefix]++
		name := prefix + "_" + strconv.Itoa(a.counters[prefix])
		if _, ok := a.taken[name]; ok {
			continue
		}
		a.taken[name] = struct{}{}
		return name
	}
}

// Reserve marks name as used so Next never returns it.
func (a *Allocator) Reserve(name string) {
	a.taken[name] = struct{}{}
}

// Taken reports whether name was issued or reserved.
func (a *Allocator) Taken(name string) bool {
	_, ok := a.taken[name]
	return ok
}

// LabelFor computes the output label of a column. With useLabels the label
// is qualified by the owning table's name.
func LabelFor(tableName, colName string, useLabels bool) string {
	if !useLabels || tableName == "" {
		return colName
	}
	return tableName + "_" + colName
}

// LabelSet de-duplicates labels within one column list. The first use of a
// label keeps it; later uses get _1, _2, ... suffixes in first-seen order.
type LabelSet struct {
	seen  map[string]struct{}
	alloc *Allocator
}

// NewLabelSet returns an empty label set.
func NewLabelSet() *LabelSet {
	return &LabelSet{
		seen:  make(map[string]struct{}),
		alloc: NewAllocator(),
	}
}

// Add returns label, or a suffixed variant if label was already used.
func (s *LabelSet) Add(label string) string {
	if _, ok := s.seen[label]; !ok {
		s.seen[label] = struct{}{}
		s.alloc.Reserve(label)
		return label
	}
	for {
		candidate := s.alloc.Next(label)
		if _, ok := s.seen[candidate]; ok {
			continue
		}
		s.seen[candidate] = struct{}{}
		return candidate
	}
}

// Anon returns a fresh name of the form prefix_N that does not clash with
// any label in the set.
func (s *LabelSet) Anon(prefix string) string {
	for {
		candidate := s.alloc.Next(prefix)
		if _, ok := s.seen[candidate]; ok {
			continue
		}
		s.seen[candidate] = struct{}{}
		return candidate
	}
}

// Contains reports whether label is in the set.
func (s *LabelSet) Contains(label string) bool {
	_, ok := s.seen[label]
	return ok
}

// LengthError is returned when a name cannot be shortened to fit max.
type LengthError struct {
	Name string
	Max  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("identifier %q cannot be truncated to %d characters", e.Name, e.Max)
}
