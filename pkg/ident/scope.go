package ident

import (
	"fmt"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
)

// Scope tracks the truncated names issued during one compile. Two different
// names that shorten to the same identifier are rejected. A Scope is not
// safe for concurrent use.
type Scope struct {
	p    *Preparer
	seen map[string]string // truncated -> original
}

// Scope starts a per-compile naming scope.
func (p *Preparer) Scope() *Scope {
	return &Scope{p: p, seen: make(map[string]string)}
}

// Preparer returns the shared preparer behind the scope.
func (s *Scope) Preparer() *Preparer {
	return s.p
}

func (s *Scope) claim(kind Kind, name, truncated string) error {
	if prev, ok := s.seen[truncated]; ok && prev != name {
		return &IdentifierError{
			Kind:   kind,
			Name:   name,
			Reason: fmt.Sprintf("truncates to %q, already used by %q", truncated, prev),
		}
	}
	s.seen[truncated] = name
	return nil
}

// Name truncates and quotes a name.
func (s *Scope) Name(kind Kind, name string) (string, error) {
	return s.p.name(kind, name, s)
}

// FormatTable renders a table name with its schema.
func (s *Scope) FormatTable(t *core.Table) (string, error) {
	return s.p.formatTable(t, s)
}

// FormatColumn renders a column with an optional rendered qualifier.
func (s *Scope) FormatColumn(c *core.Column, qualifier string) (string, error) {
	return s.p.formatColumn(c, qualifier, s)
}

// FormatSequence renders a sequence name with its schema.
func (s *Scope) FormatSequence(seq *core.Sequence) (string, error) {
	return s.p.qualified(KindSequence, seq.Schema, seq.Name, s)
}

// FormatConstraint renders a constraint name.
func (s *Scope) FormatConstraint(c core.Constraint) (string, error) {
	return s.p.name(KindConstraint, c.ConstraintName(), s)
}

// FormatIndex renders an index name.
func (s *Scope) FormatIndex(ix *core.Index) (string, error) {
	return s.p.formatIndex(ix, s)
}

// FormatLabel renders a column label.
func (s *Scope) FormatLabel(name string) (string, error) {
	return s.p.name(KindLabel, name, s)
}
