// Package ident renders identifiers for a dialect: it decides when a name
// needs quoting, escapes it, qualifies it with a schema and shortens it to
// the dialect's length limit.
//
// A Preparer is safe for concurrent use and is shared per dialect through
// For. Collision detection between truncated names needs per-compile state,
// which lives in a Scope.
package ident

import (
	"fmt"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/naming"
)

// Kind is the category of a schema name.
type Kind int

const (
	KindTable Kind = iota
	KindColumn
	KindLabel
	KindAlias
	KindIndex
	KindConstraint
	KindSequence
	KindSchema
)

var kindNames = [...]string{"table", "column", "label", "alias", "index", "constraint", "sequence", "schema"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IdentifierError reports a name that cannot be rendered within the
// dialect's limits.
type IdentifierError struct {
	Kind   Kind
	Name   string
	Reason string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s name %q: %s", e.Kind, e.Name, e.Reason)
}

// Preparer quotes and truncates identifiers for one dialect.
type Preparer struct {
	d *dialect.Dialect

	initOnce sync.Once
	reserved map[string]struct{}
	legal    [128]bool
}

// preparers holds one preparer per registered dialect, so the cache is
// bounded by the registry.
var preparers sync.Map // *dialect.Dialect -> *Preparer

// For returns the shared preparer of a registered dialect. Dialects outside
// the registry, such as ones built with Derive, get a fresh preparer.
func For(d *dialect.Dialect) *Preparer {
	if p, ok := preparers.Load(d); ok {
		return p.(*Preparer)
	}
	if r, ok := dialect.Get(d.Name); !ok || r != d {
		return New(d)
	}
	p, _ := preparers.LoadOrStore(d, New(d))
	return p.(*Preparer)
}

// New creates a preparer.
func New(d *dialect.Dialect) *Preparer {
	return &Preparer{d: d}
}

// Dialect returns the dialect the preparer renders for.
func (p *Preparer) Dialect() *dialect.Dialect {
	return p.d
}

func (p *Preparer) init() {
	p.initOnce.Do(func() {
		words := p.d.ReservedWords()
		p.reserved = make(map[string]struct{}, len(words))
		for _, w := range words {
			p.reserved[w] = struct{}{}
		}
		for c := 'a'; c <= 'z'; c++ {
			p.legal[c] = true
			p.legal[c-'a'+'A'] = true
		}
		for c := '0'; c <= '9'; c++ {
			p.legal[c] = true
		}
		p.legal['_'] = true
		p.legal['$'] = true
	})
}

// RequiresQuotes reports whether name must be quoted to be read back
// unchanged.
func (p *Preparer) RequiresQuotes(name string) bool {
	p.init()
	if name == "" {
		return true
	}
	if _, ok := p.reserved[strings.ToLower(name)]; ok {
		return true
	}
	if c := name[0]; (c >= '0' && c <= '9') || c == '$' {
		return true
	}
	caseFolds := p.d.Identifiers.Normalization != core.NormCaseInsensitive
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 128 || !p.legal[c] {
			return true
		}
		if caseFolds && c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}

// Quote renders name, quoting and escaping it when required.
func (p *Preparer) Quote(name string) string {
	if p.RequiresQuotes(name) {
		return p.d.QuoteIdentifier(name)
	}
	return name
}

// Truncate shortens name to the dialect's identifier limit.
func (p *Preparer) Truncate(kind Kind, name string) (string, error) {
	out, err := naming.Truncate(name, p.d.MaxIdentifierLength)
	if err != nil {
		return "", &IdentifierError{
			Kind:   kind,
			Name:   name,
			Reason: fmt.Sprintf("limit %d is too small to truncate", p.d.MaxIdentifierLength),
		}
	}
	return out, nil
}

// Name truncates and quotes a single name.
func (p *Preparer) Name(kind Kind, name string) (string, error) {
	return p.name(kind, name, nil)
}

// FormatTable renders a table name with its schema.
func (p *Preparer) FormatTable(t *core.Table) (string, error) {
	return p.formatTable(t, nil)
}

// FormatColumn renders a column, qualified by an already rendered owner
// name when qualifier is non-empty.
func (p *Preparer) FormatColumn(c *core.Column, qualifier string) (string, error) {
	return p.formatColumn(c, qualifier, nil)
}

// FormatSequence renders a sequence name with its schema.
func (p *Preparer) FormatSequence(s *core.Sequence) (string, error) {
	return p.qualified(KindSequence, s.Schema, s.Name, nil)
}

// FormatConstraint renders a constraint name.
func (p *Preparer) FormatConstraint(c core.Constraint) (string, error) {
	return p.name(KindConstraint, c.ConstraintName(), nil)
}

// FormatIndex renders an index name. Indexes live in their table's
// schema.
func (p *Preparer) FormatIndex(ix *core.Index) (string, error) {
	return p.formatIndex(ix, nil)
}

// FormatLabel renders a column label.
func (p *Preparer) FormatLabel(name string) (string, error) {
	return p.name(KindLabel, name, nil)
}

func (p *Preparer) name(kind Kind, name string, s *Scope) (string, error) {
	out, err := p.Truncate(kind, name)
	if err != nil {
		return "", err
	}
	if s != nil && out != name {
		if err := s.claim(kind, name, out); err != nil {
			return "", err
		}
	}
	return p.Quote(out), nil
}

func (p *Preparer) qualified(kind Kind, schema, name string, s *Scope) (string, error) {
	out, err := p.name(kind, name, s)
	if err != nil {
		return "", err
	}
	if schema == "" {
		return out, nil
	}
	sch, err := p.name(KindSchema, schema, s)
	if err != nil {
		return "", err
	}
	return sch + "." + out, nil
}

func (p *Preparer) formatTable(t *core.Table, s *Scope) (string, error) {
	return p.qualified(KindTable, t.Schema, t.Name, s)
}

func (p *Preparer) formatColumn(c *core.Column, qualifier string, s *Scope) (string, error) {
	out, err := p.name(KindColumn, c.Name, s)
	if err != nil {
		return "", err
	}
	if qualifier == "" {
		return out, nil
	}
	return qualifier + "." + out, nil
}

func (p *Preparer) formatIndex(ix *core.Index, s *Scope) (string, error) {
	schema := ""
	if ix.Table != nil {
		schema = ix.Table.Schema
	}
	return p.qualified(KindIndex, schema, ix.Name, s)
}
