// Package joins rewrites right-nested joins for dialects that cannot parse
// them.
//
// A join whose right side is itself a join, a JOIN (b JOIN c), becomes
// a JOIN (SELECT ... FROM b JOIN c) AS anon_N. Columns of the wrapped side
// are reached through the anonymous subquery afterwards; the returned
// Substitution tells the compiler which column replaces which.
package joins

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// Substitution maps columns of the input tree to the columns that stand
// for them in the rewritten tree.
type Substitution map[*core.Column]*core.Column

// Apply replaces substituted columns in e. Subqueries are not entered: a
// nested statement resolves the columns it correlates when it is rendered.
func (s Substitution) Apply(e core.Expr) core.Expr {
	return core.ReplaceColumns(e, s)
}

// ApplyAll is Apply over a list.
func (s Substitution) ApplyAll(es []core.Expr) []core.Expr {
	if len(s) == 0 {
		return es
	}
	out := make([]core.Expr, len(es))
	for i, e := range es {
		out[i] = s.Apply(e)
	}
	return out
}

// Lookup returns the replacement for c, or c itself.
func (s Substitution) Lookup(c *core.Column) *core.Column {
	if r, ok := s[c]; ok {
		return r
	}
	return c
}

// Rewrite returns from with every right-nested join wrapped in an anonymous
// subquery. The input is not modified; unchanged subtrees are shared.
func Rewrite(from core.Selectable) (core.Selectable, Substitution) {
	sub := make(Substitution)
	return rewrite(from, sub), sub
}

func rewrite(from core.Selectable, sub Substitution) core.Selectable {
	j, ok := from.(*core.Join)
	if !ok {
		return from
	}

	left := rewrite(j.Left, sub)
	right := rewrite(j.Right, sub)

	if nested, ok := right.(*core.Join); ok {
		right = wrap(nested, sub)
	}

	if left == j.Left && right == j.Right {
		return j
	}
	return &core.Join{
		Left:  left,
		Right: right,
		On:    sub.Apply(j.On),
		Type:  j.Type,
	}
}

// wrap turns a join into SELECT <all columns, labeled> FROM join and
// records where each column went.
func wrap(j *core.Join, sub Substitution) *core.Alias {
	cols := j.Exported()
	exprs := make([]core.Expr, len(cols))
	for i, c := range cols {
		exprs[i] = c
	}
	sel := &core.Select{Columns: exprs, From: []core.Selectable{j}, UseLabels: true}
	alias := core.NewAlias(sel, "")
	proxies := alias.Exported()

	step := make(map[*core.Column]*core.Column, len(cols))
	for i, c := range cols {
		step[c] = proxies[i]
	}

	// Columns already substituted by an inner rewrite move on to the new
	// proxies; the intermediate columns never appear in the input tree.
	intermediate := make(map[*core.Column]bool)
	for orig, cur := range sub {
		if next, ok := step[cur]; ok {
			sub[orig] = next
			intermediate[cur] = true
		}
	}
	for c, p := range step {
		if !intermediate[c] {
			sub[c] = p
		}
	}
	return alias
}
