package compiler

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

// expr renders e inside an operator binding with strength parent.
func (s *state) expr(e core.Expr, parent int) {
	if s.err != nil {
		return
	}
	if s.precedence(e) < parent {
		s.write("(")
		s.formatExpr(e)
		s.write(")")
		return
	}
	s.formatExpr(e)
}

func (s *state) formatExpr(e core.Expr) {
	switch e := e.(type) {
	case *core.Column:
		s.write(s.columnName(s.resolveColumn(e), true))
	case *core.BindParam:
		s.formatBind(e, "")
	case *core.Label:
		s.formatExpr(e.Expr)
	case *core.BinaryExpr:
		s.formatBinaryExpr(e)
	case *core.BooleanClause:
		s.formatBooleanClause(e)
	case *core.UnaryExpr:
		s.formatUnaryExpr(e)
	case *core.IsNull:
		s.expr(e.Expr, dialect.PrecedenceComparison+1)
		if e.Not {
			s.write(" IS NOT NULL")
		} else {
			s.write(" IS NULL")
		}
	case *core.FuncCall:
		s.formatFuncCall(e)
	case *core.Cast:
		s.formatCast(e)
	case *core.Case:
		s.formatCase(e)
	case *core.In:
		s.formatIn(e)
	case *core.Between:
		s.formatBetween(e)
	case *core.Exists:
		if e.Not {
			s.write("NOT ")
		}
		s.write("EXISTS ")
		s.subquery(e.Query)
	case *core.ScalarSubquery:
		s.subquery(e.Query)
	case *core.Ordering:
		s.formatOrdering(e)
	case *core.NameRef:
		s.formatNameRef(e)
	case *core.Star:
		if e.Table != nil {
			s.write(s.ref(e.Table) + ".*")
		} else {
			s.write("*")
		}
	case core.Null:
		s.write("NULL")
	case core.Boolean:
		s.formatBoolean(e.Value)
	case *core.Raw:
		s.write(e.SQL)
	case *core.Excluded:
		s.write(s.renderer.ExcludedColumn(s.columnName(e.Column, false)))
	case *core.TextClause:
		s.text(e)
	case nil:
		s.failf("missing expression")
	default:
		s.failf("cannot compile expression %T", e)
	}
}

// precedence returns how tightly e binds when rendered.
func (s *state) precedence(e core.Expr) int {
	switch e := e.(type) {
	case *core.BinaryExpr:
		return s.dialect.Precedence(e.Op)
	case *core.BooleanClause:
		live := liveClauses(e)
		if len(live) == 1 {
			return s.precedence(live[0])
		}
		if e.Op == token.OR {
			return dialect.PrecedenceOr
		}
		return dialect.PrecedenceAnd
	case *core.UnaryExpr:
		if e.Op == token.NOT {
			return dialect.PrecedenceNot
		}
		return dialect.PrecedenceUnary
	case *core.Exists:
		if e.Not {
			return dialect.PrecedenceNot
		}
	case *core.IsNull, *core.In, *core.Between:
		return dialect.PrecedenceComparison
	case *core.Label:
		return s.precedence(e.Expr)
	case *core.TextClause, *core.Raw:
		// Fragments are opaque; parenthesize inside any operator.
		return dialect.PrecedenceNone
	}
	return dialect.PrecedenceAtom
}

func associative(op token.TokenType) bool {
	switch op {
	case token.AND, token.OR, token.PLUS, token.STAR, token.DPIPE:
		return true
	}
	return false
}

func (s *state) formatBinaryExpr(e *core.BinaryExpr) {
	if !s.dialect.HasOperator(e.Op) {
		s.failf("operator %s is not supported by %s", e.Op, s.dialect.Name)
		return
	}
	p := s.dialect.Precedence(e.Op)
	s.expr(e.Left, p)
	s.space()
	s.kw(e.Op)
	s.space()
	right := p + 1
	if associative(e.Op) {
		right = p
	}
	s.expr(e.Right, right)
}

// liveClauses drops nested clauses that render as nothing.
func liveClauses(b *core.BooleanClause) []core.Expr {
	out := make([]core.Expr, 0, len(b.Clauses))
	for _, c := range b.Clauses {
		if nested, ok := c.(*core.BooleanClause); ok && nested.Empty() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *state) formatBooleanClause(b *core.BooleanClause) {
	live := liveClauses(b)
	if len(live) == 1 {
		s.formatExpr(live[0])
		return
	}
	p := dialect.PrecedenceAnd
	if b.Op == token.OR {
		p = dialect.PrecedenceOr
	}
	s.formatList(len(live), func(i int) {
		s.expr(live[i], p)
	}, " "+b.Op.String()+" ")
}

func (s *state) formatUnaryExpr(e *core.UnaryExpr) {
	if e.Op == token.NOT {
		s.kw(token.NOT)
		s.space()
		s.expr(e.Expr, dialect.PrecedenceNot)
		return
	}
	s.write(e.Op.String())
	s.expr(e.Expr, dialect.PrecedenceUnary)
}

func (s *state) formatFuncCall(f *core.FuncCall) {
	s.write(s.dialect.FunctionName(f.Name))
	s.write("(")
	if f.Distinct {
		s.write("DISTINCT ")
	}
	s.formatList(len(f.Args), func(i int) {
		s.expr(f.Args[i], dialect.PrecedenceNone)
	}, ", ")
	s.write(")")
}

func (s *state) formatCast(c *core.Cast) {
	typ, err := s.renderer.TypeName(c.Type)
	if err != nil {
		s.fail(&CompileError{Msg: "CAST", Err: err})
		return
	}
	s.write("CAST(")
	s.expr(c.Expr, dialect.PrecedenceNone)
	s.write(" AS " + typ + ")")
}

func (s *state) formatCase(c *core.Case) {
	s.write("CASE")
	if c.Operand != nil {
		s.space()
		s.expr(c.Operand, dialect.PrecedenceNone)
	}
	for _, w := range c.Whens {
		s.write(" WHEN ")
		s.expr(w.Cond, dialect.PrecedenceNone)
		s.write(" THEN ")
		s.expr(w.Result, dialect.PrecedenceNone)
	}
	if c.Else != nil {
		s.write(" ELSE ")
		s.expr(c.Else, dialect.PrecedenceNone)
	}
	s.write(" END")
}

func (s *state) formatIn(in *core.In) {
	if in.Query == nil && len(in.Values) == 0 {
		// An empty list matches nothing; negated, everything.
		if in.Not {
			s.write("1 = 1")
		} else {
			s.write("1 != 1")
		}
		return
	}
	s.expr(in.Expr, dialect.PrecedenceComparison+1)
	if in.Not {
		s.write(" NOT IN ")
	} else {
		s.write(" IN ")
	}
	if in.Query != nil {
		s.subquery(in.Query)
		return
	}
	s.write("(")
	s.formatList(len(in.Values), func(i int) {
		s.valueExpr(in.Values[i], in.Expr)
	}, ", ")
	s.write(")")
}

func (s *state) formatBetween(b *core.Between) {
	s.expr(b.Expr, dialect.PrecedenceComparison+1)
	if b.Not {
		s.write(" NOT BETWEEN ")
	} else {
		s.write(" BETWEEN ")
	}
	s.valueExpr(b.Low, b.Expr)
	s.write(" AND ")
	s.valueExpr(b.High, b.Expr)
}

// valueExpr renders a value compared against target; keyless binds are
// named after target's column.
func (s *state) valueExpr(v core.Expr, target core.Expr) {
	if p, ok := v.(*core.BindParam); ok {
		fallback := ""
		if c, ok := target.(*core.Column); ok {
			fallback = c.Name
		}
		s.formatBind(p, fallback)
		return
	}
	s.expr(v, dialect.PrecedenceComparison+1)
}

func (s *state) formatOrdering(o *core.Ordering) {
	s.expr(o.Expr, dialect.PrecedenceNone)
	if o.Desc {
		s.write(" DESC")
	} else {
		s.write(" ASC")
	}
	switch o.Nulls {
	case core.NullsFirst:
		s.write(" NULLS FIRST")
	case core.NullsLast:
		s.write(" NULLS LAST")
	}
}

func (s *state) formatBoolean(v bool) {
	switch {
	case s.dialect.Features.NativeBoolean && v:
		s.write("TRUE")
	case s.dialect.Features.NativeBoolean:
		s.write("FALSE")
	case v:
		s.write("1")
	default:
		s.write("0")
	}
}

func (s *state) formatBind(p *core.BindParam, fallback string) {
	if s.err != nil {
		return
	}
	out, err := s.binds.bind(p, fallback, s.inline)
	if err != nil {
		s.fail(err)
		return
	}
	s.write(out)
}

// formatNameRef resolves a name against the innermost statement's output
// labels, then its FROM columns.
func (s *state) formatNameRef(ref *core.NameRef) {
	sc := s.current()
	if sc != nil {
		for _, l := range sc.labels {
			if l.Name == ref.Name {
				s.write(s.name(s.names.FormatLabel(l.Name)))
				return
			}
		}
		for _, f := range sc.rendered {
			for _, leaf := range core.FromLeaves(f) {
				if c := leaf.C(ref.Name); c != nil {
					s.write(s.columnName(c, true))
					return
				}
			}
		}
	}
	if s.c.opts.StrictNames {
		s.failf("cannot resolve name %q", ref.Name)
		return
	}
	s.warn("cannot resolve name %q; rendering it verbatim", ref.Name)
	s.write(ref.Name)
}
