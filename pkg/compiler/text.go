package compiler

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// text renders a SQL fragment, replacing :name placeholders with the
// dialect's parameter markers.
func (s *state) text(t *core.TextClause) {
	for _, part := range t.Parts() {
		if part.Bind == "" {
			s.write(part.SQL)
			continue
		}
		s.formatBind(t.BindFor(part.Bind), part.Bind)
	}
}
