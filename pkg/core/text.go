package core

import "strings"

// TextClause is a literal SQL fragment with :name bind placeholders.
//
// A colon preceded by a word character, another colon or a backslash does
// not start a placeholder, and neither does a name followed by a colon, so
// casts like x::int pass through. A backslash-escaped colon (\:) renders as
// a plain colon.
type TextClause struct {
	SQL   string
	Binds map[string]*BindParam

	parts []TextPart
}

func (*TextClause) node()     {}
func (*TextClause) exprNode() {}
func (*TextClause) stmtNode() {}

// TextPart is a run of literal SQL, or a bind placeholder when Bind is set.
type TextPart struct {
	SQL  string
	Bind string
}

// Text parses sql into a TextClause. binds supply values and types for the
// placeholders they name; other placeholders become required binds.
func Text(sql string, binds ...*BindParam) *TextClause {
	t := &TextClause{SQL: sql, Binds: make(map[string]*BindParam, len(binds))}
	for _, b := range binds {
		t.Binds[b.Key] = b
	}
	t.parts = parseText(sql)
	return t
}

// Parts returns the parsed fragments in order.
func (t *TextClause) Parts() []TextPart {
	if t.parts == nil && t.SQL != "" {
		return parseText(t.SQL)
	}
	return t.parts
}

// BindFor returns the bind for a placeholder name.
func (t *TextClause) BindFor(name string) *BindParam {
	if b, ok := t.Binds[name]; ok {
		return b
	}
	return &BindParam{Key: name, Required: true}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func parseText(sql string) []TextPart {
	var parts []TextPart
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, TextPart{SQL: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c == '\\' && i+1 < len(sql) && sql[i+1] == ':' {
			lit.WriteByte(':')
			i++
			continue
		}
		if c != ':' || i+1 >= len(sql) || !isWordByte(sql[i+1]) {
			lit.WriteByte(c)
			continue
		}
		if i > 0 && (isWordByte(sql[i-1]) || sql[i-1] == ':') {
			lit.WriteByte(c)
			continue
		}
		end := i + 1
		for end < len(sql) && isWordByte(sql[end]) {
			end++
		}
		if end < len(sql) && sql[end] == ':' {
			lit.WriteString(sql[i:end])
			i = end - 1
			continue
		}
		flush()
		parts = append(parts, TextPart{Bind: sql[i+1 : end]})
		i = end - 1
	}
	flush()
	return parts
}
