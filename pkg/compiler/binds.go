package compiler

import (
	"reflect"
	"strings"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/naming"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

// bindCollector names bind parameters and records them in placeholder
// order.
type bindCollector struct {
	dialect *dialect.Dialect
	literal bool

	params []Param
	index  map[string]int
	// generated holds the names issued to unique binds.
	generated map[string]bool
	unique    map[*core.BindParam]string
	alloc     *naming.Allocator

	positional []string
	positions  map[string]int
}

func newBindCollector(d *dialect.Dialect, literal bool) *bindCollector {
	return &bindCollector{
		dialect:   d,
		literal:   literal,
		index:     make(map[string]int),
		generated: make(map[string]bool),
		unique:    make(map[*core.BindParam]string),
		alloc:     naming.NewAllocator(),
		positions: make(map[string]int),
	}
}

// bind returns the placeholder for p. fallback names a bind with an empty
// key, normally after the column it is assigned to.
func (b *bindCollector) bind(p *core.BindParam, fallback string, forceLiteral bool) (string, error) {
	if b.literal || forceLiteral {
		return b.literalValue(p)
	}

	key := p.Key
	if key == "" {
		key = fallback
	}
	if key == "" {
		key = "param"
	}
	key = bindName(key)

	var name string
	if p.Unique {
		if n, ok := b.unique[p]; ok {
			name = n
		} else {
			name = b.alloc.Next(key)
			b.unique[p] = name
			b.generated[name] = true
			b.add(name, p)
		}
	} else {
		if b.generated[key] {
			return "", compileErrorf("bind parameter %q conflicts with a generated parameter name", key)
		}
		if i, ok := b.index[key]; ok {
			prev := b.params[i]
			if prev.Required != p.Required || !reflect.DeepEqual(prev.Value, p.Value) {
				return "", compileErrorf("bind parameter %q is used with different values", key)
			}
		} else {
			b.alloc.Reserve(key)
			b.add(key, p)
		}
		name = key
	}

	return b.placeholder(name), nil
}

func (b *bindCollector) add(name string, p *core.BindParam) {
	typ := p.Type
	if sqltypes.IsNull(typ) && p.Value != nil {
		typ = sqltypes.Infer(p.Value)
	}
	b.index[name] = len(b.params)
	b.params = append(b.params, Param{Name: name, Value: p.Value, Type: typ, Required: p.Required})
}

func (b *bindCollector) placeholder(name string) string {
	switch b.dialect.ParamStyle {
	case core.ParamNumeric, core.ParamDollar:
		pos, ok := b.positions[name]
		if !ok {
			b.positional = append(b.positional, name)
			pos = len(b.positional)
			b.positions[name] = pos
		}
		return b.dialect.FormatPlaceholder(name, pos)
	case core.ParamQmark, core.ParamFormat:
		b.positional = append(b.positional, name)
		return b.dialect.FormatPlaceholder(name, len(b.positional))
	}
	return b.dialect.FormatPlaceholder(name, 0)
}

func (b *bindCollector) literalValue(p *core.BindParam) (string, error) {
	if p.Required {
		return "", compileErrorf("bind parameter %q has no value to render inline", p.Key)
	}
	if p.Value == nil {
		return "NULL", nil
	}
	typ := p.Type
	if sqltypes.IsNull(typ) {
		typ = sqltypes.Infer(p.Value)
	}
	lp, ok := typ.(sqltypes.LiteralProcessor)
	if !ok {
		return "", compileErrorf("no literal rendering for type %s", typ.TypeName())
	}
	out, err := lp.Literal(p.Value, b.dialect.LiteralContext())
	if err != nil {
		return "", &CompileError{Msg: "rendering literal for bind parameter " + p.Key, Err: err}
	}
	return out, nil
}

// bindName turns a column name into a valid placeholder name.
func bindName(key string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return '_'
	}, key)
}
