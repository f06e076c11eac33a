package compiler

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

// Param is one distinct bind parameter of a compiled statement.
type Param struct {
	Name     string
	Value    any
	Type     sqltypes.Type
	Required bool
}

// ResultColumn describes one output column of a statement.
type ResultColumn struct {
	// Name is the output label.
	Name string
	// Column is the base column the output resolves to, or nil for a
	// computed expression.
	Column *core.Column
	Type   sqltypes.Type
}

// Compiled is the output of one compile.
type Compiled struct {
	SQL   string
	Style core.ParamStyle

	// Params holds each distinct parameter in first-use order.
	Params []Param
	// Positional holds parameter names in placeholder order for
	// positional styles. qmark and format repeat a name at every use;
	// numeric and dollar list each name once, at its position.
	Positional []string

	ResultMap []ResultColumn
	Warnings  []string
}

// Param returns the named parameter.
func (c *Compiled) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// NamedArgs returns the parameter values by name. overrides replace
// compiled values; every required parameter must be overridden.
func (c *Compiled) NamedArgs(overrides map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		v, err := c.value(p, overrides)
		if err != nil {
			return nil, err
		}
		out[p.Name] = v
	}
	return out, nil
}

// Args returns the parameter values in placeholder order for positional
// styles, or in Params order for named styles.
func (c *Compiled) Args(overrides map[string]any) ([]any, error) {
	names := c.Positional
	if !c.Style.Positional() {
		names = make([]string, len(c.Params))
		for i, p := range c.Params {
			names[i] = p.Name
		}
	}

	out := make([]any, 0, len(names))
	for _, name := range names {
		p, ok := c.Param(name)
		if !ok {
			return nil, argumentErrorf("unknown parameter %q", name)
		}
		v, err := c.value(p, overrides)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Compiled) value(p Param, overrides map[string]any) (any, error) {
	v, ok := overrides[p.Name]
	if !ok {
		if p.Required {
			return nil, argumentErrorf("a value is required for bind parameter %q", p.Name)
		}
		v = p.Value
	}
	if v == nil {
		return nil, nil
	}
	if bp, ok := p.Type.(sqltypes.BindProcessor); ok {
		out, err := bp.BindValue(v)
		if err != nil {
			return nil, &ArgumentError{Msg: "bind parameter " + p.Name + ": " + err.Error()}
		}
		return out, nil
	}
	return v, nil
}
