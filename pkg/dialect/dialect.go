// Package dialect provides the SQL dialect descriptor consulted by the
// compiler.
//
// A Dialect is immutable once built. It combines the pure-data
// core.DialectConfig (quoting, paramstyle, feature flags) with a Renderer
// strategy that overrides individual rendering hooks. Concrete dialects are
// registered from pkg/dialects/*/ packages.
package dialect

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

// NormalizationStrategy re-exports core.NormalizationStrategy.
type NormalizationStrategy = core.NormalizationStrategy

// Normalization strategies, re-exported for dialect definitions.
const (
	NormLowercase       = core.NormLowercase
	NormUppercase       = core.NormUppercase
	NormCaseSensitive   = core.NormCaseSensitive
	NormCaseInsensitive = core.NormCaseInsensitive
)

// Dialect is the capability table for one SQL dialect.
type Dialect struct {
	core.DialectConfig

	renderer      Renderer
	reservedWords map[string]struct{}
	joinTypes     map[core.JoinType]JoinTypeDef
	precedence    map[token.TokenType]int
	functions     map[string]string
}

// Config returns a copy of the dialect's static configuration.
func (d *Dialect) Config() *core.DialectConfig {
	cfg := d.DialectConfig
	return &cfg
}

// Renderer returns the dialect's rendering hooks.
func (d *Dialect) Renderer() Renderer {
	return d.renderer
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase:
		return strings.ToLower(name)
	case core.NormCaseInsensitive:
		// A Caser keeps state, so each call gets its own.
		return cases.Fold().String(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsReservedWord returns true if the word must be quoted as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// ReservedWords returns the reserved words, sorted.
func (d *Dialect) ReservedWords() []string {
	words := make([]string, 0, len(d.reservedWords))
	for w := range d.reservedWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// QuoteIdentifier wraps name in the dialect's quote characters, escaping
// embedded end quotes.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// FormatPlaceholder renders a bind parameter. position is 1-based and is
// used by the numeric and dollar styles.
func (d *Dialect) FormatPlaceholder(name string, position int) string {
	switch d.ParamStyle {
	case core.ParamPyformat:
		return "%(" + name + ")s"
	case core.ParamQmark:
		return "?"
	case core.ParamNumeric:
		return ":" + strconv.Itoa(position)
	case core.ParamFormat:
		return "%s"
	case core.ParamDollar:
		return "$" + strconv.Itoa(position)
	case core.ParamAt:
		return "@" + name
	default:
		return ":" + name
	}
}

// JoinKeyword returns the keyword(s) for a join type, and false if the
// dialect does not support it.
func (d *Dialect) JoinKeyword(t core.JoinType) (string, bool) {
	def, ok := d.joinTypes[t]
	return def.Keyword, ok
}

// Precedence returns the binding strength of an operator; unknown
// operators bind like comparisons.
func (d *Dialect) Precedence(op token.TokenType) int {
	if p, ok := d.precedence[op]; ok {
		return p
	}
	return PrecedenceComparison
}

// HasOperator reports whether op can be rendered. Builtin operators are
// always available; registered ones only where the dialect wires them.
func (d *Dialect) HasOperator(op token.TokenType) bool {
	if !token.IsDynamic(op) {
		return true
	}
	_, ok := d.precedence[op]
	return ok
}

// FunctionName maps a function name to the dialect's spelling.
func (d *Dialect) FunctionName(name string) string {
	if to, ok := d.functions[strings.ToLower(name)]; ok {
		return to
	}
	return name
}

// LiteralContext returns the traits literal processors need.
func (d *Dialect) LiteralContext() sqltypes.LiteralContext {
	return sqltypes.LiteralContext{
		BackslashEscapes: d.Features.BackslashEscapes,
		NativeBoolean:    d.Features.NativeBoolean,
	}
}

// Derive returns a copy of the dialect with its configuration changed by
// fn. Renderer, reserved words and operators are shared.
func (d *Dialect) Derive(fn func(cfg *core.DialectConfig)) *Dialect {
	out := *d
	fn(&out.DialectConfig)
	return &out
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI
// defaults.
func NewDialect(name string) *Builder {
	return New(&core.DialectConfig{
		Name: name,
		Identifiers: core.IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: core.NormLowercase,
		},
		ParamStyle: core.ParamNamed,
		Features: core.Features{
			RightNestedJoins:  true,
			SelectWithoutFrom: true,
		},
	})
}

// New creates a dialect builder from a DialectConfig.
// This is the preferred constructor for concrete dialects.
func New(cfg *core.DialectConfig) *Builder {
	return &Builder{
		dialect: &Dialect{
			DialectConfig: *cfg,
			reservedWords: make(map[string]struct{}),
			joinTypes:     make(map[core.JoinType]JoinTypeDef),
			precedence:    make(map[token.TokenType]int),
			functions:     make(map[string]string),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// ParamStyle sets how bind parameters are rendered.
func (b *Builder) ParamStyle(style core.ParamStyle) *Builder {
	b.dialect.ParamStyle = style
	return b
}

// MaxIdentifierLength bounds rendered identifiers.
func (b *Builder) MaxIdentifierLength(n int) *Builder {
	b.dialect.MaxIdentifierLength = n
	return b
}

// Features replaces the feature flags.
func (b *Builder) Features(f core.Features) *Builder {
	b.dialect.Features = f
	return b
}

// WithReservedWords registers words that must be quoted as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// WithRenderer sets the rendering hooks.
func (b *Builder) WithRenderer(r Renderer) *Builder {
	b.dialect.renderer = r
	return b
}

// WithJoinTypes registers supported join types.
func (b *Builder) WithJoinTypes(defs ...JoinTypeDef) *Builder {
	for _, def := range defs {
		b.dialect.joinTypes[def.Type] = def
	}
	return b
}

// WithOperators registers operator precedence.
func (b *Builder) WithOperators(defs ...OperatorDef) *Builder {
	for _, def := range defs {
		b.dialect.precedence[def.Token] = def.Precedence
	}
	return b
}

// RenameFunction renders calls to name as to.
func (b *Builder) RenameFunction(name, to string) *Builder {
	b.dialect.functions[strings.ToLower(name)] = to
	return b
}

// Build finalizes the dialect. Unset parts fall back to the ANSI toolbox:
// StandardRenderer, ANSIJoinTypes and ANSIOperators.
func (b *Builder) Build() *Dialect {
	d := b.dialect
	if d.renderer == nil {
		d.renderer = StandardRenderer{}
	}
	if len(d.joinTypes) == 0 {
		for _, def := range ANSIJoinTypes {
			d.joinTypes[def.Type] = def
		}
	}
	for _, def := range ANSIOperators {
		if _, ok := d.precedence[def.Token]; !ok {
			d.precedence[def.Token] = def.Precedence
		}
	}
	return d
}
