package ident

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/naming"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func testDialect(norm dialect.NormalizationStrategy, maxLen int) *dialect.Dialect {
	return dialect.NewDialect("ident_test").
		Identifiers(`"`, `"`, `""`, norm).
		MaxIdentifierLength(maxLen).
		WithReservedWords("select", "user", "order").
		Build()
}

func TestRequiresQuotes(t *testing.T) {
	tests := []struct {
		name string
		norm dialect.NormalizationStrategy
		in   string
		want bool
	}{
		{"plain", dialect.NormLowercase, "users", false},
		{"underscore and digits", dialect.NormLowercase, "order_items2", false},
		{"dollar inside", dialect.NormLowercase, "a$b", false},
		{"empty", dialect.NormLowercase, "", true},
		{"reserved", dialect.NormLowercase, "user", true},
		{"reserved any case", dialect.NormCaseInsensitive, "Select", true},
		{"space", dialect.NormLowercase, "first name", true},
		{"dash", dialect.NormLowercase, "first-name", true},
		{"leading digit", dialect.NormLowercase, "1st", true},
		{"leading dollar", dialect.NormLowercase, "$x", true},
		{"uppercase under lowercase", dialect.NormLowercase, "Users", true},
		{"uppercase under uppercase", dialect.NormUppercase, "USERS", true},
		{"uppercase under case-insensitive", dialect.NormCaseInsensitive, "Users", false},
		{"non-ascii", dialect.NormLowercase, "naïve", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(testDialect(tt.norm, 0))
			assert.Equal(t, tt.want, p.RequiresQuotes(tt.in))
		})
	}
}

func TestQuote(t *testing.T) {
	p := New(testDialect(dialect.NormLowercase, 0))

	assert.Equal(t, "users", p.Quote("users"))
	assert.Equal(t, `"order"`, p.Quote("order"))
	assert.Equal(t, `"a""b"`, p.Quote(`a"b`))
	// cached result is identical
	assert.Equal(t, `"a""b"`, p.Quote(`a"b`))
}

func TestForSharesPreparer(t *testing.T) {
	d := dialect.NewDialect("ident_shared").Build()
	dialect.Register(d)
	assert.Same(t, For(d), For(d))
	assert.Same(t, d, For(d).Dialect())

	derived := d.Derive(func(cfg *core.DialectConfig) { cfg.MaxIdentifierLength = 10 })
	assert.NotSame(t, For(derived), For(derived), "derived dialects are not cached")
	assert.Same(t, derived, For(derived).Dialect())

	unregistered := testDialect(dialect.NormLowercase, 0)
	assert.NotSame(t, For(unregistered), For(unregistered))
}

func TestFormat(t *testing.T) {
	p := New(testDialect(dialect.NormLowercase, 0))

	tbl := core.NewTable("user", core.NewColumn("Name", sqltypes.Text{}))
	tbl.Schema = "crm"
	got, err := p.FormatTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, `crm."user"`, got)

	got, err = p.FormatColumn(tbl.C("Name"), `"user"`)
	require.NoError(t, err)
	assert.Equal(t, `"user"."Name"`, got)

	ix := core.NewIndex("ix_user_name", tbl.C("Name"))
	tbl.AddIndex(ix)
	got, err = p.FormatIndex(ix)
	require.NoError(t, err)
	assert.Equal(t, "crm.ix_user_name", got)

	got, err = p.FormatSequence(&core.Sequence{Name: "user_id_seq"})
	require.NoError(t, err)
	assert.Equal(t, "user_id_seq", got)

	got, err = p.FormatLabel("user_name")
	require.NoError(t, err)
	assert.Equal(t, "user_name", got)
}

func TestTruncation(t *testing.T) {
	p := New(testDialect(dialect.NormLowercase, 30))
	long := "a_really_long_constraint_name_for_the_orders_table"

	got, err := p.Name(KindConstraint, long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 30)
	assert.True(t, strings.HasPrefix(got, "a_really"))
	assert.True(t, strings.HasSuffix(got, "table"))

	again, err := p.Name(KindConstraint, long)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	short, err := p.Name(KindConstraint, "pk_orders")
	require.NoError(t, err)
	assert.Equal(t, "pk_orders", short)
}

func TestTruncationLimitTooSmall(t *testing.T) {
	p := New(testDialect(dialect.NormLowercase, naming.MinTruncateLength-1))

	_, err := p.Name(KindTable, strings.Repeat("x", 40))
	var ierr *IdentifierError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, KindTable, ierr.Kind)
}

func TestScopeDetectsNoCollisionsForDistinctNames(t *testing.T) {
	s := New(testDialect(dialect.NormLowercase, 20)).Scope()

	seen := make(map[string]string)
	for i := 0; i < 5000; i++ {
		name := fmt.Sprintf("very_long_label_number_%05d_suffix", i)
		got, err := s.FormatLabel(name)
		require.NoError(t, err)
		if prev, ok := seen[got]; ok {
			t.Fatalf("%q and %q both truncate to %q", prev, name, got)
		}
		seen[got] = name
	}
}

func TestScopeCollision(t *testing.T) {
	s := New(testDialect(dialect.NormLowercase, 20)).Scope()
	name := "some_quite_long_identifier_name"

	first, err := s.Name(KindLabel, name)
	require.NoError(t, err)
	truncated := first

	// Force a clash by claiming the same truncated spelling for another name.
	err = s.claim(KindLabel, "another_name", truncated)
	var ierr *IdentifierError
	require.ErrorAs(t, err, &ierr)
	assert.Contains(t, err.Error(), name)

	// Re-issuing the same name is not a collision.
	_, err = s.Name(KindLabel, name)
	assert.NoError(t, err)
}

func TestConcurrentQuote(t *testing.T) {
	p := For(testDialect(dialect.NormLowercase, 0))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Equal(t, `"Mixed"`, p.Quote("Mixed"))
				assert.True(t, p.RequiresQuotes("user"))
			}
		}()
	}
	wg.Wait()
}
