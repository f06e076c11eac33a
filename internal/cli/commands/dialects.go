package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
)

// DialectInfo is the printed description of one dialect.
type DialectInfo struct {
	Name                string   `json:"name" yaml:"name"`
	ParamStyle          string   `json:"param_style" yaml:"param_style"`
	Quote               string   `json:"quote" yaml:"quote"`
	Normalization       string   `json:"normalization" yaml:"normalization"`
	MaxIdentifierLength int      `json:"max_identifier_length" yaml:"max_identifier_length"`
	DefaultSchema       string   `json:"default_schema,omitempty" yaml:"default_schema,omitempty"`
	Features            []string `json:"features" yaml:"features"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects [name...]",
		Short: "List registered dialects",
		Long: `List the registered SQL dialects with their paramstyle, identifier
quoting, normalization and capabilities.

Without arguments every dialect is listed. Overrides from the configuration
(param_style, max_identifier_length, right_nested_joins) apply to the
configured dialect only.`,
		Example: `  # List all dialects
  sqlcompile dialects

  # Show postgres with the @name paramstyle as YAML
  sqlcompile dialects postgres --param-style at -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			names := args
			if len(names) == 0 {
				names = dialect.List()
			}

			infos := make([]DialectInfo, 0, len(names))
			for _, name := range names {
				d, err := dialect.Lookup(name)
				if err != nil {
					return err
				}
				if d.Name == cfg.DialectName {
					if d, err = cfg.Dialect(); err != nil {
						return err
					}
				}
				infos = append(infos, describe(d))
			}

			rows := make([][]string, len(infos))
			for i, in := range infos {
				rows[i] = []string{
					in.Name,
					in.ParamStyle,
					in.Quote,
					in.Normalization,
					maxLength(in.MaxIdentifierLength),
					strings.Join(in.Features, ", "),
				}
			}
			return render(cmd.OutOrStdout(), cfg.Output, infos,
				[]string{"Dialect", "Params", "Quote", "Case", "Max Ident", "Features"}, rows)
		},
	}
}

func describe(d *dialect.Dialect) DialectInfo {
	return DialectInfo{
		Name:                d.Name,
		ParamStyle:          d.ParamStyle.String(),
		Quote:               d.Identifiers.Quote + d.Identifiers.QuoteEnd,
		Normalization:       d.Identifiers.Normalization.String(),
		MaxIdentifierLength: d.MaxIdentifierLength,
		DefaultSchema:       d.DefaultSchema,
		Features:            features(d.Features),
	}
}

func features(f core.Features) []string {
	flags := []struct {
		on   bool
		name string
	}{
		{f.RightNestedJoins, "nested_joins"},
		{f.Returning, "returning"},
		{f.NativeBoolean, "boolean"},
		{f.DistinctOn, "distinct_on"},
		{f.ForUpdate, "for_update"},
		{f.ForShare, "for_share"},
		{f.SkipLocked, "skip_locked"},
		{f.OnConflict, "on_conflict"},
		{f.OnDuplicateKey, "on_duplicate_key"},
		{f.AlterConstraints, "alter_constraints"},
		{f.Sequences, "sequences"},
		{f.IfExists, "if_exists"},
		{f.DropCascade, "drop_cascade"},
	}
	out := []string{}
	for _, fl := range flags {
		if fl.on {
			out = append(out, fl.name)
		}
	}
	return out
}

func maxLength(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
