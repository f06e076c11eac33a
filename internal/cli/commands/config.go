package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

// ResolvedConfig is the printed form of the effective configuration.
type ResolvedConfig struct {
	File                string `json:"file,omitempty" yaml:"file,omitempty"`
	Dialect             string `json:"dialect" yaml:"dialect"`
	ParamStyle          string `json:"param_style" yaml:"param_style"`
	MaxIdentifierLength int    `json:"max_identifier_length" yaml:"max_identifier_length"`
	RightNestedJoins    bool   `json:"right_nested_joins" yaml:"right_nested_joins"`
	LiteralBinds        bool   `json:"literal_binds" yaml:"literal_binds"`
	StrictNames         bool   `json:"strict_names" yaml:"strict_names"`
	LogLevel            string `json:"log_level" yaml:"log_level"`
	LogFormat           string `json:"log_format" yaml:"log_format"`
}

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after defaults, the config file, environment
variables and flags are merged, with dialect overrides applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			d, err := cfg.Dialect()
			if err != nil {
				return err
			}
			rc := ResolvedConfig{
				File:                cfg.File,
				Dialect:             d.Name,
				ParamStyle:          d.ParamStyle.String(),
				MaxIdentifierLength: d.MaxIdentifierLength,
				RightNestedJoins:    d.Features.RightNestedJoins,
				LiteralBinds:        cfg.LiteralBinds,
				StrictNames:         cfg.StrictNames,
				LogLevel:            cfg.LogLevel,
				LogFormat:           cfg.LogFormat,
			}
			rows := [][]string{
				{"file", rc.File},
				{"dialect", rc.Dialect},
				{"param_style", rc.ParamStyle},
				{"max_identifier_length", maxLength(rc.MaxIdentifierLength)},
				{"right_nested_joins", strconv.FormatBool(rc.RightNestedJoins)},
				{"literal_binds", strconv.FormatBool(rc.LiteralBinds)},
				{"strict_names", strconv.FormatBool(rc.StrictNames)},
				{"log_level", rc.LogLevel},
				{"log_format", rc.LogFormat},
			}
			return render(cmd.OutOrStdout(), cfg.Output, rc, []string{"Key", "Value"}, rows)
		},
	}
}
