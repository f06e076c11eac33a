// Package cli provides the command-line interface for sqlcompile.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlcompiler/internal/cli/commands"
	"github.com/leapstack-labs/sqlcompiler/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlcompile",
		Short: "Inspect SQL dialects and identifier rendering",
		Long: `sqlcompile inspects the SQL dialects known to the compiler: their
paramstyles, quoting and capabilities, and how identifiers are quoted and
truncated for each of them.

Settings are read from sqlcompile.yaml, SQLCOMPILE_* environment variables
and flags, in increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			cmd.SetContext(commands.WithState(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+")")
	flags.StringP("dialect", "d", config.DefaultDialect, "Dialect name")
	flags.String("param-style", "", "Override the dialect paramstyle (named|pyformat|qmark|numeric|format|dollar|at)")
	flags.Int("max-identifier-length", 0, "Override the dialect identifier length limit (0 for none)")
	flags.Bool("right-nested-joins", true, "Override whether the dialect accepts a join on the right of a join")
	flags.Bool("literal-binds", false, "Render bind values inline")
	flags.Bool("strict-names", false, "Fail on ORDER BY/GROUP BY names that resolve to nothing")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	flags.String("log-format", config.DefaultLogFormat, "Log format (text|json)")
	flags.StringP("output", "o", config.DefaultOutput, "Output format (table|json|yaml)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputJSON, config.OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return commands.DialectNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewIdentCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
