package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlcompiler/internal/config"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewVersionCommand creates the version command. With -o json or -o yaml
// the build information is encoded instead of printed as text.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlcompile version and build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := BuildInfo{Version: version, Commit: commit, BuildDate: date, GoVersion: runtime.Version()}
			out := cmd.OutOrStdout()
			if format := GetConfig(cmd.Context()).Output; format != config.OutputTable {
				return render(out, format, info, nil, nil)
			}
			_, _ = fmt.Fprintf(out, "sqlcompile v%s\n", info.Version)
			_, err := fmt.Fprintf(out, "commit %s, built %s, %s\n", info.Commit, info.BuildDate, info.GoVersion)
			return err
		},
	}
}
