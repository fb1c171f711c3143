package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagesmith/pkg/version"
)

var (
	shortVersion bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the version information for Pagesmith including build details.

The version command shows the current version along with build information
such as Git commit, build date, Go version, and platform.`,
	Example: `  pagesmith version        # Show full version information
  pagesmith version --short # Show only version number`,
	RunE: runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	buildInfo := version.Get()

	if shortVersion {
		fmt.Fprintln(cmd.OutOrStdout(), buildInfo.Version)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
	}

	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&shortVersion, "short", false, "show only version number")
}
