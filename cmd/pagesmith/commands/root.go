package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagesmith/internal/config"
	"pagesmith/internal/confluence"
)

var (
	configFile string
	verbose    bool
	spaceIsKey bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "Create, update and attach to Confluence pages from the command line",
	Long: `Pagesmith is a client for the Confluence REST API. It resolves space
names and page titles to server identifiers and performs page and attachment
CRUD, including version-aware page updates.`,
	Example: `  pagesmith create-page --space "Data Science" --title "Weekly Report"
  pagesmith update-page --space "Data Science" --title "Weekly Report" --body-file report.html
  pagesmith get-page --space "Data Science" --title "Weekly Report" --format markdown
  pagesmith attach upload --space "Data Science" --page "Weekly Report" --file report.pdf`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&spaceIsKey, "space-key", false, "treat space arguments as space keys, skipping the name lookup")
}

// resolveSpace applies the config default when no --space flag was given.
func resolveSpace(flagValue string, cfg *config.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Confluence.Space != "" {
		return cfg.Confluence.Space, nil
	}
	return "", fmt.Errorf("space flag is required (or set confluence.space in %s)", configFile)
}

func lookupOptions(cfg *config.Config) confluence.LookupOptions {
	return confluence.LookupOptions{SpaceNameAsKey: spaceIsKey || cfg.Confluence.SpaceIsKey}
}
