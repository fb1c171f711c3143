package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagesmith/internal/config"
	"pagesmith/pkg/logger"
)

var (
	deletePageSpace string
	deletePageTitle string
)

var deletePageCmd = &cobra.Command{
	Use:     "delete-page",
	Short:   "Delete a Confluence page",
	Example: `  pagesmith delete-page --space "Data Science" --title "Weekly Report"`,
	RunE:    runDeletePage,
}

func runDeletePage(cmd *cobra.Command, args []string) error {
	log := logger.New(verbose)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	space, err := resolveSpace(deletePageSpace, cfg)
	if err != nil {
		return err
	}

	client := newConfluenceClient(cfg, log)

	if err := client.DeletePage(deletePageTitle, space, lookupOptions(cfg)); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted page %q from space %q\n", deletePageTitle, space)
	return nil
}

func init() {
	rootCmd.AddCommand(deletePageCmd)

	deletePageCmd.Flags().StringVarP(&deletePageSpace, "space", "s", "", "space name (or key with --space-key)")
	deletePageCmd.Flags().StringVarP(&deletePageTitle, "title", "t", "", "title of the page to delete (required)")

	if err := deletePageCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("Failed to mark title flag as required: %v", err))
	}
}
