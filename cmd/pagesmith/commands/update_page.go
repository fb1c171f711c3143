package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagesmith/internal/config"
	"pagesmith/pkg/logger"
)

var (
	updatePageSpace    string
	updatePageTitle    string
	updatePageBody     string
	updatePageBodyFile string
)

var updatePageCmd = &cobra.Command{
	Use:   "update-page",
	Short: "Replace the body of an existing Confluence page",
	Long: `Replace a page's body with new storage-format markup.

The page is located by title and space, its current version is fetched, and
the update is submitted with version+1. A concurrent edit in between makes
the server reject the update; rerun the command to pick up the new version.`,
	Example: `  pagesmith update-page --space "Data Science" --title "Weekly Report" --body "<h1>Done</h1>"
  pagesmith update-page --space "Data Science" --title "Weekly Report" --body-file report.html`,
	RunE: runUpdatePage,
}

func runUpdatePage(cmd *cobra.Command, args []string) error {
	log := logger.New(verbose)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	space, err := resolveSpace(updatePageSpace, cfg)
	if err != nil {
		return err
	}

	body, err := pageBody(updatePageBody, updatePageBodyFile)
	if err != nil {
		return err
	}

	client := newConfluenceClient(cfg, log)

	page, err := client.UpdatePage(updatePageTitle, space, body, lookupOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated page %q (ID: %s)\n", page.Title, page.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(updatePageCmd)

	updatePageCmd.Flags().StringVarP(&updatePageSpace, "space", "s", "", "space name (or key with --space-key)")
	updatePageCmd.Flags().StringVarP(&updatePageTitle, "title", "t", "", "title of the page to update (required)")
	updatePageCmd.Flags().StringVar(&updatePageBody, "body", "", "storage-format body for the page")
	updatePageCmd.Flags().StringVar(&updatePageBodyFile, "body-file", "", "file containing the storage-format body")

	if err := updatePageCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("Failed to mark title flag as required: %v", err))
	}
}
