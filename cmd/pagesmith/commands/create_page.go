package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pagesmith/internal/config"
	"pagesmith/internal/confluence"
	"pagesmith/pkg/logger"
)

var (
	createPageSpace    string
	createPageTitle    string
	createPageParent   string
	createPageBody     string
	createPageBodyFile string
)

var createPageCmd = &cobra.Command{
	Use:   "create-page",
	Short: "Create a new Confluence page",
	Long: `Create a new page in a space, optionally beneath a parent page.

The body is storage-format markup, given inline with --body or read from a
file with --body-file. Creating the same title twice produces two pages;
Confluence does not deduplicate by title.`,
	Example: `  pagesmith create-page --space "Data Science" --title "Weekly Report"
  pagesmith create-page --space "Data Science" --title "Q3" --parent "Weekly Report" --body-file q3.html`,
	RunE: runCreatePage,
}

func runCreatePage(cmd *cobra.Command, args []string) error {
	log := logger.New(verbose)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	space, err := resolveSpace(createPageSpace, cfg)
	if err != nil {
		return err
	}

	body, err := pageBody(createPageBody, createPageBodyFile)
	if err != nil {
		return err
	}

	client := newConfluenceClient(cfg, log)

	page, err := client.CreatePage(createPageTitle, space, body, confluence.CreateOptions{
		ParentTitle:   createPageParent,
		LookupOptions: lookupOptions(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created page %q (ID: %s)\n", page.Title, page.ID)
	return nil
}

// pageBody picks the inline body or reads it from a file; both empty means
// an empty page, which the API accepts.
func pageBody(inline, file string) (string, error) {
	if inline != "" && file != "" {
		return "", fmt.Errorf("--body and --body-file are mutually exclusive")
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read body file: %w", err)
		}
		return string(data), nil
	}
	return inline, nil
}

func init() {
	rootCmd.AddCommand(createPageCmd)

	createPageCmd.Flags().StringVarP(&createPageSpace, "space", "s", "", "space name (or key with --space-key)")
	createPageCmd.Flags().StringVarP(&createPageTitle, "title", "t", "", "title for the new page (required)")
	createPageCmd.Flags().StringVarP(&createPageParent, "parent", "p", "", "title of the parent page to nest under")
	createPageCmd.Flags().StringVar(&createPageBody, "body", "", "storage-format body for the page")
	createPageCmd.Flags().StringVar(&createPageBodyFile, "body-file", "", "file containing the storage-format body")

	if err := createPageCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("Failed to mark title flag as required: %v", err))
	}
}
