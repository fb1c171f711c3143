package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagesmith/internal/config"
	"pagesmith/internal/confluence"
	"pagesmith/pkg/logger"
)

var (
	attachSpace   string
	attachPage    string
	attachFile    string
	attachComment string
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Manage attachments on a Confluence page",
	Long: `Upload, replace or delete file attachments on a page.

"upload" posts a new attachment; "update" replaces the data of an existing
attachment located by filename; "delete" removes it.`,
	Example: `  pagesmith attach upload --space "Data Science" --page "Weekly Report" --file report.pdf
  pagesmith attach update --space "Data Science" --page "Weekly Report" --file report.pdf --comment "fixed numbers"
  pagesmith attach delete --space "Data Science" --page "Weekly Report" --file report.pdf`,
}

var attachUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a file as a new attachment",
	RunE:  runAttachUpload,
}

var attachUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the data of an existing attachment",
	RunE:  runAttachUpdate,
}

var attachDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an attachment by filename",
	RunE:  runAttachDelete,
}

func attachClient() (confluence.ConfluenceClient, *config.Config, string, error) {
	log := logger.New(verbose)

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	space, err := resolveSpace(attachSpace, cfg)
	if err != nil {
		return nil, nil, "", err
	}

	return newConfluenceClient(cfg, log), cfg, space, nil
}

func runAttachUpload(cmd *cobra.Command, args []string) error {
	client, cfg, space, err := attachClient()
	if err != nil {
		return err
	}

	att, err := client.UploadAttachment(attachFile, attachPage, space, confluence.AttachmentOptions{
		Comment:       attachComment,
		LookupOptions: lookupOptions(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to upload attachment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %q (ID: %s) to page %q\n", att.Title, att.ID, attachPage)
	return nil
}

func runAttachUpdate(cmd *cobra.Command, args []string) error {
	client, cfg, space, err := attachClient()
	if err != nil {
		return err
	}

	att, err := client.UpdateAttachment(attachFile, attachPage, space, confluence.AttachmentOptions{
		Comment:       attachComment,
		LookupOptions: lookupOptions(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to update attachment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (ID: %s) on page %q\n", att.Title, att.ID, attachPage)
	return nil
}

func runAttachDelete(cmd *cobra.Command, args []string) error {
	client, cfg, space, err := attachClient()
	if err != nil {
		return err
	}

	if err := client.DeleteAttachment(attachFile, attachPage, space, lookupOptions(cfg)); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q from page %q\n", attachFile, attachPage)
	return nil
}

func init() {
	rootCmd.AddCommand(attachCmd)
	attachCmd.AddCommand(attachUploadCmd, attachUpdateCmd, attachDeleteCmd)

	attachCmd.PersistentFlags().StringVarP(&attachSpace, "space", "s", "", "space name (or key with --space-key)")
	attachCmd.PersistentFlags().StringVarP(&attachPage, "page", "p", "", "title of the page holding the attachment (required)")
	attachCmd.PersistentFlags().StringVarP(&attachFile, "file", "F", "", "path to the file (for delete: the attachment filename) (required)")
	attachCmd.PersistentFlags().StringVar(&attachComment, "comment", "", "comment to accompany the attachment")

	for _, flag := range []string{"page", "file"} {
		if err := attachCmd.MarkPersistentFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("Failed to mark %s flag as required: %v", flag, err))
		}
	}
}
