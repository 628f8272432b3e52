package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List, preview or delete the tenant's ingested documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentPreviewCmd = &cobra.Command{
	Use:   "preview [doc-id]",
	Short: "Print a document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentPreview,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long:  `Soft-deletes a document. Its chunks leave search immediately; the record is retained.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentPreviewCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	docs, err := documentService.List(context.Background(), tenantFlag)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Filename)
		cmd.Printf("    Type: %s (%s)\n", docs[i].MediaType, docs[i].Kind)
		cmd.Printf("    Added: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentPreview(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	doc, err := documentService.Preview(context.Background(), tenantFlag, args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	cmd.Printf("%s (%s)\n\n", doc.Filename, doc.MediaType)
	cmd.Println(doc.Content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	if err := documentService.Delete(context.Background(), tenantFlag, args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
