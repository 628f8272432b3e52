package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the knowledge base",
	Long: `Extracts text from a document, splits it into chunks, embeds each
chunk and stores everything in the tenant's knowledge base.
Supported formats: plain text, Markdown, PDF and DOCX.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	receipt, err := ingestService.Ingest(context.Background(), tenantFlag, data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s\n", filepath.Base(path))
	cmd.Printf("  Document: %s\n", receipt.DocumentID)
	cmd.Printf("  Chunks:   %d\n", receipt.ChunkCount)
	if receipt.SkippedChunks > 0 {
		cmd.Printf("  Skipped:  %d (embedding unavailable)\n", receipt.SkippedChunks)
	}
	return nil
}
