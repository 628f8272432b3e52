package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Manage question/answer facts",
	Long:  `Adds plain question/answer pairs to the knowledge base without a document upload.`,
}

var factAddCmd = &cobra.Command{
	Use:   "add [question] [answer]",
	Short: "Add a question/answer fact",
	Args:  cobra.ExactArgs(2),
	RunE:  runFactAdd,
}

var factListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's facts",
	Args:  cobra.NoArgs,
	RunE:  runFactList,
}

func init() {
	factCmd.AddCommand(factAddCmd)
	factCmd.AddCommand(factListCmd)
	rootCmd.AddCommand(factCmd)
}

func runFactAdd(cmd *cobra.Command, args []string) error {
	if factService == nil {
		return errors.New("fact service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	id, err := factService.AddFact(context.Background(), tenantFlag, args[0], args[1])
	if err != nil {
		return fmt.Errorf("add fact failed: %w", err)
	}

	cmd.Printf("Added fact %s\n", id)
	return nil
}

func runFactList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	docs, err := documentService.List(context.Background(), tenantFlag)
	if err != nil {
		return fmt.Errorf("failed to list facts: %w", err)
	}

	count := 0
	for i := range docs {
		if docs[i].Kind != domain.DocumentKindFact {
			continue
		}
		count++
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    %s\n", docs[i].Filename)
		cmd.Println()
	}

	if count == 0 {
		cmd.Println("No facts found.")
		return nil
	}
	cmd.Printf("Total: %d facts\n", count)
	return nil
}
