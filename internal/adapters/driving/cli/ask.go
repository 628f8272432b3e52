package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
)

var askShowState bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the knowledge base",
	Long: `Answers a question using retrieval-augmented generation: the
question is embedded, similar chunks are retrieved from the tenant's
knowledge base and an LLM generates a grounded response with source
attribution.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowState, "state", false, "print the terminal pipeline state")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if tenantFlag == "" {
		return errors.New("--tenant is required")
	}

	answer, err := chatService.Answer(context.Background(), tenantFlag, args[0], nil, nil)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(answer.Text)
	if askShowState {
		cmd.Printf("\n[state: %s, grounded: %t]\n", answer.State, answer.Grounded)
	}
	if answer.State == domain.StateFailedSafe {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: all generation providers were unavailable")
	}
	return nil
}
