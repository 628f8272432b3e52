// Package cli wires the bizkb commands to the core services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
	"github.com/arcadia-labs/bizkb/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are injected by main before Execute runs. Commands check
// for nil so a partially-wired binary fails with a clear message.
var (
	ingestService   driving.IngestService
	chatService     driving.ChatService
	factService     driving.FactService
	documentService driving.DocumentService
)

var (
	verboseFlag bool
	tenantFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "bizkb",
	Short: "Business knowledge base with retrieval-augmented chat",
	Long: `bizkb manages a per-tenant knowledge base of documents and facts
and answers questions grounded in their content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "", "tenant identifier (required by most commands)")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest    driving.IngestService
	Chat      driving.ChatService
	Facts     driving.FactService
	Documents driving.DocumentService
}

// SetServices injects the core services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	chatService = s.Chat
	factService = s.Facts
	documentService = s.Documents
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
