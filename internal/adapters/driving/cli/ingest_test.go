package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file]", ingestCmd.Use)
}

func TestIngestCmd_Short(t *testing.T) {
	assert.Equal(t, "Ingest a document into the knowledge base", ingestCmd.Short)
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_RequiresTenant(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "somefile.txt"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--tenant is required")
}

func TestIngestCmd_ErrorsWithoutService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "--tenant", "tenant-1", "somefile.txt"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestIngestCmd_IngestsFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "handbook.txt")
	require.NoError(t, os.WriteFile(path, []byte("file contents"), 0o600))

	mock := &mockIngestService{
		receipt: &driving.IngestReceipt{DocumentID: "doc-42", ChunkCount: 5, SkippedChunks: 1},
	}
	ingestService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--tenant", "tenant-1", path})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "tenant-1", mock.tenantID)
	assert.Equal(t, "handbook.txt", mock.filename)
	assert.Equal(t, []byte("file contents"), mock.data)
	assert.Contains(t, buf.String(), "doc-42")
	assert.Contains(t, buf.String(), "Chunks:   5")
	assert.Contains(t, buf.String(), "Skipped:  1")
}

func TestIngestCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "--tenant", "tenant-1", filepath.Join(t.TempDir(), "missing.txt")})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}
