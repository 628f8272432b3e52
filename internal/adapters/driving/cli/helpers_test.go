package cli

import (
	"context"
	"errors"
	"time"

	"github.com/arcadia-labs/bizkb/internal/core/domain"
	"github.com/arcadia-labs/bizkb/internal/core/ports/driving"
)

// Mock services for command tests.

type mockIngestService struct {
	receipt *driving.IngestReceipt
	err     error

	tenantID string
	filename string
	data     []byte
}

func (m *mockIngestService) Ingest(_ context.Context, tenantID string, data []byte, filename string) (*driving.IngestReceipt, error) {
	m.tenantID = tenantID
	m.data = data
	m.filename = filename
	if m.err != nil {
		return nil, m.err
	}
	if m.receipt != nil {
		return m.receipt, nil
	}
	return &driving.IngestReceipt{DocumentID: "doc-1", ChunkCount: 3}, nil
}

type mockChatService struct {
	answer *domain.Answer
	err    error
	query  string
}

func (m *mockChatService) Answer(_ context.Context, _ string, query string, _ *domain.TenantProfile, _ []domain.ConversationTurn) (*domain.Answer, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{
		Text:        "We open at 7am.",
		Grounded:    true,
		State:       domain.StateAnswered,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

type mockFactService struct {
	id       string
	err      error
	question string
	answer   string
}

func (m *mockFactService) AddFact(_ context.Context, _, question, answer string) (string, error) {
	m.question = question
	m.answer = answer
	if m.err != nil {
		return "", m.err
	}
	if m.id != "" {
		return m.id, nil
	}
	return "fact-1", nil
}

type mockDocumentService struct {
	docs    []domain.Document
	doc     *domain.Document
	err     error
	deleted []string
}

func (m *mockDocumentService) List(_ context.Context, _ string) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Preview(_ context.Context, _, documentID string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.doc != nil && m.doc.ID == documentID {
		return m.doc, nil
	}
	return nil, errors.New("not found")
}

func (m *mockDocumentService) Delete(_ context.Context, _, documentID string) error {
	m.deleted = append(m.deleted, documentID)
	return m.err
}

// setupTestServices swaps all command services for mocks and returns a
// cleanup that restores the previous wiring and flags.
func setupTestServices() func() {
	oldIngest := ingestService
	oldChat := chatService
	oldFacts := factService
	oldDocuments := documentService
	oldTenant := tenantFlag

	ingestService = &mockIngestService{}
	chatService = &mockChatService{}
	factService = &mockFactService{}
	documentService = &mockDocumentService{}
	tenantFlag = ""

	return func() {
		ingestService = oldIngest
		chatService = oldChat
		factService = oldFacts
		documentService = oldDocuments
		tenantFlag = oldTenant
		rootCmd.SetArgs(nil)
	}
}
