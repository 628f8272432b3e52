package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentTurns(t *testing.T) {
	turns := make([]ConversationTurn, 8)
	for i := range turns {
		turns[i] = ConversationTurn{Role: RoleUser, Content: fmt.Sprintf("message %d", i)}
	}

	recent := RecentTurns(turns)

	assert.Len(t, recent, MaxHistoryTurns)
	assert.Equal(t, "message 3", recent[0].Content)
	assert.Equal(t, "message 7", recent[len(recent)-1].Content)
}

func TestRecentTurns_ShortHistory(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
	}

	assert.Equal(t, turns, RecentTurns(turns))
	assert.Empty(t, RecentTurns(nil))
}

func TestDedupPolicy_IsValid(t *testing.T) {
	assert.True(t, DedupNone.IsValid())
	assert.True(t, DedupByChunk.IsValid())
	assert.False(t, DedupPolicy("by_document").IsValid())
}

func TestDocument_Deleted(t *testing.T) {
	doc := Document{ID: "d1"}
	assert.False(t, doc.Deleted())

	now := doc.CreatedAt
	doc.DeletedAt = &now
	assert.True(t, doc.Deleted())
}
