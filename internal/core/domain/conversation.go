package domain

// MaxHistoryTurns is how many recent conversation turns are forwarded
// verbatim to context assembly and answer generation.
const MaxHistoryTurns = 5

// Role identifies the author of a conversation turn.
type Role string

// Available roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is a single message of recent chat history.
// Turns are supplied by the caller and consumed read-only; the core
// never persists them.
type ConversationTurn struct {
	Role    Role
	Content string
}

// RecentTurns returns at most MaxHistoryTurns of the newest turns,
// preserving order.
func RecentTurns(history []ConversationTurn) []ConversationTurn {
	if len(history) <= MaxHistoryTurns {
		return history
	}
	return history[len(history)-MaxHistoryTurns:]
}
