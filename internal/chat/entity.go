// AngelaMos | 2026
// entity.go

package chat

import (
	"time"
)

// Conversation participants are stored sorted so the pair is a stable
// key regardless of who opened the thread.
type Conversation struct {
	ID            string     `db:"id"`
	PropertyID    string     `db:"property_id"`
	ParticipantA  string     `db:"participant_a"`
	ParticipantB  string     `db:"participant_b"`
	LastMessage   *string    `db:"last_message"`
	LastMessageAt *time.Time `db:"last_message_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// CounterpartOf returns the other participant's ID.
func (c *Conversation) CounterpartOf(userID string) string {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

// SortParticipants returns the pair in canonical order.
func SortParticipants(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
