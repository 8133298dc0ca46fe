// AngelaMos | 2026
// dto.go

package chat

import (
	"time"
)

type StartConversationRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid4"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type ConversationResponse struct {
	ID            string     `json:"id"`
	PropertyID    string     `json:"property_id"`
	Counterpart   string     `json:"counterpart_id"`
	LastMessage   *string    `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToConversationResponse(c *Conversation, viewerID string) ConversationResponse {
	return ConversationResponse{
		ID:            c.ID,
		PropertyID:    c.PropertyID,
		Counterpart:   c.CounterpartOf(viewerID),
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

func ToConversationResponseList(
	conversations []Conversation,
	viewerID string,
) []ConversationResponse {
	responses := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		responses = append(responses, ToConversationResponse(&c, viewerID))
	}
	return responses
}

func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func ToMessageResponseList(messages []Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, ToMessageResponse(&m))
	}
	return responses
}
