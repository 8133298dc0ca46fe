// AngelaMos | 2026
// repository.go

package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentloop/rentloop-api/internal/core"
)

const conversationColumns = `
	id, property_id, participant_a, participant_b, last_message,
	last_message_at, created_at, updated_at`

const messageColumns = `id, conversation_id, sender_id, content, created_at`

type Repository interface {
	CreateConversation(ctx context.Context, c *Conversation) error
	GetConversationByID(ctx context.Context, id string) (*Conversation, error)
	FindConversation(
		ctx context.Context,
		propertyID, participantA, participantB string,
	) (*Conversation, error)
	ListConversationsByParticipant(
		ctx context.Context,
		userID string,
		params ListParams,
	) ([]Conversation, int, error)
	UpdateLastMessage(
		ctx context.Context,
		conversationID, content string,
	) error
	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(
		ctx context.Context,
		conversationID string,
		params ListParams,
	) ([]Message, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConversation(
	ctx context.Context,
	c *Conversation,
) error {
	query := `
		INSERT INTO conversations (
			id, property_id, participant_a, participant_b
		) VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, c, query,
		c.ID,
		c.PropertyID,
		c.ParticipantA,
		c.ParticipantB,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create conversation: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create conversation: %w", err)
	}

	return nil
}

func (r *repository) GetConversationByID(
	ctx context.Context,
	id string,
) (*Conversation, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM conversations WHERE id = $1`,
		conversationColumns,
	)

	var c Conversation
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get conversation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return &c, nil
}

func (r *repository) FindConversation(
	ctx context.Context,
	propertyID, participantA, participantB string,
) (*Conversation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM conversations
		WHERE property_id = $1 AND participant_a = $2 AND participant_b = $3`,
		conversationColumns)

	var c Conversation
	err := r.db.GetContext(ctx, &c, query,
		propertyID, participantA, participantB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find conversation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	return &c, nil
}

func (r *repository) ListConversationsByParticipant(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Conversation, int, error) {
	params.Normalize()

	countQuery := `
		SELECT COUNT(*) FROM conversations
		WHERE participant_a = $1 OR participant_b = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count conversations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM conversations
		WHERE participant_a = $1 OR participant_b = $1
		ORDER BY last_message_at DESC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3`,
		conversationColumns)

	var conversations []Conversation
	err := r.db.SelectContext(ctx, &conversations, query,
		userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, total, nil
}

func (r *repository) UpdateLastMessage(
	ctx context.Context,
	conversationID, content string,
) error {
	query := `
		UPDATE conversations
		SET last_message = $2, last_message_at = NOW(), updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, conversationID, content)
	if err != nil {
		return fmt.Errorf("update last message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update last message: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update last message: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateMessage(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, m, query,
		m.ID,
		m.ConversationID,
		m.SenderID,
		m.Content,
	)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (r *repository) ListMessages(
	ctx context.Context,
	conversationID string,
	params ListParams,
) ([]Message, int, error) {
	params.Normalize()

	countQuery := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`

	var total int
	err := r.db.GetContext(ctx, &total, countQuery, conversationID)
	if err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`,
		messageColumns)

	var messages []Message
	err = r.db.SelectContext(ctx, &messages, query,
		conversationID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}

	return messages, total, nil
}
