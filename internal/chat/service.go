// AngelaMos | 2026
// service.go

package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type PropertyProvider interface {
	Get(ctx context.Context, id string) (*property.Property, error)
}

type Service struct {
	repo  Repository
	props PropertyProvider
}

func NewService(repo Repository, props PropertyProvider) *Service {
	return &Service{repo: repo, props: props}
}

// StartConversation finds or creates the thread between the actor and
// the listing's owner. The pair is stored sorted, so a concurrent start
// from either side resolves to the same row.
func (s *Service) StartConversation(
	ctx context.Context,
	actor policy.Actor,
	propertyID string,
) (*Conversation, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	p, err := s.props.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if err := policy.RequireNoSelfDealing(actor, p.OwnerID); err != nil {
		return nil, err
	}

	a, b := SortParticipants(actor.ID, p.OwnerID)

	existing, err := s.repo.FindConversation(ctx, propertyID, a, b)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	c := &Conversation{
		ID:           uuid.New().String(),
		PropertyID:   propertyID,
		ParticipantA: a,
		ParticipantB: b,
	}

	err = s.repo.CreateConversation(ctx, c)
	if errors.Is(err, core.ErrDuplicateKey) {
		// Lost the race to the other participant.
		return s.repo.FindConversation(ctx, propertyID, a, b)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListConversations(
	ctx context.Context,
	actor policy.Actor,
	params ListParams,
) ([]Conversation, int, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, 0, err
	}

	return s.repo.ListConversationsByParticipant(ctx, actor.ID, params)
}

func (s *Service) ListMessages(
	ctx context.Context,
	actor policy.Actor,
	conversationID string,
	params ListParams,
) ([]Message, int, error) {
	c, err := s.requireParticipant(ctx, actor, conversationID)
	if err != nil {
		return nil, 0, err
	}

	return s.repo.ListMessages(ctx, c.ID, params)
}

// SendMessage appends to the thread and refreshes the conversation's
// last-message denormalization used for inbox ordering.
func (s *Service) SendMessage(
	ctx context.Context,
	actor policy.Actor,
	conversationID string,
	req SendMessageRequest,
) (*Message, error) {
	c, err := s.requireParticipant(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}

	m := &Message{
		ID:             uuid.New().String(),
		ConversationID: c.ID,
		SenderID:       actor.ID,
		Content:        req.Content,
	}

	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLastMessage(ctx, c.ID, m.Content); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) requireParticipant(
	ctx context.Context,
	actor policy.Actor,
	conversationID string,
) (*Conversation, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	c, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !c.HasParticipant(actor.ID) && !actor.IsAdmin() {
		return nil, core.ForbiddenError("not a participant in this conversation")
	}

	return c, nil
}
