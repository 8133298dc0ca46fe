// AngelaMos | 2026
// service_test.go

package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type fakeRepo struct {
	conversations map[string]*Conversation
	messages      []Message
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{conversations: make(map[string]*Conversation)}
}

func (f *fakeRepo) CreateConversation(_ context.Context, c *Conversation) error {
	for _, existing := range f.conversations {
		if existing.PropertyID == c.PropertyID &&
			existing.ParticipantA == c.ParticipantA &&
			existing.ParticipantB == c.ParticipantB {
			return core.ErrDuplicateKey
		}
	}
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeRepo) GetConversationByID(
	_ context.Context,
	id string,
) (*Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) FindConversation(
	_ context.Context,
	propertyID, participantA, participantB string,
) (*Conversation, error) {
	for _, c := range f.conversations {
		if c.PropertyID == propertyID &&
			c.ParticipantA == participantA &&
			c.ParticipantB == participantB {
			cp := *c
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) ListConversationsByParticipant(
	_ context.Context,
	userID string,
	_ ListParams,
) ([]Conversation, int, error) {
	var out []Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateLastMessage(
	_ context.Context,
	conversationID, content string,
) error {
	c, ok := f.conversations[conversationID]
	if !ok {
		return core.ErrNotFound
	}
	c.LastMessage = &content
	return nil
}

func (f *fakeRepo) CreateMessage(_ context.Context, m *Message) error {
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeRepo) ListMessages(
	_ context.Context,
	conversationID string,
	_ ListParams,
) ([]Message, int, error) {
	var out []Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

type fakeProps struct {
	listings map[string]*property.Property
}

func (f *fakeProps) Get(
	_ context.Context,
	id string,
) (*property.Property, error) {
	p, ok := f.listings[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return p, nil
}

func TestSortParticipants(t *testing.T) {
	a, b := SortParticipants("zed", "abe")
	assert.Equal(t, "abe", a)
	assert.Equal(t, "zed", b)

	a, b = SortParticipants("abe", "zed")
	assert.Equal(t, "abe", a)
	assert.Equal(t, "zed", b)
}

func TestStartConversation(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	c, err := svc.StartConversation(context.Background(), tenant, "prop-1")

	require.NoError(t, err)
	assert.True(t, c.HasParticipant("tenant-1"))
	assert.True(t, c.HasParticipant("owner-1"))
	assert.Equal(t, "owner-1", c.CounterpartOf("tenant-1"))
	assert.Less(t, c.ParticipantA, c.ParticipantB)
}

func TestStartConversationReusesExisting(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	first, err := svc.StartConversation(context.Background(), tenant, "prop-1")
	require.NoError(t, err)

	second, err := svc.StartConversation(context.Background(), tenant, "prop-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.conversations, 1)
}

func TestStartConversationWithOwnListing(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.StartConversation(context.Background(), owner, "prop-1")

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSendMessageUpdatesLastMessage(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	c, err := svc.StartConversation(context.Background(), tenant, "prop-1")
	require.NoError(t, err)

	m, err := svc.SendMessage(context.Background(), tenant, c.ID,
		SendMessageRequest{Content: "Is the flat still available?"})
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", m.SenderID)

	stored := repo.conversations[c.ID]
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, "Is the flat still available?", *stored.LastMessage)
}

func TestMessagesRestrictedToParticipants(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	c, err := svc.StartConversation(context.Background(), tenant, "prop-1")
	require.NoError(t, err)

	stranger := policy.Actor{ID: "tenant-2", Role: policy.RoleTenant}
	_, _, err = svc.ListMessages(
		context.Background(), stranger, c.ID, ListParams{})
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.SendMessage(context.Background(), stranger, c.ID,
		SendMessageRequest{Content: "let me in"})
	assert.ErrorIs(t, err, core.ErrForbidden)

	admin := policy.Actor{ID: "admin-1", Role: policy.RoleAdmin}
	_, _, err = svc.ListMessages(
		context.Background(), admin, c.ID, ListParams{})
	assert.NoError(t, err)
}
