package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

type fakeConversationStore struct {
	conversations map[int64]*model.Conversation
	messages      map[string][]model.ChatMessage
	appendErr     error
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{
		conversations: map[int64]*model.Conversation{},
		messages:      map[string][]model.ChatMessage{},
	}
}

func (f *fakeConversationStore) GetByUser(_ context.Context, userID int64) (*model.Conversation, error) {
	conv, ok := f.conversations[userID]
	if !ok {
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (f *fakeConversationStore) Create(_ context.Context, c *model.Conversation) error {
	c.CreatedAt = time.Now()
	f.conversations[c.UserID] = c
	return nil
}

func (f *fakeConversationStore) AppendMessage(_ context.Context, m *model.ChatMessage) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	m.ID = int64(len(f.messages[m.ConversationID]) + 1)
	f.messages[m.ConversationID] = append(f.messages[m.ConversationID], *m)
	return nil
}

func (f *fakeConversationStore) TouchLastMessage(_ context.Context, conversationID, lastMessage string, at time.Time) error {
	for _, conv := range f.conversations {
		if conv.ID == conversationID {
			conv.LastMessage = &lastMessage
			conv.LastMessageAt = &at
			return nil
		}
	}
	return nil
}

func (f *fakeConversationStore) ListMessages(_ context.Context, conversationID string, limit int) ([]model.ChatMessage, error) {
	msgs := f.messages[conversationID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func newChatFixture() (*ChatService, *fakeConversationStore) {
	convs := newFakeConversationStore()
	assistant := newTestAssistant(testListings())
	return NewChatService(assistant, convs, zap.NewNop()), convs
}

func TestChat_CreatesConversationAndPersistsBothSides(t *testing.T) {
	svc, convs := newChatFixture()
	ctx := context.Background()

	resp, err := svc.Chat(ctx, 42, "flat in pokhara under 20000")
	require.NoError(t, err)
	assert.Equal(t, model.ResponseSearch, resp.Type)

	conv := convs.conversations[42]
	require.NotNil(t, conv)
	require.NotEmpty(t, conv.ID)

	msgs := convs.messages[conv.ID]
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)
	assert.Equal(t, "flat in pokhara under 20000", msgs[0].Text)
	assert.Equal(t, model.SenderAssistant, msgs[1].Sender)
	require.NotNil(t, msgs[1].ResponseType)
	assert.Equal(t, model.ResponseSearch, *msgs[1].ResponseType)
	assert.Equal(t, model.JSONInt64Array{3}, msgs[1].PropertyIDs)

	require.NotNil(t, conv.LastMessage)
	assert.Equal(t, resp.Message, *conv.LastMessage)
}

func TestChat_ReusesExistingConversation(t *testing.T) {
	svc, convs := newChatFixture()
	ctx := context.Background()

	_, err := svc.Chat(ctx, 42, "hello")
	require.NoError(t, err)
	first := convs.conversations[42].ID

	_, err = svc.Chat(ctx, 42, "flat in kathmandu")
	require.NoError(t, err)

	assert.Equal(t, first, convs.conversations[42].ID)
	assert.Len(t, convs.messages[first], 4)
}

func TestChat_PersistenceFailureStillReturnsReply(t *testing.T) {
	svc, convs := newChatFixture()
	convs.appendErr = errors.New("db down")

	resp, err := svc.Chat(context.Background(), 42, "hello")
	require.NoError(t, err)
	assert.Equal(t, model.ResponseGreeting, resp.Type)
}

func TestChatHistory(t *testing.T) {
	svc, _ := newChatFixture()
	ctx := context.Background()

	history, err := svc.History(ctx, 42, 50)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = svc.Chat(ctx, 42, "hello")
	require.NoError(t, err)

	history, err = svc.History(ctx, 42, 50)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
