package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// ChatService wraps the assistant with conversation persistence: every user
// message and composed reply is appended to the user's conversation record.
type ChatService struct {
	assistant *AssistantService
	convs     ConversationStore
	logger    *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(assistant *AssistantService, convs ConversationStore, logger *zap.Logger) *ChatService {
	return &ChatService{
		assistant: assistant,
		convs:     convs,
		logger:    logger,
	}
}

// Chat composes a reply for the user's message and records both sides of the
// exchange, creating the conversation if absent.
func (s *ChatService) Chat(ctx context.Context, userID int64, message string) (*model.ChatResponse, error) {
	response, err := s.assistant.Respond(ctx, message)
	if err != nil {
		return nil, err
	}

	conv, err := s.convs.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		conv = &model.Conversation{
			ID:     uuid.NewString(),
			UserID: userID,
		}
		if err := s.convs.Create(ctx, conv); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	propertyIDs := make(model.JSONInt64Array, 0, len(response.Properties))
	for _, p := range response.Properties {
		propertyIDs = append(propertyIDs, p.ID)
	}

	userMsg := &model.ChatMessage{
		ConversationID: conv.ID,
		Sender:         model.SenderUser,
		Text:           message,
		CreatedAt:      now,
	}
	replyMsg := &model.ChatMessage{
		ConversationID: conv.ID,
		Sender:         model.SenderAssistant,
		Text:           response.Message,
		ResponseType:   &response.Type,
		PropertyIDs:    propertyIDs,
		CreatedAt:      now,
	}

	// Persistence failures should not lose the composed reply; log and return.
	if err := s.convs.AppendMessage(ctx, userMsg); err != nil {
		s.logger.Error("failed to persist user message", zap.Error(err))
		return response, nil
	}
	if err := s.convs.AppendMessage(ctx, replyMsg); err != nil {
		s.logger.Error("failed to persist assistant reply", zap.Error(err))
		return response, nil
	}
	if err := s.convs.TouchLastMessage(ctx, conv.ID, response.Message, now); err != nil {
		s.logger.Error("failed to update conversation metadata", zap.Error(err))
	}

	return response, nil
}

// History returns the most recent messages in the user's conversation
func (s *ChatService) History(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	conv, err := s.convs.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return []model.ChatMessage{}, nil
	}
	return s.convs.ListMessages(ctx, conv.ID, limit)
}
