package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// ConversationRepository handles chat persistence
type ConversationRepository struct {
	db *sqlx.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// GetByUser retrieves the user's conversation, if any
func (r *ConversationRepository) GetByUser(ctx context.Context, userID int64) (*model.Conversation, error) {
	var conv model.Conversation
	query := `
		SELECT id, user_id, last_message, last_message_at, created_at
		FROM conversations
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &conv, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// Create inserts a new conversation
func (r *ConversationRepository) Create(ctx context.Context, c *model.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_id)
		VALUES ($1, $2)
		RETURNING created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, c.ID, c.UserID).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// AppendMessage inserts a chat message into a conversation
func (r *ConversationRepository) AppendMessage(ctx context.Context, m *model.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (conversation_id, sender, text, response_type, property_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		m.ConversationID, m.Sender, m.Text, m.ResponseType, m.PropertyIDs, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// TouchLastMessage updates the conversation's last-message metadata
func (r *ConversationRepository) TouchLastMessage(ctx context.Context, conversationID, lastMessage string, at time.Time) error {
	query := `UPDATE conversations SET last_message = $1, last_message_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, lastMessage, at, conversationID); err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

// ListMessages returns the most recent messages in a conversation, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	query := `
		SELECT id, conversation_id, sender, text, response_type, property_ids, created_at
		FROM (
			SELECT id, conversation_id, sender, text, response_type, property_ids, created_at
			FROM chat_messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, id ASC
	`
	if err := r.db.SelectContext(ctx, &messages, query, conversationID, limit); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}
