package model

import "time"

// Assistant response type values
const (
	ResponseGreeting    = "greeting"
	ResponsePricingInfo = "pricing_info"
	ResponseBookingInfo = "booking_info"
	ResponseNoInventory = "no_inventory"
	ResponseHelp        = "help"
	ResponseNoResults   = "no_results"
	ResponseSearch      = "property_search"
)

// Chat message sender values
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation groups a user's chat messages with the assistant
type Conversation struct {
	ID            string     `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	LastMessage   *string    `json:"last_message,omitempty" db:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// ChatMessage is a single persisted message within a conversation
type ChatMessage struct {
	ID             int64          `json:"id" db:"id"`
	ConversationID string         `json:"conversation_id" db:"conversation_id"`
	Sender         string         `json:"sender" db:"sender"`
	Text           string         `json:"text" db:"text"`
	ResponseType   *string        `json:"response_type,omitempty" db:"response_type"`
	PropertyIDs    JSONInt64Array `json:"property_ids,omitempty" db:"property_ids"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// ChatRequest is the assistant query payload
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the assistant reply payload
type ChatResponse struct {
	Type       string           `json:"type"`
	Message    string           `json:"message"`
	Properties []ScoredProperty `json:"properties"`
	Parsed     *ParsedQuery     `json:"parsed,omitempty"`
}
