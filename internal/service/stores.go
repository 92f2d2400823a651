package service

import (
	"context"
	"time"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// Store interfaces decouple the services from the persistence layer so the
// parser, scorer and composer can be unit-tested without a live database.
// internal/repository provides the PostgreSQL implementations.

// PropertyStore provides property persistence
type PropertyStore interface {
	Create(ctx context.Context, p *model.Property) error
	Update(ctx context.Context, p *model.Property) error
	GetByID(ctx context.Context, id int64) (*model.Property, error)
	Search(ctx context.Context, f *model.SearchFilters, limit int) ([]model.Property, error)
	CountLive(ctx context.Context) (int, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Property, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]model.Property, error)
	SetStatus(ctx context.Context, id int64, status string) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	FindSimilar(ctx context.Context, id int64, limit int) ([]model.Property, error)
}

// BookingStore provides booking persistence. CreateIfAvailable and
// ConfirmIfAvailable must serialize the overlap check and write per property
// and return model.ErrBookingOverlap on a conflict.
type BookingStore interface {
	CreateIfAvailable(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Booking, error)
	HasOverlap(ctx context.Context, propertyID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ConfirmIfAvailable(ctx context.Context, id int64) error
	CancelExpiredPending(ctx context.Context, before time.Time) (int64, error)
}

// UserStore provides user persistence
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ConversationStore provides chat persistence
type ConversationStore interface {
	GetByUser(ctx context.Context, userID int64) (*model.Conversation, error)
	Create(ctx context.Context, c *model.Conversation) error
	AppendMessage(ctx context.Context, m *model.ChatMessage) error
	TouchLastMessage(ctx context.Context, conversationID, lastMessage string, at time.Time) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]model.ChatMessage, error)
}
