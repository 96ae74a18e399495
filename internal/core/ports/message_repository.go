package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// Conversation returns every message exchanged between a and b in either
	// direction, oldest first.
	Conversation(ctx context.Context, a, b string) ([]*domain.Message, error)
	// LatestPerPartner returns, for each counterparty userID has exchanged
	// messages with, the most recent message between them.
	LatestPerPartner(ctx context.Context, userID string) ([]domain.Conversation, error)
}
