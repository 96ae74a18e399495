package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// SendMessageInput carries a new direct message. Image is a raw payload.
type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Text       string
	Image      string
}

// SentMessage is a persisted message plus the outcome of its realtime push.
type SentMessage struct {
	Message   *domain.Message
	Delivered bool
}

// MessageService defines use-case operations for direct messaging.
type MessageService interface {
	Conversation(ctx context.Context, callerID, otherID string) ([]*domain.Message, error)
	Send(ctx context.Context, in SendMessageInput) (*SentMessage, error)
	ChatPartners(ctx context.Context, callerID string) ([]domain.ChatPartner, error)
}
