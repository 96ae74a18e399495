package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	images   ports.ImageUploader
	relay    ports.Relay
	events   ports.EventPublisher
	logger   zerolog.Logger
	now      func() time.Time
}

func NewMessageService(
	messages ports.MessageRepository,
	users ports.UserRepository,
	images ports.ImageUploader,
	relay ports.Relay,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		images:   images,
		relay:    relay,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *MessageService) Conversation(ctx context.Context, callerID, otherID string) ([]*domain.Message, error) {
	return s.messages.Conversation(ctx, callerID, otherID)
}

// Send persists the message, then pushes it to the receiver if online. The
// push outcome never fails the call.
func (s *MessageService) Send(ctx context.Context, in ports.SendMessageInput) (*ports.SentMessage, error) {
	text := strings.TrimSpace(in.Text)
	image := strings.TrimSpace(in.Image)
	if text == "" && image == "" {
		return nil, domain.ErrEmptyMessage
	}

	if _, err := s.users.FindByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	if image != "" {
		ref, err := s.images.Upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("send message: %w", err)
		}
		image = ref
	}

	msg, err := s.messages.Create(ctx, &domain.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Text:       text,
		Image:      image,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	delivered := s.relay.Push(msg.ReceiverID, domain.Event{Type: domain.EventNewMessage, Payload: msg})
	s.logger.Debug().
		Str("message_id", msg.ID).
		Str("receiver_id", msg.ReceiverID).
		Bool("delivered", delivered).
		Msg("message sent")

	if s.events != nil {
		err := s.events.Publish(ctx, ports.EventMessageSent, ports.MessageSentEvent{
			MessageID:  msg.ID,
			SenderID:   msg.SenderID,
			ReceiverID: msg.ReceiverID,
			Delivered:  delivered,
			OccurredAt: msg.CreatedAt,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("routing_key", ports.EventMessageSent).Msg("failed to publish event")
		}
	}

	return &ports.SentMessage{Message: msg, Delivered: delivered}, nil
}

// ChatPartners lists everyone the caller has exchanged messages with, most
// recent conversation first. Partners whose accounts were removed are skipped.
func (s *MessageService) ChatPartners(ctx context.Context, callerID string) ([]domain.ChatPartner, error) {
	convs, err := s.messages.LatestPerPartner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []domain.ChatPartner{}, nil
	}

	ids := make([]string, len(convs))
	for i, c := range convs {
		ids[i] = c.PartnerID
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("chat partners: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	partners := make([]domain.ChatPartner, 0, len(convs))
	for _, c := range convs {
		u, ok := byID[c.PartnerID]
		if !ok {
			continue
		}
		partners = append(partners, domain.ChatPartner{User: *u, LastMessage: c.LastMessage})
	}

	slices.SortFunc(partners, func(a, b domain.ChatPartner) int {
		if c := b.LastMessage.CreatedAt.Compare(a.LastMessage.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return partners, nil
}
