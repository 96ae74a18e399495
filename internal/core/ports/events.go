package ports

import (
	"context"
	"time"
)

// Routing keys of the domain events published to the message broker.
const (
	EventJobCreated  = "job.created"
	EventJobApplied  = "job.applied"
	EventMessageSent = "message.sent"
)

// EventPublisher emits domain events to interested downstream services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type JobCreatedEvent struct {
	JobID      string    `json:"jobId"`
	EmployerID string    `json:"employerId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}

type JobAppliedEvent struct {
	JobID       string    `json:"jobId"`
	EmployerID  string    `json:"employerId"`
	ApplicantID string    `json:"applicantId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type MessageSentEvent struct {
	MessageID  string    `json:"messageId"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Delivered  bool      `json:"delivered"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PartitionKey keeps events about one job in order.
func (e JobCreatedEvent) PartitionKey() string { return e.JobID }

func (e JobAppliedEvent) PartitionKey() string { return e.JobID }

// PartitionKey keeps a receiver's inbox events in order.
func (e MessageSentEvent) PartitionKey() string { return e.ReceiverID }
