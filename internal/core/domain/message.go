package domain

import "time"

// Message is an immutable direct message between two users.
type Message struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Counterpart returns the other participant of m as seen by userID.
func (m *Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Conversation pairs a counterparty with the latest message exchanged.
type Conversation struct {
	PartnerID   string
	LastMessage Message
}

// ChatPartner is a counterparty profile with its latest message, as listed in
// the chat sidebar.
type ChatPartner struct {
	User
	LastMessage Message `json:"lastMessage"`
}

// Realtime event names pushed to connected clients.
const (
	EventNewMessage  = "newMessage"
	EventOnlineUsers = "getOnlineUsers"
)

// Event is a payload pushed over the realtime relay.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
