package ports

import "github.com/talenthub/talenthub-api/internal/core/domain"

// Connection is a live realtime link to one client.
type Connection interface {
	// Send queues event without blocking and reports whether it was queued.
	Send(event domain.Event) bool
	Close()
}

// Relay maps online users to their connection. It is process-local: users
// connected to another instance are reported offline.
type Relay interface {
	Register(userID string, conn Connection)
	// Unregister removes conn if it is still the user's current connection.
	Unregister(userID string, conn Connection)
	// Push delivers event to the user's connection and reports whether it was
	// handed off. There is no acknowledgement or retry.
	Push(userID string, event domain.Event) bool
	Online() []string
}
