package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

const (
	sendBuffer     = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxInboundSize = 4 << 10
)

// Client is one user's WebSocket connection. Outbound events are queued on a
// buffered channel drained by a single writer goroutine.
type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan domain.Event
	done   chan struct{}
	once   sync.Once
	log    zerolog.Logger
}

func NewClient(userID string, conn *websocket.Conn, log zerolog.Logger) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan domain.Event, sendBuffer),
		done:   make(chan struct{}),
		log:    log.With().Str("user_id", userID).Logger(),
	}
}

// Send queues event without blocking. It reports false when the queue is full
// or the client is closed.
func (c *Client) Send(event domain.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

// Close stops the client. The writer closes the socket, which unblocks the
// reader.
func (c *Client) Close() {
	c.once.Do(func() { close(c.done) })
}

// Serve registers the client with relay and blocks until the connection ends.
func (c *Client) Serve(relay ports.Relay) {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()

	relay.Register(c.userID, c)
	defer relay.Unregister(c.userID, c)

	c.readPump()
	c.Close()
	<-writerDone
}

// readPump consumes inbound frames so control messages are processed. Clients
// do not send application messages; anything received is discarded.
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("realtime connection closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				c.log.Debug().Err(err).Str("event", event.Type).Msg("realtime write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}
		}
	}
}
