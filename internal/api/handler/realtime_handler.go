package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/ports"
	"github.com/talenthub/talenthub-api/internal/infrastructure/realtime"
)

type RealtimeHandler struct {
	relay    ports.Relay
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewRealtimeHandler accepts WebSocket upgrades from allowedOrigin or from the
// API's own host.
func NewRealtimeHandler(relay ports.Relay, allowedOrigin string, log zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		relay: relay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigin),
		},
		log: log,
	}
}

// Connect upgrades the request and serves the caller's realtime connection
// until it closes.
//
// @Summary      Realtime events
// @Description  WebSocket stream of getOnlineUsers and newMessage events.
// @Tags         realtime
// @Success      101
// @Failure      401  {object}  messageResponse
// @Router       /ws [get]
func (h *RealtimeHandler) Connect(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the error response.
		h.log.Debug().Err(err).Str("user_id", user.ID).Msg("websocket upgrade failed")
		return nil
	}

	realtime.NewClient(user.ID, conn, h.log).Serve(h.relay)
	return nil
}

func originChecker(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origin == allowed {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
