package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/api/metrics"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	Text  string `json:"text" validate:"max=5000"`
	Image string `json:"image"`
}

type conversationResponse struct {
	Messages []*domain.Message `json:"messages"`
}

type sendMessageResponse struct {
	NewMessage *domain.Message `json:"newMessage"`
}

type chatUsersResponse struct {
	Users []domain.ChatPartner `json:"users"`
}

// Conversation returns the messages exchanged with user :id, oldest first.
//
// @Summary      Conversation with a user
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Other user ID"
// @Success      200  {object}  conversationResponse
// @Failure      401  {object}  messageResponse
// @Router       /messages/{id} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	msgs, err := h.messages.Conversation(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversationResponse{Messages: msgs})
}

// Send stores a message for user :id and pushes it if they are online.
//
// @Summary      Send message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Receiver ID"
// @Param        body  body      sendMessageRequest  true  "Text and/or image"
// @Success      200   {object}  sendMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /messages/send/{id} [post]
func (h *MessageHandler) Send(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sent, err := h.messages.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID:   user.ID,
		ReceiverID: c.Param("id"),
		Text:       req.Text,
		Image:      req.Image,
	})
	if err != nil {
		return err
	}
	metrics.MessagesSentTotal.WithLabelValues(strconv.FormatBool(sent.Delivered)).Inc()
	return c.JSON(http.StatusOK, sendMessageResponse{NewMessage: sent.Message})
}

// ChatUsers lists the caller's conversation partners, most recent first.
//
// @Summary      Conversation partners
// @Tags         messages
// @Produce      json
// @Success      200  {object}  chatUsersResponse
// @Failure      401  {object}  messageResponse
// @Router       /messages/chat-users [get]
func (h *MessageHandler) ChatUsers(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	partners, err := h.messages.ChatPartners(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatUsersResponse{Users: partners})
}
