// Package chat provides HTTP handlers for direct messages.
package chat

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// ChatController handles endpoints under /chat-messages.
type ChatController struct {
	Chat *service.ChatService
}

// NewChatController creates a new instance of ChatController.
func NewChatController(chat *service.ChatService) *ChatController {
	return &ChatController{
		Chat: chat,
	}
}

// SendMessage stores a message from the logged in user.
// @Summary Send chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param message body service.ChatInput true "Message"
// @Success 201 {object} model.ChatMessage
// @Failure 400 {object} utilities.ValidationErrorResponse "Empty message or unknown receiver"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /chat-messages [post]
func (cc *ChatController) SendMessage(c *gin.Context) {
	var in service.ChatInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	msg, err := cc.Chat.Send(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetMessages lists messages the logged in user sent or received.
// @Summary List chat messages
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param with query string false "Only the conversation with this user ID"
// @Success 200 {array} model.ChatMessage
// @Failure 400 {object} utilities.ErrorResponse "Invalid user ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /chat-messages [get]
func (cc *ChatController) GetMessages(c *gin.Context) {
	with, ok := utilities.QueryUUID(c, "with")
	if !ok {
		return
	}
	msgs, err := cc.Chat.List(c.Request.Context(), utilities.OptionalUser(c), with)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// MarkMessageRead flags a received message as read.
// @Summary Mark chat message as read
// @Description Receiver only.
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Message ID"
// @Success 200 {object} model.ChatMessage
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the receiver"
// @Failure 404 {object} utilities.ErrorResponse "Message not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /chat-messages/{id}/read [patch]
func (cc *ChatController) MarkMessageRead(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	msg, err := cc.Chat.MarkRead(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
