package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/dto"
	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/services"
	"github.com/eventpulse/eventpulse-api/internal/utils"
)

// MessageHandler serves the per-event message threads.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMessages returns an event's messages, oldest first.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	params := utils.GetPaginationParams(c)

	messages, total, err := h.messageService.ListMessages(eventID, params.Page, params.Limit)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    dto.ToMessageDTOs(messages),
		"meta":    utils.NewPaginationMeta(total, params.Page, params.Limit),
	})
}

// PostMessage posts a message on an event.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	type PostMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.PostMessage(userID, eventID, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message posted",
		"data":    dto.ToMessageDTO(*message),
	})
}

// UpdateMessage edits a message; author only.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	type UpdateMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.UpdateMessage(messageID, userID, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message updated",
		"data":    dto.ToMessageDTO(*message),
	})
}

// DeleteMessage removes a message; author only.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	if err := h.messageService.DeleteMessage(messageID, userID); err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message deleted",
	})
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageContentEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotMessageOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
