package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/dto"
	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/services"
	"github.com/eventpulse/eventpulse-api/internal/utils"
)

// BookmarkHandler exposes the participation ledger over HTTP: bookmarks,
// joins, and the per-user listings derived from them. Every route requires
// an authenticated user.
type BookmarkHandler struct {
	participationService *services.ParticipationService
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(participationService *services.ParticipationService) *BookmarkHandler {
	return &BookmarkHandler{participationService: participationService}
}

// AddBookmark marks an event as a favorite of the caller.
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddBookmarkRequest struct {
		EventID uint64 `json:"event_id" binding:"required"`
	}

	var req AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.participationService.AddBookmark(userID, req.EventID)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event bookmarked",
		"data":    record,
	})
}

// RemoveBookmark clears the caller's favorite on an event. Removing a
// bookmark that does not exist is reported, not an error.
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	removed, err := h.participationService.RemoveBookmark(userID, eventID)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    gin.H{"removed": removed},
	})
}

// IsBookmarked reports whether the caller has an event favorited.
func (h *BookmarkHandler) IsBookmarked(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	bookmarked, err := h.participationService.IsBookmarked(userID, eventID)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    gin.H{"bookmarked": bookmarked},
	})
}

// ListBookmarks returns the caller's bookmarked events, most recently
// bookmarked first.
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	h.listParticipationEvents(c, h.participationService.GetUserBookmarks)
}

// ListJoined returns the caller's joined events.
func (h *BookmarkHandler) ListJoined(c *gin.Context) {
	h.listParticipationEvents(c, h.participationService.GetUserJoinedEvents)
}

func (h *BookmarkHandler) listParticipationEvents(c *gin.Context, list func(userID uint64, page, limit int) ([]models.Event, int64, error)) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	events, total, err := list(userID, params.Page, params.Limit)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    dto.ToEventDTOs(events),
		"meta":    utils.NewPaginationMeta(total, params.Page, params.Limit),
	})
}

// BookmarkStats returns the caller's bookmark count.
func (h *BookmarkHandler) BookmarkStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.participationService.GetBookmarkStats(userID)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    stats,
	})
}

// JoinEvent marks an event as joined by the caller.
func (h *BookmarkHandler) JoinEvent(c *gin.Context) {
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

	record, err := h.participationService.JoinEvent(userID, eventID)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event joined",
		"data":    record,
	})
}

// LeaveEvent clears the caller's joined flag on an event.
func (h *BookmarkHandler) LeaveEvent(c *gin.Context) {
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

	left, err := h.participationService.LeaveEvent(userID, eventID)
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    gin.H{"left": left},
	})
}

func respondParticipationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
