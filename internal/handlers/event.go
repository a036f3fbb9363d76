package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/constants"
	"github.com/eventpulse/eventpulse-api/internal/dto"
	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/services"
	"github.com/eventpulse/eventpulse-api/internal/utils"
)

// EventHandler serves the public event listings and the admin mutations.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents returns a filtered, paginated event listing. Accessible
// anonymously; an authenticated caller gets participation annotation.
func (h *EventHandler) ListEvents(c *gin.Context) {
	verr := []apierrors.FieldIssue{}

	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	if err != nil {
		verr = append(verr, apierrors.FieldIssue{Field: "page", Message: "must be an integer"})
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		verr = append(verr, apierrors.FieldIssue{Field: "limit", Message: "must be an integer"})
	}
	if len(verr) > 0 {
		apierrors.UnprocessableEntity(c, "", verr)
		return
	}

	events, total, effectiveLimit, err := h.eventService.ListEvents(services.ListEventsInput{
		Type:      c.Query("type"),
		Subtype:   c.Query("subtype"),
		City:      c.Query("city"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		UserID:    middleware.GetOptionalUserID(c),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    dto.ToEventDTOs(events),
		"meta":    utils.NewPaginationMeta(total, page, effectiveLimit),
	})
}

// GetEvent returns a single event with its artists resolved.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id, middleware.GetOptionalUserID(c))
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    dto.ToEventDTO(*event),
	})
}

// EventRequest is the admin payload for creating or replacing an event.
type EventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Banner      string  `json:"banner"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date"`
	StartTime   string  `json:"start_time"`
	OpenTime    string  `json:"open_time"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Place       string  `json:"place"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Type        string  `json:"type" binding:"required"`
	Subtype     string  `json:"subtype"`
}

func (r EventRequest) toInput() services.EventInput {
	return services.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Banner:      r.Banner,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		StartTime:   r.StartTime,
		OpenTime:    r.OpenTime,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Place:       r.Place,
		Address:     r.Address,
		City:        r.City,
		Type:        r.Type,
		Subtype:     r.Subtype,
	}
}

// CreateEvent creates a new event (admin only).
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(req.toInput())
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created",
		"data":    dto.ToEventDTO(*event),
	})
}

// UpdateEvent replaces an event's attributes (admin only).
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated",
		"data":    dto.ToEventDTO(*event),
	})
}

// DeleteEvent removes an event (admin only).
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted",
	})
}

// AttachArtist links an artist to an event (admin only).
func (h *EventHandler) AttachArtist(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	type AttachArtistRequest struct {
		ArtistID uint64 `json:"artist_id" binding:"required"`
	}

	var req AttachArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.eventService.AttachArtist(c.Request.Context(), eventID, req.ArtistID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Artist attached",
	})
}

// DetachArtist unlinks an artist from an event (admin only).
func (h *EventHandler) DetachArtist(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}
	artistID, err := strconv.ParseUint(c.Param("artistID"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid artist ID")
		return
	}

	if err := h.eventService.DetachArtist(c.Request.Context(), eventID, artistID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Artist detached",
	})
}

func respondEventError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.UnprocessableEntity(c, "", verr.Issues)
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrArtistNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
