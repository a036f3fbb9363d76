package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/dto"
	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
	"github.com/eventpulse/eventpulse-api/internal/services"
	"github.com/eventpulse/eventpulse-api/internal/utils"
)

// ArtistHandler serves artist listings and the admin CRUD.
type ArtistHandler struct {
	artistService *services.ArtistService
}

// NewArtistHandler creates a new ArtistHandler.
func NewArtistHandler(artistService *services.ArtistService) *ArtistHandler {
	return &ArtistHandler{artistService: artistService}
}

// ListArtists returns a page of artists ordered by name.
func (h *ArtistHandler) ListArtists(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	artists, total, err := h.artistService.ListArtists(params.Page, params.Limit)
	if err != nil {
		respondArtistError(c, err)
		return
	}

	dtos := make([]dto.ArtistDTO, len(artists))
	for i, artist := range artists {
		dtos[i] = dto.ToArtistDTO(artist)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    dtos,
		"meta":    utils.NewPaginationMeta(total, params.Page, params.Limit),
	})
}

// ArtistRequest is the admin payload for creating or updating an artist.
type ArtistRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// CreateArtist creates a new artist (admin only).
func (h *ArtistHandler) CreateArtist(c *gin.Context) {
	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	artist, err := h.artistService.CreateArtist(services.ArtistInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respondArtistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Artist created",
		"data":    dto.ToArtistDTO(*artist),
	})
}

// UpdateArtist replaces an artist's attributes (admin only).
func (h *ArtistHandler) UpdateArtist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid artist ID")
		return
	}

	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	artist, err := h.artistService.UpdateArtist(id, services.ArtistInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respondArtistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Artist updated",
		"data":    dto.ToArtistDTO(*artist),
	})
}

// DeleteArtist removes an artist (admin only).
func (h *ArtistHandler) DeleteArtist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid artist ID")
		return
	}

	if err := h.artistService.DeleteArtist(id); err != nil {
		respondArtistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Artist deleted",
	})
}

func respondArtistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrArtistNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrArtistNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
