package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/services"
)

// OAuthHandler manages external identity links for the authenticated user.
type OAuthHandler struct {
	oauthService *services.OAuthService
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(oauthService *services.OAuthService) *OAuthHandler {
	return &OAuthHandler{oauthService: oauthService}
}

// LinkProvider records an external identity for the caller.
func (h *OAuthHandler) LinkProvider(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type LinkProviderRequest struct {
		Provider   string `json:"provider" binding:"required"`
		ProviderID string `json:"provider_id" binding:"required"`
	}

	var req LinkProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.oauthService.LinkProvider(userID, req.Provider, req.ProviderID)
	if err != nil {
		respondOAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Provider linked",
		"data":    link,
	})
}

// UnlinkProvider removes the caller's link for a provider.
func (h *OAuthHandler) UnlinkProvider(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.oauthService.UnlinkProvider(userID, c.Param("provider")); err != nil {
		respondOAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Provider unlinked",
	})
}

func respondOAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProviderFieldsRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProviderAlreadyLinked),
		errors.Is(err, services.ErrIdentityAlreadyClaimed):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrProviderLinkNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
