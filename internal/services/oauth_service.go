package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProviderAlreadyLinked  = errors.New("a provider identity is already linked to this account")
	ErrIdentityAlreadyClaimed = errors.New("this external identity is linked to another account")
	ErrProviderLinkNotFound   = errors.New("no link found for this provider")
	ErrProviderFieldsRequired = errors.New("provider and provider id are required")
)

// OAuthService keeps the local bookkeeping of external identity links. The
// provider protocol itself (redirects, token exchange) lives outside this
// service.
type OAuthService struct {
	oauthRepo repository.OAuthRepository
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(oauthRepo repository.OAuthRepository) *OAuthService {
	return &OAuthService{oauthRepo: oauthRepo}
}

// LinkProvider records an external identity for a user, enforcing one link
// per provider per user and one local account per external identity.
func (s *OAuthService) LinkProvider(userID uint64, provider, providerID string) (*models.OAuthProvider, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	providerID = strings.TrimSpace(providerID)
	if provider == "" || providerID == "" {
		return nil, ErrProviderFieldsRequired
	}

	if _, err := s.oauthRepo.FindByUserAndProvider(userID, provider); err == nil {
		return nil, ErrProviderAlreadyLinked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check provider link: %w", err)
	}

	if _, err := s.oauthRepo.FindByProviderIdentity(provider, providerID); err == nil {
		return nil, ErrIdentityAlreadyClaimed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check provider identity: %w", err)
	}

	link := &models.OAuthProvider{
		UserID:     userID,
		Provider:   provider,
		ProviderID: providerID,
	}

	if err := s.oauthRepo.Create(link); err != nil {
		// A racing link lands on one of the unique indexes.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProviderAlreadyLinked
		}
		return nil, fmt.Errorf("failed to create provider link: %w", err)
	}

	return link, nil
}

// UnlinkProvider removes a user's link for a provider.
func (s *OAuthService) UnlinkProvider(userID uint64, provider string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))

	if _, err := s.oauthRepo.FindByUserAndProvider(userID, provider); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProviderLinkNotFound
		}
		return fmt.Errorf("failed to find provider link: %w", err)
	}

	if err := s.oauthRepo.Delete(userID, provider); err != nil {
		return fmt.Errorf("failed to delete provider link: %w", err)
	}

	return nil
}
