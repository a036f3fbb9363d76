package repository

import (
	"github.com/eventpulse/eventpulse-api/internal/models"
	"gorm.io/gorm"
)

// GormOAuthRepository is a GORM implementation of OAuthRepository
type GormOAuthRepository struct {
	db *gorm.DB
}

// NewOAuthRepository creates a new OAuthRepository
func NewOAuthRepository(db *gorm.DB) OAuthRepository {
	return &GormOAuthRepository{db: db}
}

// Create creates a new provider link
func (r *GormOAuthRepository) Create(link *models.OAuthProvider) error {
	return r.db.Create(link).Error
}

// FindByUserAndProvider finds the link a user holds for a provider
func (r *GormOAuthRepository) FindByUserAndProvider(userID uint64, provider string) (*models.OAuthProvider, error) {
	var link models.OAuthProvider
	if err := r.db.Where("user_id = ? AND provider = ?", userID, provider).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindByProviderIdentity finds the link holding an external identity
func (r *GormOAuthRepository) FindByProviderIdentity(provider, providerID string) (*models.OAuthProvider, error) {
	var link models.OAuthProvider
	if err := r.db.Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete removes a user's link for a provider
func (r *GormOAuthRepository) Delete(userID uint64, provider string) error {
	return r.db.Where("user_id = ? AND provider = ?", userID, provider).
		Delete(&models.OAuthProvider{}).Error
}
