package models

import "time"

// OAuthProvider links one external identity per provider per user. The two
// unique indexes enforce both directions: a user cannot link the same
// provider twice, and one external identity cannot be claimed by two local
// accounts.
type OAuthProvider struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_user_provider" json:"user_id"`
	Provider   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_provider;uniqueIndex:idx_provider_identity" json:"provider"`
	ProviderID string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_provider_identity" json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
