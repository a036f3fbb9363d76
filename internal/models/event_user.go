package models

import "time"

// EventUser is the participation record: at most one row per (user, event)
// pair, enforced by the composite primary key. The two flags are toggled
// independently; a row where both are false is never stored, it is deleted
// instead (absence means "no relationship").
type EventUser struct {
	UserID     uint64    `gorm:"primarykey" json:"user_id"`
	EventID    uint64    `gorm:"primarykey" json:"event_id"`
	IsFavorite bool      `gorm:"not null;default:false" json:"is_favorite"`
	HasJoined  bool      `gorm:"not null;default:false" json:"has_joined"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}
