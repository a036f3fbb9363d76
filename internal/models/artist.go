package models

import "time"

type Artist struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Image     string    `gorm:"type:varchar(512)" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Events []Event `gorm:"many2many:event_artists" json:"events,omitempty"`
}
