package models

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventTypeConcert    EventType = "concert"
	EventTypeFestival   EventType = "festival"
	EventTypeExhibition EventType = "exhibition"
	EventTypeConference EventType = "conference"
)

// EventTypes lists every recognized event type.
var EventTypes = []EventType{
	EventTypeConcert,
	EventTypeFestival,
	EventTypeExhibition,
	EventTypeConference,
}

type EventSubtype string

// The subtype set is open-ended and has been extended over time.
const (
	SubtypeRock       EventSubtype = "rock"
	SubtypeHipHop     EventSubtype = "hiphop"
	SubtypeJazz       EventSubtype = "jazz"
	SubtypeTechno     EventSubtype = "techno"
	SubtypeClassical  EventSubtype = "classical"
	SubtypeFootball   EventSubtype = "football"
	SubtypeRugby      EventSubtype = "rugby"
	SubtypeBasketball EventSubtype = "basketball"
	SubtypeHandball   EventSubtype = "handball"
	SubtypeVolleyball EventSubtype = "volleyball"
	SubtypeTennis     EventSubtype = "tennis"
)

var EventSubtypes = []EventSubtype{
	SubtypeRock,
	SubtypeHipHop,
	SubtypeJazz,
	SubtypeTechno,
	SubtypeClassical,
	SubtypeFootball,
	SubtypeRugby,
	SubtypeBasketball,
	SubtypeHandball,
	SubtypeVolleyball,
	SubtypeTennis,
}

// ValidEventType reports whether t is one of the recognized event types.
func ValidEventType(t EventType) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidEventSubtype reports whether s is one of the recognized subtypes.
func ValidEventSubtype(s EventSubtype) bool {
	for _, v := range EventSubtypes {
		if v == s {
			return true
		}
	}
	return false
}

type Event struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Banner      string       `gorm:"type:varchar(512)" json:"banner"`
	StartDate   time.Time    `gorm:"not null;index" json:"start_date"`
	EndDate     *time.Time   `json:"end_date"`
	StartTime   string       `gorm:"type:varchar(8)" json:"start_time"`
	OpenTime    string       `gorm:"type:varchar(8)" json:"open_time"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Place       string       `gorm:"type:varchar(255)" json:"place"`
	Address     string       `gorm:"type:varchar(255)" json:"address"`
	City        string       `gorm:"type:varchar(255);index" json:"city"`
	Type        EventType    `gorm:"type:varchar(20);not null;index" json:"type"`
	Subtype     EventSubtype `gorm:"type:varchar(20);index" json:"subtype"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Artists        []Artist    `gorm:"many2many:event_artists" json:"artists,omitempty"`
	Participations []EventUser `gorm:"foreignKey:EventID" json:"participations,omitempty"`
	Messages       []Message   `gorm:"foreignKey:EventID" json:"-"`
}
