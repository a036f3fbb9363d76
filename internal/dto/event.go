package dto

import (
	"time"

	"github.com/eventpulse/eventpulse-api/internal/models"
)

// ArtistDTO represents an artist in API responses
type ArtistDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ParticipationDTO projects the requesting user's relationship to an event.
type ParticipationDTO struct {
	IsFavorite bool      `json:"is_favorite"`
	HasJoined  bool      `json:"has_joined"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventDTO represents an event in API responses. Participation is only set
// when the listing was requested by an authenticated user; its absence means
// "no relationship", not an error.
type EventDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Banner        string              `json:"banner,omitempty"`
	StartDate     time.Time           `json:"start_date"`
	EndDate       *time.Time          `json:"end_date"`
	StartTime     string              `json:"start_time,omitempty"`
	OpenTime      string              `json:"open_time,omitempty"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	Place         string              `json:"place,omitempty"`
	Address       string              `json:"address,omitempty"`
	City          string              `json:"city"`
	Type          models.EventType    `json:"type"`
	Subtype       models.EventSubtype `json:"subtype,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Artists       []ArtistDTO         `json:"artists,omitempty"`
	Participation *ParticipationDTO   `json:"participation,omitempty"`
}

// ToArtistDTO converts an Artist model to ArtistDTO
func ToArtistDTO(artist models.Artist) ArtistDTO {
	return ArtistDTO{
		ID:    artist.ID,
		Name:  artist.Name,
		Image: artist.Image,
	}
}

// ToEventDTO converts an Event model to EventDTO, inlining preloaded artists
// and the preloaded participation row when present.
func ToEventDTO(event models.Event) EventDTO {
	dto := EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Banner:      event.Banner,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		StartTime:   event.StartTime,
		OpenTime:    event.OpenTime,
		Latitude:    event.Latitude,
		Longitude:   event.Longitude,
		Place:       event.Place,
		Address:     event.Address,
		City:        event.City,
		Type:        event.Type,
		Subtype:     event.Subtype,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}

	if len(event.Artists) > 0 {
		dto.Artists = make([]ArtistDTO, len(event.Artists))
		for i, artist := range event.Artists {
			dto.Artists[i] = ToArtistDTO(artist)
		}
	}

	// The repository only ever preloads the requesting user's row, so at
	// most one participation is present.
	if len(event.Participations) > 0 {
		p := event.Participations[0]
		dto.Participation = &ParticipationDTO{
			IsFavorite: p.IsFavorite,
			HasJoined:  p.HasJoined,
			CreatedAt:  p.CreatedAt,
		}
	}

	return dto
}

// ToEventDTOs converts a slice of events
func ToEventDTOs(events []models.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, event := range events {
		dtos[i] = ToEventDTO(event)
	}
	return dtos
}
