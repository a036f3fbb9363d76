package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventpulse/eventpulse-api/internal/cache"
	"github.com/eventpulse/eventpulse-api/internal/constants"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
)

// EventService composes filtered, paginated event listings and the admin
// mutations over events.
type EventService struct {
	eventRepo  repository.EventRepository
	artistRepo repository.ArtistRepository
	eventCache *cache.EventCache
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, artistRepo repository.ArtistRepository, eventCache *cache.EventCache) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		artistRepo: artistRepo,
		eventCache: eventCache,
	}
}

// ListEventsInput holds the raw listing parameters as received from the
// request, before validation. Date strings accept YYYY-MM-DD or RFC3339.
type ListEventsInput struct {
	Type      string
	Subtype   string
	City      string
	StartDate string
	EndDate   string
	UserID    *uint64
	Page      int
	Limit     int
}

// ListEvents validates the filters and returns the matching page of events
// plus the total match count. The limit ceiling is the only silent clamp;
// every other out-of-domain value is a validation failure.
func (s *EventService) ListEvents(input ListEventsInput) ([]models.Event, int64, int, error) {
	filter := repository.EventFilter{AnnotateUserID: input.UserID}
	verr := &ValidationError{}

	if input.Type != "" {
		t := models.EventType(input.Type)
		if !models.ValidEventType(t) {
			verr.add("type", "must be one of: concert, festival, exhibition, conference")
		} else {
			filter.Type = &t
		}
	}
	if input.Subtype != "" {
		st := models.EventSubtype(input.Subtype)
		if !models.ValidEventSubtype(st) {
			verr.add("subtype", "unrecognized subtype")
		} else {
			filter.Subtype = &st
		}
	}
	if input.City != "" {
		city := strings.TrimSpace(input.City)
		filter.City = &city
	}
	if input.StartDate != "" {
		t, err := parseDate(input.StartDate)
		if err != nil {
			verr.add("startDate", "must be a date (YYYY-MM-DD or RFC3339)")
		} else {
			filter.StartDate = &t
		}
	}
	if input.EndDate != "" {
		t, err := parseDate(input.EndDate)
		if err != nil {
			verr.add("endDate", "must be a date (YYYY-MM-DD or RFC3339)")
		} else {
			filter.EndDate = &t
		}
	}
	if input.Page < constants.MinPage {
		verr.add("page", "must be at least 1")
	}
	if input.Limit <= 0 {
		verr.add("limit", "must be greater than 0")
	}

	if err := verr.orNil(); err != nil {
		return nil, 0, 0, err
	}

	limit := input.Limit
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	filter.Page = input.Page
	filter.PageSize = limit

	events, total, err := s.eventRepo.List(filter)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list events: %w", err)
	}

	return events, total, limit, nil
}

// GetEvent returns an event with its artists resolved and, when userID is
// set, that user's participation row attached. Anonymous lookups are served
// through the cache when one is configured.
func (s *EventService) GetEvent(ctx context.Context, id uint64, userID *uint64) (*models.Event, error) {
	if userID == nil {
		if event, ok := s.eventCache.GetEvent(ctx, id); ok {
			return event, nil
		}
	}

	event, err := s.eventRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if userID == nil {
		s.eventCache.SetEvent(ctx, event)
	}

	return event, nil
}

// EventInput holds the admin-facing event payload.
type EventInput struct {
	Title       string
	Description string
	Banner      string
	StartDate   string
	EndDate     string
	StartTime   string
	OpenTime    string
	Latitude    float64
	Longitude   float64
	Place       string
	Address     string
	City        string
	Type        string
	Subtype     string
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(input EventInput) (*models.Event, error) {
	event, err := s.buildEvent(input)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// UpdateEvent validates and replaces an event's attributes.
func (s *EventService) UpdateEvent(ctx context.Context, id uint64, input EventInput) (*models.Event, error) {
	existing, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	updated, err := s.buildEvent(input)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.eventRepo.Update(updated); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.eventCache.InvalidateEvent(ctx, id)
	return updated, nil
}

// DeleteEvent removes an event along with its participation rows, messages
// and artist links.
func (s *EventService) DeleteEvent(ctx context.Context, id uint64) error {
	if _, err := s.eventRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.eventCache.InvalidateEvent(ctx, id)
	return nil
}

// AttachArtist links an artist to an event; both must exist.
func (s *EventService) AttachArtist(ctx context.Context, eventID, artistID uint64) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}
	if _, err := s.artistRepo.FindByID(artistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArtistNotFound
		}
		return fmt.Errorf("failed to find artist: %w", err)
	}

	if err := s.eventRepo.AttachArtist(eventID, artistID); err != nil {
		return fmt.Errorf("failed to attach artist: %w", err)
	}

	s.eventCache.InvalidateEvent(ctx, eventID)
	return nil
}

// DetachArtist unlinks an artist from an event.
func (s *EventService) DetachArtist(ctx context.Context, eventID, artistID uint64) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if err := s.eventRepo.DetachArtist(eventID, artistID); err != nil {
		return fmt.Errorf("failed to detach artist: %w", err)
	}

	s.eventCache.InvalidateEvent(ctx, eventID)
	return nil
}

func (s *EventService) buildEvent(input EventInput) (*models.Event, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		verr.add("title", "is required")
	}

	eventType := models.EventType(input.Type)
	if !models.ValidEventType(eventType) {
		verr.add("type", "must be one of: concert, festival, exhibition, conference")
	}

	var subtype models.EventSubtype
	if input.Subtype != "" {
		subtype = models.EventSubtype(input.Subtype)
		if !models.ValidEventSubtype(subtype) {
			verr.add("subtype", "unrecognized subtype")
		}
	}

	var startDate time.Time
	if input.StartDate == "" {
		verr.add("startDate", "is required")
	} else {
		t, err := parseDate(input.StartDate)
		if err != nil {
			verr.add("startDate", "must be a date (YYYY-MM-DD or RFC3339)")
		} else {
			startDate = t
		}
	}

	var endDate *time.Time
	if input.EndDate != "" {
		t, err := parseDate(input.EndDate)
		if err != nil {
			verr.add("endDate", "must be a date (YYYY-MM-DD or RFC3339)")
		} else if !startDate.IsZero() && t.Before(startDate) {
			verr.add("endDate", "must not precede startDate")
		} else {
			endDate = &t
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	return &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Banner:      input.Banner,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   input.StartTime,
		OpenTime:    input.OpenTime,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Place:       input.Place,
		Address:     input.Address,
		City:        strings.TrimSpace(input.City),
		Type:        eventType,
		Subtype:     subtype,
	}, nil
}

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
