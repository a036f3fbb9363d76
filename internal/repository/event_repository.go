package repository

import (
	"strings"

	"github.com/eventpulse/eventpulse-api/internal/database"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// FindByID finds an event by ID with optional preloading
func (r *GormEventRepository) FindByID(id uint64, preload ...string) (*models.Event, error) {
	var event models.Event
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&event, id).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// FindByIDForUser finds an event with its artists resolved. When userID is
// non-nil the user's participation row is attached; an event with no row for
// that user simply carries an empty slice.
func (r *GormEventRepository) FindByIDForUser(id uint64, userID *uint64) (*models.Event, error) {
	var event models.Event
	query := r.db.Preload("Artists")

	if userID != nil {
		query = query.Preload("Participations", "user_id = ?", *userID)
	}

	if err := query.First(&event, id).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// List retrieves events matching the filter, ordered by ascending start date
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, int64, error) {
	var events []models.Event

	query := r.db.Model(&models.Event{})

	if filter.Type != nil {
		query = query.Where("events.type = ?", *filter.Type)
	}
	if filter.Subtype != nil {
		query = query.Where("events.subtype = ?", *filter.Subtype)
	}
	if filter.City != nil {
		// Exact match first so an index can serve it, falling back to a
		// case-insensitive substring match. Either arm returns the event;
		// callers cannot tell which one hit.
		pattern := "%" + strings.ToLower(*filter.City) + "%"
		query = query.Where("events.city = ? OR LOWER(events.city) LIKE ?", *filter.City, pattern)
	}
	if filter.StartDate != nil {
		query = query.Where("events.start_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("events.end_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("events.start_date ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if filter.AnnotateUserID != nil {
		listQuery = listQuery.Preload("Participations", "user_id = ?", *filter.AnnotateUserID)
	}

	if err := listQuery.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update updates an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete soft deletes an event and hard deletes its dependent rows, standing
// in for the store-level cascade.
func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventUser{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.EventArtist{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Event{}, id).Error
	})
}

// AttachArtist links an artist to an event. Re-attaching an already linked
// artist is a no-op.
func (r *GormEventRepository) AttachArtist(eventID, artistID uint64) error {
	link := models.EventArtist{EventID: eventID, ArtistID: artistID}
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// DetachArtist unlinks an artist from an event
func (r *GormEventRepository) DetachArtist(eventID, artistID uint64) error {
	return r.db.Where("event_id = ? AND artist_id = ?", eventID, artistID).
		Delete(&models.EventArtist{}).Error
}
