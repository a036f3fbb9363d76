package repository

import (
	"github.com/eventpulse/eventpulse-api/internal/database"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"gorm.io/gorm"
)

// GormParticipationRepository is a GORM implementation of ParticipationRepository
type GormParticipationRepository struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &GormParticipationRepository{db: db}
}

// Create inserts a new participation row
func (r *GormParticipationRepository) Create(record *models.EventUser) error {
	return r.db.Create(record).Error
}

// Find returns the participation row for a (user, event) pair
func (r *GormParticipationRepository) Find(userID, eventID uint64) (*models.EventUser, error) {
	var record models.EventUser
	if err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateFlag writes one flag column of the row for a (user, event) pair.
// Scoping the write to the single column keeps a concurrent toggle of the
// other facet intact; the map form writes the value even when it is false.
func (r *GormParticipationRepository) UpdateFlag(userID, eventID uint64, column string, value bool) error {
	return r.db.Model(&models.EventUser{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Updates(map[string]interface{}{column: value}).Error
}

// Delete removes the row for a (user, event) pair
func (r *GormParticipationRepository) Delete(userID, eventID uint64) error {
	return r.db.Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.EventUser{}).Error
}

// ListFavoriteEvents returns the user's bookmarked events, most recently
// bookmarked first (participation creation time, not event start date).
func (r *GormParticipationRepository) ListFavoriteEvents(userID uint64, page, limit int) ([]models.Event, int64, error) {
	return r.listParticipationEvents(userID, "event_users.is_favorite = ?", page, limit)
}

// ListJoinedEvents returns the user's joined events, most recently joined first.
func (r *GormParticipationRepository) ListJoinedEvents(userID uint64, page, limit int) ([]models.Event, int64, error) {
	return r.listParticipationEvents(userID, "event_users.has_joined = ?", page, limit)
}

func (r *GormParticipationRepository) listParticipationEvents(userID uint64, flagCond string, page, limit int) ([]models.Event, int64, error) {
	var events []models.Event

	query := r.db.Model(&models.Event{}).
		Joins("JOIN event_users ON event_users.event_id = events.id").
		Where("event_users.user_id = ?", userID).
		Where(flagCond, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("event_users.created_at DESC").Scopes(database.Paginate(page, limit))

	if err := listQuery.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// CountFavorites counts the user's is_favorite rows
func (r *GormParticipationRepository) CountFavorites(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventUser{}).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Count(&count).Error
	return count, err
}
