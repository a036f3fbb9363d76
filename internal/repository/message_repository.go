package repository

import (
	"github.com/eventpulse/eventpulse-api/internal/database"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(id uint64) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByEvent returns an event's messages oldest first, with the author preloaded
func (r *GormMessageRepository) ListByEvent(eventID uint64, page, limit int) ([]models.Message, int64, error) {
	var messages []models.Message

	query := r.db.Model(&models.Message{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("messages.created_at ASC").Scopes(database.Paginate(page, limit))

	if err := listQuery.Preload("User").Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// Update updates a message
func (r *GormMessageRepository) Update(message *models.Message) error {
	return r.db.Save(message).Error
}

// Delete removes a message
func (r *GormMessageRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Message{}, id).Error
}
