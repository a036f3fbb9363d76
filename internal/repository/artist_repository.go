package repository

import (
	"github.com/eventpulse/eventpulse-api/internal/database"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"gorm.io/gorm"
)

// GormArtistRepository is a GORM implementation of ArtistRepository
type GormArtistRepository struct {
	db *gorm.DB
}

// NewArtistRepository creates a new ArtistRepository
func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &GormArtistRepository{db: db}
}

// Create creates a new artist
func (r *GormArtistRepository) Create(artist *models.Artist) error {
	return r.db.Create(artist).Error
}

// FindByID finds an artist by ID
func (r *GormArtistRepository) FindByID(id uint64) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.First(&artist, id).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

// List retrieves artists ordered by name
func (r *GormArtistRepository) List(page, limit int) ([]models.Artist, int64, error) {
	var artists []models.Artist

	query := r.db.Model(&models.Artist{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("artists.name ASC").Scopes(database.Paginate(page, limit))

	if err := listQuery.Find(&artists).Error; err != nil {
		return nil, 0, err
	}

	return artists, total, nil
}

// Update updates an artist
func (r *GormArtistRepository) Update(artist *models.Artist) error {
	return r.db.Save(artist).Error
}

// Delete removes an artist and its event links
func (r *GormArtistRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", id).Delete(&models.EventArtist{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Artist{}, id).Error
	})
}
