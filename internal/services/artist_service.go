package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"gorm.io/gorm"
)

var ErrArtistNameRequired = errors.New("artist name cannot be empty")

// ArtistService provides the admin CRUD over artists.
type ArtistService struct {
	artistRepo repository.ArtistRepository
}

// NewArtistService creates a new ArtistService.
func NewArtistService(artistRepo repository.ArtistRepository) *ArtistService {
	return &ArtistService{artistRepo: artistRepo}
}

// ArtistInput holds artist attributes for create/update.
type ArtistInput struct {
	Name  string
	Image string
}

// CreateArtist stores a new artist.
func (s *ArtistService) CreateArtist(input ArtistInput) (*models.Artist, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrArtistNameRequired
	}

	artist := &models.Artist{
		Name:  strings.TrimSpace(input.Name),
		Image: input.Image,
	}

	if err := s.artistRepo.Create(artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	return artist, nil
}

// GetArtist retrieves an artist by ID.
func (s *ArtistService) GetArtist(id uint64) (*models.Artist, error) {
	artist, err := s.artistRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to find artist: %w", err)
	}
	return artist, nil
}

// ListArtists returns a page of artists ordered by name.
func (s *ArtistService) ListArtists(page, limit int) ([]models.Artist, int64, error) {
	artists, total, err := s.artistRepo.List(page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, total, nil
}

// UpdateArtist replaces an artist's attributes.
func (s *ArtistService) UpdateArtist(id uint64, input ArtistInput) (*models.Artist, error) {
	artist, err := s.GetArtist(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrArtistNameRequired
	}

	artist.Name = strings.TrimSpace(input.Name)
	artist.Image = input.Image

	if err := s.artistRepo.Update(artist); err != nil {
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}

	return artist, nil
}

// DeleteArtist removes an artist and its event links.
func (s *ArtistService) DeleteArtist(id uint64) error {
	if _, err := s.GetArtist(id); err != nil {
		return err
	}

	if err := s.artistRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	return nil
}
