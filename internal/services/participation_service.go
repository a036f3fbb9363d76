package services

import (
	"errors"
	"fmt"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
)

// ParticipationService is the single writer of participation records. Each
// (user, event) pair has at most one row carrying two independent flags;
// a row with both flags false is deleted rather than stored. Flag writes go
// through one column at a time so touching one facet can never revert a
// concurrent change to the other.
type ParticipationService struct {
	participationRepo repository.ParticipationRepository
	eventRepo         repository.EventRepository
	userRepo          repository.UserRepository
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(participationRepo repository.ParticipationRepository, eventRepo repository.EventRepository, userRepo repository.UserRepository) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		userRepo:          userRepo,
	}
}

// BookmarkStats is the payload of the bookmark stats endpoint.
type BookmarkStats struct {
	TotalBookmarks int64 `json:"totalBookmarks"`
}

// AddBookmark marks an event as a favorite of the user. Calling it twice
// yields the same state as calling it once; has_joined is never touched.
func (s *ParticipationService) AddBookmark(userID, eventID uint64) (*models.EventUser, error) {
	return s.setFlag(userID, eventID, repository.FlagFavorite)
}

// JoinEvent marks an event as joined by the user, idempotently; is_favorite
// is never touched.
func (s *ParticipationService) JoinEvent(userID, eventID uint64) (*models.EventUser, error) {
	return s.setFlag(userID, eventID, repository.FlagJoined)
}

// RemoveBookmark clears the favorite facet. It reports whether any state
// changed: false when no favorite existed (a no-op, not an error). When the
// user still has the event joined the row is downgraded, otherwise deleted.
func (s *ParticipationService) RemoveBookmark(userID, eventID uint64) (bool, error) {
	return s.clearFlag(userID, eventID, repository.FlagFavorite)
}

// LeaveEvent clears the joined facet, mirroring RemoveBookmark.
func (s *ParticipationService) LeaveEvent(userID, eventID uint64) (bool, error) {
	return s.clearFlag(userID, eventID, repository.FlagJoined)
}

// IsBookmarked reports whether the user currently has the event favorited.
func (s *ParticipationService) IsBookmarked(userID, eventID uint64) (bool, error) {
	record, err := s.participationRepo.Find(userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find participation record: %w", err)
	}

	return record.IsFavorite, nil
}

// GetUserBookmarks returns the user's bookmarked events, most recently
// bookmarked first.
func (s *ParticipationService) GetUserBookmarks(userID uint64, page, limit int) ([]models.Event, int64, error) {
	events, total, err := s.participationRepo.ListFavoriteEvents(userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return events, total, nil
}

// GetUserJoinedEvents returns the user's joined events, most recently joined first.
func (s *ParticipationService) GetUserJoinedEvents(userID uint64, page, limit int) ([]models.Event, int64, error) {
	events, total, err := s.participationRepo.ListJoinedEvents(userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list joined events: %w", err)
	}
	return events, total, nil
}

// GetBookmarkStats counts the user's bookmarked events.
func (s *ParticipationService) GetBookmarkStats(userID uint64) (*BookmarkStats, error) {
	count, err := s.participationRepo.CountFavorites(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return &BookmarkStats{TotalBookmarks: count}, nil
}

// setFlag sets one facet on the (user, event) row, creating it if absent.
// A concurrent insert for the same pair loses against the unique constraint
// and surfaces as gorm.ErrDuplicatedKey; the loser re-reads the winner's row
// and updates it, so the race never reaches the caller.
func (s *ParticipationService) setFlag(userID, eventID uint64, column string) (*models.EventUser, error) {
	if err := s.ensureEventExists(eventID); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}

	record, err := s.participationRepo.Find(userID, eventID)
	if err == nil {
		return s.raiseFlag(record, column)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find participation record: %w", err)
	}

	record = &models.EventUser{UserID: userID, EventID: eventID}
	setFlagValue(record, column, true)

	err = s.participationRepo.Create(record)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("failed to create participation record: %w", err)
	}

	// Lost the insert race; the row exists now.
	record, err = s.participationRepo.Find(userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read participation record after conflict: %w", err)
	}

	return s.raiseFlag(record, column)
}

// raiseFlag sets one facet on an existing row. Only that column is written.
func (s *ParticipationService) raiseFlag(record *models.EventUser, column string) (*models.EventUser, error) {
	if flagSet(record, column) {
		return record, nil
	}

	setFlagValue(record, column, true)
	if err := s.participationRepo.UpdateFlag(record.UserID, record.EventID, column, true); err != nil {
		return nil, fmt.Errorf("failed to update participation record: %w", err)
	}

	return record, nil
}

// clearFlag removes one facet from the row. When the other facet still holds
// the row alive only the cleared column is written; otherwise the row is
// deleted so no all-false row is ever stored.
func (s *ParticipationService) clearFlag(userID, eventID uint64, column string) (bool, error) {
	record, err := s.participationRepo.Find(userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find participation record: %w", err)
	}

	if !flagSet(record, column) {
		return false, nil
	}

	setFlagValue(record, column, false)

	if otherFlagSet(record, column) {
		if err := s.participationRepo.UpdateFlag(userID, eventID, column, false); err != nil {
			return false, fmt.Errorf("failed to update participation record: %w", err)
		}
		return true, nil
	}

	if err := s.participationRepo.Delete(userID, eventID); err != nil {
		return false, fmt.Errorf("failed to delete participation record: %w", err)
	}

	return true, nil
}

// flagSet reads the facet named by column.
func flagSet(record *models.EventUser, column string) bool {
	if column == repository.FlagJoined {
		return record.HasJoined
	}
	return record.IsFavorite
}

// otherFlagSet reads the facet column does not name.
func otherFlagSet(record *models.EventUser, column string) bool {
	if column == repository.FlagJoined {
		return record.IsFavorite
	}
	return record.HasJoined
}

func setFlagValue(record *models.EventUser, column string, value bool) {
	if column == repository.FlagJoined {
		record.HasJoined = value
	} else {
		record.IsFavorite = value
	}
}

func (s *ParticipationService) ensureEventExists(eventID uint64) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to verify event: %w", err)
	}
	return nil
}

func (s *ParticipationService) ensureUserExists(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}
