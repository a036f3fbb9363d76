package repository

import (
	"time"

	"github.com/eventpulse/eventpulse-api/internal/models"
)

// EventFilter holds the predicates of an event listing query. All set
// filters are AND-combined. AnnotateUserID, when non-nil, attaches that
// user's participation row to every returned event.
type EventFilter struct {
	Type           *models.EventType
	Subtype        *models.EventSubtype
	City           *string
	StartDate      *time.Time
	EndDate        *time.Time
	AnnotateUserID *uint64
	Page           int
	PageSize       int
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByID finds an event by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Event, error)

	// FindByIDForUser finds an event with artists resolved and the given
	// user's participation row attached.
	FindByIDForUser(id uint64, userID *uint64) (*models.Event, error)

	// List retrieves events matching the filter, ordered by ascending
	// start date. Tie order between events sharing a start date is the
	// store's natural row order.
	List(filter EventFilter) ([]models.Event, int64, error)

	// Update updates an event
	Update(event *models.Event) error

	// Delete soft deletes an event and removes its participation rows
	Delete(id uint64) error

	// AttachArtist links an artist to an event
	AttachArtist(eventID, artistID uint64) error

	// DetachArtist unlinks an artist from an event
	DetachArtist(eventID, artistID uint64) error
}

// Columns of the two participation facets.
const (
	FlagFavorite = "is_favorite"
	FlagJoined   = "has_joined"
)

// ParticipationRepository defines data access for participation records.
// Writers of event_users rows go exclusively through this interface.
type ParticipationRepository interface {
	// Create inserts a new participation row. A concurrent insert for the
	// same pair surfaces as gorm.ErrDuplicatedKey.
	Create(record *models.EventUser) error

	// Find returns the participation row for a (user, event) pair
	Find(userID, eventID uint64) (*models.EventUser, error)

	// UpdateFlag writes one flag column of the row for a (user, event)
	// pair, leaving the other facet untouched
	UpdateFlag(userID, eventID uint64, column string, value bool) error

	// Delete removes the row for a (user, event) pair
	Delete(userID, eventID uint64) error

	// ListFavoriteEvents returns the user's bookmarked events ordered by
	// participation creation time descending
	ListFavoriteEvents(userID uint64, page, limit int) ([]models.Event, int64, error)

	// ListJoinedEvents returns the user's joined events ordered by
	// participation creation time descending
	ListJoinedEvents(userID uint64, page, limit int) ([]models.Event, int64, error)

	// CountFavorites counts the user's is_favorite rows
	CountFavorites(userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error

	// Delete removes the user and its owned relations in one transaction
	Delete(id uint64) error
}

// ArtistRepository defines the interface for artist data access
type ArtistRepository interface {
	Create(artist *models.Artist) error
	FindByID(id uint64) (*models.Artist, error)
	List(page, limit int) ([]models.Artist, int64, error)
	Update(artist *models.Artist) error
	Delete(id uint64) error
}

// MessageRepository defines the interface for event message data access
type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id uint64) (*models.Message, error)

	// ListByEvent returns an event's messages oldest first
	ListByEvent(eventID uint64, page, limit int) ([]models.Message, int64, error)
	Update(message *models.Message) error
	Delete(id uint64) error
}

// OAuthRepository defines data access for external identity links
type OAuthRepository interface {
	Create(link *models.OAuthProvider) error
	FindByUserAndProvider(userID uint64, provider string) (*models.OAuthProvider, error)
	FindByProviderIdentity(provider, providerID string) (*models.OAuthProvider, error)
	Delete(userID uint64, provider string) error
}
