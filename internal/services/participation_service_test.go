package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
)

// ParticipationServiceTestSuite defines the test suite for ParticipationService
type ParticipationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ParticipationService
}

// SetupTest runs before each test
func (suite *ParticipationServiceTestSuite) SetupTest() {
	var err error

	// TranslateError makes SQLite report unique violations as
	// gorm.ErrDuplicatedKey, the same way the MySQL driver does.
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventUser{},
	)
	suite.Require().NoError(err)

	suite.service = NewParticipationService(
		repository.NewParticipationRepository(suite.db),
		repository.NewEventRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *ParticipationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ParticipationServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(user)
	return user
}

func (suite *ParticipationServiceTestSuite) createTestEvent(title string) *models.Event {
	event := &models.Event{
		Title:     title,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		City:      "Paris",
		Type:      models.EventTypeConcert,
		Subtype:   models.SubtypeRock,
	}
	suite.db.Create(event)
	return event
}

func (suite *ParticipationServiceTestSuite) countRows() int64 {
	var count int64
	suite.db.Model(&models.EventUser{}).Count(&count)
	return count
}

func (suite *ParticipationServiceTestSuite) findRow(userID, eventID uint64) *models.EventUser {
	var record models.EventUser
	err := suite.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&record).Error
	if err != nil {
		return nil
	}
	return &record
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_CreatesRow() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	record, err := suite.service.AddBookmark(user.ID, event.ID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), record.IsFavorite)
	assert.False(suite.T(), record.HasJoined)
	assert.Equal(suite.T(), int64(1), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_Idempotent() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	record, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), record.IsFavorite)
	assert.Equal(suite.T(), int64(1), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_EventNotFound() {
	user := suite.createTestUser("test@example.com")

	_, err := suite.service.AddBookmark(user.ID, 999)

	assert.ErrorIs(suite.T(), err, ErrEventNotFound)
	assert.Equal(suite.T(), int64(0), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_UserNotFound() {
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.AddBookmark(999, event.ID)

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_PreservesJoinedFlag() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	record, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), record.IsFavorite)
	assert.True(suite.T(), record.HasJoined)
	assert.Equal(suite.T(), int64(1), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestRemoveBookmark_DeletesRowWhenOnlyFavorite() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	removed, err := suite.service.RemoveBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), removed)

	// No all-false row may survive the removal
	assert.Equal(suite.T(), int64(0), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestRemoveBookmark_DowngradesRowWhenJoined() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	removed, err := suite.service.RemoveBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), removed)

	record := suite.findRow(user.ID, event.ID)
	suite.Require().NotNil(record)
	assert.False(suite.T(), record.IsFavorite)
	assert.True(suite.T(), record.HasJoined)
}

func (suite *ParticipationServiceTestSuite) TestRemoveBookmark_NoOpWhenAbsent() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	removed, err := suite.service.RemoveBookmark(user.ID, event.ID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), removed)
}

func (suite *ParticipationServiceTestSuite) TestRemoveBookmark_NoOpWhenOnlyJoined() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	removed, err := suite.service.RemoveBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), removed)

	record := suite.findRow(user.ID, event.ID)
	suite.Require().NotNil(record)
	assert.True(suite.T(), record.HasJoined)
}

func (suite *ParticipationServiceTestSuite) TestLeaveEvent_DeletesRowWhenOnlyJoined() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	left, err := suite.service.LeaveEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), left)
	assert.Equal(suite.T(), int64(0), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestLeaveEvent_DowngradesRowWhenFavorite() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	left, err := suite.service.LeaveEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), left)

	record := suite.findRow(user.ID, event.ID)
	suite.Require().NotNil(record)
	assert.True(suite.T(), record.IsFavorite)
	assert.False(suite.T(), record.HasJoined)
}

func (suite *ParticipationServiceTestSuite) TestJoinEvent_Idempotent() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	record, err := suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), record.HasJoined)
	assert.Equal(suite.T(), int64(1), suite.countRows())
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_RecoversWhenInsertLosesRace() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	// The row lands after the service's lookup misses, so its insert hits
	// the unique constraint and it must re-read and update the winner's
	// row instead of failing.
	err := suite.db.Create(&models.EventUser{
		UserID:    user.ID,
		EventID:   event.ID,
		HasJoined: true,
	}).Error
	suite.Require().NoError(err)

	repo := &missFirstFindRepo{
		ParticipationRepository: repository.NewParticipationRepository(suite.db),
	}
	service := NewParticipationService(
		repo,
		repository.NewEventRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	record, err := service.AddBookmark(user.ID, event.ID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), record.IsFavorite)
	assert.True(suite.T(), record.HasJoined)
	assert.Equal(suite.T(), int64(1), suite.countRows())

	row := suite.findRow(user.ID, event.ID)
	suite.Require().NotNil(row)
	assert.True(suite.T(), row.IsFavorite)
	assert.True(suite.T(), row.HasJoined)
}

func (suite *ParticipationServiceTestSuite) TestAddBookmark_DoesNotRevertConcurrentJoin() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	// The stored row carries a join the service's read does not see yet;
	// setting the favorite must not write the stale joined value back.
	err := suite.db.Create(&models.EventUser{
		UserID:    user.ID,
		EventID:   event.ID,
		HasJoined: true,
	}).Error
	suite.Require().NoError(err)

	repo := &staleJoinReadRepo{
		ParticipationRepository: repository.NewParticipationRepository(suite.db),
	}
	service := NewParticipationService(
		repo,
		repository.NewEventRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	_, err = service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	row := suite.findRow(user.ID, event.ID)
	suite.Require().NotNil(row)
	assert.True(suite.T(), row.IsFavorite)
	assert.True(suite.T(), row.HasJoined)
}

func (suite *ParticipationServiceTestSuite) TestIsBookmarked() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	bookmarked, err := suite.service.IsBookmarked(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), bookmarked)

	_, err = suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	bookmarked, err = suite.service.IsBookmarked(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), bookmarked)
}

func (suite *ParticipationServiceTestSuite) TestIsBookmarked_JoinedOnlyRowIsNotABookmark() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	bookmarked, err := suite.service.IsBookmarked(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), bookmarked)
}

func (suite *ParticipationServiceTestSuite) TestGetUserBookmarks_FiltersByUserAndFlag() {
	user := suite.createTestUser("test@example.com")
	other := suite.createTestUser("other@example.com")
	first := suite.createTestEvent("First Concert")
	second := suite.createTestEvent("Second Concert")
	third := suite.createTestEvent("Third Concert")

	_, err := suite.service.AddBookmark(user.ID, first.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.AddBookmark(user.ID, second.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.JoinEvent(user.ID, third.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.AddBookmark(other.ID, third.ID)
	assert.NoError(suite.T(), err)

	events, total, err := suite.service.GetUserBookmarks(user.ID, 1, 20)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), events, 2)
	for _, event := range events {
		assert.NotEqual(suite.T(), third.ID, event.ID)
	}
}

func (suite *ParticipationServiceTestSuite) TestGetUserJoinedEvents() {
	user := suite.createTestUser("test@example.com")
	joined := suite.createTestEvent("Joined Concert")
	bookmarked := suite.createTestEvent("Bookmarked Concert")

	_, err := suite.service.JoinEvent(user.ID, joined.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.AddBookmark(user.ID, bookmarked.ID)
	assert.NoError(suite.T(), err)

	events, total, err := suite.service.GetUserJoinedEvents(user.ID, 1, 20)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(events, 1)
	assert.Equal(suite.T(), joined.ID, events[0].ID)
}

func (suite *ParticipationServiceTestSuite) TestGetBookmarkStats() {
	user := suite.createTestUser("test@example.com")
	first := suite.createTestEvent("First Concert")
	second := suite.createTestEvent("Second Concert")
	joined := suite.createTestEvent("Joined Concert")

	_, err := suite.service.AddBookmark(user.ID, first.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.AddBookmark(user.ID, second.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.JoinEvent(user.ID, joined.ID)
	assert.NoError(suite.T(), err)

	stats, err := suite.service.GetBookmarkStats(user.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), stats.TotalBookmarks)
}

// TestBookmarkLifecycle walks one pair through every transition: bookmark,
// join, unbookmark (downgrade), leave (delete).
func (suite *ParticipationServiceTestSuite) TestBookmarkLifecycle() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	_, err := suite.service.AddBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.JoinEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)

	record := suite.findRow(user.ID, event.ID)
	suite.Require().NotNil(record)
	assert.True(suite.T(), record.IsFavorite)
	assert.True(suite.T(), record.HasJoined)
	assert.Equal(suite.T(), int64(1), suite.countRows())

	removed, err := suite.service.RemoveBookmark(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), removed)
	assert.Equal(suite.T(), int64(1), suite.countRows())

	left, err := suite.service.LeaveEvent(user.ID, event.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), left)
	assert.Equal(suite.T(), int64(0), suite.countRows())
}

// missFirstFindRepo reports the first lookup as not found, reproducing the
// window where another request inserts the row between the service's miss
// and its own insert.
type missFirstFindRepo struct {
	repository.ParticipationRepository
	missed bool
}

func (r *missFirstFindRepo) Find(userID, eventID uint64) (*models.EventUser, error) {
	if !r.missed {
		r.missed = true
		return nil, gorm.ErrRecordNotFound
	}
	return r.ParticipationRepository.Find(userID, eventID)
}

// staleJoinReadRepo hands out reads taken before a concurrent join landed.
type staleJoinReadRepo struct {
	repository.ParticipationRepository
}

func (r *staleJoinReadRepo) Find(userID, eventID uint64) (*models.EventUser, error) {
	record, err := r.ParticipationRepository.Find(userID, eventID)
	if err != nil {
		return nil, err
	}
	stale := *record
	stale.HasJoined = false
	return &stale, nil
}

// TestParticipationServiceTestSuite runs the test suite
func TestParticipationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ParticipationServiceTestSuite))
}
