package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eventpulse/eventpulse-api/internal/database"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"github.com/eventpulse/eventpulse-api/internal/services"
)

// BookmarkHandlerTestSuite defines the test suite for BookmarkHandler
type BookmarkHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BookmarkHandler
}

// SetupTest runs before each test
func (suite *BookmarkHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventUser{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	service := services.NewParticipationService(
		repository.NewParticipationRepository(suite.db),
		repository.NewEventRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
	suite.handler = NewBookmarkHandler(service)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BookmarkHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *BookmarkHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(user)
	return user
}

func (suite *BookmarkHandlerTestSuite) createTestEvent(title string) *models.Event {
	event := &models.Event{
		Title:     title,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		City:      "Paris",
		Type:      models.EventTypeConcert,
	}
	suite.db.Create(event)
	return event
}

// Helper function to create authenticated context
func (suite *BookmarkHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func (suite *BookmarkHandlerTestSuite) TestAddBookmark_Success() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")

	body, _ := json.Marshal(map[string]uint64{"event_id": event.ID})
	c, w := suite.createAuthContext("POST", "/api/bookmarks", body, user.ID)

	suite.handler.AddBookmark(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["is_favorite"])
	assert.Equal(suite.T(), false, data["has_joined"])
}

func (suite *BookmarkHandlerTestSuite) TestAddBookmark_EventNotFound() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]uint64{"event_id": 999})
	c, w := suite.createAuthContext("POST", "/api/bookmarks", body, user.ID)

	suite.handler.AddBookmark(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *BookmarkHandlerTestSuite) TestAddBookmark_MissingEventID() {
	user := suite.createTestUser("test@example.com")

	c, w := suite.createAuthContext("POST", "/api/bookmarks", []byte(`{}`), user.ID)

	suite.handler.AddBookmark(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *BookmarkHandlerTestSuite) TestRemoveBookmark_Success() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")
	suite.db.Create(&models.EventUser{UserID: user.ID, EventID: event.ID, IsFavorite: true})

	c, w := suite.createAuthContext("DELETE", "/api/bookmarks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "eventID", Value: "1"}}

	suite.handler.RemoveBookmark(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["removed"])
}

func (suite *BookmarkHandlerTestSuite) TestRemoveBookmark_NoOp() {
	user := suite.createTestUser("test@example.com")
	suite.createTestEvent("Test Concert")

	c, w := suite.createAuthContext("DELETE", "/api/bookmarks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "eventID", Value: "1"}}

	suite.handler.RemoveBookmark(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), false, data["removed"])
}

func (suite *BookmarkHandlerTestSuite) TestIsBookmarked() {
	user := suite.createTestUser("test@example.com")
	event := suite.createTestEvent("Test Concert")
	suite.db.Create(&models.EventUser{UserID: user.ID, EventID: event.ID, IsFavorite: true})

	c, w := suite.createAuthContext("GET", "/api/bookmarks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "eventID", Value: "1"}}

	suite.handler.IsBookmarked(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["bookmarked"])
}

func (suite *BookmarkHandlerTestSuite) TestListBookmarks() {
	user := suite.createTestUser("test@example.com")
	first := suite.createTestEvent("First Concert")
	second := suite.createTestEvent("Second Concert")
	suite.db.Create(&models.EventUser{UserID: user.ID, EventID: first.ID, IsFavorite: true})
	suite.db.Create(&models.EventUser{UserID: user.ID, EventID: second.ID, HasJoined: true})

	c, w := suite.createAuthContext("GET", "/api/bookmarks", nil, user.ID)

	suite.handler.ListBookmarks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	events := response["data"].([]interface{})
	suite.Require().Len(events, 1)
	assert.Equal(suite.T(), "First Concert", events[0].(map[string]interface{})["title"])

	meta := response["meta"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), meta["total"])
	assert.Equal(suite.T(), false, meta["isEmpty"])
}

func (suite *BookmarkHandlerTestSuite) TestBookmarkStats() {
	user := suite.createTestUser("test@example.com")
	first := suite.createTestEvent("First Concert")
	second := suite.createTestEvent("Second Concert")
	suite.db.Create(&models.EventUser{UserID: user.ID, EventID: first.ID, IsFavorite: true})
	suite.db.Create(&models.EventUser{UserID: user.ID, EventID: second.ID, IsFavorite: true})

	c, w := suite.createAuthContext("GET", "/api/bookmarks/stats", nil, user.ID)

	suite.handler.BookmarkStats(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), data["totalBookmarks"])
}

func (suite *BookmarkHandlerTestSuite) TestJoinAndLeaveEvent() {
	user := suite.createTestUser("test@example.com")
	suite.createTestEvent("Test Concert")

	c, w := suite.createAuthContext("POST", "/api/events/1/join", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.JoinEvent(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("DELETE", "/api/events/1/join", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.LeaveEvent(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["left"])

	var count int64
	suite.db.Model(&models.EventUser{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *BookmarkHandlerTestSuite) TestInvalidEventIDParam() {
	user := suite.createTestUser("test@example.com")

	c, w := suite.createAuthContext("GET", "/api/bookmarks/abc", nil, user.ID)
	c.Params = gin.Params{{Key: "eventID", Value: "abc"}}

	suite.handler.IsBookmarked(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestBookmarkHandlerTestSuite runs the test suite
func TestBookmarkHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookmarkHandlerTestSuite))
}
