package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
)

// OAuthServiceTestSuite defines the test suite for OAuthService
type OAuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *OAuthService
}

// SetupTest runs before each test
func (suite *OAuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.OAuthProvider{},
	)
	suite.Require().NoError(err)

	suite.service = NewOAuthService(repository.NewOAuthRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *OAuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *OAuthServiceTestSuite) TestLinkProvider_Success() {
	link, err := suite.service.LinkProvider(1, "Google", "g-123")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "google", link.Provider)
	assert.Equal(suite.T(), "g-123", link.ProviderID)
}

func (suite *OAuthServiceTestSuite) TestLinkProvider_BlankFieldsRejected() {
	_, err := suite.service.LinkProvider(1, "   ", "g-123")
	assert.ErrorIs(suite.T(), err, ErrProviderFieldsRequired)

	_, err = suite.service.LinkProvider(1, "google", "   ")
	assert.ErrorIs(suite.T(), err, ErrProviderFieldsRequired)
}

func (suite *OAuthServiceTestSuite) TestLinkProvider_SameProviderTwice() {
	_, err := suite.service.LinkProvider(1, "google", "g-123")
	suite.Require().NoError(err)

	_, err = suite.service.LinkProvider(1, "google", "g-456")

	assert.ErrorIs(suite.T(), err, ErrProviderAlreadyLinked)
}

func (suite *OAuthServiceTestSuite) TestLinkProvider_IdentityClaimedByAnotherUser() {
	_, err := suite.service.LinkProvider(1, "google", "g-123")
	suite.Require().NoError(err)

	_, err = suite.service.LinkProvider(2, "google", "g-123")

	assert.ErrorIs(suite.T(), err, ErrIdentityAlreadyClaimed)
}

func (suite *OAuthServiceTestSuite) TestLinkProvider_DifferentProvidersAllowed() {
	_, err := suite.service.LinkProvider(1, "google", "g-123")
	suite.Require().NoError(err)

	_, err = suite.service.LinkProvider(1, "github", "gh-123")

	assert.NoError(suite.T(), err)
}

func (suite *OAuthServiceTestSuite) TestUnlinkProvider() {
	_, err := suite.service.LinkProvider(1, "google", "g-123")
	suite.Require().NoError(err)

	err = suite.service.UnlinkProvider(1, "google")
	assert.NoError(suite.T(), err)

	err = suite.service.UnlinkProvider(1, "google")
	assert.ErrorIs(suite.T(), err, ErrProviderLinkNotFound)
}

// TestOAuthServiceTestSuite runs the test suite
func TestOAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OAuthServiceTestSuite))
}
