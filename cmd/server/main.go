package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/cache"
	"github.com/eventpulse/eventpulse-api/internal/config"
	"github.com/eventpulse/eventpulse-api/internal/database"
	"github.com/eventpulse/eventpulse-api/internal/email"
	"github.com/eventpulse/eventpulse-api/internal/handlers"
	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"github.com/eventpulse/eventpulse-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Optional collaborators; both degrade to no-ops when unconfigured
	eventCache := cache.New(cfg)
	if eventCache == nil {
		log.Println("Event cache disabled (no Redis configured)")
	}
	mailer := email.New(cfg)
	if mailer == nil {
		log.Println("Mailer disabled (no SMTP configured)")
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	oauthRepo := repository.NewOAuthRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, mailer)
	eventService := services.NewEventService(eventRepo, artistRepo, eventCache)
	artistService := services.NewArtistService(artistRepo)
	participationService := services.NewParticipationService(participationRepo, eventRepo, userRepo)
	messageService := services.NewMessageService(messageRepo, eventRepo)
	oauthService := services.NewOAuthService(oauthRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret)
	eventHandler := handlers.NewEventHandler(eventService)
	artistHandler := handlers.NewArtistHandler(artistService)
	bookmarkHandler := handlers.NewBookmarkHandler(participationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	oauthHandler := handlers.NewOAuthHandler(oauthService)

	// Initialize Gin router
	r := gin.Default()

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "EventPulse API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.PATCH("/me", requireAuth, authHandler.UpdateProfile)
			auth.DELETE("/me", requireAuth, authHandler.DeleteAccount)
		}

		// Event routes: listing and detail are public, mutations are admin only
		events := api.Group("/events")
		{
			events.GET("", optionalAuth, eventHandler.ListEvents)
			events.GET("/:id", optionalAuth, eventHandler.GetEvent)
			events.POST("", requireAuth, middleware.RequireAdmin(), eventHandler.CreateEvent)
			events.PUT("/:id", requireAuth, middleware.RequireAdmin(), eventHandler.UpdateEvent)
			events.DELETE("/:id", requireAuth, middleware.RequireAdmin(), eventHandler.DeleteEvent)
			events.POST("/:id/artists", requireAuth, middleware.RequireAdmin(), eventHandler.AttachArtist)
			events.DELETE("/:id/artists/:artistID", requireAuth, middleware.RequireAdmin(), eventHandler.DetachArtist)

			// Message threads
			events.GET("/:id/messages", messageHandler.ListMessages)
			events.POST("/:id/messages", requireAuth, messageHandler.PostMessage)

			// Joined facet of the participation ledger
			events.POST("/:id/join", requireAuth, bookmarkHandler.JoinEvent)
			events.DELETE("/:id/join", requireAuth, bookmarkHandler.LeaveEvent)
		}

		// Messages (owner-only mutations)
		messages := api.Group("/messages")
		messages.Use(requireAuth)
		{
			messages.PATCH("/:id", messageHandler.UpdateMessage)
			messages.DELETE("/:id", messageHandler.DeleteMessage)
		}

		// Artist routes
		artists := api.Group("/artists")
		{
			artists.GET("", artistHandler.ListArtists)
			artists.POST("", requireAuth, middleware.RequireAdmin(), artistHandler.CreateArtist)
			artists.PUT("/:id", requireAuth, middleware.RequireAdmin(), artistHandler.UpdateArtist)
			artists.DELETE("/:id", requireAuth, middleware.RequireAdmin(), artistHandler.DeleteArtist)
		}

		// Bookmark facet of the participation ledger
		bookmarks := api.Group("/bookmarks")
		bookmarks.Use(requireAuth)
		{
			bookmarks.POST("", bookmarkHandler.AddBookmark)
			bookmarks.GET("", bookmarkHandler.ListBookmarks)
			bookmarks.GET("/stats", bookmarkHandler.BookmarkStats)
			bookmarks.GET("/:eventID", bookmarkHandler.IsBookmarked)
			bookmarks.DELETE("/:eventID", bookmarkHandler.RemoveBookmark)
		}

		// Joined event listing
		api.GET("/joined", requireAuth, bookmarkHandler.ListJoined)

		// External identity links
		oauth := api.Group("/oauth")
		oauth.Use(requireAuth)
		{
			oauth.POST("/link", oauthHandler.LinkProvider)
			oauth.DELETE("/link/:provider", oauthHandler.UnlinkProvider)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
