package transport

import (
	"time"

	"github.com/eventhub/eventhub-api/internal/transport/middleware"
	"github.com/eventhub/eventhub-api/pkg/auth"

	"github.com/gin-gonic/gin"
)

func InitRoutes(
	tokens *auth.TokenManager,
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	registrationHandler *RegistrationHandler,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireAdmin()

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/profile", requireAuth, authHandler.Profile)
			authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/stats", requireAuth, requireAdmin, eventHandler.GetStats)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", requireAuth, requireAdmin, eventHandler.CreateEvent)
			events.PUT("/:id", requireAuth, requireAdmin, eventHandler.UpdateEvent)
			events.DELETE("/:id", requireAuth, requireAdmin, eventHandler.DeleteEvent)
		}

		// Registration routes
		registrations := api.Group("/registrations", requireAuth)
		{
			registrations.POST("", registrationHandler.Register)
			registrations.GET("/user", registrationHandler.GetUserRegistrations)
			registrations.GET("/event/:eventId", requireAdmin, registrationHandler.GetEventRegistrations)
			registrations.DELETE("/:id", registrationHandler.Cancel)
			registrations.GET("/check/:eventId", registrationHandler.CheckStatus)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
