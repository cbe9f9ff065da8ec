package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/tripbay/internal/container"
	"github.com/joshua-takyi/tripbay/internal/handlers"
	"github.com/joshua-takyi/tripbay/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "tripbay-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.CreateUserHandler(container.UserService))
		v1.POST("/login", handlers.LoginHandler(container.UserService))
		v1.POST("/refresh", handlers.RefreshTokenHandler(container.UserService))
		v1.POST("/logout", handlers.LogoutHandler())

		// browsing the catalog needs no account
		v1.GET("/services", handlers.ListServicesHandler(container.CatalogService))
		v1.GET("/services/search", handlers.SearchServicesHandler(container.CatalogService))
		v1.GET("/services/:id", handlers.GetServiceHandler(container.CatalogService))
		v1.GET("/attractions", handlers.ListAttractionsHandler(container.CatalogService))
		v1.GET("/attractions/search", handlers.SearchAttractionsHandler(container.CatalogService))
		v1.GET("/attractions/:id", handlers.GetAttractionHandler(container.CatalogService))
		v1.GET("/reviews/target/:target_id", handlers.ListTargetReviewsHandler(container.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.SupabaseClient, container.UserService, container.Logger))

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/:id", handlers.GetUserHandler(container.UserService))
		userRoutes.PATCH("/:id", handlers.UpdateUserHandler(container.UserService))
		userRoutes.DELETE("/:id", handlers.DeleteUserHandler(container.UserService))
	}

	serviceRoutes := protected.Group("/services")
	{
		serviceRoutes.POST("/", handlers.CreateServiceHandler(container.CatalogService))
		serviceRoutes.PATCH("/:id", handlers.UpdateServiceHandler(container.CatalogService))
		serviceRoutes.DELETE("/:id", handlers.DeleteServiceHandler(container.CatalogService))
		serviceRoutes.GET("/:id/bookings", handlers.ListServiceBookingsHandler(container.BookingService))
	}

	attractionRoutes := protected.Group("/attractions")
	{
		attractionRoutes.POST("/", handlers.CreateAttractionHandler(container.CatalogService))
		attractionRoutes.PATCH("/:id", handlers.UpdateAttractionHandler(container.CatalogService))
		attractionRoutes.DELETE("/:id", handlers.DeleteAttractionHandler(container.CatalogService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", handlers.CreateBookingHandler(container.BookingService))
		bookingRoutes.GET("/", handlers.ListMyBookingsHandler(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBookingHandler(container.BookingService))
		bookingRoutes.PATCH("/:id", handlers.UpdateBookingDetailsHandler(container.BookingService))
		bookingRoutes.PATCH("/:id/status", handlers.TransitionBookingHandler(container.BookingService))
		bookingRoutes.DELETE("/:id", handlers.DeleteBookingHandler(container.BookingService))
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.POST("/", handlers.CreateReviewHandler(container.ReviewService))
		reviewRoutes.PATCH("/:id", handlers.UpdateReviewHandler(container.ReviewService))
		reviewRoutes.DELETE("/:id", handlers.DeleteReviewHandler(container.ReviewService))
	}

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("/", handlers.ListNotificationsHandler(container.NotificationService))
		notificationRoutes.PATCH("/:id/read", handlers.MarkNotificationReadHandler(container.NotificationService))
		notificationRoutes.PATCH("/read-all", handlers.MarkAllNotificationsReadHandler(container.NotificationService))
	}

	tripRoutes := protected.Group("/trips")
	{
		tripRoutes.POST("/", handlers.CreateTripHandler(container.TripService))
		tripRoutes.GET("/", handlers.ListTripsHandler(container.TripService))
		tripRoutes.GET("/:id", handlers.GetTripHandler(container.TripService))
		tripRoutes.PATCH("/:id", handlers.UpdateTripHandler(container.TripService))
		tripRoutes.DELETE("/:id", handlers.DeleteTripHandler(container.TripService))
		tripRoutes.POST("/reminders", handlers.SendTripRemindersHandler(container.TripService))
	}

	adRoutes := protected.Group("/ads")
	{
		adRoutes.POST("/", handlers.CreateAdHandler(container.AdService))
		adRoutes.GET("/", handlers.ListMyAdsHandler(container.AdService))
		adRoutes.GET("/pending", handlers.ListPendingAdsHandler(container.AdService))
		adRoutes.PATCH("/:id/approve", handlers.ApproveAdHandler(container.AdService))
		adRoutes.PATCH("/:id/reject", handlers.RejectAdHandler(container.AdService))
		adRoutes.DELETE("/:id", handlers.DeleteAdHandler(container.AdService))
	}

	return r
}
