package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/tripbay/internal/config"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/notify"
	"github.com/joshua-takyi/tripbay/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	UserService         *services.UserService
	CatalogService      *services.CatalogService
	BookingService      *services.BookingService
	ReviewService       *services.ReviewService
	RatingService       *services.RatingService
	NotificationService *services.NotificationService
	TripService         *services.TripService
	AdService           *services.AdService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongo := models.MongodbNewRepo(mongoDBClient)

	var emailSender notify.Sender
	if cfg.BrevoAPIKey != "" {
		emailSender = notify.NewBrevoSender(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName)
	}

	notificationService := services.NewNotificationService(mongo, supa, emailSender, logger)
	ratingService := services.NewRatingService(mongo, mongo)
	userService := services.NewUserService(supa, notificationService, logger)
	catalogService := services.NewCatalogService(mongo)
	bookingService := services.NewBookingService(mongo, mongo, notificationService, logger)
	reviewService := services.NewReviewService(mongo, mongo, ratingService, notificationService, logger)
	tripService := services.NewTripService(mongo, notificationService, logger)
	adService := services.NewAdService(mongo, notificationService)

	return &Container{
		Logger:              logger,
		Cloudinary:          cloudinary,
		SupabaseClient:      supabaseClient,
		MongoDBClient:       mongoDBClient,
		UserService:         userService,
		CatalogService:      catalogService,
		BookingService:      bookingService,
		ReviewService:       reviewService,
		RatingService:       ratingService,
		NotificationService: notificationService,
		TripService:         tripService,
		AdService:           adService,
	}
}
