package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripService struct {
	tripRepo models.TripRepo
	notifier Notifier
	logger   *slog.Logger
}

func NewTripService(tripRepo models.TripRepo, notifier Notifier, logger *slog.Logger) *TripService {
	return &TripService{
		tripRepo: tripRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (ts *TripService) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if err := trip.ValidateTrip(); err != nil {
		return nil, err
	}
	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	return ts.tripRepo.CreateTrip(ctx, trip)
}

func (ts *TripService) GetTrip(ctx context.Context, id primitive.ObjectID, touristID uuid.UUID) (*models.Trip, error) {
	trip, err := ts.tripRepo.GetTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.TouristID != touristID {
		return nil, fmt.Errorf("%w: trip belongs to another tourist", models.ErrUnauthorized)
	}
	return trip, nil
}

func (ts *TripService) ListTrips(ctx context.Context, touristID uuid.UUID) ([]*models.Trip, error) {
	if touristID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid tourist ID", models.ErrValidation)
	}
	return ts.tripRepo.ListTripsByTourist(ctx, touristID)
}

func (ts *TripService) UpdateTrip(ctx context.Context, id primitive.ObjectID, touristID uuid.UUID, update map[string]interface{}) (*models.Trip, error) {
	trip, err := ts.tripRepo.GetTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.TouristID != touristID {
		return nil, fmt.Errorf("%w: trip belongs to another tourist", models.ErrUnauthorized)
	}
	delete(update, "tourist_id")
	if len(update) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}
	return ts.tripRepo.UpdateTrip(ctx, id, update)
}

func (ts *TripService) DeleteTrip(ctx context.Context, id primitive.ObjectID, touristID uuid.UUID) error {
	trip, err := ts.tripRepo.GetTripByID(ctx, id)
	if err != nil {
		return err
	}
	if trip.TouristID != touristID {
		return fmt.Errorf("%w: trip belongs to another tourist", models.ErrUnauthorized)
	}
	return ts.tripRepo.DeleteTrip(ctx, id)
}

// SendUpcomingReminders dispatches a reminder notification for every trip
// starting within the window. Per-trip dispatch failures are logged and the
// sweep continues; the count of successfully dispatched reminders is
// returned.
func (ts *TripService) SendUpcomingReminders(ctx context.Context, window time.Duration) (int, error) {
	trips, err := ts.tripRepo.ListTripsStartingBefore(ctx, time.Now().Add(window))
	if err != nil {
		return 0, fmt.Errorf("failed to load upcoming trips: %w", err)
	}

	sent := 0
	for _, trip := range trips {
		_, err := ts.notifier.Dispatch(ctx, models.TripReminderEvent{
			TouristID: trip.TouristID,
			TripID:    trip.ID.Hex(),
			TripName:  trip.Name,
			StartDate: trip.StartDate,
		})
		if err != nil {
			ts.logger.Error("failed to dispatch trip reminder",
				"trip_id", trip.ID.Hex(),
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent, nil
}
