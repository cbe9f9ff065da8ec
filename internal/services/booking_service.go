package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/helpers"
	"github.com/joshua-takyi/tripbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService owns the booking lifecycle: creation, detail updates, status
// transitions and deletion. Transition policy itself lives in
// models.CanTransition; this service resolves the storage facts the policy
// needs (booking, ownership) and applies the notification side effects after
// the primary write has been persisted.
type BookingService struct {
	bookingRepo models.BookingRepo
	catalogRepo models.CatalogRepo
	notifier    Notifier
	logger      *slog.Logger

	// injectable clock for date-in-future checks
	now func() time.Time
}

func NewBookingService(bookingRepo models.BookingRepo, catalogRepo models.CatalogRepo, notifier Notifier, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

func (bs *BookingService) CreateBooking(ctx context.Context, touristID, serviceID uuid.UUID, serviceDate time.Time, numberOfPeople int, specialRequests string) (*models.Booking, error) {
	if touristID == uuid.Nil || serviceID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid tourist or service ID", models.ErrValidation)
	}

	svc, err := bs.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if !serviceDate.After(bs.now()) {
		return nil, fmt.Errorf("%w: service date must be in the future", models.ErrValidation)
	}

	if numberOfPeople < 1 {
		numberOfPeople = 1
	}

	now := bs.now()
	booking := &models.Booking{
		TouristID:       touristID,
		ServiceID:       serviceID,
		ServiceDate:     serviceDate,
		NumberOfPeople:  numberOfPeople,
		TotalPrice:      svc.UnitPrice * float64(numberOfPeople),
		SpecialRequests: helpers.StringTrim(specialRequests),
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// Side effect only after the primary write committed.
	_, err = bs.notifier.Dispatch(ctx, models.BookingReceivedEvent{
		OwnerID:     svc.OwnerID,
		BookingID:   created.ID.Hex(),
		ServiceName: svc.Name,
		ServiceDate: created.ServiceDate,
		People:      created.NumberOfPeople,
		Revenue:     created.TotalPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("booking created but notification dispatch failed: %w", err)
	}

	return created, nil
}

// BookingDetailsUpdate carries the tourist-editable fields; nil means
// "leave unchanged".
type BookingDetailsUpdate struct {
	ServiceDate     *time.Time
	NumberOfPeople  *int
	SpecialRequests *string
}

// UpdateBookingDetails applies silent detail edits by the booking's own
// tourist. Rejected once the booking is confirmed or completed; the tourist
// must cancel and recreate instead.
func (bs *BookingService) UpdateBookingDetails(ctx context.Context, bookingID primitive.ObjectID, touristID uuid.UUID, changes BookingDetailsUpdate) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.TouristID != touristID {
		return nil, fmt.Errorf("%w: booking belongs to another tourist", models.ErrUnauthorized)
	}
	if booking.Status == models.BookingConfirmed || booking.Status == models.BookingCompleted {
		return nil, fmt.Errorf("%w: cannot edit a %s booking", models.ErrValidation, booking.Status)
	}

	update := map[string]interface{}{}

	if changes.ServiceDate != nil {
		if !changes.ServiceDate.After(bs.now()) {
			return nil, fmt.Errorf("%w: service date must be in the future", models.ErrValidation)
		}
		update["service_date"] = *changes.ServiceDate
	}

	if changes.NumberOfPeople != nil {
		people := *changes.NumberOfPeople
		if people < 1 {
			return nil, fmt.Errorf("%w: number of people must be at least 1", models.ErrValidation)
		}
		svc, err := bs.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
		if err != nil {
			return nil, err
		}
		update["number_of_people"] = people
		update["total_price"] = svc.UnitPrice * float64(people)
	}

	if changes.SpecialRequests != nil {
		update["special_requests"] = helpers.StringTrim(*changes.SpecialRequests)
	}

	if len(update) == 0 {
		return booking, nil
	}

	return bs.bookingRepo.UpdateBooking(ctx, bookingID, update)
}

// TransitionBooking moves a booking to a requested status on behalf of an
// actor. The target is validated before authorization so an unknown status is
// always a validation error, then the pure policy decides, then the status is
// persisted, then the matching notification is dispatched.
func (bs *BookingService) TransitionBooking(ctx context.Context, bookingID primitive.ObjectID, requested models.BookingStatus, actorID uuid.UUID, role models.Role) (*models.Booking, error) {
	switch requested {
	case models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
	default:
		return nil, fmt.Errorf("%w: invalid target status %q", models.ErrValidation, requested)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	svcName := "your booking"
	actor := models.Actor{ID: actorID, Role: role}
	svc, svcErr := bs.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
	if svcErr != nil {
		bs.logger.Error("failed to load service for booking transition",
			"booking_id", bookingID.Hex(),
			"service_id", booking.ServiceID,
			"error", svcErr,
		)
	} else {
		svcName = svc.Name
		if role == models.RoleOwner && svc.OwnerID == actorID {
			actor.OwnedServiceIDs = []uuid.UUID{svc.ID}
		}
	}

	if err := models.CanTransition(booking, requested, actor); err != nil {
		return nil, err
	}

	updated, err := bs.bookingRepo.UpdateBooking(ctx, bookingID, map[string]interface{}{"status": requested})
	if err != nil {
		return nil, fmt.Errorf("failed to persist booking transition: %w", err)
	}

	var event models.NotifyEvent
	switch requested {
	case models.BookingConfirmed:
		event = models.BookingConfirmedEvent{TouristID: booking.TouristID, BookingID: bookingID.Hex(), ServiceName: svcName}
	case models.BookingCancelled:
		event = models.BookingCancelledEvent{TouristID: booking.TouristID, BookingID: bookingID.Hex(), ServiceName: svcName}
	case models.BookingCompleted:
		event = models.BookingCompletedEvent{TouristID: booking.TouristID, BookingID: bookingID.Hex(), ServiceName: svcName}
	}

	if _, err := bs.notifier.Dispatch(ctx, event); err != nil {
		return nil, fmt.Errorf("booking transitioned but notification dispatch failed: %w", err)
	}

	return updated, nil
}

// HardDeleteBooking removes a booking outright with no status guard: a
// tourist can delete a confirmed booking without going through cancellation.
// Kept as a distinct operation so tightening the policy later is a local
// change.
func (bs *BookingService) HardDeleteBooking(ctx context.Context, bookingID primitive.ObjectID, actorID uuid.UUID, role models.Role) error {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	switch role {
	case models.RoleAdmin:
	case models.RoleTourist:
		if booking.TouristID != actorID {
			return fmt.Errorf("%w: booking belongs to another tourist", models.ErrUnauthorized)
		}
	default:
		// Service owners cancel, they never delete.
		return fmt.Errorf("%w: role %q may not delete bookings", models.ErrUnauthorized, role)
	}

	return bs.bookingRepo.DeleteBooking(ctx, bookingID)
}

// GetBooking returns a booking only to callers allowed to see it: the booking
// tourist, the owner of the booked service, or an administrator.
func (bs *BookingService) GetBooking(ctx context.Context, bookingID primitive.ObjectID, actorID uuid.UUID, role models.Role) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role == models.RoleAdmin || booking.TouristID == actorID {
		return booking, nil
	}
	if role == models.RoleOwner {
		svc, err := bs.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
		if err == nil && svc.OwnerID == actorID {
			return booking, nil
		}
	}
	return nil, fmt.Errorf("%w: not allowed to view this booking", models.ErrUnauthorized)
}

func (bs *BookingService) ListBookingsByTourist(ctx context.Context, touristID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	if touristID == uuid.Nil {
		return nil, 0, fmt.Errorf("%w: invalid tourist ID", models.ErrValidation)
	}
	return bs.bookingRepo.ListBookingsByTourist(ctx, touristID, offset, limit)
}

// ListBookingsByService is restricted to the service's owner and admins;
// booked tourist details are not visible to anyone else.
func (bs *BookingService) ListBookingsByService(ctx context.Context, serviceID, actorID uuid.UUID, role models.Role, offset, limit int) ([]*models.Booking, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	if serviceID == uuid.Nil {
		return nil, 0, fmt.Errorf("%w: invalid service ID", models.ErrValidation)
	}
	if role != models.RoleAdmin {
		svc, err := bs.catalogRepo.GetServiceByID(ctx, serviceID)
		if err != nil {
			return nil, 0, err
		}
		if svc.OwnerID != actorID {
			return nil, 0, fmt.Errorf("%w: only the service owner may list its bookings", models.ErrUnauthorized)
		}
	}
	return bs.bookingRepo.ListBookingsByService(ctx, serviceID, offset, limit)
}
