package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsTerminal reports whether no further non-admin transition leaves the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Role string

const (
	RoleTourist Role = "tourist"
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTourist, RoleOwner, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Actor is the authorization subject for a booking mutation. For RoleOwner
// the service layer resolves OwnedServiceIDs before policy is evaluated, so
// CanTransition stays free of storage dependencies.
type Actor struct {
	ID              uuid.UUID
	Role            Role
	OwnedServiceIDs []uuid.UUID
}

func (a Actor) OwnsService(serviceID uuid.UUID) bool {
	for _, id := range a.OwnedServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TouristID       uuid.UUID          `bson:"tourist_id" json:"tourist_id" validate:"required"`
	ServiceID       uuid.UUID          `bson:"service_id" json:"service_id" validate:"required"`
	ServiceDate     time.Time          `bson:"service_date" json:"service_date" validate:"required"`
	NumberOfPeople  int                `bson:"number_of_people" json:"number_of_people" validate:"min=1"`
	TotalPrice      float64            `bson:"total_price" json:"total_price"`
	SpecialRequests string             `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	Status          BookingStatus      `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	return nil
}

// CanTransition is the pure transition policy: given the booking's current
// status and a requested target, it decides whether the actor may perform the
// move. Target validity is checked before any authorization so a garbage
// target never looks like a permission problem.
//
//	current    tourist (owner of booking)  service owner            admin
//	pending    -> cancelled                -> confirmed, cancelled  -> any
//	confirmed  (none)                      -> completed, cancelled  -> any
//	completed  (blocked)                   (terminal)               -> any
//	cancelled  (terminal)                  (terminal)               -> any
func CanTransition(b *Booking, requested BookingStatus, actor Actor) error {
	switch requested {
	case BookingConfirmed, BookingCancelled, BookingCompleted:
	default:
		return fmt.Errorf("%w: invalid target status %q", ErrValidation, requested)
	}

	if actor.Role == RoleAdmin {
		return nil
	}

	switch actor.Role {
	case RoleTourist:
		if actor.ID != b.TouristID {
			return fmt.Errorf("%w: booking belongs to another tourist", ErrUnauthorized)
		}
		if requested != BookingCancelled {
			return fmt.Errorf("%w: tourists may only cancel bookings", ErrUnauthorized)
		}
		if b.Status == BookingCompleted {
			return fmt.Errorf("%w: completed bookings cannot be cancelled", ErrUnauthorized)
		}
		if b.Status != BookingPending {
			return fmt.Errorf("%w: cannot cancel booking in status %q", ErrValidation, b.Status)
		}
		return nil

	case RoleOwner:
		if !actor.OwnsService(b.ServiceID) {
			return fmt.Errorf("%w: service belongs to another owner", ErrUnauthorized)
		}
		switch b.Status {
		case BookingPending:
			if requested == BookingConfirmed || requested == BookingCancelled {
				return nil
			}
		case BookingConfirmed:
			if requested == BookingCompleted || requested == BookingCancelled {
				return nil
			}
		}
		return fmt.Errorf("%w: cannot transition booking from %q to %q", ErrValidation, b.Status, requested)

	default:
		return fmt.Errorf("%w: role %q may not transition bookings", ErrUnauthorized, actor.Role)
	}
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	ListBookingsByTourist(ctx context.Context, touristID uuid.UUID, offset, limit int) ([]*Booking, int, error)
	ListBookingsByService(ctx context.Context, serviceID uuid.UUID, offset, limit int) ([]*Booking, int, error)
	UpdateBooking(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Booking, error)
	DeleteBooking(ctx context.Context, id primitive.ObjectID) error
}
