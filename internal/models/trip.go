package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripStop is one attraction visit inside an itinerary, ordered by Day.
type TripStop struct {
	AttractionID uuid.UUID `bson:"attraction_id" json:"attraction_id"`
	Day          int       `bson:"day" json:"day"`
	Note         string    `bson:"note,omitempty" json:"note,omitempty"`
}

type Trip struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TouristID uuid.UUID          `bson:"tourist_id" json:"tourist_id" validate:"required"`
	Name      string             `bson:"name" json:"name" validate:"required,min=1,max=120"`
	StartDate time.Time          `bson:"start_date" json:"start_date"`
	EndDate   time.Time          `bson:"end_date" json:"end_date"`
	Stops     []TripStop         `bson:"stops,omitempty" json:"stops,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

func (t *Trip) BeforeCreate() error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	return nil
}

func (t Trip) ValidateTrip() error {
	if err := Validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: trip end date before start date", ErrValidation)
	}
	return nil
}

type TripRepo interface {
	CreateTrip(ctx context.Context, trip *Trip) (*Trip, error)
	GetTripByID(ctx context.Context, id primitive.ObjectID) (*Trip, error)
	ListTripsByTourist(ctx context.Context, touristID uuid.UUID) ([]*Trip, error)
	ListTripsStartingBefore(ctx context.Context, cutoff time.Time) ([]*Trip, error)
	UpdateTrip(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Trip, error)
	DeleteTrip(ctx context.Context, id primitive.ObjectID) error
}
