package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingActive   ListingStatus = "active"
	ListingInactive ListingStatus = "inactive"
)

// TourService is a bookable offering (tour, excursion, transfer) run by a
// local business owner. AverageRating and ReviewCount are derived from the
// current set of reviews and are never accepted from input.
type TourService struct {
	ID            uuid.UUID     `bson:"id" json:"id"`
	OwnerID       uuid.UUID     `bson:"owner_id" json:"owner_id"`
	Name          string        `bson:"name" json:"name" validate:"required,min=3,max=120"`
	Slug          string        `bson:"slug" json:"slug"`
	Description   string        `bson:"description" json:"description" validate:"max=4000"`
	Location      string        `bson:"location" json:"location" validate:"required"`
	Category      string        `bson:"category" json:"category"`
	Images        []string      `bson:"images,omitempty" json:"images,omitempty"`
	UnitPrice     float64       `bson:"unit_price" json:"unit_price" validate:"gt=0"`
	AverageRating float64       `bson:"average_rating" json:"average_rating"`
	ReviewCount   int           `bson:"review_count" json:"review_count"`
	Status        ListingStatus `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// Attraction is a point of interest in the catalog. It is not bookable but it
// is reviewable, so it carries the same derived rating fields.
type Attraction struct {
	ID            uuid.UUID     `bson:"id" json:"id"`
	OwnerID       uuid.UUID     `bson:"owner_id" json:"owner_id"`
	Name          string        `bson:"name" json:"name" validate:"required,min=3,max=120"`
	Slug          string        `bson:"slug" json:"slug"`
	Description   string        `bson:"description" json:"description" validate:"max=4000"`
	Location      string        `bson:"location" json:"location" validate:"required"`
	Category      string        `bson:"category" json:"category"`
	Images        []string      `bson:"images,omitempty" json:"images,omitempty"`
	EntryFee      float64       `bson:"entry_fee" json:"entry_fee"`
	AverageRating float64       `bson:"average_rating" json:"average_rating"`
	ReviewCount   int           `bson:"review_count" json:"review_count"`
	Status        ListingStatus `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

type CatalogRepo interface {
	CreateService(ctx context.Context, svc *TourService) (*TourService, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*TourService, error)
	ListServices(ctx context.Context, offset, limit int) ([]*TourService, int, error)
	SearchServices(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*TourService, int, error)
	UpdateService(ctx context.Context, id uuid.UUID, update map[string]interface{}) (*TourService, error)
	DeleteService(ctx context.Context, id uuid.UUID) error

	CreateAttraction(ctx context.Context, attraction *Attraction) (*Attraction, error)
	GetAttractionByID(ctx context.Context, id uuid.UUID) (*Attraction, error)
	ListAttractions(ctx context.Context, offset, limit int) ([]*Attraction, int, error)
	SearchAttractions(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*Attraction, int, error)
	UpdateAttraction(ctx context.Context, id uuid.UUID, update map[string]interface{}) (*Attraction, error)
	DeleteAttraction(ctx context.Context, id uuid.UUID) error

	// SetTargetRating writes the derived aggregate onto the target record.
	SetTargetRating(ctx context.Context, targetID uuid.UUID, kind TargetKind, average float64, count int) error
}
