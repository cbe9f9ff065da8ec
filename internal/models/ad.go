package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdStatus string

const (
	AdPending  AdStatus = "pending"
	AdApproved AdStatus = "approved"
	AdRejected AdStatus = "rejected"
)

// Advertisement is an owner-submitted promo that goes live only after admin
// approval. The approve/reject flow is the lightweight sibling of the booking
// transition flow and feeds the same notification sink.
type Advertisement struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID         uuid.UUID          `bson:"owner_id" json:"owner_id" validate:"required"`
	ServiceID       uuid.UUID          `bson:"service_id,omitempty" json:"service_id,omitempty"`
	Title           string             `bson:"title" json:"title" validate:"required,min=3,max=120"`
	Content         string             `bson:"content" json:"content" validate:"required,max=4000"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Status          AdStatus           `bson:"status" json:"status"`
	RejectionReason string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	ReviewedAt      *time.Time         `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}

func (a *Advertisement) BeforeCreate() error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	return nil
}

type AdRepo interface {
	CreateAd(ctx context.Context, ad *Advertisement) (*Advertisement, error)
	GetAdByID(ctx context.Context, id primitive.ObjectID) (*Advertisement, error)
	ListAdsByStatus(ctx context.Context, status AdStatus, offset, limit int) ([]*Advertisement, int, error)
	ListAdsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Advertisement, error)
	UpdateAd(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Advertisement, error)
	DeleteAd(ctx context.Context, id primitive.ObjectID) error
}
