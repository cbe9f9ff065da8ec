package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind selects which catalog record a review (and its derived rating)
// points at.
type TargetKind string

const (
	TargetService    TargetKind = "service"
	TargetAttraction TargetKind = "attraction"
)

func ParseTargetKind(s string) (TargetKind, error) {
	switch TargetKind(s) {
	case TargetService, TargetAttraction:
		return TargetKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown target kind %q", ErrValidation, s)
}

const MaxReviewCommentLen = 2000

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID   uuid.UUID          `bson:"author_id" json:"author_id" validate:"required"`
	TargetID   uuid.UUID          `bson:"target_id" json:"target_id" validate:"required"`
	TargetKind TargetKind         `bson:"target_kind" json:"target_kind"`
	Rating     int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

func (r *Review) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	return nil
}

func (r Review) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if r.AuthorID == uuid.Nil {
		return fmt.Errorf("%w: invalid author ID", ErrValidation)
	}
	if r.TargetID == uuid.Nil {
		return fmt.Errorf("%w: invalid target ID", ErrValidation)
	}
	if _, err := ParseTargetKind(string(r.TargetKind)); err != nil {
		return err
	}
	if len(r.Comment) > MaxReviewCommentLen {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, MaxReviewCommentLen)
	}
	return nil
}

func (r *Review) Sanitize() {
	r.Comment = helpers.StringTrim(r.Comment)
}

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	GetReviewsByTarget(ctx context.Context, targetID uuid.UUID, kind TargetKind) ([]*Review, error)
	GetReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Review, error)
	UpdateReview(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
}
