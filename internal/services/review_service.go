package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService couples review mutations to the rating aggregation engine:
// every create, edit and delete recomputes the target's derived rating before
// returning.
type ReviewService struct {
	reviewsRepo models.ReviewsRepo
	catalogRepo models.CatalogRepo
	rating      *RatingService
	notifier    Notifier
	logger      *slog.Logger
}

func NewReviewService(reviewsRepo models.ReviewsRepo, catalogRepo models.CatalogRepo, rating *RatingService, notifier Notifier, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
		catalogRepo: catalogRepo,
		rating:      rating,
		notifier:    notifier,
		logger:      logger,
	}
}

// targetInfo resolves the owner and display name of a review target.
func (rv *ReviewService) targetInfo(ctx context.Context, targetID uuid.UUID, kind models.TargetKind) (uuid.UUID, string, error) {
	switch kind {
	case models.TargetService:
		svc, err := rv.catalogRepo.GetServiceByID(ctx, targetID)
		if err != nil {
			return uuid.Nil, "", err
		}
		return svc.OwnerID, svc.Name, nil
	case models.TargetAttraction:
		attraction, err := rv.catalogRepo.GetAttractionByID(ctx, targetID)
		if err != nil {
			return uuid.Nil, "", err
		}
		return attraction.OwnerID, attraction.Name, nil
	default:
		return uuid.Nil, "", fmt.Errorf("%w: unknown target kind %q", models.ErrValidation, kind)
	}
}

func (rv *ReviewService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, *RatingSummary, error) {
	review.Sanitize()
	if err := review.ValidateReview(); err != nil {
		return nil, nil, err
	}

	ownerID, targetName, err := rv.targetInfo(ctx, review.TargetID, review.TargetKind)
	if err != nil {
		return nil, nil, err
	}

	created, err := rv.reviewsRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, nil, err
	}

	summary, err := rv.rating.RecomputeAverage(ctx, created.TargetID, created.TargetKind)
	if err != nil {
		return nil, nil, fmt.Errorf("review created but rating recompute failed: %w", err)
	}

	if _, err := rv.notifier.Dispatch(ctx, models.ReviewReceivedEvent{
		OwnerID:    ownerID,
		ReviewID:   created.ID.Hex(),
		TargetName: targetName,
		Rating:     created.Rating,
	}); err != nil {
		return nil, nil, fmt.Errorf("review created but notification dispatch failed: %w", err)
	}

	return created, summary, nil
}

func (rv *ReviewService) UpdateReview(ctx context.Context, reviewID primitive.ObjectID, authorID uuid.UUID, rating int, comment string) (*models.Review, *RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, nil, fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}
	if len(comment) > models.MaxReviewCommentLen {
		return nil, nil, fmt.Errorf("%w: comment exceeds %d characters", models.ErrValidation, models.MaxReviewCommentLen)
	}

	review, err := rv.reviewsRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, nil, err
	}
	if review.AuthorID != authorID {
		return nil, nil, fmt.Errorf("%w: review belongs to another author", models.ErrUnauthorized)
	}

	updated, err := rv.reviewsRepo.UpdateReview(ctx, reviewID, map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	})
	if err != nil {
		return nil, nil, err
	}

	summary, err := rv.rating.RecomputeAverage(ctx, updated.TargetID, updated.TargetKind)
	if err != nil {
		return nil, nil, fmt.Errorf("review updated but rating recompute failed: %w", err)
	}

	return updated, summary, nil
}

// DeleteReview removes a review (author or admin) and recomputes the target's
// aggregate. The target is captured before deletion because the review row is
// gone by the time the recompute runs.
func (rv *ReviewService) DeleteReview(ctx context.Context, reviewID primitive.ObjectID, actorID uuid.UUID, role models.Role) (*RatingSummary, error) {
	review, err := rv.reviewsRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && review.AuthorID != actorID {
		return nil, fmt.Errorf("%w: review belongs to another author", models.ErrUnauthorized)
	}

	targetID, targetKind := review.TargetID, review.TargetKind

	if err := rv.reviewsRepo.DeleteReview(ctx, reviewID); err != nil {
		return nil, err
	}

	summary, err := rv.rating.RecomputeAverage(ctx, targetID, targetKind)
	if err != nil {
		return nil, fmt.Errorf("review deleted but rating recompute failed: %w", err)
	}

	return summary, nil
}

func (rv *ReviewService) GetReviewsByTarget(ctx context.Context, targetID uuid.UUID, kind models.TargetKind) ([]*models.Review, error) {
	if targetID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid target ID", models.ErrValidation)
	}
	if _, err := models.ParseTargetKind(string(kind)); err != nil {
		return nil, err
	}
	return rv.reviewsRepo.GetReviewsByTarget(ctx, targetID, kind)
}

func (rv *ReviewService) GetReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Review, error) {
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid author ID", models.ErrValidation)
	}
	return rv.reviewsRepo.GetReviewsByAuthor(ctx, authorID)
}
