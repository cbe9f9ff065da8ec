package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
)

// RatingSummary is the derived aggregate for one target, echoed back to the
// caller so a response does not need a second read.
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"review_count"`
}

// RatingService recomputes a target's average rating whenever a review is
// created, edited or deleted. Recomputation is a read-then-write over the
// review set, so it is serialized per target: two concurrent review writes on
// the same service cannot interleave and lose an update.
type RatingService struct {
	reviewsRepo models.ReviewsRepo
	catalogRepo models.CatalogRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRatingService(reviewsRepo models.ReviewsRepo, catalogRepo models.CatalogRepo) *RatingService {
	return &RatingService{
		reviewsRepo: reviewsRepo,
		catalogRepo: catalogRepo,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (rs *RatingService) targetLock(targetID uuid.UUID, kind models.TargetKind) *sync.Mutex {
	key := string(kind) + ":" + targetID.String()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	lock, ok := rs.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		rs.locks[key] = lock
	}
	return lock
}

// RecomputeAverage reads every review currently pointing at the target,
// computes the mean rating rounded to one decimal place (0 when there are no
// reviews), writes the aggregate onto the target record and returns it.
func (rs *RatingService) RecomputeAverage(ctx context.Context, targetID uuid.UUID, kind models.TargetKind) (*RatingSummary, error) {
	if targetID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid target ID", models.ErrValidation)
	}
	if _, err := models.ParseTargetKind(string(kind)); err != nil {
		return nil, err
	}

	lock := rs.targetLock(targetID, kind)
	lock.Lock()
	defer lock.Unlock()

	reviews, err := rs.reviewsRepo.GetReviewsByTarget(ctx, targetID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for target %s: %v", targetID, err)
	}

	summary := Summarize(reviews)

	if err := rs.catalogRepo.SetTargetRating(ctx, targetID, kind, summary.Average, summary.Count); err != nil {
		return nil, fmt.Errorf("failed to write rating onto %s %s: %w", kind, targetID, err)
	}

	return &summary, nil
}

// Summarize computes the aggregate for a review set without touching storage.
func Summarize(reviews []*models.Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{Average: 0, Count: 0}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	average := float64(sum) / float64(len(reviews))
	return RatingSummary{
		Average: math.Round(average*10) / 10,
		Count:   len(reviews),
	}
}
