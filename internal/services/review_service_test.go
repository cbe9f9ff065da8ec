package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
)

type reviewFixture struct {
	reviews *fakeReviewsRepo
	catalog *fakeCatalogRepo
	notes   *fakeNotificationRepo
	svc     *models.TourService
	review  *ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	reviews := newFakeReviewsRepo()
	catalog := newFakeCatalogRepo()
	notes := newFakeNotificationRepo()

	svc := &models.TourService{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Name:      "Canopy Walk",
		UnitPrice: 100,
	}
	if _, err := catalog.CreateService(context.Background(), svc); err != nil {
		t.Fatalf("seeding service failed: %v", err)
	}

	users := &fakeUserDirectory{emails: map[uuid.UUID]string{}}
	notifier := NewNotificationService(notes, users, nil, discardLogger())
	rating := NewRatingService(reviews, catalog)

	return &reviewFixture{
		reviews: reviews,
		catalog: catalog,
		notes:   notes,
		svc:     svc,
		review:  NewReviewService(reviews, catalog, rating, notifier, discardLogger()),
	}
}

func (fx *reviewFixture) create(t *testing.T, rating int) *models.Review {
	t.Helper()
	created, _, err := fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   uuid.New(),
		TargetID:   fx.svc.ID,
		TargetKind: models.TargetService,
		Rating:     rating,
	})
	if err != nil {
		t.Fatalf("CreateReview(%d) failed: %v", rating, err)
	}
	return created
}

func TestCreateReviewRecomputesAggregate(t *testing.T) {
	fx := newReviewFixture(t)

	fx.create(t, 5)
	fx.create(t, 4)
	created, summary, err := fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   uuid.New(),
		TargetID:   fx.svc.ID,
		TargetKind: models.TargetService,
		Rating:     3,
		Comment:    "  decent views  ",
	})
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	if summary.Average != 4.0 || summary.Count != 3 {
		t.Errorf("expected 4.0/3 after {5,4,3}, got %v/%d", summary.Average, summary.Count)
	}
	if created.Comment != "decent views" {
		t.Errorf("comment should be trimmed, got %q", created.Comment)
	}

	stored, _ := fx.catalog.GetServiceByID(context.Background(), fx.svc.ID)
	if stored.AverageRating != 4.0 || stored.ReviewCount != 3 {
		t.Errorf("aggregate not written, got %v/%d", stored.AverageRating, stored.ReviewCount)
	}

	// Owner hears about each review, in-app only.
	ownerNotes := fx.notes.byRecipient(fx.svc.OwnerID)
	if len(ownerNotes) != 3 {
		t.Errorf("expected three owner notifications, got %d", len(ownerNotes))
	}
}

func TestDeleteReviewRecomputesAggregate(t *testing.T) {
	fx := newReviewFixture(t)

	fx.create(t, 5)
	fx.create(t, 4)
	lowest := fx.create(t, 3)

	summary, err := fx.review.DeleteReview(context.Background(), lowest.ID, lowest.AuthorID, models.RoleTourist)
	if err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	if summary.Average != 4.5 || summary.Count != 2 {
		t.Errorf("expected 4.5/2 after deleting the 3-star review, got %v/%d", summary.Average, summary.Count)
	}
}

func TestDeleteLastReviewResetsAggregate(t *testing.T) {
	fx := newReviewFixture(t)
	only := fx.create(t, 5)

	summary, err := fx.review.DeleteReview(context.Background(), only.ID, only.AuthorID, models.RoleTourist)
	if err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	if summary.Average != 0 || summary.Count != 0 {
		t.Errorf("expected 0/0 after last delete, got %v/%d", summary.Average, summary.Count)
	}
}

func TestDuplicateReviewConflictLeavesAggregateUnchanged(t *testing.T) {
	fx := newReviewFixture(t)
	authorID := uuid.New()

	_, summary, err := fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   authorID,
		TargetID:   fx.svc.ID,
		TargetKind: models.TargetService,
		Rating:     5,
	})
	if err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, _, err = fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   authorID,
		TargetID:   fx.svc.ID,
		TargetKind: models.TargetService,
		Rating:     1,
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate review, got %v", err)
	}

	stored, _ := fx.catalog.GetServiceByID(context.Background(), fx.svc.ID)
	if stored.AverageRating != summary.Average || stored.ReviewCount != summary.Count {
		t.Errorf("aggregate changed after rejected duplicate: %v/%d", stored.AverageRating, stored.ReviewCount)
	}
}

func TestUpdateReviewByAnotherAuthorRejected(t *testing.T) {
	fx := newReviewFixture(t)
	created := fx.create(t, 4)

	_, _, err := fx.review.UpdateReview(context.Background(), created.ID, uuid.New(), 1, "")
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign author, got %v", err)
	}
}

func TestUpdateReviewRecomputesAggregate(t *testing.T) {
	fx := newReviewFixture(t)
	fx.create(t, 5)
	second := fx.create(t, 5)

	_, summary, err := fx.review.UpdateReview(context.Background(), second.ID, second.AuthorID, 1, "changed my mind")
	if err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}
	if summary.Average != 3.0 || summary.Count != 2 {
		t.Errorf("expected 3.0/2 after edit, got %v/%d", summary.Average, summary.Count)
	}
}

func TestAdminDeletesForeignReview(t *testing.T) {
	fx := newReviewFixture(t)
	created := fx.create(t, 2)

	if _, err := fx.review.DeleteReview(context.Background(), created.ID, uuid.New(), models.RoleAdmin); err != nil {
		t.Errorf("admin should delete any review, got %v", err)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	fx := newReviewFixture(t)

	_, _, err := fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   uuid.New(),
		TargetID:   fx.svc.ID,
		TargetKind: models.TargetService,
		Rating:     6,
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for rating 6, got %v", err)
	}

	_, _, err = fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   uuid.New(),
		TargetID:   fx.svc.ID,
		TargetKind: models.TargetService,
		Rating:     4,
		Comment:    strings.Repeat("x", models.MaxReviewCommentLen+1),
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for oversized comment, got %v", err)
	}

	_, _, err = fx.review.CreateReview(context.Background(), &models.Review{
		AuthorID:   uuid.New(),
		TargetID:   uuid.New(),
		TargetKind: models.TargetService,
		Rating:     4,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing target, got %v", err)
	}
}
