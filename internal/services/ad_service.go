package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdService runs the advertisement approval workflow: owners submit, admins
// approve or reject, and the decision fans out through the notification sink.
type AdService struct {
	adRepo   models.AdRepo
	notifier Notifier
}

func NewAdService(adRepo models.AdRepo, notifier Notifier) *AdService {
	return &AdService{
		adRepo:   adRepo,
		notifier: notifier,
	}
}

func (as *AdService) CreateAd(ctx context.Context, ad *models.Advertisement, ownerID uuid.UUID) (*models.Advertisement, error) {
	ad.OwnerID = ownerID
	if err := models.Validate.Struct(ad); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	ad.Status = models.AdPending
	ad.RejectionReason = ""
	ad.CreatedAt = time.Now()
	ad.ReviewedAt = nil
	return as.adRepo.CreateAd(ctx, ad)
}

func (as *AdService) ApproveAd(ctx context.Context, adID primitive.ObjectID, role models.Role) (*models.Advertisement, error) {
	return as.decide(ctx, adID, role, models.AdApproved, "")
}

func (as *AdService) RejectAd(ctx context.Context, adID primitive.ObjectID, role models.Role, reason string) (*models.Advertisement, error) {
	return as.decide(ctx, adID, role, models.AdRejected, reason)
}

func (as *AdService) decide(ctx context.Context, adID primitive.ObjectID, role models.Role, decision models.AdStatus, reason string) (*models.Advertisement, error) {
	if role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only administrators review advertisements", models.ErrUnauthorized)
	}

	ad, err := as.adRepo.GetAdByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.Status != models.AdPending {
		return nil, fmt.Errorf("%w: advertisement already %s", models.ErrValidation, ad.Status)
	}

	update := map[string]interface{}{
		"status":      decision,
		"reviewed_at": time.Now(),
	}
	if decision == models.AdRejected {
		update["rejection_reason"] = reason
	}

	updated, err := as.adRepo.UpdateAd(ctx, adID, update)
	if err != nil {
		return nil, err
	}

	var event models.NotifyEvent
	if decision == models.AdApproved {
		event = models.AdApprovedEvent{OwnerID: ad.OwnerID, AdID: adID.Hex(), AdTitle: ad.Title}
	} else {
		event = models.AdRejectedEvent{OwnerID: ad.OwnerID, AdID: adID.Hex(), AdTitle: ad.Title, Reason: reason}
	}
	if _, err := as.notifier.Dispatch(ctx, event); err != nil {
		return nil, fmt.Errorf("advertisement %s but notification dispatch failed: %w", decision, err)
	}

	return updated, nil
}

func (as *AdService) ListPendingAds(ctx context.Context, role models.Role, offset, limit int) ([]*models.Advertisement, int, error) {
	if role != models.RoleAdmin {
		return nil, 0, fmt.Errorf("%w: only administrators review advertisements", models.ErrUnauthorized)
	}
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	return as.adRepo.ListAdsByStatus(ctx, models.AdPending, offset, limit)
}

func (as *AdService) ListAdsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Advertisement, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid owner ID", models.ErrValidation)
	}
	return as.adRepo.ListAdsByOwner(ctx, ownerID)
}

func (as *AdService) DeleteAd(ctx context.Context, adID primitive.ObjectID, actorID uuid.UUID, role models.Role) error {
	ad, err := as.adRepo.GetAdByID(ctx, adID)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && ad.OwnerID != actorID {
		return fmt.Errorf("%w: advertisement belongs to another owner", models.ErrUnauthorized)
	}
	return as.adRepo.DeleteAd(ctx, adID)
}
