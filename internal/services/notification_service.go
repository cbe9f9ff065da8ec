package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"github.com/joshua-takyi/tripbay/internal/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier is what the booking, review, ad and trip flows see of the
// notification sink.
type Notifier interface {
	Dispatch(ctx context.Context, event models.NotifyEvent) (*models.Notification, error)
}

type NotificationService struct {
	notificationRepo models.NotificationRepo
	users            models.UserDirectory
	email            notify.Sender
	logger           *slog.Logger
}

func NewNotificationService(notificationRepo models.NotificationRepo, users models.UserDirectory, email notify.Sender, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		users:            users,
		email:            email,
		logger:           logger,
	}
}

// Dispatch persists exactly one in-app notification for the event, then
// attempts email delivery when the event asks for it. Email failure is logged
// and swallowed; only a failure to persist the in-app record propagates.
func (ns *NotificationService) Dispatch(ctx context.Context, event models.NotifyEvent) (*models.Notification, error) {
	rendered := event.Render()

	notification := &models.Notification{
		RecipientID:       rendered.RecipientID,
		Category:          rendered.Category,
		Priority:          rendered.Priority,
		Title:             rendered.Title,
		Message:           rendered.Message,
		RelatedEntityID:   rendered.RelatedEntityID,
		RelatedEntityKind: rendered.RelatedEntityKind,
		DeepLink:          rendered.DeepLink,
	}

	created, err := ns.notificationRepo.CreateNotification(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}

	if rendered.Email != nil {
		ns.sendEmail(ctx, rendered)
	}

	return created, nil
}

func (ns *NotificationService) sendEmail(ctx context.Context, rendered models.RenderedEvent) {
	if ns.email == nil {
		ns.logger.Info("email sender not configured, skipping email",
			"recipient", rendered.RecipientID,
			"title", rendered.Title,
		)
		return
	}

	address, err := ns.users.GetUserEmail(ctx, rendered.RecipientID)
	if err != nil {
		ns.logger.Error("failed to resolve recipient email",
			"recipient", rendered.RecipientID,
			"error", err,
		)
		return
	}

	if err := ns.email.Send(ctx, address, rendered.Email.Subject, rendered.Email.Body); err != nil {
		ns.logger.Error("email delivery failed",
			"recipient", rendered.RecipientID,
			"subject", rendered.Email.Subject,
			"error", err,
		)
	}
}

func (ns *NotificationService) GetNotificationsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Notification, int, error) {
	if userID == uuid.Nil {
		return nil, 0, fmt.Errorf("%w: invalid user ID", models.ErrValidation)
	}
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	return ns.notificationRepo.GetNotificationsByUser(ctx, userID, offset, limit)
}

func (ns *NotificationService) MarkRead(ctx context.Context, userID uuid.UUID, id primitive.ObjectID) error {
	if userID == uuid.Nil || id.IsZero() {
		return fmt.Errorf("%w: invalid user or notification ID", models.ErrValidation)
	}
	return ns.notificationRepo.MarkNotificationRead(ctx, userID, id)
}

func (ns *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: invalid user ID", models.ErrValidation)
	}
	return ns.notificationRepo.MarkAllNotificationsRead(ctx, userID)
}
