package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationCategory string

const (
	CategoryBooking      NotificationCategory = "booking"
	CategoryReview       NotificationCategory = "review"
	CategoryAd           NotificationCategory = "advertisement"
	CategoryTripReminder NotificationCategory = "trip_reminder"
	CategorySystem       NotificationCategory = "system"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	RecipientID       uuid.UUID            `bson:"recipient_id" json:"recipient_id" validate:"required"`
	Category          NotificationCategory `bson:"category" json:"category"`
	Title             string               `bson:"title" json:"title"`
	Message           string               `bson:"message" json:"message"`
	RelatedEntityID   string               `bson:"related_entity_id,omitempty" json:"related_entity_id,omitempty"`
	RelatedEntityKind string               `bson:"related_entity_kind,omitempty" json:"related_entity_kind,omitempty"`
	DeepLink          string               `bson:"deep_link,omitempty" json:"deep_link,omitempty"`
	IsRead            bool                 `bson:"is_read" json:"is_read"`
	Priority          NotificationPriority `bson:"priority" json:"priority"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
}

func (n *Notification) BeforeCreate() error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return nil
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *Notification) (*Notification, error)
	GetNotificationsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*Notification, int, error)
	MarkNotificationRead(ctx context.Context, userID uuid.UUID, id primitive.ObjectID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error
}

// EmailPayload is the outbound message attached to a rendered event when the
// event requests delivery through the email dispatcher. The recipient address
// is resolved from RecipientID at dispatch time.
type EmailPayload struct {
	Subject string
	Body    string
}

// NotifyEvent is the closed set of things the platform notifies about. Each
// variant renders to a notification record and an optional email, so adding
// an event kind is a compile-checked change rather than a string convention.
type NotifyEvent interface {
	Render() RenderedEvent
}

type RenderedEvent struct {
	RecipientID       uuid.UUID
	Category          NotificationCategory
	Priority          NotificationPriority
	Title             string
	Message           string
	RelatedEntityID   string
	RelatedEntityKind string
	DeepLink          string
	Email             *EmailPayload
}

// BookingReceivedEvent tells a service owner about a new booking.
type BookingReceivedEvent struct {
	OwnerID     uuid.UUID
	BookingID   string
	ServiceName string
	ServiceDate time.Time
	People      int
	Revenue     float64
}

func (e BookingReceivedEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.OwnerID,
		Category:          CategoryBooking,
		Priority:          PriorityHigh,
		Title:             "New booking received",
		Message:           fmt.Sprintf("%s was booked for %s (%d people)", e.ServiceName, e.ServiceDate.Format("Jan 2, 2006"), e.People),
		RelatedEntityID:   e.BookingID,
		RelatedEntityKind: "booking",
		DeepLink:          "/bookings/" + e.BookingID,
		Email: &EmailPayload{
			Subject: "New booking: " + e.ServiceName,
			Body: fmt.Sprintf("<h1>New booking received</h1><p>%s was booked for %s. Expected revenue: %.2f.</p>",
				e.ServiceName, e.ServiceDate.Format("Jan 2, 2006"), e.Revenue),
		},
	}
}

// BookingConfirmedEvent tells the tourist their booking was confirmed.
type BookingConfirmedEvent struct {
	TouristID   uuid.UUID
	BookingID   string
	ServiceName string
}

func (e BookingConfirmedEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.TouristID,
		Category:          CategoryBooking,
		Priority:          PriorityHigh,
		Title:             "Booking confirmed",
		Message:           fmt.Sprintf("Your booking for %s has been confirmed", e.ServiceName),
		RelatedEntityID:   e.BookingID,
		RelatedEntityKind: "booking",
		DeepLink:          "/bookings/" + e.BookingID,
		Email: &EmailPayload{
			Subject: "Booking confirmed: " + e.ServiceName,
			Body:    fmt.Sprintf("<h1>Booking confirmed</h1><p>Your booking for %s has been confirmed. We look forward to seeing you!</p>", e.ServiceName),
		},
	}
}

// BookingCancelledEvent tells the tourist their booking was cancelled.
type BookingCancelledEvent struct {
	TouristID   uuid.UUID
	BookingID   string
	ServiceName string
}

func (e BookingCancelledEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.TouristID,
		Category:          CategoryBooking,
		Priority:          PriorityHigh,
		Title:             "Booking cancelled",
		Message:           fmt.Sprintf("Your booking for %s has been cancelled", e.ServiceName),
		RelatedEntityID:   e.BookingID,
		RelatedEntityKind: "booking",
		DeepLink:          "/bookings/" + e.BookingID,
		Email: &EmailPayload{
			Subject: "Booking cancelled: " + e.ServiceName,
			Body:    fmt.Sprintf("<h1>Booking cancelled</h1><p>Your booking for %s has been cancelled.</p>", e.ServiceName),
		},
	}
}

// BookingCompletedEvent invites the tourist to review a finished booking.
// In-app only, no email.
type BookingCompletedEvent struct {
	TouristID   uuid.UUID
	BookingID   string
	ServiceName string
}

func (e BookingCompletedEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.TouristID,
		Category:          CategoryBooking,
		Priority:          PriorityMedium,
		Title:             "Booking completed",
		Message:           fmt.Sprintf("Your booking for %s is complete. Please leave a review!", e.ServiceName),
		RelatedEntityID:   e.BookingID,
		RelatedEntityKind: "booking",
		DeepLink:          "/bookings/" + e.BookingID,
	}
}

// ReviewReceivedEvent tells a target's owner a new review came in.
type ReviewReceivedEvent struct {
	OwnerID    uuid.UUID
	ReviewID   string
	TargetName string
	Rating     int
}

func (e ReviewReceivedEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.OwnerID,
		Category:          CategoryReview,
		Priority:          PriorityMedium,
		Title:             "New review received",
		Message:           fmt.Sprintf("%s received a new %d-star review", e.TargetName, e.Rating),
		RelatedEntityID:   e.ReviewID,
		RelatedEntityKind: "review",
	}
}

// AdApprovedEvent tells an owner their advertisement went live.
type AdApprovedEvent struct {
	OwnerID uuid.UUID
	AdID    string
	AdTitle string
}

func (e AdApprovedEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.OwnerID,
		Category:          CategoryAd,
		Priority:          PriorityMedium,
		Title:             "Advertisement approved",
		Message:           fmt.Sprintf("Your advertisement %q has been approved", e.AdTitle),
		RelatedEntityID:   e.AdID,
		RelatedEntityKind: "advertisement",
		Email: &EmailPayload{
			Subject: "Advertisement approved",
			Body:    fmt.Sprintf("<h1>Advertisement approved</h1><p>Your advertisement %q is now live.</p>", e.AdTitle),
		},
	}
}

// AdRejectedEvent tells an owner their advertisement was rejected and why.
type AdRejectedEvent struct {
	OwnerID uuid.UUID
	AdID    string
	AdTitle string
	Reason  string
}

func (e AdRejectedEvent) Render() RenderedEvent {
	msg := fmt.Sprintf("Your advertisement %q has been rejected", e.AdTitle)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return RenderedEvent{
		RecipientID:       e.OwnerID,
		Category:          CategoryAd,
		Priority:          PriorityMedium,
		Title:             "Advertisement rejected",
		Message:           msg,
		RelatedEntityID:   e.AdID,
		RelatedEntityKind: "advertisement",
		Email: &EmailPayload{
			Subject: "Advertisement rejected",
			Body:    fmt.Sprintf("<h1>Advertisement rejected</h1><p>%s.</p>", msg),
		},
	}
}

// TripReminderEvent reminds a tourist about an upcoming trip. In-app only.
type TripReminderEvent struct {
	TouristID uuid.UUID
	TripID    string
	TripName  string
	StartDate time.Time
}

func (e TripReminderEvent) Render() RenderedEvent {
	return RenderedEvent{
		RecipientID:       e.TouristID,
		Category:          CategoryTripReminder,
		Priority:          PriorityLow,
		Title:             "Upcoming trip",
		Message:           fmt.Sprintf("Your trip %q starts on %s", e.TripName, e.StartDate.Format("Jan 2, 2006")),
		RelatedEntityID:   e.TripID,
		RelatedEntityKind: "trip",
		DeepLink:          "/trips/" + e.TripID,
	}
}

// WelcomeEvent greets a freshly registered user.
type WelcomeEvent struct {
	UserID uuid.UUID
	Name   string
}

func (e WelcomeEvent) Render() RenderedEvent {
	name := e.Name
	if name == "" {
		name = "traveller"
	}
	return RenderedEvent{
		RecipientID: e.UserID,
		Category:    CategorySystem,
		Priority:    PriorityLow,
		Title:       "Welcome to Tripbay",
		Message:     fmt.Sprintf("Welcome aboard, %s! Start exploring attractions and services near you.", name),
	}
}
