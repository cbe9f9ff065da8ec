package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBookingReceivedEventRendersEmail(t *testing.T) {
	ownerID := uuid.New()
	rendered := BookingReceivedEvent{
		OwnerID:     ownerID,
		BookingID:   "abc123",
		ServiceName: "Canopy Walk",
		ServiceDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		People:      3,
		Revenue:     300,
	}.Render()

	if rendered.RecipientID != ownerID {
		t.Error("owner should be the recipient")
	}
	if rendered.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %s", rendered.Priority)
	}
	if rendered.Category != CategoryBooking {
		t.Errorf("expected booking category, got %s", rendered.Category)
	}
	if rendered.Email == nil {
		t.Fatal("booking received should carry an email payload")
	}
	if !strings.Contains(rendered.Email.Body, "300.00") {
		t.Errorf("email body should include revenue, got %q", rendered.Email.Body)
	}
}

func TestBookingCompletedEventIsInAppOnly(t *testing.T) {
	rendered := BookingCompletedEvent{
		TouristID:   uuid.New(),
		BookingID:   "abc123",
		ServiceName: "Canopy Walk",
	}.Render()

	if rendered.Email != nil {
		t.Error("completion is in-app only, no email expected")
	}
	if rendered.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %s", rendered.Priority)
	}
	if !strings.Contains(rendered.Message, "leave a review") {
		t.Errorf("completion message should invite a review, got %q", rendered.Message)
	}
}

func TestConfirmAndCancelEventsCarryEmail(t *testing.T) {
	confirmed := BookingConfirmedEvent{TouristID: uuid.New(), BookingID: "x", ServiceName: "Canopy Walk"}.Render()
	cancelled := BookingCancelledEvent{TouristID: uuid.New(), BookingID: "x", ServiceName: "Canopy Walk"}.Render()

	for _, rendered := range []RenderedEvent{confirmed, cancelled} {
		if rendered.Email == nil {
			t.Errorf("%s should carry an email payload", rendered.Title)
		}
		if rendered.Priority != PriorityHigh {
			t.Errorf("%s should be high priority", rendered.Title)
		}
	}
}

func TestReviewReceivedEventHasNoEmail(t *testing.T) {
	rendered := ReviewReceivedEvent{
		OwnerID:    uuid.New(),
		ReviewID:   "rev1",
		TargetName: "Canopy Walk",
		Rating:     4,
	}.Render()

	if rendered.Email != nil {
		t.Error("review notifications stay in-app")
	}
	if !strings.Contains(rendered.Message, "4-star") {
		t.Errorf("message should name the rating, got %q", rendered.Message)
	}
}

func TestAdRejectedEventIncludesReason(t *testing.T) {
	rendered := AdRejectedEvent{
		OwnerID: uuid.New(),
		AdID:    "ad1",
		AdTitle: "Summer deal",
		Reason:  "misleading pricing",
	}.Render()

	if !strings.Contains(rendered.Message, "misleading pricing") {
		t.Errorf("rejection reason missing from message: %q", rendered.Message)
	}
	if rendered.Email == nil {
		t.Error("ad decisions notify by email as well")
	}
}

func TestTripReminderEventIsLowPriority(t *testing.T) {
	rendered := TripReminderEvent{
		TouristID: uuid.New(),
		TripID:    "trip1",
		TripName:  "Cape Coast weekend",
		StartDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
	}.Render()

	if rendered.Priority != PriorityLow {
		t.Errorf("expected low priority, got %s", rendered.Priority)
	}
	if rendered.Email != nil {
		t.Error("trip reminders stay in-app")
	}
	if rendered.Category != CategoryTripReminder {
		t.Errorf("expected trip_reminder category, got %s", rendered.Category)
	}
}

func TestNotificationBeforeCreateDefaultsPriority(t *testing.T) {
	n := &Notification{RecipientID: uuid.New(), Title: "hello"}
	if err := n.BeforeCreate(); err != nil {
		t.Fatalf("BeforeCreate failed: %v", err)
	}
	if n.Priority != PriorityMedium {
		t.Errorf("expected medium default priority, got %s", n.Priority)
	}
	if n.ID.IsZero() {
		t.Error("expected generated ID")
	}
}
