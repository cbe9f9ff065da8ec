package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCanTransitionTouristCancelsOwnPending(t *testing.T) {
	touristID := uuid.New()
	booking := &Booking{TouristID: touristID, ServiceID: uuid.New(), Status: BookingPending}
	actor := Actor{ID: touristID, Role: RoleTourist}

	if err := CanTransition(booking, BookingCancelled, actor); err != nil {
		t.Errorf("tourist should be able to cancel own pending booking, got %v", err)
	}
}

func TestCanTransitionTouristCannotConfirm(t *testing.T) {
	touristID := uuid.New()
	booking := &Booking{TouristID: touristID, ServiceID: uuid.New(), Status: BookingPending}
	actor := Actor{ID: touristID, Role: RoleTourist}

	err := CanTransition(booking, BookingConfirmed, actor)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for tourist confirming, got %v", err)
	}
}

func TestCanTransitionTouristCannotCancelOthersBooking(t *testing.T) {
	booking := &Booking{TouristID: uuid.New(), ServiceID: uuid.New(), Status: BookingPending}
	actor := Actor{ID: uuid.New(), Role: RoleTourist}

	err := CanTransition(booking, BookingCancelled, actor)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign booking, got %v", err)
	}
}

func TestCanTransitionTouristCannotCancelCompleted(t *testing.T) {
	touristID := uuid.New()
	booking := &Booking{TouristID: touristID, ServiceID: uuid.New(), Status: BookingCompleted}
	actor := Actor{ID: touristID, Role: RoleTourist}

	err := CanTransition(booking, BookingCancelled, actor)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for cancelling completed booking, got %v", err)
	}
}

func TestCanTransitionTouristCannotCancelConfirmed(t *testing.T) {
	touristID := uuid.New()
	booking := &Booking{TouristID: touristID, ServiceID: uuid.New(), Status: BookingConfirmed}
	actor := Actor{ID: touristID, Role: RoleTourist}

	err := CanTransition(booking, BookingCancelled, actor)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for cancelling confirmed booking, got %v", err)
	}
}

func TestCanTransitionOwnerLifecycle(t *testing.T) {
	serviceID := uuid.New()
	ownerID := uuid.New()
	actor := Actor{ID: ownerID, Role: RoleOwner, OwnedServiceIDs: []uuid.UUID{serviceID}}

	cases := []struct {
		name      string
		current   BookingStatus
		requested BookingStatus
		allowed   bool
	}{
		{"pending to confirmed", BookingPending, BookingConfirmed, true},
		{"pending to cancelled", BookingPending, BookingCancelled, true},
		{"pending to completed", BookingPending, BookingCompleted, false},
		{"confirmed to completed", BookingConfirmed, BookingCompleted, true},
		{"confirmed to cancelled", BookingConfirmed, BookingCancelled, true},
		{"confirmed to confirmed", BookingConfirmed, BookingConfirmed, false},
		{"completed is terminal", BookingCompleted, BookingCancelled, false},
		{"cancelled is terminal", BookingCancelled, BookingConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := &Booking{TouristID: uuid.New(), ServiceID: serviceID, Status: tc.current}
			err := CanTransition(booking, tc.requested, actor)
			if tc.allowed && err != nil {
				t.Errorf("expected transition to be allowed, got %v", err)
			}
			if !tc.allowed && err == nil {
				t.Errorf("expected transition %s -> %s to be rejected", tc.current, tc.requested)
			}
		})
	}
}

func TestCanTransitionOwnerOfDifferentService(t *testing.T) {
	booking := &Booking{TouristID: uuid.New(), ServiceID: uuid.New(), Status: BookingPending}
	actor := Actor{ID: uuid.New(), Role: RoleOwner, OwnedServiceIDs: []uuid.UUID{uuid.New()}}

	err := CanTransition(booking, BookingConfirmed, actor)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign service, got %v", err)
	}
}

func TestCanTransitionAdminBypassesEverything(t *testing.T) {
	actor := Actor{ID: uuid.New(), Role: RoleAdmin}
	for _, current := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		for _, requested := range []BookingStatus{BookingConfirmed, BookingCancelled, BookingCompleted} {
			booking := &Booking{TouristID: uuid.New(), ServiceID: uuid.New(), Status: current}
			if err := CanTransition(booking, requested, actor); err != nil {
				t.Errorf("admin blocked on %s -> %s: %v", current, requested, err)
			}
		}
	}
}

func TestCanTransitionInvalidTargetBeatsAuthorization(t *testing.T) {
	// Even an unauthorized actor gets a validation error for a garbage target.
	booking := &Booking{TouristID: uuid.New(), ServiceID: uuid.New(), Status: BookingPending}
	actor := Actor{ID: uuid.New(), Role: RoleTourist}

	err := CanTransition(booking, BookingStatus("shipped"), actor)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown target, got %v", err)
	}

	err = CanTransition(booking, BookingPending, Actor{ID: uuid.New(), Role: RoleAdmin})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for pending as a target even for admin, got %v", err)
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	if BookingPending.IsTerminal() || BookingConfirmed.IsTerminal() {
		t.Error("pending and confirmed are not terminal")
	}
	if !BookingCancelled.IsTerminal() || !BookingCompleted.IsTerminal() {
		t.Error("cancelled and completed are terminal")
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"tourist", "owner", "admin"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseRole("guest"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown role, got %v", err)
	}
}
