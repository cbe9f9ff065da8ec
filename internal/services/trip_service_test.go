package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[primitive.ObjectID]*models.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[primitive.ObjectID]*models.Trip)}
}

func (f *fakeTripRepo) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if trip.ID.IsZero() {
		trip.ID = primitive.NewObjectID()
	}
	copied := *trip
	f.trips[trip.ID] = &copied
	return &copied, nil
}

func (f *fakeTripRepo) GetTripByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
	if !ok {
		return nil, fmt.Errorf("%w: trip not found", models.ErrNotFound)
	}
	copied := *trip
	return &copied, nil
}

func (f *fakeTripRepo) ListTripsByTourist(ctx context.Context, touristID uuid.UUID) ([]*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Trip
	for _, trip := range f.trips {
		if trip.TouristID == touristID {
			copied := *trip
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) ListTripsStartingBefore(ctx context.Context, cutoff time.Time) ([]*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Trip
	for _, trip := range f.trips {
		if trip.StartDate.Before(cutoff) {
			copied := *trip
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) UpdateTrip(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
	if !ok {
		return nil, fmt.Errorf("%w: trip not found", models.ErrNotFound)
	}
	if name, ok := update["name"]; ok {
		trip.Name = name.(string)
	}
	copied := *trip
	return &copied, nil
}

func (f *fakeTripRepo) DeleteTrip(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trips[id]; !ok {
		return fmt.Errorf("%w: trip not found", models.ErrNotFound)
	}
	delete(f.trips, id)
	return nil
}

func newTripFixture() (*TripService, *fakeTripRepo, *fakeNotificationRepo) {
	trips := newFakeTripRepo()
	notes := newFakeNotificationRepo()
	users := &fakeUserDirectory{emails: map[uuid.UUID]string{}}
	notifier := NewNotificationService(notes, users, nil, discardLogger())
	return NewTripService(trips, notifier, discardLogger()), trips, notes
}

func TestCreateTripValidatesDates(t *testing.T) {
	ts, _, _ := newTripFixture()

	_, err := ts.CreateTrip(context.Background(), &models.Trip{
		TouristID: uuid.New(),
		Name:      "Backwards weekend",
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for end before start, got %v", err)
	}
}

func TestTripOwnershipGuards(t *testing.T) {
	ts, _, _ := newTripFixture()
	touristID := uuid.New()

	trip, err := ts.CreateTrip(context.Background(), &models.Trip{
		TouristID: touristID,
		Name:      "Cape Coast weekend",
		StartDate: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	if _, err := ts.GetTrip(context.Background(), trip.ID, uuid.New()); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("foreign tourist should not read trip, got %v", err)
	}
	if err := ts.DeleteTrip(context.Background(), trip.ID, uuid.New()); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("foreign tourist should not delete trip, got %v", err)
	}
	if _, err := ts.GetTrip(context.Background(), trip.ID, touristID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
}

func TestSendUpcomingRemindersWindow(t *testing.T) {
	ts, trips, notes := newTripFixture()
	soonTourist := uuid.New()
	laterTourist := uuid.New()

	_, err := trips.CreateTrip(context.Background(), &models.Trip{
		TouristID: soonTourist,
		Name:      "Tomorrow's trip",
		StartDate: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seeding trip failed: %v", err)
	}
	_, err = trips.CreateTrip(context.Background(), &models.Trip{
		TouristID: laterTourist,
		Name:      "Next month's trip",
		StartDate: time.Now().Add(30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seeding trip failed: %v", err)
	}

	sent, err := ts.SendUpcomingReminders(context.Background(), 48*time.Hour)
	if err != nil {
		t.Fatalf("SendUpcomingReminders failed: %v", err)
	}
	if sent != 1 {
		t.Errorf("expected one reminder inside the window, got %d", sent)
	}
	if len(notes.byRecipient(soonTourist)) != 1 {
		t.Error("tourist with imminent trip should be reminded")
	}
	if len(notes.byRecipient(laterTourist)) != 0 {
		t.Error("tourist outside the window should not be reminded")
	}
}

func TestSendUpcomingRemindersContinuesPastFailures(t *testing.T) {
	ts, trips, notes := newTripFixture()

	for i := 0; i < 3; i++ {
		_, err := trips.CreateTrip(context.Background(), &models.Trip{
			TouristID: uuid.New(),
			Name:      "Imminent trip",
			StartDate: time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("seeding trip failed: %v", err)
		}
	}

	// Fail every persist: the sweep should still visit every trip and report
	// zero sent rather than abort on the first error.
	notes.createErr = errors.New("collection unavailable")
	sent, err := ts.SendUpcomingReminders(context.Background(), 48*time.Hour)
	if err != nil {
		t.Fatalf("sweep should not abort on per-trip failures: %v", err)
	}
	if sent != 0 {
		t.Errorf("expected zero sent with failing persistence, got %d", sent)
	}
}
