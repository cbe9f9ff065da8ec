package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBookingRepo keeps bookings in a map, mimicking the Mongo repo closely
// enough for the lifecycle logic to be exercised.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking

	createErr error
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return &copied, nil
}

func (f *fakeBookingRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ListBookingsByTourist(ctx context.Context, touristID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.TouristID == touristID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeBookingRepo) ListBookingsByService(ctx context.Context, serviceID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.ServiceID == serviceID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeBookingRepo) UpdateBooking(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Booking, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	if status, ok := update["status"]; ok {
		b.Status = status.(models.BookingStatus)
	}
	if people, ok := update["number_of_people"]; ok {
		b.NumberOfPeople = people.(int)
	}
	if price, ok := update["total_price"]; ok {
		b.TotalPrice = price.(float64)
	}
	if requests, ok := update["special_requests"]; ok {
		b.SpecialRequests = requests.(string)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	delete(f.bookings, id)
	return nil
}

// fakeCatalogRepo holds services and attractions keyed by ID and records
// rating writes so tests can assert on the derived aggregate.
type fakeCatalogRepo struct {
	mu          sync.Mutex
	services    map[uuid.UUID]*models.TourService
	attractions map[uuid.UUID]*models.Attraction

	ratingErr error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		services:    make(map[uuid.UUID]*models.TourService),
		attractions: make(map[uuid.UUID]*models.Attraction),
	}
}

func (f *fakeCatalogRepo) CreateService(ctx context.Context, svc *models.TourService) (*models.TourService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *svc
	f.services[svc.ID] = &copied
	return &copied, nil
}

func (f *fakeCatalogRepo) GetServiceByID(ctx context.Context, id uuid.UUID) (*models.TourService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: service not found", models.ErrNotFound)
	}
	copied := *svc
	return &copied, nil
}

func (f *fakeCatalogRepo) ListServices(ctx context.Context, offset, limit int) ([]*models.TourService, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepo) SearchServices(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*models.TourService, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepo) UpdateService(ctx context.Context, id uuid.UUID, update map[string]interface{}) (*models.TourService, error) {
	return f.GetServiceByID(ctx, id)
}

func (f *fakeCatalogRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.services, id)
	return nil
}

func (f *fakeCatalogRepo) CreateAttraction(ctx context.Context, attraction *models.Attraction) (*models.Attraction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *attraction
	f.attractions[attraction.ID] = &copied
	return &copied, nil
}

func (f *fakeCatalogRepo) GetAttractionByID(ctx context.Context, id uuid.UUID) (*models.Attraction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attraction, ok := f.attractions[id]
	if !ok {
		return nil, fmt.Errorf("%w: attraction not found", models.ErrNotFound)
	}
	copied := *attraction
	return &copied, nil
}

func (f *fakeCatalogRepo) ListAttractions(ctx context.Context, offset, limit int) ([]*models.Attraction, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepo) SearchAttractions(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*models.Attraction, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepo) UpdateAttraction(ctx context.Context, id uuid.UUID, update map[string]interface{}) (*models.Attraction, error) {
	return f.GetAttractionByID(ctx, id)
}

func (f *fakeCatalogRepo) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attractions, id)
	return nil
}

func (f *fakeCatalogRepo) SetTargetRating(ctx context.Context, targetID uuid.UUID, kind models.TargetKind, average float64, count int) error {
	if f.ratingErr != nil {
		return f.ratingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch kind {
	case models.TargetService:
		svc, ok := f.services[targetID]
		if !ok {
			return fmt.Errorf("%w: service not found", models.ErrNotFound)
		}
		svc.AverageRating = average
		svc.ReviewCount = count
	case models.TargetAttraction:
		attraction, ok := f.attractions[targetID]
		if !ok {
			return fmt.Errorf("%w: attraction not found", models.ErrNotFound)
		}
		attraction.AverageRating = average
		attraction.ReviewCount = count
	}
	return nil
}

// fakeReviewsRepo enforces the one-review-per-author-per-target constraint
// the same way the unique Mongo index does.
type fakeReviewsRepo struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewsRepo() *fakeReviewsRepo {
	return &fakeReviewsRepo{reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (f *fakeReviewsRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.AuthorID == review.AuthorID && existing.TargetID == review.TargetID {
			return nil, fmt.Errorf("%w: author has already reviewed this target", models.ErrConflict)
		}
	}
	if err := review.BeforeCreate(); err != nil {
		return nil, err
	}
	copied := *review
	f.reviews[review.ID] = &copied
	return &copied, nil
}

func (f *fakeReviewsRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, fmt.Errorf("%w: review not found", models.ErrNotFound)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewsRepo) GetReviewsByTarget(ctx context.Context, targetID uuid.UUID, kind models.TargetKind) ([]*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Review
	for _, r := range f.reviews {
		if r.TargetID == targetID && r.TargetKind == kind {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReviewsRepo) GetReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Review
	for _, r := range f.reviews {
		if r.AuthorID == authorID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReviewsRepo) UpdateReview(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, fmt.Errorf("%w: review not found", models.ErrNotFound)
	}
	if rating, ok := update["rating"]; ok {
		r.Rating = rating.(int)
	}
	if comment, ok := update["comment"]; ok {
		r.Comment = comment.(string)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewsRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("%w: review not found", models.ErrNotFound)
	}
	delete(f.reviews, id)
	return nil
}

// fakeNotificationRepo records persisted notifications in order.
type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*models.Notification

	createErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := n.BeforeCreate(); err != nil {
		return nil, err
	}
	copied := *n
	f.created = append(f.created, &copied)
	return &copied, nil
}

func (f *fakeNotificationRepo) GetNotificationsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.created {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (f *fakeNotificationRepo) MarkNotificationRead(ctx context.Context, userID uuid.UUID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.created {
		if n.ID == id && n.RecipientID == userID {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("%w: notification not found", models.ErrNotFound)
}

func (f *fakeNotificationRepo) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.created {
		if n.RecipientID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) byRecipient(userID uuid.UUID) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.created {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out
}

// fakeUserDirectory resolves user emails from a static map.
type fakeUserDirectory struct {
	emails map[uuid.UUID]string
}

func (f *fakeUserDirectory) GetUserEmail(ctx context.Context, id uuid.UUID) (string, error) {
	address, ok := f.emails[id]
	if !ok {
		return "", fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	return address, nil
}

// fakeEmailSender records outbound emails and can be told to fail.
type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	fail bool
}

type sentEmail struct {
	to      string
	subject string
}

func (f *fakeEmailSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.fail {
		return errors.New("smtp relay unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: to, subject: subject})
	return nil
}

func (f *fakeEmailSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
