package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/tripbay/internal/connect"
	"github.com/joshua-takyi/tripbay/internal/helpers"
	"github.com/joshua-takyi/tripbay/internal/models"
)

// CatalogService manages the browsable side of the platform: bookable tour
// services and reviewable attractions. The derived rating fields on both are
// owned by the rating engine and stripped from inbound writes here.
type CatalogService struct {
	catalogRepo models.CatalogRepo
}

func NewCatalogService(catalogRepo models.CatalogRepo) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

func (cs *CatalogService) uploadListingImages(ctx context.Context, images []string, folder string) ([]string, []string, error) {
	if len(images) == 0 {
		return nil, nil, nil
	}

	uploadChan := make(chan struct {
		urls      []string
		publicIDs []string
	}, 1)
	errorChan := make(chan error, 1)

	go func() {
		urls, publicIDs, uploadErr := helpers.UploadImages(ctx, connect.Cld, images, folder)
		if uploadErr != nil {
			errorChan <- uploadErr
			return
		}
		uploadChan <- struct {
			urls      []string
			publicIDs []string
		}{urls, publicIDs}
	}()

	select {
	case result := <-uploadChan:
		return result.urls, result.publicIDs, nil
	case uploadErr := <-errorChan:
		return nil, nil, fmt.Errorf("failed to upload images: %v", uploadErr)
	case <-time.After(30 * time.Second):
		return nil, nil, fmt.Errorf("image upload timeout")
	}
}

func (cs *CatalogService) CreateService(ctx context.Context, svc *models.TourService, ownerID uuid.UUID) (*models.TourService, error) {
	if err := models.Validate.Struct(svc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if svc.UnitPrice <= 0 {
		return nil, fmt.Errorf("%w: unit price must be > 0", models.ErrValidation)
	}

	urls, publicIDs, err := cs.uploadListingImages(ctx, svc.Images, helpers.ServiceFolder)
	if err != nil {
		return nil, err
	}
	if urls != nil {
		svc.Images = helpers.RemoveDuplicates(urls)
	}

	now := time.Now()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	svc.OwnerID = ownerID
	svc.Slug = helpers.GenerateSlug(svc.Name, svc.Location)
	svc.Status = models.ListingPending
	svc.AverageRating = 0
	svc.ReviewCount = 0
	svc.CreatedAt = now
	svc.UpdatedAt = now

	created, err := cs.catalogRepo.CreateService(ctx, svc)
	if err != nil {
		if len(publicIDs) > 0 {
			helpers.DeleteImages(ctx, connect.Cld, helpers.ServiceFolder, publicIDs)
		}
		return nil, err
	}

	return created, nil
}

func (cs *CatalogService) GetServiceByID(ctx context.Context, id uuid.UUID) (*models.TourService, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid service ID", models.ErrValidation)
	}
	return cs.catalogRepo.GetServiceByID(ctx, id)
}

func (cs *CatalogService) ListServices(ctx context.Context, offset, limit int) ([]*models.TourService, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	return cs.catalogRepo.ListServices(ctx, offset, limit)
}

func (cs *CatalogService) SearchServices(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*models.TourService, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	if len(query) == 0 {
		return nil, 0, fmt.Errorf("%w: query parameters cannot be empty", models.ErrValidation)
	}
	return cs.catalogRepo.SearchServices(ctx, query, offset, limit)
}

// UpdateService applies a partial update on behalf of the listing's owner or
// an admin. Derived and ownership fields are silently dropped from the patch.
func (cs *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, update map[string]interface{}, actorID uuid.UUID, role models.Role) (*models.TourService, error) {
	svc, err := cs.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && svc.OwnerID != actorID {
		return nil, fmt.Errorf("%w: service belongs to another owner", models.ErrUnauthorized)
	}

	for _, field := range []string{"average_rating", "review_count", "owner_id", "id"} {
		delete(update, field)
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}
	if price, ok := update["unit_price"]; ok {
		if p, ok := price.(float64); !ok || p <= 0 {
			return nil, fmt.Errorf("%w: unit price must be > 0", models.ErrValidation)
		}
	}

	return cs.catalogRepo.UpdateService(ctx, id, update)
}

func (cs *CatalogService) DeleteService(ctx context.Context, id uuid.UUID, actorID uuid.UUID, role models.Role) error {
	svc, err := cs.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && svc.OwnerID != actorID {
		return fmt.Errorf("%w: service belongs to another owner", models.ErrUnauthorized)
	}
	return cs.catalogRepo.DeleteService(ctx, id)
}

func (cs *CatalogService) CreateAttraction(ctx context.Context, attraction *models.Attraction, ownerID uuid.UUID) (*models.Attraction, error) {
	if err := models.Validate.Struct(attraction); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	urls, publicIDs, err := cs.uploadListingImages(ctx, attraction.Images, helpers.AttractionFolder)
	if err != nil {
		return nil, err
	}
	if urls != nil {
		attraction.Images = helpers.RemoveDuplicates(urls)
	}

	now := time.Now()
	if attraction.ID == uuid.Nil {
		attraction.ID = uuid.New()
	}
	attraction.OwnerID = ownerID
	attraction.Slug = helpers.GenerateSlug(attraction.Name, attraction.Location)
	attraction.Status = models.ListingPending
	attraction.AverageRating = 0
	attraction.ReviewCount = 0
	attraction.CreatedAt = now
	attraction.UpdatedAt = now

	created, err := cs.catalogRepo.CreateAttraction(ctx, attraction)
	if err != nil {
		if len(publicIDs) > 0 {
			helpers.DeleteImages(ctx, connect.Cld, helpers.AttractionFolder, publicIDs)
		}
		return nil, err
	}

	return created, nil
}

func (cs *CatalogService) GetAttractionByID(ctx context.Context, id uuid.UUID) (*models.Attraction, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid attraction ID", models.ErrValidation)
	}
	return cs.catalogRepo.GetAttractionByID(ctx, id)
}

func (cs *CatalogService) ListAttractions(ctx context.Context, offset, limit int) ([]*models.Attraction, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	return cs.catalogRepo.ListAttractions(ctx, offset, limit)
}

func (cs *CatalogService) SearchAttractions(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*models.Attraction, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrValidation)
	}
	if len(query) == 0 {
		return nil, 0, fmt.Errorf("%w: query parameters cannot be empty", models.ErrValidation)
	}
	return cs.catalogRepo.SearchAttractions(ctx, query, offset, limit)
}

func (cs *CatalogService) UpdateAttraction(ctx context.Context, id uuid.UUID, update map[string]interface{}, actorID uuid.UUID, role models.Role) (*models.Attraction, error) {
	attraction, err := cs.catalogRepo.GetAttractionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && attraction.OwnerID != actorID {
		return nil, fmt.Errorf("%w: attraction belongs to another owner", models.ErrUnauthorized)
	}

	for _, field := range []string{"average_rating", "review_count", "owner_id", "id"} {
		delete(update, field)
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}

	return cs.catalogRepo.UpdateAttraction(ctx, id, update)
}

func (cs *CatalogService) DeleteAttraction(ctx context.Context, id uuid.UUID, actorID uuid.UUID, role models.Role) error {
	attraction, err := cs.catalogRepo.GetAttractionByID(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && attraction.OwnerID != actorID {
		return fmt.Errorf("%w: attraction belongs to another owner", models.ErrUnauthorized)
	}
	return cs.catalogRepo.DeleteAttraction(ctx, id)
}
