package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CatalogDbName     = "tripbay"
	ServiceColName    = "services"
	AttractionColName = "attractions"
)

func (mdb *MongodbRepo) CreateService(ctx context.Context, svc *TourService) (*TourService, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, ServiceColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if _, err := col.InsertOne(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to insert service: %v", err)
	}
	return svc, nil
}

func (mdb *MongodbRepo) GetServiceByID(ctx context.Context, id uuid.UUID) (*TourService, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, ServiceColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var svc TourService
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: service %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find service: %v", err)
	}
	return &svc, nil
}

func (mdb *MongodbRepo) ListServices(ctx context.Context, offset, limit int) ([]*TourService, int, error) {
	return mdb.findServices(ctx, bson.M{"status": ListingActive}, offset, limit)
}

// SearchServices accepts equality filters plus an optional "q" key matched
// case-insensitively against name and location.
func (mdb *MongodbRepo) SearchServices(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*TourService, int, error) {
	return mdb.findServices(ctx, buildCatalogFilter(query), offset, limit)
}

func buildCatalogFilter(query map[string]interface{}) bson.M {
	filter := bson.M{}
	for key, value := range query {
		if key == "q" {
			text, _ := value.(string)
			if text == "" {
				continue
			}
			pattern := bson.M{"$regex": text, "$options": "i"}
			filter["$or"] = bson.A{
				bson.M{"name": pattern},
				bson.M{"location": pattern},
			}
			continue
		}
		filter[key] = value
	}
	return filter
}

func (mdb *MongodbRepo) findServices(ctx context.Context, filter bson.M, offset, limit int) ([]*TourService, int, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, ServiceColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find services: %v", err)
	}
	defer cursor.Close(ctx)

	services := []*TourService{}
	for cursor.Next(ctx) {
		var svc TourService
		if err := cursor.Decode(&svc); err != nil {
			return nil, 0, fmt.Errorf("error decoding service: %v", err)
		}
		services = append(services, &svc)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return services, int(total), nil
}

func (mdb *MongodbRepo) UpdateService(ctx context.Context, id uuid.UUID, update map[string]interface{}) (*TourService, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, ServiceColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated TourService
	err = col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: service %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update service: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, CatalogDbName, ServiceColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: service %s", ErrNotFound, id)
	}
	return nil
}

func (mdb *MongodbRepo) CreateAttraction(ctx context.Context, attraction *Attraction) (*Attraction, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, AttractionColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if _, err := col.InsertOne(ctx, attraction); err != nil {
		return nil, fmt.Errorf("failed to insert attraction: %v", err)
	}
	return attraction, nil
}

func (mdb *MongodbRepo) GetAttractionByID(ctx context.Context, id uuid.UUID) (*Attraction, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, AttractionColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var attraction Attraction
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&attraction); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: attraction %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find attraction: %v", err)
	}
	return &attraction, nil
}

func (mdb *MongodbRepo) ListAttractions(ctx context.Context, offset, limit int) ([]*Attraction, int, error) {
	return mdb.findAttractions(ctx, bson.M{"status": ListingActive}, offset, limit)
}

func (mdb *MongodbRepo) SearchAttractions(ctx context.Context, query map[string]interface{}, offset, limit int) ([]*Attraction, int, error) {
	return mdb.findAttractions(ctx, buildCatalogFilter(query), offset, limit)
}

func (mdb *MongodbRepo) findAttractions(ctx context.Context, filter bson.M, offset, limit int) ([]*Attraction, int, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, AttractionColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attractions: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find attractions: %v", err)
	}
	defer cursor.Close(ctx)

	attractions := []*Attraction{}
	for cursor.Next(ctx) {
		var a Attraction
		if err := cursor.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("error decoding attraction: %v", err)
		}
		attractions = append(attractions, &a)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return attractions, int(total), nil
}

func (mdb *MongodbRepo) UpdateAttraction(ctx context.Context, id uuid.UUID, update map[string]interface{}) (*Attraction, error) {
	col, err := mdb.GetCollection(ctx, CatalogDbName, AttractionColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Attraction
	err = col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: attraction %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update attraction: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, CatalogDbName, AttractionColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete attraction: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: attraction %s", ErrNotFound, id)
	}
	return nil
}

func (mdb *MongodbRepo) SetTargetRating(ctx context.Context, targetID uuid.UUID, kind TargetKind, average float64, count int) error {
	colName := ServiceColName
	if kind == TargetAttraction {
		colName = AttractionColName
	}
	col, err := mdb.GetCollection(ctx, CatalogDbName, colName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.UpdateOne(ctx,
		bson.M{"id": targetID},
		bson.M{"$set": bson.M{
			"average_rating": average,
			"review_count":   count,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to set target rating: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, targetID)
	}
	return nil
}
