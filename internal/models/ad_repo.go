package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AdDbName  = "tripbay"
	AdColName = "advertisements"
)

func (mdb *MongodbRepo) CreateAd(ctx context.Context, ad *Advertisement) (*Advertisement, error) {
	if err := ad.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare advertisement for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, AdDbName, AdColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if _, err := col.InsertOne(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to insert advertisement: %v", err)
	}
	return ad, nil
}

func (mdb *MongodbRepo) GetAdByID(ctx context.Context, id primitive.ObjectID) (*Advertisement, error) {
	col, err := mdb.GetCollection(ctx, AdDbName, AdColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var ad Advertisement
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: advertisement %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to find advertisement: %v", err)
	}
	return &ad, nil
}

func (mdb *MongodbRepo) ListAdsByStatus(ctx context.Context, status AdStatus, offset, limit int) ([]*Advertisement, int, error) {
	col, err := mdb.GetCollection(ctx, AdDbName, AdColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"status": status}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count advertisements: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find advertisements: %v", err)
	}
	defer cursor.Close(ctx)

	ads := []*Advertisement{}
	for cursor.Next(ctx) {
		var ad Advertisement
		if err := cursor.Decode(&ad); err != nil {
			return nil, 0, fmt.Errorf("error decoding advertisement: %v", err)
		}
		ads = append(ads, &ad)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return ads, int(total), nil
}

func (mdb *MongodbRepo) ListAdsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Advertisement, error) {
	col, err := mdb.GetCollection(ctx, AdDbName, AdColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	cursor, err := col.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find advertisements: %v", err)
	}
	defer cursor.Close(ctx)

	ads := []*Advertisement{}
	for cursor.Next(ctx) {
		var ad Advertisement
		if err := cursor.Decode(&ad); err != nil {
			return nil, fmt.Errorf("error decoding advertisement: %v", err)
		}
		ads = append(ads, &ad)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return ads, nil
}

func (mdb *MongodbRepo) UpdateAd(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Advertisement, error) {
	col, err := mdb.GetCollection(ctx, AdDbName, AdColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	update["reviewed_at"] = &now
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Advertisement
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: advertisement %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to update advertisement: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteAd(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, AdDbName, AdColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete advertisement: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: advertisement %s", ErrNotFound, id.Hex())
	}
	return nil
}
