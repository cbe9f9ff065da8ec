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
	TripDbName  = "tripbay"
	TripColName = "trips"
)

func (mdb *MongodbRepo) CreateTrip(ctx context.Context, trip *Trip) (*Trip, error) {
	if err := trip.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare trip for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, TripDbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if _, err := col.InsertOne(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to insert trip: %v", err)
	}
	return trip, nil
}

func (mdb *MongodbRepo) GetTripByID(ctx context.Context, id primitive.ObjectID) (*Trip, error) {
	col, err := mdb.GetCollection(ctx, TripDbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var trip Trip
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: trip %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to find trip: %v", err)
	}
	return &trip, nil
}

func (mdb *MongodbRepo) ListTripsByTourist(ctx context.Context, touristID uuid.UUID) ([]*Trip, error) {
	return mdb.findTrips(ctx, bson.M{"tourist_id": touristID})
}

// ListTripsStartingBefore returns trips whose start date falls between now and
// the cutoff, for the reminder fan-out.
func (mdb *MongodbRepo) ListTripsStartingBefore(ctx context.Context, cutoff time.Time) ([]*Trip, error) {
	return mdb.findTrips(ctx, bson.M{"start_date": bson.M{"$gte": time.Now(), "$lte": cutoff}})
}

func (mdb *MongodbRepo) findTrips(ctx context.Context, filter bson.M) ([]*Trip, error) {
	col, err := mdb.GetCollection(ctx, TripDbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.M{"start_date": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %v", err)
	}
	defer cursor.Close(ctx)

	trips := []*Trip{}
	for cursor.Next(ctx) {
		var t Trip
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding trip: %v", err)
		}
		trips = append(trips, &t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return trips, nil
}

func (mdb *MongodbRepo) UpdateTrip(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Trip, error) {
	col, err := mdb.GetCollection(ctx, TripDbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Trip
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: trip %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to update trip: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteTrip(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, TripDbName, TripColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: trip %s", ErrNotFound, id.Hex())
	}
	return nil
}
