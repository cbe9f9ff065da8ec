package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	NotificationDbName  = "tripbay"
	NotificationColName = "notifications"
)

func (mdb *MongodbRepo) CreateNotification(ctx context.Context, n *Notification) (*Notification, error) {
	if err := n.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare notification for creation: %w", err)
	}
	if n.RecipientID == uuid.Nil {
		return nil, fmt.Errorf("%w: notification requires a recipient", ErrValidation)
	}
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if _, err := col.InsertOne(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to insert notification: %v", err)
	}
	return n, nil
}

func (mdb *MongodbRepo) GetNotificationsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*Notification, int, error) {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"recipient_id": userID}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find notifications: %v", err)
	}
	defer cursor.Close(ctx)

	notifications := []*Notification{}
	for cursor.Next(ctx) {
		var n Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, 0, fmt.Errorf("error decoding notification: %v", err)
		}
		notifications = append(notifications, &n)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return notifications, int(total), nil
}

// MarkNotificationRead flips is_read to true. The flag is monotonic: there is
// no operation that sets it back to false.
func (mdb *MongodbRepo) MarkNotificationRead(ctx context.Context, userID uuid.UUID, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (mdb *MongodbRepo) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = col.UpdateMany(ctx,
		bson.M{"recipient_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %v", err)
	}
	return nil
}
