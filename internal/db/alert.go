package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motordash/vehicle-health/internal/models"
)

// AlertCollection defines the interface for alert data operations. All
// reads and mutations are scoped to the owning user.
type AlertCollection interface {
	InsertAlert(ctx context.Context, alert models.Alert) error
	FindAlertsByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int64) ([]models.Alert, error)
	FindAlertsByVehicle(ctx context.Context, vehicleID primitive.ObjectID, limit int64) ([]models.Alert, error)
	MarkAlertRead(ctx context.Context, id string, userID primitive.ObjectID) (*models.Alert, error)
	MarkAllAlertsRead(ctx context.Context, userID primitive.ObjectID) error
	DeleteAlert(ctx context.Context, id string, userID primitive.ObjectID) error
	CountAlerts(ctx context.Context, userID primitive.ObjectID) (models.AlertCounts, error)
}

// MongoAlertCollection implements AlertCollection for MongoDB
type MongoAlertCollection struct {
	Collection *mongo.Collection
}

// InsertAlert inserts an alert record, stamping its creation time.
func (c *MongoAlertCollection) InsertAlert(ctx context.Context, alert models.Alert) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, alert)
	return err
}

// FindAlertsByUser returns a user's alerts, newest first, optionally
// limited to unread ones.
func (c *MongoAlertCollection) FindAlertsByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int64) ([]models.Alert, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["is_read"] = false
	}
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	alerts := []models.Alert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindAlertsByVehicle returns a vehicle's alerts, newest first.
func (c *MongoAlertCollection) FindAlertsByVehicle(ctx context.Context, vehicleID primitive.ObjectID, limit int64) ([]models.Alert, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	alerts := []models.Alert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkAlertRead flips the is_read flag on one owned alert and returns the
// updated record.
func (c *MongoAlertCollection) MarkAlertRead(ctx context.Context, id string, userID primitive.ObjectID) (*models.Alert, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var alert models.Alert
	err = c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// MarkAllAlertsRead marks every unread alert of the user as read.
func (c *MongoAlertCollection) MarkAllAlertsRead(ctx context.Context, userID primitive.ObjectID) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.UpdateMany(
		ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

// DeleteAlert removes one owned alert.
func (c *MongoAlertCollection) DeleteAlert(ctx context.Context, id string, userID primitive.ObjectID) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAlerts returns total, unread, and unread-critical counts for a user.
func (c *MongoAlertCollection) CountAlerts(ctx context.Context, userID primitive.ObjectID) (models.AlertCounts, error) {
	if c.Collection == nil {
		return models.AlertCounts{}, fmt.Errorf("mongo collection is nil")
	}
	var counts models.AlertCounts
	var err error

	counts.Total, err = c.Collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return models.AlertCounts{}, err
	}
	counts.Unread, err = c.Collection.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
	if err != nil {
		return models.AlertCounts{}, err
	}
	counts.Critical, err = c.Collection.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"type":    models.AlertCritical,
		"is_read": false,
	})
	if err != nil {
		return models.AlertCounts{}, err
	}
	return counts, nil
}
