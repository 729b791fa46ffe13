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

// VehicleCollection defines the interface for vehicle data operations.
// Owner-scoped lookups pair the vehicle id with the caller's user id, so a
// vehicle belonging to another user reads as absent.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (primitive.ObjectID, error)
	FindVehiclesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Vehicle, error)
	FindOwnedVehicle(ctx context.Context, id string, userID primitive.ObjectID) (*models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id primitive.ObjectID, vehicle models.Vehicle) error
	UpdateLastService(ctx context.Context, id primitive.ObjectID, date time.Time) error
	DeleteVehicle(ctx context.Context, id string, userID primitive.ObjectID) error
}

// MongoVehicleCollection implements VehicleCollection for MongoDB
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record and returns its generated id.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, vehicle)
	return vehicle.ID, err
}

// FindVehiclesByUser returns the user's vehicles, newest first.
func (c *MongoVehicleCollection) FindVehiclesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindOwnedVehicle finds a vehicle by id, scoped to the owning user.
func (c *MongoVehicleCollection) FindOwnedVehicle(ctx context.Context, id string, userID primitive.ObjectID) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindVehicleByID finds a vehicle without owner scoping. Used by the MQTT
// ingest bridge, where ownership is taken from the stored record itself.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle replaces a vehicle document, bumping its updated_at.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id primitive.ObjectID, vehicle models.Vehicle) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	vehicle.ID = id
	vehicle.UpdatedAt = time.Now()

	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": id}, vehicle)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLastService sets the vehicle's last service date. Invoked when an
// appointment completes; the appointment was already owner-checked.
func (c *MongoVehicleCollection) UpdateLastService(ctx context.Context, id primitive.ObjectID, date time.Time) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_service": date, "updated_at": time.Now()}},
	)
	return err
}

// DeleteVehicle deletes an owner's vehicle. Readings and alerts referencing
// the vehicle are left in place — deletion does not cascade.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string, userID primitive.ObjectID) error {
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
