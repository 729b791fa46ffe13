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

// ReadingCollection defines the interface for sensor reading operations.
// Readings are append-only: there is no update or delete.
type ReadingCollection interface {
	InsertReading(ctx context.Context, reading models.SensorReading) (models.SensorReading, error)
	InsertReadings(ctx context.Context, readings []models.SensorReading) error
	FindReadingsSince(ctx context.Context, vehicleID primitive.ObjectID, since time.Time) ([]models.SensorReading, error)
}

// MongoReadingCollection implements ReadingCollection for MongoDB
type MongoReadingCollection struct {
	Collection *mongo.Collection
}

// InsertReading stores one sample and returns it with its generated id.
func (c *MongoReadingCollection) InsertReading(ctx context.Context, reading models.SensorReading) (models.SensorReading, error) {
	if c.Collection == nil {
		return models.SensorReading{}, fmt.Errorf("mongo collection is nil")
	}
	if reading.ID.IsZero() {
		reading.ID = primitive.NewObjectID()
	}
	_, err := c.Collection.InsertOne(ctx, reading)
	return reading, err
}

// InsertReadings stores a batch of samples in one call. Used by the
// onboarding backfill; relative insertion order is not guaranteed to
// callers.
func (c *MongoReadingCollection) InsertReadings(ctx context.Context, readings []models.SensorReading) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	docs := make([]interface{}, 0, len(readings))
	for _, r := range readings {
		docs = append(docs, r)
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}

// FindReadingsSince returns a vehicle's readings at or after the given
// time, oldest first — the order charts consume.
func (c *MongoReadingCollection) FindReadingsSince(ctx context.Context, vehicleID primitive.ObjectID, since time.Time) ([]models.SensorReading, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{
		"vehicle_id": vehicleID,
		"timestamp":  bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	readings := []models.SensorReading{}
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
