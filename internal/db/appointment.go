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

// AppointmentCollection defines the interface for appointment operations.
type AppointmentCollection interface {
	InsertAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error)
	FindAppointmentsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error)
	FindOwnedAppointment(ctx context.Context, id string, userID primitive.ObjectID) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus) error
	DeleteAppointment(ctx context.Context, id string, userID primitive.ObjectID) error
}

// MongoAppointmentCollection implements AppointmentCollection for MongoDB
type MongoAppointmentCollection struct {
	Collection *mongo.Collection
}

// InsertAppointment stores a booking and returns it with its generated id.
func (c *MongoAppointmentCollection) InsertAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	if c.Collection == nil {
		return models.Appointment{}, fmt.Errorf("mongo collection is nil")
	}
	if appointment.ID.IsZero() {
		appointment.ID = primitive.NewObjectID()
	}
	appointment.CreatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, appointment)
	return appointment, err
}

// FindAppointmentsByUser returns a user's appointments, newest first.
func (c *MongoAppointmentCollection) FindAppointmentsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindOwnedAppointment finds an appointment by id, scoped to the owner.
func (c *MongoAppointmentCollection) FindOwnedAppointment(ctx context.Context, id string, userID primitive.ObjectID) (*models.Appointment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var appointment models.Appointment
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointmentStatus sets the booking's lifecycle status.
func (c *MongoAppointmentCollection) UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAppointment removes one owned appointment.
func (c *MongoAppointmentCollection) DeleteAppointment(ctx context.Context, id string, userID primitive.ObjectID) error {
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
