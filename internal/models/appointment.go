package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus tracks the service booking lifecycle:
// Scheduled -> Confirmed -> Completed, or -> Cancelled.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment is a service booking for a vehicle.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	VehicleID primitive.ObjectID `bson:"vehicle_id" json:"vehicleId"`
	Vehicle   string             `bson:"vehicle" json:"vehicle"` // display label
	Service   string             `bson:"service" json:"service"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string             `bson:"time" json:"time"`
	Center    string             `bson:"center" json:"center"`
	Status    AppointmentStatus  `bson:"status" json:"status"`
	Cost      int                `bson:"cost" json:"cost"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CreateAppointmentRequest represents an appointment booking request
type CreateAppointmentRequest struct {
	VehicleID string `json:"vehicleId"`
	Vehicle   string `json:"vehicle"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Center    string `json:"center"`
}

// IsValidAppointmentStatus checks if an appointment status is valid
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	default:
		return false
	}
}
