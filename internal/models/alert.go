package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertType classifies an alert's severity
type AlertType string

const (
	AlertWarning  AlertType = "warning"
	AlertCritical AlertType = "critical"
	AlertInfo     AlertType = "info"
)

// Alert is a persisted notification triggered by a reading crossing a fixed
// threshold. Immutable except for the IsRead flag.
type Alert struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID primitive.ObjectID `bson:"vehicle_id" json:"vehicleId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Type      AlertType          `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	IsRead    bool               `bson:"is_read" json:"isRead"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// AlertCounts holds per-user alert count statistics.
type AlertCounts struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Critical int64 `json:"critical"` // unread critical
}
