package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelType represents a vehicle's fuel type
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
)

// HealthStatus is the categorical bucket derived from a vehicle's health score.
type HealthStatus string

const (
	StatusExcellent HealthStatus = "Excellent"
	StatusGood      HealthStatus = "Good"
	StatusFair      HealthStatus = "Fair"
	StatusPoor      HealthStatus = "Poor"
)

// Vehicle represents a registered vehicle owned by a single user.
// HealthScore and Status are derived fields: they change together via the
// scoring engine, or through the explicit administrative override on update.
type Vehicle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Model       string             `bson:"model" json:"model"`
	EngineCC    int                `bson:"engine_cc" json:"engineCC"`
	FuelType    FuelType           `bson:"fuel_type" json:"fuelType"`
	Odometer    int                `bson:"odometer" json:"odometer"` // km
	LastService time.Time          `bson:"last_service" json:"lastService"`
	HealthScore int                `bson:"health_score" json:"healthScore"` // 0-100
	Status      HealthStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateVehicleRequest represents a vehicle creation request
type CreateVehicleRequest struct {
	Model       string   `json:"model"`
	EngineCC    int      `json:"engineCC"`
	FuelType    FuelType `json:"fuelType"`
	Odometer    int      `json:"odometer"`
	LastService string   `json:"lastService"` // YYYY-MM-DD
}

// UpdateVehicleRequest represents a partial vehicle update. Nil fields are
// left unchanged. HealthScore and Status form the administrative override
// escape hatch and are applied independently when provided.
type UpdateVehicleRequest struct {
	Model       *string       `json:"model"`
	EngineCC    *int          `json:"engineCC"`
	FuelType    *FuelType     `json:"fuelType"`
	Odometer    *int          `json:"odometer"`
	LastService *string       `json:"lastService"`
	HealthScore *int          `json:"healthScore"`
	Status      *HealthStatus `json:"status"`
}

// VehicleStats summarises a user's fleet for the dashboard.
type VehicleStats struct {
	TotalVehicles      int                `json:"totalVehicles"`
	AvgHealthScore     int                `json:"avgHealthScore"`
	HealthDistribution HealthDistribution `json:"healthDistribution"`
}

// HealthDistribution counts vehicles per health bucket.
type HealthDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

// IsValidFuelType checks if a fuel type is valid
func IsValidFuelType(ft FuelType) bool {
	switch ft {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	default:
		return false
	}
}
