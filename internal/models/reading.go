package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultFuelEfficiency is applied when a reading payload omits the field.
const DefaultFuelEfficiency = 15.0

// SensorReading is one telemetry sample for a vehicle. Readings are
// immutable once stored: they are only ever created and read.
type SensorReading struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID      primitive.ObjectID `bson:"vehicle_id" json:"vehicleId"`
	RPM            int                `bson:"rpm" json:"rpm"`
	Temperature    float64            `bson:"temperature" json:"temperature"` // °C
	Battery        float64            `bson:"battery" json:"battery"`         // volts
	Fuel           float64            `bson:"fuel" json:"fuel"`               // percent
	FuelEfficiency float64            `bson:"fuel_efficiency" json:"fuelEfficiency"` // km per unit fuel
	Speed          float64            `bson:"speed" json:"speed"` // km/h
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}

// SensorReadingRequest is the ingest payload. FuelEfficiency is a pointer so
// an absent field can be told apart from an explicit zero (meaningful for
// electric vehicles) and defaulted to DefaultFuelEfficiency.
type SensorReadingRequest struct {
	VehicleID      string   `json:"vehicleId"`
	RPM            int      `json:"rpm"`
	Temperature    float64  `json:"temperature"`
	Battery        float64  `json:"battery"`
	Fuel           float64  `json:"fuel"`
	FuelEfficiency *float64 `json:"fuelEfficiency"`
	Speed          float64  `json:"speed"`
}

// Reading converts the payload into a stored sample for the given vehicle,
// applying defaults for fuel efficiency and timestamp.
func (r SensorReadingRequest) Reading(vehicleID primitive.ObjectID, now time.Time) SensorReading {
	eff := DefaultFuelEfficiency
	if r.FuelEfficiency != nil {
		eff = *r.FuelEfficiency
	}
	return SensorReading{
		VehicleID:      vehicleID,
		RPM:            r.RPM,
		Temperature:    r.Temperature,
		Battery:        r.Battery,
		Fuel:           r.Fuel,
		FuelEfficiency: eff,
		Speed:          r.Speed,
		Timestamp:      now,
	}
}

// SensorStats holds 24h arithmetic means over a vehicle's readings.
type SensorStats struct {
	AvgRPM            int     `json:"avgRpm"`
	AvgTemperature    int     `json:"avgTemperature"`
	AvgBattery        float64 `json:"avgBattery"`
	AvgFuel           int     `json:"avgFuel"`
	AvgFuelEfficiency float64 `json:"avgFuelEfficiency"`
}
