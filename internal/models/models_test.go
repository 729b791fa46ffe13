package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsValidFuelType(t *testing.T) {
	for _, ft := range []FuelType{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric} {
		assert.True(t, IsValidFuelType(ft))
	}
	assert.False(t, IsValidFuelType("Kerosene"))
	assert.False(t, IsValidFuelType(""))
	assert.False(t, IsValidFuelType("petrol")) // case sensitive
}

func TestIsValidAppointmentStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled} {
		assert.True(t, IsValidAppointmentStatus(s))
	}
	assert.False(t, IsValidAppointmentStatus("Pending"))
	assert.False(t, IsValidAppointmentStatus(""))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}

func TestSensorReadingRequest_Reading(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fuel efficiency defaults when absent", func(t *testing.T) {
		req := SensorReadingRequest{RPM: 3000, Temperature: 85, Battery: 13, Fuel: 50}
		r := req.Reading(vehicleID, now)
		assert.Equal(t, vehicleID, r.VehicleID)
		assert.Equal(t, DefaultFuelEfficiency, r.FuelEfficiency)
		assert.Equal(t, now, r.Timestamp)
	})

	t.Run("explicit zero is preserved", func(t *testing.T) {
		zero := 0.0
		req := SensorReadingRequest{RPM: 3000, Temperature: 85, Battery: 13, Fuel: 50, FuelEfficiency: &zero}
		r := req.Reading(vehicleID, now)
		assert.Equal(t, 0.0, r.FuelEfficiency)
	})

	t.Run("explicit value is preserved", func(t *testing.T) {
		eff := 18.5
		req := SensorReadingRequest{RPM: 3000, Temperature: 85, Battery: 13, Fuel: 50, FuelEfficiency: &eff}
		r := req.Reading(vehicleID, now)
		assert.Equal(t, 18.5, r.FuelEfficiency)
	})
}
