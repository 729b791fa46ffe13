package health

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motordash/vehicle-health/internal/models"
)

func testVehicle(engineCC int, fuelType models.FuelType) models.Vehicle {
	return models.Vehicle{
		ID:       primitive.NewObjectID(),
		Model:    "Test Vehicle",
		EngineCC: engineCC,
		FuelType: fuelType,
	}
}

func TestBackfill_SampleCountAndTimestamps(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	readings := gen.Backfill(testVehicle(1500, models.FuelPetrol), now)
	assert.Len(t, readings, BackfillSamples)

	// Hourly ascending, ending at now.
	assert.True(t, readings[len(readings)-1].Timestamp.Equal(now))
	for i := 1; i < len(readings); i++ {
		assert.Equal(t, time.Hour, readings[i].Timestamp.Sub(readings[i-1].Timestamp))
	}
}

func TestBackfill_ValuesWithinRanges(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))
	vehicle := testVehicle(1500, models.FuelPetrol)

	for _, r := range gen.Backfill(vehicle, time.Now()) {
		assert.Equal(t, vehicle.ID, r.VehicleID)
		// base RPM 2000 for a 1500cc engine, jittered by ±500
		assert.GreaterOrEqual(t, r.RPM, 1500)
		assert.Less(t, r.RPM, 2500)
		assert.GreaterOrEqual(t, r.Temperature, 75.0)
		assert.Less(t, r.Temperature, 105.0)
		assert.GreaterOrEqual(t, r.Battery, 12.0)
		assert.Less(t, r.Battery, 14.5)
		assert.GreaterOrEqual(t, r.Fuel, 0.0)
		assert.Less(t, r.Fuel, 100.0)
		// base efficiency 13 for a petrol engine >=1500cc, jittered by ±2
		assert.GreaterOrEqual(t, r.FuelEfficiency, 11.0)
		assert.Less(t, r.FuelEfficiency, 15.0)
		assert.GreaterOrEqual(t, r.Speed, 0.0)
		assert.Less(t, r.Speed, 120.0)
	}
}

func TestBackfill_BaseValuesByVehicleClass(t *testing.T) {
	tests := []struct {
		name        string
		vehicle     models.Vehicle
		rpmLo, rpmHi int
		effLo, effHi float64
	}{
		{"small petrol engine", testVehicle(1100, models.FuelPetrol), 1000, 2000, 14, 18},
		{"mid petrol engine", testVehicle(1800, models.FuelPetrol), 1500, 2500, 11, 15},
		{"large petrol engine", testVehicle(3000, models.FuelPetrol), 2000, 3000, 11, 15},
		{"hybrid", testVehicle(1800, models.FuelHybrid), 1500, 2500, 16, 20},
		{"electric", testVehicle(1100, models.FuelElectric), 1000, 2000, -2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(rand.New(rand.NewSource(7)))
			for _, r := range gen.Backfill(tt.vehicle, time.Now()) {
				assert.GreaterOrEqual(t, r.RPM, tt.rpmLo)
				assert.Less(t, r.RPM, tt.rpmHi)
				assert.GreaterOrEqual(t, r.FuelEfficiency, tt.effLo)
				assert.Less(t, r.FuelEfficiency, tt.effHi)
			}
		})
	}
}

func TestBackfill_ReproducibleWithSameSeed(t *testing.T) {
	vehicle := testVehicle(1500, models.FuelPetrol)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := NewGenerator(rand.New(rand.NewSource(99))).Backfill(vehicle, now)
	second := NewGenerator(rand.New(rand.NewSource(99))).Backfill(vehicle, now)
	assert.Equal(t, first, second)
}

func TestOnboardingScore(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(3)))
	for i := 0; i < 200; i++ {
		score, status := gen.OnboardingScore()
		assert.GreaterOrEqual(t, score, 80)
		assert.LessOrEqual(t, score, 99)
		assert.Equal(t, StatusForScore(score), status)
	}
}

func TestAppointmentCost_WithinBand(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(5)))
	for i := 0; i < 200; i++ {
		cost := gen.AppointmentCost()
		assert.GreaterOrEqual(t, cost, 500)
		assert.Less(t, cost, 3500)
	}
}
