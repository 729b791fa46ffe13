package health

import (
	"math/rand"
	"time"

	"github.com/motordash/vehicle-health/internal/models"
)

// BackfillSamples is the number of hourly synthetic readings created when a
// vehicle is onboarded, so charts are non-empty immediately.
const BackfillSamples = 48

// Generator produces synthetic sensor data seeded by a vehicle's own
// attributes. The random source is injected so output is reproducible in
// tests.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator backed by the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Backfill returns BackfillSamples hourly readings for a freshly created
// vehicle, timestamps one hour apart and ending at now.
func (g *Generator) Backfill(v models.Vehicle, now time.Time) []models.SensorReading {
	readings := make([]models.SensorReading, 0, BackfillSamples)
	for i := 0; i < BackfillSamples; i++ {
		r := g.reading(v)
		r.Timestamp = now.Add(-time.Duration(BackfillSamples-1-i) * time.Hour)
		readings = append(readings, r)
	}
	return readings
}

// reading draws one plausible sample based on the vehicle's engine size and
// fuel type.
func (g *Generator) reading(v models.Vehicle) models.SensorReading {
	baseRPM := 2500
	if v.EngineCC < 1200 {
		baseRPM = 1500
	} else if v.EngineCC < 2000 {
		baseRPM = 2000
	}

	var baseFuelEff float64
	switch {
	case v.FuelType == models.FuelElectric:
		baseFuelEff = 0
	case v.FuelType == models.FuelHybrid:
		baseFuelEff = 18
	case v.EngineCC < 1500:
		baseFuelEff = 16
	default:
		baseFuelEff = 13
	}

	return models.SensorReading{
		VehicleID:      v.ID,
		RPM:            baseRPM + g.rng.Intn(1000) - 500,
		Temperature:    75 + g.rng.Float64()*30,
		Battery:        12 + g.rng.Float64()*2.5,
		Fuel:           float64(g.rng.Intn(100)),
		FuelEfficiency: baseFuelEff + g.rng.Float64()*4 - 2,
		Speed:          float64(g.rng.Intn(120)),
	}
}

// OnboardingScore returns the health score and status assigned to a vehicle
// after backfill. The score is drawn uniformly from [80,99] rather than
// derived from the synthetic readings; the status is the bucket that score
// implies, keeping the score/status invariant intact.
func (g *Generator) OnboardingScore() (int, models.HealthStatus) {
	score := 80 + g.rng.Intn(20)
	return score, StatusForScore(score)
}

// AppointmentCost draws a service cost in the fixed [500,3500) band.
func (g *Generator) AppointmentCost() int {
	return 500 + g.rng.Intn(3000)
}
