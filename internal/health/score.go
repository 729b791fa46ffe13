// Package health holds the vehicle health-scoring and alerting rule
// engines plus the synthetic reading generator used at onboarding. Both
// engines are pure: identical input always produces identical output, and
// neither validates ranges — malformed payloads are rejected upstream.
package health

import (
	"github.com/motordash/vehicle-health/internal/models"
)

// penaltyRules is the fixed, ordered penalty table. Each entry covers one
// sensor dimension and returns at most one penalty tier, so a reading can
// lose points on every dimension at once but never twice on the same one.
var penaltyRules = []func(models.SensorReading) int{
	temperaturePenalty,
	batteryPenalty,
	rpmPenalty,
	fuelEfficiencyPenalty,
}

// ComputeHealth maps a sensor reading to a health score in [0,100] and the
// status bucket that score implies. The two values are always derived
// together; callers must never persist one without the other.
func ComputeHealth(r models.SensorReading) (int, models.HealthStatus) {
	score := 100
	for _, penalty := range penaltyRules {
		score -= penalty(r)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, StatusForScore(score)
}

// StatusForScore returns the unique status bucket for a health score.
func StatusForScore(score int) models.HealthStatus {
	switch {
	case score >= 90:
		return models.StatusExcellent
	case score >= 70:
		return models.StatusGood
	case score >= 50:
		return models.StatusFair
	default:
		return models.StatusPoor
	}
}

func temperaturePenalty(r models.SensorReading) int {
	switch {
	case r.Temperature > 100:
		return 10
	case r.Temperature > 90:
		return 5
	}
	return 0
}

func batteryPenalty(r models.SensorReading) int {
	switch {
	case r.Battery < 12:
		return 15
	case r.Battery < 12.5:
		return 8
	}
	return 0
}

// rpmPenalty fires on extreme RPM in either direction. Negative RPM is not
// rejected here; it simply falls under the low-RPM rule.
func rpmPenalty(r models.SensorReading) int {
	if r.RPM > 4000 || r.RPM < 500 {
		return 5
	}
	return 0
}

func fuelEfficiencyPenalty(r models.SensorReading) int {
	switch {
	case r.FuelEfficiency < 10:
		return 10
	case r.FuelEfficiency < 12:
		return 5
	}
	return 0
}
