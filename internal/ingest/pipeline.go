// Package ingest implements the reading ingestion pipeline shared by the
// REST handler and the MQTT bridge: store the sample, rescore the vehicle,
// then emit threshold alerts.
package ingest

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/health"
	"github.com/motordash/vehicle-health/internal/models"
)

// Pipeline applies the vehicle mutation contract for one incoming reading.
type Pipeline struct {
	vehicles db.VehicleCollection
	readings db.ReadingCollection
	alerts   db.AlertCollection
}

// NewPipeline creates a Pipeline over the given collections.
func NewPipeline(vehicles db.VehicleCollection, readings db.ReadingCollection, alerts db.AlertCollection) *Pipeline {
	return &Pipeline{vehicles: vehicles, readings: readings, alerts: alerts}
}

// Process stores the reading, recomputes the vehicle's health score and
// status as a pair, persists the vehicle, then evaluates and stores alerts.
// The score update and the alert writes are sequential best-effort steps,
// not a transaction: a failed alert insert is logged and does not fail the
// call, so callers may observe an updated score with missing alerts.
func (p *Pipeline) Process(ctx context.Context, vehicle *models.Vehicle, reading models.SensorReading) (models.SensorReading, error) {
	stored, err := p.readings.InsertReading(ctx, reading)
	if err != nil {
		return models.SensorReading{}, err
	}

	score, status := health.ComputeHealth(stored)
	vehicle.HealthScore = score
	vehicle.Status = status
	vehicle.UpdatedAt = time.Now()
	if err := p.vehicles.UpdateVehicle(ctx, vehicle.ID, *vehicle); err != nil {
		return models.SensorReading{}, err
	}

	for _, event := range health.EvaluateAlerts(stored) {
		alert := models.Alert{
			VehicleID: vehicle.ID,
			UserID:    vehicle.UserID,
			Type:      event.Type,
			Message:   event.Message,
			Timestamp: time.Now(),
		}
		if err := p.alerts.InsertAlert(ctx, alert); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"vehicle_id": vehicle.ID.Hex(),
				"type":       event.Type,
			}).Error("Failed to store alert")
		}
	}

	return stored, nil
}
