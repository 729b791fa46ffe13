package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/ingest"
	"github.com/motordash/vehicle-health/internal/models"
)

// SensorHandler handles reading ingestion and sensor queries.
type SensorHandler struct {
	vehicles db.VehicleCollection
	readings db.ReadingCollection
	pipeline *ingest.Pipeline
}

// NewSensorHandler creates a new sensor handler
func NewSensorHandler(vehicles db.VehicleCollection, readings db.ReadingCollection, pipeline *ingest.Pipeline) *SensorHandler {
	return &SensorHandler{
		vehicles: vehicles,
		readings: readings,
		pipeline: pipeline,
	}
}

// Ingest accepts one sensor reading: it verifies ownership, stores the
// sample, rescores the vehicle, and emits threshold alerts via the shared
// pipeline. The engines receive the numeric payload as-is; only structural
// validation happens here.
func (h *SensorHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var req models.SensorReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VehicleID == "" {
		respondError(w, http.StatusBadRequest, "vehicleId is required")
		return
	}

	vehicle, err := h.vehicles.FindOwnedVehicle(r.Context(), req.VehicleID, userID)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}

	stored, err := h.pipeline.Process(r.Context(), vehicle, req.Reading(vehicle.ID, time.Now()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating sensor data")
		return
	}

	respondJSON(w, http.StatusCreated, stored)
}

// ListForVehicle returns a vehicle's readings over the last N hours
// (default 24), oldest first.
func (h *SensorHandler) ListForVehicle(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicle, err := h.vehicles.FindOwnedVehicle(r.Context(), mux.Vars(r)["vehicleId"], userID)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}

	hours := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	readings, err := h.readings.FindReadingsSince(r.Context(), vehicle.ID, since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching sensor data")
		return
	}
	respondJSON(w, http.StatusOK, readings)
}

// Stats returns arithmetic means over the vehicle's last 24 hours of
// readings.
func (h *SensorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicle, err := h.vehicles.FindOwnedVehicle(r.Context(), mux.Vars(r)["vehicleId"], userID)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	readings, err := h.readings.FindReadingsSince(r.Context(), vehicle.ID, since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching sensor stats")
		return
	}

	respondJSON(w, http.StatusOK, averageReadings(readings))
}

// averageReadings computes the mean of each sensor dimension. An empty
// window yields all zeroes.
func averageReadings(readings []models.SensorReading) models.SensorStats {
	if len(readings) == 0 {
		return models.SensorStats{}
	}

	var rpm, temp, battery, fuel, eff float64
	for _, r := range readings {
		rpm += float64(r.RPM)
		temp += r.Temperature
		battery += r.Battery
		fuel += r.Fuel
		eff += r.FuelEfficiency
	}
	n := float64(len(readings))

	return models.SensorStats{
		AvgRPM:            int(math.Round(rpm / n)),
		AvgTemperature:    int(math.Round(temp / n)),
		AvgBattery:        math.Round(battery/n*100) / 100,
		AvgFuel:           int(math.Round(fuel / n)),
		AvgFuelEfficiency: math.Round(eff/n*10) / 10,
	}
}
