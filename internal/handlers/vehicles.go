package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/health"
	"github.com/motordash/vehicle-health/internal/models"
)

// VehicleHandler handles vehicle CRUD and fleet statistics.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	readings db.ReadingCollection
	gen      *health.Generator
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection, readings db.ReadingCollection, gen *health.Generator) *VehicleHandler {
	return &VehicleHandler{
		vehicles: vehicles,
		readings: readings,
		gen:      gen,
	}
}

// List returns the caller's vehicles, newest first.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicles, err := h.vehicles.FindVehiclesByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching vehicles")
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// Get returns one of the caller's vehicles.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicle, err := h.vehicles.FindOwnedVehicle(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// Create registers a vehicle, backfills 48 hourly synthetic readings so
// charts are non-empty immediately, then assigns the onboarding health
// score. The onboarding score is drawn from [80,99] rather than computed
// from the synthetic data.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var req models.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Model == "" || req.EngineCC <= 0 {
		respondError(w, http.StatusBadRequest, "Model and engineCC are required")
		return
	}
	if !models.IsValidFuelType(req.FuelType) {
		respondError(w, http.StatusBadRequest, "Invalid fuel type")
		return
	}

	lastService, err := time.Parse("2006-01-02", req.LastService)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lastService date, expected YYYY-MM-DD")
		return
	}

	vehicle := models.Vehicle{
		UserID:      userID,
		Model:       req.Model,
		EngineCC:    req.EngineCC,
		FuelType:    req.FuelType,
		Odometer:    req.Odometer,
		LastService: lastService,
		HealthScore: 100,
		Status:      models.StatusExcellent,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating vehicle")
		return
	}
	vehicle.ID = id

	if err := h.readings.InsertReadings(r.Context(), h.gen.Backfill(vehicle, time.Now())); err != nil {
		// The vehicle exists; an empty chart beats a failed creation.
		log.WithError(err).WithField("vehicle_id", id.Hex()).Error("Failed to backfill readings")
	}

	vehicle.HealthScore, vehicle.Status = h.gen.OnboardingScore()
	if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating vehicle")
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

// Update applies a partial update. HealthScore and Status are the
// administrative override escape hatch: they are applied independently as
// given, bypassing the scoring engine.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicle, err := h.vehicles.FindOwnedVehicle(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}

	var req models.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.EngineCC != nil {
		vehicle.EngineCC = *req.EngineCC
	}
	if req.FuelType != nil {
		if !models.IsValidFuelType(*req.FuelType) {
			respondError(w, http.StatusBadRequest, "Invalid fuel type")
			return
		}
		vehicle.FuelType = *req.FuelType
	}
	if req.Odometer != nil {
		vehicle.Odometer = *req.Odometer
	}
	if req.LastService != nil {
		lastService, err := time.Parse("2006-01-02", *req.LastService)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid lastService date, expected YYYY-MM-DD")
			return
		}
		vehicle.LastService = lastService
	}
	if req.HealthScore != nil {
		if *req.HealthScore < 0 || *req.HealthScore > 100 {
			respondError(w, http.StatusBadRequest, "healthScore must be between 0 and 100")
			return
		}
		vehicle.HealthScore = *req.HealthScore
	}
	if req.Status != nil {
		vehicle.Status = *req.Status
	}
	vehicle.UpdatedAt = time.Now()

	if err := h.vehicles.UpdateVehicle(r.Context(), vehicle.ID, *vehicle); err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// Delete removes one of the caller's vehicles. Readings and alerts for the
// vehicle are deliberately left behind — deletes do not cascade, and
// callers must tolerate orphaned records.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle removed"})
}

// StatsSummary returns fleet-level statistics for the caller: vehicle
// count, mean health score, and the score distribution over the health
// buckets.
func (h *VehicleHandler) StatsSummary(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicles, err := h.vehicles.FindVehiclesByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	stats := models.VehicleStats{TotalVehicles: len(vehicles)}
	if len(vehicles) > 0 {
		total := 0
		for _, v := range vehicles {
			total += v.HealthScore
			switch health.StatusForScore(v.HealthScore) {
			case models.StatusExcellent:
				stats.HealthDistribution.Excellent++
			case models.StatusGood:
				stats.HealthDistribution.Good++
			case models.StatusFair:
				stats.HealthDistribution.Fair++
			default:
				stats.HealthDistribution.Poor++
			}
		}
		stats.AvgHealthScore = (total + len(vehicles)/2) / len(vehicles)
	}

	respondJSON(w, http.StatusOK, stats)
}
