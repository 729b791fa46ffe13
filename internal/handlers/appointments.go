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

// AppointmentHandler handles service appointment bookings.
type AppointmentHandler struct {
	appointments db.AppointmentCollection
	vehicles     db.VehicleCollection
	gen          *health.Generator
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointments db.AppointmentCollection, vehicles db.VehicleCollection, gen *health.Generator) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		vehicles:     vehicles,
		gen:          gen,
	}
}

// List returns the caller's appointments, newest first.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	appointments, err := h.appointments.FindAppointmentsByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching appointments")
		return
	}
	respondJSON(w, http.StatusOK, appointments)
}

// Create books a service appointment for one of the caller's vehicles and
// quotes a pseudo-random cost in the fixed service band.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var req models.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VehicleID == "" || req.Service == "" || req.Date == "" || req.Time == "" || req.Center == "" {
		respondError(w, http.StatusBadRequest, "vehicleId, service, date, time, and center are required")
		return
	}

	vehicle, err := h.vehicles.FindOwnedVehicle(r.Context(), req.VehicleID, userID)
	if err != nil {
		respondStoreError(w, err, "Vehicle not found")
		return
	}

	label := req.Vehicle
	if label == "" {
		label = vehicle.Model
	}

	appointment := models.Appointment{
		UserID:    userID,
		VehicleID: vehicle.ID,
		Vehicle:   label,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Center:    req.Center,
		Status:    models.AppointmentScheduled,
		Cost:      h.gen.AppointmentCost(),
	}

	stored, err := h.appointments.InsertAppointment(r.Context(), appointment)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating appointment")
		return
	}
	respondJSON(w, http.StatusCreated, stored)
}

// UpdateStatus moves a booking through its lifecycle. Completing an
// appointment also stamps the vehicle's last service date with the
// appointment's date.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var req struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !models.IsValidAppointmentStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	appointment, err := h.appointments.FindOwnedAppointment(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondStoreError(w, err, "Appointment not found")
		return
	}

	if err := h.appointments.UpdateAppointmentStatus(r.Context(), appointment.ID, req.Status); err != nil {
		respondStoreError(w, err, "Appointment not found")
		return
	}
	appointment.Status = req.Status

	if req.Status == models.AppointmentCompleted {
		if serviceDate, err := time.Parse("2006-01-02", appointment.Date); err == nil {
			if err := h.vehicles.UpdateLastService(r.Context(), appointment.VehicleID, serviceDate); err != nil {
				log.WithError(err).WithField("vehicle_id", appointment.VehicleID.Hex()).
					Error("Failed to update last service date")
			}
		}
	}

	respondJSON(w, http.StatusOK, appointment)
}

// Delete removes one owned appointment.
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	if err := h.appointments.DeleteAppointment(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		respondStoreError(w, err, "Appointment not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Appointment deleted"})
}
