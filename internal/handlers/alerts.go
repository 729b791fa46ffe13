package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/motordash/vehicle-health/internal/db"
)

const defaultAlertLimit = 50

// AlertHandler handles alert queries and read-state mutations. Alerts are
// created only by the ingest pipeline (or seed data); this handler never
// creates them.
type AlertHandler struct {
	alerts   db.AlertCollection
	vehicles db.VehicleCollection
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alerts db.AlertCollection, vehicles db.VehicleCollection) *AlertHandler {
	return &AlertHandler{
		alerts:   alerts,
		vehicles: vehicles,
	}
}

// List returns the caller's alerts, newest first. Supports ?limit= and
// ?unreadOnly=true.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	limit := int64(defaultAlertLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	unreadOnly := r.URL.Query().Get("unreadOnly") == "true"

	alerts, err := h.alerts.FindAlertsByUser(r.Context(), userID, unreadOnly, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching alerts")
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// ListForVehicle returns alerts for one of the caller's vehicles.
func (h *AlertHandler) ListForVehicle(w http.ResponseWriter, r *http.Request) {
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

	alerts, err := h.alerts.FindAlertsByVehicle(r.Context(), vehicle.ID, defaultAlertLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching vehicle alerts")
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// MarkRead marks one owned alert as read and returns it.
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	alert, err := h.alerts.MarkAlertRead(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		respondStoreError(w, err, "Alert not found")
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

// MarkAllRead marks every unread alert of the caller as read.
func (h *AlertHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	if err := h.alerts.MarkAllAlertsRead(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, "Error updating alerts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "All alerts marked as read"})
}

// Delete removes one owned alert.
func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	if err := h.alerts.DeleteAlert(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		respondStoreError(w, err, "Alert not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Alert deleted"})
}

// StatsCount returns total, unread, and unread-critical alert counts.
func (h *AlertHandler) StatsCount(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	counts, err := h.alerts.CountAlerts(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching alert stats")
		return
	}
	respondJSON(w, http.StatusOK, counts)
}
