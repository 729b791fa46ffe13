package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/motordash/vehicle-health/internal/middleware"
)

// NewRouter wires all API routes and the auth middleware.
func NewRouter(
	authMw *middleware.AuthMiddleware,
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	sensorHandler *SensorHandler,
	alertHandler *AlertHandler,
	appointmentHandler *AppointmentHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", handleHealth).Methods("GET")

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/me", authHandler.Me).Methods("GET")

	// Static paths before parameterised ones so "stats" never binds as {id}.
	r.HandleFunc("/api/vehicles/stats/summary", vehicleHandler.StatsSummary).Methods("GET")
	r.HandleFunc("/api/vehicles", vehicleHandler.List).Methods("GET")
	r.HandleFunc("/api/vehicles", vehicleHandler.Create).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Get).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Update).Methods("PUT")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Delete).Methods("DELETE")

	r.HandleFunc("/api/sensors", sensorHandler.Ingest).Methods("POST")
	r.HandleFunc("/api/sensors/vehicle/{vehicleId}", sensorHandler.ListForVehicle).Methods("GET")
	r.HandleFunc("/api/sensors/stats/{vehicleId}", sensorHandler.Stats).Methods("GET")

	r.HandleFunc("/api/alerts/stats/count", alertHandler.StatsCount).Methods("GET")
	r.HandleFunc("/api/alerts/read-all", alertHandler.MarkAllRead).Methods("PUT")
	r.HandleFunc("/api/alerts/vehicle/{vehicleId}", alertHandler.ListForVehicle).Methods("GET")
	r.HandleFunc("/api/alerts", alertHandler.List).Methods("GET")
	r.HandleFunc("/api/alerts/{id}/read", alertHandler.MarkRead).Methods("PUT")
	r.HandleFunc("/api/alerts/{id}", alertHandler.Delete).Methods("DELETE")

	r.HandleFunc("/api/appointments", appointmentHandler.List).Methods("GET")
	r.HandleFunc("/api/appointments", appointmentHandler.Create).Methods("POST")
	r.HandleFunc("/api/appointments/{id}/status", appointmentHandler.UpdateStatus).Methods("PUT")
	r.HandleFunc("/api/appointments/{id}", appointmentHandler.Delete).Methods("DELETE")

	r.Use(authMw.Authenticate)
	return r
}

// handleHealth is the liveness endpoint.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
}
