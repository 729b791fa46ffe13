// Package handlers contains the REST handlers for the vehicle health API.
// Handlers resolve ownership, validate payloads, and delegate to the
// storage layer and the health engines; they never retry collaborator
// failures, surfacing them as generic errors instead.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/middleware"
	"github.com/motordash/vehicle-health/internal/models"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error message with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondStoreError maps storage failures to HTTP responses: absent or
// not-owned entities become 404, everything else a generic 500.
func respondStoreError(w http.ResponseWriter, err error, notFoundMessage string) {
	if errors.Is(err, db.ErrNotFound) {
		respondError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	respondError(w, http.StatusInternalServerError, "Something went wrong")
}

// currentUser returns the caller's claims and user id from the request
// context. A false return means the auth middleware did not run.
func currentUser(r *http.Request) (*models.Claims, primitive.ObjectID, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return nil, primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, primitive.NilObjectID, false
	}
	return claims, userID, true
}
