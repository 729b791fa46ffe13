package handlers

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/health"
	"github.com/motordash/vehicle-health/internal/models"
)

func newAppointmentHandler() (*AppointmentHandler, *mockAppointmentCollection, *mockVehicleCollection) {
	appointments := new(mockAppointmentCollection)
	vehicles := new(mockVehicleCollection)
	gen := health.NewGenerator(rand.New(rand.NewSource(1)))
	return NewAppointmentHandler(appointments, vehicles, gen), appointments, vehicles
}

func TestAppointmentHandler_Create(t *testing.T) {
	handler, appointments, vehicles := newAppointmentHandler()
	userID := primitive.NewObjectID()
	vehicle := &models.Vehicle{ID: primitive.NewObjectID(), UserID: userID, Model: "Honda Civic"}

	body := models.CreateAppointmentRequest{
		VehicleID: vehicle.ID.Hex(),
		Service:   "Oil Change",
		Date:      "2026-09-15",
		Time:      "10:00",
		Center:    "Downtown Service Center",
	}

	vehicles.On("FindOwnedVehicle", mock.Anything, vehicle.ID.Hex(), userID).Return(vehicle, nil)
	appointments.On("InsertAppointment", mock.Anything, mock.MatchedBy(func(a models.Appointment) bool {
		return a.UserID == userID &&
			a.VehicleID == vehicle.ID &&
			a.Vehicle == "Honda Civic" && // label defaults to the vehicle model
			a.Status == models.AppointmentScheduled &&
			a.Cost >= 500 && a.Cost < 3500
	})).Return(models.Appointment{ID: primitive.NewObjectID(), UserID: userID, Status: models.AppointmentScheduled, Cost: 1200}, nil)

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(t, "POST", "/api/appointments", body, userID))

	assert.Equal(t, http.StatusCreated, w.Code)
	appointments.AssertExpectations(t)
}

func TestAppointmentHandler_Create_MissingFields(t *testing.T) {
	handler, appointments, _ := newAppointmentHandler()

	body := models.CreateAppointmentRequest{Service: "Oil Change"}
	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(t, "POST", "/api/appointments", body, primitive.NewObjectID()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	appointments.AssertNotCalled(t, "InsertAppointment", mock.Anything, mock.Anything)
}

func TestAppointmentHandler_Create_ForeignVehicle(t *testing.T) {
	handler, appointments, vehicles := newAppointmentHandler()
	userID := primitive.NewObjectID()
	foreignID := primitive.NewObjectID().Hex()

	body := models.CreateAppointmentRequest{
		VehicleID: foreignID, Service: "Oil Change", Date: "2026-09-15", Time: "10:00", Center: "Downtown",
	}
	vehicles.On("FindOwnedVehicle", mock.Anything, foreignID, userID).Return(nil, db.ErrNotFound)

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(t, "POST", "/api/appointments", body, userID))

	assert.Equal(t, http.StatusNotFound, w.Code)
	appointments.AssertNotCalled(t, "InsertAppointment", mock.Anything, mock.Anything)
}

func TestAppointmentHandler_UpdateStatus_CompletedStampsLastService(t *testing.T) {
	handler, appointments, vehicles := newAppointmentHandler()
	userID := primitive.NewObjectID()
	appointment := &models.Appointment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		VehicleID: primitive.NewObjectID(),
		Date:      "2026-09-15",
		Status:    models.AppointmentConfirmed,
	}

	appointments.On("FindOwnedAppointment", mock.Anything, appointment.ID.Hex(), userID).Return(appointment, nil)
	appointments.On("UpdateAppointmentStatus", mock.Anything, appointment.ID, models.AppointmentCompleted).Return(nil)
	serviceDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	vehicles.On("UpdateLastService", mock.Anything, appointment.VehicleID, serviceDate).Return(nil)

	body := map[string]string{"status": string(models.AppointmentCompleted)}
	req := mux.SetURLVars(
		authedRequest(t, "PUT", "/api/appointments/"+appointment.ID.Hex()+"/status", body, userID),
		map[string]string{"id": appointment.ID.Hex()},
	)
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Appointment
	decodeBody(t, w, &got)
	assert.Equal(t, models.AppointmentCompleted, got.Status)
	vehicles.AssertExpectations(t)
}

func TestAppointmentHandler_UpdateStatus_NonCompletedLeavesVehicleAlone(t *testing.T) {
	handler, appointments, vehicles := newAppointmentHandler()
	userID := primitive.NewObjectID()
	appointment := &models.Appointment{
		ID: primitive.NewObjectID(), UserID: userID, VehicleID: primitive.NewObjectID(),
		Date: "2026-09-15", Status: models.AppointmentScheduled,
	}

	appointments.On("FindOwnedAppointment", mock.Anything, appointment.ID.Hex(), userID).Return(appointment, nil)
	appointments.On("UpdateAppointmentStatus", mock.Anything, appointment.ID, models.AppointmentConfirmed).Return(nil)

	body := map[string]string{"status": string(models.AppointmentConfirmed)}
	req := mux.SetURLVars(
		authedRequest(t, "PUT", "/api/appointments/"+appointment.ID.Hex()+"/status", body, userID),
		map[string]string{"id": appointment.ID.Hex()},
	)
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	vehicles.AssertNotCalled(t, "UpdateLastService", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	handler, appointments, _ := newAppointmentHandler()
	userID := primitive.NewObjectID()
	id := primitive.NewObjectID().Hex()

	body := map[string]string{"status": "Pending"}
	req := mux.SetURLVars(
		authedRequest(t, "PUT", "/api/appointments/"+id+"/status", body, userID),
		map[string]string{"id": id},
	)
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	appointments.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentHandler_List(t *testing.T) {
	handler, appointments, _ := newAppointmentHandler()
	userID := primitive.NewObjectID()

	appointments.On("FindAppointmentsByUser", mock.Anything, userID).
		Return([]models.Appointment{{ID: primitive.NewObjectID(), UserID: userID}}, nil)

	w := httptest.NewRecorder()
	handler.List(w, authedRequest(t, "GET", "/api/appointments", nil, userID))

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.Appointment
	decodeBody(t, w, &got)
	assert.Len(t, got, 1)
}

func TestAppointmentHandler_Delete(t *testing.T) {
	handler, appointments, _ := newAppointmentHandler()
	userID := primitive.NewObjectID()
	id := primitive.NewObjectID().Hex()

	appointments.On("DeleteAppointment", mock.Anything, id, userID).Return(nil)

	req := mux.SetURLVars(
		authedRequest(t, "DELETE", "/api/appointments/"+id, nil, userID),
		map[string]string{"id": id},
	)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	appointments.AssertExpectations(t)
}
