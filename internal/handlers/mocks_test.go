package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motordash/vehicle-health/internal/middleware"
	"github.com/motordash/vehicle-health/internal/models"
)

type mockUserCollection struct {
	mock.Mock
}

func (m *mockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockVehicleCollection struct {
	mock.Mock
}

func (m *mockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (primitive.ObjectID, error) {
	args := m.Called(ctx, vehicle)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockVehicleCollection) FindVehiclesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Vehicle, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *mockVehicleCollection) FindOwnedVehicle(ctx context.Context, id string, userID primitive.ObjectID) (*models.Vehicle, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *mockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *mockVehicleCollection) UpdateVehicle(ctx context.Context, id primitive.ObjectID, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *mockVehicleCollection) UpdateLastService(ctx context.Context, id primitive.ObjectID, date time.Time) error {
	args := m.Called(ctx, id, date)
	return args.Error(0)
}

func (m *mockVehicleCollection) DeleteVehicle(ctx context.Context, id string, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type mockReadingCollection struct {
	mock.Mock
}

func (m *mockReadingCollection) InsertReading(ctx context.Context, reading models.SensorReading) (models.SensorReading, error) {
	args := m.Called(ctx, reading)
	return args.Get(0).(models.SensorReading), args.Error(1)
}

func (m *mockReadingCollection) InsertReadings(ctx context.Context, readings []models.SensorReading) error {
	args := m.Called(ctx, readings)
	return args.Error(0)
}

func (m *mockReadingCollection) FindReadingsSince(ctx context.Context, vehicleID primitive.ObjectID, since time.Time) ([]models.SensorReading, error) {
	args := m.Called(ctx, vehicleID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SensorReading), args.Error(1)
}

type mockAlertCollection struct {
	mock.Mock
}

func (m *mockAlertCollection) InsertAlert(ctx context.Context, alert models.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *mockAlertCollection) FindAlertsByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int64) ([]models.Alert, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alert), args.Error(1)
}

func (m *mockAlertCollection) FindAlertsByVehicle(ctx context.Context, vehicleID primitive.ObjectID, limit int64) ([]models.Alert, error) {
	args := m.Called(ctx, vehicleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alert), args.Error(1)
}

func (m *mockAlertCollection) MarkAlertRead(ctx context.Context, id string, userID primitive.ObjectID) (*models.Alert, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *mockAlertCollection) MarkAllAlertsRead(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockAlertCollection) DeleteAlert(ctx context.Context, id string, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockAlertCollection) CountAlerts(ctx context.Context, userID primitive.ObjectID) (models.AlertCounts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.AlertCounts), args.Error(1)
}

type mockAppointmentCollection struct {
	mock.Mock
}

func (m *mockAppointmentCollection) InsertAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	args := m.Called(ctx, appointment)
	return args.Get(0).(models.Appointment), args.Error(1)
}

func (m *mockAppointmentCollection) FindAppointmentsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *mockAppointmentCollection) FindOwnedAppointment(ctx context.Context, id string, userID primitive.ObjectID) (*models.Appointment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *mockAppointmentCollection) UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockAppointmentCollection) DeleteAppointment(ctx context.Context, id string, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// authedRequest builds a request carrying the claims the auth middleware
// would have attached for the given user.
func authedRequest(t *testing.T, method, target string, body interface{}, userID primitive.ObjectID) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	claims := &models.Claims{
		UserID: userID.Hex(),
		Email:  "test@example.com",
		Role:   models.RoleUser,
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
