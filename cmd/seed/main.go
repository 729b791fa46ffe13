package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/health"
	"github.com/motordash/vehicle-health/internal/models"
)

var collections = []string{"users", "vehicles", "sensor_readings", "alerts", "appointments"}

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the vehicle health database with demo data",
	}
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(wipeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect() (*mongo.Database, error) {
	client, err := db.ConnectMongo()
	if err != nil {
		return nil, err
	}
	return client.Database(db.DatabaseName()), nil
}

func wipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Remove all data from the demo collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := connect()
			if err != nil {
				return err
			}
			return wipe(cmd.Context(), database)
		},
	}
}

func runCmd() *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a demo user, vehicles, readings, and alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := connect()
			if err != nil {
				return err
			}
			if !keep {
				if err := wipe(cmd.Context(), database); err != nil {
					return err
				}
			}
			return seed(cmd.Context(), database)
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "keep existing data instead of wiping first")
	return cmd
}

func wipe(ctx context.Context, database *mongo.Database) error {
	for _, name := range collections {
		if _, err := database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("wiping %s: %w", name, err)
		}
	}
	log.Info("Cleared existing data")
	return nil
}

func seed(ctx context.Context, database *mongo.Database) error {
	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	readings := &db.MongoReadingCollection{Collection: database.Collection("sensor_readings")}
	alerts := &db.MongoAlertCollection{Collection: database.Collection("alerts")}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demoUser := models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Demo User",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := users.InsertUser(ctx, demoUser); err != nil {
		return fmt.Errorf("creating demo user: %w", err)
	}
	log.WithField("email", demoUser.Email).Info("Created demo user")

	demoVehicles := []models.Vehicle{
		{
			Model: "Honda Civic", EngineCC: 1500, FuelType: models.FuelPetrol,
			Odometer: 45000, LastService: date(2024, 10, 15), HealthScore: 85,
		},
		{
			Model: "Toyota Camry", EngineCC: 2000, FuelType: models.FuelHybrid,
			Odometer: 32000, LastService: date(2024, 11, 20), HealthScore: 92,
		},
		{
			Model: "Ford Mustang", EngineCC: 5000, FuelType: models.FuelPetrol,
			Odometer: 28000, LastService: date(2024, 9, 10), HealthScore: 78,
		},
	}

	for i := range demoVehicles {
		v := &demoVehicles[i]
		v.UserID = demoUser.ID
		v.Status = health.StatusForScore(v.HealthScore)

		id, err := vehicles.InsertVehicle(ctx, *v)
		if err != nil {
			return fmt.Errorf("creating vehicle %s: %w", v.Model, err)
		}
		v.ID = id

		if err := readings.InsertReadings(ctx, demoReadings(id)); err != nil {
			return fmt.Errorf("seeding readings for %s: %w", v.Model, err)
		}
	}
	log.WithField("count", len(demoVehicles)).Info("Created demo vehicles with readings")

	demoAlerts := []models.Alert{
		{
			VehicleID: demoVehicles[0].ID, UserID: demoUser.ID,
			Type:    models.AlertWarning,
			Message: "Engine temperature above normal (103°C)",
		},
		{
			VehicleID: demoVehicles[2].ID, UserID: demoUser.ID,
			Type:    models.AlertCritical,
			Message: "Low battery voltage (11.7V)",
		},
		{
			VehicleID: demoVehicles[1].ID, UserID: demoUser.ID,
			Type:    models.AlertInfo,
			Message: "Service due in 500 km",
		},
	}
	for _, a := range demoAlerts {
		if err := alerts.InsertAlert(ctx, a); err != nil {
			return fmt.Errorf("seeding alerts: %w", err)
		}
	}
	log.WithField("count", len(demoAlerts)).Info("Created demo alerts")

	return nil
}

// demoReadings generates 24 hourly samples ending now.
func demoReadings(vehicleID primitive.ObjectID) []models.SensorReading {
	out := make([]models.SensorReading, 0, 24)
	for i := 0; i < 24; i++ {
		out = append(out, models.SensorReading{
			VehicleID:      vehicleID,
			RPM:            1000 + rand.Intn(3000),
			Temperature:    float64(70 + rand.Intn(40)),
			Battery:        12 + rand.Float64()*2,
			Fuel:           float64(rand.Intn(100)),
			FuelEfficiency: 12 + rand.Float64()*5,
			Speed:          float64(rand.Intn(120)),
			Timestamp:      time.Now().Add(-time.Duration(23-i) * time.Hour),
		})
	}
	return out
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
