package main

import (
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/motordash/vehicle-health/internal/auth"
	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/handlers"
	"github.com/motordash/vehicle-health/internal/health"
	"github.com/motordash/vehicle-health/internal/ingest"
	"github.com/motordash/vehicle-health/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	database := client.Database(db.DatabaseName())
	log.WithField("database", db.DatabaseName()).Info("Connected to MongoDB")

	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	readings := &db.MongoReadingCollection{Collection: database.Collection("sensor_readings")}
	alerts := &db.MongoAlertCollection{Collection: database.Collection("alerts")}
	appointments := &db.MongoAppointmentCollection{Collection: database.Collection("appointments")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	gen := health.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	pipeline := ingest.NewPipeline(vehicles, readings, alerts)

	router := handlers.NewRouter(
		middleware.NewAuthMiddleware(authService),
		handlers.NewAuthHandler(authService, users),
		handlers.NewVehicleHandler(vehicles, readings, gen),
		handlers.NewSensorHandler(vehicles, readings, pipeline),
		handlers.NewAlertHandler(alerts, vehicles),
		handlers.NewAppointmentHandler(appointments, vehicles, gen),
	)

	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		bridge, err := ingest.NewMQTTBridge(broker, os.Getenv("MQTT_TOPIC"), vehicles, pipeline)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect MQTT bridge")
		}
		if err := bridge.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start MQTT bridge")
		}
		defer bridge.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, router))
}
