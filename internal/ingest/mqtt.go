package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/motordash/vehicle-health/internal/db"
	"github.com/motordash/vehicle-health/internal/models"
)

const defaultTelemetryTopic = "vehicles/+/telemetry"

// MQTTBridge subscribes to a telemetry topic and feeds published readings
// through the same pipeline as REST ingestion. The vehicle id comes from
// the topic (vehicles/{id}/telemetry) and ownership from the stored vehicle
// record, so devices publish without user credentials.
type MQTTBridge struct {
	client   mqtt.Client
	topic    string
	vehicles db.VehicleCollection
	pipeline *Pipeline
}

// NewMQTTBridge connects to the broker and returns a bridge ready to start.
func NewMQTTBridge(broker, topic string, vehicles db.VehicleCollection, pipeline *Pipeline) (*MQTTBridge, error) {
	if topic == "" {
		topic = defaultTelemetryTopic
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("vehicle-health-ingest").
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTBridge{
		client:   client,
		topic:    topic,
		vehicles: vehicles,
		pipeline: pipeline,
	}, nil
}

// Start subscribes to the telemetry topic.
func (b *MQTTBridge) Start() error {
	token := b.client.Subscribe(b.topic, 1, b.handleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}
	log.WithField("topic", b.topic).Info("MQTT telemetry bridge started")
	return nil
}

// Stop disconnects from the broker.
func (b *MQTTBridge) Stop() {
	b.client.Disconnect(250)
}

func (b *MQTTBridge) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	vehicleID, ok := vehicleIDFromTopic(msg.Topic())
	if !ok {
		log.WithField("topic", msg.Topic()).Warn("Ignoring message on unexpected topic")
		return
	}

	var req models.SensorReadingRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("Invalid telemetry payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vehicle, err := b.vehicles.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Warn("Telemetry for unknown vehicle")
		return
	}

	if _, err := b.pipeline.Process(ctx, vehicle, req.Reading(vehicle.ID, time.Now())); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to process MQTT reading")
	}
}

// vehicleIDFromTopic extracts the id segment from vehicles/{id}/telemetry.
func vehicleIDFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "vehicles" || parts[2] != "telemetry" {
		return "", false
	}
	return parts[1], true
}
