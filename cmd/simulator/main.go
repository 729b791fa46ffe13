package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle is the creation payload for the API.
type Vehicle struct {
	Model       string `json:"model"`
	EngineCC    int    `json:"engineCC"`
	FuelType    string `json:"fuelType"`
	Odometer    int    `json:"odometer"`
	LastService string `json:"lastService"`
}

// Reading is the sensor ingest payload.
type Reading struct {
	VehicleID      string  `json:"vehicleId"`
	RPM            int     `json:"rpm"`
	Temperature    float64 `json:"temperature"`
	Battery        float64 `json:"battery"`
	Fuel           float64 `json:"fuel"`
	FuelEfficiency float64 `json:"fuelEfficiency"`
	Speed          float64 `json:"speed"`
}

var fleet = []Vehicle{
	{Model: "Honda Civic", EngineCC: 1500, FuelType: "Petrol"},
	{Model: "Toyota Camry", EngineCC: 2000, FuelType: "Hybrid"},
	{Model: "Ford Mustang", EngineCC: 5000, FuelType: "Petrol"},
	{Model: "Nissan Leaf", EngineCC: 1100, FuelType: "Electric"},
	{Model: "VW Golf TDI", EngineCC: 1900, FuelType: "Diesel"},
	{Model: "Suzuki Swift", EngineCC: 1200, FuelType: "Petrol"},
	{Model: "Hyundai Ioniq", EngineCC: 1600, FuelType: "Hybrid"},
	{Model: "BMW 320d", EngineCC: 2000, FuelType: "Diesel"},
}

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func createVehicle(apiURL string, template Vehicle) (string, error) {
	template.Odometer = 10000 + rand.Intn(90000)
	template.LastService = time.Now().AddDate(0, -1-rand.Intn(10), 0).Format("2006-01-02")

	data, err := json.Marshal(template)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"model":      template.Model,
		"fuel_type":  template.FuelType,
	}).Info("Created vehicle")

	return id, nil
}

// VehicleState drifts sensor values between ticks so the stream looks like
// a running engine rather than white noise.
type VehicleState struct {
	VehicleID      string
	Electric       bool
	RPM            float64
	Temperature    float64
	Battery        float64
	Fuel           float64
	FuelEfficiency float64
	Speed          float64
}

func newState(vehicleID string, template Vehicle) *VehicleState {
	eff := 14 + rand.Float64()*4
	if template.FuelType == "Electric" {
		eff = 0
	}
	return &VehicleState{
		VehicleID:      vehicleID,
		Electric:       template.FuelType == "Electric",
		RPM:            1500 + rand.Float64()*1500,
		Temperature:    80 + rand.Float64()*10,
		Battery:        12.5 + rand.Float64()*1.5,
		Fuel:           40 + rand.Float64()*60,
		FuelEfficiency: eff,
		Speed:          20 + rand.Float64()*60,
	}
}

func drift(v float64, step, min, max float64) float64 {
	v += (rand.Float64()*2 - 1) * step
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

func (s *VehicleState) tick() {
	s.RPM = drift(s.RPM, 400, 400, 4500)
	s.Temperature = drift(s.Temperature, 3, 70, 110)
	s.Battery = drift(s.Battery, 0.1, 11.2, 14.5)
	s.Speed = drift(s.Speed, 8, 0, 120)
	if !s.Electric {
		s.FuelEfficiency = drift(s.FuelEfficiency, 0.5, 8, 20)
	}

	s.Fuel -= rand.Float64() * 0.8
	if s.Fuel < 5 {
		s.Fuel = 100 // refuelled
	}
}

func (s *VehicleState) reading() Reading {
	return Reading{
		VehicleID:      s.VehicleID,
		RPM:            int(s.RPM),
		Temperature:    s.Temperature,
		Battery:        s.Battery,
		Fuel:           s.Fuel,
		FuelEfficiency: s.FuelEfficiency,
		Speed:          s.Speed,
	}
}

func sendReading(apiURL string, reading Reading) {
	data, err := json.Marshal(reading)
	if err != nil {
		log.WithError(err).Error("Failed to marshal reading")
		return
	}
	resp, err := authorizedPost(apiURL+"/sensors", bytes.NewBuffer(data))
	if err != nil {
		log.WithError(err).Error("Failed to send reading")
		return
	}
	defer resp.Body.Close()
	log.WithFields(log.Fields{"vehicle_id": reading.VehicleID, "status": resp.Status}).Info("Sent reading")
}

func simulateVehicle(apiURL string, s *VehicleState, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		s.tick()
		sendReading(apiURL, s.reading())
	}
}

func main() {
	// JWT for the protected API, obtained via /api/auth/login beforehand
	authToken = os.Getenv("SIM_AUTH_TOKEN")

	fleetSize := 5
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			fleetSize = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	interval := 5 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
		"interval":   interval,
	}).Info("Starting telemetry simulation")

	states := make([]*VehicleState, 0, fleetSize)
	for i := 0; i < fleetSize; i++ {
		template := fleet[i%len(fleet)]
		vehicleID, err := createVehicle(apiURL, template)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		states = append(states, newState(vehicleID, template))
	}

	log.WithField("created_vehicles", len(states)).Info("Vehicle creation completed")
	if len(states) == 0 {
		log.Error("No vehicles created. Ensure SIM_AUTH_TOKEN is valid and API is reachable. Exiting.")
		return
	}

	for _, s := range states {
		go simulateVehicle(apiURL, s, interval)
	}

	log.Info("Telemetry simulation started")
	select {} // Block forever
}
