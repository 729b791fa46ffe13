package health

import (
	"fmt"

	"github.com/motordash/vehicle-health/internal/models"
)

// AlertEvent is one threshold breach produced by the alert rule engine.
// It carries everything except the vehicle/user stamping, which the caller
// adds when persisting.
type AlertEvent struct {
	Type    models.AlertType
	Message string
}

// alertRule pairs a trigger predicate with the event it emits.
type alertRule struct {
	triggered func(models.SensorReading) bool
	typ       models.AlertType
	message   func(models.SensorReading) string
}

// alertRules is evaluated in order with no early exit; the order fixes how
// alerts are persisted and displayed, nothing more. Every qualifying
// reading produces a new alert — there is no deduplication or suppression
// window, even when an identical unread alert already exists.
var alertRules = []alertRule{
	{
		triggered: func(r models.SensorReading) bool { return r.Temperature > 100 },
		typ:       models.AlertWarning,
		message: func(r models.SensorReading) string {
			return fmt.Sprintf("Engine temperature above normal (%v°C)", r.Temperature)
		},
	},
	{
		triggered: func(r models.SensorReading) bool { return r.Battery < 12 },
		typ:       models.AlertCritical,
		message: func(r models.SensorReading) string {
			return fmt.Sprintf("Low battery voltage (%vV)", r.Battery)
		},
	},
	{
		triggered: func(r models.SensorReading) bool { return r.Fuel < 10 },
		typ:       models.AlertWarning,
		message: func(r models.SensorReading) string {
			return fmt.Sprintf("Low fuel level (%v%%)", r.Fuel)
		},
	},
}

// EvaluateAlerts maps a raw incoming reading to zero or more alert events.
// Rules are independent: a reading breaching several thresholds emits one
// alert per breach. Evaluation never looks at post-scoring vehicle state.
func EvaluateAlerts(r models.SensorReading) []AlertEvent {
	var events []AlertEvent
	for _, rule := range alertRules {
		if rule.triggered(r) {
			events = append(events, AlertEvent{Type: rule.typ, Message: rule.message(r)})
		}
	}
	return events
}
