package domain

import "time"

// EventKind identifies a farm event arriving from an external data source
// (weather poller, field sensors, market feed).
type EventKind string

const (
	EventWeatherRain        EventKind = "weather.rain"
	EventWeatherDrought     EventKind = "weather.drought"
	EventWeatherStorm       EventKind = "weather.storm"
	EventWeatherTemperature EventKind = "weather.temperature"
	EventWeatherWind        EventKind = "weather.wind"
	EventPestDetected       EventKind = "pest.detected"
	EventDiseaseDetected    EventKind = "disease.detected"
	EventIrrigationDue      EventKind = "irrigation.due"
	EventHarvestReady       EventKind = "harvest.ready"
	EventMarketPrice        EventKind = "market.price"
	EventMarketUpdate       EventKind = "market.update"
	EventSoilReading        EventKind = "soil.reading"
	EventEquipmentFault     EventKind = "equipment.fault"
	EventSchemeAnnounced    EventKind = "scheme.announced"
)

// Event is the envelope external collaborators publish to the broker. The
// consumer maps it onto a generator template; Data carries the
// generator-specific payload.
type Event struct {
	Kind      EventKind      `json:"kind"`
	Severity  Priority       `json:"severity,omitempty"`
	Location  string         `json:"location,omitempty"`
	Crop      string         `json:"crop,omitempty"`
	Field     string         `json:"field,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// DataString returns a string payload field, or "" when absent.
func (e *Event) DataString(key string) string {
	if e.Data == nil {
		return ""
	}
	s, _ := e.Data[key].(string)
	return s
}

// DataFloat returns a numeric payload field, or 0 when absent. JSON numbers
// decode as float64.
func (e *Event) DataFloat(key string) float64 {
	if e.Data == nil {
		return 0
	}
	f, _ := e.Data[key].(float64)
	return f
}
