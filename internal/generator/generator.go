// Package generator builds notification requests for the agricultural
// domains: weather, pests and diseases, irrigation, harvest, market, crop
// health, soil, equipment and government schemes. Every builder is a pure
// string-templating function; the only rule carried here is mapping a
// caller-supplied severity onto a notification priority.
package generator

import (
	"fmt"

	"github.com/agriswayam/go-notification-service/internal/domain"
)

// WeatherKind is the concrete weather condition being alerted on.
type WeatherKind string

const (
	WeatherRain        WeatherKind = "rain"
	WeatherDrought     WeatherKind = "drought"
	WeatherStorm       WeatherKind = "storm"
	WeatherTemperature WeatherKind = "temperature"
	WeatherWind        WeatherKind = "wind"
)

// WeatherDetails carries the measurements behind a weather alert.
type WeatherDetails struct {
	AmountMM     float64
	TempC        float64
	WindSpeedKmh float64
}

// Weather builds a weather alert request for the given condition.
func Weather(kind WeatherKind, severity domain.Priority, location string, details WeatherDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority

	switch kind {
	case WeatherRain:
		title = "Rain Alert"
		message = fmt.Sprintf("Heavy rainfall expected in %s. %gmm predicted.", location, details.AmountMM)
		priority = escalate(severity, domain.PriorityMedium)
	case WeatherDrought:
		title = "Drought Warning"
		message = fmt.Sprintf("Drought conditions detected in %s. Consider irrigation planning.", location)
		priority = domain.PriorityHigh
	case WeatherStorm:
		title = "Storm Alert"
		message = fmt.Sprintf("Severe storm approaching %s. Take protective measures.", location)
		priority = domain.PriorityUrgent
	case WeatherTemperature:
		title = "Temperature Alert"
		message = fmt.Sprintf("Extreme temperature conditions in %s. %g°C expected.", location, details.TempC)
		priority = escalate(severity, domain.PriorityHigh)
	case WeatherWind:
		title = "Wind Alert"
		message = fmt.Sprintf("Strong winds expected in %s. Wind speed: %g km/h", location, details.WindSpeedKmh)
		priority = domain.PriorityMedium
	default:
		title = ""
		message = ""
		priority = escalate(severity, domain.PriorityMedium)
	}

	return domain.NotificationRequest{
		Type:    domain.TypeWeatherAlert,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryWeather,
			Metadata: map[string]any{
				"kind":     string(kind),
				"location": location,
				"details":  details,
			},
		},
	}
}

// PestDisease builds a pest or disease alert for a crop at a location.
func PestDisease(disease bool, name, crop string, severity domain.Priority, location string, symptoms []string) domain.NotificationRequest {
	notificationType := domain.TypePestAlert
	title := "Pest Alert"
	if disease {
		notificationType = domain.TypeDiseaseAlert
		title = "Disease Alert"
	}
	message := fmt.Sprintf("%s detected in %s fields at %s. %d symptoms identified.",
		name, crop, location, len(symptoms))

	return domain.NotificationRequest{
		Type:    notificationType,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: escalate(severity, domain.PriorityMedium),
			Category: domain.CategoryPestsDiseases,
			Metadata: map[string]any{
				"name":     name,
				"crop":     crop,
				"location": location,
				"symptoms": symptoms,
			},
		},
	}
}

// IrrigationKind selects the irrigation message variant.
type IrrigationKind string

const (
	IrrigationReminder IrrigationKind = "reminder"
	IrrigationSchedule IrrigationKind = "schedule"
	IrrigationAlert    IrrigationKind = "alert"
)

// IrrigationDetails carries the context for an irrigation notification.
type IrrigationDetails struct {
	LastIrrigation  string
	Time            string
	DurationMinutes int
	Issue           string
}

// Irrigation builds an irrigation notification for a field.
func Irrigation(kind IrrigationKind, field, crop string, details IrrigationDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority

	switch kind {
	case IrrigationSchedule:
		title = "Irrigation Scheduled"
		message = fmt.Sprintf("Irrigation scheduled for %s at %s. Duration: %d minutes.",
			field, details.Time, details.DurationMinutes)
		priority = domain.PriorityLow
	case IrrigationAlert:
		title = "Irrigation Alert"
		message = fmt.Sprintf("Irrigation system issue detected in %s. %s", field, details.Issue)
		priority = domain.PriorityHigh
	default:
		title = "Irrigation Reminder"
		message = fmt.Sprintf("Time to irrigate %s field: %s. Last irrigation: %s",
			crop, field, details.LastIrrigation)
		priority = domain.PriorityMedium
	}

	return domain.NotificationRequest{
		Type:    domain.TypeIrrigationReminder,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryIrrigation,
			Metadata: map[string]any{
				"kind":    string(kind),
				"field":   field,
				"crop":    crop,
				"details": details,
			},
		},
	}
}

// HarvestKind selects the harvest message variant.
type HarvestKind string

const (
	HarvestReady    HarvestKind = "ready"
	HarvestSchedule HarvestKind = "schedule"
	HarvestDelay    HarvestKind = "delay"
)

// HarvestDetails carries the context for a harvest notification.
type HarvestDetails struct {
	Window string
	Date   string
	Time   string
	Reason string
}

// Harvest builds a harvest notification for a crop and field.
func Harvest(kind HarvestKind, crop, field string, details HarvestDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority

	switch kind {
	case HarvestSchedule:
		title = "Harvest Scheduled"
		message = fmt.Sprintf("Harvest scheduled for %s in %s on %s at %s",
			crop, field, details.Date, details.Time)
		priority = domain.PriorityMedium
	case HarvestDelay:
		title = "Harvest Delay"
		message = fmt.Sprintf("Harvest delayed for %s in %s. Reason: %s", crop, field, details.Reason)
		priority = domain.PriorityMedium
	default:
		title = "Harvest Ready"
		message = fmt.Sprintf("%s in %s is ready for harvest. Optimal window: %s",
			crop, field, details.Window)
		priority = domain.PriorityHigh
	}

	return domain.NotificationRequest{
		Type:    domain.TypeHarvestReminder,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryHarvest,
			Metadata: map[string]any{
				"kind":    string(kind),
				"crop":    crop,
				"field":   field,
				"details": details,
			},
		},
	}
}

// MarketKind selects the market message variant.
type MarketKind string

const (
	MarketPriceAlert MarketKind = "price_alert"
	MarketPriceList  MarketKind = "market_update"
	MarketTrend      MarketKind = "trend"
)

// MarketDetails carries the prices behind a market notification.
type MarketDetails struct {
	Price         float64
	Target        float64
	CurrentPrice  float64
	ChangePercent float64
	Trend         string
	Reason        string
}

// Market builds a market notification for a crop.
func Market(kind MarketKind, crop string, details MarketDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority
	notificationType := domain.TypeMarketUpdate

	switch kind {
	case MarketPriceAlert:
		notificationType = domain.TypePriceAlert
		title = "Price Alert"
		message = fmt.Sprintf("%s price reached ₹%g/quintal. Target: ₹%g",
			crop, details.Price, details.Target)
		priority = domain.PriorityMedium
	case MarketTrend:
		title = "Market Trend"
		message = fmt.Sprintf("%s prices showing %s trend. %s", crop, details.Trend, details.Reason)
		priority = domain.PriorityLow
	default:
		title = "Market Update"
		message = fmt.Sprintf("New %s prices available. Current: ₹%g, Change: %g%%",
			crop, details.CurrentPrice, details.ChangePercent)
		priority = domain.PriorityLow
	}

	return domain.NotificationRequest{
		Type:    notificationType,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryMarket,
			Metadata: map[string]any{
				"kind":    string(kind),
				"crop":    crop,
				"details": details,
			},
		},
	}
}

// CropHealthKind selects the crop health message variant.
type CropHealthKind string

const (
	CropHealthAssessment CropHealthKind = "assessment"
	CropHealthNutrient   CropHealthKind = "nutrient"
	CropHealthGrowth     CropHealthKind = "growth"
)

// CropHealthDetails carries the context for a crop health notification.
type CropHealthDetails struct {
	Score           int
	Deficiency      string
	Recommendation  string
	Stage           string
	ExpectedHarvest string
}

// CropHealth builds a crop health notification for a crop and field.
func CropHealth(kind CropHealthKind, crop, field string, details CropHealthDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority

	switch kind {
	case CropHealthNutrient:
		title = "Nutrient Alert"
		message = fmt.Sprintf("%s in %s shows %s deficiency. Consider %s",
			crop, field, details.Deficiency, details.Recommendation)
		priority = domain.PriorityHigh
	case CropHealthGrowth:
		title = "Growth Update"
		message = fmt.Sprintf("%s in %s is %s. Expected harvest: %s",
			crop, field, details.Stage, details.ExpectedHarvest)
		priority = domain.PriorityLow
	default:
		title = "Crop Health Assessment"
		message = fmt.Sprintf("Health assessment completed for %s in %s. Score: %d/10",
			crop, field, details.Score)
		priority = domain.PriorityMedium
	}

	return domain.NotificationRequest{
		Type:    domain.TypeCropHealth,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryCropManagement,
			Metadata: map[string]any{
				"kind":    string(kind),
				"crop":    crop,
				"field":   field,
				"details": details,
			},
		},
	}
}

// SoilKind selects the soil message variant.
type SoilKind string

const (
	SoilMoisture  SoilKind = "moisture"
	SoilPH        SoilKind = "ph"
	SoilNutrients SoilKind = "nutrients"
	SoilErosion   SoilKind = "erosion"
)

// SoilDetails carries the readings behind a soil notification.
type SoilDetails struct {
	LevelPercent   float64
	PH             float64
	Nutrient       string
	Recommendation string
}

// Soil builds a soil condition notification for a field.
func Soil(kind SoilKind, field string, details SoilDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority

	switch kind {
	case SoilPH:
		title = "Soil pH Alert"
		message = fmt.Sprintf("Soil pH in %s is %g. %s", field, details.PH, details.Recommendation)
		priority = domain.PriorityHigh
	case SoilNutrients:
		title = "Soil Nutrient Alert"
		message = fmt.Sprintf("%s soil shows %s deficiency. Consider %s",
			field, details.Nutrient, details.Recommendation)
		priority = domain.PriorityMedium
	case SoilErosion:
		title = "Soil Erosion Warning"
		message = fmt.Sprintf("Soil erosion detected in %s. %s", field, details.Recommendation)
		priority = domain.PriorityHigh
	default:
		title = "Soil Moisture Alert"
		message = fmt.Sprintf("Soil moisture in %s is %g%%. %s",
			field, details.LevelPercent, details.Recommendation)
		priority = domain.PriorityMedium
	}

	return domain.NotificationRequest{
		Type:    domain.TypeSoilCondition,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryCropManagement,
			Metadata: map[string]any{
				"kind":    string(kind),
				"field":   field,
				"details": details,
			},
		},
	}
}

// EquipmentKind selects the equipment message variant.
type EquipmentKind string

const (
	EquipmentMaintenance EquipmentKind = "maintenance"
	EquipmentMalfunction EquipmentKind = "malfunction"
	EquipmentUpgrade     EquipmentKind = "upgrade"
)

// EquipmentDetails carries the context for an equipment notification.
type EquipmentDetails struct {
	LastService string
	Issue       string
	Features    string
}

// Equipment builds an equipment notification.
func Equipment(kind EquipmentKind, equipment string, details EquipmentDetails) domain.NotificationRequest {
	var title, message string
	var priority domain.Priority

	switch kind {
	case EquipmentMalfunction:
		title = "Equipment Malfunction"
		message = fmt.Sprintf("%s malfunction detected. %s", equipment, details.Issue)
		priority = domain.PriorityHigh
	case EquipmentUpgrade:
		title = "Equipment Upgrade"
		message = fmt.Sprintf("New %s upgrade available. %s", equipment, details.Features)
		priority = domain.PriorityLow
	default:
		title = "Equipment Maintenance"
		message = fmt.Sprintf("%s maintenance due. Last service: %s", equipment, details.LastService)
		priority = domain.PriorityLow
	}

	return domain.NotificationRequest{
		Type:    domain.TypeEquipmentMaintenance,
		Title:   title,
		Message: message,
		Options: &domain.NotificationOptions{
			Priority: priority,
			Category: domain.CategoryEquipment,
			Metadata: map[string]any{
				"kind":      string(kind),
				"equipment": equipment,
				"details":   details,
			},
		},
	}
}

// Government builds a government scheme announcement.
func Government(scheme, description string) domain.NotificationRequest {
	return domain.NotificationRequest{
		Type:    domain.TypeGovernmentScheme,
		Title:   "New Government Scheme",
		Message: fmt.Sprintf("%s is now available. %s", scheme, description),
		Options: &domain.NotificationOptions{
			Priority: domain.PriorityLow,
			Category: domain.CategoryGovernment,
			Metadata: map[string]any{
				"scheme":      scheme,
				"description": description,
			},
		},
	}
}

// escalate maps a caller-supplied severity onto a priority: urgent and high
// pass through, everything else falls back to the template's base priority.
func escalate(severity, base domain.Priority) domain.Priority {
	switch severity {
	case domain.PriorityUrgent:
		return domain.PriorityUrgent
	case domain.PriorityHigh:
		return domain.PriorityHigh
	default:
		return base
	}
}
