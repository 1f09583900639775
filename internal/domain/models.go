package domain

import (
	"time"
)

// NotificationType identifies the kind of agricultural event a notification
// describes. Each type maps to exactly one default category and priority via
// the template table in templates.go.
type NotificationType string

const (
	TypeWeatherAlert         NotificationType = "weather_alert"
	TypePestAlert            NotificationType = "pest_alert"
	TypeDiseaseAlert         NotificationType = "disease_alert"
	TypeIrrigationReminder   NotificationType = "irrigation_reminder"
	TypeHarvestReminder      NotificationType = "harvest_reminder"
	TypePriceAlert           NotificationType = "price_alert"
	TypeMarketUpdate         NotificationType = "market_update"
	TypeCropHealth           NotificationType = "crop_health"
	TypeSoilCondition        NotificationType = "soil_condition"
	TypeEquipmentMaintenance NotificationType = "equipment_maintenance"
	TypeGovernmentScheme     NotificationType = "government_scheme"
	TypeGeneral              NotificationType = "general"
)

// NotificationTypes lists every known type, in template order.
func NotificationTypes() []NotificationType {
	return []NotificationType{
		TypeWeatherAlert,
		TypePestAlert,
		TypeDiseaseAlert,
		TypeIrrigationReminder,
		TypeHarvestReminder,
		TypePriceAlert,
		TypeMarketUpdate,
		TypeCropHealth,
		TypeSoilCondition,
		TypeEquipmentMaintenance,
		TypeGovernmentScheme,
		TypeGeneral,
	}
}

// Category groups notification types for preference toggles.
type Category string

const (
	CategoryWeather        Category = "weather"
	CategoryPestsDiseases  Category = "pests_diseases"
	CategoryIrrigation     Category = "irrigation"
	CategoryHarvest        Category = "harvest"
	CategoryMarket         Category = "market"
	CategoryCropManagement Category = "crop_management"
	CategoryEquipment      Category = "equipment"
	CategoryGovernment     Category = "government"
	CategorySystem         Category = "system"
)

// Categories lists every known category.
func Categories() []Category {
	return []Category{
		CategoryWeather,
		CategoryPestsDiseases,
		CategoryIrrigation,
		CategoryHarvest,
		CategoryMarket,
		CategoryCropManagement,
		CategoryEquipment,
		CategoryGovernment,
		CategorySystem,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeather, CategoryPestsDiseases, CategoryIrrigation,
		CategoryHarvest, CategoryMarket, CategoryCropManagement,
		CategoryEquipment, CategoryGovernment, CategorySystem:
		return true
	}
	return false
}

// Priority is the urgency level of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority level, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Valid reports whether p is one of the defined priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Notification is a timestamped, typed event record relevant to a farmer.
type Notification struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	Category   Category         `json:"category"`
	Priority   Priority         `json:"priority"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Timestamp  time.Time        `json:"timestamp"`
	Read       bool             `json:"read"`
	ExpiresAt  *time.Time       `json:"expires_at,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
	ActionURL  string           `json:"action_url,omitempty"`
	ActionText string           `json:"action_text,omitempty"`
}

// Expired reports whether the notification is past its expiry at the given
// time. Notifications without an expiry never expire.
func (n *Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}

// NotificationOptions carries per-instance overrides applied on top of the
// template defaults when building a notification. Zero values leave the
// template defaults in place.
type NotificationOptions struct {
	Priority   Priority
	Category   Category
	Metadata   map[string]any
	ExpiresAt  *time.Time
	ActionURL  string
	ActionText string
}

// NotificationRequest is what generators and external triggers hand to the
// store. The store builds the actual Notification from it via NewNotification.
type NotificationRequest struct {
	Type    NotificationType     `json:"type"`
	Title   string               `json:"title"`
	Message string               `json:"message"`
	Options *NotificationOptions `json:"-"`
}
