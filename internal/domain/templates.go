package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationTemplate is the static default (title, message, priority,
// category) associated with a notification type. Used to fill gaps in a
// creation request.
type NotificationTemplate struct {
	Type     NotificationType
	Title    string
	Message  string
	Priority Priority
	Category Category
}

var notificationTemplates = map[NotificationType]NotificationTemplate{
	TypeWeatherAlert: {
		Type:     TypeWeatherAlert,
		Title:    "Weather Alert",
		Message:  "Severe weather conditions detected in your area",
		Priority: PriorityHigh,
		Category: CategoryWeather,
	},
	TypePestAlert: {
		Type:     TypePestAlert,
		Title:    "Pest Alert",
		Message:  "Pest infestation detected in your crops",
		Priority: PriorityHigh,
		Category: CategoryPestsDiseases,
	},
	TypeDiseaseAlert: {
		Type:     TypeDiseaseAlert,
		Title:    "Disease Alert",
		Message:  "Plant disease symptoms identified",
		Priority: PriorityHigh,
		Category: CategoryPestsDiseases,
	},
	TypeIrrigationReminder: {
		Type:     TypeIrrigationReminder,
		Title:    "Irrigation Reminder",
		Message:  "Time to irrigate your fields",
		Priority: PriorityMedium,
		Category: CategoryIrrigation,
	},
	TypeHarvestReminder: {
		Type:     TypeHarvestReminder,
		Title:    "Harvest Reminder",
		Message:  "Your crops are ready for harvest",
		Priority: PriorityMedium,
		Category: CategoryHarvest,
	},
	TypePriceAlert: {
		Type:     TypePriceAlert,
		Title:    "Price Alert",
		Message:  "Crop prices have reached your target",
		Priority: PriorityMedium,
		Category: CategoryMarket,
	},
	TypeMarketUpdate: {
		Type:     TypeMarketUpdate,
		Title:    "Market Update",
		Message:  "New market prices available",
		Priority: PriorityLow,
		Category: CategoryMarket,
	},
	TypeCropHealth: {
		Type:     TypeCropHealth,
		Title:    "Crop Health Update",
		Message:  "Crop health assessment completed",
		Priority: PriorityMedium,
		Category: CategoryCropManagement,
	},
	TypeSoilCondition: {
		Type:     TypeSoilCondition,
		Title:    "Soil Condition Alert",
		Message:  "Soil moisture/nutrient levels need attention",
		Priority: PriorityMedium,
		Category: CategoryCropManagement,
	},
	TypeEquipmentMaintenance: {
		Type:     TypeEquipmentMaintenance,
		Title:    "Equipment Maintenance",
		Message:  "Equipment maintenance due",
		Priority: PriorityLow,
		Category: CategoryEquipment,
	},
	TypeGovernmentScheme: {
		Type:     TypeGovernmentScheme,
		Title:    "Government Scheme",
		Message:  "New government scheme available for farmers",
		Priority: PriorityLow,
		Category: CategoryGovernment,
	},
	TypeGeneral: {
		Type:     TypeGeneral,
		Title:    "General Notification",
		Message:  "Important information for farmers",
		Priority: PriorityLow,
		Category: CategorySystem,
	},
}

// TemplateFor returns the template for the given type and whether one exists.
func TemplateFor(t NotificationType) (NotificationTemplate, bool) {
	tpl, ok := notificationTemplates[t]
	return tpl, ok
}

// NewNotification builds a well-formed notification from a type plus title and
// message, falling back to the type's template for empty strings and unset
// option fields. Options are applied last, so caller-specified priority,
// category, metadata, expiry and action fields win over the template.
//
// The notification is always created unread with a fresh id and timestamp.
// Pure construction: no persistence, no delivery.
func NewNotification(t NotificationType, title, message string, opts *NotificationOptions) *Notification {
	tpl, ok := notificationTemplates[t]
	if !ok {
		// Unknown type: behave like the catch-all so callers never get nil.
		tpl = NotificationTemplate{
			Title:    "Notification",
			Priority: PriorityMedium,
			Category: CategorySystem,
		}
	}

	if title == "" {
		title = tpl.Title
	}
	if message == "" {
		message = tpl.Message
	}

	n := &Notification{
		ID:        newNotificationID(),
		Type:      t,
		Category:  tpl.Category,
		Priority:  tpl.Priority,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
		Read:      false,
	}

	if opts != nil {
		if opts.Priority != "" {
			n.Priority = opts.Priority
		}
		if opts.Category != "" {
			n.Category = opts.Category
		}
		if opts.Metadata != nil {
			n.Metadata = opts.Metadata
		}
		if opts.ExpiresAt != nil {
			n.ExpiresAt = opts.ExpiresAt
		}
		if opts.ActionURL != "" {
			n.ActionURL = opts.ActionURL
		}
		if opts.ActionText != "" {
			n.ActionText = opts.ActionText
		}
	}

	return n
}

// newNotificationID builds a session-unique id from the creation time plus a
// random suffix.
func newNotificationID() string {
	return fmt.Sprintf("notif_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
