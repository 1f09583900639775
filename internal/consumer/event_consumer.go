// Package consumer turns farm events published to RabbitMQ into notification
// requests. External data sources (weather pollers, field sensors, market
// feeds) publish (kind, severity, payload) envelopes; the consumer maps each
// onto the matching generator template and feeds the store.
package consumer

import (
	"encoding/json"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/generator"
	"github.com/agriswayam/go-notification-service/internal/metrics"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/shared/rabbitmq"
	"github.com/agriswayam/go-notification-service/internal/store"
)

const (
	farmEventsExchange   = "agriswayam.events"
	notificationQueue    = "notification_queue"
	farmEventsRoutingKey = "farm.*"
	consumerTag          = "notification-service"
)

// EventConsumer consumes farm events from RabbitMQ.
type EventConsumer struct {
	client *rabbitmq.RabbitMQClient
	store  *store.Store
	log    *logger.Logger
}

// NewEventConsumer creates a new event consumer feeding the given store.
func NewEventConsumer(client *rabbitmq.RabbitMQClient, store *store.Store, log *logger.Logger) *EventConsumer {
	return &EventConsumer{
		client: client,
		store:  store,
		log:    log,
	}
}

// Start declares the exchange/queue topology and processes messages until the
// channel closes. Malformed payloads are dropped; events the mapper does not
// recognize are acknowledged and ignored.
func (c *EventConsumer) Start() error {
	c.log.Info("Starting event consumer", "queue", notificationQueue)

	if err := c.client.DeclareExchange(farmEventsExchange, "topic"); err != nil {
		c.log.Error("Failed to declare exchange", "error", err)
		return err
	}
	if err := c.client.DeclareQueue(notificationQueue); err != nil {
		c.log.Error("Failed to declare queue", "error", err)
		return err
	}
	if err := c.client.BindQueue(notificationQueue, farmEventsRoutingKey, farmEventsExchange); err != nil {
		c.log.Error("Failed to bind queue", "error", err)
		return err
	}

	messages, err := c.client.Consume(notificationQueue, consumerTag)
	if err != nil {
		c.log.Error("Failed to start consuming", "error", err)
		return err
	}

	for msg := range messages {
		var event domain.Event
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			c.log.Error("Failed to unmarshal event", "error", err, "routing_key", msg.RoutingKey)
			msg.Nack(false, false) // don't requeue invalid messages
			continue
		}

		req, ok := c.mapEvent(&event)
		if !ok {
			c.log.Warn("Unknown event kind", "kind", event.Kind)
			metrics.EventsConsumed.WithLabelValues(string(event.Kind), "unknown").Inc()
			msg.Ack(false)
			continue
		}

		// Add never fails; suppression by preferences is not an error.
		c.store.Add(req)
		metrics.EventsConsumed.WithLabelValues(string(event.Kind), "processed").Inc()
		msg.Ack(false)
	}

	return nil
}

// mapEvent translates an event envelope into a generator request.
func (c *EventConsumer) mapEvent(event *domain.Event) (domain.NotificationRequest, bool) {
	switch event.Kind {
	case domain.EventWeatherRain:
		return generator.Weather(generator.WeatherRain, event.Severity, event.Location,
			generator.WeatherDetails{AmountMM: event.DataFloat("amount_mm")}), true
	case domain.EventWeatherDrought:
		return generator.Weather(generator.WeatherDrought, event.Severity, event.Location,
			generator.WeatherDetails{}), true
	case domain.EventWeatherStorm:
		return generator.Weather(generator.WeatherStorm, event.Severity, event.Location,
			generator.WeatherDetails{WindSpeedKmh: event.DataFloat("wind_kmh")}), true
	case domain.EventWeatherTemperature:
		return generator.Weather(generator.WeatherTemperature, event.Severity, event.Location,
			generator.WeatherDetails{TempC: event.DataFloat("temp_c")}), true
	case domain.EventWeatherWind:
		return generator.Weather(generator.WeatherWind, event.Severity, event.Location,
			generator.WeatherDetails{WindSpeedKmh: event.DataFloat("wind_kmh")}), true

	case domain.EventPestDetected, domain.EventDiseaseDetected:
		return generator.PestDisease(
			event.Kind == domain.EventDiseaseDetected,
			event.DataString("name"),
			event.Crop,
			event.Severity,
			event.Location,
			symptomList(event),
		), true

	case domain.EventIrrigationDue:
		return generator.Irrigation(generator.IrrigationReminder, event.Field, event.Crop,
			generator.IrrigationDetails{LastIrrigation: event.DataString("last_irrigation")}), true

	case domain.EventHarvestReady:
		return generator.Harvest(generator.HarvestReady, event.Crop, event.Field,
			generator.HarvestDetails{Window: event.DataString("window")}), true

	case domain.EventMarketPrice:
		return generator.Market(generator.MarketPriceAlert, event.Crop, generator.MarketDetails{
			Price:  event.DataFloat("price"),
			Target: event.DataFloat("target"),
		}), true
	case domain.EventMarketUpdate:
		return generator.Market(generator.MarketPriceList, event.Crop, generator.MarketDetails{
			CurrentPrice:  event.DataFloat("current_price"),
			ChangePercent: event.DataFloat("change_percent"),
		}), true

	case domain.EventSoilReading:
		return generator.Soil(generator.SoilKind(event.DataString("reading")), event.Field,
			generator.SoilDetails{
				LevelPercent:   event.DataFloat("level_percent"),
				PH:             event.DataFloat("ph"),
				Nutrient:       event.DataString("nutrient"),
				Recommendation: event.DataString("recommendation"),
			}), true

	case domain.EventEquipmentFault:
		return generator.Equipment(generator.EquipmentMalfunction, event.DataString("equipment"),
			generator.EquipmentDetails{Issue: event.DataString("issue")}), true

	case domain.EventSchemeAnnounced:
		return generator.Government(event.DataString("scheme"), event.DataString("description")), true
	}

	return domain.NotificationRequest{}, false
}

func symptomList(event *domain.Event) []string {
	raw, ok := event.Data["symptoms"].([]any)
	if !ok {
		return nil
	}
	symptoms := make([]string, 0, len(raw))
	for _, s := range raw {
		if str, ok := s.(string); ok {
			symptoms = append(symptoms, str)
		}
	}
	return symptoms
}
