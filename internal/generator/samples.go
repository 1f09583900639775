package generator

import (
	"time"

	"github.com/agriswayam/go-notification-service/internal/domain"
)

// Samples returns a demo set covering every generator, used to seed a fresh
// installation of the dashboard.
func Samples() []domain.NotificationRequest {
	return []domain.NotificationRequest{
		Weather(WeatherRain, domain.PriorityHigh, "Punjab", WeatherDetails{AmountMM: 85}),
		Weather(WeatherTemperature, domain.PriorityUrgent, "Haryana", WeatherDetails{TempC: 45}),
		Weather(WeatherStorm, domain.PriorityUrgent, "Gujarat", WeatherDetails{WindSpeedKmh: 120}),

		PestDisease(false, "Brown Plant Hopper", "Rice", domain.PriorityHigh, "Punjab",
			[]string{"Yellowing leaves", "Hopper burn", "Stunted growth"}),
		PestDisease(true, "Bacterial Blight", "Wheat", domain.PriorityMedium, "Haryana",
			[]string{"Water-soaked lesions", "Yellow halos", "Leaf wilting"}),

		Irrigation(IrrigationReminder, "Field A", "Wheat", IrrigationDetails{LastIrrigation: "3 days ago"}),
		Irrigation(IrrigationSchedule, "Field B", "Rice", IrrigationDetails{Time: "6:00 AM", DurationMinutes: 120}),

		Harvest(HarvestReady, "Wheat", "Field A", HarvestDetails{Window: "Next 5 days"}),
		Harvest(HarvestSchedule, "Rice", "Field B", HarvestDetails{Date: "2025-01-15", Time: "8:00 AM"}),

		Market(MarketPriceAlert, "Wheat", MarketDetails{Price: 2500, Target: 2400}),
		Market(MarketPriceList, "Rice", MarketDetails{CurrentPrice: 5500, ChangePercent: 2.5}),

		CropHealth(CropHealthAssessment, "Wheat", "Field A", CropHealthDetails{Score: 8}),
		CropHealth(CropHealthNutrient, "Rice", "Field B", CropHealthDetails{
			Deficiency:     "Nitrogen",
			Recommendation: "Apply urea fertilizer",
		}),

		Soil(SoilMoisture, "Field A", SoilDetails{LevelPercent: 35, Recommendation: "Irrigate immediately"}),
		Soil(SoilPH, "Field B", SoilDetails{PH: 5.2, Recommendation: "Apply lime to increase pH"}),

		Equipment(EquipmentMaintenance, "Tractor", EquipmentDetails{LastService: "2 months ago"}),
		Equipment(EquipmentMalfunction, "Irrigation Pump", EquipmentDetails{Issue: "Low pressure detected"}),

		Government("PM-KISAN Scheme", "Direct income support of ₹6000 per year for farmers"),
	}
}

// TimeBased returns the recurring reminders due at the given time: a morning
// irrigation reminder between 06:00 and 08:00, an evening harvest reminder
// between 17:00 and 19:00, and a market update on Mondays.
func TimeBased(now time.Time) []domain.NotificationRequest {
	var requests []domain.NotificationRequest

	if now.Hour() >= 6 && now.Hour() < 8 {
		requests = append(requests,
			Irrigation(IrrigationReminder, "Field A", "Wheat", IrrigationDetails{LastIrrigation: "Yesterday"}))
	}

	if now.Hour() >= 17 && now.Hour() < 19 {
		requests = append(requests,
			Harvest(HarvestReady, "Rice", "Field B", HarvestDetails{Window: "Next 3 days"}))
	}

	if now.Weekday() == time.Monday {
		requests = append(requests,
			Market(MarketPriceList, "Wheat", MarketDetails{CurrentPrice: 2450, ChangePercent: 1.2}))
	}

	return requests
}
