package irrigation

import (
	"fmt"

	"github.com/cropsaarthi/backend/internal/model"
)

// Decision thresholds. These numbers are the only tuning in the engine; do
// not change them without revisiting every downstream message.
const (
	heavyRainMm        = 10.0 // first-day rainfall above this skips irrigation outright
	dryDayMaxMm        = 5.0  // a day at or below this counts as dry
	moistureDeficitPct = 15.0 // deficit above this counts as low moisture
)

// Recommend evaluates a crop against the farmer's soil assessment and the
// daily forecast sequence. Pure function: no I/O, no side effects.
func (t *Table) Recommend(crop string, soil model.SoilMoistureClass, forecasts []model.DailyForecast) model.IrrigationRecommendation {
	profile, ok := t.GetProfile(crop)
	if !ok {
		return model.IrrigationRecommendation{
			NeedsIrrigation: false,
			UrgencyLevel:    model.UrgencyLow,
			Message:         fmt.Sprintf("No data available for %s. Please select a different crop.", crop),
		}
	}

	currentMoisture := soil.MoisturePercent()

	// Heavy rain on the first forecast day overrides every other signal.
	if len(forecasts) > 0 && forecasts[0].RainfallMm > heavyRainMm {
		return model.IrrigationRecommendation{
			NeedsIrrigation: false,
			UrgencyLevel:    model.UrgencyLow,
			Message:         "Heavy rain expected soon. Skip irrigation to prevent overwatering.",
		}
	}

	// Count leading dry days, stopping at the first day with real rain.
	dryDays := 0
	for _, day := range forecasts {
		if day.RainfallMm > dryDayMaxMm {
			break
		}
		dryDays++
	}

	noRainPeriod := dryDays >= profile.AlertThresholdDays
	lowMoisture := profile.IdealSoilMoisturePct-currentMoisture > moistureDeficitPct

	switch {
	case noRainPeriod && lowMoisture:
		days := min(2, dryDays)
		return model.IrrigationRecommendation{
			NeedsIrrigation: true,
			UrgencyLevel:    model.UrgencyHigh,
			Message:         fmt.Sprintf("Your %s needs irrigation in the next %d days.", crop, days),
			DaysUntilNeeded: days,
		}
	case noRainPeriod:
		return model.IrrigationRecommendation{
			NeedsIrrigation: true,
			UrgencyLevel:    model.UrgencyMedium,
			Message:         fmt.Sprintf("Consider irrigating your %s soon. No rain expected for %d days.", crop, dryDays),
			DaysUntilNeeded: 3,
		}
	case lowMoisture:
		days := max(1, dryDays)
		return model.IrrigationRecommendation{
			NeedsIrrigation: true,
			UrgencyLevel:    model.UrgencyLow,
			Message:         fmt.Sprintf("Soil moisture for %s is low, but rain is expected in %d days.", crop, dryDays),
			DaysUntilNeeded: days,
		}
	default:
		return model.IrrigationRecommendation{
			NeedsIrrigation: false,
			UrgencyLevel:    model.UrgencyLow,
			Message:         fmt.Sprintf("Your %s has adequate water. Next check recommended in 3 days.", crop),
		}
	}
}
