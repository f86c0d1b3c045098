package weather

import (
	"time"

	"github.com/cropsaarthi/backend/internal/model"
)

const (
	forecastDays = 5
	daytimeStart = 9  // inclusive, local hour
	daytimeEnd   = 17 // inclusive, local hour
)

// aggregateDaily groups raw samples into one DailyForecast per calendar day
// (local date in loc) and truncates to forecastDays.
//
// Rainfall sums across every sample of the day. The representative fields
// (temperature, humidity, description, icon) come from the last sample whose
// local hour falls in [daytimeStart, daytimeEnd]; if the day has no daytime
// sample they stay with the first sample seen for that day. Samples are
// processed in provider order, which is ascending by timestamp, so
// "first seen" is the earliest sample of the day.
func aggregateDaily(samples []model.ForecastSample, loc *time.Location) []model.DailyForecast {
	if loc == nil {
		loc = time.Local
	}

	var order []string
	buckets := make(map[string]*model.DailyForecast)

	for _, s := range samples {
		local := s.Time.In(loc)
		day := local.Format("2006-01-02")

		b, ok := buckets[day]
		if !ok {
			b = &model.DailyForecast{
				Date:            s.Time,
				TemperatureC:    s.TemperatureC,
				HumidityPercent: s.HumidityPercent,
				RainfallMm:      s.RainfallMm,
				Description:     s.Description,
				IconCode:        s.IconCode,
			}
			buckets[day] = b
			order = append(order, day)
			continue
		}

		b.RainfallMm += s.RainfallMm
		if h := local.Hour(); h >= daytimeStart && h <= daytimeEnd {
			b.TemperatureC = s.TemperatureC
			b.HumidityPercent = s.HumidityPercent
			b.Description = s.Description
			b.IconCode = s.IconCode
		}
	}

	if len(order) > forecastDays {
		order = order[:forecastDays]
	}
	out := make([]model.DailyForecast, 0, len(order))
	for _, day := range order {
		out = append(out, *buckets[day])
	}
	return out
}
