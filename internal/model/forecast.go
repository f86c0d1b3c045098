package model

import "time"

// ForecastSample is one raw sub-daily reading from the forecast provider.
type ForecastSample struct {
	Time            time.Time `json:"time"`
	TemperatureC    float64   `json:"temperature_c"`
	HumidityPercent float64   `json:"humidity_pct"`
	RainfallMm      float64   `json:"rainfall_mm"`
	Description     string    `json:"description"`
	IconCode        string    `json:"icon"`
}

// DailyForecast is one calendar day of aggregated forecast data. RainfallMm
// sums every sample of the day; the other fields come from a single
// representative sample.
type DailyForecast struct {
	Date            time.Time `json:"date"`
	TemperatureC    float64   `json:"temperature_c"`
	HumidityPercent float64   `json:"humidity_pct"`
	RainfallMm      float64   `json:"rainfall_mm"`
	Description     string    `json:"description"`
	IconCode        string    `json:"icon"`
}

// ForecastStatus tells the caller how the forecast sequence was obtained.
type ForecastStatus string

const (
	// ForecastOK means data came from the provider or a fresh cache entry.
	ForecastOK ForecastStatus = "ok"
	// ForecastDegradedCached means the provider failed and a stale cache
	// entry was served instead.
	ForecastDegradedCached ForecastStatus = "degraded-cached"
	// ForecastDegradedDefault means the provider failed with nothing cached
	// and a synthesized default forecast was served.
	ForecastDegradedDefault ForecastStatus = "degraded-default"
)

// Degraded reports whether the caller should warn that data may be outdated.
func (s ForecastStatus) Degraded() bool { return s != ForecastOK }
