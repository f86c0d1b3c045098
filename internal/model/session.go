package model

import "time"

// SessionState is the per-session planner state. It is persisted to the
// key-value store on every change and rehydrated at startup.
type SessionState struct {
	SelectedCrop      string            `json:"selected_crop"`
	SoilMoistureClass SoilMoistureClass `json:"soil_moisture_class"`
	LastForecasts     []DailyForecast   `json:"last_forecasts,omitempty"`
	LastUpdatedAt     time.Time         `json:"last_updated_at"`
}
