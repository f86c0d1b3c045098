package app

import "github.com/cropsaarthi/backend/internal/model"

// ---------- request payloads ----------

type recommendRequest struct {
	Crop      string                  `json:"crop"`
	SoilClass model.SoilMoistureClass `json:"soil_moisture_class"`
	Lat       float64                 `json:"lat"`
	Lon       float64                 `json:"lon"`
}

type sessionUpdateRequest struct {
	SelectedCrop      string                  `json:"selected_crop"`
	SoilMoistureClass model.SoilMoistureClass `json:"soil_moisture_class"`
}

type bookmarkRequest struct {
	Bookmarked bool `json:"bookmarked"`
}

type notificationRequest struct {
	Topics []string `json:"topics"`
}

type diagnosisRequest struct {
	ImageBase64 string `json:"image_base64"`
	Location    string `json:"location"`
}

type chatRequest struct {
	Question string `json:"question"`
}

// ---------- response payloads ----------

type forecastResponse struct {
	Forecasts []model.DailyForecast `json:"forecasts"`
	Status    model.ForecastStatus  `json:"status"`
	Message   string                `json:"message,omitempty"`
}

type recommendResponse struct {
	Recommendation model.IrrigationRecommendation `json:"recommendation"`
	Forecasts      []model.DailyForecast          `json:"forecasts"`
	ForecastStatus model.ForecastStatus           `json:"forecast_status"`
}

type chatResponse struct {
	Answer   string `json:"answer"`
	Degraded bool   `json:"degraded"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// degradedMessage is shown to the farmer alongside non-ok forecast data.
func degradedMessage(status model.ForecastStatus) string {
	switch status {
	case model.ForecastDegradedCached:
		return "Using cached data due to connection issues"
	case model.ForecastDegradedDefault:
		return "Weather service unavailable; showing typical conditions"
	default:
		return ""
	}
}
