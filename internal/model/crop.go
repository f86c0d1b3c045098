package model

// CropWaterProfile describes the irrigation requirements of a single crop.
type CropWaterProfile struct {
	Crop                 string  `json:"crop"`
	MinRainfallPerWeekMm float64 `json:"min_rainfall_per_week_mm"`
	IdealSoilMoisturePct float64 `json:"ideal_soil_moisture_pct"`
	AlertThresholdDays   int     `json:"alert_threshold_days"`
}

// SoilMoistureClass is the farmer-supplied qualitative soil state, used when
// no sensor data exists.
type SoilMoistureClass string

const (
	SoilDry   SoilMoistureClass = "Dry"
	SoilMoist SoilMoistureClass = "Moist"
	SoilWet   SoilMoistureClass = "Wet"
)

// MoisturePercent maps the class to its representative moisture percentage.
func (s SoilMoistureClass) MoisturePercent() float64 {
	switch s {
	case SoilDry:
		return 30
	case SoilMoist:
		return 60
	case SoilWet:
		return 90
	default:
		return 50
	}
}

// Valid reports whether s is one of the three known classes.
func (s SoilMoistureClass) Valid() bool {
	return s == SoilDry || s == SoilMoist || s == SoilWet
}
