// Package history records every irrigation recommendation as a point in
// InfluxDB so advice given to the farmer can be audited later.
package history

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/cropsaarthi/backend/internal/model"
)

type InfluxConfig struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string // defaults to "irrigation_advice"
}

type Recorder struct {
	writeAPI    api.WriteAPIBlocking
	measurement string
}

func NewRecorder(cfg InfluxConfig) (*Recorder, error) {
	if cfg.URL == "" || cfg.Token == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influx config incomplete")
	}
	if cfg.Measurement == "" {
		cfg.Measurement = "irrigation_advice"
	}

	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &Recorder{
		writeAPI:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		measurement: sanitizeMeasurement(cfg.Measurement),
	}, nil
}

// Record writes one recommendation. Write failures are logged and returned;
// the caller treats them as non-fatal.
func (r *Recorder) Record(ctx context.Context, crop string, soil model.SoilMoistureClass, rec model.IrrigationRecommendation, forecasts []model.DailyForecast) error {
	totalRain := 0.0
	for _, d := range forecasts {
		totalRain += d.RainfallMm
	}

	tags := map[string]string{
		"crop":    crop,
		"soil":    string(soil),
		"urgency": string(rec.UrgencyLevel),
	}
	fields := map[string]interface{}{
		"needs_irrigation":  rec.NeedsIrrigation,
		"days_until_needed": rec.DaysUntilNeeded,
		"forecast_rain_mm":  totalRain,
	}
	point := influxdb2.NewPoint(r.measurement, tags, fields, time.Now())

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		log.Printf("history: write error: %v", err)
		return err
	}
	return nil
}

func sanitizeMeasurement(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == ':', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
