package weather

import (
	"testing"
	"time"

	"github.com/cropsaarthi/backend/internal/model"
)

func sampleAt(t time.Time, temp, rain float64, desc string) model.ForecastSample {
	return model.ForecastSample{
		Time:            t,
		TemperatureC:    temp,
		HumidityPercent: temp + 30,
		RainfallMm:      rain,
		Description:     desc,
		IconCode:        "01d",
	}
}

func TestAggregateSumsRainAndPrefersDaytime(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	samples := []model.ForecastSample{
		sampleAt(day.Add(10*time.Hour), 24, 2, "morning"),
		sampleAt(day.Add(13*time.Hour), 28, 3, "midday"),
		sampleAt(day.Add(22*time.Hour), 18, 1, "night"),
	}

	got := aggregateDaily(samples, time.UTC)
	if len(got) != 1 {
		t.Fatalf("expected one bucket, got %d", len(got))
	}
	if got[0].RainfallMm != 6 {
		t.Fatalf("expected summed rainfall 6, got %v", got[0].RainfallMm)
	}
	// Representative values come from the last daytime sample (13:00).
	if got[0].TemperatureC != 28 || got[0].Description != "midday" {
		t.Fatalf("expected 13:00 representative sample, got %+v", got[0])
	}
}

func TestAggregateNoDaytimeSampleKeepsFirstSeen(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	samples := []model.ForecastSample{
		sampleAt(day.Add(2*time.Hour), 16, 0, "early"),
		sampleAt(day.Add(20*time.Hour), 19, 4, "late"),
	}

	got := aggregateDaily(samples, time.UTC)
	if len(got) != 1 {
		t.Fatalf("expected one bucket, got %d", len(got))
	}
	if got[0].Description != "early" || got[0].TemperatureC != 16 {
		t.Fatalf("expected first-seen sample to stay representative, got %+v", got[0])
	}
	if got[0].RainfallMm != 4 {
		t.Fatalf("rainfall must still sum, got %v", got[0].RainfallMm)
	}
}

func TestAggregateTruncatesToFiveDays(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	var samples []model.ForecastSample
	for i := 0; i < 7; i++ {
		samples = append(samples, sampleAt(start.AddDate(0, 0, i), 20, 1, "day"))
	}

	got := aggregateDaily(samples, time.UTC)
	if len(got) != 5 {
		t.Fatalf("expected 5 days, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Date.After(got[i-1].Date) {
			t.Fatalf("days out of order at %d: %v then %v", i, got[i-1].Date, got[i].Date)
		}
	}
}
