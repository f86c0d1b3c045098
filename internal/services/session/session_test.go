package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/cropsaarthi/backend/internal/model"
	"github.com/cropsaarthi/backend/internal/services/session"
	"github.com/cropsaarthi/backend/pkg/kvstore"
)

func newTestStore(t *testing.T) *kvstore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "session.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := kvstore.New(db)
	if err != nil {
		t.Fatalf("kvstore: %v", err)
	}
	return store
}

func TestDefaultsWhenNothingPersisted(t *testing.T) {
	t.Parallel()
	h := session.NewHolder(newTestStore(t))

	state := h.State()
	if state.SelectedCrop != session.DefaultCrop || state.SoilMoistureClass != session.DefaultSoil {
		t.Fatalf("expected defaults, got %+v", state)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	forecasts := []model.DailyForecast{
		{
			Date:            time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			TemperatureC:    31.5,
			HumidityPercent: 58,
			RainfallMm:      4.2,
			Description:     "scattered clouds",
			IconCode:        "03d",
		},
		{
			Date:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			RainfallMm: 12,
		},
	}

	h := session.NewHolder(store)
	if err := h.SetCrop("Rice"); err != nil {
		t.Fatalf("set crop: %v", err)
	}
	if err := h.SetSoil(model.SoilDry); err != nil {
		t.Fatalf("set soil: %v", err)
	}
	if err := h.SetForecasts(forecasts); err != nil {
		t.Fatalf("set forecasts: %v", err)
	}

	// A fresh holder over the same store must rehydrate everything.
	rehydrated := session.NewHolder(store).State()
	if rehydrated.SelectedCrop != "Rice" || rehydrated.SoilMoistureClass != model.SoilDry {
		t.Fatalf("crop/soil lost in round trip: %+v", rehydrated)
	}
	if len(rehydrated.LastForecasts) != 2 {
		t.Fatalf("forecasts lost: %+v", rehydrated.LastForecasts)
	}
	for i, want := range forecasts {
		got := rehydrated.LastForecasts[i]
		if !got.Date.Equal(want.Date) {
			t.Fatalf("day %d date changed: %v vs %v", i, got.Date, want.Date)
		}
		if got.RainfallMm != want.RainfallMm || got.TemperatureC != want.TemperatureC {
			t.Fatalf("day %d values changed: %+v vs %+v", i, got, want)
		}
	}
	if rehydrated.LastUpdatedAt.IsZero() {
		t.Fatal("last-updated timestamp missing after round trip")
	}
}

func TestCorruptStateFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	if err := store.Set("irrigation/session", "{not json"); err != nil {
		t.Fatalf("seed corrupt state: %v", err)
	}

	state := session.NewHolder(store).State()
	if state.SelectedCrop != session.DefaultCrop || state.SoilMoistureClass != session.DefaultSoil {
		t.Fatalf("corrupt state must yield defaults, got %+v", state)
	}
}

func TestInvalidSoilClassReplacedOnRehydrate(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	if err := store.Set("irrigation/session", `{"selected_crop":"Maize","soil_moisture_class":"Soggy"}`); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	state := session.NewHolder(store).State()
	if state.SelectedCrop != "Maize" {
		t.Fatalf("valid crop must survive, got %+v", state)
	}
	if state.SoilMoistureClass != session.DefaultSoil {
		t.Fatalf("invalid soil class must fall back, got %q", state.SoilMoistureClass)
	}
}
