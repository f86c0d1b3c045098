// Package session holds the per-session planner state (selected crop, soil
// class, last forecasts) and keeps it persisted across restarts.
package session

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/cropsaarthi/backend/internal/model"
	"github.com/cropsaarthi/backend/pkg/kvstore"
)

const stateKey = "irrigation/session"

// Defaults used when nothing is persisted or the persisted state is corrupt.
const (
	DefaultCrop = "Wheat"
	DefaultSoil = model.SoilMoist
)

// Holder owns the session state. Single writer, single reader; the mutex
// only guards against the HTTP layer calling concurrently.
type Holder struct {
	mu    sync.Mutex
	store *kvstore.Store
	state model.SessionState
	now   func() time.Time
}

// NewHolder rehydrates state from the store. A read or parse failure is
// logged and replaced with defaults; startup never fails on bad state.
func NewHolder(store *kvstore.Store) *Holder {
	h := &Holder{store: store, now: time.Now}
	h.state = model.SessionState{SelectedCrop: DefaultCrop, SoilMoistureClass: DefaultSoil}

	raw, ok, err := store.Get(stateKey)
	if err != nil {
		log.Printf("session: read persisted state: %v (using defaults)", err)
		return h
	}
	if !ok {
		return h
	}
	var saved model.SessionState
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		log.Printf("session: corrupt persisted state: %v (using defaults)", err)
		return h
	}
	if saved.SelectedCrop == "" {
		saved.SelectedCrop = DefaultCrop
	}
	if !saved.SoilMoistureClass.Valid() {
		saved.SoilMoistureClass = DefaultSoil
	}
	h.state = saved
	return h
}

// State returns a copy of the current state.
func (h *Holder) State() model.SessionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// SetCrop updates the selected crop and persists.
func (h *Holder) SetCrop(crop string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.SelectedCrop = crop
	return h.persistLocked()
}

// SetSoil updates the soil moisture class and persists.
func (h *Holder) SetSoil(soil model.SoilMoistureClass) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.SoilMoistureClass = soil
	return h.persistLocked()
}

// SetForecasts records the last fetched forecasts and persists.
func (h *Holder) SetForecasts(forecasts []model.DailyForecast) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.LastForecasts = forecasts
	return h.persistLocked()
}

func (h *Holder) persistLocked() error {
	h.state.LastUpdatedAt = h.now()
	b, err := json.Marshal(h.state)
	if err != nil {
		return err
	}
	if err := h.store.Set(stateKey, string(b)); err != nil {
		log.Printf("session: persist state: %v", err)
		return err
	}
	return nil
}
