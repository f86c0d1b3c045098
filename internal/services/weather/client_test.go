package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOWMClientParsesForecastList(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("missing appid query param")
		}
		if r.URL.Query().Get("units") != "metric" {
			t.Errorf("missing units=metric")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[
			{"dt":1756450800,"main":{"temp":27.4,"humidity":64},"rain":{"3h":1.2},"weather":[{"description":"light rain","icon":"10d"}]},
			{"dt":1756461600,"main":{"temp":29.1,"humidity":58},"weather":[{"description":"clear sky","icon":"01d"}]}
		]}`))
	}))
	defer srv.Close()

	client := NewOWMClientWithBaseURL("test-key", srv.URL, time.Second)
	samples, err := client.Fetch(context.Background(), 10.12, 76.45)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].RainfallMm != 1.2 || samples[0].Description != "light rain" {
		t.Fatalf("unexpected first sample: %+v", samples[0])
	}
	// Absent rain block decodes to zero, not an error.
	if samples[1].RainfallMm != 0 {
		t.Fatalf("missing rain must be 0, got %v", samples[1].RainfallMm)
	}
	if samples[1].TemperatureC != 29.1 || samples[1].HumidityPercent != 58 {
		t.Fatalf("unexpected second sample: %+v", samples[1])
	}
}

func TestOWMClientReportsStatusErrors(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewOWMClientWithBaseURL("bad-key", srv.URL, time.Second)
	if _, err := client.Fetch(context.Background(), 10, 76); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestOWMClientRequiresAPIKey(t *testing.T) {
	t.Parallel()
	client := NewOWMClient("", time.Second)
	if _, err := client.Fetch(context.Background(), 10, 76); err == nil {
		t.Fatal("expected error without api key")
	}
}
