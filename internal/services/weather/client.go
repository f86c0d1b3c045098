package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cropsaarthi/backend/internal/model"
)

// Provider fetches raw sub-daily forecast samples for a coordinate, covering
// at least five days.
type Provider interface {
	Fetch(ctx context.Context, lat, lon float64) ([]model.ForecastSample, error)
}

// OpenWeather 5-day/3-hour forecast payload, reduced to the fields we read.
type owmItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Rain struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type owmResp struct {
	List []owmItem `json:"list"`
}

// OWMClient is the OpenWeatherMap forecast provider.
type OWMClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

const defaultOWMBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

func NewOWMClient(apiKey string, timeout time.Duration) *OWMClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OWMClient{
		apiKey:  apiKey,
		baseURL: defaultOWMBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// NewOWMClientWithBaseURL is used by tests to point at a fake server.
func NewOWMClientWithBaseURL(apiKey, baseURL string, timeout time.Duration) *OWMClient {
	c := NewOWMClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

func (c *OWMClient) Fetch(ctx context.Context, lat, lon float64) ([]model.ForecastSample, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("missing api key")
	}
	url := fmt.Sprintf("%s?lat=%f&lon=%f&units=metric&appid=%s", c.baseURL, lat, lon, c.apiKey)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("owm status %d: %s", resp.StatusCode, string(b))
	}
	var out owmResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.List) == 0 {
		return nil, fmt.Errorf("no forecast data")
	}

	samples := make([]model.ForecastSample, 0, len(out.List))
	for _, item := range out.List {
		s := model.ForecastSample{
			Time:            time.Unix(item.Dt, 0),
			TemperatureC:    item.Main.Temp,
			HumidityPercent: item.Main.Humidity,
			RainfallMm:      item.Rain.ThreeH, // absent rain block decodes to 0
		}
		if len(item.Weather) > 0 {
			s.Description = item.Weather[0].Description
			s.IconCode = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}
