package weather

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"

	"github.com/cropsaarthi/backend/internal/model"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cropsaarthi_forecast_cache_hits_total",
		Help: "Forecast requests served from a fresh cache entry.",
	})
	providerErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cropsaarthi_forecast_provider_errors_total",
		Help: "Failed forecast provider calls.",
	})
	degradedResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cropsaarthi_forecast_degraded_total",
		Help: "Forecast responses served degraded, by fallback kind.",
	}, []string{"kind"})
)

// Service is the forecast aggregator: fresh cache, then provider, then stale
// cache, then synthesized defaults. It always produces a forecast sequence.
type Service struct {
	provider Provider
	cache    *Cache
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
	loc      *time.Location
	now      func() time.Time
}

func NewService(provider Provider, cache *Cache, timeout time.Duration) *Service {
	if cache == nil {
		cache = NewCache()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		provider: provider,
		cache:    cache,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "forecast-provider",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
		}),
		timeout: timeout,
		loc:     time.Local,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithLocation sets the location used for calendar-day bucketing.
func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// FetchDailyForecast returns at most five daily forecasts for the rounded
// coordinate, with a status describing how they were obtained. Repeated
// calls for the same rounded location within the cache validity window never
// hit the provider.
func (s *Service) FetchDailyForecast(ctx context.Context, lat, lon float64) ([]model.DailyForecast, model.ForecastStatus) {
	key := LocationKey(lat, lon)
	now := s.now()

	if entry, ok := s.cache.Get(key); ok && entry.IsFresh(now) {
		cacheHits.Inc()
		return entry.Forecasts, model.ForecastOK
	}

	fctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.breaker.Execute(func() (any, error) {
		return s.provider.Fetch(fctx, lat, lon)
	})
	if err != nil {
		providerErrors.Inc()
		log.Printf("weather: fetch error for %s: %v", key, err)
		if entry, ok := s.cache.Get(key); ok {
			degradedResponses.WithLabelValues("cached").Inc()
			return entry.Forecasts, model.ForecastDegradedCached
		}
		degradedResponses.WithLabelValues("default").Inc()
		return defaultForecast(now), model.ForecastDegradedDefault
	}

	daily := aggregateDaily(res.([]model.ForecastSample), s.loc)
	s.cache.Put(key, daily, now)
	return daily, model.ForecastOK
}
