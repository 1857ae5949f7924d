package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
)

// Results farther than this are treated as a provider glitch and replaced
// with the geometry fallback.
const maxSaneDistanceM = 100_000

// GoogleTravelProvider implements TravelProvider using the Google Directions
// API.
//
// It coordinates:
//   - Persistent travel-result caching
//   - External API calls with retry/backoff
//   - Optional destination weather lookups
//   - A deterministic great-circle fallback on any failure
//
// GetTravelContext never returns an error: every failure path degrades to
// the geometry estimate. The degraded-service warning is logged once per
// provider lifetime via an explicit field rather than global state. The
// provider is safe for concurrent use.
type GoogleTravelProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	trafficModel string
	cache        ports.TravelCache
	weather      *OpenWeatherClient

	warnOnce sync.Once
}

// NewGoogleTravelProvider builds a provider. An empty API key is allowed:
// the provider then serves geometry estimates only. cache and weather may be
// nil.
func NewGoogleTravelProvider(apiKey string, cache ports.TravelCache, weather *OpenWeatherClient) *GoogleTravelProvider {
	return &GoogleTravelProvider{
		session:      &http.Client{Timeout: 15 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com",
		trafficModel: "best_guess",
		cache:        cache,
		weather:      weather,
	}
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Value int `json:"value"`
			} `json:"duration_in_traffic"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetTravelContext returns travel duration and distance between two
// coordinates, plus destination weather when a weather client is configured.
func (g *GoogleTravelProvider) GetTravelContext(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (_ ports.TravelResult, err error) {
	defer obs.Time(ctx, "travel.GetTravelContext")(&err)

	if g.cache != nil {
		cached, ok, cacheErr := g.cache.Get(ctx, origin, destination, mode)
		if cacheErr != nil {
			log.Printf("travel cache read failed: %v", cacheErr)
		} else if ok {
			return g.withWeather(ctx, destination, cached), nil
		}
	}

	result, ok := g.fetchDirections(ctx, origin, destination, mode)
	if !ok {
		return g.withWeather(ctx, destination, EstimateTravel(origin, destination, mode)), nil
	}

	if g.cache != nil {
		if cacheErr := g.cache.Put(ctx, origin, destination, mode, result); cacheErr != nil {
			log.Printf("travel cache write failed: %v", cacheErr)
		}
	}

	return g.withWeather(ctx, destination, result), nil
}

// fetchDirections calls the Directions API. A false return means "use the
// fallback"; the reason is logged once per provider lifetime.
func (g *GoogleTravelProvider) fetchDirections(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelResult, bool) {
	if g.apiKey == "" {
		return ports.TravelResult{}, false
	}

	endpoint := g.baseURL + "/maps/api/directions/json"

	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", destination.String())
	q.Set("mode", string(mode))
	q.Set("key", g.apiKey)
	if mode == domain.ModeDriving {
		q.Set("departure_time", "now")
		q.Set("traffic_model", g.trafficModel)
	}
	full := endpoint + "?" + q.Encode()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, full)
	})
	if err != nil {
		g.warnDegraded(fmt.Sprintf("directions request failed: %v", err))
		return ports.TravelResult{}, false
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		g.warnDegraded(fmt.Sprintf("decode directions response: %v", err))
		return ports.TravelResult{}, false
	}

	if decoded.Status != "OK" || len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		g.warnDegraded(fmt.Sprintf("directions status=%q", decoded.Status))
		return ports.TravelResult{}, false
	}

	leg := decoded.Routes[0].Legs[0]
	duration := leg.Duration.Value
	if leg.DurationInTraffic != nil {
		duration = leg.DurationInTraffic.Value
	}

	if leg.Distance.Value > maxSaneDistanceM {
		g.warnDegraded(fmt.Sprintf("implausible distance %dm", leg.Distance.Value))
		return ports.TravelResult{}, false
	}

	return ports.TravelResult{
		DurationSeconds: duration,
		DistanceMeters:  leg.Distance.Value,
	}, true
}

func (g *GoogleTravelProvider) withWeather(ctx context.Context, destination domain.Coordinates, result ports.TravelResult) ports.TravelResult {
	if g.weather == nil || result.Weather != nil {
		return result
	}

	w, err := g.weather.Current(ctx, destination)
	if err != nil {
		// Weather is presentation data; planning proceeds without it.
		return result
	}
	result.Weather = w
	return result
}

func (g *GoogleTravelProvider) warnDegraded(reason string) {
	g.warnOnce.Do(func() {
		log.Printf("directions service degraded, using distance estimates: %s", reason)
	})
}
