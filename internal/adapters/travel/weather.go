package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"itinerary-planner-service/internal/domain"
)

// OpenWeatherClient fetches current conditions for a coordinate.
// Callers treat every failure as "no weather available".
type OpenWeatherClient struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewOpenWeatherClient(apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
	}
}

type openWeatherResponse struct {
	Cod     int `json:"cod"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

func (c *OpenWeatherClient) Current(ctx context.Context, coords domain.Coordinates) (*domain.Weather, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", coords.Lat))
	q.Set("lon", fmt.Sprintf("%.4f", coords.Lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	var decoded openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	if decoded.Cod != http.StatusOK || len(decoded.Weather) == 0 {
		return nil, fmt.Errorf("weather status %d", decoded.Cod)
	}

	return &domain.Weather{
		Condition: decoded.Weather[0].Main,
		TempC:     decoded.Main.Temp,
		WindSpeed: decoded.Wind.Speed,
		RainMM:    decoded.Rain.OneHour,
	}, nil
}
