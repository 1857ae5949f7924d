package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// GoogleGeocoder resolves free-text POI names to coordinates using the
// Google Geocoding API. A miss (or a missing API key) is reported as
// not-found, never as an error, so planning can substitute the default
// coordinate and continue.
type GoogleGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, name string) (ports.ResolvedPOI, bool, error) {
	if g.apiKey == "" {
		return ports.ResolvedPOI{}, false, nil
	}

	q := url.Values{}
	q.Set("address", name)
	q.Set("key", g.apiKey)
	endpoint := g.baseURL + "/maps/api/geocode/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.ResolvedPOI{}, false, fmt.Errorf("geocode request: %w", err)
	}

	resp, err := g.session.Do(req)
	if err != nil {
		return ports.ResolvedPOI{}, false, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ResolvedPOI{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return ports.ResolvedPOI{}, false, nil
	}

	loc := decoded.Results[0].Geometry.Location
	return ports.ResolvedPOI{
		Name:   name,
		Coords: domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng},
	}, true, nil
}
