package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"itinerary-planner-service/internal/domain"
)

// IPLocator derives an approximate current location from the caller's IP.
// Used when a planning request carries no start coordinates; any failure
// yields the default coordinate.
type IPLocator struct {
	session *http.Client
	baseURL string
}

func NewIPLocator() *IPLocator {
	return &IPLocator{
		session: &http.Client{Timeout: 3 * time.Second},
		baseURL: "https://ipinfo.io",
	}
}

func (l *IPLocator) Current(ctx context.Context) domain.Coordinates {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/json", nil)
	if err != nil {
		return domain.DefaultCoordinates
	}

	resp, err := l.session.Do(req)
	if err != nil {
		return domain.DefaultCoordinates
	}
	defer resp.Body.Close()

	var decoded struct {
		Loc string `json:"loc"` // "lat,lon"
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.DefaultCoordinates
	}

	parts := strings.SplitN(decoded.Loc, ",", 2)
	if len(parts) != 2 {
		return domain.DefaultCoordinates
	}

	lat, latErr := strconv.ParseFloat(parts[0], 64)
	lon, lonErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || lonErr != nil {
		return domain.DefaultCoordinates
	}

	return domain.Coordinates{Lat: lat, Lon: lon}
}
