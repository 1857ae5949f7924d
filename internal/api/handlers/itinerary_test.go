package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"itinerary-planner-service/internal/adapters/travel"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
)

type staticResolver struct{}

func (staticResolver) Resolve(ctx context.Context, name string) (ports.ResolvedPOI, bool, error) {
	return ports.ResolvedPOI{Name: name, Coords: domain.Coordinates{Lat: 12.95, Lon: 77.58}}, true, nil
}

func testHandler() *ItineraryHandler {
	return &ItineraryHandler{
		Planner: services.NewPlanner(staticResolver{}, travel.NewFixedTravelProvider(600, 5000)),
	}
}

func TestGenerateReturnsItinerary(t *testing.T) {
	body := `{
		"pois": [
			{"name": "Palace", "priority": 2, "dwell_mins": 60},
			{"name": "Garden", "priority": 2, "dwell_mins": 30}
		],
		"mode": "driving",
		"start_time": "09:00",
		"end_time": "21:00",
		"start_coords": {"lat": 12.9716, "lon": 77.5946}
	}`

	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ItineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.UserPlan.Sequence) != 2 {
		t.Fatalf("user plan has %d entries, want 2", len(res.UserPlan.Sequence))
	}
	if res.UserPlan.Sequence[0].Name != "Palace" {
		t.Fatalf("first entry = %q, want Palace", res.UserPlan.Sequence[0].Name)
	}
	if len(res.OptimizedPlan.Sequence) == 0 {
		t.Fatal("optimized plan missing")
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty pois", body: `{"pois": [], "mode": "driving"}`},
		{name: "unknown field", body: `{"pois": [{"name": "A"}], "surprise": true}`},
		{name: "bad time", body: `{"pois": [{"name": "A"}], "start_time": "tea time"}`},
		{name: "nameless poi", body: `{"pois": [{"name": "  "}]}`},
		{name: "trailing object", body: `{"pois": [{"name": "A"}]}{}`},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(c.body))
		rec := httptest.NewRecorder()

		testHandler().Generate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", c.name, rec.Code)
		}
	}
}

func TestGenerateRejectsWrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/itineraries", nil)
	rec := httptest.NewRecorder()

	testHandler().Generate(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestReoptimizeReturnsPlan(t *testing.T) {
	body := `{
		"current_location": {"lat": 12.9716, "lon": 77.5946},
		"current_time_minutes": 840,
		"remaining_pois": [
			{"name": "Garden", "lat": 12.9507, "lon": 77.5848, "priority": 2, "dwell_mins": 60},
			{"name": "Palace", "lat": 12.9987, "lon": 77.5920, "priority": 2, "dwell_mins": 60}
		],
		"mode": "driving"
	}`

	req := httptest.NewRequest(http.MethodPost, "/reoptimize", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().Reoptimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ReoptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Sequence) != 2 {
		t.Fatalf("sequence has %d entries, want 2", len(res.Sequence))
	}
	if res.TotalDurationSec == 0 {
		t.Fatal("total duration missing")
	}
}

func TestReoptimizeValidatesClock(t *testing.T) {
	body := `{
		"current_location": {"lat": 1, "lon": 1},
		"current_time_minutes": 2000,
		"remaining_pois": [{"name": "Garden", "lat": 1, "lon": 1}],
		"mode": "driving"
	}`

	req := httptest.NewRequest(http.MethodPost, "/reoptimize", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().Reoptimize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
