package dto

import (
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
)

type RemainingPOIRequest struct {
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Priority      int     `json:"priority"`
	DwellMins     int     `json:"dwell_mins"`
	TargetArrival string  `json:"target_arrival,omitempty"`
}

type ReoptimizeRequest struct {
	CurrentLocation    CoordinatesDTO        `json:"current_location"`
	CurrentTimeMinutes int                   `json:"current_time_minutes"`
	RemainingPOIs      []RemainingPOIRequest `json:"remaining_pois"`
	Mode               string                `json:"mode"`
}

type ReoptimizedPOIResponse struct {
	POIEntryResponse
	TravelSec  int              `json:"travel_sec"`
	TravelDist int              `json:"travel_dist"`
	Weather    *WeatherResponse `json:"weather"`
}

type ReoptimizeResponse struct {
	Sequence         []ReoptimizedPOIResponse `json:"sequence"`
	TotalDurationSec int                      `json:"total_duration_sec"`
	TotalDistanceM   int                      `json:"total_distance_m"`
	Legs             []LegResponse            `json:"legs"`
	Timestamp        string                   `json:"timestamp"`
}

func NewReoptimizeResponse(plan *services.ReoptimizedPlan) ReoptimizeResponse {
	res := ReoptimizeResponse{
		Sequence:         make([]ReoptimizedPOIResponse, 0, len(plan.Sequence)),
		TotalDurationSec: plan.TotalSec,
		TotalDistanceM:   plan.DistanceM,
		Legs:             make([]LegResponse, 0, len(plan.Legs)),
		Timestamp:        plan.Timestamp.Format(time.RFC3339),
	}

	for _, poi := range plan.Sequence {
		entry := newPOIEntryResponses([]domain.POIEntry{poi.POIEntry})[0]
		enriched := ReoptimizedPOIResponse{
			POIEntryResponse: entry,
			TravelSec:        poi.TravelSeconds,
			TravelDist:       poi.DistanceMeters,
		}
		if poi.Weather != nil {
			enriched.Weather = &WeatherResponse{
				Condition: poi.Weather.Condition,
				TempC:     poi.Weather.TempC,
				WindSpeed: poi.Weather.WindSpeed,
				RainMM:    poi.Weather.RainMM,
			}
		}
		res.Sequence = append(res.Sequence, enriched)
	}

	for _, leg := range plan.Legs {
		res.Legs = append(res.Legs, newLegResponse(leg))
	}

	return res
}
