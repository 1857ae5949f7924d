package dto

import (
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
)

type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type POIEntryRequest struct {
	Name          string `json:"name"`
	Priority      int    `json:"priority"`
	DwellMins     int    `json:"dwell_mins"`
	TargetArrival string `json:"target_arrival,omitempty"` // "HH:MM" or timestamp
}

type GenerateItineraryRequest struct {
	POIs        []POIEntryRequest `json:"pois"`
	Mode        string            `json:"mode"`
	RoundTrip   bool              `json:"round_trip"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	StartCoords *CoordinatesDTO   `json:"start_coords"`
}

type POIEntryResponse struct {
	Name          string  `json:"name"`
	Priority      int     `json:"priority"`
	DwellMins     int     `json:"dwell_mins"`
	TargetArrival *string `json:"target_arrival"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
}

type WeatherResponse struct {
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp_c"`
	WindSpeed float64 `json:"wind_speed"`
	RainMM    float64 `json:"rain"`
}

type LegResponse struct {
	From            string           `json:"from"`
	To              string           `json:"to"`
	FromLat         float64          `json:"from_lat"`
	FromLon         float64          `json:"from_lon"`
	ToLat           float64          `json:"to_lat"`
	ToLon           float64          `json:"to_lon"`
	DepartureTime   string           `json:"departure_time"`
	DepartureTimeHM string           `json:"departure_time_hm"`
	ArrivalTime     string           `json:"arrival_time"`
	ArrivalTimeHM   string           `json:"arrival_time_hm"`
	LeaveTime       *string          `json:"leave_time"`
	LeaveTimeHM     *string          `json:"leave_time_hm"`
	DurationSec     int              `json:"duration_sec"`
	DistanceM       int              `json:"distance_m"`
	Weather         *WeatherResponse `json:"weather"`
	Mode            string           `json:"mode"`
	DwellMins       int              `json:"dwell_mins"`
}

type PlanResponse struct {
	Sequence       []POIEntryResponse `json:"sequence"`
	Dropped        []POIEntryResponse `json:"dropped"`
	TotalSeconds   int                `json:"total_seconds"`
	TotalDistanceM int                `json:"total_distance_m"`
	Legs           []LegResponse      `json:"legs"`
	OverTime       []string           `json:"over_time,omitempty"`
}

type ItineraryResponse struct {
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	Mode            string          `json:"mode"`
	RoundTrip       bool            `json:"round_trip"`
	StartCoords     CoordinatesDTO  `json:"start_coords"`
	Warnings        []string        `json:"warnings"`
	UserPlan        PlanResponse    `json:"user_plan"`
	OptimizedPlan   PlanResponse    `json:"optimized_plan"`
	AlternativePlan *PlanResponse   `json:"alternative_optimized_plan"`
}

// NewItineraryResponse maps a planning result onto the wire shape.
func NewItineraryResponse(it *services.Itinerary) ItineraryResponse {
	res := ItineraryResponse{
		StartTime:     formatDateTime(it.StartTime),
		EndTime:       formatDateTime(it.EndTime),
		Mode:          string(it.Mode),
		RoundTrip:     it.RoundTrip,
		StartCoords:   CoordinatesDTO{Lat: it.StartCoords.Lat, Lon: it.StartCoords.Lon},
		Warnings:      it.Warnings,
		UserPlan:      newPlanResponse(it.UserPlan),
		OptimizedPlan: newPlanResponse(it.OptimizedPlan),
	}
	if it.AlternativePlan != nil {
		alt := newPlanResponse(*it.AlternativePlan)
		res.AlternativePlan = &alt
	}
	return res
}

func newPlanResponse(p domain.Plan) PlanResponse {
	res := PlanResponse{
		Sequence:       newPOIEntryResponses(p.Sequence),
		Dropped:        newPOIEntryResponses(p.Dropped),
		TotalSeconds:   p.TotalSec,
		TotalDistanceM: p.DistanceM,
		Legs:           make([]LegResponse, 0, len(p.Legs)),
		OverTime:       p.OverTime,
	}
	for _, leg := range p.Legs {
		res.Legs = append(res.Legs, newLegResponse(leg))
	}
	return res
}

func newPOIEntryResponses(entries []domain.POIEntry) []POIEntryResponse {
	out := make([]POIEntryResponse, 0, len(entries))
	for _, e := range entries {
		var target *string
		if e.TargetArrival != nil {
			s := formatDateTime(*e.TargetArrival)
			target = &s
		}
		out = append(out, POIEntryResponse{
			Name:          e.Name,
			Priority:      e.Priority,
			DwellMins:     e.DwellMinutes,
			TargetArrival: target,
			Lat:           e.Coords.Lat,
			Lon:           e.Coords.Lon,
		})
	}
	return out
}

func newLegResponse(leg domain.Leg) LegResponse {
	res := LegResponse{
		From:            leg.From,
		To:              leg.To,
		FromLat:         leg.FromCoords.Lat,
		FromLon:         leg.FromCoords.Lon,
		ToLat:           leg.ToCoords.Lat,
		ToLon:           leg.ToCoords.Lon,
		DepartureTime:   formatDateTime(leg.DepartureTime),
		DepartureTimeHM: formatHM(leg.DepartureTime),
		ArrivalTime:     formatDateTime(leg.ArrivalTime),
		ArrivalTimeHM:   formatHM(leg.ArrivalTime),
		DurationSec:     leg.TravelSeconds,
		DistanceM:       leg.DistanceM,
		Mode:            string(leg.Mode),
		DwellMins:       leg.DwellMinutes,
	}
	if leg.LeaveTime != nil {
		full := formatDateTime(*leg.LeaveTime)
		hm := formatHM(*leg.LeaveTime)
		res.LeaveTime = &full
		res.LeaveTimeHM = &hm
	}
	if leg.Weather != nil {
		res.Weather = &WeatherResponse{
			Condition: leg.Weather.Condition,
			TempC:     leg.Weather.TempC,
			WindSpeed: leg.Weather.WindSpeed,
			RainMM:    leg.Weather.RainMM,
		}
	}
	return res
}
