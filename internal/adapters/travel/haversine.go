package travel

import (
	"math"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

const earthRadiusM = 6371000

// Average speeds (m/s) used for pure-geometry duration estimates.
var modeSpeeds = map[domain.TravelMode]float64{
	domain.ModeWalking:   1.4,  // ~5 km/h
	domain.ModeBicycling: 4.16, // ~15 km/h
	domain.ModeTransit:   8.33, // ~30 km/h
	domain.ModeDriving:   12.5, // ~45 km/h
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(origin, destination domain.Coordinates) float64 {
	dlat := radians(destination.Lat - origin.Lat)
	dlon := radians(destination.Lon - origin.Lon)

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(radians(origin.Lat))*math.Cos(radians(destination.Lat))*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// EstimateTravel computes a deterministic distance-based travel estimate:
// great-circle distance divided by the mode's average speed. This is the
// fallback when the live routing service is unavailable; it never fails.
func EstimateTravel(origin, destination domain.Coordinates, mode domain.TravelMode) ports.TravelResult {
	distance := Haversine(origin, destination)

	speed, ok := modeSpeeds[mode]
	if !ok {
		speed = modeSpeeds[domain.ModeDriving]
	}

	return ports.TravelResult{
		DurationSeconds: int(distance / speed),
		DistanceMeters:  int(distance),
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
