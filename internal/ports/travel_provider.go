package ports

import (
	"context"

	"itinerary-planner-service/internal/domain"
)

// Travel duration, distance, and optional destination weather for one hop.
type TravelResult struct {
	DurationSeconds int
	DistanceMeters  int
	Weather         *domain.Weather
}

// Contract for retrieving travel context between two coordinates.
//
// Implementations are expected to degrade to a deterministic estimate when
// the live service is unavailable rather than surface the failure; callers
// treat an error as "no usable estimate at all" and substitute a small
// fixed default.
type TravelProvider interface {
	// Return travel duration and distance from origin to destination
	// for the given mode.
	GetTravelContext(ctx context.Context, origin, destination domain.Coordinates, mode domain.TravelMode) (TravelResult, error)
}
