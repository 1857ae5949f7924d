package ports

import (
	"context"

	"itinerary-planner-service/internal/domain"
)

// Persistent cache of travel results keyed by (origin, destination, mode).
//
// Weather is intentionally not cached; it is time-sensitive and re-fetched
// per request when enabled.
type TravelCache interface {
	Get(ctx context.Context, origin, destination domain.Coordinates, mode domain.TravelMode) (TravelResult, bool, error)
	Put(ctx context.Context, origin, destination domain.Coordinates, mode domain.TravelMode, result TravelResult) error
}
