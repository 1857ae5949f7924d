package ports

import (
	"context"

	"itinerary-planner-service/internal/domain"
)

// A resolved point of interest.
type ResolvedPOI struct {
	Name   string
	Coords domain.Coordinates
}

// Contract for mapping a free-text POI name to coordinates.
//
// A miss is reported through the boolean, not the error; planning must
// proceed with a default coordinate when nothing matches.
type POIResolver interface {
	Resolve(ctx context.Context, name string) (ResolvedPOI, bool, error)
}
