package ports

import (
	"context"

	"itinerary-planner-service/internal/domain"
)

// Contract for the persistent POI catalog.
type POIRepository interface {
	// Return all catalog entries ordered by id.
	ListPOIs(ctx context.Context) ([]domain.POIRecord, error)
	// Case-insensitive partial-name lookup; a miss is (zero, false, nil).
	FindByName(ctx context.Context, name string) (domain.POIRecord, bool, error)
	// Insert or refresh a catalog entry keyed by name.
	Upsert(ctx context.Context, rec domain.POIRecord) error
}
