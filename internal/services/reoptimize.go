package services

import (
	"context"
	"time"

	"itinerary-planner-service/internal/domain"
)

// A remaining POI annotated with fresh travel context from the current
// location, produced during reoptimization.
type EnrichedPOI struct {
	domain.POIEntry
	TravelSeconds  int
	DistanceMeters int
	Weather        *domain.Weather
}

type ReoptimizedPlan struct {
	Sequence  []EnrichedPOI
	TotalSec  int
	DistanceM int
	Legs      []domain.Leg
	Timestamp time.Time
}

// Reoptimize re-plans the remaining POIs from a live snapshot of the trip.
//
// Fresh travel context is fetched per remaining POI from the current
// location and attached to cloned entries, then the normal build + timing
// pipeline runs anchored at the current location and time. The caller is
// assumed to have already trimmed the list to what is achievable; no
// pruning or alternative search happens here.
func (p *Planner) Reoptimize(
	ctx context.Context,
	currentLocation domain.Coordinates,
	currentTimeMinutes int,
	remaining []domain.POIEntry,
	mode domain.TravelMode,
) (*ReoptimizedPlan, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	currentTime := midnight.Add(time.Duration(currentTimeMinutes) * time.Minute)

	provider := NewTravelMemo(p.Provider)

	enriched := make(map[string]EnrichedPOI, len(remaining))
	clones := make([]domain.POIEntry, 0, len(remaining))
	for _, poi := range remaining {
		clone := poi.Clone()
		travel := legContext(ctx, provider, currentLocation, clone.Coords, mode)
		enriched[clone.Name+clone.Coords.String()] = EnrichedPOI{
			POIEntry:       clone,
			TravelSeconds:  travel.DurationSeconds,
			DistanceMeters: travel.DistanceMeters,
			Weather:        travel.Weather,
		}
		clones = append(clones, clone)
	}

	ordered := BuildSequence(ctx, provider, clones, mode)
	totalSec, totalDist, legs := ComputeTrip(ctx, provider, ordered, mode, false, &currentLocation, currentTime)

	sequence := make([]EnrichedPOI, 0, len(ordered))
	for _, poi := range ordered {
		if e, ok := enriched[poi.Name+poi.Coords.String()]; ok {
			sequence = append(sequence, e)
			continue
		}
		sequence = append(sequence, EnrichedPOI{POIEntry: poi})
	}

	return &ReoptimizedPlan{
		Sequence:  sequence,
		TotalSec:  totalSec,
		DistanceM: totalDist,
		Legs:      legs,
		Timestamp: currentTime,
	}, nil
}
