package services

import (
	"context"
	"sync"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// TravelMemo caches travel results per (origin, destination, mode) for the
// lifetime of a single planning request.
//
// Search and pruning re-evaluate the same hops many times; the memo bounds
// provider cost to one lookup per distinct pair. It is safe for the
// concurrent candidate ranking. Only successful lookups are cached.
type TravelMemo struct {
	inner ports.TravelProvider

	mu sync.Mutex
	m  map[string]ports.TravelResult
}

func NewTravelMemo(inner ports.TravelProvider) *TravelMemo {
	return &TravelMemo{
		inner: inner,
		m:     make(map[string]ports.TravelResult),
	}
}

func (t *TravelMemo) GetTravelContext(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelResult, error) {
	key := origin.String() + "|" + destination.String() + "|" + string(mode)

	t.mu.Lock()
	if res, ok := t.m[key]; ok {
		t.mu.Unlock()
		return res, nil
	}
	t.mu.Unlock()

	res, err := t.inner.GetTravelContext(ctx, origin, destination, mode)
	if err != nil {
		return ports.TravelResult{}, err
	}

	t.mu.Lock()
	t.m[key] = res
	t.mu.Unlock()

	return res, nil
}
