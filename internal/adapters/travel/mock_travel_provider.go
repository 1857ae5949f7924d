package travel

import (
	"context"
	"fmt"
	"sync"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

type MockHop struct {
	From, To domain.Coordinates
	Mode     domain.TravelMode
	Seconds  int
	Meters   int
}

// MockTravelProvider serves fixed travel results for tests. With a Default
// set it answers every unknown pair with that result; otherwise unknown
// pairs are an error. Safe for concurrent use.
type MockTravelProvider struct {
	m       map[string]ports.TravelResult
	Default *ports.TravelResult

	mu    sync.Mutex
	calls int
}

func NewMockTravelProvider(hops []MockHop) *MockTravelProvider {
	m := make(map[string]ports.TravelResult, len(hops))
	for _, h := range hops {
		key := h.From.String() + "|" + h.To.String() + "|" + string(h.Mode)
		m[key] = ports.TravelResult{DurationSeconds: h.Seconds, DistanceMeters: h.Meters}
	}
	return &MockTravelProvider{m: m}
}

// NewFixedTravelProvider answers every pair with the same result.
func NewFixedTravelProvider(seconds, meters int) *MockTravelProvider {
	return &MockTravelProvider{
		m:       map[string]ports.TravelResult{},
		Default: &ports.TravelResult{DurationSeconds: seconds, DistanceMeters: meters},
	}
}

func (p *MockTravelProvider) GetTravelContext(
	ctx context.Context,
	origin, destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	key := origin.String() + "|" + destination.String() + "|" + string(mode)
	if r, ok := p.m[key]; ok {
		return r, nil
	}
	if p.Default != nil {
		return *p.Default, nil
	}
	return ports.TravelResult{}, fmt.Errorf("missing hop %s -> %s", origin, destination)
}

// CallCount reports how many lookups reached this provider.
func (p *MockTravelProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
