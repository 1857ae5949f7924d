package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

const (
	// Candidate permutations evaluated in full (prune + retime) after
	// heuristic ranking, and the number of optimized plans kept.
	maxRankedCandidates = 3
	maxOptimizedPlans   = 2

	defaultStartHour = 9
	defaultEndHour   = 22
)

// One raw POI line of a planning request, before resolution.
type POIInput struct {
	Name          string
	Priority      int
	DwellMinutes  int
	TargetArrival *time.Time
}

type ItineraryRequest struct {
	POIs        []POIInput
	Mode        domain.TravelMode
	RoundTrip   bool
	StartCoords *domain.Coordinates
	// Zero values fall back to 09:00 / 22:00 today.
	StartTime time.Time
	EndTime   time.Time
}

// Complete planning result: the user's as-entered plan, one optimized plan,
// and optionally a second distinct alternative.
type Itinerary struct {
	StartTime       time.Time
	EndTime         time.Time
	Mode            domain.TravelMode
	RoundTrip       bool
	StartCoords     domain.Coordinates
	Warnings        []string
	UserPlan        domain.Plan
	OptimizedPlan   domain.Plan
	AlternativePlan *domain.Plan
}

// Planner composes the sequence builder, timing engine, and pruning engine
// into the itinerary pipeline. It holds no per-request state; every request
// gets its own travel memo.
type Planner struct {
	Resolver ports.POIResolver
	Provider ports.TravelProvider
}

func NewPlanner(resolver ports.POIResolver, provider ports.TravelProvider) *Planner {
	return &Planner{Resolver: resolver, Provider: provider}
}

// GenerateItinerary produces the user plan plus up to two optimized plans.
//
// The user plan keeps the entered order in full; legs arriving after the end
// of the window are flagged, never removed. Optimized candidates permute the
// flexible entries (those without a target arrival, excluding the first
// entry which stays pinned at position 0), are ranked by a cheap pairwise
// travel-time heuristic, and the top candidates are pruned to fit the
// window. An empty POI list is the one caller-visible input error.
func (p *Planner) GenerateItinerary(ctx context.Context, req ItineraryRequest) (*Itinerary, error) {
	if len(req.POIs) == 0 {
		return nil, errors.New("generate itinerary: at least one POI is required")
	}

	provider := NewTravelMemo(p.Provider)

	startCoords := domain.DefaultCoordinates
	if req.StartCoords != nil {
		startCoords = *req.StartCoords
	}

	entries, warnings := p.prepareEntries(ctx, req.POIs)

	startTime := req.StartTime
	if startTime.IsZero() {
		startTime = todayAt(defaultStartHour)
	}
	endTime := req.EndTime
	if endTime.IsZero() {
		endTime = todayAt(defaultEndHour)
	}

	// A target arrival on the first POI overrides the requested start:
	// the day begins whenever we must leave to make it.
	if first := entries[0]; first.TargetArrival != nil {
		travel := legContext(ctx, provider, startCoords, first.Coords, req.Mode)
		startTime = first.TargetArrival.
			Add(-time.Duration(travel.DurationSeconds) * time.Second).
			Add(-arriveEarlyBuffer)
	}

	// A first-POI target can push the start to or past the end of the day.
	// That degenerate window is still planned: every late arrival gets an
	// over_time flag and pruning is skipped rather than failing the request.
	window, windowErr := domain.NewWindow(startTime, endTime)
	if windowErr != nil {
		log.Printf("degenerate day window, skipping pruning: %v", windowErr)
	}

	// User plan: entered order, never pruned, over-window arrivals flagged.
	userSec, userDist, userLegs := ComputeTrip(ctx, provider, entries, req.Mode, req.RoundTrip, &startCoords, startTime)
	overTime := []string{}
	for _, leg := range userLegs {
		if leg.ArrivalTime.After(endTime) {
			overTime = append(overTime, leg.To)
		}
	}
	userPlan := domain.Plan{
		Sequence:  entries,
		Dropped:   []domain.POIEntry{},
		TotalSec:  userSec,
		DistanceM: userDist,
		Legs:      userLegs,
		OverTime:  overTime,
	}

	var optimized []domain.Plan
	if windowErr == nil {
		optimized = p.optimizedCandidates(ctx, provider, entries, req.Mode, req.RoundTrip, startCoords, window)
	}

	if len(optimized) == 0 {
		sec, dist, legs := ComputeTrip(ctx, provider, entries, req.Mode, req.RoundTrip, &startCoords, startTime)
		optimized = append(optimized, domain.Plan{
			Sequence:  entries,
			Dropped:   []domain.POIEntry{},
			TotalSec:  sec,
			DistanceM: dist,
			Legs:      legs,
		})
	}

	// Identical POI orderings make the alternative worthless; drop it.
	if len(optimized) > 1 && sequenceKey(optimized[0].Sequence) == sequenceKey(optimized[1].Sequence) {
		optimized = optimized[:1]
	}

	it := &Itinerary{
		StartTime:     startTime,
		EndTime:       endTime,
		Mode:          req.Mode,
		RoundTrip:     req.RoundTrip,
		StartCoords:   startCoords,
		Warnings:      warnings,
		UserPlan:      userPlan,
		OptimizedPlan: optimized[0],
	}
	if len(optimized) > 1 {
		alt := optimized[1]
		it.AlternativePlan = &alt
	}

	return it, nil
}

// prepareEntries resolves raw inputs into POI entries, normalizing invalid
// priority and dwell values and collecting warnings for low-confidence
// matches. Resolution failures are never fatal.
func (p *Planner) prepareEntries(ctx context.Context, inputs []POIInput) ([]domain.POIEntry, []string) {
	entries := make([]domain.POIEntry, 0, len(inputs))
	warnings := []string{}

	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		coords := domain.DefaultCoordinates
		matched := name

		resolved, found, err := p.Resolver.Resolve(ctx, name)
		switch {
		case err != nil:
			log.Printf("resolve poi failed name=%q err=%v", name, err)
			warnings = append(warnings, fmt.Sprintf("POI %q could not be resolved; using default coordinates", name))
		case !found:
			warnings = append(warnings, fmt.Sprintf("POI %q not found; using default coordinates", name))
		default:
			matched = resolved.Name
			coords = resolved.Coords
		}

		priority := in.Priority
		if priority < 1 {
			warnings = append(warnings, fmt.Sprintf("invalid priority for POI %q; defaulting to 1", name))
			priority = 1
		}

		dwell := in.DwellMinutes
		if dwell < 0 {
			warnings = append(warnings, fmt.Sprintf("invalid dwell for POI %q; defaulting to %d minutes", name, domain.DefaultDwellMinutes))
			dwell = domain.DefaultDwellMinutes
		}

		entries = append(entries, domain.POIEntry{
			Name:          matched,
			Priority:      priority,
			DwellMinutes:  dwell,
			TargetArrival: in.TargetArrival,
			Coords:        coords,
		})
	}

	return entries, warnings
}

// optimizedCandidates generates, ranks, prunes, and retimes candidate
// orderings, returning up to maxOptimizedPlans distinct plans.
func (p *Planner) optimizedCandidates(
	ctx context.Context,
	provider ports.TravelProvider,
	entries []domain.POIEntry,
	mode domain.TravelMode,
	roundTrip bool,
	startCoords domain.Coordinates,
	window domain.Window,
) []domain.Plan {
	startPOI := entries[0]

	// The first entry stays pinned at position 0. Target-arrival entries are
	// fixed in place; everything else may be permuted.
	var fixed, flexible []domain.POIEntry
	for _, e := range entries[1:] {
		if e.TargetArrival != nil {
			fixed = append(fixed, e)
		} else {
			flexible = append(flexible, e)
		}
	}

	var perms [][]int
	if len(flexible) <= maxPermutationSize {
		perms = permutations(len(flexible))
	} else {
		// Factorial growth: fall back to the identity ordering.
		identity := make([]int, len(flexible))
		for i := range identity {
			identity[i] = i
		}
		perms = [][]int{identity}
	}

	order := rankPermutations(ctx, provider, flexible, perms, mode)

	plans := make([]domain.Plan, 0, maxOptimizedPlans)
	tried := make(map[string]struct{})

	limit := maxRankedCandidates
	if limit > len(order) {
		limit = len(order)
	}

	for _, pi := range order[:limit] {
		candidate := make([]domain.POIEntry, 0, len(entries))
		candidate = append(candidate, startPOI)
		candidate = append(candidate, fixed...)
		candidate = append(candidate, applyPermutation(flexible, perms[pi])...)

		key := sequenceKey(candidate)
		if _, ok := tried[key]; ok {
			continue
		}
		tried[key] = struct{}{}

		kept, dropped := Prune(ctx, provider, candidate, window, mode, roundTrip, &startCoords)
		if !containsPOI(kept, startPOI) {
			continue
		}

		sec, dist, legs := ComputeTrip(ctx, provider, kept, mode, roundTrip, &startCoords, window.Start)

		// An untouched candidate adds nothing once a plan exists.
		if len(dropped) == 0 && sequenceKey(kept) == key && len(plans) > 0 {
			continue
		}

		if len(kept) >= 1 && sec > 0 {
			plans = append(plans, domain.Plan{
				Sequence:  kept,
				Dropped:   dropped,
				TotalSec:  sec,
				DistanceM: dist,
				Legs:      legs,
			})
		}

		if len(plans) >= maxOptimizedPlans {
			break
		}
	}

	return plans
}

// rankPermutations orders candidate permutations by the sum of their
// pairwise travel durations, ignoring dwell and time windows. Evaluations
// run concurrently; the final order is deterministic because results are
// written by permutation index and ties resolve by index.
func rankPermutations(
	ctx context.Context,
	provider ports.TravelProvider,
	flexible []domain.POIEntry,
	perms [][]int,
	mode domain.TravelMode,
) []int {
	costs := make([]int, len(perms))

	sem := make(chan struct{}, 5)
	var wg sync.WaitGroup
	for pi := range perms {
		wg.Add(1)
		go func(pi int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			total := 0
			perm := perms[pi]
			for i := 0; i < len(perm)-1; i++ {
				a := flexible[perm[i]]
				b := flexible[perm[i+1]]
				total += legContext(ctx, provider, a.Coords, b.Coords, mode).DurationSeconds
			}
			costs[pi] = total
		}(pi)
	}
	wg.Wait()

	order := make([]int, len(perms))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if costs[order[a]] != costs[order[b]] {
			return costs[order[a]] < costs[order[b]]
		}
		return order[a] < order[b]
	})

	return order
}

// sequenceKey identifies a candidate by its POI name ordering.
func sequenceKey(seq []domain.POIEntry) string {
	names := make([]string, 0, len(seq))
	for _, e := range seq {
		names = append(names, e.Name)
	}
	return strings.Join(names, "\x00")
}

func containsPOI(seq []domain.POIEntry, p domain.POIEntry) bool {
	for _, e := range seq {
		if e.Name == p.Name && e.Coords == p.Coords {
			return true
		}
	}
	return false
}

func todayAt(hour int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
}
