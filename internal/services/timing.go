package services

import (
	"context"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

const (
	// Unconditional "arrive early" margin applied ahead of a target arrival.
	arriveEarlyBuffer = 5 * time.Minute

	// Substituted when the provider cannot produce any usable estimate.
	// Small values keep the planner moving instead of stalling a request.
	fallbackLegSeconds = 60
	fallbackLegMeters  = 1000

	startLabel  = "Start Point"
	returnLabel = "Return to Start"

	// Label used when the trip starts from the substitute default
	// coordinate rather than a caller-provided location.
	defaultStartLabel = "MG Road, Bengaluru"
)

// legContext fetches travel context for one hop, absorbing provider failures
// into a fixed small estimate. Timing must never fail on a provider error;
// all external calls are read-only lookups.
func legContext(ctx context.Context, provider ports.TravelProvider, origin, destination domain.Coordinates, mode domain.TravelMode) ports.TravelResult {
	res, err := provider.GetTravelContext(ctx, origin, destination, mode)
	if err != nil {
		return ports.TravelResult{DurationSeconds: fallbackLegSeconds, DistanceMeters: fallbackLegMeters}
	}
	if res.DurationSeconds <= 0 {
		res.DurationSeconds = fallbackLegSeconds
	}
	if res.DistanceMeters <= 0 {
		res.DistanceMeters = fallbackLegMeters
	}
	return res
}

// ComputeTrip computes exact wall-clock timing for an ordered POI sequence.
//
// For each hop it derives departure, arrival, and leave times (arrival plus
// dwell). A POI with a target arrival is approached to arrive
// arriveEarlyBuffer early; when that would require departing before the
// accumulated current time, departure is clamped and the late arrival is
// kept, not treated as an error. With roundTrip set and a start location
// present, one final leg back to the start is appended with no dwell and no
// leave time.
//
// Total seconds is the sum of each leg's travel plus dwell; the return leg
// contributes travel only. Time only advances forward through the sequence.
func ComputeTrip(
	ctx context.Context,
	provider ports.TravelProvider,
	seq []domain.POIEntry,
	mode domain.TravelMode,
	roundTrip bool,
	startCoords *domain.Coordinates,
	startTime time.Time,
) (totalSeconds int, totalDistanceM int, legs []domain.Leg) {
	if len(seq) == 0 {
		return 0, 0, []domain.Leg{}
	}

	legs = make([]domain.Leg, 0, len(seq)+1)
	currentTime := startTime

	// Start -> first POI. Without a start location the first leg is a
	// zero-cost placeholder anchored at the default coordinate.
	first := seq[0]
	fromCoords := domain.DefaultCoordinates
	var travel ports.TravelResult
	if startCoords != nil {
		fromCoords = *startCoords
		travel = legContext(ctx, provider, *startCoords, first.Coords, mode)
	}

	fromLabel := startLabel
	if fromCoords == domain.DefaultCoordinates {
		fromLabel = defaultStartLabel
	}

	departure, arrival := scheduleArrival(currentTime, first.TargetArrival, travel.DurationSeconds)
	dwell := first.NormalizedDwell()
	leave := arrival.Add(time.Duration(dwell) * time.Minute)

	legs = append(legs, domain.Leg{
		From:          fromLabel,
		To:            first.Name,
		FromCoords:    fromCoords,
		ToCoords:      first.Coords,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		LeaveTime:     &leave,
		TravelSeconds: travel.DurationSeconds,
		DistanceM:     travel.DistanceMeters,
		Weather:       travel.Weather,
		Mode:          mode,
		DwellMinutes:  dwell,
	})

	totalSeconds += travel.DurationSeconds + dwell*60
	totalDistanceM += travel.DistanceMeters
	currentTime = leave

	// Between consecutive POIs.
	for i := 0; i < len(seq)-1; i++ {
		a, b := seq[i], seq[i+1]

		travel := legContext(ctx, provider, a.Coords, b.Coords, mode)
		departure, arrival := scheduleArrival(currentTime, b.TargetArrival, travel.DurationSeconds)
		dwell := b.NormalizedDwell()
		leave := arrival.Add(time.Duration(dwell) * time.Minute)

		legs = append(legs, domain.Leg{
			From:          a.Name,
			To:            b.Name,
			FromCoords:    a.Coords,
			ToCoords:      b.Coords,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			LeaveTime:     &leave,
			TravelSeconds: travel.DurationSeconds,
			DistanceM:     travel.DistanceMeters,
			Weather:       travel.Weather,
			Mode:          mode,
			DwellMinutes:  dwell,
		})

		totalSeconds += travel.DurationSeconds + dwell*60
		totalDistanceM += travel.DistanceMeters
		currentTime = leave
	}

	// Last POI -> back to start. No dwell, no target-arrival adjustment.
	if roundTrip && startCoords != nil {
		last := seq[len(seq)-1]
		travel := legContext(ctx, provider, last.Coords, *startCoords, mode)

		departure := currentTime
		arrival := departure.Add(time.Duration(travel.DurationSeconds) * time.Second)

		legs = append(legs, domain.Leg{
			From:          last.Name,
			To:            returnLabel,
			FromCoords:    last.Coords,
			ToCoords:      *startCoords,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			LeaveTime:     nil,
			TravelSeconds: travel.DurationSeconds,
			DistanceM:     travel.DistanceMeters,
			Weather:       travel.Weather,
			Mode:          mode,
			DwellMinutes:  0,
		})

		totalSeconds += travel.DurationSeconds
		totalDistanceM += travel.DistanceMeters
	}

	return totalSeconds, totalDistanceM, legs
}

// scheduleArrival derives departure and arrival for one hop.
//
// With no target the hop departs immediately. With a target, the ideal
// arrival is the target minus the early buffer; if the current time still
// allows departing late enough to hit it exactly, the departure waits,
// otherwise the hop departs now and arrives late.
func scheduleArrival(currentTime time.Time, target *time.Time, travelSeconds int) (departure, arrival time.Time) {
	travelDur := time.Duration(travelSeconds) * time.Second

	if target == nil {
		return currentTime, currentTime.Add(travelDur)
	}

	idealArrival := target.Add(-arriveEarlyBuffer)
	idealDeparture := idealArrival.Add(-travelDur)
	if currentTime.Before(idealDeparture) {
		return idealDeparture, idealArrival
	}
	return currentTime, currentTime.Add(travelDur)
}
