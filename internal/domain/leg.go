package domain

import "time"

// Represents one travel hop between two points of the itinerary.
//
// A Leg is derived data produced by the timing engine and never mutated
// after creation. LeaveTime is arrival plus dwell; it is nil for the final
// return leg of a round trip, which has no dwell.
type Leg struct {
	From          string
	To            string
	FromCoords    Coordinates
	ToCoords      Coordinates
	DepartureTime time.Time
	ArrivalTime   time.Time
	LeaveTime     *time.Time
	TravelSeconds int
	DistanceM     int
	Weather       *Weather
	Mode          TravelMode
	DwellMinutes  int
}
