package domain

// Represents one fully timed itinerary candidate.
//
// A Plan is the output of the timing engine plus (for optimized plans) the
// pruning engine. It is immutable planning data: every search or pruning
// trial produces a fresh, disposable Plan rather than mutating an earlier
// one. len(Legs) == len(Sequence), plus one return leg for round trips.
type Plan struct {
	Sequence  []POIEntry
	Dropped   []POIEntry
	TotalSec  int
	DistanceM int
	Legs      []Leg
	// Names of POIs whose arrival exceeded the end of the window.
	// Populated on the user plan only; optimized plans are pruned to fit.
	OverTime []string
}
