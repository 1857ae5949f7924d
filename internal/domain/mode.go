package domain

// Travel mode for a leg or an entire trip.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeWalking   TravelMode = "walking"
	ModeBicycling TravelMode = "bicycling"
	ModeTransit   TravelMode = "transit"
)

// ParseTravelMode maps a raw mode string onto a known TravelMode,
// defaulting to driving for unknown or empty values.
func ParseTravelMode(s string) TravelMode {
	switch TravelMode(s) {
	case ModeWalking, ModeBicycling, ModeTransit, ModeDriving:
		return TravelMode(s)
	}
	return ModeDriving
}
