package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Default location used when a POI cannot be resolved to coordinates
// (MG Road, Bengaluru). Planning proceeds with this substitute instead
// of failing.
var DefaultCoordinates = Coordinates{Lat: 12.9716, Lon: 77.5946}

// Return coordinates as "lat,lon" for external API compatibility.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lon == 0 }
