package domain

// Weather conditions observed at a leg destination.
// Attached to legs for presentation only; planning never depends on it.
type Weather struct {
	Condition string
	TempC     float64
	WindSpeed float64
	RainMM    float64
}
