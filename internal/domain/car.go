package domain

// Car is a rentable vehicle. Rates are read at close time, so changing a
// car's rates affects rentals that are still open.
type Car struct {
	ID           int64   `json:"id"`
	Model        string  `json:"model"`
	HourlyRate   float64 `json:"hourly_rate"`
	DistanceRate float64 `json:"distance_rate"`
}
