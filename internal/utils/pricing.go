package utils

import (
	"time"

	"tesla-rent/internal/domain"
)

// RentalCostBreakdown provides detailed cost breakdown
type RentalCostBreakdown struct {
	Hours        float64
	Distance     float64
	TimeCost     float64
	DistanceCost float64
	TotalCost    float64
}

// ElapsedHours returns the fractional hours between start and end.
// The result is negative when end is before start; callers do not clamp it.
func ElapsedHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// CalculateRentalCost prices a rental from its elapsed time and distance using
// the car rates captured in the quote.
func CalculateRentalCost(quote *domain.CloseQuote, end time.Time, distance float64) float64 {
	return CalculateRentalCostBreakdown(quote, end, distance).TotalCost
}

// CalculateRentalCostBreakdown is CalculateRentalCost with the time and
// distance components kept apart.
func CalculateRentalCostBreakdown(quote *domain.CloseQuote, end time.Time, distance float64) RentalCostBreakdown {
	hours := ElapsedHours(quote.Start, end)
	timeCost := hours * quote.HourlyRate
	distanceCost := distance * quote.DistanceRate

	return RentalCostBreakdown{
		Hours:        hours,
		Distance:     distance,
		TimeCost:     timeCost,
		DistanceCost: distanceCost,
		TotalCost:    timeCost + distanceCost,
	}
}
