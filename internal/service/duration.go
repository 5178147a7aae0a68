package service

import (
	"time"

	"github.com/pkordes/railbooking/internal/domain"
)

// CalculateDuration returns the time from departure to arrival, both "HH:MM"
// clock times on the same day. No midnight rollover is modelled: an arrival
// before the departure, like a value that does not parse, yields an invalid
// duration rather than an error.
func CalculateDuration(departure, arrival string) domain.TripDuration {
	dep, err := time.Parse(domain.ClockLayout, departure)
	if err != nil {
		return domain.TripDuration{}
	}
	arr, err := time.Parse(domain.ClockLayout, arrival)
	if err != nil {
		return domain.TripDuration{}
	}
	minutes := int(arr.Sub(dep) / time.Minute)
	if minutes < 0 {
		return domain.TripDuration{}
	}
	return domain.TripDuration{Minutes: minutes, Valid: true}
}
