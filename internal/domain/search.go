package domain

import "fmt"

// TripDuration is the outcome of a duration calculation.
// Valid is false when either clock time could not be used, in which case
// String reports DurationUnavailable instead of a value.
type TripDuration struct {
	Minutes int
	Valid   bool
}

// DurationUnavailable is shown in place of a duration that cannot be computed.
const DurationUnavailable = "N/A"

// String formats the duration as "<H>h <MM>m", e.g. "8h 45m".
func (d TripDuration) String() string {
	if !d.Valid {
		return DurationUnavailable
	}
	return fmt.Sprintf("%dh %02dm", d.Minutes/60, d.Minutes%60)
}

// Match is one row of a direct-train search.
// Forward is true when the train calls at Origin before Destination; matches
// with Forward == false are still returned by a plain direct search.
type Match struct {
	TrainCode   string
	TrainName   string
	Origin      Stop
	Destination Stop
	Duration    TripDuration
	Forward     bool
}
