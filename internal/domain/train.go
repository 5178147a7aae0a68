package domain

import "maps"

// Seat classes offered on every train unless seeding overrides the fare table.
const (
	ClassEconomy  = "Economy"
	ClassBusiness = "Business"
	ClassAC       = "AC"
)

// DefaultFares returns a fresh copy of the fare table every new train starts with.
func DefaultFares() map[string]int {
	return map[string]int{
		ClassEconomy:  500,
		ClassBusiness: 1000,
		ClassAC:       1500,
	}
}

// ClockLayout is the time.Parse layout of schedule times ("HH:MM", 24-hour).
const ClockLayout = "15:04"

// Stop is one entry in a train's schedule.
// Departure and Arrival are "HH:MM" 24-hour clock times.
type Stop struct {
	Station   string `json:"station"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// Train is a scheduled service. Stops are kept in physical stop order.
type Train struct {
	Code  string         `json:"code"`
	Name  string         `json:"name"`
	Stops []Stop         `json:"stops"`
	Fares map[string]int `json:"fares"`
}

// StopAt returns the schedule entry for station with its position in the stop
// order. ok is false when the train does not call there.
func (t *Train) StopAt(station string) (stop Stop, index int, ok bool) {
	for i, s := range t.Stops {
		if s.Station == station {
			return s, i, true
		}
	}
	return Stop{}, -1, false
}

// Clone returns a deep copy so callers cannot mutate catalog state.
func (t *Train) Clone() Train {
	c := *t
	c.Stops = append([]Stop(nil), t.Stops...)
	c.Fares = maps.Clone(t.Fares)
	return c
}
