package refdata

import (
	"fmt"
	"iter"

	"github.com/pkordes/railbooking/internal/domain"
)

// Catalog holds every train, keyed by train code, in insertion order.
type Catalog struct {
	trains map[string]*domain.Train
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{trains: make(map[string]*domain.Train)}
}

// AddTrain creates a train with the default fare table.
// Returns domain.ErrDuplicateTrain if code is already registered.
func (c *Catalog) AddTrain(code, name string) error {
	if _, ok := c.trains[code]; ok {
		return fmt.Errorf("refdata.Catalog.AddTrain %q: %w", code, domain.ErrDuplicateTrain)
	}
	c.trains[code] = &domain.Train{
		Code:  code,
		Name:  name,
		Fares: domain.DefaultFares(),
	}
	c.order = append(c.order, code)
	return nil
}

// SetStop records the schedule entry for station. A new station is appended
// in call order; setting a station the train already calls at replaces its
// times and keeps its original position.
// Neither chronological order nor station existence is checked here; that is
// the seeding routine's job.
func (c *Catalog) SetStop(code, station, departure, arrival string) error {
	t, ok := c.trains[code]
	if !ok {
		return fmt.Errorf("refdata.Catalog.SetStop %q: %w", code, domain.ErrUnknownTrain)
	}
	stop := domain.Stop{Station: station, Departure: departure, Arrival: arrival}
	if _, i, found := t.StopAt(station); found {
		t.Stops[i] = stop
		return nil
	}
	t.Stops = append(t.Stops, stop)
	return nil
}

// SetFare overrides or adds one class in a train's fare table.
// Only seeding calls this; fares are treated as immutable once services run.
func (c *Catalog) SetFare(code, class string, price int) error {
	t, ok := c.trains[code]
	if !ok {
		return fmt.Errorf("refdata.Catalog.SetFare %q: %w", code, domain.ErrUnknownTrain)
	}
	if price <= 0 {
		return fmt.Errorf("refdata.Catalog.SetFare %s/%s: price must be positive: %w", code, class, domain.ErrReferenceData)
	}
	t.Fares[class] = price
	return nil
}

// Train returns the train registered under code.
// The returned value must be treated as read-only.
func (c *Catalog) Train(code string) (*domain.Train, error) {
	t, ok := c.trains[code]
	if !ok {
		return nil, fmt.Errorf("refdata.Catalog.Train %q: %w", code, domain.ErrUnknownTrain)
	}
	return t, nil
}

// AllTrains yields every train in insertion order. The sequence can be
// ranged over any number of times.
func (c *Catalog) AllTrains() iter.Seq[*domain.Train] {
	return func(yield func(*domain.Train) bool) {
		for _, code := range c.order {
			if !yield(c.trains[code]) {
				return
			}
		}
	}
}

// FareOf returns the price of class on the train registered under code.
func (c *Catalog) FareOf(code, class string) (int, error) {
	t, ok := c.trains[code]
	if !ok {
		return 0, fmt.Errorf("refdata.Catalog.FareOf %q: %w", code, domain.ErrUnknownTrain)
	}
	price, ok := t.Fares[class]
	if !ok {
		return 0, fmt.Errorf("refdata.Catalog.FareOf %s/%q: %w", code, class, domain.ErrUnknownFareClass)
	}
	return price, nil
}
