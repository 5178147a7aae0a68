// Package service contains the business logic of the rail booking system.
// Services validate inputs, enforce business rules, and orchestrate the
// reference data and the ledger. No storage details live here.
package service

import (
	"fmt"
	"iter"

	"github.com/pkordes/railbooking/internal/domain"
)

// StationDirectory answers whether a station name belongs to the network.
// Satisfied by *refdata.Network.
type StationDirectory interface {
	HasStation(name string) bool
}

// TrainSource yields every train in catalog order.
// Satisfied by *refdata.Catalog.
type TrainSource interface {
	AllTrains() iter.Seq[*domain.Train]
}

// SearchService finds trains that serve a pair of stations directly.
type SearchService struct {
	stations StationDirectory
	trains   TrainSource
}

// NewSearchService constructs a SearchService over the given reference data.
func NewSearchService(stations StationDirectory, trains TrainSource) *SearchService {
	return &SearchService{stations: stations, trains: trains}
}

// FindDirect yields one Match per train whose schedule contains both stations,
// in catalog order. Stop order is not considered: a train calling at
// destination before origin is still a match, with Forward set to false.
// Returns domain.ErrUnknownStation if either name is not in the network.
func (s *SearchService) FindDirect(origin, destination string) (iter.Seq[domain.Match], error) {
	if err := s.checkStations(origin, destination); err != nil {
		return nil, fmt.Errorf("service.SearchService.FindDirect: %w", err)
	}
	return s.matches(origin, destination, false), nil
}

// FindDirectStrict is FindDirect restricted to trains that call at origin
// before destination.
func (s *SearchService) FindDirectStrict(origin, destination string) (iter.Seq[domain.Match], error) {
	if err := s.checkStations(origin, destination); err != nil {
		return nil, fmt.Errorf("service.SearchService.FindDirectStrict: %w", err)
	}
	return s.matches(origin, destination, true), nil
}

// IsRouteServiced reports whether at least one train matches FindDirect.
// The answer does not depend on the travel date. Unknown stations are
// simply not serviced.
func (s *SearchService) IsRouteServiced(origin, destination string) bool {
	found, err := s.FindDirect(origin, destination)
	if err != nil {
		return false
	}
	for range found {
		return true
	}
	return false
}

func (s *SearchService) checkStations(origin, destination string) error {
	for _, name := range []string{origin, destination} {
		if !s.stations.HasStation(name) {
			return fmt.Errorf("%q: %w", name, domain.ErrUnknownStation)
		}
	}
	return nil
}

func (s *SearchService) matches(origin, destination string, forwardOnly bool) iter.Seq[domain.Match] {
	return func(yield func(domain.Match) bool) {
		for t := range s.trains.AllTrains() {
			m, ok := matchTrain(t, origin, destination)
			if !ok || (forwardOnly && !m.Forward) {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

// TravelsForward reports whether t calls at origin and later at destination.
func TravelsForward(t *domain.Train, origin, destination string) bool {
	_, oi, ok := t.StopAt(origin)
	if !ok {
		return false
	}
	_, di, ok := t.StopAt(destination)
	return ok && oi < di
}

func matchTrain(t *domain.Train, origin, destination string) (domain.Match, bool) {
	from, oi, ok := t.StopAt(origin)
	if !ok {
		return domain.Match{}, false
	}
	to, di, ok := t.StopAt(destination)
	if !ok {
		return domain.Match{}, false
	}
	return domain.Match{
		TrainCode:   t.Code,
		TrainName:   t.Name,
		Origin:      from,
		Destination: to,
		Duration:    CalculateDuration(from.Departure, to.Arrival),
		Forward:     oi < di,
	}, true
}
