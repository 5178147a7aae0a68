// Package refdata holds the write-once reference data of the rail system:
// the station/track network and the train catalog.
//
// Both types are built by the seeding routine and then shared read-only with
// the services. They are not safe for concurrent mutation; finish building
// before handing them to other goroutines.
package refdata

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pkordes/railbooking/internal/domain"
)

// Network is the set of stations and the directed tracks between them.
type Network struct {
	stations map[string]*domain.Station
	order    []string
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{stations: make(map[string]*domain.Station)}
}

// AddStation registers a new station.
// Returns domain.ErrDuplicateStation if name is already registered.
func (n *Network) AddStation(name string) error {
	if _, ok := n.stations[name]; ok {
		return fmt.Errorf("refdata.Network.AddStation %q: %w", name, domain.ErrDuplicateStation)
	}
	n.stations[name] = &domain.Station{Name: name}
	n.order = append(n.order, name)
	return nil
}

// AddTrack registers one directed track on the from station.
// A bidirectional link needs two calls with the arguments reversed.
func (n *Network) AddTrack(from, to string, distance int) error {
	if distance < 0 {
		return fmt.Errorf("refdata.Network.AddTrack %s->%s: %w", from, to, domain.ErrNegativeDistance)
	}
	src, ok := n.stations[from]
	if !ok {
		return fmt.Errorf("refdata.Network.AddTrack %q: %w", from, domain.ErrUnknownStation)
	}
	if _, ok := n.stations[to]; !ok {
		return fmt.Errorf("refdata.Network.AddTrack %q: %w", to, domain.ErrUnknownStation)
	}
	src.Tracks = append(src.Tracks, domain.Track{From: from, To: to, Distance: distance})
	return nil
}

// Station returns a copy of the named station.
// Returns domain.ErrUnknownStation if it is not registered.
func (n *Network) Station(name string) (domain.Station, error) {
	s, ok := n.stations[name]
	if !ok {
		return domain.Station{}, fmt.Errorf("refdata.Network.Station %q: %w", name, domain.ErrUnknownStation)
	}
	return copyStation(s), nil
}

// HasStation reports whether name is registered.
func (n *Network) HasStation(name string) bool {
	_, ok := n.stations[name]
	return ok
}

// Stations yields every station in registration order.
func (n *Network) Stations() iter.Seq[domain.Station] {
	return func(yield func(domain.Station) bool) {
		for _, name := range n.order {
			if !yield(copyStation(n.stations[name])) {
				return
			}
		}
	}
}

func copyStation(s *domain.Station) domain.Station {
	return domain.Station{Name: s.Name, Tracks: slices.Clone(s.Tracks)}
}
