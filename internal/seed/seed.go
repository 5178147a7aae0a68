// Package seed builds the reference network and train catalog from a YAML
// description. Seeding is the only place schedule entries are checked against
// the network; any error here is fatal to startup.
package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/railbooking/internal/domain"
	"github.com/pkordes/railbooking/internal/refdata"
	"github.com/pkordes/railbooking/seeddata"
)

// Definition is the YAML document shape.
type Definition struct {
	Stations []string          `yaml:"stations"`
	Tracks   []TrackDefinition `yaml:"tracks"`
	Trains   []TrainDefinition `yaml:"trains"`
}

// TrackDefinition declares one track. Bidirectional registers the reverse
// direction with the same distance as well.
type TrackDefinition struct {
	From          string `yaml:"from"`
	To            string `yaml:"to"`
	Distance      int    `yaml:"distance"`
	Bidirectional bool   `yaml:"bidirectional"`
}

// TrainDefinition declares one train. Fares overrides individual classes of
// the default fare table; Stops are listed in physical stop order.
type TrainDefinition struct {
	Code  string         `yaml:"code"`
	Name  string         `yaml:"name"`
	Fares map[string]int `yaml:"fares"`
	Stops []domain.Stop  `yaml:"stops"`
}

// Data is the result of seeding.
type Data struct {
	Network *refdata.Network
	Catalog *refdata.Catalog
}

// LoadDefault seeds from the embedded Pakistan Railways data.
func LoadDefault() (Data, error) {
	return Load(bytes.NewReader(seeddata.Pakistan))
}

// LoadFile seeds from the YAML file at path.
func LoadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("seed.LoadFile: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a Definition from r and builds the reference data from it.
func Load(r io.Reader) (Data, error) {
	var def Definition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return Data{}, fmt.Errorf("seed.Load: decode: %w", err)
	}
	return Build(def)
}

// Build registers every station, track and train of def, in document order.
func Build(def Definition) (Data, error) {
	d := Data{Network: refdata.NewNetwork(), Catalog: refdata.NewCatalog()}

	for _, name := range def.Stations {
		if err := d.Network.AddStation(name); err != nil {
			return Data{}, fmt.Errorf("seed.Build: %w", err)
		}
	}

	for _, tr := range def.Tracks {
		if err := d.Network.AddTrack(tr.From, tr.To, tr.Distance); err != nil {
			return Data{}, fmt.Errorf("seed.Build: %w", err)
		}
		if tr.Bidirectional {
			if err := d.Network.AddTrack(tr.To, tr.From, tr.Distance); err != nil {
				return Data{}, fmt.Errorf("seed.Build: %w", err)
			}
		}
	}

	for _, td := range def.Trains {
		if err := addTrain(d, td); err != nil {
			return Data{}, fmt.Errorf("seed.Build: train %s: %w", td.Code, err)
		}
	}

	return d, nil
}

func addTrain(d Data, td TrainDefinition) error {
	if err := d.Catalog.AddTrain(td.Code, td.Name); err != nil {
		return err
	}
	for class, price := range td.Fares {
		if err := d.Catalog.SetFare(td.Code, class, price); err != nil {
			return err
		}
	}
	for _, s := range td.Stops {
		if !d.Network.HasStation(s.Station) {
			return fmt.Errorf("stop %q: %w", s.Station, domain.ErrUnknownStation)
		}
		if !isClock(s.Departure) || !isClock(s.Arrival) {
			return fmt.Errorf("stop %q: times must be HH:MM, got %q/%q: %w",
				s.Station, s.Departure, s.Arrival, domain.ErrReferenceData)
		}
		if err := d.Catalog.SetStop(td.Code, s.Station, s.Departure, s.Arrival); err != nil {
			return err
		}
	}
	return nil
}

func isClock(s string) bool {
	_, err := time.Parse(domain.ClockLayout, s)
	return err == nil
}
