package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
)

var (
	ErrUnknownStop   = errors.New("unknown stop")
	ErrUnknownBus    = errors.New("unknown bus")
	ErrDuplicateStop = errors.New("duplicate stop")
	ErrDuplicateBus  = errors.New("duplicate bus")
	ErrEmptyRoute    = errors.New("bus has no stops")
)

type stopPair struct {
	from, to *Stop
}

type Catalogue struct {
	stops       []*Stop
	stopsByName map[string]*Stop

	buses       []*Bus
	busesByName map[string]*Bus
	busesByStop map[*Stop]map[string]struct{}

	distances     map[stopPair]int
	distanceOrder []stopPair
}

func New() *Catalogue {
	return &Catalogue{
		stopsByName: make(map[string]*Stop),
		busesByName: make(map[string]*Bus),
		busesByStop: make(map[*Stop]map[string]struct{}),
		distances:   make(map[stopPair]int),
	}
}

// AddStop registers a stop. Names are unique.
func (c *Catalogue) AddStop(name string, coords geo.Coordinates) (*Stop, error) {
	if _, ok := c.stopsByName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}
	s := &Stop{Name: name, Coordinates: coords}
	c.stops = append(c.stops, s)
	c.stopsByName[name] = s
	return s, nil
}

// SetDistance records the road distance from one stop to another. A later
// call for the same ordered pair replaces the earlier value.
func (c *Catalogue) SetDistance(from, to string, meters int) error {
	a, ok := c.stopsByName[from]
	if !ok {
		return fmt.Errorf("distance from %q: %w", from, ErrUnknownStop)
	}
	b, ok := c.stopsByName[to]
	if !ok {
		return fmt.Errorf("distance to %q: %w", to, ErrUnknownStop)
	}
	if meters < 0 {
		return fmt.Errorf("distance %q -> %q: negative value %d", from, to, meters)
	}
	p := stopPair{a, b}
	if _, seen := c.distances[p]; !seen {
		c.distanceOrder = append(c.distanceOrder, p)
	}
	c.distances[p] = meters
	return nil
}

// Distance returns the road distance from a to b, falling back to the
// distance measured in the opposite direction. ok is false when neither
// direction is known.
func (c *Catalogue) Distance(from, to *Stop) (meters int, ok bool) {
	if d, ok := c.distances[stopPair{from, to}]; ok {
		return d, true
	}
	if d, ok := c.distances[stopPair{to, from}]; ok {
		return d, true
	}
	return 0, false
}

// Distances returns every recorded distance in the order it was first set.
func (c *Catalogue) Distances() []Distance {
	out := make([]Distance, 0, len(c.distanceOrder))
	for _, p := range c.distanceOrder {
		out = append(out, Distance{From: p.from, To: p.to, Meters: c.distances[p]})
	}
	return out
}

// AddBus registers a bus over already known stops.
func (c *Catalogue) AddBus(name string, stopNames []string, isRoundtrip bool) (*Bus, error) {
	if _, ok := c.busesByName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateBus, name)
	}
	if len(stopNames) == 0 {
		return nil, fmt.Errorf("bus %q: %w", name, ErrEmptyRoute)
	}
	stops := make([]*Stop, 0, len(stopNames))
	for _, sn := range stopNames {
		s, ok := c.stopsByName[sn]
		if !ok {
			return nil, fmt.Errorf("bus %q: stop %q: %w", name, sn, ErrUnknownStop)
		}
		stops = append(stops, s)
	}

	bus := &Bus{Name: name, Stops: stops, IsRoundtrip: isRoundtrip}
	c.buses = append(c.buses, bus)
	c.busesByName[name] = bus
	for _, s := range stops {
		set := c.busesByStop[s]
		if set == nil {
			set = make(map[string]struct{})
			c.busesByStop[s] = set
		}
		set[name] = struct{}{}
	}
	return bus, nil
}

func (c *Catalogue) FindStop(name string) (*Stop, bool) {
	s, ok := c.stopsByName[name]
	return s, ok
}

func (c *Catalogue) FindBus(name string) (*Bus, bool) {
	b, ok := c.busesByName[name]
	return b, ok
}

// BusesByStop returns the names of the buses through a stop, sorted. A known
// stop without buses yields an empty, non-nil slice.
func (c *Catalogue) BusesByStop(name string) ([]string, error) {
	s, ok := c.stopsByName[name]
	if !ok {
		return nil, fmt.Errorf("stop %q: %w", name, ErrUnknownStop)
	}
	names := make([]string, 0, len(c.busesByStop[s]))
	for n := range c.busesByStop[s] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// HasBuses reports whether any bus stops at s.
func (c *Catalogue) HasBuses(s *Stop) bool {
	return len(c.busesByStop[s]) > 0
}

// Stops returns the stops in insertion order.
func (c *Catalogue) Stops() []*Stop {
	return append([]*Stop(nil), c.stops...)
}

// Buses returns the buses in insertion order.
func (c *Catalogue) Buses() []*Bus {
	return append([]*Bus(nil), c.buses...)
}

func (c *Catalogue) SortedStops() []*Stop {
	out := c.Stops()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Catalogue) SortedBuses() []*Bus {
	out := c.Buses()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Catalogue) Stats() Stats {
	return Stats{Stops: len(c.stops), Buses: len(c.buses), Distances: len(c.distances)}
}
