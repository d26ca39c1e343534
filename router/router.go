package router

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
)

// ErrNoRoute is returned when either stop is unknown or no bus connects them.
var ErrNoRoute = errors.New("no route")

// Settings of the routing model.
type Settings struct {
	// BusWaitTime is the wait at any stop before boarding, in minutes.
	BusWaitTime float64
	// BusVelocity is the speed of every bus, in km/h.
	BusVelocity float64
}

func DefaultSettings() Settings {
	return Settings{BusWaitTime: 6, BusVelocity: 40}
}

func (s Settings) Validate() error {
	var result *multierror.Error
	if s.BusWaitTime < 1 || s.BusWaitTime > 1000 {
		result = multierror.Append(result, fmt.Errorf("bus_wait_time %g out of range [1, 1000]", s.BusWaitTime))
	}
	if s.BusVelocity < 1 || s.BusVelocity > 1000 {
		result = multierror.Append(result, fmt.Errorf("bus_velocity %g out of range [1, 1000]", s.BusVelocity))
	}
	return result.ErrorOrNil()
}

type ItemKind uint8

const (
	ItemWait ItemKind = iota + 1
	ItemBus
)

func (k ItemKind) String() string {
	switch k {
	case ItemWait:
		return "Wait"
	case ItemBus:
		return "Bus"
	default:
		return "Unknown"
	}
}

// Item is one leg of a route. Wait legs set StopName; bus legs set Bus and
// SpanCount, the number of stops ridden.
type Item struct {
	Kind      ItemKind
	StopName  string
	Bus       string
	SpanCount int
	// Time is in minutes.
	Time float64
}

type Route struct {
	TotalTime float64
	Items     []Item
}

// TransportRouter holds the routing graph of one catalogue. It is immutable
// after New and safe for concurrent use.
type TransportRouter struct {
	settings Settings
	graph    *Graph
	items    []Item
	vertex   map[string]VertexID
}

func New(cat *catalogue.Catalogue, settings Settings) *TransportRouter {
	stops := cat.Stops()
	r := &TransportRouter{
		settings: settings,
		graph:    NewGraph(2 * len(stops)),
		vertex:   make(map[string]VertexID, len(stops)),
	}

	for i, s := range stops {
		arrive := VertexID(2 * i)
		r.vertex[s.Name] = arrive
		r.addEdge(Edge{From: arrive, To: arrive + 1, Weight: settings.BusWaitTime},
			Item{Kind: ItemWait, StopName: s.Name, Time: settings.BusWaitTime})
	}

	metersPerMinute := settings.BusVelocity * 1000 / 60
	for _, bus := range cat.Buses() {
		for _, run := range directions(bus) {
			for i := 0; i < len(run); i++ {
				meters := 0.0
				for j := i + 1; j < len(run); j++ {
					meters += segment(cat, run[j-1], run[j])
					minutes := meters / metersPerMinute
					r.addEdge(Edge{
						From:   r.vertex[run[i].Name] + 1,
						To:     r.vertex[run[j].Name],
						Weight: minutes,
					}, Item{Kind: ItemBus, Bus: bus.Name, SpanCount: j - i, Time: minutes})
				}
			}
		}
	}
	return r
}

func (r *TransportRouter) addEdge(e Edge, it Item) {
	r.graph.AddEdge(e)
	r.items = append(r.items, it)
}

// directions returns the stop sequences a bus travels without turning: the
// loop for a roundtrip bus, both halves otherwise.
func directions(bus *catalogue.Bus) [][]*catalogue.Stop {
	if bus.IsRoundtrip {
		return [][]*catalogue.Stop{bus.Stops}
	}
	back := make([]*catalogue.Stop, len(bus.Stops))
	for i, s := range bus.Stops {
		back[len(bus.Stops)-1-i] = s
	}
	return [][]*catalogue.Stop{bus.Stops, back}
}

// segment is the road distance between neighbouring stops, or the
// great-circle distance when none was measured.
func segment(cat *catalogue.Catalogue, from, to *catalogue.Stop) float64 {
	if d, ok := cat.Distance(from, to); ok {
		return float64(d)
	}
	return geo.Distance(from.Coordinates, to.Coordinates)
}

func (r *TransportRouter) Settings() Settings { return r.settings }

// Graph exposes the routing graph, mostly for diagnostics.
func (r *TransportRouter) Graph() *Graph { return r.graph }

// Route finds the fastest way from one stop to another.
func (r *TransportRouter) Route(from, to string) (Route, error) {
	src, ok := r.vertex[from]
	if !ok {
		return Route{}, fmt.Errorf("stop %q: %w", from, ErrNoRoute)
	}
	dst, ok := r.vertex[to]
	if !ok {
		return Route{}, fmt.Errorf("stop %q: %w", to, ErrNoRoute)
	}
	if src == dst {
		return Route{Items: []Item{}}, nil
	}

	path, total, ok := r.graph.ShortestPath(src, dst)
	if !ok {
		return Route{}, fmt.Errorf("%q -> %q: %w", from, to, ErrNoRoute)
	}
	route := Route{TotalTime: total, Items: make([]Item, 0, len(path))}
	for _, id := range path {
		route.Items = append(route.Items, r.items[id])
	}
	return route, nil
}
