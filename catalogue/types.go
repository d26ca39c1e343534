package catalogue

import "github.com/theoremus-urban-solutions/transport-catalogue/geo"

type Stop struct {
	Name        string
	Coordinates geo.Coordinates
}

type Bus struct {
	Name        string
	Stops       []*Stop
	IsRoundtrip bool
	// RouteID links the bus to a GTFS route_id when it was imported from a
	// feed. It is empty for buses read from requests.
	RouteID string
}

// Route returns the full sequence of stops the bus visits on one run.
func (b *Bus) Route() []*Stop {
	if b.IsRoundtrip || len(b.Stops) < 2 {
		return append([]*Stop(nil), b.Stops...)
	}
	route := make([]*Stop, 0, 2*len(b.Stops)-1)
	route = append(route, b.Stops...)
	for i := len(b.Stops) - 2; i >= 0; i-- {
		route = append(route, b.Stops[i])
	}
	return route
}

// Terminals returns the first stop and, for a non-roundtrip bus whose ends
// differ, the last declared stop.
func (b *Bus) Terminals() []*Stop {
	if len(b.Stops) == 0 {
		return nil
	}
	first, last := b.Stops[0], b.Stops[len(b.Stops)-1]
	if b.IsRoundtrip || first == last {
		return []*Stop{first}
	}
	return []*Stop{first, last}
}

// BusInfo is the statistics answer for one bus.
type BusInfo struct {
	Name            string
	StopCount       int
	UniqueStopCount int
	// RouteLength is the road length of one run in metres.
	RouteLength float64
	// Curvature is RouteLength over the great-circle length of the same run.
	Curvature float64
}

// Distance is one measured road distance.
type Distance struct {
	From   *Stop
	To     *Stop
	Meters int
}

// Stats counts what the catalogue holds.
type Stats struct {
	Stops     int
	Buses     int
	Distances int
}
