package catalogue

import (
	"fmt"

	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
)

// BusInfo computes the statistics of a bus.
func (c *Catalogue) BusInfo(name string) (BusInfo, error) {
	bus, ok := c.busesByName[name]
	if !ok {
		return BusInfo{}, fmt.Errorf("bus %q: %w", name, ErrUnknownBus)
	}
	return c.Info(bus), nil
}

// Info computes the statistics of bus.
func (c *Catalogue) Info(bus *Bus) BusInfo {
	info := BusInfo{Name: bus.Name}
	if bus.IsRoundtrip {
		info.StopCount = len(bus.Stops)
	} else {
		info.StopCount = 2*len(bus.Stops) - 1
	}

	unique := make(map[*Stop]struct{}, len(bus.Stops))
	for _, s := range bus.Stops {
		unique[s] = struct{}{}
	}
	info.UniqueStopCount = len(unique)

	var road, geographic float64
	for i := 0; i+1 < len(bus.Stops); i++ {
		from, to := bus.Stops[i], bus.Stops[i+1]
		straight := geo.Distance(from.Coordinates, to.Coordinates)
		forward, _ := c.Distance(from, to)
		if bus.IsRoundtrip {
			road += float64(forward)
			geographic += straight
			continue
		}
		back, _ := c.Distance(to, from)
		road += float64(forward + back)
		geographic += 2 * straight
	}
	info.RouteLength = road
	if geographic > 0 {
		info.Curvature = road / geographic
	}
	return info
}

// MissingDistances lists consecutive stop pairs of bus, in travel order, for
// which no road distance is known in either direction.
func (c *Catalogue) MissingDistances(bus *Bus) [][2]*Stop {
	var missing [][2]*Stop
	route := bus.Route()
	for i := 0; i+1 < len(route); i++ {
		if route[i] == route[i+1] {
			continue
		}
		if _, ok := c.Distance(route[i], route[i+1]); !ok {
			missing = append(missing, [2]*Stop{route[i], route[i+1]})
		}
	}
	return missing
}
