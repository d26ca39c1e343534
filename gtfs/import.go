package gtfs

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

// Import parses a GTFS zip and loads every agency into cat.
func Import(data []byte, cat *catalogue.Catalogue, agg *warnings.Aggregator) error {
	feed, err := Parse(data)
	if err != nil {
		return err
	}
	return feed.Load(cat, agg, "")
}

// Load adds the feed's stops and one bus per route to cat. When agencyID is
// not empty only that agency's routes become buses. Problems with single
// routes are collected; the remaining routes are still loaded.
func (f *Feed) Load(cat *catalogue.Catalogue, agg *warnings.Aggregator, agencyID string) error {
	var result *multierror.Error

	names := make(map[string]string, len(f.Stops))
	for _, s := range f.Stops {
		name := s.Name
		if _, ok := cat.FindStop(name); ok {
			agg.Add(warnings.DuplicateStop, s.ID)
			name = fmt.Sprintf("%s (%s)", s.Name, s.ID)
		}
		if _, err := cat.AddStop(name, s.Coordinates); err != nil {
			result = multierror.Append(result, fmt.Errorf("stop %s: %w", s.ID, err))
			continue
		}
		names[s.ID] = name
	}

	for _, route := range f.Routes {
		if agencyID != "" && route.AgencyID != "" && route.AgencyID != agencyID {
			continue
		}
		trip, ok := f.longestTrip(route.ID)
		if !ok {
			agg.Add(warnings.RouteWithoutTrips, route.ID)
			continue
		}
		times := f.StopTimes[trip]

		stops := make([]string, 0, len(times))
		for _, st := range times {
			name, ok := names[st.StopID]
			if !ok {
				agg.Add(warnings.UnknownStop, st.StopID)
				continue
			}
			stops = append(stops, name)
		}
		if len(stops) == 0 {
			agg.Add(warnings.EmptyRoute, route.ID)
			continue
		}

		f.setDistances(cat, times, names)

		busName := route.ShortName
		if busName == "" {
			busName = route.ID
		}
		if _, taken := cat.FindBus(busName); taken {
			busName = fmt.Sprintf("%s (%s)", busName, route.ID)
		}
		roundtrip := len(stops) > 1 && stops[0] == stops[len(stops)-1]
		bus, err := cat.AddBus(busName, stops, roundtrip)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("route %s: %w", route.ID, err))
			continue
		}
		bus.RouteID = route.ID
		for _, pair := range cat.MissingDistances(bus) {
			agg.Add(warnings.MissingDistance, pair[0].Name+" -> "+pair[1].Name)
		}
	}

	stats := cat.Stats()
	logrus.Debugf("GTFS import: %d stops, %d buses, %d distances", stats.Stops, stats.Buses, stats.Distances)
	return result.ErrorOrNil()
}

// longestTrip returns the trip of route with the most stop times. Ties go to
// the trip listed first.
func (f *Feed) longestTrip(routeID string) (string, bool) {
	best, bestLen := "", 0
	for _, trip := range f.Trips[routeID] {
		n := len(f.StopTimes[trip])
		if n == 0 {
			continue
		}
		if n > bestLen {
			best, bestLen = trip, n
		}
	}
	return best, bestLen > 0
}

// setDistances records the distance between consecutive stops of a trip
// unless one was already recorded for the pair.
func (f *Feed) setDistances(cat *catalogue.Catalogue, times []StopTime, names map[string]string) {
	scale := shapeDistScale(f, times)
	for i := 0; i+1 < len(times); i++ {
		a, b := times[i], times[i+1]
		from, okA := names[a.StopID]
		to, okB := names[b.StopID]
		if !okA || !okB || from == to {
			continue
		}
		fs, _ := cat.FindStop(from)
		ts, _ := cat.FindStop(to)
		if _, ok := cat.Distance(fs, ts); ok {
			continue
		}

		var meters float64
		if scale > 0 && a.HasShapeDist && b.HasShapeDist && b.ShapeDist > a.ShapeDist {
			meters = (b.ShapeDist - a.ShapeDist) * scale
		} else {
			meters = geo.Distance(fs.Coordinates, ts.Coordinates)
		}
		_ = cat.SetDistance(from, to, int(math.Round(meters)))
	}
}

// shapeDistScale guesses the unit of shape_dist_traveled for a trip, which
// GTFS leaves to the producer: 1000 when the values look like kilometres, 1
// for metres, 0 when the trip has none.
func shapeDistScale(f *Feed, times []StopTime) float64 {
	var shape, straight float64
	for i := 0; i+1 < len(times); i++ {
		a, b := times[i], times[i+1]
		if !a.HasShapeDist || !b.HasShapeDist {
			continue
		}
		sa, okA := f.Stop(a.StopID)
		sb, okB := f.Stop(b.StopID)
		if !okA || !okB {
			continue
		}
		shape += b.ShapeDist - a.ShapeDist
		straight += geo.Distance(sa.Coordinates, sb.Coordinates)
	}
	switch {
	case shape <= 0:
		return 0
	case shape*100 < straight:
		return 1000
	default:
		return 1
	}
}
