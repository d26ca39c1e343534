package reader

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

// LoadBaseRequests fills cat from the base_requests list. Stops are added
// first, then road distances, then buses, so requests may refer to stops
// declared later in the list. Broken requests are skipped and reported in the
// returned error; the rest is loaded. agg may be nil.
func LoadBaseRequests(requests document.List, cat *catalogue.Catalogue, agg *warnings.Aggregator) error {
	var result *multierror.Error
	fail := func(i int, err error) {
		result = multierror.Append(result, fmt.Errorf("base_requests[%d]: %w", i, err))
	}

	type stopReq struct {
		index     int
		name      string
		distances document.Map
	}
	type busReq struct {
		index     int
		name      string
		stops     []string
		roundtrip bool
	}
	var stops []stopReq
	var buses []busReq

	requests.Range(func(i int, v document.Value) bool {
		m, err := v.AsMap()
		if err != nil {
			fail(i, err)
			return true
		}
		typ, err := stringField(m, "type")
		if err != nil {
			fail(i, err)
			return true
		}
		switch typ {
		case "Stop":
			name, coords, dist, err := parseStop(m)
			if err != nil {
				fail(i, err)
				return true
			}
			if _, err := cat.AddStop(name, coords); err != nil {
				agg.Add(warnings.DuplicateStop, name)
				fail(i, err)
				return true
			}
			stops = append(stops, stopReq{index: i, name: name, distances: dist})
		case "Bus":
			name, names, roundtrip, err := parseBus(m)
			if err != nil {
				fail(i, err)
				return true
			}
			buses = append(buses, busReq{index: i, name: name, stops: names, roundtrip: roundtrip})
		default:
			fail(i, fmt.Errorf("unknown request type %q", typ))
		}
		return true
	})

	for _, s := range stops {
		s.distances.Range(func(to string, v document.Value) bool {
			meters, err := v.AsInt()
			if err != nil {
				fail(s.index, fmt.Errorf("road_distances %q: %w", to, err))
				return true
			}
			if err := cat.SetDistance(s.name, to, int(meters)); err != nil {
				agg.Add(warnings.UnknownStop, to)
				fail(s.index, err)
			}
			return true
		})
	}

	for _, b := range buses {
		bus, err := cat.AddBus(b.name, b.stops, b.roundtrip)
		if err != nil {
			fail(b.index, err)
			continue
		}
		for _, pair := range cat.MissingDistances(bus) {
			agg.Add(warnings.MissingDistance, pair[0].Name+" -> "+pair[1].Name)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		logrus.Debugf("base requests loaded with %d error(s)", len(result.Errors))
		return err
	}
	return nil
}

func parseStop(m document.Map) (string, geo.Coordinates, document.Map, error) {
	var result *multierror.Error
	name, err := stringField(m, "name")
	result = multierror.Append(result, err)
	lat, err := numberField(m, "latitude")
	result = multierror.Append(result, err)
	lng, err := numberField(m, "longitude")
	result = multierror.Append(result, err)

	var dist document.Map
	if m.Has("road_distances") {
		dist, err = mapField(m, "road_distances")
		result = multierror.Append(result, err)
	}

	coords := geo.Coordinates{Lat: lat, Lng: lng}
	if err := result.ErrorOrNil(); err != nil {
		return "", coords, dist, fmt.Errorf("stop %q: %w", name, err)
	}
	if !coords.Valid() {
		return "", coords, dist, fmt.Errorf("stop %q: coordinates %s out of range", name, coords)
	}
	return name, coords, dist, nil
}

func parseBus(m document.Map) (string, []string, bool, error) {
	var result *multierror.Error
	name, err := stringField(m, "name")
	result = multierror.Append(result, err)
	roundtrip, err := boolField(m, "is_roundtrip")
	result = multierror.Append(result, err)

	var stops []string
	list, err := listField(m, "stops")
	result = multierror.Append(result, err)
	list.Range(func(i int, v document.Value) bool {
		s, err := v.AsString()
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("stops[%d]: %w", i, err))
			return true
		}
		stops = append(stops, s)
		return true
	})

	if err := result.ErrorOrNil(); err != nil {
		return "", nil, false, fmt.Errorf("bus %q: %w", name, err)
	}
	return name, stops, roundtrip, nil
}
