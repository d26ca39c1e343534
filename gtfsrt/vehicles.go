package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

// Vehicle is one vehicle position from the feed.
type Vehicle struct {
	ID         string
	Label      string
	TripID     string
	RouteID    string
	Position   geo.Coordinates
	Bearing    float64
	HasBearing bool
	// Timestamp is the POSIX time of the position, 0 when not reported.
	Timestamp int64
}

// Vehicles is an immutable snapshot of a VehiclePositions feed.
type Vehicles struct {
	// Timestamp of the feed header, 0 when not reported.
	Timestamp int64
	all       []Vehicle
	byRoute   map[string][]int
}

func (v *Vehicles) Len() int { return len(v.all) }

// All returns every vehicle in feed order.
func (v *Vehicles) All() []Vehicle {
	return append([]Vehicle(nil), v.all...)
}

// ForRoute returns the vehicles serving routeID in feed order.
func (v *Vehicles) ForRoute(routeID string) []Vehicle {
	idx := v.byRoute[routeID]
	out := make([]Vehicle, 0, len(idx))
	for _, i := range idx {
		out = append(out, v.all[i])
	}
	return out
}

// ParseVehiclePositions decodes a FeedMessage. Entities without a vehicle
// position are ignored; vehicles without a route_id are kept but cannot be
// found by route. agg may be nil.
func ParseVehiclePositions(data []byte, agg *warnings.Aggregator) (*Vehicles, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("failed to decode feed message: %w", err)
	}

	vs := &Vehicles{byRoute: map[string][]int{}}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		vs.Timestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		vp := e.GetVehicle()
		if vp == nil || vp.GetPosition() == nil {
			continue
		}
		pos := vp.GetPosition()
		v := Vehicle{
			ID:       vp.GetVehicle().GetId(),
			Label:    vp.GetVehicle().GetLabel(),
			TripID:   vp.GetTrip().GetTripId(),
			RouteID:  vp.GetTrip().GetRouteId(),
			Position: geo.Coordinates{Lat: float64(pos.GetLatitude()), Lng: float64(pos.GetLongitude())},
		}
		if v.ID == "" {
			v.ID = e.GetId()
		}
		if pos.Bearing != nil {
			v.Bearing, v.HasBearing = float64(pos.GetBearing()), true
		}
		if vp.Timestamp != nil {
			v.Timestamp = int64(vp.GetTimestamp())
		}

		if v.RouteID == "" {
			agg.Add(warnings.VehicleWithoutRoute, v.ID)
		} else {
			vs.byRoute[v.RouteID] = append(vs.byRoute[v.RouteID], len(vs.all))
		}
		vs.all = append(vs.all, v)
	}
	return vs, nil
}
