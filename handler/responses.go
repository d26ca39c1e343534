package handler

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/reader"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
)

func (h *Handler) stop(req reader.StatRequest) (document.Value, error) {
	buses, err := h.cat.BusesByStop(req.Name)
	if err != nil {
		return errorResponse(&req.ID, NotFound)
	}
	return document.NewChain().StartMap().
		Key("request_id").Value(document.Int(req.ID)).
		Key("buses").Value(document.Strings(buses...)).
		EndMap().Build()
}

func (h *Handler) bus(req reader.StatRequest) (document.Value, error) {
	info, err := h.cat.BusInfo(req.Name)
	if err != nil {
		return errorResponse(&req.ID, NotFound)
	}
	return document.NewChain().StartMap().
		Key("request_id").Value(document.Int(req.ID)).
		Key("stop_count").Value(document.Int(int64(info.StopCount))).
		Key("route_length").Value(document.Int(int64(math.Round(info.RouteLength)))).
		Key("unique_stop_count").Value(document.Int(int64(info.UniqueStopCount))).
		Key("curvature").Value(document.Double(info.Curvature)).
		EndMap().Build()
}

func (h *Handler) renderMap(req reader.StatRequest) (document.Value, error) {
	return document.NewChain().StartMap().
		Key("request_id").Value(document.Int(req.ID)).
		Key("map").Value(document.String(h.MapSVG())).
		EndMap().Build()
}

func (h *Handler) route(req reader.StatRequest) (document.Value, error) {
	route, err := h.Router().Route(req.From, req.To)
	if errors.Is(err, router.ErrNoRoute) {
		return errorResponse(&req.ID, NotFound)
	}
	if err != nil {
		return document.Value{}, err
	}

	items := document.NewChain().StartMap().
		Key("request_id").Value(document.Int(req.ID)).
		Key("total_time").Value(document.Double(route.TotalTime)).
		Key("items").StartList()
	for _, it := range route.Items {
		m := items.StartMap()
		switch it.Kind {
		case router.ItemWait:
			m = m.Key("stop_name").Value(document.String(it.StopName))
		case router.ItemBus:
			m = m.Key("bus").Value(document.String(it.Bus)).
				Key("span_count").Value(document.Int(int64(it.SpanCount)))
		}
		m.Key("time").Value(document.Double(it.Time)).
			Key("type").Value(document.String(it.Kind.String())).
			EndMap()
	}
	return items.EndList().EndMap().Build()
}

func (h *Handler) liveVehicles(ctx context.Context, req reader.StatRequest) (document.Value, error) {
	bus, ok := h.cat.FindBus(req.Name)
	if !ok {
		return errorResponse(&req.ID, NotFound)
	}
	if h.vehicles == nil {
		return errorResponse(&req.ID, "vehicle positions are not available")
	}
	snapshot, err := h.vehicles.Vehicles(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return document.Value{}, ctx.Err()
		}
		logrus.Warnf("failed to load vehicle positions: %v", err)
		return errorResponse(&req.ID, "vehicle positions are not available")
	}

	routeID := bus.RouteID
	if routeID == "" {
		routeID = bus.Name
	}

	list := document.NewChain().StartMap().
		Key("request_id").Value(document.Int(req.ID)).
		Key("vehicles").StartList()
	for _, v := range snapshot.ForRoute(routeID) {
		m := list.StartMap().
			Key("vehicle_id").Value(document.String(v.ID)).
			Key("trip_id").Value(document.String(v.TripID)).
			Key("latitude").Value(document.Double(v.Position.Lat)).
			Key("longitude").Value(document.Double(v.Position.Lng))
		if v.HasBearing {
			m = m.Key("bearing").Value(document.Double(v.Bearing))
		}
		if s, d := nearestStop(bus, v.Position); s != nil {
			m = m.Key("nearest_stop").Value(document.String(s.Name)).
				Key("distance_to_stop").Value(document.Double(math.Round(d*10) / 10))
		}
		m.EndMap()
	}
	return list.EndList().EndMap().Build()
}

// nearestStop returns the stop of bus closest to p and the distance to it in
// metres.
func nearestStop(bus *catalogue.Bus, p geo.Coordinates) (*catalogue.Stop, float64) {
	var best *catalogue.Stop
	bestDist := math.Inf(1)
	for _, s := range bus.Stops {
		if d := geo.Distance(s.Coordinates, p); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, bestDist
}
