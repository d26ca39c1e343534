// Package gtfsrt reads GTFS-Realtime VehiclePositions feeds.
//
// ParseVehiclePositions decodes a protobuf FeedMessage and indexes the
// vehicles that report a position by route_id. A Source hands the current
// vehicles to the request handler, either from a file read once (Static) or
// from a URL polled with a short cache (Feed).
package gtfsrt
