package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/gtfsrt"
	"github.com/theoremus-urban-solutions/transport-catalogue/jsontext"
	"github.com/theoremus-urban-solutions/transport-catalogue/reader"
)

const testInput = `{
  "base_requests": [
    {"type": "Stop", "name": "A", "latitude": 55.00, "longitude": 37, "road_distances": {"B": 1000, "C": 10000}},
    {"type": "Stop", "name": "B", "latitude": 55.01, "longitude": 37, "road_distances": {"C": 2000}},
    {"type": "Stop", "name": "C", "latitude": 55.02, "longitude": 37, "road_distances": {"A": 500}},
    {"type": "Stop", "name": "D", "latitude": 55.03, "longitude": 37},
    {"type": "Bus", "name": "1", "stops": ["A", "B", "C"], "is_roundtrip": false},
    {"type": "Bus", "name": "2", "stops": ["A", "C", "A"], "is_roundtrip": true}
  ],
  "routing_settings": {"bus_wait_time": 6, "bus_velocity": 60},
  "stat_requests": []
}`

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()
	root, err := jsontext.DecodeBytes([]byte(testInput))
	require.NoError(t, err)
	in, err := reader.Load(root, nil)
	require.NoError(t, err)
	return FromInput(in, opts...)
}

func request(t *testing.T, s string) document.Value {
	t.Helper()
	v, err := jsontext.DecodeBytes([]byte(s))
	require.NoError(t, err)
	return v
}

func TestHandler_Respond(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		request string
		want    string
	}{
		{
			name:    "stop with buses",
			request: `{"id": 1, "type": "Stop", "name": "B"}`,
			want:    `{"request_id":1,"buses":["1"]}`,
		},
		{
			name:    "stop shared by buses",
			request: `{"id": 2, "type": "Stop", "name": "A"}`,
			want:    `{"request_id":2,"buses":["1","2"]}`,
		},
		{
			name:    "stop without buses",
			request: `{"id": 3, "type": "Stop", "name": "D"}`,
			want:    `{"request_id":3,"buses":[]}`,
		},
		{
			name:    "unknown stop",
			request: `{"id": 4, "type": "Stop", "name": "Z"}`,
			want:    `{"request_id":4,"error_message":"not found"}`,
		},
		{
			name:    "unknown bus",
			request: `{"id": 5, "type": "Bus", "name": "999"}`,
			want:    `{"request_id":5,"error_message":"not found"}`,
		},
		{
			name:    "route",
			request: `{"id": 6, "type": "Route", "from": "A", "to": "C"}`,
			want: `{"request_id":6,"total_time":9.0,"items":[` +
				`{"stop_name":"A","time":6.0,"type":"Wait"},` +
				`{"bus":"1","span_count":2,"time":3.0,"type":"Bus"}]}`,
		},
		{
			name:    "route to the same stop",
			request: `{"id": 7, "type": "Route", "from": "B", "to": "B"}`,
			want:    `{"request_id":7,"total_time":0.0,"items":[]}`,
		},
		{
			name:    "unreachable stop",
			request: `{"id": 8, "type": "Route", "from": "A", "to": "D"}`,
			want:    `{"request_id":8,"error_message":"not found"}`,
		},
		{
			name:    "vehicles without a feed",
			request: `{"id": 9, "type": "Vehicles", "name": "1"}`,
			want:    `{"request_id":9,"error_message":"vehicle positions are not available"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Respond(context.Background(), request(t, tt.request))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestHandler_Bus(t *testing.T) {
	h := newTestHandler(t)

	got, err := h.Respond(context.Background(), request(t, `{"id": 1, "type": "Bus", "name": "1"}`))
	require.NoError(t, err)
	m, err := got.AsMap()
	require.NoError(t, err)
	assert.Equal(t, []string{"request_id", "stop_count", "route_length", "unique_stop_count", "curvature"}, m.Keys())

	field := func(key string) document.Value {
		v, ok := m.Get(key)
		require.True(t, ok, key)
		return v
	}
	assert.True(t, field("stop_count").Equal(document.Int(5)))
	assert.True(t, field("unique_stop_count").Equal(document.Int(3)))
	// The way back has no distances of its own and reuses the forward ones.
	assert.True(t, field("route_length").Equal(document.Int(6000)))
	curvature, err := field("curvature").AsDouble()
	require.NoError(t, err)
	assert.Greater(t, curvature, 1.0)

	got, err = h.Respond(context.Background(), request(t, `{"id": 2, "type": "Bus", "name": "2"}`))
	require.NoError(t, err)
	assert.Contains(t, got.String(), `"stop_count":3,"route_length":10500,"unique_stop_count":2`)
}

func TestHandler_MalformedRequests(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		request string
		wantID  bool
		wantMsg string
	}{
		{"missing name", `{"id": 1, "type": "Bus"}`, true, "name"},
		{"unknown type", `{"id": 2, "type": "Train", "name": "x"}`, true, `unknown request type "Train"`},
		{"missing id", `{"type": "Map"}`, false, "id"},
		{"not a map", `[1, 2]`, false, "wrong type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Respond(context.Background(), request(t, tt.request))
			require.NoError(t, err)
			m, err := got.AsMap()
			require.NoError(t, err)

			assert.Equal(t, tt.wantID, m.Has("request_id"))
			msg, ok := m.Get("error_message")
			require.True(t, ok)
			s, err := msg.AsString()
			require.NoError(t, err)
			assert.Contains(t, s, tt.wantMsg)
		})
	}
}

func TestHandler_Map(t *testing.T) {
	h := newTestHandler(t)

	got, err := h.Respond(context.Background(), request(t, `{"id": 3, "type": "Map"}`))
	require.NoError(t, err)
	m, err := got.AsMap()
	require.NoError(t, err)
	v, ok := m.Get("map")
	require.True(t, ok)
	svg, err := v.AsString()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8" ?>`))
	assert.Contains(t, svg, "<polyline")
	assert.Equal(t, svg, h.MapSVG())

	encoded, err := jsontext.EncodeBytes(got, 0)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"map":"<?xml version=\"1.0\"`)
	assert.NotContains(t, string(encoded), `\u003c`)
}

func vehiclesFeed(t *testing.T) gtfsrt.Static {
	t.Helper()
	entity := func(id, route string, lat float32) *gtfsrtpb.FeedEntity {
		return &gtfsrtpb.FeedEntity{
			Id: proto.String(id),
			Vehicle: &gtfsrtpb.VehiclePosition{
				Trip:     &gtfsrtpb.TripDescriptor{TripId: proto.String("t" + id), RouteId: proto.String(route)},
				Vehicle:  &gtfsrtpb.VehicleDescriptor{Id: proto.String(id)},
				Position: &gtfsrtpb.Position{Latitude: proto.Float32(lat), Longitude: proto.Float32(37), Bearing: proto.Float32(180)},
			},
		}
	}
	b, err := proto.Marshal(&gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfsrtpb.FeedEntity{entity("v1", "1", 55.0101), entity("v2", "2", 55.02)},
	})
	require.NoError(t, err)
	vs, err := gtfsrt.ParseVehiclePositions(b, nil)
	require.NoError(t, err)
	return gtfsrt.Static{Snapshot: vs}
}

func TestHandler_Vehicles(t *testing.T) {
	h := newTestHandler(t, WithVehicles(vehiclesFeed(t)))

	got, err := h.Respond(context.Background(), request(t, `{"id": 1, "type": "Vehicles", "name": "1"}`))
	require.NoError(t, err)
	m, err := got.AsMap()
	require.NoError(t, err)
	v, ok := m.Get("vehicles")
	require.True(t, ok)
	list, err := v.AsList()
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())

	veh, err := list.At(0).AsMap()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"vehicle_id", "trip_id", "latitude", "longitude", "bearing", "nearest_stop", "distance_to_stop",
	}, veh.Keys())
	stop, _ := veh.Get("nearest_stop")
	assert.True(t, stop.Equal(document.String("B")))
	dist, _ := veh.Get("distance_to_stop")
	d, err := dist.AsDouble()
	require.NoError(t, err)
	assert.Less(t, d, 20.0)

	got, err = h.Respond(context.Background(), request(t, `{"id": 2, "type": "Vehicles", "name": "Z"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"request_id":2,"error_message":"not found"}`, got.String())
}

type failingSource struct{}

func (failingSource) Vehicles(context.Context) (*gtfsrt.Vehicles, error) {
	return nil, errors.New("feed down")
}

func TestHandler_VehiclesFeedFailure(t *testing.T) {
	h := newTestHandler(t, WithVehicles(failingSource{}))

	got, err := h.Respond(context.Background(), request(t, `{"id": 1, "type": "Vehicles", "name": "1"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"request_id":1,"error_message":"vehicle positions are not available"}`, got.String())
}

func TestHandler_ProcessKeepsOrder(t *testing.T) {
	h := newTestHandler(t, WithWorkers(4))

	var requests []document.Value
	for i := 0; i < 50; i++ {
		names := []string{"A", "B", "C", "D", "Z"}
		requests = append(requests, request(t, fmt.Sprintf(`{"id": %d, "type": "Stop", "name": %q}`, i, names[i%len(names)])))
	}

	got, err := h.Process(context.Background(), requests)
	require.NoError(t, err)
	list, err := got.AsList()
	require.NoError(t, err)
	require.Equal(t, len(requests), list.Len())

	for i := 0; i < list.Len(); i++ {
		m, err := list.At(i).AsMap()
		require.NoError(t, err)
		id, ok := m.Get("request_id")
		require.True(t, ok)
		assert.True(t, id.Equal(document.Int(int64(i))), "position %d holds %s", i, id)
	}
}

func TestHandler_ProcessEmpty(t *testing.T) {
	got, err := newTestHandler(t).Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got.String())
}

func TestHandler_ProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestHandler(t).Process(ctx, []document.Value{request(t, `{"id": 1, "type": "Map"}`)})
	assert.ErrorIs(t, err, context.Canceled)
}
