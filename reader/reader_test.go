package reader

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
	"github.com/theoremus-urban-solutions/transport-catalogue/jsontext"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

const sampleInput = `{
  "base_requests": [
    {"type": "Bus", "name": "114", "stops": ["Morskoy vokzal", "Rivierski most"], "is_roundtrip": false},
    {"type": "Stop", "name": "Rivierski most", "latitude": 43.587795, "longitude": 39.716901,
     "road_distances": {"Morskoy vokzal": 850}},
    {"type": "Stop", "name": "Morskoy vokzal", "latitude": 43.581969, "longitude": 39.719848,
     "road_distances": {"Rivierski most": 850}}
  ],
  "render_settings": {
    "width": 200, "height": 200, "padding": 30,
    "stop_radius": 5, "line_width": 14,
    "bus_label_font_size": 20, "bus_label_offset": [7, 15],
    "stop_label_font_size": 20, "stop_label_offset": [7, -3],
    "underlayer_color": [255, 255, 255, 0.85], "underlayer_width": 3,
    "color_palette": ["green", [255, 160, 0], "red"]
  },
  "routing_settings": {"bus_wait_time": 2, "bus_velocity": 30},
  "stat_requests": [
    {"id": 1, "type": "Map"},
    {"id": 2, "type": "Stop", "name": "Rivierski most"},
    {"id": 3, "type": "Bus", "name": "114"}
  ]
}`

func decode(t *testing.T, s string) document.Value {
	t.Helper()
	v, err := jsontext.DecodeBytes([]byte(s))
	require.NoError(t, err)
	return v
}

func TestLoad_Sample(t *testing.T) {
	in, err := Load(decode(t, sampleInput), warnings.New())
	require.NoError(t, err)

	assert.Equal(t, 2, in.Catalogue.Stats().Stops)
	info, err := in.Catalogue.BusInfo("114")
	require.NoError(t, err)
	assert.Equal(t, 3, info.StopCount)
	assert.Equal(t, 1700.0, info.RouteLength)

	assert.Equal(t, 200.0, in.Render.Width)
	assert.Equal(t, svg.Point{X: 7, Y: -3}, in.Render.StopLabelOffset)
	assert.Equal(t, "rgba(255,255,255,0.85)", in.Render.UnderlayerColor.String())
	require.Len(t, in.Render.ColorPalette, 3)
	assert.Equal(t, "rgb(255,160,0)", in.Render.ColorPalette[1].String())

	assert.Equal(t, 2.0, in.Routing.BusWaitTime)
	assert.Equal(t, 30.0, in.Routing.BusVelocity)
	assert.Len(t, in.StatRequests, 3)
}

func TestLoad_EmptyDocument(t *testing.T) {
	in, err := Load(document.MustMap(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, in.Catalogue.Stats().Stops)
	assert.Empty(t, in.StatRequests)

	_, err = Load(document.ListOf(), nil)
	assert.ErrorIs(t, err, document.ErrWrongType)
}

func TestLoad_CollectsEveryDefect(t *testing.T) {
	input := `{
	  "base_requests": [
	    {"type": "Stop", "name": "A", "latitude": 1, "longitude": 2, "road_distances": {"Ghost": 10}},
	    {"type": "Stop", "name": "A", "latitude": 1, "longitude": 2},
	    {"type": "Stop", "name": "B", "latitude": "north", "longitude": 2},
	    {"type": "Bus", "name": "1", "stops": ["A", "Nowhere"], "is_roundtrip": true},
	    {"type": "Bus", "name": "2", "stops": ["A"], "is_roundtrip": true},
	    {"type": "Tram", "name": "T"},
	    42
	  ],
	  "routing_settings": {"bus_wait_time": 0}
	}`
	agg := warnings.New()
	in, err := Load(decode(t, input), agg)
	require.Error(t, err)
	require.NotNil(t, in)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	// ghost distance, duplicate A, bad latitude, unknown stop in bus 1,
	// unknown type, non-map request, routing settings
	assert.Len(t, merr.Errors, 7)

	_, ok := in.Catalogue.FindBus("2")
	assert.True(t, ok, "valid requests are still loaded")
	_, ok = in.Catalogue.FindBus("1")
	assert.False(t, ok)
	assert.Equal(t, 6.0, in.Routing.BusWaitTime, "invalid routing settings fall back to defaults")

	assert.Equal(t, 1, agg.Count(warnings.UnknownStop))
	assert.Equal(t, 1, agg.Count(warnings.DuplicateStop))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   document.Value
		want    string
		wantErr bool
	}{
		{name: "named", input: document.String("white"), want: "white"},
		{name: "rgb", input: document.ListOf(document.Int(1), document.Int(2), document.Int(3)), want: "rgb(1,2,3)"},
		{
			name:  "rgba with int opacity",
			input: document.ListOf(document.Int(1), document.Int(2), document.Int(3), document.Int(1)),
			want:  "rgba(1,2,3,1)",
		},
		{name: "channel out of range", input: document.ListOf(document.Int(256), document.Int(0), document.Int(0)), wantErr: true},
		{name: "double channel", input: document.ListOf(document.Double(1), document.Int(0), document.Int(0)), wantErr: true},
		{name: "two items", input: document.ListOf(document.Int(1), document.Int(2)), wantErr: true},
		{name: "opacity above one", input: document.ListOf(document.Int(1), document.Int(2), document.Int(3), document.Double(1.5)), wantErr: true},
		{name: "number", input: document.Int(5), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseRenderSettings_Invalid(t *testing.T) {
	m, err := decode(t, `{"width": "wide", "padding": -5, "bus_label_offset": [1], "color_palette": []}`).AsMap()
	require.NoError(t, err)

	_, err = ParseRenderSettings(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "bus_label_offset")
}

func TestParseRenderSettings_Defaults(t *testing.T) {
	s, err := ParseRenderSettings(document.Map{})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, s.Width)
}

func TestParseStatRequest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StatRequest
		wantErr bool
		noID    bool
	}{
		{name: "stop", input: `{"id": 1, "type": "Stop", "name": "A"}`, want: StatRequest{ID: 1, Type: TypeStop, Name: "A"}},
		{name: "route", input: `{"id": 2, "type": "Route", "from": "A", "to": "B"}`, want: StatRequest{ID: 2, Type: TypeRoute, From: "A", To: "B"}},
		{name: "map", input: `{"id": 3, "type": "Map"}`, want: StatRequest{ID: 3, Type: TypeMap}},
		{name: "vehicles", input: `{"id": 4, "type": "Vehicles", "name": "114"}`, want: StatRequest{ID: 4, Type: TypeVehicles, Name: "114"}},
		{name: "route without to", input: `{"id": 5, "type": "Route", "from": "A"}`, want: StatRequest{ID: 5, Type: TypeRoute, From: "A"}, wantErr: true},
		{name: "unknown type", input: `{"id": 6, "type": "Tram"}`, want: StatRequest{ID: 6, Type: "Tram"}, wantErr: true},
		{name: "no id", input: `{"type": "Map"}`, wantErr: true, noID: true},
		{name: "not a map", input: `[1]`, wantErr: true, noID: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatRequest(decode(t, tt.input))
			if !tt.wantErr {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.noID, errors.Is(err, ErrNoID))
			}
			if !tt.noID {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExport_RoundTrip(t *testing.T) {
	in, err := Load(decode(t, sampleInput), nil)
	require.NoError(t, err)

	exported, err := Export(in.Catalogue)
	require.NoError(t, err)

	text, err := jsontext.EncodeBytes(exported, 0)
	require.NoError(t, err)
	again, err := Load(decode(t, string(text)), nil)
	require.NoError(t, err)

	assert.Equal(t, in.Catalogue.Stats(), again.Catalogue.Stats())
	want, _ := in.Catalogue.BusInfo("114")
	got, err := again.Catalogue.BusInfo("114")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	reexported, err := Export(again.Catalogue)
	require.NoError(t, err)
	assert.True(t, exported.Equal(reexported))
}
