package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

var testFeed = map[string]string{
	"stops.txt": "\ufeffstop_id,stop_name,stop_lat,stop_lon\n" +
		"S1,Alpha,55.00,37.00\n" +
		"S2,Beta,55.01,37.00\n" +
		"S3,Gamma,55.02,37.00\n" +
		"S4,Alpha,55.03,37.00\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name\n" +
		"R1,AG,10,Ten\n" +
		"R2,AG,,Loop\n" +
		"R3,OTHER,30,Thirty\n" +
		"R4,AG,40,No trips\n",
	"trips.txt": "route_id,service_id,trip_id\n" +
		"R1,WK,T1a\n" +
		"R1,WK,T1b\n" +
		"R2,WK,T2\n" +
		"R3,WK,T3\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence,shape_dist_traveled\n" +
		"T1a,08:10:00,08:10:00,S3,3,2.5\n" +
		"T1a,08:00:00,08:00:00,S1,1,0\n" +
		"T1a,08:05:00,08:05:00,S2,2,1.2\n" +
		"T1b,09:00:00,09:00:00,S1,1,\n" +
		"T1b,09:05:00,09:05:00,S2,2,\n" +
		"T2,10:00:00,10:00:00,S1,1,\n" +
		"T2,10:05:00,10:05:00,S3,2,\n" +
		"T2,10:10:00,10:10:00,S1,3,\n" +
		"T3,11:00:00,11:00:00,S4,1,\n" +
		"T3,11:05:00,11:05:00,S2,2,\n",
	"agency.txt": "agency_id,agency_name\nAG,Agency\n",
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	feed, err := Parse(buildZip(t, testFeed))
	require.NoError(t, err)

	assert.Len(t, feed.Stops, 4)
	assert.Len(t, feed.Routes, 4)
	assert.Equal(t, []string{"T1a", "T1b"}, feed.Trips["R1"])

	s, ok := feed.Stop("S1")
	require.True(t, ok)
	assert.Equal(t, "Alpha", s.Name)
	assert.Equal(t, geo.Coordinates{Lat: 55, Lng: 37}, s.Coordinates)

	times := feed.StopTimes["T1a"]
	require.Len(t, times, 3)
	assert.Equal(t, []string{"S1", "S2", "S3"}, []string{times[0].StopID, times[1].StopID, times[2].StopID})
	assert.True(t, times[1].HasShapeDist)
	assert.False(t, feed.StopTimes["T2"][0].HasShapeDist)
}

func TestParse_Errors(t *testing.T) {
	missing := map[string]string{}
	for k, v := range testFeed {
		if k != "trips.txt" {
			missing[k] = v
		}
	}
	badLat := map[string]string{}
	for k, v := range testFeed {
		badLat[k] = v
	}
	badLat["stops.txt"] = "stop_id,stop_name,stop_lat,stop_lon\nS1,Alpha,north,37\n"

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"not a zip", []byte("hello"), "zip"},
		{"missing file", buildZip(t, missing), "trips.txt"},
		{"bad latitude", buildZip(t, badLat), "stop_lat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestImport(t *testing.T) {
	cat := catalogue.New()
	agg := warnings.New()
	require.NoError(t, Import(buildZip(t, testFeed), cat, agg))

	assert.Equal(t, 4, cat.Stats().Stops)
	assert.Equal(t, 3, cat.Stats().Buses)
	assert.Equal(t, 1, agg.Count(warnings.DuplicateStop))
	assert.Equal(t, 1, agg.Count(warnings.RouteWithoutTrips))

	_, ok := cat.FindStop("Alpha (S4)")
	assert.True(t, ok)

	ten, ok := cat.FindBus("10")
	require.True(t, ok)
	assert.Equal(t, "R1", ten.RouteID)
	assert.False(t, ten.IsRoundtrip)
	require.Len(t, ten.Stops, 3)
	assert.Equal(t, "Gamma", ten.Stops[2].Name)

	// shape_dist_traveled is in kilometres in this feed.
	d, ok := cat.Distance(ten.Stops[0], ten.Stops[1])
	require.True(t, ok)
	assert.Equal(t, 1200, d)
	info, err := cat.BusInfo("10")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, info.RouteLength)

	loop, ok := cat.FindBus("R2")
	require.True(t, ok)
	assert.True(t, loop.IsRoundtrip)
	alpha, _ := cat.FindStop("Alpha")
	gamma, _ := cat.FindStop("Gamma")
	d, ok = cat.Distance(alpha, gamma)
	require.True(t, ok)
	assert.Equal(t, int(math.Round(geo.Distance(alpha.Coordinates, gamma.Coordinates))), d)

	_, ok = cat.FindBus("30")
	assert.True(t, ok)
}

func TestFeed_LoadAgency(t *testing.T) {
	feed, err := Parse(buildZip(t, testFeed))
	require.NoError(t, err)

	cat := catalogue.New()
	require.NoError(t, feed.Load(cat, nil, "AG"))
	assert.Equal(t, 2, cat.Stats().Buses)
	_, ok := cat.FindBus("30")
	assert.False(t, ok)
}

func TestShapeDistScale(t *testing.T) {
	feed, err := Parse(buildZip(t, testFeed))
	require.NoError(t, err)

	metres := []StopTime{
		{StopID: "S1", ShapeDist: 0, HasShapeDist: true},
		{StopID: "S2", ShapeDist: 1150, HasShapeDist: true},
	}
	assert.Equal(t, 1.0, shapeDistScale(feed, metres))
	assert.Equal(t, 1000.0, shapeDistScale(feed, feed.StopTimes["T1a"]))
	assert.Equal(t, 0.0, shapeDistScale(feed, feed.StopTimes["T2"]))
}

func TestFetch(t *testing.T) {
	data := buildZip(t, testFeed)

	path := filepath.Join(t.TempDir(), "gtfs.zip")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	got, err := Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gtfs.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	got, err = Fetch(context.Background(), srv.URL+"/gtfs.zip")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = Fetch(context.Background(), srv.URL+"/other.zip")
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = Fetch(context.Background(), "")
	assert.Error(t, err)
}
