package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
)

func TestGraph_ShortestPath(t *testing.T) {
	g := NewGraph(4)
	e01 := g.AddEdge(Edge{From: 0, To: 1, Weight: 1})
	g.AddEdge(Edge{From: 0, To: 2, Weight: 5})
	e12 := g.AddEdge(Edge{From: 1, To: 2, Weight: 1})
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 4, g.VertexCount())

	path, w, ok := g.ShortestPath(0, 2)
	require.True(t, ok)
	assert.Equal(t, []EdgeID{e01, e12}, path)
	assert.Equal(t, 2.0, w)

	path, w, ok = g.ShortestPath(1, 1)
	require.True(t, ok)
	assert.Empty(t, path)
	assert.Zero(t, w)

	_, _, ok = g.ShortestPath(2, 0)
	assert.False(t, ok)
	_, _, ok = g.ShortestPath(0, 3)
	assert.False(t, ok)
	_, _, ok = g.ShortestPath(0, 9)
	assert.False(t, ok)
}

func newCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	c := catalogue.New()
	for i, n := range []string{"A", "B", "C", "D"} {
		_, err := c.AddStop(n, geo.Coordinates{Lat: 55 + float64(i)/100, Lng: 37})
		require.NoError(t, err)
	}
	require.NoError(t, c.SetDistance("A", "B", 1000))
	require.NoError(t, c.SetDistance("B", "C", 2000))
	require.NoError(t, c.SetDistance("A", "C", 10000))
	require.NoError(t, c.SetDistance("C", "A", 500))

	_, err := c.AddBus("1", []string{"A", "B", "C"}, false)
	require.NoError(t, err)
	_, err = c.AddBus("2", []string{"A", "C", "A"}, true)
	require.NoError(t, err)
	return c
}

func TestTransportRouter_Route(t *testing.T) {
	// 60 km/h is 1000 m per minute.
	r := New(newCatalogue(t), Settings{BusWaitTime: 6, BusVelocity: 60})

	tests := []struct {
		name      string
		from, to  string
		wantTime  float64
		wantItems []Item
	}{
		{
			name:     "forward on the linear bus",
			from:     "A",
			to:       "C",
			wantTime: 9,
			wantItems: []Item{
				{Kind: ItemWait, StopName: "A", Time: 6},
				{Kind: ItemBus, Bus: "1", SpanCount: 2, Time: 3},
			},
		},
		{
			name:     "loop is faster backwards",
			from:     "C",
			to:       "A",
			wantTime: 6.5,
			wantItems: []Item{
				{Kind: ItemWait, StopName: "C", Time: 6},
				{Kind: ItemBus, Bus: "2", SpanCount: 1, Time: 0.5},
			},
		},
		{
			name:     "reverse direction uses fallback distance",
			from:     "B",
			to:       "A",
			wantTime: 7,
			wantItems: []Item{
				{Kind: ItemWait, StopName: "B", Time: 6},
				{Kind: ItemBus, Bus: "1", SpanCount: 1, Time: 1},
			},
		},
		{
			name:      "same stop",
			from:      "B",
			to:        "B",
			wantTime:  0,
			wantItems: []Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Route(tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTime, got.TotalTime, 1e-9)
			require.Len(t, got.Items, len(tt.wantItems))
			for i, want := range tt.wantItems {
				assert.Equal(t, want.Kind, got.Items[i].Kind)
				assert.Equal(t, want.StopName, got.Items[i].StopName)
				assert.Equal(t, want.Bus, got.Items[i].Bus)
				assert.Equal(t, want.SpanCount, got.Items[i].SpanCount)
				assert.InDelta(t, want.Time, got.Items[i].Time, 1e-9)
			}
		})
	}
}

func TestTransportRouter_NotFound(t *testing.T) {
	r := New(newCatalogue(t), DefaultSettings())

	for _, pair := range [][2]string{{"A", "D"}, {"D", "A"}, {"A", "Nowhere"}, {"Nowhere", "A"}} {
		_, err := r.Route(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrNoRoute, "%s -> %s", pair[0], pair[1])
	}
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	err := Settings{BusWaitTime: 0, BusVelocity: 2000}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus_wait_time")
	assert.Contains(t, err.Error(), "bus_velocity")
}

func TestItemKind_String(t *testing.T) {
	assert.Equal(t, "Wait", ItemWait.String())
	assert.Equal(t, "Bus", ItemBus.String())
}
