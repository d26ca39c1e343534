package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinates
		want float64
		tol  float64
	}{
		{
			name: "same point",
			a:    Coordinates{55.611087, 37.20829},
			b:    Coordinates{55.611087, 37.20829},
			want: 0,
		},
		{
			name: "one degree of latitude",
			a:    Coordinates{0, 0},
			b:    Coordinates{1, 0},
			want: 111195,
			tol:  1,
		},
		{
			name: "moscow stops",
			a:    Coordinates{55.611087, 37.20829},
			b:    Coordinates{55.595884, 37.209755},
			want: 1692.99,
			tol:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, tt.tol)
			assert.InDelta(t, got, Distance(tt.b, tt.a), 1e-9)
			assert.InDelta(t, got/1000, DistanceKM(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCoordinates_Valid(t *testing.T) {
	assert.True(t, Coordinates{Lat: -90, Lng: 180}.Valid())
	assert.False(t, Coordinates{Lat: 91, Lng: 0}.Valid())
	assert.False(t, Coordinates{Lat: 0, Lng: -181}.Valid())
	assert.Equal(t, "55.6, 37.2", Coordinates{55.6, 37.2}.String())
}
