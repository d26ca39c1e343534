package renderer

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

// Settings control the look of the map.
type Settings struct {
	Width             float64
	Height            float64
	Padding           float64
	LineWidth         float64
	StopRadius        float64
	BusLabelFontSize  uint32
	BusLabelOffset    svg.Point
	StopLabelFontSize uint32
	StopLabelOffset   svg.Point
	UnderlayerColor   svg.Color
	UnderlayerWidth   float64
	ColorPalette      []svg.Color
}

// DefaultSettings returns settings usable without any render_settings input.
func DefaultSettings() Settings {
	return Settings{
		Width:             1200,
		Height:            1200,
		Padding:           50,
		LineWidth:         14,
		StopRadius:        5,
		BusLabelFontSize:  20,
		BusLabelOffset:    svg.Point{X: 7, Y: 15},
		StopLabelFontSize: 20,
		StopLabelOffset:   svg.Point{X: 7, Y: -3},
		UnderlayerColor:   svg.RGBA(255, 255, 255, 0.85),
		UnderlayerWidth:   3,
		ColorPalette: []svg.Color{
			svg.Named("green"),
			svg.RGB(255, 160, 0),
			svg.Named("red"),
		},
	}
}

// Validate reports every setting outside its allowed range.
func (s Settings) Validate() error {
	var result *multierror.Error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			result = multierror.Append(result, fmt.Errorf(format, args...))
		}
	}

	check(s.Width >= 0 && s.Width <= 100000, "width %g out of range [0, 100000]", s.Width)
	check(s.Height >= 0 && s.Height <= 100000, "height %g out of range [0, 100000]", s.Height)
	check(s.Padding >= 0 && s.Padding < min(s.Width, s.Height)/2,
		"padding %g must be non-negative and less than half of min(width, height)", s.Padding)
	check(s.LineWidth >= 0 && s.LineWidth <= 100000, "line_width %g out of range [0, 100000]", s.LineWidth)
	check(s.StopRadius >= 0 && s.StopRadius <= 100000, "stop_radius %g out of range [0, 100000]", s.StopRadius)
	check(s.BusLabelFontSize <= 100000, "bus_label_font_size %d out of range [0, 100000]", s.BusLabelFontSize)
	check(s.StopLabelFontSize <= 100000, "stop_label_font_size %d out of range [0, 100000]", s.StopLabelFontSize)
	check(s.UnderlayerWidth >= 0 && s.UnderlayerWidth <= 100000, "underlayer_width %g out of range [0, 100000]", s.UnderlayerWidth)
	check(len(s.ColorPalette) > 0, "color_palette must not be empty")

	return result.ErrorOrNil()
}
