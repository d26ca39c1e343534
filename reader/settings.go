package reader

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

// ParseRenderSettings reads render_settings. Keys that are absent keep their
// value from renderer.DefaultSettings; keys that are present must be well
// formed, and the result must pass Settings.Validate.
func ParseRenderSettings(m document.Map) (renderer.Settings, error) {
	s := renderer.DefaultSettings()
	var result *multierror.Error
	fail := func(err error) { result = multierror.Append(result, err) }

	numbers := []struct {
		key string
		dst *float64
	}{
		{"width", &s.Width},
		{"height", &s.Height},
		{"padding", &s.Padding},
		{"line_width", &s.LineWidth},
		{"stop_radius", &s.StopRadius},
		{"underlayer_width", &s.UnderlayerWidth},
	}
	for _, n := range numbers {
		if !m.Has(n.key) {
			continue
		}
		f, err := numberField(m, n.key)
		if err != nil {
			fail(err)
			continue
		}
		*n.dst = f
	}

	sizes := []struct {
		key string
		dst *uint32
	}{
		{"bus_label_font_size", &s.BusLabelFontSize},
		{"stop_label_font_size", &s.StopLabelFontSize},
	}
	for _, n := range sizes {
		if !m.Has(n.key) {
			continue
		}
		i, err := intField(m, n.key)
		if err != nil {
			fail(err)
			continue
		}
		if i < 0 || i > math.MaxUint32 {
			fail(fmt.Errorf("%q: %d out of range", n.key, i))
			continue
		}
		*n.dst = uint32(i)
	}

	offsets := []struct {
		key string
		dst *svg.Point
	}{
		{"bus_label_offset", &s.BusLabelOffset},
		{"stop_label_offset", &s.StopLabelOffset},
	}
	for _, o := range offsets {
		if !m.Has(o.key) {
			continue
		}
		v, _ := m.Get(o.key)
		p, err := parsePoint(v)
		if err != nil {
			fail(fmt.Errorf("%q: %w", o.key, err))
			continue
		}
		*o.dst = p
	}

	if v, ok := m.Get("underlayer_color"); ok {
		c, err := ParseColor(v)
		if err != nil {
			fail(fmt.Errorf("%q: %w", "underlayer_color", err))
		} else {
			s.UnderlayerColor = c
		}
	}

	if m.Has("color_palette") {
		list, err := listField(m, "color_palette")
		if err != nil {
			fail(err)
		} else {
			palette := make([]svg.Color, 0, list.Len())
			list.Range(func(i int, v document.Value) bool {
				c, err := ParseColor(v)
				if err != nil {
					fail(fmt.Errorf("color_palette[%d]: %w", i, err))
					return true
				}
				palette = append(palette, c)
				return true
			})
			s.ColorPalette = palette
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return s, fmt.Errorf("render_settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("render_settings: %w", err)
	}
	return s, nil
}

func parsePoint(v document.Value) (svg.Point, error) {
	l, err := v.AsList()
	if err != nil {
		return svg.Point{}, err
	}
	if l.Len() != 2 {
		return svg.Point{}, fmt.Errorf("want [dx, dy], have %d items", l.Len())
	}
	x, err := Number(l.At(0))
	if err != nil {
		return svg.Point{}, err
	}
	y, err := Number(l.At(1))
	if err != nil {
		return svg.Point{}, err
	}
	return svg.Point{X: x, Y: y}, nil
}

// ParseColor reads a color given as a name, [r, g, b] or [r, g, b, opacity].
func ParseColor(v document.Value) (svg.Color, error) {
	if v.IsString() {
		s, _ := v.AsString()
		return svg.Named(s), nil
	}
	l, err := v.AsList()
	if err != nil {
		return svg.Color{}, fmt.Errorf("color must be a string or a list: %w", err)
	}
	if l.Len() != 3 && l.Len() != 4 {
		return svg.Color{}, fmt.Errorf("color list must have 3 or 4 items, have %d", l.Len())
	}

	var rgb [3]uint8
	for i := range rgb {
		c, err := l.At(i).AsInt()
		if err != nil {
			return svg.Color{}, fmt.Errorf("channel %d: %w", i, err)
		}
		if c < 0 || c > 255 {
			return svg.Color{}, fmt.Errorf("channel %d: %d out of range [0, 255]", i, c)
		}
		rgb[i] = uint8(c)
	}
	if l.Len() == 3 {
		return svg.RGB(rgb[0], rgb[1], rgb[2]), nil
	}

	opacity, err := Number(l.At(3))
	if err != nil {
		return svg.Color{}, fmt.Errorf("opacity: %w", err)
	}
	if opacity < 0 || opacity > 1 {
		return svg.Color{}, fmt.Errorf("opacity %g out of range [0, 1]", opacity)
	}
	return svg.RGBA(rgb[0], rgb[1], rgb[2], opacity), nil
}

// ParseRoutingSettings reads routing_settings. Absent keys keep the defaults.
func ParseRoutingSettings(m document.Map) (router.Settings, error) {
	s := router.DefaultSettings()
	var result *multierror.Error

	if m.Has("bus_wait_time") {
		f, err := numberField(m, "bus_wait_time")
		result = multierror.Append(result, err)
		if err == nil {
			s.BusWaitTime = f
		}
	}
	if m.Has("bus_velocity") {
		f, err := numberField(m, "bus_velocity")
		result = multierror.Append(result, err)
		if err == nil {
			s.BusVelocity = f
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return s, fmt.Errorf("routing_settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("routing_settings: %w", err)
	}
	return s, nil
}
