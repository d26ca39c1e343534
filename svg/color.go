package svg

import (
	"strconv"
	"strings"
)

type colorKind uint8

const (
	colorUnset colorKind = iota
	colorNone
	colorNamed
	colorRGB
	colorRGBA
)

// Color is an SVG paint. The zero Color is unset and is not rendered at all;
// NoneColor renders as "none".
type Color struct {
	kind    colorKind
	name    string
	r, g, b uint8
	opacity float64
}

var NoneColor = Color{kind: colorNone}

// Named returns a color given by name or any literal SVG accepts, e.g.
// "white" or "#ff0000".
func Named(name string) Color { return Color{kind: colorNamed, name: name} }

func RGB(r, g, b uint8) Color { return Color{kind: colorRGB, r: r, g: g, b: b} }

func RGBA(r, g, b uint8, opacity float64) Color {
	return Color{kind: colorRGBA, r: r, g: g, b: b, opacity: opacity}
}

// IsSet reports whether c is anything but the zero Color.
func (c Color) IsSet() bool { return c.kind != colorUnset }

func (c Color) String() string {
	switch c.kind {
	case colorNamed:
		return c.name
	case colorRGB:
		return "rgb(" + channels(c) + ")"
	case colorRGBA:
		return "rgba(" + channels(c) + "," + formatNumber(c.opacity) + ")"
	default:
		return "none"
	}
}

func channels(c Color) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(c.r)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(c.g)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(c.b)))
	return b.String()
}

type StrokeLineCap uint8

const (
	LineCapUnset StrokeLineCap = iota
	LineCapButt
	LineCapRound
	LineCapSquare
)

func (c StrokeLineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return ""
	}
}

type StrokeLineJoin uint8

const (
	LineJoinUnset StrokeLineJoin = iota
	LineJoinArcs
	LineJoinBevel
	LineJoinMiter
	LineJoinMiterClip
	LineJoinRound
)

func (j StrokeLineJoin) String() string {
	switch j {
	case LineJoinArcs:
		return "arcs"
	case LineJoinBevel:
		return "bevel"
	case LineJoinMiter:
		return "miter"
	case LineJoinMiterClip:
		return "miter-clip"
	case LineJoinRound:
		return "round"
	default:
		return ""
	}
}

// formatNumber prints f with six significant digits, the way iostreams do by
// default: 99.22830019 becomes 99.2283 and 20.0 becomes 20.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
