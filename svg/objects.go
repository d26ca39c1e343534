package svg

import (
	"strconv"
	"strings"
)

type Point struct {
	X, Y float64
}

// PathProps are the paint attributes shared by every shape. Unset fields are
// omitted from the output.
type PathProps struct {
	Fill           Color
	Stroke         Color
	StrokeWidth    float64
	StrokeLineCap  StrokeLineCap
	StrokeLineJoin StrokeLineJoin
}

func (p PathProps) writeAttrs(b *strings.Builder) {
	if p.Fill.IsSet() {
		writeAttr(b, "fill", p.Fill.String())
	}
	if p.Stroke.IsSet() {
		writeAttr(b, "stroke", p.Stroke.String())
	}
	if p.StrokeWidth != 0 {
		writeAttr(b, "stroke-width", formatNumber(p.StrokeWidth))
	}
	if p.StrokeLineCap != LineCapUnset {
		writeAttr(b, "stroke-linecap", p.StrokeLineCap.String())
	}
	if p.StrokeLineJoin != LineJoinUnset {
		writeAttr(b, "stroke-linejoin", p.StrokeLineJoin.String())
	}
}

// Object is anything that can be placed in a Document.
type Object interface {
	renderObject(b *strings.Builder)
}

type Circle struct {
	PathProps
	Center Point
	Radius float64
}

func (c *Circle) renderObject(b *strings.Builder) {
	b.WriteString("<circle")
	writeAttr(b, "cx", formatNumber(c.Center.X))
	writeAttr(b, "cy", formatNumber(c.Center.Y))
	writeAttr(b, "r", formatNumber(c.Radius))
	c.writeAttrs(b)
	b.WriteString("/>")
}

type Polyline struct {
	PathProps
	Points []Point
}

func (p *Polyline) AddPoint(pt Point) *Polyline {
	p.Points = append(p.Points, pt)
	return p
}

func (p *Polyline) renderObject(b *strings.Builder) {
	b.WriteString("<polyline points=\"")
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(pt.X))
		b.WriteByte(',')
		b.WriteString(formatNumber(pt.Y))
	}
	b.WriteByte('"')
	p.writeAttrs(b)
	b.WriteString("/>")
}

type Text struct {
	PathProps
	Position   Point
	Offset     Point
	FontSize   uint32
	FontFamily string
	FontWeight string
	Data       string
}

func (t *Text) renderObject(b *strings.Builder) {
	b.WriteString("<text")
	writeAttr(b, "x", formatNumber(t.Position.X))
	writeAttr(b, "y", formatNumber(t.Position.Y))
	writeAttr(b, "dx", formatNumber(t.Offset.X))
	writeAttr(b, "dy", formatNumber(t.Offset.Y))
	writeAttr(b, "font-size", strconv.FormatUint(uint64(t.FontSize), 10))
	if t.FontFamily != "" {
		writeAttr(b, "font-family", t.FontFamily)
	}
	if t.FontWeight != "" {
		writeAttr(b, "font-weight", t.FontWeight)
	}
	t.writeAttrs(b)
	b.WriteByte('>')
	b.WriteString(xmlEscape(t.Data))
	b.WriteString("</text>")
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString("=\"")
	b.WriteString(xmlEscape(value))
	b.WriteByte('"')
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return escaper.Replace(s)
}
