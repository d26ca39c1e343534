package renderer

import (
	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

const fontFamily = "Verdana"

type MapRenderer struct {
	settings Settings
}

func New(settings Settings) *MapRenderer {
	return &MapRenderer{settings: settings}
}

func (r *MapRenderer) Settings() Settings { return r.settings }

// Render draws every bus of cat that has at least one stop, and every stop
// such a bus visits.
func (r *MapRenderer) Render(cat *catalogue.Catalogue) *svg.Document {
	var buses []*catalogue.Bus
	for _, b := range cat.SortedBuses() {
		if len(b.Stops) > 0 {
			buses = append(buses, b)
		}
	}

	var stops []*catalogue.Stop
	var points []geo.Coordinates
	for _, s := range cat.SortedStops() {
		if cat.HasBuses(s) {
			stops = append(stops, s)
			points = append(points, s.Coordinates)
		}
	}

	proj := NewSphereProjector(points, r.settings.Width, r.settings.Height, r.settings.Padding)
	doc := &svg.Document{}
	r.addRouteLines(doc, buses, proj)
	r.addBusLabels(doc, buses, proj)
	r.addStopCircles(doc, stops, proj)
	r.addStopLabels(doc, stops, proj)
	return doc
}

func (r *MapRenderer) paletteColor(i int) svg.Color {
	if len(r.settings.ColorPalette) == 0 {
		return svg.NoneColor
	}
	return r.settings.ColorPalette[i%len(r.settings.ColorPalette)]
}

func (r *MapRenderer) addRouteLines(doc *svg.Document, buses []*catalogue.Bus, proj SphereProjector) {
	for i, bus := range buses {
		line := &svg.Polyline{PathProps: svg.PathProps{
			Fill:           svg.NoneColor,
			Stroke:         r.paletteColor(i),
			StrokeWidth:    r.settings.LineWidth,
			StrokeLineCap:  svg.LineCapRound,
			StrokeLineJoin: svg.LineJoinRound,
		}}
		for _, s := range bus.Route() {
			line.AddPoint(proj.Project(s.Coordinates))
		}
		doc.Add(line)
	}
}

func (r *MapRenderer) underlayer() svg.PathProps {
	return svg.PathProps{
		Fill:           r.settings.UnderlayerColor,
		Stroke:         r.settings.UnderlayerColor,
		StrokeWidth:    r.settings.UnderlayerWidth,
		StrokeLineCap:  svg.LineCapRound,
		StrokeLineJoin: svg.LineJoinRound,
	}
}

func (r *MapRenderer) addBusLabels(doc *svg.Document, buses []*catalogue.Bus, proj SphereProjector) {
	for i, bus := range buses {
		for _, stop := range bus.Terminals() {
			label := svg.Text{
				Position:   proj.Project(stop.Coordinates),
				Offset:     r.settings.BusLabelOffset,
				FontSize:   r.settings.BusLabelFontSize,
				FontFamily: fontFamily,
				FontWeight: "bold",
				Data:       bus.Name,
			}
			under := label
			under.PathProps = r.underlayer()
			label.Fill = r.paletteColor(i)
			doc.Add(&under)
			doc.Add(&label)
		}
	}
}

func (r *MapRenderer) addStopCircles(doc *svg.Document, stops []*catalogue.Stop, proj SphereProjector) {
	for _, s := range stops {
		doc.Add(&svg.Circle{
			Center:    proj.Project(s.Coordinates),
			Radius:    r.settings.StopRadius,
			PathProps: svg.PathProps{Fill: svg.Named("white")},
		})
	}
}

func (r *MapRenderer) addStopLabels(doc *svg.Document, stops []*catalogue.Stop, proj SphereProjector) {
	for _, s := range stops {
		label := svg.Text{
			Position:   proj.Project(s.Coordinates),
			Offset:     r.settings.StopLabelOffset,
			FontSize:   r.settings.StopLabelFontSize,
			FontFamily: fontFamily,
			Data:       s.Name,
		}
		under := label
		under.PathProps = r.underlayer()
		label.Fill = svg.Named("black")
		doc.Add(&under)
		doc.Add(&label)
	}
}
