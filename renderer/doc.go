// Package renderer draws the bus network of a catalogue as an SVG map.
//
// Coordinates are projected onto the canvas with a SphereProjector fitted to
// the stops that some bus visits. The map is painted in four layers: route
// lines, bus labels, stop circles, stop labels.
package renderer
