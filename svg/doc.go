// Package svg writes the small subset of SVG the map renderer needs:
// circles, polylines and text with fill and stroke properties.
//
// Output is written by hand rather than through encoding/xml so attribute
// order and number formatting stay fixed.
package svg
