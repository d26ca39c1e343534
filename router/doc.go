// Package router answers fastest-route questions over a catalogue.
//
// Every stop becomes two vertices: arriving at the stop and being ready to
// board. A Wait edge between them costs the bus wait time. For each bus and
// each direction it runs, a Bus edge joins the boarding vertex of every stop
// to the arrival vertex of every later stop, weighted by the ride time. The
// fastest route is then a plain shortest path.
package router
