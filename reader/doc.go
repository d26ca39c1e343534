// Package reader turns an input document into catalogue contents, render and
// routing settings and stat requests, and writes a catalogue back out as base
// requests.
//
// The input document is a map with four optional sections:
//
//	{
//	  "base_requests":    [ {"type": "Stop", ...}, {"type": "Bus", ...} ],
//	  "render_settings":  { ... },
//	  "routing_settings": { "bus_wait_time": 6, "bus_velocity": 40 },
//	  "stat_requests":    [ {"id": 1, "type": "Bus", "name": "114"} ]
//	}
//
// Loading is lenient where it can be: every defect in a section is collected
// into one multierror, and whatever is valid is still loaded.
package reader
