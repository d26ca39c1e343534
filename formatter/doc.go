// Package formatter writes handler results in the output formats of the
// command line and the server.
//
// This package is organized into:
// - json.go: JSON responses, indented or one response per line
// - svg.go: rendered maps
// - table.go: bus statistics as a text table
package formatter
