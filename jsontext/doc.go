// Package jsontext converts between JSON text and document values.
//
// Decode reads one whole JSON document with a goccy/go-json token stream and
// replays it into a document.Builder, so malformed structure surfaces as the
// builder's typed errors. Encode writes a value back out, compactly or with
// indentation.
package jsontext
