// Package handler answers stat requests against a loaded catalogue.
//
// Every request is answered with its own document.Builder so requests can be
// served concurrently; Process merges the answers back into one list in
// request order. A request that cannot be answered produces an object with an
// error_message instead of failing the batch.
package handler
