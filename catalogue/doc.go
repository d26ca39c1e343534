// Package catalogue stores the transit network: stops, buses running over
// them and measured road distances between stops.
//
// A Catalogue is filled once (by the reader, the text front end or the GTFS
// importer) and then only read. Reads may run concurrently; mutation must not
// overlap with anything else.
//
// Buses keep their stops the way they were declared. For a roundtrip bus the
// list is the whole loop and ends where it starts. For any other bus the list
// is one direction only, and the bus runs it forward and then back, so
// A - B - C is travelled as A B C B A.
package catalogue
