/*
Package gtfs imports GTFS static data into a transport catalogue.

The package accepts raw zip bytes; Fetch is a small helper that reads them
from a local path or an HTTP URL.

# Basic Usage

	data, err := gtfs.Fetch(ctx, "~/feeds/gtfs.zip")
	if err != nil {
	    log.Fatal(err)
	}
	cat := catalogue.New()
	if err := gtfs.Import(data, cat, warnings.New()); err != nil {
	    log.Fatal(err)
	}

# Mapping

  - Every stop in stops.txt becomes a catalogue stop. A stop_name that is
    already taken gets the stop_id appended in parentheses.
  - Every route becomes one bus, named by route_short_name or route_id. Its
    stops are those of the route's longest trip. A trip that ends where it
    started makes a roundtrip bus.
  - Road distances between consecutive stops come from shape_dist_traveled
    when both stop times carry it, otherwise from the great-circle distance.

Parse and Feed.Load split the two steps, for example to import a single
agency.
*/
package gtfs
