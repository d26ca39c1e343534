package reader

import (
	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/document"
)

// Export writes cat as an input document holding only base_requests: every
// stop with its outgoing road distances, then every bus. Loading the result
// with Load reproduces the catalogue.
func Export(cat *catalogue.Catalogue) (document.Value, error) {
	outgoing := make(map[*catalogue.Stop][]catalogue.Distance)
	for _, d := range cat.Distances() {
		outgoing[d.From] = append(outgoing[d.From], d)
	}

	list := document.NewChain().StartMap().Key("base_requests").StartList()
	for _, s := range cat.Stops() {
		dist := list.StartMap().
			Key("type").Value(document.String("Stop")).
			Key("name").Value(document.String(s.Name)).
			Key("latitude").Value(document.Double(s.Coordinates.Lat)).
			Key("longitude").Value(document.Double(s.Coordinates.Lng)).
			Key("road_distances").StartMap()
		for _, d := range outgoing[s] {
			dist = dist.Key(d.To.Name).Value(document.Int(int64(d.Meters)))
		}
		dist.EndMap().EndMap()
	}
	for _, b := range cat.Buses() {
		stops := make([]string, len(b.Stops))
		for i, s := range b.Stops {
			stops[i] = s.Name
		}
		list.StartMap().
			Key("type").Value(document.String("Bus")).
			Key("name").Value(document.String(b.Name)).
			Key("stops").Value(document.Strings(stops...)).
			Key("is_roundtrip").Value(document.Bool(b.IsRoundtrip)).
			EndMap()
	}
	return list.EndList().EndMap().Build()
}
