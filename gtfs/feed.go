package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
)

type Stop struct {
	ID          string
	Name        string
	Coordinates geo.Coordinates
}

type Route struct {
	ID        string
	AgencyID  string
	ShortName string
}

// StopTime is one call of a trip at a stop.
type StopTime struct {
	StopID   string
	Sequence int
	// ShapeDist is shape_dist_traveled, valid when HasShapeDist is set.
	ShapeDist    float64
	HasShapeDist bool
}

// Feed holds the parts of a GTFS static feed the importer needs.
type Feed struct {
	Stops  []Stop
	Routes []Route
	// Trips maps route_id to its trip ids in file order.
	Trips map[string][]string
	// StopTimes maps trip_id to its stop times ordered by stop_sequence.
	StopTimes map[string][]StopTime

	stopIndex map[string]int
}

func newFeed() *Feed {
	return &Feed{
		Trips:     map[string][]string{},
		StopTimes: map[string][]StopTime{},
		stopIndex: map[string]int{},
	}
}

// Stop looks a stop up by stop_id.
func (f *Feed) Stop(id string) (Stop, bool) {
	i, ok := f.stopIndex[id]
	if !ok {
		return Stop{}, false
	}
	return f.Stops[i], true
}

// Parse reads a GTFS zip. stops.txt, routes.txt, trips.txt and stop_times.txt
// are required; other files are ignored.
func Parse(data []byte) (*Feed, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS zip: %w", err)
	}

	files := map[string]*zip.File{}
	for _, f := range zr.File {
		// Feeds zipped with an enclosing folder are accepted.
		name := strings.ToLower(f.Name[strings.LastIndex(f.Name, "/")+1:])
		files[name] = f
	}

	feed := newFeed()
	for _, name := range []string{"stops.txt", "routes.txt", "trips.txt", "stop_times.txt"} {
		f, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("GTFS zip has no %s", name)
		}
		if err := feed.consumeCSV(name, f); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return feed, nil
}

func (f *Feed) consumeCSV(name string, zf *zip.File) error {
	r, err := zf.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	head, err := csvr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rows [][]string
	for {
		row, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	switch name {
	case "stops.txt":
		sID, sN, sLat, sLon := idx("stop_id"), idx("stop_name"), idx("stop_lat"), idx("stop_lon")
		if sID < 0 || sLat < 0 || sLon < 0 {
			return fmt.Errorf("missing stop_id, stop_lat or stop_lon column")
		}
		for line, row := range rows {
			lat, err := strconv.ParseFloat(cell(row, sLat), 64)
			if err != nil {
				return fmt.Errorf("line %d: stop_lat: %w", line+2, err)
			}
			lon, err := strconv.ParseFloat(cell(row, sLon), 64)
			if err != nil {
				return fmt.Errorf("line %d: stop_lon: %w", line+2, err)
			}
			s := Stop{ID: cell(row, sID), Name: cell(row, sN), Coordinates: geo.Coordinates{Lat: lat, Lng: lon}}
			if s.Name == "" {
				s.Name = s.ID
			}
			f.stopIndex[s.ID] = len(f.Stops)
			f.Stops = append(f.Stops, s)
		}
	case "routes.txt":
		rID, rAg, rSN := idx("route_id"), idx("agency_id"), idx("route_short_name")
		if rID < 0 {
			return fmt.Errorf("missing route_id column")
		}
		for _, row := range rows {
			f.Routes = append(f.Routes, Route{ID: cell(row, rID), AgencyID: cell(row, rAg), ShortName: cell(row, rSN)})
		}
	case "trips.txt":
		rID, tID := idx("route_id"), idx("trip_id")
		if rID < 0 || tID < 0 {
			return fmt.Errorf("missing route_id or trip_id column")
		}
		for _, row := range rows {
			route := cell(row, rID)
			f.Trips[route] = append(f.Trips[route], cell(row, tID))
		}
	case "stop_times.txt":
		tID, sID, sq, sd := idx("trip_id"), idx("stop_id"), idx("stop_sequence"), idx("shape_dist_traveled")
		if tID < 0 || sID < 0 || sq < 0 {
			return fmt.Errorf("missing trip_id, stop_id or stop_sequence column")
		}
		for line, row := range rows {
			seq, err := strconv.Atoi(cell(row, sq))
			if err != nil {
				return fmt.Errorf("line %d: stop_sequence: %w", line+2, err)
			}
			st := StopTime{StopID: cell(row, sID), Sequence: seq}
			if v := cell(row, sd); v != "" {
				if d, err := strconv.ParseFloat(v, 64); err == nil {
					st.ShapeDist, st.HasShapeDist = d, true
				}
			}
			trip := cell(row, tID)
			f.StopTimes[trip] = append(f.StopTimes[trip], st)
		}
		for _, arr := range f.StopTimes {
			sort.SliceStable(arr, func(i, j int) bool { return arr[i].Sequence < arr[j].Sequence })
		}
	}
	return nil
}
