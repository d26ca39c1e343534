package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/geo"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

// Command is one base line: "<Kind> <Name>: <Description>".
type Command struct {
	Kind        string
	Name        string
	Description string
}

// Input is a parsed text document.
type Input struct {
	Base  []Command
	Stats []string
}

// ParseCommand splits a base line. ok is false when the line has no kind,
// name or colon.
func ParseCommand(line string) (cmd Command, ok bool) {
	head, desc, found := strings.Cut(line, ":")
	if !found {
		return Command{}, false
	}
	kind, name, found := strings.Cut(strings.TrimSpace(head), " ")
	name = strings.TrimSpace(name)
	if !found || kind == "" || name == "" {
		return Command{}, false
	}
	return Command{Kind: kind, Name: name, Description: strings.TrimSpace(desc)}, true
}

// Read parses a whole text document.
func Read(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	in := &Input{}
	base, err := readBlock(sc, "base")
	if err != nil {
		return nil, err
	}
	for i, line := range base {
		cmd, ok := ParseCommand(line)
		if !ok {
			return nil, fmt.Errorf("base line %d: malformed %q", i+1, line)
		}
		in.Base = append(in.Base, cmd)
	}

	stats, err := readBlock(sc, "stat")
	if err != nil {
		return nil, err
	}
	for _, line := range stats {
		in.Stats = append(in.Stats, strings.TrimSpace(line))
	}
	return in, nil
}

// readBlock reads a count line and then that many lines. A missing count at
// end of input is an empty block.
func readBlock(sc *bufio.Scanner, what string) ([]string, error) {
	var countLine string
	for countLine == "" {
		if !sc.Scan() {
			return nil, sc.Err()
		}
		countLine = strings.TrimSpace(sc.Text())
	}
	n, err := strconv.Atoi(countLine)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s request count: invalid %q", what, countLine)
	}

	lines := make([]string, 0, n)
	for len(lines) < n {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%s requests: want %d lines, got %d", what, n, len(lines))
		}
		lines = append(lines, sc.Text())
	}
	return lines, nil
}

type stopLine struct {
	coords    geo.Coordinates
	distances []distance
}

type distance struct {
	to     string
	meters int
}

// parseStop reads "lat, lng[, Dm to Name]...".
func parseStop(desc string) (stopLine, error) {
	parts := strings.Split(desc, ",")
	if len(parts) < 2 {
		return stopLine{}, fmt.Errorf("want latitude and longitude, got %q", desc)
	}
	var s stopLine
	var err error
	if s.coords.Lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return stopLine{}, fmt.Errorf("latitude: %w", err)
	}
	if s.coords.Lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return stopLine{}, fmt.Errorf("longitude: %w", err)
	}
	if !s.coords.Valid() {
		return stopLine{}, fmt.Errorf("coordinates %s out of range", s.coords)
	}

	for _, p := range parts[2:] {
		meters, to, ok := strings.Cut(strings.TrimSpace(p), "m to ")
		if !ok {
			return stopLine{}, fmt.Errorf("malformed distance %q", p)
		}
		d, err := strconv.Atoi(strings.TrimSpace(meters))
		if err != nil || d < 0 {
			return stopLine{}, fmt.Errorf("malformed distance %q", p)
		}
		s.distances = append(s.distances, distance{to: strings.TrimSpace(to), meters: d})
	}
	return s, nil
}

// ParseRoute reads "A > B > A" (roundtrip) or "A - B - C".
func ParseRoute(desc string) (stops []string, isRoundtrip bool) {
	sep := " - "
	if strings.Contains(desc, ">") {
		sep, isRoundtrip = ">", true
	} else if !strings.Contains(desc, sep) {
		sep = "-"
	}
	for _, s := range strings.Split(desc, sep) {
		if s = strings.TrimSpace(s); s != "" {
			stops = append(stops, s)
		}
	}
	return stops, isRoundtrip
}

// Apply loads the base commands into cat: stops first, then distances, then
// buses. Every bad command is reported; the good ones are still applied.
func Apply(cmds []Command, cat *catalogue.Catalogue, agg *warnings.Aggregator) error {
	var result *multierror.Error
	stops := make(map[string]stopLine)

	for _, cmd := range cmds {
		if cmd.Kind != "Stop" {
			continue
		}
		s, err := parseStop(cmd.Description)
		if err == nil {
			_, err = cat.AddStop(cmd.Name, s.coords)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("stop %q: %w", cmd.Name, err))
			continue
		}
		stops[cmd.Name] = s
	}

	for _, cmd := range cmds {
		s, ok := stops[cmd.Name]
		if cmd.Kind != "Stop" || !ok {
			continue
		}
		for _, d := range s.distances {
			if err := cat.SetDistance(cmd.Name, d.to, d.meters); err != nil {
				agg.Add(warnings.UnknownStop, d.to)
				result = multierror.Append(result, fmt.Errorf("stop %q: %w", cmd.Name, err))
			}
		}
	}

	for _, cmd := range cmds {
		switch cmd.Kind {
		case "Stop":
		case "Bus":
			names, roundtrip := ParseRoute(cmd.Description)
			bus, err := cat.AddBus(cmd.Name, names, roundtrip)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("bus %q: %w", cmd.Name, err))
				continue
			}
			for _, pair := range cat.MissingDistances(bus) {
				agg.Add(warnings.MissingDistance, pair[0].Name+" -> "+pair[1].Name)
			}
		default:
			result = multierror.Append(result, fmt.Errorf("unknown command %q", cmd.Kind))
		}
	}
	return result.ErrorOrNil()
}
