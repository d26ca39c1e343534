package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/config"
	"github.com/theoremus-urban-solutions/transport-catalogue/gtfs"
	"github.com/theoremus-urban-solutions/transport-catalogue/gtfsrt"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
	"github.com/theoremus-urban-solutions/transport-catalogue/jsontext"
	"github.com/theoremus-urban-solutions/transport-catalogue/reader"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// openInput opens path, or stdin when path is empty or "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// createOutput creates path, or returns stdout when path is empty or "-".
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// sourceOpts selects where the network comes from.
type sourceOpts struct {
	input  string
	gtfs   string
	agency string
	// useConfigFeed falls back to the GTFS feed of the configuration when
	// neither --input nor --gtfs is given.
	useConfigFeed bool
}

func (s *sourceOpts) gtfsLocation(root *rootOpts) (location, agency string, err error) {
	if s.gtfs != "" || s.input != "" || !s.useConfigFeed {
		return s.gtfs, s.agency, nil
	}
	gtfsCfg, _, err := root.feedConfig()
	if err != nil {
		return "", "", err
	}
	agency = s.agency
	if agency == "" {
		agency = gtfsCfg.AgencyID
	}
	return gtfsCfg.Location(), agency, nil
}

// load reads the network: from GTFS when a location is known, else from the
// JSON input document. Defects of the input document are logged; only an
// unreadable document fails.
func (s *sourceOpts) load(ctx context.Context, root *rootOpts) (*reader.Input, error) {
	location, agency, err := s.gtfsLocation(root)
	if err != nil {
		return nil, err
	}
	if location != "" {
		cat, err := loadGTFS(ctx, location, agency)
		if err != nil {
			return nil, err
		}
		return &reader.Input{Catalogue: cat, Render: renderer.DefaultSettings(), Routing: router.DefaultSettings()}, nil
	}

	r, err := openInput(s.input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	doc, err := jsontext.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("input document: %w", err)
	}
	agg := warnings.New()
	in, err := reader.Load(doc, agg)
	if in == nil {
		return nil, err
	}
	if err != nil {
		logrus.Warnf("input document: %v", err)
	}
	agg.LogAll(displayName(s.input))
	return in, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

func loadGTFS(ctx context.Context, location, agency string) (*catalogue.Catalogue, error) {
	data, err := gtfs.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	feed, err := gtfs.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	cat := catalogue.New()
	agg := warnings.New()
	if err := feed.Load(cat, agg, agency); err != nil {
		logrus.Warnf("GTFS %s: %v", location, err)
	}
	agg.LogAll(location)
	return cat, nil
}

// vehiclesSource picks the vehicle positions for Vehicles requests: the
// --vehicles flag (file or URL), else the feed's configured URL, else none.
func vehiclesSource(flag string, rt config.GTFSRTConfig) (gtfsrt.Source, error) {
	switch {
	case flag != "" && !isURL(flag):
		data, err := os.ReadFile(flag)
		if err != nil {
			return nil, err
		}
		agg := warnings.New()
		vs, err := gtfsrt.ParseVehiclePositions(data, agg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		agg.LogAll(flag)
		return gtfsrt.Static{Snapshot: vs}, nil
	case flag != "":
		return gtfsrt.NewFeed(gtfsrt.NewClient(rt.Timeout()), flag, rt.CacheTTL()), nil
	case rt.VehiclePositionsURL != "":
		return gtfsrt.NewFeed(gtfsrt.NewClient(rt.Timeout()), rt.VehiclePositionsURL, rt.CacheTTL()), nil
	}
	return nil, nil
}
