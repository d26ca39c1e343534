package reader

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
)

// Input is everything read from one input document.
type Input struct {
	Catalogue    *catalogue.Catalogue
	Render       renderer.Settings
	Routing      router.Settings
	StatRequests []document.Value
}

// Load reads a whole input document. Only a root that is not a map is fatal:
// for any other defect Load still returns the usable part of the input
// together with an error describing every problem.
func Load(root document.Value, agg *warnings.Aggregator) (*Input, error) {
	m, err := root.AsMap()
	if err != nil {
		return nil, fmt.Errorf("input document: %w", err)
	}

	in := &Input{
		Catalogue: catalogue.New(),
		Render:    renderer.DefaultSettings(),
		Routing:   router.DefaultSettings(),
	}
	var result *multierror.Error

	if base, err := section(m, "base_requests"); err != nil {
		result = multierror.Append(result, err)
	} else {
		result = multierror.Append(result, LoadBaseRequests(base, in.Catalogue, agg))
	}

	if m.Has("render_settings") {
		rs, err := mapField(m, "render_settings")
		if err == nil {
			var s renderer.Settings
			if s, err = ParseRenderSettings(rs); err == nil {
				in.Render = s
			}
		}
		result = multierror.Append(result, err)
	}

	if m.Has("routing_settings") {
		rs, err := mapField(m, "routing_settings")
		if err == nil {
			var s router.Settings
			if s, err = ParseRoutingSettings(rs); err == nil {
				in.Routing = s
			}
		}
		result = multierror.Append(result, err)
	}

	if stats, err := section(m, "stat_requests"); err != nil {
		result = multierror.Append(result, err)
	} else {
		in.StatRequests = stats.Values()
	}

	return in, result.ErrorOrNil()
}
