package handler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/gtfsrt"
	"github.com/theoremus-urban-solutions/transport-catalogue/reader"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/router"
)

// NotFound is the error_message of a request about an unknown stop or bus,
// or a route that does not exist.
const NotFound = "not found"

// Handler answers stat requests. It is safe for concurrent use; the catalogue
// must not change while a Handler uses it.
type Handler struct {
	cat      *catalogue.Catalogue
	renderer *renderer.MapRenderer
	routing  router.Settings
	vehicles gtfsrt.Source
	workers  int

	routerOnce sync.Once
	router     *router.TransportRouter

	mapOnce sync.Once
	mapSVG  string
}

type Option func(*Handler)

// WithVehicles enables Vehicles requests.
func WithVehicles(src gtfsrt.Source) Option {
	return func(h *Handler) { h.vehicles = src }
}

// WithWorkers bounds the number of requests answered at once. n <= 0 means
// the number of CPUs.
func WithWorkers(n int) Option {
	return func(h *Handler) { h.workers = n }
}

func New(cat *catalogue.Catalogue, render renderer.Settings, routing router.Settings, opts ...Option) *Handler {
	h := &Handler{
		cat:      cat,
		renderer: renderer.New(render),
		routing:  routing,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.workers <= 0 {
		h.workers = runtime.NumCPU()
	}
	return h
}

// FromInput creates a handler for everything read from one input document.
func FromInput(in *reader.Input, opts ...Option) *Handler {
	return New(in.Catalogue, in.Render, in.Routing, opts...)
}

func (h *Handler) Catalogue() *catalogue.Catalogue { return h.cat }

// Router returns the transport router, building it on first use.
func (h *Handler) Router() *router.TransportRouter {
	h.routerOnce.Do(func() {
		h.router = router.New(h.cat, h.routing)
	})
	return h.router
}

// MapSVG renders the catalogue map once and returns the SVG text.
func (h *Handler) MapSVG() string {
	h.mapOnce.Do(func() {
		h.mapSVG = h.renderer.Render(h.cat).String()
	})
	return h.mapSVG
}

// Process answers every request and returns the answers as one list in
// request order. Only a cancelled context or a document that could not be
// built fails the batch.
func (h *Handler) Process(ctx context.Context, requests []document.Value) (document.Value, error) {
	responses := make([]document.Value, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)
	for i, req := range requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp, err := h.Respond(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return document.Value{}, err
	}

	list := document.NewChain().StartList()
	for _, resp := range responses {
		list = list.Value(resp)
	}
	return list.EndList().Build()
}

// Respond answers one request.
func (h *Handler) Respond(ctx context.Context, v document.Value) (document.Value, error) {
	req, err := reader.ParseStatRequest(v)
	if err != nil {
		logrus.Debugf("malformed stat request: %v", err)
		if errors.Is(err, reader.ErrNoID) {
			return errorResponse(nil, err.Error())
		}
		return errorResponse(&req.ID, err.Error())
	}

	switch req.Type {
	case reader.TypeStop:
		return h.stop(req)
	case reader.TypeBus:
		return h.bus(req)
	case reader.TypeMap:
		return h.renderMap(req)
	case reader.TypeRoute:
		return h.route(req)
	case reader.TypeVehicles:
		return h.liveVehicles(ctx, req)
	}
	return errorResponse(&req.ID, fmt.Sprintf("unknown request type %q", req.Type))
}

func errorResponse(id *int64, msg string) (document.Value, error) {
	m := document.NewChain().StartMap()
	if id != nil {
		m = m.Key("request_id").Value(document.Int(*id))
	}
	return m.Key("error_message").Value(document.String(msg)).EndMap().Build()
}
