// Package warnings aggregates repetitive ingestion warnings so that a large
// feed produces one log line per kind of problem instead of one per record.
package warnings

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Warning kinds
const (
	UnknownStop         = "unknown_stop"
	MissingDistance     = "missing_distance"
	DuplicateStop       = "duplicate_stop"
	EmptyRoute          = "empty_route"
	TripWithoutStops    = "trip_without_stops"
	RouteWithoutTrips   = "route_without_trips"
	VehicleWithoutRoute = "vehicle_without_route"
)

const maxExamples = 3

type info struct {
	count    int
	examples []string
}

// Aggregator counts warnings per kind and keeps a few example ids for each.
// The zero value is not usable; call New.
type Aggregator struct {
	mu       sync.Mutex
	warnings map[string]*info
}

func New() *Aggregator {
	return &Aggregator{warnings: make(map[string]*info)}
}

// Add records one occurrence of kind, identified by example.
func (a *Aggregator) Add(kind, example string) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	w := a.warnings[kind]
	if w == nil {
		w = &info{examples: make([]string, 0, maxExamples)}
		a.warnings[kind] = w
	}
	w.count++
	if len(w.examples) < maxExamples {
		w.examples = append(w.examples, example)
	}
}

// Count returns the number of occurrences recorded for kind.
func (a *Aggregator) Count(kind string) int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if w := a.warnings[kind]; w != nil {
		return w.count
	}
	return 0
}

// Total returns the number of occurrences over all kinds.
func (a *Aggregator) Total() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, w := range a.warnings {
		n += w.count
	}
	return n
}

// Messages returns one consolidated line per kind, sorted by kind.
func (a *Aggregator) Messages(source string) []string {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	kinds := make([]string, 0, len(a.warnings))
	for k := range a.warnings {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	msgs := make([]string, 0, len(kinds))
	for _, k := range kinds {
		msgs = append(msgs, format(k, source, a.warnings[k]))
	}
	return msgs
}

// LogAll writes every consolidated message at warn level.
func (a *Aggregator) LogAll(source string) {
	for _, m := range a.Messages(source) {
		logrus.Warn(m)
	}
}

func format(kind, source string, w *info) string {
	var description, action string

	switch kind {
	case UnknownStop:
		description = "references to unknown stops"
		action = "Skipping the reference"
	case MissingDistance:
		description = "consecutive stops without a road distance"
		action = "Using the great-circle distance"
	case DuplicateStop:
		description = "stops defined more than once"
		action = "Keeping the first definition"
	case EmptyRoute:
		description = "routes with no stops"
		action = "Skipping the route"
	case TripWithoutStops:
		description = "trips with no stop_times"
		action = "Ignoring the trip"
	case RouteWithoutTrips:
		description = "routes with no trips"
		action = "Skipping the route"
	case VehicleWithoutRoute:
		description = "vehicles with no route_id"
		action = "Leaving the vehicle out of route lookups"
	default:
		description = "unclassified issues"
		action = "Continuing"
	}

	return fmt.Sprintf("Source %s has %s (%d occurrences). %s. Examples: %s",
		source, description, w.count, action, strings.Join(w.examples, ", "))
}
