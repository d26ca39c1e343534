package gtfsrt

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

// Source supplies the current vehicle positions.
type Source interface {
	Vehicles(ctx context.Context) (*Vehicles, error)
}

// Static serves one snapshot forever.
type Static struct {
	Snapshot *Vehicles
}

func (s Static) Vehicles(context.Context) (*Vehicles, error) {
	return s.Snapshot, nil
}

// Feed polls a VehiclePositions URL. A snapshot is reused until it is older
// than the cache TTL, so a batch of requests costs one download.
type Feed struct {
	client *Client
	url    string
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	cached  *Vehicles
	fetched time.Time
}

func NewFeed(client *Client, url string, ttl time.Duration) *Feed {
	return &Feed{client: client, url: url, ttl: ttl, now: time.Now}
}

func (f *Feed) Vehicles(ctx context.Context) (*Vehicles, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil && f.now().Sub(f.fetched) < f.ttl {
		return f.cached, nil
	}

	data, err := f.client.Fetch(ctx, f.url)
	if err != nil {
		return nil, err
	}
	agg := warnings.New()
	vs, err := ParseVehiclePositions(data, agg)
	if err != nil {
		return nil, err
	}
	agg.LogAll(f.url)
	logrus.Debugf("fetched %d vehicle positions from %s", vs.Len(), f.url)

	f.cached, f.fetched = vs, f.now()
	return vs, nil
}
