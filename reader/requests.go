package reader

import (
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
)

// Stat request types.
const (
	TypeStop     = "Stop"
	TypeBus      = "Bus"
	TypeMap      = "Map"
	TypeRoute    = "Route"
	TypeVehicles = "Vehicles"
)

// ErrNoID marks a stat request whose id could not be read.
var ErrNoID = errors.New("request has no integer id")

type StatRequest struct {
	ID   int64
	Type string
	// Name is the stop or bus asked about.
	Name string
	From string
	To   string
}

// ParseStatRequest reads one stat request. On failure the returned request
// still carries the id when it could be read, so the caller can answer with
// an error for that id; errors.Is(err, ErrNoID) tells when it could not.
func ParseStatRequest(v document.Value) (StatRequest, error) {
	m, err := v.AsMap()
	if err != nil {
		return StatRequest{}, fmt.Errorf("%w: %w", ErrNoID, err)
	}
	var req StatRequest
	req.ID, err = intField(m, "id")
	if err != nil {
		return req, fmt.Errorf("%w: %w", ErrNoID, err)
	}
	if req.Type, err = stringField(m, "type"); err != nil {
		return req, err
	}

	switch req.Type {
	case TypeStop, TypeBus, TypeVehicles:
		req.Name, err = stringField(m, "name")
	case TypeRoute:
		if req.From, err = stringField(m, "from"); err == nil {
			req.To, err = stringField(m, "to")
		}
	case TypeMap:
	default:
		err = fmt.Errorf("unknown request type %q", req.Type)
	}
	return req, err
}
