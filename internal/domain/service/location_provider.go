package service

import (
	"context"

	"github.com/paulmach/orb"
)

// LocationProvider is the external geolocation source. A single call resolves
// the current position once; it may block until the context expires when the
// underlying source never answers (permission denied, gateway down). Callers
// bound it with a timeout and treat non-resolution as "unknown location".
type LocationProvider interface {
	// Locate performs a one-shot position request. The returned point is in
	// (lng, lat) order per orb convention.
	Locate(ctx context.Context) (orb.Point, error)
}
