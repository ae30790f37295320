package usecase

import (
	"context"

	"github.com/paulmach/orb"
)

// GeolocationUsecase owns the last-known position. Absence of a position is a
// normal state, never an error: callers receive nil and render the ungated
// feed.
type GeolocationUsecase interface {
	// Current returns the latest position, serving a recent cached fix when
	// one exists and otherwise issuing a one-shot, timeout-bounded request to
	// the location source. Returns nil when the position is unknown.
	Current(ctx context.Context) *orb.Point

	// Invalidate drops the cached fix so the next Current call asks the
	// source again.
	Invalidate()
}
