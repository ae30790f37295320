// Package usecase defines the application-facing interfaces and their DTOs.
package usecase

import (
	"context"

	"dealscout/internal/domain/entity"

	"github.com/paulmach/orb"
)

// FeedQuery carries the caller-supplied pipeline inputs for one ranking pass.
// Every field degrades gracefully: a nil location falls back to the
// geolocation usecase, empty filters are no-ops.
type FeedQuery struct {
	// Location overrides the resolved position when the caller already knows
	// where the user is (e.g. a map recenter).
	Location *orb.Point

	// Preferences is the user's preferred category set from their profile.
	Preferences []string

	// PreferenceFilter toggles the soft preference stage; nil means "use the
	// configured default".
	PreferenceFilter *bool

	// Categories restricts the feed to these raw category tags (hard filter).
	Categories []string

	// Search is a free-text query matched against title, description, venue
	// name and raw category tag (hard filter).
	Search string
}

// FeedResult is the output of one ranking pass.
type FeedResult struct {
	// Deals is the ordered feed.
	Deals []*entity.RankedDeal

	// LocationResolved reports whether a user position informed the pass.
	// False means the position could not be acquired (permission denied,
	// timeout, no cached fix) and the distance stages were skipped.
	LocationResolved bool
}

// FeedUsecase produces the ordered deal feed. It owns the latest deal
// snapshot, refetched wholesale on every deal-store change signal.
type FeedUsecase interface {
	// Start loads the initial snapshot and subscribes to the deal change
	// feed. Idempotent.
	Start(ctx context.Context) error

	// Stop tears down the change-feed subscription.
	Stop()

	// GetFeed runs one ranking pass against the latest snapshot and the
	// latest known location. It never fails for degraded inputs; it returns
	// an error only when no snapshot has ever been loaded.
	GetFeed(ctx context.Context, query *FeedQuery) (*FeedResult, error)

	// RefreshSnapshot refetches the deal snapshot from the store, keeping the
	// previous snapshot on failure.
	RefreshSnapshot(ctx context.Context) error
}
