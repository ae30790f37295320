package usecase

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteUsecase synchronizes per-user favorite state with the backend.
// Each user session owns an in-memory copy of the backend's favorite set;
// the copy is replaced wholesale on any change signal, so it always converges
// to the backend's truth even when individual notifications are lost.
type FavoriteUsecase interface {
	// StartSession loads the user's favorite set and subscribes to their
	// favorite change feed. Idempotent: starting an already-started session
	// is a no-op; sessions for different users are fully isolated.
	StartSession(ctx context.Context, userID uuid.UUID) error

	// StopSession tears down the user's subscription and discards their
	// local set. Idempotent.
	StopSession(userID uuid.UUID)

	// StopAll tears down every session; used on shutdown.
	StopAll()

	// IsFavorite is a pure lookup against the in-memory set. It reports
	// false, not an error, when the session has not loaded or the caller is
	// anonymous.
	IsFavorite(userID, dealID uuid.UUID) bool

	// Toggle flips the favorite state for the deal and reports the new
	// state. The local set is updated only from the backend's confirmed
	// response; on failure it is left untouched. An anonymous caller
	// (uuid.Nil or no session) is rejected with ErrSignInRequired.
	Toggle(ctx context.Context, userID, dealID uuid.UUID) (bool, error)

	// Reconcile unconditionally refetches the user's set, covering signals
	// dropped while the client was backgrounded.
	Reconcile(ctx context.Context, userID uuid.UUID) error

	// FavoriteDealIDs returns the deal IDs in the user's current set, most
	// recently loaded order.
	FavoriteDealIDs(userID uuid.UUID) []uuid.UUID
}
