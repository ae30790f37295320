package service

import (
	"context"
)

// ChangeKind enumerates the mutation kinds a change event may carry.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// Watched collection names.
const (
	CollectionDeals     = "deals"
	CollectionFavorites = "favorites"
)

// ChangeEvent represents a row-change notification on a watched collection.
// Consumers must not trust the payload beyond its routing fields: the
// contract is refetch-on-signal, so the event only says THAT something
// changed, never what the authoritative state now is.
type ChangeEvent struct {
	RequestID  string     `json:"request_id,omitempty"` // For distributed tracing
	Collection string     `json:"collection"`           // "deals" or "favorites"
	Kind       ChangeKind `json:"kind"`
	RowID      string     `json:"row_id,omitempty"`  // Advisory only
	UserID     string     `json:"user_id,omitempty"` // Scope for favorite events
}

// EventPublisher defines the interface for emitting change events to the
// notification channel.
type EventPublisher interface {
	// PublishChange publishes a change event for the given collection.
	PublishChange(ctx context.Context, event *ChangeEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}

// Subscription is a handle to an active change-feed subscription.
type Subscription interface {
	// Unsubscribe stops delivery and releases the subscription. Safe to call
	// more than once.
	Unsubscribe()
}

// EventSubscriber defines the interface for receiving change events. Handlers
// are invoked on any event matching the scope; a nil-safe no-op subscriber is
// used when the channel is not configured.
type EventSubscriber interface {
	// SubscribeDeals registers a handler for any change to the deal
	// collection.
	SubscribeDeals(ctx context.Context, handler func(context.Context, *ChangeEvent)) (Subscription, error)

	// SubscribeFavorites registers a handler for favorite changes scoped to
	// one user. Events for other users are filtered out before the handler
	// runs.
	SubscribeFavorites(ctx context.Context, userID string, handler func(context.Context, *ChangeEvent)) (Subscription, error)

	// Close releases any resources held by the subscriber.
	Close() error
}
