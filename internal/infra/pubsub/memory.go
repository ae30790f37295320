package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"dealscout/internal/domain/service"
)

// MemoryBus is an in-process change feed for development and single-node
// deployments. Delivery is asynchronous and best-effort, matching the
// at-least-once-ish semantics consumers already tolerate.
type MemoryBus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]*memorySubscription
	closed bool
}

type memorySubscription struct {
	bus        *MemoryBus
	collection string
	id         int
	userID     string
	handler    func(context.Context, *service.ChangeEvent)
	once       sync.Once
}

func (s *memorySubscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		delete(s.bus.subs[s.collection], s.id)
	})
}

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	return &MemoryBus{
		logger: logger,
		subs: map[string]map[int]*memorySubscription{
			service.CollectionDeals:     {},
			service.CollectionFavorites: {},
		},
	}
}

// PublishChange dispatches the event to all matching subscribers.
func (b *MemoryBus) PublishChange(ctx context.Context, event *service.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for _, sub := range b.subs[event.Collection] {
		if sub.userID != "" && event.UserID != "" && event.UserID != sub.userID {
			continue
		}

		// Dispatch off the publisher's goroutine so a slow consumer cannot
		// block the write path.
		go sub.handler(context.WithoutCancel(ctx), event)
	}

	return nil
}

// SubscribeDeals registers a handler for any change to the deal collection.
func (b *MemoryBus) SubscribeDeals(ctx context.Context, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	return b.subscribe(service.CollectionDeals, "", handler), nil
}

// SubscribeFavorites registers a handler for favorite changes scoped to one user.
func (b *MemoryBus) SubscribeFavorites(ctx context.Context, userID string, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	return b.subscribe(service.CollectionFavorites, userID, handler), nil
}

func (b *MemoryBus) subscribe(collection, userID string, handler func(context.Context, *service.ChangeEvent)) service.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &memorySubscription{
		bus:        b,
		collection: collection,
		id:         b.nextID,
		userID:     userID,
		handler:    handler,
	}
	b.subs[collection][sub.id] = sub

	return sub
}

// Close drops all subscriptions.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for collection := range b.subs {
		b.subs[collection] = map[int]*memorySubscription{}
	}

	return nil
}
