package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"dealscout/config"
	"dealscout/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	"github.com/pkg/errors"
)

// googleChangeFeed implements the change feed over Google Cloud Pub/Sub. One
// topic per collection; each process consumes through its own subscription
// (SubscriptionPrefix) so every instance sees every signal.
//
// Multiple Receive calls on one subscription compete for messages, so the
// favorites subscription is consumed by a single process-wide loop that fans
// events out to the registered per-user handlers.
type googleChangeFeed struct {
	client             *pubsub.Client
	dealPublisher      *pubsub.Publisher
	favoritePublisher  *pubsub.Publisher
	subscriptionPrefix string
	logger             *slog.Logger

	mu      sync.Mutex
	cancels []context.CancelFunc

	favMu       sync.Mutex
	favNextID   int
	favStarted  bool
	favHandlers map[string]map[int]func(context.Context, *service.ChangeEvent)
}

// NewGoogleChangeFeed creates a Pub/Sub backed change feed.
func NewGoogleChangeFeed(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (*googleChangeFeed, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &googleChangeFeed{
		client:             client,
		dealPublisher:      client.Publisher(cfg.DealTopicID),
		favoritePublisher:  client.Publisher(cfg.FavoriteTopicID),
		subscriptionPrefix: cfg.SubscriptionPrefix,
		logger:             logger,
		favHandlers:        make(map[string]map[int]func(context.Context, *service.ChangeEvent)),
	}, nil
}

// PublishChange publishes a change event to the topic for its collection.
func (f *googleChangeFeed) PublishChange(ctx context.Context, event *service.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attributes := map[string]string{
		"collection": event.Collection,
		"kind":       string(event.Kind),
	}
	if event.UserID != "" {
		attributes["user_id"] = event.UserID
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	publisher := f.dealPublisher
	if event.Collection == service.CollectionFavorites {
		publisher = f.favoritePublisher
	}

	result := publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	f.logger.Debug("[GooglePubSub] Change event published",
		slog.String("collection", event.Collection),
		slog.String("server_id", serverID),
	)

	return nil
}

// SubscribeDeals registers a handler for any change to the deal collection.
func (f *googleChangeFeed) SubscribeDeals(ctx context.Context, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	return f.receive(ctx, f.subscriptionPrefix+"-deals", service.CollectionDeals, handler)
}

// SubscribeFavorites registers a handler for favorite changes scoped to one
// user. All registrations share one Receive loop; events are routed by the
// event's user ID, and events without one reach every handler.
func (f *googleChangeFeed) SubscribeFavorites(ctx context.Context, userID string, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	f.favMu.Lock()
	defer f.favMu.Unlock()

	f.favNextID++
	id := f.favNextID
	if f.favHandlers[userID] == nil {
		f.favHandlers[userID] = make(map[int]func(context.Context, *service.ChangeEvent))
	}
	f.favHandlers[userID][id] = handler

	if !f.favStarted {
		f.favStarted = true
		f.startFavoriteReceiver(ctx)
	}

	return &favoriteRegistration{feed: f, userID: userID, id: id}, nil
}

type googleSubscription struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (s *googleSubscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// favoriteRegistration is one handler's slot in the favorites fan-out table.
type favoriteRegistration struct {
	feed   *googleChangeFeed
	userID string
	id     int
	once   sync.Once
}

func (r *favoriteRegistration) Unsubscribe() {
	r.once.Do(func() {
		r.feed.favMu.Lock()
		defer r.feed.favMu.Unlock()

		delete(r.feed.favHandlers[r.userID], r.id)
		if len(r.feed.favHandlers[r.userID]) == 0 {
			delete(r.feed.favHandlers, r.userID)
		}
	})
}

// startFavoriteReceiver launches the shared favorites Receive loop. Caller
// holds favMu. The loop outlives the session context that triggered it and
// stops on Close.
func (f *googleChangeFeed) startFavoriteReceiver(ctx context.Context) {
	subscriptionID := f.subscriptionPrefix + "-favorites"
	receiveCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	f.mu.Lock()
	f.cancels = append(f.cancels, cancel)
	f.mu.Unlock()

	subscriber := f.client.Subscriber(subscriptionID)

	go func() {
		err := subscriber.Receive(receiveCtx, func(msgCtx context.Context, msg *pubsub.Message) {
			// Always ack: the event is only a signal, consumers refetch the
			// authoritative state regardless of its payload.
			defer msg.Ack()

			event := &service.ChangeEvent{Collection: service.CollectionFavorites}
			if err := json.Unmarshal(msg.Data, event); err != nil {
				f.logger.Warn("[GooglePubSub] Unparseable change event, signalling anyway",
					slog.String("subscription_id", subscriptionID),
					slog.String("error", err.Error()),
				)
			}

			f.dispatchFavorite(msgCtx, event)
		})
		if err != nil && receiveCtx.Err() == nil {
			f.logger.Error("[GooglePubSub] Receive terminated",
				slog.String("subscription_id", subscriptionID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// dispatchFavorite routes one favorites event to the registered handlers.
func (f *googleChangeFeed) dispatchFavorite(ctx context.Context, event *service.ChangeEvent) {
	f.favMu.Lock()
	var handlers []func(context.Context, *service.ChangeEvent)
	if event.UserID == "" {
		for _, userHandlers := range f.favHandlers {
			for _, handler := range userHandlers {
				handlers = append(handlers, handler)
			}
		}
	} else {
		for _, handler := range f.favHandlers[event.UserID] {
			handlers = append(handlers, handler)
		}
	}
	f.favMu.Unlock()

	for _, handler := range handlers {
		handler(ctx, event)
	}
}

func (f *googleChangeFeed) receive(ctx context.Context, subscriptionID, collection string, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	receiveCtx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	f.cancels = append(f.cancels, cancel)
	f.mu.Unlock()

	subscriber := f.client.Subscriber(subscriptionID)

	go func() {
		err := subscriber.Receive(receiveCtx, func(msgCtx context.Context, msg *pubsub.Message) {
			// Always ack: the event is only a signal, consumers refetch the
			// authoritative state regardless of its payload.
			defer msg.Ack()

			event := &service.ChangeEvent{Collection: collection}
			if err := json.Unmarshal(msg.Data, event); err != nil {
				f.logger.Warn("[GooglePubSub] Unparseable change event, signalling anyway",
					slog.String("subscription_id", subscriptionID),
					slog.String("error", err.Error()),
				)
			}

			handler(msgCtx, event)
		})
		if err != nil && receiveCtx.Err() == nil {
			f.logger.Error("[GooglePubSub] Receive terminated",
				slog.String("subscription_id", subscriptionID),
				slog.String("error", err.Error()),
			)
		}
	}()

	return &googleSubscription{cancel: cancel}, nil
}

// Close cancels all active subscriptions and releases the client.
func (f *googleChangeFeed) Close() error {
	f.mu.Lock()
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil
	f.mu.Unlock()

	f.dealPublisher.Stop()
	f.favoritePublisher.Stop()

	return errors.WithStack(f.client.Close())
}
