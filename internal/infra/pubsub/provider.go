// Package pubsub implements the change-notification channel. The contract is
// refetch-on-signal: payloads are advisory and consumers re-read authoritative
// state on every delivery, so losing or reordering individual events is safe.
package pubsub

import (
	"context"
	"log/slog"

	"dealscout/config"
	"dealscout/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	providerGoogle = "google"
	providerMemory = "memory"
)

// noopSubscription satisfies service.Subscription for disabled channels.
type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

// noopChannel is used when no channel is configured: publishes are dropped and
// subscriptions never fire. Consumers fall back to explicit reconciliation.
type noopChannel struct {
	logger *slog.Logger
}

func (c *noopChannel) PublishChange(ctx context.Context, event *service.ChangeEvent) error {
	c.logger.Debug("[NoopPubSub] Change feed disabled, dropping event",
		slog.String("collection", event.Collection),
	)

	return nil
}

func (c *noopChannel) SubscribeDeals(ctx context.Context, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	return noopSubscription{}, nil
}

func (c *noopChannel) SubscribeFavorites(ctx context.Context, userID string, handler func(context.Context, *service.ChangeEvent)) (service.Subscription, error) {
	return noopSubscription{}, nil
}

func (c *noopChannel) Close() error {
	return nil
}

// ChannelParams holds dependencies for the change feed, injected by Fx
type ChannelParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewChangeFeed creates the publisher and subscriber halves of the change
// feed based on configuration. Both halves share one underlying channel and
// are closed together on shutdown.
func NewChangeFeed(params ChannelParams) (service.EventPublisher, service.EventSubscriber, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, using no-op change feed")
		noop := &noopChannel{logger: logger}

		return noop, noop, nil
	}

	var publisher service.EventPublisher
	var subscriber service.EventSubscriber

	switch cfg.Provider {
	case providerMemory:
		logger.Info("Using in-process change feed")

		bus := NewMemoryBus(logger)
		publisher, subscriber = bus, bus

	case providerGoogle:
		if cfg.ProjectID == "" {
			return nil, nil, errors.New("project ID is required for google provider")
		}
		if cfg.DealTopicID == "" || cfg.FavoriteTopicID == "" {
			return nil, nil, errors.New("deal and favorite topic IDs are required for google provider")
		}
		logger.Info("Using Google Pub/Sub change feed",
			slog.String("project_id", cfg.ProjectID),
			slog.String("deal_topic_id", cfg.DealTopicID),
			slog.String("favorite_topic_id", cfg.FavoriteTopicID),
		)

		channel, err := NewGoogleChangeFeed(params.Ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		publisher, subscriber = channel, channel

	default:
		return nil, nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing change feed")

			return publisher.Close()
		},
	})

	return publisher, subscriber, nil
}
