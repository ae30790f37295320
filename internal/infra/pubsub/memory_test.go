package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dealscout/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForEvent(t *testing.T, events <-chan *service.ChangeEvent) *service.ChangeEvent {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestMemoryBus_DealEventsReachAllSubscribers(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(testLogger())

	events := make(chan *service.ChangeEvent, 1)
	_, err := bus.SubscribeDeals(ctx, func(_ context.Context, event *service.ChangeEvent) {
		events <- event
	})
	require.NoError(t, err)

	require.NoError(t, bus.PublishChange(ctx, &service.ChangeEvent{
		Collection: service.CollectionDeals,
		Kind:       service.ChangeInsert,
		RowID:      "deal-1",
	}))

	event := waitForEvent(t, events)
	assert.Equal(t, service.ChangeInsert, event.Kind)
	assert.Equal(t, "deal-1", event.RowID)
}

func TestMemoryBus_FavoriteEventsScopedToUser(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(testLogger())

	mine := make(chan *service.ChangeEvent, 1)
	theirs := make(chan *service.ChangeEvent, 1)
	_, err := bus.SubscribeFavorites(ctx, "user-a", func(_ context.Context, event *service.ChangeEvent) {
		mine <- event
	})
	require.NoError(t, err)
	_, err = bus.SubscribeFavorites(ctx, "user-b", func(_ context.Context, event *service.ChangeEvent) {
		theirs <- event
	})
	require.NoError(t, err)

	require.NoError(t, bus.PublishChange(ctx, &service.ChangeEvent{
		Collection: service.CollectionFavorites,
		Kind:       service.ChangeDelete,
		UserID:     "user-a",
	}))

	event := waitForEvent(t, mine)
	assert.Equal(t, "user-a", event.UserID)

	select {
	case <-theirs:
		t.Fatal("event leaked to another user's subscription")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_UnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(testLogger())

	events := make(chan *service.ChangeEvent, 1)
	subscription, err := bus.SubscribeDeals(ctx, func(_ context.Context, event *service.ChangeEvent) {
		events <- event
	})
	require.NoError(t, err)

	subscription.Unsubscribe()
	subscription.Unsubscribe() // safe to repeat

	require.NoError(t, bus.PublishChange(ctx, &service.ChangeEvent{
		Collection: service.CollectionDeals,
		Kind:       service.ChangeUpdate,
	}))

	select {
	case <-events:
		t.Fatal("received event after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_CloseDropsSubscriptions(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(testLogger())

	events := make(chan *service.ChangeEvent, 1)
	_, err := bus.SubscribeDeals(ctx, func(_ context.Context, event *service.ChangeEvent) {
		events <- event
	})
	require.NoError(t, err)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.PublishChange(ctx, &service.ChangeEvent{
		Collection: service.CollectionDeals,
		Kind:       service.ChangeInsert,
	}))

	select {
	case <-events:
		t.Fatal("received event after close")
	case <-time.After(50 * time.Millisecond):
	}
}
