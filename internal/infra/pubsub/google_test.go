package pubsub

import (
	"context"
	"testing"

	"dealscout/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fanoutFeed builds a feed with the shared favorites receiver marked as
// running so registrations exercise only the fan-out table. Events are
// injected through dispatchFavorite, the same path the Receive loop uses.
func fanoutFeed() *googleChangeFeed {
	return &googleChangeFeed{
		logger:      testLogger(),
		favStarted:  true,
		favHandlers: make(map[string]map[int]func(context.Context, *service.ChangeEvent)),
	}
}

func TestGoogleChangeFeed_FavoriteFanoutScopedToUser(t *testing.T) {
	ctx := context.Background()
	feed := fanoutFeed()

	var gotA, gotB int
	_, err := feed.SubscribeFavorites(ctx, "user-a", func(_ context.Context, _ *service.ChangeEvent) {
		gotA++
	})
	require.NoError(t, err)
	_, err = feed.SubscribeFavorites(ctx, "user-b", func(_ context.Context, _ *service.ChangeEvent) {
		gotB++
	})
	require.NoError(t, err)

	feed.dispatchFavorite(ctx, &service.ChangeEvent{
		Collection: service.CollectionFavorites,
		Kind:       service.ChangeInsert,
		UserID:     "user-a",
	})

	assert.Equal(t, 1, gotA)
	assert.Zero(t, gotB)
}

func TestGoogleChangeFeed_FavoriteEventWithoutUserBroadcasts(t *testing.T) {
	ctx := context.Background()
	feed := fanoutFeed()

	var gotA, gotB int
	_, err := feed.SubscribeFavorites(ctx, "user-a", func(_ context.Context, _ *service.ChangeEvent) {
		gotA++
	})
	require.NoError(t, err)
	_, err = feed.SubscribeFavorites(ctx, "user-b", func(_ context.Context, _ *service.ChangeEvent) {
		gotB++
	})
	require.NoError(t, err)

	feed.dispatchFavorite(ctx, &service.ChangeEvent{Collection: service.CollectionFavorites})

	assert.Equal(t, 1, gotA)
	assert.Equal(t, 1, gotB)
}

func TestGoogleChangeFeed_UnsubscribeRemovesRegistration(t *testing.T) {
	ctx := context.Background()
	feed := fanoutFeed()

	var got int
	subscription, err := feed.SubscribeFavorites(ctx, "user-a", func(_ context.Context, _ *service.ChangeEvent) {
		got++
	})
	require.NoError(t, err)

	subscription.Unsubscribe()
	subscription.Unsubscribe()

	feed.dispatchFavorite(ctx, &service.ChangeEvent{
		Collection: service.CollectionFavorites,
		UserID:     "user-a",
	})

	assert.Zero(t, got)
	assert.Empty(t, feed.favHandlers)
}
