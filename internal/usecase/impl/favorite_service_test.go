package impl

import (
	"context"
	"testing"
	"time"

	"dealscout/internal/domain/entity"
	domainerrors "dealscout/internal/domain/errors"
	"dealscout/internal/domain/repository"
	"dealscout/internal/domain/service"
	mocksRepo "dealscout/internal/mocks/repository"
	mocksService "dealscout/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func favoriteRecord(userID, dealID uuid.UUID) *entity.FavoriteRecord {
	return &entity.FavoriteRecord{
		ID:        uuid.New(),
		UserID:    userID,
		DealID:    dealID,
		CreatedAt: time.Now(),
	}
}

// startSession wires a session with an empty initial set and captures the
// change-feed handler.
func startSession(t *testing.T, favoriteRepo *mocksRepo.MockFavoriteRepository, publisher *mocksService.MockEventPublisher, userID uuid.UUID, initial []*entity.FavoriteRecord) (*favoriteService, func(context.Context, *service.ChangeEvent)) {
	t.Helper()

	subscriber := mocksService.NewMockEventSubscriber(t)
	subscription := mocksService.NewMockSubscription(t)

	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userID).Return(initial, nil).Once()

	var handler func(context.Context, *service.ChangeEvent)
	subscriber.EXPECT().SubscribeFavorites(mock.Anything, userID.String(), mock.Anything).
		Run(func(_ context.Context, _ string, h func(context.Context, *service.ChangeEvent)) {
			handler = h
		}).
		Return(subscription, nil)
	subscription.EXPECT().Unsubscribe().Maybe()

	favorites := NewFavoriteService(favoriteRepo, publisher, subscriber, discardLogger()).(*favoriteService)
	require.NoError(t, favorites.StartSession(context.Background(), userID))
	require.NotNil(t, handler)

	return favorites, handler
}

func TestFavoriteService_ToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dealID := uuid.New()

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishChange(mock.Anything, mock.Anything).Return(nil)

	favoriteRepo.EXPECT().CreateFavorite(mock.Anything, mock.Anything).
		Run(func(_ context.Context, favorite *entity.FavoriteRecord) {
			favorite.ID = uuid.New()
			favorite.CreatedAt = time.Now()
		}).
		Return(nil).Once()
	favoriteRepo.EXPECT().DeleteFavorite(mock.Anything, mock.Anything).Return(nil).Once()

	favorites, _ := startSession(t, favoriteRepo, publisher, userID, nil)

	assert.False(t, favorites.IsFavorite(userID, dealID))

	state, err := favorites.Toggle(ctx, userID, dealID)
	require.NoError(t, err)
	assert.True(t, state)
	assert.True(t, favorites.IsFavorite(userID, dealID))

	state, err = favorites.Toggle(ctx, userID, dealID)
	require.NoError(t, err)
	assert.False(t, state)
	assert.False(t, favorites.IsFavorite(userID, dealID))
}

func TestFavoriteService_AnonymousToggleRejected(t *testing.T) {
	ctx := context.Background()
	favorites := NewFavoriteService(
		mocksRepo.NewMockFavoriteRepository(t),
		mocksService.NewMockEventPublisher(t),
		mocksService.NewMockEventSubscriber(t),
		discardLogger(),
	)

	_, err := favorites.Toggle(ctx, uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrSignInRequired)

	// A signed-in user without a started session is treated the same.
	_, err = favorites.Toggle(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrSignInRequired)
}

func TestFavoriteService_FailedWriteLeavesSetUnchanged(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	existing := favoriteRecord(userID, uuid.New())

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)

	favoriteRepo.EXPECT().CreateFavorite(mock.Anything, mock.Anything).Return(errors.New("backend down")).Once()
	favoriteRepo.EXPECT().DeleteFavorite(mock.Anything, existing.ID).Return(errors.New("backend down")).Once()

	favorites, _ := startSession(t, favoriteRepo, publisher, userID, []*entity.FavoriteRecord{existing})

	newDeal := uuid.New()
	_, err := favorites.Toggle(ctx, userID, newDeal)
	require.ErrorIs(t, err, domainerrors.ErrFavoriteSyncFailed)
	assert.False(t, favorites.IsFavorite(userID, newDeal))

	_, err = favorites.Toggle(ctx, userID, existing.DealID)
	require.ErrorIs(t, err, domainerrors.ErrFavoriteSyncFailed)
	assert.True(t, favorites.IsFavorite(userID, existing.DealID), "failed delete must not drop the local record")
}

func TestFavoriteService_SignalReplacesSetWholesale(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	original := favoriteRecord(userID, uuid.New())
	replacement := favoriteRecord(userID, uuid.New())

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)

	favorites, handler := startSession(t, favoriteRepo, publisher, userID, []*entity.FavoriteRecord{original})
	assert.True(t, favorites.IsFavorite(userID, original.DealID))

	// The signal's row points at the replacement but the refetch is what
	// counts: the backend now only has the replacement.
	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userID).
		Return([]*entity.FavoriteRecord{replacement}, nil).Once()
	handler(ctx, &service.ChangeEvent{
		Collection: service.CollectionFavorites,
		Kind:       service.ChangeInsert,
		UserID:     userID.String(),
	})

	assert.False(t, favorites.IsFavorite(userID, original.DealID))
	assert.True(t, favorites.IsFavorite(userID, replacement.DealID))
	assert.Equal(t, []uuid.UUID{replacement.DealID}, favorites.FavoriteDealIDs(userID))
}

func TestFavoriteService_SessionsAreIsolated(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	recordA := favoriteRecord(userA, uuid.New())

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)
	subscriber := mocksService.NewMockEventSubscriber(t)
	subscription := mocksService.NewMockSubscription(t)

	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userA).Return([]*entity.FavoriteRecord{recordA}, nil).Once()
	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userB).Return(nil, nil).Once()
	subscriber.EXPECT().SubscribeFavorites(mock.Anything, mock.Anything, mock.Anything).Return(subscription, nil)
	subscription.EXPECT().Unsubscribe()

	favorites := NewFavoriteService(favoriteRepo, publisher, subscriber, discardLogger())
	ctx := context.Background()
	require.NoError(t, favorites.StartSession(ctx, userA))
	require.NoError(t, favorites.StartSession(ctx, userB))

	assert.True(t, favorites.IsFavorite(userA, recordA.DealID))
	assert.False(t, favorites.IsFavorite(userB, recordA.DealID))

	// Dropping one user's session leaves the other untouched.
	favorites.StopSession(userB)
	assert.True(t, favorites.IsFavorite(userA, recordA.DealID))
	assert.False(t, favorites.IsFavorite(userB, recordA.DealID))
}

func TestFavoriteService_StartSessionIdempotent(t *testing.T) {
	userID := uuid.New()
	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)

	favorites, _ := startSession(t, favoriteRepo, publisher, userID, nil)

	// Second start is a no-op: no second fetch, no second subscription.
	require.NoError(t, favorites.StartSession(context.Background(), userID))
}

func TestFavoriteService_StartSessionFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	subscriber := mocksService.NewMockEventSubscriber(t)
	subscription := mocksService.NewMockSubscription(t)

	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userID).Return(nil, errors.New("backend down")).Once()
	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userID).Return(nil, nil).Once()
	subscriber.EXPECT().SubscribeFavorites(mock.Anything, userID.String(), mock.Anything).Return(subscription, nil)

	favorites := NewFavoriteService(favoriteRepo, mocksService.NewMockEventPublisher(t), subscriber, discardLogger())

	require.Error(t, favorites.StartSession(ctx, userID))
	require.NoError(t, favorites.StartSession(ctx, userID))
}

func TestFavoriteService_Reconcile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	record := favoriteRecord(userID, uuid.New())

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)

	favorites, _ := startSession(t, favoriteRepo, publisher, userID, nil)
	assert.False(t, favorites.IsFavorite(userID, record.DealID))

	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userID).
		Return([]*entity.FavoriteRecord{record}, nil).Once()
	require.NoError(t, favorites.Reconcile(ctx, userID))
	assert.True(t, favorites.IsFavorite(userID, record.DealID))

	assert.ErrorIs(t, favorites.Reconcile(ctx, uuid.New()), domainerrors.ErrSignInRequired)
}

func TestFavoriteService_ConcurrentCreateConverges(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dealID := uuid.New()
	winner := favoriteRecord(userID, dealID)

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)

	favoriteRepo.EXPECT().CreateFavorite(mock.Anything, mock.Anything).Return(repository.ErrDuplicateFavorite).Once()

	favorites, _ := startSession(t, favoriteRepo, publisher, userID, nil)

	// Another device won the insert race; the local set converges via
	// refetch and the toggle still reports "favorited".
	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, userID).
		Return([]*entity.FavoriteRecord{winner}, nil).Once()

	state, err := favorites.Toggle(ctx, userID, dealID)
	require.NoError(t, err)
	assert.True(t, state)
	assert.True(t, favorites.IsFavorite(userID, dealID))
}

func TestFavoriteService_IdleSessionsEvicted(t *testing.T) {
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)
	subscriber := mocksService.NewMockEventSubscriber(t)
	subscription := mocksService.NewMockSubscription(t)

	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, mock.Anything).Return(nil, nil)
	subscriber.EXPECT().SubscribeFavorites(mock.Anything, mock.Anything, mock.Anything).Return(subscription, nil)
	subscription.EXPECT().Unsubscribe().Once()

	favorites := NewFavoriteService(favoriteRepo, publisher, subscriber, discardLogger()).(*favoriteService)

	base := time.Now()
	favorites.now = func() time.Time { return base }
	require.NoError(t, favorites.StartSession(ctx, userA))

	favorites.now = func() time.Time { return base.Add(favorites.idleTTL + time.Minute) }
	require.NoError(t, favorites.StartSession(ctx, userB))

	_, err := favorites.Toggle(ctx, userA, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrSignInRequired)
	assert.NotNil(t, favorites.session(userB))
}

func TestFavoriteService_RecentActivityBlocksEviction(t *testing.T) {
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()
	dealID := uuid.New()

	favoriteRepo := mocksRepo.NewMockFavoriteRepository(t)
	publisher := mocksService.NewMockEventPublisher(t)
	subscriber := mocksService.NewMockEventSubscriber(t)
	subscription := mocksService.NewMockSubscription(t)

	favoriteRepo.EXPECT().FindFavoritesByUser(mock.Anything, mock.Anything).Return(nil, nil)
	subscriber.EXPECT().SubscribeFavorites(mock.Anything, mock.Anything, mock.Anything).Return(subscription, nil)

	favorites := NewFavoriteService(favoriteRepo, publisher, subscriber, discardLogger()).(*favoriteService)

	base := time.Now()
	favorites.now = func() time.Time { return base }
	require.NoError(t, favorites.StartSession(ctx, userA))

	// Any session access counts as activity and resets the idle clock.
	favorites.now = func() time.Time { return base.Add(favorites.idleTTL - time.Minute) }
	favorites.IsFavorite(userA, dealID)

	favorites.now = func() time.Time { return base.Add(favorites.idleTTL + time.Minute) }
	require.NoError(t, favorites.StartSession(ctx, userB))

	assert.NotNil(t, favorites.session(userA))
}
