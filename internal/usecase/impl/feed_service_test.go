package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dealscout/internal/domain/entity"
	domainerrors "dealscout/internal/domain/errors"
	"dealscout/internal/domain/service"
	mocksRepo "dealscout/internal/mocks/repository"
	mocksService "dealscout/internal/mocks/service"
	"dealscout/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubGeolocation struct {
	point *orb.Point
}

func (s *stubGeolocation) Current(_ context.Context) *orb.Point { return s.point }
func (s *stubGeolocation) Invalidate()                          {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func liveDeal(title, tag string, region *entity.Region) *entity.Deal {
	now := time.Now()
	return &entity.Deal{
		ID:        uuid.New(),
		Title:     title,
		Category:  tag,
		Region:    region,
		StartsAt:  now.Add(-time.Hour),
		ExpiresAt: now.Add(time.Hour),
		IsActive:  true,
	}
}

func TestFeedService_SignalTriggersRefetch(t *testing.T) {
	ctx := context.Background()
	dealRepo := mocksRepo.NewMockDealRepository(t)
	subscriber := mocksService.NewMockEventSubscriber(t)
	subscription := mocksService.NewMockSubscription(t)

	first := []*entity.Deal{liveDeal("before", "food", nil)}
	second := []*entity.Deal{
		liveDeal("after one", "food", nil),
		liveDeal("after two", "bar", nil),
	}
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(first, nil).Once()
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(second, nil).Once()

	var handler func(context.Context, *service.ChangeEvent)
	subscriber.EXPECT().SubscribeDeals(mock.Anything, mock.Anything).
		Run(func(_ context.Context, h func(context.Context, *service.ChangeEvent)) {
			handler = h
		}).
		Return(subscription, nil)
	subscription.EXPECT().Unsubscribe()

	feed := NewFeedService(dealRepo, &stubGeolocation{}, subscriber, nil, discardLogger())
	require.NoError(t, feed.Start(ctx))

	out, err := feed.GetFeed(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"before"}, titles(out.Deals))

	// Any change signal replaces the snapshot wholesale; the payload content
	// is irrelevant.
	require.NotNil(t, handler)
	handler(ctx, &service.ChangeEvent{Collection: service.CollectionDeals, Kind: service.ChangeUpdate})

	out, err = feed.GetFeed(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"after one", "after two"}, titles(out.Deals))

	feed.Stop()
}

func TestFeedService_KeepsSnapshotOnRefetchFailure(t *testing.T) {
	ctx := context.Background()
	dealRepo := mocksRepo.NewMockDealRepository(t)

	snapshot := []*entity.Deal{liveDeal("survivor", "food", nil)}
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(snapshot, nil).Once()
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	feed := NewFeedService(dealRepo, &stubGeolocation{}, mocksService.NewMockEventSubscriber(t), nil, discardLogger())

	require.NoError(t, feed.RefreshSnapshot(ctx))
	assert.Error(t, feed.RefreshSnapshot(ctx))

	out, err := feed.GetFeed(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"survivor"}, titles(out.Deals))
}

func TestFeedService_UnavailableWhenNeverLoaded(t *testing.T) {
	ctx := context.Background()
	dealRepo := mocksRepo.NewMockDealRepository(t)
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	feed := NewFeedService(dealRepo, &stubGeolocation{}, mocksService.NewMockEventSubscriber(t), nil, discardLogger())

	_, err := feed.GetFeed(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDealFeedUnavailable)
}

func TestFeedService_DropsLapsedDeals(t *testing.T) {
	ctx := context.Background()
	dealRepo := mocksRepo.NewMockDealRepository(t)

	lapsed := liveDeal("lapsed", "food", nil)
	lapsed.ExpiresAt = time.Now().Add(-time.Minute)
	snapshot := []*entity.Deal{liveDeal("current", "food", nil), lapsed}
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(snapshot, nil)

	feed := NewFeedService(dealRepo, &stubGeolocation{}, mocksService.NewMockEventSubscriber(t), nil, discardLogger())

	out, err := feed.GetFeed(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"current"}, titles(out.Deals))
}

func TestFeedService_ReportsWhetherLocationResolved(t *testing.T) {
	ctx := context.Background()
	dealRepo := mocksRepo.NewMockDealRepository(t)
	dealRepo.EXPECT().FindActiveDeals(mock.Anything, mock.Anything).Return(nil, nil)

	unlocated := NewFeedService(dealRepo, &stubGeolocation{}, mocksService.NewMockEventSubscriber(t), nil, discardLogger())
	out, err := unlocated.GetFeed(ctx, nil)
	require.NoError(t, err)
	assert.False(t, out.LocationResolved)

	located := NewFeedService(dealRepo, &stubGeolocation{point: &orb.Point{121.5, 25.0}}, mocksService.NewMockEventSubscriber(t), nil, discardLogger())
	out, err = located.GetFeed(ctx, nil)
	require.NoError(t, err)
	assert.True(t, out.LocationResolved)

	// An explicit caller position also counts as resolved.
	out, err = unlocated.GetFeed(ctx, &usecase.FeedQuery{Location: &orb.Point{121.5, 25.0}})
	require.NoError(t, err)
	assert.True(t, out.LocationResolved)
}
