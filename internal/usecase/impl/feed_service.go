package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dealscout/config"
	"dealscout/internal/domain/entity"
	domainerrors "dealscout/internal/domain/errors"
	"dealscout/internal/domain/repository"
	"dealscout/internal/domain/service"
	"dealscout/internal/usecase"
)

// feedService owns the deal snapshot and runs the ranking pipeline against
// it. The snapshot is refetched wholesale on every deal change signal; a
// failed refetch keeps the last known good snapshot so the feed degrades to
// stale rather than empty.
type feedService struct {
	dealRepo    repository.DealRepository
	geolocation usecase.GeolocationUsecase
	subscriber  service.EventSubscriber
	policy      *radiusPolicy
	preferences bool
	logger      *slog.Logger
	now         func() time.Time

	mu           sync.RWMutex
	snapshot     []*entity.Deal
	loaded       bool
	subscription service.Subscription
	started      bool
}

// NewFeedService creates the deal feed usecase.
func NewFeedService(
	dealRepo repository.DealRepository,
	geolocation usecase.GeolocationUsecase,
	subscriber service.EventSubscriber,
	cfg *config.RankingConfig,
	logger *slog.Logger,
) usecase.FeedUsecase {
	preferences := true
	if cfg != nil {
		preferences = cfg.PreferenceFilter
	}

	return &feedService{
		dealRepo:    dealRepo,
		geolocation: geolocation,
		subscriber:  subscriber,
		policy:      newRadiusPolicy(cfg),
		preferences: preferences,
		logger:      logger,
		now:         time.Now,
	}
}

// Start loads the initial snapshot and subscribes to the deal change feed.
// A failed initial load is not fatal: the next signal or GetFeed call
// retries it.
func (s *feedService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	if err := s.RefreshSnapshot(ctx); err != nil {
		s.logger.Warn("initial deal snapshot load failed", slog.Any("error", err))
	}

	subscription, err := s.subscriber.SubscribeDeals(ctx, func(hctx context.Context, event *service.ChangeEvent) {
		s.logger.Debug("deal change signal received",
			slog.String("kind", string(event.Kind)),
			slog.String("row_id", event.RowID),
		)
		if err := s.RefreshSnapshot(hctx); err != nil {
			s.logger.Warn("deal snapshot refetch failed", slog.Any("error", err))
		}
	})
	if err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.subscription = subscription
	s.mu.Unlock()

	return nil
}

// Stop tears down the change-feed subscription.
func (s *feedService) Stop() {
	s.mu.Lock()
	subscription := s.subscription
	s.subscription = nil
	s.started = false
	s.mu.Unlock()

	if subscription != nil {
		subscription.Unsubscribe()
	}
}

// RefreshSnapshot refetches the active deals. On failure the previous
// snapshot stays in place.
func (s *feedService) RefreshSnapshot(ctx context.Context) error {
	deals, err := s.dealRepo.FindActiveDeals(ctx, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = deals
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("deal snapshot replaced", slog.Int("deals", len(deals)))

	return nil
}

// GetFeed runs one ranking pass. Degraded inputs (unknown location, deals
// without regions, empty filters) never fail the pass; the only error is a
// snapshot that has never loaded and cannot be loaded now.
func (s *feedService) GetFeed(ctx context.Context, query *usecase.FeedQuery) (*usecase.FeedResult, error) {
	if query == nil {
		query = &usecase.FeedQuery{}
	}

	snapshot, loaded := s.currentSnapshot()
	if !loaded {
		if err := s.RefreshSnapshot(ctx); err != nil {
			return nil, domainerrors.ErrDealFeedUnavailable.WrapMessage(err.Error())
		}
		snapshot, _ = s.currentSnapshot()
	}

	location := query.Location
	if location == nil {
		location = s.geolocation.Current(ctx)
	}

	enabled := s.preferences
	if query.PreferenceFilter != nil {
		enabled = *query.PreferenceFilter
	}

	deals := s.rankable(snapshot)
	stages := []rankStage{
		distanceAnnotationStage(location),
		preferenceFilterStage(enabled, query.Preferences),
		radiusFilterStage(location, s.policy),
		distanceSortStage(location),
		categoryFilterStage(query.Categories),
		searchFilterStage(query.Search),
	}

	return &usecase.FeedResult{
		Deals:            runStages(deals, stages),
		LocationResolved: location != nil,
	}, nil
}

// rankable converts the snapshot into the pipeline's working set, dropping
// deals whose window has lapsed since the last refetch.
func (s *feedService) rankable(snapshot []*entity.Deal) []*entity.RankedDeal {
	now := s.now()
	deals := make([]*entity.RankedDeal, 0, len(snapshot))
	for _, deal := range snapshot {
		if !deal.IsLive(now) {
			continue
		}
		deals = append(deals, &entity.RankedDeal{
			Deal:               *deal,
			PreferenceCategory: NormalizeCategory(deal.Category),
		})
	}

	return deals
}

func (s *feedService) currentSnapshot() ([]*entity.Deal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot, s.loaded
}
