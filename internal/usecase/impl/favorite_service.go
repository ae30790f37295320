package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dealscout/internal/domain/entity"
	domainerrors "dealscout/internal/domain/errors"
	"dealscout/internal/domain/repository"
	"dealscout/internal/domain/service"
	"dealscout/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// favoriteSessionIdleTTL bounds how long an untouched session keeps its
// subscription and local set. Evicted users transparently restart on their
// next request.
const favoriteSessionIdleTTL = 30 * time.Minute

// favoriteSession is one user's synchronized favorite set. The records map
// is the authoritative local copy and is only ever replaced wholesale from a
// backend refetch or mutated after a confirmed backend write.
type favoriteSession struct {
	userID uuid.UUID

	mu       sync.RWMutex
	loaded   bool
	records  map[uuid.UUID]uuid.UUID // dealID -> favorite record ID
	order    []uuid.UUID             // dealIDs, newest first
	lastSeen time.Time

	subscription service.Subscription
}

// favoriteService manages favorite sessions keyed by user. Sessions are
// isolated: starting, stopping or mutating one user's session never touches
// another's.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	publisher    service.EventPublisher
	subscriber   service.EventSubscriber
	logger       *slog.Logger
	idleTTL      time.Duration
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*favoriteSession
}

// NewFavoriteService creates the favorite usecase.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	publisher service.EventPublisher,
	subscriber service.EventSubscriber,
	logger *slog.Logger,
) usecase.FavoriteUsecase {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		publisher:    publisher,
		subscriber:   subscriber,
		logger:       logger,
		idleTTL:      favoriteSessionIdleTTL,
		now:          time.Now,
		sessions:     make(map[uuid.UUID]*favoriteSession),
	}
}

// StartSession loads the user's favorite set and subscribes to their change
// feed. Idempotent for an already-started session. Fails without side
// effects when the initial load or subscription cannot be established, so
// the caller can simply retry.
func (s *favoriteService) StartSession(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainerrors.ErrSignInRequired
	}

	s.evictIdle()

	s.mu.Lock()
	if existing, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		existing.touch(s.now())
		return nil
	}
	session := &favoriteSession{
		userID:   userID,
		records:  make(map[uuid.UUID]uuid.UUID),
		lastSeen: s.now(),
	}
	s.sessions[userID] = session
	s.mu.Unlock()

	if err := s.refetch(ctx, session); err != nil {
		s.dropSession(userID)
		return errors.Wrap(err, "load favorite set")
	}

	subscription, err := s.subscriber.SubscribeFavorites(ctx, userID.String(), func(hctx context.Context, event *service.ChangeEvent) {
		s.logger.Debug("favorite change signal received",
			slog.String("user_id", event.UserID),
			slog.String("kind", string(event.Kind)),
		)
		// The payload is advisory only; converge by refetching the whole set.
		if err := s.refetch(hctx, session); err != nil {
			s.logger.Warn("favorite set refetch failed",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)
		}
	})
	if err != nil {
		s.dropSession(userID)
		return errors.Wrap(err, "subscribe favorite changes")
	}

	session.mu.Lock()
	session.subscription = subscription
	session.mu.Unlock()

	return nil
}

// StopSession tears down the user's subscription and discards their local
// set. Safe to call for a user without a session.
func (s *favoriteService) StopSession(userID uuid.UUID) {
	session := s.dropSession(userID)
	if session == nil {
		return
	}

	session.mu.Lock()
	subscription := session.subscription
	session.subscription = nil
	session.mu.Unlock()

	if subscription != nil {
		subscription.Unsubscribe()
	}
}

// StopAll tears down every session.
func (s *favoriteService) StopAll() {
	s.mu.Lock()
	users := make([]uuid.UUID, 0, len(s.sessions))
	for userID := range s.sessions {
		users = append(users, userID)
	}
	s.mu.Unlock()

	for _, userID := range users {
		s.StopSession(userID)
	}
}

// IsFavorite reports whether the deal is in the user's current set. False,
// not an error, for anonymous callers or a set that has not loaded yet.
func (s *favoriteService) IsFavorite(userID, dealID uuid.UUID) bool {
	session := s.session(userID)
	if session == nil {
		return false
	}

	session.mu.RLock()
	defer session.mu.RUnlock()
	if !session.loaded {
		return false
	}
	_, ok := session.records[dealID]

	return ok
}

// Toggle flips the favorite state of the deal for the user. The local set is
// updated only from the backend's confirmed response; a failed write leaves
// it untouched. Returns the new state.
func (s *favoriteService) Toggle(ctx context.Context, userID, dealID uuid.UUID) (bool, error) {
	session := s.session(userID)
	if userID == uuid.Nil || session == nil {
		return false, domainerrors.ErrSignInRequired
	}

	session.mu.RLock()
	loaded := session.loaded
	recordID, exists := session.records[dealID]
	session.mu.RUnlock()

	if !loaded {
		return false, domainerrors.ErrFavoriteNotLoaded
	}

	if exists {
		return s.remove(ctx, session, dealID, recordID)
	}

	return s.add(ctx, session, dealID)
}

func (s *favoriteService) add(ctx context.Context, session *favoriteSession, dealID uuid.UUID) (bool, error) {
	record := &entity.FavoriteRecord{
		UserID: session.userID,
		DealID: dealID,
	}
	if err := s.favoriteRepo.CreateFavorite(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			// Another device already favorited it; converge to the backend.
			if err := s.refetch(ctx, session); err != nil {
				s.logger.Warn("favorite convergence refetch failed", slog.Any("error", err))
			}
			return true, nil
		}
		return false, domainerrors.ErrFavoriteSyncFailed.WrapMessage(err.Error())
	}

	session.mu.Lock()
	session.records[dealID] = record.ID
	session.order = append([]uuid.UUID{dealID}, session.order...)
	session.mu.Unlock()

	s.publishChange(ctx, session.userID, service.ChangeInsert, record.ID)

	return true, nil
}

func (s *favoriteService) remove(ctx context.Context, session *favoriteSession, dealID, recordID uuid.UUID) (bool, error) {
	if err := s.favoriteRepo.DeleteFavorite(ctx, recordID); err != nil && !errors.Is(err, repository.ErrFavoriteNotFound) {
		return true, domainerrors.ErrFavoriteSyncFailed.WrapMessage(err.Error())
	}

	session.mu.Lock()
	delete(session.records, dealID)
	for i, id := range session.order {
		if id == dealID {
			session.order = append(session.order[:i], session.order[i+1:]...)
			break
		}
	}
	session.mu.Unlock()

	s.publishChange(ctx, session.userID, service.ChangeDelete, recordID)

	return false, nil
}

// Reconcile unconditionally refetches the user's set. Called when the client
// resurfaces after being backgrounded and may have missed signals.
func (s *favoriteService) Reconcile(ctx context.Context, userID uuid.UUID) error {
	session := s.session(userID)
	if session == nil {
		return domainerrors.ErrSignInRequired
	}

	return s.refetch(ctx, session)
}

// FavoriteDealIDs returns the deal IDs in the user's set, newest first.
func (s *favoriteService) FavoriteDealIDs(userID uuid.UUID) []uuid.UUID {
	session := s.session(userID)
	if session == nil {
		return nil
	}

	session.mu.RLock()
	defer session.mu.RUnlock()
	ids := make([]uuid.UUID, len(session.order))
	copy(ids, session.order)

	return ids
}

// refetch replaces the session's set wholesale with the backend's current
// truth. On failure the previous set stays in place.
func (s *favoriteService) refetch(ctx context.Context, session *favoriteSession) error {
	favorites, err := s.favoriteRepo.FindFavoritesByUser(ctx, session.userID)
	if err != nil {
		return err
	}

	records := make(map[uuid.UUID]uuid.UUID, len(favorites))
	order := make([]uuid.UUID, 0, len(favorites))
	for _, favorite := range favorites {
		if _, ok := records[favorite.DealID]; ok {
			continue
		}
		records[favorite.DealID] = favorite.ID
		order = append(order, favorite.DealID)
	}

	session.mu.Lock()
	session.records = records
	session.order = order
	session.loaded = true
	session.mu.Unlock()

	return nil
}

func (s *favoriteService) publishChange(ctx context.Context, userID uuid.UUID, kind service.ChangeKind, recordID uuid.UUID) {
	event := &service.ChangeEvent{
		Collection: service.CollectionFavorites,
		Kind:       kind,
		RowID:      recordID.String(),
		UserID:     userID.String(),
	}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.logger.Warn("favorite change publish failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}
}

func (session *favoriteSession) touch(now time.Time) {
	session.mu.Lock()
	session.lastSeen = now
	session.mu.Unlock()
}

func (s *favoriteService) session(userID uuid.UUID) *favoriteSession {
	s.mu.RLock()
	session := s.sessions[userID]
	s.mu.RUnlock()

	if session != nil {
		session.touch(s.now())
	}

	return session
}

// evictIdle stops sessions untouched for longer than the idle window. Runs
// opportunistically on session starts, so the session map stays bounded by
// recently active users without a background sweeper.
func (s *favoriteService) evictIdle() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.RLock()
	var idle []uuid.UUID
	for userID, session := range s.sessions {
		session.mu.RLock()
		if session.lastSeen.Before(cutoff) {
			idle = append(idle, userID)
		}
		session.mu.RUnlock()
	}
	s.mu.RUnlock()

	for _, userID := range idle {
		s.logger.Debug("evicting idle favorite session", slog.String("user_id", userID.String()))
		s.StopSession(userID)
	}
}

func (s *favoriteService) dropSession(userID uuid.UUID) *favoriteSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[userID]
	delete(s.sessions, userID)

	return session
}
