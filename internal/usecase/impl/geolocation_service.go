package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dealscout/config"
	"dealscout/internal/domain/service"
	"dealscout/internal/infra/geo"
	"dealscout/internal/usecase"

	"github.com/paulmach/orb"
)

const (
	defaultLocateTimeout = 5 * time.Second
	defaultMaxCacheAge   = 60 * time.Second
)

// geolocationService owns the last-known position. A position request that
// times out or fails leaves the state "unknown" (nil), which is a normal
// degraded input for the feed, not an error.
type geolocationService struct {
	provider    service.LocationProvider
	timeout     time.Duration
	maxCacheAge time.Duration
	logger      *slog.Logger
	now         func() time.Time

	mu         sync.Mutex
	fix        *orb.Point
	fixedAt    time.Time
	generation uint64
}

// NewGeolocationService creates the geolocation usecase.
func NewGeolocationService(provider service.LocationProvider, cfg *config.GeolocationConfig, logger *slog.Logger) usecase.GeolocationUsecase {
	timeout := defaultLocateTimeout
	maxCacheAge := defaultMaxCacheAge
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.MaxCacheAge > 0 {
			maxCacheAge = cfg.MaxCacheAge
		}
	}

	return &geolocationService{
		provider:    provider,
		timeout:     timeout,
		maxCacheAge: maxCacheAge,
		logger:      logger,
		now:         time.Now,
	}
}

// Current returns the latest position or nil when unknown. A fresh cached
// fix is served without touching the provider; otherwise a one-shot request
// runs under the configured timeout. A result that resolves after a newer
// request or an Invalidate call is discarded rather than overwriting newer
// state.
func (s *geolocationService) Current(ctx context.Context) *orb.Point {
	s.mu.Lock()
	if s.fix != nil && s.now().Sub(s.fixedAt) <= s.maxCacheAge {
		point := *s.fix
		s.mu.Unlock()
		return &point
	}
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	locateCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	point, err := s.provider.Locate(locateCtx)
	if err != nil {
		s.logger.Debug("position unresolved", slog.Any("error", err))
		return nil
	}
	if !geo.IsValid(point) {
		s.logger.Warn("provider returned invalid coordinates",
			slog.Float64("lat", point.Lat()),
			slog.Float64("lng", point.Lon()),
		)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		// A newer request or an Invalidate superseded this result.
		if s.fix != nil {
			current := *s.fix
			return &current
		}
		return nil
	}
	s.fix = &point
	s.fixedAt = s.now()
	resolved := point

	return &resolved
}

// Invalidate drops the cached fix and supersedes any in-flight request.
func (s *geolocationService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fix = nil
	s.generation++
}
