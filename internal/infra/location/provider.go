// Package location implements the external geolocation source.
package location

import (
	"context"
	"log/slog"

	"dealscout/config"
	"dealscout/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	providerGateway = "gateway"
	providerStatic  = "static"
	providerNone    = "none"
)

// ErrLocationUnavailable is returned when the source cannot produce a
// position. Callers treat it as "unknown location", never as a fatal error.
var ErrLocationUnavailable = errors.New("location unavailable")

// staticProvider always reports the coordinate fixed in configuration.
// Useful for kiosks and development.
type staticProvider struct {
	point orb.Point
}

func (p *staticProvider) Locate(ctx context.Context) (orb.Point, error) {
	return p.point, nil
}

// nullProvider never resolves a position.
type nullProvider struct{}

func (nullProvider) Locate(ctx context.Context) (orb.Point, error) {
	return orb.Point{}, ErrLocationUnavailable
}

// ProviderParams holds dependencies for the LocationProvider, injected by Fx
type ProviderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewLocationProvider creates a LocationProvider based on configuration.
func NewLocationProvider(params ProviderParams) (service.LocationProvider, error) {
	cfg := params.Config.Geolocation
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == providerNone {
		logger.Info("Geolocation not configured, location will be unknown")

		return nullProvider{}, nil
	}

	switch cfg.Provider {
	case providerGateway:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for gateway provider")
		}
		logger.Info("Using HTTP gateway geolocation provider",
			slog.String("endpoint", cfg.Endpoint),
		)

		return NewGatewayProvider(cfg.Endpoint, logger), nil

	case providerStatic:
		logger.Info("Using static geolocation provider",
			slog.Float64("lat", cfg.StaticLat),
			slog.Float64("lng", cfg.StaticLng),
		)

		return &staticProvider{point: orb.Point{cfg.StaticLng, cfg.StaticLat}}, nil

	default:
		return nil, errors.Errorf("unknown geolocation provider: %s", cfg.Provider)
	}
}
