package location

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dealscout/internal/infra/geo"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// gatewayProvider resolves the current position by asking an HTTP location
// gateway (the piece that actually talks to the device or IP-geo service).
// A request that hangs is bounded by the caller's context; the usecase layer
// applies the configured timeout.
type gatewayProvider struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// gatewayResponse is the wire format the gateway answers with.
type gatewayResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewGatewayProvider creates a provider backed by an HTTP location gateway.
func NewGatewayProvider(endpoint string, logger *slog.Logger) *gatewayProvider {
	return &gatewayProvider{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Locate performs a one-shot position request against the gateway.
func (p *gatewayProvider) Locate(ctx context.Context) (orb.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return orb.Point{}, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return orb.Point{}, errors.Wrap(ErrLocationUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 403 is how the gateway reports a permission denial; every
		// non-success degrades to unknown the same way.
		return orb.Point{}, errors.Wrapf(ErrLocationUnavailable, "gateway returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return orb.Point{}, errors.Wrap(ErrLocationUnavailable, err.Error())
	}

	var payload gatewayResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return orb.Point{}, errors.Wrap(ErrLocationUnavailable, err.Error())
	}

	point := orb.Point{payload.Lng, payload.Lat}
	if !geo.IsValid(point) {
		return orb.Point{}, errors.Wrap(ErrLocationUnavailable, "gateway returned out-of-bounds coordinate")
	}

	p.logger.Debug("Resolved position from gateway",
		slog.Float64("lat", payload.Lat),
		slog.Float64("lng", payload.Lng),
	)

	return point, nil
}
