package handler

import (
	"log/slog"
	"net/http"

	"dealscout/internal/delivery/http/middleware"
	"dealscout/internal/delivery/http/response"
	"dealscout/internal/domain/entity"
	"dealscout/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// FeedHandler serves the ranked deal feed.
type FeedHandler struct {
	feed      usecase.FeedUsecase
	favorites usecase.FavoriteUsecase
	logger    *slog.Logger
}

// NewFeedHandler is the constructor for FeedHandler, injected by Fx.
func NewFeedHandler(feed usecase.FeedUsecase, favorites usecase.FavoriteUsecase, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		feed:      feed,
		favorites: favorites,
		logger:    logger,
	}
}

type feedRequest struct {
	Lat         *float64 `query:"lat"`
	Lng         *float64 `query:"lng"`
	Preferences []string `query:"preferences"`
	Preferred   *bool    `query:"preferred"`
	Categories  []string `query:"categories"`
	Search      string   `query:"q"`
}

type feedResponse struct {
	Deals            []*entity.RankedDeal `json:"deals"`
	LocationResolved bool                 `json:"location_resolved"`
}

// GetFeed handles GET /deals. Anonymous callers get the feed without
// favorite annotations; authenticated callers also get their favorite state
// per deal.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	var input feedRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid feed query")
	}

	preferences := input.Preferences
	if len(preferences) == 0 {
		preferences = middleware.Preferences(c)
	}

	query := &usecase.FeedQuery{
		Preferences:      preferences,
		PreferenceFilter: input.Preferred,
		Categories:       input.Categories,
		Search:           input.Search,
	}
	if input.Lat != nil && input.Lng != nil {
		query.Location = &orb.Point{*input.Lng, *input.Lat}
	}

	result, err := h.feed.GetFeed(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	if userID := middleware.UserID(c); userID != uuid.Nil {
		// Best effort: an unstartable session just renders without favorite
		// state, same as an anonymous caller.
		if err := h.favorites.StartSession(c.Request().Context(), userID); err != nil {
			h.logger.Warn("favorite session unavailable for feed",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)
		}
		for _, deal := range result.Deals {
			deal.IsFavorite = h.favorites.IsFavorite(userID, deal.ID)
		}
	}

	return response.Success(c, http.StatusOK, feedResponse{
		Deals: result.Deals,
		// Lets the client hint that ordering is not distance-based when the
		// position could not be acquired.
		LocationResolved: result.LocationResolved,
	}, "")
}
