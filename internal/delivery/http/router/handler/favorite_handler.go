package handler

import (
	"context"
	"log/slog"
	"net/http"

	"dealscout/internal/delivery/http/middleware"
	"dealscout/internal/delivery/http/response"
	"dealscout/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FavoriteHandler serves the per-user favorite endpoints. All routes behind
// it require authentication.
type FavoriteHandler struct {
	favorites usecase.FavoriteUsecase
	logger    *slog.Logger
}

// NewFavoriteHandler is the constructor for FavoriteHandler, injected by Fx.
func NewFavoriteHandler(favorites usecase.FavoriteUsecase, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		logger:    logger,
	}
}

type toggleFavoriteRequest struct {
	DealID string `json:"deal_id" validate:"required,uuid"`
}

type toggleFavoriteResponse struct {
	DealID     string `json:"deal_id"`
	IsFavorite bool   `json:"is_favorite"`
}

// Toggle handles POST /favorites/toggle, flipping the favorite state of one
// deal for the caller.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	var input toggleFavoriteRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid favorite toggle input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	dealID, err := uuid.Parse(input.DealID)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid deal ID")
	}

	ctx := c.Request().Context()
	userID := middleware.UserID(c)
	if err := h.ensureSession(ctx, userID); err != nil {
		return errors.WithStack(err)
	}

	state, err := h.favorites.Toggle(ctx, userID, dealID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toggleFavoriteResponse{
		DealID:     dealID.String(),
		IsFavorite: state,
	}, "")
}

// List handles GET /favorites, returning the caller's favorite deal IDs.
func (h *FavoriteHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)
	if err := h.ensureSession(ctx, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"deal_ids": h.favorites.FavoriteDealIDs(userID),
	}, "")
}

// Refresh handles POST /favorites/refresh. Clients call it when they
// resurface after being backgrounded and may have missed change signals.
func (h *FavoriteHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)
	if err := h.ensureSession(ctx, userID); err != nil {
		return errors.WithStack(err)
	}

	if err := h.favorites.Reconcile(ctx, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"deal_ids": h.favorites.FavoriteDealIDs(userID),
	}, "Favorites refreshed")
}

func (h *FavoriteHandler) ensureSession(ctx context.Context, userID uuid.UUID) error {
	return h.favorites.StartSession(ctx, userID)
}
