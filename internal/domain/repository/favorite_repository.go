package repository

import (
	"context"

	"dealscout/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for favorite persistence.
var (
	// ErrFavoriteNotFound is returned when a favorite record is not found.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrDuplicateFavorite is returned when trying to create a favorite that already exists.
	ErrDuplicateFavorite = errors.New("favorite already exists")
)

// FavoriteRepository defines the interface for favorite-record operations.
// The backend row set is the source of truth for a user's favorites.
type FavoriteRepository interface {
	// CreateFavorite persists a new favorite record and fills in the
	// generated ID and timestamp on success.
	CreateFavorite(ctx context.Context, favorite *entity.FavoriteRecord) error

	// DeleteFavorite removes a favorite record by its ID.
	DeleteFavorite(ctx context.Context, id uuid.UUID) error

	// FindFavoriteByUserAndDeal retrieves the record for a (user, deal) pair.
	FindFavoriteByUserAndDeal(ctx context.Context, userID, dealID uuid.UUID) (*entity.FavoriteRecord, error)

	// FindFavoritesByUser retrieves the full favorite set for a user.
	FindFavoritesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.FavoriteRecord, error)
}
