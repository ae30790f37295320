// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"dealscout/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for deal persistence.
var (
	// ErrDealNotFound is returned when a deal is not found.
	ErrDealNotFound = errors.New("deal not found")
)

// DealRepository defines the read-side interface for the deal collection.
// Deals are authored externally; this service never mutates them.
type DealRepository interface {
	// FindActiveDeals retrieves all deals whose explicit active flag is set
	// and whose time window contains now, joined with their region (active
	// regions only). Ordered newest-first, matching the backend default.
	FindActiveDeals(ctx context.Context, now time.Time) ([]*entity.Deal, error)

	// FindDealByID retrieves a single deal by its unique ID.
	FindDealByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error)
}
