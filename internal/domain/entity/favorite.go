package entity

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteRecord represents a user's saved deal. Unique per (user, deal); the
// backend row is the source of truth and the in-memory copy always reconciles
// to it.
type FavoriteRecord struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the record.
	UserID    uuid.UUID `json:"user_id"`    // The ID of the user who favorited the deal.
	DealID    uuid.UUID `json:"deal_id"`    // The ID of the favorited deal.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the favorite was created.
}
