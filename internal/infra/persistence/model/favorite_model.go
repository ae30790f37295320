package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteRecordModel is the GORM-specific struct for the 'favorites' table.
// The composite unique index enforces one record per (user, deal).
type FavoriteRecordModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_deal"`
	DealID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_deal"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavoriteRecordModel) TableName() string {
	return "favorites"
}
