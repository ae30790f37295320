package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealModel is the GORM-specific struct for the 'deals' table. Deals are
// authored by an external system; this service only reads them.
type DealModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text;not null"`
	VenueName   string     `gorm:"type:varchar(255);not null"`
	Category    string     `gorm:"type:varchar(100);not null;index"`
	StartsAt    time.Time  `gorm:"not null;index"`
	ExpiresAt   time.Time  `gorm:"not null;index"`
	IsActive    bool       `gorm:"not null;default:true"`
	RegionID    *uuid.UUID `gorm:"type:uuid;index"`
	Region      *RegionModel
	ImageURL    string `gorm:"type:text"`
	WebsiteURL  string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (DealModel) TableName() string {
	return "deals"
}
