// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Deal represents a time-boxed promotional offer tied to a venue.
type Deal struct {
	ID          uuid.UUID  `json:"id"`                    // The Global Unique Identifier (GUID) for the deal.
	Title       string     `json:"title"`                 // The headline shown to users.
	Description string     `json:"description"`           // The long-form offer description.
	VenueName   string     `json:"venue_name"`            // The name of the venue running the deal.
	Category    string     `json:"category"`              // The raw category tag as authored (free-text, inconsistently cased).
	StartsAt    time.Time  `json:"starts_at"`             // When the offer window opens.
	ExpiresAt   time.Time  `json:"expires_at"`            // When the offer window closes.
	IsActive    bool       `json:"is_active"`             // Explicit active flag set by the authoring system.
	RegionID    *uuid.UUID `json:"region_id,omitempty"`   // Optional reference to the venue's region.
	Region      *Region    `json:"region,omitempty"`      // The joined region, when resolved.
	ImageURL    string     `json:"image_url,omitempty"`   // Optional promotional image.
	WebsiteURL  string     `json:"website_url,omitempty"` // Optional venue website.
	CreatedAt   time.Time  `json:"created_at"`            // Timestamp of when this record was created.
	UpdatedAt   time.Time  `json:"updated_at"`            // Timestamp of the last modification.
}

// IsLive reports whether the deal is eligible for ranking at the given
// instant. Eligibility is computed, never stored: a deal drops out the moment
// now passes ExpiresAt.
func (d *Deal) IsLive(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartsAt) && !now.After(d.ExpiresAt)
}
