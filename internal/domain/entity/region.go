package entity

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Region represents a named geographic area used for proximity bucketing.
type Region struct {
	ID        uuid.UUID `json:"id"`        // The Global Unique Identifier (GUID) for the region.
	Name      string    `json:"name"`      // The display name, e.g. "Downtown".
	Latitude  float64   `json:"latitude"`  // The geographic latitude of the region center.
	Longitude float64   `json:"longitude"` // The geographic longitude of the region center.
	IsActive  bool      `json:"is_active"` // Only active regions participate in distance computation.
}

// Center returns the region center as an orb point (lng, lat order).
func (r *Region) Center() orb.Point {
	return orb.Point{r.Longitude, r.Latitude}
}
