package entity

// RankedDeal is a Deal annotated by one ranking pass. Produced fresh on every
// recompute and never persisted.
type RankedDeal struct {
	Deal

	// DistanceKm is present iff both the user location and the deal's region
	// center were known when the pass ran.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	// PreferenceCategory is the normalized category the raw tag maps to.
	PreferenceCategory string `json:"preference_category"`

	// IsFavorite reflects the caller's favorite state at render time. Always
	// false for anonymous callers.
	IsFavorite bool `json:"is_favorite"`
}
