package impl

import (
	"testing"

	"dealscout/config"

	"github.com/stretchr/testify/assert"
)

func TestRadiusPolicy_RadiusFor(t *testing.T) {
	policy := newRadiusPolicy(nil)

	tests := []struct {
		name       string
		regionName string
		expected   float64
	}{
		{
			name:       "known dense core",
			regionName: "Downtown",
			expected:   3,
		},
		{
			name:       "known spread-out district",
			regionName: "Suburbs",
			expected:   15,
		},
		{
			name:       "partial match picks up table entry",
			regionName: "Downtown East",
			expected:   3,
		},
		{
			name:       "case insensitive",
			regionName: "RIVERSIDE",
			expected:   8,
		},
		{
			name:       "unknown name falls back to default",
			regionName: "Moon Base Alpha",
			expected:   defaultRegionRadiusKm,
		},
		{
			name:       "empty name falls back to default",
			regionName: "",
			expected:   defaultRegionRadiusKm,
		},
		{
			name:       "whitespace only falls back to default",
			regionName: "   ",
			expected:   defaultRegionRadiusKm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, policy.RadiusFor(tt.regionName), 1e-9)
		})
	}
}

func TestRadiusPolicy_ConfigOverrides(t *testing.T) {
	policy := newRadiusPolicy(&config.RankingConfig{
		DefaultRadiusKm: 20,
		RegionRadiiKm: map[string]float64{
			"Downtown":   1.5,
			"Civic Core": 2,
		},
	})

	assert.InDelta(t, 1.5, policy.RadiusFor("downtown"), 1e-9)
	assert.InDelta(t, 2, policy.RadiusFor("Civic Core"), 1e-9)
	// Builtin entries survive alongside overrides.
	assert.InDelta(t, 15, policy.RadiusFor("Suburbs"), 1e-9)
	assert.InDelta(t, 20, policy.RadiusFor("somewhere unlisted"), 1e-9)
}

func TestRadiusPolicy_AmbiguousNameResolvesDeterministically(t *testing.T) {
	policy := newRadiusPolicy(nil)

	// "riverside" (8 km) is longer than "harbor" (6 km), so it wins no
	// matter which order the table was populated in.
	for range 20 {
		assert.InDelta(t, 8, policy.RadiusFor("Riverside Harbor District"), 1e-9)
		assert.InDelta(t, 8, newRadiusPolicy(nil).RadiusFor("Harbor Riverside"), 1e-9)
	}
}
