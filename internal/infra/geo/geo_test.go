package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	points := []orb.Point{
		{0, 0},
		{121.5654, 25.0330},
		{-73.9857, 40.7484},
		{151.2153, -33.8568},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p))
	}
}

func TestDistance_IsSymmetric(t *testing.T) {
	a := orb.Point{121.5654, 25.0330}
	b := orb.Point{121.5649, 25.0425}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	// One degree of latitude is ~111 km anywhere on the sphere.
	a := orb.Point{10.0, 45.0}
	b := orb.Point{10.0, 46.0}

	assert.InDelta(t, 111.19, Distance(a, b), 0.5)
}

func TestDistance_IsNonNegative(t *testing.T) {
	a := orb.Point{-179.9, -89.0}
	b := orb.Point{179.9, 89.0}

	assert.GreaterOrEqual(t, Distance(a, b), 0.0)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(orb.Point{121.5654, 25.0330}))
	assert.True(t, IsValid(orb.Point{0, 0}))

	assert.False(t, IsValid(orb.Point{math.NaN(), 25.0}))
	assert.False(t, IsValid(orb.Point{121.0, math.Inf(1)}))
	assert.False(t, IsValid(orb.Point{181.0, 0}))
	assert.False(t, IsValid(orb.Point{0, 91.0}))
}
