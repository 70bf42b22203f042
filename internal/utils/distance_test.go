package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDistanceMeters(t *testing.T) {
	// Praça da Sé to Paulista (São Paulo), roughly 3.2 km apart.
	se := []float64{-23.5505, -46.6333}
	paulista := []float64{-23.5614, -46.6560}

	distance := CalculateDistanceMeters(se[0], se[1], paulista[0], paulista[1])
	assert.InDelta(t, 2600, distance, 400)

	// Same point is zero.
	assert.Zero(t, CalculateDistanceMeters(se[0], se[1], se[0], se[1]))

	// Symmetric.
	reverse := CalculateDistanceMeters(paulista[0], paulista[1], se[0], se[1])
	assert.InDelta(t, distance, reverse, 0.001)
}

func TestIsWithinRadiusMeters(t *testing.T) {
	assert.True(t, IsWithinRadiusMeters(-23.5505, -46.6333, -23.5614, -46.6560, 5000))
	assert.False(t, IsWithinRadiusMeters(-23.5505, -46.6333, -23.5614, -46.6560, 1000))
}

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, 2500.0, KilometersToMeters(2.5))
	assert.Equal(t, 2.5, MetersToKilometers(2500))
}
