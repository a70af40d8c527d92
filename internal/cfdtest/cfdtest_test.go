package cfdtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestULPDistanceIdentical(t *testing.T) {
	assert.Equal(t, int64(0), ULPDistance(1.0, 1.0))
}

func TestULPDistanceNaN(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), ULPDistance(math.NaN(), 1.0))
}

func TestNearlyEqualAbsoluteNearZero(t *testing.T) {
	ok, _, _ := NearlyEqual(0.0, 1e-15, 1e-14, 4)
	assert.True(t, ok)
}

func TestNearlyEqualFailsFarApart(t *testing.T) {
	ok, _, _ := NearlyEqual(1.0, 2.0, 1e-14, 4)
	assert.False(t, ok)
}

func TestDefaultNearlyEqual(t *testing.T) {
	assert.True(t, DefaultNearlyEqual(1.0, math.Nextafter(1.0, 2.0)))
}
