package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMath_MinMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(5, Max(5, 2))
	assert.Equal(float32(-1.5), Min(float32(-1.5), 0))
}

func TestMath_Abs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 2.5, Abs(2.5))
}

func TestMath_Clamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, Clamp(-10, 0, 255))
	assert.Equal(255, Clamp(300, 0, 255))
	assert.Equal(0.5, Clamp(0.5, 0.0, 1.0))
}
