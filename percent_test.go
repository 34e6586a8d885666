package eraser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage_ShouldFormatWithTwoDigits(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0.00", FormatPercentage(0))
	assert.Equal("33.33", FormatPercentage(100.0/3))
	assert.Equal("66.67", FormatPercentage(200.0/3))
	assert.Equal("50.00", FormatPercentage(49.996))
	assert.Equal("100.00", FormatPercentage(100))
	for _, p := range []float64{0, 100.0 / 3, 99.995, 12.3456789} {
		assert.Regexp(`^\d+\.\d{2}$`, FormatPercentage(p))
	}
	assert.Equal("Erased: 12.50%", displayText(FormatPercentage(12.5)))
}

func TestPercentage_ThresholdIsComparedOnDisplayedValue(t *testing.T) {
	assert := assert.New(t)

	assert.False(reached(FormatPercentage(49.99), Threshold))
	assert.False(reached(FormatPercentage(49.994), Threshold))
	assert.True(reached(FormatPercentage(49.996), Threshold))
	assert.True(reached(FormatPercentage(50), Threshold))
	assert.True(reached(FormatPercentage(87.5), Threshold))
	assert.False(reached("", Threshold))
}
