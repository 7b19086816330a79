package libstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleUI(t *testing.T) {
	s := NewState()
	assert.True(t, s.ToggleUI())
	assert.False(t, s.MouseLookEnabled)
	assert.False(t, s.ToggleUI())
	assert.True(t, s.MouseLookEnabled)
}

func TestToggleSpotlight(t *testing.T) {
	s := NewState()
	s.ToggleSpotlight()
	assert.False(t, s.SpotlightEnabled)
	s.ToggleSpotlight()
	assert.True(t, s.SpotlightEnabled)
}

func TestBloomKeyFlipsOncePerPress(t *testing.T) {
	s := NewState()
	assert.True(t, s.BloomEnabled)

	// held across many callbacks
	for i := 0; i < 10; i++ {
		s.PollBloomKey(true)
	}
	assert.False(t, s.BloomEnabled)

	s.PollBloomKey(false)
	s.PollBloomKey(false)
	assert.False(t, s.BloomEnabled)

	s.PollBloomKey(true)
	s.PollBloomKey(true)
	assert.True(t, s.BloomEnabled)
}

func TestExposureDecrease(t *testing.T) {
	s := NewState()
	for i := 0; i < 5; i++ {
		s.AdjustExposure(true, false)
	}
	assert.InDelta(t, 0.5, s.Exposure, 1e-5)

	for i := 0; i < 10; i++ {
		s.AdjustExposure(true, false)
		assert.GreaterOrEqual(t, s.Exposure, float32(0))
	}
	assert.Equal(t, float32(0), s.Exposure)
}

func TestExposureIncrease(t *testing.T) {
	s := NewState()
	s.Exposure = 0
	for i := 0; i < 5; i++ {
		s.AdjustExposure(false, true)
	}
	assert.InDelta(t, 0.5, s.Exposure, 1e-5)

	for i := 0; i < 100; i++ {
		s.AdjustExposure(false, true)
	}
	assert.InDelta(t, 10.5, s.Exposure, 1e-3)
}

func TestExposureDecreaseWins(t *testing.T) {
	s := NewState()
	s.AdjustExposure(true, true)
	assert.InDelta(t, 0.9, s.Exposure, 1e-6)
	s.AdjustExposure(false, false)
	assert.InDelta(t, 0.9, s.Exposure, 1e-6)
}
