package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlurScheduleDefault(t *testing.T) {
	passes := BlurSchedule(DefaultBlurIterations)
	require.Len(t, passes, 5)

	assert.True(t, passes[0].Horizontal)
	assert.True(t, passes[0].FromBrightPass)
	assert.Equal(t, 1, passes[0].Target)

	for i := 1; i < len(passes); i++ {
		assert.NotEqual(t, passes[i-1].Horizontal, passes[i].Horizontal, "pass %d", i)
		assert.False(t, passes[i].FromBrightPass, "pass %d", i)
		assert.Equal(t, passes[i-1].Target, passes[i].Source, "pass %d", i)
		assert.NotEqual(t, passes[i].Source, passes[i].Target, "pass %d", i)
	}

	// odd count ends on a horizontal pass writing member 1
	assert.True(t, passes[4].Horizontal)
	assert.Equal(t, 1, FinalTarget(passes))
}

func TestBlurScheduleTargetFollowsDirection(t *testing.T) {
	for _, pass := range BlurSchedule(8) {
		if pass.Horizontal {
			assert.Equal(t, 1, pass.Target)
		} else {
			assert.Equal(t, 0, pass.Target)
		}
	}
}

func TestBlurScheduleEven(t *testing.T) {
	passes := BlurSchedule(2)
	require.Len(t, passes, 2)
	assert.False(t, passes[1].Horizontal)
	assert.Equal(t, 1, passes[1].Source)
	assert.Equal(t, 0, FinalTarget(passes))
}

func TestBlurScheduleEmpty(t *testing.T) {
	assert.Empty(t, BlurSchedule(0))
	assert.Empty(t, BlurSchedule(-3))
	assert.Equal(t, -1, FinalTarget(nil))
}
