package libgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateSkipsEqualValues(t *testing.T) {
	calls := 0
	slot := 3
	update(&slot, 3, func() { calls++ })
	assert.Equal(t, 0, calls)

	update(&slot, 4, func() { calls++ })
	assert.Equal(t, 1, calls)
	assert.Equal(t, 4, slot)

	rect := [4]int{0, 0, 800, 600}
	update(&rect, [4]int{0, 0, 800, 600}, func() { calls++ })
	assert.Equal(t, 1, calls)
}
