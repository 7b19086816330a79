package libgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrownSize(t *testing.T) {
	assert.Equal(t, 2048, grownSize(1024, 1500))
	assert.Equal(t, 5000, grownSize(1024, 5000))
	assert.Equal(t, 100, grownSize(0, 100))

	large := 1 << 20
	grown := grownSize(large, large+1)
	assert.Equal(t, large+large/4, grown)
}
