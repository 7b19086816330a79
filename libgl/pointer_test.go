package libgl

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	values := []float32{1, 2, 3}
	assert.Equal(t, unsafe.Pointer(&values[0]), Pointer(values))

	value := uint32(7)
	assert.Equal(t, unsafe.Pointer(&value), Pointer(&value))
	assert.Equal(t, unsafe.Pointer(&value), Pointer(unsafe.Pointer(&value)))

	assert.Nil(t, Pointer(nil))
	assert.Nil(t, Pointer([]float32{}))
}

func TestPointerRejectsValues(t *testing.T) {
	assert.Panics(t, func() { Pointer(3) })
}
