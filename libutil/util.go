package libutil

import (
	"math"
)

const (
	Rad2Deg = float32(180 / math.Pi)
	Deg2Rad = float32(math.Pi / 180)
)

type Deleter interface {
	Delete()
}

// DeleteAll releases resources in reverse order, skipping nil entries.
func DeleteAll(resources ...Deleter) {
	for i := len(resources) - 1; i >= 0; i-- {
		if resources[i] != nil {
			resources[i].Delete()
		}
	}
}

func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
