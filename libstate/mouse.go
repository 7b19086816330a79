package libstate

// MouseTracker turns absolute cursor positions into deltas. The first sample
// only records the position so the camera does not jump.
type MouseTracker struct {
	lastX, lastY float64
	seen         bool
}

// Delta returns the movement since the previous sample with y pointing up.
func (m *MouseTracker) Delta(x, y float64) (dx, dy float32) {
	if !m.seen {
		m.lastX, m.lastY = x, y
		m.seen = true
	}
	dx = float32(x - m.lastX)
	dy = float32(m.lastY - y)
	m.lastX, m.lastY = x, y
	return
}

func (m *MouseTracker) Reset() {
	m.seen = false
}
