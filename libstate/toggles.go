package libstate

const ExposureStep = 0.1

// ToggleUI flips the overlay on key press. Mouse look is disabled while the overlay is shown.
func (s *State) ToggleUI() bool {
	s.UIEnabled = !s.UIEnabled
	s.MouseLookEnabled = !s.UIEnabled
	return s.UIEnabled
}

func (s *State) ToggleSpotlight() {
	s.SpotlightEnabled = !s.SpotlightEnabled
}

// PollBloomKey samples the bloom key. The flag flips once per press and
// release cycle, no matter how often a held key is sampled.
func (s *State) PollBloomKey(down bool) {
	if down && !s.bloomKeyDown {
		s.BloomEnabled = !s.BloomEnabled
		s.bloomKeyDown = true
	}
	if !down {
		s.bloomKeyDown = false
	}
}

// AdjustExposure steps the exposure once per call while a key is held.
// Decreasing wins over increasing and never goes below zero.
func (s *State) AdjustExposure(decrease, increase bool) {
	if decrease {
		s.Exposure -= ExposureStep
		if s.Exposure < 0 {
			s.Exposure = 0
		}
	} else if increase {
		s.Exposure += ExposureStep
	}
}
