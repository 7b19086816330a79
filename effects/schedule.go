package effects

// DefaultBlurIterations is the number of separable blur passes, alternating direction.
const DefaultBlurIterations = 5

// BlurPass describes one iteration of the ping-pong blur. Target indexes the
// pair member written to. Source is the pair member sampled, unless
// FromBrightPass is set, in which case the HDR bright pass attachment is read.
type BlurPass struct {
	Horizontal     bool
	Target         int
	Source         int
	FromBrightPass bool
}

// BlurSchedule lists n passes starting horizontal. Each pass after the first
// reads what the previous one wrote.
func BlurSchedule(n int) []BlurPass {
	if n <= 0 {
		return nil
	}
	passes := make([]BlurPass, n)
	horizontal := true
	for i := range passes {
		pass := BlurPass{Horizontal: horizontal, Target: 0}
		if horizontal {
			pass.Target = 1
		}
		if i == 0 {
			pass.FromBrightPass = true
			pass.Source = -1
		} else {
			pass.Source = passes[i-1].Target
		}
		passes[i] = pass
		horizontal = !horizontal
	}
	return passes
}

// FinalTarget is the pair member holding the result of a schedule, -1 when empty.
func FinalTarget(passes []BlurPass) int {
	if len(passes) == 0 {
		return -1
	}
	return passes[len(passes)-1].Target
}
