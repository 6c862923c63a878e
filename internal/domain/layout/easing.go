package layout

import "github.com/bnema/floatdock/internal/domain/entity"

// AnimationSteps is the number of discrete frames in a drop-recovery animation.
const AnimationSteps = 12

// EaseOut maps linear progress t in [0,1] to 1-(1-t)^2.
func EaseOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	inv := 1 - t
	return 1 - inv*inv
}

// Interpolate returns the rect at linear progress fraction between from and to,
// after applying EaseOut. Size is interpolated too so callers may animate resizes.
func Interpolate(from, to entity.Rect, fraction float64) entity.Rect {
	if fraction >= 1 {
		return to
	}
	e := EaseOut(fraction)
	return entity.Rect{
		Left:   from.Left + (to.Left-from.Left)*e,
		Top:    from.Top + (to.Top-from.Top)*e,
		Width:  from.Width + (to.Width-from.Width)*e,
		Height: from.Height + (to.Height-from.Height)*e,
	}
}

// StepFraction returns the linear progress of frame step (1-based) out of steps.
func StepFraction(step, steps int) float64 {
	if steps <= 0 || step >= steps {
		return 1
	}
	if step <= 0 {
		return 0
	}
	return float64(step) / float64(steps)
}
