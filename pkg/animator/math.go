package animator

import (
	"math"

	"github.com/teslashibe/go-folio/pkg/rig"
)

// lerp performs linear interpolation between two values.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Smooth advances prev toward target by factor (exponential smoothing).
// Values closer than eps to the target land on it exactly.
func Smooth(prev, target, factor, eps float64) float64 {
	next := prev + (target-prev)*factor
	if math.Abs(target-next) <= eps {
		return target
	}
	return next
}

// FrameFactor rescales a per-frame blend tuned at rate Hz to a frame of dt
// seconds, so that n frames of dt cover the same ground as one frame of n*dt.
func FrameFactor(factor, dt, rate float64) float64 {
	factor = clamp(factor, 0, 1)
	if factor == 1 || rate <= 0 {
		return factor
	}
	return 1 - math.Pow(1-factor, dt*rate)
}

func smoothVec3(prev, target rig.Vec3, factor, eps float64) rig.Vec3 {
	return rig.Vec3{
		X: Smooth(prev.X, target.X, factor, eps),
		Y: Smooth(prev.Y, target.Y, factor, eps),
		Z: Smooth(prev.Z, target.Z, factor, eps),
	}
}

func smoothVec2(prev, target rig.Vec2, factor, eps float64) rig.Vec2 {
	return rig.Vec2{
		X: Smooth(prev.X, target.X, factor, eps),
		Y: Smooth(prev.Y, target.Y, factor, eps),
	}
}

func smoothEuler(prev, target rig.Euler, factor, eps float64) rig.Euler {
	return rig.Euler{
		Pitch: Smooth(prev.Pitch, target.Pitch, factor, eps),
		Yaw:   Smooth(prev.Yaw, target.Yaw, factor, eps),
		Roll:  Smooth(prev.Roll, target.Roll, factor, eps),
	}
}
