package animator

import (
	"math"

	"github.com/teslashibe/go-folio/pkg/rig"
)

var sides = [2]rig.Side{rig.Left, rig.Right}

// breathe returns the torso scale offset at time t.
func (a *Animator) breathe(t float64) float64 {
	return math.Sin(t*a.cfg.BreathRate) * a.cfg.BreathDepth
}

// legs sways the legs in opposite phase.
func (a *Animator) legs(p *rig.Pose, t float64) {
	sway := math.Sin(t*a.cfg.LegSwayRate) * a.cfg.LegSwayAmount
	p.Joints[rig.LeftLeg] = rig.Euler{Pitch: sway}
	p.Joints[rig.RightLeg] = rig.Euler{Pitch: -sway}
}

// reachTarget is the pointer-reactive arm term.
func (a *Animator) reachTarget(pointer rig.Vec2) float64 {
	return clamp(pointer.X*a.cfg.ArmReach, -a.cfg.ArmReachLimit, a.cfg.ArmReachLimit)
}

// arms poses both arm chains from the idle swing and the smoothed reach.
// Idle pitch is mirrored between sides and the right arm runs ArmPhase
// ahead, so the two never move in lockstep. factor is this frame's hand blend.
func (a *Animator) arms(p *rig.Pose, reach, t, factor float64) {
	cfg := &a.cfg
	eps := cfg.SnapEpsilon

	flex := 0.0
	if cfg.ArmReachLimit > 0 {
		flex = math.Abs(reach) / cfg.ArmReachLimit
	}

	for _, side := range sides {
		m := side.Mirror()
		phase := 0.0
		if side == rig.Right {
			phase = cfg.ArmPhase
		}
		swing := math.Sin(t*cfg.ArmSwayRate + phase)
		bend := (1 + math.Sin(t*cfg.ArmSwayRate*1.3+phase)) / 2

		upper, lower, hand := rig.ArmChain(side)

		p.Joints[upper] = rig.Euler{
			Pitch: m * swing * cfg.ArmSwayAmount,
			Roll:  -m*cfg.ArmRestRoll + reach,
		}
		p.Joints[lower] = rig.Euler{
			Pitch: -(cfg.ElbowRest + bend*cfg.ElbowIdle + flex*cfg.ElbowFlex),
		}

		handTarget := rig.Euler{
			Pitch: -(swing*cfg.HandIdle + flex*cfg.HandReach),
			Roll:  m * swing * cfg.HandIdle * 0.5,
		}
		p.Joints[hand] = smoothEuler(p.Joints[hand], handTarget, factor, eps)

		offTarget := rig.Vec3{Z: cfg.HandForward * (flex + 0.25*swing)}
		p.Offsets[hand] = smoothVec3(p.Offsets[hand], offTarget, factor, eps)
	}
}
