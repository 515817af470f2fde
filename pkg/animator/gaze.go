package animator

import (
	"math"

	"github.com/teslashibe/go-folio/pkg/rig"
)

// LookAtEuler returns the XYZ Euler that points a node's +Z axis from `from`
// toward `to`, expressed in a parent frame yawed by parentYaw. The second
// result is false when the direction is degenerate (zero length or straight
// up/down); callers keep their previous rotation in that case.
func LookAtEuler(from, to rig.Vec3, parentYaw float64) (rig.Euler, bool) {
	d := to.Sub(from).RotateY(-parentYaw)
	l := d.Len()
	if l < 1e-9 {
		return rig.Euler{}, false
	}
	f := d.Scale(1 / l)
	if math.Hypot(f.X, f.Z) < 1e-9 {
		return rig.Euler{}, false
	}

	// Basis x = up × f, y = f × x, z = f; decomposed in XYZ order.
	return rig.Euler{
		Pitch: math.Atan2(-f.Y, f.Z),
		Yaw:   math.Asin(clamp(f.X, -1, 1)),
		Roll:  math.Atan2(f.X*f.Y, f.Z),
	}, true
}

// lookTarget maps the pointer onto the look-at plane in front of the
// character.
func (a *Animator) lookTarget(p rig.Vec2) rig.Vec3 {
	return rig.Vec3{
		X: p.X * a.cfg.ViewWidth / 2,
		Y: p.Y * a.cfg.ViewHeight / 2,
		Z: a.cfg.LookDistance,
	}
}

// track updates the smoothed pointer speed and the active flag. Movement
// faster than ActiveThreshold engages the gaze; QuietPeriod seconds without
// such movement disengages it.
func (g GazeState) track(prev, cur rig.Vec2, t, dt float64, cfg *Config) GazeState {
	inst := math.Hypot(cur.X-prev.X, cur.Y-prev.Y) / dt
	g.Speed = Smooth(g.Speed, inst, FrameFactor(cfg.SpeedSmoothing, dt, cfg.ReferenceRate), cfg.SnapEpsilon)

	if g.Speed > cfg.ActiveThreshold {
		g.Active = true
		g.LastActive = t
	} else if g.Active && t-g.LastActive > cfg.QuietPeriod {
		g.Active = false
	}
	return g
}

// irisTarget returns where the irises head this frame and how fast.
func (g GazeState) irisTarget(pointer rig.Vec2, cfg *Config) (rig.Vec2, float64) {
	if !g.Active {
		return rig.Vec2{}, cfg.IrisRestBlend
	}
	return rig.Vec2{
		X: pointer.X * cfg.IrisActiveRange,
		Y: pointer.Y * cfg.IrisActiveRange,
	}, cfg.IrisActiveBlend
}
