// Package animator drives the portfolio character's procedural motion.
//
// Each rendered frame the host calls Advance with the previous Frame and an
// Input snapshot (scroll progress, pointer, elapsed time, frame delta). The
// result is the next Frame; nothing else is mutated. The host copies the pose
// into its own scene graph via the rig's node export.
//
// Motion layers:
//   - placement: scroll picks one of five bands, each interpolating a root
//     position and yaw; the root chases that target with exponential smoothing
//   - gaze: the pointer defines a look-at point that is itself smoothed; the
//     head is oriented toward it and clamped to its anatomical range
//   - gaze activity: fast pointer movement engages iris tracking, stillness
//     relaxes the irises to center
//   - idle: breathing, leg sway and arm swing driven by time alone
//   - blink: a schedule stored in the frame, re-drawn from a seeded generator
package animator

import (
	"math/rand/v2"

	"github.com/teslashibe/go-folio/pkg/rig"
)

// Input is the per-frame snapshot supplied by the host.
type Input struct {
	Scroll  float64 // 0..1
	Pointer rig.Vec2
	Time    float64 // seconds since start, monotonic
	Delta   float64 // seconds since previous frame
}

// BlinkState is the blink schedule. Closed flips when Time reaches NextToggle.
type BlinkState struct {
	Closed     bool
	Since      float64 // time the current blink started
	NextToggle float64

	rng rand.PCG
}

// GazeState tracks recent pointer activity and the smoothed look-at point.
type GazeState struct {
	Active     bool
	Speed      float64  // smoothed pointer speed, units per second
	LastActive float64  // time of the last qualifying movement
	LookAt     rig.Vec3 // smoothed look-at point in scene space
}

// Frame is everything that carries over from one frame to the next.
// It is a plain value; copying it snapshots the animation.
type Frame struct {
	Pose  rig.Pose
	Blink BlinkState
	Gaze  GazeState
	Reach float64 // smoothed reactive arm reach
	Input Input   // last accepted input
	Count uint64  // frames advanced
}

// Section returns the content band the frame's scroll falls in.
func (f Frame) Section(bands Bands) Band {
	return bands.At(f.Input.Scroll)
}
