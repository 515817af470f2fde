package animator

import (
	"fmt"
	"math"

	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
)

// Animator computes frames for one rig. It holds only immutable configuration
// and is safe for concurrent use.
type Animator struct {
	cfg Config
	rig *rig.Rig
}

// New validates the configuration's band table and returns an Animator.
func New(cfg Config, r *rig.Rig) (*Animator, error) {
	if r == nil {
		return nil, fmt.Errorf("animator: nil rig")
	}
	if err := cfg.Bands.Validate(); err != nil {
		return nil, err
	}
	if cfg.ReferenceRate <= 0 {
		return nil, fmt.Errorf("animator: reference rate must be positive, got %g", cfg.ReferenceRate)
	}
	bands := make(Bands, len(cfg.Bands))
	copy(bands, cfg.Bands)
	cfg.Bands = bands
	return &Animator{cfg: cfg, rig: r}, nil
}

// Config returns a copy of the animator's configuration.
func (a *Animator) Config() Config {
	cfg := a.cfg
	cfg.Bands = append(Bands(nil), a.cfg.Bands...)
	return cfg
}

// Rig returns the rig the animator poses.
func (a *Animator) Rig() *rig.Rig { return a.rig }

// Section returns the content section a scroll value falls in.
func (a *Animator) Section(scroll float64) content.Section {
	return a.cfg.Bands.At(scroll).Section
}

// Initial returns the resting frame at the intro placement, looking straight
// ahead, with the first blink scheduled.
func (a *Animator) Initial(seed uint64) Frame {
	place := a.cfg.Bands.Target(0)

	p := rig.Rest()
	p.Root = place.Position
	p.Yaw = place.Yaw

	f := Frame{
		Blink: NewBlink(a.cfg, seed, 0),
		Gaze:  GazeState{LookAt: a.lookTarget(rig.Vec2{})},
	}
	if e, ok := LookAtEuler(a.rig.HeadWorld(p), f.Gaze.LookAt, p.Yaw); ok {
		p.Joints[rig.Head] = e
	}
	f.Pose = a.rig.Clamp(p)
	return f
}

// Advance returns the frame after prev for the given input.
//
// A non-positive or non-finite Delta returns prev unchanged. Non-finite
// scroll or pointer values fall back to the previous frame's input; a
// non-finite Time is replaced by the previous time plus Delta. Finite values
// are clamped to their ranges. Advance never fails and does not allocate.
func (a *Animator) Advance(prev Frame, in Input) Frame {
	if !finite(in.Delta) || in.Delta <= 0 {
		return prev
	}
	in = sanitize(prev.Input, in)

	cfg := &a.cfg
	dt := in.Delta
	eps := cfg.SnapEpsilon
	factor := func(f float64) float64 {
		return FrameFactor(f, dt, cfg.ReferenceRate)
	}

	next := prev
	next.Input = in
	next.Count++
	p := prev.Pose

	// Placement chases the band target.
	target := cfg.Bands.Target(in.Scroll)
	p.Root = smoothVec3(p.Root, target.Position, factor(cfg.RootSmoothing), eps)
	p.Yaw = Smooth(p.Yaw, target.Yaw+in.Pointer.X*cfg.PointerLean, factor(cfg.YawSmoothing), eps)

	// Breathing layers on top of the placement.
	breath := a.breathe(in.Time)
	p.TorsoScale = 1 + breath
	p.Bob = breath * cfg.BobScale

	// Head follows the smoothed look-at point; limits apply in Clamp below.
	gaze := prev.Gaze
	gaze.LookAt = smoothVec3(gaze.LookAt, a.lookTarget(in.Pointer), factor(cfg.LookSmoothing), eps)
	if e, ok := LookAtEuler(a.rig.HeadWorld(p), gaze.LookAt, p.Yaw); ok {
		p.Joints[rig.Head] = e
	}

	gaze = gaze.track(prev.Input.Pointer, in.Pointer, in.Time, dt, cfg)
	iris, blend := gaze.irisTarget(in.Pointer, cfg)
	for s := range p.Irises {
		p.Irises[s] = smoothVec2(p.Irises[s], iris, factor(blend), eps)
	}
	next.Gaze = gaze

	a.legs(&p, in.Time)

	if a.rig.HasArms() {
		armFactor := factor(cfg.ArmSmoothing)
		next.Reach = Smooth(prev.Reach, a.reachTarget(in.Pointer), armFactor, eps)
		a.arms(&p, next.Reach, in.Time, armFactor)
	}

	next.Blink = prev.Blink.step(in.Time, cfg)
	lid := next.Blink.eyelidTarget(cfg)
	for s := range p.Eyelids {
		p.Eyelids[s] = Smooth(p.Eyelids[s], lid, factor(cfg.EyelidSmoothing), eps)
	}

	next.Pose = a.rig.Clamp(p)
	return next
}

// sanitize replaces non-finite fields with the previous input and clamps the
// rest. Delta is assumed valid.
func sanitize(prev, in Input) Input {
	if !finite(in.Scroll) {
		in.Scroll = prev.Scroll
	}
	in.Scroll = clamp(in.Scroll, 0, 1)

	if !in.Pointer.Finite() {
		if !finite(in.Pointer.X) {
			in.Pointer.X = prev.Pointer.X
		}
		if !finite(in.Pointer.Y) {
			in.Pointer.Y = prev.Pointer.Y
		}
	}
	in.Pointer.X = clamp(in.Pointer.X, -1, 1)
	in.Pointer.Y = clamp(in.Pointer.Y, -1, 1)

	if !finite(in.Time) {
		in.Time = prev.Time + in.Delta
	}
	return in
}

// Settle advances the initial frame at ReferenceRate with a constant scroll
// and pointer for the given number of seconds. It is used for still
// previews.
func (a *Animator) Settle(seed uint64, scroll float64, pointer rig.Vec2, seconds float64) Frame {
	f := a.Initial(seed)
	dt := 1 / a.cfg.ReferenceRate
	steps := int(math.Ceil(seconds * a.cfg.ReferenceRate))
	for i := 1; i <= steps; i++ {
		f = a.Advance(f, Input{
			Scroll:  scroll,
			Pointer: pointer,
			Time:    float64(i) * dt,
			Delta:   dt,
		})
	}
	return f
}
