package animator

import (
	"math"
	"testing"

	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
)

const dt = 1.0 / 60

func newTestAnimator(t *testing.T, r *rig.Rig) *Animator {
	t.Helper()
	a, err := New(DefaultConfig(), r)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

// run advances f for n frames of dt with fixed scroll and pointer, calling
// check (if non-nil) after every frame.
func run(a *Animator, f Frame, n int, scroll float64, pointer rig.Vec2, check func(Frame)) Frame {
	start := f.Input.Time
	for i := 1; i <= n; i++ {
		f = a.Advance(f, Input{
			Scroll:  scroll,
			Pointer: pointer,
			Time:    start + float64(i)*dt,
			Delta:   dt,
		})
		if check != nil {
			check(f)
		}
	}
	return f
}

func poseFinite(p rig.Pose) bool {
	vals := []float64{p.Root.X, p.Root.Y, p.Root.Z, p.Yaw, p.Bob, p.TorsoScale}
	for _, e := range p.Joints {
		vals = append(vals, e.Pitch, e.Yaw, e.Roll)
	}
	for _, o := range p.Offsets {
		vals = append(vals, o.X, o.Y, o.Z)
	}
	for s := range p.Eyelids {
		vals = append(vals, p.Eyelids[s], p.Irises[s].X, p.Irises[s].Y)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestNewValidation(t *testing.T) {
	if _, err := New(DefaultConfig(), nil); err == nil {
		t.Error("Expected error for nil rig")
	}

	cfg := DefaultConfig()
	cfg.Bands = cfg.Bands[:3]
	if _, err := New(cfg, rig.Simple()); err == nil {
		t.Error("Expected error for bands not covering [0, 1]")
	}

	cfg = DefaultConfig()
	cfg.ReferenceRate = 0
	if _, err := New(cfg, rig.Simple()); err == nil {
		t.Error("Expected error for zero reference rate")
	}
}

func TestAdvanceZeroDeltaIsIdentity(t *testing.T) {
	a := newTestAnimator(t, rig.Articulated())
	f := run(a, a.Initial(7), 30, 0.4, rig.Vec2{X: 0.3, Y: -0.2}, nil)

	for _, d := range []float64{0, -dt, math.NaN(), math.Inf(1)} {
		got := a.Advance(f, Input{Scroll: 0.9, Pointer: rig.Vec2{X: 1}, Time: 99, Delta: d})
		if got != f {
			t.Errorf("Delta %g changed the frame", d)
		}
	}
}

func TestAdvanceNonFiniteInput(t *testing.T) {
	a := newTestAnimator(t, rig.Articulated())
	prev := run(a, a.Initial(1), 10, 0.3, rig.Vec2{X: 0.2, Y: 0.1}, nil)

	next := a.Advance(prev, Input{
		Scroll:  math.NaN(),
		Pointer: rig.Vec2{X: math.Inf(-1), Y: 0.5},
		Time:    math.NaN(),
		Delta:   dt,
	})

	if next.Input.Scroll != 0.3 {
		t.Errorf("Expected scroll fallback 0.3, got %g", next.Input.Scroll)
	}
	if next.Input.Pointer.X != 0.2 {
		t.Errorf("Expected pointer x fallback 0.2, got %g", next.Input.Pointer.X)
	}
	if next.Input.Pointer.Y != 0.5 {
		t.Errorf("Expected pointer y 0.5, got %g", next.Input.Pointer.Y)
	}
	if math.Abs(next.Input.Time-(prev.Input.Time+dt)) > 1e-12 {
		t.Errorf("Expected time %g, got %g", prev.Input.Time+dt, next.Input.Time)
	}
	if !poseFinite(next.Pose) {
		t.Error("Pose contains non-finite values")
	}
	if next.Count != prev.Count+1 {
		t.Errorf("Expected count %d, got %d", prev.Count+1, next.Count)
	}
}

func TestAdvanceClampsInput(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := a.Advance(a.Initial(1), Input{Scroll: 3, Pointer: rig.Vec2{X: -4, Y: 2}, Time: dt, Delta: dt})

	if f.Input.Scroll != 1 {
		t.Errorf("Expected scroll 1, got %g", f.Input.Scroll)
	}
	if f.Input.Pointer != (rig.Vec2{X: -1, Y: 1}) {
		t.Errorf("Expected pointer (-1, 1), got %+v", f.Input.Pointer)
	}
}

func TestSteadyStatePlacement(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())

	f := run(a, a.Initial(1), 600, 0, rig.Vec2{}, nil)
	if f.Pose.Root != (rig.Vec3{X: 0, Y: -1.5, Z: 0}) || f.Pose.Yaw != 0 {
		t.Errorf("Scroll 0: root %+v yaw %g", f.Pose.Root, f.Pose.Yaw)
	}
	if f.Section(a.Config().Bands).Section != content.Intro {
		t.Errorf("Expected intro section")
	}

	// Wander off, then come back to the end of the page.
	f = run(a, f, 300, 0.55, rig.Vec2{}, nil)
	f = run(a, f, 600, 1, rig.Vec2{}, nil)
	if f.Pose.Root != (rig.Vec3{X: 0, Y: -1.5, Z: 0}) || f.Pose.Yaw != 0 {
		t.Errorf("Scroll 1: root %+v yaw %g", f.Pose.Root, f.Pose.Yaw)
	}
}

func TestSteadyStateMidAbout(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := run(a, a.Initial(1), 900, 0.325, rig.Vec2{}, nil)

	if math.Abs(f.Pose.Root.X-(-1)) > 1e-9 {
		t.Errorf("Expected root x -1, got %g", f.Pose.Root.X)
	}
	if math.Abs(f.Pose.Yaw-0.25) > 1e-9 {
		t.Errorf("Expected yaw 0.25, got %g", f.Pose.Yaw)
	}
}

func TestPlacementSmoothNoOvershoot(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := run(a, a.Initial(1), 1, 0, rig.Vec2{}, nil)

	// Intro to projects exit: x heads from 0 toward 2.5.
	prevX := f.Pose.Root.X
	run(a, f, 600, 0.85, rig.Vec2{}, func(f Frame) {
		x := f.Pose.Root.X
		if x < prevX || x > 2.5 {
			t.Fatalf("Root x not monotone toward 2.5: %g after %g", x, prevX)
		}
		prevX = x
	})
}

func TestFrameRateIndependence(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())

	advance := func(hz int) Frame {
		f := a.Initial(1)
		step := 1 / float64(hz)
		for i := 1; i <= hz; i++ {
			f = a.Advance(f, Input{Scroll: 0.325, Time: float64(i) * step, Delta: step})
		}
		return f
	}

	slow, fast := advance(30), advance(120)
	if d := math.Abs(slow.Pose.Root.X - fast.Pose.Root.X); d > 1e-9 {
		t.Errorf("Root x differs by %g between 30 and 120 Hz", d)
	}
	if d := math.Abs(slow.Pose.Yaw - fast.Pose.Yaw); d > 1e-9 {
		t.Errorf("Yaw differs by %g between 30 and 120 Hz", d)
	}
}

func TestHeadStaysInLimits(t *testing.T) {
	a := newTestAnimator(t, rig.Articulated())
	r := a.Rig()

	scrolls := []float64{0, 0.325, 0.55, 0.75, 0.95}
	pointers := []rig.Vec2{{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}}

	for _, s := range scrolls {
		for _, p := range pointers {
			run(a, a.Initial(3), 240, s, p, func(f Frame) {
				if !r.WithinLimits(f.Pose) {
					t.Fatalf("scroll %g pointer %+v: pose out of limits, head %+v", s, p, f.Pose.Joints[rig.Head])
				}
				h := f.Pose.Joints[rig.Head]
				if math.Abs(h.Yaw) > rig.MaxHeadYaw || math.Abs(h.Pitch) > rig.MaxHeadPitch || math.Abs(h.Roll) > rig.MaxHeadRoll {
					t.Fatalf("scroll %g pointer %+v: head %+v", s, p, h)
				}
				for _, iris := range f.Pose.Irises {
					if math.Abs(iris.X) > rig.MaxIrisOffset || math.Abs(iris.Y) > rig.MaxIrisOffset {
						t.Fatalf("Iris out of range: %+v", iris)
					}
				}
				if !poseFinite(f.Pose) {
					t.Fatalf("Pose contains non-finite values")
				}
			})
		}
	}
}

func TestHeadFollowsPointer(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())

	right := run(a, a.Initial(1), 240, 0, rig.Vec2{X: 0.5}, nil)
	if right.Pose.Joints[rig.Head].Yaw <= 0 {
		t.Errorf("Expected positive head yaw toward right, got %g", right.Pose.Joints[rig.Head].Yaw)
	}

	left := run(a, a.Initial(1), 240, 0, rig.Vec2{X: -0.5}, nil)
	if left.Pose.Joints[rig.Head].Yaw >= 0 {
		t.Errorf("Expected negative head yaw toward left, got %g", left.Pose.Joints[rig.Head].Yaw)
	}

	up := run(a, a.Initial(1), 240, 0, rig.Vec2{Y: 0.5}, nil)
	if up.Pose.Joints[rig.Head].Pitch >= 0 {
		t.Errorf("Expected head to tilt up (negative pitch), got %g", up.Pose.Joints[rig.Head].Pitch)
	}
}

func TestGazeActivity(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := a.Initial(1)

	// Sweep the pointer right at 3 units/s.
	for i := 1; i <= 15; i++ {
		f = a.Advance(f, Input{
			Pointer: rig.Vec2{X: float64(i) * 0.05},
			Time:    float64(i) * dt,
			Delta:   dt,
		})
		if !f.Gaze.Active {
			t.Fatalf("Frame %d: expected active gaze, speed %g", i, f.Gaze.Speed)
		}
	}
	if f.Pose.Irises[rig.Left].X <= 0 {
		t.Errorf("Expected irises to track right, got %g", f.Pose.Irises[rig.Left].X)
	}

	// Hold still for a second.
	f = run(a, f, 60, 0, f.Input.Pointer, nil)
	if f.Gaze.Active {
		t.Errorf("Expected gaze to relax, speed %g", f.Gaze.Speed)
	}

	// Irises drift back to center.
	f = run(a, f, 600, 0, f.Input.Pointer, nil)
	for s, iris := range f.Pose.Irises {
		if iris != (rig.Vec2{}) {
			t.Errorf("Iris %d not centered: %+v", s, iris)
		}
	}
}

func TestGazeSlowMovementStaysInactive(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := a.Initial(1)

	// 0.3 units/s is under the threshold.
	for i := 1; i <= 120; i++ {
		f = a.Advance(f, Input{
			Pointer: rig.Vec2{Y: float64(i) * 0.005},
			Time:    float64(i) * dt,
			Delta:   dt,
		})
		if f.Gaze.Active {
			t.Fatalf("Frame %d: slow movement engaged gaze", i)
		}
	}
}

func TestBlinkSchedule(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := a.Initial(42)

	var (
		closes  []float64
		opens   []float64
		minLid  = 1.0
		closed  bool
		seconds = 60
	)
	for i := 1; i <= seconds*60; i++ {
		now := float64(i) * dt
		f = a.Advance(f, Input{Time: now, Delta: dt})
		if f.Blink.Closed && !closed {
			closes = append(closes, now)
		}
		if !f.Blink.Closed && closed {
			opens = append(opens, now)
		}
		closed = f.Blink.Closed
		minLid = math.Min(minLid, f.Pose.Eyelids[rig.Left])
	}

	if len(closes) < 10 {
		t.Fatalf("Expected at least 10 blinks in %ds, got %d", seconds, len(closes))
	}
	if closes[0] < 3 || closes[0] > 3+dt+1e-9 {
		t.Errorf("First blink at %g, want ~3s", closes[0])
	}
	for i := range opens {
		d := opens[i] - closes[i]
		if d < 0.12-1e-9 || d > 0.15+dt+1e-9 {
			t.Errorf("Blink %d closed for %g", i, d)
		}
	}
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d < 2-1e-9 || d > 5+dt+1e-9 {
			t.Errorf("Blink interval %d = %g", i, d)
		}
	}
	if minLid > 0.5 {
		t.Errorf("Eyelids never closed far, min %g", minLid)
	}
}

func TestDeterministic(t *testing.T) {
	a := newTestAnimator(t, rig.Articulated())

	play := func() Frame {
		f := a.Initial(99)
		for i := 1; i <= 900; i++ {
			x := math.Sin(float64(i) * 0.05)
			f = a.Advance(f, Input{
				Scroll:  float64(i) / 900,
				Pointer: rig.Vec2{X: x, Y: -x / 2},
				Time:    float64(i) * dt,
				Delta:   dt,
			})
		}
		return f
	}

	if play() != play() {
		t.Error("Same seed and inputs produced different frames")
	}
}

func TestArticulatedArms(t *testing.T) {
	a := newTestAnimator(t, rig.Articulated())
	cfg := a.Config()

	f := run(a, a.Initial(1), 600, 0.5, rig.Vec2{X: 1}, nil)
	if f.Reach != cfg.ArmReachLimit {
		t.Errorf("Expected reach %g, got %g", cfg.ArmReachLimit, f.Reach)
	}
	if !a.Rig().WithinLimits(f.Pose) {
		t.Error("Arms out of limits")
	}
	if f.Pose.Joints[rig.LeftLowerArm].Pitch >= 0 {
		t.Errorf("Expected flexed elbow, got %g", f.Pose.Joints[rig.LeftLowerArm].Pitch)
	}

	// The arms swing with a phase offset rather than as exact mirrors.
	mirrored := true
	run(a, f, 120, 0.5, rig.Vec2{}, func(f Frame) {
		l := f.Pose.Joints[rig.LeftUpperArm].Pitch
		r := f.Pose.Joints[rig.RightUpperArm].Pitch
		if math.Abs(l+r) > 1e-3 {
			mirrored = false
		}
	})
	if mirrored {
		t.Error("Arms moved as exact mirrors")
	}
}

func TestSimpleRigHasNoArms(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := run(a, a.Initial(1), 120, 0.5, rig.Vec2{X: 1}, nil)

	if f.Reach != 0 {
		t.Errorf("Expected no reach, got %g", f.Reach)
	}
	for _, s := range []rig.Side{rig.Left, rig.Right} {
		u, l, h := rig.ArmChain(s)
		for _, id := range []rig.JointID{u, l, h} {
			if f.Pose.Joints[id] != (rig.Euler{}) || f.Pose.Offsets[id] != (rig.Vec3{}) {
				t.Errorf("Joint %s moved on the simple rig", id)
			}
		}
	}
}

func TestIdleMotion(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())
	f := run(a, a.Initial(1), 45, 0, rig.Vec2{}, nil)

	want := 1 + math.Sin(f.Input.Time*2)*0.02
	if math.Abs(f.Pose.TorsoScale-want) > 1e-12 {
		t.Errorf("Torso scale %g, want %g", f.Pose.TorsoScale, want)
	}
	if math.Abs(f.Pose.Bob-(want-1)*0.1) > 1e-12 {
		t.Errorf("Bob %g, want %g", f.Pose.Bob, (want-1)*0.1)
	}
	if f.Pose.Joints[rig.LeftLeg].Pitch != -f.Pose.Joints[rig.RightLeg].Pitch {
		t.Error("Legs should sway in opposite phase")
	}
}

func TestAdvanceDoesNotAllocate(t *testing.T) {
	a := newTestAnimator(t, rig.Articulated())
	f := a.Initial(1)
	now := 0.0

	allocs := testing.AllocsPerRun(200, func() {
		now += dt
		f = a.Advance(f, Input{Scroll: 0.5, Pointer: rig.Vec2{X: 0.4}, Time: now, Delta: dt})
	})
	if allocs != 0 {
		t.Errorf("Advance allocated %g times per call", allocs)
	}
}

func TestConfigPresets(t *testing.T) {
	for _, name := range []string{"", "default", "calm", "lively"} {
		cfg, ok := ConfigPreset(name)
		if !ok {
			t.Errorf("Preset %q not found", name)
			continue
		}
		if _, err := New(cfg, rig.Simple()); err != nil {
			t.Errorf("Preset %q invalid: %v", name, err)
		}
	}
	if _, ok := ConfigPreset("frantic"); ok {
		t.Error("Expected unknown preset to fail")
	}
}

func TestSettle(t *testing.T) {
	a := newTestAnimator(t, rig.Simple())

	f := a.Settle(1, 1, rig.Vec2{}, 10)
	if f.Count != 600 {
		t.Errorf("Count = %d, want 600", f.Count)
	}
	want := a.cfg.Bands.Target(1)
	if f.Pose.Root != want.Position || f.Pose.Yaw != want.Yaw {
		t.Errorf("settled at %v yaw %v, want %v yaw %v", f.Pose.Root, f.Pose.Yaw, want.Position, want.Yaw)
	}

	// Same inputs, same frame.
	if g := a.Settle(1, 1, rig.Vec2{}, 10); g != f {
		t.Error("Settle should be deterministic")
	}
	if g := a.Settle(1, 0.5, rig.Vec2{}, 0); g != a.Initial(1) {
		t.Error("zero seconds should return the initial frame")
	}
}
