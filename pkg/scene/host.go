package scene

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/teslashibe/go-folio/internal/log"
	"github.com/teslashibe/go-folio/pkg/animator"
	"github.com/teslashibe/go-folio/pkg/rig"
)

// Host drives one animated character through a single loop.
type Host struct {
	anim *animator.Animator
	sink Sink

	rate          time.Duration
	maxDelta      time.Duration
	clock         Clock
	seed          uint64
	deadZone      float64
	keyframeEvery uint64
	logger        *slog.Logger

	// Latest input, overwritten by the setters.
	inMu    sync.Mutex
	scroll  float64
	pointer rig.Vec2

	// Loop state, owned by whoever calls Step.
	mu       sync.Mutex
	frame    animator.Frame
	started  bool
	last     time.Time
	elapsed  time.Duration // sum of capped deltas
	lastSent rig.Pose
	nodes    []rig.Node
	seq      uint64
	stats    Stats
}

// NewHost creates a host that publishes anim's frames to sink.
func NewHost(anim *animator.Animator, sink Sink, opts ...Option) (*Host, error) {
	if anim == nil {
		return nil, errors.New("scene: nil animator")
	}
	if sink == nil {
		return nil, errors.New("scene: nil sink")
	}

	h := &Host{
		anim:          anim,
		sink:          sink,
		rate:          DefaultRate,
		maxDelta:      DefaultMaxDelta,
		clock:         time.Now,
		seed:          uint64(time.Now().UnixNano()),
		deadZone:      DefaultDeadZone,
		keyframeEvery: DefaultKeyframeEvery,
		logger:        log.L(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "scene")
	h.nodes = make([]rig.Node, 0, anim.Rig().Len())
	return h, nil
}

// SetScroll records the latest scroll progress.
func (h *Host) SetScroll(v float64) {
	h.inMu.Lock()
	h.scroll = v
	h.inMu.Unlock()
}

// SetPointer records the latest normalized pointer position.
func (h *Host) SetPointer(x, y float64) {
	h.inMu.Lock()
	h.pointer = rig.Vec2{X: x, Y: y}
	h.inMu.Unlock()
}

// Run ticks until ctx is done.
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(h.rate)
	defer ticker.Stop()

	h.logger.Info("scene host started", "rate_hz", math.Round(1/h.rate.Seconds()), "rig", h.anim.Rig().Name())
	h.Step(h.clock())

	for {
		select {
		case <-ctx.Done():
			st := h.Stats()
			h.logger.Info("scene host stopped", "ticks", st.Ticks, "published", st.Published, "skipped", st.Skipped)
			return
		case <-ticker.C:
			h.Step(h.clock())
		}
	}
}

// Step runs one tick at now. The first call starts the clock and publishes
// the initial frame.
func (h *Host) Step(now time.Time) {
	h.inMu.Lock()
	scroll, pointer := h.scroll, h.pointer
	h.inMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		h.started = true
		h.last, h.elapsed = now, 0
		h.frame = h.anim.Initial(h.seed)
		h.stats.Ticks++
		h.publish()
		return
	}

	delta := now.Sub(h.last)
	if delta <= 0 {
		return
	}
	h.last = now
	if delta > h.maxDelta {
		delta = h.maxDelta
	}
	h.elapsed += delta

	h.frame = h.anim.Advance(h.frame, animator.Input{
		Scroll:  scroll,
		Pointer: pointer,
		Time:    h.elapsed.Seconds(),
		Delta:   delta.Seconds(),
	})
	h.stats.Ticks++

	keyframe := h.keyframeEvery > 0 && h.stats.Ticks%h.keyframeEvery == 0
	if !keyframe && !h.needsSend(h.frame.Pose) {
		h.stats.Skipped++
		return
	}
	h.publish()

	// Periodic heartbeat
	if h.stats.Ticks%600 == 0 {
		head := h.frame.Pose.Joints[rig.Head]
		h.logger.Debug("scene heartbeat",
			"ticks", h.stats.Ticks,
			"skipped", h.stats.Skipped,
			"section", h.anim.Section(h.frame.Input.Scroll),
			"head_yaw", head.Yaw,
			"head_pitch", head.Pitch,
		)
	}
}

// publish exports the current frame to the sink. Caller holds h.mu.
func (h *Host) publish() {
	h.nodes = h.anim.Rig().AppendNodes(h.nodes[:0], h.frame.Pose)
	h.seq++

	err := h.sink.Publish(Snapshot{
		Seq:        h.seq,
		Time:       h.elapsed.Seconds(),
		Scroll:     h.frame.Input.Scroll,
		Section:    h.anim.Section(h.frame.Input.Scroll),
		Nodes:      h.nodes,
		Blinking:   h.frame.Blink.Closed,
		GazeActive: h.frame.Gaze.Active,
	})
	if err != nil {
		h.stats.Errors++
		if h.stats.Errors%100 == 1 {
			h.logger.Warn("publish failed", "error", err, "errors", h.stats.Errors)
		}
		return
	}
	h.stats.Published++
	h.lastSent = h.frame.Pose
}

// needsSend reports whether p differs enough from the last published pose.
func (h *Host) needsSend(p rig.Pose) bool {
	if h.deadZone == 0 {
		return true
	}
	return poseDelta(p, h.lastSent) >= h.deadZone
}

// poseDelta is the largest absolute difference between two poses over every
// value a renderer sees.
func poseDelta(a, b rig.Pose) float64 {
	d := math.Max(a.Root.Sub(b.Root).Len(), math.Abs(a.Yaw-b.Yaw))
	d = math.Max(d, math.Abs(a.Bob-b.Bob))
	d = math.Max(d, math.Abs(a.TorsoScale-b.TorsoScale))
	for i := range a.Joints {
		ja, jb := a.Joints[i], b.Joints[i]
		d = math.Max(d, math.Abs(ja.Pitch-jb.Pitch))
		d = math.Max(d, math.Abs(ja.Yaw-jb.Yaw))
		d = math.Max(d, math.Abs(ja.Roll-jb.Roll))
		d = math.Max(d, a.Offsets[i].Sub(b.Offsets[i]).Len())
	}
	for s := range a.Eyelids {
		d = math.Max(d, math.Abs(a.Eyelids[s]-b.Eyelids[s]))
		d = math.Max(d, math.Abs(a.Irises[s].X-b.Irises[s].X))
		d = math.Max(d, math.Abs(a.Irises[s].Y-b.Irises[s].Y))
	}
	return d
}

// Frame returns a copy of the current frame.
func (h *Host) Frame() animator.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// Stats returns the diagnostic counters.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}
