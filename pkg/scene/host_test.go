package scene

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/teslashibe/go-folio/internal/log"
	"github.com/teslashibe/go-folio/pkg/animator"
	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
)

// recorder is a Sink that keeps copies of every snapshot.
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
	err   error
}

func (r *recorder) Publish(s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	s.Nodes = append([]rig.Node(nil), s.Nodes...)
	r.snaps = append(r.snaps, s)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func (r *recorder) last() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snaps[len(r.snaps)-1]
}

func newTestHost(t *testing.T, sink Sink, opts ...Option) *Host {
	t.Helper()
	anim, err := animator.New(animator.DefaultConfig(), rig.Articulated())
	if err != nil {
		t.Fatalf("animator.New failed: %v", err)
	}
	opts = append([]Option{WithSeed(1), WithLogger(log.Discard())}, opts...)
	h, err := NewHost(anim, sink, opts...)
	if err != nil {
		t.Fatalf("NewHost failed: %v", err)
	}
	return h
}

func TestNewHostValidation(t *testing.T) {
	anim, _ := animator.New(animator.DefaultConfig(), rig.Simple())
	if _, err := NewHost(nil, &recorder{}); err == nil {
		t.Error("Expected error for nil animator")
	}
	if _, err := NewHost(anim, nil); err == nil {
		t.Error("Expected error for nil sink")
	}
}

func TestStepPublishesInitialFrame(t *testing.T) {
	rec := &recorder{}
	h := newTestHost(t, rec)

	t0 := time.Unix(1000, 0)
	h.Step(t0)

	if rec.count() != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", rec.count())
	}
	s := rec.last()
	if s.Seq != 1 || s.Time != 0 || s.Section != content.Intro {
		t.Errorf("Unexpected initial snapshot: seq=%d time=%g section=%s", s.Seq, s.Time, s.Section)
	}
	if len(s.Nodes) != rig.Articulated().Len() {
		t.Errorf("Expected %d nodes, got %d", rig.Articulated().Len(), len(s.Nodes))
	}

	// Same instant again is a no-op.
	h.Step(t0)
	if st := h.Stats(); st.Ticks != 1 || rec.count() != 1 {
		t.Errorf("Repeated timestamp advanced the host: %+v", st)
	}
}

func TestStepUsesLatestInput(t *testing.T) {
	rec := &recorder{}
	h := newTestHost(t, rec, WithDeadZone(0))

	t0 := time.Unix(1000, 0)
	h.Step(t0)

	h.SetScroll(0.1)
	h.SetScroll(0.95)
	h.SetPointer(0.5, -0.5)
	for i := 1; i <= 600; i++ {
		h.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}

	f := h.Frame()
	if f.Input.Scroll != 0.95 {
		t.Errorf("Expected latest scroll 0.95, got %g", f.Input.Scroll)
	}
	if f.Input.Pointer != (rig.Vec2{X: 0.5, Y: -0.5}) {
		t.Errorf("Unexpected pointer %+v", f.Input.Pointer)
	}
	if rec.last().Section != content.Contact {
		t.Errorf("Expected contact section, got %s", rec.last().Section)
	}
	if st := h.Stats(); st.Published != 601 || st.Skipped != 0 {
		t.Errorf("Expected every tick published, got %+v", st)
	}
}

func TestDeadZoneAndKeyframes(t *testing.T) {
	rec := &recorder{}
	h := newTestHost(t, rec, WithDeadZone(100), WithKeyframeEvery(5))

	t0 := time.Unix(1000, 0)
	for i := 0; i < 10; i++ {
		h.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}

	// Initial frame plus keyframes on ticks 5 and 10.
	st := h.Stats()
	if st.Ticks != 10 || st.Published != 3 || st.Skipped != 7 {
		t.Errorf("Unexpected stats: %+v", st)
	}
}

func TestMaxDelta(t *testing.T) {
	h := newTestHost(t, &recorder{}, WithMaxDelta(50*time.Millisecond))

	t0 := time.Unix(1000, 0)
	h.Step(t0)
	h.Step(t0.Add(10 * time.Second))

	f := h.Frame()
	if f.Input.Delta != 0.05 {
		t.Errorf("Expected capped delta 0.05, got %g", f.Input.Delta)
	}
	// A stall must not fast-forward time-driven motion either.
	if f.Input.Time != 0.05 {
		t.Errorf("Expected scene time 0.05, got %g", f.Input.Time)
	}
	first := h.anim.Initial(1).Blink
	if f.Blink.Closed || f.Blink.NextToggle != first.NextToggle {
		t.Errorf("blink schedule moved during a stall: %+v", f.Blink)
	}

	h.Step(t0.Add(10*time.Second + 20*time.Millisecond))
	if got := h.Frame().Input.Time; got < 0.0699 || got > 0.0701 {
		t.Errorf("Expected scene time 0.07, got %g", got)
	}
}

func TestPublishErrorsCounted(t *testing.T) {
	rec := &recorder{err: errors.New("socket closed")}
	h := newTestHost(t, rec, WithDeadZone(0))

	t0 := time.Unix(1000, 0)
	for i := 0; i < 5; i++ {
		h.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}

	st := h.Stats()
	if st.Errors != 5 || st.Published != 0 {
		t.Errorf("Unexpected stats: %+v", st)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	published := make(chan struct{}, 100)
	sink := SinkFunc(func(Snapshot) error {
		select {
		case published <- struct{}{}:
		default:
		}
		return nil
	})
	h := newTestHost(t, sink, WithRate(time.Millisecond), WithDeadZone(0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-published:
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for frames")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSinkFunc(t *testing.T) {
	var got uint64
	s := SinkFunc(func(s Snapshot) error {
		got = s.Seq
		return nil
	})
	if err := s.Publish(Snapshot{Seq: 7}); err != nil || got != 7 {
		t.Errorf("SinkFunc did not forward: %d %v", got, err)
	}
}
