// Package scene runs the animator at a fixed rate and hands each frame to a
// renderer.
//
// Architecture:
//   - Input (scroll, pointer) is latest-value: setters overwrite, never queue
//   - One Advance per tick; time comes from an injected clock
//   - Snapshots are published only when the pose moved past a dead-zone, with
//     a periodic keyframe so late subscribers catch up
package scene

import (
	"time"

	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
)

// Snapshot is one published frame.
//
// Nodes is backed by a buffer the host reuses on the next tick; a Sink that
// keeps it past Publish must copy it.
type Snapshot struct {
	Seq        uint64          `json:"seq"`
	Time       float64         `json:"time"`
	Scroll     float64         `json:"scroll"`
	Section    content.Section `json:"section"`
	Nodes      []rig.Node      `json:"nodes"`
	Blinking   bool            `json:"blinking"`
	GazeActive bool            `json:"gazeActive"`
}

// Sink receives snapshots. Publish is called from the host's loop goroutine.
type Sink interface {
	Publish(Snapshot) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Snapshot) error

// Publish calls f.
func (f SinkFunc) Publish(s Snapshot) error { return f(s) }

// Clock returns the current time.
type Clock func() time.Time

// Stats are the host's diagnostic counters.
type Stats struct {
	Ticks     uint64 `json:"ticks"`
	Published uint64 `json:"published"`
	Skipped   uint64 `json:"skipped"`
	Errors    uint64 `json:"errors"`
}
