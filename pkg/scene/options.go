package scene

import (
	"log/slog"
	"time"
)

// Default host settings.
const (
	DefaultRate          = time.Second / 60
	DefaultMaxDelta      = 100 * time.Millisecond
	DefaultDeadZone      = 1e-4
	DefaultKeyframeEvery = 60
)

// Option configures a Host.
type Option func(*Host)

// WithRate sets the tick interval.
func WithRate(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.rate = d
		}
	}
}

// WithClock injects the time source.
func WithClock(c Clock) Option {
	return func(h *Host) {
		if c != nil {
			h.clock = c
		}
	}
}

// WithSeed fixes the blink schedule.
func WithSeed(seed uint64) Option {
	return func(h *Host) {
		h.seed = seed
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxDelta caps the frame delta fed to the animator, so a stalled loop
// (suspended laptop, debugger) eases back instead of jumping.
func WithMaxDelta(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.maxDelta = d
		}
	}
}

// WithDeadZone sets the smallest pose change that is published.
// Zero publishes every tick.
func WithDeadZone(v float64) Option {
	return func(h *Host) {
		if v >= 0 {
			h.deadZone = v
		}
	}
}

// WithKeyframeEvery forces a publish every n ticks regardless of the
// dead-zone. Zero disables keyframes.
func WithKeyframeEvery(n uint64) Option {
	return func(h *Host) {
		h.keyframeEvery = n
	}
}
