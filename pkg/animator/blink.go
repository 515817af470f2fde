package animator

import "math/rand/v2"

// NewBlink schedules the first blink at start + cfg.FirstBlink. The seed fixes
// every later closed time and interval.
func NewBlink(cfg Config, seed uint64, start float64) BlinkState {
	return BlinkState{
		Since:      start,
		NextToggle: start + cfg.FirstBlink,
		rng:        *rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// uniform draws from [lo, hi).
func (b *BlinkState) uniform(lo, hi float64) float64 {
	u := float64(b.rng.Uint64()>>11) / (1 << 53)
	return lo + (hi-lo)*u
}

// step flips the blink when t has reached the scheduled toggle. Closing
// schedules the reopen after BlinkMin..BlinkMax; reopening schedules the next
// close BlinkIntervalMin..BlinkIntervalMax after the previous close began.
func (b BlinkState) step(t float64, cfg *Config) BlinkState {
	if t < b.NextToggle {
		return b
	}
	if b.Closed {
		interval := b.uniform(cfg.BlinkIntervalMin, cfg.BlinkIntervalMax)
		next := b.Since + interval
		if next <= t {
			// frames stalled past the whole interval
			next = t + interval
		}
		b.Closed = false
		b.NextToggle = next
		return b
	}
	b.Closed = true
	b.Since = t
	b.NextToggle = t + b.uniform(cfg.BlinkMin, cfg.BlinkMax)
	return b
}

// eyelidTarget is the openness the eyelids chase this frame.
func (b BlinkState) eyelidTarget(cfg *Config) float64 {
	if b.Closed {
		return cfg.EyelidClosed
	}
	return 1
}
