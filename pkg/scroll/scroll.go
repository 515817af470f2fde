// Package scroll turns page scroll metrics into the normalized progress the
// animator consumes, and reports which content section is in view.
package scroll

import (
	"math"
	"sync"

	"github.com/teslashibe/go-folio/pkg/animator"
	"github.com/teslashibe/go-folio/pkg/content"
)

// Progress returns scrollTop / (scrollHeight - clientHeight) clamped to
// [0, 1]. A page that cannot scroll, or any non-finite metric, yields 0.
func Progress(scrollTop, scrollHeight, clientHeight float64) float64 {
	if !finite(scrollTop) || !finite(scrollHeight) || !finite(clientHeight) {
		return 0
	}
	span := scrollHeight - clientHeight
	if span <= 0 {
		return 0
	}
	return clamp(scrollTop/span, 0, 1)
}

// Tracker remembers the last progress and section.
type Tracker struct {
	mu       sync.Mutex
	bands    animator.Bands
	progress float64
	section  content.Section
}

// NewTracker returns a tracker at the top of the page. A nil band table
// falls back to animator.DefaultBands.
func NewTracker(bands animator.Bands) *Tracker {
	if len(bands) == 0 {
		bands = animator.DefaultBands()
	}
	return &Tracker{
		bands:   bands,
		section: bands.At(0).Section,
	}
}

// Update records new container metrics. changed is true when the section in
// view differs from the previous call.
func (t *Tracker) Update(scrollTop, scrollHeight, clientHeight float64) (progress float64, section content.Section, changed bool) {
	return t.Set(Progress(scrollTop, scrollHeight, clientHeight))
}

// Nudge moves progress by delta (wheel steps in hosts without a real page).
func (t *Tracker) Nudge(delta float64) (progress float64, section content.Section, changed bool) {
	if !finite(delta) {
		delta = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record(t.progress + delta)
}

// Set records a progress value directly.
func (t *Tracker) Set(p float64) (progress float64, section content.Section, changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record(p)
}

// record stores p and reports the section. Caller holds t.mu.
func (t *Tracker) record(p float64) (progress float64, section content.Section, changed bool) {
	if !finite(p) {
		p = 0
	}
	p = clamp(p, 0, 1)

	s := t.bands.At(p).Section
	changed = s != t.section
	t.progress = p
	t.section = s
	return p, s, changed
}

// Progress returns the last recorded progress.
func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Section returns the section currently in view.
func (t *Tracker) Section() content.Section {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.section
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
