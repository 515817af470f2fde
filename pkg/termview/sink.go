package termview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/teslashibe/go-folio/pkg/scene"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// Sink draws every published snapshot to a screen. It implements scene.Sink.
type Sink struct {
	screen tcell.Screen
	themes *theme.Store

	mu     sync.Mutex
	last   time.Time
	fps    float64
	frames uint64
}

// NewSink creates a sink drawing with the palette of themes.
// A nil store uses a fresh dark store.
func NewSink(s tcell.Screen, themes *theme.Store) *Sink {
	if themes == nil {
		themes = theme.NewStore()
	}
	return &Sink{screen: s, themes: themes}
}

// Publish implements scene.Sink.
func (k *Sink) Publish(snap scene.Snapshot) error {
	k.mu.Lock()
	now := time.Now()
	if !k.last.IsZero() {
		if dt := now.Sub(k.last).Seconds(); dt > 0 {
			// Smoothed publish rate
			k.fps += (1/dt - k.fps) * 0.1
		}
	}
	k.last = now
	k.frames++
	fps := k.fps
	k.mu.Unlock()

	dark := k.themes.Dark()
	pal := theme.PaletteFor(dark)
	Draw(k.screen, snap.Nodes, pal)
	DrawStatus(k.screen, Status(snap.Section.Title(), snap.Scroll, fps, dark), pal)
	k.screen.Show()
	return nil
}

// Frames returns how many snapshots were drawn.
func (k *Sink) Frames() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.frames
}
