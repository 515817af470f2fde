package animator

import (
	"errors"
	"fmt"

	"github.com/teslashibe/go-folio/pkg/content"
	"github.com/teslashibe/go-folio/pkg/rig"
)

var (
	// ErrNoBands is returned when a band table is empty.
	ErrNoBands = errors.New("animator: no bands")

	// ErrBandGap is returned when bands do not tile [0, 1] exactly.
	ErrBandGap = errors.New("animator: bands must tile [0, 1] without gaps or overlaps")

	// ErrBandDiscontinuous is returned when a band does not start where the
	// previous one ended.
	ErrBandDiscontinuous = errors.New("animator: band entry must equal previous band exit")
)

// Placement is the root position and yaw of the character.
type Placement struct {
	Position rig.Vec3
	Yaw      float64
}

// Lerp interpolates between two placements.
func (p Placement) Lerp(to Placement, t float64) Placement {
	return Placement{
		Position: rig.Vec3{
			X: lerp(p.Position.X, to.Position.X, t),
			Y: lerp(p.Position.Y, to.Position.Y, t),
			Z: lerp(p.Position.Z, to.Position.Z, t),
		},
		Yaw: lerp(p.Yaw, to.Yaw, t),
	}
}

// Band maps the scroll range [Start, End) to one section's placement,
// interpolating from Entry to Exit across the band.
type Band struct {
	Section content.Section
	Start   float64
	End     float64
	Entry   Placement
	Exit    Placement
}

// Width returns End - Start.
func (b Band) Width() float64 { return b.End - b.Start }

// Progress returns the normalized position of scroll inside the band.
func (b Band) Progress(scroll float64) float64 {
	w := b.Width()
	if w <= 0 {
		return 0
	}
	return clamp((scroll-b.Start)/w, 0, 1)
}

// Bands is an ordered band table covering [0, 1].
type Bands []Band

// Site placements. The intro and contact stops match; the middle sections
// swing the character left, forward, and right.
var (
	stopIntro    = Placement{Position: rig.Vec3{X: 0, Y: -1.5, Z: 0}}
	stopAbout    = Placement{Position: rig.Vec3{X: -2, Y: -1.5, Z: 0}, Yaw: 0.5}
	stopSkills   = Placement{Position: rig.Vec3{X: 0, Y: -0.9, Z: 2}}
	stopProjects = Placement{Position: rig.Vec3{X: 2.5, Y: -1.5, Z: 0}, Yaw: -0.6}
	stopContact  = Placement{Position: rig.Vec3{X: 0, Y: -1.5, Z: 0}}
)

// DefaultBands returns the five-section table with boundaries
// 0, 0.2, 0.45, 0.65, 0.85, 1.
func DefaultBands() Bands {
	return Bands{
		{Section: content.Intro, Start: 0, End: 0.2, Entry: stopIntro, Exit: stopIntro},
		{Section: content.About, Start: 0.2, End: 0.45, Entry: stopIntro, Exit: stopAbout},
		{Section: content.Skills, Start: 0.45, End: 0.65, Entry: stopAbout, Exit: stopSkills},
		{Section: content.Projects, Start: 0.65, End: 0.85, Entry: stopSkills, Exit: stopProjects},
		{Section: content.Contact, Start: 0.85, End: 1, Entry: stopProjects, Exit: stopContact},
	}
}

// Validate checks that the bands tile [0, 1] and that placements are
// continuous across every boundary.
func (bs Bands) Validate() error {
	if len(bs) == 0 {
		return ErrNoBands
	}
	if bs[0].Start != 0 || bs[len(bs)-1].End != 1 {
		return fmt.Errorf("%w: range [%g, %g]", ErrBandGap, bs[0].Start, bs[len(bs)-1].End)
	}
	for i, b := range bs {
		if b.End <= b.Start {
			return fmt.Errorf("%w: band %d (%s) is empty", ErrBandGap, i, b.Section)
		}
		if i == 0 {
			continue
		}
		prev := bs[i-1]
		if b.Start != prev.End {
			return fmt.Errorf("%w: %s ends at %g, %s starts at %g", ErrBandGap, prev.Section, prev.End, b.Section, b.Start)
		}
		if b.Entry != prev.Exit {
			return fmt.Errorf("%w: %s -> %s", ErrBandDiscontinuous, prev.Section, b.Section)
		}
	}
	return nil
}

// Index returns the band containing scroll. Bands are half-open on the right
// except the last, which includes 1. Scroll is clamped to [0, 1] first.
func (bs Bands) Index(scroll float64) int {
	scroll = clamp(scroll, 0, 1)
	for i, b := range bs {
		if scroll < b.End {
			return i
		}
	}
	return len(bs) - 1
}

// At returns the band containing scroll.
func (bs Bands) At(scroll float64) Band {
	return bs[bs.Index(scroll)]
}

// Target returns the placement for a scroll value.
func (bs Bands) Target(scroll float64) Placement {
	scroll = clamp(scroll, 0, 1)
	b := bs.At(scroll)
	return b.Entry.Lerp(b.Exit, b.Progress(scroll))
}
