// Package termview draws the character on a terminal with tcell.
//
// Cells are roughly twice as tall as they are wide, so horizontal distances
// are doubled when projecting. Solid parts are painted as background-colored
// cells; eyes are single glyphs.
package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/theme"
)

const (
	cameraZ    = 5.0
	halfFOVTan = 0.41421356 // tan(22.5 degrees)
	cellAspect = 2.0
)

// Glyphs
const (
	runeEyeOpen   = '●'
	runeEyeClosed = '─'
	runeEyeHalf   = '◒'
)

func colorOf(c theme.Color) tcell.Color {
	return tcell.NewHexColor(c.Hex())
}

// grid projects scene points to cells for one screen size.
type grid struct {
	w, h int
}

func (g grid) project(p rig.Vec3) (col, row, scale float64, ok bool) {
	depth := cameraZ - p.Z
	if depth <= 0.05 {
		return 0, 0, 0, false
	}
	scale = (float64(g.h) / 2) / (halfFOVTan * depth)
	return float64(g.w)/2 + p.X*scale*cellAspect, float64(g.h)/2 - p.Y*scale, scale, true
}

// ellipse paints cells inside an axis-aligned ellipse around c.
func (g grid) ellipse(s tcell.Screen, c rig.Vec3, rx, ry float64, style tcell.Style) {
	col, row, scale, ok := g.project(c)
	if !ok {
		return
	}
	ax, ay := rx*scale*cellAspect, ry*scale
	if ax < 0.5 || ay < 0.5 {
		return
	}
	x0, x1 := int(math.Floor(col-ax)), int(math.Ceil(col+ax))
	y0, y1 := int(math.Floor(row-ay)), int(math.Ceil(row+ay))
	for y := max(y0, 0); y <= min(y1, g.h-1); y++ {
		for x := max(x0, 0); x <= min(x1, g.w-1); x++ {
			dx := (float64(x) + 0.5 - col) / ax
			dy := (float64(y) + 0.5 - row) / ay
			if dx*dx+dy*dy <= 1 {
				s.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

// line paints a run of cells from a to b (Bresenham).
func (g grid) line(s tcell.Screen, a, b rig.Vec3, style tcell.Style) {
	ac, ar, _, ok1 := g.project(a)
	bc, br, _, ok2 := g.project(b)
	if !ok1 || !ok2 {
		return
	}
	x0, y0 := int(ac), int(ar)
	x1, y1 := int(bc), int(br)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if x0 >= 0 && x0 < g.w && y0 >= 0 && y0 < g.h {
			s.SetContent(x0, y0, ' ', nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (g grid) glyph(s tcell.Screen, p rig.Vec3, r rune, style tcell.Style) {
	col, row, _, ok := g.project(p)
	if !ok {
		return
	}
	x, y := int(col), int(row)
	if x >= 0 && x < g.w && y >= 0 && y < g.h {
		s.SetContent(x, y, r, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Draw clears the screen to the palette background and draws the figure for
// nodes. It does not call Show.
func Draw(s tcell.Screen, nodes []rig.Node, pal theme.Palette) {
	bg := tcell.StyleDefault.Background(colorOf(pal.Background)).Foreground(colorOf(pal.Text))
	s.SetStyle(bg)
	// Clear would paint StyleDefault cells; fill with the palette instead.
	s.Fill(' ', bg)

	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	g := grid{w: w, h: h}
	f := rig.Resolve(nodes)
	if !f.Present[rig.Root] {
		return
	}

	body := tcell.StyleDefault.Background(colorOf(pal.Body))
	skin := tcell.StyleDefault.Background(colorOf(pal.Skin))
	root := f.Pos[rig.Root]

	g.ellipse(s, root.Add(rig.Vec3{Y: -2.2}), 1.4, 0.15, tcell.StyleDefault.Background(colorOf(pal.Shadow)))

	for _, id := range [2]rig.JointID{rig.LeftLeg, rig.RightLeg} {
		if f.Present[id] {
			g.line(s, f.Pos[id], f.Pos[id].Add(rig.Vec3{Y: -0.6}), body)
		}
	}

	torso := root
	scaleY := 1.0
	if f.Present[rig.Torso] {
		torso = f.Pos[rig.Torso]
		scaleY = f.Scale[rig.Torso].Y
	}
	g.ellipse(s, torso.Add(rig.Vec3{Y: -0.5}), 0.9, (0.75+0.9)*scaleY, body)

	for _, side := range [2]rig.Side{rig.Left, rig.Right} {
		upper, lower, hand := rig.ArmChain(side)
		if f.Present[upper] && f.Present[lower] && f.Present[hand] {
			g.ellipse(s, f.Pos[upper], 0.5, 0.5, body)
			g.line(s, f.Pos[upper], f.Pos[lower], body)
			g.line(s, f.Pos[lower], f.Pos[hand], body)
			g.ellipse(s, f.Pos[hand], 0.2, 0.2, skin)
			continue
		}
		off := rig.Vec3{X: -1.1 * side.Mirror(), Y: 0.6}
		g.ellipse(s, torso.Add(off.RotateY(f.Yaw)), 0.5, 0.5, body)
	}

	if !f.Present[rig.Head] {
		return
	}
	head := f.Pos[rig.Head]
	g.ellipse(s, head, 0.85, 0.85, skin)

	eye := tcell.StyleDefault.Background(colorOf(pal.EyeWhite)).Foreground(colorOf(pal.Iris))
	lids := [2]rig.JointID{rig.LeftEyelid, rig.RightEyelid}
	irises := [2]rig.JointID{rig.LeftIris, rig.RightIris}
	for i := range lids {
		if !f.Present[lids[i]] || f.Pos[lids[i]].Z <= head.Z {
			continue
		}
		at := f.Pos[lids[i]]
		if f.Present[irises[i]] {
			at = f.Pos[irises[i]]
		}
		switch open := f.Scale[lids[i]].Y; {
		case open < 0.3:
			g.glyph(s, f.Pos[lids[i]], runeEyeClosed, skin.Foreground(colorOf(pal.Pupil)))
		case open < 0.8:
			g.glyph(s, at, runeEyeHalf, eye)
		default:
			g.glyph(s, at, runeEyeOpen, eye)
		}
	}
}

// DrawStatus writes a one-line status bar on the bottom row.
func DrawStatus(s tcell.Screen, text string, pal theme.Palette) {
	w, h := s.Size()
	if h <= 0 {
		return
	}
	style := tcell.StyleDefault.Background(colorOf(pal.Accent)).Foreground(colorOf(pal.Text))
	runes := []rune(text)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.SetContent(x, h-1, r, nil, style)
	}
}

// Status formats the status bar text.
func Status(section string, scroll float64, fps float64, dark bool) string {
	mode := "light"
	if dark {
		mode = "dark"
	}
	return fmt.Sprintf(" %s  scroll %3.0f%%  %4.1f fps  %s  [wheel] scroll  [t] theme  [q] quit", section, scroll*100, fps, mode)
}
