package preview

import (
	"errors"

	"github.com/gogpu/gg"

	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// Character proportions in scene units.
const (
	bodyRadius     = 0.9
	bodyLength     = 1.5
	bodyDrop       = 0.5 // capsule center below the torso pivot
	shoulderRadius = 0.5
	limbWidth      = 0.35
	handRadius     = 0.2
	legLength      = 0.6
	headRadius     = 0.85
	eyeRadius      = 0.15
	irisRadius     = 0.07
	pupilRadius    = 0.03
	shadowDrop     = 2.2
	shadowWidth    = 1.4
)

var shoulderOffsets = [2]rig.Vec3{{X: -1.1, Y: 0.6}, {X: 1.1, Y: 0.6}}

// painter accumulates the first drawing error so shapes read as a list.
type painter struct {
	r   *Renderer
	err error
}

func (p *painter) fill() {
	if err := p.r.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) stroke() {
	if err := p.r.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) circle(c rig.Vec3, radius float64, col theme.Color) {
	x, y, s, ok := p.r.project(c)
	if !ok {
		return
	}
	p.r.dc.SetHexColor(string(col))
	p.r.dc.DrawCircle(x, y, radius*s)
	p.fill()
}

func (p *painter) ellipse(c rig.Vec3, rx, ry float64, col theme.Color) {
	x, y, s, ok := p.r.project(c)
	if !ok {
		return
	}
	p.r.dc.SetHexColor(string(col))
	p.r.dc.DrawEllipse(x, y, rx*s, ry*s)
	p.fill()
}

func (p *painter) limb(a, b rig.Vec3, width float64, col theme.Color) {
	x1, y1, s1, ok1 := p.r.project(a)
	x2, y2, s2, ok2 := p.r.project(b)
	if !ok1 || !ok2 {
		return
	}
	p.r.dc.SetHexColor(string(col))
	p.r.dc.SetLineCap(gg.LineCapRound)
	p.r.dc.SetLineWidth(width * (s1 + s2) / 2)
	p.r.dc.DrawLine(x1, y1, x2, y2)
	p.stroke()
}

// capsule draws a vertical capsule centred on c.
func (p *painter) capsule(c rig.Vec3, radius, length float64, col theme.Color) {
	x, y, s, ok := p.r.project(c)
	if !ok {
		return
	}
	w := 2 * radius * s
	h := (length + 2*radius) * s
	p.r.dc.SetHexColor(string(col))
	p.r.dc.DrawRoundedRectangle(x-w/2, y-h/2, w, h, radius*s)
	p.fill()
}

func (r *Renderer) draw(f rig.Figure, pal theme.Palette) error {
	if !f.Present[rig.Root] {
		return errors.New("preview: figure has no root")
	}
	p := &painter{r: r}
	root := f.Pos[rig.Root]

	p.ellipse(root.Add(rig.Vec3{Y: -shadowDrop}), shadowWidth, 0.15, pal.Shadow)

	for _, id := range [2]rig.JointID{rig.LeftLeg, rig.RightLeg} {
		if f.Present[id] {
			p.limb(f.Pos[id], f.Pos[id].Add(rig.Vec3{Y: -legLength}), limbWidth, pal.Body)
		}
	}

	torso := root
	torsoScale := 1.0
	if f.Present[rig.Torso] {
		torso = f.Pos[rig.Torso]
		torsoScale = f.Scale[rig.Torso].Y
	}
	p.capsule(torso.Add(rig.Vec3{Y: -bodyDrop}), bodyRadius, bodyLength*torsoScale, pal.Body)

	for i, side := range [2]rig.Side{rig.Left, rig.Right} {
		upper, lower, hand := rig.ArmChain(side)
		if f.Present[upper] && f.Present[lower] && f.Present[hand] {
			p.circle(f.Pos[upper], shoulderRadius, pal.Body)
			p.limb(f.Pos[upper], f.Pos[lower], limbWidth, pal.Body)
			p.limb(f.Pos[lower], f.Pos[hand], limbWidth, pal.Body)
			p.circle(f.Pos[hand], handRadius, pal.Skin)
			continue
		}
		p.circle(torso.Add(shoulderOffsets[i].RotateY(f.Yaw)), shoulderRadius, pal.Body)
	}

	if f.Present[rig.Head] {
		head := f.Pos[rig.Head]
		p.circle(head, headRadius, pal.Skin)
		p.eyes(f, head, pal)
	}
	return p.err
}

// eyes draws both eyes when they face the camera. Lid openness squashes the
// eye vertically.
func (p *painter) eyes(f rig.Figure, head rig.Vec3, pal theme.Palette) {
	lids := [2]rig.JointID{rig.LeftEyelid, rig.RightEyelid}
	irises := [2]rig.JointID{rig.LeftIris, rig.RightIris}
	for i := range lids {
		lid, iris := lids[i], irises[i]
		if !f.Present[lid] || f.Pos[lid].Z <= head.Z {
			continue
		}
		open := f.Scale[lid].Y
		if open < 0.05 {
			open = 0.05
		}
		p.ellipse(f.Pos[lid], eyeRadius, eyeRadius*open, pal.EyeWhite)
		if f.Present[iris] && open > 0.3 {
			p.ellipse(f.Pos[iris], irisRadius, irisRadius*open, pal.Iris)
			p.ellipse(f.Pos[iris], pupilRadius, pupilRadius*open, pal.Pupil)
		}
	}
}
