// Package preview rasterizes a character pose to an image using gg.
//
// The figure is drawn from the exported node list with the site's camera
// (perspective, eye at z=5, 45 degree vertical field of view): a capsule
// body, shoulder caps or arm chains, legs, the head sphere and the eyes with
// their lids and irises. It is a flat preview for snapshots and the
// dashboard, not a replacement for the browser renderer.
package preview

import (
	"errors"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/theme"
)

// Size limits for a rendered image.
const (
	MinSize = 16
	MaxSize = 2048
)

// ErrSize is returned for dimensions outside MinSize..MaxSize.
var ErrSize = errors.New("preview: image size out of range")

// Camera is a perspective camera on the z axis looking toward -z.
type Camera struct {
	Z   float64 // eye distance from the origin
	FOV float64 // vertical field of view, radians
}

// DefaultCamera matches the site's canvas camera.
func DefaultCamera() Camera {
	return Camera{Z: 5, FOV: 45 * math.Pi / 180}
}

// Renderer draws figures onto a reusable canvas.
type Renderer struct {
	dc     *gg.Context
	camera Camera
	w, h   float64
}

// NewRenderer creates a renderer for w x h images.
func NewRenderer(w, h int, cam Camera) (*Renderer, error) {
	if w < MinSize || h < MinSize || w > MaxSize || h > MaxSize {
		return nil, ErrSize
	}
	if cam.Z <= 0 || cam.FOV <= 0 || cam.FOV >= math.Pi {
		cam = DefaultCamera()
	}
	return &Renderer{
		dc:     gg.NewContext(w, h),
		camera: cam,
		w:      float64(w),
		h:      float64(h),
	}, nil
}

// Close releases the canvas.
func (r *Renderer) Close() error {
	return r.dc.Close()
}

// Image returns the last rendered image.
func (r *Renderer) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the last rendered image as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the last rendered image to a file.
func (r *Renderer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// Render clears the canvas to the palette background and draws the figure.
func (r *Renderer) Render(nodes []rig.Node, pal theme.Palette) error {
	r.dc.ClearWithColor(gg.Hex(string(pal.Background)))
	return r.draw(rig.Resolve(nodes), pal)
}

// Render draws nodes into a new w x h image.
func Render(nodes []rig.Node, pal theme.Palette, w, h int) (image.Image, error) {
	r, err := NewRenderer(w, h, DefaultCamera())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if err := r.Render(nodes, pal); err != nil {
		return nil, err
	}
	return r.Image(), nil
}

// EncodePNG renders nodes and writes the PNG to out.
func EncodePNG(out io.Writer, nodes []rig.Node, pal theme.Palette, w, h int) error {
	r, err := NewRenderer(w, h, DefaultCamera())
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.Render(nodes, pal); err != nil {
		return err
	}
	return r.EncodePNG(out)
}

// project maps a scene point to pixels and returns the pixels per scene
// unit at that depth. ok is false for points at or behind the eye.
func (r *Renderer) project(p rig.Vec3) (x, y, scale float64, ok bool) {
	depth := r.camera.Z - p.Z
	if depth <= 0.05 {
		return 0, 0, 0, false
	}
	scale = (r.h / 2) / (math.Tan(r.camera.FOV/2) * depth)
	return r.w/2 + p.X*scale, r.h/2 - p.Y*scale, scale, true
}
