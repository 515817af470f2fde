package preview

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/teslashibe/go-folio/pkg/rig"
	"github.com/teslashibe/go-folio/pkg/theme"
)

func introNodes(r *rig.Rig) []rig.Node {
	p := rig.Rest()
	p.Root = rig.Vec3{Y: -1.5}
	return r.Nodes(p)
}

// near reports whether c is within tol of the palette color on every channel.
func near(c color.Color, want theme.Color, tol int) bool {
	r, g, b, _ := c.RGBA()
	wr, wg, wb := want.RGB()
	diff := func(a uint32, b uint8) int {
		d := int(a>>8) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(r, wr) <= tol && diff(g, wg) <= tol && diff(b, wb) <= tol
}

func TestRenderIntroPose(t *testing.T) {
	pal := theme.PaletteFor(true)
	img, err := Render(introNodes(rig.Simple()), pal, 200, 200)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("Bounds = %v", b)
	}

	if c := img.At(2, 2); !near(c, pal.Background, 2) {
		t.Errorf("corner = %v, want background %s", c, pal.Background)
	}
	// Head centre, between the eyes.
	if c := img.At(100, 110); !near(c, pal.Skin, 2) {
		t.Errorf("head = %v, want skin %s", c, pal.Skin)
	}
}

func TestRenderEyeRings(t *testing.T) {
	pal := theme.PaletteFor(true)
	nodes := introNodes(rig.Simple())
	r, err := NewRenderer(200, 200, DefaultCamera())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()
	if err := r.Render(nodes, pal); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := r.Image()

	f := rig.Resolve(nodes)
	for _, id := range [2]rig.JointID{rig.LeftIris, rig.RightIris} {
		x, y, scale, ok := r.project(f.Pos[id])
		if !ok {
			t.Fatalf("%s not in front of the camera", id)
		}
		// Sample the middle of each ring so edge smoothing cannot reach it.
		at := func(radius float64) color.Color {
			return img.At(int(math.Floor(x+radius*scale)), int(math.Floor(y)))
		}
		if c := at((eyeRadius + irisRadius) / 2); !near(c, pal.EyeWhite, 20) {
			t.Errorf("%s white = %v, want %s", id, c, pal.EyeWhite)
		}
		if c := img.At(int(math.Floor(x)), int(math.Floor(y))); near(c, pal.Skin, 20) {
			t.Errorf("%s centre = %v, drawn as skin", id, c)
		}
	}
}

func TestRenderLightTheme(t *testing.T) {
	pal := theme.PaletteFor(false)
	img, err := Render(introNodes(rig.Articulated()), pal, 64, 64)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c := img.At(1, 1); !near(c, pal.Background, 2) {
		t.Errorf("corner = %v, want %s", c, pal.Background)
	}
}

func TestRenderSizeLimits(t *testing.T) {
	nodes := introNodes(rig.Simple())
	pal := theme.PaletteFor(true)
	for _, size := range [][2]int{{0, 100}, {100, MinSize - 1}, {MaxSize + 1, 100}} {
		if _, err := Render(nodes, pal, size[0], size[1]); !errors.Is(err, ErrSize) {
			t.Errorf("Render(%v) error = %v, want ErrSize", size, err)
		}
	}
}

func TestRenderWithoutRoot(t *testing.T) {
	if _, err := Render(nil, theme.PaletteFor(true), 32, 32); err == nil {
		t.Error("Expected error for empty node list")
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, introNodes(rig.Simple()), theme.PaletteFor(true), 48, 32); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Errorf("Bounds = %v", b)
	}
}

func TestRendererReuse(t *testing.T) {
	r, err := NewRenderer(64, 64, Camera{})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()
	if r.camera != DefaultCamera() {
		t.Errorf("zero camera should fall back to default, got %+v", r.camera)
	}

	nodes := introNodes(rig.Simple())
	dark, light := theme.PaletteFor(true), theme.PaletteFor(false)
	if err := r.Render(nodes, light); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(nodes, dark); err != nil {
		t.Fatal(err)
	}
	if c := r.Image().At(0, 0); !near(c, dark.Background, 2) {
		t.Errorf("second render should clear to %s, got %v", dark.Background, c)
	}
}

func TestProject(t *testing.T) {
	r, _ := NewRenderer(100, 100, DefaultCamera())
	defer r.Close()

	x, y, s, ok := r.project(rig.Vec3{})
	if !ok || x != 50 || y != 50 || s <= 0 {
		t.Errorf("origin -> (%v, %v, %v, %v)", x, y, s, ok)
	}
	_, _, closer, _ := r.project(rig.Vec3{Z: 2})
	if closer <= s {
		t.Error("closer points should project larger")
	}
	if _, _, _, ok := r.project(rig.Vec3{Z: 6}); ok {
		t.Error("points behind the eye should not project")
	}
}
