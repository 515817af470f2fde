package rig

import (
	"errors"
	"math"
	"testing"
)

func TestPresets(t *testing.T) {
	simple := Simple()
	if simple.HasArms() {
		t.Error("Simple rig should not have arms")
	}
	if simple.Len() != 9 {
		t.Errorf("Expected 9 joints in simple rig, got %d", simple.Len())
	}

	full := Articulated()
	if !full.HasArms() {
		t.Error("Articulated rig should have arms")
	}
	if full.Len() != int(NumJoints) {
		t.Errorf("Expected %d joints in articulated rig, got %d", NumJoints, full.Len())
	}

	r, err := Preset("")
	if err != nil || r.Name() != "articulated" {
		t.Errorf("Preset(\"\") = %v, %v", r, err)
	}
	if _, err := Preset("octopus"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		table []Joint
		want  error
	}{
		{"empty", nil, ErrNoRoot},
		{"no root first", []Joint{{ID: Torso, Parent: Root}}, ErrNoRoot},
		{"root with parent", []Joint{{ID: Root, Parent: Torso}}, ErrNoRoot},
		{"unknown id", []Joint{{ID: Root, Parent: NoParent}, {ID: NumJoints, Parent: Root}}, ErrUnknownJoint},
		{"unknown parent", []Joint{{ID: Root, Parent: NoParent}, {ID: Torso, Parent: 99}}, ErrUnknownJoint},
		{"child first", []Joint{{ID: Root, Parent: NoParent}, {ID: LeftEyelid, Parent: Head}}, ErrParentOrder},
		{"duplicate", []Joint{{ID: Root, Parent: NoParent}, {ID: Torso, Parent: Root}, {ID: Torso, Parent: Root}}, ErrDuplicateJoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("test", tt.table)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestJointLookup(t *testing.T) {
	r := Simple()
	if _, ok := r.Joint(LeftHand); ok {
		t.Error("Simple rig should not contain a hand")
	}
	head, ok := r.Joint(Head)
	if !ok {
		t.Fatal("Simple rig should contain the head")
	}
	if head.Parent != Root || head.Offset != (Vec3{0, 1.3, 0.1}) {
		t.Errorf("Unexpected head row: %+v", head)
	}
	if JointID(-3).String() != "unknown" {
		t.Error("Expected unknown name for invalid id")
	}
}

func TestClamp(t *testing.T) {
	r := Simple()
	p := Rest()
	p.Yaw = 10
	p.Joints[Head] = Euler{Pitch: 2, Yaw: -2, Roll: 1}
	p.Joints[LeftHand] = Euler{Pitch: 0.3}
	p.Offsets[LeftHand] = Vec3{Z: 1}
	p.Eyelids[Left] = 1.5
	p.Irises[Right] = Vec2{X: 1, Y: -1}

	c := r.Clamp(p)
	if c.Joints[Head] != (Euler{Pitch: MaxHeadPitch, Yaw: -MaxHeadYaw, Roll: MaxHeadRoll}) {
		t.Errorf("Head not clamped: %+v", c.Joints[Head])
	}
	if c.Joints[LeftHand] != (Euler{}) || c.Offsets[LeftHand] != (Vec3{}) {
		t.Error("Missing joints should be zeroed")
	}
	if c.Yaw != 3.1 {
		t.Errorf("Root yaw not clamped: %g", c.Yaw)
	}
	if c.Eyelids[Left] != 1 {
		t.Errorf("Eyelid not clamped: %g", c.Eyelids[Left])
	}
	if c.Irises[Right] != (Vec2{X: MaxIrisOffset, Y: -MaxIrisOffset}) {
		t.Errorf("Iris not clamped: %+v", c.Irises[Right])
	}
	if !r.WithinLimits(c) {
		t.Error("Clamped pose should be within limits")
	}
	if r.WithinLimits(p) {
		t.Error("Unclamped pose should be out of limits")
	}
}

func TestNodes(t *testing.T) {
	r := Articulated()
	p := Rest()
	p.Root = Vec3{X: 1, Y: -1.5}
	p.Bob = 0.25
	p.Yaw = 0.5
	p.TorsoScale = 1.02
	p.Eyelids[Right] = 0.1
	p.Irises[Left] = Vec2{X: 0.02}

	nodes := r.Nodes(p)
	if len(nodes) != r.Len() {
		t.Fatalf("Expected %d nodes, got %d", r.Len(), len(nodes))
	}

	seen := map[string]bool{}
	byName := map[string]Node{}
	for _, n := range nodes {
		if n.Parent != "" && !seen[n.Parent] {
			t.Errorf("Node %s listed before parent %s", n.Name, n.Parent)
		}
		seen[n.Name] = true
		byName[n.Name] = n
	}

	root := byName["root"]
	if root.Position != (Vec3{X: 1, Y: -1.25}) || root.Rotation.Yaw != 0.5 {
		t.Errorf("Unexpected root node: %+v", root)
	}
	if byName["torso"].Scale.Y != 1.02 {
		t.Errorf("Unexpected torso scale: %+v", byName["torso"].Scale)
	}
	if byName["right_eyelid"].Scale.Y != 0.1 {
		t.Errorf("Unexpected eyelid scale: %+v", byName["right_eyelid"].Scale)
	}
	if got := byName["left_iris"].Position.X; math.Abs(got-(-0.28)) > 1e-12 {
		t.Errorf("Unexpected iris x: %g", got)
	}

	// Reused buffers do not grow.
	buf := r.AppendNodes(nodes[:0], p)
	if &buf[0] != &nodes[0] {
		t.Error("AppendNodes should reuse the buffer")
	}
}

func TestWorld(t *testing.T) {
	r := Articulated()
	p := Rest()
	p.Root = Vec3{Y: -1.5}

	w := r.World(p)
	if got := w[Head]; got.Sub(Vec3{0, -0.2, 0.1}).Len() > 1e-12 {
		t.Errorf("Head at %+v", got)
	}
	if got := w[LeftHand]; got.Sub(Vec3{-1.1, -1.5 + 0.6 - 0.8 - 0.7, 0}).Len() > 1e-12 {
		t.Errorf("Left hand at %+v", got)
	}

	// Quarter turn of the root swings the head's forward offset onto +x.
	p.Yaw = math.Pi / 2
	w = r.World(p)
	if got := w[Head]; got.Sub(Vec3{0.1, -0.2, 0}).Len() > 1e-9 {
		t.Errorf("Turned head at %+v", got)
	}
	if got := r.HeadWorld(p); got.Sub(w[Head]).Len() > 1e-9 {
		t.Errorf("HeadWorld %+v disagrees with World %+v", got, w[Head])
	}
}

func TestEulerMat(t *testing.T) {
	if EulerMat(Euler{}) != Identity() {
		t.Error("Zero euler should be identity")
	}

	// Yaw of +90° maps +z onto +x.
	v := EulerMat(Euler{Yaw: math.Pi / 2}).Apply(Vec3{Z: 1})
	if v.Sub(Vec3{X: 1}).Len() > 1e-12 {
		t.Errorf("Expected +x, got %+v", v)
	}

	// Pitch of +90° maps +y onto +z.
	v = EulerMat(Euler{Pitch: math.Pi / 2}).Apply(Vec3{Y: 1})
	if v.Sub(Vec3{Z: 1}).Len() > 1e-12 {
		t.Errorf("Expected +z, got %+v", v)
	}
}
