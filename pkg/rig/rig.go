// Package rig defines the character's pose hierarchy: a table of joints with
// parent, rest offset and rotation limits, the per-frame Pose values, and the
// export of a Pose as named transform nodes for a renderer.
//
// Two presets are provided. Simple is the head-and-body character with no arm
// chain. Articulated adds three-joint arms. Limb detail is a property of the
// table, not of the animation code.
package rig

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownJoint is returned when a table row uses an invalid JointID.
	ErrUnknownJoint = errors.New("rig: unknown joint")

	// ErrDuplicateJoint is returned when a joint appears twice in a table.
	ErrDuplicateJoint = errors.New("rig: duplicate joint")

	// ErrParentOrder is returned when a joint is listed before its parent.
	ErrParentOrder = errors.New("rig: parent must precede child")

	// ErrNoRoot is returned when the first row is not the parentless root.
	ErrNoRoot = errors.New("rig: table must start with the root joint")
)

// Head and eye rotation ranges used by both presets.
const (
	MaxHeadYaw   = 0.8
	MaxHeadPitch = 0.45
	MaxHeadRoll  = 0.2

	// MaxIrisOffset bounds each axis of an iris offset.
	MaxIrisOffset = 0.06
)

// Rig is a validated joint table.
type Rig struct {
	name    string
	order   []JointID
	joints  [NumJoints]Joint
	enabled [NumJoints]bool
}

// New validates a joint table and builds a Rig.
// Rows must be parent-first and start with Root.
func New(name string, table []Joint) (*Rig, error) {
	r := &Rig{name: name}
	for i, j := range table {
		if !j.ID.Valid() {
			return nil, fmt.Errorf("%w: row %d id %d", ErrUnknownJoint, i, j.ID)
		}
		if i == 0 {
			if j.ID != Root || j.Parent != NoParent {
				return nil, ErrNoRoot
			}
		} else {
			if !j.Parent.Valid() {
				return nil, fmt.Errorf("%w: %s parent %d", ErrUnknownJoint, j.ID, j.Parent)
			}
			if !r.enabled[j.Parent] {
				return nil, fmt.Errorf("%w: %s before %s", ErrParentOrder, j.ID, j.Parent)
			}
		}
		if r.enabled[j.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateJoint, j.ID)
		}
		r.enabled[j.ID] = true
		r.joints[j.ID] = j
		r.order = append(r.order, j.ID)
	}
	if len(r.order) == 0 {
		return nil, ErrNoRoot
	}
	return r, nil
}

// MustNew is New for static tables; it panics on an invalid table.
func MustNew(name string, table []Joint) *Rig {
	r, err := New(name, table)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the preset name.
func (r *Rig) Name() string { return r.name }

// Has reports whether the rig contains joint id.
func (r *Rig) Has(id JointID) bool {
	return id.Valid() && r.enabled[id]
}

// Joint returns the table row for id. The second result is false when the
// rig does not contain the joint.
func (r *Rig) Joint(id JointID) (Joint, bool) {
	if !r.Has(id) {
		return Joint{}, false
	}
	return r.joints[id], true
}

// Order returns joint ids in parent-first order.
func (r *Rig) Order() []JointID {
	out := make([]JointID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of joints in the rig.
func (r *Rig) Len() int { return len(r.order) }

// HasArms reports whether both arm chains are present.
func (r *Rig) HasArms() bool {
	for _, s := range []Side{Left, Right} {
		u, l, h := ArmChain(s)
		if !r.Has(u) || !r.Has(l) || !r.Has(h) {
			return false
		}
	}
	return true
}

func headLimits() Limits {
	return Limits{
		Pitch: Sym(MaxHeadPitch),
		Yaw:   Sym(MaxHeadYaw),
		Roll:  Sym(MaxHeadRoll),
	}
}

// baseTable is shared by both presets. Offsets follow the site character's
// proportions: head group at (0, 1.3, 0.1), eyes 0.75 forward and 0.3 apart.
func baseTable() []Joint {
	return []Joint{
		{ID: Root, Parent: NoParent, Limits: Limits{Yaw: Sym(3.1)}},
		{ID: Torso, Parent: Root},
		{ID: Head, Parent: Root, Offset: Vec3{0, 1.3, 0.1}, Limits: headLimits()},
		{ID: LeftLeg, Parent: Root, Offset: Vec3{-0.45, -1.6, 0}, Limits: Limits{Pitch: Sym(0.2)}},
		{ID: RightLeg, Parent: Root, Offset: Vec3{0.45, -1.6, 0}, Limits: Limits{Pitch: Sym(0.2)}},
		{ID: LeftEyelid, Parent: Head, Offset: Vec3{-0.3, 0.1, 0.75}},
		{ID: RightEyelid, Parent: Head, Offset: Vec3{0.3, 0.1, 0.75}},
		{ID: LeftIris, Parent: Head, Offset: Vec3{-0.3, 0.1, 0.87}},
		{ID: RightIris, Parent: Head, Offset: Vec3{0.3, 0.1, 0.87}},
	}
}

func armTable() []Joint {
	upper := Limits{Pitch: Sym(0.6), Roll: Sym(0.8)}
	lower := Limits{Pitch: Range{Min: -0.9, Max: 0}}
	hand := Limits{Pitch: Sym(0.5), Roll: Sym(0.3)}
	return []Joint{
		{ID: LeftUpperArm, Parent: Torso, Offset: Vec3{-1.1, 0.6, 0}, Limits: upper},
		{ID: LeftLowerArm, Parent: LeftUpperArm, Offset: Vec3{0, -0.8, 0}, Limits: lower},
		{ID: LeftHand, Parent: LeftLowerArm, Offset: Vec3{0, -0.7, 0}, Limits: hand},
		{ID: RightUpperArm, Parent: Torso, Offset: Vec3{1.1, 0.6, 0}, Limits: upper},
		{ID: RightLowerArm, Parent: RightUpperArm, Offset: Vec3{0, -0.8, 0}, Limits: lower},
		{ID: RightHand, Parent: RightLowerArm, Offset: Vec3{0, -0.7, 0}, Limits: hand},
	}
}

// Simple returns the head-and-body character without arms.
func Simple() *Rig {
	return MustNew("simple", baseTable())
}

// Articulated returns the character with upper/lower/hand arm chains.
func Articulated() *Rig {
	return MustNew("articulated", append(baseTable(), armTable()...))
}

// Preset returns a rig by name ("simple" or "articulated").
func Preset(name string) (*Rig, error) {
	switch name {
	case "simple":
		return Simple(), nil
	case "articulated", "":
		return Articulated(), nil
	default:
		return nil, fmt.Errorf("rig: unknown preset %q", name)
	}
}
