package rig

// JointID indexes a joint in the character hierarchy.
type JointID int

// Joints of the character. Left and right refer to scene x
// (left = negative x as seen by the camera).
const (
	Root JointID = iota
	Torso
	Head
	LeftUpperArm
	LeftLowerArm
	LeftHand
	RightUpperArm
	RightLowerArm
	RightHand
	LeftLeg
	RightLeg
	LeftEyelid
	RightEyelid
	LeftIris
	RightIris

	// NumJoints is the size of per-joint arrays in a Pose.
	NumJoints
)

// NoParent marks the hierarchy root.
const NoParent JointID = -1

var jointNames = [NumJoints]string{
	Root:          "root",
	Torso:         "torso",
	Head:          "head",
	LeftUpperArm:  "left_upper_arm",
	LeftLowerArm:  "left_lower_arm",
	LeftHand:      "left_hand",
	RightUpperArm: "right_upper_arm",
	RightLowerArm: "right_lower_arm",
	RightHand:     "right_hand",
	LeftLeg:       "left_leg",
	RightLeg:      "right_leg",
	LeftEyelid:    "left_eyelid",
	RightEyelid:   "right_eyelid",
	LeftIris:      "left_iris",
	RightIris:     "right_iris",
}

// String returns the joint's node name.
func (id JointID) String() string {
	if id < 0 || id >= NumJoints {
		return "unknown"
	}
	return jointNames[id]
}

// Valid reports whether id names a known joint.
func (id JointID) Valid() bool {
	return id >= 0 && id < NumJoints
}

// Side selects one of a mirrored pair (eyes, arms, legs).
type Side int

const (
	Left Side = iota
	Right
)

// Mirror is +1 for Left and -1 for Right.
func (s Side) Mirror() float64 {
	if s == Left {
		return 1
	}
	return -1
}

// ArmChain returns the upper, lower and hand joints of one arm.
func ArmChain(s Side) (upper, lower, hand JointID) {
	if s == Left {
		return LeftUpperArm, LeftLowerArm, LeftHand
	}
	return RightUpperArm, RightLowerArm, RightHand
}

// Limits bounds each rotation axis of a joint.
// A zero Limits locks the joint at its rest orientation.
type Limits struct {
	Pitch Range
	Yaw   Range
	Roll  Range
}

// Clamp restricts e to the limits.
func (l Limits) Clamp(e Euler) Euler {
	return Euler{
		Pitch: l.Pitch.Clamp(e.Pitch),
		Yaw:   l.Yaw.Clamp(e.Yaw),
		Roll:  l.Roll.Clamp(e.Roll),
	}
}

// Contains reports whether e lies within the limits on every axis.
func (l Limits) Contains(e Euler) bool {
	return l.Pitch.Contains(e.Pitch) && l.Yaw.Contains(e.Yaw) && l.Roll.Contains(e.Roll)
}

// Joint is one row of the pose-hierarchy table.
type Joint struct {
	ID     JointID
	Parent JointID
	Offset Vec3 // rest position relative to the parent
	Limits Limits
}
