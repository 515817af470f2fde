package rig

// Figure is an exported node list resolved back to scene space, indexed by
// joint. Previews draw from a Figure so they accept the same nodes the
// browser renderer receives.
type Figure struct {
	Present [NumJoints]bool
	Pos     [NumJoints]Vec3 // joint pivot in scene space
	Scale   [NumJoints]Vec3 // the node's own scale
	Yaw     float64         // root yaw
}

// JointByName returns the joint whose node name is name.
func JointByName(name string) (JointID, bool) {
	for id, n := range jointNames {
		if n == name {
			return JointID(id), true
		}
	}
	return 0, false
}

// Resolve walks nodes in order, composing each node's transform onto its
// parent's. Nodes must be parent-first, as AppendNodes emits them. Unknown
// names are skipped; a node whose parent was not seen is treated as a root.
// A node with a non-finite transform is dropped together with its subtree.
func Resolve(nodes []Node) Figure {
	var (
		f       Figure
		rot     [NumJoints]Mat3
		dropped [NumJoints]bool
	)
	for _, n := range nodes {
		id, ok := JointByName(n.Name)
		if !ok {
			continue
		}
		parent, hasParent := JointByName(n.Parent)
		if (hasParent && dropped[parent]) || !n.finite() {
			dropped[id] = true
			continue
		}
		if hasParent && f.Present[parent] {
			f.Pos[id] = f.Pos[parent].Add(rot[parent].Apply(n.Position))
			rot[id] = rot[parent].Mul(EulerMat(n.Rotation))
		} else {
			f.Pos[id] = n.Position
			rot[id] = EulerMat(n.Rotation)
			if id == Root {
				f.Yaw = n.Rotation.Yaw
			}
		}
		f.Scale[id] = n.Scale
		f.Present[id] = true
	}
	return f
}

func (n Node) finite() bool {
	r := n.Rotation
	return n.Position.Finite() && n.Scale.Finite() &&
		finite(r.Pitch) && finite(r.Yaw) && finite(r.Roll)
}
