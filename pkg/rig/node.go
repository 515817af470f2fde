package rig

// Node is one named transform in the exported scene tree. Position is local
// to the parent node; Rotation is an XYZ Euler in radians.
type Node struct {
	Name     string `json:"name"`
	Parent   string `json:"parent,omitempty"`
	Position Vec3   `json:"position"`
	Rotation Euler  `json:"rotation"`
	Scale    Vec3   `json:"scale"`
}

var unitScale = Vec3{1, 1, 1}

// Nodes exports p as a parent-first list of transform nodes.
func (r *Rig) Nodes(p Pose) []Node {
	return r.AppendNodes(make([]Node, 0, len(r.order)), p)
}

// AppendNodes appends the node tree for p to dst. Passing dst[:0] of a reused
// buffer keeps the per-frame export allocation free.
func (r *Rig) AppendNodes(dst []Node, p Pose) []Node {
	for _, id := range r.order {
		j := r.joints[id]
		n := Node{
			Name:     id.String(),
			Position: j.Offset.Add(p.Offsets[id]),
			Rotation: p.Joints[id],
			Scale:    unitScale,
		}
		if j.Parent != NoParent {
			n.Parent = j.Parent.String()
		}

		switch id {
		case Root:
			n.Position = p.Root.Add(Vec3{Y: p.Bob})
			n.Rotation = Euler{Yaw: p.Yaw}
		case Torso:
			n.Scale = Vec3{1, p.TorsoScale, 1}
		case LeftEyelid:
			n.Scale = Vec3{1, p.Eyelids[Left], 1}
		case RightEyelid:
			n.Scale = Vec3{1, p.Eyelids[Right], 1}
		case LeftIris:
			n.Position = n.Position.Add(Vec3{X: p.Irises[Left].X, Y: p.Irises[Left].Y})
		case RightIris:
			n.Position = n.Position.Add(Vec3{X: p.Irises[Right].X, Y: p.Irises[Right].Y})
		}
		dst = append(dst, n)
	}
	return dst
}

// World resolves every joint pivot to scene space by forward kinematics.
// Scale is ignored. It is meant for flat previews (terminal, raster snapshot)
// and tests, not for rendering.
func (r *Rig) World(p Pose) [NumJoints]Vec3 {
	var (
		pos [NumJoints]Vec3
		rot [NumJoints]Mat3
	)
	for _, id := range r.order {
		j := r.joints[id]
		if j.Parent == NoParent {
			pos[id] = p.Root.Add(Vec3{Y: p.Bob})
			rot[id] = EulerMat(Euler{Yaw: p.Yaw})
			continue
		}
		local := j.Offset.Add(p.Offsets[id])
		switch id {
		case LeftIris:
			local = local.Add(Vec3{X: p.Irises[Left].X, Y: p.Irises[Left].Y})
		case RightIris:
			local = local.Add(Vec3{X: p.Irises[Right].X, Y: p.Irises[Right].Y})
		}
		pos[id] = pos[j.Parent].Add(rot[j.Parent].Apply(local))
		rot[id] = rot[j.Parent].Mul(EulerMat(p.Joints[id]))
	}
	return pos
}
