package rig

// Pose is the full character state for one frame.
//
// Root and Yaw are the smoothed placement. Bob is the breathing offset added
// on top of Root.Y when the pose is exported, so the placement itself stays
// exactly on its target once settled.
type Pose struct {
	Root       Vec3
	Yaw        float64
	Bob        float64
	TorsoScale float64

	Joints  [NumJoints]Euler
	Offsets [NumJoints]Vec3 // additive position offsets (hand reach)

	Eyelids [2]float64 // openness per Side, 0 closed .. 1 open
	Irises  [2]Vec2    // iris offset per Side
}

// Rest returns the neutral pose at the origin: eyes open, unit torso scale.
func Rest() Pose {
	return Pose{
		TorsoScale: 1,
		Eyelids:    [2]float64{1, 1},
	}
}

// Clamp restricts every joint of p to the rig's limits and zeroes joints the
// rig does not contain.
func (r *Rig) Clamp(p Pose) Pose {
	for id := JointID(0); id < NumJoints; id++ {
		if !r.enabled[id] {
			p.Joints[id] = Euler{}
			p.Offsets[id] = Vec3{}
			continue
		}
		p.Joints[id] = r.joints[id].Limits.Clamp(p.Joints[id])
	}
	p.Yaw = r.joints[Root].Limits.Yaw.Clamp(p.Yaw)
	for s := range p.Eyelids {
		p.Eyelids[s] = clamp(p.Eyelids[s], 0, 1)
		p.Irises[s] = Vec2{
			X: clamp(p.Irises[s].X, -MaxIrisOffset, MaxIrisOffset),
			Y: clamp(p.Irises[s].Y, -MaxIrisOffset, MaxIrisOffset),
		}
	}
	return p
}

// WithinLimits reports whether every joint rotation of p is inside the rig's
// limits.
func (r *Rig) WithinLimits(p Pose) bool {
	for _, id := range r.order {
		if !r.joints[id].Limits.Contains(p.Joints[id]) {
			return false
		}
	}
	return true
}

// HeadWorld returns the head pivot in scene space for a pose.
func (r *Rig) HeadWorld(p Pose) Vec3 {
	head := r.joints[Head].Offset
	return p.Root.Add(Vec3{Y: p.Bob}).Add(head.RotateY(p.Yaw))
}
