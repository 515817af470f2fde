package rig

import "math"

// Vec2 is a 2D vector (normalized pointer coordinates, iris offsets).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a 3D vector in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RotateY rotates v about the vertical axis by angle radians
// (right-handed, +Y up, same sense as an Euler yaw).
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// Finite reports whether every component is a finite number.
func (v Vec3) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// Finite reports whether both components are finite numbers.
func (v Vec2) Finite() bool {
	return finite(v.X) && finite(v.Y)
}

// Euler is an XYZ-order rotation in radians.
// Pitch rotates about X, Yaw about Y, Roll about Z. JSON uses the renderer's
// x/y/z rotation keys.
type Euler struct {
	Pitch float64 `json:"x"`
	Yaw   float64 `json:"y"`
	Roll  float64 `json:"z"`
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min, Max float64
}

// Sym returns the symmetric range [-r, r].
func Sym(r float64) Range {
	return Range{Min: -r, Max: r}
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return clamp(v, r.Min, r.Max)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// Identity returns the identity rotation.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// EulerMat builds the rotation for an XYZ-order Euler (Rx * Ry * Rz).
func EulerMat(e Euler) Mat3 {
	a, b := math.Cos(e.Pitch), math.Sin(e.Pitch)
	c, d := math.Cos(e.Yaw), math.Sin(e.Yaw)
	ec, f := math.Cos(e.Roll), math.Sin(e.Roll)

	ae, af := a*ec, a*f
	be, bf := b*ec, b*f

	return Mat3{
		{c * ec, -c * f, d},
		{af + be*d, ae - bf*d, -b * c},
		{bf - ae*d, be + af*d, a * c},
	}
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return out
}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
