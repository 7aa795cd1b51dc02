package math3d

import "math"

// SphericalEpsilon keeps the polar angle away from the poles, where the
// azimuth is undefined and a look-at basis degenerates.
const SphericalEpsilon = 1e-4

// Spherical is a point in spherical coordinates around the origin.
//
// Theta is the polar angle measured from +Y, Phi the azimuth around +Y with
// Phi = 0 on +Z. Phi is never range-reduced; only its sine and cosine are used.
type Spherical struct {
	Radius float64
	Phi    float64 // azimuth
	Theta  float64 // polar angle
}

// NewSpherical creates a Spherical from radius, azimuth and polar angle.
func NewSpherical(radius, phi, theta float64) Spherical {
	return Spherical{Radius: radius, Phi: phi, Theta: theta}
}

// SphericalFromVec3 returns the spherical coordinates of v.
// The zero vector maps to the zero Spherical.
func SphericalFromVec3(v Vec3) Spherical {
	var s Spherical
	s.SetFromVec3(v)
	return s
}

// SetFromVec3 sets s to the spherical coordinates of v.
func (s *Spherical) SetFromVec3(v Vec3) {
	s.Radius = v.Len()
	if s.Radius == 0 {
		s.Phi, s.Theta = 0, 0
		return
	}
	s.Theta = math.Acos(clamp(v.Y/s.Radius, -1, 1))
	s.Phi = math.Atan2(v.X, v.Z)
}

// ToVec3 converts s to a Cartesian offset:
//
//	x = r·sin(θ)·sin(φ)
//	y = r·cos(θ)
//	z = r·sin(θ)·cos(φ)
func (s Spherical) ToVec3() Vec3 {
	sinTheta := math.Sin(s.Theta)
	return Vec3{
		X: s.Radius * sinTheta * math.Sin(s.Phi),
		Y: s.Radius * math.Cos(s.Theta),
		Z: s.Radius * sinTheta * math.Cos(s.Phi),
	}
}

// MakeSafe clamps Theta into [SphericalEpsilon, π-SphericalEpsilon].
// Radius and Phi are left alone.
func (s *Spherical) MakeSafe() {
	s.Theta = clamp(s.Theta, SphericalEpsilon, math.Pi-SphericalEpsilon)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
