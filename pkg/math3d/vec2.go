package math3d

import (
	"fmt"
	"math"
)

// Vec2 represents a 2D vector, typically a pointer position in screen space.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Zero2 returns the zero vector.
func Zero2() Vec2 {
	return Vec2{}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product a * b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Div returns the scalar division a / s. Dividing by zero is the caller's problem.
func (a Vec2) Div(s float64) Vec2 {
	return Vec2{a.X / s, a.Y / s}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Len returns the length of the vector.
func (a Vec2) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// LenSq returns the squared length (faster, no sqrt).
func (a Vec2) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y
}

// Normalize returns the unit vector in the same direction.
// A zero-length vector is returned unchanged.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Div(l)
}

// NormalizeInPlace normalizes a, leaving a zero-length vector untouched.
func (a *Vec2) NormalizeInPlace() {
	*a = a.Normalize()
}

// Negate returns the negated vector.
func (a Vec2) Negate() Vec2 {
	return Vec2{-a.X, -a.Y}
}

// Lerp returns the linear interpolation between a and b by t.
// t is not clamped, so values outside [0, 1] extrapolate.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	s := 1 - t
	return Vec2{
		a.X*s + b.X*t,
		a.Y*s + b.Y*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec2) Min(b Vec2) Vec2 {
	return Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

// Max returns the component-wise maximum.
func (a Vec2) Max(b Vec2) Vec2 {
	return Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

// MinInPlace replaces each component of a with min(a, b).
func (a *Vec2) MinInPlace(b Vec2) {
	*a = a.Min(b)
}

// MaxInPlace replaces each component of a with max(a, b).
func (a *Vec2) MaxInPlace(b Vec2) {
	*a = a.Max(b)
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Len()
}

// At returns component i (0 = X, 1 = Y). It panics for any other index.
func (a Vec2) At(i int) float64 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	}
	panic(fmt.Sprintf("math3d: Vec2 index %d out of range [0,1]", i))
}

// SetAt sets component i (0 = X, 1 = Y). It panics for any other index.
func (a *Vec2) SetAt(i int, v float64) {
	switch i {
	case 0:
		a.X = v
	case 1:
		a.Y = v
	default:
		panic(fmt.Sprintf("math3d: Vec2 index %d out of range [0,1]", i))
	}
}
