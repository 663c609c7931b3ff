package math

import "github.com/chewxy/math32"

// Mat2 is a 2x2 matrix in column-major order.
// Layout: [m0 m2]
//
//	[m1 m3]
type Mat2 [4]float32

// Identity2 returns an identity matrix.
func Identity2() Mat2 {
	return Mat2{
		1, 0,
		0, 1,
	}
}

// Rotation2 returns a counter-clockwise rotation matrix.
// angle is in radians.
func Rotation2(angle float32) Mat2 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat2{
		c, s,
		-s, c,
	}
}

// MulVec2 returns m * v.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[2]*v.Y,
		m[1]*v.X + m[3]*v.Y,
	}
}
