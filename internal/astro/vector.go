// Package astro provides the vector, matrix and spherical primitives shared by
// the astrometry packages.
package astro

import (
	"math"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	u, _ := v.Unit()
	return u
}

// Unit returns the unit vector and the modulus. A null vector yields a null
// unit vector and zero modulus.
func (v Vec3) Unit() (Vec3, float64) {
	n := v.Norm()
	if n == 0 {
		return Vec3{}, 0
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}, n
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Neg returns the reversed vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// AddScaled returns v + s*u.
func (v Vec3) AddScaled(s float64, u Vec3) Vec3 {
	return Vec3{X: v.X + s*u.X, Y: v.Y + s*u.Y, Z: v.Z + s*u.Z}
}

// Sep returns the angular separation between two vectors, which need not be
// unit length. The result is in [0, π].
func (v Vec3) Sep(u Vec3) float64 {
	ss := v.Cross(u).Norm()
	cs := v.Dot(u)
	if ss == 0 && cs == 0 {
		return 0
	}
	return math.Atan2(ss, cs)
}

// PV is a position-velocity pair.
type PV struct {
	P Vec3
	V Vec3
}

// Add returns the element-wise sum of two position-velocity pairs.
func (pv PV) Add(o PV) PV {
	return PV{P: pv.P.Add(o.P), V: pv.V.Add(o.V)}
}

// Sub returns the element-wise difference of two position-velocity pairs.
func (pv PV) Sub(o PV) PV {
	return PV{P: pv.P.Sub(o.P), V: pv.V.Sub(o.V)}
}

// Scale scales both the position and the velocity.
func (pv PV) Scale(s float64) PV {
	return PV{P: pv.P.Scale(s), V: pv.V.Scale(s)}
}

// Mat3 is a 3x3 matrix stored by rows.
type Mat3 [3][3]float64

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Apply returns r·v.
func (r Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// ApplyT returns rᵀ·v, the inverse rotation for an orthogonal r.
func (r Mat3) ApplyT(v Vec3) Vec3 {
	return Vec3{
		X: r[0][0]*v.X + r[1][0]*v.Y + r[2][0]*v.Z,
		Y: r[0][1]*v.X + r[1][1]*v.Y + r[2][1]*v.Z,
		Z: r[0][2]*v.X + r[1][2]*v.Y + r[2][2]*v.Z,
	}
}

// ApplyPV rotates both halves of a position-velocity pair.
func (r Mat3) ApplyPV(pv PV) PV {
	return PV{P: r.Apply(pv.P), V: r.Apply(pv.V)}
}

// ApplyTPV rotates both halves of a position-velocity pair by rᵀ.
func (r Mat3) ApplyTPV(pv PV) PV {
	return PV{P: r.ApplyT(pv.P), V: r.ApplyT(pv.V)}
}

// Mul returns the product a·b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var c Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var w float64
			for k := 0; k < 3; k++ {
				w += a[i][k] * b[k][j]
			}
			c[i][j] = w
		}
	}
	return c
}

// Transpose returns the transposed matrix.
func (r Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = r[j][i]
		}
	}
	return t
}

// RotateX applies a rotation of the reference frame by phi about the x-axis,
// returning Rx(phi)·r. Positive phi is anticlockwise looking from +x towards
// the origin.
func (r Mat3) RotateX(phi float64) Mat3 {
	s, c := math.Sincos(phi)
	var o Mat3
	o[0] = r[0]
	for j := 0; j < 3; j++ {
		o[1][j] = c*r[1][j] + s*r[2][j]
		o[2][j] = -s*r[1][j] + c*r[2][j]
	}
	return o
}

// RotateY applies a rotation of the reference frame by theta about the y-axis.
func (r Mat3) RotateY(theta float64) Mat3 {
	s, c := math.Sincos(theta)
	var o Mat3
	o[1] = r[1]
	for j := 0; j < 3; j++ {
		o[0][j] = c*r[0][j] - s*r[2][j]
		o[2][j] = s*r[0][j] + c*r[2][j]
	}
	return o
}

// RotateZ applies a rotation of the reference frame by psi about the z-axis.
func (r Mat3) RotateZ(psi float64) Mat3 {
	s, c := math.Sincos(psi)
	var o Mat3
	o[2] = r[2]
	for j := 0; j < 3; j++ {
		o[0][j] = c*r[0][j] + s*r[1][j]
		o[1][j] = -s*r[0][j] + c*r[1][j]
	}
	return o
}

// Obliquity of the ecliptic at J2000 (IAU 2006), radians.
const obliquityRad = 84381.406 * ArcsecToRad

// EquatorialToEcliptic converts equatorial XYZ to ecliptic XYZ.
// Input is in any units (km, AU, etc); output is in the same units.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	return Identity().RotateX(obliquityRad).Apply(eq)
}

// EclipticToEquatorial converts ecliptic XYZ to equatorial XYZ.
func EclipticToEquatorial(ecl Vec3) Vec3 {
	return Identity().RotateX(obliquityRad).ApplyT(ecl)
}
