// Package spatialmath defines the rigid-body frame math used when interpreting
// batched simulation state: quaternion rotations, frame projections, and
// component-order conversions.
//
// Orientations are unit quaternions in wxyz order (scalar first) unless a
// function says otherwise. Frames are right-handed and the body-frame forward
// direction is +x.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// defaultAngleEpsilon is the tolerance used when comparing quaternions.
const defaultAngleEpsilon = 1e-8

// forwardVec is the body-frame forward direction used for heading extraction.
var forwardVec = r3.Vector{X: 1, Y: 0, Z: 0}

// QuatRotate rotates vector v by the unit quaternion q, i.e. computes q v q*.
// The identity quaternion (1,0,0,0) returns v unchanged.
func QuatRotate(q quat.Number, v r3.Vector) r3.Vector {
	qv := quat.Number{Real: 0, Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, qv), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// QuatRotateInverse rotates vector v by the inverse of the unit quaternion q.
// For a unit quaternion the inverse is the conjugate, so this maps a
// world-frame vector into the body frame described by q.
func QuatRotateInverse(q quat.Number, v r3.Vector) r3.Vector {
	return QuatRotate(quat.Conj(q), v)
}

// Normalize scales v to unit length. The zero vector is returned unchanged
// since it has no direction.
func Normalize(v r3.Vector) r3.Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Mul(1 / n)
}

// NormalizeQuat scales q to unit norm so repeated rotations stay numerically
// stable. The zero quaternion is returned unchanged.
func NormalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return q
	}
	return quat.Scale(1/n, q)
}

// Heading returns the yaw heading, in radians, of the body frame described by
// q. It rotates the body-frame forward vector (1,0,0) into the world frame and
// takes atan2 of the resulting (y, x); a 90 degree yaw yields roughly pi/2.
func Heading(q quat.Number) float64 {
	fw := QuatRotate(q, forwardVec)
	return math.Atan2(fw.Y, fw.X)
}

// QuaternionAlmostEqual tells whether two quaternions represent nearly
// identical orientations within tol, treating q and -q as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	if tol <= 0 {
		tol = defaultAngleEpsilon
	}
	diff := quat.Mul(quat.Conj(a), b)
	return math.Abs(math.Abs(diff.Real)-1) < tol
}
