package spatialmath

import "gonum.org/v1/gonum/num/quat"

// Physics back-ends commonly exchange quaternions in xyzw order (vector
// first) while everything in this module speaks wxyz (scalar first). The
// helpers here convert between the two layouts.

// QuatFromXYZW builds a quaternion from components in xyzw order.
func QuatFromXYZW(q [4]float64) quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

// QuatFromWXYZ builds a quaternion from components in wxyz order.
func QuatFromWXYZ(q [4]float64) quat.Number {
	return quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
}

// QuatToWXYZ returns the components of q in wxyz order.
func QuatToWXYZ(q quat.Number) [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

// QuatToXYZW returns the components of q in xyzw order.
func QuatToXYZW(q quat.Number) [4]float64 {
	return [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}

// XYZWToWXYZ reorders a 4-component slice from xyzw to wxyz in place.
// It panics if q does not have exactly four elements.
func XYZWToWXYZ(q []float64) {
	if len(q) != 4 {
		panic("quaternion slice must have exactly 4 components")
	}
	q[0], q[1], q[2], q[3] = q[3], q[0], q[1], q[2]
}

// WXYZToXYZW reorders a 4-component slice from wxyz to xyzw in place.
// It panics if q does not have exactly four elements.
func WXYZToXYZW(q []float64) {
	if len(q) != 4 {
		panic("quaternion slice must have exactly 4 components")
	}
	q[0], q[1], q[2], q[3] = q[1], q[2], q[3], q[0]
}
