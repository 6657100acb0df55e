package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/motionlab/motion/utils"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// An orientation can be expressed by an axis, i.e. a line from the origin to a point on the unit
// sphere, represented by (rx, ry, rz), and a rotation around that axis, theta. These four numbers
// can be used as-is (R4), or they can be converted to R3, where theta is multiplied by each of the
// unit sphere components to give a vector whose length is theta and whose direction is the axis.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates an R4AA representing no rotation.
func NewR4AA() R4AA {
	return R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// ToR3 converts an R4 angle axis to R3.
func (r4 R4AA) ToR3() r3.Vector {
	return r3.Vector{X: r4.RX * r4.Theta, Y: r4.RY * r4.Theta, Z: r4.RZ * r4.Theta}
}

// ToQuat converts an R4 axis angle to a unit quaternion. A zero length axis yields the identity.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/angleToQuaternion/index.htm
func (r4 R4AA) ToQuat() quat.Number {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	sinA := math.Sin(r4.Theta/2) / norm
	return quat.Number{
		Real: math.Cos(r4.Theta / 2),
		Imag: r4.RX * sinA,
		Jmag: r4.RY * sinA,
		Kmag: r4.RZ * sinA,
	}
}

// R3ToR4 converts an R3 angle axis to R4.
func R3ToR4(aa r3.Vector) R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := imagNorm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return NewR4AA()
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}

// QuatToR3AA converts a quat to an R3 axis angle in the same way the C++ Eigen library does. The
// zero vector is returned for (near) identity rotations.
func QuatToR3AA(q quat.Number) r3.Vector {
	return QuatToR4AA(q).ToR3()
}

// imagNorm returns the norm of the imaginary part of the quaternion.
func imagNorm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// NormalizeQuat scales q to unit length. The zero quaternion becomes the identity.
func NormalizeQuat(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}

// QuaternionAlmostEqual reports whether two quaternions represent the same rotation within tol.
// q and -q are considered equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := utils.Float64AlmostEqual(a.Real, b.Real, tol) && utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) && utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
	flipped := utils.Float64AlmostEqual(a.Real, -b.Real, tol) && utils.Float64AlmostEqual(a.Imag, -b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, -b.Jmag, tol) && utils.Float64AlmostEqual(a.Kmag, -b.Kmag, tol)
	return same || flipped
}

// rotateVector rotates v by q (q v q⁻¹). q need not be unit length.
func rotateVector(q quat.Number, v r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Inv(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
