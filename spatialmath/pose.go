// Package spatialmath defines poses, twists and cartesian paths and the math relating them.
package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/motionlab/motion/utils"
)

// WorldFrame is the name of the identity reference frame.
const WorldFrame = ""

// Pose is a rigid body transform (translation and rotation) expressed in a named reference frame.
// Poses are comparable values: two poses are equal only when frame, translation and rotation all
// match, so poses in different frames are never equal.
type Pose struct {
	frame       string
	translation r3.Vector
	rotation    quat.Number
}

type poseOptions struct {
	frame     string
	normalize bool
}

// PoseOption configures NewPose.
type PoseOption func(*poseOptions)

// InFrame sets the reference frame of the pose.
func InFrame(frame string) PoseOption {
	return func(o *poseOptions) {
		o.frame = frame
	}
}

// Normalized scales the rotation to a unit quaternion. Without it the rotation is stored as given.
func Normalized() PoseOption {
	return func(o *poseOptions) {
		o.normalize = true
	}
}

// NewPose returns a pose with the given translation and rotation.
func NewPose(translation r3.Vector, rotation quat.Number, opts ...PoseOption) Pose {
	var o poseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.normalize {
		rotation = NormalizeQuat(rotation)
	}
	return Pose{frame: o.frame, translation: translation, rotation: rotation}
}

// IdentityPose returns the zero translation, identity rotation pose in the world frame.
func IdentityPose() Pose {
	return Pose{rotation: quat.Number{Real: 1}}
}

// NewPoseFromMatrix builds a pose from a homogeneous transform. The rotation block is assumed to
// be orthonormal.
func NewPoseFromMatrix(m mgl64.Mat4, frame string) Pose {
	q := mgl64.Mat4ToQuat(m)
	return Pose{
		frame:       frame,
		translation: r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)},
		rotation:    quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]},
	}
}

// Frame returns the name of the reference frame; WorldFrame for world poses.
func (p Pose) Frame() string {
	return p.frame
}

// Translation returns the translation component.
func (p Pose) Translation() r3.Vector {
	return p.translation
}

// Rotation returns the rotation quaternion.
func (p Pose) Rotation() quat.Number {
	return p.rotation
}

// WithFrame returns the same transform expressed as belonging to frame.
func (p Pose) WithFrame(frame string) Pose {
	p.frame = frame
	return p
}

// Translate returns the pose shifted by offset. Rotation and frame are unchanged.
func (p Pose) Translate(offset r3.Vector) Pose {
	p.translation = p.translation.Add(offset)
	return p
}

// Rotate returns the pose with q applied after the current rotation. Translation is unchanged.
func (p Pose) Rotate(q quat.Number) Pose {
	p.rotation = quat.Mul(q, p.rotation)
	return p
}

// Normalize returns the pose with a unit rotation quaternion.
func (p Pose) Normalize() Pose {
	p.rotation = NormalizeQuat(p.rotation)
	return p
}

// Inverse returns the inverse transform, in the same frame. Inverse and Compose treat the
// rotation as a pure rotation regardless of its norm.
func (p Pose) Inverse() Pose {
	inv := quat.Inv(p.rotation)
	return Pose{
		frame:       p.frame,
		translation: rotateVector(inv, p.translation).Mul(-1),
		rotation:    inv,
	}
}

// Compose returns the transform p followed by other (p * other), in the frame of p.
func (p Pose) Compose(other Pose) Pose {
	return Pose{
		frame:       p.frame,
		translation: p.translation.Add(rotateVector(p.rotation, other.translation)),
		rotation:    quat.Mul(p.rotation, other.rotation),
	}
}

// RotationMatrix returns the 3x3 matrix of the rotation quaternion. The homogeneous form is used
// so that a non unit quaternion of norm s yields s² times the rotation, and the zero quaternion
// yields the zero matrix.
func (p Pose) RotationMatrix() mgl64.Mat3 {
	w, x, y, z := p.rotation.Real, p.rotation.Imag, p.rotation.Jmag, p.rotation.Kmag
	// mgl64 matrices are column major.
	return mgl64.Mat3{
		w*w + x*x - y*y - z*z, 2 * (x*y + w*z), 2 * (x*z - w*y),
		2 * (x*y - w*z), w*w - x*x + y*y - z*z, 2 * (y*z + w*x),
		2 * (x*z + w*y), 2 * (y*z - w*x), w*w - x*x - y*y + z*z,
	}
}

// TransformMatrix returns the 4x4 homogeneous transform of the pose.
func (p Pose) TransformMatrix() mgl64.Mat4 {
	m := p.RotationMatrix().Mat4()
	m.Set(0, 3, p.translation.X)
	m.Set(1, 3, p.translation.Y)
	m.Set(2, 3, p.translation.Z)
	return m
}

// Equal reports whether both poses have identical frame, translation and rotation.
func (p Pose) Equal(other Pose) bool {
	return p == other
}

// PoseAlmostEqual reports whether two poses share a frame and agree within tol. Rotations q and
// -q are considered equal.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	if a.frame != b.frame {
		return false
	}
	ta, tb := a.translation, b.translation
	return utils.Float64AlmostEqual(ta.X, tb.X, tol) && utils.Float64AlmostEqual(ta.Y, tb.Y, tol) &&
		utils.Float64AlmostEqual(ta.Z, tb.Z, tol) &&
		QuaternionAlmostEqual(a.rotation, b.rotation, tol)
}

func (p Pose) String() string {
	frame := p.frame
	if frame == WorldFrame {
		frame = "world"
	}
	return fmt.Sprintf("{frame: %s, translation: (%g, %g, %g), rotation: (%g, %g, %g, %g)}",
		frame, p.translation.X, p.translation.Y, p.translation.Z,
		p.rotation.Real, p.rotation.Imag, p.rotation.Jmag, p.rotation.Kmag)
}
