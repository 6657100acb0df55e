package spatialmath

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/motionlab/motion/utils"
)

// minRotationNorm is the smallest quaternion norm treated as a rotation.
const minRotationNorm = 1e-6

// Twist is a rigid body displacement or velocity screw: a linear and an angular part expressed in
// a reference frame. The angular part is an R3 axis angle (axis scaled by the angle).
type Twist struct {
	Linear  r3.Vector
	Angular r3.Vector
	Frame   string
}

// Scale returns the twist with both parts multiplied by f.
func (t Twist) Scale(f float64) Twist {
	return Twist{Linear: t.Linear.Mul(f), Angular: t.Angular.Mul(f), Frame: t.Frame}
}

// Velocity returns the twist divided by dt, turning a finite displacement into a mean velocity
// per second.
func (t Twist) Velocity(dt time.Duration) (Twist, error) {
	if dt <= 0 {
		return Twist{}, utils.NewNumericDegeneracyError("cannot derive a velocity over %v", dt)
	}
	return t.Scale(1 / dt.Seconds()), nil
}

func (t Twist) String() string {
	return fmt.Sprintf("{frame: %q, linear: (%g, %g, %g), angular: (%g, %g, %g)}", t.Frame,
		t.Linear.X, t.Linear.Y, t.Linear.Z, t.Angular.X, t.Angular.Y, t.Angular.Z)
}

// CalculateTwist returns the twist that moves from to to, expressed in the local coordinates of
// from: delta = inverse(T(from)) * T(to). Both poses must share a reference frame; a transform
// lookup between frames is not available here. Rotations are normalized first, so only their
// direction matters.
func CalculateTwist(from, to Pose) (Twist, error) {
	if from.frame != to.frame {
		return Twist{}, utils.NewNumericDegeneracyError(
			"cannot compute a twist between poses in frames %q and %q", from.frame, to.frame)
	}
	for _, p := range []Pose{from, to} {
		if quat.Abs(p.rotation) < minRotationNorm {
			return Twist{}, utils.NewNumericDegeneracyError("rotation of pose %v is singular", p)
		}
	}
	from, to = from.Normalize(), to.Normalize()

	inv, err := invertTransform(from.TransformMatrix())
	if err != nil {
		return Twist{}, err
	}
	delta := inv.Mul4(to.TransformMatrix())
	q := mgl64.Mat4ToQuat(delta.Mat3().Mat4())

	return Twist{
		Linear:  r3.Vector{X: delta.At(0, 3), Y: delta.At(1, 3), Z: delta.At(2, 3)},
		Angular: QuatToR3AA(NormalizeQuat(quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]})),
		Frame:   from.frame,
	}, nil
}

// invertTransform inverts a 4x4 transform through gonum so that singular and ill conditioned
// matrices are reported instead of silently producing garbage.
func invertTransform(m mgl64.Mat4) (mgl64.Mat4, error) {
	dense := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			dense.Set(r, c, m.At(r, c))
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(dense); err != nil {
		return mgl64.Mat4{}, utils.NewNumericDegeneracyError("transform is not invertible: %v", err)
	}
	var out mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Set(r, c, inv.At(r, c))
		}
	}
	return out, nil
}
