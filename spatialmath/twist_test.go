package spatialmath

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/motionlab/motion/utils"
)

func TestCalculateTwistFromIdentity(t *testing.T) {
	target := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, q90z)
	twist, err := CalculateTwist(IdentityPose(), target)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, twist.Linear.X, test.ShouldAlmostEqual, 1.)
	test.That(t, twist.Linear.Y, test.ShouldAlmostEqual, 2.)
	test.That(t, twist.Linear.Z, test.ShouldAlmostEqual, 3.)
	test.That(t, twist.Angular.X, test.ShouldAlmostEqual, 0.)
	test.That(t, twist.Angular.Z, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, twist.Frame, test.ShouldEqual, WorldFrame)
}

func TestCalculateTwistIsLocal(t *testing.T) {
	from := NewPose(r3.Vector{X: 1}, q90z, InFrame("base"))
	to := NewPose(r3.Vector{X: 1, Y: 1}, q90z, InFrame("base"))
	twist, err := CalculateTwist(from, to)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, twist.Linear.X, test.ShouldAlmostEqual, 1.)
	test.That(t, twist.Linear.Y, test.ShouldAlmostEqual, 0.)
	test.That(t, twist.Angular.Norm(), test.ShouldAlmostEqual, 0.)
	test.That(t, twist.Frame, test.ShouldEqual, "base")
}

func TestCalculateTwistNonUnitRotation(t *testing.T) {
	twist, err := CalculateTwist(IdentityPose(), NewPose(r3.Vector{}, quat.Scale(2, q90z)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, twist.Angular.Z, test.ShouldAlmostEqual, math.Pi/2)

	t.Run("translation is not scaled by the rotation norm", func(t *testing.T) {
		from := NewPose(r3.Vector{X: 1}, quat.Number{Real: 2})
		to := NewPose(r3.Vector{X: 3}, quat.Number{Real: 2})
		twist, err := CalculateTwist(from, to)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, twist.Linear.X, test.ShouldAlmostEqual, 2.)
		test.That(t, twist.Linear.Y, test.ShouldAlmostEqual, 0.)
		test.That(t, twist.Angular.Norm(), test.ShouldAlmostEqual, 0.)

		expected := from.Inverse().Compose(to).Translation()
		test.That(t, twist.Linear.X, test.ShouldAlmostEqual, expected.X)
	})

	t.Run("rotated non unit poses", func(t *testing.T) {
		from := NewPose(r3.Vector{X: 1}, quat.Scale(2, q90z))
		to := NewPose(r3.Vector{X: 1, Y: 1}, quat.Scale(3, q90z))
		twist, err := CalculateTwist(from, to)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, twist.Linear.X, test.ShouldAlmostEqual, 1.)
		test.That(t, twist.Linear.Y, test.ShouldAlmostEqual, 0.)
		test.That(t, twist.Angular.Norm(), test.ShouldAlmostEqual, 0.)
	})
}

func TestCalculateTwistDegenerate(t *testing.T) {
	_, err := CalculateTwist(IdentityPose(), IdentityPose().WithFrame("tool"))
	test.That(t, errors.Is(err, utils.ErrNumericDegeneracy), test.ShouldBeTrue)

	singular := NewPose(r3.Vector{X: 1}, quat.Number{})
	_, err = CalculateTwist(singular, IdentityPose())
	test.That(t, errors.Is(err, utils.ErrNumericDegeneracy), test.ShouldBeTrue)

	_, err = CalculateTwist(IdentityPose(), singular)
	test.That(t, errors.Is(err, utils.ErrNumericDegeneracy), test.ShouldBeTrue)
}

func TestTwistVelocity(t *testing.T) {
	twist := Twist{Linear: r3.Vector{X: 2}, Angular: r3.Vector{Z: 1}, Frame: "base"}
	v, err := twist.Velocity(500 * time.Millisecond)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, Twist{Linear: r3.Vector{X: 4}, Angular: r3.Vector{Z: 2}, Frame: "base"})

	_, err = twist.Velocity(0)
	test.That(t, errors.Is(err, utils.ErrNumericDegeneracy), test.ShouldBeTrue)
	test.That(t, twist.String(), test.ShouldContainSubstring, `"base"`)
}
