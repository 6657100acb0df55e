package referenceframe

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/motionlab/motion/utils"
)

func TestNewJointLimits(t *testing.T) {
	js := NewJointSet("a", "b", "c")

	limits, err := NewJointLimits(js, []Bound{NewBound(1), NoBound, NewBound(3)}, nil, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, limits.MaxVelocity(0), test.ShouldResemble, NewBound(1))
	test.That(t, limits.MaxVelocity(1).Set, test.ShouldBeFalse)
	test.That(t, limits.MaxAcceleration(2).Set, test.ShouldBeFalse)
	test.That(t, limits.MaxVelocities(), test.ShouldHaveLength, 3)
	test.That(t, limits.MaxVelocity(1).String(), test.ShouldEqual, "none")
	test.That(t, limits.MaxVelocity(2).String(), test.ShouldEqual, "3")

	_, err = NewJointLimits(js, []Bound{NewBound(1)}, nil, nil, nil)
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)

	_, err = NewJointLimits(js, nil, nil,
		[]Bound{NewBound(0), NewBound(2), NoBound},
		[]Bound{NewBound(1), NewBound(1), NewBound(5)})
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"b"`)

	_, err = NewJointLimits(nil, nil, nil, nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestJointLimitsSelectAndInside(t *testing.T) {
	js := NewJointSet("a", "b", "c")
	limits, err := NewJointLimits(js,
		[]Bound{NewBound(1), NewBound(2), NewBound(3)},
		nil,
		[]Bound{NewBound(-1), NoBound, NewBound(0)},
		[]Bound{NewBound(1), NoBound, NewBound(0.5)})
	test.That(t, err, test.ShouldBeNil)

	sub, err := limits.Select(NewJointSet("c", "a"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sub.MaxVelocities(), test.ShouldResemble, []Bound{NewBound(3), NewBound(1)})
	test.That(t, sub.MinPositions(), test.ShouldResemble, []Bound{NewBound(0), NewBound(-1)})

	_, err = limits.Select(NewJointSet("z"))
	test.That(t, errors.Is(err, utils.ErrNotFound), test.ShouldBeTrue)

	inside, err := limits.IsInside(mustJointValues(t, js, 0, 1000, 0.25))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, inside, test.ShouldBeTrue)

	inside, err = limits.IsInside(mustJointValues(t, js, 0, 0, 0.75))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, inside, test.ShouldBeFalse)

	_, err = limits.IsInside(mustJointValues(t, NewJointSet("a"), 0))
	test.That(t, errors.Is(err, utils.ErrNotFound), test.ShouldBeTrue)
}

func TestJointLimitsReorder(t *testing.T) {
	js := NewJointSet("a", "b")
	limits, err := NewJointLimits(js, []Bound{NewBound(1), NewBound(2)}, nil, nil, nil)
	test.That(t, err, test.ShouldBeNil)

	reordered, err := limits.Reorder(NewJointSet("b", "a"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reordered.MaxVelocities(), test.ShouldResemble, []Bound{NewBound(2), NewBound(1)})

	_, err = limits.Reorder(NewJointSet("a"))
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)
}
