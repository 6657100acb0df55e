package motionplan

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/motionlab/motion/logging"
	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/utils"
)

func twoJointParameters(t *testing.T, js *referenceframe.JointSet) *PlanParameters {
	t.Helper()
	b := NewPlanParametersBuilder()
	b.JointSet = js
	b.MaxVelocity = []float64{1, 1}
	b.MaxAcceleration = []float64{6, 6}
	b.SampleResolution = 0.25
	params, err := b.Build()
	test.That(t, err, test.ShouldBeNil)
	return params
}

func TestLinearPlannerPlanJointPath(t *testing.T) {
	logger := logging.NewTestLogger(t)
	js := referenceframe.NewJointSet("a", "b")
	req, err := NewPlanRequest(jointPath(t, js, []float64{0, 0}, []float64{1, 0.5}), twoJointParameters(t, js))
	test.That(t, err, test.ShouldBeNil)

	traj, err := NewLinearPlanner(logger).PlanJointPath(context.Background(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Count(), test.ShouldEqual, 5)
	test.That(t, traj.Duration(), test.ShouldEqual, 1500*time.Millisecond)
	test.That(t, traj.HasVelocity(), test.ShouldBeTrue)
	test.That(t, traj.IsValid(), test.ShouldBeTrue)
	test.That(t, traj.At(1).TimeFromStart(), test.ShouldEqual, 375*time.Millisecond)

	last := traj.At(4).Positions()
	test.That(t, last.At(0), test.ShouldAlmostEqual, 1.)
	test.That(t, last.At(1), test.ShouldAlmostEqual, 0.5)

	startVel, _ := traj.At(0).Velocities()
	test.That(t, startVel.Values(), test.ShouldResemble, []float64{0, 0})
	endVel, _ := traj.At(4).Velocities()
	test.That(t, endVel.Values(), test.ShouldResemble, []float64{0, 0})
	midVel, _ := traj.At(2).Velocities()
	test.That(t, midVel.At(0), test.ShouldAlmostEqual, 2./3)
	test.That(t, midVel.At(1), test.ShouldAlmostEqual, 1./3)
}

func TestLinearPlannerUsesParameterOrder(t *testing.T) {
	logger := logging.NewTestLogger(t)
	paramSet := referenceframe.NewJointSet("b", "a")
	path := jointPath(t, referenceframe.NewJointSet("a", "b"), []float64{0, 0}, []float64{0, 2})
	b := twoJointParameters(t, paramSet).ToBuilder()
	b.MaxVelocity = []float64{2, 0.5}
	params, err := b.Build()
	test.That(t, err, test.ShouldBeNil)
	req, err := NewPlanRequest(path, params)
	test.That(t, err, test.ShouldBeNil)

	traj, err := NewLinearPlanner(logger).PlanJointPath(context.Background(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.JointSet().Equal(paramSet), test.ShouldBeTrue)
	// joint b moves 2 at 2 per second: 1.5 * 2 / 2
	test.That(t, traj.Duration(), test.ShouldEqual, 1500*time.Millisecond)
	test.That(t, traj.At(traj.Count()-1).Positions().Values(), test.ShouldResemble, []float64{2, 0})
}

func TestLinearPlannerSinglePointAndCancel(t *testing.T) {
	logger := logging.NewTestLogger(t)
	js := referenceframe.NewJointSet("a", "b")
	params := twoJointParameters(t, js)

	req, err := NewPlanRequest(jointPath(t, js, []float64{0.5, 0.5}), params)
	test.That(t, err, test.ShouldBeNil)
	traj, err := NewLinearPlanner(logger).PlanJointPath(context.Background(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Count(), test.ShouldEqual, 1)
	test.That(t, traj.Duration(), test.ShouldEqual, time.Duration(0))

	req, err = NewPlanRequest(jointPath(t, js, []float64{0, 0}, []float64{1, 1}), params)
	test.That(t, err, test.ShouldBeNil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLinearPlanner(logger).PlanJointPath(ctx, req)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestLinearPlannerUnimplemented(t *testing.T) {
	lp := NewLinearPlanner(logging.NewTestLogger(t))
	_, err := lp.PlanCartesianPath(context.Background(), CartesianPlanRequest{})
	test.That(t, errors.Is(err, utils.ErrUnimplemented), test.ShouldBeTrue)
	_, err = lp.InverseKinematics(context.Background(), IKRequest{})
	test.That(t, errors.Is(err, utils.ErrUnimplemented), test.ShouldBeTrue)
}
