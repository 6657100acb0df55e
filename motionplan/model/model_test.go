package model

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/motionlab/motion/motionplan"
	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/spatialmath"
	"github.com/motionlab/motion/trajectory"
	"github.com/motionlab/motion/utils"
)

const trajectoryDocument = `{
	// two joints, moving for one second
	joints: ["shoulder", "elbow"],
	points: [
		{time_from_start: 0, positions: [0, 0], velocities: [0, 0]},
		{time_from_start: 0.5, positions: [0.5, 1], velocities: [1, 2]},
		{time_from_start: 1, positions: [1, 2], velocities: [0, 0]},
	],
}`

func TestJointTrajectoryDocument(t *testing.T) {
	var m JointTrajectory
	test.That(t, Unmarshal([]byte(trajectoryDocument), &m), test.ShouldBeNil)

	traj, err := ToJointTrajectory(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.IsValid(), test.ShouldBeTrue)
	test.That(t, traj.HasVelocity(), test.ShouldBeTrue)
	test.That(t, traj.HasEffort(), test.ShouldBeFalse)
	test.That(t, traj.Duration(), test.ShouldEqual, time.Second)
	test.That(t, traj.At(1).TimeFromStart(), test.ShouldEqual, 500*time.Millisecond)

	back := FromJointTrajectory(traj)
	test.That(t, back, test.ShouldResemble, m)

	m.Points[2].TimeFromStart = 0.25
	_, err = ToJointTrajectory(m)
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)

	m.Points[2].TimeFromStart = 1
	m.Points[1].Velocities = []float64{1}
	_, err = ToJointTrajectory(m)
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)
}

func TestJointTrajectoryTimeOutOfRange(t *testing.T) {
	var m JointTrajectory
	test.That(t, Unmarshal([]byte(`{
		joints: ["a"],
		points: [
			{time_from_start: 1e10, positions: [0]},
			{time_from_start: 2e10, positions: [1]},
		],
	}`), &m), test.ShouldBeNil)

	_, err := ToJointTrajectory(m)
	test.That(t, errors.Is(err, utils.ErrOutOfRange), test.ShouldBeTrue)

	_, err = ToJointTrajectoryPoint(referenceframe.NewJointSet("a"), JointTrajectoryPoint{
		TimeFromStart: math.Inf(1),
		Positions:     []float64{0},
	})
	test.That(t, errors.Is(err, utils.ErrOutOfRange), test.ShouldBeTrue)
}

func TestJointTrajectoryValidityRoundTrip(t *testing.T) {
	js := referenceframe.NewJointSet("a")
	positions, err := referenceframe.NewJointValues(js, []float64{1})
	test.That(t, err, test.ShouldBeNil)
	p, err := trajectory.NewJointTrajectoryPoint(2*time.Second, positions, trajectory.WithEfforts(positions))
	test.That(t, err, test.ShouldBeNil)
	traj, err := trajectory.NewJointTrajectory(js, []trajectory.JointTrajectoryPoint{p}, trajectory.WithValidity(false))
	test.That(t, err, test.ShouldBeNil)

	m := FromJointTrajectory(traj)
	test.That(t, *m.IsValid, test.ShouldBeFalse)
	test.That(t, m.Points[0].Velocities, test.ShouldBeNil)

	back, err := ToJointTrajectory(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.IsValid(), test.ShouldBeFalse)
	test.That(t, back.At(0).Equal(p), test.ShouldBeTrue)
}

func TestJointLimitsNullBounds(t *testing.T) {
	var m JointLimits
	doc := `{"joints": ["a", "b"], "max_velocity": [1.5, null], "min_position": [-1, -2], "max_position": [1, 2]}`
	test.That(t, Unmarshal([]byte(doc), &m), test.ShouldBeNil)

	limits, err := ToJointLimits(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, limits.MaxVelocity(0), test.ShouldResemble, referenceframe.NewBound(1.5))
	test.That(t, limits.MaxVelocity(1).Set, test.ShouldBeFalse)
	test.That(t, limits.MaxAcceleration(0).Set, test.ShouldBeFalse)

	back := FromJointLimits(limits)
	test.That(t, back, test.ShouldResemble, m)

	m.MinPosition[0] = &[]float64{5}[0]
	_, err = ToJointLimits(m)
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)
}

func TestPlanParametersDocument(t *testing.T) {
	var m PlanParameters
	doc := `{joints: ["j1", "j2", "j3", "j4", "j5", "j6"], max_velocity: [1, 1, 1, 1, 1], max_acceleration: [1, 1, 1, 1, 1, 1]}`
	test.That(t, Unmarshal([]byte(doc), &m), test.ShouldBeNil)
	_, err := ToPlanParameters(m)
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)

	m.MaxVelocity = append(m.MaxVelocity, 2)
	params, err := ToPlanParameters(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.CollisionCheck(), test.ShouldBeTrue)
	test.That(t, params.JointSet().Count(), test.ShouldEqual, 6)

	back, err := ToPlanParameters(FromPlanParameters(params))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.MaxVelocity(), test.ShouldResemble, params.MaxVelocity())
	test.That(t, back.SampleResolution(), test.ShouldEqual, params.SampleResolution())

	ts, err := ToTaskSpacePlanParameters(TaskSpacePlanParameters{EndEffectorName: "tool"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ts.EndEffectorName(), test.ShouldEqual, "tool")
	tsBack, err := ToTaskSpacePlanParameters(FromTaskSpacePlanParameters(ts))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tsBack.IkJumpThreshold(), test.ShouldEqual, ts.IkJumpThreshold())

	zero := 0.
	_, err = ToTaskSpacePlanParameters(TaskSpacePlanParameters{MaxXYZVelocity: &zero})
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)
}

func TestPathsAndPoses(t *testing.T) {
	js := referenceframe.NewJointSet("a", "b")
	path, err := ToJointPath(JointPath{Joints: []string{"a", "b"}, Points: [][]float64{{0, 1}, {2, 3}}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path.JointSet().Equal(js), test.ShouldBeTrue)
	test.That(t, FromJointPath(path).Points, test.ShouldResemble, [][]float64{{0, 1}, {2, 3}})
	_, err = ToJointPath(JointPath{Joints: []string{"a", "a"}, Points: [][]float64{{0, 1}}})
	test.That(t, errors.Is(err, utils.ErrInvariantViolation), test.ShouldBeTrue)

	jv, err := ToJointValues(JointValues{Joints: []string{"b", "a"}, Values: []float64{1, 2}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, FromJointValues(jv), test.ShouldResemble, JointValues{Joints: []string{"b", "a"}, Values: []float64{1, 2}})
	test.That(t, FromJointValues(referenceframe.JointValues{}), test.ShouldResemble, JointValues{})

	pose := spatialmath.NewPose(r3.Vector{X: 1, Y: 2, Z: 3},
		spatialmath.R4AA{Theta: math.Pi / 2, RZ: 1}.ToQuat(), spatialmath.InFrame("base"))
	test.That(t, ToPose(FromPose(pose)), test.ShouldResemble, pose)

	cp := spatialmath.NewCartesianPath(pose, spatialmath.IdentityPose())
	test.That(t, ToCartesianPath(FromCartesianPath(cp)).Equal(cp), test.ShouldBeTrue)

	twist, err := spatialmath.CalculateTwist(spatialmath.IdentityPose().WithFrame("base"), pose)
	test.That(t, err, test.ShouldBeNil)
	m := FromTwist(twist)
	test.That(t, m.Frame, test.ShouldEqual, "base")
	test.That(t, m.Linear.Z, test.ShouldAlmostEqual, 3.)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	params, err := motionplan.NewPlanParametersBuilder().Build()
	test.That(t, err, test.ShouldBeNil)

	file := filepath.Join(dir, "params.json")
	test.That(t, WriteFile(file, FromPlanParameters(params)), test.ShouldBeNil)

	var m PlanParameters
	test.That(t, ReadFile(file, &m), test.ShouldBeNil)
	back, err := ToPlanParameters(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.SampleResolution(), test.ShouldEqual, params.SampleResolution())

	test.That(t, ReadFile(filepath.Join(dir, "missing.json"), &m), test.ShouldNotBeNil)
}
