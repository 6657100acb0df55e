// Package model defines the plain data forms of the motion types, used to store and exchange
// paths, trajectories, poses and plan parameters as JSON. Every conversion back into a motion
// type goes through its validating constructor.
package model

import (
	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/num/quat"

	"github.com/motionlab/motion/motionplan"
	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/spatialmath"
	"github.com/motionlab/motion/trajectory"
	"github.com/motionlab/motion/utils"
)

// JointValues is the data form of referenceframe.JointValues.
type JointValues struct {
	Joints []string  `json:"joints"`
	Values []float64 `json:"values"`
}

// FromJointValues converts jv.
func FromJointValues(jv referenceframe.JointValues) JointValues {
	if jv.IsEmpty() {
		return JointValues{}
	}
	return JointValues{Joints: jv.JointSet().Names(), Values: jv.Values()}
}

// ToJointValues validates m and converts it.
func ToJointValues(m JointValues) (referenceframe.JointValues, error) {
	return referenceframe.NewJointValues(newJointSet(m.Joints), m.Values)
}

// newJointSet collapses repeated names, so a document listing a joint twice fails the value count
// checks of the constructors.
func newJointSet(names []string) *referenceframe.JointSet {
	return referenceframe.NewJointSet(names...)
}

// JointLimits is the data form of referenceframe.JointLimits. A null entry, or a missing array,
// means the joint has no such limit.
type JointLimits struct {
	Joints          []string   `json:"joints"`
	MaxVelocity     []*float64 `json:"max_velocity,omitempty"`
	MaxAcceleration []*float64 `json:"max_acceleration,omitempty"`
	MinPosition     []*float64 `json:"min_position,omitempty"`
	MaxPosition     []*float64 `json:"max_position,omitempty"`
}

func fromBounds(bounds []referenceframe.Bound) []*float64 {
	if lo.NoneBy(bounds, func(b referenceframe.Bound) bool { return b.Set }) {
		return nil
	}
	return lo.Map(bounds, func(b referenceframe.Bound, _ int) *float64 {
		if !b.Set {
			return nil
		}
		return lo.ToPtr(b.Value)
	})
}

func toBounds(values []*float64) []referenceframe.Bound {
	if values == nil {
		return nil
	}
	return lo.Map(values, func(v *float64, _ int) referenceframe.Bound {
		if v == nil {
			return referenceframe.NoBound
		}
		return referenceframe.NewBound(*v)
	})
}

// FromJointLimits converts limits.
func FromJointLimits(limits referenceframe.JointLimits) JointLimits {
	return JointLimits{
		Joints:          limits.JointSet().Names(),
		MaxVelocity:     fromBounds(limits.MaxVelocities()),
		MaxAcceleration: fromBounds(limits.MaxAccelerations()),
		MinPosition:     fromBounds(limits.MinPositions()),
		MaxPosition:     fromBounds(limits.MaxPositions()),
	}
}

// ToJointLimits validates m and converts it.
func ToJointLimits(m JointLimits) (referenceframe.JointLimits, error) {
	return referenceframe.NewJointLimits(newJointSet(m.Joints),
		toBounds(m.MaxVelocity), toBounds(m.MaxAcceleration), toBounds(m.MinPosition), toBounds(m.MaxPosition))
}

// JointPath is the data form of referenceframe.JointPath. Each point lists one value per joint.
type JointPath struct {
	Joints []string    `json:"joints"`
	Points [][]float64 `json:"points"`
}

// FromJointPath converts path.
func FromJointPath(path *referenceframe.JointPath) JointPath {
	return JointPath{
		Joints: path.JointSet().Names(),
		Points: lo.Map(path.Points(), func(v referenceframe.JointValues, _ int) []float64 { return v.Values() }),
	}
}

// ToJointPath validates m and converts it.
func ToJointPath(m JointPath) (*referenceframe.JointPath, error) {
	js := newJointSet(m.Joints)
	points := make([]referenceframe.JointValues, len(m.Points))
	for i, p := range m.Points {
		v, err := referenceframe.NewJointValues(js, p)
		if err != nil {
			return nil, err
		}
		points[i] = v
	}
	return referenceframe.NewJointPath(js, points...)
}

// Vector is a 3D vector.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is a rotation quaternion.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pose is the data form of spatialmath.Pose. An empty frame is the world frame.
type Pose struct {
	Frame       string     `json:"frame,omitempty"`
	Translation Vector     `json:"translation"`
	Rotation    Quaternion `json:"rotation"`
}

// FromPose converts p.
func FromPose(p spatialmath.Pose) Pose {
	t, q := p.Translation(), p.Rotation()
	return Pose{
		Frame:       p.Frame(),
		Translation: Vector{X: t.X, Y: t.Y, Z: t.Z},
		Rotation:    Quaternion{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag},
	}
}

// ToPose converts m. The rotation is stored as given.
func ToPose(m Pose) spatialmath.Pose {
	return spatialmath.NewPose(
		r3.Vector{X: m.Translation.X, Y: m.Translation.Y, Z: m.Translation.Z},
		quat.Number{Real: m.Rotation.W, Imag: m.Rotation.X, Jmag: m.Rotation.Y, Kmag: m.Rotation.Z},
		spatialmath.InFrame(m.Frame),
	)
}

// CartesianPath is the data form of spatialmath.CartesianPath.
type CartesianPath struct {
	Poses []Pose `json:"poses"`
}

// FromCartesianPath converts path.
func FromCartesianPath(path *spatialmath.CartesianPath) CartesianPath {
	return CartesianPath{Poses: lo.Map(path.Points(), func(p spatialmath.Pose, _ int) Pose { return FromPose(p) })}
}

// ToCartesianPath converts m.
func ToCartesianPath(m CartesianPath) *spatialmath.CartesianPath {
	return spatialmath.NewCartesianPath(lo.Map(m.Poses, func(p Pose, _ int) spatialmath.Pose { return ToPose(p) })...)
}

// Twist is the data form of spatialmath.Twist.
type Twist struct {
	Frame   string `json:"frame,omitempty"`
	Linear  Vector `json:"linear"`
	Angular Vector `json:"angular"`
}

// FromTwist converts t.
func FromTwist(t spatialmath.Twist) Twist {
	return Twist{
		Frame:   t.Frame,
		Linear:  Vector{X: t.Linear.X, Y: t.Linear.Y, Z: t.Linear.Z},
		Angular: Vector{X: t.Angular.X, Y: t.Angular.Y, Z: t.Angular.Z},
	}
}

// JointTrajectoryPoint is the data form of a trajectory point. Values are ordered like the joints
// of the enclosing trajectory; absent channels are omitted.
type JointTrajectoryPoint struct {
	TimeFromStart float64   `json:"time_from_start"`
	Positions     []float64 `json:"positions"`
	Velocities    []float64 `json:"velocities,omitempty"`
	Accelerations []float64 `json:"accelerations,omitempty"`
	Efforts       []float64 `json:"efforts,omitempty"`
}

// JointTrajectory is the data form of trajectory.JointTrajectory. Times are in seconds. A missing
// is_valid means valid.
type JointTrajectory struct {
	Joints  []string               `json:"joints"`
	IsValid *bool                  `json:"is_valid,omitempty"`
	Points  []JointTrajectoryPoint `json:"points"`
}

// FromJointTrajectoryPoint converts p.
func FromJointTrajectoryPoint(p trajectory.JointTrajectoryPoint) JointTrajectoryPoint {
	m := JointTrajectoryPoint{TimeFromStart: p.TimeFromStart().Seconds(), Positions: p.Positions().Values()}
	if v, ok := p.Velocities(); ok {
		m.Velocities = v.Values()
	}
	if a, ok := p.Accelerations(); ok {
		m.Accelerations = a.Values()
	}
	if e, ok := p.Efforts(); ok {
		m.Efforts = e.Values()
	}
	return m
}

// ToJointTrajectoryPoint validates m against the joints of js and converts it.
func ToJointTrajectoryPoint(js *referenceframe.JointSet, m JointTrajectoryPoint) (trajectory.JointTrajectoryPoint, error) {
	positions, err := referenceframe.NewJointValues(js, m.Positions)
	if err != nil {
		return trajectory.JointTrajectoryPoint{}, err
	}
	var opts []trajectory.PointOption
	for _, ch := range []struct {
		values []float64
		opt    func(referenceframe.JointValues) trajectory.PointOption
	}{
		{m.Velocities, trajectory.WithVelocities},
		{m.Accelerations, trajectory.WithAccelerations},
		{m.Efforts, trajectory.WithEfforts},
	} {
		if ch.values == nil {
			continue
		}
		v, err := referenceframe.NewJointValues(js, ch.values)
		if err != nil {
			return trajectory.JointTrajectoryPoint{}, err
		}
		opts = append(opts, ch.opt(v))
	}
	timeFromStart, err := utils.SecondsToDuration(m.TimeFromStart)
	if err != nil {
		return trajectory.JointTrajectoryPoint{}, err
	}
	return trajectory.NewJointTrajectoryPoint(timeFromStart, positions, opts...)
}

// FromJointTrajectory converts traj.
func FromJointTrajectory(traj *trajectory.JointTrajectory) JointTrajectory {
	m := JointTrajectory{
		Joints: traj.JointSet().Names(),
		Points: lo.Map(traj.Points(), func(p trajectory.JointTrajectoryPoint, _ int) JointTrajectoryPoint {
			return FromJointTrajectoryPoint(p)
		}),
	}
	if !traj.IsValid() {
		m.IsValid = lo.ToPtr(false)
	}
	return m
}

// ToJointTrajectory validates m and converts it.
func ToJointTrajectory(m JointTrajectory) (*trajectory.JointTrajectory, error) {
	js := newJointSet(m.Joints)
	points := make([]trajectory.JointTrajectoryPoint, len(m.Points))
	for i, pm := range m.Points {
		p, err := ToJointTrajectoryPoint(js, pm)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return trajectory.NewJointTrajectory(js, points, trajectory.WithValidity(m.IsValid == nil || *m.IsValid))
}

// PlanParameters is the data form of motionplan.PlanParameters. Fields left out of a document
// take their default values.
type PlanParameters struct {
	Joints           []string  `json:"joints,omitempty"`
	MaxVelocity      []float64 `json:"max_velocity"`
	MaxAcceleration  []float64 `json:"max_acceleration"`
	SampleResolution *float64  `json:"sample_resolution,omitempty"`
	CollisionCheck   *bool     `json:"collision_check,omitempty"`
	MaxDeviation     *float64  `json:"max_deviation,omitempty"`
}

// FromPlanParameters converts p.
func FromPlanParameters(p *motionplan.PlanParameters) PlanParameters {
	m := PlanParameters{
		MaxVelocity:      p.MaxVelocity(),
		MaxAcceleration:  p.MaxAcceleration(),
		SampleResolution: lo.ToPtr(p.SampleResolution()),
		CollisionCheck:   lo.ToPtr(p.CollisionCheck()),
		MaxDeviation:     lo.ToPtr(p.MaxDeviation()),
	}
	if js := p.JointSet(); js != nil {
		m.Joints = js.Names()
	}
	return m
}

// ToPlanParameters validates m and converts it.
func ToPlanParameters(m PlanParameters) (*motionplan.PlanParameters, error) {
	b := motionplan.NewPlanParametersBuilder()
	if m.Joints != nil {
		b.JointSet = newJointSet(m.Joints)
	}
	b.MaxVelocity = m.MaxVelocity
	b.MaxAcceleration = m.MaxAcceleration
	b.SampleResolution = lo.FromPtrOr(m.SampleResolution, b.SampleResolution)
	b.CollisionCheck = lo.FromPtrOr(m.CollisionCheck, b.CollisionCheck)
	b.MaxDeviation = lo.FromPtrOr(m.MaxDeviation, b.MaxDeviation)
	return b.Build()
}

// TaskSpacePlanParameters is the data form of motionplan.TaskSpacePlanParameters. Fields left out
// of a document take their default values.
type TaskSpacePlanParameters struct {
	EndEffectorName        string   `json:"end_effector_name,omitempty"`
	MaxXYZVelocity         *float64 `json:"max_xyz_velocity,omitempty"`
	MaxXYZAcceleration     *float64 `json:"max_xyz_acceleration,omitempty"`
	MaxAngularVelocity     *float64 `json:"max_angular_velocity,omitempty"`
	MaxAngularAcceleration *float64 `json:"max_angular_acceleration,omitempty"`
	SampleResolution       *float64 `json:"sample_resolution,omitempty"`
	CollisionCheck         *bool    `json:"collision_check,omitempty"`
	MaxDeviation           *float64 `json:"max_deviation,omitempty"`
	IkJumpThreshold        *float64 `json:"ik_jump_threshold,omitempty"`
}

// FromTaskSpacePlanParameters converts p.
func FromTaskSpacePlanParameters(p *motionplan.TaskSpacePlanParameters) TaskSpacePlanParameters {
	return TaskSpacePlanParameters{
		EndEffectorName:        p.EndEffectorName(),
		MaxXYZVelocity:         lo.ToPtr(p.MaxXYZVelocity()),
		MaxXYZAcceleration:     lo.ToPtr(p.MaxXYZAcceleration()),
		MaxAngularVelocity:     lo.ToPtr(p.MaxAngularVelocity()),
		MaxAngularAcceleration: lo.ToPtr(p.MaxAngularAcceleration()),
		SampleResolution:       lo.ToPtr(p.SampleResolution()),
		CollisionCheck:         lo.ToPtr(p.CollisionCheck()),
		MaxDeviation:           lo.ToPtr(p.MaxDeviation()),
		IkJumpThreshold:        lo.ToPtr(p.IkJumpThreshold()),
	}
}

// ToTaskSpacePlanParameters validates m and converts it.
func ToTaskSpacePlanParameters(m TaskSpacePlanParameters) (*motionplan.TaskSpacePlanParameters, error) {
	b := motionplan.NewTaskSpacePlanParametersBuilder()
	b.EndEffectorName = m.EndEffectorName
	b.MaxXYZVelocity = lo.FromPtrOr(m.MaxXYZVelocity, b.MaxXYZVelocity)
	b.MaxXYZAcceleration = lo.FromPtrOr(m.MaxXYZAcceleration, b.MaxXYZAcceleration)
	b.MaxAngularVelocity = lo.FromPtrOr(m.MaxAngularVelocity, b.MaxAngularVelocity)
	b.MaxAngularAcceleration = lo.FromPtrOr(m.MaxAngularAcceleration, b.MaxAngularAcceleration)
	b.SampleResolution = lo.FromPtrOr(m.SampleResolution, b.SampleResolution)
	b.CollisionCheck = lo.FromPtrOr(m.CollisionCheck, b.CollisionCheck)
	b.MaxDeviation = lo.FromPtrOr(m.MaxDeviation, b.MaxDeviation)
	b.IkJumpThreshold = lo.FromPtrOr(m.IkJumpThreshold, b.IkJumpThreshold)
	return b.Build()
}
