// Package trajectory holds time parameterized joint motions: trajectory points, trajectories,
// and the interpolation and merge operations used to sample and combine them.
package trajectory

import (
	"iter"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/utils"
)

// JointTrajectory is an ordered sequence of points over one joint set with non-decreasing
// TimeFromStart. It is immutable; every operation returns a new trajectory.
type JointTrajectory struct {
	jointSet        *referenceframe.JointSet
	points          []JointTrajectoryPoint
	isValid         bool
	hasVelocity     bool
	hasAcceleration bool
	hasEffort       bool
}

type trajectoryOptions struct {
	valid bool
}

// Option configures NewJointTrajectory.
type Option func(*trajectoryOptions)

// WithValidity marks the trajectory as valid or invalid. Trajectories are valid by default; a
// planner that produced a trajectory it could not verify marks it invalid.
func WithValidity(valid bool) Option {
	return func(o *trajectoryOptions) {
		o.valid = valid
	}
}

// NewJointTrajectory returns a trajectory over js. Points on a joint set similar to js are
// reordered; any other joint set is rejected, as is a point earlier than its predecessor.
func NewJointTrajectory(
	js *referenceframe.JointSet,
	points []JointTrajectoryPoint,
	opts ...Option,
) (*JointTrajectory, error) {
	o := trajectoryOptions{valid: true}
	for _, opt := range opts {
		opt(&o)
	}
	return newJointTrajectory(js, points, o.valid)
}

func newJointTrajectory(js *referenceframe.JointSet, points []JointTrajectoryPoint, valid bool) (*JointTrajectory, error) {
	if js == nil {
		return nil, referenceframe.NewNilJointSetError()
	}
	traj := &JointTrajectory{
		jointSet:        js,
		points:          make([]JointTrajectoryPoint, len(points)),
		isValid:         valid,
		hasVelocity:     len(points) > 0,
		hasAcceleration: len(points) > 0,
		hasEffort:       len(points) > 0,
	}
	for i, p := range points {
		if p.positions.IsEmpty() {
			return nil, utils.NewInvariantError("trajectory point %d has no positions", i)
		}
		if i > 0 && p.timeFromStart < points[i-1].timeFromStart {
			return nil, utils.NewInvariantError("trajectory point %d at %v is earlier than point %d at %v",
				i, p.timeFromStart, i-1, points[i-1].timeFromStart)
		}
		reordered, err := p.Reorder(js)
		if err != nil {
			return nil, err
		}
		traj.points[i] = reordered
		_, hasVel := reordered.Velocities()
		_, hasAcc := reordered.Accelerations()
		_, hasEff := reordered.Efforts()
		traj.hasVelocity = traj.hasVelocity && hasVel
		traj.hasAcceleration = traj.hasAcceleration && hasAcc
		traj.hasEffort = traj.hasEffort && hasEff
	}
	return traj, nil
}

// JointSet returns the joint set of every point.
func (t *JointTrajectory) JointSet() *referenceframe.JointSet {
	return t.jointSet
}

// Count returns the number of points.
func (t *JointTrajectory) Count() int {
	return len(t.points)
}

// At returns the point at index i.
func (t *JointTrajectory) At(i int) JointTrajectoryPoint {
	return t.points[i]
}

// Points returns a copy of the points.
func (t *JointTrajectory) Points() []JointTrajectoryPoint {
	return append([]JointTrajectoryPoint(nil), t.points...)
}

// All iterates over the index and value of every point.
func (t *JointTrajectory) All() iter.Seq2[int, JointTrajectoryPoint] {
	return func(yield func(int, JointTrajectoryPoint) bool) {
		for i, p := range t.points {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Duration returns the TimeFromStart of the last point, or 0 for an empty trajectory.
func (t *JointTrajectory) Duration() time.Duration {
	if len(t.points) == 0 {
		return 0
	}
	return t.points[len(t.points)-1].timeFromStart
}

// IsValid reports whether the producer of the trajectory considered it executable.
func (t *JointTrajectory) IsValid() bool {
	return t.isValid
}

// HasVelocity reports whether every point carries velocities.
func (t *JointTrajectory) HasVelocity() bool {
	return t.hasVelocity
}

// HasAcceleration reports whether every point carries accelerations.
func (t *JointTrajectory) HasAcceleration() bool {
	return t.hasAcceleration
}

// HasEffort reports whether every point carries efforts.
func (t *JointTrajectory) HasEffort() bool {
	return t.hasEffort
}

// Append returns a new trajectory with points added after the last point. The incoming points
// are shifted by the duration of t.
func (t *JointTrajectory) Append(points ...JointTrajectoryPoint) (*JointTrajectory, error) {
	offset := t.Duration()
	combined := make([]JointTrajectoryPoint, 0, len(t.points)+len(points))
	combined = append(combined, t.points...)
	for _, p := range points {
		combined = append(combined, p.AddTimeOffset(offset))
	}
	return newJointTrajectory(t.jointSet, combined, t.isValid)
}

// Prepend returns a new trajectory with points added before the first point. The existing points
// are shifted by the time of the last prepended point.
func (t *JointTrajectory) Prepend(points ...JointTrajectoryPoint) (*JointTrajectory, error) {
	if len(points) == 0 {
		return t, nil
	}
	offset := points[len(points)-1].timeFromStart
	combined := make([]JointTrajectoryPoint, 0, len(t.points)+len(points))
	combined = append(combined, points...)
	for _, p := range t.points {
		combined = append(combined, p.AddTimeOffset(offset))
	}
	return newJointTrajectory(t.jointSet, combined, t.isValid)
}

// Concat returns a new trajectory running t and then other. The result is valid only if both are.
func (t *JointTrajectory) Concat(other *JointTrajectory) (*JointTrajectory, error) {
	appended, err := t.Append(other.points...)
	if err != nil {
		return nil, err
	}
	appended.isValid = t.isValid && other.isValid
	return appended, nil
}

// Sub returns the points in the half-open index range [start, end). Times are kept as they are.
func (t *JointTrajectory) Sub(start, end int) (*JointTrajectory, error) {
	if start < 0 || end < start || end > len(t.points) {
		return nil, utils.NewIndexRangeError(start, end, len(t.points))
	}
	return newJointTrajectory(t.jointSet, t.points[start:end], t.isValid)
}

// Transform returns a new trajectory holding fn applied to every point. The validity flag is
// preserved and the results are validated like any other trajectory.
func (t *JointTrajectory) Transform(fn func(index int, p JointTrajectoryPoint) JointTrajectoryPoint) (*JointTrajectory, error) {
	transformed := make([]JointTrajectoryPoint, len(t.points))
	for i, p := range t.points {
		transformed[i] = fn(i, p)
	}
	return newJointTrajectory(t.jointSet, transformed, t.isValid)
}

// Reorder returns the trajectory laid out in the order of js, which must be similar to the
// current joint set.
func (t *JointTrajectory) Reorder(js *referenceframe.JointSet) (*JointTrajectory, error) {
	if !t.jointSet.IsSimilar(js) {
		return nil, referenceframe.NewJointSetMismatchError(t.jointSet, js)
	}
	return newJointTrajectory(js, t.points, t.isValid)
}

// ToJointPath returns the positions of every point, dropping timing and derivatives.
func (t *JointTrajectory) ToJointPath() (*referenceframe.JointPath, error) {
	positions := lo.Map(t.points, func(p JointTrajectoryPoint, _ int) referenceframe.JointValues {
		return p.positions
	})
	return referenceframe.NewJointPath(t.jointSet, positions...)
}

// EvaluateAt samples the trajectory at simulatedTime for a trajectory started delay after the
// simulation origin. The bracketing pair of points is interpolated with InterpolateCubic, which
// clamps the segment time τ to [0, dt]. Times before the start hold the first point and times past
// the end hold the last point, velocity included, with no extrapolation. The result is stamped
// with simulatedTime.
func (t *JointTrajectory) EvaluateAt(simulatedTime, delay time.Duration) (JointTrajectoryPoint, error) {
	n := len(t.points)
	if n == 0 {
		return JointTrajectoryPoint{}, utils.NewInvariantError("cannot evaluate an empty trajectory")
	}
	if n == 1 {
		return t.points[0].WithTimeFromStart(simulatedTime), nil
	}
	effective := max(simulatedTime-delay, 0)
	idx := sort.Search(n, func(i int) bool {
		return t.points[i].timeFromStart >= effective
	})
	hi := min(max(idx, 1), n-1)
	p, err := t.points[hi-1].InterpolateCubic(t.points[hi], effective)
	if err != nil {
		return JointTrajectoryPoint{}, err
	}
	return p.WithTimeFromStart(simulatedTime), nil
}

// Merge resamples t started after delayA and other started after delayB onto a common time base
// and returns one trajectory over the union of their joint sets. The merged duration covers both
// delayed trajectories and the number of samples is the larger of the two point counts. Where the
// joint sets overlap the values of t win.
func (t *JointTrajectory) Merge(other *JointTrajectory, delayA, delayB time.Duration) (*JointTrajectory, error) {
	if len(t.points) == 0 || len(other.points) == 0 {
		return nil, utils.NewInvariantError("cannot merge an empty trajectory")
	}
	duration := max(t.Duration()+delayA, other.Duration()+delayB)
	samples := max(len(t.points), len(other.points))
	switch {
	case duration <= 0:
		samples = 1
	case samples == 1:
		samples = 2
	}

	points := make([]JointTrajectoryPoint, samples)
	for i := range points {
		at := time.Duration(0)
		if samples > 1 {
			at = time.Duration(float64(duration) * float64(i) / float64(samples-1))
		}
		if i == samples-1 {
			at = max(duration, 0)
		}
		a, err := t.EvaluateAt(at, delayA)
		if err != nil {
			return nil, err
		}
		b, err := other.EvaluateAt(at, delayB)
		if err != nil {
			return nil, err
		}
		if points[i], err = a.Merge(b); err != nil {
			return nil, err
		}
	}
	return newJointTrajectory(referenceframe.CombineJointSets(t.jointSet, other.jointSet), points, t.isValid && other.isValid)
}

// VelocityViolation describes a sample whose velocity exceeds a joint's velocity limit.
type VelocityViolation struct {
	Index    int
	Joint    string
	Velocity float64
	Limit    float64
}

// MaxVelocityViolation returns the first sample velocity whose magnitude exceeds a set velocity
// limit. Joints absent from limits and points without velocities are not checked.
func (t *JointTrajectory) MaxVelocityViolation(limits referenceframe.JointLimits) (VelocityViolation, bool) {
	limitSet := limits.JointSet()
	for i, p := range t.points {
		vel, ok := p.Velocities()
		if !ok {
			continue
		}
		for j, name := range t.jointSet.Names() {
			k, ok := limitSet.TryGetIndexOf(name)
			if !ok {
				continue
			}
			bound := limits.MaxVelocity(k)
			if v := vel.At(j); bound.Set && (v > bound.Value || -v > bound.Value) {
				return VelocityViolation{Index: i, Joint: name, Velocity: v, Limit: bound.Value}, true
			}
		}
	}
	return VelocityViolation{}, false
}
