package motionplan

import (
	"context"
	"math"
	"time"

	"github.com/motionlab/motion/logging"
	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/trajectory"
	"github.com/motionlab/motion/utils"
)

// LinearPlanner interpolates straight joint space lines between waypoints. Each segment lasts
// long enough for a rest to rest cubic to respect the velocity and acceleration limits of every
// joint, segments are subdivided so no joint moves more than the sample resolution between
// samples, and sample velocities are central differences. It performs no collision checking and
// cannot plan cartesian moves or solve inverse kinematics.
type LinearPlanner struct {
	logger logging.Logger
}

// NewLinearPlanner returns a LinearPlanner.
func NewLinearPlanner(logger logging.Logger) *LinearPlanner {
	return &LinearPlanner{logger: logger}
}

// PlanJointPath implements Planner.
func (lp *LinearPlanner) PlanJointPath(ctx context.Context, req PlanRequest) (*trajectory.JointTrajectory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	params := req.Parameters
	path := req.Path
	if js := params.JointSet(); js != nil {
		// limits are indexed in the order of the parameters
		var err error
		if path, err = referenceframe.NewJointPath(js, path.Points()...); err != nil {
			return nil, err
		}
	}
	if params.CollisionCheck() {
		lp.logger.CDebugw(ctx, "linear planner does not check collisions", "execution_id", req.ExecutionID)
	}

	times := []time.Duration{0}
	samples := []referenceframe.JointValues{path.At(0)}
	for i := 1; i < path.Count(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		from, to := path.At(i-1), path.At(i)
		delta, err := to.Subtract(from)
		if err != nil {
			return nil, err
		}
		duration := segmentDuration(delta, params)
		steps := max(1, int(math.Ceil(delta.MaxNorm()/params.SampleResolution())))
		start := times[len(times)-1]
		for s := 1; s <= steps; s++ {
			frac := float64(s) / float64(steps)
			sample, err := from.Add(delta.Scale(frac))
			if err != nil {
				return nil, err
			}
			offset, err := utils.SecondsToDuration(duration * frac)
			if err != nil {
				return nil, err
			}
			samples = append(samples, sample)
			times = append(times, start+offset)
		}
	}

	js := path.JointSet()
	points := make([]trajectory.JointTrajectoryPoint, len(samples))
	for i, sample := range samples {
		velocities := referenceframe.ZeroJointValues(js)
		if i > 0 && i < len(samples)-1 {
			if span := (times[i+1] - times[i-1]).Seconds(); span > 0 {
				diff, err := samples[i+1].Subtract(samples[i-1])
				if err != nil {
					return nil, err
				}
				velocities = diff.Scale(1 / span)
			}
		}
		p, err := trajectory.NewJointTrajectoryPoint(times[i], sample, trajectory.WithVelocities(velocities))
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	traj, err := trajectory.NewJointTrajectory(js, points)
	if err != nil {
		return nil, err
	}
	lp.logger.CDebugf(ctx, "linear planner produced %d samples over %v", traj.Count(), traj.Duration())
	return traj, nil
}

// segmentDuration returns the shortest duration, in seconds, of a rest to rest cubic covering
// delta within the limits of every joint. The peak velocity of such a cubic is 1.5 d/T and its
// peak acceleration 6 d/T².
func segmentDuration(delta referenceframe.JointValues, params *PlanParameters) float64 {
	maxVel, maxAcc := params.MaxVelocity(), params.MaxAcceleration()
	var duration float64
	for i := 0; i < delta.Len(); i++ {
		d := math.Abs(delta.At(i))
		duration = math.Max(duration, 1.5*d/maxVel[i])
		if len(maxAcc) > i {
			duration = math.Max(duration, math.Sqrt(6*d/maxAcc[i]))
		}
	}
	return duration
}

// PlanCartesianPath implements Planner.
func (lp *LinearPlanner) PlanCartesianPath(context.Context, CartesianPlanRequest) (*trajectory.JointTrajectory, error) {
	return nil, utils.NewUnimplementedError("PlanCartesianPath")
}

// InverseKinematics implements Planner.
func (lp *LinearPlanner) InverseKinematics(context.Context, IKRequest) (IKResult, error) {
	return IKResult{}, utils.NewUnimplementedError("InverseKinematics")
}
