package motionplan

import (
	"context"

	"github.com/motionlab/motion/logging"
	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/trajectory"
	"github.com/motionlab/motion/utils"
)

// defaultStartTolerance is how far, in radians, a planned trajectory may start from the first
// path point.
const defaultStartTolerance = 1e-6

// CheckedPlanner validates requests before handing them to another Planner and validates what
// that planner returns. Trajectories exceeding the configured velocity limits are returned
// marked invalid rather than dropped.
type CheckedPlanner struct {
	inner          Planner
	logger         logging.Logger
	limits         *referenceframe.JointLimits
	startTolerance float64
}

// CheckedPlannerOption configures a CheckedPlanner.
type CheckedPlannerOption func(*CheckedPlanner)

// WithJointLimits makes the planner reject waypoints outside the position limits and mark
// trajectories exceeding the velocity limits invalid.
func WithJointLimits(limits referenceframe.JointLimits) CheckedPlannerOption {
	return func(cp *CheckedPlanner) {
		cp.limits = &limits
	}
}

// WithStartTolerance sets how far a planned trajectory may start from the requested start.
func WithStartTolerance(tol float64) CheckedPlannerOption {
	return func(cp *CheckedPlanner) {
		cp.startTolerance = tol
	}
}

// NewCheckedPlanner wraps inner.
func NewCheckedPlanner(inner Planner, logger logging.Logger, opts ...CheckedPlannerOption) *CheckedPlanner {
	cp := &CheckedPlanner{inner: inner, logger: logger, startTolerance: defaultStartTolerance}
	for _, opt := range opts {
		opt(cp)
	}
	return cp
}

// PlanJointPath implements Planner.
func (cp *CheckedPlanner) PlanJointPath(ctx context.Context, req PlanRequest) (*trajectory.JointTrajectory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if cp.limits != nil {
		for i, waypoint := range req.Path.All() {
			inside, err := cp.limits.IsInside(waypoint)
			if err != nil {
				return nil, err
			}
			if !inside {
				return nil, utils.NewOutOfRangeError("waypoint %d %v is outside the joint position limits", i, waypoint)
			}
		}
	}
	cp.logger.CDebugw(ctx, "planning joint path", "execution_id", req.ExecutionID, "waypoints", req.Path.Count())

	traj, err := cp.inner.PlanJointPath(ctx, req)
	if err != nil {
		return nil, NewPlannerFailedError(err)
	}
	if err := cp.checkTrajectory(traj, req.Path.At(0)); err != nil {
		return nil, err
	}
	if cp.limits != nil {
		if v, found := traj.MaxVelocityViolation(*cp.limits); found {
			cp.logger.Warnw("planned trajectory exceeds velocity limit",
				"execution_id", req.ExecutionID, "index", v.Index, "joint", v.Joint, "velocity", v.Velocity, "limit", v.Limit)
			return trajectory.NewJointTrajectory(traj.JointSet(), traj.Points(), trajectory.WithValidity(false))
		}
	}
	cp.logger.CDebugw(ctx, "planned joint path", "execution_id", req.ExecutionID,
		"samples", traj.Count(), "duration", traj.Duration())
	return traj, nil
}

// PlanCartesianPath implements Planner.
func (cp *CheckedPlanner) PlanCartesianPath(ctx context.Context, req CartesianPlanRequest) (*trajectory.JointTrajectory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cp.logger.CDebugw(ctx, "planning cartesian path", "execution_id", req.ExecutionID, "poses", req.Path.Count())

	traj, err := cp.inner.PlanCartesianPath(ctx, req)
	if err != nil {
		return nil, NewPlannerFailedError(err)
	}
	if err := cp.checkTrajectory(traj, req.Seed); err != nil {
		return nil, err
	}
	return traj, nil
}

// InverseKinematics implements Planner. A result without any solution is returned together with
// an error wrapping ErrNoIKSolution.
func (cp *CheckedPlanner) InverseKinematics(ctx context.Context, req IKRequest) (IKResult, error) {
	if err := req.Validate(); err != nil {
		return IKResult{}, err
	}
	cp.logger.CDebugw(ctx, "solving inverse kinematics", "execution_id", req.ExecutionID, "pose", req.Pose)

	res, err := cp.inner.InverseKinematics(ctx, req)
	if err != nil {
		return IKResult{}, NewPlannerFailedError(err)
	}
	if res.Path != nil && !res.Path.JointSet().IsSimilar(req.Seed.JointSet()) {
		return IKResult{}, referenceframe.NewJointSetMismatchError(req.Seed.JointSet(), res.Path.JointSet())
	}
	if res.Path == nil || res.Path.Count() == 0 {
		return res, NewIKError(req.Pose)
	}
	if !res.Succeeded() {
		cp.logger.CDebugw(ctx, "inverse kinematics solutions reported errors", "execution_id", req.ExecutionID,
			"error_codes", res.ErrorCodes)
	}
	return res, nil
}

// checkTrajectory verifies that a planned trajectory covers the joints of start and begins there.
func (cp *CheckedPlanner) checkTrajectory(traj *trajectory.JointTrajectory, start referenceframe.JointValues) error {
	if traj == nil || traj.Count() == 0 {
		return utils.NewInvariantError("planner returned an empty trajectory")
	}
	if !traj.JointSet().IsSimilar(start.JointSet()) {
		return referenceframe.NewJointSetMismatchError(start.JointSet(), traj.JointSet())
	}
	first, err := traj.At(0).Positions().Reorder(start.JointSet())
	if err != nil {
		return err
	}
	if !first.AlmostEqual(start, cp.startTolerance) {
		return utils.NewInvariantError("planned trajectory starts at %v instead of %v", first, start)
	}
	return nil
}
