package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/motionlab/motion/motionplan"
	"github.com/motionlab/motion/motionplan/model"
	"github.com/motionlab/motion/spatialmath"
	"github.com/motionlab/motion/utils"
)

// ValidateAction loads every given file and reports a summary of each.
func ValidateAction(c *cli.Context) error {
	env, err := newCommandEnv(c)
	if err != nil {
		return err
	}
	if !c.IsSet(trajectoryFlag) && !c.IsSet(parametersFlag) && !c.IsSet(taskParametersFlag) {
		return errors.Errorf("at least one of --%s, --%s or --%s is required", trajectoryFlag, parametersFlag, taskParametersFlag)
	}

	if path := c.Path(trajectoryFlag); path != "" {
		traj, err := loadJointTrajectory(path)
		if err != nil {
			return err
		}
		env.logger.Debugw("loaded trajectory", "path", path, "points", traj.Count())
		printf(c.App.Writer, "trajectory: %d points over %s, joints [%s], valid %t, velocities %t, accelerations %t, efforts %t",
			traj.Count(), traj.Duration(), strings.Join(traj.JointSet().Names(), ", "),
			traj.IsValid(), traj.HasVelocity(), traj.HasAcceleration(), traj.HasEffort())

		if limitsPath := c.Path(limitsFlag); limitsPath != "" {
			limits, err := loadJointLimits(limitsPath)
			if err != nil {
				return err
			}
			if v, found := traj.MaxVelocityViolation(limits); found {
				printf(c.App.Writer, "velocity limit exceeded at point %d: joint %s moves at %g, limit %g",
					v.Index, v.Joint, v.Velocity, v.Limit)
			} else {
				printf(c.App.Writer, "velocities within limits")
			}
		}
	}

	if path := c.Path(parametersFlag); path != "" {
		var m model.PlanParameters
		if err := model.ReadFile(path, &m); err != nil {
			return err
		}
		params, err := model.ToPlanParameters(m)
		if err != nil {
			return errors.Wrapf(err, "invalid plan parameters in %q", path)
		}
		printf(c.App.Writer, "parameters: %d joints, sample resolution %g", len(params.MaxVelocity()), params.SampleResolution())
	}

	if path := c.Path(taskParametersFlag); path != "" {
		var m model.TaskSpacePlanParameters
		if err := model.ReadFile(path, &m); err != nil {
			return err
		}
		params, err := model.ToTaskSpacePlanParameters(m)
		if err != nil {
			return errors.Wrapf(err, "invalid task space plan parameters in %q", path)
		}
		printf(c.App.Writer, "task parameters: max xyz velocity %g, max angular velocity %g",
			params.MaxXYZVelocity(), params.MaxAngularVelocity())
	}
	return nil
}

// evaluatedPoint is a single trajectory sample together with the joints it is ordered by.
type evaluatedPoint struct {
	Joints []string `json:"joints"`
	model.JointTrajectoryPoint
}

// EvaluateAction samples a trajectory at --time after it starts with --delay.
func EvaluateAction(c *cli.Context) error {
	env, err := newCommandEnv(c)
	if err != nil {
		return err
	}
	traj, err := loadJointTrajectory(c.Path(trajectoryFlag))
	if err != nil {
		return err
	}
	at, err := utils.SecondsToDuration(c.Float64(timeFlag))
	if err != nil {
		return err
	}
	delay, err := utils.SecondsToDuration(env.delay(c, delayFlag))
	if err != nil {
		return err
	}
	env.logger.CDebugw(env.ctx, "evaluating trajectory", "time", at, "delay", delay)

	p, err := traj.EvaluateAt(at, delay)
	if err != nil {
		return err
	}
	return writeResult(c.App.Writer, "", evaluatedPoint{
		Joints:               traj.JointSet().Names(),
		JointTrajectoryPoint: model.FromJointTrajectoryPoint(p),
	})
}

// MergeAction combines the trajectories --a and --b, each started after its own delay.
func MergeAction(c *cli.Context) error {
	env, err := newCommandEnv(c)
	if err != nil {
		return err
	}
	a, err := loadJointTrajectory(c.Path(aFlag))
	if err != nil {
		return err
	}
	b, err := loadJointTrajectory(c.Path(bFlag))
	if err != nil {
		return err
	}
	delayA, err := utils.SecondsToDuration(env.delay(c, delayAFlag))
	if err != nil {
		return err
	}
	delayB, err := utils.SecondsToDuration(env.delay(c, delayBFlag))
	if err != nil {
		return err
	}
	merged, err := a.Merge(b, delayA, delayB)
	if err != nil {
		return err
	}
	env.logger.CDebugw(env.ctx, "merged trajectories",
		"points", merged.Count(), "duration", merged.Duration(), "valid", merged.IsValid())
	return writeResult(c.App.Writer, c.Path(outFlag), model.FromJointTrajectory(merged))
}

// PlanAction runs the linear planner over --path with the given parameters and optional limits.
func PlanAction(c *cli.Context) error {
	env, err := newCommandEnv(c)
	if err != nil {
		return err
	}
	path, err := loadJointPath(c.Path(pathFlag))
	if err != nil {
		return err
	}
	var pm model.PlanParameters
	if err := model.ReadFile(c.Path(parametersFlag), &pm); err != nil {
		return err
	}
	params, err := model.ToPlanParameters(pm)
	if err != nil {
		return errors.Wrapf(err, "invalid plan parameters in %q", c.Path(parametersFlag))
	}

	var opts []motionplan.CheckedPlannerOption
	if limitsPath := c.Path(limitsFlag); limitsPath != "" {
		limits, err := loadJointLimits(limitsPath)
		if err != nil {
			return err
		}
		opts = append(opts, motionplan.WithJointLimits(limits))
	}
	if env.conf.StartTolerance != nil {
		opts = append(opts, motionplan.WithStartTolerance(*env.conf.StartTolerance))
	}
	planner := motionplan.NewCheckedPlanner(motionplan.NewLinearPlanner(env.plannerLogger), env.plannerLogger, opts...)

	req, err := motionplan.NewPlanRequest(path, params)
	if err != nil {
		return err
	}
	traj, err := planner.PlanJointPath(env.ctx, req)
	if err != nil {
		return err
	}
	if !traj.IsValid() {
		env.logger.Warnw("planned trajectory is marked invalid", "execution_id", req.ExecutionID)
	}
	return writeResult(c.App.Writer, c.Path(outFlag), model.FromJointTrajectory(traj))
}

// TwistAction prints the twist moving the --from pose onto the --to pose.
func TwistAction(c *cli.Context) error {
	if _, err := newCommandEnv(c); err != nil {
		return err
	}
	from, err := loadPose(c.Path(fromFlag))
	if err != nil {
		return err
	}
	to, err := loadPose(c.Path(toFlag))
	if err != nil {
		return err
	}
	twist, err := spatialmath.CalculateTwist(from, to)
	if err != nil {
		return err
	}
	if c.IsSet(durationFlag) {
		dt, err := utils.SecondsToDuration(c.Float64(durationFlag))
		if err != nil {
			return err
		}
		if twist, err = twist.Velocity(dt); err != nil {
			return err
		}
	}
	return writeResult(c.App.Writer, "", model.FromTwist(twist))
}
