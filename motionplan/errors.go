package motionplan

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/utils"
)

// ErrNoIKSolution is the cause of errors from NewIKError.
var ErrNoIKSolution = errors.New("unable to solve for position")

// NewIKError is returned when inverse kinematics found no solution for pose.
func NewIKError(pose fmt.Stringer) error {
	return errors.Wrapf(ErrNoIKSolution, "pose %v", pose)
}

// NewPlannerFailedError wraps the failure of a delegated planner.
func NewPlannerFailedError(err error) error {
	return errors.Wrap(err, "motion planner failed to find path")
}

// NewScaleFactorError is returned when a limit scale factor is outside (0, 1].
func NewScaleFactorError(kind string, factor float64) error {
	return utils.NewOutOfRangeError("%s scale factor %g must be in (0, 1]", kind, factor)
}

// NewLimitCountError is returned when a per joint limit array does not have one entry per joint.
func NewLimitCountError(kind string, actual int, js *referenceframe.JointSet) error {
	return utils.NewInvariantError("%s has %d entries for joint set %v of %d joints", kind, actual, js, js.Count())
}

// NewMissingVelocityLimitError is returned when limits cannot provide a velocity bound for a joint.
func NewMissingVelocityLimitError(joint string) error {
	return utils.NewInvariantError("joint %q has no velocity limit", joint)
}

// NewMissingAccelerationLimitError is returned when limits cannot provide an acceleration bound
// for a joint.
func NewMissingAccelerationLimitError(joint string) error {
	return utils.NewInvariantError("joint %q has no acceleration limit", joint)
}
