package referenceframe

import (
	"github.com/motionlab/motion/utils"
)

// NewMissingJointError is returned when a joint name is not part of a JointSet.
func NewMissingJointError(name string) error {
	return utils.NewNotFoundError("joint %q", name)
}

// NewIncorrectDoFError is returned when a value count does not match the number of joints.
func NewIncorrectDoFError(actual, expected int) error {
	return utils.NewInvariantError("number of values (%d) does not match number of joints (%d)", actual, expected)
}

// NewJointSetMismatchError is returned when two joint sets were required to be equal or similar.
func NewJointSetMismatchError(expected, actual *JointSet) error {
	return utils.NewInvariantError("joint set %v does not match %v", actual, expected)
}

// NewNilJointSetError is returned when a constructor is handed a nil JointSet.
func NewNilJointSetError() error {
	return utils.NewInvariantError("joint set is nil")
}

// NewMissingPositionLimitError is returned when sampling needs a position limit that is not set.
func NewMissingPositionLimitError(name string) error {
	return utils.NewInvariantError("joint %q has no min/max position limit", name)
}

// NewInvalidLimitError is returned when a lower bound exceeds its upper bound.
func NewInvalidLimitError(name string, lo, hi float64) error {
	return utils.NewInvariantError("joint %q min position %g exceeds max position %g", name, lo, hi)
}
