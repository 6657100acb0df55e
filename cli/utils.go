package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/motionlab/motion/motionplan/model"
	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/spatialmath"
	"github.com/motionlab/motion/trajectory"
)

// printf writes a formatted line to w.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// writeResult writes v as JSON to the out file when one is given and to w otherwise.
func writeResult(w io.Writer, out string, v interface{}) error {
	if out != "" {
		return model.WriteFile(out, v)
	}
	data, err := model.Marshal(v)
	if err != nil {
		return err
	}
	printf(w, "%s", data)
	return nil
}

func loadJointTrajectory(path string) (*trajectory.JointTrajectory, error) {
	var m model.JointTrajectory
	if err := model.ReadFile(path, &m); err != nil {
		return nil, err
	}
	traj, err := model.ToJointTrajectory(m)
	return traj, errors.Wrapf(err, "invalid trajectory in %q", path)
}

func loadJointPath(path string) (*referenceframe.JointPath, error) {
	var m model.JointPath
	if err := model.ReadFile(path, &m); err != nil {
		return nil, err
	}
	jp, err := model.ToJointPath(m)
	return jp, errors.Wrapf(err, "invalid joint path in %q", path)
}

func loadJointLimits(path string) (referenceframe.JointLimits, error) {
	var m model.JointLimits
	if err := model.ReadFile(path, &m); err != nil {
		return referenceframe.JointLimits{}, err
	}
	limits, err := model.ToJointLimits(m)
	return limits, errors.Wrapf(err, "invalid joint limits in %q", path)
}

func loadPose(path string) (spatialmath.Pose, error) {
	var m model.Pose
	if err := model.ReadFile(path, &m); err != nil {
		return spatialmath.Pose{}, err
	}
	return model.ToPose(m), nil
}
