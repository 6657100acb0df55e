// Package motionplan holds the parameters handed to motion planners, the planner interface the
// rest of the module programs against, and reference planners.
package motionplan

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionlab/motion/referenceframe"
	"github.com/motionlab/motion/spatialmath"
	"github.com/motionlab/motion/trajectory"
	"github.com/motionlab/motion/utils"
)

// Planner turns paths into executable trajectories and solves inverse kinematics. Collision
// checking and kinematics live behind this interface.
type Planner interface {
	// PlanJointPath time parameterizes a joint space path.
	PlanJointPath(ctx context.Context, req PlanRequest) (*trajectory.JointTrajectory, error)
	// PlanCartesianPath plans a joint trajectory moving an end effector through a cartesian path.
	PlanCartesianPath(ctx context.Context, req CartesianPlanRequest) (*trajectory.JointTrajectory, error)
	// InverseKinematics returns joint configurations reaching a pose.
	InverseKinematics(ctx context.Context, req IKRequest) (IKResult, error)
}

// PlanRequest asks for a joint space path to be time parameterized.
type PlanRequest struct {
	ExecutionID uuid.UUID
	Path        *referenceframe.JointPath
	Parameters  *PlanParameters
}

// NewPlanRequest returns a request with a fresh execution ID. The path must not be empty and the
// parameters must describe the joints of the path.
func NewPlanRequest(path *referenceframe.JointPath, params *PlanParameters) (PlanRequest, error) {
	req := PlanRequest{ExecutionID: uuid.New(), Path: path, Parameters: params}
	if err := req.Validate(); err != nil {
		return PlanRequest{}, err
	}
	return req, nil
}

// Validate checks that the request can be planned.
func (r PlanRequest) Validate() error {
	if r.Path == nil || r.Path.Count() == 0 {
		return utils.NewInvariantError("plan request %v has no path", r.ExecutionID)
	}
	if r.Parameters == nil {
		return utils.NewInvariantError("plan request %v has no parameters", r.ExecutionID)
	}
	js := r.Path.JointSet()
	if paramSet := r.Parameters.JointSet(); paramSet != nil {
		if !paramSet.IsSimilar(js) {
			return referenceframe.NewJointSetMismatchError(paramSet, js)
		}
		return nil
	}
	if n := len(r.Parameters.maxVelocity); n != js.Count() {
		return NewLimitCountError("max velocity", n, js)
	}
	return nil
}

// CartesianPlanRequest asks for a cartesian path to be followed starting from Seed.
type CartesianPlanRequest struct {
	ExecutionID uuid.UUID
	Seed        referenceframe.JointValues
	Path        *spatialmath.CartesianPath
	Parameters  *TaskSpacePlanParameters
}

// NewCartesianPlanRequest returns a request with a fresh execution ID.
func NewCartesianPlanRequest(
	seed referenceframe.JointValues,
	path *spatialmath.CartesianPath,
	params *TaskSpacePlanParameters,
) (CartesianPlanRequest, error) {
	req := CartesianPlanRequest{ExecutionID: uuid.New(), Seed: seed, Path: path, Parameters: params}
	if err := req.Validate(); err != nil {
		return CartesianPlanRequest{}, err
	}
	return req, nil
}

// Validate checks that the request can be planned.
func (r CartesianPlanRequest) Validate() error {
	switch {
	case r.Seed.IsEmpty():
		return utils.NewInvariantError("cartesian plan request %v has no seed", r.ExecutionID)
	case r.Path == nil || r.Path.Count() == 0:
		return utils.NewInvariantError("cartesian plan request %v has no path", r.ExecutionID)
	case r.Parameters == nil:
		return utils.NewInvariantError("cartesian plan request %v has no parameters", r.ExecutionID)
	}
	return nil
}

// IKRequest asks for joint configurations placing an end effector at Pose.
type IKRequest struct {
	ExecutionID     uuid.UUID
	Pose            spatialmath.Pose
	Seed            referenceframe.JointValues
	EndEffectorName string
	CollisionCheck  bool
	MaxSolutions    int
}

// Validate checks that the request can be solved.
func (r IKRequest) Validate() error {
	if r.Seed.IsEmpty() {
		return utils.NewInvariantError("ik request %v has no seed", r.ExecutionID)
	}
	if r.MaxSolutions < 0 {
		return utils.NewOutOfRangeError("ik request %v asks for %d solutions", r.ExecutionID, r.MaxSolutions)
	}
	return nil
}

// IKResult holds the solutions found for an IKRequest, one per path point, and a solver status
// code per solution. Zero codes mean success.
type IKResult struct {
	Path       *referenceframe.JointPath
	ErrorCodes []int
}

// Succeeded reports whether at least one solution was found and no solution reported an error.
func (r IKResult) Succeeded() bool {
	if r.Path == nil || r.Path.Count() == 0 {
		return false
	}
	for _, code := range r.ErrorCodes {
		if code != 0 {
			return false
		}
	}
	return true
}
