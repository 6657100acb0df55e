package motionplan

import (
	"go.uber.org/multierr"
)

// TaskSpacePlanParameters are the validated limits a planner uses for a cartesian move of an end
// effector.
type TaskSpacePlanParameters struct {
	endEffectorName        string
	maxXYZVelocity         float64
	maxXYZAcceleration     float64
	maxAngularVelocity     float64
	maxAngularAcceleration float64
	sampleResolution       float64
	collisionCheck         bool
	maxDeviation           float64
	ikJumpThreshold        float64
}

// TaskSpacePlanParametersBuilder is the mutable form of TaskSpacePlanParameters. Linear limits are
// in meters per second (squared), angular limits in radians per second (squared).
type TaskSpacePlanParametersBuilder struct {
	// EndEffectorName selects the moved frame; empty means the planner's default end effector.
	EndEffectorName        string
	MaxXYZVelocity         float64
	MaxXYZAcceleration     float64
	MaxAngularVelocity     float64
	MaxAngularAcceleration float64
	SampleResolution       float64
	CollisionCheck         bool
	MaxDeviation           float64
	IkJumpThreshold        float64
}

// NewTaskSpacePlanParametersBuilder returns a builder filled with default values.
func NewTaskSpacePlanParametersBuilder() *TaskSpacePlanParametersBuilder {
	return &TaskSpacePlanParametersBuilder{
		MaxXYZVelocity:         defaultMaxXYZVelocity,
		MaxXYZAcceleration:     defaultMaxXYZAcceleration,
		MaxAngularVelocity:     defaultMaxAngularVelocity,
		MaxAngularAcceleration: defaultMaxAngularAcceleration,
		SampleResolution:       defaultSampleResolution,
		CollisionCheck:         true,
		MaxDeviation:           defaultMaxDeviation,
		IkJumpThreshold:        defaultIkJumpThreshold,
	}
}

// ScaleVelocity multiplies the linear and angular velocity limits by factor, which must be in (0, 1].
func (b *TaskSpacePlanParametersBuilder) ScaleVelocity(factor float64) error {
	if !validScaleFactor(factor) {
		return NewScaleFactorError("velocity", factor)
	}
	b.MaxXYZVelocity *= factor
	b.MaxAngularVelocity *= factor
	return nil
}

// ScaleAcceleration multiplies the linear and angular acceleration limits by factor, which must
// be in (0, 1].
func (b *TaskSpacePlanParametersBuilder) ScaleAcceleration(factor float64) error {
	if !validScaleFactor(factor) {
		return NewScaleFactorError("acceleration", factor)
	}
	b.MaxXYZAcceleration *= factor
	b.MaxAngularAcceleration *= factor
	return nil
}

// Build validates the builder and returns the frozen parameters. Every violation is reported.
func (b *TaskSpacePlanParametersBuilder) Build() (*TaskSpacePlanParameters, error) {
	errs := multierr.Combine(
		validatePositive("max xyz velocity", b.MaxXYZVelocity),
		validatePositive("max xyz acceleration", b.MaxXYZAcceleration),
		validatePositive("max angular velocity", b.MaxAngularVelocity),
		validatePositive("max angular acceleration", b.MaxAngularAcceleration),
		validatePositive("sample resolution", b.SampleResolution),
		validateNonNegative("max deviation", b.MaxDeviation),
		validatePositive("ik jump threshold", b.IkJumpThreshold),
	)
	if errs != nil {
		return nil, errs
	}
	return &TaskSpacePlanParameters{
		endEffectorName:        b.EndEffectorName,
		maxXYZVelocity:         b.MaxXYZVelocity,
		maxXYZAcceleration:     b.MaxXYZAcceleration,
		maxAngularVelocity:     b.MaxAngularVelocity,
		maxAngularAcceleration: b.MaxAngularAcceleration,
		sampleResolution:       b.SampleResolution,
		collisionCheck:         b.CollisionCheck,
		maxDeviation:           b.MaxDeviation,
		ikJumpThreshold:        b.IkJumpThreshold,
	}, nil
}

// ToBuilder returns a builder holding a copy of the parameters.
func (p *TaskSpacePlanParameters) ToBuilder() *TaskSpacePlanParametersBuilder {
	return &TaskSpacePlanParametersBuilder{
		EndEffectorName:        p.endEffectorName,
		MaxXYZVelocity:         p.maxXYZVelocity,
		MaxXYZAcceleration:     p.maxXYZAcceleration,
		MaxAngularVelocity:     p.maxAngularVelocity,
		MaxAngularAcceleration: p.maxAngularAcceleration,
		SampleResolution:       p.sampleResolution,
		CollisionCheck:         p.collisionCheck,
		MaxDeviation:           p.maxDeviation,
		IkJumpThreshold:        p.ikJumpThreshold,
	}
}

// EndEffectorName returns the name of the frame whose pose follows the Cartesian path.
func (p *TaskSpacePlanParameters) EndEffectorName() string { return p.endEffectorName }

// MaxXYZVelocity returns the translational speed limit of the end effector.
func (p *TaskSpacePlanParameters) MaxXYZVelocity() float64 { return p.maxXYZVelocity }

// MaxXYZAcceleration returns the translational acceleration limit of the end effector.
func (p *TaskSpacePlanParameters) MaxXYZAcceleration() float64 { return p.maxXYZAcceleration }

// MaxAngularVelocity returns the rotational speed limit of the end effector, in radians per second.
func (p *TaskSpacePlanParameters) MaxAngularVelocity() float64 { return p.maxAngularVelocity }

// MaxAngularAcceleration returns the rotational acceleration limit of the end effector.
func (p *TaskSpacePlanParameters) MaxAngularAcceleration() float64 { return p.maxAngularAcceleration }

// SampleResolution returns the time step, in seconds, at which a planner samples its trajectory.
func (p *TaskSpacePlanParameters) SampleResolution() float64 { return p.sampleResolution }

// CollisionCheck reports whether the planner should check the trajectory for collisions.
func (p *TaskSpacePlanParameters) CollisionCheck() bool { return p.collisionCheck }

// MaxDeviation returns how far the end effector may deviate from the requested path.
func (p *TaskSpacePlanParameters) MaxDeviation() float64 { return p.maxDeviation }

// IkJumpThreshold returns the largest joint jump allowed between consecutive IK solutions.
func (p *TaskSpacePlanParameters) IkJumpThreshold() float64 { return p.ikJumpThreshold }

// WithEndEffectorName returns parameters moving the named end effector.
func (p *TaskSpacePlanParameters) WithEndEffectorName(name string) (*TaskSpacePlanParameters, error) {
	if p.endEffectorName == name {
		return p, nil
	}
	b := p.ToBuilder()
	b.EndEffectorName = name
	return b.Build()
}

// WithMaxXYZVelocity returns parameters with the given linear velocity limit.
func (p *TaskSpacePlanParameters) WithMaxXYZVelocity(v float64) (*TaskSpacePlanParameters, error) {
	if p.maxXYZVelocity == v {
		return p, nil
	}
	b := p.ToBuilder()
	b.MaxXYZVelocity = v
	return b.Build()
}

// WithMaxAngularVelocity returns parameters with the given angular velocity limit.
func (p *TaskSpacePlanParameters) WithMaxAngularVelocity(v float64) (*TaskSpacePlanParameters, error) {
	if p.maxAngularVelocity == v {
		return p, nil
	}
	b := p.ToBuilder()
	b.MaxAngularVelocity = v
	return b.Build()
}

// WithCollisionCheck returns parameters with collision checking switched on or off.
func (p *TaskSpacePlanParameters) WithCollisionCheck(check bool) (*TaskSpacePlanParameters, error) {
	if p.collisionCheck == check {
		return p, nil
	}
	b := p.ToBuilder()
	b.CollisionCheck = check
	return b.Build()
}

// WithIkJumpThreshold returns parameters with the given IK jump threshold.
func (p *TaskSpacePlanParameters) WithIkJumpThreshold(threshold float64) (*TaskSpacePlanParameters, error) {
	if p.ikJumpThreshold == threshold {
		return p, nil
	}
	b := p.ToBuilder()
	b.IkJumpThreshold = threshold
	return b.Build()
}
